package report

import (
	"factory-location-planner/internal/domain"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const LocationPlotTitle = "Factory and Wholesaler Transports with New Optimal Factory Location"

var (
	factoryColor    = color.RGBA{R: 220, G: 30, B: 30, A: 255}
	wholesalerColor = color.RGBA{R: 30, G: 60, B: 220, A: 255}
	candidateColor  = color.RGBA{R: 20, G: 160, B: 40, A: 255}
	routeColor      = color.RGBA{R: 90, G: 90, B: 90, A: 255}
)

// WriteLocationPlot draws fixed factories, wholesalers, the chosen new
// factory and the routes of best's plan, and saves the figure as PNG.
// best.Factories holds the fixed factories followed by the new one. Arcs
// carrying no more than eps are not drawn.
func WriteLocationPlot(path string, wholesalers []domain.Wholesaler, best *domain.CandidateResult, eps float64) error {
	if best == nil || len(best.Factories) == 0 {
		return fmt.Errorf("write location plot: no candidate to draw")
	}

	p := plot.New()
	p.Title.Text = LocationPlotTitle
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"
	p.Add(plotter.NewGrid())

	// Routes first so markers stay on top.
	for _, rt := range best.Plan.Routes(routeEpsilon(eps)) {
		from := best.Factories[rt.Factory].Location
		to := wholesalers[rt.Wholesaler].Location
		line, err := plotter.NewLine(plotter.XYs{{X: from.X, Y: from.Y}, {X: to.X, Y: to.Y}})
		if err != nil {
			return fmt.Errorf("write location plot: route line: %w", err)
		}
		line.Color = routeColor
		line.Width = vg.Points(1)
		line.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(line)
	}

	fixed := best.Factories[:len(best.Factories)-1]
	candidate := best.Factories[len(best.Factories)-1]

	fixedPts := make(plotter.XYs, len(fixed))
	fixedLabels := make([]string, len(fixed))
	for i, f := range fixed {
		fixedPts[i] = plotter.XY{X: f.Location.X, Y: f.Location.Y}
		fixedLabels[i] = fmt.Sprintf("Factory %d", f.ID)
	}

	wholesalerPts := make(plotter.XYs, len(wholesalers))
	wholesalerLabels := make([]string, len(wholesalers))
	for j, w := range wholesalers {
		wholesalerPts[j] = plotter.XY{X: w.Location.X, Y: w.Location.Y}
		wholesalerLabels[j] = fmt.Sprintf("Wholesaler %d (Demand: %g)", w.ID, w.Demand)
	}

	candidatePts := plotter.XYs{{X: candidate.Location.X, Y: candidate.Location.Y}}
	candidateLabels := []string{"New Factory"}

	layers := []struct {
		name   string
		pts    plotter.XYs
		labels []string
		color  color.Color
		radius vg.Length
	}{
		{"Factories", fixedPts, fixedLabels, factoryColor, vg.Points(5)},
		{"Wholesalers", wholesalerPts, wholesalerLabels, wholesalerColor, vg.Points(4)},
		{"New factory", candidatePts, candidateLabels, candidateColor, vg.Points(6)},
	}
	for _, l := range layers {
		if len(l.pts) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(l.pts)
		if err != nil {
			return fmt.Errorf("write location plot: %s: %w", l.name, err)
		}
		sc.GlyphStyle.Color = l.color
		sc.GlyphStyle.Radius = l.radius
		sc.GlyphStyle.Shape = draw.CircleGlyph{}

		labels, err := markerLabels(l.pts, l.labels, l.radius)
		if err != nil {
			return fmt.Errorf("write location plot: %s labels: %w", l.name, err)
		}

		p.Add(sc, labels)
		p.Legend.Add(l.name, sc)
	}
	// Legend sits above the data area so it never hides markers.
	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.YOffs = p.Legend.TextStyle.Font.Size * 3
	p.Title.Padding = p.Legend.TextStyle.Font.Size * 3

	return savePlot(p, 12*vg.Inch, 8*vg.Inch, path)
}

// markerLabels places each label to the left of its marker, clear of a glyph
// of the given radius.
func markerLabels(pts plotter.XYs, text []string, radius vg.Length) (*plotter.Labels, error) {
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: text})
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XRight
		labels.TextStyle[i].YAlign = draw.YCenter
	}
	labels.Offset = vg.Point{X: -(radius + vg.Points(3))}
	return labels, nil
}

func savePlot(p *plot.Plot, w, h vg.Length, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("save plot: create dir for %q: %w", path, err)
	}
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("save plot: %q: %w", path, err)
	}
	return nil
}
