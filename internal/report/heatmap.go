package report

import (
	"factory-location-planner/internal/services"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// costSurface exposes the evaluated grid as plotter.GridXYZ, columns along x.
type costSurface struct{ res *services.GridSearchResult }

func (s costSurface) Dims() (c, r int)   { return len(s.res.XValues), len(s.res.YValues) }
func (s costSurface) Z(c, r int) float64 { return s.res.Cells[s.res.Index(c, r)].Cost }
func (s costSurface) X(c int) float64    { return s.res.XValues[c] }
func (s costSurface) Y(r int) float64    { return s.res.YValues[r] }

// HeatmapDrawable reports whether res has at least two values on each axis.
func HeatmapDrawable(res *services.GridSearchResult) bool {
	return res != nil && len(res.XValues) >= 2 && len(res.YValues) >= 2
}

// WriteCostHeatmap renders total transport cost per candidate location.
func WriteCostHeatmap(path string, res *services.GridSearchResult) error {
	if res == nil || len(res.Cells) == 0 {
		return fmt.Errorf("write cost heatmap: empty grid")
	}
	if !HeatmapDrawable(res) {
		return fmt.Errorf("write cost heatmap: need at least 2x2 cells, have %dx%d", len(res.XValues), len(res.YValues))
	}

	hm := plotter.NewHeatMap(costSurface{res: res}, palette.Heat(16, 1))
	if hm.Max == hm.Min {
		hm.Max = hm.Min + 1
	}

	p := plot.New()
	p.Title.Text = "Total transport cost by new factory location"
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"
	p.Add(hm)

	if best := res.Best; best != nil {
		pt, err := plotter.NewScatter(plotter.XYs{{X: best.Location.X, Y: best.Location.Y}})
		if err != nil {
			return fmt.Errorf("write cost heatmap: best marker: %w", err)
		}
		pt.GlyphStyle.Color = candidateColor
		pt.GlyphStyle.Radius = vg.Points(5)
		p.Add(pt)
		p.Legend.Add(fmt.Sprintf("Best %v, cost %.1f", best.Location, best.Cost), pt)
		p.Legend.Top = true
	}

	return savePlot(p, 10*vg.Inch, 8*vg.Inch, path)
}
