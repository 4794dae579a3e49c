// Package report renders a planner run as text, JSON and PNG figures.
package report

import (
	"factory-location-planner/internal/services"
	"fmt"
	"log/slog"
	"path/filepath"
)

const (
	JSONFile         = "report.json"
	LocationPlotFile = "locations.png"
	HeatmapFile      = "cost_surface.png"
)

type Options struct {
	Dir     string
	JSON    bool
	Plot    bool
	Heatmap bool
	// RouteEpsilon is the smallest quantity reported as a route; <= 0 means
	// DefaultRouteEpsilon. Pass the solver tolerance.
	RouteEpsilon float64
	Logger       *slog.Logger
}

// WriteFiles writes the enabled outputs into opts.Dir and returns their paths.
// The heatmap is skipped with a warning when an axis has a single value.
func WriteFiles(opts Options, r *services.LocationReport) ([]string, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var written []string

	if opts.JSON {
		path := filepath.Join(opts.Dir, JSONFile)
		if err := WriteJSON(path, NewReportResponse(r, opts.RouteEpsilon)); err != nil {
			return written, fmt.Errorf("write files: %w", err)
		}
		written = append(written, path)
	}

	if r.Search == nil {
		return written, nil
	}

	if opts.Plot && r.Search.Best != nil {
		path := filepath.Join(opts.Dir, LocationPlotFile)
		if err := WriteLocationPlot(path, r.Wholesalers, r.Search.Best, opts.RouteEpsilon); err != nil {
			return written, fmt.Errorf("write files: %w", err)
		}
		written = append(written, path)
	}

	if opts.Heatmap {
		if !HeatmapDrawable(r.Search) {
			logger.Warn("cost heatmap skipped, grid needs at least 2 values per axis",
				"run_id", r.RunID, "x_values", len(r.Search.XValues), "y_values", len(r.Search.YValues))
			return written, nil
		}
		path := filepath.Join(opts.Dir, HeatmapFile)
		if err := WriteCostHeatmap(path, r.Search); err != nil {
			return written, fmt.Errorf("write files: %w", err)
		}
		written = append(written, path)
	}

	return written, nil
}
