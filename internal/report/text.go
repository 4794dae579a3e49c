package report

import (
	"factory-location-planner/internal/domain"
	"factory-location-planner/internal/services"
	"fmt"
	"io"
	"time"

	"gonum.org/v1/gonum/mat"
)

// WriteText prints the human readable summary of a run.
func WriteText(w io.Writer, r *services.LocationReport) error {
	p := &printer{w: w}

	if r.RunID != "" {
		p.printf("Run %s\n", r.RunID)
	}
	p.printf("Factories: %d fixed, total capacity %g\n", len(r.Factories), domain.TotalCapacity(r.Factories))
	p.printf("Wholesalers: %d, total demand %g\n\n", len(r.Wholesalers), domain.TotalDemand(r.Wholesalers))

	if r.Baseline.Feasible {
		p.printf("Original distance: %.4f\n", r.Baseline.Result.Cost)
		p.printf("Original transports:\n")
		p.matrix(r.Baseline.Result.Plan)
	} else {
		p.printf("Original distance: infeasible, shortfall %g\n",
			services.CandidateShortfall(r.Factories, r.Wholesalers))
	}
	p.printf("\n")

	if r.Search != nil && r.Search.Best != nil {
		best := r.Search.Best
		p.printf("Min %.4f\n", best.Cost)
		p.printf("Optimal location for new factory: %v\n", best.Location)
		p.printf("Transports with new factory:\n")
		p.matrix(best.Plan)
		p.printf("\nCells evaluated: %d (%d x %d)\n", len(r.Search.Cells), len(r.Search.XValues), len(r.Search.YValues))
	}

	if saving, ok := r.Improvement(); ok {
		p.printf("Improvement: %.4f\n", saving)
	}
	p.printf("Duration: %s\n", r.Duration.Round(time.Millisecond))

	return p.err
}

// printer keeps the first write error so callers check once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) matrix(plan *domain.ShipmentPlan) {
	p.printf("%v\n", mat.Formatted(plan.Matrix(), mat.Prefix(""), mat.Squeeze()))
}
