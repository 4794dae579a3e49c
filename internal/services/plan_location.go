package services

import (
	"context"
	"errors"
	"factory-location-planner/internal/domain"
	"factory-location-planner/internal/platform/obs"
	"factory-location-planner/internal/ports"
	"fmt"
	"log/slog"
	"time"
)

type PlanLocationRequest struct {
	Factories         []domain.Factory
	X                 domain.GridRange
	Y                 domain.GridRange
	CandidateCapacity float64
	Workers           int
	Logger            *slog.Logger
}

// Baseline is the plan with the fixed factories only. Result is nil when
// the fixed factories cannot cover demand on their own.
type Baseline struct {
	Feasible bool
	Result   *domain.TransportResult
}

// Everything a run produces, ready for reporting.
type LocationReport struct {
	RunID       string
	Factories   []domain.Factory
	Wholesalers []domain.Wholesaler
	Baseline    Baseline
	Search      *GridSearchResult
	Duration    time.Duration
}

// Saving of the best location over the baseline. ok is false when the
// baseline is infeasible.
func (r *LocationReport) Improvement() (saving float64, ok bool) {
	if !r.Baseline.Feasible || r.Search == nil || r.Search.Best == nil {
		return 0, false
	}
	return r.Baseline.Result.Cost - r.Search.Best.Cost, true
}

// PlanFactoryLocation runs the whole batch: load wholesalers, solve the
// baseline with the fixed factories, then search the grid for the new
// factory.
//
// The candidate capacity is checked against the realised demand before any
// solve. A baseline that is infeasible on its own is reported, not fatal;
// the candidate is there to close that gap.
func PlanFactoryLocation(
	ctx context.Context,
	req PlanLocationRequest,
	source ports.DemandSource,
	provider ports.DistanceProvider,
	solver ports.TransportSolver,
) (report *LocationReport, err error) {
	logger := req.Logger
	if logger == nil {
		logger = slog.Default()
	}
	defer obs.Time(ctx, logger, "plan factory location")(&err)

	start := time.Now()

	wholesalers, err := source.ListWholesalers(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan factory location: list wholesalers: %w", err)
	}

	searchReq := GridSearchRequest{
		Factories:         req.Factories,
		Wholesalers:       wholesalers,
		X:                 req.X,
		Y:                 req.Y,
		CandidateCapacity: req.CandidateCapacity,
		Workers:           req.Workers,
		Logger:            logger,
	}
	if err := validateGridRequest(searchReq); err != nil {
		return nil, fmt.Errorf("plan factory location: %w", err)
	}

	logger.InfoContext(ctx, "demand loaded",
		"run_id", obs.RunID(ctx),
		"wholesalers", len(wholesalers),
		"total_demand", domain.TotalDemand(wholesalers),
		"fixed_capacity", domain.TotalCapacity(req.Factories),
	)

	report = &LocationReport{
		RunID:       obs.RunID(ctx),
		Factories:   req.Factories,
		Wholesalers: wholesalers,
	}

	base, err := SolveTransport(ctx, req.Factories, wholesalers, provider, solver)
	switch {
	case errors.Is(err, domain.ErrInfeasible):
		logger.WarnContext(ctx, "baseline infeasible without new factory",
			"run_id", obs.RunID(ctx), "shortfall", CandidateShortfall(req.Factories, wholesalers))
	case err != nil:
		return nil, fmt.Errorf("plan factory location: baseline: %w", err)
	default:
		report.Baseline = Baseline{Feasible: true, Result: base}
		logger.InfoContext(ctx, "baseline solved", "run_id", obs.RunID(ctx), "cost", base.Cost)
	}

	search, err := SearchGrid(ctx, searchReq, provider, solver)
	if err != nil {
		return nil, fmt.Errorf("plan factory location: %w", err)
	}
	report.Search = search
	report.Duration = time.Since(start)

	return report, nil
}
