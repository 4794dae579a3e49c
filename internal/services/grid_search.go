package services

import (
	"context"
	"errors"
	"factory-location-planner/internal/domain"
	"factory-location-planner/internal/platform/obs"
	"factory-location-planner/internal/ports"
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// progressEvery controls how often grid progress is logged at debug level.
const progressEvery = 1000

type GridSearchRequest struct {
	Factories   []domain.Factory
	Wholesalers []domain.Wholesaler
	X           domain.GridRange
	Y           domain.GridRange
	// Capacity given to the candidate factory in every cell.
	CandidateCapacity float64
	// Workers > 1 evaluates cells concurrently. The result does not depend on it.
	Workers int
	Logger  *slog.Logger
}

type GridSearchResult struct {
	// Best is the cheapest cell; on equal cost the earliest in grid order.
	Best *domain.CandidateResult
	// Cells holds every evaluated cell in grid order (x outer, y inner).
	Cells   []domain.CellCost
	XValues []float64
	YValues []float64
}

// Index of cell (xi, yi) in grid order.
func (r *GridSearchResult) Index(xi, yi int) int { return xi*len(r.YValues) + yi }

// SearchGrid places the candidate factory at every grid location, solves the
// transportation LP for fixed factories plus candidate and keeps the cheapest
// location.
//
// A cell replaces the current best only when strictly cheaper, so among equal
// costs the first cell in grid order wins. Any failed cell ends the search:
// with the candidate capacity validated up front an infeasible cell points at a
// configuration error.
func SearchGrid(
	ctx context.Context,
	req GridSearchRequest,
	provider ports.DistanceProvider,
	solver ports.TransportSolver,
) (res *GridSearchResult, err error) {
	logger := req.Logger
	if logger == nil {
		logger = slog.Default()
	}
	defer obs.Time(ctx, logger, "search grid")(&err)

	if err := validateGridRequest(req); err != nil {
		return nil, fmt.Errorf("search grid: %w", err)
	}

	xs, ys := req.X.Values(), req.Y.Values()
	res = &GridSearchResult{
		Cells:   make([]domain.CellCost, len(xs)*len(ys)),
		XValues: xs,
		YValues: ys,
	}

	locate := func(idx int) domain.Point {
		return domain.Point{X: xs[idx/len(ys)], Y: ys[idx%len(ys)]}
	}

	workers := max(req.Workers, 1)
	workers = min(workers, len(res.Cells))

	logger.InfoContext(ctx, "grid search started",
		"run_id", obs.RunID(ctx),
		"cells", len(res.Cells),
		"x_values", len(xs),
		"y_values", len(ys),
		"workers", workers,
	)

	var done atomic.Int64

	// Each worker takes every workers-th cell and keeps its own best; the
	// per-worker bests are merged afterwards with the same ordering rule, so
	// the outcome matches a sequential scan.
	locals := make([]bestCandidate, workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := range workers {
		g.Go(func() error {
			for idx := w; idx < len(res.Cells); idx += workers {
				if err := gctx.Err(); err != nil {
					return err
				}

				loc := locate(idx)
				cand, err := evaluateCell(gctx, req, loc, provider, solver)
				if err != nil {
					return fmt.Errorf("cell %v: %w", loc, err)
				}

				res.Cells[idx] = domain.CellCost{Location: loc, Cost: cand.Cost}
				locals[w].offer(idx, cand)

				if n := done.Add(1); n%progressEvery == 0 {
					logger.DebugContext(gctx, "grid search progress",
						"run_id", obs.RunID(gctx), "evaluated", n, "cells", len(res.Cells))
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("search grid: %w", err)
	}

	var best bestCandidate
	for _, l := range locals {
		if l.result != nil {
			best.offer(l.index, l.result)
		}
	}
	res.Best = best.result

	logger.InfoContext(ctx, "grid search finished",
		"run_id", obs.RunID(ctx),
		"best_x", res.Best.Location.X,
		"best_y", res.Best.Location.Y,
		"best_cost", res.Best.Cost,
	)

	return res, nil
}

// CandidateShortfall is the capacity the candidate must add so that supply
// covers demand. It is zero when the fixed factories already suffice.
func CandidateShortfall(factories []domain.Factory, wholesalers []domain.Wholesaler) float64 {
	return math.Max(0, domain.TotalDemand(wholesalers)-domain.TotalCapacity(factories))
}

func validateGridRequest(req GridSearchRequest) error {
	if err := domain.ValidateFactories(req.Factories); err != nil {
		return err
	}
	if err := domain.ValidateWholesalers(req.Wholesalers); err != nil {
		return err
	}
	if err := req.X.Validate(); err != nil {
		return fmt.Errorf("x axis: %w", err)
	}
	if err := req.Y.Validate(); err != nil {
		return fmt.Errorf("y axis: %w", err)
	}
	if math.IsNaN(req.CandidateCapacity) || req.CandidateCapacity < 0 {
		return fmt.Errorf("candidate: %w (capacity=%g)", domain.ErrNegativeCapacity, req.CandidateCapacity)
	}
	if short := CandidateShortfall(req.Factories, req.Wholesalers); req.CandidateCapacity < short {
		return fmt.Errorf("%w: need %g, have %g", domain.ErrInsufficientCandidateCapacity, short, req.CandidateCapacity)
	}
	return nil
}

func evaluateCell(
	ctx context.Context,
	req GridSearchRequest,
	loc domain.Point,
	provider ports.DistanceProvider,
	solver ports.TransportSolver,
) (*domain.CandidateResult, error) {
	supply := domain.WithCandidate(req.Factories, loc, req.CandidateCapacity)

	tr, err := SolveTransport(ctx, supply, req.Wholesalers, provider, solver)
	if err != nil {
		return nil, err
	}

	return &domain.CandidateResult{
		Location:  loc,
		Cost:      tr.Cost,
		Plan:      tr.Plan,
		Factories: supply,
	}, nil
}

// Running best over grid cells.
type bestCandidate struct {
	index  int
	result *domain.CandidateResult
}

// offer keeps r when it is strictly cheaper, or equally cheap and earlier in
// grid order. Scanning cells in order this is plain strict less-than.
func (b *bestCandidate) offer(index int, r *domain.CandidateResult) {
	if b.result == nil ||
		r.Cost < b.result.Cost ||
		(r.Cost == b.result.Cost && index < b.index) {
		b.index = index
		b.result = r
	}
}

// IsConfigError reports whether err stems from invalid search input rather
// than from the solver.
func IsConfigError(err error) bool {
	return errors.Is(err, domain.ErrEmptySupply) ||
		errors.Is(err, domain.ErrEmptyDemand) ||
		errors.Is(err, domain.ErrNegativeCapacity) ||
		errors.Is(err, domain.ErrNegativeDemand) ||
		errors.Is(err, domain.ErrInvalidLocation) ||
		errors.Is(err, domain.ErrInvalidGrid) ||
		errors.Is(err, domain.ErrInsufficientCandidateCapacity)
}
