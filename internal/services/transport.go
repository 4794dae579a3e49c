package services

import (
	"context"
	"factory-location-planner/internal/domain"
	"factory-location-planner/internal/ports"
	"fmt"
)

// SolveTransport computes the minimum-cost shipment plan from factories to
// wholesalers.
//
// Every wholesaler receives exactly its demand and no factory ships more than
// its capacity. The returned cost is Σ distance × quantity over all arcs.
// When total capacity is below total demand the error wraps
// domain.ErrInfeasible; callers that need a feasible answer must size
// capacities beforehand.
func SolveTransport(
	ctx context.Context,
	factories []domain.Factory,
	wholesalers []domain.Wholesaler,
	provider ports.DistanceProvider,
	solver ports.TransportSolver,
) (*domain.TransportResult, error) {
	if err := domain.ValidateFactories(factories); err != nil {
		return nil, fmt.Errorf("solve transport: %w", err)
	}
	if err := domain.ValidateWholesalers(wholesalers); err != nil {
		return nil, fmt.Errorf("solve transport: %w", err)
	}

	costs := BuildCostMatrix(provider, factories, wholesalers)

	plan, err := solver.SolveTransport(ctx, costs, domain.Capacities(factories), domain.Demands(wholesalers))
	if err != nil {
		return nil, fmt.Errorf("solve transport: %w", err)
	}

	return &domain.TransportResult{
		Cost:  plan.Cost(costs),
		Plan:  plan,
		Costs: costs,
	}, nil
}
