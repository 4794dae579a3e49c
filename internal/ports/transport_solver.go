package ports

import (
	"context"
	"factory-location-planner/internal/domain"

	"gonum.org/v1/gonum/mat"
)

// Contract for solving a transportation LP on a prepared cost matrix.
type TransportSolver interface {
	// Minimise Σ costs[i][j]·x[i][j] subject to Σ_i x[i][j] = demands[j],
	// Σ_j x[i][j] <= capacities[i] and x >= 0.
	// Returns domain.ErrInfeasible when capacity cannot meet demand.
	SolveTransport(ctx context.Context, costs mat.Matrix, capacities, demands []float64) (*domain.ShipmentPlan, error)
}
