package services

import (
	"factory-location-planner/internal/domain"
	"factory-location-planner/internal/ports"

	"gonum.org/v1/gonum/mat"
)

// BuildCostMatrix returns the factories×wholesalers matrix whose entry (i, j)
// is the distance from factory i to wholesaler j.
//
// Rows are requested in one call when the provider supports batched lookups,
// which lets a caching provider reuse rows for factories seen before.
// Both slices must be non-empty.
func BuildCostMatrix(
	provider ports.DistanceProvider,
	factories []domain.Factory,
	wholesalers []domain.Wholesaler,
) *mat.Dense {
	destinations := domain.Locations(wholesalers)
	costs := mat.NewDense(len(factories), len(destinations), nil)

	mp, hasMatrix := provider.(ports.DistanceMatrixProvider)
	for i, f := range factories {
		if hasMatrix {
			costs.SetRow(i, mp.DistanceRow(f.Location, destinations))
			continue
		}
		for j, d := range destinations {
			costs.Set(i, j, provider.Distance(f.Location, d))
		}
	}

	return costs
}
