package ports

import "factory-location-planner/internal/domain"

// Optional extension of DistanceProvider that supports batched lookups.
type DistanceMatrixProvider interface {
	DistanceProvider
	// Return distances from one origin to many destinations, in destination order.
	// Callers must not modify the returned slice.
	DistanceRow(origin domain.Point, destinations []domain.Point) []float64
}
