package ports

import "factory-location-planner/internal/domain"

// Contract for the transport cost between two locations.
type DistanceProvider interface {
	// Return the cost of moving one unit from origin to destination.
	Distance(origin, destination domain.Point) float64
}
