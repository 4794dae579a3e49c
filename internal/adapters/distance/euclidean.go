package distance

import (
	"factory-location-planner/internal/domain"

	"gonum.org/v1/gonum/floats"
)

// Straight-line distance in the plane. It is the cost of moving one unit
// of goods between two points.
type Euclidean struct{}

func NewEuclidean() Euclidean { return Euclidean{} }

func (Euclidean) Distance(origin, destination domain.Point) float64 {
	return floats.Distance(origin.Vec(), destination.Vec(), 2)
}

// Batched form used by the cost-matrix builder.
func (e Euclidean) DistanceRow(origin domain.Point, destinations []domain.Point) []float64 {
	row := make([]float64, len(destinations))
	for j, d := range destinations {
		row[j] = e.Distance(origin, d)
	}
	return row
}
