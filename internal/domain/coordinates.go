package domain

import (
	"fmt"
	"math"
)

// Immutable planar coordinates.
type Point struct {
	X float64
	Y float64
}

// Return coordinates as [x, y] for vector helpers.
func (p Point) Vec() []float64 { return []float64{p.X, p.Y} }

// Finite reports whether both coordinates are real numbers.
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

func (p Point) String() string { return fmt.Sprintf("(%g, %g)", p.X, p.Y) }
