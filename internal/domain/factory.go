package domain

import (
	"fmt"
	"math"
)

// Production site supplying wholesalers.
// Capacity is the most a factory can ship across all of its routes.
type Factory struct {
	ID       int
	Location Point
	Capacity float64
}

func NewFactory(id int, location Point, capacity float64) Factory {
	return Factory{
		ID:       id,
		Location: location,
		Capacity: capacity,
	}
}

// Validate a single factory.
func (f Factory) Validate() error {
	if !f.Location.Finite() {
		return fmt.Errorf("validate factory %d: %w: %v", f.ID, ErrInvalidLocation, f.Location)
	}
	if math.IsNaN(f.Capacity) || f.Capacity < 0 {
		return fmt.Errorf("validate factory %d: %w (capacity=%g)", f.ID, ErrNegativeCapacity, f.Capacity)
	}
	return nil
}

// Validate a supply set. It must be non-empty and every factory valid.
func ValidateFactories(factories []Factory) error {
	if len(factories) == 0 {
		return ErrEmptySupply
	}
	for _, f := range factories {
		if err := f.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Sum of capacities across factories.
func TotalCapacity(factories []Factory) float64 {
	total := 0.0
	for _, f := range factories {
		total += f.Capacity
	}
	return total
}

// Capacities in factory order.
func Capacities(factories []Factory) []float64 {
	out := make([]float64, len(factories))
	for i, f := range factories {
		out[i] = f.Capacity
	}
	return out
}

// WithCandidate returns a new supply set made of the fixed factories followed
// by one candidate. The input slice is never modified.
func WithCandidate(fixed []Factory, location Point, capacity float64) []Factory {
	out := make([]Factory, len(fixed), len(fixed)+1)
	copy(out, fixed)
	return append(out, NewFactory(len(fixed)+1, location, capacity))
}
