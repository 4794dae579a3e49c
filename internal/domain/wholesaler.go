package domain

import (
	"fmt"
	"math"
)

// Represents a single demand point.
// A Wholesaler has a fixed location and a quantity that must be delivered
// in full. Wholesalers are produced once per run, before any solving.
type Wholesaler struct {
	ID       int
	Location Point
	Demand   float64
}

func (w Wholesaler) Validate() error {
	if !w.Location.Finite() {
		return fmt.Errorf("validate wholesaler %d: %w: %v", w.ID, ErrInvalidLocation, w.Location)
	}
	if math.IsNaN(w.Demand) || w.Demand < 0 {
		return fmt.Errorf("validate wholesaler %d: %w (demand=%g)", w.ID, ErrNegativeDemand, w.Demand)
	}
	return nil
}

// Validate a demand set. It must be non-empty and every wholesaler valid.
func ValidateWholesalers(wholesalers []Wholesaler) error {
	if len(wholesalers) == 0 {
		return ErrEmptyDemand
	}
	for _, w := range wholesalers {
		if err := w.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func TotalDemand(wholesalers []Wholesaler) float64 {
	total := 0.0
	for _, w := range wholesalers {
		total += w.Demand
	}
	return total
}

// Demands in wholesaler order.
func Demands(wholesalers []Wholesaler) []float64 {
	out := make([]float64, len(wholesalers))
	for i, w := range wholesalers {
		out[i] = w.Demand
	}
	return out
}

// Locations in wholesaler order.
func Locations(wholesalers []Wholesaler) []Point {
	out := make([]Point, len(wholesalers))
	for i, w := range wholesalers {
		out[i] = w.Location
	}
	return out
}
