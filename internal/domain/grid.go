package domain

import (
	"fmt"
	"math"
)

// maxAxisValues bounds a single axis so a bad step cannot allocate without limit.
const maxAxisValues = 100_000

// One axis of the search grid. Max is inclusive.
type GridRange struct {
	Min  float64
	Max  float64
	Step float64
}

func (r GridRange) Validate() error {
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) || math.IsInf(r.Min, 0) || math.IsInf(r.Max, 0) {
		return fmt.Errorf("%w: bounds must be finite (min=%g max=%g)", ErrInvalidGrid, r.Min, r.Max)
	}
	if !(r.Step > 0) || math.IsInf(r.Step, 0) {
		return fmt.Errorf("%w: step must be positive, got %g", ErrInvalidGrid, r.Step)
	}
	if r.Min > r.Max {
		return fmt.Errorf("%w: min %g greater than max %g", ErrInvalidGrid, r.Min, r.Max)
	}
	if n := math.Floor((r.Max-r.Min)/r.Step) + 1; n > maxAxisValues {
		return fmt.Errorf("%w: %g values on one axis exceeds limit %d", ErrInvalidGrid, n, maxAxisValues)
	}
	return nil
}

// Values returns Min, Min+Step, ... up to and including Max.
// Each value is computed from its index and rounded to 1e-9 so that long
// axes do not accumulate floating-point drift.
func (r GridRange) Values() []float64 {
	if r.Validate() != nil {
		return nil
	}

	n := int(math.Floor((r.Max-r.Min)/r.Step+1e-9)) + 1
	out := make([]float64, 0, n)
	for k := range n {
		v := math.Round((r.Min+float64(k)*r.Step)*1e9) / 1e9
		if v > r.Max {
			break
		}
		out = append(out, v)
	}
	return out
}

// Len is the number of values on the axis.
func (r GridRange) Len() int { return len(r.Values()) }
