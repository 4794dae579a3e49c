package repositories

import (
	"context"
	"errors"
	"factory-location-planner/internal/domain"
	"fmt"
	"math/rand"
)

// DefaultSeed replaces a zero seed so that an unset value still gives a
// reproducible run.
const DefaultSeed int64 = 42

// Inclusive integer bounds for generated wholesalers.
type RandomDemandConfig struct {
	Count     int
	Seed      int64
	XMin      int
	XMax      int
	YMin      int
	YMax      int
	DemandMin int
	DemandMax int
}

func (c RandomDemandConfig) Validate() error {
	if c.Count <= 0 {
		return fmt.Errorf("random demand: count must be positive, got %d", c.Count)
	}
	if c.XMin > c.XMax {
		return fmt.Errorf("random demand: x range [%d, %d] is empty", c.XMin, c.XMax)
	}
	if c.YMin > c.YMax {
		return fmt.Errorf("random demand: y range [%d, %d] is empty", c.YMin, c.YMax)
	}
	if c.DemandMin < 0 || c.DemandMin > c.DemandMax {
		return fmt.Errorf("random demand: demand range [%d, %d]: %w", c.DemandMin, c.DemandMax, domain.ErrNegativeDemand)
	}
	return nil
}

// Seeded pseudo-random implementation of the DemandSource port.
// The same configuration always yields the same wholesalers.
type RandomDemandRepository struct{ cfg RandomDemandConfig }

func NewRandomDemandRepository(cfg RandomDemandConfig) *RandomDemandRepository {
	if cfg.Seed == 0 {
		cfg.Seed = DefaultSeed
	}
	return &RandomDemandRepository{cfg: cfg}
}

// Return the generated wholesalers, numbered from 1.
// All x coordinates are drawn first, then all y coordinates, then all demands.
func (r *RandomDemandRepository) ListWholesalers(ctx context.Context) ([]domain.Wholesaler, error) {
	if r == nil {
		return nil, errors.New("random demand repository: repository is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list wholesalers: %w", err)
	}
	if err := r.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("list wholesalers: %w", err)
	}

	c := r.cfg
	rng := rand.New(rand.NewSource(c.Seed))
	between := func(lo, hi int) int { return lo + rng.Intn(hi-lo+1) }

	out := make([]domain.Wholesaler, c.Count)
	for i := range out {
		out[i].ID = i + 1
		out[i].Location.X = float64(between(c.XMin, c.XMax))
	}
	for i := range out {
		out[i].Location.Y = float64(between(c.YMin, c.YMax))
	}
	for i := range out {
		out[i].Demand = float64(between(c.DemandMin, c.DemandMax))
	}

	return out, nil
}
