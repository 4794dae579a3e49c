package ports

import (
	"context"
	"factory-location-planner/internal/domain"
)

// Port: a boundary for obtaining the wholesalers of a run.
type DemandSource interface {
	// Return all wholesalers, in a stable order.
	ListWholesalers(ctx context.Context) ([]domain.Wholesaler, error)
}
