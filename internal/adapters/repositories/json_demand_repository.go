package repositories

import (
	"context"
	"encoding/json"
	"factory-location-planner/internal/domain"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// One wholesaler as stored in a seed file.
type WholesalerSeed struct {
	ID     int     `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Demand float64 `json:"demand"`
}

// JSON-file implementation of the DemandSource port.
type JSONDemandRepository struct{ Path string }

func NewJSONDemandRepository(path string) *JSONDemandRepository {
	return &JSONDemandRepository{Path: path}
}

// Return the wholesalers from the seed file, in file order.
func (r *JSONDemandRepository) ListWholesalers(ctx context.Context) ([]domain.Wholesaler, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list wholesalers: %w", err)
	}

	wholesalers, err := ReadSeedJSON(r.Path)
	if err != nil {
		return nil, fmt.Errorf("list wholesalers: %w", err)
	}
	return wholesalers, nil
}

// Read and validate a wholesaler seed file.
func ReadSeedJSON(jsonPath string) ([]domain.Wholesaler, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("read seed: read %q: %w", jsonPath, err)
	}

	var data []WholesalerSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("read seed: parse json: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("read seed: %q: %w", jsonPath, domain.ErrEmptyDemand)
	}

	seen := make(map[int]struct{}, len(data))
	out := make([]domain.Wholesaler, 0, len(data))
	for i, item := range data {
		if item.ID <= 0 {
			return nil, fmt.Errorf("read seed: invalid id at index %d: %d", i+1, item.ID)
		}
		if _, dup := seen[item.ID]; dup {
			return nil, fmt.Errorf("read seed: duplicate id %d at index %d", item.ID, i+1)
		}
		seen[item.ID] = struct{}{}

		w := domain.Wholesaler{
			ID:       item.ID,
			Location: domain.Point{X: item.X, Y: item.Y},
			Demand:   item.Demand,
		}
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("read seed: index %d: %w", i+1, err)
		}
		out = append(out, w)
	}

	return out, nil
}

// Write wholesalers as an indented seed file, creating parent directories.
func WriteSeedJSON(jsonPath string, wholesalers []domain.Wholesaler) error {
	rows := make([]WholesalerSeed, len(wholesalers))
	for i, w := range wholesalers {
		if math.IsNaN(w.Demand) || math.IsInf(w.Demand, 0) {
			return fmt.Errorf("write seed: wholesaler %d: %w (demand=%g)", w.ID, domain.ErrNegativeDemand, w.Demand)
		}
		rows[i] = WholesalerSeed{ID: w.ID, X: w.Location.X, Y: w.Location.Y, Demand: w.Demand}
	}

	bytes, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("write seed: encode json: %w", err)
	}

	if dir := filepath.Dir(jsonPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("write seed: create %q: %w", dir, err)
		}
	}
	if err := os.WriteFile(jsonPath, append(bytes, '\n'), 0o644); err != nil {
		return fmt.Errorf("write seed: write %q: %w", jsonPath, err)
	}

	return nil
}
