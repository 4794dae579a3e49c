package cache

import (
	"factory-location-planner/internal/domain"
	"factory-location-planner/internal/ports"
	"slices"
	"sync"
	"sync/atomic"
)

// DefaultMaxRows bounds how many origins are memoized.
const DefaultMaxRows = 4096

// In-memory cache of origin->destinations distance rows.
// The cache is bound to one destination set (the run's wholesalers); rows
// requested for any other destination list bypass the cache. A cache built
// with nil destinations binds to the first list it is asked for. Once maxRows
// origins are stored, new origins are computed but not kept, so the rows
// stored first (the fixed factories) stay resident for the whole search.
// Safe for concurrent use.
type DistanceRowCache struct {
	inner   ports.DistanceProvider
	maxRows int

	mu           sync.RWMutex
	destinations []domain.Point
	rows         map[domain.Point][]float64

	hits   atomic.Int64
	misses atomic.Int64
}

func NewDistanceRowCache(inner ports.DistanceProvider, destinations []domain.Point, maxRows int) *DistanceRowCache {
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}
	return &DistanceRowCache{
		inner:        inner,
		destinations: slices.Clone(destinations),
		maxRows:      maxRows,
		rows:         make(map[domain.Point][]float64),
	}
}

func (c *DistanceRowCache) Distance(origin, destination domain.Point) float64 {
	return c.inner.Distance(origin, destination)
}

// Fetch the row for origin, computing and storing it on a miss.
func (c *DistanceRowCache) DistanceRow(origin domain.Point, destinations []domain.Point) []float64 {
	if !c.bind(destinations) {
		return computeRow(c.inner, origin, destinations)
	}

	if row, ok := c.GetRow(origin); ok {
		c.hits.Add(1)
		return row
	}
	c.misses.Add(1)

	row := computeRow(c.inner, origin, destinations)
	c.PutRow(origin, row)
	return row
}

// bind reports whether destinations is the cached set, adopting it when
// no set is bound yet.
func (c *DistanceRowCache) bind(destinations []domain.Point) bool {
	c.mu.RLock()
	bound := c.destinations
	c.mu.RUnlock()
	if bound != nil {
		return slices.Equal(bound, destinations)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destinations == nil {
		c.destinations = slices.Clone(destinations)
	}
	return slices.Equal(c.destinations, destinations)
}

// Fetch a cached row without computing it.
func (c *DistanceRowCache) GetRow(origin domain.Point) ([]float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	row, ok := c.rows[origin]
	return row, ok
}

// Store a row for origin. Rows beyond the size bound are dropped.
func (c *DistanceRowCache) PutRow(origin domain.Point, row []float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.rows[origin]; !ok && len(c.rows) >= c.maxRows {
		return
	}
	c.rows[origin] = row
}

// Stats reports cache hits and misses since creation.
func (c *DistanceRowCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *DistanceRowCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.rows)
}

func computeRow(p ports.DistanceProvider, origin domain.Point, destinations []domain.Point) []float64 {
	if mp, ok := p.(ports.DistanceMatrixProvider); ok {
		return mp.DistanceRow(origin, destinations)
	}
	row := make([]float64, len(destinations))
	for j, d := range destinations {
		row[j] = p.Distance(origin, d)
	}
	return row
}
