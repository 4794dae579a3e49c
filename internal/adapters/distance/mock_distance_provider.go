package distance

import (
	"factory-location-planner/internal/domain"
	"math"
)

type MockPair struct {
	From, To domain.Point
	Cost     float64
}

// Fixed-table distance provider for tests. Unknown pairs cost +Inf so a
// missing entry is visible in the solve rather than silently free.
type MockDistanceProvider struct {
	m map[[2]domain.Point]float64
}

func NewMockDistanceProvider(pairs []MockPair) *MockDistanceProvider {
	m := make(map[[2]domain.Point]float64, len(pairs))
	for _, p := range pairs {
		m[[2]domain.Point{p.From, p.To}] = p.Cost
	}
	return &MockDistanceProvider{m: m}
}

func (p *MockDistanceProvider) Distance(origin, destination domain.Point) float64 {
	c, ok := p.m[[2]domain.Point{origin, destination}]
	if !ok {
		return math.Inf(1)
	}
	return c
}
