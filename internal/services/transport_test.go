package services

import (
	"context"
	"factory-location-planner/internal/adapters/cache"
	"factory-location-planner/internal/adapters/distance"
	"factory-location-planner/internal/adapters/solver"
	"factory-location-planner/internal/domain"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-6

func exampleFactories() []domain.Factory {
	return []domain.Factory{
		domain.NewFactory(1, domain.Point{X: 10, Y: 260}, 400),
		domain.NewFactory(2, domain.Point{X: 130, Y: 120}, 200),
		domain.NewFactory(3, domain.Point{X: 50, Y: 70}, 300),
	}
}

// Eight wholesalers inside the default generation ranges, total demand 782.
func exampleWholesalers() []domain.Wholesaler {
	return []domain.Wholesaler{
		{ID: 1, Location: domain.Point{X: 51, Y: 92}, Demand: 102},
		{ID: 2, Location: domain.Point{X: 14, Y: 71}, Demand: 60},
		{ID: 3, Location: domain.Point{X: 188, Y: 20}, Demand: 80},
		{ID: 4, Location: domain.Point{X: 102, Y: 121}, Demand: 150},
		{ID: 5, Location: domain.Point{X: 214, Y: 87}, Demand: 70},
		{ID: 6, Location: domain.Point{X: 300, Y: 300}, Demand: 110},
		{ID: 7, Location: domain.Point{X: 87, Y: 290}, Demand: 90},
		{ID: 8, Location: domain.Point{X: 330, Y: 150}, Demand: 120},
	}
}

func solveExample(t *testing.T, factories []domain.Factory, wholesalers []domain.Wholesaler) *domain.TransportResult {
	t.Helper()
	res, err := SolveTransport(context.Background(), factories, wholesalers,
		distance.NewEuclidean(), solver.NewSimplexSolver(0))
	require.NoError(t, err)
	return res
}

func TestSolveTransportSatisfiesConstraints(t *testing.T) {
	factories, wholesalers := exampleFactories(), exampleWholesalers()
	res := solveExample(t, factories, wholesalers)

	require.NoError(t, res.Plan.Verify(domain.Capacities(factories), domain.Demands(wholesalers), eps))
	assert.False(t, math.IsInf(res.Cost, 0))
	assert.Greater(t, res.Cost, 0.0)

	// Recompute the objective from first principles.
	want := 0.0
	for i, f := range factories {
		for j, w := range wholesalers {
			d := math.Hypot(f.Location.X-w.Location.X, f.Location.Y-w.Location.Y)
			want += d * res.Plan.At(i, j)
		}
	}
	assert.InDelta(t, want, res.Cost, eps)
}

func TestSolveTransportZeroCapacityDuplicateKeepsCost(t *testing.T) {
	factories, wholesalers := exampleFactories(), exampleWholesalers()
	base := solveExample(t, factories, wholesalers)

	dup := domain.WithCandidate(factories, factories[0].Location, 0)
	withDup := solveExample(t, dup, wholesalers)

	assert.InDelta(t, base.Cost, withDup.Cost, eps)
	assert.InDelta(t, 0.0, withDup.Plan.Outbound(3), eps)
}

func TestSolveTransportAllCapacityTight(t *testing.T) {
	factories := exampleFactories()
	wholesalers := exampleWholesalers()
	// Raise demand so that it equals total capacity (900).
	wholesalers[7].Demand += 900 - domain.TotalDemand(wholesalers)
	require.Equal(t, 900.0, domain.TotalDemand(wholesalers))

	res := solveExample(t, factories, wholesalers)
	for i, f := range factories {
		assert.InDelta(t, f.Capacity, res.Plan.Outbound(i), eps, "factory %d", i)
	}
}

func TestSolveTransportInfeasible(t *testing.T) {
	wholesalers := exampleWholesalers()
	wholesalers[0].Demand = 500

	_, err := SolveTransport(context.Background(), exampleFactories(), wholesalers,
		distance.NewEuclidean(), solver.NewSimplexSolver(0))
	require.ErrorIs(t, err, domain.ErrInfeasible)
}

func TestSolveTransportRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	p, s := distance.NewEuclidean(), solver.NewSimplexSolver(0)

	_, err := SolveTransport(ctx, nil, exampleWholesalers(), p, s)
	assert.ErrorIs(t, err, domain.ErrEmptySupply)

	_, err = SolveTransport(ctx, exampleFactories(), nil, p, s)
	assert.ErrorIs(t, err, domain.ErrEmptyDemand)

	bad := exampleWholesalers()
	bad[2].Demand = -1
	_, err = SolveTransport(ctx, exampleFactories(), bad, p, s)
	assert.ErrorIs(t, err, domain.ErrNegativeDemand)
}

func TestSolveTransportWithMockProvider(t *testing.T) {
	hubA, hubB := domain.Point{X: 0}, domain.Point{X: 100}
	w1, w2 := domain.Point{X: 10}, domain.Point{X: 90}

	provider := distance.NewMockDistanceProvider([]distance.MockPair{
		{From: hubA, To: w1, Cost: 1},
		{From: hubA, To: w2, Cost: 9},
		{From: hubB, To: w1, Cost: 9},
		{From: hubB, To: w2, Cost: 1},
	})
	factories := []domain.Factory{
		domain.NewFactory(1, hubA, 3),
		domain.NewFactory(2, hubB, 10),
	}
	wholesalers := []domain.Wholesaler{
		{ID: 1, Location: w1, Demand: 5},
		{ID: 2, Location: w2, Demand: 5},
	}

	res, err := SolveTransport(context.Background(), factories, wholesalers, provider, solver.NewSimplexSolver(0))
	require.NoError(t, err)

	assert.InDelta(t, 26.0, res.Cost, eps)
	assert.InDelta(t, 3.0, res.Plan.At(0, 0), eps)
	assert.InDelta(t, 2.0, res.Plan.At(1, 0), eps)
}

func TestBuildCostMatrix(t *testing.T) {
	factories, wholesalers := exampleFactories(), exampleWholesalers()

	plain := BuildCostMatrix(distance.NewEuclidean(), factories, wholesalers)
	r, c := plain.Dims()
	require.Equal(t, 3, r)
	require.Equal(t, 8, c)
	assert.InDelta(t, math.Hypot(10-51, 260-92), plain.At(0, 0), 1e-9)
	assert.InDelta(t, math.Hypot(50-330, 70-150), plain.At(2, 7), 1e-9)

	// Batched lookups through the row cache give the same matrix.
	rows := cache.NewDistanceRowCache(distance.NewEuclidean(), nil, 0)
	cached := BuildCostMatrix(rows, factories, wholesalers)
	again := BuildCostMatrix(rows, factories, wholesalers)
	assert.Equal(t, plain.RawMatrix().Data, cached.RawMatrix().Data)
	assert.Equal(t, plain.RawMatrix().Data, again.RawMatrix().Data)

	hits, misses := rows.Stats()
	assert.Equal(t, int64(3), hits)
	assert.Equal(t, int64(3), misses)
}
