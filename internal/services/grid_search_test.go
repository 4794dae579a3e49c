package services

import (
	"context"
	"factory-location-planner/internal/adapters/cache"
	"factory-location-planner/internal/adapters/distance"
	"factory-location-planner/internal/adapters/solver"
	"factory-location-planner/internal/domain"
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// Coarse version of the default 0..360 x 0..325 search.
func coarseRequest(workers int) GridSearchRequest {
	return GridSearchRequest{
		Factories:         exampleFactories(),
		Wholesalers:       exampleWholesalers(),
		X:                 domain.GridRange{Min: 0, Max: 360, Step: 60},
		Y:                 domain.GridRange{Min: 0, Max: 325, Step: 65},
		CandidateCapacity: 900,
		Workers:           workers,
	}
}

func TestSearchGridBestIsMinimumOverCells(t *testing.T) {
	res, err := SearchGrid(context.Background(), coarseRequest(1),
		distance.NewEuclidean(), solver.NewSimplexSolver(0))
	require.NoError(t, err)
	require.NotNil(t, res.Best)

	require.Len(t, res.XValues, 7)
	require.Len(t, res.YValues, 6)
	require.Len(t, res.Cells, 42)

	minCost := math.Inf(1)
	firstMin := -1
	for i, c := range res.Cells {
		if c.Cost < minCost {
			minCost = c.Cost
			firstMin = i
		}
	}
	assert.Equal(t, minCost, res.Best.Cost)
	assert.Equal(t, res.Cells[firstMin].Location, res.Best.Location)
	for _, c := range res.Cells {
		assert.GreaterOrEqual(t, c.Cost, res.Best.Cost)
	}

	// Cells are in grid order, x outer.
	assert.Equal(t, domain.Point{X: 0, Y: 0}, res.Cells[0].Location)
	assert.Equal(t, domain.Point{X: 0, Y: 65}, res.Cells[1].Location)
	assert.Equal(t, domain.Point{X: 60, Y: 0}, res.Cells[res.Index(1, 0)].Location)
	assert.Equal(t, domain.Point{X: 360, Y: 325}, res.Cells[len(res.Cells)-1].Location)
}

func TestSearchGridBestPlanIsFeasible(t *testing.T) {
	req := coarseRequest(1)
	res, err := SearchGrid(context.Background(), req, distance.NewEuclidean(), solver.NewSimplexSolver(0))
	require.NoError(t, err)

	best := res.Best
	require.Len(t, best.Factories, 4)
	assert.Equal(t, best.Location, best.Factories[3].Location)
	assert.Equal(t, 900.0, best.Factories[3].Capacity)
	require.NoError(t, best.Plan.Verify(domain.Capacities(best.Factories), domain.Demands(req.Wholesalers), eps))
}

func TestSearchGridNotWorseThanBaseline(t *testing.T) {
	base := solveExample(t, exampleFactories(), exampleWholesalers())

	res, err := SearchGrid(context.Background(), coarseRequest(1),
		distance.NewEuclidean(), solver.NewSimplexSolver(0))
	require.NoError(t, err)

	assert.LessOrEqual(t, res.Best.Cost, base.Cost+eps)
}

func TestSearchGridParallelMatchesSequential(t *testing.T) {
	seq, err := SearchGrid(context.Background(), coarseRequest(1),
		distance.NewEuclidean(), solver.NewSimplexSolver(0))
	require.NoError(t, err)

	rows := cache.NewDistanceRowCache(distance.NewEuclidean(), nil, 0)
	par, err := SearchGrid(context.Background(), coarseRequest(4), rows, solver.NewSimplexSolver(0))
	require.NoError(t, err)

	if diff := cmp.Diff(seq.Cells, par.Cells); diff != "" {
		t.Fatalf("cell costs differ (-seq +par):\n%s", diff)
	}
	assert.Equal(t, seq.Best.Location, par.Best.Location)
	assert.Equal(t, seq.Best.Cost, par.Best.Cost)
	assert.Equal(t, seq.Best.Plan.Rows(), par.Best.Plan.Rows())
}

// lastRowSolver ships every demand from the last supply row, which makes the
// cost of a cell depend only on the candidate location.
type lastRowSolver struct{}

func (s lastRowSolver) SolveTransport(ctx context.Context, costs mat.Matrix, capacities, demands []float64) (*domain.ShipmentPlan, error) {
	n := len(capacities)
	q := mat.NewDense(n, len(demands), nil)
	q.SetRow(n-1, demands)
	return domain.ShipmentPlanFromMatrix(q), nil
}

func TestSearchGridTieKeepsFirstCell(t *testing.T) {
	for _, workers := range []int{1, 2, 3} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			req := GridSearchRequest{
				Factories:         []domain.Factory{domain.NewFactory(1, domain.Point{X: 500, Y: 500}, 0)},
				Wholesalers:       []domain.Wholesaler{{ID: 1, Location: domain.Point{X: 5, Y: 0}, Demand: 10}},
				X:                 domain.GridRange{Min: 0, Max: 10, Step: 10},
				Y:                 domain.GridRange{Min: 0, Max: 0, Step: 1},
				CandidateCapacity: 10,
				Workers:           workers,
			}

			res, err := SearchGrid(context.Background(), req, distance.NewEuclidean(), lastRowSolver{})
			require.NoError(t, err)

			require.Len(t, res.Cells, 2)
			assert.Equal(t, res.Cells[0].Cost, res.Cells[1].Cost)
			assert.Equal(t, domain.Point{X: 0, Y: 0}, res.Best.Location)
			assert.Equal(t, 50.0, res.Best.Cost)
		})
	}
}

// failingSolver reports infeasibility for one location.
type failingSolver struct {
	inner lastRowSolver
	at    float64
	calls int
}

func (s *failingSolver) SolveTransport(ctx context.Context, costs mat.Matrix, capacities, demands []float64) (*domain.ShipmentPlan, error) {
	s.calls++
	n, _ := costs.Dims()
	// The candidate sits on the last row; its distance to the single
	// wholesaler at the origin identifies the cell.
	if costs.At(n-1, 0) == s.at {
		return nil, domain.ErrInfeasible
	}
	return s.inner.SolveTransport(ctx, costs, capacities, demands)
}

func TestSearchGridInfeasibleCellIsFatal(t *testing.T) {
	req := GridSearchRequest{
		Factories:         []domain.Factory{domain.NewFactory(1, domain.Point{X: 0, Y: 0}, 100)},
		Wholesalers:       []domain.Wholesaler{{ID: 1, Location: domain.Point{}, Demand: 10}},
		X:                 domain.GridRange{Min: 0, Max: 4, Step: 1},
		Y:                 domain.GridRange{Min: 0, Max: 0, Step: 1},
		CandidateCapacity: 10,
		Workers:           1,
	}
	s := &failingSolver{at: 2}

	res, err := SearchGrid(context.Background(), req, distance.NewEuclidean(), s)
	require.ErrorIs(t, err, domain.ErrInfeasible)
	assert.Nil(t, res)
	assert.Contains(t, err.Error(), "(2, 0)")
	assert.Equal(t, 3, s.calls, "search stops at the failing cell")
}

func TestSearchGridValidatesCandidateCapacity(t *testing.T) {
	req := coarseRequest(1)
	// Fixed capacity 900; demand raised to 1000 needs at least 100 more.
	req.Wholesalers[0].Demand += 1000 - domain.TotalDemand(req.Wholesalers)
	req.CandidateCapacity = 99

	_, err := SearchGrid(context.Background(), req, distance.NewEuclidean(), solver.NewSimplexSolver(0))
	require.ErrorIs(t, err, domain.ErrInsufficientCandidateCapacity)
	assert.True(t, IsConfigError(err))

	req.CandidateCapacity = 100
	res, err := SearchGrid(context.Background(), req, distance.NewEuclidean(), solver.NewSimplexSolver(0))
	require.NoError(t, err)
	assert.NotNil(t, res.Best)
}

func TestSearchGridRejectsBadGrid(t *testing.T) {
	req := coarseRequest(1)
	req.Y.Step = 0

	_, err := SearchGrid(context.Background(), req, distance.NewEuclidean(), solver.NewSimplexSolver(0))
	require.ErrorIs(t, err, domain.ErrInvalidGrid)
	assert.True(t, IsConfigError(err))
}

func TestSearchGridHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := SearchGrid(ctx, coarseRequest(2), distance.NewEuclidean(), solver.NewSimplexSolver(0))
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, IsConfigError(err))
}

func TestCandidateShortfall(t *testing.T) {
	factories := exampleFactories()
	wholesalers := exampleWholesalers()
	assert.Equal(t, 0.0, CandidateShortfall(factories, wholesalers))

	wholesalers[0].Demand += 200
	assert.Equal(t, 82.0, CandidateShortfall(factories, wholesalers))
}
