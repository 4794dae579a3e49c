package solver

import (
	"context"
	"errors"
	"factory-location-planner/internal/domain"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// DefaultTolerance is used when a SimplexSolver is built with tol <= 0.
const DefaultTolerance = 1e-9

// reducedCostTol is the optimality threshold handed to lp.Simplex.
const reducedCostTol = 1e-10

// Transportation LP solver backed by gonum's dense simplex.
//
// The problem is rewritten in standard form (A·x = b, x >= 0):
//
//	columns: x[0][0] .. x[n-1][m-1], then one slack s[i] per factory
//	rows:    Σ_i x[i][j]        = demand[j]    (m rows)
//	         Σ_j x[i][j] + s[i] = capacity[i]  (n rows)
//
// The slack columns make the capacity rows independent of each other and of
// the demand rows, so A always has full row rank.
type SimplexSolver struct {
	tol float64
}

func NewSimplexSolver(tol float64) *SimplexSolver {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	return &SimplexSolver{tol: tol}
}

func (s *SimplexSolver) Tolerance() float64 { return s.tol }

// SolveTransport solves the LP for the given cost matrix.
// Quantities within the tolerance of zero are snapped to zero and the plan is
// checked against every constraint before it is returned.
func (s *SimplexSolver) SolveTransport(
	ctx context.Context,
	costs mat.Matrix,
	capacities, demands []float64,
) (*domain.ShipmentPlan, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("simplex solve: %w", err)
	}

	n, m := len(capacities), len(demands)
	if n == 0 {
		return nil, fmt.Errorf("simplex solve: %w", domain.ErrEmptySupply)
	}
	if m == 0 {
		return nil, fmt.Errorf("simplex solve: %w", domain.ErrEmptyDemand)
	}
	if r, c := costs.Dims(); r != n || c != m {
		return nil, fmt.Errorf("simplex solve: cost matrix is %dx%d, want %dx%d", r, c, n, m)
	}
	for i := range n {
		for j := range m {
			if v := costs.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("simplex solve: cost %g on arc %d->%d is not finite", v, i, j)
			}
		}
	}

	// A transportation problem is feasible exactly when capacity covers
	// demand, so infeasibility is decided here rather than by the simplex.
	supply, need := floats.Sum(capacities), floats.Sum(demands)
	if supply < need-s.tol*(1+need) {
		return nil, fmt.Errorf("simplex solve: capacity %g below demand %g: %w", supply, need, domain.ErrInfeasible)
	}

	c, A, b := standardForm(costs, capacities, demands)
	_, x, err := lp.Simplex(c, A, b, reducedCostTol, nil)
	if err != nil {
		if errors.Is(err, lp.ErrInfeasible) {
			return nil, fmt.Errorf("simplex solve: %w", domain.ErrInfeasible)
		}
		return nil, fmt.Errorf("simplex solve: %w: %v", domain.ErrSolverFailed, err)
	}

	// The first n*m entries of x are the shipments in row-major order.
	q := x[:n*m]
	for k, v := range q {
		if math.Abs(v) <= s.tol {
			q[k] = 0
		}
	}
	plan := domain.ShipmentPlanFromMatrix(mat.NewDense(n, m, q))

	if err := plan.Verify(capacities, demands, s.tol); err != nil {
		return nil, fmt.Errorf("simplex solve: %w: %v", domain.ErrSolverFailed, err)
	}

	return plan, nil
}

// standardForm builds c, A and b for lp.Simplex. See SimplexSolver for the layout.
func standardForm(costs mat.Matrix, capacities, demands []float64) ([]float64, *mat.Dense, []float64) {
	n, m := len(capacities), len(demands)
	vars := n*m + n
	rows := m + n

	c := make([]float64, vars)
	A := mat.NewDense(rows, vars, nil)
	b := make([]float64, rows)

	for i := range n {
		for j := range m {
			col := i*m + j
			c[col] = costs.At(i, j)
			A.Set(j, col, 1)   // demand row j
			A.Set(m+i, col, 1) // capacity row i
		}
		A.Set(m+i, n*m+i, 1) // slack
	}

	copy(b, demands)
	copy(b[m:], capacities)

	return c, A, b
}
