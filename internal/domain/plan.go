package domain

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Represents the quantities shipped on every factory→wholesaler arc.
// Row i is supply point i and column j is demand point j, in the same order
// as the slices the plan was solved for.
type ShipmentPlan struct {
	q *mat.Dense
}

// NewShipmentPlan returns an all-zero plan. Both dimensions must be positive.
func NewShipmentPlan(factories, wholesalers int) *ShipmentPlan {
	return &ShipmentPlan{q: mat.NewDense(factories, wholesalers, nil)}
}

// ShipmentPlanFromMatrix copies m into a new plan.
func ShipmentPlanFromMatrix(m mat.Matrix) *ShipmentPlan {
	return &ShipmentPlan{q: mat.DenseCopyOf(m)}
}

func (p *ShipmentPlan) Dims() (factories, wholesalers int) { return p.q.Dims() }

func (p *ShipmentPlan) At(i, j int) float64 { return p.q.At(i, j) }

func (p *ShipmentPlan) Set(i, j int, v float64) { p.q.Set(i, j, v) }

// Matrix exposes the plan for read-only consumers such as formatters.
func (p *ShipmentPlan) Matrix() mat.Matrix { return p.q }

// Total quantity delivered to wholesaler j.
func (p *ShipmentPlan) Inbound(j int) float64 {
	return floats.Sum(mat.Col(nil, j, p.q))
}

// Total quantity shipped by factory i.
func (p *ShipmentPlan) Outbound(i int) float64 {
	return floats.Sum(p.q.RawRowView(i))
}

// Cost returns Σ costs[i][j] × quantity[i][j]. costs must have the plan's shape.
func (p *ShipmentPlan) Cost(costs mat.Matrix) float64 {
	var weighted mat.Dense
	weighted.MulElem(p.q, costs)
	return mat.Sum(&weighted)
}

// Rows copies the plan into a slice of rows.
func (p *ShipmentPlan) Rows() [][]float64 {
	r, _ := p.q.Dims()
	out := make([][]float64, r)
	for i := range r {
		out[i] = append([]float64(nil), p.q.RawRowView(i)...)
	}
	return out
}

// A single active arc of a plan.
type Route struct {
	Factory    int
	Wholesaler int
	Quantity   float64
}

// Routes lists arcs carrying more than eps, in row-major order.
func (p *ShipmentPlan) Routes(eps float64) []Route {
	r, c := p.q.Dims()
	routes := []Route{}
	for i := range r {
		for j := range c {
			if q := p.q.At(i, j); q > eps {
				routes = append(routes, Route{Factory: i, Wholesaler: j, Quantity: q})
			}
		}
	}
	return routes
}

// Verify checks the shipment invariants: every quantity is non-negative, every
// wholesaler receives exactly its demand and no factory ships more than its
// capacity. Comparisons allow eps relative to the magnitude involved.
func (p *ShipmentPlan) Verify(capacities, demands []float64, eps float64) error {
	r, c := p.q.Dims()
	if r != len(capacities) || c != len(demands) {
		return fmt.Errorf("verify plan: shape %dx%d does not match %d factories and %d wholesalers",
			r, c, len(capacities), len(demands))
	}

	for i := range r {
		for j := range c {
			if q := p.q.At(i, j); q < -eps || math.IsNaN(q) {
				return fmt.Errorf("verify plan: negative quantity %g on arc %d->%d", q, i, j)
			}
		}
	}

	for j, d := range demands {
		if in := p.Inbound(j); math.Abs(in-d) > eps*(1+math.Abs(d)) {
			return fmt.Errorf("verify plan: wholesaler %d receives %g, demand %g", j, in, d)
		}
	}

	for i, cp := range capacities {
		if out := p.Outbound(i); out > cp+eps*(1+math.Abs(cp)) {
			return fmt.Errorf("verify plan: factory %d ships %g, capacity %g", i, out, cp)
		}
	}

	return nil
}

// Output of one transportation LP solve.
// Costs is the distance matrix the plan was optimised against.
type TransportResult struct {
	Cost  float64
	Plan  *ShipmentPlan
	Costs *mat.Dense
}
