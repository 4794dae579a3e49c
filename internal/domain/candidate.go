package domain

// Outcome of placing the new factory at one grid location.
// Factories holds the supply set in plan row order; the candidate is last.
type CandidateResult struct {
	Location  Point
	Cost      float64
	Plan      *ShipmentPlan
	Factories []Factory
}

// Objective value of a single evaluated grid cell.
type CellCost struct {
	Location Point
	Cost     float64
}
