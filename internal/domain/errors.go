package domain

import "errors"

var (
	// ErrInfeasible means total capacity cannot cover total demand.
	ErrInfeasible = errors.New("transport problem is infeasible")
	// ErrSolverFailed covers numeric failures of the LP solver and solutions
	// that break the shipment constraints.
	ErrSolverFailed = errors.New("transport solver failed")

	ErrEmptySupply      = errors.New("no supply points")
	ErrEmptyDemand      = errors.New("no demand points")
	ErrNegativeCapacity = errors.New("capacity must be non-negative")
	ErrNegativeDemand   = errors.New("demand must be non-negative")
	ErrInvalidLocation  = errors.New("location must be finite")
	ErrInvalidGrid      = errors.New("invalid search grid")

	// ErrInsufficientCandidateCapacity means the candidate factory could not
	// make up the gap between fixed capacity and total demand.
	ErrInsufficientCandidateCapacity = errors.New("candidate capacity cannot cover demand shortfall")
)
