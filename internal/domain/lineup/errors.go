package lineup

import "errors"

// Solver errors. None of these escape Optimize; they are reported as the
// fallback reason on a greedy result.
var (
	ErrInfeasible      = errors.New("lineup problem infeasible")
	ErrSolverFailed    = errors.New("solver failed")
	ErrSolverPanic     = errors.New("solver panicked")
	ErrNonIntegral     = errors.New("solver returned a fractional assignment")
	ErrInvalidSolution = errors.New("solver returned an invalid assignment")
)
