package fit

import (
	"errors"

	"github.com/katalvlaran/arrhenius/observation"
)

// Sentinel errors returned by the fitting engine.
var (
	// ErrInvalidObservationSet is re-exported so callers of Fit can match
	// input errors without importing the observation package.
	ErrInvalidObservationSet = observation.ErrInvalidObservationSet

	// ErrFitDidNotConverge indicates that the evaluation budget ran out
	// before any convergence criterion was met.
	ErrFitDidNotConverge = errors.New("fit: optimizer did not converge within the evaluation budget")

	// ErrNumericalDivergence indicates non-finite residuals at the initial
	// guess, a non-finite Jacobian, or non-finite final parameters.
	ErrNumericalDivergence = errors.New("fit: numerical divergence")

	// ErrBadInitialGuess is the panic value of WithInitialGuess for
	// non-finite parameters.
	ErrBadInitialGuess = errors.New("fit: initial guess must be finite")

	// ErrBadMaxEvaluations is the panic value of WithMaxEvaluations for a
	// non-positive budget.
	ErrBadMaxEvaluations = errors.New("fit: MaxEvaluations must be positive")

	// ErrBadTolerance is the panic value of WithTolerances for negative or
	// NaN tolerances.
	ErrBadTolerance = errors.New("fit: tolerances must be non-negative")
)
