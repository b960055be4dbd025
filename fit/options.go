package fit

import (
	"math"

	"github.com/hashicorp/go-hclog"
)

// Solver defaults.
const (
	DefaultInitialPrefactor        = 100.0
	DefaultInitialActivationEnergy = 10.0
	DefaultMaxEvaluations          = 100000
	DefaultFTol                    = 1.49012e-8
	DefaultXTol                    = 1.49012e-8
	DefaultGTol                    = 0.0
)

// Options configures a fit.
//
// Fields:
//   - InitialGuess:     starting (A, Ea).
//   - MaxEvaluations:   cap on model evaluations over the data set, Jacobian columns included.
//   - FTol, XTol, GTol: convergence tolerances, see the package doc.
//   - Logger:           receives iteration traces and warnings.
type Options struct {
	InitialGuess   [2]float64
	MaxEvaluations int
	FTol           float64
	XTol           float64
	GTol           float64
	Logger         hclog.Logger
}

// Option represents a functional option for configuring Fit.
type Option func(*Options)

// DefaultOptions returns the solver defaults.
//
// Defaults:
//   - InitialGuess:   (100, 10).
//   - MaxEvaluations: 100000.
//   - FTol, XTol:     1.49012e-8.
//   - GTol:           0.
//   - Logger:         hclog.NewNullLogger().
func DefaultOptions() Options {
	return Options{
		InitialGuess:   [2]float64{DefaultInitialPrefactor, DefaultInitialActivationEnergy},
		MaxEvaluations: DefaultMaxEvaluations,
		FTol:           DefaultFTol,
		XTol:           DefaultXTol,
		GTol:           DefaultGTol,
		Logger:         hclog.NewNullLogger(),
	}
}

// WithInitialGuess sets the starting point (A0, Ea0).
// Panics with ErrBadInitialGuess on NaN or ±Inf.
func WithInitialGuess(prefactor, activationEnergy float64) Option {
	if !isFinite(prefactor) || !isFinite(activationEnergy) {
		panic(ErrBadInitialGuess.Error())
	}
	return func(o *Options) {
		o.InitialGuess = [2]float64{prefactor, activationEnergy}
	}
}

// WithMaxEvaluations caps the number of model evaluations.
// Panics with ErrBadMaxEvaluations when n ≤ 0.
func WithMaxEvaluations(n int) Option {
	if n <= 0 {
		panic(ErrBadMaxEvaluations.Error())
	}
	return func(o *Options) {
		o.MaxEvaluations = n
	}
}

// WithTolerances overrides the three convergence tolerances.
// Panics with ErrBadTolerance on negative or NaN values.
func WithTolerances(ftol, xtol, gtol float64) Option {
	for _, v := range [...]float64{ftol, xtol, gtol} {
		if math.IsNaN(v) || v < 0 {
			panic(ErrBadTolerance.Error())
		}
	}
	return func(o *Options) {
		o.FTol, o.XTol, o.GTol = ftol, xtol, gtol
	}
}

// WithLogger routes solver logs to l; nil restores the null logger.
func WithLogger(l hclog.Logger) Option {
	return func(o *Options) {
		if l == nil {
			l = hclog.NewNullLogger()
		}
		o.Logger = l
	}
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
