package fit

import (
	"math"

	"github.com/katalvlaran/arrhenius/model"
)

// Reason names the criterion that stopped the solver.
type Reason int

const (
	// ReasonZeroResidual: the model reproduces the data exactly.
	ReasonZeroResidual Reason = iota + 1
	// ReasonFTol: relative SSR reduction fell below FTol.
	ReasonFTol
	// ReasonXTol: the step became small relative to the parameters.
	ReasonXTol
	// ReasonGTol: the gradient vanished to within GTol.
	ReasonGTol
)

func (r Reason) String() string {
	switch r {
	case ReasonZeroResidual:
		return "zero residual"
	case ReasonFTol:
		return "relative reduction below ftol"
	case ReasonXTol:
		return "step below xtol"
	case ReasonGTol:
		return "gradient below gtol"
	default:
		return "unknown"
	}
}

// Result is the outcome of one successful fit. It is created once and
// never mutated; Residuals returns a copy.
type Result struct {
	Model            model.Model
	Prefactor        float64 // A
	ActivationEnergy float64 // Ea, kcal/mol

	// Covariance is symmetric over (A, Ea). All entries are +Inf when
	// CovarianceValid is false.
	Covariance      [2][2]float64
	CovarianceValid bool
	// CovarianceRank is the numerical rank of JᵀJ at the solution; below 2
	// A and Ea are not separately identifiable and CovarianceValid is false.
	CovarianceRank int

	Evaluations      int
	Iterations       int
	SSR              float64
	DegreesOfFreedom int
	Reason           Reason

	residuals []float64
}

// VarPrefactor returns Var(A).
func (r *Result) VarPrefactor() float64 { return r.Covariance[0][0] }

// VarActivationEnergy returns Var(Ea).
func (r *Result) VarActivationEnergy() float64 { return r.Covariance[1][1] }

// Covariance01 returns Cov(A, Ea) = Cov(Ea, A).
func (r *Result) Covariance01() float64 { return r.Covariance[0][1] }

// StdErr returns the one-sigma standard errors of A and Ea.
func (r *Result) StdErr() (sA, sEa float64) {
	return math.Sqrt(r.VarPrefactor()), math.Sqrt(r.VarActivationEnergy())
}

// Residuals returns model − observed at the solution.
func (r *Result) Residuals() []float64 { return append([]float64(nil), r.residuals...) }

// Physical reports whether the fitted prefactor is positive. A prefactor
// at or below zero gives a rate constant with no physical meaning, which
// happens when the solver settles in a spurious minimum.
func (r *Result) Physical() bool { return r.Prefactor > 0 }

// Predict evaluates the fitted model at (t, T).
func (r *Result) Predict(t, temperature float64) float64 {
	return r.Model.Evaluate(t, temperature, r.Prefactor, r.ActivationEnergy)
}

func infiniteCovariance() [2][2]float64 {
	inf := math.Inf(1)
	return [2][2]float64{{inf, inf}, {inf, inf}}
}
