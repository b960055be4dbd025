package fit

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/katalvlaran/arrhenius/matrix"
	"github.com/katalvlaran/arrhenius/model"
	"github.com/katalvlaran/arrhenius/observation"
)

// Fit estimates (A, Ea) for model m against observed progress fractions.
// times, temps and progress must be non-empty and of equal length.
//
// Errors: ErrInvalidObservationSet, ErrFitDidNotConverge,
// ErrNumericalDivergence.
func Fit(m model.Model, times, temps, progress []float64, opts ...Option) (*Result, error) {
	n := len(times)
	if n == 0 {
		return nil, fmt.Errorf("%s: %w: no records", opFit, ErrInvalidObservationSet)
	}
	if len(temps) != n || len(progress) != n {
		return nil, fmt.Errorf("%s: %w: %d times, %d temperatures, %d progress values",
			opFit, ErrInvalidObservationSet, n, len(temps), len(progress))
	}
	if m.Law == nil {
		return nil, fmt.Errorf("%s: %w: model has no law", opFit, model.ErrUnknownModel)
	}

	o := buildOptions(opts)
	log := o.Logger.With("model", m.Name)

	pr := &problem{m: m, times: times, temps: temps, observed: progress}
	sol, err := levenbergMarquardt(pr, o, log)
	if err != nil {
		log.Debug("fit failed", "error", err)
		return nil, err
	}

	res := &Result{
		Model:            m,
		Prefactor:        sol.params[0],
		ActivationEnergy: sol.params[1],
		Iterations:       sol.iterations,
		SSR:              sol.ssr,
		DegreesOfFreedom: n - 2,
		Reason:           sol.reason,
		residuals:        sol.residuals,
	}
	res.Covariance, res.CovarianceRank, res.CovarianceValid = covariance(pr, sol, log)
	res.Evaluations = pr.evals
	if !res.Physical() {
		log.Warn("fitted prefactor is not positive", "A", res.Prefactor, "Ea", res.ActivationEnergy)
	}

	return res, nil
}

// FitSet is Fit over an Observation Set.
func FitSet(m model.Model, set *observation.Set, opts ...Option) (*Result, error) {
	if set == nil {
		return nil, fmt.Errorf("%s: %w: nil set", opFit, ErrInvalidObservationSet)
	}
	return Fit(m, set.Times(), set.Temperatures(), set.Progress(), opts...)
}

// covariance returns (JᵀJ)⁻¹·SSR/(N−2) at the solution, the numerical rank
// of JᵀJ and whether the covariance is usable. Rank is measured on the
// eigenvalues; below full rank, or with no degrees of freedom, every entry
// is +Inf and the covariance is unusable.
func covariance(pr *problem, sol *solution, log hclog.Logger) ([2][2]float64, int, bool) {
	n := len(sol.residuals)
	if n <= 2 {
		log.Warn("covariance of the parameters could not be estimated",
			"reason", "no degrees of freedom", "records", n)
		return infiniteCovariance(), 0, false
	}

	fail := func(err error) ([2][2]float64, int, bool) {
		log.Warn("covariance of the parameters could not be estimated",
			"error", fmt.Errorf("%s: %w", opCovariance, err))
		return infiniteCovariance(), 0, false
	}

	J, err := pr.jacobian(sol.params, sol.residuals)
	if err != nil {
		return fail(err)
	}
	A, err := matrix.Gram(J)
	if err != nil {
		return fail(err)
	}
	rcond := eps * float64(n)
	pinv, rank, err := matrix.PseudoInverseSym(A, rcond*rcond)
	if err != nil {
		return fail(err)
	}
	if rank < 2 {
		log.Warn("covariance of the parameters could not be estimated",
			"reason", "parameters are not separately identifiable", "rank", rank)
		return infiniteCovariance(), rank, false
	}
	inv, err := matrix.Inverse(A)
	if err != nil {
		inv = pinv
	}

	s2 := sol.ssr / float64(n-2)
	var cov [2][2]float64
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			v, _ := inv.At(i, j)
			cov[i][j] = v * s2
			if !isFinite(cov[i][j]) {
				return fail(matrix.ErrNaNInf)
			}
		}
	}
	cov[1][0] = cov[0][1]
	return cov, rank, true
}
