package fit

import (
	"fmt"
	"math"

	"github.com/hashicorp/go-hclog"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/arrhenius/matrix"
	"github.com/katalvlaran/arrhenius/model"
)

const (
	opFit        = "Fit"
	opJacobian   = "Jacobian"
	opCovariance = "Covariance"

	// initialDamping is μ₀ relative to the Marquardt scale diag(JᵀJ).
	initialDamping = 1e-3
)

var (
	eps     = math.Nextafter(1, 2) - 1
	sqrtEps = math.Sqrt(eps)
)

// problem binds a model to the data and counts evaluations.
type problem struct {
	m        model.Model
	times    []float64
	temps    []float64
	observed []float64
	evals    int
}

// residuals fills dst with model − observed at p and reports whether every
// entry is finite. One call is one evaluation.
func (pr *problem) residuals(p [2]float64, dst []float64) bool {
	pr.evals++
	for i := range dst {
		dst[i] = pr.m.Evaluate(pr.times[i], pr.temps[i], p[0], p[1]) - pr.observed[i]
	}
	return allFinite(dst)
}

// jacobian returns the N×2 forward-difference Jacobian at p, given the
// residuals r already evaluated there. Costs two evaluations.
func (pr *problem) jacobian(p [2]float64, r []float64) (*matrix.Dense, error) {
	n := len(r)
	data := make([]float64, 2*n)
	shifted := make([]float64, n)
	for j := 0; j < 2; j++ {
		h := sqrtEps * math.Abs(p[j])
		if h == 0 {
			h = sqrtEps
		}
		q := p
		q[j] += h
		if !pr.residuals(q, shifted) {
			return nil, fmt.Errorf("%s: %w: non-finite model at A=%g, Ea=%g",
				opJacobian, ErrNumericalDivergence, q[0], q[1])
		}
		for i := 0; i < n; i++ {
			data[i*2+j] = (shifted[i] - r[i]) / h
		}
	}
	return matrix.NewDenseFrom(n, 2, data)
}

// solution is the converged state of the solver.
type solution struct {
	params     [2]float64
	residuals  []float64
	ssr        float64
	iterations int
	reason     Reason
}

// levenbergMarquardt minimizes ‖r(p)‖² from o.InitialGuess.
//
// Implementation:
//   - Stage 1: evaluate r at the initial guess; non-finite → divergence.
//   - Stage 2: per iteration build J, A = JᵀJ, g = Jᵀr; refresh the scale D.
//   - Stage 3: solve (A + μ·D)·δ = −g; accept when SSR drops, updating μ by
//     Nielsen's rule, otherwise raise μ and retry.
//   - Stage 4: test the convergence criteria after every trial.
//
// Complexity: O(N) per evaluation; at most o.MaxEvaluations evaluations.
func levenbergMarquardt(pr *problem, o Options, log hclog.Logger) (*solution, error) {
	n := len(pr.observed)

	// Stage 1
	p := o.InitialGuess
	r := make([]float64, n)
	if !pr.residuals(p, r) {
		return nil, fmt.Errorf("%s: %w: non-finite residuals at initial guess A=%g, Ea=%g",
			opFit, ErrNumericalDivergence, p[0], p[1])
	}
	ssr := floats.Dot(r, r)
	trial := make([]float64, n)

	var scale [2]float64
	mu, nu := initialDamping, 2.0
	iter := 0

	done := func(reason Reason) (*solution, error) {
		if !isFinite(p[0]) || !isFinite(p[1]) {
			return nil, fmt.Errorf("%s: %w: non-finite parameters", opFit, ErrNumericalDivergence)
		}
		log.Debug("converged", "A", p[0], "Ea", p[1],
			"ssr", ssr, "iterations", iter, "evaluations", pr.evals, "reason", reason.String())
		return &solution{params: p, residuals: r, ssr: ssr, iterations: iter, reason: reason}, nil
	}
	exhausted := func() error {
		return fmt.Errorf("%s: %w: %d evaluations, last A=%g, Ea=%g, SSR=%g",
			opFit, ErrFitDidNotConverge, pr.evals, p[0], p[1], ssr)
	}

	for iter = 1; ; iter++ {
		if ssr == 0 {
			return done(ReasonZeroResidual)
		}

		// Stage 2
		if pr.evals+2 > o.MaxEvaluations {
			return nil, exhausted()
		}
		J, err := pr.jacobian(p, r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opFit, err)
		}
		A, err := matrix.Gram(J)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opFit, err)
		}
		Jt, err := matrix.Transpose(J)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opFit, err)
		}
		g, err := matrix.MatVec(Jt, r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opFit, err)
		}
		if floats.Norm(g, math.Inf(1)) <= o.GTol {
			return done(ReasonGTol)
		}
		var diag [2]float64
		for j := 0; j < 2; j++ {
			diag[j], _ = A.At(j, j)
			scale[j] = math.Max(scale[j], diag[j])
			if scale[j] == 0 {
				scale[j] = 1
			}
		}

		// Stage 3
		for {
			if pr.evals >= o.MaxEvaluations {
				return nil, exhausted()
			}
			if math.IsInf(mu, 0) {
				return nil, exhausted()
			}
			damped := A.Clone().(*matrix.Dense)
			for j := 0; j < 2; j++ {
				_ = damped.Set(j, j, diag[j]+mu*scale[j])
			}
			step, err := matrix.Solve(damped, []float64{-g[0], -g[1]})
			if err != nil || !allFinite(step) {
				mu, nu = mu*nu, nu*2
				continue
			}

			cand := [2]float64{p[0] + step[0], p[1] + step[1]}
			stepNorm := floats.Norm(step, 2)
			small := stepNorm <= o.XTol*(math.Hypot(p[0], p[1])+o.XTol)

			newSSR := math.Inf(1)
			if pr.residuals(cand, trial) {
				newSSR = floats.Dot(trial, trial)
			}
			predicted := step[0]*(mu*scale[0]*step[0]-g[0]) + step[1]*(mu*scale[1]*step[1]-g[1])
			log.Trace("trial step", "iter", iter, "A", cand[0], "Ea", cand[1],
				"ssr", newSSR, "mu", mu)

			// Stage 4
			if newSSR < ssr {
				actualRel := (ssr - newSSR) / ssr
				predictedRel := predicted / ssr
				rho := (ssr - newSSR) / predicted
				p, ssr = cand, newSSR
				r, trial = trial, r
				mu *= math.Max(1.0/3.0, 1-math.Pow(2*rho-1, 3))
				nu = 2

				switch {
				case ssr == 0:
					return done(ReasonZeroResidual)
				case actualRel <= o.FTol && predictedRel <= o.FTol:
					return done(ReasonFTol)
				case small:
					return done(ReasonXTol)
				}
				break
			}

			mu, nu = mu*nu, nu*2
			if small {
				return done(ReasonXTol)
			}
		}
	}
}

func allFinite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
