package fit_test

import (
	"bytes"
	"errors"
	"math"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/arrhenius/fit"
	"github.com/katalvlaran/arrhenius/model"
	"github.com/katalvlaran/arrhenius/observation"
)

const (
	trueA  = 50.0
	trueEa = 15.0
)

// synthetic returns noise-free data for m over four temperatures.
func synthetic(t *testing.T, m model.Model) (times, temps, progress []float64) {
	t.Helper()
	for _, T := range []float64{550, 600, 650, 700} {
		for ts := 0.0; ts <= 2000; ts += 250 {
			times = append(times, ts)
			temps = append(temps, T)
			progress = append(progress, m.Evaluate(ts, T, trueA, trueEa))
		}
	}
	return times, temps, progress
}

func firstOrder(t *testing.T) model.Model {
	t.Helper()
	m, err := model.Lookup(model.FirstOrder)
	require.NoError(t, err)
	return m
}

// TestZeroNoiseRoundTrip recovers the generating parameters exactly.
func TestZeroNoiseRoundTrip(t *testing.T) {
	m := firstOrder(t)
	times, temps, progress := synthetic(t, m)

	res, err := fit.Fit(m, times, temps, progress, fit.WithInitialGuess(45, 14.8))
	require.NoError(t, err)
	assert.InEpsilon(t, trueA, res.Prefactor, 1e-4)
	assert.InEpsilon(t, trueEa, res.ActivationEnergy, 1e-4)
	assert.True(t, res.CovarianceValid)
	assert.InDelta(t, 0, res.VarPrefactor(), 1e-8)
	assert.InDelta(t, 0, res.VarActivationEnergy(), 1e-8)
	assert.InDelta(t, 0, res.Covariance01(), 1e-8)
	assert.Equal(t, res.Covariance[0][1], res.Covariance[1][0])
	assert.Equal(t, len(times)-2, res.DegreesOfFreedom)
	assert.Positive(t, res.Evaluations)
	assert.Positive(t, res.Iterations)
	assert.NotEqual(t, "unknown", res.Reason.String())
	assert.Len(t, res.Residuals(), len(times))
}

// TestDefaultGuessRoundTrip recovers first-order parameters from the
// default starting point.
func TestDefaultGuessRoundTrip(t *testing.T) {
	m := firstOrder(t)
	times, temps, progress := synthetic(t, m)

	res, err := fit.Fit(m, times, temps, progress)
	require.NoError(t, err)
	assert.InEpsilon(t, trueA, res.Prefactor, 1e-4)
	assert.InEpsilon(t, trueEa, res.ActivationEnergy, 1e-4)
	assert.True(t, res.CovarianceValid)
	assert.Equal(t, 2, res.CovarianceRank)
	assert.True(t, res.Physical())
}

// TestNoisyRoundTrip recovers the parameters within five standard errors.
func TestNoisyRoundTrip(t *testing.T) {
	m := firstOrder(t)
	times, temps, progress := synthetic(t, m)
	noise := distuv.Normal{Mu: 0, Sigma: 0.005, Src: rand.NewPCG(1, 2)}
	for i := range progress {
		progress[i] += noise.Rand()
	}

	res, err := fit.Fit(m, times, temps, progress, fit.WithInitialGuess(45, 14.8))
	require.NoError(t, err)
	require.True(t, res.CovarianceValid)
	sA, sEa := res.StdErr()
	assert.Positive(t, sA)
	assert.Positive(t, sEa)
	assert.LessOrEqual(t, math.Abs(res.Prefactor-trueA), 5*sA)
	assert.LessOrEqual(t, math.Abs(res.ActivationEnergy-trueEa), 5*sEa)
}

// TestSingleTemperatureScenario fits the three-point first-order scenario
// from the default starting point.
func TestSingleTemperatureScenario(t *testing.T) {
	set, err := observation.New(
		[]float64{0, 100, 500},
		[]float64{400, 400, 400},
		[]float64{1, 1, 1},
		[]float64{0, 0.3, 0.8},
	)
	require.NoError(t, err)

	res, err := fit.FitSet(firstOrder(t), set)
	require.NoError(t, err)
	assert.InDelta(t, 0.8, res.Predict(500, 400), 0.05)
	assert.Equal(t, 1, res.DegreesOfFreedom)
}

// TestTooFewRecordsForCovariance marks the covariance unusable at N ≤ 2.
func TestTooFewRecordsForCovariance(t *testing.T) {
	m := firstOrder(t)
	times := []float64{1000, 1000}
	temps := []float64{600, 700}
	progress := []float64{m.Evaluate(1000, 600, trueA, trueEa), m.Evaluate(1000, 700, trueA, trueEa)}

	res, err := fit.Fit(m, times, temps, progress, fit.WithInitialGuess(45, 14.8))
	require.NoError(t, err)
	assert.False(t, res.CovarianceValid)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			assert.True(t, math.IsInf(res.Covariance[i][j], 1))
		}
	}
}

// TestSaturatedModelCovarianceInvalid fits a model that is flat at the
// default starting point: every Jacobian entry is zero, so the covariance
// must be unusable rather than zero.
func TestSaturatedModelCovarianceInvalid(t *testing.T) {
	m, err := model.Lookup(model.AvramiErofeyev3)
	require.NoError(t, err)
	times, temps, progress := synthetic(t, m)

	res, err := fit.Fit(m, times, temps, progress)
	require.NoError(t, err)
	assert.False(t, res.CovarianceValid)
	assert.Less(t, res.CovarianceRank, 2)
	assert.Positive(t, res.SSR)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			assert.True(t, math.IsInf(res.Covariance[i][j], 1))
		}
	}
}

// TestCatalogFromDefaultGuess fits every model to its own noise-free data
// from the default starting point. Each fit either recovers (A, Ea) with a
// usable covariance or is flagged: an error, an unusable covariance or a
// non-positive prefactor.
func TestCatalogFromDefaultGuess(t *testing.T) {
	// Models that stall from (100, 10): the Avrami-Erofeyev fits end on a
	// zero Jacobian, third-order in a minimum with A < 0.
	stalled := map[model.ID]func(*fit.Result) bool{
		model.ThirdOrder:      func(r *fit.Result) bool { return !r.Physical() },
		model.AvramiErofeyev1: func(r *fit.Result) bool { return !r.CovarianceValid },
		model.AvramiErofeyev2: func(r *fit.Result) bool { return !r.CovarianceValid },
		model.AvramiErofeyev3: func(r *fit.Result) bool { return !r.CovarianceValid },
	}

	recovered := 0
	for _, m := range model.All() {
		t.Run(m.Name, func(t *testing.T) {
			times, temps, progress := synthetic(t, m)
			res, err := fit.Fit(m, times, temps, progress)
			if flagged, ok := stalled[m.ID]; ok {
				require.NoError(t, err)
				assert.True(t, flagged(res), "A=%g Ea=%g", res.Prefactor, res.ActivationEnergy)
				return
			}
			if err != nil {
				assert.True(t, errors.Is(err, fit.ErrFitDidNotConverge) ||
					errors.Is(err, fit.ErrNumericalDivergence), "%v", err)
				return
			}
			near := math.Abs(res.Prefactor-trueA) <= 1e-3*trueA &&
				math.Abs(res.ActivationEnergy-trueEa) <= 1e-3*trueEa
			if near {
				recovered++
				assert.True(t, res.CovarianceValid)
				assert.True(t, res.Physical())
				return
			}
			assert.True(t, !res.CovarianceValid || !res.Physical(),
				"unrecovered fit presented as valid: A=%g Ea=%g", res.Prefactor, res.ActivationEnergy)
		})
	}
	assert.GreaterOrEqual(t, recovered, 11)
}

// TestPhysical flags a non-positive prefactor.
func TestPhysical(t *testing.T) {
	assert.True(t, (&fit.Result{Prefactor: 1e-9}).Physical())
	assert.False(t, (&fit.Result{Prefactor: 0}).Physical())
	assert.False(t, (&fit.Result{Prefactor: -0.0076}).Physical())
}

// TestInvalidInput rejects empty and ragged input.
func TestInvalidInput(t *testing.T) {
	m := firstOrder(t)
	_, err := fit.Fit(m, nil, nil, nil)
	require.ErrorIs(t, err, fit.ErrInvalidObservationSet)
	require.ErrorIs(t, err, observation.ErrInvalidObservationSet)

	_, err = fit.Fit(m, []float64{0, 1}, []float64{400}, []float64{0, 0.1})
	require.ErrorIs(t, err, fit.ErrInvalidObservationSet)

	_, err = fit.FitSet(m, nil)
	require.ErrorIs(t, err, fit.ErrInvalidObservationSet)

	_, err = fit.Fit(model.Model{}, []float64{0}, []float64{400}, []float64{0})
	require.ErrorIs(t, err, model.ErrUnknownModel)
}

// TestDivergenceAtInitialGuess reports NaN residuals as divergence.
func TestDivergenceAtInitialGuess(t *testing.T) {
	m, err := model.Lookup(model.OneDimensionalDiffusion)
	require.NoError(t, err)
	_, err = fit.Fit(m, []float64{-1, 0, 1}, []float64{400, 400, 400}, []float64{0, 0, 0.1})
	require.ErrorIs(t, err, fit.ErrNumericalDivergence)
}

// TestBudgetExhausted reports a tiny evaluation budget as non-convergence.
func TestBudgetExhausted(t *testing.T) {
	m := firstOrder(t)
	times, temps, progress := synthetic(t, m)
	_, err := fit.Fit(m, times, temps, progress, fit.WithMaxEvaluations(3))
	require.ErrorIs(t, err, fit.ErrFitDidNotConverge)
}

// TestOptionPanics covers programmer errors in option constructors.
func TestOptionPanics(t *testing.T) {
	assert.Panics(t, func() { fit.WithInitialGuess(math.NaN(), 1) })
	assert.Panics(t, func() { fit.WithInitialGuess(1, math.Inf(1)) })
	assert.Panics(t, func() { fit.WithMaxEvaluations(0) })
	assert.Panics(t, func() { fit.WithTolerances(-1, 0, 0) })
	assert.Panics(t, func() { fit.WithTolerances(0, math.NaN(), 0) })
	assert.NotPanics(t, func() { fit.WithTolerances(0, 0, 0) })
}

// TestDefaultOptions pins the solver defaults.
func TestDefaultOptions(t *testing.T) {
	o := fit.DefaultOptions()
	assert.Equal(t, [2]float64{100, 10}, o.InitialGuess)
	assert.Equal(t, 100000, o.MaxEvaluations)
	assert.Equal(t, 1.49012e-8, o.FTol)
	assert.Equal(t, 1.49012e-8, o.XTol)
	assert.Equal(t, 0.0, o.GTol)
	require.NotNil(t, o.Logger)
}

// TestWithLoggerReceivesTrace checks that iteration traces reach the logger.
func TestWithLoggerReceivesTrace(t *testing.T) {
	var sink traceCounter
	l := hclog.New(&hclog.LoggerOptions{Level: hclog.Trace, Output: &sink})
	m := firstOrder(t)
	times, temps, progress := synthetic(t, m)

	_, err := fit.Fit(m, times, temps, progress, fit.WithInitialGuess(45, 14.8), fit.WithLogger(l))
	require.NoError(t, err)
	assert.Positive(t, sink.n)
}

// TestConvergedLogNamesModelOnce checks the converged line carries the
// model key exactly once.
func TestConvergedLogNamesModelOnce(t *testing.T) {
	var buf bytes.Buffer
	l := hclog.New(&hclog.LoggerOptions{Level: hclog.Debug, Output: &buf})
	m := firstOrder(t)
	times, temps, progress := synthetic(t, m)

	_, err := fit.Fit(m, times, temps, progress, fit.WithLogger(l))
	require.NoError(t, err)

	var line string
	for _, ln := range strings.Split(buf.String(), "\n") {
		if strings.Contains(ln, "converged") {
			line = ln
		}
	}
	require.NotEmpty(t, line)
	assert.Equal(t, 1, strings.Count(line, "model="))
}

type traceCounter struct{ n int }

func (c *traceCounter) Write(p []byte) (int, error) {
	c.n++
	return len(p), nil
}
