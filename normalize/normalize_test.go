package normalize_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/arrhenius/fit"
	"github.com/katalvlaran/arrhenius/model"
	"github.com/katalvlaran/arrhenius/normalize"
	"github.com/katalvlaran/arrhenius/observation"
)

// TestIdentityAtMeanTemperature leaves records at Tavg unchanged.
func TestIdentityAtMeanTemperature(t *testing.T) {
	assert.Equal(t, 1.0, normalize.Factor(15, 600, 600))

	got, err := normalize.Progress(15, []float64{600, 600, 600}, []float64{0, 0.4, 0.9}, 600)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.4, 0.9}, got)
}

// TestFactorDirection: hotter records are scaled down, colder ones up.
func TestFactorDirection(t *testing.T) {
	assert.Less(t, normalize.Factor(15, 650, 600), 1.0)
	assert.Greater(t, normalize.Factor(15, 550, 600), 1.0)

	want := math.Exp((15 / model.GasConstant) * (1.0/550 - 1.0/600))
	assert.InDelta(t, want, normalize.Factor(15, 550, 600), 1e-12)
}

// TestLengthMismatch rejects unequal vectors.
func TestLengthMismatch(t *testing.T) {
	_, err := normalize.Progress(15, []float64{600}, []float64{0, 1}, 600)
	require.ErrorIs(t, err, normalize.ErrLengthMismatch)
}

// TestCurveOf pairs observed times with normalized progress.
func TestCurveOf(t *testing.T) {
	set, err := observation.New(
		[]float64{0, 100, 500},
		[]float64{400, 400, 400},
		[]float64{1, 1, 1},
		[]float64{0, 0.3, 0.8},
	)
	require.NoError(t, err)
	m, err := model.Lookup(model.FirstOrder)
	require.NoError(t, err)
	res, err := fit.FitSet(m, set)
	require.NoError(t, err)

	c, err := normalize.CurveOf(res, set)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 100, 500}, c.Times())
	assert.InDeltaSlice(t, []float64{0, 0.3, 0.8}, c.Values(), 1e-12)
}
