package report_test

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/arrhenius/fit"
	"github.com/katalvlaran/arrhenius/model"
	"github.com/katalvlaran/arrhenius/observation"
	"github.com/katalvlaran/arrhenius/report"
)

func scenarioFit(t *testing.T) (*fit.Result, *observation.Set) {
	t.Helper()
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
	return res, set
}

// TestPredictionCurveGrid checks the uniform grid and its end points.
func TestPredictionCurveGrid(t *testing.T) {
	res, _ := scenarioFit(t)

	c := report.PredictionCurve(res, 400, 500, 3)
	assert.Equal(t, []float64{0, 250, 500}, c.Times())
	assert.Equal(t, 0.0, c[0].Progress)
	assert.InDelta(t, res.Predict(500, 400), c[2].Progress, 1e-15)

	one := report.PredictionCurve(res, 400, 500, 1)
	require.Len(t, one, 1)
	assert.Equal(t, 0.0, one[0].Time)

	assert.Empty(t, report.PredictionCurve(res, 400, 500, 0))
}

// TestBuild assembles curves with one point per observation.
func TestBuild(t *testing.T) {
	res, set := scenarioFit(t)
	rep, err := report.Build(res, set)
	require.NoError(t, err)

	_, err = uuid.Parse(rep.RunID)
	require.NoError(t, err)
	assert.Len(t, rep.Prediction, set.Len())
	assert.Len(t, rep.Observed, set.Len())
	assert.Equal(t, 400.0, rep.MeanTemperature)
	assert.Equal(t, 500.0, rep.MaxTime)
	assert.Equal(t, "first-order", rep.Summary.ModelName)
	assert.Equal(t, 2, rep.Summary.ModelNumber)
	assert.Equal(t, 3, rep.Summary.Records)
	assert.InDelta(t, math.Sqrt(res.SSR/3), float64(rep.Summary.ResidualRMS), 1e-15)

	_, err = report.Build(nil, set)
	require.ErrorIs(t, err, report.ErrNilInput)
}

// TestWriteTextLayout pins the parameter block layout.
func TestWriteTextLayout(t *testing.T) {
	res, set := scenarioFit(t)
	rep, err := report.Build(res, set)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, rep.WriteText(&buf))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	assert.True(t, strings.HasPrefix(lines[0], "A = "))
	assert.True(t, strings.HasPrefix(lines[1], "Ea = "))
	assert.True(t, strings.HasSuffix(lines[1], " kcal/mol"))
	assert.True(t, strings.HasPrefix(lines[2], "Var(A) = "))
	assert.True(t, strings.HasPrefix(lines[3], "Var(Ea) = "))
	assert.True(t, strings.HasPrefix(lines[4], "Cov(A, Ea) = Cov (Ea, A) = "))
}

// TestWriteTextInvalidCovariance prints +Inf and a warning at N ≤ 2.
func TestWriteTextInvalidCovariance(t *testing.T) {
	set, err := observation.New([]float64{0, 500}, []float64{400, 400}, []float64{1, 1}, []float64{0, 0.8})
	require.NoError(t, err)
	m, err := model.Lookup(model.FirstOrder)
	require.NoError(t, err)
	res, err := fit.FitSet(m, set)
	require.NoError(t, err)
	rep, err := report.Build(res, set)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, rep.WriteText(&buf))
	assert.Contains(t, buf.String(), "Var(A) = +Inf")
	assert.Contains(t, buf.String(), "warning:")

	buf.Reset()
	require.NoError(t, rep.WriteJSON(&buf))
	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	summary := doc["summary"].(map[string]any)
	assert.Equal(t, "+Inf", summary["var_A"])
	assert.Equal(t, false, summary["covariance_valid"])
}

// TestWriteYAMLAndJSON exports the same summary in both formats.
func TestWriteYAMLAndJSON(t *testing.T) {
	res, set := scenarioFit(t)
	rep, err := report.Build(res, set)
	require.NoError(t, err)

	var y bytes.Buffer
	require.NoError(t, rep.WriteYAML(&y))
	var ydoc struct {
		RunID   string         `yaml:"run_id"`
		Summary map[string]any `yaml:"summary"`
	}
	require.NoError(t, yaml.Unmarshal(y.Bytes(), &ydoc))
	assert.Equal(t, rep.RunID, ydoc.RunID)
	assert.Equal(t, "first-order", ydoc.Summary["model_name"])

	var j bytes.Buffer
	require.NoError(t, rep.WriteJSON(&j))
	var jdoc struct {
		RunID   string `json:"run_id"`
		Summary struct {
			A  float64 `json:"A"`
			Ea float64 `json:"Ea"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(j.Bytes(), &jdoc))
	assert.Equal(t, rep.RunID, jdoc.RunID)
	assert.Equal(t, res.Prefactor, jdoc.Summary.A)
	assert.Equal(t, res.ActivationEnergy, jdoc.Summary.Ea)
}

// TestWriteOutcomes prints results and errors in order.
func TestWriteOutcomes(t *testing.T) {
	res, _ := scenarioFit(t)
	second, err := model.Lookup(model.SecondOrder)
	require.NoError(t, err)
	outcomes := []fit.Outcome{
		{Model: res.Model, Result: res},
		{Model: second, Err: fit.ErrFitDidNotConverge},
	}

	var buf bytes.Buffer
	require.NoError(t, report.WriteOutcomes(&buf, outcomes))
	out := buf.String()
	assert.Less(t, strings.Index(out, "2. First-order"), strings.Index(out, "3. Second-order"))
	assert.Contains(t, out, "error: "+fit.ErrFitDidNotConverge.Error())
	assert.Contains(t, out, "SSR = ")
}

// TestWriteOutcomesStructured exports batch outcomes in order as YAML and JSON.
func TestWriteOutcomesStructured(t *testing.T) {
	res, _ := scenarioFit(t)
	second, err := model.Lookup(model.SecondOrder)
	require.NoError(t, err)
	outcomes := []fit.Outcome{
		{Model: res.Model, Result: res},
		{Model: second, Err: fit.ErrFitDidNotConverge},
	}

	var j bytes.Buffer
	require.NoError(t, report.WriteOutcomesJSON(&j, outcomes))
	var jdocs []struct {
		Model   string `json:"model"`
		Summary *struct {
			A float64 `json:"A"`
		} `json:"summary"`
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(j.Bytes(), &jdocs))
	require.Len(t, jdocs, 2)
	assert.Equal(t, "2. First-order", jdocs[0].Model)
	require.NotNil(t, jdocs[0].Summary)
	assert.Equal(t, res.Prefactor, jdocs[0].Summary.A)
	assert.Empty(t, jdocs[0].Error)
	assert.Equal(t, "3. Second-order", jdocs[1].Model)
	assert.Nil(t, jdocs[1].Summary)
	assert.Equal(t, fit.ErrFitDidNotConverge.Error(), jdocs[1].Error)

	var y bytes.Buffer
	require.NoError(t, report.WriteOutcomesYAML(&y, outcomes))
	var ydocs []map[string]any
	require.NoError(t, yaml.Unmarshal(y.Bytes(), &ydocs))
	require.Len(t, ydocs, 2)
	assert.Equal(t, "2. First-order", ydocs[0]["model"])
	assert.Contains(t, ydocs[0], "summary")
	assert.Equal(t, fit.ErrFitDidNotConverge.Error(), ydocs[1]["error"])
}

// TestWriteTextNonPhysical warns when the fitted prefactor is not positive.
func TestWriteTextNonPhysical(t *testing.T) {
	m, err := model.Lookup(model.ThirdOrder)
	require.NoError(t, err)
	res := &fit.Result{Model: m, Prefactor: -0.0076, ActivationEnergy: 1.03, CovarianceValid: true}

	s, err := report.Summarize(res)
	require.NoError(t, err)
	assert.False(t, s.Physical)

	var buf bytes.Buffer
	require.NoError(t, report.WriteOutcomes(&buf, []fit.Outcome{{Model: m, Result: res}}))
	assert.Contains(t, buf.String(), "warning: fitted prefactor A is not positive")
	assert.NotContains(t, buf.String(), "covariance of the parameters could not be estimated")
}

