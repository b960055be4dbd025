// Package report turns a fit into its presentable form: the prediction
// curve at the mean temperature, the normalized observations, and a
// summary of (A, Ea) with their covariance and solver diagnostics.
//
// Reports are read-only views; building one never mutates the fit.Result.
package report

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/arrhenius/fit"
	"github.com/katalvlaran/arrhenius/normalize"
	"github.com/katalvlaran/arrhenius/observation"
)

// ErrNilInput indicates a nil fit result or observation set.
var ErrNilInput = errors.New("report: nil result or observation set")

// Curve is a sequence of (time, progress) points.
type Curve = normalize.Curve

// Report bundles everything needed to print and plot one fit.
type Report struct {
	RunID           string
	CreatedAt       time.Time
	Result          *fit.Result
	MeanTemperature float64
	MaxTime         float64
	Observed        normalize.Curve // normalized observations
	Prediction      Curve           // model at MeanTemperature
	Summary         Summary
}

// PredictionCurve evaluates the fitted model at meanTemp on n evenly
// spaced times over [0, tMax]. n == 1 yields the single point t = 0;
// n ≤ 0 yields an empty curve.
//
// Complexity: O(n).
func PredictionCurve(res *fit.Result, meanTemp, tMax float64, n int) Curve {
	if n <= 0 {
		return Curve{}
	}
	times := []float64{0}
	if n > 1 {
		times = floats.Span(make([]float64, n), 0, tMax)
	}
	// A single temperature always broadcasts, so EvaluateAll cannot fail.
	values, _ := res.Model.EvaluateAll(times, []float64{meanTemp}, res.Prefactor, res.ActivationEnergy)
	c := make(Curve, n)
	for i, t := range times {
		c[i] = normalize.Point{Time: t, Progress: values[i]}
	}
	return c
}

// Build assembles the report of res against the set it was fitted on.
// The prediction curve has one point per observation.
//
// Stage 1: normalized observations at the mean temperature.
// Stage 2: prediction curve over [0, max t].
// Stage 3: summary with residual statistics.
func Build(res *fit.Result, set *observation.Set) (*Report, error) {
	if res == nil || set == nil {
		return nil, ErrNilInput
	}

	// Stage 1
	observed, err := normalize.CurveOf(res, set)
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}

	// Stage 2
	meanTemp, maxTime := set.MeanTemperature(), set.MaxTime()
	prediction := PredictionCurve(res, meanTemp, maxTime, set.Len())

	// Stage 3
	summary, err := summarize(res, set)
	if err != nil {
		return nil, err
	}

	return &Report{
		RunID:           uuid.New().String(),
		CreatedAt:       time.Now().UTC(),
		Result:          res,
		MeanTemperature: meanTemp,
		MaxTime:         maxTime,
		Observed:        observed,
		Prediction:      prediction,
		Summary:         summary,
	}, nil
}

// Summary is the exported view of a fit.
type Summary struct {
	ModelNumber int    `json:"model_number" yaml:"model_number"`
	ModelName   string `json:"model_name" yaml:"model_name"`
	ModelLabel  string `json:"model_label" yaml:"model_label"`

	Prefactor        Number `json:"A" yaml:"A"`
	ActivationEnergy Number `json:"Ea" yaml:"Ea"`
	VarPrefactor     Number `json:"var_A" yaml:"var_A"`
	VarActivation    Number `json:"var_Ea" yaml:"var_Ea"`
	Covariance       Number `json:"cov_A_Ea" yaml:"cov_A_Ea"`
	StdErrPrefactor  Number `json:"stderr_A" yaml:"stderr_A"`
	StdErrActivation Number `json:"stderr_Ea" yaml:"stderr_Ea"`
	CovarianceValid  bool   `json:"covariance_valid" yaml:"covariance_valid"`
	Physical         bool   `json:"physical" yaml:"physical"`

	Records          int     `json:"records" yaml:"records"`
	MeanTemperature  float64 `json:"mean_temperature_K" yaml:"mean_temperature_K"`
	SSR              Number  `json:"ssr" yaml:"ssr"`
	ResidualMean     Number  `json:"residual_mean" yaml:"residual_mean"`
	ResidualStdDev   Number  `json:"residual_stddev" yaml:"residual_stddev"`
	ResidualRMS      Number  `json:"residual_rms" yaml:"residual_rms"`
	MaxAbsResidual   Number  `json:"max_abs_residual" yaml:"max_abs_residual"`
	Evaluations      int     `json:"evaluations" yaml:"evaluations"`
	Iterations       int     `json:"iterations" yaml:"iterations"`
	DegreesOfFreedom int     `json:"degrees_of_freedom" yaml:"degrees_of_freedom"`
	Reason           string  `json:"convergence" yaml:"convergence"`
}

// Summarize builds the Summary of res alone, without an observation set.
// Residual statistics are taken from the fit.
func Summarize(res *fit.Result) (Summary, error) {
	if res == nil {
		return Summary{}, ErrNilInput
	}
	sA, sEa := res.StdErr()
	s := Summary{
		ModelNumber:      int(res.Model.ID),
		ModelName:        res.Model.Name,
		ModelLabel:       res.Model.Label,
		Prefactor:        Number(res.Prefactor),
		ActivationEnergy: Number(res.ActivationEnergy),
		VarPrefactor:     Number(res.VarPrefactor()),
		VarActivation:    Number(res.VarActivationEnergy()),
		Covariance:       Number(res.Covariance01()),
		StdErrPrefactor:  Number(sA),
		StdErrActivation: Number(sEa),
		CovarianceValid:  res.CovarianceValid,
		Physical:         res.Physical(),
		SSR:              Number(res.SSR),
		Evaluations:      res.Evaluations,
		Iterations:       res.Iterations,
		DegreesOfFreedom: res.DegreesOfFreedom,
		Reason:           res.Reason.String(),
	}

	residuals := res.Residuals()
	s.Records = len(residuals)
	if len(residuals) == 0 {
		return s, nil
	}
	mean, err := stats.Mean(residuals)
	if err != nil {
		return s, fmt.Errorf("report: residual mean: %w", err)
	}
	sd, err := stats.StandardDeviation(residuals)
	if err != nil {
		return s, fmt.Errorf("report: residual stddev: %w", err)
	}
	abs := make([]float64, len(residuals))
	for i, r := range residuals {
		abs[i] = math.Abs(r)
	}
	maxAbs, err := stats.Max(abs)
	if err != nil {
		return s, fmt.Errorf("report: residual max: %w", err)
	}
	s.ResidualMean = Number(mean)
	s.ResidualStdDev = Number(sd)
	s.ResidualRMS = Number(math.Sqrt(res.SSR / float64(len(residuals))))
	s.MaxAbsResidual = Number(maxAbs)

	return s, nil
}

func summarize(res *fit.Result, set *observation.Set) (Summary, error) {
	s, err := Summarize(res)
	if err != nil {
		return s, err
	}
	s.MeanTemperature = set.MeanTemperature()
	return s, nil
}
