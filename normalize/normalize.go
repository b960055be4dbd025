package normalize

import (
	"fmt"
	"math"

	"github.com/katalvlaran/arrhenius/fit"
	"github.com/katalvlaran/arrhenius/model"
	"github.com/katalvlaran/arrhenius/observation"
)

// Point is one normalized observation.
type Point struct {
	Time     float64 // seconds
	Progress float64 // progress fraction at the mean temperature
}

// Curve is the normalized observation curve of one fit, in record order.
type Curve []Point

// Times returns the time coordinates.
func (c Curve) Times() []float64 {
	out := make([]float64, len(c))
	for i, p := range c {
		out[i] = p.Time
	}
	return out
}

// Values returns the progress coordinates.
func (c Curve) Values() []float64 {
	out := make([]float64, len(c))
	for i, p := range c {
		out[i] = p.Progress
	}
	return out
}

// Factor returns exp((Ea/R)·(1/T − 1/Tavg)).
func Factor(activationEnergy, temperature, meanTemperature float64) float64 {
	return math.Exp((activationEnergy / model.GasConstant) * (1/temperature - 1/meanTemperature))
}

// Progress scales each progress value by Factor at its own temperature.
//
// Complexity: O(N).
func Progress(activationEnergy float64, temps, progress []float64, meanTemperature float64) ([]float64, error) {
	if len(temps) != len(progress) {
		return nil, fmt.Errorf("%w: %d temperatures, %d progress values",
			ErrLengthMismatch, len(temps), len(progress))
	}
	out := make([]float64, len(progress))
	for i, a := range progress {
		out[i] = a * Factor(activationEnergy, temps[i], meanTemperature)
	}
	return out, nil
}

// CurveOf pairs the observed times of set with progress normalized to the
// set's mean temperature using the fitted Ea of res.
func CurveOf(res *fit.Result, set *observation.Set) (Curve, error) {
	values, err := Progress(res.ActivationEnergy, set.Temperatures(), set.Progress(), set.MeanTemperature())
	if err != nil {
		return nil, err
	}
	times := set.Times()
	c := make(Curve, len(times))
	for i := range times {
		c[i] = Point{Time: times[i], Progress: values[i]}
	}
	return c, nil
}
