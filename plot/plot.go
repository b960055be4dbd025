// Package plot renders the diagnostic PNG of a fit: normalized
// observations as dots and the prediction curve at the mean temperature
// as a thin blue line.
//
// Axes:
//
//	x: [0, 1.1·max t], "t (seconds)"
//	y: [0, max(prediction) + 0.025], "Reaction progress fraction"
//
// The title is "<Label> Curve Fit" and files are named
// "<Label>_CurveFit.png".
package plot

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/arrhenius/report"
)

const (
	xLabel = "t (seconds)"
	yLabel = "Reaction progress fraction"

	xHeadroom = 1.1
	yHeadroom = 0.025
)

var (
	// ErrEmptyReport indicates a nil report or one without curves.
	ErrEmptyReport = errors.New("plot: report has no curves")

	// ErrBadSize indicates non-positive width, height or DPI.
	ErrBadSize = errors.New("plot: width, height and DPI must be positive")
)

// Options controls the output image.
type Options struct {
	Width  int     // pixels
	Height int     // pixels
	DPI    float64 // font scaling
}

// DefaultOptions returns a 1200×900 image at 100 DPI.
func DefaultOptions() Options {
	return Options{Width: 1200, Height: 900, DPI: 100}
}

// FileName returns "<label>_CurveFit.png".
func FileName(label string) string { return label + "_CurveFit.png" }

// Render writes the PNG of rep to w.
func Render(w io.Writer, rep *report.Report, opts Options) error {
	if rep == nil || rep.Result == nil || len(rep.Prediction) == 0 {
		return ErrEmptyReport
	}
	if opts.Width <= 0 || opts.Height <= 0 || opts.DPI <= 0 {
		return ErrBadSize
	}

	predX, predY := rep.Prediction.Times(), rep.Prediction.Values()
	obsX, obsY := rep.Observed.Times(), rep.Observed.Values()

	xMax := xHeadroom * rep.MaxTime
	if xMax <= 0 {
		xMax = 1
	}
	yMax := yHeadroom
	if top := finiteMax(predY); top > 0 {
		yMax += top
	}

	ch := chart.Chart{
		Title:      rep.Result.Model.Label + " Curve Fit",
		Width:      opts.Width,
		Height:     opts.Height,
		DPI:        opts.DPI,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		XAxis:      chart.XAxis{Name: xLabel, Range: &chart.ContinuousRange{Min: 0, Max: xMax}},
		YAxis:      chart.YAxis{Name: yLabel, Range: &chart.ContinuousRange{Min: 0, Max: yMax}},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Normalized data",
				XValues: padSingle(obsX),
				YValues: padSingle(obsY),
				Style:   pointStyle(chart.ColorBlack),
			},
			chart.ContinuousSeries{
				Name:    "Fitted model",
				XValues: padSingle(predX),
				YValues: padSingle(predY),
				Style:   chart.Style{StrokeWidth: 1.5, StrokeColor: chart.ColorBlue},
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("plot: render %s: %w", rep.Result.Model.Name, err)
	}
	return nil
}

// Save renders rep into dir/FileName(label), creating dir when needed,
// and returns the written path.
func Save(dir string, rep *report.Report, opts Options) (string, error) {
	if rep == nil || rep.Result == nil {
		return "", ErrEmptyReport
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("plot: %w", err)
	}
	path := filepath.Join(dir, FileName(rep.Result.Model.Label))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("plot: %w", err)
	}
	if err = Render(f, rep, opts); err != nil {
		f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err = f.Close(); err != nil {
		return "", fmt.Errorf("plot: %w", err)
	}
	return path, nil
}

// pointStyle draws dots only.
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 0,
		StrokeColor: drawing.ColorTransparent,
		DotWidth:    4,
		DotColor:    col,
	}
}

// padSingle duplicates a lone value; go-chart needs two points per series.
func padSingle(v []float64) []float64 {
	if len(v) == 1 {
		return []float64{v[0], v[0]}
	}
	return v
}

func finiteMax(v []float64) float64 {
	finite := make([]float64, 0, len(v))
	for _, x := range v {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			finite = append(finite, x)
		}
	}
	if len(finite) == 0 {
		return 0
	}
	return floats.Max(finite)
}
