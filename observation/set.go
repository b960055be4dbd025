package observation

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
)

// Column names used by the tabular readers and writers.
const (
	ColumnTime    = "time_data"
	ColumnTemp    = "temp_data"
	ColumnInitial = "initmol_data"
	ColumnFinal   = "finalmol_data"
)

// Columns lists the required header in canonical order.
var Columns = []string{ColumnTime, ColumnTemp, ColumnInitial, ColumnFinal}

// Set is an immutable Observation Set of N ≥ 1 records.
type Set struct {
	times    []float64
	temps    []float64
	initial  []float64
	final    []float64
	progress []float64
	meanTemp float64
}

// New validates and copies the four columns into a Set.
//
// Stage 1 (shape): all columns non-empty and of equal length.
// Stage 2 (range): t ≥ 0, T > 0, initial > 0, final ≥ 0, all finite.
// Stage 3 (derive): progress fractions and mean temperature.
//
// Complexity: O(N).
func New(times, temps, initial, final []float64) (*Set, error) {
	// Stage 1
	n := len(times)
	if n == 0 {
		return nil, fmt.Errorf("%w: no records", ErrInvalidObservationSet)
	}
	if len(temps) != n || len(initial) != n || len(final) != n {
		return nil, fmt.Errorf("%w: column lengths %d/%d/%d/%d differ",
			ErrInvalidObservationSet, n, len(temps), len(initial), len(final))
	}

	// Stage 2
	for i := 0; i < n; i++ {
		if err := checkRecord(i, times[i], temps[i], initial[i], final[i]); err != nil {
			return nil, err
		}
	}

	// Stage 3
	s := &Set{
		times:    append([]float64(nil), times...),
		temps:    append([]float64(nil), temps...),
		initial:  append([]float64(nil), initial...),
		final:    append([]float64(nil), final...),
		progress: make([]float64, n),
	}
	floats.DivTo(s.progress, s.final, s.initial)

	mean, err := stats.Mean(s.temps)
	if err != nil {
		return nil, fmt.Errorf("%w: mean temperature: %v", ErrInvalidObservationSet, err)
	}
	s.meanTemp = mean

	return s, nil
}

func checkRecord(i int, t, temp, ini, fin float64) error {
	for _, v := range [...]float64{t, temp, ini, fin} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: record %d has a non-finite value", ErrInvalidObservationSet, i)
		}
	}
	switch {
	case t < 0:
		return fmt.Errorf("%w: record %d: negative time %g", ErrInvalidObservationSet, i, t)
	case temp <= 0:
		return fmt.Errorf("%w: record %d: non-positive temperature %g", ErrInvalidObservationSet, i, temp)
	case ini <= 0:
		return fmt.Errorf("%w: record %d: non-positive initial amount %g", ErrInvalidObservationSet, i, ini)
	case fin < 0:
		return fmt.Errorf("%w: record %d: negative final amount %g", ErrInvalidObservationSet, i, fin)
	}
	return nil
}

// Len returns the number of records.
func (s *Set) Len() int { return len(s.times) }

// Times returns a copy of the time column (seconds).
func (s *Set) Times() []float64 { return append([]float64(nil), s.times...) }

// Temperatures returns a copy of the temperature column (Kelvin).
func (s *Set) Temperatures() []float64 { return append([]float64(nil), s.temps...) }

// Initial returns a copy of the initial amount column.
func (s *Set) Initial() []float64 { return append([]float64(nil), s.initial...) }

// Final returns a copy of the final amount column.
func (s *Set) Final() []float64 { return append([]float64(nil), s.final...) }

// Progress returns a copy of the observed progress fractions Final/Initial.
func (s *Set) Progress() []float64 { return append([]float64(nil), s.progress...) }

// MeanTemperature returns the arithmetic mean of the temperatures.
func (s *Set) MeanTemperature() float64 { return s.meanTemp }

// MaxTime returns the largest observation time.
func (s *Set) MaxTime() float64 { return floats.Max(s.times) }

// Record returns the i-th record as (t, T, initial, final).
// It panics if i is out of range, like slice indexing.
func (s *Set) Record(i int) (t, temp, initial, final float64) {
	return s.times[i], s.temps[i], s.initial[i], s.final[i]
}
