package model

import (
	"fmt"
	"math"
)

// ID is the 1-based catalog number of a rate law.
type ID int

// Catalog identifiers. The numbering is the public menu order.
const (
	ZeroOrder ID = iota + 1
	FirstOrder
	SecondOrder
	ThirdOrder
	AvramiErofeyev1
	AvramiErofeyev2
	AvramiErofeyev3
	AvramiErofeyev4
	TwoThirdPowerLaw
	QuadraticPowerLaw
	CubicPowerLaw
	QuarticPowerLaw
	ContractingArea
	ContractingVolume
	OneDimensionalDiffusion
)

// String returns the canonical name, or "model(N)" for an unknown ID.
func (id ID) String() string {
	if m, err := Lookup(id); err == nil {
		return m.Name
	}
	return fmt.Sprintf("model(%d)", int(id))
}

// Valid reports whether id names a catalog entry.
func (id ID) Valid() bool { return id >= ZeroOrder && id <= OneDimensionalDiffusion }

// Model is one catalog entry. Values are immutable and safe to share.
type Model struct {
	ID      ID
	Name    string // canonical kebab-case name
	Label   string // human label used in titles and file names
	Formula string // α as a function of x = k·t
	Law     Law

	// MonotoneLimit is the largest k·t for which the law is non-decreasing
	// in t; +Inf when it is monotone everywhere on t ≥ 0.
	MonotoneLimit float64
}

// Evaluate returns the progress fraction at time t and temperature T for
// the parameters (A, Ea).
func (m Model) Evaluate(t, temperature, prefactor, activationEnergy float64) float64 {
	return m.Law(RateConstant(prefactor, activationEnergy, temperature), t)
}

// EvaluateAll evaluates the model element-wise over times. temps must have
// either len(times) entries or exactly one, which is broadcast.
//
// Complexity: O(n).
func (m Model) EvaluateAll(times, temps []float64, prefactor, activationEnergy float64) ([]float64, error) {
	n := len(times)
	switch {
	case len(temps) == 1:
		k := RateConstant(prefactor, activationEnergy, temps[0])
		out := make([]float64, n)
		for i, t := range times {
			out[i] = m.Law(k, t)
		}
		return out, nil
	case len(temps) != n:
		return nil, fmt.Errorf("%w: %d times, %d temperatures", ErrShapeMismatch, n, len(temps))
	}

	out := make([]float64, n)
	for i, t := range times {
		out[i] = m.Evaluate(t, temps[i], prefactor, activationEnergy)
	}
	return out, nil
}

// String implements fmt.Stringer as "N. Label".
func (m Model) String() string { return fmt.Sprintf("%d. %s", int(m.ID), m.Label) }

var unbounded = math.Inf(1)
