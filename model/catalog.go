package model

import (
	"fmt"
	"strconv"
	"strings"
)

// catalog is indexed by ID-1 and never mutated.
var catalog = [...]Model{
	{ZeroOrder, "zero-order", "Zero-order", "x", zeroOrder, unbounded},
	{FirstOrder, "first-order", "First-order", "1 - exp(-x)", firstOrder, unbounded},
	{SecondOrder, "second-order", "Second-order", "x / (1 + x)", secondOrder, unbounded},
	{ThirdOrder, "third-order", "Third-order", "1 - 1/sqrt(|1 + 2x|)", thirdOrder, unbounded},
	{AvramiErofeyev1, "avrami-erofeyev-1", "Avrami-Erofeyev 1", "1 - exp(-x^2)", avramiErofeyev1, unbounded},
	{AvramiErofeyev2, "avrami-erofeyev-2", "Avrami-Erofeyev 2", "1 - exp(-x^3)", avramiErofeyev2, unbounded},
	{AvramiErofeyev3, "avrami-erofeyev-3", "Avrami-Erofeyev 3", "1 - exp(-x^4)", avramiErofeyev3, unbounded},
	{AvramiErofeyev4, "avrami-erofeyev-4", "Avrami-Erofeyev 4", "1 - exp(-x^(2/3))", avramiErofeyev4, unbounded},
	{TwoThirdPowerLaw, "two-third-power-law", "Two-third power law", "x^(2/3)", twoThirdPowerLaw, unbounded},
	{QuadraticPowerLaw, "quadratic-power-law", "Quadratic power law", "x^2", quadraticPowerLaw, unbounded},
	{CubicPowerLaw, "cubic-power-law", "Cubic power law", "(2x)^(3/2)", cubicPowerLaw, unbounded},
	{QuarticPowerLaw, "quartic-power-law", "Quartic power law", "(3x)^(4/3)", quarticPowerLaw, unbounded},
	{ContractingArea, "contracting-area", "Contracting area", "2x - x^2", contractingArea, 1},
	{ContractingVolume, "contracting-volume", "Contracting volume", "1 - |1 - 2x|^(3/2)", contractingVolume, 0.5},
	{OneDimensionalDiffusion, "one-dimensional-diffusion", "1D diffusion", "sqrt(x)", oneDimensionalDiffusion, unbounded},
}

// All returns the fifteen models in catalog order. The slice is a fresh
// copy; callers may reorder it freely.
func All() []Model {
	out := make([]Model, len(catalog))
	copy(out, catalog[:])
	return out
}

// Lookup returns the model numbered id.
func Lookup(id ID) (Model, error) {
	if !id.Valid() {
		return Model{}, fmt.Errorf("%w: %d", ErrUnknownModel, int(id))
	}
	return catalog[id-1], nil
}

// ByName resolves a user selector: the canonical name, the label, or the
// menu number "1".."15". Matching ignores case, surrounding space, and
// treats spaces and underscores as dashes.
func ByName(selector string) (Model, error) {
	key := normalizeKey(selector)
	if key == "" {
		return Model{}, fmt.Errorf("%w: empty selector", ErrUnknownModel)
	}
	if n, err := strconv.Atoi(key); err == nil {
		return Lookup(ID(n))
	}
	for _, m := range catalog {
		if key == m.Name || key == normalizeKey(m.Label) {
			return m, nil
		}
	}
	return Model{}, fmt.Errorf("%w: %q", ErrUnknownModel, selector)
}

func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "-", "_", "-").Replace(s)
}
