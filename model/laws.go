package model

import "math"

// GasConstant is the ideal gas constant R in kcal/(mol·K).
const GasConstant = 1.985877534e-3

// RateConstant returns the Arrhenius rate constant k = A·exp(-Ea/(R·T)).
// Ea is in kcal/mol, T in Kelvin; no validation is performed.
func RateConstant(prefactor, activationEnergy, temperature float64) float64 {
	return prefactor * math.Exp(-activationEnergy/(GasConstant*temperature))
}

// Law is an integrated rate law: progress fraction as a function of the
// rate constant k and the time t. Laws receive k and t separately so the
// floating-point evaluation order of every closed form is fixed.
type Law func(k, t float64) float64

// Exponents written as in the reference curves.
const (
	twoThirds  = 2.0 / 3.0
	threeHalfs = 3.0 / 2.0
	fourThirds = 4.0 / 3.0
)

func zeroOrder(k, t float64) float64 { return k * t }

func firstOrder(k, t float64) float64 { return 1 - math.Exp(-k*t) }

func secondOrder(k, t float64) float64 { return (k * t) / (1 + k*t) }

func thirdOrder(k, t float64) float64 {
	return 1 - (1 / math.Sqrt(math.Abs(1+2*k*t)))
}

func avramiErofeyev1(k, t float64) float64 {
	x := k * t
	return 1 - math.Exp(-(x * x))
}

func avramiErofeyev2(k, t float64) float64 { return 1 - math.Exp(-math.Pow(k*t, 3)) }

func avramiErofeyev3(k, t float64) float64 { return 1 - math.Exp(-math.Pow(k*t, 4)) }

func avramiErofeyev4(k, t float64) float64 { return 1 - math.Exp(-math.Pow(k*t, twoThirds)) }

func twoThirdPowerLaw(k, t float64) float64 { return math.Pow(k*t, twoThirds) }

func quadraticPowerLaw(k, t float64) float64 {
	x := k * t
	return x * x
}

func cubicPowerLaw(k, t float64) float64 { return math.Pow(2*k*t, threeHalfs) }

func quarticPowerLaw(k, t float64) float64 { return math.Pow(3*k*t, fourThirds) }

func contractingArea(k, t float64) float64 {
	x := k * t
	return 2*k*t - x*x
}

func contractingVolume(k, t float64) float64 {
	return 1 - math.Pow(math.Abs(1-2*k*t), threeHalfs)
}

func oneDimensionalDiffusion(k, t float64) float64 { return math.Sqrt(k * t) }
