// Package model is the kinetics Model Library: a fixed, numbered catalog of
// fifteen integrated rate laws for solid-state decomposition.
//
// Every model shares the Arrhenius rate constant
//
//	k = A · exp(-Ea / (R·T)),  R = 1.985877534e-3 kcal/(mol·K)
//
// and differs only in the closed-form law applied to (k, t):
//
//	 #  name                        α(k·t)
//	 1  zero-order                  kt
//	 2  first-order                 1 - exp(-kt)
//	 3  second-order                kt / (1 + kt)
//	 4  third-order                 1 - 1/sqrt(|1 + 2kt|)
//	 5  avrami-erofeyev-1           1 - exp(-(kt)²)
//	 6  avrami-erofeyev-2           1 - exp(-(kt)³)
//	 7  avrami-erofeyev-3           1 - exp(-(kt)⁴)
//	 8  avrami-erofeyev-4           1 - exp(-(kt)^(2/3))
//	 9  two-third-power-law         (kt)^(2/3)
//	10  quadratic-power-law         (kt)²
//	11  cubic-power-law             (2kt)^(3/2)
//	12  quartic-power-law           (3kt)^(4/3)
//	13  contracting-area            2kt - (kt)²
//	14  contracting-volume          1 - |1 - 2kt|^(3/2)
//	15  one-dimensional-diffusion   sqrt(kt)
//
// Numbering, names and forms are a versioned contract: reordering or
// renaming breaks compatibility with previously reported results.
//
// Numeric policy:
//
//	Laws never validate their inputs and never fail. Out-of-domain values
//	(negative time, non-positive temperature, negative bases under
//	fractional powers) propagate as NaN or ±Inf. Laws 4 and 14 take the
//	absolute value before the root, which keeps them real-valued past the
//	physical domain; fitted curves depend on this, so it is kept as is even
//	though it hides fits that left the law's range of validity.
//
// Every law is 0 at t = 0. Progress is non-decreasing in t on the domain
// reported by Model.MonotoneLimit: everywhere for most laws, kt ≤ 1 for
// contracting-area, kt ≤ 1/2 for contracting-volume.
package model
