// SPDX-License-Identifier: MIT

// Package matrix provides the small dense linear-algebra surface used by the
// kinetics fitting engine.
//
// What & Why:
//
//	Nonlinear least squares reduces every iteration to a handful of tiny
//	dense problems: form JᵀJ and Jᵀr from an N×2 Jacobian, solve the damped
//	normal equations, and finally invert (or pseudo-invert) JᵀJ to obtain the
//	parameter covariance. This package keeps those kernels deterministic,
//	allocation-light and free of panics on user input.
//
// Surface:
//
//   - Dense        — row-major float64 storage with bounds-checked At/Set.
//   - Mul, Transpose, MatVec, Gram — products used to build normal equations.
//   - LU, Inverse, Solve           — Doolittle factorization and triangular solves.
//   - Eigen                        — Jacobi sweeps for symmetric matrices.
//   - PseudoInverseSym             — Moore–Penrose inverse of a symmetric matrix.
//
// Complexity:
//
//	At/Set are O(1); products are O(r·n·c); LU/Inverse/Solve are O(n³);
//	Eigen is O(maxIter·n³). For the 2×2 systems of the fitting engine all of
//	them are effectively constant time.
package matrix
