// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All kernels return these sentinels (optionally wrapped with an operation
// tag via matrixErrorf) and tests check them via errors.Is. No kernel panics
// on user-triggered error conditions.

package matrix

import "errors"

// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Wrap with fmt.Errorf("ctx: %w", ErrX) at the
// outer boundary; callers still match with errors.Is.

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. Mul where a.Cols != b.Rows, or a right-hand side of the wrong length.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrAsymmetry signals that a matrix expected to be symmetric violated symmetry
	// within the requested tolerance.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within eps")

	// ErrNaNInf signals a NaN or ±Inf value was encountered where finite values
	// are required (tolerances, factorization inputs).
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrSingular is returned when a zero pivot is encountered during LU,
	// Inverse or Solve.
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrEigenFailed indicates that the Jacobi routine failed to converge
	// under the given tolerance/iterations.
	ErrEigenFailed = errors.New("matrix: eigen decomposition failed")
)
