// SPDX-License-Identifier: MIT
// Package matrix provides the operations used to build and solve normal
// equations: products, transpose, Gram matrix, Doolittle LU with triangular
// solves, inversion, Jacobi eigen-decomposition and a symmetric
// pseudo-inverse. All functions perform strict fail-fast validation, never
// mutate their inputs, and return sentinels wrapped with an operation tag.

package matrix

import (
	"fmt"
	"math"
)

// ZeroSum is the initial sum value for forward/backward substitution and similar.
const ZeroSum = 0.0

// ZeroPivot is the sentinel for detecting a zero pivot in LU/Inverse routines.
const ZeroPivot = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opMul       = "Mul"
	opTranspose = "Transpose"
	opMatVec    = "MatVec"
	opGram      = "Gram"
	opLU        = "LU"
	opInverse   = "Inverse"
	opSolve     = "Solve"
	opEigen     = "Eigen"
	opPinv      = "PseudoInverseSym"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// asDense returns m itself when it is a *Dense, or a dense copy otherwise.
// Callers must have validated m as non-nil.
// Complexity: O(1) on the fast path, O(r*c) on the fallback.
func asDense(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	out, err := NewDense(m.Rows(), m.Cols())
	if err != nil {
		return nil, err
	}
	var (
		i, j int
		v    float64
	)
	for i = 0; i < out.r; i++ {
		for j = 0; j < out.c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
			out.data[i*out.c+j] = v
		}
	}

	return out, nil
}

// Mul computes the product a·b.
//
// Implementation:
//   - Stage 1: ValidateMulCompatible(a, b); allocate Dense(a.Rows, b.Cols).
//   - Stage 2: i→k→j loop over flat row-major buffers.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	res, err := NewDense(da.r, db.c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var (
		i, k, j                            int
		rowOffsetA, rowOffsetB, rowOffsetR int
		av                                 float64
	)
	for i = 0; i < da.r; i++ {
		rowOffsetA = i * da.c
		rowOffsetR = i * db.c
		for k = 0; k < da.c; k++ {
			av = da.data[rowOffsetA+k]
			if av == 0 {
				continue // skip zero for performance
			}
			rowOffsetB = k * db.c
			for j = 0; j < db.c; j++ {
				res.data[rowOffsetR+j] += av * db.data[rowOffsetB+j]
			}
		}
	}

	return res, nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// Errors: ErrNilMatrix.
// Complexity: Time O(r*c), Space O(r*c).
func Transpose(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	res, err := NewDense(d.c, d.r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	var i, j int
	for i = 0; i < d.r; i++ {
		for j = 0; j < d.c; j++ {
			res.data[j*d.r+i] = d.data[i*d.c+j]
		}
	}

	return res, nil
}

// MatVec computes y = m·x for a column vector x.
//
// Contract: m non-nil; x non-nil; len(x) == m.Cols().
// Determinism: fixed i→j loop order.
// Complexity: Time O(r*c), Space O(r) for y.
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}

	y := make([]float64, d.r)
	var (
		i, j, base int
		acc        float64
	)
	for i = 0; i < d.r; i++ {
		acc = ZeroSum
		base = i * d.c
		for j = 0; j < d.c; j++ {
			acc += d.data[base+j] * x[j]
		}
		y[i] = acc
	}

	return y, nil
}

// Gram computes the c×c matrix aᵀ·a without materializing aᵀ.
// The result is exactly symmetric: only the upper triangle is accumulated
// and mirrored.
//
// Errors: ErrNilMatrix.
// Complexity: Time O(r*c²), Space O(c²).
func Gram(a Matrix) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opGram, err)
	}
	d, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opGram, err)
	}
	res, err := NewDense(d.c, d.c)
	if err != nil {
		return nil, matrixErrorf(opGram, err)
	}

	var (
		i, p, q, base int
		vp            float64
	)
	for i = 0; i < d.r; i++ {
		base = i * d.c
		for p = 0; p < d.c; p++ {
			vp = d.data[base+p]
			for q = p; q < d.c; q++ {
				res.data[p*d.c+q] += vp * d.data[base+q]
			}
		}
	}
	for p = 0; p < d.c; p++ {
		for q = p + 1; q < d.c; q++ {
			res.data[q*d.c+p] = res.data[p*d.c+q]
		}
	}

	return res, nil
}

// LU performs Doolittle LU decomposition without pivoting (deterministic).
// It returns L (unit lower triangular) and U (upper triangular).
//
// Implementation:
//   - Stage 1: ValidateSquare(m); allocate L, U; set diag(L) = 1.
//   - Stage 2: for each pivot row i compute U[i][j≥i], guard the pivot, then L[j>i][i].
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrSingular (zero pivot).
//
// Complexity:
//   - Time O(n³), Space O(n²).
//
// Notes:
//   - No pivoting by design. The fitting engine only factorizes damped normal
//     matrices (symmetric positive definite), for which Doolittle is stable.
func LU(m Matrix) (*Dense, *Dense, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	a, err := asDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	n := a.r
	L, err := Identity(n)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	U, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}

	var (
		i, j, k      int
		baseI, baseJ int
		sum, pivot   float64
	)
	for i = 0; i < n; i++ {
		baseI = i * n
		// Compute U[i][j] for j >= i
		for j = i; j < n; j++ {
			sum = ZeroSum
			for k = 0; k < i; k++ {
				sum += L.data[baseI+k] * U.data[k*n+j]
			}
			U.data[baseI+j] = a.data[baseI+j] - sum
		}

		// Zero-pivot guard (deterministic singularity detection)
		pivot = U.data[baseI+i]
		if pivot == ZeroPivot {
			return nil, nil, matrixErrorf(opLU, fmt.Errorf("zero pivot at %d: %w", i, ErrSingular))
		}

		// Compute L[j][i] for j > i
		for j = i + 1; j < n; j++ {
			sum = ZeroSum
			baseJ = j * n
			for k = 0; k < i; k++ {
				sum += L.data[baseJ+k] * U.data[k*n+i]
			}
			L.data[baseJ+i] = (a.data[baseJ+i] - sum) / pivot
		}
	}

	return L, U, nil
}

// substitute solves L·U·x = b in place of x using forward then backward
// substitution. L must be unit lower triangular and U upper triangular with
// non-zero diagonal (guaranteed by LU).
// Complexity: O(n²).
func substitute(L, U *Dense, b, x []float64) {
	n := L.r
	y := make([]float64, n)
	var (
		i, k int
		sum  float64
	)
	// Forward substitution: L*y = b
	for i = 0; i < n; i++ {
		sum = ZeroSum
		for k = 0; k < i; k++ {
			sum += L.data[i*n+k] * y[k]
		}
		y[i] = b[i] - sum
	}
	// Backward substitution: U*x = y
	for i = n - 1; i >= 0; i-- {
		sum = ZeroSum
		for k = i + 1; k < n; k++ {
			sum += U.data[i*n+k] * x[k]
		}
		x[i] = (y[i] - sum) / U.data[i*n+i]
	}
}

// Solve returns x such that m·x = b.
//
// Implementation:
//   - Stage 1: ValidateSquare(m), ValidateVecLen(b, n).
//   - Stage 2: LU(m), then forward/backward substitution.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrSingular.
//
// Complexity:
//   - Time O(n³) for the factorization, O(n²) for the solve.
func Solve(m Matrix, b []float64) ([]float64, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	if err := ValidateVecLen(b, m.Rows()); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	L, U, err := LU(m)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	x := make([]float64, len(b))
	substitute(L, U, b, x)

	return x, nil
}

// Inverse computes A⁻¹ by solving A·x = e_col for every canonical basis column.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrSingular.
//
// Complexity:
//   - Time O(n³), Space O(n²).
//
// Notes:
//   - If you only need A⁻¹·b, call Solve instead of forming A⁻¹.
func Inverse(m Matrix) (*Dense, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	L, U, err := LU(m)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	n := m.Rows()
	inv, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	e := make([]float64, n)
	x := make([]float64, n)
	var col, i int
	for col = 0; col < n; col++ {
		for i = range e {
			e[i] = 0
		}
		e[col] = 1
		substitute(L, U, e, x)
		for i = 0; i < n; i++ {
			inv.data[i*n+col] = x[i]
		}
	}

	return inv, nil
}

// Eigen computes eigenvalues and eigenvectors of a symmetric matrix via Jacobi rotations.
//
// Implementation:
//   - Stage 1: ValidateSymmetric(m, tol); clone A; Q = I.
//   - Stage 2: repeatedly pick (p,q) with the largest |A[p,q]| in i→j order
//     and apply the rotation that annihilates it, accumulating into Q.
//   - Stage 3: fail with ErrEigenFailed if max off-diagonal ≥ tol after maxIter.
//
// Returns:
//   - []float64: eigenvalues (diagonal of the rotated matrix), unsorted.
//   - *Dense: Q whose columns are the matching eigenvectors.
//
// Complexity:
//   - Time O(maxIter·n²), Space O(n²).
func Eigen(m Matrix, tol float64, maxIter int) ([]float64, *Dense, error) {
	if err := ValidateSymmetric(m, tol); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	src, err := asDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	if err = ValidateFinite(src); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	n := src.r
	A := src.Clone().(*Dense)
	Q, err := Identity(n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}

	var (
		iter, i, j, k, p, q int
		off, maxOff         float64
		app, aqq, apq       float64
		theta, t, c, s      float64
		akp, akq            float64
	)
	for iter = 0; iter <= maxIter; iter++ {
		// J.1: locate the largest off-diagonal element
		maxOff, p, q = 0, 0, 0
		for i = 0; i < n; i++ {
			for j = i + 1; j < n; j++ {
				off = math.Abs(A.data[i*n+j])
				if off > maxOff {
					maxOff, p, q = off, i, j
				}
			}
		}
		if maxOff <= tol || n == 1 {
			break
		}
		if iter == maxIter {
			return nil, nil, matrixErrorf(opEigen, ErrEigenFailed)
		}

		// J.2: rotation angle that zeroes A[p,q]
		app, aqq, apq = A.data[p*n+p], A.data[q*n+q], A.data[p*n+q]
		theta = (aqq - app) / (2 * apq)
		t = 1 / (math.Abs(theta) + math.Sqrt(theta*theta+1))
		if theta < 0 {
			t = -t
		}
		c = 1 / math.Sqrt(t*t+1)
		s = t * c

		// J.3: update rows/cols p and q
		for k = 0; k < n; k++ {
			if k == p || k == q {
				continue
			}
			akp, akq = A.data[k*n+p], A.data[k*n+q]
			A.data[k*n+p] = c*akp - s*akq
			A.data[p*n+k] = A.data[k*n+p]
			A.data[k*n+q] = s*akp + c*akq
			A.data[q*n+k] = A.data[k*n+q]
		}
		A.data[p*n+p] = app - t*apq
		A.data[q*n+q] = aqq + t*apq
		A.data[p*n+q], A.data[q*n+p] = 0, 0

		// J.4: accumulate rotation into Q
		for k = 0; k < n; k++ {
			akp, akq = Q.data[k*n+p], Q.data[k*n+q]
			Q.data[k*n+p] = c*akp - s*akq
			Q.data[k*n+q] = s*akp + c*akq
		}
	}

	eigs := make([]float64, n)
	for i = 0; i < n; i++ {
		eigs[i] = A.data[i*n+i]
	}

	return eigs, Q, nil
}

// Jacobi settings used by PseudoInverseSym; relative to the matrix scale.
const (
	pinvEigenRelTol  = 1e-15
	pinvEigenMaxIter = 500
)

// PseudoInverseSym returns the Moore–Penrose inverse of a symmetric matrix.
// Eigenvalues λ with λ ≤ rcond·max(λ) are treated as zero.
//
// Implementation:
//   - Stage 1: scale the Jacobi tolerance by max|A[i,j]|; a zero matrix has pinv 0 and rank 0.
//   - Stage 2: A = Q·diag(λ)·Qᵀ via Eigen.
//   - Stage 3: A⁺ = (Q·diag(1/λ kept))·Qᵀ via Mul, symmetrized.
//
// Returns:
//   - *Dense: the pseudo-inverse (n×n, exactly symmetric).
//   - int: the numerical rank (number of kept eigenvalues).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrAsymmetry, ErrNaNInf, ErrEigenFailed.
//
// Complexity:
//   - Time O(n³) plus the Jacobi sweeps, Space O(n²).
func PseudoInverseSym(m Matrix, rcond float64) (*Dense, int, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, 0, matrixErrorf(opPinv, err)
	}
	src, err := asDense(m)
	if err != nil {
		return nil, 0, matrixErrorf(opPinv, err)
	}
	if err = ValidateFinite(src); err != nil {
		return nil, 0, matrixErrorf(opPinv, err)
	}
	n := src.r
	out, err := NewDense(n, n)
	if err != nil {
		return nil, 0, matrixErrorf(opPinv, err)
	}

	scale := 0.0
	for _, v := range src.data {
		scale = math.Max(scale, math.Abs(v))
	}
	if scale == 0 {
		return out, 0, nil
	}

	eigs, Q, err := Eigen(src, pinvEigenRelTol*scale, pinvEigenMaxIter)
	if err != nil {
		return nil, 0, matrixErrorf(opPinv, err)
	}
	lmax := 0.0
	for _, l := range eigs {
		lmax = math.Max(lmax, l)
	}
	cutoff := rcond * lmax

	// Stage 3: scale the kept eigenvector columns, then multiply by Qᵀ.
	scaled, err := NewDense(n, n)
	if err != nil {
		return nil, 0, matrixErrorf(opPinv, err)
	}
	var i, j, k, rank int
	for k = 0; k < n; k++ {
		if eigs[k] <= cutoff || eigs[k] <= 0 {
			continue
		}
		rank++
		for i = 0; i < n; i++ {
			scaled.data[i*n+k] = Q.data[i*n+k] / eigs[k]
		}
	}
	if rank == 0 {
		return out, 0, nil
	}
	Qt, err := Transpose(Q)
	if err != nil {
		return nil, 0, matrixErrorf(opPinv, err)
	}
	prod, err := Mul(scaled, Qt)
	if err != nil {
		return nil, 0, matrixErrorf(opPinv, err)
	}
	pd := prod.(*Dense)
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			out.data[i*n+j] = 0.5 * (pd.data[i*n+j] + pd.data[j*n+i])
			out.data[j*n+i] = out.data[i*n+j]
		}
	}

	return out, rank, nil
}
