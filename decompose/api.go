// SPDX-License-Identifier: MIT
// Package decompose: one-call conveniences over the decomposer types.
// Each helper builds the appropriate decomposer internally, so callers
// that need the factors themselves (or solve repeatedly against one
// matrix) should use the decomposer types directly instead.

package decompose

import (
	"github.com/katalvlaran/linalg/matrix"
)

// Det returns the determinant of a square matrix via LU elimination
// (exactly 0 for a singular input).
//
// Errors: matrix.ErrNilMatrix, matrix.ErrNonSquare.
//
// Complexity: O(n³).
func Det(a *matrix.Dense) (float64, error) {
	if a == nil {
		return 0, decomposeErrorf(opLU, matrix.ErrNilMatrix)
	}
	d := NewLUDecomposer(a)
	if err := d.Decompose(); err != nil {
		return 0, err
	}

	return d.Determinant()
}

// Inverse returns a fresh inverse of a square matrix via Gauss-Jordan
// elimination with full pivoting; the input is not modified.
//
// Errors: matrix.ErrNilMatrix, matrix.ErrNonSquare, ErrSingular.
//
// Complexity: O(n³).
func Inverse(a *matrix.Dense) (*matrix.Dense, error) {
	if a == nil {
		return nil, decomposeErrorf(opGaussJordan, matrix.ErrNilMatrix)
	}
	inv := a.CloneDense()
	if err := GaussJordan(inv, nil); err != nil {
		return nil, err
	}

	return inv, nil
}

// Solve returns X with A·X = B (exact for a square nonsingular A via
// LU) or the least-squares X minimizing ‖A·X - B‖ (rectangular A via
// the SVD pseudo-inverse with the default threshold).
//
// Errors: matrix.ErrNilMatrix, matrix.ErrDimensionMismatch,
// ErrSingular (square singular A; retry with an explicit SVD solve to
// get the minimum-norm answer), ErrNoConvergence.
func Solve(a, b *matrix.Dense) (*matrix.Dense, error) {
	if a == nil || b == nil {
		return nil, decomposeErrorf(opLUSolve, matrix.ErrNilMatrix)
	}
	if a.Rows() == a.Cols() {
		lu := NewLUDecomposer(a)
		if err := lu.Decompose(); err != nil {
			return nil, err
		}

		return lu.Solve(b)
	}
	svd, err := NewSingularValueDecomposer(a)
	if err != nil {
		return nil, err // unreachable with default options
	}
	if err = svd.Decompose(); err != nil {
		return nil, err
	}

	return svd.SolveDefault(b)
}

// PseudoInverse returns the Moore-Penrose pseudo-inverse A⁺ (n×m)
// computed as the SVD solve against the m×m identity, truncating
// singular values at the default threshold. For an invertible square
// matrix A⁺ coincides with A⁻¹ up to rounding.
//
// Errors: matrix.ErrNilMatrix, ErrNoConvergence.
//
// Complexity: O(m·n² + m²·n).
func PseudoInverse(a *matrix.Dense) (*matrix.Dense, error) {
	if a == nil {
		return nil, decomposeErrorf(opSVDSolve, matrix.ErrNilMatrix)
	}
	svd, err := NewSingularValueDecomposer(a)
	if err != nil {
		return nil, err // unreachable with default options
	}
	if err = svd.Decompose(); err != nil {
		return nil, err
	}
	eye, err := matrix.NewIdentity(a.Rows(), a.Rows())
	if err != nil {
		return nil, decomposeErrorf(opSVDSolve, err) // unreachable for a valid input
	}

	return svd.SolveDefault(eye)
}
