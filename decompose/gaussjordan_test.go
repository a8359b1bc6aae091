// SPDX-License-Identifier: MIT
// Package decompose_test: full-pivot Gauss-Jordan elimination.
package decompose_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/linalg/decompose"
	"github.com/katalvlaran/linalg/matrix"
)

// TestGaussJordanInverse inverts a matrix in place and verifies both
// products with the original.
func TestGaussJordanInverse(t *testing.T) {
	a := mustFromRows(t, [][]float64{
		{2, 1, 0},
		{1, 3, 1},
		{0, 1, 4},
	})
	inv := a.CloneDense()
	require.NoError(t, decompose.GaussJordan(inv, nil)) // nil right-hand side is allowed

	eye, err := matrix.NewIdentity(3, 3)
	require.NoError(t, err)
	left, err := matrix.Mul(a, inv)
	require.NoError(t, err)
	right, err := matrix.Mul(inv, a)
	require.NoError(t, err)
	require.True(t, left.EqualsWithin(eye, 1e-12))  // A·A⁻¹ = I
	require.True(t, right.EqualsWithin(eye, 1e-12)) // A⁻¹·A = I
}

// TestGaussJordanSolve solves simultaneously while inverting.
func TestGaussJordanSolve(t *testing.T) {
	a := mustFromRows(t, [][]float64{
		{3, 1},
		{1, 2},
	})
	x := mustFromRows(t, [][]float64{{2, -1}, {0, 3}})
	b, err := matrix.Mul(a, x)
	require.NoError(t, err)

	work, rhs := a.CloneDense(), b.CloneDense()
	require.NoError(t, decompose.GaussJordan(work, rhs))
	require.True(t, rhs.EqualsWithin(x, 1e-12)) // solutions landed in the right-hand side

	inv, err := decompose.Inverse(a)
	require.NoError(t, err)
	require.True(t, work.EqualsWithin(inv, 1e-12)) // the matrix became its inverse
}

// TestGaussJordanErrors covers the validation and singularity guards.
func TestGaussJordanErrors(t *testing.T) {
	require.ErrorIs(t, decompose.GaussJordan(nil, nil), matrix.ErrNilMatrix) // nil matrix

	rect := randomDense(t, 2, 3, 500)
	require.ErrorIs(t, decompose.GaussJordan(rect, nil), matrix.ErrNonSquare) // non-square

	a := randomDense(t, 3, 3, 501)
	badRHS := randomDense(t, 2, 1, 502)
	require.ErrorIs(t, decompose.GaussJordan(a, badRHS), matrix.ErrDimensionMismatch) // row mismatch

	singular := mustFromRows(t, [][]float64{
		{1, 2},
		{2, 4}, // rank 1
	})
	require.ErrorIs(t, decompose.GaussJordan(singular, nil), decompose.ErrSingular) // no usable pivot
}
