// SPDX-License-Identifier: MIT
// Package decompose_test: Cholesky factorization of SPD matrices.
package decompose_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/linalg/decompose"
	"github.com/katalvlaran/linalg/matrix"
)

// spdSample returns a fixed SPD matrix (diagonally dominant symmetric).
func spdSample(t *testing.T) *matrix.Dense {
	t.Helper()

	return mustFromRows(t, [][]float64{
		{4, 1, 1},
		{1, 5, 2},
		{1, 2, 6},
	})
}

// TestCholeskyReconstruction checks A == L·Lᵀ with a lower triangular L.
func TestCholeskyReconstruction(t *testing.T) {
	a := spdSample(t)
	chol := decompose.NewCholeskyDecomposer(a)
	require.NoError(t, chol.Decompose())

	spd, err := chol.IsSPD()
	require.NoError(t, err)
	require.True(t, spd) // the sample is positive definite

	l, err := chol.L()
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			v, err := l.At(i, j)
			require.NoError(t, err)
			require.Equal(t, 0.0, v) // exact zeros above the diagonal
		}
	}

	lt, err := matrix.Transpose(l)
	require.NoError(t, err)
	prod, err := matrix.Mul(l, lt)
	require.NoError(t, err)
	require.True(t, prod.EqualsWithin(a, 1e-12)) // factors rebuild A
}

// TestCholeskyDeterminants compares both determinant forms against the
// LU determinant of the same matrix.
func TestCholeskyDeterminants(t *testing.T) {
	a := spdSample(t)
	chol := decompose.NewCholeskyDecomposer(a)
	require.NoError(t, chol.Decompose())

	reference, err := decompose.Det(a)
	require.NoError(t, err)

	det, err := chol.Determinant()
	require.NoError(t, err)
	require.InDelta(t, reference, det, 1e-10) // product form agrees with LU

	logDet, err := chol.LogDeterminant()
	require.NoError(t, err)
	require.InDelta(t, math.Log(reference), logDet, 1e-12) // log form agrees too
}

// TestCholeskySolve checks the two-substitution solve round trip.
func TestCholeskySolve(t *testing.T) {
	a := spdSample(t)
	x := mustFromRows(t, [][]float64{{1, 0}, {-1, 2}, {0.5, 1}})
	b, err := matrix.Mul(a, x)
	require.NoError(t, err)

	chol := decompose.NewCholeskyDecomposer(a)
	require.NoError(t, chol.Decompose())
	got, err := chol.Solve(b)
	require.NoError(t, err)
	require.True(t, got.EqualsWithin(x, 1e-10)) // both columns recovered

	_, err = chol.Solve(nil)                             // nil right-hand side
	require.ErrorIs(t, err, matrix.ErrNilMatrix)         // rejected
	_, err = chol.Solve(randomDense(t, 2, 1, 400))       // wrong row count
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch) // rejected
}

// TestCholeskyNotSPD verifies the indefinite-input contract: Decompose
// completes, IsSPD reports false and the factor queries refuse.
func TestCholeskyNotSPD(t *testing.T) {
	indefinite := mustFromRows(t, [][]float64{
		{1, 2},
		{2, 1}, // eigenvalues 3 and -1
	})
	chol := decompose.NewCholeskyDecomposer(indefinite)
	require.NoError(t, chol.Decompose()) // not-SPD is an outcome, not an error

	spd, err := chol.IsSPD()
	require.NoError(t, err)
	require.False(t, spd) // non-positive pivot detected

	_, err = chol.L()                            // factor is meaningless
	require.ErrorIs(t, err, decompose.ErrNotSPD) // refused
	_, err = chol.Solve(randomDense(t, 2, 1, 401))
	require.ErrorIs(t, err, decompose.ErrNotSPD) // refused
	_, err = chol.LogDeterminant()
	require.ErrorIs(t, err, decompose.ErrNotSPD) // refused

	nonSquare := decompose.NewCholeskyDecomposer(randomDense(t, 2, 3, 402))
	require.ErrorIs(t, nonSquare.Decompose(), matrix.ErrNonSquare) // shape guard
}
