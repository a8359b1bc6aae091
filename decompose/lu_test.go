// SPDX-License-Identifier: MIT
// Package decompose_test: LU factorization with partial pivoting.
package decompose_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/linalg/decompose"
	"github.com/katalvlaran/linalg/matrix"
)

// luDecomposed runs a full LU factorization or fails the test.
func luDecomposed(t *testing.T, a *matrix.Dense) *decompose.LUDecomposer {
	t.Helper()
	lu := decompose.NewLUDecomposer(a)
	require.NoError(t, lu.Decompose())

	return lu
}

// applyPivots replays the recorded row interchanges on a copy of a,
// producing the permuted matrix P·A that the factors multiply to.
func applyPivots(t *testing.T, a *matrix.Dense, piv []int) *matrix.Dense {
	t.Helper()
	pa := a.CloneDense()
	for k, target := range piv {
		if target == k {
			continue
		}
		rowK, err := pa.Row(k)
		require.NoError(t, err)
		rowT, err := pa.Row(target)
		require.NoError(t, err)
		for j := range rowK { // swap rows k and target
			require.NoError(t, pa.Set(k, j, rowT[j]))
			require.NoError(t, pa.Set(target, j, rowK[j]))
		}
	}

	return pa
}

// TestLUReconstruction checks P·A == L·U on a pivoting-heavy input.
func TestLUReconstruction(t *testing.T) {
	a := mustFromRows(t, [][]float64{
		{0, 2, 1}, // leading zero forces an immediate row swap
		{1, 1, 1},
		{2, 1, 3},
	})
	lu := luDecomposed(t, a)

	l, err := lu.L()
	require.NoError(t, err)
	u, err := lu.U()
	require.NoError(t, err)
	piv, err := lu.Pivots()
	require.NoError(t, err)

	prod, err := matrix.Mul(l, u)
	require.NoError(t, err)
	require.True(t, prod.EqualsWithin(applyPivots(t, a, piv), 1e-12)) // L·U equals the pivoted input

	// L is unit lower triangular, U upper triangular.
	for i := 0; i < 3; i++ {
		d, err := l.At(i, i)
		require.NoError(t, err)
		require.Equal(t, 1.0, d) // unit diagonal
		for j := i + 1; j < 3; j++ {
			above, err := l.At(i, j)
			require.NoError(t, err)
			require.Equal(t, 0.0, above) // zeros above the L diagonal
			below, err := u.At(j, i)
			require.NoError(t, err)
			require.Equal(t, 0.0, below) // zeros below the U diagonal
		}
	}
}

// TestLUDeterminant compares the pivoted determinant against a known
// value and against gonum on a random matrix.
func TestLUDeterminant(t *testing.T) {
	known := luDecomposed(t, mustFromRows(t, [][]float64{
		{6, 1, 1},
		{4, -2, 5},
		{2, 8, 7},
	}))
	det, err := known.Determinant()
	require.NoError(t, err)
	require.InDelta(t, -306.0, det, 1e-9) // hand-computed determinant

	a := randomDense(t, 6, 6, 100)
	lu := luDecomposed(t, a)
	det, err = lu.Determinant()
	require.NoError(t, err)
	require.InDelta(t, mat.Det(toGonum(t, a)), det, 1e-9) // oracle agreement
}

// TestLUSingular verifies the singular-input contract: elimination
// completes, the determinant is exactly zero and Solve refuses.
func TestLUSingular(t *testing.T) {
	lu := luDecomposed(t, mustFromRows(t, [][]float64{
		{1, 2},
		{2, 4}, // second row is a multiple of the first
	}))

	singular, err := lu.IsSingular()
	require.NoError(t, err)
	require.True(t, singular) // zero pivot detected

	det, err := lu.Determinant()
	require.NoError(t, err)
	require.Equal(t, 0.0, det) // exactly zero, not the tiny substitute

	_, err = lu.Solve(randomDense(t, 2, 1, 101))   // exact solve is impossible
	require.ErrorIs(t, err, decompose.ErrSingular) // refused
}

// TestLUSolve checks the multi-right-hand-side solve round trip.
func TestLUSolve(t *testing.T) {
	a := mustFromRows(t, [][]float64{
		{4, 1, 0},
		{1, 5, 2},
		{0, 2, 6},
	})
	x := mustFromRows(t, [][]float64{
		{1, -2},
		{0, 3},
		{2, 1},
	})
	b, err := matrix.Mul(a, x)
	require.NoError(t, err)

	lu := luDecomposed(t, a)
	got, err := lu.Solve(b)
	require.NoError(t, err)
	require.True(t, got.EqualsWithin(x, 1e-10)) // both columns recovered

	_, err = lu.Solve(nil)                               // nil right-hand side
	require.ErrorIs(t, err, matrix.ErrNilMatrix)         // rejected
	_, err = lu.Solve(randomDense(t, 2, 1, 102))         // wrong row count
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch) // rejected
}

// TestLUStateMachine covers the shape guard and the lifecycle resets.
func TestLUStateMachine(t *testing.T) {
	lu := decompose.NewLUDecomposer(randomDense(t, 2, 3, 103)) // non-square input
	require.ErrorIs(t, lu.Decompose(), matrix.ErrNonSquare)    // rejected at Decompose
	require.False(t, lu.IsDecompositionAvailable())            // nothing published
	require.False(t, lu.IsLocked())                            // lock released

	_, err := lu.Determinant()
	require.ErrorIs(t, err, decompose.ErrNotAvailable) // queries fail before success

	require.NoError(t, lu.SetInputMatrix(randomDense(t, 3, 3, 104))) // replace with a square input
	require.NoError(t, lu.Decompose())                               // now succeeds
	require.True(t, lu.IsDecompositionAvailable())

	require.NoError(t, lu.SetInputMatrix(randomDense(t, 3, 3, 105))) // new input clears factors
	require.False(t, lu.IsDecompositionAvailable())
}
