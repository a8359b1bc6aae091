// SPDX-License-Identifier: MIT
// Package matrix_test: matrix norms and the slice helper family.
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/linalg/matrix"
)

// TestMatrixNorms checks the three matrix norms on a signed example.
func TestMatrixNorms(t *testing.T) {
	m := mustFromRows(t, [][]float64{
		{1, -2},
		{-3, 4},
	})

	fro, err := matrix.NormFrobenius(m)
	require.NoError(t, err)
	require.InDelta(t, math.Sqrt(30), fro, 1e-12) // sqrt(1+4+9+16)

	one, err := matrix.NormOne(m)
	require.NoError(t, err)
	require.Equal(t, 6.0, one) // max column sum |−2|+|4|

	inf, err := matrix.NormInf(m)
	require.NoError(t, err)
	require.Equal(t, 7.0, inf) // max row sum |−3|+|4|

	_, err = matrix.NormFrobenius(nil)           // nil input
	require.ErrorIs(t, err, matrix.ErrNilMatrix) // rejected
}

// TestVecNorms checks the vector norms including the overflow-safe
// scaling of VecNorm2.
func TestVecNorms(t *testing.T) {
	x := []float64{3, -4}
	require.Equal(t, 5.0, matrix.VecNorm2(x))   // classic 3-4-5
	require.Equal(t, 7.0, matrix.VecNorm1(x))   // |3|+|−4|
	require.Equal(t, 4.0, matrix.VecNormInf(x)) // max magnitude

	require.Equal(t, 0.0, matrix.VecNorm2(nil)) // empty vector has zero norm

	huge := []float64{1e300, 1e300}                                      // would overflow a naive sum of squares
	require.InDelta(t, 1e300*math.Sqrt(2), matrix.VecNorm2(huge), 1e287) // scaled accumulation survives
}

// TestVecDotScaleNormalize exercises the mutating slice helpers.
func TestVecDotScaleNormalize(t *testing.T) {
	dot, err := matrix.VecDot([]float64{1, 2, 3}, []float64{4, 5, 6})
	require.NoError(t, err)
	require.Equal(t, 32.0, dot) // 4+10+18

	_, err = matrix.VecDot([]float64{1}, []float64{1, 2})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch) // length mismatch rejected

	x := []float64{2, 0, 0}
	norm := matrix.VecNormalize(x)
	require.Equal(t, 2.0, norm)                     // original norm returned
	require.Equal(t, []float64{1, 0, 0}, x)         // unit vector in place
	require.Equal(t, 0.0, matrix.VecNormalize(nil)) // zero vector untouched, zero returned

	y := []float64{1, -2}
	matrix.VecScale(y, -3)
	require.Equal(t, []float64{-3, 6}, y) // scaled in place

	z := []float64{1, 2, 3}
	matrix.VecReverse(z)
	require.Equal(t, []float64{3, 2, 1}, z) // reversed in place
}
