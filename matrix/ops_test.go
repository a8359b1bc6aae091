// SPDX-License-Identifier: MIT
// Package matrix_test: arithmetic kernels — package-level fresh-result
// functions, the mutating Dense methods and the submatrix operations.
package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/linalg/matrix"
)

// mustFromRows builds a Dense from rows or fails the test.
func mustFromRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewFromRows(rows)
	require.NoError(t, err)

	return m
}

// TestAddSub verifies elementwise sum/difference and their validation.
func TestAddSub(t *testing.T) {
	a := mustFromRows(t, [][]float64{{1, 2}, {3, 4}})
	b := mustFromRows(t, [][]float64{{10, 20}, {30, 40}})

	sum, err := matrix.Add(a, b)
	require.NoError(t, err)
	require.True(t, sum.EqualsWithin(mustFromRows(t, [][]float64{{11, 22}, {33, 44}}), 0)) // exact sum

	diff, err := matrix.Sub(b, a)
	require.NoError(t, err)
	require.True(t, diff.EqualsWithin(mustFromRows(t, [][]float64{{9, 18}, {27, 36}}), 0)) // exact difference

	_, err = matrix.Add(a, nil)                   // nil operand
	require.ErrorIs(t, err, matrix.ErrNilMatrix)  // rejected
	wrong := mustFromRows(t, [][]float64{{1, 2}}) // 1x2 vs 2x2
	_, err = matrix.Add(a, wrong)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch) // shape mismatch rejected
}

// TestAddSubInPlace covers the mutating and the into-result method forms.
func TestAddSubInPlace(t *testing.T) {
	a := mustFromRows(t, [][]float64{{1, 2}, {3, 4}})
	b := mustFromRows(t, [][]float64{{1, 1}, {1, 1}})

	require.NoError(t, a.Add(b)) // a += b
	require.True(t, a.EqualsWithin(mustFromRows(t, [][]float64{{2, 3}, {4, 5}}), 0))

	require.NoError(t, a.Sub(b)) // a -= b, back to the original
	require.True(t, a.EqualsWithin(mustFromRows(t, [][]float64{{1, 2}, {3, 4}}), 0))

	out, err := matrix.NewDense(1, 1) // wrong shape gets conformed
	require.NoError(t, err)
	require.NoError(t, a.AddInto(b, out))
	require.True(t, out.EqualsWithin(mustFromRows(t, [][]float64{{2, 3}, {4, 5}}), 0))

	require.NoError(t, a.SubInto(b, a)) // result aliasing the receiver is allowed
	require.True(t, a.EqualsWithin(mustFromRows(t, [][]float64{{0, 1}, {2, 3}}), 0))

	require.ErrorIs(t, a.Add(nil), matrix.ErrNilMatrix) // nil operand rejected
}

// TestMul verifies the product kernel against a hand-computed case.
func TestMul(t *testing.T) {
	a := mustFromRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})      // 2x3
	b := mustFromRows(t, [][]float64{{7, 8}, {9, 10}, {11, 12}}) // 3x2

	prod, err := matrix.Mul(a, b)
	require.NoError(t, err)
	require.True(t, prod.EqualsWithin(mustFromRows(t, [][]float64{{58, 64}, {139, 154}}), 0)) // known product

	_, err = matrix.Mul(a, a)                            // inner dimension mismatch (3 vs 2)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch) // rejected

	// The in-place form reshapes the receiver to 2x2.
	require.NoError(t, a.Mul(b))
	require.Equal(t, 2, a.Rows())
	require.Equal(t, 2, a.Cols())
	require.True(t, a.EqualsWithin(prod, 0)) // same result as the pure function

	// MulInto may alias an operand thanks to the fresh-buffer swap.
	sq := mustFromRows(t, [][]float64{{2, 0}, {0, 3}})
	require.NoError(t, sq.MulInto(sq, sq)) // sq = sq*sq
	require.True(t, sq.EqualsWithin(mustFromRows(t, [][]float64{{4, 0}, {0, 9}}), 0))
}

// TestTransposeRoundTrip checks mᵀᵀ == m for both API forms.
func TestTransposeRoundTrip(t *testing.T) {
	m := mustFromRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})

	tr, err := matrix.Transpose(m)
	require.NoError(t, err)
	require.Equal(t, 3, tr.Rows()) // shape flipped
	require.Equal(t, 2, tr.Cols())
	v, err := tr.At(2, 1)
	require.NoError(t, err)
	require.Equal(t, 6.0, v) // (2,1) of the transpose is (1,2) of m

	back, err := matrix.Transpose(tr)
	require.NoError(t, err)
	require.True(t, back.EqualsWithin(m, 0)) // double transpose restores exactly

	m.Transpose() // in-place form
	require.True(t, m.EqualsWithin(tr, 0))

	other := &matrix.Dense{}
	require.NoError(t, tr.TransposeInto(other)) // into-result form
	require.True(t, other.EqualsWithin(back, 0))
}

// TestScaleHadamard verifies scalar scaling and the elementwise product.
func TestScaleHadamard(t *testing.T) {
	m := mustFromRows(t, [][]float64{{1, -2}, {3, -4}})

	doubled, err := matrix.Scale(m, 2)
	require.NoError(t, err)
	require.True(t, doubled.EqualsWithin(mustFromRows(t, [][]float64{{2, -4}, {6, -8}}), 0))

	m.Scale(-1) // in-place negate
	require.True(t, m.EqualsWithin(mustFromRows(t, [][]float64{{-1, 2}, {-3, 4}}), 0))

	had, err := matrix.Hadamard(m, m)
	require.NoError(t, err)
	require.True(t, had.EqualsWithin(mustFromRows(t, [][]float64{{1, 4}, {9, 16}}), 0)) // squares elementwise
}

// TestKronecker pins the block structure of the Kronecker product.
func TestKronecker(t *testing.T) {
	a := mustFromRows(t, [][]float64{{1, 2}, {3, 4}})
	b := mustFromRows(t, [][]float64{{0, 5}, {6, 7}})

	kron, err := matrix.Kronecker(a, b)
	require.NoError(t, err)
	require.Equal(t, 4, kron.Rows()) // 2*2 block rows
	require.Equal(t, 4, kron.Cols()) // 2*2 block cols
	expected := mustFromRows(t, [][]float64{
		{0, 5, 0, 10},
		{6, 7, 12, 14},
		{0, 15, 0, 20},
		{18, 21, 24, 28},
	})
	require.True(t, kron.EqualsWithin(expected, 0)) // block (i,j) is a[i,j]*B

	_, err = matrix.Kronecker(nil, b)            // nil operand
	require.ErrorIs(t, err, matrix.ErrNilMatrix) // rejected
}

// TestSubmatrix covers the inclusive-range extraction and insertion.
func TestSubmatrix(t *testing.T) {
	m := mustFromRows(t, [][]float64{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	})

	sub, err := m.Submatrix(1, 0, 2, 1) // rows 1..2, cols 0..1 inclusive
	require.NoError(t, err)
	require.True(t, sub.EqualsWithin(mustFromRows(t, [][]float64{{4, 5}, {7, 8}}), 0))

	_, err = m.Submatrix(2, 0, 1, 1)                    // inverted row range
	require.ErrorIs(t, err, matrix.ErrIndexOutOfBounds) // rejected
	_, err = m.Submatrix(0, 0, 0, 3)                    // column overflow
	require.ErrorIs(t, err, matrix.ErrIndexOutOfBounds) // rejected

	patch := mustFromRows(t, [][]float64{{-1, -2}})
	require.NoError(t, m.SetSubmatrix(0, 1, patch)) // paste at (0,1)
	v, err := m.At(0, 2)
	require.NoError(t, err)
	require.Equal(t, -2.0, v) // patch landed

	err = m.SetSubmatrix(2, 2, patch)                   // would overflow the right edge
	require.ErrorIs(t, err, matrix.ErrIndexOutOfBounds) // rejected
	err = m.SetSubmatrix(0, 0, nil)                     // nil source
	require.ErrorIs(t, err, matrix.ErrNilMatrix)        // rejected
}

// TestValidators exercises the central validator helpers directly.
func TestValidators(t *testing.T) {
	a := mustFromRows(t, [][]float64{{1, 2}})
	b := mustFromRows(t, [][]float64{{1}, {2}})

	require.NoError(t, matrix.ValidateNotNil(a))
	require.ErrorIs(t, matrix.ValidateNotNil(nil), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateBinarySameShape(a, b), matrix.ErrDimensionMismatch)
	require.NoError(t, matrix.ValidateMulCompatible(a, b))                              // 1x2 times 2x1
	require.ErrorIs(t, matrix.ValidateMulCompatible(b, b), matrix.ErrDimensionMismatch) // 2x1 times 2x1
	require.ErrorIs(t, matrix.ValidateSquare(a), matrix.ErrNonSquare)
	require.ErrorIs(t, matrix.ValidateSquareNonNil(nil), matrix.ErrNilMatrix)
	require.NoError(t, matrix.ValidateVecLen([]float64{1, 2, 3}, 3))
	require.ErrorIs(t, matrix.ValidateVecLen([]float64{1}, 3), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.ValidateVecLen(nil, 0), matrix.ErrNilMatrix)
}
