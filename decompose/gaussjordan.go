// SPDX-License-Identifier: MIT

package decompose

import (
	"math"

	"github.com/katalvlaran/linalg/matrix"
)

const opGaussJordan = "GaussJordan"

// GaussJordan performs in-place Gauss-Jordan elimination with full
// pivoting: on return a holds the inverse of its original contents and
// b (optional, may be nil) holds the corresponding solution set of
// a·X = B.
//
// Implementation:
//   - Stage 1: validate a square non-nil, b row-compatible when given.
//   - Stage 2: n full-pivot sweeps. Each sweep picks the largest
//     untouched element, swaps its row to the diagonal, scales the
//     pivot row and eliminates the pivot column everywhere else, with
//     the inverse accumulating in place of the eliminated entries.
//   - Stage 3: unscramble the column interchanges in reverse order.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrNonSquare,
//     matrix.ErrDimensionMismatch (b row count), and ErrSingular when
//     no usable pivot remains. On ErrSingular both matrices are left
//     partially eliminated; callers needing the originals must pass
//     copies.
//
// Complexity: Time O(n³ + n²·p) for p right-hand-side columns.
func GaussJordan(a, b *matrix.Dense) error {
	if a == nil {
		return decomposeErrorf(opGaussJordan, matrix.ErrNilMatrix)
	}
	if err := matrix.ValidateSquare(a); err != nil {
		return decomposeErrorf(opGaussJordan, err)
	}
	n := a.Rows()
	var bd []float64
	var p int
	if b != nil {
		if b.Rows() != n {
			return decomposeErrorf(opGaussJordan, matrix.ErrDimensionMismatch)
		}
		bd, p = b.RawData(), b.Cols()
	}
	ad := a.RawData()

	indxc := make([]int, n) // pivot column per sweep
	indxr := make([]int, n) // pivot row per sweep
	ipiv := make([]int, n)  // columns already reduced
	dum := make([]float64, n)

	var sweep, j, k, ll int
	var irow, icol int
	var big, pivinv, v float64
	for sweep = 0; sweep < n; sweep++ {
		// Full pivot search over the unreduced submatrix.
		big, irow, icol = 0, -1, -1
		for j = 0; j < n; j++ {
			if ipiv[j] == 1 {
				continue
			}
			for k = 0; k < n; k++ {
				if ipiv[k] != 0 {
					continue
				}
				if cand := math.Abs(ad[k*n+j]); cand >= big {
					big, irow, icol = cand, j, k
				}
			}
		}
		ipiv[icol]++
		if irow != icol {
			for j = 0; j < n; j++ { // move the pivot onto the diagonal
				cj := j * n
				ad[cj+irow], ad[cj+icol] = ad[cj+icol], ad[cj+irow]
			}
			for j = 0; j < p; j++ {
				cj := j * n
				bd[cj+irow], bd[cj+icol] = bd[cj+icol], bd[cj+irow]
			}
		}
		indxr[sweep], indxc[sweep] = irow, icol
		ci := icol * n
		if ad[ci+icol] == 0 {
			return decomposeErrorf(opGaussJordan, ErrSingular)
		}
		pivinv = 1 / ad[ci+icol]
		ad[ci+icol] = 1 // the inverse grows where the identity shrinks
		for j = 0; j < n; j++ {
			ad[j*n+icol] *= pivinv
		}
		for j = 0; j < p; j++ {
			bd[j*n+icol] *= pivinv
		}
		// Eliminate the pivot column from every other row, column by
		// column so each inner pass is contiguous.
		copy(dum, ad[ci:ci+n])
		for ll = 0; ll < n; ll++ {
			if ll != icol {
				ad[ci+ll] = 0
			}
		}
		for j = 0; j < n; j++ {
			cj := j * n
			v = ad[cj+icol]
			if v == 0 {
				continue
			}
			for ll = 0; ll < n; ll++ {
				if ll != icol {
					ad[cj+ll] -= v * dum[ll]
				}
			}
		}
		for j = 0; j < p; j++ {
			cj := j * n
			v = bd[cj+icol]
			if v == 0 {
				continue
			}
			for ll = 0; ll < n; ll++ {
				if ll != icol {
					bd[cj+ll] -= v * dum[ll]
				}
			}
		}
	}

	// Stage 3: undo the column interchanges, last sweep first.
	col := make([]float64, n)
	for sweep = n - 1; sweep >= 0; sweep-- {
		if indxr[sweep] == indxc[sweep] {
			continue
		}
		r, c := indxr[sweep]*n, indxc[sweep]*n
		copy(col, ad[r:r+n])
		copy(ad[r:r+n], ad[c:c+n])
		copy(ad[c:c+n], col)
	}

	return nil
}
