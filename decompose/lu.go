// SPDX-License-Identifier: MIT
// Package decompose: LU factorization with partial pivoting.

package decompose

import (
	"math"

	"github.com/katalvlaran/linalg/matrix"
)

// tinyPivot replaces an exactly-zero pivot so elimination can finish on
// singular inputs; the singular flag records that the factors are then
// only formally valid (Determinant reports 0, Solve refuses).
const tinyPivot = 1e-40

const (
	opLU      = "LU"
	opLUSolve = "LU.Solve"
)

// LUDecomposer factors a square matrix as P·A = L·U by Crout
// elimination with implicit-scaling partial pivoting. L (unit lower
// triangular) and U share one combined storage matrix; the pivot index
// records the row interchanges.
type LUDecomposer struct {
	state

	lu       *matrix.Dense // combined L\U storage, n×n
	piv      []int         // row interchanged with row k at step k
	parity   float64       // +1/-1 with the number of row swaps
	singular bool          // a zero pivot was substituted
}

// NewLUDecomposer builds a decomposer for input (nil starts not ready).
// The input is borrowed, never copied.
func NewLUDecomposer(input *matrix.Dense) *LUDecomposer {
	d := &LUDecomposer{}
	d.input = input

	return d
}

// SetInputMatrix installs a new borrowed input and clears the factors.
func (d *LUDecomposer) SetInputMatrix(m *matrix.Dense) error {
	if err := d.replaceInput(opLU, m); err != nil {
		return err
	}
	d.clearFactors()

	return nil
}

// IsDecompositionAvailable reports whether the combined factor and the
// pivot index are both present.
func (d *LUDecomposer) IsDecompositionAvailable() bool {
	return d.lu != nil && d.piv != nil
}

func (d *LUDecomposer) clearFactors() {
	d.lu, d.piv, d.parity, d.singular = nil, nil, 0, false
}

// Decompose runs the elimination.
//
// Implementation:
//   - Stage 1: entry guards; the input must be square.
//   - Stage 2: per-row implicit scaling factors from the largest
//     absolute row entry. An all-zero row gets scale 1 and marks the
//     matrix singular up front.
//   - Stage 3: right-looking elimination column by column. Each step
//     picks the scaled-largest pivot below the diagonal, swaps rows,
//     substitutes tinyPivot for an exactly-zero pivot (marking
//     singular), then updates the trailing columns contiguously.
//
// Errors:
//   - ErrNotReady, ErrLocked, matrix.ErrNonSquare.
//
// A singular input is NOT an error here: elimination completes and the
// singular flag drives Determinant and Solve behavior.
//
// Complexity: Time O(n³), Space O(n²) for the combined factor.
func (d *LUDecomposer) Decompose() error {
	if err := d.beginDecompose(opLU); err != nil {
		return err
	}
	defer d.endDecompose()

	if err := matrix.ValidateSquare(d.input); err != nil {
		d.clearFactors()

		return decomposeErrorf(opLU, err)
	}
	n := d.input.Rows()
	lu := d.input.CloneDense()
	ld := lu.RawData() // column-major, stride n
	piv := make([]int, n)
	parity := 1.0
	singular := false

	// Stage 2: implicit row scaling.
	vv := make([]float64, n)
	var i, j, k int
	var big, tmp float64
	for i = 0; i < n; i++ {
		big = 0
		for j = 0; j < n; j++ { // strided row walk
			if a := math.Abs(ld[j*n+i]); a > big {
				big = a
			}
		}
		if big == 0 {
			singular = true // all-zero row; neutral scale keeps pivoting defined
			vv[i] = 1
		} else {
			vv[i] = 1 / big
		}
	}

	// Stage 3: elimination.
	var imax int
	var pivot float64
	for k = 0; k < n; k++ {
		ck := k * n
		big, imax = 0, k
		for i = k; i < n; i++ { // scaled pivot search down column k
			if tmp = vv[i] * math.Abs(ld[ck+i]); tmp > big {
				big, imax = tmp, i
			}
		}
		if imax != k {
			for j = 0; j < n; j++ { // swap rows k and imax
				cj := j * n
				ld[cj+k], ld[cj+imax] = ld[cj+imax], ld[cj+k]
			}
			parity = -parity
			vv[imax] = vv[k]
		}
		piv[k] = imax
		if ld[ck+k] == 0 {
			ld[ck+k] = tinyPivot
			singular = true
		}
		pivot = ld[ck+k]
		for i = k + 1; i < n; i++ { // multipliers, contiguous in column k
			ld[ck+i] /= pivot
		}
		for j = k + 1; j < n; j++ { // trailing update, column by column
			cj := j * n
			tmp = ld[cj+k]
			if tmp == 0 {
				continue
			}
			for i = k + 1; i < n; i++ {
				ld[cj+i] -= ld[ck+i] * tmp
			}
		}
	}

	d.lu, d.piv, d.parity, d.singular = lu, piv, parity, singular

	return nil
}

// L extracts the unit lower triangular factor as a fresh matrix.
// Errors: ErrNotAvailable.
func (d *LUDecomposer) L() (*matrix.Dense, error) {
	if !d.IsDecompositionAvailable() {
		return nil, decomposeErrorf(opLU, ErrNotAvailable)
	}
	n := d.lu.Rows()
	out, _ := matrix.NewDense(n, n) // n >= 1 by construction
	ld, od := d.lu.RawData(), out.RawData()
	for j := 0; j < n; j++ {
		cj := j * n
		od[cj+j] = 1
		copy(od[cj+j+1:cj+n], ld[cj+j+1:cj+n])
	}

	return out, nil
}

// U extracts the upper triangular factor as a fresh matrix.
// Errors: ErrNotAvailable.
func (d *LUDecomposer) U() (*matrix.Dense, error) {
	if !d.IsDecompositionAvailable() {
		return nil, decomposeErrorf(opLU, ErrNotAvailable)
	}
	n := d.lu.Rows()
	out, _ := matrix.NewDense(n, n)
	ld, od := d.lu.RawData(), out.RawData()
	for j := 0; j < n; j++ {
		cj := j * n
		copy(od[cj:cj+j+1], ld[cj:cj+j+1])
	}

	return out, nil
}

// Pivots returns the row-interchange record: at elimination step k, row
// k was swapped with row Pivots()[k]. Owned by the decomposer; treat as
// read-only. Errors: ErrNotAvailable.
func (d *LUDecomposer) Pivots() ([]int, error) {
	if !d.IsDecompositionAvailable() {
		return nil, decomposeErrorf(opLU, ErrNotAvailable)
	}

	return d.piv, nil
}

// IsSingular reports whether elimination hit a zero pivot.
// Errors: ErrNotAvailable.
func (d *LUDecomposer) IsSingular() (bool, error) {
	if !d.IsDecompositionAvailable() {
		return false, decomposeErrorf(opLU, ErrNotAvailable)
	}

	return d.singular, nil
}

// Determinant returns parity·Π U[k,k], or exactly 0 for a singular
// input (the tinyPivot substitute must not leak into the product).
// Errors: ErrNotAvailable. Complexity: O(n).
func (d *LUDecomposer) Determinant() (float64, error) {
	if !d.IsDecompositionAvailable() {
		return 0, decomposeErrorf(opLU, ErrNotAvailable)
	}
	if d.singular {
		return 0, nil
	}
	n := d.lu.Rows()
	ld := d.lu.RawData()
	det := d.parity
	for k := 0; k < n; k++ {
		det *= ld[k*n+k]
	}

	return det, nil
}

// Solve computes X with A·X = B by forward and back substitution
// through the factors, one right-hand-side column at a time.
//
// Errors:
//   - ErrNotAvailable, ErrSingular (the factorization cannot support
//     an exact solve), matrix.ErrNilMatrix, and
//     matrix.ErrDimensionMismatch when B's row count differs from n.
//
// Complexity: Time O(n²) per right-hand-side column.
func (d *LUDecomposer) Solve(b *matrix.Dense) (*matrix.Dense, error) {
	result := &matrix.Dense{}
	if err := d.SolveInto(b, result); err != nil {
		return nil, err
	}

	return result, nil
}

// SolveInto is Solve writing into a caller-supplied result, resizing it
// only when its shape mismatches n×p. result must not alias b.
func (d *LUDecomposer) SolveInto(b, result *matrix.Dense) error {
	if !d.IsDecompositionAvailable() {
		return decomposeErrorf(opLUSolve, ErrNotAvailable)
	}
	if d.singular {
		return decomposeErrorf(opLUSolve, ErrSingular)
	}
	if b == nil || result == nil {
		return decomposeErrorf(opLUSolve, matrix.ErrNilMatrix)
	}
	n := d.lu.Rows()
	if b.Rows() != n {
		return decomposeErrorf(opLUSolve, matrix.ErrDimensionMismatch)
	}
	p := b.Cols()
	if result.Rows() != n || result.Cols() != p {
		if err := result.Resize(n, p); err != nil {
			return decomposeErrorf(opLUSolve, err) // unreachable: n, p >= 1
		}
	}

	ld := d.lu.RawData()
	var col, i, j, ip, ii int
	var sum float64
	for col = 0; col < p; col++ {
		x := result.RawColumn(col)
		copy(x, b.RawColumn(col))
		// Forward substitution with pivot unscrambling; ii skips the
		// leading zeros of sparse right-hand sides.
		ii = 0
		for i = 0; i < n; i++ {
			ip = d.piv[i]
			sum = x[ip]
			x[ip] = x[i]
			if ii != 0 {
				for j = ii - 1; j < i; j++ {
					sum -= ld[j*n+i] * x[j]
				}
			} else if sum != 0 {
				ii = i + 1
			}
			x[i] = sum
		}
		// Back substitution through U.
		for i = n - 1; i >= 0; i-- {
			sum = x[i]
			for j = i + 1; j < n; j++ {
				sum -= ld[j*n+i] * x[j]
			}
			x[i] = sum / ld[i*n+i]
		}
	}

	return nil
}
