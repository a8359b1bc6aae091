// SPDX-License-Identifier: MIT

package decompose

import (
	"math"

	"github.com/katalvlaran/linalg/matrix"
)

const (
	opCholesky      = "Cholesky"
	opCholeskySolve = "Cholesky.Solve"
)

// CholeskyDecomposer factors a symmetric positive definite matrix as
// A = L·Lᵀ with L lower triangular. Only the lower triangle of the
// input is read; symmetry is assumed, not checked. A non-positive
// pivot marks the matrix as not SPD without failing Decompose, so the
// decomposer doubles as an SPD test.
type CholeskyDecomposer struct {
	state

	el  *matrix.Dense // L, n×n lower triangular (meaningful only when spd)
	spd bool
}

// NewCholeskyDecomposer builds a decomposer for input (nil starts not
// ready).
func NewCholeskyDecomposer(input *matrix.Dense) *CholeskyDecomposer {
	d := &CholeskyDecomposer{}
	d.input = input

	return d
}

// SetInputMatrix installs a new borrowed input and clears the factor.
func (d *CholeskyDecomposer) SetInputMatrix(m *matrix.Dense) error {
	if err := d.replaceInput(opCholesky, m); err != nil {
		return err
	}
	d.el, d.spd = nil, false

	return nil
}

// IsDecompositionAvailable reports whether Decompose ran to completion
// (including the not-SPD outcome, which IsSPD distinguishes).
func (d *CholeskyDecomposer) IsDecompositionAvailable() bool {
	return d.el != nil
}

// Decompose runs the factorization.
//
// Implementation:
//   - Stage 1: entry guards; the input must be square.
//   - Stage 2: column-ordered elimination. Each diagonal pivot is the
//     residual sum A[i,i] - Σ L[i,k]²; a non-positive pivot stops the
//     elimination and records spd = false.
//   - Stage 3: zero the upper triangle of the working copy so L is a
//     proper triangular matrix.
//
// Errors: ErrNotReady, ErrLocked, matrix.ErrNonSquare. A non-SPD input
// is NOT an error here; IsSPD reports the outcome and L/Solve refuse
// with ErrNotSPD.
//
// Complexity: Time O(n³/6), Space O(n²).
func (d *CholeskyDecomposer) Decompose() error {
	if err := d.beginDecompose(opCholesky); err != nil {
		return err
	}
	defer d.endDecompose()

	if err := matrix.ValidateSquare(d.input); err != nil {
		d.el, d.spd = nil, false

		return decomposeErrorf(opCholesky, err)
	}
	n := d.input.Rows()
	el := d.input.CloneDense()
	ed := el.RawData()
	spd := true

	var i, j, k int
	var sum float64
elimination:
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			sum = ed[j*n+i] // A[i,j] read from the (symmetric) input copy
			for k = i - 1; k >= 0; k-- {
				sum -= ed[k*n+i] * ed[k*n+j] // L[i,k]·L[j,k]
			}
			if i == j {
				if sum <= 0 {
					spd = false

					break elimination
				}
				ed[i*n+i] = math.Sqrt(sum)
			} else {
				ed[i*n+j] = sum / ed[i*n+i]
			}
		}
	}
	if spd {
		for j = 1; j < n; j++ { // wipe the upper triangle
			cj := j * n
			for i = 0; i < j; i++ {
				ed[cj+i] = 0
			}
		}
	}

	d.el, d.spd = el, spd

	return nil
}

// IsSPD reports whether the input proved symmetric positive definite.
// Errors: ErrNotAvailable before Decompose.
func (d *CholeskyDecomposer) IsSPD() (bool, error) {
	if !d.IsDecompositionAvailable() {
		return false, decomposeErrorf(opCholesky, ErrNotAvailable)
	}

	return d.spd, nil
}

// L returns the lower triangular factor. Owned by the decomposer;
// treat as read-only.
//
// Errors: ErrNotAvailable, ErrNotSPD.
func (d *CholeskyDecomposer) L() (*matrix.Dense, error) {
	if !d.IsDecompositionAvailable() {
		return nil, decomposeErrorf(opCholesky, ErrNotAvailable)
	}
	if !d.spd {
		return nil, decomposeErrorf(opCholesky, ErrNotSPD)
	}

	return d.el, nil
}

// LogDeterminant returns ln det A = 2·Σ ln L[i,i], numerically safe
// where the determinant itself would underflow.
//
// Errors: ErrNotAvailable, ErrNotSPD.
func (d *CholeskyDecomposer) LogDeterminant() (float64, error) {
	if !d.IsDecompositionAvailable() {
		return 0, decomposeErrorf(opCholesky, ErrNotAvailable)
	}
	if !d.spd {
		return 0, decomposeErrorf(opCholesky, ErrNotSPD)
	}
	n := d.el.Rows()
	ed := d.el.RawData()
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += math.Log(ed[i*n+i])
	}

	return 2 * sum, nil
}

// Determinant returns det A as the squared product of the L diagonal.
// Prefer LogDeterminant for large or ill-scaled matrices.
//
// Errors: ErrNotAvailable, ErrNotSPD.
func (d *CholeskyDecomposer) Determinant() (float64, error) {
	if !d.IsDecompositionAvailable() {
		return 0, decomposeErrorf(opCholesky, ErrNotAvailable)
	}
	if !d.spd {
		return 0, decomposeErrorf(opCholesky, ErrNotSPD)
	}
	n := d.el.Rows()
	ed := d.el.RawData()
	prod := 1.0
	for i := 0; i < n; i++ {
		prod *= ed[i*n+i]
	}

	return prod * prod, nil
}

// Solve computes X with A·X = B by one forward and one back
// substitution through L per right-hand-side column.
//
// Errors:
//   - ErrNotAvailable, ErrNotSPD, matrix.ErrNilMatrix,
//     matrix.ErrDimensionMismatch (B row count).
//
// Complexity: Time O(n²) per right-hand-side column.
func (d *CholeskyDecomposer) Solve(b *matrix.Dense) (*matrix.Dense, error) {
	result := &matrix.Dense{}
	if err := d.SolveInto(b, result); err != nil {
		return nil, err
	}

	return result, nil
}

// SolveInto is Solve writing into a caller-supplied result, resizing
// it only when its shape mismatches. result must not alias b.
func (d *CholeskyDecomposer) SolveInto(b, result *matrix.Dense) error {
	if !d.IsDecompositionAvailable() {
		return decomposeErrorf(opCholeskySolve, ErrNotAvailable)
	}
	if !d.spd {
		return decomposeErrorf(opCholeskySolve, ErrNotSPD)
	}
	if b == nil || result == nil {
		return decomposeErrorf(opCholeskySolve, matrix.ErrNilMatrix)
	}
	n := d.el.Rows()
	if b.Rows() != n {
		return decomposeErrorf(opCholeskySolve, matrix.ErrDimensionMismatch)
	}
	p := b.Cols()
	if result.Rows() != n || result.Cols() != p {
		if err := result.Resize(n, p); err != nil {
			return decomposeErrorf(opCholeskySolve, err) // unreachable: n, p >= 1
		}
	}

	ed := d.el.RawData()
	var col, i, k int
	var sum float64
	for col = 0; col < p; col++ {
		x := result.RawColumn(col)
		copy(x, b.RawColumn(col))
		for i = 0; i < n; i++ { // L·y = b
			sum = x[i]
			for k = i - 1; k >= 0; k-- {
				sum -= ed[k*n+i] * x[k]
			}
			x[i] = sum / ed[i*n+i]
		}
		for i = n - 1; i >= 0; i-- { // Lᵀ·x = y, column i of L contiguous
			sum = x[i]
			ci := i * n
			for k = i + 1; k < n; k++ {
				sum -= ed[ci+k] * x[k]
			}
			x[i] = sum / ed[ci+i]
		}
	}

	return nil
}
