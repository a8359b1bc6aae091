// SPDX-License-Identifier: MIT

package decompose

import (
	"github.com/katalvlaran/linalg/matrix"
)

const opRQ = "RQ"

// RQDecomposer factors a wide matrix (m <= n) as A = R·Q with R m×m
// upper triangular and Q m×n with orthonormal rows.
//
// The factorization is derived from the economy QR of the
// row-reversed transpose: with J the reversal permutation,
// (J·A)ᵀ = Q̃·R̃ gives A = (J·R̃ᵀ·J)·(J·Q̃ᵀ), where the inner term is
// upper triangular again and the outer term keeps orthonormal rows.
type RQDecomposer struct {
	state

	r        *matrix.Dense // m×m upper triangular
	q        *matrix.Dense // m×n, orthonormal rows
	fullRank bool
}

// NewRQDecomposer builds a decomposer for input (nil starts not ready).
func NewRQDecomposer(input *matrix.Dense) *RQDecomposer {
	d := &RQDecomposer{}
	d.input = input

	return d
}

// SetInputMatrix installs a new borrowed input and clears the factors.
func (d *RQDecomposer) SetInputMatrix(m *matrix.Dense) error {
	if err := d.replaceInput(opRQ, m); err != nil {
		return err
	}
	d.r, d.q, d.fullRank = nil, nil, false

	return nil
}

// IsDecompositionAvailable reports whether any factor is present.
func (d *RQDecomposer) IsDecompositionAvailable() bool {
	return d.r != nil || d.q != nil
}

// Decompose builds the reversed transpose, runs economy QR on it and
// unreverses the factors.
//
// Implementation:
//   - Stage 1: entry guards; the input must be wide or square (m <= n).
//   - Stage 2: working matrix W (n×m) with W[r][c] = A[m-1-c][r], the
//     transpose of A with rows reversed; economy QR of W.
//   - Stage 3: R[i][j] = R̃[m-1-j][m-1-i] (reversal on both sides of
//     the transpose) and Q[i][j] = Q̃[j][m-1-i].
//
// Errors: ErrNotReady, ErrLocked, matrix.ErrDimensionMismatch (m > n).
//
// Complexity: Time O(n²·m), Space O(n·m).
func (d *RQDecomposer) Decompose() error {
	if err := d.beginDecompose(opRQ); err != nil {
		return err
	}
	defer d.endDecompose()

	m, n := d.input.Rows(), d.input.Cols()
	if m > n {
		d.r, d.q, d.fullRank = nil, nil, false

		return decomposeErrorf(opRQ, matrix.ErrDimensionMismatch)
	}

	// Stage 2: W = (J·A)ᵀ, n×m. Column c of W is row m-1-c of A.
	work, err := matrix.NewDense(n, m)
	if err != nil {
		d.r, d.q, d.fullRank = nil, nil, false

		return decomposeErrorf(opRQ, err) // unreachable for a valid input
	}
	wd, ad := work.RawData(), d.input.RawData()
	var i, j int
	for j = 0; j < m; j++ {
		cw := j * n
		src := m - 1 - j
		for i = 0; i < n; i++ { // strided row read, contiguous column write
			wd[cw+i] = ad[i*m+src]
		}
	}

	inner := NewEconomyQRDecomposer(work)
	if err = inner.Decompose(); err != nil {
		d.r, d.q, d.fullRank = nil, nil, false

		return decomposeErrorf(opRQ, err)
	}
	qTilde, _ := inner.Q() // n×m; available right after Decompose
	rTilde, _ := inner.R() // m×m

	// Stage 3: unreverse into the published factors.
	r, _ := matrix.NewDense(m, m) // m >= 1 here
	q, _ := matrix.NewDense(m, n)
	rd, qd := r.RawData(), q.RawData()
	rtd, qtd := rTilde.RawData(), qTilde.RawData()
	for j = 0; j < m; j++ {
		cj := j * m
		for i = 0; i <= j; i++ { // upper triangle only; below stays zero
			rd[cj+i] = rtd[(m-1-i)*m+(m-1-j)]
		}
	}
	for j = 0; j < n; j++ {
		cj := j * m
		for i = 0; i < m; i++ {
			qd[cj+i] = qtd[(m-1-i)*n+j]
		}
	}

	fullRank, _ := inner.HasFullRank()
	d.r, d.q, d.fullRank = r, q, fullRank

	return nil
}

// R returns the m×m upper triangular factor. Owned by the decomposer;
// treat as read-only. Errors: ErrNotAvailable.
func (d *RQDecomposer) R() (*matrix.Dense, error) {
	if !d.IsDecompositionAvailable() {
		return nil, decomposeErrorf(opRQ, ErrNotAvailable)
	}

	return d.r, nil
}

// Q returns the m×n factor with orthonormal rows. Owned by the
// decomposer; treat as read-only. Errors: ErrNotAvailable.
func (d *RQDecomposer) Q() (*matrix.Dense, error) {
	if !d.IsDecompositionAvailable() {
		return nil, decomposeErrorf(opRQ, ErrNotAvailable)
	}

	return d.q, nil
}

// HasFullRank reports whether the triangular factor has a nonzero
// diagonal. Errors: ErrNotAvailable.
func (d *RQDecomposer) HasFullRank() (bool, error) {
	if !d.IsDecompositionAvailable() {
		return false, decomposeErrorf(opRQ, ErrNotAvailable)
	}

	return d.fullRank, nil
}
