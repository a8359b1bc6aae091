// SPDX-License-Identifier: MIT
// Package decompose: QR factorization by Householder reflections, in a
// full (m×m Q) and an economy (m×n Q) flavor sharing one kernel.

package decompose

import (
	"math"

	"github.com/katalvlaran/linalg/matrix"
)

const (
	opQR        = "QR"
	opQRSolve   = "QR.Solve"
	opEconomyQR = "EconomyQR"
)

// householderQRKernel triangularizes the m×n working buffer ad
// (column-major, overwritten) with scaled Householder reflections and
// accumulates Qᵀ into qtd (m×m, must start as the identity). It
// returns the R diagonal (length min(m,n)) and whether every diagonal
// entry is nonzero. After the call ad holds the strictly-upper part of
// R above the diagonal and the reflector vectors at and below it.
//
// Complexity: Time O(m·n²+m²·n) with accumulation, Space O(1) scratch.
func householderQRKernel(ad []float64, m, n int, qtd []float64) (diag []float64, fullRank bool) {
	mn := m
	if n < mn {
		mn = n
	}
	diag = make([]float64, mn)
	fullRank = true

	kmax := mn
	if m-1 < kmax {
		kmax = m - 1 // a single-row tail needs no reflector
	}
	var i, j, k int
	var scale, sum, sigma, tau float64
	for k = 0; k < kmax; k++ {
		ck := k * m
		scale = 0
		for i = k; i < m; i++ {
			if a := math.Abs(ad[ck+i]); a > scale {
				scale = a
			}
		}
		if scale == 0 {
			fullRank = false // column already zero below and at the diagonal
			diag[k] = 0

			continue
		}
		sum = 0
		for i = k; i < m; i++ { // scaled reflector accumulation
			ad[ck+i] /= scale
			sum += ad[ck+i] * ad[ck+i]
		}
		sigma = withSign(math.Sqrt(sum), ad[ck+k])
		ad[ck+k] += sigma
		ckk := sigma * ad[ck+k] // reflector normalizer uᵀu/2
		diag[k] = -scale * sigma
		for j = k + 1; j < n; j++ { // reflect the remaining columns
			cj := j * m
			sum = 0
			for i = k; i < m; i++ {
				sum += ad[ck+i] * ad[cj+i]
			}
			tau = sum / ckk
			for i = k; i < m; i++ {
				ad[cj+i] -= tau * ad[ck+i]
			}
		}
		for j = 0; j < m; j++ { // accumulate into Qᵀ, column by column
			cj := j * m
			sum = 0
			for i = k; i < m; i++ {
				sum += ad[ck+i] * qtd[cj+i]
			}
			tau = sum / ckk
			for i = k; i < m; i++ {
				qtd[cj+i] -= tau * ad[ck+i]
			}
		}
	}
	for k = kmax; k < mn; k++ {
		diag[k] = ad[k*m+k]
	}
	for k = 0; k < mn; k++ {
		if diag[k] == 0 {
			fullRank = false
		}
	}

	return diag, fullRank
}

// buildUpperTriangular assembles R (rows×cols) from the kernel output:
// diag on the diagonal, the working buffer's strictly-upper entries
// above it, zeros below.
func buildUpperTriangular(ad []float64, m int, rows, cols int, diag []float64) *matrix.Dense {
	r, _ := matrix.NewDense(rows, cols) // rows, cols >= 1 at every call site
	rd := r.RawData()
	var i, j int
	for j = 0; j < cols; j++ {
		cj := j * rows
		top := j
		if rows-1 < top {
			top = rows - 1
		}
		for i = 0; i < top; i++ {
			rd[cj+i] = ad[j*m+i]
		}
		if j < len(diag) && j < rows {
			rd[cj+j] = diag[j]
		} else if top < j {
			rd[cj+top] = ad[j*m+top] // trapezoidal tail when cols > rows
		}
	}

	return r
}

// qrSolveUpper back-substitutes R·X = (Qᵀ·B)[0:n] per column of B,
// writing into result (resized only on shape mismatch).
func qrSolveUpper(tag string, qt, r *matrix.Dense, b, result *matrix.Dense) error {
	if b == nil || result == nil {
		return decomposeErrorf(tag, matrix.ErrNilMatrix)
	}
	m, n := qt.Cols(), r.Cols()
	if b.Rows() != m {
		return decomposeErrorf(tag, matrix.ErrDimensionMismatch)
	}
	rd := r.RawData()
	rstride := r.Rows()
	for k := 0; k < n; k++ {
		if rd[k*rstride+k] == 0 {
			return decomposeErrorf(tag, ErrRankDeficient)
		}
	}
	p := b.Cols()
	if result.Rows() != n || result.Cols() != p {
		if err := result.Resize(n, p); err != nil {
			return decomposeErrorf(tag, err) // unreachable: n, p >= 1
		}
	}

	qtd := qt.RawData()
	qrows := qt.Rows()
	y := make([]float64, n) // leading rows of Qᵀ·b
	var col, i, j int
	var sum float64
	for col = 0; col < p; col++ {
		bcol := b.RawColumn(col)
		for i = 0; i < n; i++ { // y = (Qᵀ·b)[0:n], row i of qt strided
			sum = 0
			for j = 0; j < m; j++ {
				sum += qtd[j*qrows+i] * bcol[j]
			}
			y[i] = sum
		}
		xcol := result.RawColumn(col)
		for i = n - 1; i >= 0; i-- { // back substitution
			sum = y[i]
			for j = i + 1; j < n; j++ {
				sum -= rd[j*rstride+i] * xcol[j]
			}
			xcol[i] = sum / rd[i*rstride+i]
		}
	}

	return nil
}

// QRDecomposer factors an m×n matrix as A = Q·R with Q m×m orthogonal
// and R m×n upper trapezoidal. Qᵀ is the natural product of the
// reflections, so it is what gets stored; Q is materialized on demand.
type QRDecomposer struct {
	state

	qt       *matrix.Dense // Qᵀ, m×m
	r        *matrix.Dense // R, m×n
	fullRank bool
}

// NewQRDecomposer builds a decomposer for input (nil starts not ready).
func NewQRDecomposer(input *matrix.Dense) *QRDecomposer {
	d := &QRDecomposer{}
	d.input = input

	return d
}

// SetInputMatrix installs a new borrowed input and clears the factors.
func (d *QRDecomposer) SetInputMatrix(m *matrix.Dense) error {
	if err := d.replaceInput(opQR, m); err != nil {
		return err
	}
	d.qt, d.r, d.fullRank = nil, nil, false

	return nil
}

// IsDecompositionAvailable reports whether any factor is present. Both
// are always published together, so the OR mirrors the AND here; the
// weaker form is kept for symmetry with factorizations that can expose
// factors independently.
func (d *QRDecomposer) IsDecompositionAvailable() bool {
	return d.qt != nil || d.r != nil
}

// Decompose triangularizes a working copy of the input, accumulating
// Qᵀ alongside.
//
// Errors: ErrNotReady, ErrLocked. Rank deficiency is not an error at
// this stage; it only blocks Solve.
//
// Complexity: Time O(m²·n), Space O(m² + m·n).
func (d *QRDecomposer) Decompose() error {
	if err := d.beginDecompose(opQR); err != nil {
		return err
	}
	defer d.endDecompose()

	m, n := d.input.Rows(), d.input.Cols()
	work := d.input.CloneDense()
	qt, err := matrix.NewIdentity(m, m)
	if err != nil {
		d.qt, d.r, d.fullRank = nil, nil, false

		return decomposeErrorf(opQR, err) // unreachable for a valid input
	}
	diag, fullRank := householderQRKernel(work.RawData(), m, n, qt.RawData())

	d.qt = qt
	d.r = buildUpperTriangular(work.RawData(), m, m, n, diag)
	d.fullRank = fullRank

	return nil
}

// Q returns a fresh m×m orthogonal factor (the transpose of the stored
// Qᵀ). Errors: ErrNotAvailable.
func (d *QRDecomposer) Q() (*matrix.Dense, error) {
	if !d.IsDecompositionAvailable() {
		return nil, decomposeErrorf(opQR, ErrNotAvailable)
	}
	q := &matrix.Dense{}
	if err := d.qt.TransposeInto(q); err != nil {
		return nil, decomposeErrorf(opQR, err) // unreachable: q non-nil
	}

	return q, nil
}

// QT returns the stored m×m transpose factor. Owned by the decomposer;
// treat as read-only. Errors: ErrNotAvailable.
func (d *QRDecomposer) QT() (*matrix.Dense, error) {
	if !d.IsDecompositionAvailable() {
		return nil, decomposeErrorf(opQR, ErrNotAvailable)
	}

	return d.qt, nil
}

// R returns the m×n upper trapezoidal factor. Owned by the decomposer;
// treat as read-only. Errors: ErrNotAvailable.
func (d *QRDecomposer) R() (*matrix.Dense, error) {
	if !d.IsDecompositionAvailable() {
		return nil, decomposeErrorf(opQR, ErrNotAvailable)
	}

	return d.r, nil
}

// HasFullRank reports whether every R diagonal entry is nonzero.
// Errors: ErrNotAvailable.
func (d *QRDecomposer) HasFullRank() (bool, error) {
	if !d.IsDecompositionAvailable() {
		return false, decomposeErrorf(opQR, ErrNotAvailable)
	}

	return d.fullRank, nil
}

// Solve computes the least-squares solution X of A·X ≈ B through
// R·X = (Qᵀ·B)[0:n]. Requires m >= n (overdetermined or square).
//
// Errors:
//   - ErrNotAvailable, ErrRankDeficient (zero R diagonal),
//     matrix.ErrNilMatrix, matrix.ErrDimensionMismatch (B row count,
//     or an underdetermined m < n input).
//
// Complexity: Time O(p·(m·n + n²)) for B with p columns.
func (d *QRDecomposer) Solve(b *matrix.Dense) (*matrix.Dense, error) {
	result := &matrix.Dense{}
	if err := d.SolveInto(b, result); err != nil {
		return nil, err
	}

	return result, nil
}

// SolveInto is Solve writing into a caller-supplied result. result
// must not alias b.
func (d *QRDecomposer) SolveInto(b, result *matrix.Dense) error {
	if !d.IsDecompositionAvailable() {
		return decomposeErrorf(opQRSolve, ErrNotAvailable)
	}
	if d.r.Rows() < d.r.Cols() {
		return decomposeErrorf(opQRSolve, matrix.ErrDimensionMismatch)
	}

	return qrSolveUpper(opQRSolve, d.qt, d.r, b, result)
}

// EconomyQRDecomposer factors an m×n matrix with m >= n as A = Q·R
// with a thin Q (m×n, orthonormal columns) and a square R (n×n). The
// thin form stores O(m·n) instead of O(m²) and is the building block
// the RQ decomposition reuses.
type EconomyQRDecomposer struct {
	state

	q        *matrix.Dense // thin Q, m×n
	r        *matrix.Dense // R, n×n
	fullRank bool
}

// NewEconomyQRDecomposer builds a decomposer for input (nil starts not
// ready).
func NewEconomyQRDecomposer(input *matrix.Dense) *EconomyQRDecomposer {
	d := &EconomyQRDecomposer{}
	d.input = input

	return d
}

// SetInputMatrix installs a new borrowed input and clears the factors.
func (d *EconomyQRDecomposer) SetInputMatrix(m *matrix.Dense) error {
	if err := d.replaceInput(opEconomyQR, m); err != nil {
		return err
	}
	d.q, d.r, d.fullRank = nil, nil, false

	return nil
}

// IsDecompositionAvailable reports whether any factor is present.
func (d *EconomyQRDecomposer) IsDecompositionAvailable() bool {
	return d.q != nil || d.r != nil
}

// Decompose runs the shared Householder kernel and keeps only the thin
// slice of Q.
//
// Errors: ErrNotReady, ErrLocked, and matrix.ErrDimensionMismatch for
// m < n (the economy form needs at least as many rows as columns).
//
// Complexity: Time O(m²·n), Space O(m·n).
func (d *EconomyQRDecomposer) Decompose() error {
	if err := d.beginDecompose(opEconomyQR); err != nil {
		return err
	}
	defer d.endDecompose()

	m, n := d.input.Rows(), d.input.Cols()
	if m < n {
		d.q, d.r, d.fullRank = nil, nil, false

		return decomposeErrorf(opEconomyQR, matrix.ErrDimensionMismatch)
	}
	work := d.input.CloneDense()
	qt, err := matrix.NewIdentity(m, m)
	if err != nil {
		d.q, d.r, d.fullRank = nil, nil, false

		return decomposeErrorf(opEconomyQR, err) // unreachable for a valid input
	}
	diag, fullRank := householderQRKernel(work.RawData(), m, n, qt.RawData())

	// Thin Q: column j is row j of Qᵀ, for the first n rows.
	q, _ := matrix.NewDense(m, n) // m >= n >= 1 here
	qd, qtd := q.RawData(), qt.RawData()
	var i, j int
	for j = 0; j < n; j++ {
		cj := j * m
		for i = 0; i < m; i++ { // strided read, contiguous write
			qd[cj+i] = qtd[i*m+j]
		}
	}

	d.q = q
	d.r = buildUpperTriangular(work.RawData(), m, n, n, diag)
	d.fullRank = fullRank

	return nil
}

// Q returns the thin m×n factor. Owned by the decomposer; treat as
// read-only. Errors: ErrNotAvailable.
func (d *EconomyQRDecomposer) Q() (*matrix.Dense, error) {
	if !d.IsDecompositionAvailable() {
		return nil, decomposeErrorf(opEconomyQR, ErrNotAvailable)
	}

	return d.q, nil
}

// R returns the square n×n factor. Owned by the decomposer; treat as
// read-only. Errors: ErrNotAvailable.
func (d *EconomyQRDecomposer) R() (*matrix.Dense, error) {
	if !d.IsDecompositionAvailable() {
		return nil, decomposeErrorf(opEconomyQR, ErrNotAvailable)
	}

	return d.r, nil
}

// HasFullRank reports whether every R diagonal entry is nonzero.
// Errors: ErrNotAvailable.
func (d *EconomyQRDecomposer) HasFullRank() (bool, error) {
	if !d.IsDecompositionAvailable() {
		return false, decomposeErrorf(opEconomyQR, ErrNotAvailable)
	}

	return d.fullRank, nil
}

// Solve computes the least-squares solution X of A·X ≈ B through the
// thin factors: R·X = Qᵀ·B. Errors and complexity match the full
// decomposer's Solve.
func (d *EconomyQRDecomposer) Solve(b *matrix.Dense) (*matrix.Dense, error) {
	result := &matrix.Dense{}
	if err := d.SolveInto(b, result); err != nil {
		return nil, err
	}

	return result, nil
}

// SolveInto is Solve writing into a caller-supplied result. result
// must not alias b.
func (d *EconomyQRDecomposer) SolveInto(b, result *matrix.Dense) error {
	if !d.IsDecompositionAvailable() {
		return decomposeErrorf(opQRSolve, ErrNotAvailable)
	}
	if b == nil || result == nil {
		return decomposeErrorf(opQRSolve, matrix.ErrNilMatrix)
	}
	m, n := d.q.Rows(), d.q.Cols()
	if b.Rows() != m {
		return decomposeErrorf(opQRSolve, matrix.ErrDimensionMismatch)
	}
	rd := d.r.RawData()
	for k := 0; k < n; k++ {
		if rd[k*n+k] == 0 {
			return decomposeErrorf(opQRSolve, ErrRankDeficient)
		}
	}
	p := b.Cols()
	if result.Rows() != n || result.Cols() != p {
		if err := result.Resize(n, p); err != nil {
			return decomposeErrorf(opQRSolve, err) // unreachable: n, p >= 1
		}
	}

	qd := d.q.RawData()
	y := make([]float64, n)
	var col, i, j int
	var sum float64
	for col = 0; col < p; col++ {
		bcol := b.RawColumn(col)
		for i = 0; i < n; i++ { // y = Qᵀ·b via contiguous Q columns
			cq := i * m
			sum = 0
			for j = 0; j < m; j++ {
				sum += qd[cq+j] * bcol[j]
			}
			y[i] = sum
		}
		xcol := result.RawColumn(col)
		for i = n - 1; i >= 0; i-- {
			sum = y[i]
			for j = i + 1; j < n; j++ {
				sum -= rd[j*n+i] * xcol[j]
			}
			xcol[i] = sum / rd[i*n+i]
		}
	}

	return nil
}
