// SPDX-License-Identifier: MIT

// Package matrix: Dense is the concrete, column-major implementation of
// the Matrix interface. Elements live in a flat slice; a precomputed
// column-offset table maps (row, col) to buffer positions so that every
// column is a contiguous sub-slice of the backing storage.
package matrix

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// denseErrorf wraps an underlying error with Dense method context.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a column-major matrix of float64 values.
//
// Storage invariant: data holds rows*cols elements and
// data[colIndex[c]+r] is element (r, c) with colIndex[c] = c*rows.
// Both slices are replaced atomically on Resize; no Dense instance ever
// shares its buffer with another unless the caller takes a raw view.
type Dense struct {
	rows, cols int       // dimensions, always >= 1
	data       []float64 // flat backing storage, length rows*cols, column-major
	colIndex   []int     // column start offsets, colIndex[c] = c*rows
}

// newColIndex builds the column-offset table for a rows×cols layout.
// Complexity: O(cols).
func newColIndex(rows, cols int) []int {
	idx := make([]int, cols)
	for c := 0; c < cols; c++ {
		idx[c] = c * rows // contiguous columns of length rows
	}

	return idx
}

// NewDense creates a rows×cols Dense matrix initialized to zeros.
// Implementation:
//   - Stage 1: validate rows and cols >= 1.
//   - Stage 2: allocate flat buffer and column-offset table.
//
// Errors:
//   - ErrInvalidDimensions when either dimension is < 1.
//
// Complexity: O(rows*cols) time and memory.
func NewDense(rows, cols int) (*Dense, error) {
	// Validate dimensions before allocating anything.
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{
		rows:     rows,
		cols:     cols,
		data:     make([]float64, rows*cols),
		colIndex: newColIndex(rows, cols),
	}, nil
}

// Rows returns the number of rows in the matrix.
// Complexity: O(1).
func (m *Dense) Rows() int {
	return m.rows
}

// Cols returns the number of columns in the matrix.
// Complexity: O(1).
func (m *Dense) Cols() int {
	return m.cols
}

// indexOf computes the flat index for (row, col) or returns
// ErrIndexOutOfBounds. Complexity: O(1).
func (m *Dense) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= m.rows {
		return 0, denseErrorf(method, row, col, ErrIndexOutOfBounds)
	}
	if col < 0 || col >= m.cols {
		return 0, denseErrorf(method, row, col, ErrIndexOutOfBounds)
	}

	return m.colIndex[col] + row, nil
}

// At retrieves the element at (row, col) with bounds checking.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	idx, err := m.indexOf("At", row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set assigns value v at (row, col) with bounds checking.
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	idx, err := m.indexOf("Set", row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v

	return nil
}

// at reads element (row, col) without bounds validation. Trusted
// kernels only; the column-index invariant must hold.
func (m *Dense) at(row, col int) float64 {
	return m.data[m.colIndex[col]+row]
}

// set writes element (row, col) without bounds validation. Trusted
// kernels only.
func (m *Dense) set(row, col int, v float64) {
	m.data[m.colIndex[col]+row] = v
}

// RawData exposes the column-major backing slice for trusted hot-path
// code (decomposers, tight kernels). Mutating the returned slice
// mutates the matrix; no bounds checks apply. Element (r, c) lives at
// index c*Rows()+r. Consumers relying on bounds checking must wrap
// with At/Set instead.
func (m *Dense) RawData() []float64 {
	return m.data
}

// RawColumn exposes column col as a contiguous sub-slice of the
// backing storage (length Rows). Mutating the returned slice mutates
// the matrix. No bounds checks; trusted callers only.
func (m *Dense) RawColumn(col int) []float64 {
	start := m.colIndex[col]

	return m.data[start : start+m.rows]
}

// Resize replaces the storage with a fresh zeroed rows×cols buffer and
// a matching column-offset table. Old contents are NOT preserved; the
// swap is atomic (either everything is replaced or nothing is).
//
// Errors:
//   - ErrInvalidDimensions when either dimension is < 1.
//
// Complexity: O(rows*cols).
func (m *Dense) Resize(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return ErrInvalidDimensions
	}
	// Build both replacement structures before touching the receiver so
	// the swap below cannot leave a half-resized matrix.
	data := make([]float64, rows*cols)
	idx := newColIndex(rows, cols)

	m.rows, m.cols, m.data, m.colIndex = rows, cols, data, idx

	return nil
}

// Clone returns a deep copy of the Dense matrix.
// Complexity: O(rows*cols) time and memory.
func (m *Dense) Clone() Matrix {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{
		rows:     m.rows,
		cols:     m.cols,
		data:     cp,
		colIndex: newColIndex(m.rows, m.cols),
	}
}

// CloneDense is Clone with a concrete return type, avoiding a type
// assertion at call sites that stay inside the package's Dense world.
func (m *Dense) CloneDense() *Dense {
	return m.Clone().(*Dense)
}

// CopyTo copies the receiver's contents into dst, resizing dst only
// when its shape differs. dst ends up an independent copy (no buffer
// sharing).
//
// Errors:
//   - ErrNilMatrix when dst is nil.
//
// Complexity: O(rows*cols).
func (m *Dense) CopyTo(dst *Dense) error {
	if dst == nil {
		return ErrNilMatrix
	}
	if dst.rows != m.rows || dst.cols != m.cols {
		if err := dst.Resize(m.rows, m.cols); err != nil {
			return err // unreachable for a valid receiver; kept for safety
		}
	}
	copy(dst.data, m.data)

	return nil
}

// FillWithValue sets every element to v.
// Complexity: O(rows*cols).
func (m *Dense) FillWithValue(v float64) {
	for i := range m.data {
		m.data[i] = v
	}
}

// newDefaultRand returns a freshly seeded generator. One generator per
// call keeps independent matrices share-nothing (no global source).
func newDefaultRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// FillUniformRandom fills the matrix with uniform values in [lo, hi).
// rng is the explicit randomness source; pass nil for a freshly seeded
// generator (documented default). Supplying a seeded rng makes fills
// reproducible in tests.
//
// Errors:
//   - ErrDimensionMismatch when lo >= hi (degenerate interval).
//
// Complexity: O(rows*cols).
func (m *Dense) FillUniformRandom(lo, hi float64, rng *rand.Rand) error {
	if lo >= hi {
		return fmt.Errorf("Dense.FillUniformRandom: empty interval [%g,%g): %w", lo, hi, ErrDimensionMismatch)
	}
	if rng == nil {
		rng = newDefaultRand()
	}
	span := hi - lo
	for i := range m.data {
		m.data[i] = lo + span*rng.Float64()
	}

	return nil
}

// FillGaussianRandom fills the matrix with normal values of the given
// mean and standard deviation. rng semantics match FillUniformRandom.
//
// Errors:
//   - ErrDimensionMismatch when stddev <= 0.
//
// Complexity: O(rows*cols).
func (m *Dense) FillGaussianRandom(mean, stddev float64, rng *rand.Rand) error {
	if stddev <= 0 {
		return fmt.Errorf("Dense.FillGaussianRandom: stddev %g: %w", stddev, ErrDimensionMismatch)
	}
	if rng == nil {
		rng = newDefaultRand()
	}
	for i := range m.data {
		m.data[i] = mean + stddev*rng.NormFloat64()
	}

	return nil
}

// EqualsWithin reports whether the receiver and other have the same
// shape and every elementwise difference is at most threshold.
// threshold = 0 means exact equality; a negative threshold is folded
// to its absolute value.
//
// Complexity: O(rows*cols), short-circuits on the first violation.
func (m *Dense) EqualsWithin(other *Dense, threshold float64) bool {
	if other == nil || m.rows != other.rows || m.cols != other.cols {
		return false
	}
	if threshold < 0 {
		threshold = -threshold
	}
	for i := range m.data {
		if math.Abs(m.data[i]-other.data[i]) > threshold {
			return false
		}
	}

	return true
}

// String implements fmt.Stringer for easy debugging: one bracketed row
// per line. Complexity: O(rows*cols).
func (m *Dense) String() string {
	var s string
	var i, j int
	for i = 0; i < m.rows; i++ { // iterate over rows
		s += "["
		for j = 0; j < m.cols; j++ { // iterate over columns
			s += fmt.Sprintf("%g", m.at(i, j))
			if j < m.cols-1 {
				s += ", "
			}
		}
		s += "]\n"
	}

	return s
}
