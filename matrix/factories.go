// SPDX-License-Identifier: MIT
// Package matrix — construction facades.
//
// Purpose:
//   - Provide thin, well-documented constructors for common shapes.
//   - Avoid logic duplication — each facade delegates to NewDense and
//     writes through the unchecked set path after validating once.
//
// Determinism & Policy:
//   - Fixed loop orders; a single allocation per constructor.
//   - Validation happens before any allocation.

package matrix

// NewZeros returns a new zero-initialized *Dense of size rows×cols.
// It is a thin alias of NewDense with an intention-revealing name.
// Complexity: O(rows*cols) zero-init by the runtime.
func NewZeros(rows, cols int) (*Dense, error) {
	return NewDense(rows, cols)
}

// NewIdentity returns a rows×cols matrix with ones on the leading
// min(rows, cols) diagonal and zeros elsewhere. Rectangular shapes are
// allowed; for square shapes this is I_n.
//
// Errors:
//   - ErrInvalidDimensions when either dimension is < 1.
//
// Complexity: O(rows*cols) zeroing + O(min(rows,cols)) diagonal writes.
func NewIdentity(rows, cols int) (*Dense, error) {
	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	n := rows
	if cols < n {
		n = cols
	}
	for i := 0; i < n; i++ { // single write per diagonal cell
		m.set(i, i, 1.0)
	}

	return m, nil
}

// NewDiagonal returns a len(values)×len(values) matrix with values on
// the diagonal and zeros elsewhere.
//
// Errors:
//   - ErrInvalidDimensions when values is empty.
//
// Complexity: O(n²) zeroing + O(n) diagonal writes.
func NewDiagonal(values []float64) (*Dense, error) {
	m, err := NewDense(len(values), len(values))
	if err != nil {
		return nil, err
	}
	for i, v := range values {
		m.set(i, i, v)
	}

	return m, nil
}

// NewFromRows builds a Dense from a row-major slice of rows. Every row
// must have the same non-zero length.
//
// Errors:
//   - ErrInvalidDimensions on an empty outer or inner slice.
//   - ErrDimensionMismatch on ragged rows.
//
// Complexity: O(rows*cols).
func NewFromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	cols := len(rows[0])
	m, err := NewDense(len(rows), cols)
	if err != nil {
		return nil, err
	}
	var i, j int // fixed i→j order
	for i = 0; i < len(rows); i++ {
		if len(rows[i]) != cols {
			return nil, validatorErrorf("NewFromRows", ErrDimensionMismatch)
		}
		for j = 0; j < cols; j++ {
			m.set(i, j, rows[i][j])
		}
	}

	return m, nil
}

// NewFromColumns builds a Dense from a slice of columns. Every column
// must have the same non-zero length. Columns copy straight into the
// contiguous backing storage.
//
// Errors:
//   - ErrInvalidDimensions on an empty outer or inner slice.
//   - ErrDimensionMismatch on ragged columns.
//
// Complexity: O(rows*cols).
func NewFromColumns(cols [][]float64) (*Dense, error) {
	if len(cols) == 0 || len(cols[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	rows := len(cols[0])
	m, err := NewDense(rows, len(cols))
	if err != nil {
		return nil, err
	}
	for j := range cols {
		if len(cols[j]) != rows {
			return nil, validatorErrorf("NewFromColumns", ErrDimensionMismatch)
		}
		copy(m.RawColumn(j), cols[j]) // column-major: one contiguous copy per column
	}

	return m, nil
}

// ZerosLike returns a new zero matrix with the same shape as m.
// Complexity: O(rows*cols) zeroing. Handy to preallocate staging buffers.
func ZerosLike(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}

	return NewDense(m.Rows(), m.Cols())
}
