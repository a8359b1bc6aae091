// SPDX-License-Identifier: MIT
// Package matrix: mutating Dense methods — in-place and into-result
// arithmetic plus inclusive-range submatrix copy.
//
// Conventions shared by this file:
//   - In-place forms mutate the receiver.
//   - *Into forms write into a caller-supplied result, resizing it only
//     when its current shape mismatches the output shape.
//   - Operations whose output shape differs from the receiver's shape
//     (Mul, Transpose) never rewrite elements in place: they build a
//     fresh buffer and swap it in atomically (resize-and-swap), because
//     a partial overwrite could not represent the intermediate state.

package matrix

// Add accumulates other into the receiver elementwise (m += other).
// Implementation:
//   - Stage 1: validate other non-nil and shapes equal.
//   - Stage 2: single flat loop over the shared column-major layout.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity: O(rows*cols), Space O(1).
func (m *Dense) Add(other *Dense) error {
	if err := validateDensePair(m, other); err != nil {
		return matrixErrorf(opAdd, err)
	}
	for i := range m.data {
		m.data[i] += other.data[i]
	}

	return nil
}

// Sub subtracts other from the receiver elementwise (m -= other).
// Contract and complexity match Add.
func (m *Dense) Sub(other *Dense) error {
	if err := validateDensePair(m, other); err != nil {
		return matrixErrorf(opSub, err)
	}
	for i := range m.data {
		m.data[i] -= other.data[i]
	}

	return nil
}

// AddInto writes m + other into result, resizing result only when its
// shape mismatches. result may alias m or other; the elementwise loop
// is alias-safe.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity: O(rows*cols).
func (m *Dense) AddInto(other, result *Dense) error {
	if err := validateDensePair(m, other); err != nil {
		return matrixErrorf(opAdd, err)
	}
	if err := conformResult(result, m.rows, m.cols); err != nil {
		return matrixErrorf(opAdd, err)
	}
	for i := range m.data {
		result.data[i] = m.data[i] + other.data[i]
	}

	return nil
}

// SubInto writes m - other into result; contract matches AddInto.
func (m *Dense) SubInto(other, result *Dense) error {
	if err := validateDensePair(m, other); err != nil {
		return matrixErrorf(opSub, err)
	}
	if err := conformResult(result, m.rows, m.cols); err != nil {
		return matrixErrorf(opSub, err)
	}
	for i := range m.data {
		result.data[i] = m.data[i] - other.data[i]
	}

	return nil
}

// Scale multiplies every element by alpha in place.
// Complexity: O(rows*cols).
func (m *Dense) Scale(alpha float64) {
	for i := range m.data {
		m.data[i] *= alpha
	}
}

// Mul replaces the receiver with the product m × other. The output
// shape (m.rows × other.cols) generally differs from the input shape,
// so this is a structural resize-and-swap: the product is computed into
// a fresh buffer which then replaces the receiver's storage atomically.
//
// Implementation:
//   - Stage 1: validate other non-nil and m.Cols() == other.Rows().
//   - Stage 2: j→k→i product into the fresh column-major buffer,
//     skipping zero multipliers.
//   - Stage 3: swap buffer, dimensions and column index.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity: Time O(m.rows * m.cols * other.cols), Space O(m.rows*other.cols).
func (m *Dense) Mul(other *Dense) error {
	if other == nil {
		return matrixErrorf(opMul, ErrNilMatrix)
	}
	if m.cols != other.rows {
		return matrixErrorf(opMul, ErrDimensionMismatch)
	}
	data, rows, cols := mulColumnMajor(m, other)
	m.rows, m.cols, m.data, m.colIndex = rows, cols, data, newColIndex(rows, cols)

	return nil
}

// MulInto writes m × other into result. The product is computed into a
// fresh buffer first, so result may alias either operand; the fresh
// storage is swapped into result afterwards.
//
// Errors and complexity match Mul.
func (m *Dense) MulInto(other, result *Dense) error {
	if other == nil || result == nil {
		return matrixErrorf(opMul, ErrNilMatrix)
	}
	if m.cols != other.rows {
		return matrixErrorf(opMul, ErrDimensionMismatch)
	}
	data, rows, cols := mulColumnMajor(m, other)
	result.rows, result.cols, result.data, result.colIndex = rows, cols, data, newColIndex(rows, cols)

	return nil
}

// mulColumnMajor computes the column-major product buffer of a × b.
// Shapes must already be validated. The j→k→i loop order keeps every
// inner pass contiguous in column-major storage.
func mulColumnMajor(a, b *Dense) (data []float64, rows, cols int) {
	rows, cols = a.rows, b.cols
	inner := a.cols
	data = make([]float64, rows*cols)
	var j, k, i int
	var bkj float64
	var dst, src int
	for j = 0; j < cols; j++ { // output column j
		dst = j * rows
		for k = 0; k < inner; k++ {
			bkj = b.data[b.colIndex[j]+k]
			if bkj == 0 {
				continue // skip zero multiplier
			}
			src = a.colIndex[k]
			for i = 0; i < rows; i++ { // contiguous column walk
				data[dst+i] += a.data[src+i] * bkj
			}
		}
	}

	return data, rows, cols
}

// Transpose replaces the receiver with its transpose. The shape changes
// in general, so the transpose is materialized into a fresh buffer and
// swapped in (no partial in-place rewrite). Transposition moves values
// untouched: applying it twice restores the matrix exactly.
//
// Complexity: O(rows*cols) time and memory.
func (m *Dense) Transpose() {
	data := transposeColumnMajor(m)
	m.rows, m.cols = m.cols, m.rows
	m.data, m.colIndex = data, newColIndex(m.rows, m.cols)
}

// TransposeInto writes the transpose of m into result via the same
// fresh-buffer swap, so result may alias m.
//
// Errors:
//   - ErrNilMatrix when result is nil.
//
// Complexity: O(rows*cols).
func (m *Dense) TransposeInto(result *Dense) error {
	if result == nil {
		return matrixErrorf(opTranspose, ErrNilMatrix)
	}
	data := transposeColumnMajor(m)
	result.rows, result.cols = m.cols, m.rows
	result.data, result.colIndex = data, newColIndex(result.rows, result.cols)

	return nil
}

// transposeColumnMajor builds the column-major buffer of mᵀ.
func transposeColumnMajor(m *Dense) []float64 {
	data := make([]float64, len(m.data))
	var i, j int
	for j = 0; j < m.cols; j++ { // source column j becomes destination row j
		src := m.colIndex[j]
		for i = 0; i < m.rows; i++ {
			data[i*m.cols+j] = m.data[src+i]
		}
	}

	return data
}

// Submatrix returns a fresh copy of the inclusive region
// [top..bottom] × [left..right].
//
// Errors:
//   - ErrIndexOutOfBounds when a range is inverted or out of bounds.
//
// Complexity: O(region size); one contiguous copy per selected column.
func (m *Dense) Submatrix(top, left, bottom, right int) (*Dense, error) {
	if top < 0 || left < 0 || top > bottom || left > right || bottom >= m.rows || right >= m.cols {
		return nil, matrixErrorf(opSubmatrix, ErrIndexOutOfBounds)
	}
	out, err := NewDense(bottom-top+1, right-left+1)
	if err != nil {
		return nil, matrixErrorf(opSubmatrix, err) // unreachable after the range check
	}
	for j := left; j <= right; j++ {
		src := m.colIndex[j] + top
		copy(out.RawColumn(j-left), m.data[src:src+out.rows])
	}

	return out, nil
}

// SetSubmatrix copies src into the receiver with its top-left corner at
// (top, left). The source must fit entirely inside the receiver.
//
// Errors:
//   - ErrNilMatrix when src is nil.
//   - ErrIndexOutOfBounds when the destination region does not fit.
//
// Complexity: O(src size).
func (m *Dense) SetSubmatrix(top, left int, src *Dense) error {
	if src == nil {
		return matrixErrorf(opSetSubmatrix, ErrNilMatrix)
	}
	if top < 0 || left < 0 || top+src.rows > m.rows || left+src.cols > m.cols {
		return matrixErrorf(opSetSubmatrix, ErrIndexOutOfBounds)
	}
	for j := 0; j < src.cols; j++ {
		dst := m.colIndex[left+j] + top
		copy(m.data[dst:dst+src.rows], src.RawColumn(j))
	}

	return nil
}

// Column returns a fresh copy of column col (length Rows).
//
// Errors:
//   - ErrIndexOutOfBounds when col is invalid.
func (m *Dense) Column(col int) ([]float64, error) {
	if col < 0 || col >= m.cols {
		return nil, denseErrorf("Column", 0, col, ErrIndexOutOfBounds)
	}
	out := make([]float64, m.rows)
	copy(out, m.RawColumn(col))

	return out, nil
}

// Row returns a fresh copy of row row (length Cols).
//
// Errors:
//   - ErrIndexOutOfBounds when row is invalid.
func (m *Dense) Row(row int) ([]float64, error) {
	if row < 0 || row >= m.rows {
		return nil, denseErrorf("Row", row, 0, ErrIndexOutOfBounds)
	}
	out := make([]float64, m.cols)
	for j := 0; j < m.cols; j++ { // strided walk, one element per column
		out[j] = m.at(row, j)
	}

	return out, nil
}

// validateDensePair guards the binary elementwise methods: the argument
// must be non-nil and shape-equal to the receiver.
func validateDensePair(m, other *Dense) error {
	if other == nil {
		return ErrNilMatrix
	}
	if m.rows != other.rows || m.cols != other.cols {
		return ErrDimensionMismatch
	}

	return nil
}

// conformResult resizes result to rows×cols only when its shape
// mismatches, per the *Into contract.
func conformResult(result *Dense, rows, cols int) error {
	if result == nil {
		return ErrNilMatrix
	}
	if result.rows != rows || result.cols != cols {
		return result.Resize(rows, cols)
	}

	return nil
}
