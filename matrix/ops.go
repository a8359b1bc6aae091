// SPDX-License-Identifier: MIT
// Package matrix: universal operations on any Matrix implementation —
// elementwise addition and subtraction, matrix and Kronecker products,
// transpose and scalar scaling. All functions perform strict fail-fast
// validation, never mutate their operands and return a fresh *Dense.
//
// Purpose:
//   - Declare the canonical linear-algebra kernels used across the library.
//   - Define operation tags and shared constants for determinism and
//     uniform error reporting.
//
// Notes:
//   - Mutating counterparts live on *Dense in methods.go.
//   - All kernels use the central validators and wrap sentinels via
//     matrixErrorf at the facade.

package matrix

import "fmt"

// ZeroSum is the initial value for accumulation loops.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping and reducing
// magic strings.
const (
	opAdd          = "Add"
	opSub          = "Sub"
	opMul          = "Mul"
	opTranspose    = "Transpose"
	opScale        = "Scale"
	opHadamard     = "Hadamard"
	opKronecker    = "Kronecker"
	opSubmatrix    = "Submatrix"
	opSetSubmatrix = "SetSubmatrix"
	opNorm         = "Norm"
)

// matrixErrorf wraps err with an operation tag, preserving the original
// sentinel for errors.Is/As. Call only with err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// addSub computes elementwise out = a + sign*b for sign ∈ {+1, -1}.
// Inputs must have identical shapes. A fresh Dense is allocated; the
// operands are not mutated. Internal helper for Add/Sub sharing
// validation, allocation and the fast-path.
//
// Implementation:
//   - Stage 1: ValidateBinarySameShape(a, b); allocate the result.
//   - Stage 2: fast-path if both are *Dense — single flat loop over the
//     shared column-major layout. Otherwise fall back to At/Set with a
//     fixed i→j order.
//
// Complexity: Time O(r*c), Space O(r*c) for the new result.
func addSub(a, b Matrix, sign float64, opTag string) (*Dense, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	rows, cols := a.Rows(), a.Cols()
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}

	// Fast path: *Dense with *Dense → single flat loop.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			length := rows * cols
			for idx := 0; idx < length; idx++ { // deterministic 0..n-1
				res.data[idx] = da.data[idx] + sign*db.data[idx]
			}

			return res, nil
		}
	}

	// Fallback: interface path with fixed i→j order.
	var i, j int
	var av, bv float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			av, err = a.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opTag, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			bv, err = b.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opTag, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			res.set(i, j, av+sign*bv)
		}
	}

	return res, nil
}

// Add computes the elementwise sum C = A + B into a fresh Dense.
// Errors: ErrNilMatrix, ErrDimensionMismatch. Complexity: O(r*c).
func Add(a, b Matrix) (*Dense, error) { return addSub(a, b, +1, opAdd) }

// Sub computes the elementwise difference C = A − B into a fresh Dense.
// Errors: ErrNilMatrix, ErrDimensionMismatch. Complexity: O(r*c).
func Sub(a, b Matrix) (*Dense, error) { return addSub(a, b, -1, opSub) }

// Mul performs standard matrix multiplication C = A × B (no aliasing).
// Implementation:
//   - Stage 1: validate A, B (non-nil) and inner dimensions.
//   - Stage 2: *Dense×*Dense runs the shared column-major j→k→i kernel;
//     the generic fallback uses i→j→k with a zero-skip on A[i,k].
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Complexity: Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	// Fast-path for two Dense matrices.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			data, rows, cols := mulColumnMajor(da, db)

			return &Dense{rows: rows, cols: cols, data: data, colIndex: newColIndex(rows, cols)}, nil
		}
	}

	// Fallback: generic interface triple-loop (i→j→k).
	aRows, aCols, bCols := a.Rows(), a.Cols(), b.Cols()
	res, err := NewDense(aRows, bCols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	var i, j, k int
	var av, bv, current float64
	for i = 0; i < aRows; i++ {
		for j = 0; j < bCols; j++ {
			current = ZeroSum
			for k = 0; k < aCols; k++ {
				av, err = a.At(i, k)
				if err != nil {
					return nil, matrixErrorf(opMul, fmt.Errorf("At(%d,%d): %w", i, k, err))
				}
				if av == 0 {
					continue // skip zero for performance
				}
				bv, err = b.At(k, j)
				if err != nil {
					return nil, matrixErrorf(opMul, fmt.Errorf("At(%d,%d): %w", k, j, err))
				}
				current += av * bv
			}
			res.set(i, j, current)
		}
	}

	return res, nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// The original matrix is never mutated.
//
// Errors: ErrNilMatrix. Complexity: Time O(r*c), Space O(r*c).
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	// Fast-path for Dense: reuse the column-major kernel.
	if dm, ok := m.(*Dense); ok {
		data := transposeColumnMajor(dm)

		return &Dense{rows: dm.cols, cols: dm.rows, data: data, colIndex: newColIndex(dm.cols, dm.rows)}, nil
	}

	// Fallback: generic interface loop.
	rows, cols := m.Rows(), m.Cols()
	res, err := NewDense(cols, rows) // dims flipped
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	var i, j int
	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			v, err = m.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opTranspose, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			res.set(j, i, v)
		}
	}

	return res, nil
}

// Scale returns a new matrix whose elements are alpha * m[i,j].
// NaN/Inf in alpha propagate naturally (IEEE-754 contract).
//
// Errors: ErrNilMatrix. Complexity: O(r*c).
func Scale(m Matrix, alpha float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	rows, cols := m.Rows(), m.Cols()
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}

	if dm, ok := m.(*Dense); ok {
		for idx := range dm.data {
			res.data[idx] = dm.data[idx] * alpha
		}

		return res, nil
	}

	var i, j int
	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			v, err = m.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opScale, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			res.set(i, j, v*alpha)
		}
	}

	return res, nil
}

// Hadamard computes the elementwise product (a ⊙ b) into a fresh Dense.
// Both inputs must have identical shapes; operands are not mutated.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch. Complexity: O(r*c).
func Hadamard(a, b Matrix) (*Dense, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opHadamard, err)
	}
	rows, cols := a.Rows(), a.Cols()
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opHadamard, err)
	}

	// Fast-path: both operands are *Dense → flat loop.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for idx := range da.data { // fixed order, deterministic
				res.data[idx] = da.data[idx] * db.data[idx]
			}

			return res, nil
		}
	}

	var i, j int
	var av, bv float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			av, err = a.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opHadamard, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			bv, err = b.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opHadamard, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			res.set(i, j, av*bv)
		}
	}

	return res, nil
}

// Kronecker computes the Kronecker product A ⊗ B: a block matrix of
// shape (aRows*bRows)×(aCols*bCols) where block (i,j) is a[i,j] * B.
//
// Implementation:
//   - Stage 1: validate both inputs non-nil.
//   - Stage 2: iterate destination columns jc = ja*bCols+jb and fill
//     each column in two nested contiguous passes (column-major blocks).
//
// Errors: ErrNilMatrix. Complexity: Time O(aR*aC*bR*bC), Space same.
func Kronecker(a, b *Dense) (*Dense, error) {
	if a == nil || b == nil {
		return nil, matrixErrorf(opKronecker, ErrNilMatrix)
	}
	res, err := NewDense(a.rows*b.rows, a.cols*b.cols)
	if err != nil {
		return nil, matrixErrorf(opKronecker, err)
	}
	var ja, jb, ia, ib int
	var av float64
	var dst, src int
	for ja = 0; ja < a.cols; ja++ { // destination block column
		for jb = 0; jb < b.cols; jb++ {
			dst = res.colIndex[ja*b.cols+jb]
			src = b.colIndex[jb]
			for ia = 0; ia < a.rows; ia++ {
				av = a.at(ia, ja)
				if av == 0 {
					continue // zero block stays zero
				}
				base := dst + ia*b.rows
				for ib = 0; ib < b.rows; ib++ { // contiguous block column walk
					res.data[base+ib] = av * b.data[src+ib]
				}
			}
		}
	}

	return res, nil
}
