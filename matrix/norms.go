// SPDX-License-Identifier: MIT
// Package matrix: norm computers over matrices and the small slice
// helpers shared with the decomposers.
//
// Purpose:
//   - Frobenius/One/Infinity matrix norms as pure functions over Matrix.
//   - Vector norms and elementary slice operations (dot, scale,
//     normalize, reverse) used by the factorization kernels and tests.
//
// Determinism & Performance:
//   - Fixed traversal orders; Dense fast-paths walk the flat buffer.
//   - All helpers are pure except the explicitly mutating Vec* forms.

package matrix

import (
	"fmt"
	"math"
)

// NormFrobenius returns sqrt(Σ m[i,j]²), the Frobenius norm.
//
// Errors: ErrNilMatrix. Complexity: O(r*c).
func NormFrobenius(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opNorm, err)
	}

	sum := ZeroSum
	if dm, ok := m.(*Dense); ok {
		for _, v := range dm.data { // flat walk, order irrelevant for a sum of squares
			sum += v * v
		}

		return math.Sqrt(sum), nil
	}

	var i, j int
	var v float64
	var err error
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			v, err = m.At(i, j)
			if err != nil {
				return 0, matrixErrorf(opNorm, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			sum += v * v
		}
	}

	return math.Sqrt(sum), nil
}

// NormOne returns the maximum absolute column sum. In column-major
// storage every column is one contiguous pass.
//
// Errors: ErrNilMatrix. Complexity: O(r*c).
func NormOne(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opNorm, err)
	}

	best := ZeroSum
	if dm, ok := m.(*Dense); ok {
		for j := 0; j < dm.cols; j++ {
			col := dm.RawColumn(j)
			sum := ZeroSum
			for _, v := range col {
				sum += math.Abs(v)
			}
			if sum > best {
				best = sum
			}
		}

		return best, nil
	}

	var i, j int
	var v, sum float64
	var err error
	for j = 0; j < m.Cols(); j++ {
		sum = ZeroSum
		for i = 0; i < m.Rows(); i++ {
			v, err = m.At(i, j)
			if err != nil {
				return 0, matrixErrorf(opNorm, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			sum += math.Abs(v)
		}
		if sum > best {
			best = sum
		}
	}

	return best, nil
}

// NormInf returns the maximum absolute row sum.
//
// Errors: ErrNilMatrix. Complexity: O(r*c).
func NormInf(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opNorm, err)
	}

	rows, cols := m.Rows(), m.Cols()
	sums := make([]float64, rows) // accumulate per row in one column-ordered sweep
	if dm, ok := m.(*Dense); ok {
		for j := 0; j < cols; j++ {
			col := dm.RawColumn(j)
			for i, v := range col {
				sums[i] += math.Abs(v)
			}
		}
	} else {
		var i, j int
		var v float64
		var err error
		for j = 0; j < cols; j++ {
			for i = 0; i < rows; i++ {
				v, err = m.At(i, j)
				if err != nil {
					return 0, matrixErrorf(opNorm, fmt.Errorf("At(%d,%d): %w", i, j, err))
				}
				sums[i] += math.Abs(v)
			}
		}
	}
	best := ZeroSum
	for _, s := range sums {
		if s > best {
			best = s
		}
	}

	return best, nil
}

// VecNorm2 returns the Euclidean norm of x. The accumulation is scaled
// by the largest magnitude to avoid overflow on extreme inputs.
// Complexity: O(n).
func VecNorm2(x []float64) float64 {
	scale := ZeroSum
	for _, v := range x {
		if a := math.Abs(v); a > scale {
			scale = a
		}
	}
	if scale == 0 {
		return 0
	}
	sum := ZeroSum
	for _, v := range x {
		r := v / scale
		sum += r * r
	}

	return scale * math.Sqrt(sum)
}

// VecNorm1 returns the sum of absolute values of x. Complexity: O(n).
func VecNorm1(x []float64) float64 {
	sum := ZeroSum
	for _, v := range x {
		sum += math.Abs(v)
	}

	return sum
}

// VecNormInf returns the maximum absolute value of x. Complexity: O(n).
func VecNormInf(x []float64) float64 {
	best := ZeroSum
	for _, v := range x {
		if a := math.Abs(v); a > best {
			best = a
		}
	}

	return best
}

// VecDot returns the dot product of a and b.
//
// Errors: ErrDimensionMismatch when lengths differ. Complexity: O(n).
func VecDot(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, validatorErrorf("VecDot", ErrDimensionMismatch)
	}
	sum := ZeroSum
	for i := range a {
		sum += a[i] * b[i]
	}

	return sum, nil
}

// VecScale multiplies every element of x by alpha in place.
// Complexity: O(n).
func VecScale(x []float64, alpha float64) {
	for i := range x {
		x[i] *= alpha
	}
}

// VecNormalize scales x to unit Euclidean norm in place and returns
// the original norm. A zero vector is left untouched (returned norm 0).
// Complexity: O(n).
func VecNormalize(x []float64) float64 {
	norm := VecNorm2(x)
	if norm == 0 {
		return 0
	}
	VecScale(x, 1/norm)

	return norm
}

// VecReverse reverses x in place. Complexity: O(n).
func VecReverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}
