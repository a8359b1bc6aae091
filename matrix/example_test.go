// SPDX-License-Identifier: MIT

package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/linalg/matrix"
)

// ExampleNewFromRows builds a matrix from row slices and multiplies it
// with its transpose.
func ExampleNewFromRows() {
	a, _ := matrix.NewFromRows([][]float64{
		{1, 2},
		{3, 4},
	})
	at, _ := matrix.Transpose(a)
	prod, _ := matrix.Mul(a, at)
	fmt.Print(prod)
	// Output:
	// [5, 11]
	// [11, 25]
}

// ExampleDense_Submatrix extracts an inclusive block from a 3x3 matrix.
func ExampleDense_Submatrix() {
	m, _ := matrix.NewFromRows([][]float64{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	})
	block, _ := m.Submatrix(0, 1, 1, 2) // rows 0..1, cols 1..2
	fmt.Print(block)
	// Output:
	// [2, 3]
	// [5, 6]
}

// ExampleNormFrobenius computes the Frobenius norm of a small matrix.
func ExampleNormFrobenius() {
	m, _ := matrix.NewFromRows([][]float64{
		{3, 0},
		{0, 4},
	})
	norm, _ := matrix.NormFrobenius(m)
	fmt.Println(norm)
	// Output:
	// 5
}
