// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/linalg/matrix"
)

// benchRandom builds an n×n matrix with a fixed-seed uniform fill.
func benchRandom(b *testing.B, n int, seed int64) *matrix.Dense {
	b.Helper()
	m, err := matrix.NewDense(n, n)
	if err != nil {
		b.Fatal(err)
	}
	if err = m.FillUniformRandom(-1, 1, rand.New(rand.NewSource(seed))); err != nil {
		b.Fatal(err)
	}

	return m
}

// BenchmarkMul measures the column-major product kernel on 64x64.
func BenchmarkMul(b *testing.B) {
	x := benchRandom(b, 64, 1)
	y := benchRandom(b, 64, 2)
	out := &matrix.Dense{}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := x.MulInto(y, out); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkTranspose measures the fresh-buffer transpose on 128x128.
func BenchmarkTranspose(b *testing.B) {
	x := benchRandom(b, 128, 3)
	out := &matrix.Dense{}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := x.TransposeInto(out); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkNormFrobenius measures the flat-buffer norm walk on 128x128.
func BenchmarkNormFrobenius(b *testing.B) {
	x := benchRandom(b, 128, 4)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := matrix.NormFrobenius(x); err != nil {
			b.Fatal(err)
		}
	}
}
