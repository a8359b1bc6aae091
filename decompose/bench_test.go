// SPDX-License-Identifier: MIT

package decompose_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/linalg/decompose"
	"github.com/katalvlaran/linalg/matrix"
)

// benchMatrix builds a rows×cols matrix with a fixed-seed uniform fill.
func benchMatrix(b *testing.B, rows, cols int, seed int64) *matrix.Dense {
	b.Helper()
	m, err := matrix.NewDense(rows, cols)
	if err != nil {
		b.Fatal(err)
	}
	if err = m.FillUniformRandom(-1, 1, rand.New(rand.NewSource(seed))); err != nil {
		b.Fatal(err)
	}

	return m
}

// BenchmarkSVDDecompose measures the full pipeline on a tall 64x32.
func BenchmarkSVDDecompose(b *testing.B) {
	a := benchMatrix(b, 64, 32, 1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		svd, err := decompose.NewSingularValueDecomposer(a)
		if err != nil {
			b.Fatal(err)
		}
		if err = svd.Decompose(); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSVDSolve measures the pseudo-inverse solve on cached factors.
func BenchmarkSVDSolve(b *testing.B) {
	a := benchMatrix(b, 64, 32, 2)
	rhs := benchMatrix(b, 64, 4, 3)
	svd, err := decompose.NewSingularValueDecomposer(a)
	if err != nil {
		b.Fatal(err)
	}
	if err = svd.Decompose(); err != nil {
		b.Fatal(err)
	}
	out := &matrix.Dense{}
	tsh, err := svd.Threshold()
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err = svd.SolveInto(rhs, tsh, out); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkLUDecompose measures Crout elimination on 64x64.
func BenchmarkLUDecompose(b *testing.B) {
	a := benchMatrix(b, 64, 64, 4)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		lu := decompose.NewLUDecomposer(a)
		if err := lu.Decompose(); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkQRDecompose measures Householder QR on a tall 64x32.
func BenchmarkQRDecompose(b *testing.B) {
	a := benchMatrix(b, 64, 32, 5)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		qr := decompose.NewQRDecomposer(a)
		if err := qr.Decompose(); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkCholeskyDecompose measures the SPD factorization on 64x64.
func BenchmarkCholeskyDecompose(b *testing.B) {
	a := benchMatrix(b, 64, 64, 6)
	at, err := matrix.Transpose(a)
	if err != nil {
		b.Fatal(err)
	}
	spd, err := matrix.Mul(a, at) // AAᵀ + n·I is safely positive definite
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < 64; i++ {
		v, err := spd.At(i, i)
		if err != nil {
			b.Fatal(err)
		}
		if err = spd.Set(i, i, v+64); err != nil {
			b.Fatal(err)
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		chol := decompose.NewCholeskyDecomposer(spd)
		if err := chol.Decompose(); err != nil {
			b.Fatal(err)
		}
	}
}
