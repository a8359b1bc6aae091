// SPDX-License-Identifier: MIT

package stats

import (
	"fmt"
	"math"

	"github.com/katalvlaran/linalg/decompose"
	"github.com/katalvlaran/linalg/matrix"
)

// log2Pi = ln(2π), the per-dimension normalization term.
const log2Pi = 1.8378770664093453

// statsErrorf wraps err with an operation tag, preserving sentinels.
func statsErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

const opGaussian = "MultivariateGaussian"

// MultivariateGaussian is an immutable d-dimensional normal
// distribution N(mean, cov). Construction validates the covariance and
// precomputes everything density evaluation needs, so Density and
// LogDensity are O(d²) and never fail on numeric grounds.
type MultivariateGaussian struct {
	mean    []float64     // copied at construction
	inv     *matrix.Dense // cov⁻¹
	logNorm float64       // -(d·ln(2π) + ln det cov) / 2
}

// NewMultivariateGaussian builds the distribution from a mean vector
// and a symmetric positive definite covariance. Both arguments are
// copied as needed; the caller keeps ownership.
//
// Implementation:
//   - Stage 1: shape validation (square covariance matching the mean).
//   - Stage 2: Cholesky factorization as the SPD proof and the
//     log-determinant source.
//   - Stage 3: covariance inverse via Gauss-Jordan; cache the log
//     normalization constant.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrNonSquare,
//     matrix.ErrDimensionMismatch (mean length vs covariance size),
//     decompose.ErrNotSPD.
//
// Complexity: O(d³) once; evaluation methods are O(d²).
func NewMultivariateGaussian(mean []float64, cov *matrix.Dense) (*MultivariateGaussian, error) {
	if cov == nil {
		return nil, statsErrorf(opGaussian, matrix.ErrNilMatrix)
	}
	if err := matrix.ValidateSquare(cov); err != nil {
		return nil, statsErrorf(opGaussian, err)
	}
	dim := cov.Rows()
	if len(mean) != dim {
		return nil, statsErrorf(opGaussian, matrix.ErrDimensionMismatch)
	}

	chol := decompose.NewCholeskyDecomposer(cov)
	if err := chol.Decompose(); err != nil {
		return nil, statsErrorf(opGaussian, err)
	}
	if spd, _ := chol.IsSPD(); !spd {
		return nil, statsErrorf(opGaussian, decompose.ErrNotSPD)
	}
	logDet, err := chol.LogDeterminant()
	if err != nil {
		return nil, statsErrorf(opGaussian, err) // unreachable after the SPD check
	}
	inv, err := decompose.Inverse(cov)
	if err != nil {
		return nil, statsErrorf(opGaussian, err) // unreachable: SPD implies nonsingular
	}

	mu := make([]float64, dim)
	copy(mu, mean)

	return &MultivariateGaussian{
		mean:    mu,
		inv:     inv,
		logNorm: -0.5 * (float64(dim)*log2Pi + logDet),
	}, nil
}

// Dim returns the dimensionality d.
func (g *MultivariateGaussian) Dim() int { return len(g.mean) }

// Mean returns a fresh copy of the mean vector.
func (g *MultivariateGaussian) Mean() []float64 {
	out := make([]float64, len(g.mean))
	copy(out, g.mean)

	return out
}

// LogDensity evaluates ln p(x), numerically safe where the density
// itself underflows.
//
// Errors: matrix.ErrDimensionMismatch when len(x) != Dim().
//
// Complexity: O(d²).
func (g *MultivariateGaussian) LogDensity(x []float64) (float64, error) {
	dim := len(g.mean)
	if len(x) != dim {
		return 0, statsErrorf(opGaussian, matrix.ErrDimensionMismatch)
	}

	diff := make([]float64, dim)
	for i := range diff {
		diff[i] = x[i] - g.mean[i]
	}
	// Quadratic form diffᵀ·cov⁻¹·diff over contiguous inverse columns.
	id := g.inv.RawData()
	quad := matrix.ZeroSum
	var i, j int
	var dj float64
	for j = 0; j < dim; j++ {
		dj = diff[j]
		if dj == 0 {
			continue
		}
		cj := j * dim
		for i = 0; i < dim; i++ {
			quad += diff[i] * id[cj+i] * dj
		}
	}

	return g.logNorm - 0.5*quad, nil
}

// Density evaluates p(x) = exp(LogDensity(x)).
//
// Errors: matrix.ErrDimensionMismatch when len(x) != Dim().
func (g *MultivariateGaussian) Density(x []float64) (float64, error) {
	ld, err := g.LogDensity(x)
	if err != nil {
		return 0, err
	}

	return math.Exp(ld), nil
}
