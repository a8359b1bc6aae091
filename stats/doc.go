// SPDX-License-Identifier: MIT

// Package stats hosts probability helpers built on the matrix and
// decompose packages. The multivariate Gaussian is the canonical
// consumer: its constructor proves the covariance symmetric positive
// definite with a Cholesky factorization and precomputes the inverse
// and log-determinant, so density evaluation is a quadratic form away.
package stats
