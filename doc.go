// Package linalg is your in-memory toolbox for dense numerical linear
// algebra — from the column-major Matrix core to the full singular
// value decomposition.
//
// 🚀 What is linalg?
//
//	A compact, deterministic library that brings together:
//		• Core storage: column-major Dense matrices with checked & raw access
//		• Algebra: add, subtract, multiply, transpose, Hadamard & Kronecker
//		• Norms: Frobenius, one-norm, infinity-norm + vector helpers
//		• Factorizations: LU, QR, economy QR, RQ, Cholesky, Gauss-Jordan
//		• SVD engine: bidiagonalization, implicit-shift QR, rank, nullspace,
//		  condition numbers and the Moore-Penrose pseudo-inverse
//		• Probability: multivariate Gaussian densities on top of the factors
//
// ✨ Why choose linalg?
//
//   - Predictable – fixed traversal orders, no hidden randomness
//   - Honest errors – package sentinels matched with errors.Is everywhere
//   - Pure Go – no cgo, no assembly, no hidden deps in the numeric core
//   - Transparent – raw column views for trusted hot-path kernels
//
// Everything is organized under three subpackages:
//
//	matrix/    — Dense storage, arithmetic kernels, norms & validators
//	decompose/ — the decomposer family and the one-call facades
//	stats/     — density consumers built on the factorizations
//
// Quick sketch of the SVD contract:
//
//	A (m×n)  =  U (m×n) · diag(w) · Vᵀ (n×n),  w sorted descending
//
// Start with matrix.NewDense or matrix.NewFromRows, then hand the
// result to any decomposer in decompose/.
package linalg
