// SPDX-License-Identifier: MIT

// Package matrix provides the dense float64 storage core of the library.
//
// The matrix package provides:
//
//   - Dense — a column-major matrix with a precomputed column-offset
//     table, checked At/Set accessors and an unchecked hot-path surface
//     (RawData/RawColumn) for trusted numeric kernels.
//   - In-place, into-result and fresh-result arithmetic (Add, Sub, Mul,
//     Transpose, Scale, Hadamard, Kronecker) with strict fail-fast shape
//     validation.
//   - Factories (identity, diagonal, row/column construction, random
//     fills with an explicit generator) and inclusive-range submatrix
//     copy operations.
//   - Frobenius/One/Infinity matrix norms and the small vector helpers
//     the decomposers build on.
//
// All storage is owned: no two Dense values ever share a buffer unless
// the caller explicitly asks for a raw view. Dense is best for
// small-to-medium matrices where O(rows·cols) memory is acceptable.
//
// See the examples in this package and in decompose for usage patterns.
package matrix
