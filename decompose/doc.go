// SPDX-License-Identifier: MIT

// Package decompose provides the dense matrix factorization family:
// LU (Crout with partial pivoting), QR and economy QR (Householder),
// RQ (derived from economy QR), Cholesky, Gauss-Jordan elimination and
// the singular value decomposition engine.
//
// Every decomposer follows the same life-cycle contract, captured by
// the Decomposer interface:
//
//	not ready  — no input matrix set
//	ready      — input set, factors not computed yet
//	locked     — Decompose() running (reentrancy guard, not a mutex)
//	decomposed — factors available for queries
//
// SetInputMatrix fails with ErrLocked while a decomposition is running
// and otherwise clears previously computed factors, returning the
// instance to the ready state. Any failure inside Decompose clears the
// factor state entirely, so a retry starts clean.
//
// Ownership: a decomposer borrows the caller's matrix — it never takes
// a defensive copy and never mutates the input (factors are computed on
// internal copies). The caller must not mutate the input concurrently
// with Decompose. Independent instances share no state and are safe to
// use from independent goroutines.
//
// The SVD engine is the numerically deep part: Householder
// bidiagonalization with implicit-shift QR diagonalization, descending
// reorder with sign normalization, and rank/nullspace/pseudo-inverse
// operations built on the factorization. The direct decomposers are
// single-pass and comparatively simple.
package decompose
