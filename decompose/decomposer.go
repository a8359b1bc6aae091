// SPDX-License-Identifier: MIT
// Package decompose: the shared decomposer contract and the embedded
// state machine every concrete decomposer builds on.

package decompose

import (
	"fmt"

	"github.com/katalvlaran/linalg/matrix"
)

// decomposeErrorf wraps err with an operation tag, preserving the
// underlying sentinel for errors.Is/As. Call only with err != nil.
func decomposeErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Decomposer is the contract shared by every factorization in this
// package (LU, QR, economy QR, RQ, Cholesky, SVD), making them
// interchangeable behind one interface.
type Decomposer interface {
	// SetInputMatrix installs a new input matrix (borrowed, not
	// copied) and clears any previously computed factors. Returns
	// ErrLocked while Decompose is running and matrix.ErrNilMatrix for
	// a nil argument.
	SetInputMatrix(m *matrix.Dense) error

	// InputMatrix returns the borrowed input, or nil before the first
	// SetInputMatrix.
	InputMatrix() *matrix.Dense

	// IsReady reports whether an input matrix is set.
	IsReady() bool

	// IsLocked reports whether Decompose is currently running. The
	// flag is a single-goroutine reentrancy guard, not a mutex.
	IsLocked() bool

	// Decompose computes the factors. Returns ErrNotReady without an
	// input, ErrLocked when re-entered, and a factorization-specific
	// error on numeric failure (factor state is cleared on any error).
	Decompose() error

	// IsDecompositionAvailable reports whether factors from a
	// successful Decompose are present.
	IsDecompositionAvailable() bool
}

// Compile-time checks: every factorization satisfies the contract.
var (
	_ Decomposer = (*SingularValueDecomposer)(nil)
	_ Decomposer = (*LUDecomposer)(nil)
	_ Decomposer = (*QRDecomposer)(nil)
	_ Decomposer = (*EconomyQRDecomposer)(nil)
	_ Decomposer = (*RQDecomposer)(nil)
	_ Decomposer = (*CholeskyDecomposer)(nil)
)

// state is the embedded base of every decomposer: the borrowed input
// and the reentrancy flag. The zero value is a not-ready decomposer.
type state struct {
	input  *matrix.Dense // borrowed from the caller, never mutated here
	locked bool          // true only while Decompose runs
}

// InputMatrix returns the borrowed input matrix (nil when not ready).
func (s *state) InputMatrix() *matrix.Dense { return s.input }

// IsReady reports whether an input matrix is set.
func (s *state) IsReady() bool { return s.input != nil }

// IsLocked reports whether a decomposition is in progress.
func (s *state) IsLocked() bool { return s.locked }

// replaceInput installs m after the shared guards: rejected while
// locked, rejected when nil. Concrete SetInputMatrix implementations
// call this first and then clear their own factor fields.
func (s *state) replaceInput(tag string, m *matrix.Dense) error {
	if s.locked {
		return decomposeErrorf(tag, ErrLocked)
	}
	if m == nil {
		return decomposeErrorf(tag, matrix.ErrNilMatrix)
	}
	s.input = m

	return nil
}

// beginDecompose performs the shared Decompose entry sequence: the
// ready check, the reentrancy check, and taking the lock. The caller
// must pair it with a deferred endDecompose.
func (s *state) beginDecompose(tag string) error {
	if !s.IsReady() {
		return decomposeErrorf(tag, ErrNotReady)
	}
	if s.locked {
		return decomposeErrorf(tag, ErrLocked)
	}
	s.locked = true

	return nil
}

// endDecompose releases the reentrancy lock.
func (s *state) endDecompose() { s.locked = false }
