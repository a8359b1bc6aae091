// SPDX-License-Identifier: MIT
// Package decompose: sentinel error set (unified, consistent).
// All decomposers MUST return these sentinels and tests MUST check them
// via errors.Is. Shape violations reuse the matrix package sentinels
// (matrix.ErrDimensionMismatch and friends) so callers match one
// vocabulary across the library.

package decompose

import "errors"

var (
	// ErrNotReady is returned when Decompose (or an input-dependent
	// query) is requested before an input matrix was set. Recoverable:
	// set an input and retry.
	ErrNotReady = errors.New("decompose: no input matrix set")

	// ErrLocked is returned when a mutation (new input matrix, nested
	// Decompose) is attempted while a decomposition is in progress on
	// the same instance. Recoverable: wait for the running call.
	ErrLocked = errors.New("decompose: decomposition in progress")

	// ErrNotAvailable is returned when factors or derived results are
	// requested before a successful Decompose. Recoverable: decompose
	// first.
	ErrNotAvailable = errors.New("decompose: decomposition not available")

	// ErrNoConvergence signals that the SVD iteration exceeded the
	// configured cap for some singular value. Fatal for that call; the
	// factor state is cleared so a retry with more iterations starts
	// clean.
	ErrNoConvergence = errors.New("decompose: svd iteration did not converge")

	// ErrSingular signals that the matrix lacks the rank required for
	// an exact solve (zero pivot in LU/Gauss-Jordan). Fatal for that
	// solve; consider the SVD pseudo-inverse instead.
	ErrSingular = errors.New("decompose: singular matrix")

	// ErrRankDeficient signals a rank-deficient triangular factor in a
	// QR-based solve.
	ErrRankDeficient = errors.New("decompose: rank-deficient matrix")

	// ErrNotSPD signals that a Cholesky input was not symmetric
	// positive definite.
	ErrNotSPD = errors.New("decompose: matrix is not symmetric positive definite")

	// ErrEmptySubspace is returned by Range/Nullspace when no column
	// passes the threshold test (rank zero, or full rank respectively);
	// matrices with zero columns cannot be represented.
	ErrEmptySubspace = errors.New("decompose: selected subspace is empty")

	// ErrIllegalArgument flags caller bugs: negative thresholds,
	// iteration caps below one, mismatched helper lengths.
	ErrIllegalArgument = errors.New("decompose: illegal argument")
)
