// SPDX-License-Identifier: MIT
// Package decompose: the singular value decomposition engine.
//
// The algorithm is the classic Golub–Reinsch scheme: Householder
// bidiagonalization with overflow-avoiding scaling, accumulation of the
// right and left transformations, implicit-shift QR iteration on the
// bidiagonal form, and a final descending reorder with a majority-sign
// normalization of each singular-vector pair. Column-major Dense
// storage makes every rotation a pair of contiguous column walks.

package decompose

import (
	"math"

	"github.com/katalvlaran/linalg/matrix"
)

// Numeric policy defaults (single source of truth).
const (
	// DefaultEpsilon is the machine-precision constant driving the
	// negligibility tests of the QR iteration and the default
	// singular-value threshold.
	DefaultEpsilon = 1e-12

	// DefaultMaxIterations caps the QR iterations spent on any single
	// singular value before Decompose fails with ErrNoConvergence.
	DefaultMaxIterations = 30

	// MinIterations is the lowest accepted iteration cap.
	MinIterations = 1
)

// Operation tags for unified error wrapping.
const (
	opSVD          = "SVD"
	opSVDSolve     = "SVD.Solve"
	opSVDRange     = "SVD.Range"
	opSVDNullspace = "SVD.Nullspace"
)

// SVDOption mutates the decomposer configuration. Constructors collect
// the values; NewSingularValueDecomposer validates the final state and
// rejects nonsensical combinations with ErrIllegalArgument.
type SVDOption func(*svdConfig)

// svdConfig holds the effective numeric configuration.
type svdConfig struct {
	eps           float64 // > 0, finite; DefaultEpsilon
	maxIterations int     // >= MinIterations; DefaultMaxIterations
}

// WithEpsilon overrides the machine-precision constant.
func WithEpsilon(eps float64) SVDOption {
	return func(c *svdConfig) { c.eps = eps }
}

// WithMaxIterations overrides the per-singular-value iteration cap.
func WithMaxIterations(iters int) SVDOption {
	return func(c *svdConfig) { c.maxIterations = iters }
}

// SingularValueDecomposer factors its input as A = U·diag(w)·Vᵀ with
// orthonormal U columns (m×n), orthonormal V (n×n) and non-negative
// singular values w sorted descending. Inputs with m >= n are the
// intended domain; the factor state is nil until Decompose succeeds.
type SingularValueDecomposer struct {
	state
	cfg svdConfig

	u   *matrix.Dense // left singular vectors, m×n
	v   *matrix.Dense // right singular vectors, n×n
	w   []float64     // singular values, length n
	tsh float64       // default negligibility threshold, set after Decompose
}

// NewSingularValueDecomposer builds a decomposer for input (which may
// be nil — the instance starts not ready and expects SetInputMatrix).
// The input is borrowed, never copied; see the package documentation
// for the ownership contract.
//
// Errors:
//   - ErrIllegalArgument when an option sets eps <= 0 (or non-finite)
//     or an iteration cap below MinIterations.
//
// Complexity: O(1); all numeric work happens in Decompose.
func NewSingularValueDecomposer(input *matrix.Dense, opts ...SVDOption) (*SingularValueDecomposer, error) {
	cfg := svdConfig{eps: DefaultEpsilon, maxIterations: DefaultMaxIterations}
	for _, opt := range opts {
		opt(&cfg) // last-writer-wins
	}
	if !(cfg.eps > 0) || math.IsInf(cfg.eps, 0) {
		return nil, decomposeErrorf(opSVD, ErrIllegalArgument)
	}
	if cfg.maxIterations < MinIterations {
		return nil, decomposeErrorf(opSVD, ErrIllegalArgument)
	}

	d := &SingularValueDecomposer{cfg: cfg}
	d.input = input

	return d, nil
}

// SetInputMatrix installs a new borrowed input and clears the factor
// state, returning the decomposer to the ready state.
//
// Errors: ErrLocked while Decompose runs, matrix.ErrNilMatrix for nil.
func (d *SingularValueDecomposer) SetInputMatrix(m *matrix.Dense) error {
	if err := d.replaceInput(opSVD, m); err != nil {
		return err
	}
	d.u, d.v, d.w, d.tsh = nil, nil, nil, 0

	return nil
}

// IsDecompositionAvailable reports whether all three factors are
// present. The AND across u, v and w is deliberately stricter than
// "any factor set": a partially-cleared state never reads as available.
func (d *SingularValueDecomposer) IsDecompositionAvailable() bool {
	return d.u != nil && d.v != nil && d.w != nil
}

// MaxIterations returns the configured per-singular-value cap.
func (d *SingularValueDecomposer) MaxIterations() int { return d.cfg.maxIterations }

// Decompose computes the factorization.
//
// Implementation:
//   - Stage 1: shared entry guards (ready, not locked; lock taken).
//   - Stage 2: copy the input into a working U, allocate V (n×n,
//     zeroed) and w; run Golub–Reinsch (bidiagonalize, accumulate,
//     diagonalize with implicit shifts).
//   - Stage 3: reorder singular triples descending, normalize signs,
//     publish the factors and derive the default threshold
//     tsh = 0.5·sqrt(m+n+1)·w[0]·eps.
//
// Behavior highlights:
//   - The borrowed input is never mutated; all work happens on copies.
//   - On ANY failure the factor state is cleared before returning, so
//     the decomposer is back in a clean ready state for a retry.
//
// Errors:
//   - ErrNotReady, ErrLocked from the entry guards.
//   - ErrNoConvergence when some singular value fails to settle within
//     MaxIterations QR sweeps (fatal for this call).
//
// Determinism:
//   - Fully deterministic for a given input; no randomness anywhere in
//     the pipeline, so decomposing twice reproduces U, V, w exactly.
//
// Complexity:
//   - Time O(m·n²) for m >= n, Space O(m·n + n²) for the factors.
func (d *SingularValueDecomposer) Decompose() error {
	if err := d.beginDecompose(opSVD); err != nil {
		return err
	}
	defer d.endDecompose()

	rows, cols := d.input.Rows(), d.input.Cols()
	u := d.input.CloneDense() // working copy; becomes the left vectors
	v, err := matrix.NewDense(cols, cols)
	if err != nil {
		// Unreachable for a valid input matrix; kept for safety.
		d.clearFactors()

		return decomposeErrorf(opSVD, err)
	}
	w := make([]float64, cols)

	if err = golubReinsch(u, v, w, d.cfg.eps, d.cfg.maxIterations); err != nil {
		d.clearFactors() // a retry must start clean, never from partial factors

		return decomposeErrorf(opSVD, err)
	}
	reorderSingularTriples(u, v, w)

	d.u, d.v, d.w = u, v, w
	d.tsh = 0.5 * math.Sqrt(float64(rows+cols+1)) * w[0] * d.cfg.eps

	return nil
}

// clearFactors resets the factor state after a failed Decompose.
func (d *SingularValueDecomposer) clearFactors() {
	d.u, d.v, d.w, d.tsh = nil, nil, nil, 0
}

// U returns the left singular vectors (m×n). The matrix is owned by
// the decomposer — treat it as read-only; mutating it invalidates the
// factorization. Errors: ErrNotAvailable.
func (d *SingularValueDecomposer) U() (*matrix.Dense, error) {
	if !d.IsDecompositionAvailable() {
		return nil, decomposeErrorf(opSVD, ErrNotAvailable)
	}

	return d.u, nil
}

// V returns the right singular vectors (n×n); ownership contract as U.
func (d *SingularValueDecomposer) V() (*matrix.Dense, error) {
	if !d.IsDecompositionAvailable() {
		return nil, decomposeErrorf(opSVD, ErrNotAvailable)
	}

	return d.v, nil
}

// SingularValues returns the singular values sorted descending;
// ownership contract as U. Errors: ErrNotAvailable.
func (d *SingularValueDecomposer) SingularValues() ([]float64, error) {
	if !d.IsDecompositionAvailable() {
		return nil, decomposeErrorf(opSVD, ErrNotAvailable)
	}

	return d.w, nil
}

// Threshold returns the default negligibility cutoff
// tsh = 0.5·sqrt(m+n+1)·w[0]·eps derived after Decompose.
// Errors: ErrNotAvailable.
func (d *SingularValueDecomposer) Threshold() (float64, error) {
	if !d.IsDecompositionAvailable() {
		return 0, decomposeErrorf(opSVD, ErrNotAvailable)
	}

	return d.tsh, nil
}

// Rank counts singular values strictly above threshold.
//
// Errors:
//   - ErrNotAvailable before a successful Decompose.
//   - ErrIllegalArgument for a negative threshold.
//
// Complexity: O(n).
func (d *SingularValueDecomposer) Rank(threshold float64) (int, error) {
	if !d.IsDecompositionAvailable() {
		return 0, decomposeErrorf(opSVD, ErrNotAvailable)
	}
	if threshold < 0 {
		return 0, decomposeErrorf(opSVD, ErrIllegalArgument)
	}
	rank := 0
	for _, sv := range d.w {
		if sv > threshold {
			rank++
		}
	}

	return rank, nil
}

// RankDefault is Rank with the derived default threshold.
func (d *SingularValueDecomposer) RankDefault() (int, error) {
	if !d.IsDecompositionAvailable() {
		return 0, decomposeErrorf(opSVD, ErrNotAvailable)
	}

	return d.Rank(d.tsh)
}

// Nullity counts singular values at or below threshold, so that
// Rank(t) + Nullity(t) == Cols for every t >= 0. Errors as Rank.
func (d *SingularValueDecomposer) Nullity(threshold float64) (int, error) {
	rank, err := d.Rank(threshold)
	if err != nil {
		return 0, err
	}

	return len(d.w) - rank, nil
}

// NullityDefault is Nullity with the derived default threshold.
func (d *SingularValueDecomposer) NullityDefault() (int, error) {
	if !d.IsDecompositionAvailable() {
		return 0, decomposeErrorf(opSVD, ErrNotAvailable)
	}

	return d.Nullity(d.tsh)
}

// Range returns the columns of U whose singular values exceed
// threshold — an orthonormal basis of the column space — preserving
// their original order.
//
// Errors:
//   - ErrNotAvailable, ErrIllegalArgument (negative threshold).
//   - ErrEmptySubspace when every singular value is negligible.
//
// Complexity: O(m·rank).
func (d *SingularValueDecomposer) Range(threshold float64) (*matrix.Dense, error) {
	rank, err := d.Rank(threshold)
	if err != nil {
		return nil, err
	}
	if rank == 0 {
		return nil, decomposeErrorf(opSVDRange, ErrEmptySubspace)
	}
	out, err := matrix.NewDense(d.u.Rows(), rank)
	if err != nil {
		return nil, decomposeErrorf(opSVDRange, err) // unreachable after the rank check
	}
	next := 0
	for j, sv := range d.w {
		if sv > threshold {
			copy(out.RawColumn(next), d.u.RawColumn(j)) // contiguous column copy
			next++
		}
	}

	return out, nil
}

// Nullspace returns the columns of V whose singular values are at or
// below threshold — an orthonormal basis of the kernel — preserving
// their original order.
//
// Errors:
//   - ErrNotAvailable, ErrIllegalArgument (negative threshold).
//   - ErrEmptySubspace when the matrix has full column rank at this
//     threshold.
//
// Complexity: O(n·nullity).
func (d *SingularValueDecomposer) Nullspace(threshold float64) (*matrix.Dense, error) {
	nullity, err := d.Nullity(threshold)
	if err != nil {
		return nil, err
	}
	if nullity == 0 {
		return nil, decomposeErrorf(opSVDNullspace, ErrEmptySubspace)
	}
	out, err := matrix.NewDense(d.v.Rows(), nullity)
	if err != nil {
		return nil, decomposeErrorf(opSVDNullspace, err) // unreachable after the nullity check
	}
	next := 0
	for j, sv := range d.w {
		if sv <= threshold {
			copy(out.RawColumn(next), d.v.RawColumn(j))
			next++
		}
	}

	return out, nil
}

// ConditionNumber returns w[0]/w[n-1]; +Inf for a singular matrix.
// Errors: ErrNotAvailable.
func (d *SingularValueDecomposer) ConditionNumber() (float64, error) {
	if !d.IsDecompositionAvailable() {
		return 0, decomposeErrorf(opSVD, ErrNotAvailable)
	}

	return d.w[0] / d.w[len(d.w)-1], nil
}

// ReciprocalConditionNumber returns w[n-1]/w[0], or exactly 0 when
// either extreme singular value is non-positive (degenerate scale).
// Errors: ErrNotAvailable.
func (d *SingularValueDecomposer) ReciprocalConditionNumber() (float64, error) {
	if !d.IsDecompositionAvailable() {
		return 0, decomposeErrorf(opSVD, ErrNotAvailable)
	}
	first, last := d.w[0], d.w[len(d.w)-1]
	if first <= 0 || last <= 0 {
		return 0, nil
	}

	return last / first, nil
}

// Solve computes the least-squares solution X of A·X ≈ B through the
// truncated Moore-Penrose pseudo-inverse: X = V·diag(1/w or 0)·Uᵀ·B,
// where components with w[j] <= threshold contribute zero instead of
// amplifying noise.
//
// Implementation (per column of B):
//   - Stage 1: project onto the U columns, dividing by w[j] only where
//     w[j] > threshold.
//   - Stage 2: re-expand the weighted coefficients through V.
//
// Errors:
//   - ErrNotAvailable, ErrIllegalArgument (negative threshold),
//     matrix.ErrNilMatrix, and matrix.ErrDimensionMismatch when B's
//     row count differs from the input's row count.
//
// Complexity: Time O(p·(m·n + n²)) for B with p columns.
func (d *SingularValueDecomposer) Solve(b *matrix.Dense, threshold float64) (*matrix.Dense, error) {
	result := &matrix.Dense{}
	if err := d.SolveInto(b, threshold, result); err != nil {
		return nil, err
	}

	return result, nil
}

// SolveDefault is Solve with the derived default threshold.
func (d *SingularValueDecomposer) SolveDefault(b *matrix.Dense) (*matrix.Dense, error) {
	if !d.IsDecompositionAvailable() {
		return nil, decomposeErrorf(opSVDSolve, ErrNotAvailable)
	}

	return d.Solve(b, d.tsh)
}

// SolveInto is Solve writing into a caller-supplied result, resizing it
// only when its shape mismatches n×p. result must not alias b.
func (d *SingularValueDecomposer) SolveInto(b *matrix.Dense, threshold float64, result *matrix.Dense) error {
	if !d.IsDecompositionAvailable() {
		return decomposeErrorf(opSVDSolve, ErrNotAvailable)
	}
	if threshold < 0 {
		return decomposeErrorf(opSVDSolve, ErrIllegalArgument)
	}
	if b == nil || result == nil {
		return decomposeErrorf(opSVDSolve, matrix.ErrNilMatrix)
	}
	rows, cols := d.u.Rows(), d.u.Cols()
	if b.Rows() != rows {
		return decomposeErrorf(opSVDSolve, matrix.ErrDimensionMismatch)
	}
	p := b.Cols()
	if result.Rows() != cols || result.Cols() != p {
		if err := result.Resize(cols, p); err != nil {
			return decomposeErrorf(opSVDSolve, err) // unreachable: cols, p >= 1
		}
	}

	ud, vd := d.u.RawData(), d.v.RawData()
	tmp := make([]float64, cols) // diag(1/w)·Uᵀ·b for the current column
	var col, i, j, k int
	var sum, tk float64
	for col = 0; col < p; col++ {
		bcol := b.RawColumn(col)
		// Stage 1: tmp[j] = (Uᵀ·b)[j] / w[j] where w[j] passes the cut.
		for j = 0; j < cols; j++ {
			sum = 0
			if d.w[j] > threshold {
				cu := j * rows
				for i = 0; i < rows; i++ { // contiguous U column walk
					sum += ud[cu+i] * bcol[i]
				}
				sum /= d.w[j]
			}
			tmp[j] = sum
		}
		// Stage 2: x = V·tmp, accumulated column by column of V.
		xcol := result.RawColumn(col)
		for j = range xcol {
			xcol[j] = 0
		}
		for k = 0; k < cols; k++ {
			tk = tmp[k]
			if tk == 0 {
				continue // truncated or zero component
			}
			cv := k * cols
			for j = 0; j < cols; j++ {
				xcol[j] += vd[cv+j] * tk
			}
		}
	}

	return nil
}

// pythag computes sqrt(a²+b²) without destructive underflow or
// overflow by factoring out the larger magnitude.
func pythag(a, b float64) float64 {
	absa, absb := math.Abs(a), math.Abs(b)
	if absa > absb {
		r := absb / absa

		return absa * math.Sqrt(1+r*r)
	}
	if absb == 0 {
		return 0
	}
	r := absa / absb

	return absb * math.Sqrt(1+r*r)
}

// withSign returns |a| carrying the sign of b (b == 0 counts positive).
func withSign(a, b float64) float64 {
	if b >= 0 {
		return math.Abs(a)
	}

	return -math.Abs(a)
}

// golubReinsch reduces u (m×n, overwritten with the left vectors) to
// diagonal form, filling v (n×n, pre-zeroed) and w (length n).
//
// Implementation:
//   - Stage 1: Householder bidiagonalization. Left reflections act on
//     the columns of u, right reflections are stored for accumulation;
//     each reflector is scaled by the column/row 1-norm so extreme
//     magnitudes cannot overflow the squared sums. anorm tracks
//     max(|w[i]|+|rv1[i]|) as the working scale of the matrix.
//   - Stage 2: accumulate the right-hand transformations into v and
//     the left-hand ones into u, both by backward iteration.
//   - Stage 3: implicit-shift QR on the bidiagonal form. For each k
//     from n-1 down to 0: find a split point l where the
//     super-diagonal is negligible against eps·anorm; if the split
//     lands on a negligible diagonal, cancel rv1[l] with a Givens
//     pass through the u columns; on convergence (l == k) flip the
//     sign of a negative w[k] together with its v column; otherwise
//     compute the shift from the trailing 2×2 minor and chase the
//     bulge with Givens rotations across [l, k-1], updating u and v.
//
// Behavior highlights:
//   - maxIters caps the sweeps per singular value; exceeding it is the
//     only failure mode (ErrNoConvergence).
//   - Every rotation touches two contiguous columns — the payoff of
//     the column-major layout.
//
// Complexity: Time O(m·n²), Space O(n) scratch (rv1).
func golubReinsch(u, v *matrix.Dense, w []float64, eps float64, maxIters int) error {
	m, n := u.Rows(), u.Cols()
	ud, vd := u.RawData(), v.RawData() // column-major: u stride m, v stride n

	rv1 := make([]float64, n) // super-diagonal of the bidiagonal form
	var g, scale, anorm float64
	var sum, f, h float64
	var i, j, k, l int

	// Stage 1: Householder reduction to bidiagonal form.
	for i = 0; i < n; i++ {
		l = i + 2
		rv1[i] = scale * g
		g, sum, scale = 0, 0, 0
		if i < m {
			ci := i * m
			for k = i; k < m; k++ {
				scale += math.Abs(ud[ci+k])
			}
			if scale != 0 {
				for k = i; k < m; k++ { // scale the column, accumulate the squared norm
					ud[ci+k] /= scale
					sum += ud[ci+k] * ud[ci+k]
				}
				f = ud[ci+i]
				g = -withSign(math.Sqrt(sum), f)
				h = f*g - sum
				ud[ci+i] = f - g
				for j = l - 1; j < n; j++ { // apply the reflector to the remaining columns
					cj := j * m
					sum = 0
					for k = i; k < m; k++ {
						sum += ud[ci+k] * ud[cj+k]
					}
					f = sum / h
					for k = i; k < m; k++ {
						ud[cj+k] += f * ud[ci+k]
					}
				}
				for k = i; k < m; k++ {
					ud[ci+k] *= scale
				}
			}
		}
		w[i] = scale * g
		g, sum, scale = 0, 0, 0
		if i < m && i != n-1 {
			for k = l - 1; k < n; k++ {
				scale += math.Abs(ud[k*m+i])
			}
			if scale != 0 {
				for k = l - 1; k < n; k++ { // scale row i beyond the diagonal
					ud[k*m+i] /= scale
					sum += ud[k*m+i] * ud[k*m+i]
				}
				f = ud[(l-1)*m+i]
				g = -withSign(math.Sqrt(sum), f)
				h = f*g - sum
				ud[(l-1)*m+i] = f - g
				for k = l - 1; k < n; k++ {
					rv1[k] = ud[k*m+i] / h
				}
				for j = l - 1; j < m; j++ { // apply the right reflector to the rows below
					sum = 0
					for k = l - 1; k < n; k++ {
						sum += ud[k*m+j] * ud[k*m+i]
					}
					for k = l - 1; k < n; k++ {
						ud[k*m+j] += sum * rv1[k]
					}
				}
				for k = l - 1; k < n; k++ {
					ud[k*m+i] *= scale
				}
			}
		}
		if a := math.Abs(w[i]) + math.Abs(rv1[i]); a > anorm {
			anorm = a // working numeric scale for all negligibility tests
		}
	}

	// Stage 2a: accumulate right-hand transformations into v (backward).
	for i = n - 1; i >= 0; i-- {
		if i < n-1 {
			if g != 0 {
				for j = l; j < n; j++ {
					// Double division avoids possible underflow of the product.
					vd[i*n+j] = (ud[j*m+i] / ud[l*m+i]) / g
				}
				for j = l; j < n; j++ {
					sum = 0
					for k = l; k < n; k++ {
						sum += ud[k*m+i] * vd[j*n+k]
					}
					for k = l; k < n; k++ {
						vd[j*n+k] += sum * vd[i*n+k]
					}
				}
			}
			for j = l; j < n; j++ {
				vd[j*n+i], vd[i*n+j] = 0, 0
			}
		}
		vd[i*n+i] = 1
		g = rv1[i]
		l = i
	}

	// Stage 2b: accumulate left-hand transformations into u (backward).
	mn := m
	if n < mn {
		mn = n
	}
	for i = mn - 1; i >= 0; i-- {
		l = i + 1
		g = w[i]
		ci := i * m
		for j = l; j < n; j++ {
			ud[j*m+i] = 0
		}
		if g != 0 {
			g = 1 / g
			for j = l; j < n; j++ {
				cj := j * m
				sum = 0
				for k = l; k < m; k++ {
					sum += ud[ci+k] * ud[cj+k]
				}
				f = (sum / ud[ci+i]) * g
				for k = i; k < m; k++ {
					ud[cj+k] += f * ud[ci+k]
				}
			}
			for j = i; j < m; j++ {
				ud[ci+j] *= g
			}
		} else {
			for j = i; j < m; j++ {
				ud[ci+j] = 0
			}
		}
		ud[ci+i]++
	}

	// Stage 3: diagonalize the bidiagonal form with implicit shifts.
	var flag bool
	var its, nm, jj int
	var c, s, x, y, z float64
	for k = n - 1; k >= 0; k-- {
		for its = 0; its < maxIters; its++ {
			flag = true
			for l = k; l >= 0; l-- { // find the split point
				nm = l - 1
				if l == 0 || math.Abs(rv1[l]) <= eps*anorm {
					flag = false

					break
				}
				if math.Abs(w[nm]) <= eps*anorm {
					break // w[nm] negligible: cancellation needed
				}
			}
			if flag {
				// Cancel rv1[l] (l >= 1 here) with a Givens pass,
				// rotating u columns nm and i as we go.
				c, s = 0, 1
				for i = l; i < k+1; i++ {
					f = s * rv1[i]
					rv1[i] = c * rv1[i]
					if math.Abs(f) <= eps*anorm {
						break
					}
					g = w[i]
					h = pythag(f, g)
					w[i] = h
					h = 1 / h
					c = g * h
					s = -f * h
					cnm, ci := nm*m, i*m
					for jj = 0; jj < m; jj++ { // rotate two contiguous u columns
						y = ud[cnm+jj]
						z = ud[ci+jj]
						ud[cnm+jj] = y*c + z*s
						ud[ci+jj] = z*c - y*s
					}
				}
			}
			z = w[k]
			if l == k {
				// Converged; enforce a non-negative singular value.
				if z < 0 {
					w[k] = -z
					ck := k * n
					for jj = 0; jj < n; jj++ {
						vd[ck+jj] = -vd[ck+jj]
					}
				}

				break
			}
			if its == maxIters-1 {
				return ErrNoConvergence
			}
			// Implicit shift from the trailing 2×2 minor.
			x = w[l]
			nm = k - 1
			y = w[nm]
			g = rv1[nm]
			h = rv1[k]
			f = ((y-z)*(y+z) + (g-h)*(g+h)) / (2 * h * y)
			g = pythag(f, 1)
			f = ((x-z)*(x+z) + h*((y/(f+withSign(g, f)))-h)) / x
			// Chase the bulge across [l, k-1] with Givens rotations.
			c, s = 1, 1
			for j = l; j <= nm; j++ {
				i = j + 1
				g = rv1[i]
				y = w[i]
				h = s * g
				g = c * g
				z = pythag(f, h)
				rv1[j] = z
				c = f / z
				s = h / z
				f = x*c + g*s
				g = g*c - x*s
				h = y * s
				y *= c
				cj, ci := j*n, i*n
				for jj = 0; jj < n; jj++ { // rotate v columns j and i
					x = vd[cj+jj]
					z = vd[ci+jj]
					vd[cj+jj] = x*c + z*s
					vd[ci+jj] = z*c - x*s
				}
				z = pythag(f, h)
				w[j] = z
				if z != 0 { // rotation can be arbitrary when z is zero
					z = 1 / z
					c = f * z
					s = h * z
				}
				f = c*g + s*y
				x = c*y - s*g
				uj, ui := j*m, i*m
				for jj = 0; jj < m; jj++ { // rotate u columns j and i
					y = ud[uj+jj]
					z = ud[ui+jj]
					ud[uj+jj] = y*c + z*s
					ud[ui+jj] = z*c - y*s
				}
			}
			rv1[l] = 0
			rv1[k] = f
			w[k] = x
		}
	}

	return nil
}

// reorderSingularTriples sorts w descending with a shell sort (gap
// sequence 3·inc+1), permuting the matching u and v columns in
// lockstep, then flips the sign of any singular-vector pair whose u
// and v columns carry more negative than non-negative entries
// combined. The normalization is idempotent: re-running it changes
// nothing.
//
// Complexity: Time O(n^(3/2)) comparisons with O(m+n) per move.
func reorderSingularTriples(u, v *matrix.Dense, w []float64) {
	m, n := u.Rows(), u.Cols()
	ud, vd := u.RawData(), v.RawData()

	inc := 1
	for inc <= n {
		inc = 3*inc + 1 // grow the gap past n
	}
	su := make([]float64, m) // column staging buffers
	sv := make([]float64, n)
	var i, j int
	var sw float64
	for {
		inc /= 3
		for i = inc; i < n; i++ { // gapped insertion of triple i
			sw = w[i]
			copy(su, ud[i*m:(i+1)*m])
			copy(sv, vd[i*n:(i+1)*n])
			j = i
			for w[j-inc] < sw {
				w[j] = w[j-inc]
				copy(ud[j*m:(j+1)*m], ud[(j-inc)*m:(j-inc+1)*m])
				copy(vd[j*n:(j+1)*n], vd[(j-inc)*n:(j-inc+1)*n])
				j -= inc
				if j < inc {
					break
				}
			}
			w[j] = sw
			copy(ud[j*m:(j+1)*m], su)
			copy(vd[j*n:(j+1)*n], sv)
		}
		if inc <= 1 {
			break
		}
	}

	// Sign convention: maximize non-negative entries per vector pair.
	var k, neg int
	for k = 0; k < n; k++ {
		neg = 0
		ck, cv := k*m, k*n
		for i = 0; i < m; i++ {
			if ud[ck+i] < 0 {
				neg++
			}
		}
		for j = 0; j < n; j++ {
			if vd[cv+j] < 0 {
				neg++
			}
		}
		if neg > (m+n)/2 {
			for i = 0; i < m; i++ {
				ud[ck+i] = -ud[ck+i]
			}
			for j = 0; j < n; j++ {
				vd[cv+j] = -vd[cv+j]
			}
		}
	}
}
