// SPDX-License-Identifier: MIT

// Package ldu - LDU-addressed sparse matrix storage and kernels.
//
// Purpose:
//   - Store a square sparse matrix as diagonal + per-connection upper/lower
//     coefficients addressed by (owner, neighbour) pairs, owner < neighbour.
//   - Provide the product, transpose product, residual and row-sum kernels
//     used by preconditioners and iterative solvers.
//
// Layout:
//   - A[i][i]                 = diag[i]
//   - A[owner[e]][neighbour[e]] = upper[e]
//   - A[neighbour[e]][owner[e]] = lower[e]
//
// AI-Hints:
//   - Build matrices with Assembler when input order is arbitrary; New rejects
//     unsorted connections instead of silently reordering them.
//   - Accessor slices (Diag/Upper/...) alias internal storage; treat as read-only.
//
// Complexity quicksheet:
//   - New: O(n + e); Multiply/MultiplyT/Residual/SumA: O(n + e); IsSymmetric: O(1).

package ldu

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Matrix is an immutable n×n sparse matrix in LDU addressing.
// When constructed with a nil lower slice the matrix is symmetric and lower
// aliases upper.
type Matrix struct {
	n         int
	diag      []float64
	upper     []float64
	lower     []float64
	owner     []int
	neighbour []int
	symmetric bool
}

// New validates the LDU arrays and returns a Matrix that takes ownership of them.
//
// Implementation:
//   - Stage 1: Validate n >= 0 and array lengths (diag == n; upper/lower/neighbour == owner).
//   - Stage 2: Validate each connection: indices in range, owner < neighbour,
//     ascending (owner, neighbour) order, no duplicate pair.
//   - Stage 3: Detect value symmetry once (upper[e] == lower[e] for all e).
//
// Inputs:
//   - n: number of equations (0 is a valid, trivially solved system).
//   - diag: length n.
//   - upper, owner, neighbour: length e.
//   - lower: length e, or nil for a symmetric matrix sharing upper.
//
// Errors:
//   - ErrBadSize, ErrDimensionMismatch, ErrOutOfRange, ErrBadConnection,
//     ErrUnsorted, ErrDuplicateConnection (wrapped with "New").
//
// Complexity:
//   - Time O(n + e), Space O(1) extra.
func New(n int, diag, upper, lower []float64, owner, neighbour []int) (*Matrix, error) {
	if n < 0 {
		return nil, lduErrorf(opNew, ErrBadSize)
	}
	if len(diag) != n {
		return nil, lduErrorf(opNew, fmt.Errorf("len(diag)=%d, n=%d: %w", len(diag), n, ErrDimensionMismatch))
	}
	e := len(owner)
	if len(neighbour) != e || len(upper) != e {
		return nil, lduErrorf(opNew, fmt.Errorf("connection arrays differ in length: %w", ErrDimensionMismatch))
	}
	symmetric := lower == nil
	if symmetric {
		lower = upper
	} else if len(lower) != e {
		return nil, lduErrorf(opNew, fmt.Errorf("len(lower)=%d, want %d: %w", len(lower), e, ErrDimensionMismatch))
	}
	if err := validateAddressing(n, owner, neighbour); err != nil {
		return nil, lduErrorf(opNew, err)
	}
	if !symmetric {
		symmetric = true
		for i := 0; i < e; i++ {
			if upper[i] != lower[i] {
				symmetric = false
				break
			}
		}
	}

	return &Matrix{
		n:         n,
		diag:      diag,
		upper:     upper,
		lower:     lower,
		owner:     owner,
		neighbour: neighbour,
		symmetric: symmetric,
	}, nil
}

// NewDiagonal returns a matrix with no off-diagonal connections.
func NewDiagonal(diag []float64) (*Matrix, error) {
	return New(len(diag), diag, []float64{}, nil, []int{}, []int{})
}

// validateAddressing checks connection indices and the ordering invariant.
func validateAddressing(n int, owner, neighbour []int) error {
	prevOwn, prevNei := -1, -1
	for e := range owner {
		own, nei := owner[e], neighbour[e]
		if own < 0 || own >= n || nei < 0 || nei >= n {
			return fmt.Errorf("%s: connection %d (%d,%d): %w", opValidation, e, own, nei, ErrOutOfRange)
		}
		if own >= nei {
			return fmt.Errorf("%s: connection %d (%d,%d): %w", opValidation, e, own, nei, ErrBadConnection)
		}
		if own < prevOwn || (own == prevOwn && nei < prevNei) {
			return fmt.Errorf("%s: connection %d (%d,%d) after (%d,%d): %w",
				opValidation, e, own, nei, prevOwn, prevNei, ErrUnsorted)
		}
		if own == prevOwn && nei == prevNei {
			return fmt.Errorf("%s: connection %d (%d,%d): %w", opValidation, e, own, nei, ErrDuplicateConnection)
		}
		prevOwn, prevNei = own, nei
	}

	return nil
}

// N returns the number of equations.
func (m *Matrix) N() int { return m.n }

// NumConnections returns the number of off-diagonal connections.
func (m *Matrix) NumConnections() int { return len(m.owner) }

// Diag returns the diagonal coefficients (read-only alias).
func (m *Matrix) Diag() []float64 { return m.diag }

// Upper returns the upper coefficients (read-only alias).
func (m *Matrix) Upper() []float64 { return m.upper }

// Lower returns the lower coefficients (read-only alias; equals Upper when symmetric).
func (m *Matrix) Lower() []float64 { return m.lower }

// Owner returns the owner addressing (read-only alias).
func (m *Matrix) Owner() []int { return m.owner }

// Neighbour returns the neighbour addressing (read-only alias).
func (m *Matrix) Neighbour() []int { return m.neighbour }

// IsSymmetric reports whether upper[e] == lower[e] for every connection.
func (m *Matrix) IsSymmetric() bool { return m.symmetric }

// HasOffDiagonal reports whether any off-diagonal coefficient is non-zero.
func (m *Matrix) HasOffDiagonal() bool {
	for e := range m.upper {
		if m.upper[e] != 0 || m.lower[e] != 0 {
			return true
		}
	}

	return false
}

// Clone returns a deep copy. Symmetric storage stays shared between upper and lower.
func (m *Matrix) Clone() *Matrix {
	c := &Matrix{
		n:         m.n,
		diag:      append([]float64(nil), m.diag...),
		upper:     append([]float64(nil), m.upper...),
		owner:     append([]int(nil), m.owner...),
		neighbour: append([]int(nil), m.neighbour...),
		symmetric: m.symmetric,
	}
	if sameBacking(m.upper, m.lower) {
		c.lower = c.upper
	} else {
		c.lower = append([]float64(nil), m.lower...)
	}

	return c
}

func sameBacking(a, b []float64) bool {
	return len(a) == len(b) && (len(a) == 0 || &a[0] == &b[0])
}

// Multiply computes y = A x.
//
// Implementation:
//   - Stage 1: y[i] = diag[i]*x[i].
//   - Stage 2: For each connection e in stored order scatter to both endpoints:
//     y[owner] += upper*x[neighbour]; y[neighbour] += lower*x[owner].
//
// Errors:
//   - ErrDimensionMismatch when len(x) or len(y) != n.
//
// Determinism:
//   - Fixed connection order; identical inputs give bitwise identical output.
//
// Complexity:
//   - Time O(n + e), Space O(1).
func (m *Matrix) Multiply(y, x []float64) error {
	if err := m.checkVectors(y, x); err != nil {
		return lduErrorf(opMultiply, err)
	}
	m.multiply(y, x, m.upper, m.lower)

	return nil
}

// MultiplyT computes y = Aᵀ x (upper and lower exchange roles).
func (m *Matrix) MultiplyT(y, x []float64) error {
	if err := m.checkVectors(y, x); err != nil {
		return lduErrorf(opMultiplyT, err)
	}
	m.multiply(y, x, m.lower, m.upper)

	return nil
}

func (m *Matrix) multiply(y, x, up, lo []float64) {
	for i := 0; i < m.n; i++ {
		y[i] = m.diag[i] * x[i]
	}
	var own, nei int
	for e := range m.owner {
		own, nei = m.owner[e], m.neighbour[e]
		y[own] += up[e] * x[nei]
		y[nei] += lo[e] * x[own]
	}
}

// Mul returns a freshly allocated A x.
func (m *Matrix) Mul(x []float64) ([]float64, error) {
	y := make([]float64, m.n)
	if err := m.Multiply(y, x); err != nil {
		return nil, err
	}

	return y, nil
}

// Residual writes r = b − A x. r must not alias x.
func (m *Matrix) Residual(r, x, b []float64) error {
	if err := m.checkVectors(r, x); err != nil {
		return lduErrorf(opResidual, err)
	}
	if len(b) != m.n {
		return lduErrorf(opResidual, fmt.Errorf("len(b)=%d, n=%d: %w", len(b), m.n, ErrDimensionMismatch))
	}
	m.multiply(r, x, m.upper, m.lower)
	floats.SubTo(r, b, r)

	return nil
}

// Residual returns a freshly allocated r = b − A x.
func Residual(m *Matrix, x, b []float64) ([]float64, error) {
	if m == nil {
		return nil, lduErrorf(opResidual, ErrNilMatrix)
	}
	r := make([]float64, m.n)
	if err := m.Residual(r, x, b); err != nil {
		return nil, err
	}

	return r, nil
}

// SumA writes the row sums of A into out (diag + upper of owned + lower of neighboured).
// It is the operator applied to a uniform field and feeds the residual normalisation.
func (m *Matrix) SumA(out []float64) error {
	if len(out) != m.n {
		return lduErrorf(opSumA, fmt.Errorf("len(out)=%d, n=%d: %w", len(out), m.n, ErrDimensionMismatch))
	}
	copy(out, m.diag)
	for e := range m.owner {
		out[m.owner[e]] += m.upper[e]
		out[m.neighbour[e]] += m.lower[e]
	}

	return nil
}

func (m *Matrix) checkVectors(y, x []float64) error {
	if len(x) != m.n {
		return fmt.Errorf("len(x)=%d, n=%d: %w", len(x), m.n, ErrDimensionMismatch)
	}
	if len(y) != m.n {
		return fmt.Errorf("len(y)=%d, n=%d: %w", len(y), m.n, ErrDimensionMismatch)
	}

	return nil
}

// Dense expands m into a row-major n×n slice, for diagnostics and small
// direct solves. The result is a fresh allocation.
func (m *Matrix) Dense() []float64 {
	n := m.n
	a := make([]float64, n*n)
	for i, d := range m.diag {
		a[i*n+i] = d
	}
	for e := range m.owner {
		own, nei := m.owner[e], m.neighbour[e]
		a[own*n+nei] = m.upper[e]
		a[nei*n+own] = m.lower[e]
	}

	return a
}

// ---------- Formatting literals ----------
const (
	_fmtHeader = "LDU n=%d connections=%d symmetric=%t\n"
	_fmtDiag   = "diag %v\n"
	_fmtConn   = "(%d,%d) upper=%g lower=%g\n"
)

// String renders the matrix in its LDU form: a header line, the diagonal and
// one line per connection.
func (m *Matrix) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, _fmtHeader, m.n, len(m.owner), m.symmetric)
	fmt.Fprintf(&sb, _fmtDiag, m.diag)
	for e := range m.owner {
		fmt.Fprintf(&sb, _fmtConn, m.owner[e], m.neighbour[e], m.upper[e], m.lower[e])
	}

	return sb.String()
}

// isFinite reports whether v is neither NaN nor ±Inf.
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
