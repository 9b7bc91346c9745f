// SPDX-License-Identifier: MIT
// Package dense provides products and direct solvers on any Matrix
// implementation. All functions validate inputs up front and return sentinel
// errors wrapped with an operation tag.
//
// Notes:
//   - *Dense operands take a flat-slice fast path; other implementations fall
//     back to At/Set in fixed i→j order with identical results.

package dense

import (
	"fmt"
	"math"
)

// ZeroSum is the initial value for dot products and substitutions.
const ZeroSum = 0.0

// MatVec computes y = m * x for a column vector x.
//
// Contract: m non-nil; x non-nil; len(x) == m.Cols().
// Determinism: fixed i→j loop order.
// Complexity: Time O(r*c), Space O(r) for y.
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	rows, cols := m.Rows(), m.Cols()
	y := make([]float64, rows)

	if d, ok := m.(*Dense); ok {
		var i, j, base int
		var acc float64
		for i = 0; i < d.r; i++ {
			acc = ZeroSum
			base = i * d.c
			for j = 0; j < d.c; j++ {
				acc += d.data[base+j] * x[j]
			}
			y[i] = acc
		}

		return y, nil
	}

	var mv float64
	var err error
	for i := 0; i < rows; i++ {
		y[i] = ZeroSum
		for j := 0; j < cols; j++ {
			if mv, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opMatVec, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			y[i] += mv * x[j]
		}
	}

	return y, nil
}

// Mul performs standard matrix multiplication C = A × B into a fresh Dense.
// Complexity: Time O(r*k*c), Space O(r*c).
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	rows, inner, cols := a.Rows(), a.Cols(), b.Cols()
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	da, okA := a.(*Dense)
	db, okB := b.(*Dense)
	if okA && okB {
		var i, j, k int
		var aik float64
		for i = 0; i < rows; i++ {
			for k = 0; k < inner; k++ {
				aik = da.data[i*inner+k]
				for j = 0; j < cols; j++ {
					res.data[i*cols+j] += aik * db.data[k*cols+j]
				}
			}
		}

		return res, nil
	}

	var av, bv, sum float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			sum = ZeroSum
			for k := 0; k < inner; k++ {
				if av, err = a.At(i, k); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				if bv, err = b.At(k, j); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				sum += av * bv
			}
			res.data[i*cols+j] = sum
		}
	}

	return res, nil
}

// Solve returns x with A x = b by Gaussian elimination with partial pivoting
// followed by back-substitution. Neither a nor b is modified.
//
// Implementation:
//   - Stage 1: Validate A square and len(b) == n; copy A and b into scratch.
//   - Stage 2: For each column k pick the row p >= k with the largest |A[p][k]|,
//     swap rows k and p (matrix and right-hand side), eliminate below.
//   - Stage 3: Back-substitute on the upper-triangular system.
//
// Behavior highlights:
//   - Partial pivoting keeps multipliers |l| <= 1 (stable for practical inputs).
//   - Ties are broken by the smallest row index, so the pivot order is deterministic.
//
// Inputs:
//   - a: square n×n matrix (any Matrix; *Dense takes the fast copy path).
//   - b: right-hand side of length n.
//   - opts: WithPivotTolerance.
//
// Returns:
//   - []float64: freshly allocated solution x.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (validation).
//   - ErrSingular when |pivot| <= tol * max|A| (including the zero matrix).
//
// Determinism:
//   - Fixed k→i→j loop orders; identical inputs give bitwise identical x.
//
// Complexity:
//   - Time O(n³), Space O(n²).
//
// Notes:
//   - For several right-hand sides against one matrix, Factorize once and
//     call (*LU).Solve per vector instead.
func Solve(a Matrix, b []float64, opts ...Option) ([]float64, error) {
	o := gatherOptions(opts...)
	if err := ValidateSquareNonNil(a); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	n := a.Rows()
	if err := ValidateVecLen(b, n); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	w, maxAbs, err := flatCopy(a)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	x := append([]float64(nil), b...)
	threshold := o.pivotTol * maxAbs

	var i, j, k, p int
	var big, v, f float64
	for k = 0; k < n; k++ {
		// Pivot search in column k.
		p, big = k, math.Abs(w[k*n+k])
		for i = k + 1; i < n; i++ {
			if v = math.Abs(w[i*n+k]); v > big {
				p, big = i, v
			}
		}
		if big <= threshold || big == 0 {
			return nil, matrixErrorf(opSolve, fmt.Errorf("column %d: %w", k, ErrSingular))
		}
		if p != k {
			swapRows(w, n, k, p)
			x[k], x[p] = x[p], x[k]
		}
		// Eliminate below the pivot.
		for i = k + 1; i < n; i++ {
			f = w[i*n+k] / w[k*n+k]
			if f == 0 {
				continue
			}
			w[i*n+k] = 0
			for j = k + 1; j < n; j++ {
				w[i*n+j] -= f * w[k*n+j]
			}
			x[i] -= f * x[k]
		}
	}
	backSubstitute(w, n, x)

	return x, nil
}

// flatCopy returns a row-major copy of square m and its largest absolute entry.
func flatCopy(m Matrix) ([]float64, float64, error) {
	n := m.Rows()
	w := make([]float64, n*n)
	if d, ok := m.(*Dense); ok {
		copy(w, d.data)
	} else {
		var v float64
		var err error
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if v, err = m.At(i, j); err != nil {
					return nil, 0, fmt.Errorf("At(%d,%d): %w", i, j, err)
				}
				w[i*n+j] = v
			}
		}
	}
	maxAbs := 0.0
	for idx, v := range w {
		if !isFinite(v) {
			return nil, 0, denseErrorf(ctxAt, idx/n, idx%n, ErrNaNInf)
		}
		if a := math.Abs(v); a > maxAbs {
			maxAbs = a
		}
	}

	return w, maxAbs, nil
}

func swapRows(w []float64, n, a, b int) {
	ra, rb := w[a*n:(a+1)*n], w[b*n:(b+1)*n]
	for j := range ra {
		ra[j], rb[j] = rb[j], ra[j]
	}
}

// backSubstitute solves U x = x in place for the upper triangle of w.
func backSubstitute(w []float64, n int, x []float64) {
	var sum float64
	for i := n - 1; i >= 0; i-- {
		sum = x[i]
		for j := i + 1; j < n; j++ {
			sum -= w[i*n+j] * x[j]
		}
		x[i] = sum / w[i*n+i]
	}
}
