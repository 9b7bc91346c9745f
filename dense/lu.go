// SPDX-License-Identifier: MIT

package dense

import (
	"fmt"
	"math"
)

// LU is a reusable factorisation P A = L U with unit-diagonal L, produced by
// Factorize. L (below the diagonal) and U (on and above) share one buffer.
// An LU is immutable after construction and safe for concurrent Solve calls.
type LU struct {
	n    int
	lu   []float64 // row-major n×n, L strictly below diagonal, U on/above
	piv  []int     // piv[i] = original row placed at position i
	sign float64   // +1/-1 parity of the permutation
}

// Factorize computes P A = L U with scaled partial pivoting.
//
// Implementation:
//   - Stage 1: Copy A; compute per-row scale s[i] = 1 / max_j |A[i][j]|
//     (an all-zero row is singular immediately).
//   - Stage 2: For column k choose the row p >= k maximising s[p]*|A[p][k]|,
//     swap rows (data, scale, permutation, sign), store multipliers in place.
//
// Behavior highlights:
//   - Scaling makes the pivot choice invariant to row equilibration, which
//     matters for badly scaled coefficient blocks.
//   - The factor is reused across right-hand sides; only O(n²) per Solve.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf (validation).
//   - ErrSingular when |pivot| <= tol * max|A|.
//
// Complexity:
//   - Time O(n³), Space O(n²).
func Factorize(a Matrix, opts ...Option) (*LU, error) {
	o := gatherOptions(opts...)
	if err := ValidateSquareNonNil(a); err != nil {
		return nil, matrixErrorf(opFactorize, err)
	}
	n := a.Rows()
	w, maxAbs, err := flatCopy(a)
	if err != nil {
		return nil, matrixErrorf(opFactorize, err)
	}
	threshold := o.pivotTol * maxAbs

	scale := make([]float64, n)
	piv := make([]int, n)
	var i, j, k, p int
	var big, v, f float64
	for i = 0; i < n; i++ {
		piv[i] = i
		big = 0
		for j = 0; j < n; j++ {
			if v = math.Abs(w[i*n+j]); v > big {
				big = v
			}
		}
		if big == 0 {
			return nil, matrixErrorf(opFactorize, fmt.Errorf("row %d is zero: %w", i, ErrSingular))
		}
		scale[i] = 1 / big
	}

	sign := 1.0
	for k = 0; k < n; k++ {
		p, big = k, -1
		for i = k; i < n; i++ {
			if v = scale[i] * math.Abs(w[i*n+k]); v > big {
				p, big = i, v
			}
		}
		if p != k {
			swapRows(w, n, k, p)
			scale[k], scale[p] = scale[p], scale[k]
			piv[k], piv[p] = piv[p], piv[k]
			sign = -sign
		}
		if math.Abs(w[k*n+k]) <= threshold || w[k*n+k] == 0 {
			return nil, matrixErrorf(opFactorize, fmt.Errorf("column %d: %w", k, ErrSingular))
		}
		for i = k + 1; i < n; i++ {
			f = w[i*n+k] / w[k*n+k]
			w[i*n+k] = f
			if f == 0 {
				continue
			}
			for j = k + 1; j < n; j++ {
				w[i*n+j] -= f * w[k*n+j]
			}
		}
	}

	return &LU{n: n, lu: w, piv: piv, sign: sign}, nil
}

// N returns the system size.
func (f *LU) N() int { return f.n }

// Solve returns x with A x = b using the stored factors. b is not modified.
func (f *LU) Solve(b []float64) ([]float64, error) {
	x := make([]float64, f.n)
	if err := f.SolveTo(x, b); err != nil {
		return nil, err
	}

	return x, nil
}

// SolveTo writes the solution of A x = b into x. x and b may alias.
func (f *LU) SolveTo(x, b []float64) error {
	if err := ValidateVecLen(b, f.n); err != nil {
		return matrixErrorf(opLUSolve, err)
	}
	if err := ValidateVecLen(x, f.n); err != nil {
		return matrixErrorf(opLUSolve, err)
	}
	n := f.n
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		y[i] = b[f.piv[i]]
	}
	// Forward: L y = P b (unit diagonal).
	var sum float64
	for i := 0; i < n; i++ {
		sum = y[i]
		for j := 0; j < i; j++ {
			sum -= f.lu[i*n+j] * y[j]
		}
		y[i] = sum
	}
	backSubstitute(f.lu, n, y)
	copy(x, y)

	return nil
}

// Det returns det(A) = sign(P) * Π U[i][i].
func (f *LU) Det() float64 {
	d := f.sign
	for i := 0; i < f.n; i++ {
		d *= f.lu[i*f.n+i]
	}

	return d
}

// Pivot returns a copy of the row permutation: row i of P A is row Pivot()[i] of A.
func (f *LU) Pivot() []int { return append([]int(nil), f.piv...) }

// L returns the unit lower-triangular factor as a new Dense.
func (f *LU) L() *Dense {
	n := f.n
	l := &Dense{r: n, c: n, data: make([]float64, n*n)}
	for i := 0; i < n; i++ {
		copy(l.data[i*n:i*n+i], f.lu[i*n:i*n+i])
		l.data[i*n+i] = 1
	}

	return l
}

// U returns the upper-triangular factor as a new Dense.
func (f *LU) U() *Dense {
	n := f.n
	u := &Dense{r: n, c: n, data: make([]float64, n*n)}
	for i := 0; i < n; i++ {
		copy(u.data[i*n+i:(i+1)*n], f.lu[i*n+i:(i+1)*n])
	}

	return u
}

// LUSolve factorises a and solves one right-hand side.
func LUSolve(a Matrix, b []float64, opts ...Option) ([]float64, error) {
	f, err := Factorize(a, opts...)
	if err != nil {
		return nil, err
	}

	return f.Solve(b)
}

// Inverse computes A⁻¹ column by column from one factorisation.
// Forming the inverse is reserved for small local coefficient blocks; prefer
// Solve/LU for systems.
func Inverse(a Matrix, opts ...Option) (*Dense, error) {
	f, err := Factorize(a, opts...)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	n := f.n
	inv := &Dense{r: n, c: n, data: make([]float64, n*n)}
	e := make([]float64, n)
	col := make([]float64, n)
	for j := 0; j < n; j++ {
		for i := range e {
			e[i] = 0
		}
		e[j] = 1
		if err = f.SolveTo(col, e); err != nil {
			return nil, matrixErrorf(opInverse, err)
		}
		for i := 0; i < n; i++ {
			inv.data[i*n+j] = col[i]
		}
	}

	return inv, nil
}
