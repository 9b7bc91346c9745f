// SPDX-License-Identifier: MIT

// Package precond - diagonal-based incomplete factorisations (DIC, DILU).
//
// Both factors keep the sparsity of A (no fill-in) and store only a modified
// reciprocal diagonal rD. Their quality depends on visiting connections in
// ascending owner order: every contribution to rD[neighbour] must see the
// final rD[owner]. ldu.Matrix guarantees that order.
//
// Application is a forward sweep over connections followed by a backward
// sweep in reverse order, O(n + e) each.

package precond

import (
	"fmt"

	"github.com/katalvlaran/ldusolve/ldu"
	"gonum.org/v1/gonum/floats"
)

// DIC is the diagonal incomplete Cholesky preconditioner for symmetric matrices.
type DIC struct {
	m  *ldu.Matrix
	rD []float64
}

// NewDIC factorises m.
//
// Implementation:
//   - Stage 1: rD = diag.
//   - Stage 2: For each connection in ascending owner order:
//     rD[neighbour] -= upper² / rD[owner].
//   - Stage 3: rD = 1/rD with a singularity check.
//
// Behavior highlights:
//   - With all off-diagonals zero, rD is bitwise equal to Diagonal's rD.
//
// Errors:
//   - ldu.ErrAsymmetric when m is not symmetric (configuration error).
//   - ErrSingular on a zero or non-finite factor diagonal.
//
// Complexity:
//   - Time O(n + e), Space O(n).
func NewDIC(m *ldu.Matrix) (*DIC, error) {
	if m == nil {
		return nil, precondErrorf(opDIC, ldu.ErrNilMatrix)
	}
	if !m.IsSymmetric() {
		return nil, precondErrorf(opDIC, ldu.ErrAsymmetric)
	}
	rD := append([]float64(nil), m.Diag()...)
	upper, owner, neighbour := m.Upper(), m.Owner(), m.Neighbour()
	for e := range owner {
		rD[neighbour[e]] -= upper[e] * upper[e] / rD[owner[e]]
	}
	if err := reciprocate(rD); err != nil {
		return nil, precondErrorf(opDIC, err)
	}

	return &DIC{m: m, rD: rD}, nil
}

// Precondition applies the DIC factor: w = rD⊙r, forward, then backward sweep.
func (p *DIC) Precondition(w, r []float64) {
	floats.MulTo(w, p.rD, r)
	sweep(w, p.rD, p.m.Upper(), p.m.Upper(), p.m.Owner(), p.m.Neighbour())
}

// PreconditionT equals Precondition; the factor is symmetric.
func (p *DIC) PreconditionT(w, r []float64) {
	p.Precondition(w, r)
}

// ReciprocalDiag returns the factor's reciprocal diagonal (read-only alias).
func (p *DIC) ReciprocalDiag() []float64 { return p.rD }

// DILU is the diagonal incomplete LU preconditioner for general matrices.
type DILU struct {
	m  *ldu.Matrix
	rD []float64
}

// NewDILU factorises m with rD[neighbour] -= upper*lower / rD[owner].
// On a symmetric matrix the factor coincides with DIC.
func NewDILU(m *ldu.Matrix) (*DILU, error) {
	if m == nil {
		return nil, precondErrorf(opDILU, ldu.ErrNilMatrix)
	}
	rD := append([]float64(nil), m.Diag()...)
	upper, lower, owner, neighbour := m.Upper(), m.Lower(), m.Owner(), m.Neighbour()
	for e := range owner {
		rD[neighbour[e]] -= upper[e] * lower[e] / rD[owner[e]]
	}
	if err := reciprocate(rD); err != nil {
		return nil, precondErrorf(opDILU, fmt.Errorf("factorise: %w", err))
	}

	return &DILU{m: m, rD: rD}, nil
}

// Precondition applies L then U: the forward sweep uses lower, the backward upper.
func (p *DILU) Precondition(w, r []float64) {
	floats.MulTo(w, p.rD, r)
	sweep(w, p.rD, p.m.Lower(), p.m.Upper(), p.m.Owner(), p.m.Neighbour())
}

// PreconditionT applies the transposed factor: upper and lower exchange roles.
func (p *DILU) PreconditionT(w, r []float64) {
	floats.MulTo(w, p.rD, r)
	sweep(w, p.rD, p.m.Upper(), p.m.Lower(), p.m.Owner(), p.m.Neighbour())
}

// ReciprocalDiag returns the factor's reciprocal diagonal (read-only alias).
func (p *DILU) ReciprocalDiag() []float64 { return p.rD }

// sweep performs the in-place forward and backward substitutions shared by
// DIC and DILU. fwd couples owner→neighbour, bwd couples neighbour→owner.
func sweep(w, rD, fwd, bwd []float64, owner, neighbour []int) {
	var own, nei int
	for e := 0; e < len(owner); e++ {
		own, nei = owner[e], neighbour[e]
		w[nei] -= rD[nei] * fwd[e] * w[own]
	}
	for e := len(owner) - 1; e >= 0; e-- {
		own, nei = owner[e], neighbour[e]
		w[own] -= rD[own] * bwd[e] * w[nei]
	}
}
