// SPDX-License-Identifier: MIT

package precond

import (
	"fmt"
	"math"

	"github.com/katalvlaran/ldusolve/ldu"
	"gonum.org/v1/gonum/floats"
)

// Diagonal is the Jacobi preconditioner w = r / diag, stored as cached
// reciprocals.
type Diagonal struct {
	rD []float64
}

// NewDiagonal computes rD[i] = 1/diag[i].
//
// Errors:
//   - ErrSingular when any diag[i] is zero or the reciprocal is not finite.
//
// Complexity:
//   - Time O(n), Space O(n).
func NewDiagonal(m *ldu.Matrix) (*Diagonal, error) {
	if m == nil {
		return nil, precondErrorf(opDiagonal, ldu.ErrNilMatrix)
	}
	rD := append([]float64(nil), m.Diag()...)
	if err := reciprocate(rD); err != nil {
		return nil, precondErrorf(opDiagonal, err)
	}

	return &Diagonal{rD: rD}, nil
}

// Precondition writes w = rD ⊙ r.
func (p *Diagonal) Precondition(w, r []float64) {
	floats.MulTo(w, p.rD, r)
}

// PreconditionT is identical to Precondition for a diagonal operator.
func (p *Diagonal) PreconditionT(w, r []float64) {
	floats.MulTo(w, p.rD, r)
}

// ReciprocalDiag returns the cached reciprocals (read-only alias).
func (p *Diagonal) ReciprocalDiag() []float64 { return p.rD }

// reciprocate replaces every entry by its reciprocal in place and reports
// ErrSingular at the first zero or non-finite result.
func reciprocate(rD []float64) error {
	for i, d := range rD {
		rD[i] = 1 / d
		if rD[i] == 0 || math.IsNaN(rD[i]) || math.IsInf(rD[i], 0) {
			return fmt.Errorf("equation %d (d=%g): %w", i, d, ErrSingular)
		}
	}

	return nil
}
