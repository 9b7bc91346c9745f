// SPDX-License-Identifier: MIT

package precond

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/ldusolve/ldu"
)

// Kind selects a preconditioner. The set is closed; New dispatches on it.
type Kind int

const (
	// KindNone applies the identity (w = r).
	KindNone Kind = iota
	// KindDiagonal applies the inverse diagonal (Jacobi).
	KindDiagonal
	// KindDIC applies a diagonal incomplete Cholesky factor (symmetric only).
	KindDIC
	// KindDILU applies a diagonal incomplete LU factor (any matrix).
	KindDILU
)

var kindNames = [...]string{
	KindNone:     "none",
	KindDiagonal: "diagonal",
	KindDIC:      "DIC",
	KindDILU:     "DILU",
}

// String returns the canonical dictionary name of k.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind resolves a dictionary name (case-insensitive) to a Kind.
// The empty string selects KindNone.
func ParseKind(name string) (Kind, error) {
	if name == "" {
		return KindNone, nil
	}
	for k, s := range kindNames {
		if strings.EqualFold(name, s) {
			return Kind(k), nil
		}
	}

	return KindNone, fmt.Errorf("%q: %w", name, ErrUnknownPreconditioner)
}

// Preconditioner approximates the solution of A w = r for a fixed matrix.
//
// Implementations are built once per solve and are immutable afterwards.
// Both methods require len(w) == len(r) == n and must not alias w and r.
type Preconditioner interface {
	// Precondition writes w ≈ A⁻¹ r.
	Precondition(w, r []float64)
	// PreconditionT writes w ≈ A⁻ᵀ r (used by biconjugate solvers).
	PreconditionT(w, r []float64)
}

// New builds the preconditioner selected by kind for m.
//
// Errors:
//   - ldu.ErrNilMatrix when m is nil.
//   - ErrUnknownPreconditioner for an out-of-range kind.
//   - ldu.ErrAsymmetric for KindDIC on an asymmetric matrix (configuration).
//   - ErrSingular for a zero or non-finite reciprocal diagonal (report).
func New(kind Kind, m *ldu.Matrix) (Preconditioner, error) {
	if m == nil {
		return nil, precondErrorf(opNew, ldu.ErrNilMatrix)
	}
	switch kind {
	case KindNone:
		return Identity{}, nil
	case KindDiagonal:
		return NewDiagonal(m)
	case KindDIC:
		return NewDIC(m)
	case KindDILU:
		return NewDILU(m)
	default:
		return nil, precondErrorf(opNew, fmt.Errorf("%v: %w", kind, ErrUnknownPreconditioner))
	}
}

// Identity is the no-op preconditioner.
type Identity struct{}

// Precondition copies r into w.
func (Identity) Precondition(w, r []float64) { copy(w, r) }

// PreconditionT copies r into w.
func (Identity) PreconditionT(w, r []float64) { copy(w, r) }
