// SPDX-License-Identifier: MIT

package solver

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/ldusolve/ldu"
)

// Kind selects the solution algorithm. The set is closed; Solve dispatches on it.
type Kind int

const (
	// KindAuto picks KindPCG for symmetric matrices and KindPBiCG otherwise.
	KindAuto Kind = iota
	// KindPCG is preconditioned conjugate gradients (symmetric matrices).
	KindPCG
	// KindPBiCG is preconditioned biconjugate gradients (any matrix).
	KindPBiCG
	// KindPBiCGStab is the stabilised biconjugate gradient method (any matrix).
	KindPBiCGStab
	// KindDiagonal solves x = b / diag for matrices without off-diagonals.
	KindDiagonal
	// KindDense converts to a dense matrix and solves by pivoted LU.
	KindDense
)

var kindNames = [...]string{
	KindAuto:      "auto",
	KindPCG:       "PCG",
	KindPBiCG:     "PBiCG",
	KindPBiCGStab: "PBiCGStab",
	KindDiagonal:  "diagonal",
	KindDense:     "dense",
}

// String returns the canonical dictionary name of k.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind resolves a dictionary name (case-insensitive). The empty string selects KindAuto.
func ParseKind(name string) (Kind, error) {
	if name == "" {
		return KindAuto, nil
	}
	for k, s := range kindNames {
		if strings.EqualFold(name, s) {
			return Kind(k), nil
		}
	}

	return KindAuto, fmt.Errorf("%q: %w", name, ErrUnknownSolver)
}

// resolve replaces KindAuto by the concrete method for m.
func (k Kind) resolve(m *ldu.Matrix) Kind {
	if k != KindAuto {
		return k
	}
	if m.IsSymmetric() {
		return KindPCG
	}

	return KindPBiCG
}

// iterative reports whether k uses a preconditioner.
func (k Kind) iterative() bool {
	return k == KindPCG || k == KindPBiCG || k == KindPBiCGStab
}
