// SPDX-License-Identifier: MIT
// Package: ldusolve/builder
//
// impl_path.go - implementation of Diagonal(n) and Path(n) constructors.
//
// Contract:
//   • n ≥ 1 (else ErrTooFewEquations).
//   • Equations are appended as one block [base, base+n).
//   • Path couples (base+i, base+i+1) for i ascending: the 1D Laplacian.
//   • Diagonal adds cfg.coeffFn to each diagonal and no connections.
//
// Complexity:
//   • Time: O(n). Space: O(1) extra.

package builder

import (
	"fmt"

	"github.com/katalvlaran/ldusolve/ldu"
)

const (
	methodPath     = "Path"
	methodDiagonal = "Diagonal"
	minPathNodes   = 1
)

// Path returns a Constructor that appends an n-equation chain.
func Path(n int) Constructor {
	return func(a *ldu.Assembler, cfg builderConfig) error {
		if n < minPathNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodPath, n, minPathNodes, ErrTooFewEquations)
		}
		base, err := a.AddEquations(n)
		if err != nil {
			return fmt.Errorf("%s: %w", methodPath, err)
		}
		for i := 0; i+1 < n; i++ {
			if err = couple(a, cfg, base+i, base+i+1); err != nil {
				return fmt.Errorf("%s: couple(%d,%d): %w", methodPath, base+i, base+i+1, err)
			}
		}

		return nil
	}
}

// Diagonal returns a Constructor that appends n uncoupled equations.
func Diagonal(n int) Constructor {
	return func(a *ldu.Assembler, cfg builderConfig) error {
		if n < minPathNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodDiagonal, n, minPathNodes, ErrTooFewEquations)
		}
		base, err := a.AddEquations(n)
		if err != nil {
			return fmt.Errorf("%s: %w", methodDiagonal, err)
		}
		for i := 0; i < n; i++ {
			if err = a.AddDiag(base+i, cfg.coeffFn(cfg.rng)); err != nil {
				return fmt.Errorf("%s: %w", methodDiagonal, err)
			}
		}

		return nil
	}
}
