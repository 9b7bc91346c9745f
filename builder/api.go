// SPDX-License-Identifier: MIT
// Package: ldusolve/builder
//
// api.go - thin public entry-points for the builder package.
//
// Design contract (strict):
//   - One orchestrator: BuildMatrix(bopts, cons...). Creates an assembler,
//     resolves cfg, runs cons in order, then sorts and freezes the matrix.
//   - Each constructor appends its own block of equations; blocks built by
//     different constructors are uncoupled.
//   - Functional options (BuilderOption) resolve into an immutable builderConfig (no global state).
//   - Determinism: same inputs/options/seed and constructor order ⇒ identical matrices.
//   - Safety: never panic; return sentinel errors from constructors.

package builder

import (
	"fmt"

	"github.com/katalvlaran/ldusolve/ldu"
)

// Constructor appends a deterministic block of equations to the assembler
// using the resolved builderConfig. Constructors MUST:
//   - Validate parameters early and return sentinel errors (no panics).
//   - Reserve their equations with AddEquations and address them relative
//     to the returned base index.
//   - Preserve determinism for the same config and call order.
type Constructor func(a *ldu.Assembler, cfg builderConfig) error

// BuildMatrix creates an empty assembler, resolves the builder configuration
// from bopts, applies all constructors in order and builds the LDU matrix.
// Any constructor error is wrapped with the context "BuildMatrix: %w" and
// returned immediately.
//
// Coefficient model (every constructor):
//   - A coupling (i, j) with coefficient c > 0 from cfg.coeffFn contributes
//     -c to both off-diagonal entries and +c to both diagonals.
//   - WithConvection(F) adds an upwind flux F from the lower to the higher
//     index: A[j][i] -= F and A[j][j] += F. The matrix becomes asymmetric.
//   - WithDiagonalShift(s) adds s to every diagonal once, after all
//     constructors ran. With s > 0 the matrix is strictly diagonally dominant.
//
// Complexity:
//   - Resolving options: O(len(bopts)).
//   - Applying K constructors: Σ cost of each; the final sort is O(e log e).
//
// Errors:
//   - Wraps constructor errors via %w; callers branch with errors.Is against
//     builder sentinels (ErrTooFewEquations, ErrInvalidProbability, ...).
func BuildMatrix(bopts []BuilderOption, cons ...Constructor) (*ldu.Matrix, error) {
	a := &ldu.Assembler{}
	cfg := newBuilderConfig(bopts...)

	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildMatrix: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(a, cfg); err != nil {
			return nil, fmt.Errorf("BuildMatrix: %w", err)
		}
	}
	if cfg.shift != 0 {
		for i := 0; i < a.N(); i++ {
			if err := a.AddDiag(i, cfg.shift); err != nil {
				return nil, fmt.Errorf("BuildMatrix: %w", err)
			}
		}
	}

	m, err := a.Build()
	if err != nil {
		return nil, fmt.Errorf("BuildMatrix: %w", err)
	}

	return m, nil
}

// couple adds the coupling between equations i < j under the coefficient
// model documented on BuildMatrix.
func couple(a *ldu.Assembler, cfg builderConfig, i, j int) error {
	c := cfg.coeffFn(cfg.rng)
	f := cfg.convection
	if err := a.AddConnection(i, j, -c, -c-f); err != nil {
		return err
	}
	if err := a.AddDiag(i, c); err != nil {
		return err
	}

	return a.AddDiag(j, c+f)
}

// =============================================================================
// Factories - implemented in impl_*.go
// =============================================================================

// Diagonal builds n uncoupled equations with diagonal cfg.coeffFn (n ≥ 1).
// Complexity: O(n).
//func Diagonal(n int) Constructor

// Path builds the 1D chain 0-1-…-(n-1) (n ≥ 1).
// Complexity: O(n) equations + O(n-1) connections.
//func Path(n int) Constructor

// Grid builds a rows×cols five-point stencil in row-major order.
// Complexity: O(rows*cols) equations and connections.
//func Grid(rows, cols int) Constructor

// RandomSparse couples each pair i<j independently with probability p.
// Requires cfg.rng for 0<p<1. Complexity: O(n²) Bernoulli trials.
//func RandomSparse(n int, p float64) Constructor
