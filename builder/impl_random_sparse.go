// SPDX-License-Identifier: MIT
// Package: ldusolve/builder
//
// impl_random_sparse.go - implementation of RandomSparse(n, p) constructor.
//
// Canonical model:
//   - Erdős–Rényi-like connectivity: couple each unordered pair {i,j}, i<j,
//     independently with probability p.
//
// Contract:
//   - n ≥ 1 (else ErrTooFewEquations).
//   - 0 ≤ p ≤ 1 (else ErrInvalidProbability).
//   - cfg.rng must be non-nil when 0 < p < 1 (else ErrNeedRandSource).
//
// Complexity:
//   - Time: O(n²) Bernoulli trials. Space: O(1) extra.
//
// Determinism:
//   - Stable trial order: i asc, then j asc; fixed seed ⇒ identical matrix.

package builder

import (
	"fmt"

	"github.com/katalvlaran/ldusolve/ldu"
)

const (
	methodRandomSparse = "RandomSparse"
	minRandomSparse    = 1
	probMin            = 0.0
	probMax            = 1.0
)

// RandomSparse returns a Constructor that appends n randomly coupled equations.
func RandomSparse(n int, p float64) Constructor {
	return func(a *ldu.Assembler, cfg builderConfig) error {
		if n < minRandomSparse {
			return fmt.Errorf("%s: n=%d < min=%d: %w",
				methodRandomSparse, n, minRandomSparse, ErrTooFewEquations)
		}
		if p < probMin || p > probMax {
			return fmt.Errorf("%s: p=%.6f not in [%.1f,%.1f]: %w",
				methodRandomSparse, p, probMin, probMax, ErrInvalidProbability)
		}
		if cfg.rng == nil && p > probMin && p < probMax {
			return fmt.Errorf("%s: rng is required: %w", methodRandomSparse, ErrNeedRandSource)
		}

		base, err := a.AddEquations(n)
		if err != nil {
			return fmt.Errorf("%s: %w", methodRandomSparse, err)
		}
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				// p==1 and p==0 never consume the RNG.
				if p < probMax && (p == probMin || cfg.rng.Float64() >= p) {
					continue
				}
				if err = couple(a, cfg, base+i, base+j); err != nil {
					return fmt.Errorf("%s: couple(%d,%d): %w", methodRandomSparse, base+i, base+j, err)
				}
			}
		}

		return nil
	}
}
