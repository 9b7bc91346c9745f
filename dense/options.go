// SPDX-License-Identifier: MIT

// Package dense: functional configuration for the direct solvers.
//
// Design goals:
//   - Deterministic behavior: no global state.
//   - Safe by construction: WithX panics on nonsensical values (programmer error);
//     the solvers themselves never panic.

package dense

import "math"

// DefaultPivotTolerance is the relative pivot threshold: elimination reports
// ErrSingular when |pivot| <= DefaultPivotTolerance * max|A[i][j]|.
const DefaultPivotTolerance = 1e-14

const panicPivotTolerance = "dense: WithPivotTolerance(tol) requires finite tol >= 0"

// Option customizes a direct solve.
type Option func(*Options)

// Options holds resolved settings; fields are unexported and set via Option.
type Options struct {
	pivotTol float64
}

// WithPivotTolerance overrides the relative pivot threshold. tol = 0 reports
// only exactly zero pivots. Panics on negative, NaN or infinite tol.
func WithPivotTolerance(tol float64) Option {
	if tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
		panic(panicPivotTolerance)
	}
	return func(o *Options) { o.pivotTol = tol }
}

func gatherOptions(opts ...Option) Options {
	o := Options{pivotTol: DefaultPivotTolerance}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
