// SPDX-License-Identifier: MIT

// Package solver: solution controls and their functional options.
//
// Design goals:
//   - Control is a plain value (copyable, comparable) so dictionaries and
//     tests can build it directly.
//   - WithX constructors panic on nonsensical values (programmer error);
//     Solve validates hand-built controls and returns ErrInvalidControl.

package solver

import (
	"fmt"
	"math"

	"github.com/katalvlaran/ldusolve/precond"
)

// Defaults (single source of truth).
const (
	// DefaultTolerance is the absolute normalised residual target.
	DefaultTolerance = 1e-6
	// DefaultRelTol disables the relative criterion.
	DefaultRelTol = 0.0
	// DefaultMinIter forces no iterations when already converged.
	DefaultMinIter = 0
	// DefaultMaxIter bounds the work of one solve.
	DefaultMaxIter = 1000
	// DefaultPreconditioner works for symmetric and asymmetric matrices.
	DefaultPreconditioner = precond.KindDiagonal
)

// VSmall is the threshold below which a normalised denominator or the
// normalisation factor itself counts as zero.
const VSmall = 1e-300

const (
	panicTolerance = "solver: WithTolerance(tol) requires finite tol >= 0"
	panicRelTol    = "solver: WithRelTol(rel) requires finite rel >= 0"
	panicMaxIter   = "solver: WithMaxIter(n) requires n >= 0"
	panicMinIter   = "solver: WithMinIter(n) requires n >= 0"
)

// Control holds convergence criteria and iteration bounds.
//
// A solve converges once final < Tolerance, or RelTol > 0 and
// final < RelTol*initial, and at least MinIter iterations were performed.
// MaxIter bounds the iteration count; reaching it is reported, not an error.
type Control struct {
	Tolerance float64
	RelTol    float64
	MinIter   int
	MaxIter   int
}

// ControlOption customizes a Control built by NewControl.
type ControlOption func(*Control)

// NewControl returns the default Control with opts applied in order.
func NewControl(opts ...ControlOption) Control {
	c := Control{
		Tolerance: DefaultTolerance,
		RelTol:    DefaultRelTol,
		MinIter:   DefaultMinIter,
		MaxIter:   DefaultMaxIter,
	}
	for _, opt := range opts {
		opt(&c)
	}

	return c
}

// WithTolerance sets the absolute tolerance.
func WithTolerance(tol float64) ControlOption {
	if tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
		panic(panicTolerance)
	}
	return func(c *Control) { c.Tolerance = tol }
}

// WithRelTol sets the relative tolerance (0 disables it).
func WithRelTol(rel float64) ControlOption {
	if rel < 0 || math.IsNaN(rel) || math.IsInf(rel, 0) {
		panic(panicRelTol)
	}
	return func(c *Control) { c.RelTol = rel }
}

// WithMaxIter sets the iteration budget.
func WithMaxIter(n int) ControlOption {
	if n < 0 {
		panic(panicMaxIter)
	}
	return func(c *Control) { c.MaxIter = n }
}

// WithMinIter sets the minimum number of iterations.
func WithMinIter(n int) ControlOption {
	if n < 0 {
		panic(panicMinIter)
	}
	return func(c *Control) { c.MinIter = n }
}

// Validate reports ErrInvalidControl for negative or non-finite fields.
func (c Control) Validate() error {
	switch {
	case c.Tolerance < 0 || math.IsNaN(c.Tolerance) || math.IsInf(c.Tolerance, 0):
		return fmt.Errorf("tolerance=%g: %w", c.Tolerance, ErrInvalidControl)
	case c.RelTol < 0 || math.IsNaN(c.RelTol) || math.IsInf(c.RelTol, 0):
		return fmt.Errorf("relTol=%g: %w", c.RelTol, ErrInvalidControl)
	case c.MaxIter < 0:
		return fmt.Errorf("maxIter=%d: %w", c.MaxIter, ErrInvalidControl)
	case c.MinIter < 0:
		return fmt.Errorf("minIter=%d: %w", c.MinIter, ErrInvalidControl)
	}

	return nil
}

// converged applies the absolute/relative criteria to a residual pair.
// An exactly zero residual is always converged.
func (c Control) converged(initial, final float64) bool {
	return final == 0 || final < c.Tolerance || (c.RelTol > 0 && final < c.RelTol*initial)
}

// Config selects the algorithm, its preconditioner and controls.
type Config struct {
	Solver         Kind
	Preconditioner precond.Kind
	Control        Control
}

// DefaultConfig returns auto selection with the default preconditioner and controls.
func DefaultConfig() Config {
	return Config{
		Solver:         KindAuto,
		Preconditioner: DefaultPreconditioner,
		Control:        NewControl(),
	}
}
