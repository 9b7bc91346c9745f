// SPDX-License-Identifier: MIT
// Package config: sentinel error set.
//
// Every decoding or validation failure wraps ErrInvalidConfig; when a more
// specific sentinel applies (solver.ErrUnknownSolver,
// precond.ErrUnknownPreconditioner, solver.ErrInvalidControl) it is wrapped
// too, so callers may branch on either.

package config

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig indicates a malformed or semantically invalid file.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrNoSolverEntry indicates that no solvers entry matches a field name.
	ErrNoSolverEntry = errors.New("config: no solver entry for field")
)

const (
	opDict     = "Dict"
	opSolvers  = "Solvers"
	opSelect   = "Select"
	opCase     = "Case"
	opGenerate = "generate"
)

func configErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// invalid wraps cause under ErrInvalidConfig.
func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...)
}
