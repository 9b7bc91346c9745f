// SPDX-License-Identifier: MIT
// Package solver: sentinel error set.
//
// Errors returned by Solve are configuration or setup failures and are fatal
// for the caller: unknown solver, invalid controls, incompatible matrix,
// vector length mismatch. Numerical outcomes (singular, not converged) are
// never errors; they are reported through Performance.

package solver

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownSolver indicates a solver name or Kind outside the supported set.
	ErrUnknownSolver = errors.New("solver: unknown solver")

	// ErrInvalidControl indicates a negative tolerance or iteration limit.
	ErrInvalidControl = errors.New("solver: invalid control")

	// ErrNotDiagonal indicates the diagonal solver was selected for a matrix
	// with non-zero off-diagonal coefficients.
	ErrNotDiagonal = errors.New("solver: matrix has off-diagonal coefficients")
)

const (
	opSolve      = "Solve"
	opSegregated = "SolveSegregated"
	opDirect     = "dense"
)

func solverErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
