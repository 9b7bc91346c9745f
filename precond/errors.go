// SPDX-License-Identifier: MIT
// Package precond: sentinel error set.
//
// Configuration problems (unknown name, DIC on an asymmetric matrix) are
// fatal for the caller. ErrSingular is a numerical report: the solver turns it
// into a singular performance record instead of failing the run.

package precond

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownPreconditioner indicates a preconditioner name or Kind that
	// is not one of none, diagonal, DIC, DILU.
	ErrUnknownPreconditioner = errors.New("precond: unknown preconditioner")

	// ErrSingular indicates a zero or non-finite reciprocal diagonal after
	// factorisation (e.g. a zero row or a breakdown of the incomplete factor).
	ErrSingular = errors.New("precond: singular diagonal")
)

const (
	opNew      = "New"
	opDiagonal = "Diagonal"
	opDIC      = "DIC"
	opDILU     = "DILU"
)

func precondErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
