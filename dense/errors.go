// SPDX-License-Identifier: MIT
// Package dense: sentinel error set.
// All algorithms return these sentinels (optionally wrapped with an operation
// tag) and tests check them via errors.Is. No algorithm panics on
// user-triggered error conditions; panics are reserved for option
// constructors receiving nonsensical values.

package dense

import (
	"errors"
	"fmt"
)

// Every message is prefixed with "dense: ..." for consistent grepping.
//
// ERROR PRIORITY (documented, enforced in tests):
// nil -> shape -> index/NaN -> dimension mismatch -> singular.

var (
	// ErrInvalidDimensions indicates non-positive requested dimensions.
	ErrInvalidDimensions = errors.New("dense: dimensions must be > 0")

	// ErrOutOfRange indicates a row or column index outside valid bounds.
	// Public indexers (At/Set) return this, never panic.
	ErrOutOfRange = errors.New("dense: index out of range")

	// ErrDimensionMismatch indicates incompatible operand shapes, a non-square
	// matrix where a square one is required, or a vector of the wrong length.
	ErrDimensionMismatch = errors.New("dense: dimension mismatch")

	// ErrNilMatrix indicates a nil Matrix or nil vector argument.
	ErrNilMatrix = errors.New("dense: nil matrix")

	// ErrNaNInf indicates a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("dense: NaN or Inf encountered")

	// ErrSingular is returned when elimination meets a pivot that is zero
	// relative to the matrix scale. It is a report, not a crash: the
	// caller decides what to do with a singular system.
	ErrSingular = errors.New("dense: singular matrix")
)

// Operation name constants for unified error wrapping.
const (
	opMul       = "Mul"
	opMatVec    = "MatVec"
	opSolve     = "Solve"
	opFactorize = "Factorize"
	opLUSolve   = "LU.Solve"
	opInverse   = "Inverse"
	opFromGonum = "FromGonum"
	opCond      = "Cond"
)

// matrixErrorf wraps err with an operation tag, preserving it for errors.Is/As.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
