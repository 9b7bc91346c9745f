// SPDX-License-Identifier: MIT
// Package ldu: sentinel error set.
//
// Every message is prefixed with "ldu: ..." so log lines can be grepped by
// package. Return these sentinels directly or wrap them with lduErrorf;
// callers branch with errors.Is. No routine here panics on user input.
//
// ERROR PRIORITY (documented, enforced in tests):
// nil -> size -> array length -> index range -> orientation -> ordering -> duplicates.

package ldu

import (
	"errors"
	"fmt"
)

var (
	// ErrNilMatrix indicates that a nil *Matrix was passed where one is required.
	ErrNilMatrix = errors.New("ldu: nil matrix")

	// ErrBadSize indicates a negative equation count.
	ErrBadSize = errors.New("ldu: invalid number of equations")

	// ErrDimensionMismatch indicates that a vector or coefficient array length
	// does not match the matrix size (n for vectors, len(owner) for connections).
	ErrDimensionMismatch = errors.New("ldu: dimension mismatch")

	// ErrOutOfRange indicates an equation index outside [0, n).
	ErrOutOfRange = errors.New("ldu: index out of range")

	// ErrBadConnection indicates a connection whose owner is not strictly
	// smaller than its neighbour (including self-connections).
	ErrBadConnection = errors.New("ldu: connection owner must be < neighbour")

	// ErrUnsorted indicates connections that are not ordered by ascending
	// owner (ties by ascending neighbour). Use Assembler to sort arbitrary input.
	ErrUnsorted = errors.New("ldu: connections not sorted by owner")

	// ErrDuplicateConnection indicates the same (owner, neighbour) pair twice.
	ErrDuplicateConnection = errors.New("ldu: duplicate connection")

	// ErrAsymmetric indicates that an operation requiring upper == lower was
	// given an asymmetric matrix (DIC, PCG). It is a configuration error.
	ErrAsymmetric = errors.New("ldu: matrix is not symmetric")

	// ErrNaNInf indicates a NaN or ±Inf coefficient at assembly time.
	ErrNaNInf = errors.New("ldu: NaN or Inf coefficient")
)

// Operation tags for lduErrorf (no magic strings at call sites).
const (
	opNew        = "New"
	opMultiply   = "Multiply"
	opMultiplyT  = "MultiplyT"
	opResidual   = "Residual"
	opSumA       = "SumA"
	opAddDiag    = "Assembler.AddDiag"
	opAddConn    = "Assembler.AddConnection"
	opAddEqns    = "Assembler.AddEquations"
	opAssemble   = "Assembler.Build"
	opValidation = "validate"
)

// lduErrorf wraps err with an operation tag, preserving it for errors.Is.
// Call only with a non-nil err.
func lduErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
