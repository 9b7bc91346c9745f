// Package ldu stores square sparse matrices in LDU addressing: a diagonal
// array plus one upper and one lower coefficient per connection between two
// equations, where each connection is addressed by an (owner, neighbour) pair
// with owner < neighbour.
//
// This is the natural storage for finite-volume discretisations, where every
// internal face couples exactly two cells. The off-diagonal work of a matrix
// product is a single pass over the connections, scattering to both endpoints:
//
//	y[owner]     += upper[e] * x[neighbour]
//	y[neighbour] += lower[e] * x[owner]
//
// Connections are kept in ascending owner order (ties by ascending
// neighbour). New validates this and rejects violations; Assembler accepts
// contributions in any order and sorts on Build.
//
// Guarantees:
//
//   - No routine panics on user input; sentinel errors are returned instead.
//   - Vector kernels validate lengths and return ErrDimensionMismatch.
//   - Fixed loop orders make every kernel bitwise reproducible.
//   - A Matrix is immutable after construction and safe for concurrent readers.
package ldu
