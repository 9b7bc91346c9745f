// Package precond implements preconditioners for LDU matrices: identity,
// diagonal (Jacobi), DIC and DILU. Each is built once from a matrix and
// applied many times; construction reports ErrSingular for a zero or
// non-finite pivot.
package precond
