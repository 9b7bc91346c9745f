// SPDX-License-Identifier: MIT
// Package: ldu
//
// assembler.go - incremental construction of LDU matrices.
//
// Contract:
//   - Connections may be added in any orientation and any order.
//     AddConnection(i, j, aij, aji) sets A[i][j] += aij and A[j][i] += aji.
//   - Repeated pairs accumulate (finite-volume style face contributions).
//   - Build sorts connections by (owner asc, neighbour asc), which is the
//     ordering DIC/DILU factorisations depend on.
//   - Non-finite coefficients are rejected at insertion (ErrNaNInf).
//
// Determinism:
//   - The built matrix does not depend on insertion order (up to floating-point
//     summation order of duplicates, which follows insertion order).

package ldu

import (
	"fmt"
	"sort"
)

// pairKey is an ordered (owner, neighbour) pair with owner < neighbour.
type pairKey struct {
	own int
	nei int
}

// coeffPair accumulates the two off-diagonal coefficients of one connection.
type coeffPair struct {
	upper float64 // A[own][nei]
	lower float64 // A[nei][own]
}

// Assembler collects diagonal and off-diagonal contributions and produces a
// validated *Matrix. The zero value is an empty assembler ready for AddEquations.
type Assembler struct {
	diag  []float64
	conns map[pairKey]*coeffPair
	order []pairKey // first-insertion order of each pair
}

// NewAssembler returns an assembler for n equations (n >= 0).
func NewAssembler(n int) (*Assembler, error) {
	a := &Assembler{}
	if _, err := a.AddEquations(n); err != nil {
		return nil, err
	}

	return a, nil
}

// AddEquations appends k equations with zero diagonal and returns the index
// of the first new equation.
func (a *Assembler) AddEquations(k int) (int, error) {
	if k < 0 {
		return 0, lduErrorf(opAddEqns, fmt.Errorf("k=%d: %w", k, ErrBadSize))
	}
	first := len(a.diag)
	a.diag = append(a.diag, make([]float64, k)...)

	return first, nil
}

// N returns the current number of equations.
func (a *Assembler) N() int { return len(a.diag) }

// AddDiag adds v to A[i][i].
func (a *Assembler) AddDiag(i int, v float64) error {
	if i < 0 || i >= len(a.diag) {
		return lduErrorf(opAddDiag, fmt.Errorf("i=%d, n=%d: %w", i, len(a.diag), ErrOutOfRange))
	}
	if !isFinite(v) {
		return lduErrorf(opAddDiag, fmt.Errorf("i=%d: %w", i, ErrNaNInf))
	}
	a.diag[i] += v

	return nil
}

// AddConnection adds aij to A[i][j] and aji to A[j][i].
// The pair is normalised so that the smaller index becomes the owner.
func (a *Assembler) AddConnection(i, j int, aij, aji float64) error {
	n := len(a.diag)
	if i < 0 || i >= n || j < 0 || j >= n {
		return lduErrorf(opAddConn, fmt.Errorf("(%d,%d), n=%d: %w", i, j, n, ErrOutOfRange))
	}
	if i == j {
		return lduErrorf(opAddConn, fmt.Errorf("(%d,%d): %w", i, j, ErrBadConnection))
	}
	if !isFinite(aij) || !isFinite(aji) {
		return lduErrorf(opAddConn, fmt.Errorf("(%d,%d): %w", i, j, ErrNaNInf))
	}
	// Orient: upper is the owner-row coefficient.
	if i > j {
		i, j = j, i
		aij, aji = aji, aij
	}
	if a.conns == nil {
		a.conns = make(map[pairKey]*coeffPair)
	}
	key := pairKey{own: i, nei: j}
	c, ok := a.conns[key]
	if !ok {
		c = &coeffPair{}
		a.conns[key] = c
		a.order = append(a.order, key)
	}
	c.upper += aij
	c.lower += aji

	return nil
}

// AddSymmetricConnection adds v to both A[i][j] and A[j][i].
func (a *Assembler) AddSymmetricConnection(i, j int, v float64) error {
	return a.AddConnection(i, j, v, v)
}

// Build returns a new Matrix holding copies of the assembled coefficients.
// The assembler stays usable; later additions do not affect returned matrices.
//
// Implementation:
//   - Stage 1: Copy the pair keys and sort by (owner, neighbour).
//   - Stage 2: Scatter coefficients into flat upper/lower/owner/neighbour slices.
//   - Stage 3: Delegate to New for validation and symmetry detection.
//
// Complexity:
//   - Time O(n + e log e), Space O(n + e).
func (a *Assembler) Build() (*Matrix, error) {
	keys := make([]pairKey, len(a.order))
	copy(keys, a.order)
	sort.Slice(keys, func(x, y int) bool {
		if keys[x].own != keys[y].own {
			return keys[x].own < keys[y].own
		}
		return keys[x].nei < keys[y].nei
	})

	e := len(keys)
	var (
		upper     = make([]float64, e)
		lower     = make([]float64, e)
		owner     = make([]int, e)
		neighbour = make([]int, e)
	)
	for idx, k := range keys {
		c := a.conns[k]
		owner[idx], neighbour[idx] = k.own, k.nei
		upper[idx], lower[idx] = c.upper, c.lower
	}
	diag := append([]float64(nil), a.diag...)

	m, err := New(len(diag), diag, upper, lower, owner, neighbour)
	if err != nil {
		return nil, lduErrorf(opAssemble, err)
	}

	return m, nil
}
