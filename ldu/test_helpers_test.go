// SPDX-License-Identifier: MIT
// Package ldu_test contains shared fixtures for LDU matrix tests.

package ldu_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/ldusolve/ldu"
	"github.com/stretchr/testify/require"
)

// MustMatrix builds an LDU matrix or fails the test.
func MustMatrix(t *testing.T, n int, diag, upper, lower []float64, owner, neighbour []int) *ldu.Matrix {
	t.Helper()
	m, err := ldu.New(n, diag, upper, lower, owner, neighbour)
	require.NoError(t, err)

	return m
}

// Tridiag3 returns the 3×3 matrix
//
//	[ 4 -1  0 ]
//	[-2  4 -1 ]
//	[ 0 -2  4 ]
//
// upper = -1 (row owner), lower = -2 (row neighbour).
func Tridiag3(t *testing.T) *ldu.Matrix {
	t.Helper()
	return MustMatrix(t, 3,
		[]float64{4, 4, 4},
		[]float64{-1, -1},
		[]float64{-2, -2},
		[]int{0, 1},
		[]int{1, 2})
}

// denseOf expands m into a row-major n×n slice via the accessors.
func denseOf(m *ldu.Matrix) [][]float64 {
	n := m.N()
	a := make([][]float64, n)
	for i := range a {
		a[i] = make([]float64, n)
		a[i][i] = m.Diag()[i]
	}
	for e := range m.Owner() {
		own, nei := m.Owner()[e], m.Neighbour()[e]
		a[own][nei] = m.Upper()[e]
		a[nei][own] = m.Lower()[e]
	}

	return a
}

// randomMatrix assembles an n×n matrix with random connections (seeded).
func randomMatrix(t *testing.T, n int, p float64, seed int64, symmetric bool) *ldu.Matrix {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	a, err := ldu.NewAssembler(n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		require.NoError(t, a.AddDiag(i, 1+rng.Float64()))
		for j := i + 1; j < n; j++ {
			if rng.Float64() > p {
				continue
			}
			u := rng.Float64()*2 - 1
			l := u
			if !symmetric {
				l = rng.Float64()*2 - 1
			}
			require.NoError(t, a.AddConnection(j, i, l, u)) // reversed orientation on purpose
		}
	}
	m, err := a.Build()
	require.NoError(t, err)

	return m
}

func randVec(rng *rand.Rand, n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = rng.Float64()*2 - 1
	}
	return v
}
