// SPDX-License-Identifier: MIT
// Package dense_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic fixtures for the direct solvers.
//   • Keep all data finite and well-formed to avoid numeric-policy interference.

package dense_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/ldusolve/dense"
	"github.com/stretchr/testify/require"
)

// hide wraps any Matrix to hide its concrete type and force fallback paths.
type hide struct{ dense.Matrix }

// MustFromRows builds a Dense from literal rows or fails the test.
func MustFromRows(t *testing.T, rows [][]float64) *dense.Dense {
	t.Helper()
	d, err := dense.NewFromRows(rows)
	require.NoError(t, err)

	return d
}

// RandSystem returns an n×n matrix with U(-1,1) entries plus n on the
// diagonal (well conditioned) and a random reference solution.
func RandSystem(t testing.TB, n int, seed int64) (*dense.Dense, []float64) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	a, err := dense.NewDense(n, n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := rng.Float64()*2 - 1
			if i == j {
				v += float64(n)
			}
			require.NoError(t, a.Set(i, j, v))
		}
	}
	x := make([]float64, n)
	for i := range x {
		x[i] = rng.Float64()*10 - 5
	}

	return a, x
}

// ExpectPanic asserts that fn panics (any value).
func ExpectPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic, got nil")
		}
	}()
	fn()
}

// benchSizes lists square sizes used by benchmarks.
var benchSizes = []int{8, 32, 128}
