// SPDX-License-Identifier: MIT
// Package solver_test contains shared fixtures for solver tests.

package solver_test

import (
	"io"
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/ldusolve/builder"
	"github.com/katalvlaran/ldusolve/ldu"
	"github.com/katalvlaran/ldusolve/precond"
	"github.com/katalvlaran/ldusolve/solver"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// benchSizes are grid edge lengths used by benchmarks.
var benchSizes = []int{8, 32, 64}

// sinkPerf keeps benchmark results alive.
var sinkPerf solver.Performance

// quiet discards benchmark summaries.
var quiet = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

// MustMatrix builds an LDU matrix or fails the test.
func MustMatrix(t testing.TB, n int, diag, upper, lower []float64, owner, neighbour []int) *ldu.Matrix {
	t.Helper()
	m, err := ldu.New(n, diag, upper, lower, owner, neighbour)
	require.NoError(t, err)

	return m
}

// MustBuild builds a fixture matrix or fails the test.
func MustBuild(t testing.TB, bopts []builder.BuilderOption, cons ...builder.Constructor) *ldu.Matrix {
	t.Helper()
	m, err := builder.BuildMatrix(bopts, cons...)
	require.NoError(t, err)

	return m
}

// Manufactured returns a seeded solution and b = A xTrue.
func Manufactured(t testing.TB, m *ldu.Matrix, seed int64) (xTrue, b []float64) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	xTrue = make([]float64, m.N())
	for i := range xTrue {
		xTrue[i] = rng.Float64()*2 - 1
	}
	b, err := m.Mul(xTrue)
	require.NoError(t, err)

	return xTrue, b
}

// Cfg builds a Config with the given method, preconditioner and control options.
func Cfg(kind solver.Kind, pc precond.Kind, opts ...solver.ControlOption) solver.Config {
	return solver.Config{Solver: kind, Preconditioner: pc, Control: solver.NewControl(opts...)}
}

// maxAbsDiff returns max_i |a_i − b_i|.
func maxAbsDiff(a, b []float64) float64 {
	var d float64
	for i := range a {
		d = math.Max(d, math.Abs(a[i]-b[i]))
	}

	return d
}

// Tridiag3Sym is the SPD matrix tridiag(-1, 4, -1) of order 3.
func Tridiag3Sym(t testing.TB) *ldu.Matrix {
	t.Helper()
	return MustMatrix(t, 3, []float64{4, 4, 4}, []float64{-1, -1}, nil, []int{0, 1}, []int{1, 2})
}
