// SPDX-License-Identifier: MIT

package solver_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/katalvlaran/ldusolve/builder"
	"github.com/katalvlaran/ldusolve/dense"
	"github.com/katalvlaran/ldusolve/ldu"
	"github.com/katalvlaran/ldusolve/precond"
	"github.com/katalvlaran/ldusolve/solver"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func TestPCG_SPDConvergesWithinNIterations(t *testing.T) {
	for _, pc := range []precond.Kind{precond.KindNone, precond.KindDiagonal, precond.KindDIC} {
		t.Run(pc.String(), func(t *testing.T) {
			m := MustBuild(t, nil, builder.Path(10))
			xTrue, b := Manufactured(t, m, 1)
			x := make([]float64, m.N())

			perf, err := solver.Solve(m, x, b, Cfg(solver.KindPCG, pc, solver.WithTolerance(1e-9)))
			require.NoError(t, err)
			require.True(t, perf.Converged, perf.String())
			require.False(t, perf.Singular)
			require.LessOrEqual(t, perf.Iterations, m.N())
			require.Less(t, perf.Final, 1e-9)
			require.InDelta(t, 0, maxAbsDiff(x, xTrue), 1e-6)
		})
	}
}

func TestSolve_ExactInitialGuess(t *testing.T) {
	for _, kind := range []solver.Kind{solver.KindPCG, solver.KindPBiCG, solver.KindPBiCGStab, solver.KindDense} {
		t.Run(kind.String(), func(t *testing.T) {
			m := MustBuild(t, nil, builder.Grid(4, 4))
			xTrue, b := Manufactured(t, m, 2)
			x := append([]float64(nil), xTrue...)

			perf, err := solver.Solve(m, x, b, Cfg(kind, precond.KindDIC))
			require.NoError(t, err)
			require.True(t, perf.Converged)
			require.Zero(t, perf.Iterations)
			require.Zero(t, perf.Initial)
			require.Equal(t, xTrue, x)
		})
	}
}

func TestDIC_NoMoreIterationsThanDiagonal(t *testing.T) {
	m := Tridiag3Sym(t)
	b := []float64{1, 2, 3}
	iters := map[precond.Kind]int{}
	for _, pc := range []precond.Kind{precond.KindDiagonal, precond.KindDIC} {
		x := make([]float64, 3)
		perf, err := solver.Solve(m, x, b, Cfg(solver.KindPCG, pc, solver.WithTolerance(1e-12)))
		require.NoError(t, err)
		require.True(t, perf.Converged)
		iters[pc] = perf.Iterations
	}
	require.LessOrEqual(t, iters[precond.KindDIC], iters[precond.KindDiagonal])
	// DIC is an exact factorisation of a tridiagonal matrix.
	require.Equal(t, 1, iters[precond.KindDIC])
}

func TestSolve_ZeroRowIsSingular(t *testing.T) {
	// Row 1 is empty: diag 0 and no connections.
	m := MustMatrix(t, 3, []float64{2, 0, 2}, []float64{}, nil, []int{}, []int{})
	b := []float64{1, 1, 1}

	tests := []struct {
		name string
		cfg  solver.Config
	}{
		{"DiagonalPCG", Cfg(solver.KindPCG, precond.KindDiagonal)},
		{"DICPCG", Cfg(solver.KindPCG, precond.KindDIC)},
		{"DILUPBiCG", Cfg(solver.KindPBiCG, precond.KindDILU)},
		{"diagonal", Cfg(solver.KindDiagonal, precond.KindNone)},
		{"dense", Cfg(solver.KindDense, precond.KindNone)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x := make([]float64, 3)
			perf, err := solver.Solve(m, x, b, tc.cfg)
			require.NoError(t, err)
			require.True(t, perf.Singular)
			require.False(t, perf.Converged)
			require.Equal(t, solver.OutcomeSingular, perf.Outcome())
		})
	}
}

func TestSolve_ZeroRowWithoutPreconditionerTerminates(t *testing.T) {
	m := MustMatrix(t, 3, []float64{2, 0, 2}, []float64{}, nil, []int{}, []int{})
	x := make([]float64, 3)

	perf, err := solver.Solve(m, x, []float64{1, 1, 1},
		Cfg(solver.KindPCG, precond.KindNone, solver.WithMaxIter(50)))
	require.NoError(t, err)
	require.False(t, perf.Converged)
	require.LessOrEqual(t, perf.Iterations, 50)
}

func TestSolve_MaxIterReached(t *testing.T) {
	m := MustBuild(t, []builder.BuilderOption{builder.WithDiagonalShift(0.01)}, builder.Grid(10, 10))
	_, b := Manufactured(t, m, 3)
	x := make([]float64, m.N())

	perf, err := solver.Solve(m, x, b,
		Cfg(solver.KindPCG, precond.KindDiagonal, solver.WithTolerance(1e-12), solver.WithMaxIter(2)))
	require.NoError(t, err)
	require.False(t, perf.Converged)
	require.False(t, perf.Singular)
	require.Equal(t, 2, perf.Iterations)
	require.Equal(t, solver.OutcomeMaxIterations, perf.Outcome())
}

func TestSolve_EmptySystem(t *testing.T) {
	m := MustMatrix(t, 0, []float64{}, []float64{}, nil, []int{}, []int{})

	perf, err := solver.Solve(m, []float64{}, []float64{}, solver.DefaultConfig())
	require.NoError(t, err)
	require.True(t, perf.Converged)
	require.Zero(t, perf.Iterations)
}

func TestSolve_TrivialNormFactor(t *testing.T) {
	// Pure Laplacian (zero row sums), uniform x, zero source: A x == b == pA.
	m := MustBuild(t, []builder.BuilderOption{builder.WithDiagonalShift(0)}, builder.Path(6))
	x := []float64{3, 3, 3, 3, 3, 3}
	b := make([]float64, 6)

	perf, err := solver.Solve(m, x, b, Cfg(solver.KindPCG, precond.KindDIC))
	require.NoError(t, err)
	require.True(t, perf.Converged)
	require.Zero(t, perf.Iterations)
	require.Zero(t, perf.Initial)
	require.Equal(t, []float64{3, 3, 3, 3, 3, 3}, x)
}

func TestSolve_AsymmetricMethods(t *testing.T) {
	m := MustBuild(t, []builder.BuilderOption{builder.WithConvection(0.8)}, builder.Grid(6, 6))
	require.False(t, m.IsSymmetric())
	xTrue, b := Manufactured(t, m, 4)

	tests := []struct {
		kind solver.Kind
		pc   precond.Kind
	}{
		{solver.KindPBiCG, precond.KindNone},
		{solver.KindPBiCG, precond.KindDiagonal},
		{solver.KindPBiCG, precond.KindDILU},
		{solver.KindPBiCGStab, precond.KindNone},
		{solver.KindPBiCGStab, precond.KindDiagonal},
		{solver.KindPBiCGStab, precond.KindDILU},
		{solver.KindAuto, precond.KindDILU},
		{solver.KindDense, precond.KindNone},
	}
	for _, tc := range tests {
		t.Run(tc.pc.String()+tc.kind.String(), func(t *testing.T) {
			x := make([]float64, m.N())
			perf, err := solver.Solve(m, x, b, Cfg(tc.kind, tc.pc, solver.WithTolerance(1e-10)))
			require.NoError(t, err)
			require.True(t, perf.Converged, perf.String())
			require.InDelta(t, 0, maxAbsDiff(x, xTrue), 1e-7)

			r, err := ldu.Residual(m, x, b)
			require.NoError(t, err)
			require.Less(t, floats.Norm(r, 1), 1e-6)
		})
	}
}

func TestSolve_AutoSelection(t *testing.T) {
	sym := MustBuild(t, nil, builder.Path(5))
	asym := MustBuild(t, []builder.BuilderOption{builder.WithConvection(1)}, builder.Path(5))
	b := []float64{1, 0, 0, 0, 1}

	perf, err := solver.Solve(sym, make([]float64, 5), b, Cfg(solver.KindAuto, precond.KindDIC))
	require.NoError(t, err)
	require.Equal(t, "PCG", perf.Solver)
	require.Equal(t, "DICPCG", perf.Name())

	perf, err = solver.Solve(asym, make([]float64, 5), b, Cfg(solver.KindAuto, precond.KindDILU))
	require.NoError(t, err)
	require.Equal(t, "PBiCG", perf.Solver)
}

func TestSolve_AgreesWithGonum(t *testing.T) {
	m := MustBuild(t, []builder.BuilderOption{builder.WithSeed(9), builder.WithCoefficientFn(builder.UniformCoefficientFn(0.5, 2))},
		builder.RandomSparse(25, 0.2))
	_, b := Manufactured(t, m, 5)

	n := m.N()
	ref := mat.NewVecDense(n, nil)
	require.NoError(t, ref.SolveVec(mat.NewDense(n, n, m.Dense()), mat.NewVecDense(n, b)))

	x := make([]float64, n)
	perf, err := solver.Solve(m, x, b, Cfg(solver.KindPCG, precond.KindDIC, solver.WithTolerance(1e-12)))
	require.NoError(t, err)
	require.True(t, perf.Converged)
	require.InDelta(t, 0, maxAbsDiff(x, ref.RawVector().Data), 1e-8)
}

func TestSolve_DiagonalKind(t *testing.T) {
	m := MustMatrix(t, 3, []float64{2, 4, -5}, []float64{}, nil, []int{}, []int{})
	x := make([]float64, 3)

	perf, err := solver.Solve(m, x, []float64{1, 2, 10}, Cfg(solver.KindDiagonal, precond.KindNone))
	require.NoError(t, err)
	require.True(t, perf.Converged)
	require.Equal(t, 1, perf.Iterations)
	require.Equal(t, []float64{0.5, 0.5, -2}, x)
	require.Equal(t, "diagonal", perf.Name())

	_, err = solver.Solve(Tridiag3Sym(t), make([]float64, 3), []float64{1, 1, 1}, Cfg(solver.KindDiagonal, precond.KindNone))
	require.ErrorIs(t, err, solver.ErrNotDiagonal)
}

func TestSolve_DenseKindMatchesDenseLU(t *testing.T) {
	m := MustBuild(t, []builder.BuilderOption{builder.WithConvection(2)}, builder.Grid(3, 3))
	_, b := Manufactured(t, m, 6)

	a, err := solver.ToDense(m)
	require.NoError(t, err)
	want, err := dense.LUSolve(a, b)
	require.NoError(t, err)

	x := make([]float64, m.N())
	perf, err := solver.Solve(m, x, b, Cfg(solver.KindDense, precond.KindDIC))
	require.NoError(t, err)
	require.True(t, perf.Converged)
	require.Equal(t, 1, perf.Iterations)
	require.Empty(t, perf.Preconditioner, "direct solves ignore the preconditioner")
	require.Equal(t, want, x)
}

func TestSolve_MinIterForcesIterations(t *testing.T) {
	m := MustBuild(t, nil, builder.Path(10))
	_, b := Manufactured(t, m, 7)

	x := make([]float64, m.N())
	perf, err := solver.Solve(m, x, b, Cfg(solver.KindPCG, precond.KindDiagonal, solver.WithTolerance(10)))
	require.NoError(t, err)
	require.True(t, perf.Converged)
	require.Zero(t, perf.Iterations)

	x = make([]float64, m.N())
	perf, err = solver.Solve(m, x, b,
		Cfg(solver.KindPCG, precond.KindDiagonal, solver.WithTolerance(10), solver.WithMinIter(3)))
	require.NoError(t, err)
	require.True(t, perf.Converged)
	require.Equal(t, 3, perf.Iterations)
}

func TestSolve_RelativeTolerance(t *testing.T) {
	m := MustBuild(t, []builder.BuilderOption{builder.WithDiagonalShift(0.01)}, builder.Grid(8, 8))
	_, b := Manufactured(t, m, 8)
	x := make([]float64, m.N())

	perf, err := solver.Solve(m, x, b,
		Cfg(solver.KindPCG, precond.KindDiagonal, solver.WithTolerance(0), solver.WithRelTol(0.1)))
	require.NoError(t, err)
	require.True(t, perf.Converged)
	require.Less(t, perf.Final, 0.1*perf.Initial)
	require.Greater(t, perf.Final, 1e-12, "stops at the relative target, not at machine precision")
}

func TestSolve_SetupErrors(t *testing.T) {
	sym := Tridiag3Sym(t)
	asym := MustBuild(t, []builder.BuilderOption{builder.WithConvection(1)}, builder.Path(3))
	b := []float64{1, 1, 1}

	tests := []struct {
		name string
		m    *ldu.Matrix
		x    []float64
		cfg  solver.Config
		want error
	}{
		{"nil matrix", nil, []float64{}, solver.DefaultConfig(), ldu.ErrNilMatrix},
		{"short x", sym, []float64{0}, solver.DefaultConfig(), ldu.ErrDimensionMismatch},
		{"negative tolerance", sym, make([]float64, 3),
			solver.Config{Control: solver.Control{Tolerance: -1, MaxIter: 10}}, solver.ErrInvalidControl},
		{"unknown solver", sym, make([]float64, 3),
			solver.Config{Solver: solver.Kind(99), Control: solver.NewControl()}, solver.ErrUnknownSolver},
		{"unknown preconditioner", sym, make([]float64, 3),
			solver.Config{Preconditioner: precond.Kind(42), Control: solver.NewControl()}, precond.ErrUnknownPreconditioner},
		{"PCG on asymmetric", asym, make([]float64, 3), Cfg(solver.KindPCG, precond.KindDiagonal), ldu.ErrAsymmetric},
		{"DIC on asymmetric", asym, make([]float64, 3), Cfg(solver.KindPBiCG, precond.KindDIC), ldu.ErrAsymmetric},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := solver.Solve(tc.m, tc.x, b, tc.cfg)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestSolve_LogsAndObserves(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	var seen []solver.Performance
	obs := solver.ObserverFunc(func(p solver.Performance) { seen = append(seen, p) })

	m := MustBuild(t, nil, builder.Grid(5, 5))
	_, b := Manufactured(t, m, 10)
	perf, err := solver.Solve(m, make([]float64, m.N()), b, Cfg(solver.KindPCG, precond.KindDiagonal),
		solver.WithLogger(logger), solver.WithObserver(obs), solver.WithFieldName("p"))
	require.NoError(t, err)

	require.Equal(t, []solver.Performance{perf}, seen)
	last := hook.LastEntry()
	require.Equal(t, logrus.InfoLevel, last.Level)
	require.True(t, strings.HasPrefix(last.Message, "diagonalPCG:  Solving for p, Initial residual = "), last.Message)
	require.Equal(t, solver.OutcomeConverged, last.Data["outcome"])
	require.Equal(t, perf.Iterations, last.Data["iterations"])

	debug := 0
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.DebugLevel {
			debug++
		}
	}
	require.Equal(t, perf.Iterations, debug, "one debug line per iteration")
}

func TestSolve_SingularLogsWarning(t *testing.T) {
	logger, hook := test.NewNullLogger()
	m := MustMatrix(t, 2, []float64{0, 1}, []float64{}, nil, []int{}, []int{})

	perf, err := solver.Solve(m, make([]float64, 2), []float64{1, 1}, solver.DefaultConfig(), solver.WithLogger(logger))
	require.NoError(t, err)
	require.True(t, perf.Singular)
	require.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	require.True(t, strings.HasSuffix(hook.LastEntry().Message, "(singular)"))
}

func TestSolve_ConcurrentOnSharedMatrix(t *testing.T) {
	m := MustBuild(t, nil, builder.Grid(6, 6))
	_, b := Manufactured(t, m, 11)
	done := make(chan solver.Performance, 4)
	for i := 0; i < 4; i++ {
		go func() {
			perf, _ := solver.Solve(m, make([]float64, m.N()), b, Cfg(solver.KindPCG, precond.KindDIC))
			done <- perf
		}()
	}
	first := <-done
	for i := 1; i < 4; i++ {
		require.Equal(t, first, <-done)
	}
}

func BenchmarkSolve(b *testing.B) {
	for _, size := range benchSizes {
		m := MustBuild(b, nil, builder.Grid(size, size))
		_, rhs := Manufactured(b, m, 1)
		for _, pc := range []precond.Kind{precond.KindDiagonal, precond.KindDIC} {
			b.Run(fmt.Sprintf("%sPCG/%dx%d", pc, size, size), func(b *testing.B) {
				cfg := Cfg(solver.KindPCG, pc)
				x := make([]float64, m.N())
				b.ReportAllocs()
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					for j := range x {
						x[j] = 0
					}
					sinkPerf, _ = solver.Solve(m, x, rhs, cfg, solver.WithLogger(quiet))
				}
			})
		}
	}
}
