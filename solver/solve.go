// SPDX-License-Identifier: MIT

// Package solver - entry point and shared iteration state.
//
// Residual normalisation:
//
//	xRef       = mean(x)
//	pA         = sumA * xRef              (A applied to the uniform field xRef)
//	normFactor = Σ |A x − pA| + |b − pA|
//	residual   = Σ |b − A x| / normFactor
//
// The measure is insensitive to the scale of b and to a uniform offset in x.
// normFactor == 0 means A x == b == pA: the system is already solved.
//
// State machine: init → iterate → {converged | max-iterations | singular}.

package solver

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/ldusolve/ldu"
	"github.com/katalvlaran/ldusolve/precond"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// Solve solves A x = b in place, starting from the caller's x.
//
// Implementation:
//   - Stage 1: Validate controls, sizes and solver/matrix compatibility.
//   - Stage 2: Build the preconditioner (iterative kinds only).
//   - Stage 3: Compute the initial residual and normalisation factor; a zero
//     factor or an already converged residual (with MinIter == 0) returns at once.
//   - Stage 4: Run the selected method until converged, singular or MaxIter.
//
// Behavior highlights:
//   - Singularity and non-convergence are reported in Performance, never as errors.
//   - x holds the final iterate even when the solve did not converge.
//   - A summary line is logged at Info (Warn when singular) and the observer notified.
//
// Inputs:
//   - m: LDU matrix (shared read-only; concurrent Solves on one matrix are safe).
//   - x: initial guess, overwritten with the solution (len n).
//   - b: right-hand side (len n), not modified.
//   - cfg: algorithm, preconditioner and controls.
//
// Errors:
//   - ldu.ErrNilMatrix, ldu.ErrDimensionMismatch.
//   - ErrInvalidControl, ErrUnknownSolver, precond.ErrUnknownPreconditioner.
//   - ldu.ErrAsymmetric for PCG or DIC with an asymmetric matrix.
//   - ErrNotDiagonal for the diagonal solver on a coupled matrix.
//
// Complexity:
//   - Iterative kinds: O(iterations × (n + e)) time, O(n) space.
//   - Dense kind: O(n³) time, O(n²) space.
func Solve(m *ldu.Matrix, x, b []float64, cfg Config, opts ...Option) (Performance, error) {
	o := gatherOptions(opts...)
	if m == nil {
		return Performance{}, solverErrorf(opSolve, ldu.ErrNilMatrix)
	}
	if err := cfg.Control.Validate(); err != nil {
		return Performance{}, solverErrorf(opSolve, err)
	}
	n := m.N()
	if len(x) != n || len(b) != n {
		return Performance{}, solverErrorf(opSolve,
			fmt.Errorf("len(x)=%d, len(b)=%d, n=%d: %w", len(x), len(b), n, ldu.ErrDimensionMismatch))
	}
	if cfg.Solver < KindAuto || int(cfg.Solver) >= len(kindNames) {
		return Performance{}, solverErrorf(opSolve, fmt.Errorf("%v: %w", cfg.Solver, ErrUnknownSolver))
	}
	kind := cfg.Solver.resolve(m)

	perf := Performance{Solver: kind.String(), Field: o.field}
	var pc precond.Preconditioner
	var pcErr error
	if kind.iterative() {
		perf.Preconditioner = cfg.Preconditioner.String()
		if kind == KindPCG && !m.IsSymmetric() {
			return Performance{}, solverErrorf(opSolve, fmt.Errorf("%s: %w", kind, ldu.ErrAsymmetric))
		}
		pc, pcErr = precond.New(cfg.Preconditioner, m)
		if pcErr != nil && !errors.Is(pcErr, precond.ErrSingular) {
			return Performance{}, solverErrorf(opSolve, pcErr)
		}
	}
	if kind == KindDiagonal && m.HasOffDiagonal() {
		return Performance{}, solverErrorf(opSolve, ErrNotDiagonal)
	}

	s := newSystem(m, x, b, cfg.Control, &perf, o.logger)
	if s.done() {
		s.finish()
		o.report(perf)
		return perf, nil
	}
	if pcErr != nil {
		o.logger.WithError(pcErr).Debug("preconditioner construction failed")
		perf.Singular = true
		s.finish()
		o.report(perf)
		return perf, nil
	}

	var err error
	switch kind {
	case KindPCG:
		err = pcg(s, pc)
	case KindPBiCG:
		err = pbicg(s, pc)
	case KindPBiCGStab:
		err = pbicgstab(s, pc)
	case KindDiagonal:
		err = diagonal(s)
	case KindDense:
		err = direct(s)
	}
	if err != nil {
		return perf, solverErrorf(opSolve, err)
	}
	s.finish()
	o.report(perf)

	return perf, nil
}

// system is the mutable state of one solve.
type system struct {
	m          *ldu.Matrix
	x, b, r    []float64
	ctrl       Control
	perf       *Performance
	log        logrus.FieldLogger
	normFactor float64
	iter       int
	conv       bool
	trivial    bool
}

// newSystem computes r = b − A x, the normalisation factor and the initial residual.
func newSystem(m *ldu.Matrix, x, b []float64, ctrl Control, perf *Performance, log logrus.FieldLogger) *system {
	s := &system{m: m, x: x, b: b, ctrl: ctrl, perf: perf, log: log}
	n := m.N()
	if n == 0 {
		s.trivial = true
		return s
	}
	ax := make([]float64, n)
	_ = m.Multiply(ax, x) // lengths validated by Solve
	s.normFactor = normFactor(m, x, b, ax)

	s.r = ax
	floats.SubTo(s.r, b, ax)
	if s.normFactor < VSmall {
		s.trivial = true
		return s
	}
	perf.Initial = floats.Norm(s.r, 1) / s.normFactor
	perf.Final = perf.Initial
	s.conv = ctrl.converged(perf.Initial, perf.Final)

	return s
}

// normFactor returns Σ |A x − pA| + |b − pA| with pA = sumA · mean(x).
func normFactor(m *ldu.Matrix, x, b, ax []float64) float64 {
	n := m.N()
	sumA := make([]float64, n)
	_ = m.SumA(sumA)
	xRef := floats.Sum(x) / float64(n)
	var nf, pA float64
	for i := 0; i < n; i++ {
		pA = sumA[i] * xRef
		nf += math.Abs(ax[i]-pA) + math.Abs(b[i]-pA)
	}

	return nf
}

// done reports whether no (further) iteration is needed or allowed.
func (s *system) done() bool {
	if s.trivial || s.perf.Singular || s.perf.Final == 0 {
		return true
	}
	if s.iter >= s.ctrl.MaxIter {
		return true
	}

	return s.conv && s.iter >= s.ctrl.MinIter
}

// singular flags the solve singular when |d|/normFactor < VSmall or d is NaN.
func (s *system) singular(d float64) bool {
	if math.IsNaN(d) || math.Abs(d)/s.normFactor < VSmall {
		s.perf.Singular = true
		return true
	}

	return false
}

// step records one completed iteration from the current residual.
func (s *system) step() {
	s.iter++
	s.perf.Final = floats.Norm(s.r, 1) / s.normFactor
	s.conv = s.ctrl.converged(s.perf.Initial, s.perf.Final)
	s.log.Debugf("%s iteration %d residual %g", s.perf.Name(), s.iter, s.perf.Final)
}

// finish fills the remaining Performance fields.
func (s *system) finish() {
	s.perf.Iterations = s.iter
	if s.trivial {
		s.perf.Converged = true
		return
	}
	if math.IsNaN(s.perf.Final) {
		s.perf.Singular = true
	}
	s.perf.Converged = !s.perf.Singular && s.conv &&
		(s.iter >= s.ctrl.MinIter || s.perf.Final == 0)
}
