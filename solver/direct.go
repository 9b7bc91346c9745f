// SPDX-License-Identifier: MIT

package solver

import (
	"errors"
	"math"

	"github.com/katalvlaran/ldusolve/dense"
	"github.com/katalvlaran/ldusolve/ldu"
	"gonum.org/v1/gonum/floats"
)

// diagonal solves x = b / diag. The matrix has no off-diagonal coefficients
// (checked by Solve), so one division per equation is exact.
func diagonal(s *system) error {
	diag := s.m.Diag()
	for _, d := range diag {
		if d == 0 || math.IsNaN(d) {
			s.perf.Singular = true
			return nil
		}
	}
	floats.DivTo(s.x, s.b, diag)

	return s.refresh()
}

// direct copies the LDU matrix into a dense buffer and solves it with a
// pivoted LU factorisation. Intended for small, tightly coupled systems.
func direct(s *system) error {
	a, err := ToDense(s.m)
	if err != nil {
		return err
	}
	sol, err := dense.LUSolve(a, s.b)
	if errors.Is(err, dense.ErrSingular) {
		s.log.WithError(err).Debug("dense factorisation is singular")
		s.perf.Singular = true
		return nil
	}
	if err != nil {
		return solverErrorf(opDirect, err)
	}
	copy(s.x, sol)

	return s.refresh()
}

// refresh recomputes r = b − A x and records one completed step.
func (s *system) refresh() error {
	if err := s.m.Residual(s.r, s.x, s.b); err != nil {
		return err
	}
	s.step()

	return nil
}

// ToDense expands an LDU matrix into a dense n×n matrix (n > 0).
func ToDense(m *ldu.Matrix) (*dense.Dense, error) {
	if m == nil {
		return nil, solverErrorf(opDirect, ldu.ErrNilMatrix)
	}
	n := m.N()
	flat := m.Dense()
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = flat[i*n : (i+1)*n]
	}
	a, err := dense.NewFromRows(rows)
	if err != nil {
		return nil, solverErrorf(opDirect, err)
	}

	return a, nil
}
