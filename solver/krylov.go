// SPDX-License-Identifier: MIT

// Package solver - preconditioned Krylov iterations on LDU matrices.
//
// All methods share system.step for residual bookkeeping and
// system.singular for breakdown detection: any inner-product denominator
// with |d|/normFactor < VSmall (or NaN) stops the iteration and marks the
// solve singular, leaving x at the last good iterate.

package solver

import (
	"github.com/katalvlaran/ldusolve/precond"
	"gonum.org/v1/gonum/floats"
)

// pcg runs preconditioned conjugate gradients (symmetric A, symmetric M).
//
//	w = M⁻¹ r;  ρ = w·r
//	p = w (first) | w + (ρ/ρold) p
//	q = A p;    α = ρ / (q·p)
//	x += α p;   r −= α q
func pcg(s *system, pc precond.Preconditioner) error {
	n := s.m.N()
	var (
		w           = make([]float64, n)
		p           = make([]float64, n)
		q           = make([]float64, n)
		rho, rhoOld float64
	)
	for !s.done() {
		rhoOld = rho
		pc.Precondition(w, s.r)
		rho = floats.Dot(w, s.r)

		if s.iter == 0 {
			copy(p, w)
		} else {
			if s.singular(rhoOld) {
				break
			}
			floats.AddScaledTo(p, w, rho/rhoOld, p)
		}

		if err := s.m.Multiply(q, p); err != nil {
			return err
		}
		qp := floats.Dot(q, p)
		if s.singular(qp) {
			break
		}
		alpha := rho / qp
		floats.AddScaled(s.x, alpha, p)
		floats.AddScaled(s.r, -alpha, q)
		s.step()
	}

	return nil
}

// pbicg runs preconditioned biconjugate gradients. A shadow residual rT
// evolves under Aᵀ and the transposed preconditioner.
func pbicg(s *system, pc precond.Preconditioner) error {
	n := s.m.N()
	var (
		rT          = append([]float64(nil), s.r...)
		w           = make([]float64, n)
		wT          = make([]float64, n)
		p           = make([]float64, n)
		pT          = make([]float64, n)
		rho, rhoOld float64
	)
	for !s.done() {
		rhoOld = rho
		pc.Precondition(w, s.r)
		pc.PreconditionT(wT, rT)
		rho = floats.Dot(w, rT)

		if s.iter == 0 {
			copy(p, w)
			copy(pT, wT)
		} else {
			if s.singular(rhoOld) {
				break
			}
			beta := rho / rhoOld
			floats.AddScaledTo(p, w, beta, p)
			floats.AddScaledTo(pT, wT, beta, pT)
		}

		// w and wT become A p and Aᵀ pT.
		if err := s.m.Multiply(w, p); err != nil {
			return err
		}
		if err := s.m.MultiplyT(wT, pT); err != nil {
			return err
		}
		wpT := floats.Dot(w, pT)
		if s.singular(wpT) {
			break
		}
		alpha := rho / wpT
		floats.AddScaled(s.x, alpha, p)
		floats.AddScaled(s.r, -alpha, w)
		floats.AddScaled(rT, -alpha, wT)
		s.step()
	}

	return nil
}

// pbicgstab runs the right-preconditioned stabilised biconjugate gradient
// method. It may finish on the half step when the intermediate residual s
// already meets the controls.
func pbicgstab(s *system, pc precond.Preconditioner) error {
	n := s.m.N()
	var (
		r0                        = append([]float64(nil), s.r...)
		p                         = make([]float64, n)
		y                         = make([]float64, n) // M⁻¹ p
		ay                        = make([]float64, n) // A y
		sv                        = make([]float64, n) // half-step residual
		z                         = make([]float64, n) // M⁻¹ sv
		t                         = make([]float64, n) // A z
		rho, rhoOld, alpha, omega float64
	)
	for !s.done() {
		rhoOld = rho
		rho = floats.Dot(r0, s.r)
		if s.singular(rho) {
			break
		}

		if s.iter == 0 {
			copy(p, s.r)
		} else {
			if s.singular(omega) || s.singular(rhoOld) {
				break
			}
			beta := (rho / rhoOld) * (alpha / omega)
			// p = r + β (p − ω A y)
			floats.AddScaled(p, -omega, ay)
			floats.AddScaledTo(p, s.r, beta, p)
		}

		pc.Precondition(y, p)
		if err := s.m.Multiply(ay, y); err != nil {
			return err
		}
		r0ay := floats.Dot(r0, ay)
		if s.singular(r0ay) {
			break
		}
		alpha = rho / r0ay

		floats.AddScaledTo(sv, s.r, -alpha, ay)
		half := floats.Norm(sv, 1) / s.normFactor
		if s.ctrl.converged(s.perf.Initial, half) && s.iter+1 >= s.ctrl.MinIter {
			floats.AddScaled(s.x, alpha, y)
			copy(s.r, sv)
			s.step()
			break
		}

		pc.Precondition(z, sv)
		if err := s.m.Multiply(t, z); err != nil {
			return err
		}
		tt := floats.Dot(t, t)
		if s.singular(tt) {
			break
		}
		omega = floats.Dot(t, sv) / tt

		floats.AddScaled(s.x, alpha, y)
		floats.AddScaled(s.x, omega, z)
		floats.AddScaledTo(s.r, sv, -omega, t)
		s.step()
	}

	return nil
}
