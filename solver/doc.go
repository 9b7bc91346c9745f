// Package solver solves A x = b for LDU matrices with preconditioned Krylov
// methods and two direct fallbacks.
//
// Methods (Kind):
//
//	PCG        conjugate gradients, symmetric matrices
//	PBiCG      biconjugate gradients, any matrix
//	PBiCGStab  stabilised biconjugate gradients, any matrix
//	diagonal   x = b / diag, matrices without connections
//	dense      dense pivoted LU, small tightly coupled systems
//	auto       PCG when symmetric, PBiCG otherwise
//
// A solve is configured by a Config (method, preconditioner, Control) and
// reports a Performance value: initial and final normalised residuals, the
// iteration count and whether it converged or hit a singular denominator.
// Numerical outcomes never surface as errors; errors are reserved for setup
// problems (unknown names, invalid controls, incompatible matrix, sizes).
//
// Each solve logs a one-line summary through logrus and notifies an optional
// Observer. SolveSegregated runs one solve per vector component concurrently.
//
// Example:
//
//	cfg := solver.Config{
//		Solver:         solver.KindPCG,
//		Preconditioner: precond.KindDIC,
//		Control:        solver.NewControl(solver.WithTolerance(1e-8)),
//	}
//	perf, err := solver.Solve(m, x, b, cfg, solver.WithFieldName("p"))
package solver
