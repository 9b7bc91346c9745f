// Package ldusolve solves the sparse linear systems produced by finite-volume
// discretisations, stored in LDU (lower-diagonal-upper) addressing.
//
// What is in the box?
//
//	A small, dependency-light toolkit that brings together:
//		• LDU matrices: diagonal plus owner/neighbour face coefficients, Ax and residuals
//		• Preconditioners: diagonal, DIC (symmetric) and DILU (asymmetric)
//		• Krylov solvers: PCG, PBiCG and PBiCGStab with normalised residuals
//		• Direct solvers: pivoted Gaussian elimination / LU on dense copies
//		• Segregated solves: vector fields solved component-wise in parallel
//		• Case files, solver dictionaries, Prometheus metrics and a CLI
//
// Residuals are normalised the way finite-volume codes report them, so the
// one-line summary of every solve reads
//
//	DICPCG:  Solving for p, Initial residual = 1, Final residual = 8.2e-07, No Iterations 14
//
// Subpackages:
//
//	ldu/       - Matrix (immutable after New/Assembler.Build), Amul, Residual, SumA
//	precond/   - Preconditioner interface, New(kind, m), ErrSingular
//	solver/    - Solve, SolveSegregated, Control, Config, Performance
//	dense/     - Dense matrix, LUSolve, Factorize, Inverse, Det, Cond
//	builder/   - deterministic test systems: Path, Grid, RandomSparse
//	config/    - YAML solver dictionaries and case files
//	metrics/   - Prometheus Recorder for solve outcomes
//	cmd/ldusolve - `solve`, `dense` and `bench` subcommands
//
// Quick example, a three-cell rod with unit conductances:
//
//	  0───1───2      | 4 -1  0 |       | 3 |
//	                 |-1  4 -1 | x  =  | 2 |   ⇒   x = (1, 1, 1)
//	                 | 0 -1  4 |       | 3 |
//
//	m, _ := ldu.New(3, []float64{4, 4, 4}, []float64{-1, -1}, nil, []int{0, 1}, []int{1, 2})
//	x := make([]float64, 3)
//	perf, _ := solver.Solve(m, x, []float64{3, 2, 3}, solver.DefaultConfig())
//
//	go get github.com/katalvlaran/ldusolve
package ldusolve
