// Package builder assembles deterministic LDU test systems with
// functional options.
//
// The package offers:
//
//   - BuildMatrix(bopts, cons...): one orchestrator that runs constructors
//     against a shared ldu.Assembler and freezes the result.
//   - Constructors: Diagonal(n), Path(n), Grid(rows, cols), RandomSparse(n, p).
//     Each appends its own uncoupled block of equations.
//   - Options: WithSeed, WithRand, WithCoefficientFn, WithConvection,
//     WithDiagonalShift.
//   - Coefficient samplers: DefaultCoefficientFn, ConstantCoefficientFn,
//     UniformCoefficientFn.
//
// Guarantees:
//
//   - Fast-fail on invalid option parameters via panics in option constructors.
//   - Sentinel runtime errors (ErrTooFewEquations, ErrInvalidProbability,
//     ErrNeedRandSource) for invalid build parameters.
//   - Without WithConvection every fixture is symmetric; with the default
//     diagonal shift it is also positive definite.
//
// The fixtures drive the solver tests, the benchmarks and `ldusolve bench`.
package builder
