// Package config loads solver dictionaries and linear-system case files
// from YAML.
//
// Three documents are understood:
//
//   - Dict: a flat solver dictionary (solver, preconditioner, tolerance,
//     relTol, maxIter, minIter) resolved into a solver.Config.
//   - Solvers: a `solvers:` mapping from field names (or anchored regular
//     expressions) to dictionaries.
//   - Case: a system given as LDU arrays or as a builder fixture, with its
//     source, initial guess and dictionary.
//
// Decoding is strict: unknown keys are errors. Every failure wraps
// ErrInvalidConfig.
package config
