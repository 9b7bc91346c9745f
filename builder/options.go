// SPDX-License-Identifier: MIT
// Package: ldusolve/builder
//
// options.go - functional options for the builder package.
//
// Contract (strict):
//   • Options are functional (type BuilderOption func(*builderConfig)).
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//     Constructors themselves MUST NOT panic.
//   • Determinism is explicit: seeding is done via WithSeed or WithRand.
//   • No hidden globals; everything flows through builderConfig.

package builder

import (
	"math"
	"math/rand" // RNG source for stochastic builders
)

// BuilderOption customizes the behavior of a constructor by mutating a
// builderConfig instance before assembly begins.
// Complexity: applying N options costs O(N) time, O(1) space.
type BuilderOption func(*builderConfig)

// WithRand provides an explicit RNG for stochastic builders and coefficient
// samplers. Panics on nil; prefer WithSeed for reproducible runs.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithSeed creates a new *rand.Rand with the given seed (deterministic).
// Use this in tests and examples to lock outcomes.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithCoefficientFn overrides the per-coupling coefficient generator.
// Panics on nil.
func WithCoefficientFn(fn CoefficientFn) BuilderOption {
	if fn == nil {
		panic("builder: WithCoefficientFn(nil)")
	}
	return func(c *builderConfig) {
		c.coeffFn = fn
	}
}

// WithConvection adds an upwind flux F ≥ 0 to every coupling, making the
// assembled matrix asymmetric for F > 0. Panics on negative or non-finite F.
func WithConvection(f float64) BuilderOption {
	if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		panic("builder: WithConvection(F) requires finite F >= 0")
	}
	return func(c *builderConfig) {
		c.convection = f
	}
}

// WithDiagonalShift sets the value added to every diagonal after assembly.
// Zero leaves pure (singular) Laplacians. Panics on negative or non-finite s.
func WithDiagonalShift(s float64) BuilderOption {
	if s < 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		panic("builder: WithDiagonalShift(s) requires finite s >= 0")
	}
	return func(c *builderConfig) {
		c.shift = s
	}
}
