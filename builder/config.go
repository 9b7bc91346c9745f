// SPDX-License-Identifier: MIT
// Package: ldusolve/builder
//
// config.go - internal configuration and deterministic defaults.
//
// Design:
//   • builderConfig is the single source of truth for all builder knobs.
//   • Defaults are deterministic and documented; no globals.
//   • newBuilderConfig applies options in-order (later overrides earlier).
//
// Deterministic defaults (no surprises):
//   • rng         = nil                 (pure/deterministic unless seeded)
//   • coeffFn     = DefaultCoefficientFn (constant DefaultCoefficient)
//   • convection  = 0                   (symmetric matrices)
//   • shift       = DefaultDiagonalShift

package builder

import (
	"fmt"
	"math"
	"math/rand"
)

// builderConfig aggregates all knobs used by constructors.
// It is passed by VALUE to constructors (immutable to callers).
type builderConfig struct {
	// RNG for stochastic choices; nil means “no randomness”.
	rng *rand.Rand
	// Coupling coefficient generator.
	coeffFn CoefficientFn
	// Upwind flux added to every coupling.
	convection float64
	// Added to every diagonal after assembly.
	shift float64
}

const (
	// DefaultCoefficient is the coupling coefficient when no CoefficientFn is set.
	DefaultCoefficient = 1.0
	// DefaultDiagonalShift keeps default fixtures strictly diagonally dominant.
	DefaultDiagonalShift = 0.1
)

// newBuilderConfig constructs a config with deterministic defaults and applies
// all options in order.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		coeffFn: DefaultCoefficientFn,
		shift:   DefaultDiagonalShift,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// CoefficientFn produces a coupling coefficient given an optional RNG.
// It must be deterministic for a given RNG seed.
type CoefficientFn func(rng *rand.Rand) float64

// DefaultCoefficientFn always returns DefaultCoefficient.
func DefaultCoefficientFn(_ *rand.Rand) float64 {
	return DefaultCoefficient
}

// ConstantCoefficientFn returns a CoefficientFn that always yields value.
// Panics unless value is finite and > 0.
func ConstantCoefficientFn(value float64) CoefficientFn {
	if !(value > 0) || math.IsInf(value, 0) {
		panic(fmt.Sprintf("ConstantCoefficientFn: value must be finite and > 0, got %g", value))
	}

	return func(_ *rand.Rand) float64 {
		return value
	}
}

// UniformCoefficientFn returns a CoefficientFn sampling uniformly in
// [min, max). Panics unless 0 < min ≤ max < +Inf.
// If rng is nil, yields DefaultCoefficient to keep a deterministic fallback.
func UniformCoefficientFn(min, max float64) CoefficientFn {
	if !(min > 0) || !(max >= min) || math.IsInf(max, 0) {
		panic(fmt.Sprintf("UniformCoefficientFn: require 0 < min ≤ max, got min=%g, max=%g", min, max))
	}

	return func(rng *rand.Rand) float64 {
		if rng == nil {
			return DefaultCoefficient
		}
		if max == min {
			return min
		}
		return min + rng.Float64()*(max-min)
	}
}
