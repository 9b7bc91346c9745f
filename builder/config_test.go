// SPDX-License-Identifier: MIT
// Package builder contains unit tests for the configuration primitives
// (builderConfig and BuilderOption).

package builder

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := newBuilderConfig()
	require.Nil(t, cfg.rng)
	require.Zero(t, cfg.convection)
	require.Equal(t, DefaultDiagonalShift, cfg.shift)
	require.Equal(t, DefaultCoefficient, cfg.coeffFn(nil))
}

func TestRNGOptions(t *testing.T) {
	t.Parallel()

	exp := rand.New(rand.NewSource(123))
	require.Same(t, exp, newBuilderConfig(WithRand(exp)).rng)

	c1, c2 := newBuilderConfig(WithSeed(42)), newBuilderConfig(WithSeed(42))
	require.Equal(t, c1.rng.Int63(), c2.rng.Int63())
	require.Equal(t, c1.rng.Int63(), c2.rng.Int63())
}

func TestCoefficientFnOptions(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))

	cfgConst := newBuilderConfig(WithCoefficientFn(ConstantCoefficientFn(9)))
	require.Equal(t, 9.0, cfgConst.coeffFn(nil))
	require.Equal(t, 9.0, cfgConst.coeffFn(rng))

	cfgUni := newBuilderConfig(WithCoefficientFn(UniformCoefficientFn(2, 4)))
	require.Equal(t, DefaultCoefficient, cfgUni.coeffFn(nil), "nil rng yields the default")
	for i := 0; i < 100; i++ {
		v := cfgUni.coeffFn(rng)
		require.GreaterOrEqual(t, v, 2.0)
		require.Less(t, v, 4.0)
	}
	require.Equal(t, 3.0, UniformCoefficientFn(3, 3)(rng))

	// Last option wins.
	cfgOverride := newBuilderConfig(WithCoefficientFn(UniformCoefficientFn(2, 4)), WithCoefficientFn(ConstantCoefficientFn(1)))
	require.Equal(t, 1.0, cfgOverride.coeffFn(rng))
}
