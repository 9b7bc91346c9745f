// SPDX-License-Identifier: MIT

package precond_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/ldusolve/ldu"
	"github.com/katalvlaran/ldusolve/precond"
	"github.com/stretchr/testify/require"
)

// chain builds an n-equation tridiagonal matrix (path connectivity).
// A nil lower gives a symmetric matrix.
func chain(t *testing.T, diag, upper, lower []float64) *ldu.Matrix {
	t.Helper()
	n := len(diag)
	owner := make([]int, n-1)
	neighbour := make([]int, n-1)
	for i := 0; i < n-1; i++ {
		owner[i], neighbour[i] = i, i+1
	}
	m, err := ldu.New(n, diag, upper, lower, owner, neighbour)
	require.NoError(t, err)

	return m
}

func TestParseKind(t *testing.T) {
	cases := []struct {
		in   string
		want precond.Kind
	}{
		{"", precond.KindNone},
		{"none", precond.KindNone},
		{"diagonal", precond.KindDiagonal},
		{"Diagonal", precond.KindDiagonal},
		{"DIC", precond.KindDIC},
		{"dic", precond.KindDIC},
		{"DILU", precond.KindDILU},
	}
	for _, tc := range cases {
		got, err := precond.ParseKind(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got, tc.in)
	}
	_, err := precond.ParseKind("GAMG")
	require.ErrorIs(t, err, precond.ErrUnknownPreconditioner)

	require.Equal(t, "DIC", precond.KindDIC.String())
	require.Equal(t, "Kind(9)", precond.Kind(9).String())
}

func TestNew_Dispatch(t *testing.T) {
	sym := chain(t, []float64{4, 4, 4}, []float64{-1, -1}, nil)
	for _, k := range []precond.Kind{precond.KindNone, precond.KindDiagonal, precond.KindDIC, precond.KindDILU} {
		p, err := precond.New(k, sym)
		require.NoError(t, err, k.String())
		require.NotNil(t, p)
	}
	_, err := precond.New(precond.Kind(42), sym)
	require.ErrorIs(t, err, precond.ErrUnknownPreconditioner)
	_, err = precond.New(precond.KindDiagonal, nil)
	require.ErrorIs(t, err, ldu.ErrNilMatrix)
}

func TestIdentity(t *testing.T) {
	w := make([]float64, 2)
	precond.Identity{}.Precondition(w, []float64{3, -1})
	require.Equal(t, []float64{3, -1}, w)
	precond.Identity{}.PreconditionT(w, []float64{5, 6})
	require.Equal(t, []float64{5, 6}, w)
}

func TestDiagonal_Apply(t *testing.T) {
	m := chain(t, []float64{2, 4, 8}, []float64{-1, -1}, nil)
	p, err := precond.NewDiagonal(m)
	require.NoError(t, err)
	w := make([]float64, 3)
	p.Precondition(w, []float64{1, 1, 1})
	require.Equal(t, []float64{0.5, 0.25, 0.125}, w)
}

func TestDiagonal_ZeroDiagonalIsSingular(t *testing.T) {
	m := chain(t, []float64{2, 0, 8}, []float64{-1, -1}, nil)
	_, err := precond.NewDiagonal(m)
	require.ErrorIs(t, err, precond.ErrSingular)
}

func TestDIC_BreakdownIsSingular(t *testing.T) {
	// rD[1] = 0.5 - (-1)²/2 = 0: the incomplete factor breaks down.
	m := chain(t, []float64{2, 0.5, 8}, []float64{-1, -1}, nil)
	_, err := precond.New(precond.KindDIC, m)
	require.ErrorIs(t, err, precond.ErrSingular)
}

func TestDIC_EqualsDiagonalWithoutOffDiagonals(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	n := 16
	diag := make([]float64, n)
	for i := range diag {
		diag[i] = 0.1 + rng.Float64()*10
	}
	m := chain(t, diag, make([]float64, n-1), nil)

	d, err := precond.NewDiagonal(m)
	require.NoError(t, err)
	c, err := precond.NewDIC(m)
	require.NoError(t, err)
	// Bitwise equality, not approximate.
	require.Equal(t, d.ReciprocalDiag(), c.ReciprocalDiag())

	r := make([]float64, n)
	for i := range r {
		r[i] = rng.Float64()
	}
	wd, wc := make([]float64, n), make([]float64, n)
	d.Precondition(wd, r)
	c.Precondition(wc, r)
	require.Equal(t, wd, wc)
}

func TestDIC_RejectsAsymmetric(t *testing.T) {
	m := chain(t, []float64{4, 4}, []float64{-1}, []float64{-2})
	_, err := precond.NewDIC(m)
	require.ErrorIs(t, err, ldu.ErrAsymmetric)
}

// On a tridiagonal matrix the incomplete factor has no dropped fill-in, so
// the preconditioner is an exact inverse.
func TestIncomplete_ExactOnTridiagonal(t *testing.T) {
	r := []float64{1, -2, 0.5, 3, -1}

	sym := chain(t, []float64{4, 5, 6, 5, 4}, []float64{-1, -2, -1, -0.5}, nil)
	dic, err := precond.NewDIC(sym)
	require.NoError(t, err)
	w := make([]float64, 5)
	dic.Precondition(w, r)
	aw, err := sym.Mul(w)
	require.NoError(t, err)
	require.InDeltaSlice(t, r, aw, 1e-12)

	asym := chain(t, []float64{4, 5, 6, 5, 4}, []float64{-1, -2, -1, -0.5}, []float64{-0.5, -1, -3, -2})
	dilu, err := precond.NewDILU(asym)
	require.NoError(t, err)
	dilu.Precondition(w, r)
	aw, err = asym.Mul(w)
	require.NoError(t, err)
	require.InDeltaSlice(t, r, aw, 1e-12)

	dilu.PreconditionT(w, r)
	atw := make([]float64, 5)
	require.NoError(t, asym.MultiplyT(atw, w))
	require.InDeltaSlice(t, r, atw, 1e-12)
}

func TestDILU_MatchesDICOnSymmetric(t *testing.T) {
	sym := chain(t, []float64{3, 3, 3, 3}, []float64{-1, -1, -1}, nil)
	dic, err := precond.NewDIC(sym)
	require.NoError(t, err)
	dilu, err := precond.NewDILU(sym)
	require.NoError(t, err)
	require.Equal(t, dic.ReciprocalDiag(), dilu.ReciprocalDiag())
}
