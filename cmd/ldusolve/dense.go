// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/ldusolve/config"
	"github.com/katalvlaran/ldusolve/dense"
	"github.com/katalvlaran/ldusolve/ldu"
	"github.com/katalvlaran/ldusolve/solver"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
)

func newDenseCmd() *cobra.Command {
	var pivotTol float64
	cmd := &cobra.Command{
		Use:   "dense <case.yaml>",
		Short: "Solve a case with the dense direct solver and report conditioning",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if pivotTol < 0 || math.IsNaN(pivotTol) || math.IsInf(pivotTol, 0) {
				return fmt.Errorf("--pivot-tol must be finite and >= 0, got %g", pivotTol)
			}
			c, err := config.LoadCase(args[0])
			if err != nil {
				return err
			}
			sys, err := c.System()
			if err != nil {
				return err
			}
			a, err := solver.ToDense(sys.Matrix)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			f, err := dense.Factorize(a, dense.WithPivotTolerance(pivotTol))
			if errors.Is(err, dense.ErrSingular) {
				fmt.Fprintf(out, "%s: matrix is singular (n=%d)\n", sys.Field, a.Rows())
				return nil
			}
			if err != nil {
				return err
			}
			x, err := f.Solve(sys.B)
			if err != nil {
				return err
			}
			cond, err := dense.Cond(a)
			if err != nil && !errors.Is(err, dense.ErrSingular) {
				return err
			}
			r, err := ldu.Residual(sys.Matrix, x, sys.B)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s: n=%d det=%g cond=%g |b - Ax|_1 = %g\n",
				sys.Field, a.Rows(), f.Det(), cond, floats.Norm(r, 1))
			fmt.Fprintf(out, "%s = %v\n", sys.Field, x)

			return nil
		},
	}
	cmd.Flags().Float64Var(&pivotTol, "pivot-tol", dense.DefaultPivotTolerance, "Relative pivot tolerance for the LU factorisation")

	return cmd
}
