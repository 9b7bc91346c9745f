// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"math"
	"math/rand"
	"text/tabwriter"
	"time"

	"github.com/katalvlaran/ldusolve/builder"
	"github.com/katalvlaran/ldusolve/precond"
	"github.com/katalvlaran/ldusolve/solver"
	"github.com/spf13/cobra"
)

// denseBenchLimit bounds the system size for which the dense solver is included.
const denseBenchLimit = 1024

type benchMethod struct {
	kind solver.Kind
	pc   precond.Kind
}

var (
	symmetricMethods = []benchMethod{
		{solver.KindPCG, precond.KindNone},
		{solver.KindPCG, precond.KindDiagonal},
		{solver.KindPCG, precond.KindDIC},
		{solver.KindPBiCGStab, precond.KindDiagonal},
		{solver.KindPBiCGStab, precond.KindDIC},
	}
	asymmetricMethods = []benchMethod{
		{solver.KindPBiCG, precond.KindDiagonal},
		{solver.KindPBiCG, precond.KindDILU},
		{solver.KindPBiCGStab, precond.KindDiagonal},
		{solver.KindPBiCGStab, precond.KindDILU},
	}
)

func newBenchCmd(root *rootOptions) *cobra.Command {
	var (
		sizes      []int
		convection float64
		shift      float64
		tolerance  float64
		seed       int64
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare solvers and preconditioners on generated grid systems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, v := range []float64{convection, shift, tolerance} {
				if !(v >= 0) || math.IsInf(v, 0) {
					return fmt.Errorf("--convection, --shift and --tolerance must be finite and >= 0, got %g", v)
				}
			}
			sess, err := newSession(root)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "n\tmethod\titerations\tfinal\toutcome\ttime")
			for _, size := range sizes {
				m, err := builder.BuildMatrix([]builder.BuilderOption{
					builder.WithConvection(convection), builder.WithDiagonalShift(shift),
				}, builder.Grid(size, size))
				if err != nil {
					return err
				}
				rng := rand.New(rand.NewSource(seed))
				b := make([]float64, m.N())
				for i := range b {
					b[i] = rng.Float64()
				}

				methods := symmetricMethods
				if !m.IsSymmetric() {
					methods = asymmetricMethods
				}
				if m.N() <= denseBenchLimit {
					methods = append(methods[:len(methods):len(methods)], benchMethod{solver.KindDense, precond.KindNone})
				}
				for _, bm := range methods {
					cfg := solver.Config{
						Solver:         bm.kind,
						Preconditioner: bm.pc,
						Control:        solver.NewControl(solver.WithTolerance(tolerance)),
					}
					x := make([]float64, m.N())
					start := time.Now()
					perf, err := solver.Solve(m, x, b, cfg, sess.solverOptions(fmt.Sprintf("grid%d", size))...)
					if err != nil {
						return err
					}
					fmt.Fprintf(tw, "%d\t%s\t%d\t%.3g\t%s\t%s\n",
						m.N(), perf.Name(), perf.Iterations, perf.Final, perf.Outcome(), time.Since(start).Round(time.Microsecond))
				}
			}
			if err = tw.Flush(); err != nil {
				return err
			}

			return sess.close()
		},
	}
	cmd.Flags().IntSliceVar(&sizes, "sizes", []int{16, 32, 64}, "Grid edge lengths (n = size²)")
	cmd.Flags().Float64Var(&convection, "convection", 0, "Upwind flux per coupling; > 0 gives asymmetric systems")
	cmd.Flags().Float64Var(&shift, "shift", builder.DefaultDiagonalShift, "Value added to every diagonal")
	cmd.Flags().Float64Var(&tolerance, "tolerance", solver.DefaultTolerance, "Absolute normalised residual tolerance")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Seed for the random source vector")

	return cmd
}
