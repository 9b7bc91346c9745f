// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/ldusolve/config"
	"github.com/katalvlaran/ldusolve/ldu"
	"github.com/katalvlaran/ldusolve/solver"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gopkg.in/yaml.v3"
)

// errNotConverged is returned by `solve --strict` when the solve did not converge.
var errNotConverged = errors.New("solve did not converge")

func newSolveCmd(root *rootOptions) *cobra.Command {
	var (
		solversPath   string
		printSolution bool
		strict        bool
	)
	cmd := &cobra.Command{
		Use:   "solve <case.yaml>",
		Short: "Solve the linear system of a case file",
		Long: "Load a case file (explicit LDU arrays or a generated fixture), solve it with the " +
			"case's solver dictionary, or the entry selected from --solvers by field name, " +
			"and print the one-line performance report.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.LoadCase(args[0])
			if err != nil {
				return err
			}
			sys, err := c.System()
			if err != nil {
				return err
			}
			if solversPath != "" {
				s, err := config.LoadSolvers(solversPath)
				if err != nil {
					return err
				}
				if sys.Config, err = s.Select(sys.Field); err != nil {
					return err
				}
			}
			if logrus.IsLevelEnabled(logrus.DebugLevel) {
				dict, _ := yaml.Marshal(config.FromConfig(sys.Config))
				logrus.Debugf("effective solver dictionary for %s:\n%s", sys.Field, dict)
			}

			sess, err := newSession(root)
			if err != nil {
				return err
			}
			perf, err := solver.Solve(sys.Matrix, sys.X, sys.B, sys.Config, sess.solverOptions(sys.Field)...)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, perf.String())
			if r, err := ldu.Residual(sys.Matrix, sys.X, sys.B); err == nil {
				fmt.Fprintf(out, "outcome %s, |b - Ax|_1 = %g\n", perf.Outcome(), floats.Norm(r, 1))
			}
			if printSolution {
				fmt.Fprintf(out, "%s = %v\n", sys.Field, sys.X)
			}
			if err = sess.close(); err != nil {
				return err
			}
			if strict && !perf.Converged {
				return fmt.Errorf("%s: %w", perf.Outcome(), errNotConverged)
			}

			return nil
		},
	}
	cmd.Flags().StringVar(&solversPath, "solvers", "", "YAML file with a solvers: mapping; the entry for the case field overrides the case dictionary")
	cmd.Flags().BoolVar(&printSolution, "print-solution", false, "Print the solution vector")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with an error unless the solve converged")

	return cmd
}
