// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/katalvlaran/ldusolve/metrics"
	"github.com/katalvlaran/ldusolve/solver"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	logLevel   string // Log verbosity level
	metricsOut string // Prometheus text file written after the run
}

// newRootCmd builds the command tree. Each call returns fresh flag state.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "ldusolve",
		Short:         "Solve LDU linear systems with preconditioned Krylov and direct methods",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(opts.logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", opts.logLevel, err)
			}
			logrus.SetLevel(level)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	root.PersistentFlags().StringVar(&opts.metricsOut, "metrics-out", "", "Write Prometheus metrics to this file after the run")

	root.AddCommand(newSolveCmd(opts), newDenseCmd(), newBenchCmd(opts))

	return root
}

// session carries the per-run observer and writes metrics when finished.
type session struct {
	opts     *rootOptions
	registry *prometheus.Registry
	recorder *metrics.Recorder
}

func newSession(opts *rootOptions) (*session, error) {
	s := &session{opts: opts}
	if opts.metricsOut == "" {
		return s, nil
	}
	s.registry = prometheus.NewRegistry()
	rec, err := metrics.NewRecorder(s.registry)
	if err != nil {
		return nil, err
	}
	s.recorder = rec

	return s, nil
}

// solverOptions returns the reporting options for one solve.
func (s *session) solverOptions(field string) []solver.Option {
	out := []solver.Option{solver.WithFieldName(field)}
	if s.recorder != nil {
		out = append(out, solver.WithObserver(s.recorder))
	}

	return out
}

// close writes the metrics file, if requested.
func (s *session) close() error {
	if s.registry == nil {
		return nil
	}
	if err := metrics.WriteTextfile(s.opts.metricsOut, s.registry); err != nil {
		return err
	}
	logrus.WithField("path", s.opts.metricsOut).Info("metrics written")

	return nil
}
