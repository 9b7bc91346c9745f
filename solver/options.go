// SPDX-License-Identifier: MIT

package solver

import (
	"github.com/sirupsen/logrus"
)

const (
	panicLogger   = "solver: WithLogger(nil)"
	panicObserver = "solver: WithObserver(nil)"
	panicParallel = "solver: WithMaxParallel(n) requires n >= 1"
)

// Observer receives the Performance of every completed solve. Implementations
// must be safe for concurrent use when SolveSegregated is used.
type Observer interface {
	ObserveSolve(p Performance)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(p Performance)

// ObserveSolve calls f(p).
func (f ObserverFunc) ObserveSolve(p Performance) { f(p) }

// Option customizes reporting around a solve.
type Option func(*options)

type options struct {
	logger      logrus.FieldLogger
	observer    Observer
	field       string
	maxParallel int
}

// WithLogger routes the per-solve summary (Info) and per-iteration
// residuals (Debug) to l. Panics on nil.
func WithLogger(l logrus.FieldLogger) Option {
	if l == nil {
		panic(panicLogger)
	}
	return func(o *options) { o.logger = l }
}

// WithObserver registers an observer for completed solves. Panics on nil.
func WithObserver(obs Observer) Option {
	if obs == nil {
		panic(panicObserver)
	}
	return func(o *options) { o.observer = obs }
}

// WithFieldName names the solved field in logs and Performance.Field.
func WithFieldName(name string) Option {
	return func(o *options) { o.field = name }
}

// WithMaxParallel bounds the number of concurrent component solves in
// SolveSegregated. Panics on n < 1.
func WithMaxParallel(n int) Option {
	if n < 1 {
		panic(panicParallel)
	}
	return func(o *options) { o.maxParallel = n }
}

func gatherOptions(opts ...Option) options {
	o := options{logger: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// report emits the summary line and notifies the observer.
func (o options) report(p Performance) {
	entry := o.logger.WithFields(logrus.Fields{
		"outcome":    p.Outcome(),
		"iterations": p.Iterations,
	})
	if p.Singular {
		entry.Warn(p.String())
	} else {
		entry.Info(p.String())
	}
	if o.observer != nil {
		o.observer.ObserveSolve(p)
	}
}
