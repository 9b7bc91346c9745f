// SPDX-License-Identifier: MIT

// Package metrics exports solver performance records as Prometheus metrics.
//
// A Recorder implements solver.Observer; pass it with solver.WithObserver and
// every completed solve updates:
//
//	ldusolve_solves_total{solver,outcome}   counter
//	ldusolve_iterations{solver}             histogram
//	ldusolve_final_residual{field}          gauge, last value per field
//
// The solver label is the combined method name (e.g. "DICPCG").
package metrics

import (
	"fmt"

	"github.com/katalvlaran/ldusolve/solver"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ldusolve"

// IterationBuckets are the histogram buckets for iteration counts: 1, 2, 4 … 2048.
var IterationBuckets = prometheus.ExponentialBuckets(1, 2, 12)

// Recorder collects solver performance. It is safe for concurrent use.
type Recorder struct {
	solves     *prometheus.CounterVec
	iterations *prometheus.HistogramVec
	residual   *prometheus.GaugeVec
}

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solves_total",
			Help:      "Completed linear solves by method and outcome.",
		}, []string{"solver", "outcome"}),
		iterations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "iterations",
			Help:      "Iterations per linear solve.",
			Buckets:   IterationBuckets,
		}, []string{"solver"}),
		residual: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "final_residual",
			Help:      "Normalised final residual of the last solve per field.",
		}, []string{"field"}),
	}
	for _, c := range []prometheus.Collector{r.solves, r.iterations, r.residual} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("metrics: register: %w", err)
		}
	}

	return r, nil
}

// ObserveSolve records p.
func (r *Recorder) ObserveSolve(p solver.Performance) {
	name := p.Name()
	r.solves.WithLabelValues(name, p.Outcome()).Inc()
	r.iterations.WithLabelValues(name).Observe(float64(p.Iterations))
	field := p.Field
	if field == "" {
		field = "x"
	}
	r.residual.WithLabelValues(field).Set(p.Final)
}

var _ solver.Observer = (*Recorder)(nil)

// WriteTextfile writes everything g gathers to path in the text exposition
// format, for node-exporter style collection of batch runs.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("metrics: write %s: %w", path, err)
	}

	return nil
}
