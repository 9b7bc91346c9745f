// SPDX-License-Identifier: MIT

package solver

import (
	"fmt"
	"math"

	"github.com/katalvlaran/ldusolve/precond"
)

// Outcome labels, stable for logs and metrics.
const (
	OutcomeConverged     = "converged"
	OutcomeSingular      = "singular"
	OutcomeMaxIterations = "max-iterations"
)

// Performance is the value record of one solve. Residuals are normalised
// (see Solve); the iterate itself is left in the caller's x.
type Performance struct {
	Solver         string
	Preconditioner string
	Field          string
	Initial        float64
	Final          float64
	Iterations     int
	Converged      bool
	Singular       bool
}

// Name returns the combined method name, e.g. "DICPCG" or "dense".
func (p Performance) Name() string {
	if p.Preconditioner == "" || p.Preconditioner == precond.KindNone.String() {
		return p.Solver
	}
	return p.Preconditioner + p.Solver
}

// Outcome classifies the record as converged, singular or max-iterations.
func (p Performance) Outcome() string {
	switch {
	case p.Singular:
		return OutcomeSingular
	case p.Converged:
		return OutcomeConverged
	default:
		return OutcomeMaxIterations
	}
}

// String renders the one-line solver report:
//
//	DICPCG:  Solving for p, Initial residual = 1, Final residual = 8.2e-07, No Iterations 14
func (p Performance) String() string {
	field := p.Field
	if field == "" {
		field = "x"
	}
	s := fmt.Sprintf("%s:  Solving for %s, Initial residual = %g, Final residual = %g, No Iterations %d",
		p.Name(), field, p.Initial, p.Final, p.Iterations)
	if p.Singular {
		s += " (singular)"
	}

	return s
}

// Merge folds per-component records into one: the worst residuals and
// iteration count, converged only if all converged, singular if any was.
// The name and field are taken from the first record.
func Merge(ps []Performance) Performance {
	if len(ps) == 0 {
		return Performance{Converged: true}
	}
	out := ps[0]
	for _, p := range ps[1:] {
		out.Initial = math.Max(out.Initial, p.Initial)
		out.Final = math.Max(out.Final, p.Final)
		if p.Iterations > out.Iterations {
			out.Iterations = p.Iterations
		}
		out.Converged = out.Converged && p.Converged
		out.Singular = out.Singular || p.Singular
	}

	return out
}
