// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"math"

	"github.com/katalvlaran/ldusolve/precond"
	"github.com/katalvlaran/ldusolve/solver"
	"gopkg.in/yaml.v3"
)

// Dict is a flat solver dictionary:
//
//	solver: PCG
//	preconditioner: DIC
//	tolerance: 1e-6
//	relTol: 0.01
//	maxIter: 1000
//	minIter: 0
//
// Absent keys take the solver package defaults.
type Dict struct {
	Solver         string   `yaml:"solver"`
	Preconditioner string   `yaml:"preconditioner"`
	Tolerance      *float64 `yaml:"tolerance,omitempty"`
	RelTol         *float64 `yaml:"relTol,omitempty"`
	MaxIter        *int     `yaml:"maxIter,omitempty"`
	MinIter        *int     `yaml:"minIter,omitempty"`
}

var dictKeys = map[string]bool{
	"solver": true, "preconditioner": true, "tolerance": true,
	"relTol": true, "maxIter": true, "minIter": true,
}

// UnmarshalYAML decodes a dictionary strictly: unknown keys are rejected even
// when the dictionary is nested inside a map decoded through a yaml.Node.
func (d *Dict) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return invalid("line %d: solver dictionary must be a mapping", n.Line)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if k := n.Content[i]; !dictKeys[k.Value] {
			return invalid("line %d: unknown solver key %q", k.Line, k.Value)
		}
	}
	type plain Dict

	return n.Decode((*plain)(d))
}

// Config resolves the dictionary into a solver.Config.
//
// Errors (all wrapping ErrInvalidConfig):
//   - solver.ErrUnknownSolver, precond.ErrUnknownPreconditioner for bad names.
//   - solver.ErrInvalidControl for negative or non-finite numbers.
func (d Dict) Config() (solver.Config, error) {
	cfg := solver.DefaultConfig()

	kind, err := solver.ParseKind(d.Solver)
	if err != nil {
		return cfg, configErrorf(opDict, fmt.Errorf("%w: %w", ErrInvalidConfig, err))
	}
	cfg.Solver = kind
	if d.Preconditioner != "" {
		pc, err := precond.ParseKind(d.Preconditioner)
		if err != nil {
			return cfg, configErrorf(opDict, fmt.Errorf("%w: %w", ErrInvalidConfig, err))
		}
		cfg.Preconditioner = pc
	}
	if d.Tolerance != nil {
		cfg.Control.Tolerance = *d.Tolerance
	}
	if d.RelTol != nil {
		cfg.Control.RelTol = *d.RelTol
	}
	if d.MaxIter != nil {
		cfg.Control.MaxIter = *d.MaxIter
	}
	if d.MinIter != nil {
		cfg.Control.MinIter = *d.MinIter
	}
	if err = cfg.Control.Validate(); err != nil {
		return cfg, configErrorf(opDict, fmt.Errorf("%w: %w", ErrInvalidConfig, err))
	}

	return cfg, nil
}

// FromConfig renders cfg as a dictionary with every key set.
func FromConfig(cfg solver.Config) Dict {
	c := cfg.Control
	return Dict{
		Solver:         cfg.Solver.String(),
		Preconditioner: cfg.Preconditioner.String(),
		Tolerance:      &c.Tolerance,
		RelTol:         &c.RelTol,
		MaxIter:        &c.MaxIter,
		MinIter:        &c.MinIter,
	}
}

// isFinite reports whether v is neither NaN nor ±Inf.
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
