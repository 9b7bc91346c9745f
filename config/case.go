// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/katalvlaran/ldusolve/builder"
	"github.com/katalvlaran/ldusolve/ldu"
	"github.com/katalvlaran/ldusolve/solver"
	"gopkg.in/yaml.v3"
)

// Case is a self-contained linear system file. The matrix is either given
// explicitly in LDU arrays or generated by a builder fixture:
//
//	name: cavity-p
//	field: p
//	matrix:
//	  n: 3
//	  diag: [4, 4, 4]
//	  upper: [-1, -1]
//	  owner: [0, 1]
//	  neighbour: [1, 2]
//	source: [1, 2, 3]
//	solver: {solver: PCG, preconditioner: DIC, tolerance: 1e-8}
//
// An absent lower array means symmetric storage. An absent source is all
// ones; an absent initial guess is all zeros.
type Case struct {
	Name     string      `yaml:"name"`
	Field    string      `yaml:"field"`
	Matrix   *MatrixSpec `yaml:"matrix,omitempty"`
	Generate *Generator  `yaml:"generate,omitempty"`
	Source   []float64   `yaml:"source,omitempty"`
	Initial  []float64   `yaml:"initial,omitempty"`
	Solver   Dict        `yaml:"solver"`
}

// MatrixSpec holds explicit LDU arrays.
type MatrixSpec struct {
	N         int       `yaml:"n"`
	Diag      []float64 `yaml:"diag"`
	Upper     []float64 `yaml:"upper"`
	Lower     []float64 `yaml:"lower,omitempty"`
	Owner     []int     `yaml:"owner"`
	Neighbour []int     `yaml:"neighbour"`
}

// Generator describes a builder fixture:
//
//	generate: {kind: grid, rows: 20, cols: 20, convection: 0.5, shift: 0.1}
//
// Kinds: diagonal (n), path (n), grid (rows, cols), random (n, p, seed).
type Generator struct {
	Kind       string   `yaml:"kind"`
	N          int      `yaml:"n,omitempty"`
	Rows       int      `yaml:"rows,omitempty"`
	Cols       int      `yaml:"cols,omitempty"`
	P          float64  `yaml:"p,omitempty"`
	Seed       int64    `yaml:"seed,omitempty"`
	Convection float64  `yaml:"convection,omitempty"`
	Shift      *float64 `yaml:"shift,omitempty"`
}

// System is a resolved case, ready for solver.Solve.
type System struct {
	Name   string
	Field  string
	Matrix *ldu.Matrix
	X      []float64
	B      []float64
	Config solver.Config
}

// ParseCase decodes a case document.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func ParseCase(data []byte) (*Case, error) {
	var c Case
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&c); err != nil {
		return nil, configErrorf(opCase, asInvalid(err))
	}
	if (c.Matrix == nil) == (c.Generate == nil) {
		return nil, configErrorf(opCase, invalid("exactly one of matrix and generate is required"))
	}

	return &c, nil
}

// LoadCase reads and parses a case file.
func LoadCase(path string) (*Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading case file: %w", err)
	}

	return ParseCase(data)
}

// System builds the matrix and vectors and resolves the solver dictionary.
//
// Errors (all wrapping ErrInvalidConfig): LDU addressing errors from
// ldu.New, builder errors, vector lengths that differ from n, non-finite
// vector entries, and dictionary errors.
func (c *Case) System() (*System, error) {
	cfg, err := c.Solver.Config()
	if err != nil {
		return nil, configErrorf(opCase, err)
	}

	var m *ldu.Matrix
	if c.Matrix != nil {
		ms := c.Matrix
		m, err = ldu.New(ms.N, ms.Diag, ms.Upper, ms.Lower, ms.Owner, ms.Neighbour)
	} else {
		m, err = c.Generate.build()
	}
	if err != nil {
		return nil, configErrorf(opCase, asInvalid(err))
	}

	n := m.N()
	b, err := vector("source", c.Source, n, 1)
	if err != nil {
		return nil, configErrorf(opCase, err)
	}
	x, err := vector("initial", c.Initial, n, 0)
	if err != nil {
		return nil, configErrorf(opCase, err)
	}
	field := c.Field
	if field == "" {
		field = "x"
	}

	return &System{Name: c.Name, Field: field, Matrix: m, X: x, B: b, Config: cfg}, nil
}

// vector copies v (or fills def when v is absent) and checks its length.
func vector(name string, v []float64, n int, def float64) ([]float64, error) {
	out := make([]float64, n)
	if v == nil {
		for i := range out {
			out[i] = def
		}
		return out, nil
	}
	if len(v) != n {
		return nil, invalid("%s has %d entries, want %d", name, len(v), n)
	}
	for i, e := range v {
		if !isFinite(e) {
			return nil, invalid("%s[%d] is not finite", name, i)
		}
	}
	copy(out, v)

	return out, nil
}

func (g *Generator) build() (*ldu.Matrix, error) {
	var con builder.Constructor
	switch strings.ToLower(g.Kind) {
	case "diagonal":
		con = builder.Diagonal(g.N)
	case "path":
		con = builder.Path(g.N)
	case "grid":
		con = builder.Grid(g.Rows, g.Cols)
	case "random":
		con = builder.RandomSparse(g.N, g.P)
	default:
		return nil, configErrorf(opGenerate, invalid("unknown kind %q; valid: diagonal, path, grid, random", g.Kind))
	}
	if g.Convection < 0 || !isFinite(g.Convection) {
		return nil, configErrorf(opGenerate, invalid("convection must be finite and >= 0, got %g", g.Convection))
	}
	bopts := []builder.BuilderOption{builder.WithSeed(g.Seed), builder.WithConvection(g.Convection)}
	if g.Shift != nil {
		if *g.Shift < 0 || !isFinite(*g.Shift) {
			return nil, configErrorf(opGenerate, invalid("shift must be finite and >= 0, got %g", *g.Shift))
		}
		bopts = append(bopts, builder.WithDiagonalShift(*g.Shift))
	}

	return builder.BuildMatrix(bopts, con)
}

// asInvalid classifies err under ErrInvalidConfig (once).
func asInvalid(err error) error {
	switch {
	case errors.Is(err, ErrInvalidConfig):
		return err
	case errors.Is(err, io.EOF):
		return invalid("empty document")
	default:
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
}
