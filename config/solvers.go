// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"fmt"
	"os"
	"regexp"

	"github.com/katalvlaran/ldusolve/solver"
	"gopkg.in/yaml.v3"
)

// Solvers maps field names to solver dictionaries, in file order:
//
//	solvers:
//	  p:           {solver: PCG, preconditioner: DIC, tolerance: 1e-6}
//	  "(U|k)":     {solver: PBiCGStab, preconditioner: DILU}
//	  "U.*":       {solver: PBiCG}
//
// Keys are matched literally first. Otherwise every key is tried as a regular
// expression anchored at both ends, and the last matching key wins, so more
// specific patterns go further down the file.
type Solvers struct {
	entries []solverEntry
}

type solverEntry struct {
	key  string
	re   *regexp.Regexp
	dict Dict
}

// UnmarshalYAML decodes the mapping, keeping key order and compiling keys.
func (s *Solvers) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return invalid("line %d: solvers must be a mapping", n.Line)
	}
	s.entries = s.entries[:0]
	seen := make(map[string]bool, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if seen[k.Value] {
			return invalid("line %d: duplicate solvers key %q", k.Line, k.Value)
		}
		seen[k.Value] = true
		re, err := regexp.Compile("^(?:" + k.Value + ")$")
		if err != nil {
			return invalid("line %d: solvers key %q: %v", k.Line, k.Value, err)
		}
		var d Dict
		if err = v.Decode(&d); err != nil {
			return err
		}
		s.entries = append(s.entries, solverEntry{key: k.Value, re: re, dict: d})
	}

	return nil
}

// Len returns the number of entries.
func (s *Solvers) Len() int { return len(s.entries) }

// Keys returns the entry keys in file order.
func (s *Solvers) Keys() []string {
	keys := make([]string, len(s.entries))
	for i, e := range s.entries {
		keys[i] = e.key
	}
	return keys
}

// Lookup returns the dictionary selected for field.
func (s *Solvers) Lookup(field string) (Dict, bool) {
	for _, e := range s.entries {
		if e.key == field {
			return e.dict, true
		}
	}
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].re.MatchString(field) {
			return s.entries[i].dict, true
		}
	}

	return Dict{}, false
}

// Select resolves the solver.Config for field.
//
// Errors:
//   - ErrNoSolverEntry when nothing matches.
//   - ErrInvalidConfig (see Dict.Config) when the entry is invalid.
func (s *Solvers) Select(field string) (solver.Config, error) {
	d, ok := s.Lookup(field)
	if !ok {
		return solver.Config{}, configErrorf(opSelect, fmt.Errorf("%q: %w", field, ErrNoSolverEntry))
	}
	cfg, err := d.Config()
	if err != nil {
		return cfg, configErrorf(opSelect, fmt.Errorf("%q: %w", field, err))
	}

	return cfg, nil
}

// ParseSolvers decodes a document with a top-level `solvers:` mapping.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func ParseSolvers(data []byte) (*Solvers, error) {
	var doc struct {
		Solvers Solvers `yaml:"solvers"`
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, configErrorf(opSolvers, asInvalid(err))
	}
	for _, e := range doc.Solvers.entries {
		if _, err := e.dict.Config(); err != nil {
			return nil, configErrorf(opSolvers, fmt.Errorf("%q: %w", e.key, err))
		}
	}

	return &doc.Solvers, nil
}

// LoadSolvers reads and parses a solvers file.
func LoadSolvers(path string) (*Solvers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading solvers file: %w", err)
	}

	return ParseSolvers(data)
}
