// SPDX-License-Identifier: MIT
// Package: ldusolve/builder
//
// impl_grid.go - implementation of Grid(rows, cols) constructor.
//
// Canonical model:
//   • 2D orthogonal five-point stencil (right & bottom neighbours per cell).
//   • Cell (r,c) is equation base + r*cols + c (row-major order).
//
// Contract:
//   • rows ≥ 1 and cols ≥ 1 (else ErrTooFewEquations).
//   • Couples each cell to its right (r,c+1) and bottom (r+1,c) neighbours
//     where they exist.
//
// Complexity:
//   • Time: O(rows*cols) equations + O(rows*cols) couplings.
//   • Space: O(1) extra.
//
// Determinism:
//   • Stable coupling order: for each (r,c) row-major, Right then Bottom.

package builder

import (
	"fmt"

	"github.com/katalvlaran/ldusolve/ldu"
)

const (
	methodGrid = "Grid"
	minGridDim = 1
)

// Grid returns a Constructor that appends a rows×cols grid Laplacian.
func Grid(rows, cols int) Constructor {
	return func(a *ldu.Assembler, cfg builderConfig) error {
		if rows < minGridDim || cols < minGridDim {
			return fmt.Errorf("%s: rows=%d, cols=%d (each must be ≥ %d): %w",
				methodGrid, rows, cols, minGridDim, ErrTooFewEquations)
		}
		base, err := a.AddEquations(rows * cols)
		if err != nil {
			return fmt.Errorf("%s: %w", methodGrid, err)
		}
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				u := base + r*cols + c
				if c+1 < cols {
					if err = couple(a, cfg, u, u+1); err != nil {
						return fmt.Errorf("%s: couple(%d,%d): %w", methodGrid, u, u+1, err)
					}
				}
				if r+1 < rows {
					if err = couple(a, cfg, u, u+cols); err != nil {
						return fmt.Errorf("%s: couple(%d,%d): %w", methodGrid, u, u+cols, err)
					}
				}
			}
		}

		return nil
	}
}
