// SPDX-License-Identifier: MIT

package solver

import (
	"context"
	"fmt"
	"runtime"

	"github.com/katalvlaran/ldusolve/ldu"
	"golang.org/x/sync/errgroup"
)

var componentNames = [...]string{"x", "y", "z"}

// SolveSegregated solves one scalar system per component of a vector field,
// all sharing the matrix m: m xs[i] = bs[i].
//
// Behavior highlights:
//   - Components run concurrently, at most WithMaxParallel at a time
//     (default GOMAXPROCS). The matrix is shared read-only.
//   - Component i is named "<field>.x|y|z" for up to three components and
//     "<field>[i]" beyond that; the field defaults to "U".
//   - The first setup error cancels the remaining components and is returned.
//     Numerical outcomes stay in the per-component Performance.
//   - Cancelling ctx stops components that have not started yet.
//
// Returns one Performance per component, in component order. Use Merge for a summary.
func SolveSegregated(ctx context.Context, m *ldu.Matrix, xs, bs [][]float64, cfg Config, opts ...Option) ([]Performance, error) {
	if m == nil {
		return nil, solverErrorf(opSegregated, ldu.ErrNilMatrix)
	}
	if len(xs) != len(bs) {
		return nil, solverErrorf(opSegregated,
			fmt.Errorf("%d solutions, %d sources: %w", len(xs), len(bs), ldu.ErrDimensionMismatch))
	}
	o := gatherOptions(opts...)
	field := o.field
	if field == "" {
		field = "U"
	}
	limit := o.maxParallel
	if limit == 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	perfs := make([]Performance, len(xs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := range xs {
		name := componentName(field, i, len(xs))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// Fresh slice per component; appending to opts would race.
			own := make([]Option, 0, len(opts)+1)
			own = append(own, opts...)
			own = append(own, WithFieldName(name))

			p, err := Solve(m, xs[i], bs[i], cfg, own...)
			if err != nil {
				return solverErrorf(opSegregated, fmt.Errorf("%s: %w", name, err))
			}
			perfs[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return perfs, nil
}

func componentName(field string, i, count int) string {
	if count <= len(componentNames) {
		return field + "." + componentNames[i]
	}

	return fmt.Sprintf("%s[%d]", field, i)
}
