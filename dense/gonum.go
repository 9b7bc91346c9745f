// SPDX-License-Identifier: MIT

package dense

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ToGonum copies m into a gonum *mat.Dense.
func ToGonum(m *Dense) *mat.Dense {
	return mat.NewDense(m.r, m.c, append([]float64(nil), m.data...))
}

// FromGonum copies any gonum matrix into a new Dense.
func FromGonum(g mat.Matrix) (*Dense, error) {
	if g == nil {
		return nil, matrixErrorf(opFromGonum, ErrNilMatrix)
	}
	r, c := g.Dims()
	d, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(opFromGonum, err)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if err = d.Set(i, j, g.At(i, j)); err != nil {
				return nil, matrixErrorf(opFromGonum, err)
			}
		}
	}

	return d, nil
}

// Cond estimates the 1-norm condition number of square m using gonum's LU
// condition estimator. A singular matrix yields +Inf and ErrSingular.
func Cond(m *Dense) (float64, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return 0, matrixErrorf(opCond, err)
	}
	var lu mat.LU
	lu.Factorize(ToGonum(m))
	c := lu.Cond()
	if math.IsInf(c, 1) {
		return c, matrixErrorf(opCond, fmt.Errorf("condition estimate is +Inf: %w", ErrSingular))
	}

	return c, nil
}
