// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

import (
	"errors"

	"github.com/sketchsolver/core/lm"
	"github.com/sketchsolver/core/sparse"
)

// ErrEmptyProblem is returned by Compile when there are no points or no
// constraints to compile.
var ErrEmptyProblem = errors.New("constraint: empty point set or constraint set")

// resolved is a constraint lowered to its actual point-parameter columns,
// ready for repeated residual/Jacobian evaluation without ever touching
// the shape list again. cols holds the 0-based parameter-vector columns
// touched by each row, in the fixed order resolveConstraint emits them;
// slots holds the matching CSC nzval positions, precomputed once at
// compile time so the Jacobian evaluator writes derivatives in O(1).
type resolved struct {
	kind  Kind
	row   int
	cols  [8]int
	nCols int
	slots [8]int
	value float64
	y0    float64
}

// Compile lowers shapes/constraints over a parameter vector of length
// 2*points into an *lm.Problem: a fixed Jacobian pattern plus residual
// and Jacobian evaluators that share it.
func Compile(points int, shapes []Shape, constraints []Constraint) (*lm.Problem, error) {
	if points <= 0 || len(constraints) == 0 {
		return nil, ErrEmptyProblem
	}

	n := 2 * points

	// Row assignment: a prefix sum of rows(constraint).
	resolvedList := make([]resolved, len(constraints))
	row := 0
	for i, c := range constraints {
		resolvedList[i] = resolveConstraint(shapes, c, row)
		row += c.Kind.Rows()
	}
	m := row

	// Sparsity pattern: the union of every constraint's column touches.
	builder := sparse.NewBuilder(m, n)
	for _, rc := range resolvedList {
		for i := 0; i < rc.nCols; i++ {
			builder.Add(rowOf(rc, i), rc.cols[i])
		}
	}
	pattern := builder.Build()

	// Precompute each touch's stable CSC slot.
	for i := range resolvedList {
		rc := &resolvedList[i]
		for k := 0; k < rc.nCols; k++ {
			rc.slots[k] = pattern.Index(rowOf(*rc, k), rc.cols[k])
		}
	}

	residual := func(x, out []float64) {
		for i := range out {
			out[i] = 0
		}
		for _, rc := range resolvedList {
			writeResidual(rc, x, out)
		}
	}

	jacobian := func(x, nzval []float64) {
		for i := range nzval {
			nzval[i] = 0
		}
		for _, rc := range resolvedList {
			writeJacobian(rc, x, nzval)
		}
	}

	return &lm.Problem{M: m, N: n, Pattern: pattern, R: residual, J: jacobian}, nil
}

// rowOf maps a touch index i (0-based within the constraint's own
// per-row column lists, see rowOffsetTable in formulas.go) to its global
// residual row.
func rowOf(rc resolved, i int) int {
	return rc.row + rowOffsetTable[rc.kind][i]
}
