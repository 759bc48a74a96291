// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sketchsolver/core/constraint"
)

func TestCompileEmptyProblem(t *testing.T) {
	_, err := constraint.Compile(0, nil, nil)
	assert.ErrorIs(t, err, constraint.ErrEmptyProblem)

	_, err = constraint.Compile(2, nil, nil)
	assert.ErrorIs(t, err, constraint.ErrEmptyProblem)
}

func TestCompileRowAndColumnCounts(t *testing.T) {
	cs := []constraint.Constraint{
		constraint.FixedPointC(1, 0, 0),
		constraint.CoincidentC(1, 2),
	}
	p, err := constraint.Compile(2, nil, cs)
	require.NoError(t, err)

	assert.Equal(t, 4, p.M) // FixedPoint(2) + Coincident(2)
	assert.Equal(t, 4, p.N) // 2 points * 2
}

func TestCompileResidualAndJacobianWriteExpectedShape(t *testing.T) {
	cs := []constraint.Constraint{constraint.FixedPointC(1, 3, 4)}
	p, err := constraint.Compile(1, nil, cs)
	require.NoError(t, err)

	out := make([]float64, p.M)
	p.R([]float64{3, 4}, out)
	assert.Equal(t, []float64{0, 0}, out)

	p.R([]float64{5, 6}, out)
	assert.Equal(t, []float64{2, 2}, out)

	nzval := make([]float64, p.Pattern.NNZ())
	p.J([]float64{5, 6}, nzval)
	for _, v := range nzval {
		assert.Equal(t, 1.0, v)
	}
}

func TestRewriteDropsDegenerateCoincident(t *testing.T) {
	out := constraint.Rewrite(nil, constraint.CoincidentC(1, 1))
	assert.Empty(t, out)
}

func TestRewriteKeepsNonDegenerateCoincident(t *testing.T) {
	out := constraint.Rewrite(nil, constraint.CoincidentC(1, 2))
	require.Len(t, out, 1)
	assert.Equal(t, constraint.Coincident, out[0].Kind)
}

func TestRewriteDegenerateHorizontalSamePointDropped(t *testing.T) {
	shapes := []constraint.Shape{constraint.Line(1, 1)}
	out := constraint.Rewrite(shapes, constraint.HorizontalC(0))
	assert.Empty(t, out)
}

func TestRewriteDegenerateVerticalSamePointDropped(t *testing.T) {
	shapes := []constraint.Shape{constraint.Line(1, 1)}
	out := constraint.Rewrite(shapes, constraint.VerticalC(0))
	assert.Empty(t, out)
}

func TestRewriteBothParallelLinesDegenerateYieldsTwoDrops(t *testing.T) {
	shapes := []constraint.Shape{constraint.Line(1, 1), constraint.Line(2, 2)}
	out := constraint.Rewrite(shapes, constraint.ParallelC(0, 1))
	assert.Empty(t, out)
}

func TestRewriteOneParallelLineDegenerate(t *testing.T) {
	shapes := []constraint.Shape{constraint.Line(1, 1), constraint.Line(2, 3)}
	out := constraint.Rewrite(shapes, constraint.ParallelC(0, 1))
	assert.Empty(t, out)
}

func TestRewriteNonDegenerateParallelUnchanged(t *testing.T) {
	shapes := []constraint.Shape{constraint.Line(1, 2), constraint.Line(3, 4)}
	out := constraint.Rewrite(shapes, constraint.ParallelC(0, 1))
	require.Len(t, out, 1)
	assert.Equal(t, constraint.Parallel, out[0].Kind)
}

func TestKindRowsAndString(t *testing.T) {
	assert.Equal(t, 2, constraint.FixedPoint.Rows())
	assert.Equal(t, 2, constraint.Coincident.Rows())
	assert.Equal(t, 1, constraint.Horizontal.Rows())
	assert.Equal(t, "normal", constraint.Normal.String())
	assert.Equal(t, "circle_coincident", constraint.CircleCoincident.String())
}
