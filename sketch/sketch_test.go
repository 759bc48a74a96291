// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sketch_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sketchsolver/core/constraint"
	"github.com/sketchsolver/core/lm"
	"github.com/sketchsolver/core/sketch"
)

func TestPointsAndAxes(t *testing.T) {
	s := sketch.New(nil)
	p1 := s.AddPoint(0, 0)
	p2 := s.AddPoint(0.4, 0.2)
	p3 := s.AddPoint(2, 1)
	l1 := s.AddShape(constraint.Line(p1, p2))
	l2 := s.AddShape(constraint.Line(p2, p3))
	s.AddConstraint(constraint.FixedPointC(p1, 0, 0))
	s.AddConstraint(constraint.FixedPointC(p3, 2, 1))
	s.AddConstraint(constraint.HorizontalC(l1))
	s.AddConstraint(constraint.VerticalC(l2))

	stats, err := s.Solve(lm.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "converged", stats.Status.String())

	x, y := s.Point(p2)
	assert.InDelta(t, 2, x, 1e-4)
	assert.InDelta(t, 0, y, 1e-4)
}

func TestDistance(t *testing.T) {
	s := sketch.New(nil)
	p1 := s.AddPoint(0, 0)
	p2 := s.AddPoint(4, 0.1)
	line := s.AddShape(constraint.Line(p1, p2))
	s.AddConstraint(constraint.FixedPointC(p1, 0, 0))
	s.AddConstraint(constraint.HorizontalC(line))
	s.AddConstraint(constraint.DistanceC(p1, p2, 5))

	stats, err := s.Solve(lm.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "converged", stats.Status.String())

	x, y := s.Point(p2)
	assert.InDelta(t, 5, x, 1e-4)
	assert.InDelta(t, 0, y, 1e-4)
}

func TestCircleDiameter(t *testing.T) {
	s := sketch.New(nil)
	center := s.AddPoint(0.2, -0.1)
	rim := s.AddPoint(4.2, 1)
	circle := s.AddShape(constraint.Circle(center, rim))
	line := s.AddShape(constraint.Line(center, rim))
	s.AddConstraint(constraint.FixedPointC(center, 0, 0))
	s.AddConstraint(constraint.HorizontalC(line))
	s.AddConstraint(constraint.DiameterC(circle, 10))

	stats, err := s.Solve(lm.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "converged", stats.Status.String())

	x, y := s.Point(rim)
	assert.InDelta(t, 5, x, 1e-4)
	assert.InDelta(t, 0, y, 1e-4)
}

func TestPointOnCircle(t *testing.T) {
	s := sketch.New(nil)
	center := s.AddPoint(0, 0)
	rim := s.AddPoint(0, 2)
	p1 := s.AddPoint(0.2, 1.6)
	circle := s.AddShape(constraint.Circle(center, rim))
	anchorLine := s.AddShape(constraint.Line(p1, center))
	s.AddConstraint(constraint.FixedPointC(center, 0, 0))
	s.AddConstraint(constraint.FixedPointC(rim, 0, 2))
	s.AddConstraint(constraint.VerticalC(anchorLine))
	s.AddConstraint(constraint.CircleCoincidentC(circle, p1))

	stats, err := s.Solve(lm.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "converged", stats.Status.String())

	x, y := s.Point(p1)
	assert.InDelta(t, 0, x, 1e-4)
	assert.InDelta(t, 2, y, 1e-4)
}

func TestNormalThroughCenter(t *testing.T) {
	s := sketch.New(nil)
	center := s.AddPoint(0, 0)
	e1 := s.AddPoint(2, 1)
	e2 := s.AddPoint(0, 2)
	circle := s.AddShape(constraint.Circle(center, center))
	line := s.AddShape(constraint.Line(e1, e2))
	s.AddConstraint(constraint.FixedPointC(center, 0, 0))
	s.AddConstraint(constraint.FixedPointC(e1, 2, 1))
	s.AddConstraint(constraint.NormalC(circle, line))

	stats, err := s.Solve(lm.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "converged", stats.Status.String())

	// Normal forces the center onto the infinite line through e1,e2: with
	// e1=(2,1) and center=(0,0) fixed, every solution has x2 = 2*y2.
	x, y := s.Point(e2)
	assert.InDelta(t, 0, x-2*y, 1e-4)
}

func TestInconsistentFixedPoints(t *testing.T) {
	s := sketch.New(nil)
	p1 := s.AddPoint(0.5, 0)
	s.AddConstraint(constraint.FixedPointC(p1, 0, 0))
	s.AddConstraint(constraint.FixedPointC(p1, 1, 0))

	stats, err := s.Solve(lm.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "converged", stats.Status.String())
	assert.GreaterOrEqual(t, sketch.ResidualNorm(stats), 0.5)
	assert.True(t, sketch.HasConflict(stats, 1e-3))
}

func TestOverdeterminedConsistentConverges(t *testing.T) {
	s := sketch.New(nil)
	p1 := s.AddPoint(0.1, 0.1)
	s.AddConstraint(constraint.FixedPointC(p1, 0, 0))
	s.AddConstraint(constraint.FixedPointC(p1, 0, 0))

	stats, err := s.Solve(lm.DefaultOptions())
	require.NoError(t, err)
	assert.InDelta(t, 0, sketch.ResidualNorm(stats), 1e-4)
}

func TestSolveEmptyProblem(t *testing.T) {
	s := sketch.New(nil)
	_, err := s.Solve(lm.DefaultOptions())
	assert.ErrorIs(t, err, sketch.ErrEmptyProblem)
}

func TestDirtyFlagLifecycle(t *testing.T) {
	s := sketch.New(nil)
	p1 := s.AddPoint(0, 0)
	assert.True(t, s.StructureDirty())

	s.AddConstraint(constraint.FixedPointC(p1, 1, 1))
	_, err := s.Solve(lm.DefaultOptions())
	require.NoError(t, err)
	assert.False(t, s.StructureDirty())
	assert.False(t, s.ValueDirty())

	s.SetPoint(p1, 2, 2)
	assert.True(t, s.ValueDirty())
	assert.False(t, s.StructureDirty())
}

func TestWarmStartReusesCompiledProblem(t *testing.T) {
	s := sketch.New(nil)
	p1 := s.AddPoint(0, 0)
	s.AddConstraint(constraint.FixedPointC(p1, 3, 3))

	_, err := s.Solve(lm.DefaultOptions())
	require.NoError(t, err)
	first := s.Problem()

	s.SetPoint(p1, 1, 1)
	_, err = s.Solve(lm.DefaultOptions())
	require.NoError(t, err)

	assert.Same(t, first, s.Problem())
}

func TestRepeatedSolveIsDeterministic(t *testing.T) {
	s := sketch.New(nil)
	p1 := s.AddPoint(0, 0)
	s.AddConstraint(constraint.FixedPointC(p1, 4, 5))

	stats1, err := s.Solve(lm.DefaultOptions())
	require.NoError(t, err)
	stats2, err := s.Solve(lm.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, stats1, stats2)
}

func TestConflictsRequiresCleanStructure(t *testing.T) {
	s := sketch.New(nil)
	p1 := s.AddPoint(0, 0)
	s.AddConstraint(constraint.FixedPointC(p1, 0, 0))

	_, err := s.Conflicts(1e-6, 10)
	assert.ErrorIs(t, err, sketch.ErrStructureDirty)
}

func TestArcContributesNoResidualsUntilReferenced(t *testing.T) {
	s := sketch.New(nil)
	p1 := s.AddPoint(0, 0)
	s.AddConstraint(constraint.FixedPointC(p1, 2, 3))

	_, err := s.Solve(lm.DefaultOptions())
	require.NoError(t, err)
	before := s.Problem()

	center := s.AddPoint(0, 0)
	start := s.AddPoint(1, 0)
	end := s.AddPoint(0, 1)
	s.AddShape(constraint.Arc(center, start, end))

	_, err = s.Solve(lm.DefaultOptions())
	require.NoError(t, err)
	after := s.Problem()

	// The Arc shape declares three points but adds no constraint of its
	// own, so the residual count is unchanged from bare point addition:
	// it only grows once a constraint actually references the Arc.
	assert.Equal(t, before.M, after.M)
}

func TestSketchIDStableAndUnique(t *testing.T) {
	s1 := sketch.New(nil)
	s2 := sketch.New(nil)

	assert.NotEqual(t, uuid.Nil, s1.ID())
	assert.NotEqual(t, s1.ID(), s2.ID())
	assert.Equal(t, s1.ID(), s1.ID())
}
