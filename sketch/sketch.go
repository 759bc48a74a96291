// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sketch implements the sketch controller: it owns the parameter
// vector, the shape/constraint lists, the cached compiled Problem, the LM
// engine and workspace, and the two dirty flags, and arbitrates rebuild
// vs. reuse on every Solve.
package sketch

import (
	"errors"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/sketchsolver/core/constraint"
	"github.com/sketchsolver/core/lm"
)

// ErrEmptyProblem is returned by Solve when there are no points or no
// constraints to compile.
var ErrEmptyProblem = constraint.ErrEmptyProblem

// ErrStructureDirty is returned by Conflicts when called while a
// structural edit is pending and has not yet gone through Solve.
var ErrStructureDirty = errors.New("sketch: structure_dirty; call Solve before Conflicts")

// Sketch owns every piece of mutable state a solve touches: the
// parameter vector, shapes, constraints, the compiled Problem, the LM
// engine/workspace, and the structureDirty/valueDirty flags. A Sketch is
// not safe for concurrent use; callers needing concurrent access must
// serialize it themselves.
type Sketch struct {
	id uuid.UUID

	x           []float64
	points      int
	shapes      []constraint.Shape
	constraints []constraint.Constraint

	problem   *lm.Problem
	engine    *lm.Engine
	workspace *lm.Workspace

	structureDirty bool
	valueDirty     bool

	lastStats lm.Stats
	logger    *lm.Logger
}

// New creates an empty Sketch. Pass a non-nil logger to trace LM
// iterations through every subsequent Solve.
func New(logger *lm.Logger) *Sketch {
	return &Sketch{id: uuid.New(), logger: logger}
}

// ID returns this Sketch's session identifier, stable for its lifetime.
// Useful for correlating solve telemetry with a specific document from
// the (out-of-scope) GUI layer; this module does not otherwise use it.
func (s *Sketch) ID() uuid.UUID {
	return s.id
}

// AddPoint appends a new point's (x,y) parameter slots and returns its
// 1-based index. Marks structure_dirty.
func (s *Sketch) AddPoint(x, y float64) int {
	s.x = append(s.x, x, y)
	s.points++
	s.structureDirty = true
	return s.points
}

// AddShape appends a shape and returns its 0-based index. Marks
// structure_dirty.
func (s *Sketch) AddShape(shape constraint.Shape) int {
	s.shapes = append(s.shapes, shape)
	s.structureDirty = true
	return len(s.shapes) - 1
}

// AddConstraint appends c after applying degenerate-constraint rewrites
// (constraint.Rewrite) and returns the number of constraints actually
// stored (0 or 1). Marks structure_dirty, unless the rewrite dropped c,
// in which case no structural change actually occurred.
func (s *Sketch) AddConstraint(c constraint.Constraint) int {
	rewritten := constraint.Rewrite(s.shapes, c)
	if len(rewritten) == 0 {
		return 0
	}
	s.constraints = append(s.constraints, rewritten...)
	s.structureDirty = true
	return len(rewritten)
}

// SetPoint overwrites point p's two parameter slots in place. Marks
// value_dirty only, and performs no allocation.
func (s *Sketch) SetPoint(p int, x, y float64) {
	i := 2 * (p - 1)
	s.x[i] = x
	s.x[i+1] = y
	s.valueDirty = true
}

// Solve rebuilds the compiled Problem (on a structural edit), mirrors x
// into the LM state (on a value edit), or reuses both as-is, then runs
// the LM engine to completion and copies the result back into x. Clears
// both dirty flags.
func (s *Sketch) Solve(opts lm.Options) (lm.Stats, error) {
	if opts.Logger == nil {
		opts.Logger = s.logger
	}

	switch {
	case s.structureDirty || s.engine == nil:
		problem, err := constraint.Compile(s.points, s.shapes, s.constraints)
		if err != nil {
			return lm.Stats{}, err
		}
		engine, err := problem.New()
		if err != nil {
			return lm.Stats{}, err
		}
		s.problem = problem
		s.engine = engine
		s.workspace = engine.Init()
		s.structureDirty = false
		s.valueDirty = false
	case s.valueDirty:
		s.valueDirty = false
	}

	result, err := s.engine.Fit(s.x, s.workspace, opts)
	if err != nil {
		return lm.Stats{}, err
	}

	copy(s.x, result.X)
	s.lastStats = result.Stats
	return result.Stats, nil
}

// ResidualNorm returns √(2·cost) for the given Stats.
func ResidualNorm(stats lm.Stats) float64 {
	return math.Sqrt(2 * stats.Cost)
}

// HasConflict reports whether the residual norm recorded in stats
// exceeds tol.
func HasConflict(stats lm.Stats, tol float64) bool {
	return ResidualNorm(stats) > tol
}

// ConflictEntry is one entry of a Conflicts report.
type ConflictEntry struct {
	ConstraintIndex int
	Kind            constraint.Kind
	ResidualNorm    float64
}

// Conflicts re-evaluates the residual at the current parameter vector
// (clearing value_dirty) and returns the top maxItems constraints whose per-constraint residual norm exceeds
// tol, sorted descending by norm. Returns ErrStructureDirty if called
// while a structural edit is still pending.
func (s *Sketch) Conflicts(tol float64, maxItems int) ([]ConflictEntry, error) {
	if s.structureDirty {
		return nil, ErrStructureDirty
	}

	out := make([]float64, s.problem.M)
	s.problem.R(s.x, out)
	s.valueDirty = false

	row := 0
	entries := make([]ConflictEntry, 0, len(s.constraints))
	for i, c := range s.constraints {
		rows := c.Kind.Rows()
		var sumSq float64
		for r := row; r < row+rows; r++ {
			sumSq += out[r] * out[r]
		}
		norm := math.Sqrt(sumSq)
		if norm > tol {
			entries = append(entries, ConflictEntry{ConstraintIndex: i, Kind: c.Kind, ResidualNorm: norm})
		}
		row += rows
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ResidualNorm > entries[j].ResidualNorm
	})
	if len(entries) > maxItems {
		entries = entries[:maxItems]
	}
	return entries, nil
}

// Problem exposes the currently compiled Problem, for tests asserting
// pointer equality across warm-started re-solves.
func (s *Sketch) Problem() *lm.Problem {
	return s.problem
}

// Point returns point p's current (x, y).
func (s *Sketch) Point(p int) (x, y float64) {
	i := 2 * (p - 1)
	return s.x[i], s.x[i+1]
}

// StructureDirty and ValueDirty report the controller's internal dirty
// flags, exposed read-only for tests; callers must never be able to set
// them directly.
func (s *Sketch) StructureDirty() bool { return s.structureDirty }
func (s *Sketch) ValueDirty() bool     { return s.valueDirty }
