// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lm

import (
	"errors"

	"github.com/sketchsolver/core/sparse"
)

// ErrDimensionMismatch is returned by Engine.Fit when the supplied
// initial parameter vector does not have length Problem.N.
var ErrDimensionMismatch = errors.New("lm: initial x dimension does not match problem size")

// Residual writes r(x) into out, which has length Problem.M. Residual
// must zero every row it does not touch on a given call — the LM engine
// passes the same buffer across iterations.
type Residual func(x, out []float64)

// Jacobian writes the nonzero values of J(x) into nzval, positioned
// according to Problem.Pattern's CSC layout. Jacobian must zero nzval
// first; every write must land on a position that is a structural
// nonzero of Pattern — no fill-in at runtime.
type Jacobian func(x, nzval []float64)

// Problem is a residual/Jacobian pair over a fixed sparsity pattern.
// Callers — here, package constraint — own the pattern and the closures;
// the LM engine only evaluates them.
type Problem struct {
	M, N    int
	Pattern *sparse.Pattern
	R       Residual
	J       Jacobian
}

// New validates p and returns an Engine bound to it. The augmented
// pattern [J; √λ·I] and its row index are built once here, from
// Problem.Pattern, and reused for the lifetime of the Engine.
func (p *Problem) New() (*Engine, error) {
	switch {
	case p.M <= 0:
		return nil, errors.New("lm: residual count must be greater than 0")
	case p.N <= 0:
		return nil, errors.New("lm: parameter count must be greater than 0")
	case p.Pattern == nil:
		return nil, errors.New("lm: jacobian pattern is required")
	case p.Pattern.Rows != p.M || p.Pattern.Cols != p.N:
		return nil, errors.New("lm: jacobian pattern dimensions do not match problem")
	case p.R == nil:
		return nil, errors.New("lm: residual evaluator is required")
	case p.J == nil:
		return nil, errors.New("lm: jacobian evaluator is required")
	}

	aPattern, diagIdx := sparse.Augment(p.Pattern)
	return &Engine{
		spec:     *p,
		aPattern: aPattern,
		diagIdx:  diagIdx,
		rowIndex: sparse.BuildRowIndex(aPattern),
	}, nil
}

// Engine binds a validated Problem to the derived augmented-system
// structure. An Engine is immutable once built and may be shared across
// Workspaces that all use the same Problem.
type Engine struct {
	spec     Problem
	aPattern *sparse.Pattern
	diagIdx  []int
	rowIndex *sparse.RowIndex
}

// Init allocates a fresh Workspace for this Engine. All buffers are sized
// once here; subsequent Fit calls reusing the same Workspace perform no
// allocation.
func (e *Engine) Init() *Workspace {
	m, n := e.spec.M, e.spec.N
	jnnz := e.spec.Pattern.NNZ()
	w := &Workspace{
		n:      n,
		j:      make([]float64, jnnz),
		a:      make([]float64, e.aPattern.NNZ()),
		x:      make([]float64, n),
		xTrial: make([]float64, n),
		xOut:   make([]float64, n),
		r:      make([]float64, m),
		rTrial: make([]float64, m),
		g:      make([]float64, n),
		step:   make([]float64, n),
		bAug:   make([]float64, m+n),
		qr:     sparse.NewQR(n),
	}
	w.result.X = w.xOut
	return w
}
