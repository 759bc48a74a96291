// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lm

import (
	"fmt"
	"math"
)

// Stats reports the outcome of a Fit call.
type Stats struct {
	Iters    int
	Cost     float64 // ½‖r‖²
	GradNorm float64 // ‖Jᵀr‖∞
	StepNorm float64 // ‖step‖₂ of the last accepted or rejected step
	Status   Status
}

// Result is the return value of Fit: the converged (or best-effort)
// parameter vector and its termination record. The Result returned by a
// Fit call is owned by the Workspace that produced it and is only valid
// until the next Fit call on that same Workspace, which overwrites it in
// place.
type Result struct {
	X     []float64
	Stats Stats
}

// Fit runs the damped Gauss-Newton outer loop to convergence or failure,
// starting from x0, using w as scratch, and updates w in place. The
// accepted iterate is copied into w.xOut, a buffer dedicated to Result.X
// that the outer loop's ping-pong never touches; w.n must equal len(x0).
// Callers that need to retain a result past the next Fit call must copy
// Result.X themselves.
//
// Fit performs no allocation at all: every intermediate vector, including
// the returned *Result itself, is owned by w and sized once by Engine.Init.
func (e *Engine) Fit(x0 []float64, w *Workspace, opts Options) (*Result, error) {
	if len(x0) != w.n || w.n != e.spec.N {
		return nil, ErrDimensionMismatch
	}

	copy(w.x, x0)
	x := w.x
	m, n := e.spec.M, e.spec.N

	lambda := opts.LambdaInit
	log := opts.Logger

	e.spec.R(x, w.r)
	e.spec.J(x, w.j)
	cost := 0.5 * ddot(w.r, w.r)
	e.jTr(w.j, w.r, w.g)
	rNorm0 := math.Sqrt(2 * cost)

	stats := Stats{Cost: cost, GradNorm: damax(w.g)}

	if log.enable(LogLast) {
		log.log("lm: start cost=%.6e gradNorm=%.3e\n", cost, stats.GradNorm)
	}

	for iter := 0; ; iter++ {
		stats.Iters = iter

		if stats.GradNorm <= opts.Gtol || math.Sqrt(2*cost) <= opts.Atol+opts.Rtol*rNorm0 {
			stats.Status = Converged
			stats.Cost = cost
			break
		}
		if iter >= opts.MaxIters {
			stats.Status = MaxIters
			stats.Cost = cost
			break
		}

		// Assemble augmented system A = [J; √λ·I], b_aug = [-r; 0].
		// Copied column by column: each column of A is J's column
		// followed by its one diagonal damping entry, so the copy must
		// respect each column's own sub-range rather than one flat block.
		jPattern := e.spec.Pattern
		for c := 0; c < n; c++ {
			lo, hi := jPattern.ColPtr[c], jPattern.ColPtr[c+1]
			aLo := e.aPattern.ColPtr[c]
			copy(w.a[aLo:aLo+(hi-lo)], w.j[lo:hi])
		}
		sqrtLambda := math.Sqrt(lambda)
		for c := 0; c < n; c++ {
			w.a[e.diagIdx[c]] = sqrtLambda
		}
		for i := 0; i < m; i++ {
			w.bAug[i] = -w.r[i]
		}
		for i := m; i < m+n; i++ {
			w.bAug[i] = 0
		}

		w.qr.Reset()
		for row, entries := range e.rowIndex.Rows {
			w.qr.FoldRow(entries, w.a, w.bAug[row])
		}
		if err := w.qr.Solve(w.step); err != nil {
			return nil, fmt.Errorf("lm: %w", err)
		}

		stats.StepNorm = dnrm2(w.step)
		if stats.StepNorm <= opts.StepTol {
			stats.Status = StepTol
			stats.Cost = cost
			break
		}

		copy(w.xTrial, x)
		daxpy(1, w.step, w.xTrial)
		e.spec.R(w.xTrial, w.rTrial)
		costTrial := 0.5 * ddot(w.rTrial, w.rTrial)

		pred := predictedReduction(w.step, lambda, w.g)

		if log.enable(LogTrace) {
			log.log("lm: iter=%d lambda=%.3e cost=%.6e costTrial=%.6e step=%.3e\n",
				iter, lambda, cost, costTrial, stats.StepNorm)
		}

		switch {
		case pred <= 0:
			lambda = math.Min(2*lambda, opts.LambdaMax)
		case costTrial < cost:
			rho := (cost - costTrial) / pred
			x, w.xTrial = w.xTrial, x
			w.x = x
			w.r, w.rTrial = w.rTrial, w.r
			e.spec.J(x, w.j)
			e.jTr(w.j, w.r, w.g)
			cost = costTrial
			stats.GradNorm = damax(w.g)

			if log.enable(LogEval) {
				log.log("lm: iter=%d accepted cost=%.6e gradNorm=%.3e\n", iter, cost, stats.GradNorm)
			}

			switch {
			case rho > 0.75:
				lambda = math.Max(lambda/2, opts.LambdaMin)
			case rho < 0.25:
				lambda = math.Min(2*lambda, opts.LambdaMax)
			}
		default:
			lambda = math.Min(2*lambda, opts.LambdaMax)
		}
	}

	if log.enable(LogLast) {
		log.log("lm: done status=%s iters=%d cost=%.6e\n", stats.Status, stats.Iters, stats.Cost)
	}

	copy(w.xOut, x)
	w.result.Stats = stats
	return &w.result, nil
}

// jTr computes g = Jᵀr directly from J's CSC values: column c of J
// contributes g[c] = Σ J[row,c]·r[row] over that column's structural
// nonzeros.
func (e *Engine) jTr(j []float64, r []float64, g []float64) {
	p := e.spec.Pattern
	for c := 0; c < p.Cols; c++ {
		var s float64
		for k := p.ColPtr[c]; k < p.ColPtr[c+1]; k++ {
			s += j[k] * r[p.RowVal[k]]
		}
		g[c] = s
	}
}

// predictedReduction computes ½·Σᵢ stepᵢ·(λ·stepᵢ - gᵢ), the quadratic
// model's estimate of cost decrease used to drive the damping update.
func predictedReduction(step []float64, lambda float64, g []float64) float64 {
	var s float64
	for i, si := range step {
		s += si * (lambda*si - g[i])
	}
	return 0.5 * s
}
