// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lm

// Status reports how a Fit call terminated.
type Status int

const (
	// Converged: the gradient or residual tolerance was satisfied before
	// a step was taken.
	Converged Status = iota
	// StepTol: the proposed step length fell below Options.StepTol.
	StepTol
	// MaxIters: the iteration budget was exhausted without convergence.
	MaxIters
)

func (s Status) String() string {
	switch s {
	case Converged:
		return "converged"
	case StepTol:
		return "step_tol"
	case MaxIters:
		return "max_iters"
	default:
		return "unknown"
	}
}

// Options controls the termination and damping behavior of the LM outer
// loop.
type Options struct {
	// MaxIters bounds the number of outer LM iterations.
	MaxIters int
	// Atol, Rtol bound the pre-step residual-norm convergence test:
	// √(2·cost) ≤ Atol + Rtol·r_norm_0.
	Atol, Rtol float64
	// Gtol bounds the infinity norm of the gradient g = Jᵀr.
	Gtol float64
	// StepTol bounds the 2-norm of the proposed LM step.
	StepTol float64
	// LambdaInit, LambdaMin, LambdaMax bound the trust-region damping
	// parameter λ across the solve.
	LambdaInit, LambdaMin, LambdaMax float64
	// QROrdering is reserved for a future fill-reducing column ordering;
	// the row-insertion QR solver in package sparse always processes
	// columns in their natural order, so this field is currently
	// informational only (see DESIGN.md).
	QROrdering string
	// Logger optionally traces the outer loop. A nil Logger disables
	// output entirely (LogNoop).
	Logger *Logger
}

// DefaultOptions returns a conservative default option set suitable for
// an interactive 2D sketch solve.
func DefaultOptions() Options {
	return Options{
		MaxIters:   50,
		Atol:       1e-8,
		Rtol:       1e-8,
		Gtol:       1e-8,
		StepTol:    1e-12,
		LambdaInit: 1e-3,
		LambdaMin:  1e-12,
		LambdaMax:  1e12,
	}
}
