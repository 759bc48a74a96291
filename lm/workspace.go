// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lm

import "github.com/sketchsolver/core/sparse"

// Workspace holds every buffer the LM outer loop mutates across
// iterations: J's CSC values, the augmented matrix A = [J; √λ·I]'s CSC
// values, the vector buffers r, rTrial, g, step, x, xTrial, bAug, the
// stable xOut/result pair Fit hands back to the caller, and the QR
// factorization state. A Workspace is valid only for the Engine that
// produced it, and only while that Engine's Problem.Pattern is unchanged —
// a structural edit requires a fresh Engine and Workspace.
type Workspace struct {
	n int

	j []float64 // len = Pattern.NNZ(), J's CSC values
	a []float64 // len = aPattern.NNZ(), augmented CSC values

	x, xTrial []float64 // len n, current iterate and trial step target; ping-pong across iterations
	xOut      []float64 // len n, stable copy of the accepted iterate handed back as Result.X

	r, rTrial []float64 // len m
	g         []float64 // len n, Jᵀr
	step      []float64 // len n
	bAug      []float64 // len m+n, [-r; 0]

	qr *sparse.QR

	result Result // returned by Fit as &w.result; result.X always aliases xOut
}
