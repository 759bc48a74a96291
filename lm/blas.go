// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lm

import "math"

// Level-1 vector kernels for the dense buffers Fit operates on. Adapted
// from the BLAS routines every solver package in this module's lineage
// carries (daxpy/ddot/dnrm2/dzero), specialized to unit stride since
// Workspace never allocates strided views.

// ddot computes the dot product of two equal-length vectors.
func ddot(dx, dy []float64) (dot float64) {
	n := len(dx)
	m := n % 5
	for i := 0; i < m; i++ {
		dot += dx[i] * dy[i]
	}
	if n < 5 {
		return dot
	}
	for i := m; i < n; i += 5 {
		x := dx[i : i+5 : i+5]
		y := dy[i : i+5 : i+5]
		dot += x[0]*y[0] + x[1]*y[1] + x[2]*y[2] + x[3]*y[3] + x[4]*y[4]
	}
	return dot
}

// daxpy computes dy += da*dx in place.
func daxpy(da float64, dx []float64, dy []float64) {
	if da == 0 {
		return
	}
	n := len(dx)
	m := n % 4
	for i := 0; i < m; i++ {
		dy[i] += da * dx[i]
	}
	if n < 4 {
		return
	}
	for i := m; i < n; i += 4 {
		x := dx[i : i+4 : i+4]
		y := dy[i : i+4 : i+4]
		y[0] += da * x[0]
		y[1] += da * x[1]
		y[2] += da * x[2]
		y[3] += da * x[3]
	}
}

// dnrm2 computes the Euclidean norm of x, scaled to avoid premature
// overflow/underflow on the squared terms.
func dnrm2(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	if len(x) == 1 {
		return math.Abs(x[0])
	}
	var scale float64
	ssq := 1.0
	for _, xi := range x {
		if absxi := math.Abs(xi); absxi > 0 {
			if scale < absxi {
				s := scale / absxi
				ssq = 1 + ssq*s*s
				scale = absxi
			} else {
				s := absxi / scale
				ssq += s * s
			}
		}
	}
	return scale * math.Sqrt(ssq)
}

// dzero fills dx with zero.
func dzero(dx []float64) {
	for i := range dx {
		dx[i] = 0
	}
}

// damax returns the largest magnitude among the elements of x (0 for an
// empty slice), the ‖·‖∞ Fit needs for its gradient-convergence test.
func damax(x []float64) float64 {
	var m float64
	for _, xi := range x {
		if a := math.Abs(xi); a > m {
			m = a
		}
	}
	return m
}
