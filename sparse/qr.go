// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparse

import (
	"errors"
	"math"
)

// ErrSingular is returned by QR.Solve when a diagonal pivot of the
// triangular factor R never received a nonzero contribution — the
// augmented system [J; √λ·I] is rank deficient even after damping. With
// a positive damping floor this should not occur in practice.
var ErrSingular = errors.New("sparse: rank-deficient system")

// QR incrementally triangularizes a row-at-a-time least-squares system
// 𝐀𝐱 ≅ 𝐛 by folding each row of 𝐀 into an n×n upper-triangular factor 𝐑
// (and the matching transformed right-hand side 𝐲) via Givens rotations,
// the classical row-insertion method for sequential least squares
// (Gentleman 1973). No row of 𝐀 is ever materialized as a full matrix:
// the pattern's sparsity is the only structure exploited.
//
// 𝐑 is stored column-major dense: element (row i, col j), i ≤ j, lives at
// r[j*n+i]. This trades true sparse fill-reducing factorization for a
// fixed, reused dense buffer — acceptable at the parameter counts an
// interactive 2D sketch produces, where refactoring from scratch every
// iteration is cheap enough that fill-reducing ordering isn't worth the
// extra bookkeeping.
type QR struct {
	n   int
	r   []float64 // n*n, column-major upper triangular
	y   []float64 // transformed right-hand side, length n
	row []float64 // scratch row buffer, length n, reused by FoldRow
}

// NewQR allocates a QR workspace for an n-column system. The buffers are
// sized once and reused by every subsequent Reset/FoldRow/Solve cycle.
func NewQR(n int) *QR {
	return &QR{
		n:   n,
		r:   make([]float64, n*n),
		y:   make([]float64, n),
		row: make([]float64, n),
	}
}

// Reset clears R and y so a fresh set of rows can be folded in. It
// performs no allocation.
func (q *QR) Reset() {
	clear(q.r)
	clear(q.y)
}

// FoldRow folds one sparse row of A, described by its structural entries
// and a shared CSC value array, together with right-hand-side component
// b, into R/y. entries need not be sorted by column; FoldRow expands them
// into the reused dense scratch row before triangularizing.
func (q *QR) FoldRow(entries []Entry, nzval []float64, b float64) {
	row := q.row
	clear(row)
	for _, e := range entries {
		row[e.Col] = nzval[e.Pos]
	}
	q.fold(row, b)
}

// fold triangularizes one dense row into R/y in place via Givens
// rotations, eliminating row against the existing diagonal of R column
// by column from the first nonzero onward.
func (q *QR) fold(row []float64, b float64) {
	n := q.n
	r, y := q.r, q.y
	for k := 0; k < n; k++ {
		rk := row[k]
		if rk == 0 {
			continue
		}
		diag := r[k*n+k]
		if diag == 0 {
			// No pivot yet in this column: the incoming row becomes it.
			for j := k; j < n; j++ {
				r[j*n+k] = row[j]
			}
			y[k] = b
			return
		}
		c, s := givens(diag, rk)
		for j := k; j < n; j++ {
			rij := r[j*n+k]
			rowj := row[j]
			r[j*n+k] = c*rij + s*rowj
			row[j] = -s*rij + c*rowj
		}
		yk := y[k]
		y[k] = c*yk + s*b
		b = -s*yk + c*b
	}
}

// Solve back-substitutes the triangular system R·step = y into step,
// which must have length n. Returns ErrSingular if a diagonal pivot was
// never populated by a FoldRow call.
func (q *QR) Solve(step []float64) error {
	n, r, y := q.n, q.r, q.y
	for i := n - 1; i >= 0; i-- {
		sum := y[i]
		for j := i + 1; j < n; j++ {
			sum -= r[j*n+i] * step[j]
		}
		d := r[i*n+i]
		if d == 0 {
			return ErrSingular
		}
		step[i] = sum / d
	}
	return nil
}

// givens computes the cosine/sine pair of the 2×2 rotation that zeros b
// against a.
func givens(a, b float64) (c, s float64) {
	switch {
	case b == 0:
		return 1, 0
	case a == 0:
		return 0, 1
	case math.Abs(b) > math.Abs(a):
		t := a / b
		s = 1 / math.Sqrt(1+t*t)
		c = s * t
	default:
		t := b / a
		c = 1 / math.Sqrt(1+t*t)
		s = c * t
	}
	return
}
