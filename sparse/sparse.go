// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sparse implements the fixed column-compressed (CSC) sparsity
// pattern shared by the LM engine and the constraint compiler, plus the
// row-insertion QR solver used to factor the damped augmented system.
package sparse

import "sort"

// Pattern is a column-compressed structural sparsity pattern: colPtr[c:c+1]
// bounds column c's entries in rowVal, which are kept sorted ascending
// within each column. Pattern carries no numeric values — it describes
// where a matrix may have nonzeros, not what they are.
type Pattern struct {
	Rows, Cols int
	ColPtr     []int // len Cols+1
	RowVal     []int // len ColPtr[Cols]
}

// NNZ returns the number of structural nonzeros in the pattern.
func (p *Pattern) NNZ() int {
	return p.ColPtr[p.Cols]
}

// Index returns the position in RowVal (and therefore in a value array
// sharing this pattern) of the (row, col) entry, or -1 if that entry is
// not a structural nonzero. Intended for use at compile time only — the
// hot residual/Jacobian loops must use a slot index precomputed from this
// call, not call Index per iteration.
func (p *Pattern) Index(row, col int) int {
	lo, hi := p.ColPtr[col], p.ColPtr[col+1]
	rows := p.RowVal[lo:hi]
	i := sort.SearchInts(rows, row)
	if i < len(rows) && rows[i] == row {
		return lo + i
	}
	return -1
}

// Builder accumulates (row, col) structural nonzeros from a triplet-style
// description and compresses them to a Pattern once, deduplicating
// repeated entries. Constraints append their column touches to a Builder
// during compilation; the union across all constraints is the pattern
// the compiled Problem carries for its lifetime.
type Builder struct {
	rows, cols int
	byCol      [][]int
}

// NewBuilder creates a triplet builder for an m-row, n-column pattern.
func NewBuilder(rows, cols int) *Builder {
	return &Builder{rows: rows, cols: cols, byCol: make([][]int, cols)}
}

// Add records a structural nonzero at (row, col). Duplicate calls for the
// same entry are safe — they collapse to one nonzero on Build.
func (b *Builder) Add(row, col int) {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		panic("sparse: triplet out of bounds")
	}
	b.byCol[col] = append(b.byCol[col], row)
}

// Build compresses the accumulated triplets into a Pattern with sorted,
// deduplicated rows per column.
func (b *Builder) Build() *Pattern {
	colPtr := make([]int, b.cols+1)
	nnz := 0
	cols := make([][]int, b.cols)
	for c, rows := range b.byCol {
		sort.Ints(rows)
		dedup := rows[:0]
		var last = -1
		for _, r := range rows {
			if r != last {
				dedup = append(dedup, r)
				last = r
			}
		}
		cols[c] = dedup
		nnz += len(dedup)
	}
	rowVal := make([]int, 0, nnz)
	for c, rows := range cols {
		colPtr[c] = len(rowVal)
		rowVal = append(rowVal, rows...)
	}
	colPtr[b.cols] = len(rowVal)
	return &Pattern{Rows: b.rows, Cols: b.cols, ColPtr: colPtr, RowVal: rowVal}
}

// Augment builds the pattern of A = [J; √λ·I] from J's pattern: one
// diagonal entry appended at row m+c for every column c.
// diagIdx[c] is the position of that diagonal entry in the returned
// pattern's RowVal/nzval arrays, stable for the lifetime of the structure.
func Augment(j *Pattern) (a *Pattern, diagIdx []int) {
	m, n := j.Rows, j.Cols
	colPtr := make([]int, n+1)
	rowVal := make([]int, j.NNZ()+n)
	diagIdx = make([]int, n)

	pos := 0
	for c := 0; c < n; c++ {
		colPtr[c] = pos
		lo, hi := j.ColPtr[c], j.ColPtr[c+1]
		pos += copy(rowVal[pos:], j.RowVal[lo:hi])
		rowVal[pos] = m + c
		diagIdx[c] = pos
		pos++
	}
	colPtr[n] = pos

	a = &Pattern{Rows: m + n, Cols: n, ColPtr: colPtr, RowVal: rowVal}
	return
}

// Entry identifies one structural nonzero by the column it belongs to and
// its position in the CSC value array.
type Entry struct {
	Col, Pos int
}

// RowIndex is a row-major shadow of a fixed Pattern: for each row, the
// list of (column, CSC position) pairs touching it. Built once per
// structural compile and reused for every row-insertion QR fold, so the
// per-iteration solve never walks the pattern column-by-column to find a
// row's entries.
type RowIndex struct {
	Rows [][]Entry
}

// BuildRowIndex derives a RowIndex from p. Entries within a row are
// ordered by ascending column, matching the column order Pattern already
// keeps.
func BuildRowIndex(p *Pattern) *RowIndex {
	rows := make([][]Entry, p.Rows)
	for c := 0; c < p.Cols; c++ {
		for k := p.ColPtr[c]; k < p.ColPtr[c+1]; k++ {
			r := p.RowVal[k]
			rows[r] = append(rows[r], Entry{Col: c, Pos: k})
		}
	}
	return &RowIndex{Rows: rows}
}
