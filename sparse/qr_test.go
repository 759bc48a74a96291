// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sketchsolver/core/sparse"
)

func TestQRSolveDiagonal(t *testing.T) {
	q := sparse.NewQR(2)
	nzval := []float64{2, 3}

	q.FoldRow([]sparse.Entry{{Col: 0, Pos: 0}}, nzval, 4)
	q.FoldRow([]sparse.Entry{{Col: 1, Pos: 1}}, nzval, 9)

	step := make([]float64, 2)
	require.NoError(t, q.Solve(step))
	assert.InDelta(t, 2, step[0], 1e-9)
	assert.InDelta(t, 3, step[1], 1e-9)
}

func TestQRSolveOverdeterminedConsistent(t *testing.T) {
	q := sparse.NewQR(2)
	// Rows: [1 0]->1, [0 1]->2, [1 1]->3; exactly consistent at x=(1,2).
	nzval := []float64{1, 1, 1, 1}

	q.FoldRow([]sparse.Entry{{Col: 0, Pos: 0}}, nzval, 1)
	q.FoldRow([]sparse.Entry{{Col: 1, Pos: 1}}, nzval, 2)
	q.FoldRow([]sparse.Entry{{Col: 0, Pos: 2}, {Col: 1, Pos: 3}}, nzval, 3)

	step := make([]float64, 2)
	require.NoError(t, q.Solve(step))
	assert.InDelta(t, 1, step[0], 1e-9)
	assert.InDelta(t, 2, step[1], 1e-9)
}

func TestQRResetReusesBuffers(t *testing.T) {
	q := sparse.NewQR(1)
	nzval := []float64{5}

	q.FoldRow([]sparse.Entry{{Col: 0, Pos: 0}}, nzval, 10)
	step := make([]float64, 1)
	require.NoError(t, q.Solve(step))
	assert.InDelta(t, 2, step[0], 1e-9)

	q.Reset()
	q.FoldRow([]sparse.Entry{{Col: 0, Pos: 0}}, nzval, 20)
	require.NoError(t, q.Solve(step))
	assert.InDelta(t, 4, step[0], 1e-9)
}

func TestQRSolveSingular(t *testing.T) {
	q := sparse.NewQR(2)
	step := make([]float64, 2)
	nzval := []float64{1}
	q.FoldRow([]sparse.Entry{{Col: 0, Pos: 0}}, nzval, 1)
	// Column 1 never received a pivot.
	assert.ErrorIs(t, q.Solve(step), sparse.ErrSingular)
}
