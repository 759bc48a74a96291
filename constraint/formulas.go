// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

// rowOffsetTable maps, per Kind, each column touch (in the fixed order
// resolveConstraint emits it) to the local residual row it belongs to.
// Every Kind but FixedPoint and Coincident contributes exactly one row,
// so every touch maps to local row 0 for those kinds.
var rowOffsetTable = map[Kind][8]int{
	FixedPoint:       {0, 1},
	Coincident:       {0, 0, 1, 1},
	Horizontal:       {0, 0},
	Vertical:         {0, 0},
	Parallel:         {0, 0, 0, 0, 0, 0, 0, 0},
	Distance:         {0, 0, 0, 0},
	Diameter:         {0, 0, 0, 0},
	Normal:           {0, 0, 0, 0, 0, 0},
	CircleCoincident: {0, 0, 0, 0, 0, 0},
}

// resolveConstraint lowers a Constraint (whose Points may reference
// shapes) into its resolved point-parameter columns, one fixed column
// list per constraint kind.
func resolveConstraint(shapes []Shape, c Constraint, row int) resolved {
	rc := resolved{kind: c.Kind, row: row, value: c.Value, y0: c.Y0}

	set := func(pts ...int) {
		for i, p := range pts {
			rc.cols[2*i] = slot(p)
			rc.cols[2*i+1] = slot(p) + 1
		}
		rc.nCols = 2 * len(pts)
	}

	switch c.Kind {
	case FixedPoint:
		p := c.Points[0]
		rc.cols[0] = slot(p)
		rc.cols[1] = slot(p) + 1
		rc.nCols = 2
	case Coincident:
		p1, p2 := c.Points[0], c.Points[1]
		rc.cols[0], rc.cols[1] = slot(p1), slot(p2)
		rc.cols[2], rc.cols[3] = slot(p1)+1, slot(p2)+1
		rc.nCols = 4
	case Horizontal:
		line := shapes[c.Points[0]]
		p1, p2 := line.Points[0], line.Points[1]
		rc.cols[0], rc.cols[1] = slot(p1)+1, slot(p2)+1
		rc.nCols = 2
	case Vertical:
		line := shapes[c.Points[0]]
		p1, p2 := line.Points[0], line.Points[1]
		rc.cols[0], rc.cols[1] = slot(p1), slot(p2)
		rc.nCols = 2
	case Parallel:
		l1, l2 := shapes[c.Points[0]], shapes[c.Points[1]]
		set(l1.Points[0], l1.Points[1], l2.Points[0], l2.Points[1])
	case Distance:
		set(c.Points[0], c.Points[1])
	case Diameter:
		circle := shapes[c.Points[0]]
		set(circle.Points[0], circle.Points[1])
	case Normal:
		circle := shapes[c.Points[0]]
		line := shapes[c.Points[1]]
		// 4 slots of line + 2 slots of center (not the rim).
		rc.cols[0], rc.cols[1] = slot(line.Points[0]), slot(line.Points[0])+1
		rc.cols[2], rc.cols[3] = slot(line.Points[1]), slot(line.Points[1])+1
		rc.cols[4], rc.cols[5] = slot(circle.Points[0]), slot(circle.Points[0])+1
		rc.nCols = 6
	case CircleCoincident:
		circle := shapes[c.Points[0]]
		p := c.Points[1]
		set(circle.Points[0], circle.Points[1], p)
	}
	return rc
}

// writeResidual writes rc's contribution to out at its assigned row
// offset(s).
func writeResidual(rc resolved, x, out []float64) {
	switch rc.kind {
	case FixedPoint:
		ix, iy := rc.cols[0], rc.cols[1]
		out[rc.row] = x[ix] - rc.value
		out[rc.row+1] = x[iy] - rc.y0
	case Coincident:
		ix1, ix2, iy1, iy2 := rc.cols[0], rc.cols[1], rc.cols[2], rc.cols[3]
		out[rc.row] = x[ix1] - x[ix2]
		out[rc.row+1] = x[iy1] - x[iy2]
	case Horizontal:
		iy1, iy2 := rc.cols[0], rc.cols[1]
		out[rc.row] = x[iy1] - x[iy2]
	case Vertical:
		ix1, ix2 := rc.cols[0], rc.cols[1]
		out[rc.row] = x[ix1] - x[ix2]
	case Parallel:
		x1, y1, x2, y2, x3, y3, x4, y4 := eight(rc, x)
		dx12, dy12 := x2-x1, y2-y1
		dx34, dy34 := x4-x3, y4-y3
		out[rc.row] = dx12*dy34 - dy12*dx34
	case Distance:
		x1, y1, x2, y2 := fourOf(rc, x, 0)
		dx, dy := x2-x1, y2-y1
		out[rc.row] = dx*dx + dy*dy - rc.value*rc.value
	case Diameter:
		cx, cy, rx, ry := fourOf(rc, x, 0)
		dx, dy := rx-cx, ry-cy
		half := rc.value / 2
		out[rc.row] = dx*dx + dy*dy - half*half
	case Normal:
		x1 := x[rc.cols[0]]
		y1 := x[rc.cols[1]]
		x2 := x[rc.cols[2]]
		y2 := x[rc.cols[3]]
		cx := x[rc.cols[4]]
		cy := x[rc.cols[5]]
		dx, dy := x2-x1, y2-y1
		out[rc.row] = dx*(cy-y1) - dy*(cx-x1)
	case CircleCoincident:
		cx := x[rc.cols[0]]
		cy := x[rc.cols[1]]
		rx := x[rc.cols[2]]
		ry := x[rc.cols[3]]
		px := x[rc.cols[4]]
		py := x[rc.cols[5]]
		dxp, dyp := px-cx, py-cy
		dxr, dyr := rx-cx, ry-cy
		out[rc.row] = dxp*dxp + dyp*dyp - (dxr*dxr + dyr*dyr)
	}
}

// eight reads the 8 dense coordinates of a Parallel constraint's two
// lines out of x, in (x1,y1,x2,y2,x3,y3,x4,y4) order.
func eight(rc resolved, x []float64) (x1, y1, x2, y2, x3, y3, x4, y4 float64) {
	return x[rc.cols[0]], x[rc.cols[1]], x[rc.cols[2]], x[rc.cols[3]],
		x[rc.cols[4]], x[rc.cols[5]], x[rc.cols[6]], x[rc.cols[7]]
}

// fourOf reads 4 consecutive coordinates (two (x,y) pairs) starting at
// cols[off:].
func fourOf(rc resolved, x []float64, off int) (x1, y1, x2, y2 float64) {
	return x[rc.cols[off]], x[rc.cols[off+1]], x[rc.cols[off+2]], x[rc.cols[off+3]]
}

// writeJacobian writes rc's partial derivatives into nzval at its
// precomputed slots, in the same column order resolveConstraint built
// rc.cols — so slots[i] always corresponds to the derivative wrt
// rc.cols[i].
func writeJacobian(rc resolved, x, nzval []float64) {
	switch rc.kind {
	case FixedPoint:
		nzval[rc.slots[0]] = 1
		nzval[rc.slots[1]] = 1
	case Coincident:
		nzval[rc.slots[0]] = 1
		nzval[rc.slots[1]] = -1
		nzval[rc.slots[2]] = 1
		nzval[rc.slots[3]] = -1
	case Horizontal:
		nzval[rc.slots[0]] = 1
		nzval[rc.slots[1]] = -1
	case Vertical:
		nzval[rc.slots[0]] = 1
		nzval[rc.slots[1]] = -1
	case Parallel:
		x1, y1, x2, y2, x3, y3, x4, y4 := eight(rc, x)
		dx12, dy12 := x2-x1, y2-y1
		dx34, dy34 := x4-x3, y4-y3
		// order: x1,y1,x2,y2,x3,y3,x4,y4
		nzval[rc.slots[0]] = -dy34
		nzval[rc.slots[1]] = dx34
		nzval[rc.slots[2]] = dy34
		nzval[rc.slots[3]] = -dx34
		nzval[rc.slots[4]] = dy12
		nzval[rc.slots[5]] = -dx12
		nzval[rc.slots[6]] = -dy12
		nzval[rc.slots[7]] = dx12
	case Distance:
		x1, y1, x2, y2 := fourOf(rc, x, 0)
		dx, dy := x2-x1, y2-y1
		nzval[rc.slots[0]] = -2 * dx
		nzval[rc.slots[1]] = -2 * dy
		nzval[rc.slots[2]] = 2 * dx
		nzval[rc.slots[3]] = 2 * dy
	case Diameter:
		cx, cy, rx, ry := fourOf(rc, x, 0)
		dx, dy := rx-cx, ry-cy
		nzval[rc.slots[0]] = -2 * dx
		nzval[rc.slots[1]] = -2 * dy
		nzval[rc.slots[2]] = 2 * dx
		nzval[rc.slots[3]] = 2 * dy
	case Normal:
		x1 := x[rc.cols[0]]
		y1 := x[rc.cols[1]]
		x2 := x[rc.cols[2]]
		y2 := x[rc.cols[3]]
		cx := x[rc.cols[4]]
		cy := x[rc.cols[5]]
		nzval[rc.slots[0]] = y2 - cy
		nzval[rc.slots[1]] = cx - x2
		nzval[rc.slots[2]] = cy - y1
		nzval[rc.slots[3]] = x1 - cx
		nzval[rc.slots[4]] = y1 - y2
		nzval[rc.slots[5]] = x2 - x1
	case CircleCoincident:
		cx := x[rc.cols[0]]
		cy := x[rc.cols[1]]
		rx := x[rc.cols[2]]
		ry := x[rc.cols[3]]
		px := x[rc.cols[4]]
		py := x[rc.cols[5]]
		dxp, dyp := px-cx, py-cy
		dxr, dyr := rx-cx, ry-cy
		nzval[rc.slots[0]] = 2 * (dxr - dxp)
		nzval[rc.slots[1]] = 2 * (dyr - dyp)
		nzval[rc.slots[2]] = -2 * dxr
		nzval[rc.slots[3]] = -2 * dyr
		nzval[rc.slots[4]] = 2 * dxp
		nzval[rc.slots[5]] = 2 * dyp
	}
}
