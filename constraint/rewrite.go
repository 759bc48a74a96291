// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

// Rewrite applies the degenerate-constraint handling rules at insert
// time, before any compilation happens. It returns the
// constraints that should actually be stored in place of c: zero entries
// (dropped) or one (c unchanged). Every degenerate case ends up dropped:
// a zero-length line's two endpoints are the same point, and the
// Coincident between them is trivially satisfied.
//
// These rewrites keep the compiled Jacobian's rank stable by never
// emitting an axis/parallel row whose columns would all cancel to zero
// because its line has no length.
func Rewrite(shapes []Shape, c Constraint) []Constraint {
	switch c.Kind {
	case Coincident:
		return coincidentOrDrop(c.Points[0], c.Points[1])
	case Horizontal, Vertical:
		line := shapes[c.Points[0]]
		if line.Points[0] == line.Points[1] {
			return coincidentOrDrop(line.Points[0], line.Points[1])
		}
	case Normal:
		line := shapes[c.Points[1]]
		if line.Points[0] == line.Points[1] {
			return coincidentOrDrop(line.Points[0], line.Points[1])
		}
	case Parallel:
		l1, l2 := shapes[c.Points[0]], shapes[c.Points[1]]
		deg1 := l1.Points[0] == l1.Points[1]
		deg2 := l2.Points[0] == l2.Points[1]
		switch {
		case deg1 && deg2:
			out := coincidentOrDrop(l1.Points[0], l1.Points[1])
			return append(out, coincidentOrDrop(l2.Points[0], l2.Points[1])...)
		case deg1:
			return coincidentOrDrop(l1.Points[0], l1.Points[1])
		case deg2:
			return coincidentOrDrop(l2.Points[0], l2.Points[1])
		}
	}
	return []Constraint{c}
}

// coincidentOrDrop builds a Coincident(p1,p2) constraint, or drops it
// (Coincident(p, p) is trivially satisfied and contributes nothing) when
// p1 == p2 — the case a degenerate zero-length line's two endpoints
// always produce.
func coincidentOrDrop(p1, p2 int) []Constraint {
	if p1 == p2 {
		return nil
	}
	return []Constraint{CoincidentC(p1, p2)}
}
