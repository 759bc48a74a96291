// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

import (
	"math"
	"testing"

	"github.com/sketchsolver/core/numdiff"
)

// checkJacobian verifies Compile's analytic Jacobian against a central
// finite-difference approximation at x, for every shape/constraint set.
func checkJacobian(t *testing.T, points int, shapes []Shape, constraints []Constraint, x []float64) {
	t.Helper()

	problem, err := Compile(points, shapes, constraints)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	m, n := problem.M, problem.N
	analytic := make([]float64, problem.Pattern.NNZ())
	problem.J(x, analytic)

	dense := make([]float64, m*n)
	for c := 0; c < n; c++ {
		for k := problem.Pattern.ColPtr[c]; k < problem.Pattern.ColPtr[c+1]; k++ {
			row := problem.Pattern.RowVal[k]
			dense[row*n+c] = analytic[k]
		}
	}

	approx := numdiff.ApproxSpec{
		N:      n,
		M:      m,
		Method: numdiff.Central,
		Object: problem.R,
	}
	x0 := append([]float64(nil), x...)
	numeric := make([]float64, m*n)
	if err := approx.Diff(x0, numeric); err != nil {
		t.Fatalf("numdiff: %v", err)
	}

	for i := range dense {
		if math.Abs(dense[i]-numeric[i]) > 1e-5 {
			t.Fatalf("jacobian mismatch at %d: analytic=%v numeric=%v", i, dense[i], numeric[i])
		}
	}
}

func TestJacobianFixedPoint(t *testing.T) {
	checkJacobian(t, 1, nil, []Constraint{FixedPointC(1, 3, 4)}, []float64{1, 2})
}

func TestJacobianCoincident(t *testing.T) {
	checkJacobian(t, 2, nil, []Constraint{CoincidentC(1, 2)}, []float64{1, 2, 3, 4})
}

func TestJacobianHorizontal(t *testing.T) {
	shapes := []Shape{Line(1, 2)}
	checkJacobian(t, 2, shapes, []Constraint{HorizontalC(0)}, []float64{1, 2, 5, 2.3})
}

func TestJacobianVertical(t *testing.T) {
	shapes := []Shape{Line(1, 2)}
	checkJacobian(t, 2, shapes, []Constraint{VerticalC(0)}, []float64{1, 2, 1.1, 9})
}

func TestJacobianParallel(t *testing.T) {
	shapes := []Shape{Line(1, 2), Line(3, 4)}
	checkJacobian(t, 4, shapes, []Constraint{ParallelC(0, 1)},
		[]float64{0, 0, 2, 1, 5, 5, 8, 6.5})
}

func TestJacobianDistance(t *testing.T) {
	checkJacobian(t, 2, nil, []Constraint{DistanceC(1, 2, 5)}, []float64{0, 0, 3, 4})
}

func TestJacobianDiameter(t *testing.T) {
	shapes := []Shape{Circle(1, 2)}
	checkJacobian(t, 2, shapes, []Constraint{DiameterC(0, 10)}, []float64{0, 0, 4, 3})
}

func TestJacobianNormal(t *testing.T) {
	shapes := []Shape{Circle(1, 2), Line(3, 4)}
	checkJacobian(t, 4, shapes, []Constraint{NormalC(0, 1)},
		[]float64{0, 0, 4, 3, 1, -1, 2, -3})
}

func TestJacobianCircleCoincident(t *testing.T) {
	shapes := []Shape{Circle(1, 2)}
	checkJacobian(t, 3, shapes, []Constraint{CircleCoincidentC(0, 3)},
		[]float64{0, 0, 4, 3, -3, 4})
}
