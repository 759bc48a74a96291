package main

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/sketchsolver/core/constraint"
	"github.com/sketchsolver/core/lm"
	"github.com/sketchsolver/core/sketch"
)

// scenarioDoc is the on-disk shape of a diagnostic scenario file: a flat
// point list, shapes over 1-based point indices, and constraints keyed by
// the same kind tags constraint.Kind.String() produces.
type scenarioDoc struct {
	Points []struct {
		X float64 `yaml:"x"`
		Y float64 `yaml:"y"`
	} `yaml:"points"`
	Shapes []struct {
		Kind   string `yaml:"kind"`
		Points []int  `yaml:"points"`
	} `yaml:"shapes"`
	Constraints []struct {
		Kind   string  `yaml:"kind"`
		Points []int   `yaml:"points"`
		Value  float64 `yaml:"value"`
		Y0     float64 `yaml:"y0"`
	} `yaml:"constraints"`
	Options yaml.Node `yaml:"options"`
}

// loadScenario parses doc into a ready-to-solve *sketch.Sketch plus the
// lm.Options to solve it with.
func loadScenario(doc []byte) (*sketch.Sketch, lm.Options, error) {
	var sc scenarioDoc
	if err := yaml.Unmarshal(doc, &sc); err != nil {
		return nil, lm.Options{}, fmt.Errorf("parse scenario: %w", err)
	}

	opts := lm.DefaultOptions()
	if sc.Options.Kind != 0 {
		if err := sc.Options.Decode(&opts); err != nil {
			return nil, lm.Options{}, fmt.Errorf("parse options: %w", err)
		}
	}

	s := sketch.New(nil)
	for _, p := range sc.Points {
		s.AddPoint(p.X, p.Y)
	}

	for _, sh := range sc.Shapes {
		shape, err := buildShape(sh.Kind, sh.Points)
		if err != nil {
			return nil, lm.Options{}, err
		}
		s.AddShape(shape)
	}

	for _, c := range sc.Constraints {
		con, err := buildConstraint(c.Kind, c.Points, c.Value, c.Y0)
		if err != nil {
			return nil, lm.Options{}, err
		}
		s.AddConstraint(con)
	}

	return s, opts, nil
}

func buildShape(kind string, p []int) (constraint.Shape, error) {
	switch kind {
	case "line":
		return constraint.Line(p[0], p[1]), nil
	case "circle":
		return constraint.Circle(p[0], p[1]), nil
	case "arc":
		return constraint.Arc(p[0], p[1], p[2]), nil
	default:
		return constraint.Shape{}, fmt.Errorf("unknown shape kind %q", kind)
	}
}

func buildConstraint(kind string, p []int, value, y0 float64) (constraint.Constraint, error) {
	switch kind {
	case "fixed_point":
		return constraint.FixedPointC(p[0], value, y0), nil
	case "coincident":
		return constraint.CoincidentC(p[0], p[1]), nil
	case "horizontal":
		return constraint.HorizontalC(p[0]), nil
	case "vertical":
		return constraint.VerticalC(p[0]), nil
	case "parallel":
		return constraint.ParallelC(p[0], p[1]), nil
	case "distance":
		return constraint.DistanceC(p[0], p[1], value), nil
	case "diameter":
		return constraint.DiameterC(p[0], value), nil
	case "normal":
		return constraint.NormalC(p[0], p[1]), nil
	case "circle_coincident":
		return constraint.CircleCoincidentC(p[0], p[1]), nil
	default:
		return constraint.Constraint{}, fmt.Errorf("unknown constraint kind %q", kind)
	}
}
