// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lm

import "gopkg.in/yaml.v3"

// optionsDoc is the YAML-shaped mirror of Options. Logger is deliberately
// excluded: it carries an io.Writer and has no serializable form, so a
// round-tripped Options always comes back with a nil Logger.
type optionsDoc struct {
	MaxIters   int     `yaml:"max_iters"`
	Atol       float64 `yaml:"atol"`
	Rtol       float64 `yaml:"rtol"`
	Gtol       float64 `yaml:"gtol"`
	StepTol    float64 `yaml:"step_tol"`
	LambdaInit float64 `yaml:"lambda_init"`
	LambdaMin  float64 `yaml:"lambda_min"`
	LambdaMax  float64 `yaml:"lambda_max"`
	QROrdering string  `yaml:"qr_ordering,omitempty"`
}

// MarshalYAML implements yaml.Marshaler, letting a caller persist tuning
// knobs (tolerances, damping bounds) as part of a larger document without
// this package depending on that document's shape.
func (o Options) MarshalYAML() (any, error) {
	return optionsDoc{
		MaxIters:   o.MaxIters,
		Atol:       o.Atol,
		Rtol:       o.Rtol,
		Gtol:       o.Gtol,
		StepTol:    o.StepTol,
		LambdaInit: o.LambdaInit,
		LambdaMin:  o.LambdaMin,
		LambdaMax:  o.LambdaMax,
		QROrdering: o.QROrdering,
	}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler. Fields absent from the
// document keep DefaultOptions' value rather than zeroing out.
func (o *Options) UnmarshalYAML(value *yaml.Node) error {
	def := DefaultOptions()
	doc := optionsDoc{
		MaxIters:   def.MaxIters,
		Atol:       def.Atol,
		Rtol:       def.Rtol,
		Gtol:       def.Gtol,
		StepTol:    def.StepTol,
		LambdaInit: def.LambdaInit,
		LambdaMin:  def.LambdaMin,
		LambdaMax:  def.LambdaMax,
	}

	if err := value.Decode(&doc); err != nil {
		return err
	}

	o.MaxIters = doc.MaxIters
	o.Atol, o.Rtol, o.Gtol, o.StepTol = doc.Atol, doc.Rtol, doc.Gtol, doc.StepTol
	o.LambdaInit, o.LambdaMin, o.LambdaMax = doc.LambdaInit, doc.LambdaMin, doc.LambdaMax
	o.QROrdering = doc.QROrdering
	return nil
}
