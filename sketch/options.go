// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sketch

import (
	"gopkg.in/yaml.v3"

	"github.com/sketchsolver/core/lm"
)

// LoadOptionsYAML parses a solver tuning document (max_iters, the
// tolerance knobs, the damping bounds) out of doc, starting from
// lm.DefaultOptions for any field the document omits. The Logger field is
// never populated from YAML; callers set it after loading, if at all.
func LoadOptionsYAML(doc []byte) (lm.Options, error) {
	opts := lm.DefaultOptions()
	if err := yaml.Unmarshal(doc, &opts); err != nil {
		return lm.Options{}, err
	}
	return opts, nil
}
