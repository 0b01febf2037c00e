// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"
	"gopkg.in/yaml.v3"
)

// PlotLevel defines when results are written
type PlotLevel int

// plot levels
const (
	PLOT_NEVER         PlotLevel = iota // never write results
	PLOT_MAJOR_ITRS                     // write at the end of each converged step
	PLOT_MINOR_ITRS                     // write at each Newton iteration
	PLOT_MUST_POINTS                    // write only at must-points
	PLOT_FINAL                          // write at the end of the run
	PLOT_STEP_FINAL                     // write at the end of the last step
	PLOT_AUGMENTATIONS                  // write after each augmentation
)

var plotLevelNames = []string{
	"PLOT_NEVER",
	"PLOT_MAJOR_ITRS",
	"PLOT_MINOR_ITRS",
	"PLOT_MUST_POINTS",
	"PLOT_FINAL",
	"PLOT_STEP_FINAL",
	"PLOT_AUGMENTATIONS",
}

// String returns the name of the plot level
func (o PlotLevel) String() string {
	if o < 0 || int(o) >= len(plotLevelNames) {
		return "PLOT_UNKNOWN"
	}
	return plotLevelNames[o]
}

// ParsePlotLevel returns the plot level corresponding to name
func ParsePlotLevel(name string) (lvl PlotLevel, err error) {
	for i, n := range plotLevelNames {
		if n == name {
			return PlotLevel(i), nil
		}
	}
	return PLOT_NEVER, chk.Err("invalid plot level %q", name)
}

// UnmarshalYAML decodes plot level names
func (o *PlotLevel) UnmarshalYAML(node *yaml.Node) (err error) {
	lvl, err := ParsePlotLevel(node.Value)
	if err != nil {
		return chk.Err("line %d: %v", node.Line, err)
	}
	*o = lvl
	return
}

// MarshalYAML encodes plot level names
func (o PlotLevel) MarshalYAML() (interface{}, error) {
	return o.String(), nil
}
