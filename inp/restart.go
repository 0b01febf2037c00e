// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"gopkg.in/yaml.v3"
)

// RestartControl holds time control values redefined by a restart file
//  Note: nil means "keep value stored in archive"
type RestartControl struct {
	NSteps     *int
	Tf         *float64
	Dt         *float64
	MaxRetries *int
	OptIter    *int
	DtMin      *float64
	PlotLevel  *PlotLevel
	AutoStep   bool // time_stepper was given
}

// Restart holds data read from a restart file
type Restart struct {
	Version string          // file version; empty if the argument was an archive
	Archive string          // path of binary archive
	Control *RestartControl // new time control; may be nil
}

// ReadRestart reads a restart file
//  Note: files with extension .dmp or without extension are archives
func ReadRestart(fn string) (o *Restart, err error) {
	ext := filepath.Ext(fn)
	if ext == "" || ext == ".dmp" {
		return &Restart{Archive: fn}, nil
	}
	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, chk.Err("cannot read restart file %q", fn)
	}
	o, err = ParseRestart(b, fn)
	if err != nil {
		return
	}
	if !filepath.IsAbs(o.Archive) {
		o.Archive = filepath.Join(filepath.Dir(fn), o.Archive)
	}
	return
}

// ParseRestart parses the contents of a restart file
//  Note: unknown keys and invalid values are reported with their line number
func ParseRestart(b []byte, fn string) (o *Restart, err error) {

	// document
	var doc yaml.Node
	if err = yaml.Unmarshal(b, &doc); err != nil {
		return nil, chk.Err("%s: %v", fn, err)
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, chk.Err("%s:%d: restart file must be a mapping", fn, doc.Line)
	}
	root := doc.Content[0]

	// keys
	o = new(Restart)
	for i := 0; i < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		switch key.Value {
		case "version":
			o.Version = val.Value
			if o.Version != "1.0" && o.Version != "2.0" {
				return nil, chk.Err("%s:%d: unsupported version %q", fn, val.Line, o.Version)
			}
		case "archive":
			if val.Kind != yaml.ScalarNode || val.Value == "" {
				return nil, chk.Err("%s:%d: archive must be a file name", fn, val.Line)
			}
			o.Archive = val.Value
		case "control":
			if o.Archive == "" {
				return nil, chk.Err("%s:%d: archive must come first", fn, key.Line)
			}
			if o.Control, err = parseRestartControl(val, fn); err != nil {
				return nil, err
			}
		default:
			return nil, chk.Err("%s:%d: invalid tag %q", fn, key.Line, key.Value)
		}
	}
	if o.Version == "" {
		return nil, chk.Err("%s: version is missing", fn)
	}
	if o.Archive == "" {
		return nil, chk.Err("%s: archive is missing", fn)
	}
	return
}

// parseRestartControl parses the control section
func parseRestartControl(node *yaml.Node, fn string) (c *RestartControl, err error) {
	if node.Kind != yaml.MappingNode {
		return nil, chk.Err("%s:%d: control must be a mapping", fn, node.Line)
	}
	c = new(RestartControl)
	decode := func(n *yaml.Node, v interface{}) error {
		if e := n.Decode(v); e != nil {
			return chk.Err("%s:%d: invalid value %q", fn, n.Line, n.Value)
		}
		return nil
	}
	for i := 0; i < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "time_steps":
			c.NSteps = new(int)
			err = decode(val, c.NSteps)
		case "final_time":
			c.Tf = new(float64)
			err = decode(val, c.Tf)
		case "step_size":
			c.Dt = new(float64)
			err = decode(val, c.Dt)
		case "plot_level":
			var lvl PlotLevel
			if lvl, err = ParsePlotLevel(val.Value); err != nil {
				return nil, chk.Err("%s:%d: %v", fn, val.Line, err)
			}
			c.PlotLevel = &lvl
		case "time_stepper":
			if val.Kind != yaml.MappingNode {
				return nil, chk.Err("%s:%d: time_stepper must be a mapping", fn, val.Line)
			}
			c.AutoStep = true
			for j := 0; j < len(val.Content) && err == nil; j += 2 {
				k, v := val.Content[j], val.Content[j+1]
				switch k.Value {
				case "max_retries":
					c.MaxRetries = new(int)
					err = decode(v, c.MaxRetries)
				case "opt_iter":
					c.OptIter = new(int)
					err = decode(v, c.OptIter)
				case "dtmin":
					c.DtMin = new(float64)
					err = decode(v, c.DtMin)
				default:
					return nil, chk.Err("%s:%d: invalid tag %q", fn, k.Line, k.Value)
				}
			}
		default:
			return nil, chk.Err("%s:%d: invalid tag %q", fn, key.Line, key.Value)
		}
		if err != nil {
			return nil, err
		}
	}
	return
}

// ApplyTo sets the redefined values into time control data
//  Note: a time_stepper section switches the automatic time stepping on
func (o *RestartControl) ApplyTo(c *ControlData) {
	if o == nil {
		return
	}
	if o.NSteps != nil {
		c.NSteps = *o.NSteps
	}
	if o.Tf != nil {
		c.Tf = *o.Tf
	}
	if o.Dt != nil {
		c.Dt = *o.Dt
	}
	if o.AutoStep {
		c.Stepper.Auto = true
	}
	if o.MaxRetries != nil {
		c.Stepper.MaxRetries = *o.MaxRetries
	}
	if o.OptIter != nil {
		c.Stepper.OptIter = *o.OptIter
	}
	if o.DtMin != nil {
		c.Stepper.DtMin = *o.DtMin
	}
	if o.PlotLevel != nil {
		c.PlotLevel = *o.PlotLevel
	}
}
