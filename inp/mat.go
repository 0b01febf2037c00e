// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/nlfem/mporous"
	"github.com/cpmech/nlfem/msolid"
)

// Material holds material data
type Material struct {

	// input
	Name  string     `yaml:"name"`  // name of material
	Type  string     `yaml:"type"`  // type of material; "solid" or "porous"
	Model string     `yaml:"model"` // name of solid model; e.g. "neo-hookean"
	Prms  dbf.Params `yaml:"prms"`  // all model parameters for this material

	// derived
	Solid  msolid.Model   `yaml:"-"` // pointer to actual solid model
	Porous *mporous.Model `yaml:"-"` // pointer to actual porous model
}

// MatsData holds materials
type MatsData []*Material

// Get returns material by name or nil
func (o MatsData) Get(name string) *Material {
	for _, m := range o {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// alloc allocates and initialises all models
func (o MatsData) alloc() (err error) {
	names := make(map[string]bool)
	for _, m := range o {
		if names[m.Name] {
			return chk.Err("material named %q is defined more than once", m.Name)
		}
		names[m.Name] = true
		switch m.Type {
		case "", "solid":
			m.Type = "solid"
			m.Solid, err = msolid.New(m.Model, m.Prms)
		case "porous":
			m.Porous, err = mporous.New(m.Prms)
		default:
			err = chk.Err("material type %q is incorrect; options are \"solid\" and \"porous\"", m.Type)
		}
		if err != nil {
			return chk.Err("material %q: %v", m.Name, err)
		}
	}
	return
}
