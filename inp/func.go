// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// FuncData holds function definition
type FuncData struct {
	Name string     `yaml:"name"` // name of function. ex: zero, load, myfunction1, etc.
	Type string     `yaml:"type"` // type of function. ex: cte, rmp, lin, pts
	Prms dbf.Params `yaml:"prms"` // parameters
}

// FuncsData holds functions
type FuncsData []*FuncData

// Get returns function by name
//  Note: "zero" and "none" return the zero function
func (o FuncsData) Get(name string) (fcn dbf.T, err error) {
	if name == "zero" || name == "none" {
		return &dbf.Zero, nil
	}
	for _, f := range o {
		if f.Name == name {
			defer func() {
				if r := recover(); r != nil {
					fcn, err = nil, chk.Err("cannot get function named %q because of the following error:\n%v", name, r)
				}
			}()
			fcn = dbf.New(f.Type, f.Prms)
			return
		}
	}
	return nil, chk.Err("cannot find function named %q", name)
}

// check checks that all names are unique and that all functions can be allocated
func (o FuncsData) check() (err error) {
	names := make(map[string]bool)
	for _, f := range o {
		if f.Name == "" || f.Name == "zero" || f.Name == "none" {
			return chk.Err("function name %q is invalid", f.Name)
		}
		if names[f.Name] {
			return chk.Err("function named %q is defined more than once", f.Name)
		}
		names[f.Name] = true
		if _, err = o.Get(f.Name); err != nil {
			return
		}
	}
	return
}

// String prints one function
func (o FuncData) String() string {
	return io.Sf("{name:%q type:%q prms:%v}", o.Name, o.Type, o.Prms)
}
