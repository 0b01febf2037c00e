// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msolid implements models for solids undergoing large deformations
package msolid

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/tsr"
)

// Model defines solid models. Models are shared by all integration points (and goroutines);
// thus, all data depending on the material point must be kept in State
type Model interface {
	Init(prms dbf.Params) (err error)     // initialises model
	GetPrms() dbf.Params                  // gets (an example) of parameters
	Density() float64                     // returns the reference density ρ0
	Stress(s *State) *tsr.Tensor2         // computes the Cauchy stress σ
	Tangent(s *State) *tsr.Tensor4        // computes the spatial elasticity tensor c
	StrainEnergyDensity(s *State) float64 // computes the strain energy per unit reference volume
}

// Updater is implemented by models requiring an update that may fail; e.g. models running an
// embedded solution at each material point
type Updater interface {
	Update(s *State) (err error)
}

// Symmetric is implemented by models that may request symmetrisation of coupled matrices
type Symmetric interface {
	Symm() bool
}

// allocators holds all available models
var allocators = make(map[string]func() Model)

// New allocates and initialises a model
//  Note: errors and panics from the parameters database are returned as errors
func New(name string, prms dbf.Params) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("cannot find solid model named %q. available: %v", name, Names())
	}
	defer func() {
		if r := recover(); r != nil {
			err = chk.Err("cannot initialise solid model %q: %v", name, r)
		}
	}()
	model = allocator()
	err = model.Init(prms)
	return
}

// Names returns the sorted names of all models
func Names() (names []string) {
	for name := range allocators {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// LogModel prints model parameters
func LogModel(name string, m Model) {
	if m == nil {
		return
	}
	io.Pf("%s: %v\n", name, m.GetPrms())
}

// lameFromPrms reads Lamé constants either from {E, nu} or from {lam, mu}
func lameFromPrms(prms dbf.Params) (λ, μ float64, err error) {
	if prms.Find("lam") != nil || prms.Find("mu") != nil {
		λ = prms.GetValueOrDefault("lam", 0)
		μ = prms.GetValueOrDefault("mu", 0)
		if μ <= 0 {
			return 0, 0, chk.Err("shear modulus must be positive. mu = %g is invalid", μ)
		}
		return
	}
	E := prms.GetValueOrDefault("E", 0)
	ν := prms.GetValueOrDefault("nu", 0)
	if E <= 0 {
		return 0, 0, chk.Err("Young's modulus must be positive. E = %g is invalid", E)
	}
	if ν <= -1 || ν >= 0.5 {
		return 0, 0, chk.Err("Poisson's coefficient must be in (-1, 0.5). nu = %g is invalid", ν)
	}
	λ = E * ν / ((1.0 + ν) * (1.0 - 2.0*ν))
	μ = E / (2.0 * (1.0 + ν))
	return
}
