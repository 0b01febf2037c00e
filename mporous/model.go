// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mporous implements transport models for porous media saturated by a liquid carrying one solute
package mporous

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// Model holds the transport parameters of a biphasic-solute mixture
//  w = -k ∇p              (Darcy)
//  j = -d ∇c + c w        (Fick + advection)
type Model struct {
	K     float64 // isotropic hydraulic permeability
	D     float64 // isotropic solute diffusivity
	Bsymm bool    // request symmetrisation of coupled matrices
}

// New allocates and initialises a new model
func New(prms dbf.Params) (o *Model, err error) {
	o = new(Model)
	err = o.Init(prms)
	if err != nil {
		return nil, err
	}
	return
}

// Init initialises model
func (o *Model) Init(prms dbf.Params) (err error) {
	for _, p := range prms {
		switch p.N {
		case "k":
			o.K = p.V
		case "d":
			o.D = p.V
		case "bsymm":
			o.Bsymm = p.V > 0
		default:
			return chk.Err("porous model: parameter named %q is invalid", p.N)
		}
	}
	if o.K <= 0 {
		return chk.Err("porous model: permeability must be positive. k = %g is invalid", o.K)
	}
	if o.D < 0 {
		return chk.Err("porous model: diffusivity must be non-negative. d = %g is invalid", o.D)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o Model) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "k", V: 1e-3},
		&dbf.P{N: "d", V: 1e-4},
		&dbf.P{N: "bsymm", V: 0},
	}
}

// Symm tells whether coupled matrices should be symmetrised
func (o Model) Symm() bool { return o.Bsymm }

// Flux computes the liquid flux w = -k ∇p
func (o Model) Flux(w, gradp []float64) {
	for i := 0; i < len(w); i++ {
		w[i] = -o.K * gradp[i]
	}
}

// SoluteFlux computes the solute flux j = -d ∇c - c k ∇p
func (o Model) SoluteFlux(j []float64, c float64, gradc, gradp []float64) {
	for i := 0; i < len(j); i++ {
		j[i] = -o.D*gradc[i] - c*o.K*gradp[i]
	}
}

// Log prints model parameters
func (o Model) Log(name string) {
	io.Pf("%s: k=%g d=%g bsymm=%v\n", name, o.K, o.D, o.Bsymm)
}
