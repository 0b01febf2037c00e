// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/tsr"
)

// NeoHookean implements a compressible neo-Hookean model
//  W = μ/2 (I1 - 3) - μ lnJ + λ/2 (lnJ)²
//  σ = μ/J (b - I) + λ lnJ / J I
//  c = λ/J I⊗I + 2 (μ - λ lnJ) / J 𝕀
type NeoHookean struct {
	λ   float64 // Lamé's first parameter
	μ   float64 // shear modulus
	Rho float64 // reference density
}

// add model to factory
func init() {
	allocators["neo-hookean"] = func() Model { return new(NeoHookean) }
}

// Init initialises model
func (o *NeoHookean) Init(prms dbf.Params) (err error) {
	o.λ, o.μ, err = lameFromPrms(prms)
	if err != nil {
		return
	}
	o.Rho = prms.GetValueOrDefault("rho", 1)
	return
}

// GetPrms gets (an example) of parameters
func (o NeoHookean) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "E", V: 1000},
		&dbf.P{N: "nu", V: 0.3},
		&dbf.P{N: "rho", V: 1},
	}
}

// Density returns the reference density
func (o NeoHookean) Density() float64 { return o.Rho }

// Lame returns the Lamé constants
func (o NeoHookean) Lame() (λ, μ float64) { return o.λ, o.μ }

// Stress computes the Cauchy stress
func (o NeoHookean) Stress(s *State) *tsr.Tensor2 {
	J := s.J
	lnJ := math.Log(J)
	b := LeftCauchyGreen(s.F)
	σ := tsr.NewTensor2(true, false)
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			σ.Set(i, j, (o.μ*(b[i][j]-Kdelta(i, j))+o.λ*lnJ*Kdelta(i, j))/J)
		}
	}
	return σ
}

// Tangent computes the spatial elasticity tensor
func (o NeoHookean) Tangent(s *State) *tsr.Tensor4 {
	J := s.J
	lnJ := math.Log(J)
	c := tsr.NewTensor4(true, false)
	setIsoTangent(c, o.λ/J, (o.μ-o.λ*lnJ)/J)
	return c
}

// StrainEnergyDensity computes the strain energy per unit reference volume
func (o NeoHookean) StrainEnergyDensity(s *State) float64 {
	lnJ := math.Log(s.J)
	b := LeftCauchyGreen(s.F)
	I1 := b[0][0] + b[1][1] + b[2][2]
	return o.μ*(I1-3.0)/2.0 - o.μ*lnJ + o.λ*lnJ*lnJ/2.0
}
