// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/tsr"
)

// StVenant implements the St.Venant-Kirchhoff model
//  S = λ tr(E) I + 2 μ E
//  σ = 1/J F⋅S⋅Fᵀ
//  cijkl = 1/J FiI FjJ FkK FlL CIJKL  with  C = λ I⊗I + 2 μ 𝕀
type StVenant struct {
	λ   float64 // Lamé's first parameter
	μ   float64 // shear modulus
	Rho float64 // reference density
}

// add model to factory
func init() {
	allocators["st-venant"] = func() Model { return new(StVenant) }
}

// Init initialises model
func (o *StVenant) Init(prms dbf.Params) (err error) {
	o.λ, o.μ, err = lameFromPrms(prms)
	if err != nil {
		return
	}
	o.Rho = prms.GetValueOrDefault("rho", 1)
	return
}

// GetPrms gets (an example) of parameters
func (o StVenant) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "lam", V: 500},
		&dbf.P{N: "mu", V: 300},
		&dbf.P{N: "rho", V: 1},
	}
}

// Density returns the reference density
func (o StVenant) Density() float64 { return o.Rho }

// Stress computes the Cauchy stress
func (o StVenant) Stress(s *State) *tsr.Tensor2 {
	S := o.pk2(s)
	σ := tsr.NewTensor2(true, false)
	F := s.F
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			v := 0.0
			for I := 0; I < 3; I++ {
				for J := 0; J < 3; J++ {
					v += F[i][I] * S[I][J] * F[j][J]
				}
			}
			σ.Set(i, j, v/s.J)
		}
	}
	return σ
}

// Tangent computes the spatial elasticity tensor (push-forward of the material tangent)
func (o StVenant) Tangent(s *State) *tsr.Tensor4 {
	F := s.F
	b := LeftCauchyGreen(F)
	c := tsr.NewTensor4(true, false)

	// push-forward of λ I⊗I + 2μ 𝕀 gives λ b⊗b + μ (bik bjl + bil bjk)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				for l := 0; l < 3; l++ {
					v := o.λ*b[i][j]*b[k][l] + o.μ*(b[i][k]*b[j][l]+b[i][l]*b[j][k])
					c.Set(i, j, k, l, v/s.J)
				}
			}
		}
	}
	return c
}

// StrainEnergyDensity computes the strain energy per unit reference volume
func (o StVenant) StrainEnergyDensity(s *State) float64 {
	E := GreenLagrange(s.F)
	trE := E[0][0] + E[1][1] + E[2][2]
	EE := 0.0
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			EE += E[i][j] * E[i][j]
		}
	}
	return o.λ*trE*trE/2.0 + o.μ*EE
}

// pk2 computes the second Piola-Kirchhoff stress
func (o StVenant) pk2(s *State) (S [][]float64) {
	S = GreenLagrange(s.F)
	trE := S[0][0] + S[1][1] + S[2][2]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			S[i][j] *= 2.0 * o.μ
		}
		S[i][i] += o.λ * trE
	}
	return
}
