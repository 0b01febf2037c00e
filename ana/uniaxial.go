// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical solutions
package ana

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// UniaxialNeoHookean implements the homogeneous solution of a compressible neo-Hookean bar
// stretched along x with free lateral faces
//  σ = μ/J (b - I) + λ lnJ / J I
//  σyy = σzz = 0  =>  μ (λt² - 1) + λ ln(λx λt²) = 0
type UniaxialNeoHookean struct {
	E  float64 // Young's modulus
	Nu float64 // Poisson's coefficient
	La float64 // Lamé's first parameter
	Mu float64 // shear modulus
}

// Init initialises this structure
func (o *UniaxialNeoHookean) Init(prms dbf.Params) {
	o.E, o.Nu = 1000, 0.3
	for _, p := range prms {
		switch p.N {
		case "E":
			o.E = p.V
		case "nu":
			o.Nu = p.V
		}
	}
	o.La = o.E * o.Nu / ((1.0 + o.Nu) * (1.0 - 2.0*o.Nu))
	o.Mu = o.E / (2.0 * (1.0 + o.Nu))
}

// Stretch computes the lateral stretch λt, the axial Cauchy stress σ and the axial force P
// per unit of reference area corresponding to the axial stretch λx
func (o UniaxialNeoHookean) Stretch(λx float64) (λt, σ, P float64, err error) {
	if λx <= 0 {
		return 0, 0, 0, chk.Err("stretch must be positive. %g is invalid", λx)
	}

	// lateral stretch: Newton's method on r(λt) = μ (λt² - 1) + λ ln(λx λt²)
	λt = 1.0
	for it := 0; ; it++ {
		r := o.Mu*(λt*λt-1.0) + o.La*math.Log(λx*λt*λt)
		if math.Abs(r) < 1e-13*o.E {
			break
		}
		if it == 50 {
			return 0, 0, 0, chk.Err("lateral stretch did not converge: λx=%g residual=%g", λx, r)
		}
		drdλt := 2.0*o.Mu*λt + 2.0*o.La/λt
		λt -= r / drdλt
	}

	// stress
	J := λx * λt * λt
	σ = (o.Mu*(λx*λx-1.0) + o.La*math.Log(J)) / J
	P = σ * λt * λt
	return
}
