// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/nlfem/shp"
)

// stretched returns a state under uniaxial stretch F = diag(λ, 1, 1)
func stretched(λ float64) *State {
	s := NewState()
	s.SetF([][]float64{{λ, 0, 0}, {0, 1, 0}, {0, 0, 1}})
	return s
}

func Test_models01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("models01")

	E, ν := 1000.0, 0.25
	λ := E * ν / ((1.0 + ν) * (1.0 - 2.0*ν))
	μ := E / (2.0 * (1.0 + ν))
	prms := dbf.Params{&dbf.P{N: "E", V: E}, &dbf.P{N: "nu", V: ν}, &dbf.P{N: "rho", V: 2}}

	for _, name := range []string{"neo-hookean", "st-venant"} {
		io.Pfyel("\n%s\n", name)
		m, err := New(name, prms)
		if err != nil {
			tst.Errorf("%v\n", err)
			return
		}
		chk.Float64(tst, "ρ", 1e-17, m.Density(), 2)

		// undeformed: zero stress and linear elastic tangent
		s := NewState()
		σ := m.Stress(s)
		c := m.Tangent(s)
		chk.Float64(tst, "W", 1e-17, m.StrainEnergyDensity(s), 0)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				chk.Float64(tst, "σij", 1e-13, σ.Get(i, j), 0)
				for k := 0; k < 3; k++ {
					for l := 0; l < 3; l++ {
						cijkl := λ*Kdelta(i, j)*Kdelta(k, l) + 2.0*μ*Isym(i, j, k, l)
						chk.Float64(tst, io.Sf("c%d%d%d%d", i, j, k, l), 1e-12, c.Get(i, j, k, l), cijkl)
					}
				}
			}
		}

		// uniaxial stretch: consistency between energy, stress and tangent
		for _, λs := range []float64{0.8, 1.1, 1.5} {
			s = stretched(λs)
			J := s.J
			σ = m.Stress(s)
			c = m.Tangent(s)

			// dW/dλ = P11 = J σ11 / λ
			dWdλ := shp.DerivCen5(λs, 1e-3, func(x float64) float64 {
				return m.StrainEnergyDensity(stretched(x))
			})
			chk.AnaNum(tst, "dW/dλ   ", 1e-7, J*σ.Get(0, 0)/λs, dWdλ, chk.Verbose)

			// dτ11/dλ = (J c1111 + 2 τ11) / λ  with  τ = J σ
			dτ11dλ := shp.DerivCen5(λs, 1e-3, func(x float64) float64 {
				t := stretched(x)
				return t.J * m.Stress(t).Get(0, 0)
			})
			chk.AnaNum(tst, "dτ11/dλ ", 1e-7, (J*c.Get(0, 0, 0, 0)+2.0*J*σ.Get(0, 0))/λs, dτ11dλ, chk.Verbose)

			// dτ22/dλ = J c2211 / λ
			dτ22dλ := shp.DerivCen5(λs, 1e-3, func(x float64) float64 {
				t := stretched(x)
				return t.J * m.Stress(t).Get(1, 1)
			})
			chk.AnaNum(tst, "dτ22/dλ ", 1e-7, J*c.Get(1, 1, 0, 0)/λs, dτ22dλ, chk.Verbose)
		}
	}
}

func Test_models02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("models02")

	// lam and mu given directly
	m, err := New("neo-hookean", dbf.Params{&dbf.P{N: "lam", V: 3}, &dbf.P{N: "mu", V: 2}})
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	λ, μ := m.(*NeoHookean).Lame()
	chk.Float64(tst, "λ", 1e-17, λ, 3)
	chk.Float64(tst, "μ", 1e-17, μ, 2)
	chk.Float64(tst, "ρ", 1e-17, m.Density(), 1)

	// errors
	if _, err = New("unknown", nil); err == nil {
		tst.Errorf("unknown model should fail\n")
	}
	if _, err = New("st-venant", dbf.Params{&dbf.P{N: "E", V: 1}, &dbf.P{N: "nu", V: 0.5}}); err == nil {
		tst.Errorf("nu = 0.5 should fail\n")
	}
	if _, err = New("st-venant", dbf.Params{&dbf.P{N: "mu", V: -1}}); err == nil {
		tst.Errorf("negative mu should fail\n")
	}
	chk.Strings(tst, "names", Names(), []string{"neo-hookean", "st-venant"})
}
