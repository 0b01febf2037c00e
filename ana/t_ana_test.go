// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_uniaxial01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("uniaxial01")

	var sol UniaxialNeoHookean
	sol.Init(dbf.Params{
		&dbf.P{N: "E", V: 1000},
		&dbf.P{N: "nu", V: 0.3},
	})
	chk.Float64(tst, "λ", 1e-12, sol.La, 1000*0.3/(1.3*0.4))
	chk.Float64(tst, "μ", 1e-12, sol.Mu, 1000/2.6)

	// no stretch
	λt, σ, P, err := sol.Stretch(1)
	if err != nil {
		tst.Errorf("Stretch failed: %v", err)
		return
	}
	chk.Float64(tst, "λt", 1e-14, λt, 1)
	chk.Float64(tst, "σ", 1e-12, σ, 0)
	chk.Float64(tst, "P", 1e-12, P, 0)

	// lateral stress must vanish
	for _, λx := range []float64{0.8, 1.05, 1.2} {
		λt, σ, P, err = sol.Stretch(λx)
		if err != nil {
			tst.Errorf("Stretch failed: %v", err)
			return
		}
		J := λx * λt * λt
		σt := (sol.Mu*(λt*λt-1) + sol.La*math.Log(J)) / J
		io.Pforan("λx=%g λt=%g σ=%g P=%g\n", λx, λt, σ, P)
		chk.Float64(tst, "σt", 1e-10, σt, 0)
		chk.Float64(tst, "P", 1e-12, P, σ*λt*λt)
		if (λx-1)*σ <= 0 {
			tst.Errorf("axial stress must have the sign of the stretch: λx=%g σ=%g", λx, σ)
		}
		if (λx-1)*(λt-1) >= 0 {
			tst.Errorf("lateral stretch must oppose the axial stretch: λx=%g λt=%g", λx, λt)
		}
	}

	// small strains: Young's modulus and Poisson's ratio
	ε := 1e-6
	λt, σ, _, _ = sol.Stretch(1 + ε)
	chk.Float64(tst, "E", 1e-2, σ/ε, 1000)
	chk.Float64(tst, "ν", 1e-5, -(λt-1)/ε, 0.3)

	// invalid
	if _, _, _, err = sol.Stretch(0); err == nil {
		tst.Errorf("Stretch should have failed with zero stretch")
	}
}

func Test_oscillator01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("oscillator01")

	o := Oscillator{K: 100, M: 1, F: 1}
	chk.Float64(tst, "ω", 1e-15, o.Omega(), 10)
	chk.Float64(tst, "dtcrit", 1e-15, o.CriticalDt(), 0.2)

	// exact
	T := 2 * math.Pi / o.Omega()
	u, v := o.Exact(T / 2)
	chk.Float64(tst, "u(T/2)", 1e-15, u, 0.02)
	chk.Float64(tst, "v(T/2)", 1e-14, v, 0)

	// first steps
	U, V := o.Discrete(0.01, 2)
	chk.Array(tst, "U", 1e-15, U, []float64{1e-4, 2.99e-4})
	chk.Array(tst, "V", 1e-15, V, []float64{0.01, 0.0199})

	// stable and unstable
	U, _ = o.Discrete(0.01, 1000)
	for i, u := range U {
		if math.Abs(u) > 0.021 {
			tst.Errorf("stable scheme diverged at step %d: u=%g", i, u)
			return
		}
	}
	U, _ = o.Discrete(0.25, 20)
	if math.Abs(U[19]) < 1 {
		tst.Errorf("scheme with dt > dtcrit should diverge: u=%g", U[19])
	}
}
