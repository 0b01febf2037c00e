// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mporous

import (
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

func Test_mdl01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mdl01")

	mdl, err := New(dbf.Params{&dbf.P{N: "k", V: 2}, &dbf.P{N: "d", V: 0.5}, &dbf.P{N: "bsymm", V: 1}})
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	mdl.Log("mat")
	if !mdl.Symm() {
		tst.Errorf("bsymm flag should be set\n")
	}

	gradp := []float64{1, -2, 3}
	gradc := []float64{0.5, 0, -1}
	w := make([]float64, 3)
	j := make([]float64, 3)
	mdl.Flux(w, gradp)
	mdl.SoluteFlux(j, 0.1, gradc, gradp)
	chk.Array(tst, "w", 1e-17, w, []float64{-2, 4, -6})
	chk.Array(tst, "j", 1e-15, j, []float64{-0.25 - 0.2, 0.4, 0.5 - 0.6})

	// errors
	if _, err = New(dbf.Params{&dbf.P{N: "d", V: 1}}); err == nil {
		tst.Errorf("missing k should fail\n")
	}
	if _, err = New(dbf.Params{&dbf.P{N: "k", V: 1}, &dbf.P{N: "d", V: -1}}); err == nil {
		tst.Errorf("negative d should fail\n")
	}
	if _, err = New(dbf.Params{&dbf.P{N: "k", V: 1}, &dbf.P{N: "kx", V: 1}}); err == nil {
		tst.Errorf("unknown parameter should fail\n")
	}
	if _, err = New(mdl.GetPrms()); err != nil {
		tst.Errorf("example parameters should work: %v\n", err)
	}
}

func Test_states01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("states01")

	p := NewPoroState()
	c := NewSoluteState()
	p.P, c.C = 1, 2
	p.Backup()
	c.Backup()

	p.P, p.GradP[1] = 10, 3
	c.C, c.GradC[2] = 20, 4
	p.Restore()
	c.Restore()
	chk.Float64(tst, "p", 1e-17, p.P, 1)
	chk.Float64(tst, "∇p", 1e-17, p.GradP[1], 0)
	chk.Float64(tst, "c", 1e-17, c.C, 2)
	chk.Float64(tst, "∇c", 1e-17, c.GradC[2], 0)

	c.Commit()
	chk.Float64(tst, "cp", 1e-17, c.Cp, 2)
}
