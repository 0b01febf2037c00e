// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/nlfem/fem"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

const plate = `
data: {dirout: /tmp/nlfem/out01}
materials:
  - name: rubber
    model: neo-hookean
    prms: [ {n: E, v: 1000}, {n: nu, v: 0.3}, {n: rho, v: 2} ]
functions:
  - {name: down, type: lin, prms: [ {n: m, v: -0.05} ]}
mesh:
  box: {nx: 1, ny: 1, nz: 1, lx: 1, ly: 1, lz: 1}
regions:
  - {tag: -1, type: solid, mat: rubber}
bcs:
  - {type: fixed, tag: -5, keys: [ux, uy, uz]}
rigid:
  - name: plate
    tag: -6
    bcs:
      - {type: fixed, keys: [rx, ry, rz]}
      - {type: prescribed, keys: [uz], fcn: down}
linsol: {name: dense}
solver: {dtol: 1e-9, etol: 1e-12, lstol: 0}
control: {time_steps: 5, final_time: 1}
`

// runPlate runs the simulation and returns the path of the simulation file
func runPlate(tst *testing.T) string {
	dir := "/tmp/nlfem/out01_input"
	if err := os.MkdirAll(dir, 0777); err != nil {
		tst.Fatalf("cannot create directory:\n%v", err)
	}
	fn := filepath.Join(dir, "out01.sim")
	if err := os.WriteFile(fn, []byte(plate), 0644); err != nil {
		tst.Fatalf("cannot write simulation file:\n%v", err)
	}
	m, err := fem.ReadModel(fn, "", true)
	if err != nil {
		tst.Fatalf("ReadModel failed:\n%v", err)
	}
	if err = m.Run(); err != nil {
		tst.Fatalf("Run failed:\n%v", err)
	}
	return fn
}

func Test_out01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("out01. time and space series")

	r, err := Start(runPlate(tst), "")
	if err != nil {
		tst.Errorf("Start failed:\n%v", err)
		return
	}

	// define entities
	for _, def := range []struct {
		alias string
		loc   Locator
	}{
		{"plate", R{"plate"}},
		{"top", N{-6}},
		{"A", At{1, 1, 1}},
		{"B", Near{0.1, 0.1, 0.1}},
		{"axis", AlongZ{0, 0}},
	} {
		if err = r.Define(def.alias, def.loc); err != nil {
			tst.Errorf("Define %q failed:\n%v", def.alias, err)
			return
		}
	}
	if err = r.Define("centre", At{0.5, 0.5, 0.5}); err == nil {
		tst.Errorf("there is no node at the centre of the cube\n")
	}
	if err = r.Define("none", R{"wall"}); err == nil {
		tst.Errorf("there is no rigid body named wall\n")
	}

	// load results
	if err = r.LoadResults(nil); err != nil {
		tst.Errorf("LoadResults failed:\n%v", err)
		return
	}
	chk.Array(tst, "times", 1e-14, r.Times, []float64{0, 0.2, 0.4, 0.6, 0.8, 1})

	// time series
	uz, err := r.GetRes("uz", "plate", 0)
	if err != nil {
		tst.Errorf("GetRes failed:\n%v", err)
		return
	}
	chk.Array(tst, "uz of plate", 1e-14, uz, []float64{0, -0.01, -0.02, -0.03, -0.04, -0.05})
	fz, _ := r.GetRes("fz", "plate", 0)
	if fz[len(fz)-1] >= 0 {
		tst.Errorf("plate should push the cube down: fz=%v\n", fz)
	}
	uzA, _ := r.GetRes("uz", "A", 0)
	chk.Float64(tst, "uz of A", 1e-14, uzA[5], -0.05)
	uzB, _ := r.GetRes("uz", "B", 0)
	chk.Array(tst, "uz of B", 1e-15, uzB, make([]float64, 6))
	if _, err = r.GetRes("p", "A", 0); err == nil {
		tst.Errorf("solid model has no pressures\n")
	}

	// space series
	chk.Int(tst, "number of top nodes", len(r.GetIds("top")), 4)
	uzTop, _ := r.GetRes("uz", "top", -1)
	chk.Array(tst, "uz of top", 1e-14, uzTop, []float64{-0.05, -0.05, -0.05, -0.05})
	chk.Array(tst, "dist along axis", 1e-15, r.GetDist("axis"), []float64{0, 1})
	uzAxis, _ := r.GetRes("uz", "axis", -1)
	chk.Array(tst, "uz along axis", 1e-14, uzAxis, []float64{0, -0.05})
	area, err := r.Integrate("uz", "axis", "z", -1)
	if err != nil {
		tst.Errorf("Integrate failed:\n%v", err)
		return
	}
	chk.Float64(tst, "∫uz dz", 1e-14, area, -0.025)

	// closest vertex
	vid, _ := r.Closest([]float64{0.1, 0.1, 0.9})
	chk.Array(tst, "closest", 1e-15, r.X[vid], []float64{0, 0, 1})
}

func Test_out02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("out02. plotting")

	r, err := Start(runPlate(tst), "")
	if err != nil {
		tst.Errorf("Start failed:\n%v", err)
		return
	}
	r.Define("plate", R{"plate"})
	r.Define("A B", N{3, 7})
	if err = r.LoadResults([]float64{0, 0.4, -1}); err != nil {
		tst.Errorf("LoadResults failed:\n%v", err)
		return
	}
	chk.Ints(tst, "time indices", r.TimeInds, []int{0, 2, 5})

	r.Splot("plate")
	if err = r.Plot("t", "uz", "plate", -1); err != nil {
		tst.Errorf("Plot failed:\n%v", err)
		return
	}
	r.Splot("nodes")
	r.Plot("t", "uz", "A", -1)
	r.Plot("t", "uz", "B", -1)
	if err = r.Plot("t", []float64{1, 2}, "bad", -1); err == nil {
		tst.Errorf("series with different lengths cannot be plotted\n")
	}
	txt := r.Draw()
	io.Pf("%s", txt)
	if !strings.Contains(txt, "plate: uz vs t") {
		tst.Errorf("caption of first plot is missing:\n%s", txt)
	}
	if !strings.Contains(txt, "nodes: uz vs t") {
		tst.Errorf("caption of second plot is missing:\n%s", txt)
	}
}

func Test_out03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("out03. resampling")

	y := Resample([]float64{0, 1, 3}, []float64{0, 2, 0}, 4)
	chk.Array(tst, "y", 1e-15, y, []float64{0, 2, 1, 0})

	// unsorted
	y = Resample([]float64{3, 0, 1}, []float64{0, 0, 2}, 4)
	chk.Array(tst, "y", 1e-15, y, []float64{0, 2, 1, 0})
}
