// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

const sim01 = `
data:
  desc: column under compression
  dirout: /tmp/nlfem/sim01
functions:
  - name: load
    type: lin
    prms: [ {n: m, v: 2} ]
materials:
  - name: rubber
    model: neo-hookean
    prms: [ {n: E, v: 1000}, {n: nu, v: 0.3}, {n: rho, v: 2} ]
  - name: gel
    type: porous
    prms: [ {n: k, v: 0.01}, {n: d, v: 0.001} ]
mesh:
  box: {nx: 2, ny: 1, nz: 3, lx: 2, ly: 1, lz: 3}
regions:
  - {tag: -1, type: upc, mat: rubber, poro: gel}
bcs:
  - {type: fixed, tag: -5, keys: [ux, uy, uz]}
  - {type: prescribed, tag: -6, keys: [p], fcn: load, scale: 0.5}
rigid:
  - name: plate
    tag: -6
    bcs:
      - {type: fixed, keys: [rx, ry, rz]}
      - {type: prescribed, keys: [uz], fcn: load, scale: -0.01}
solver:
  etol: 0.001
  reform_each: 0
linsol:
  name: schur
  schur: {a_solver: lu, schur_solver: fgmres, precond: diagonal_mass}
control:
  time_steps: 10
  final_time: 1
  plot_level: PLOT_MUST_POINTS
  must_points: [0.5, 1]
`

func Test_sim01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim01")

	sim, err := ParseSim([]byte(sim01), ".", "sim01")
	if err != nil {
		tst.Errorf("ParseSim failed:\n%v", err)
		return
	}

	// data
	chk.String(tst, sim.Data.Desc, "column under compression")
	chk.String(tst, sim.DirOut, "/tmp/nlfem/sim01")
	chk.String(tst, sim.Data.Encoder, "yaml")
	if !sim.HasUpc {
		tst.Errorf("HasUpc should be true\n")
	}

	// functions
	fcn, err := sim.Functions.Get("load")
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	chk.Float64(tst, "load(0.25)", 1e-15, fcn.F(0.25, nil), 0.5)
	zero, _ := sim.Functions.Get("zero")
	chk.Float64(tst, "zero(1)", 1e-15, zero.F(1, nil), 0)

	// materials and regions
	reg := sim.Regions[0]
	if reg.Solid == nil || reg.Porous == nil {
		tst.Errorf("models of region must be set\n")
		return
	}
	chk.Float64(tst, "ρ", 1e-15, reg.Solid.Density(), 2)
	chk.Float64(tst, "k", 1e-15, reg.Porous.K, 0.01)

	// mesh
	chk.Int(tst, "nverts", len(sim.Mesh.Verts), 3*2*4)
	chk.Int(tst, "ncells", len(sim.Mesh.Cells), 6)
	chk.Array(tst, "xmax", 1e-15, sim.Mesh.Xmax, []float64{2, 1, 3})

	// conditions
	chk.Ints(tst, "bottom", sim.Bcs[0].NodeIds, []int{0, 1, 2, 3, 4, 5})
	chk.Ints(tst, "top", sim.Bcs[1].NodeIds, []int{18, 19, 20, 21, 22, 23})
	chk.Ints(tst, "plate", sim.Rigid[0].NodeIds, []int{18, 19, 20, 21, 22, 23})

	// solver: defaults and given values
	chk.String(tst, sim.Solver.Type, "imp")
	chk.Float64(tst, "dtol", 1e-17, sim.Solver.Dtol, 0.001)
	chk.Float64(tst, "etol", 1e-17, sim.Solver.Etol, 0.001)
	chk.Float64(tst, "rtol", 1e-17, sim.Solver.Rtol, 0)
	chk.Float64(tst, "lstol", 1e-17, sim.Solver.LStol, 0.9)
	chk.Float64(tst, "lsmin", 1e-17, sim.Solver.LSmin, 0.01)
	chk.Int(tst, "lsiter", sim.Solver.LSiter, 5)
	chk.Int(tst, "maxrefs", sim.Solver.MaxRefs, 15)
	chk.Int(tst, "maxups", sim.Solver.MaxUps, 10)
	chk.Int(tst, "reformeach", sim.Solver.ReformEach, 0)
	chk.Int(tst, "maxaug", sim.Solver.MaxAug, 10)
	chk.Float64(tst, "damping", 1e-17, sim.Solver.DynDamping, 0.99)

	// linear solver
	chk.String(tst, sim.LinSol.Name, "schur")
	chk.String(tst, sim.LinSol.Schur.Precond, "diagonal_mass")
	chk.Float64(tst, "bk", 1e-17, sim.LinSol.Schur.Bk, 1)

	// control
	chk.Float64(tst, "dt", 1e-15, sim.Control.Dt, 0.1)
	chk.Int(tst, "maxretries", sim.Control.Stepper.MaxRetries, 5)
	chk.Float64(tst, "dtmax", 1e-15, sim.Control.Stepper.DtMax, 0.1)
	chk.String(tst, sim.Control.PlotLevel.String(), "PLOT_MUST_POINTS")

	// info
	var buf bytes.Buffer
	if err = sim.GetInfo(&buf); err != nil {
		tst.Errorf("GetInfo failed: %v\n", err)
	}
	if !strings.Contains(buf.String(), "plot_level: PLOT_MUST_POINTS") {
		tst.Errorf("info should contain plot level:\n%s\n", buf.String())
	}
}

func Test_sim02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim02")

	base := `
materials:
  - {name: m, model: st-venant, prms: [{n: E, v: 1}, {n: nu, v: 0.2}]}
mesh:
  box: {nx: 1, ny: 1, nz: 1, lx: 1, ly: 1, lz: 1}
regions:
  - {tag: -1, type: solid, mat: m}
control: {time_steps: 1, step_size: 1}
`
	if _, err := ParseSim([]byte(base), ".", "base"); err != nil {
		tst.Errorf("base simulation should work:\n%v", err)
		return
	}

	for i, extra := range []string{
		"unknown: 1\n",
		"solver: {type: rex}\n",
		"solver: {dyn_damping: -0.1}\n",
		"solver: {dyn_damping: 1.5}\n",
		"bcs: [{type: fixed, tag: -7, keys: [ux]}]\n",
		"bcs: [{type: fixed, tag: -1, keys: [wx]}]\n",
		"bcs: [{type: frozen, tag: -1, keys: [ux]}]\n",
		"bcs: [{type: load, nodes: [0], keys: [ux], fcn: nofcn}]\n",
		"rigid: [{name: a, nodes: [0], parent: b}]\n",
		"lincons: [{node: 0, key: ux, slaves: [{node: 0, key: ux, w: 1}]}]\n",
		"contact: {walls: [{point: [0,0,0], normal: [0,0,1], nodes: [0]}]}\n",
		"bodyforce: [{b: [0, 0]}]\n",
		"data: {encoder: gob}\n",
	} {
		_, err := ParseSim([]byte(base+extra), ".", "bad")
		if err == nil {
			tst.Errorf("test %d should have failed: %q\n", i, extra)
			continue
		}
		io.Pforan("%2d: %v\n", i, err)
	}

	// line number of unknown field
	_, err := ParseSim([]byte(base+"solver: {etol: 0.1, tolerance: 1}\n"), ".", "bad")
	if err == nil || !strings.Contains(err.Error(), "line 9") {
		tst.Errorf("error should report line 9: %v\n", err)
	}
}

func Test_msh01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("msh01")

	// tetrahedra of a box must have positive volumes summing up to the volume of the box
	msh := &Mesh{Box: &BoxData{Nx: 2, Ny: 2, Nz: 1, Lx: 1, Ly: 2, Lz: 3, Origin: []float64{1, 1, 1}, Type: "tet4"}}
	if err := msh.Init(); err != nil {
		tst.Errorf("Init failed: %v\n", err)
		return
	}
	chk.Int(tst, "ncells", len(msh.Cells), 2*2*1*6)
	chk.Array(tst, "xmin", 1e-15, msh.Xmin, []float64{1, 1, 1})
	chk.Array(tst, "xmax", 1e-15, msh.Xmax, []float64{2, 3, 4})
	vol := 0.0
	for _, c := range msh.Cells {
		x0 := msh.Verts[c.Verts[0]].C
		var a [3][3]float64
		for k := 0; k < 3; k++ {
			for j := 0; j < 3; j++ {
				a[k][j] = msh.Verts[c.Verts[k+1]].C[j] - x0[j]
			}
		}
		v := (a[0][0]*(a[1][1]*a[2][2]-a[1][2]*a[2][1]) -
			a[0][1]*(a[1][0]*a[2][2]-a[1][2]*a[2][0]) +
			a[0][2]*(a[1][0]*a[2][1]-a[1][1]*a[2][0])) / 6.0
		if v <= 0 {
			tst.Errorf("cell %d has non-positive volume %g\n", c.Id, v)
		}
		vol += v
	}
	chk.Float64(tst, "volume", 1e-14, vol, 6)

	// faces
	chk.Ints(tst, "xmin face", msh.TagVerts(FACE_XMIN), []int{0, 3, 6, 9, 12, 15})
	chk.Int(tst, "zmax face", len(msh.TagVerts(FACE_ZMAX)), 9)

	// errors
	bad := &Mesh{Box: &BoxData{Nx: 1, Ny: 0, Nz: 1, Lx: 1, Ly: 1, Lz: 1}}
	if err := bad.Init(); err == nil {
		tst.Errorf("zero divisions should fail\n")
	}
	bad = &Mesh{
		Verts: []*Vert{{Id: 0, C: []float64{0, 0, 0}}, {Id: 1, C: []float64{1, 0, 0}}},
		Cells: []*Cell{{Id: 0, Type: "lin2", Verts: []int{0, 2}}},
	}
	if err := bad.Init(); err == nil {
		tst.Errorf("invalid vertex should fail\n")
	}
}

func Test_plotlevel01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("plotlevel01")

	for i, name := range plotLevelNames {
		lvl, err := ParsePlotLevel(name)
		if err != nil {
			tst.Errorf("%v\n", err)
			return
		}
		chk.Int(tst, name, int(lvl), i)
		chk.String(tst, lvl.String(), name)
	}
	if _, err := ParsePlotLevel("PLOT_SOMETIMES"); err == nil {
		tst.Errorf("unknown level should fail\n")
	}
}

func Test_log01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("log01")

	InitLogFile("", "")
	Log("step %d converged\n", 3)
	if !LogErr(chk.Err("boom"), "solver") {
		tst.Errorf("LogErr should return true\n")
	}
	if LogErr(nil, "solver") {
		tst.Errorf("LogErr should return false\n")
	}
	if LogErrCond(false, "nothing") {
		tst.Errorf("LogErrCond should return false\n")
	}
	s := LogContents()
	if !strings.Contains(s, "step 3 converged") || !strings.Contains(s, "solver: boom") {
		tst.Errorf("log contents are incorrect:\n%s\n", s)
	}
	FlushLog()
	chk.String(tst, LogContents(), "")
}

func Test_sim03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim03. example files")

	fns, err := filepath.Glob("../examples/*/*.sim")
	if err != nil {
		tst.Errorf("Glob failed:\n%v", err)
		return
	}
	if len(fns) < 5 {
		tst.Errorf("there should be at least 5 example files; %d found\n", len(fns))
	}
	for _, fn := range fns {
		sim, err := ReadSim(fn, "", false)
		if err != nil {
			tst.Errorf("cannot read %q:\n%v", fn, err)
			continue
		}
		io.Pforan("%-45s key=%-10s nverts=%d\n", fn, sim.Key, len(sim.Mesh.Verts))
		if sim.Data.Desc == "" {
			tst.Errorf("%q should have a description\n", fn)
		}
	}
}
