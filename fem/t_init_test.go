// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/nlfem/inp"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// cube is a unit cube of neo-Hookean material; more sections are appended by each test
const cube = `
materials:
  - name: rubber
    model: neo-hookean
    prms: [ {n: E, v: 1000}, {n: nu, v: 0.3}, {n: rho, v: 2} ]
mesh:
  box: {nx: 1, ny: 1, nz: 1, lx: 1, ly: 1, lz: 1}
regions:
  - {tag: -1, type: solid, mat: rubber}
linsol:
  name: dense
`

// spring connects node 0 (fixed) to node 1, which can only move along x.
// bcs come last so that tests can append loads
const spring = `
mesh:
  verts:
    - {id: 0, c: [0, 0, 0]}
    - {id: 1, c: [1, 0, 0]}
  cells:
    - {id: 0, tag: -1, type: lin2, verts: [0, 1]}
regions:
  - {tag: -1, type: spring, prms: [ {n: k, v: 100}, {n: m, v: 1} ]}
linsol:
  name: dense
bcs:
  - {type: fixed, nodes: [0], keys: [ux, uy, uz]}
  - {type: fixed, nodes: [1], keys: [uy, uz]}
`

// newTestModel parses the simulation data and allocates a model
func newTestModel(tst *testing.T, data, key string) *Model {
	sim, err := inp.ParseSim([]byte(data), ".", key)
	if err != nil {
		tst.Fatalf("ParseSim failed:\n%v", err)
	}
	m, err := NewModel(sim)
	if err != nil {
		tst.Fatalf("NewModel failed:\n%v", err)
	}
	return m
}

// nodeIds returns the ids of the given nodes
func nodeIds(nodes []*Node) (ids []int) {
	for _, nod := range nodes {
		ids = append(ids, nod.Id)
	}
	return
}

func Test_model01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model01")

	m := newTestModel(tst, cube+`
bcs:
  - {type: fixed, tag: -5, keys: [ux, uy, uz]}
control: {time_steps: 1, final_time: 1, plot_level: PLOT_NEVER}
`, "model01")

	chk.Ints(tst, "nodes", nodeIds(m.Nodes), []int{0, 1, 2, 3, 4, 5, 6, 7})
	chk.Int(tst, "nelems", len(m.Elems), 1)
	chk.Ints(tst, "element nodes", nodeIds(m.Elems[0].Nodes()), []int{0, 1, 2, 3, 4, 5, 6, 7})
	chk.Int(tst, "ndofs", m.Dofs.Count(), 3)
	if m.LinSol == nil || m.K == nil {
		tst.Errorf("implicit model must have a linear solver and a matrix\n")
	}
	if _, ok := m.Solver.(*SolverImplicit); !ok {
		tst.Errorf("solver should be implicit; %T given\n", m.Solver)
	}
	chk.Float64(tst, "volume", 1e-15, m.Elems[0].Volume(), 1)
	chk.Float64(tst, "mass", 1e-14, m.TotalMass(), 2)
	chk.Float64(tst, "energy", 1e-15, m.StrainEnergy(), 0)
}

func Test_model02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model02")

	// invalid
	for i, data := range []string{
		cube + "bcs:\n  - {type: fixed, tag: -5, keys: [p]}\ncontrol: {time_steps: 1, final_time: 1}\n",
		spring + "solver: {type: exp}\ncontrol: {time_steps: 1, final_time: 1}\nlincons:\n  - {node: 1, key: ux, slaves: [{node: 0, key: ux, w: 1}]}\n  - {node: 0, key: ux, slaves: [{node: 1, key: ux, w: 1}]}\n",
	} {
		sim, err := inp.ParseSim([]byte(data), ".", io.Sf("model02_%d", i))
		if err != nil {
			continue
		}
		if _, err = NewModel(sim); err == nil {
			tst.Errorf("model %d should have failed\n", i)
			continue
		}
		io.Pforan("%d: %v\n", i, err)
	}
}
