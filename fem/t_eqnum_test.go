// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// allEqs returns the equation numbers of all nodal dofs that have an equation
func allEqs(nodes []*Node) (eqs []int) {
	for _, nod := range nodes {
		for _, eq := range nod.ID {
			if eq >= 0 {
				eqs = append(eqs, eq)
			}
		}
	}
	return
}

func Test_eqnum01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("eqnum01. fixed bottom")

	m := newTestModel(tst, cube+`
bcs:
  - {type: fixed, tag: -5, keys: [ux, uy, uz]}
control: {time_steps: 1, final_time: 1, plot_level: PLOT_NEVER}
`, "eqnum01")

	chk.Int(tst, "neq", m.Eqs.Neq, 12)
	chk.Int(tst, "nreq", m.Eqs.Nreq, 12)
	chk.Int(tst, "nrig", m.Eqs.Nrig, 0)
	chk.Ints(tst, "eqs", allEqs(m.Nodes), utl.IntRange(12))
	for i := 0; i < 4; i++ {
		chk.Ints(tst, "bottom", m.Nodes[i].ID, []int{-1, -1, -1})
	}
	chk.Ints(tst, "node 4", m.Nodes[4].ID, []int{0, 1, 2})
	chk.Ints(tst, "node 7", m.Nodes[7].ID, []int{9, 10, 11})
	n0, n1 := m.Eqs.Range()
	chk.Int(tst, "n0", n0, 12)
	chk.Int(tst, "n1", n1, 0)
	if len(m.Eqs.Pinned()) != 0 {
		tst.Errorf("there should be no pinned equations\n")
	}
}

func Test_eqnum02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("eqnum02. rigid plate with prescribed uz")

	m := newTestModel(tst, cube+`
functions:
  - {name: down, type: lin, prms: [ {n: m, v: -0.05} ]}
bcs:
  - {type: fixed, tag: -5, keys: [ux, uy, uz]}
rigid:
  - name: plate
    tag: -6
    bcs:
      - {type: fixed, keys: [rx, ry, rz]}
      - {type: prescribed, keys: [uz], fcn: down}
control: {time_steps: 1, final_time: 1, plot_level: PLOT_NEVER}
`, "eqnum02")

	rb := m.Rigid[0]
	chk.Ints(tst, "plate nodes", rb.Nodes, []int{4, 5, 6, 7})
	chk.Array(tst, "centre", 1e-15, rb.R0, []float64{0.5, 0.5, 1})
	chk.Ints(tst, "LM", rb.LM[:], []int{0, 1, -4, -1, -1, -1})
	chk.Int(tst, "neq", m.Eqs.Neq, 3)
	chk.Int(tst, "nrig", m.Eqs.Nrig, 3)
	chk.Int(tst, "nreq", m.Eqs.Nreq, 0)
	chk.Ints(tst, "pinned", m.Eqs.Pinned(), []int{2})
	for i := 4; i < 8; i++ {
		chk.Ints(tst, "top", m.Nodes[i].ID, []int{-2, -3, -4})
		if m.Nodes[i].Rid != 0 {
			tst.Errorf("node %d should be attached to the plate\n", i)
		}
	}

	// expansion of a nodal dof into the body dofs: δx = δt + δθ × a
	terms := m.Eqs.Expand(m.Nodes[4], 0, 2, nil)
	if len(terms) != 1 {
		tst.Errorf("ux of node 4 should expand into one term; %v given\n", terms)
		return
	}
	chk.Int(tst, "eq", terms[0].Eq, 0)
	chk.Float64(tst, "w", 1e-15, terms[0].W, 2)

	// pinned rows have zero residual
	R := NewGlobalVector(m.Eqs)
	if err := m.Residual(R); err != nil {
		tst.Errorf("Residual failed:\n%v", err)
		return
	}
	chk.Float64(tst, "R[2]", 1e-15, R.V[2], 0)
}

func Test_eqnum03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("eqnum03. linear constraint")

	m := newTestModel(tst, cube+`
bcs:
  - {type: fixed, tag: -5, keys: [ux, uy, uz]}
lincons:
  - {node: 5, key: ux, slaves: [ {node: 4, key: ux, w: 1} ]}
control: {time_steps: 1, final_time: 1, plot_level: PLOT_NEVER}
`, "eqnum03")

	chk.Int(tst, "neq", m.Eqs.Neq, 11)
	chk.Ints(tst, "node 4", m.Nodes[4].ID, []int{0, 1, 2})
	chk.Ints(tst, "node 5", m.Nodes[5].ID, []int{-1, 3, 4})
	chk.Ints(tst, "eqs", allEqs(m.Nodes), utl.IntRange(11))
	if !m.Eqs.IsMaster(m.Nodes[5], 0) {
		tst.Errorf("ux of node 5 should be a master\n")
	}
	if m.Eqs.IsMaster(m.Nodes[5], 1) {
		tst.Errorf("uy of node 5 should not be a master\n")
	}

	// masters expand into slaves
	terms := m.Eqs.Expand(m.Nodes[5], 0, 2, nil)
	if len(terms) != 1 {
		tst.Errorf("ux of node 5 should expand into one term; %v given\n", terms)
		return
	}
	chk.Int(tst, "eq", terms[0].Eq, 0)
	chk.Float64(tst, "w", 1e-15, terms[0].W, 2)

	// projection is idempotent
	m.Nodes[4].Xt[0] += 0.3
	m.Eqs.ProjectLinCons()
	m.Eqs.ProjectLinCons()
	chk.Float64(tst, "u5", 1e-15, m.Nodes[5].Value(0), 0.3)
	chk.Float64(tst, "u4", 1e-15, m.Nodes[4].Value(0), 0.3)

	// increments
	ui := make([]float64, m.Eqs.Neq)
	ui[0] = 0.1
	m.Eqs.IncrementNodes(ui)
	chk.Float64(tst, "u4 after increment", 1e-15, m.Nodes[4].Value(0), 0.1)
	chk.Float64(tst, "u5 after increment", 1e-15, m.Nodes[5].Value(0), 0.1)
}

func Test_eqnum04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("eqnum04. lumped mass")

	// free cube
	m := newTestModel(tst, cube+`
control: {time_steps: 1, final_time: 1, plot_level: PLOT_NEVER}
`, "eqnum04a")
	masses := m.ElementMasses()
	chk.Float64(tst, "element mass", 1e-14, masses[0].Total, 2)
	sum := 0.0
	for _, f := range masses[0].Frac {
		chk.Float64(tst, "fraction", 1e-15, f, 0.125)
		sum += f
	}
	chk.Float64(tst, "sum of fractions", 1e-15, sum, 1)
	M := m.LumpedMass(masses)
	chk.Int(tst, "neq", len(M), 24)
	sum = 0
	for _, v := range M {
		sum += v
	}
	chk.Float64(tst, "sum of M", 1e-14, sum, 6)

	// rigid cube: mass and moments of inertia about the centroid
	m = newTestModel(tst, cube+`
rigid:
  - {name: block, nodes: [0, 1, 2, 3, 4, 5, 6, 7]}
control: {time_steps: 1, final_time: 1, plot_level: PLOT_NEVER}
`, "eqnum04b")
	chk.Int(tst, "neq", m.Eqs.Neq, 6)
	M = m.LumpedMass(m.ElementMasses())
	chk.Array(tst, "M", 1e-14, M, []float64{2, 2, 2, 1, 1, 1})
}

func Test_eqnum05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("eqnum05. partitioned equations with rigid body")

	// node 1 carries p and c but its displacements follow the body
	nodes := []*Node{NewNode(0, []float64{0, 0, 0}, 5), NewNode(1, []float64{1, 0, 0}, 5)}
	for _, nod := range nodes {
		for d := range nod.Active {
			nod.Active[d] = true
		}
	}
	nodes[1].Rid = 0
	rb := NewRigidBody(0, "plate", []float64{1, 0, 0})
	rb.Nodes = []int{1}
	rb.BC = [6]int{BC_FREE, BC_FREE, BC_FREE, BC_FIXED, BC_FIXED, BC_FIXED}

	eqs, err := InitEquations(nodes, []*RigidBody{rb}, nil, true)
	if err != nil {
		tst.Errorf("InitEquations failed:\n%v", err)
		return
	}
	chk.Int(tst, "neq", eqs.Neq, 10)
	chk.Int(tst, "nreq", eqs.Nreq, 3)
	chk.Int(tst, "nrig", eqs.Nrig, 3)
	chk.Int(tst, "npc", eqs.Npc, 4)
	chk.Ints(tst, "LM", rb.LM[:], []int{3, 4, 5, -1, -1, -1})
	chk.Ints(tst, "node 0", nodes[0].ID, []int{0, 1, 2, 6, 7})
	chk.Ints(tst, "node 1", nodes[1].ID, []int{-5, -6, -7, 8, 9})
	n0, n1 := eqs.Range()
	chk.Int(tst, "n0", n0, eqs.Nreq+eqs.Nrig)
	chk.Int(tst, "n1", n1, 4)

	// without partition all nodal equations precede the body
	eqs, err = InitEquations(nodes, []*RigidBody{rb}, nil, false)
	if err != nil {
		tst.Errorf("InitEquations failed:\n%v", err)
		return
	}
	chk.Int(tst, "nreq", eqs.Nreq, 7)
	chk.Int(tst, "npc", eqs.Npc, 0)
	chk.Ints(tst, "node 0", nodes[0].ID, []int{0, 1, 2, 3, 4})
	chk.Ints(tst, "node 1", nodes[1].ID, []int{-9, -10, -11, 5, 6})
	chk.Ints(tst, "LM", rb.LM[:], []int{7, 8, 9, -1, -1, -1})
}
