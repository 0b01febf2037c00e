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

// gel is a column of porous material loaded on top and drained on top
const gel = `
materials:
  - name: rubber
    model: neo-hookean
    prms: [ {n: E, v: 1000}, {n: nu, v: 0.3}, {n: rho, v: 1} ]
  - name: gel
    type: porous
    prms: [ {n: k, v: 0.01}, {n: d, v: 0.001} ]
mesh:
  box: {nx: 1, ny: 1, nz: 2, lx: 1, ly: 1, lz: 2}
regions:
  - {tag: -1, type: upc, mat: rubber, poro: gel}
bcs:
  - {type: fixed, tag: -5, keys: [ux, uy, uz]}
  - {type: fixed, tag: -1, keys: [ux]}
  - {type: fixed, tag: -3, keys: [uy]}
  - {type: fixed, tag: -6, keys: [p, c]}
  - {type: load, tag: -6, keys: [uz], scale: -2.5}
solver: {dtol: 1e-8, etol: 1e-12, lstol: 0}
control: {time_steps: 4, final_time: 1, plot_level: PLOT_NEVER}
`

func Test_upc01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("upc01. partitioned equations")

	m := newTestModel(tst, gel+"linsol: {name: dense}\n", "upc01")
	chk.Int(tst, "ndofs", m.Dofs.Count(), 5)

	// u-equations first
	n0, n1 := m.Eqs.Range()
	chk.Int(tst, "neq", m.Eqs.Neq, n0+n1)
	chk.Int(tst, "npc", m.Eqs.Npc, n1)
	chk.Int(tst, "nreq", m.Eqs.Nreq, n0)
	for _, nod := range m.Nodes {
		for d, eq := range nod.ID {
			if eq < 0 {
				continue
			}
			if d < P && eq >= n0 {
				tst.Errorf("displacement equation %d of node %d should be in the first partition\n", eq, nod.Id)
			}
			if d >= P && eq < n0 {
				tst.Errorf("p or c equation %d of node %d should be in the second partition\n", eq, nod.Id)
			}
		}
	}

	// top nodes are drained: 4 bottom nodes + 4 middle nodes have p and c
	chk.Int(tst, "n1", n1, 16)

	// mass of fluid equations
	M, err := m.BuildMass(n0, n1, true)
	if err != nil {
		tst.Errorf("BuildMass failed:\n%v", err)
		return
	}
	chk.Int(tst, "rows of M", M.Rows(), n1)
	for i := 0; i < n1; i++ {
		if M.Diag(i) <= 0 {
			tst.Errorf("lumped mass must be positive: M[%d]=%g\n", i, M.Diag(i))
		}
	}
}

func Test_upc02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("upc02. consolidation with dense and Schur solvers")

	var U, P [][]float64
	for i, linsol := range []string{
		"linsol: {name: dense}\n",
		"linsol: {name: schur, reltol: 1e-12, maxiter: 100, fail_max_iters: false, schur: {a_solver: dense, schur_solver: fgmres}}\n",
	} {
		m := newTestModel(tst, gel+linsol, io.Sf("upc02_%d", i))
		if err := m.Run(); err != nil {
			tst.Errorf("Run with %q failed:\n%v", m.Sim.LinSol.Name, err)
			return
		}
		var u, p []float64
		for _, nod := range m.Nodes {
			u = append(u, nod.Value(2))
			p = append(p, nod.Pt)
		}
		U, P = append(U, u), append(P, p)

		// compression
		top := m.Sim.Mesh.TagVerts(inp.FACE_ZMAX)[0]
		if m.Nodes[top].Value(2) >= 0 {
			tst.Errorf("top should move down: uz=%g\n", m.Nodes[top].Value(2))
		}
	}
	chk.Array(tst, "uz", 1e-8, U[1], U[0])
	chk.Array(tst, "p", 1e-6, P[1], P[0])
}
