// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/nlfem/inp"
)

// LinConSlave holds one term of a linear constraint
type LinConSlave struct {
	Node int     // node id
	Dof  int     // dof index
	W    float64 // weight
}

// LinCon holds a linear constraint: u_master = Σ W⋅u_slave
type LinCon struct {
	Node   int           // master node id
	Dof    int           // master dof index
	Slaves []LinConSlave // slave terms
}

// newLinCons allocates linear constraints
func newLinCons(sim *inp.Simulation, dofs *Dofs, nodes []*Node) (lcs []*LinCon, err error) {
	masters := make(map[[2]int]bool)
	for i, dat := range sim.LinCons {
		lc := &LinCon{Node: dat.Node, Dof: dofs.Index(dat.Key)}
		if lc.Dof < 0 {
			return nil, chk.Err("lincons[%d]: dof %q is not available in this model", i, dat.Key)
		}
		if nodes[lc.Node].Rid >= 0 && lc.Dof < 3 {
			return nil, chk.Err("lincons[%d]: master node %d is attached to a rigid body", i, lc.Node)
		}
		key := [2]int{lc.Node, lc.Dof}
		if masters[key] {
			return nil, chk.Err("lincons[%d]: dof %q of node %d is already a master", i, dat.Key, lc.Node)
		}
		masters[key] = true
		for _, s := range dat.Slaves {
			d := dofs.Index(s.Key)
			if d < 0 {
				return nil, chk.Err("lincons[%d]: slave dof %q is not available in this model", i, s.Key)
			}
			if s.Node < 0 || s.Node >= len(nodes) {
				return nil, chk.Err("lincons[%d]: slave node %d does not exist", i, s.Node)
			}
			lc.Slaves = append(lc.Slaves, LinConSlave{Node: s.Node, Dof: d, W: s.W})
		}
		lcs = append(lcs, lc)
	}

	// slaves cannot be masters
	for i, lc := range lcs {
		for _, s := range lc.Slaves {
			if masters[[2]int{s.Node, s.Dof}] {
				return nil, chk.Err("lincons[%d]: slave dof %d of node %d is the master of another constraint", i, s.Dof, s.Node)
			}
		}
	}
	return
}

// Project sets the master value from the current slave values
func (o *LinCon) Project(nodes []*Node) {
	v := 0.0
	for _, s := range o.Slaves {
		v += s.W * nodes[s.Node].Value(s.Dof)
	}
	nodes[o.Node].SetValue(o.Dof, v)
}
