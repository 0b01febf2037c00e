// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import "github.com/cpmech/gosl/chk"

// Term is one contribution of a nodal dof to a global equation
type Term struct {
	Eq int     // equation number
	W  float64 // weight
}

// Equations holds the numbering of global equations
type Equations struct {
	Neq  int // total number of equations
	Nreq int // number of equations numbered before the rigid body ones
	Nrig int // number of rigid body equations (free and prescribed)
	Npc  int // number of pressure and concentration equations placed last; 0 if not partitioned

	nodes   []*Node            // all nodes
	rigid   []*RigidBody       // all rigid bodies
	lincons []*LinCon          // all linear constraints
	masters map[[2]int]*LinCon // (node, dof) => constraint
	pinned  []int              // rows of prescribed rigid dofs
}

// InitEquations numbers the equations of nodes and rigid bodies
//  Nodal dofs that are inactive, fixed, prescribed or masters of a linear constraint get no equation.
//  If partition is true, the u-equations come first and the p/c-equations last.
//  The order is: nodal equations [0, Nreq), rigid body equations [Nreq, Nreq+Nrig), then p/c equations.
func InitEquations(nodes []*Node, rigid []*RigidBody, lincons []*LinCon, partition bool) (o *Equations, err error) {

	// masters
	o = &Equations{nodes: nodes, rigid: rigid, lincons: lincons}
	o.masters = make(map[[2]int]*LinCon)
	for _, lc := range lincons {
		o.masters[[2]int{lc.Node, lc.Dof}] = lc
	}

	// nodal dofs
	n := 0
	number := func(nod *Node, d int) {
		if !nod.Active[d] || nod.BC[d] != BC_FREE {
			nod.ID[d] = -1
			return
		}
		if _, ok := o.masters[[2]int{nod.Id, d}]; ok {
			nod.ID[d] = -1
			return
		}
		nod.ID[d] = n
		n++
	}
	for _, nod := range nodes {
		for d := range nod.ID {
			if partition && d >= P {
				continue
			}
			if nod.Rid >= 0 && d < 3 {
				continue
			}
			number(nod, d)
		}
	}

	// rigid bodies
	o.Nreq = n
	for _, rb := range rigid {
		for k := 0; k < 6; k++ {
			switch rb.BC[k] {
			case BC_FREE:
				rb.LM[k] = n
				n++
				o.Nrig++
			case BC_PRESCRIBED:
				rb.LM[k] = -n - 2
				o.pinned = append(o.pinned, n)
				n++
				o.Nrig++
			default:
				rb.LM[k] = -1
			}
		}
	}

	// pressure and concentration
	if partition {
		n0 := n
		for _, nod := range nodes {
			for d := P; d < len(nod.ID); d++ {
				number(nod, d)
			}
		}
		o.Npc = n - n0
	}

	// nodes attached to rigid bodies
	for _, nod := range nodes {
		if nod.Rid < 0 {
			continue
		}
		if nod.Rid >= len(rigid) {
			return nil, chk.Err("node %d is attached to rigid body %d, which does not exist", nod.Id, nod.Rid)
		}
		rb := rigid[nod.Rid]
		for d := 0; d < 3; d++ {
			if lm := rb.LM[d]; lm >= 0 {
				nod.ID[d] = -lm - 2
			} else {
				nod.ID[d] = lm
			}
		}
	}
	o.Neq = n
	return
}

// Range returns the number of equations in the first and second partitions
func (o *Equations) Range() (n0, n1 int) {
	return o.Neq - o.Npc, o.Npc
}

// Pinned returns the rows of prescribed rigid body dofs
func (o *Equations) Pinned() []int { return o.pinned }

// IsMaster tells whether dof d of nod is the master of a linear constraint
func (o *Equations) IsMaster(nod *Node, d int) bool {
	_, ok := o.masters[[2]int{nod.Id, d}]
	return ok
}

// Expand appends to terms the global equations (and weights) that dof d of nod contributes to
//  masters of linear constraints expand into their slaves;
//  nodes on rigid bodies expand into the translation and rotation of the body: δx = δt + δθ × a
func (o *Equations) Expand(nod *Node, d int, w float64, terms []Term) []Term {
	if lc, ok := o.masters[[2]int{nod.Id, d}]; ok {
		for _, s := range lc.Slaves {
			terms = o.Expand(o.nodes[s.Node], s.Dof, w*s.W, terms)
		}
		return terms
	}
	if nod.Rid >= 0 && d < 3 {
		rb := o.rigid[nod.Rid]
		a := []float64{nod.Xt[0] - rb.Rt[0], nod.Xt[1] - rb.Rt[1], nod.Xt[2] - rb.Rt[2]}
		var lm [3]int
		var v [3]float64
		switch d {
		case 0:
			lm = [3]int{rb.LM[0], rb.LM[4], rb.LM[5]}
			v = [3]float64{1, a[2], -a[1]}
		case 1:
			lm = [3]int{rb.LM[1], rb.LM[5], rb.LM[3]}
			v = [3]float64{1, a[0], -a[2]}
		default:
			lm = [3]int{rb.LM[2], rb.LM[3], rb.LM[4]}
			v = [3]float64{1, a[1], -a[0]}
		}
		for i := 0; i < 3; i++ {
			if lm[i] >= 0 {
				terms = append(terms, Term{lm[i], w * v[i]})
			}
		}
		return terms
	}
	if nod.ID[d] >= 0 {
		terms = append(terms, Term{nod.ID[d], w})
	}
	return terms
}

// ProjectLinCons sets the values of all masters of linear constraints
func (o *Equations) ProjectLinCons() {
	for _, lc := range o.lincons {
		lc.Project(o.nodes)
	}
}

// IncrementNodes updates free nodal dofs with the step increments ui: value = previous + ui[eq].
// Rigid bodies and masters of linear constraints are updated afterwards.
func (o *Equations) IncrementNodes(ui []float64) {
	for _, nod := range o.nodes {
		for d, eq := range nod.ID {
			if eq >= 0 {
				nod.SetValue(d, nod.PrevValue(d)+ui[eq])
			}
		}
	}
	UpdateRigidBodies(o.rigid, ui, o.nodes)
	o.ProjectLinCons()
}
