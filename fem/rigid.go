// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
	"github.com/cpmech/nlfem/inp"
	"gonum.org/v1/gonum/num/quat"
)

// RigidBody holds the state of a rigid body and the nodes attached to it
//  Dofs are: ux, uy, uz (translation of centre) and rx, ry, rz (rotation vector)
//  LM codes:  LM >= 0   => free dof with equation LM
//             LM == -1  => fixed
//             LM <= -2  => prescribed; row -LM-2 is kept with a unit diagonal
type RigidBody struct {

	// definition
	Id     int        // index in list of bodies
	Name   string     // name
	Nodes  []int      // attached nodes
	Parent *RigidBody // parent body; nil if root

	// boundary conditions
	LM         [6]int        // equation numbers
	BC         [6]int        // BC_FIXED, BC_FREE or BC_PRESCRIBED
	Prescribed [6]*LoadCurve // prescribed displacements or rotations
	Loads      [6]*LoadCurve // applied forces or moments

	// state
	R0     []float64   // [3] reference position of centre
	Rp, Rt []float64   // [3] position of centre: previous and current
	Qp, Qt quat.Number // rotation from reference: previous and current
	Up, Ut []float64   // [6] total displacement and rotation vector: previous and current

	// step data
	Dul []float64 // [6] prescribed increments; translations in parent frame
	Du  []float64 // [6] prescribed increments composed along the chain; global frame

	// reactions
	Fr []float64 // [3] sum of internal forces of attached nodes
	Mr []float64 // [3] sum of moments of internal forces about the centre
}

// NewRigidBody allocates a new rigid body with centre at c
func NewRigidBody(id int, name string, c []float64) (o *RigidBody) {
	o = &RigidBody{Id: id, Name: name}
	o.R0 = []float64{c[0], c[1], c[2]}
	o.Rp = []float64{c[0], c[1], c[2]}
	o.Rt = []float64{c[0], c[1], c[2]}
	o.Qp, o.Qt = QuatIdentity, QuatIdentity
	o.Up = make([]float64, 6)
	o.Ut = make([]float64, 6)
	o.Dul = make([]float64, 6)
	o.Du = make([]float64, 6)
	o.Fr = make([]float64, 3)
	o.Mr = make([]float64, 3)
	for k := 0; k < 6; k++ {
		o.LM[k] = -1
	}
	return
}

// newRigidBodies allocates all rigid bodies and attaches nodes
func newRigidBodies(sim *inp.Simulation, nodes []*Node) (bodies []*RigidBody, err error) {
	names := make(map[string]*RigidBody)
	for i, dat := range sim.Rigid {

		// centre
		c := dat.Center
		if len(c) == 0 {
			c = make([]float64, 3)
			for _, nid := range dat.NodeIds {
				for j := 0; j < 3; j++ {
					c[j] += nodes[nid].X0[j] / float64(len(dat.NodeIds))
				}
			}
		}
		rb := NewRigidBody(i, dat.Name, c)
		if dat.Parent != "" {
			rb.Parent = names[dat.Parent]
			if rb.Parent == nil {
				return nil, chk.Err("rigid body %q: cannot find parent %q", dat.Name, dat.Parent)
			}
		}
		names[dat.Name] = rb

		// nodes
		for _, nid := range dat.NodeIds {
			if nodes[nid].Rid >= 0 {
				return nil, chk.Err("rigid body %q: node %d is already attached to body %d", dat.Name, nid, nodes[nid].Rid)
			}
			nodes[nid].Rid = i
			rb.Nodes = append(rb.Nodes, nid)
		}

		// boundary conditions
		for _, bc := range dat.Bcs {
			curve, e := newLoadCurve(sim, bc.Fcn, bc.Scale)
			if e != nil {
				return nil, chk.Err("rigid body %q: %v", dat.Name, e)
			}
			for _, key := range bc.Keys {
				k := utl.StrIndexSmall(inp.RigidKeys, key)
				switch bc.Type {
				case "fixed":
					rb.BC[k] = BC_FIXED
				case "prescribed":
					rb.BC[k] = BC_PRESCRIBED
					rb.Prescribed[k] = curve
				case "load":
					rb.Loads[k] = curve
				}
			}
		}
		bodies = append(bodies, rb)
	}
	return
}

// SetStepIncrements computes the local prescribed increments from t to t+dt
func (o *RigidBody) SetStepIncrements(t, dt float64) {
	for k := 0; k < 6; k++ {
		o.Dul[k] = 0
		if o.BC[k] == BC_PRESCRIBED {
			o.Dul[k] = o.Prescribed[k].Value(t+dt) - o.Prescribed[k].Value(t)
		}
	}
}

// ComposeChain composes the prescribed increments of bodies along parent chains.
// Parents must come before their children.
//  root:  Du = Dul
//  child: Qc,t = dq⋅Qc,p⋅q(dul_r)
//         Rc,t = Rp,t + dq⋅(Rc,p - Rp,p) + (dq⋅Qc,p)⋅dul_t
//  where dq is the total rotation of the parent during the step
func ComposeChain(bodies []*RigidBody) {
	Rpred := make(map[*RigidBody][]float64)
	Qpred := make(map[*RigidBody]quat.Number)
	for _, rb := range bodies {
		dul := rb.Dul
		var R []float64
		var Q quat.Number
		if rb.Parent == nil {
			copy(rb.Du, dul)
			R = []float64{rb.Rp[0] + dul[0], rb.Rp[1] + dul[1], rb.Rp[2] + dul[2]}
			Q = quatNormalize(quat.Mul(QuatFromRotVec(dul[3:]), rb.Qp))
		} else {
			par := rb.Parent
			Rpt, Qpt := Rpred[par], Qpred[par]
			dq := quatNormalize(quat.Mul(Qpt, quat.Conj(par.Qp)))
			Q = quatNormalize(quat.Mul(quat.Mul(dq, rb.Qp), QuatFromRotVec(dul[3:])))
			rel := QuatRotate(dq, []float64{rb.Rp[0] - par.Rp[0], rb.Rp[1] - par.Rp[1], rb.Rp[2] - par.Rp[2]})
			tra := QuatRotate(quat.Mul(dq, rb.Qp), dul[:3])
			R = make([]float64, 3)
			for i := 0; i < 3; i++ {
				R[i] = Rpt[i] + rel[i] + tra[i]
				rb.Du[i] = R[i] - rb.Rp[i]
			}
			copy(rb.Du[3:], RotVecFromQuat(quat.Mul(Q, quat.Conj(rb.Qp))))
		}
		Rpred[rb], Qpred[rb] = R, Q
	}
}

// UpdateRigidBodies updates bodies and attached nodes with the step increments ui of free equations
//  x = Rt + Qt⋅(X0 - R0)
func UpdateRigidBodies(bodies []*RigidBody, ui []float64, nodes []*Node) {
	du := make([]float64, 6)
	for _, rb := range bodies {
		copy(du, rb.Du)
		for k := 0; k < 6; k++ {
			if rb.LM[k] >= 0 {
				du[k] += ui[rb.LM[k]]
			}
		}
		for i := 0; i < 3; i++ {
			rb.Rt[i] = rb.Rp[i] + du[i]
			rb.Ut[i] = rb.Rt[i] - rb.R0[i]
		}
		rb.Qt = quatNormalize(quat.Mul(QuatFromRotVec(du[3:]), rb.Qp))
		copy(rb.Ut[3:], RotVecFromQuat(rb.Qt))
		for _, nid := range rb.Nodes {
			nod := nodes[nid]
			a := QuatRotate(rb.Qt, []float64{nod.X0[0] - rb.R0[0], nod.X0[1] - rb.R0[1], nod.X0[2] - rb.R0[2]})
			for i := 0; i < 3; i++ {
				nod.Xt[i] = rb.Rt[i] + a[i]
			}
		}
	}
}

// ClearReactions zeroes reaction forces and moments
func (o *RigidBody) ClearReactions() {
	for i := 0; i < 3; i++ {
		o.Fr[i], o.Mr[i] = 0, 0
	}
}

// addReaction adds the internal force f (component i) acting on node at position x
func (o *RigidBody) addReaction(x []float64, i int, f float64) {
	a := []float64{x[0] - o.Rt[0], x[1] - o.Rt[1], x[2] - o.Rt[2]}
	o.Fr[i] += f
	// m = a × (f e_i)
	j, k := (i+1)%3, (i+2)%3
	o.Mr[j] += a[k] * f
	o.Mr[k] -= a[j] * f
}

// Commit accepts the current state
func (o *RigidBody) Commit() {
	copy(o.Rp, o.Rt)
	o.Qp = o.Qt
	copy(o.Up, o.Ut)
}

// Restore discards the current state
func (o *RigidBody) Restore() {
	copy(o.Rt, o.Rp)
	o.Qt = o.Qp
	copy(o.Ut, o.Up)
}

// Serialize writes or reads the state of the body
func (o *RigidBody) Serialize(ar *Archive) {
	ar.Section("rigid", "Rp", "Rt", "Qp", "Qt", "Up", "Ut", "Fr", "Mr")
	ar.Floats(o.Rp)
	ar.Floats(o.Rt)
	serializeQuat(ar, &o.Qp)
	serializeQuat(ar, &o.Qt)
	ar.Floats(o.Up)
	ar.Floats(o.Ut)
	ar.Floats(o.Fr)
	ar.Floats(o.Mr)
}

// serializeQuat writes or reads a quaternion
func serializeQuat(ar *Archive, q *quat.Number) {
	v := []float64{q.Real, q.Imag, q.Jmag, q.Kmag}
	ar.Floats(v)
	q.Real, q.Imag, q.Jmag, q.Kmag = v[0], v[1], v[2], v[3]
}
