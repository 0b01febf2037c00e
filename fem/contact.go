// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/nlfem/inp"
)

// Contributor defines nonlinear constraints such as contact interfaces
// that add forces and stiffness to the global system
type Contributor interface {
	Init(m *Model) (err error)         // initialises the contributor after equations are numbered
	Update(niter int)                  // updates the state at the beginning of a step (niter == 0) or iteration
	Residual(r *GlobalVector)          // adds contact forces to the residual
	StiffnessMatrix(k *Assembler)      // adds contact stiffness to the tangent matrix
	Augment(naug int) (converged bool) // updates multipliers; returns true if no further augmentation is needed
	Serialize(ar *Archive) (err error) // writes or reads multipliers
	Reset()                            // clears multipliers
	IsActive() bool                    // tells whether any contact force is non-zero
}

// RigidWall implements a rigid plane with penalty contact and augmented Lagrangian multipliers
//  g  = (x - P - o n) ⋅ n     gap; o is the offset of the wall along n
//  tn = max(0, λ - ε g)       normal traction (force) at node
type RigidWall struct {
	Name   string     // name
	Nids   []int      // nodes that may touch the wall
	P      []float64  // [3] point on plane
	N      []float64  // [3] unit normal pointing to the body
	Eps    float64    // penalty factor
	Aug    bool       // use augmented Lagrangian
	AugTol float64    // augmentation tolerance
	Curve  *LoadCurve // offset along n; nil means fixed
	Offset float64    // current offset
	Lam    []float64  // [nnodes] multipliers
	model  *Model     // model
	nodes  []*Node    // nodes
}

// newRigidWall returns a new wall
func newRigidWall(sim *inp.Simulation, dat *inp.WallData) (o *RigidWall, err error) {
	o = &RigidWall{Name: dat.Name, Nids: dat.NodeIds, Eps: dat.Penalty, Aug: dat.Augment, AugTol: dat.AugTol}
	if len(dat.Point) != 3 || len(dat.Normal) != 3 {
		return nil, chk.Err("wall %q: point and normal must have 3 components", dat.Name)
	}
	n := math.Sqrt(dot3(dat.Normal, dat.Normal))
	if n == 0 {
		return nil, chk.Err("wall %q: normal cannot be zero", dat.Name)
	}
	if o.Eps <= 0 {
		return nil, chk.Err("wall %q: penalty must be positive. %g is invalid", dat.Name, o.Eps)
	}
	o.P = []float64{dat.Point[0], dat.Point[1], dat.Point[2]}
	o.N = []float64{dat.Normal[0] / n, dat.Normal[1] / n, dat.Normal[2] / n}
	if o.AugTol <= 0 {
		o.AugTol = 0.01
	}
	if dat.Fcn != "" {
		if o.Curve, err = newLoadCurve(sim, dat.Fcn, dat.Scale); err != nil {
			return nil, chk.Err("wall %q: %v", dat.Name, err)
		}
	}
	return
}

// Init initialises the wall
func (o *RigidWall) Init(m *Model) (err error) {
	o.model = m
	o.nodes = make([]*Node, len(o.Nids))
	for i, nid := range o.Nids {
		if nid < 0 || nid >= len(m.Nodes) {
			return chk.Err("wall %q: node %d does not exist", o.Name, nid)
		}
		o.nodes[i] = m.Nodes[nid]
	}
	o.Lam = make([]float64, len(o.Nids))
	return
}

// Update updates the position of the wall at the beginning of each step
func (o *RigidWall) Update(niter int) {
	if niter == 0 && o.Curve != nil {
		o.Offset = o.Curve.Value(o.model.Time + o.model.Dt)
	}
}

// gap returns the gap of node i
func (o *RigidWall) gap(i int) float64 {
	x := o.nodes[i].Xt
	g := 0.0
	for k := 0; k < 3; k++ {
		g += (x[k] - o.P[k] - o.Offset*o.N[k]) * o.N[k]
	}
	return g
}

// traction returns the normal force at node i
func (o *RigidWall) traction(i int) float64 {
	return math.Max(0, o.Lam[i]-o.Eps*o.gap(i))
}

// Residual adds tn n to the residual
func (o *RigidWall) Residual(r *GlobalVector) {
	for i, nod := range o.nodes {
		tn := o.traction(i)
		if tn == 0 {
			continue
		}
		for k := 0; k < 3; k++ {
			r.AddNodal(nod, k, tn*o.N[k])
		}
	}
}

// StiffnessMatrix adds ε n ⊗ n at nodes in contact
func (o *RigidWall) StiffnessMatrix(K *Assembler) {
	for i, nod := range o.nodes {
		if o.traction(i) == 0 {
			continue
		}
		for k := 0; k < 3; k++ {
			for l := 0; l < 3; l++ {
				K.AddNodal(nod, k, nod, l, o.Eps*o.N[k]*o.N[l])
			}
		}
	}
}

// Augment sets λ = tn and checks the relative change of multipliers
func (o *RigidWall) Augment(naug int) (converged bool) {
	if !o.Aug {
		return true
	}
	norm, dnorm := 0.0, 0.0
	for i := range o.nodes {
		tn := o.traction(i)
		dnorm += (tn - o.Lam[i]) * (tn - o.Lam[i])
		norm += tn * tn
		o.Lam[i] = tn
	}
	return math.Sqrt(dnorm) <= o.AugTol*math.Sqrt(norm)
}

// Serialize writes or reads multipliers
func (o *RigidWall) Serialize(ar *Archive) (err error) {
	ar.Section("wall", "offset", "lam")
	ar.Float(&o.Offset)
	ar.Floats(o.Lam)
	return ar.Err()
}

// Reset clears multipliers
func (o *RigidWall) Reset() {
	for i := range o.Lam {
		o.Lam[i] = 0
	}
}

// IsActive tells whether any node touches the wall
func (o *RigidWall) IsActive() bool {
	for i := range o.nodes {
		if o.traction(i) > 0 {
			return true
		}
	}
	return false
}
