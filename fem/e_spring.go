// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/nlfem/inp"
)

// ElemSpring represents a linear spring connecting two nodes; each node carries a point mass
//  fe_a = -k (u_b - u_a),  fe_b = k (u_b - u_a)
type ElemSpring struct {
	Cell *inp.Cell // the cell structure
	Nods []*Node   // [2] nodes
	K    float64   // stiffness
	M    float64   // mass at each node
}

// register element
func init() {
	eallocators["spring"] = func(cell *inp.Cell, reg *inp.RegionData, nodes []*Node) (Element, error) {
		if len(cell.Verts) != 2 {
			return nil, chk.Err("spring requires 2 vertices; %d given", len(cell.Verts))
		}
		o := &ElemSpring{Cell: cell, Nods: cellNodes(cell, nodes)}
		o.K = reg.Prms.GetValueOrDefault("k", 0)
		o.M = reg.Prms.GetValueOrDefault("m", 0)
		if o.K <= 0 {
			return nil, chk.Err("spring stiffness must be positive. k = %g is invalid", o.K)
		}
		if o.M < 0 {
			return nil, chk.Err("spring mass must be non-negative. m = %g is invalid", o.M)
		}
		for _, nod := range o.Nods {
			for d := 0; d < 3; d++ {
				nod.Active[d] = true
			}
		}
		return o, nil
	}
}

// Id returns the cell Id
func (o *ElemSpring) Id() int { return o.Cell.Id }

// Nodes returns the nodes of the element
func (o *ElemSpring) Nodes() []*Node { return o.Nods }

// Dofs returns the dof indices used at each node
func (o *ElemSpring) Dofs() []int { return []int{UX, UY, UZ} }

// Update does nothing
func (o *ElemSpring) Update(time, dt float64) (err error) { return }

// InternalForce computes the internal force vector
func (o *ElemSpring) InternalForce(fe []float64) (err error) {
	for i := 0; i < 3; i++ {
		f := o.K * (o.Nods[1].Value(i) - o.Nods[0].Value(i))
		fe[i] = -f
		fe[3+i] = f
	}
	return
}

// Stiffness computes the tangent matrix
func (o *ElemSpring) Stiffness(Ke [][]float64) (err error) {
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			Ke[i][j] = 0
		}
	}
	for i := 0; i < 3; i++ {
		Ke[i][i], Ke[3+i][3+i] = o.K, o.K
		Ke[i][3+i], Ke[3+i][i] = -o.K, -o.K
	}
	return
}

// LumpedMass returns the point masses
func (o *ElemSpring) LumpedMass() ElementMass {
	return ElementMass{Total: 2 * o.M, Frac: []float64{0.5, 0.5}}
}

// BodyForce computes fe = m b at each node
func (o *ElemSpring) BodyForce(fe []float64, b []float64) {
	for i := 0; i < 3; i++ {
		fe[i] += o.M * b[i]
		fe[3+i] += o.M * b[i]
	}
}

// Volume returns zero
func (o *ElemSpring) Volume() float64 { return 0 }

// Backup does nothing
func (o *ElemSpring) Backup() {}

// Restore does nothing
func (o *ElemSpring) Restore() {}

// Commit does nothing
func (o *ElemSpring) Commit() {}

// Serialize does nothing: springs have no internal variables
func (o *ElemSpring) Serialize(ar *Archive) {}
