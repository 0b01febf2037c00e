// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/nlfem/inp"
)

// ElementMass holds the lumped mass of an element
type ElementMass struct {
	Total float64   // total mass
	Frac  []float64 // [nnodes] fraction of the total mass at each node; sums to one
}

// Element defines what elements must calculate
//  Local vectors and matrices are ordered node-major: index = a*len(Dofs()) + j
type Element interface {

	// information
	Id() int        // returns the cell Id
	Nodes() []*Node // returns the nodes of the element
	Dofs() []int    // returns the dof indices used at each node; e.g. [0 1 2] or [0 1 2 3 4]

	// called for each iteration
	Update(time, dt float64) (err error)    // computes kinematics and stresses at the current nodal values
	InternalForce(fe []float64) (err error) // computes the internal force vector fe
	Stiffness(Ke [][]float64) (err error)   // computes the tangent matrix Ke

	// mass, loads and volume
	LumpedMass() ElementMass             // returns the lumped mass in the reference configuration
	BodyForce(fe []float64, b []float64) // computes fe = ∫ ρ0 N b dV0
	Volume() float64                     // returns the current volume

	// state
	Backup()               // saves the state at the beginning of a step
	Restore()              // restores the state saved by Backup
	Commit()               // accepts the current state at the end of a converged step
	Serialize(ar *Archive) // writes or reads internal variables
}

// fluidElement defines elements contributing to the mass matrix of the pressure and concentration equations
type fluidElement interface {
	FluidMass(Me [][]float64) // computes ∫ N N dV0 for each of the p and c dofs
}

// timeSetter defines elements whose material points depend on time
type timeSetter interface {
	SetTime(time, dt float64) // sets the time and step size of all material points
}

// eallocators holds all available elements
var eallocators = make(map[string]func(cell *inp.Cell, reg *inp.RegionData, nodes []*Node) (Element, error))

// NewElement returns a new element for cell according to region data
func NewElement(cell *inp.Cell, reg *inp.RegionData, nodes []*Node) (ele Element, err error) {
	allocator, ok := eallocators[reg.Type]
	if !ok {
		return nil, chk.Err("cannot get allocator for element {type=%q, tag=%d, id=%d}", reg.Type, cell.Tag, cell.Id)
	}
	ele, err = allocator(cell, reg, nodes)
	if err != nil {
		return nil, chk.Err("cannot allocate element {type=%q, tag=%d, id=%d}:\n%v", reg.Type, cell.Tag, cell.Id, err)
	}
	return
}

// cellNodes returns the nodes of a cell
func cellNodes(cell *inp.Cell, nodes []*Node) (enodes []*Node) {
	enodes = make([]*Node, len(cell.Verts))
	for i, v := range cell.Verts {
		enodes[i] = nodes[v]
	}
	return
}

// localSize returns the number of local dofs of an element
func localSize(ele Element) int {
	return len(ele.Nodes()) * len(ele.Dofs())
}
