// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

// Node holds the kinematic state and the equation numbers of a vertex
//  ID codes:  ID >= 0  => free dof with equation ID
//             ID == -1 => fixed or prescribed; no equation
//             ID < -1  => slave of a rigid body; master equation is -ID-2
type Node struct {

	// geometry and kinematics
	Id int       // vertex id
	X0 []float64 // [3] reference position
	Xp []float64 // [3] position at the end of the last converged step
	Xt []float64 // [3] current position
	Vp []float64 // [3] velocity at the end of the last converged step
	Vt []float64 // [3] current velocity
	Ap []float64 // [3] acceleration at the end of the last converged step
	At []float64 // [3] current acceleration

	// fields
	Pp, Pt float64 // fluid pressure: previous and current
	Cp, Ct float64 // solute concentration: previous and current

	// dofs
	ID     []int     // [ndof] equation numbers
	BC     []int     // [ndof] BC_FIXED, BC_FREE or BC_PRESCRIBED
	Active []bool    // [ndof] dof belongs to at least one element
	Rid    int       // index of rigid body; -1 if not attached
	Fr     []float64 // [ndof] reaction forces
}

// NewNode allocates a node at x
func NewNode(id int, x []float64, ndof int) (o *Node) {
	o = new(Node)
	o.Id = id
	o.X0 = []float64{x[0], x[1], x[2]}
	o.Xp = []float64{x[0], x[1], x[2]}
	o.Xt = []float64{x[0], x[1], x[2]}
	o.Vp = make([]float64, 3)
	o.Vt = make([]float64, 3)
	o.Ap = make([]float64, 3)
	o.At = make([]float64, 3)
	o.ID = make([]int, ndof)
	o.BC = make([]int, ndof)
	o.Active = make([]bool, ndof)
	o.Rid = -1
	o.Fr = make([]float64, ndof)
	return
}

// Value returns the current total value of dof; i.e. displacement, pressure or concentration
func (o *Node) Value(dof int) float64 {
	switch dof {
	case P:
		return o.Pt
	case C:
		return o.Ct
	}
	return o.Xt[dof] - o.X0[dof]
}

// SetValue sets the current total value of dof
func (o *Node) SetValue(dof int, v float64) {
	switch dof {
	case P:
		o.Pt = v
	case C:
		o.Ct = v
	default:
		o.Xt[dof] = o.X0[dof] + v
	}
}

// PrevValue returns the total value of dof at the end of the last converged step
func (o *Node) PrevValue(dof int) float64 {
	switch dof {
	case P:
		return o.Pp
	case C:
		return o.Cp
	}
	return o.Xp[dof] - o.X0[dof]
}

// Displacement returns the current displacement
func (o *Node) Displacement() []float64 {
	return []float64{o.Xt[0] - o.X0[0], o.Xt[1] - o.X0[1], o.Xt[2] - o.X0[2]}
}

// Snapshot copies the current state into the previous state
func (o *Node) Snapshot() {
	copy(o.Xp, o.Xt)
	copy(o.Vp, o.Vt)
	copy(o.Ap, o.At)
	o.Pp = o.Pt
	o.Cp = o.Ct
}

// Restore discards the current state by copying back the previous state
func (o *Node) Restore() {
	copy(o.Xt, o.Xp)
	copy(o.Vt, o.Vp)
	copy(o.At, o.Ap)
	o.Pt = o.Pp
	o.Ct = o.Cp
}
