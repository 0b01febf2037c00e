// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/num/quat"
)

func Test_rigid01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rigid01. quaternions")

	θ := []float64{0.1, -0.2, 0.3}
	q := QuatFromRotVec(θ)
	chk.Array(tst, "θ", 1e-14, RotVecFromQuat(q), θ)

	// rotation of π/2 about z
	q = QuatFromRotVec([]float64{0, 0, math.Pi / 2})
	chk.Array(tst, "Rz⋅ex", 1e-14, QuatRotate(q, []float64{1, 0, 0}), []float64{0, 1, 0})
	chk.Array(tst, "Rz⋅ez", 1e-14, QuatRotate(q, []float64{0, 0, 1}), []float64{0, 0, 1})

	// zero rotation
	chk.Array(tst, "θ0", 1e-14, RotVecFromQuat(QuatFromRotVec([]float64{0, 0, 0})), []float64{0, 0, 0})
}

func Test_rigid02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rigid02. chain of bodies")

	// A rotates about z; B is carried by A; C is carried by B and slides along its local x
	A := NewRigidBody(0, "A", []float64{0, 0, 0})
	B := NewRigidBody(1, "B", []float64{1, 0, 0})
	C := NewRigidBody(2, "C", []float64{2, 0, 0})
	B.Parent, C.Parent = A, B
	A.Dul[5] = math.Pi / 2
	C.Dul[0] = 0.5
	bodies := []*RigidBody{A, B, C}
	ComposeChain(bodies)
	UpdateRigidBodies(bodies, nil, nil)

	chk.Array(tst, "A.Rt", 1e-14, A.Rt, []float64{0, 0, 0})
	chk.Array(tst, "B.Rt", 1e-14, B.Rt, []float64{0, 1, 0})
	chk.Array(tst, "C.Rt", 1e-14, C.Rt, []float64{0, 2.5, 0})
	chk.Array(tst, "B.Du", 1e-14, B.Du, []float64{-1, 1, 0, 0, 0, math.Pi / 2})
	chk.Array(tst, "C.Ut", 1e-14, C.Ut, []float64{-2, 2.5, 0, 0, 0, math.Pi / 2})

	// restore and commit
	C.Restore()
	chk.Array(tst, "C.Rt restored", 1e-14, C.Rt, []float64{2, 0, 0})
	UpdateRigidBodies(bodies, nil, nil)
	for _, rb := range bodies {
		rb.Commit()
	}
	chk.Array(tst, "C.Rp", 1e-14, C.Rp, []float64{0, 2.5, 0})

	// a second step without increments keeps the configuration
	for _, rb := range bodies {
		for k := range rb.Dul {
			rb.Dul[k] = 0
		}
	}
	ComposeChain(bodies)
	UpdateRigidBodies(bodies, nil, nil)
	chk.Array(tst, "C.Rt", 1e-14, C.Rt, []float64{0, 2.5, 0})
	chk.Array(tst, "C.Ut", 1e-14, C.Ut, []float64{-2, 2.5, 0, 0, 0, math.Pi / 2})
}

func Test_rigid03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rigid03. attached nodes and reactions")

	rb := NewRigidBody(0, "block", []float64{0, 0, 0})
	nod := NewNode(0, []float64{1, 0, 0}, 3)
	nod.Rid = 0
	rb.Nodes = []int{0}
	rb.Du[5] = math.Pi / 2
	UpdateRigidBodies([]*RigidBody{rb}, nil, []*Node{nod})
	chk.Array(tst, "x", 1e-14, nod.Xt, []float64{0, 1, 0})

	// force along x at (0,1,0) => moment -z
	rb.ClearReactions()
	rb.addReaction(nod.Xt, 0, 2)
	chk.Array(tst, "Fr", 1e-14, rb.Fr, []float64{2, 0, 0})
	chk.Array(tst, "Mr", 1e-14, rb.Mr, []float64{0, 0, -2})
}

func Test_rigid04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rigid04. chain with rotations at all levels")

	// A turns about z; B turns about its local x; C turns about its local z
	A := NewRigidBody(0, "A", []float64{0, 0, 0})
	B := NewRigidBody(1, "B", []float64{1, 0, 0})
	C := NewRigidBody(2, "C", []float64{1, 1, 0})
	B.Parent, C.Parent = A, B
	A.Dul[5] = math.Pi / 2
	B.Dul[3] = math.Pi / 2
	C.Dul[5] = math.Pi / 3
	C.Nodes = []int{0}
	nod := NewNode(0, []float64{2, 1, 0}, 3)
	nod.Rid = 2
	bodies := []*RigidBody{A, B, C}
	ComposeChain(bodies)
	UpdateRigidBodies(bodies, nil, []*Node{nod})

	// centres
	chk.Array(tst, "A.Rt", 1e-14, A.Rt, []float64{0, 0, 0})
	chk.Array(tst, "B.Rt", 1e-14, B.Rt, []float64{0, 1, 0})
	chk.Array(tst, "C.Rt", 1e-14, C.Rt, []float64{0, 1, 1})

	// rotation of C: Rz(π/2)⋅Rx(π/2)⋅Rz(π/3), column by column
	s3 := math.Sqrt(3) / 2
	chk.Array(tst, "Qc⋅ex", 1e-14, QuatRotate(C.Qt, []float64{1, 0, 0}), []float64{0, 0.5, s3})
	chk.Array(tst, "Qc⋅ey", 1e-14, QuatRotate(C.Qt, []float64{0, 1, 0}), []float64{0, -s3, 0.5})
	chk.Array(tst, "Qc⋅ez", 1e-14, QuatRotate(C.Qt, []float64{0, 0, 1}), []float64{1, 0, 0})

	// same as the product of the local rotations in parent-to-child order
	Qm := quat.Mul(quat.Mul(QuatFromRotVec([]float64{0, 0, math.Pi / 2}), QuatFromRotVec([]float64{math.Pi / 2, 0, 0})), QuatFromRotVec([]float64{0, 0, math.Pi / 3}))
	for _, v := range [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {0.3, -0.7, 1.1}} {
		chk.Array(tst, "Qc⋅v", 1e-14, QuatRotate(C.Qt, v), QuatRotate(Qm, v))
	}

	// attached node: x = Rc + Qc⋅(X0 - Rc0)
	chk.Array(tst, "x", 1e-14, nod.Xt, []float64{0, 1.5, 1 + s3})
}
