// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// QuatIdentity is the null rotation
var QuatIdentity = quat.Number{Real: 1}

// QuatFromRotVec returns the unit quaternion of the rotation vector θ (axis times angle)
func QuatFromRotVec(θ []float64) quat.Number {
	a := math.Sqrt(θ[0]*θ[0] + θ[1]*θ[1] + θ[2]*θ[2])
	if a < 1e-15 {
		return QuatIdentity
	}
	s := math.Sin(a/2) / a
	return quat.Number{Real: math.Cos(a / 2), Imag: s * θ[0], Jmag: s * θ[1], Kmag: s * θ[2]}
}

// RotVecFromQuat returns the rotation vector of the unit quaternion q; the angle is in [0, π]
func RotVecFromQuat(q quat.Number) (θ []float64) {
	if q.Real < 0 {
		q = quat.Scale(-1, q)
	}
	θ = make([]float64, 3)
	s := math.Sqrt(q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
	if s < 1e-15 {
		return
	}
	a := 2 * math.Atan2(s, q.Real)
	θ[0], θ[1], θ[2] = a*q.Imag/s, a*q.Jmag/s, a*q.Kmag/s
	return
}

// QuatRotate returns q⋅v⋅q* for a unit quaternion q
func QuatRotate(q quat.Number, v []float64) []float64 {
	p := quat.Mul(quat.Mul(q, quat.Number{Imag: v[0], Jmag: v[1], Kmag: v[2]}), quat.Conj(q))
	return []float64{p.Imag, p.Jmag, p.Kmag}
}

// quatNormalize returns q/|q|
func quatNormalize(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n == 0 {
		return QuatIdentity
	}
	return quat.Scale(1/n, q)
}
