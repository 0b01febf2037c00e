// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import "math"

// Oscillator implements the undamped mass-spring system m ü + k u = F starting from rest
//  u(t) = F/k (1 - cos ω t)   with   ω = √(k/m)
type Oscillator struct {
	K float64 // stiffness
	M float64 // mass
	F float64 // constant force
}

// Omega returns the natural frequency
func (o Oscillator) Omega() float64 { return math.Sqrt(o.K / o.M) }

// CriticalDt returns the largest step size for which the central difference
// (symplectic Euler) scheme is stable
func (o Oscillator) CriticalDt() float64 { return 2.0 / o.Omega() }

// Exact returns the displacement and velocity at time t
func (o Oscillator) Exact(t float64) (u, v float64) {
	ω := o.Omega()
	u = o.F / o.K * (1.0 - math.Cos(ω*t))
	v = o.F / o.K * ω * math.Sin(ω*t)
	return
}

// Discrete returns the displacements and velocities of the scheme
//  a = (F - k u) / m,  v ← v + a dt,  u ← u + v dt
// after each one of nsteps steps
func (o Oscillator) Discrete(dt float64, nsteps int) (U, V []float64) {
	U = make([]float64, nsteps)
	V = make([]float64, nsteps)
	u, v := 0.0, 0.0
	for i := 0; i < nsteps; i++ {
		a := (o.F - o.K*u) / o.M
		v += a * dt
		u += v * dt
		U[i], V[i] = u, v
	}
	return
}
