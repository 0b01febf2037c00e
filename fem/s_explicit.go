// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// SolverExplicit advances the model with a lumped mass and no stiffness matrix
//  a = (R + D) / M    v = vp + a dt    u = up + v dt
//  where D are damping forces nudging the velocities of the nodes of each element towards
//  their mass-weighted average.
//  Note: the step size is not checked against the stability limit.
type SolverExplicit struct {
	solverBase
	masses []ElementMass // [nelem] lumped masses of elements
	M      []float64     // [neq] lumped mass matrix
	D      *GlobalVector // damping forces
	a      []float64     // [neq] accelerations
	v      []float64     // [neq] velocities at the end of the current step
	vp     []float64     // [neq] velocities at the end of the last converged step
}

// set factory
func init() {
	solverallocators["exp"] = func(m *Model) FEsolver {
		return &SolverExplicit{solverBase: newSolverBase(m)}
	}
}

// Init computes the lumped mass
func (o *SolverExplicit) Init() (err error) {
	m := o.m
	for _, ele := range m.Elems {
		if _, ok := ele.(fluidElement); ok {
			return chk.Err("explicit solver cannot be used with element %d, which has pressure and concentration", ele.Id())
		}
	}
	o.masses = m.ElementMasses()
	o.M = m.LumpedMass(o.masses)
	o.D = NewGlobalVector(m.Eqs)
	n := m.Eqs.Neq
	o.a = make([]float64, n)
	o.v = make([]float64, n)
	o.vp = make([]float64, n)
	if m.Verbose {
		io.Pfblue2("explicit solver: total mass = %g\n", m.TotalMass())
	}
	return
}

// SolveStep solves one time step
func (o *SolverExplicit) SolveStep() (err error) {
	m := o.m
	dt := m.Dt
	if err = o.PrepStep(); err != nil {
		return
	}
	m.Summary.StartStep()

	// residual and damping
	if err = o.residual(); err != nil {
		return
	}
	o.damping()

	// update
	for i := range o.ui {
		o.a[i] = 0
		if o.M[i] > 0 {
			o.a[i] = (o.R.V[i] + o.D.V[i]) / o.M[i]
		}
		o.v[i] = o.vp[i] + o.a[i]*dt
		o.ui[i] = o.v[i] * dt
	}
	for _, eq := range m.Eqs.Pinned() {
		o.a[eq], o.v[eq], o.ui[eq] = 0, 0, 0
	}
	if err = o.increment(); err != nil {
		return
	}
	o.Niter++
	m.Summary.AddResid(la.Vector(o.R.V).Largest(1))
	if o.monitor() == UserForceFailure {
		return newFailure(IterationFailure, nil, "step rejected by user at t=%g", m.Time+dt)
	}

	// accept velocities
	o.setNodalVelocities()
	copy(o.vp, o.v)
	return
}

// Serialize writes or reads counters, vectors, rigid bodies, contributors and velocities
func (o *SolverExplicit) Serialize(ar *Archive) (err error) {
	if err = o.solverBase.Serialize(ar); err != nil {
		return
	}
	ar.Section("explicit", "vp")
	ar.Floats(o.vp)
	return ar.Err()
}

// damping computes the damping forces
//  D_a = β m_e f_a (v̄ - v_a)   with   v̄ = Σ f_a v_a
//  β = 0 means no damping
func (o *SolverExplicit) damping() {
	m := o.m
	o.D.Zero()
	β := o.sd.DynDamping
	if β == 0 {
		return
	}
	for i, ele := range m.Elems {
		em := o.masses[i]
		nodes := ele.Nodes()
		va := make([][3]float64, len(nodes))
		var vavg [3]float64
		for a, nod := range nodes {
			for d := 0; d < 3; d++ {
				va[a][d] = o.nodalVelocity(nod, d)
				vavg[d] += em.Frac[a] * va[a][d]
			}
		}
		for a, nod := range nodes {
			for d := 0; d < 3; d++ {
				o.D.AddNodal(nod, d, β*em.Total*em.Frac[a]*(vavg[d]-va[a][d]))
			}
		}
	}
}

// nodalVelocity returns the velocity of dof d of nod at the end of the last converged step
func (o *SolverExplicit) nodalVelocity(nod *Node, d int) (v float64) {
	for _, t := range o.m.Eqs.Expand(nod, d, 1, nil) {
		v += t.W * o.vp[t.Eq]
	}
	return
}

// setNodalVelocities sets the velocities and accelerations of nodes
func (o *SolverExplicit) setNodalVelocities() {
	m := o.m
	dt := m.Dt
	for _, nod := range m.Nodes {
		for d := 0; d < 3; d++ {
			if eq := nod.ID[d]; eq >= 0 {
				nod.Vt[d] = o.v[eq]
				nod.At[d] = o.a[eq]
				continue
			}
			nod.Vt[d] = (nod.Xt[d] - nod.Xp[d]) / dt
			nod.At[d] = (nod.Vt[d] - nod.Vp[d]) / dt
		}
	}
}
