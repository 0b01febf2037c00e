// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/nlfem/inp"
)

// FEsolver implements the nonlinear solution of one time step
type FEsolver interface {
	Init() (err error)                 // allocates data after the model is built
	SolveStep() (err error)            // advances the model from Time to Time+Dt; failures are returned as *Failure
	Serialize(ar *Archive) (err error) // writes or reads counters, vectors, rigid bodies and contributors
	Stats() Counters                   // returns the counters of the current step
}

// solverallocators holds all available solvers
var solverallocators = make(map[string]func(m *Model) FEsolver)

// NewSolver returns the nonlinear solver selected in the simulation data
func NewSolver(m *Model) (sol FEsolver, err error) {
	alloc, ok := solverallocators[m.Sim.Solver.Type]
	if !ok {
		return nil, chk.Err("cannot find solver type=%q. e.g. {imp, exp} => implicit, explicit", m.Sim.Solver.Type)
	}
	sol = alloc(m)
	err = sol.Init()
	return
}

// UserDecision holds the answer of a user monitor called after each iteration
type UserDecision int

// user decisions
const (
	UserNone            UserDecision = iota // let the solver decide
	UserForceConversion                     // accept the current iteration as converged
	UserForceFailure                        // reject the step
)

// Counters holds the counters of a nonlinear solver
type Counters struct {
	Nrhs    int // number of residual evaluations in the current step
	Niter   int // number of iterations in the current step
	Nref    int // number of stiffness reformations in the current step
	Ntotref int // total number of stiffness reformations
	Naug    int // number of augmentations in the current step
	Neq     int // number of equations
	Nreq    int // number of nodal equations
}

// solverBase holds data and procedures shared by all nonlinear solvers
type solverBase struct {
	Counters
	m  *Model          // model
	ui []float64       // [neq] step increments of free equations
	R  *GlobalVector   // residual
	sd *inp.SolverData // solver parameters
}

// newSolverBase returns a new solver base
func newSolverBase(m *Model) (o solverBase) {
	o.m = m
	o.sd = &m.Sim.Solver
	o.Neq = m.Eqs.Neq
	o.Nreq = m.Eqs.Nreq
	o.ui = make([]float64, m.Eqs.Neq)
	o.R = NewGlobalVector(m.Eqs)
	return
}

// Stats returns the counters
func (o *solverBase) Stats() Counters { return o.Counters }

// PrepStep prepares the model for a new step from m.Time to m.Time+m.Dt
func (o *solverBase) PrepStep() (err error) {
	m := o.m
	t, dt := m.Time, m.Dt

	// 1. previous state
	for _, nod := range m.Nodes {
		nod.Snapshot()
	}
	for _, rb := range m.Rigid {
		rb.Commit()
	}
	for _, ele := range m.Elems {
		ele.Backup()
	}

	// 2. counters
	o.Nrhs, o.Niter, o.Nref, o.Naug = 0, 0, 0, 0

	// 3. external forces
	m.nodalLoads(m.Fn, t+dt, dt)

	// 4. prescribed values
	m.applyPrescribed(t + dt)

	// 5. prescribed increments of rigid bodies
	for _, rb := range m.Rigid {
		rb.SetStepIncrements(t, dt)
	}
	ComposeChain(m.Rigid)

	// 6. initial kinematic update
	for i := range o.ui {
		o.ui[i] = 0
	}
	m.Eqs.IncrementNodes(o.ui)

	// 7. contributors
	for _, c := range m.Contacts {
		c.Update(0)
	}

	// 8. material time
	for _, ele := range m.Elems {
		if e, ok := ele.(timeSetter); ok {
			e.SetTime(t+dt, dt)
		}
	}

	// 9. stresses
	return m.UpdateStresses()
}

// increment applies the step increments to all nodes and updates stresses and contributors
func (o *solverBase) increment() (err error) {
	o.m.Eqs.IncrementNodes(o.ui)
	for _, c := range o.m.Contacts {
		c.Update(o.Niter + 1)
	}
	return o.m.UpdateStresses()
}

// residual computes the residual and counts the evaluation
func (o *solverBase) residual() (err error) {
	o.Nrhs++
	return o.m.Residual(o.R)
}

// monitor calls the user monitor, if any
func (o *solverBase) monitor() UserDecision {
	if o.m.Monitor == nil {
		return UserNone
	}
	return o.m.Monitor(o.m, o.Niter)
}

// Serialize writes or reads counters, vectors, rigid bodies and contributors; in this order
func (o *solverBase) Serialize(ar *Archive) (err error) {
	m := o.m

	// counters
	ar.Section("solver", "nrhs", "niter", "nref", "ntotref", "naug", "neq", "nreq")
	ar.Int(&o.Nrhs)
	ar.Int(&o.Niter)
	ar.Int(&o.Nref)
	ar.Int(&o.Ntotref)
	ar.Int(&o.Naug)
	ar.Int(&o.Neq)
	ar.Int(&o.Nreq)
	if err = ar.Err(); err != nil {
		return
	}
	if o.Neq != m.Eqs.Neq || o.Nreq != m.Eqs.Nreq {
		return chk.Err("archive has neq=%d and nreq=%d but the model has neq=%d and nreq=%d", o.Neq, o.Nreq, m.Eqs.Neq, m.Eqs.Nreq)
	}

	// vectors
	ar.Section("vectors", "Fn", "ui")
	ar.Floats(m.Fn)
	ar.Floats(o.ui)

	// rigid bodies
	for _, rb := range m.Rigid {
		rb.Serialize(ar)
	}

	// contributors
	for _, c := range m.Contacts {
		if err = c.Serialize(ar); err != nil {
			return
		}
	}
	return ar.Err()
}

// printResHeader prints the header of the residual table
func printResHeader() {
	io.Pf("\n%13s%4s%23s%23s%23s\n", "t", "it", "|R|", "|δu|", "|E|")
}

// printRes prints one line of the residual table
func printRes(t float64, it int, normR, normU, normE float64) {
	io.Pf("%13.6e%4d%23.15e%23.15e%23.15e\n", t, it, normR, normU, normE)
}
