// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements a nonlinear finite element engine with rigid bodies, linear constraints,
// contact and implicit or explicit time stepping
package fem

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"github.com/cpmech/nlfem/inp"
	"github.com/cpmech/nlfem/linsol"
)

// Model holds all data for a simulation using the finite element method
type Model struct {

	// input
	Sim     *inp.Simulation // simulation data
	SimPath string          // absolute path of simulation file; empty if built from memory
	Alias   string          // alias appended to the simulation key

	// discretisation
	Dofs       *Dofs         // dofs per node
	Nodes      []*Node       // all nodes
	Elems      []Element     // all elements sorted by cell id
	Rigid      []*RigidBody  // rigid bodies
	LinCons    []*LinCon     // linear constraints
	Contacts   []Contributor // nonlinear constraints
	NodalBcs   []*NodalBc    // prescribed values and concentrated loads
	BodyForces []*bodyForce  // body forces
	Eqs        *Equations    // equation numbers

	// time
	Time   float64 // time at the end of the last converged step
	Dt     float64 // current step size
	Nsteps int     // number of converged steps

	// global system
	Fn     []float64           // [neq] external forces at the end of the current step
	LinSol linsol.Solver       // linear solver; nil with the explicit solver
	K      linsol.SparseMatrix // tangent matrix; nil with the explicit solver

	// solution
	Solver   FEsolver                               // nonlinear solver
	Summary  *Summary                               // output times and residuals
	Recorder Recorder                               // writes results; nil means no output
	Monitor  func(m *Model, niter int) UserDecision // called after each iteration; may be nil
	Verbose  bool                                   // show messages

	// auxiliary
	asm     *Assembler    // assembler of K
	fe      [][]float64   // [nelem] element force buffers
	ke      [][][]float64 // [nelem] element matrix buffers
	mustIdx int           // index of the next must-point
	retries int           // failed attempts of the current step
}

// ReadModel reads a simulation file and allocates a new model
//  Input:
//   simfilepath -- simulation (.sim) filename including full path
//   alias       -- word to be appended to simulation key; e.g. when running multiple FE solutions
//   erasePrev   -- erase previous results files
func ReadModel(simfilepath, alias string, erasePrev bool) (o *Model, err error) {
	sim, err := inp.ReadSim(simfilepath, alias, erasePrev)
	if err != nil {
		return
	}
	if o, err = NewModel(sim); err != nil {
		return nil, err
	}
	if o.SimPath, err = filepath.Abs(simfilepath); err != nil {
		return nil, chk.Err("cannot find absolute path of %q: %v", simfilepath, err)
	}
	o.Alias = alias
	return
}

// NewModel allocates nodes, elements, constraints, equations and solvers
func NewModel(sim *inp.Simulation) (o *Model, err error) {

	// model
	o = &Model{Sim: sim, Verbose: sim.Data.Verbose}
	o.Dt = sim.Control.Dt
	if sim.HasUpc {
		o.Dofs = NewDofs("ux", "uy", "uz", "p", "c")
	} else {
		o.Dofs = NewDofs("ux", "uy", "uz")
	}

	// nodes
	o.Nodes = make([]*Node, len(sim.Mesh.Verts))
	for i, v := range sim.Mesh.Verts {
		o.Nodes[i] = NewNode(v.Id, v.C, o.Dofs.Count())
	}

	// elements
	for _, reg := range sim.Regions {
		for _, cell := range sim.Mesh.CellTag2cells[reg.Tag] {
			ele, e := NewElement(cell, reg, o.Nodes)
			if e != nil {
				return nil, e
			}
			o.Elems = append(o.Elems, ele)
		}
	}
	sort.Slice(o.Elems, func(i, j int) bool { return o.Elems[i].Id() < o.Elems[j].Id() })

	// constraints and boundary conditions
	if o.Rigid, err = newRigidBodies(sim, o.Nodes); err != nil {
		return nil, err
	}
	if o.LinCons, err = newLinCons(sim, o.Dofs, o.Nodes); err != nil {
		return nil, err
	}
	if err = o.setBcs(); err != nil {
		return nil, err
	}

	// equations
	if o.Eqs, err = InitEquations(o.Nodes, o.Rigid, o.LinCons, sim.HasUpc); err != nil {
		return nil, err
	}
	o.Fn = make([]float64, o.Eqs.Neq)
	o.fe = make([][]float64, len(o.Elems))
	o.ke = make([][][]float64, len(o.Elems))
	for i, ele := range o.Elems {
		n := localSize(ele)
		o.fe[i] = make([]float64, n)
		o.ke[i] = utl.Alloc(n, n)
	}

	// contact
	for _, dat := range sim.Contact.Walls {
		wall, e := newRigidWall(sim, dat)
		if e != nil {
			return nil, e
		}
		if e = wall.Init(o); e != nil {
			return nil, e
		}
		o.Contacts = append(o.Contacts, wall)
	}

	// linear solver
	if sim.Solver.Type == "imp" {
		if err = o.initLinSol(); err != nil {
			return nil, err
		}
	}

	// output
	o.Summary = NewSummary(sim.DirOut, sim.Key, sim.Data.Encoder)
	o.Recorder = &NodeRecorder{Verbose: o.Verbose}

	// nonlinear solver
	if o.Solver, err = NewSolver(o); err != nil {
		return nil, err
	}
	if o.Verbose {
		io.Pf("nodes = %d, elements = %d, rigid bodies = %d, equations = %d (nodal = %d)\n",
			len(o.Nodes), len(o.Elems), len(o.Rigid), o.Eqs.Neq, o.Eqs.Nreq)
	}
	return
}

// initLinSol allocates the linear solver and the global matrix
func (o *Model) initLinSol() (err error) {
	sol, err := linsol.New(&o.Sim.LinSol)
	if err != nil {
		return
	}
	n0, n1 := o.Eqs.Range()
	if s, ok := sol.(linsol.Partitioned); ok {
		s.SetPartitions(n0, n1)
	}
	if s, ok := sol.(linsol.StepAware); ok {
		s.SetStepCounter(func() int { return o.Nsteps })
	}
	if s, ok := sol.(interface{ SetMassBuilder(linsol.MassBuilder) }); ok {
		s.SetMassBuilder(o)
	}
	kind := linsol.RealUnsymmetric
	if o.Sim.LinSol.Symmetric {
		kind = linsol.RealSymmetric
	}
	K := sol.CreateSparseMatrix(kind)
	if K == nil {
		return chk.Err("linear solver %q cannot create a matrix for this model: n0=%d n1=%d", o.Sim.LinSol.Name, n0, n1)
	}
	if err = K.Create(o.Eqs.Pattern(o.Elems)); err != nil {
		return
	}
	if err = sol.SetSparseMatrix(K); err != nil {
		return
	}
	if err = sol.PreProcess(); err != nil {
		return
	}
	o.LinSol, o.K = sol, K
	o.asm = NewAssembler(K, o.Eqs)
	return
}

// Run runs the time loop until the final time
func (o *Model) Run() (err error) {

	// log
	inp.InitLogFile(o.Sim.DirOut, o.Sim.Key)
	defer inp.FlushLog()
	ctl := &o.Sim.Control
	cputime := time.Now()
	if o.Nsteps == 0 {
		o.write(writeStart, o.Time)
	}
	inp.Log("run started: t=%g tf=%g dt=%g solver=%s\n", o.Time, ctl.Tf, o.Dt, o.Sim.Solver.Type)

	// time loop
	tol := 1e-10 * math.Max(ctl.Tf, 1)
	for ctl.Tf-o.Time > tol {

		// step size
		dtNom := o.Dt
		if o.Time+o.Dt > ctl.Tf {
			o.Dt = ctl.Tf - o.Time
		}
		for o.mustIdx < len(ctl.MustPoints) && ctl.MustPoints[o.mustIdx] <= o.Time+tol {
			o.mustIdx++
		}
		must := false
		if o.mustIdx < len(ctl.MustPoints) && o.Time+o.Dt >= ctl.MustPoints[o.mustIdx]-tol {
			o.Dt = ctl.MustPoints[o.mustIdx] - o.Time
			must = true
		}

		// solve
		err = o.Solver.SolveStep()
		f, isFailure := AsFailure(err)
		if err != nil && !(isFailure && f.Soft()) {
			if !isFailure {
				return
			}
			if err = o.stepFailed(f); err != nil {
				return
			}
			continue
		}
		o.stepDone(err != nil, must)
		err = nil

		// next step size
		if ctl.Stepper.Auto {
			niter := o.Solver.Stats().Niter
			o.Dt = math.Min(dtNom*float64(ctl.Stepper.OptIter+1)/float64(niter+1), ctl.Stepper.DtMax)
		} else {
			o.Dt = dtNom
		}
	}

	// final results
	o.write(writeFinal, o.Time)
	if o.Verbose {
		io.Pf("\nfinal time = %v\n", o.Time)
		io.Pflmag("cpu time   = %v\n", time.Now().Sub(cputime))
	}
	inp.Log("run finished: t=%g steps=%d\n", o.Time, o.Nsteps)
	if err = o.Summary.Save(o.Verbose); err != nil {
		return
	}
	return o.Dump()
}

// stepDone accepts the current step
func (o *Model) stepDone(forced, must bool) {
	for _, ele := range o.Elems {
		ele.Commit()
	}
	st := o.Solver.Stats()
	o.Time += o.Dt
	o.Nsteps++
	o.Summary.Steps = append(o.Summary.Steps, StepInfo{
		Time:    o.Time,
		Dt:      o.Dt,
		Niter:   st.Niter,
		Nref:    st.Nref,
		Naug:    st.Naug,
		Retries: o.retries,
		Forced:  forced,
	})
	o.retries = 0
	if forced {
		inp.Log("step %d: convergence forced at t=%g\n", o.Nsteps, o.Time)
	}
	if o.Verbose {
		io.Pf("step %6d: t = %13.6e  dt = %13.6e  niter = %3d  nref = %3d  naug = %3d\n", o.Nsteps, o.Time, o.Dt, st.Niter, st.Nref, st.Naug)
	}
	o.write(writeStepEnd, o.Time)
	if must {
		o.mustIdx++
		o.write(writeMustPoint, o.Time)
	}
}

// stepFailed restores the state of the last converged step and halves the step size.
// The failure is returned if no more retries are possible.
func (o *Model) stepFailed(f *Failure) (err error) {

	// restore
	for _, nod := range o.Nodes {
		nod.Restore()
	}
	for _, rb := range o.Rigid {
		rb.Restore()
	}
	for _, ele := range o.Elems {
		ele.Restore()
	}
	o.Summary.DiscardStep()
	inp.Log("step %d failed at t=%g with dt=%g: %v\n", o.Nsteps+1, o.Time+o.Dt, o.Dt, f)
	if o.Verbose {
		printFailure(f, o.Time+o.Dt, o.Dt)
	}

	// retry
	stp := &o.Sim.Control.Stepper
	if !stp.Auto {
		return f
	}
	o.retries++
	if o.retries > stp.MaxRetries {
		inp.Log("max number of retries (%d) reached\n", stp.MaxRetries)
		return f
	}
	o.Dt /= 2
	if o.Dt < stp.DtMin {
		inp.Log("step size %g is smaller than the minimum %g\n", o.Dt, stp.DtMin)
		return f
	}
	if o.Verbose {
		printRestart(o.Time, o.Dt, o.retries, stp.MaxRetries)
	}
	return
}

// write events
type writeEvent int

const (
	writeStart        writeEvent = iota // before the first step
	writeIteration                      // after each iteration
	writeAugmentation                   // after each augmentation
	writeStepEnd                        // after each converged step
	writeMustPoint                      // after reaching a must-point
	writeFinal                          // at the end of the run
)

// write calls the recorder if the plot level requires results for ev
func (o *Model) write(ev writeEvent, t float64) {
	if o.Recorder == nil {
		return
	}
	lvl := o.Sim.Control.PlotLevel
	ok := false
	switch ev {
	case writeStart:
		ok = lvl != inp.PLOT_NEVER
	case writeIteration:
		ok = lvl == inp.PLOT_MINOR_ITRS
	case writeAugmentation:
		ok = lvl == inp.PLOT_AUGMENTATIONS
	case writeStepEnd:
		ok = lvl == inp.PLOT_MAJOR_ITRS || lvl == inp.PLOT_MINOR_ITRS || lvl == inp.PLOT_AUGMENTATIONS
	case writeMustPoint:
		ok = lvl == inp.PLOT_MUST_POINTS
	case writeFinal:
		ok = lvl == inp.PLOT_FINAL || lvl == inp.PLOT_STEP_FINAL
	}
	if !ok {
		return
	}
	if err := o.Recorder.Write(o, t); err != nil {
		inp.LogErr(err, io.Sf("cannot write results at t=%g", t))
		if o.Verbose {
			io.PfRed("cannot write results at t=%g: %v\n", t, err)
		}
	}
}

// Serialize writes or reads the time, the solver data and the state of nodes and elements
func (o *Model) Serialize(ar *Archive) (err error) {

	// time
	nnod, nele := len(o.Nodes), len(o.Elems)
	ar.Section("model", "time", "dt", "nsteps", "mustidx", "nnod", "nele")
	ar.Float(&o.Time)
	ar.Float(&o.Dt)
	ar.Int(&o.Nsteps)
	ar.Int(&o.mustIdx)
	ar.Int(&nnod)
	ar.Int(&nele)
	if err = ar.Err(); err != nil {
		return
	}
	if nnod != len(o.Nodes) || nele != len(o.Elems) {
		return chk.Err("archive has %d nodes and %d elements but the model has %d nodes and %d elements", nnod, nele, len(o.Nodes), len(o.Elems))
	}

	// solver
	if err = o.Solver.Serialize(ar); err != nil {
		return
	}

	// nodes
	ar.Section("nodes", "Xp", "Xt", "Vp", "Vt", "Ap", "At", "Pp", "Pt", "Cp", "Ct", "Fr")
	for _, nod := range o.Nodes {
		ar.Floats(nod.Xp)
		ar.Floats(nod.Xt)
		ar.Floats(nod.Vp)
		ar.Floats(nod.Vt)
		ar.Floats(nod.Ap)
		ar.Floats(nod.At)
		ar.Float(&nod.Pp)
		ar.Float(&nod.Pt)
		ar.Float(&nod.Cp)
		ar.Float(&nod.Ct)
		ar.Floats(nod.Fr)
	}

	// elements
	for _, ele := range o.Elems {
		ele.Serialize(ar)
	}
	return ar.Err()
}

// Dump saves the state of the model to <dirout>/<key>.dmp
func (o *Model) Dump() (err error) {
	ar := NewArchiveWriter()
	ar.Section("header", "sim", "alias")
	ar.String(&o.SimPath)
	ar.String(&o.Alias)
	if err = o.Serialize(ar); err != nil {
		return
	}
	return save_file(out_dmp_path(o.Sim.DirOut, o.Sim.Key), bytes.NewBuffer(ar.Bytes()), o.Verbose)
}

// LoadRestart reads a restart file (or an archive) and returns the model in the archived state
//  Note: the time control is redefined by the control section of the restart file, if any.
//        If only time_steps is given, the final time becomes t + time_steps·dt
func LoadRestart(fn string) (o *Model, err error) {

	// archive
	rst, err := inp.ReadRestart(fn)
	if err != nil {
		return
	}
	b, err := os.ReadFile(rst.Archive)
	if err != nil {
		return nil, chk.Err("cannot read archive %q: %v", rst.Archive, err)
	}
	ar, err := NewArchiveReader(b)
	if err != nil {
		return
	}
	var simPath, alias string
	ar.Section("header", "sim", "alias")
	ar.String(&simPath)
	ar.String(&alias)
	if err = ar.Err(); err != nil {
		return
	}
	if simPath == "" {
		return nil, chk.Err("archive %q does not refer to a simulation file", rst.Archive)
	}

	// model
	if o, err = ReadModel(simPath, alias, false); err != nil {
		return
	}
	if err = o.Serialize(ar); err != nil {
		return nil, chk.Err("cannot load archive %q:\n%v", rst.Archive, err)
	}
	if sum, e := ReadSum(o.Sim.DirOut, o.Sim.Key, o.Sim.Data.Encoder); e == nil {
		o.Summary = sum
	}

	// time control
	ctl := &o.Sim.Control
	rst.Control.ApplyTo(ctl)
	if rst.Control != nil && rst.Control.Dt != nil {
		o.Dt = ctl.Dt
		if ctl.Stepper.DtMax < ctl.Dt {
			ctl.Stepper.DtMax = ctl.Dt
		}
	}

	// time_steps without final_time counts steps from the archived time
	if rst.Control != nil && rst.Control.NSteps != nil && rst.Control.Tf == nil {
		if ctl.NSteps < 1 {
			return nil, chk.Err("restart: time_steps must be positive. %d is invalid", ctl.NSteps)
		}
		ctl.Tf = o.Time + float64(ctl.NSteps)*o.Dt
	}
	inp.Log("restart from %q at t=%g\n", rst.Archive, o.Time)
	if o.Verbose {
		printBox(boxRestart, "- R E S T A R T -", io.Sf("archive : %s", rst.Archive), io.Sf("time    : %g", o.Time))
	}
	return
}
