// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/nlfem/ana"
)

func Test_explicit01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("explicit01. first step of spring-mass system")

	m := newTestModel(tst, spring+`  - {type: load, nodes: [1], keys: [ux]}
solver: {type: exp, dyn_damping: 0}
control: {time_steps: 1, final_time: 0.01, plot_level: PLOT_NEVER}
`, "explicit01")

	if _, ok := m.Solver.(*SolverExplicit); !ok {
		tst.Errorf("solver should be explicit; %T given\n", m.Solver)
		return
	}
	if m.LinSol != nil || m.K != nil {
		tst.Errorf("explicit solver does not need a linear solver\n")
	}
	chk.Int(tst, "neq", m.Eqs.Neq, 1)
	chk.Float64(tst, "mass", 1e-15, m.TotalMass(), 2)
	chk.Array(tst, "M", 1e-15, m.LumpedMass(m.ElementMasses()), []float64{1})

	if err := m.Run(); err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}
	nod := m.Nodes[1]
	chk.Float64(tst, "u", 1e-15, nod.Value(0), 1e-4)
	chk.Float64(tst, "v", 1e-15, nod.Vt[0], 0.01)
	chk.Float64(tst, "a", 1e-15, nod.At[0], 1)
	chk.Array(tst, "fixed node", 1e-15, m.Nodes[0].Displacement(), []float64{0, 0, 0})
	chk.Int(tst, "niter", m.Summary.Steps[0].Niter, 1)
}

func Test_explicit02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("explicit02. spring-mass oscillation")

	osc := ana.Oscillator{K: 100, M: 1, F: 1}

	// stable
	dt := 0.01
	m := newTestModel(tst, spring+`  - {type: load, nodes: [1], keys: [ux]}
solver: {type: exp, dyn_damping: 0}
control: {step_size: 0.01, final_time: 1, plot_level: PLOT_NEVER}
`, "explicit02a")
	var U []float64
	m.Monitor = func(m *Model, niter int) UserDecision {
		U = append(U, m.Nodes[1].Value(0))
		return UserNone
	}
	if err := m.Run(); err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}
	chk.Int(tst, "nsteps", m.Nsteps, 100)
	Ucorrect, Vcorrect := osc.Discrete(dt, 100)
	chk.Array(tst, "U", 1e-13, U, Ucorrect)
	chk.Float64(tst, "v", 1e-12, m.Nodes[1].Vt[0], Vcorrect[99])
	for i, u := range U {
		if math.Abs(u) > 0.021 {
			tst.Errorf("stable run diverged at step %d: u=%g", i, u)
			return
		}
	}
	ue, _ := osc.Exact(m.Time)
	chk.Float64(tst, "u ≈ exact", 2e-3, U[99], ue)

	// unstable
	if osc.CriticalDt() > 0.25 {
		tst.Errorf("step size of unstable run is below the critical step size\n")
		return
	}
	m = newTestModel(tst, spring+`  - {type: load, nodes: [1], keys: [ux]}
solver: {type: exp, dyn_damping: 0}
control: {step_size: 0.25, final_time: 5, plot_level: PLOT_NEVER}
`, "explicit02b")
	if err := m.Run(); err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}
	chk.Int(tst, "nsteps", m.Nsteps, 20)
	if math.Abs(m.Nodes[1].Value(0)) < 1 {
		tst.Errorf("run with dt > dtcrit should diverge: u=%g", m.Nodes[1].Value(0))
	}
}

func Test_explicit03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("explicit03. damping")

	energy := func(m *Model) float64 {
		nod := m.Nodes[1]
		du := nod.Value(0) - 0.01
		return 0.5*100*du*du + 0.5*nod.Vt[0]*nod.Vt[0]
	}

	var E []float64
	for i, β := range []float64{0, 0.99} {
		m := newTestModel(tst, spring+io.Sf(`  - {type: load, nodes: [1], keys: [ux]}
solver: {type: exp, dyn_damping: %g}
control: {step_size: 0.01, final_time: 3, plot_level: PLOT_NEVER}
`, β), io.Sf("explicit03_%d", i))
		if err := m.Run(); err != nil {
			tst.Errorf("Run failed:\n%v", err)
			return
		}
		E = append(E, energy(m))
	}
	io.Pforan("energy: undamped = %v  damped = %v\n", E[0], E[1])
	if E[1] > 0.5*E[0] {
		tst.Errorf("damping should dissipate energy: undamped=%g damped=%g\n", E[0], E[1])
	}

	// second step by hand: v̄ = v/2 since node 0 is fixed and m_e = 2
	//  a = (F - k u) + β m_e f_a (v̄ - v)
	for i, β := range []float64{0, 0.5, 0.99} {
		m := newTestModel(tst, spring+io.Sf(`  - {type: load, nodes: [1], keys: [ux]}
solver: {type: exp, dyn_damping: %g}
control: {time_steps: 2, final_time: 0.02, plot_level: PLOT_NEVER}
`, β), io.Sf("explicit03_step2_%d", i))
		if err := m.Run(); err != nil {
			tst.Errorf("Run failed:\n%v", err)
			return
		}
		u1, v1 := 1e-4, 0.01
		a := (1 - 100*u1) + β*2*0.5*(0.5*v1-v1)
		v := v1 + a*0.01
		chk.Float64(tst, io.Sf("a(β=%g)", β), 1e-14, m.Nodes[1].At[0], a)
		chk.Float64(tst, io.Sf("v(β=%g)", β), 1e-15, m.Nodes[1].Vt[0], v)
		chk.Float64(tst, io.Sf("u(β=%g)", β), 1e-15, m.Nodes[1].Value(0), u1+v*0.01)
	}
}

func Test_explicit04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("explicit04. automatic time stepping and must-points")

	m := newTestModel(tst, spring+`  - {type: load, nodes: [1], keys: [ux]}
solver: {type: exp, dyn_damping: 0}
control:
  step_size: 0.01
  final_time: 0.1
  must_points: [0.05]
  plot_level: PLOT_NEVER
  time_stepper: {auto: true, opt_iter: 3, dtmax: 0.04}
`, "explicit04")
	if err := m.Run(); err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}

	// one iteration per step doubles the step size until dtmax
	var times, dts []float64
	for _, s := range m.Summary.Steps {
		times = append(times, s.Time)
		dts = append(dts, s.Dt)
		chk.Int(tst, "niter", s.Niter, 1)
	}
	io.Pforan("times = %v\n", times)
	io.Pforan("dts   = %v\n", dts)
	chk.Array(tst, "times", 1e-12, times, []float64{0.01, 0.03, 0.05, 0.09, 0.1})
	chk.Array(tst, "dts", 1e-12, dts, []float64{0.01, 0.02, 0.02, 0.04, 0.01})
	chk.Float64(tst, "final time", 1e-12, m.Time, 0.1)
}
