// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/nlfem/inp"
)

// SolverImplicit solves each step with the Newton-Raphson method, a line search and
// augmentations of nonlinear constraints. Convergence is checked with the norms of
// displacements, energy and residual.
type SolverImplicit struct {
	solverBase
	du  la.Vector // [neq] correction of the current iteration
	rhs la.Vector // [neq] copy of the residual used in the linear solve
	r0  la.Vector // [neq] residual before the line search
}

// set factory
func init() {
	solverallocators["imp"] = func(m *Model) FEsolver {
		return &SolverImplicit{solverBase: newSolverBase(m)}
	}
}

// Init allocates vectors
func (o *SolverImplicit) Init() (err error) {
	if o.m.LinSol == nil {
		return newFailure(LinearSolverFailure, nil, "implicit solver requires a linear solver")
	}
	n := o.m.Eqs.Neq
	o.du = la.NewVector(n)
	o.rhs = la.NewVector(n)
	o.r0 = la.NewVector(n)
	return
}

// SolveStep solves one time step
func (o *SolverImplicit) SolveStep() (err error) {
	m := o.m
	if err = o.PrepStep(); err != nil {
		return
	}
	m.Summary.StartStep()

	// augmentations
	forced := false
	for {
		var f bool
		if f, err = o.newton(); err != nil {
			return
		}
		forced = forced || f
		if len(m.Contacts) == 0 {
			break
		}
		done := true
		for _, c := range m.Contacts {
			if !c.Augment(o.Naug) {
				done = false
			}
		}
		if done {
			break
		}
		if o.Naug >= o.sd.MaxAug {
			inp.Log("t=%g: max number of augmentations (%d) reached\n", m.Time+m.Dt, o.sd.MaxAug)
			break
		}
		o.Naug++
		if m.Verbose {
			io.Pfyel("augmentation %d\n", o.Naug)
		}
		m.write(writeAugmentation, m.Time+m.Dt)
	}
	if forced {
		return newFailure(ForceConversion, nil, "convergence forced by user at t=%g", m.Time+m.Dt)
	}
	return
}

// newton runs Newton iterations until convergence
func (o *SolverImplicit) newton() (forced bool, err error) {
	m := o.m
	sd := o.sd
	t := m.Time + m.Dt

	// residual and stiffness
	if err = o.residual(); err != nil {
		return
	}
	if err = o.reform(); err != nil {
		return
	}
	reformEach := sd.ReformEach
	if reformEach < 1 {
		reformEach = sd.MaxUps
	}

	// norms
	var normR0, normE0, normU float64
	normR0 = la.VecDot(o.R.V, o.R.V)
	if m.Sim.Data.ShowR {
		printResHeader()
	}

	// iterations
	it0 := o.Niter // iterations accumulate over augmentations
	ndivref := 0   // reformations due to divergence
	for {

		// solve for du
		copy(o.rhs, o.R.V)
		if err = m.LinSol.BackSolve(o.du, o.rhs); err != nil {
			return false, newFailure(LinearSolverFailure, err, "t=%g, iteration %d", t, o.Niter)
		}
		normEi := math.Abs(la.VecDot(o.du, o.R.V))
		if o.Niter == it0 {
			normE0 = normEi
		}

		// update with line search
		copy(o.r0, o.R.V)
		s := 1.0
		if sd.LStol > 0 {
			if s, err = o.lineSearch(); err != nil {
				return
			}
		} else {
			la.VecAdd(o.ui, 1, o.ui, 1, o.du)
			if err = o.increment(); err != nil {
				return
			}
			if err = o.residual(); err != nil {
				return
			}
		}

		// norms
		normR := la.VecDot(o.R.V, o.R.V)
		normu := s * s * la.VecDot(o.du, o.du)
		normU = la.VecDot(o.ui, o.ui)
		normE := math.Abs(s * la.VecDot(o.du, o.R.V))
		if math.IsNaN(normE) || math.IsInf(normE, 0) || math.IsNaN(normR) {
			return false, newFailure(EnergyDiverging, nil, "t=%g, iteration %d: energy norm is %g", t, o.Niter, normE)
		}
		if m.Sim.Data.ShowR {
			printRes(t, o.Niter, math.Sqrt(normR), math.Sqrt(normu), normE)
		}
		m.Summary.AddResid(math.Sqrt(normR))

		// convergence
		converged := true
		if sd.Rtol > 0 && normR > sd.Rtol*sd.Rtol*normR0 {
			converged = false
		}
		if sd.Dtol > 0 && normu > sd.Dtol*sd.Dtol*normU {
			converged = false
		}
		if sd.Etol > 0 && normE > sd.Etol*normE0 {
			converged = false
		}
		if normE0 == 0 {
			converged = true
		}

		// user decision
		switch o.monitor() {
		case UserForceConversion:
			converged, forced = true, true
		case UserForceFailure:
			return false, newFailure(IterationFailure, nil, "step rejected by user at t=%g, iteration %d", t, o.Niter)
		}
		o.Niter++
		m.write(writeIteration, t)
		if converged {
			return
		}
		if o.Niter >= sd.MaxIt {
			return false, newFailure(IterationFailure, nil, "t=%g: max number of iterations (%d) reached", t, sd.MaxIt)
		}

		// reformation
		stuck := sd.LStol > 0 && s <= sd.LSmin
		diverging := normE > normEi || stuck
		if diverging {
			if ndivref >= sd.MaxRefs {
				if stuck {
					return false, newFailure(ZeroLinestepSize, nil, "t=%g, iteration %d: line search step reached the minimum %g", t, o.Niter, sd.LSmin)
				}
				return false, newFailure(MaxStiffnessReformations, nil, "t=%g: max number of reformations (%d) reached", t, sd.MaxRefs)
			}
			ndivref++
		}
		if diverging || o.Niter%reformEach == 0 {
			if err = o.reform(); err != nil {
				return
			}
		}
	}
}

// reform assembles and factorises the tangent matrix
func (o *SolverImplicit) reform() (err error) {
	if err = o.m.Stiffness(); err != nil {
		return
	}
	if err = o.m.LinSol.Factor(); err != nil {
		return newFailure(LinearSolverFailure, err, "factorisation failed at t=%g", o.m.Time+o.m.Dt)
	}
	o.Nref++
	o.Ntotref++
	return
}

// lineSearch updates ui with s⋅du, where s minimises the energy along du by the secant method
//  Note: o.r0 holds the residual at s = 0
func (o *SolverImplicit) lineSearch() (s float64, err error) {
	sd := o.sd
	E0 := la.VecDot(o.du, o.r0)
	uiOld := make([]float64, len(o.ui))
	copy(uiOld, o.ui)
	apply := func(s float64) (E float64, err error) {
		la.VecAdd(o.ui, 1, uiOld, s, o.du)
		if err = o.increment(); err != nil {
			return
		}
		if err = o.residual(); err != nil {
			return
		}
		return la.VecDot(o.du, o.R.V), nil
	}

	// full step
	s = 1.0
	E1, err := apply(s)
	if err != nil || E0 == 0 || math.Abs(E1) <= sd.LStol*math.Abs(E0) {
		return
	}

	// secant iterations
	sOld, Eold := 0.0, E0
	for i := 0; i < sd.LSiter; i++ {
		den := E1 - Eold
		if den == 0 {
			break
		}
		sNew := s - E1*(s-sOld)/den
		if sNew < sd.LSmin {
			sNew = sd.LSmin
		}
		if sNew > 1 {
			sNew = 1
		}
		sOld, Eold = s, E1
		s = sNew
		if E1, err = apply(s); err != nil {
			return
		}
		if math.Abs(E1) <= sd.LStol*math.Abs(E0) || s == sd.LSmin {
			break
		}
	}
	return
}
