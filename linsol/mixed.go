// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsol

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// strategies of the mixed solver
const (
	DirectStrategy    = 0
	IterativeStrategy = 1
)

// Mixed uses a direct solver during the first time step and an iterative solver (FGMRES-ILU0) afterwards
type Mixed struct {
	opts       *Options   // options
	solvers    [2]Solver  // direct and iterative solvers
	strategy   int        // current strategy
	a          SparseMatrix
	ntimesteps func() int // returns the number of completed time steps
}

// add solver to factory
func init() {
	solverallocators["mixed"] = func(opts *Options) Solver {
		return NewMixed(opts, &Umfpack{opts: opts})
	}
}

// NewMixed returns a new mixed solver with the given direct solver
func NewMixed(opts *Options, direct Solver) (o *Mixed) {
	o = new(Mixed)
	o.opts = opts
	iopts := *opts
	iopts.Precond = "ilu0"
	o.solvers[DirectStrategy] = direct
	o.solvers[IterativeStrategy] = NewFGMRES(&iopts)
	o.strategy = DirectStrategy
	return
}

// SetStepCounter sets the function returning the number of completed time steps
func (o *Mixed) SetStepCounter(ntimesteps func() int) {
	o.ntimesteps = ntimesteps
}

// Strategy returns the current strategy
func (o *Mixed) Strategy() int { return o.strategy }

// CreateSparseMatrix returns a new unsymmetric CSR matrix shared by both solvers
func (o *Mixed) CreateSparseMatrix(kind MatrixType) SparseMatrix {
	if kind != RealUnsymmetric {
		return nil
	}
	o.a = new(CSRMatrix)
	o.solvers[0].SetSparseMatrix(o.a)
	o.solvers[1].SetSparseMatrix(o.a)
	return o.a
}

// SetSparseMatrix sets the matrix in both solvers
func (o *Mixed) SetSparseMatrix(a SparseMatrix) (err error) {
	if _, err = asCSR(a); err != nil {
		return
	}
	o.a = a
	for _, s := range o.solvers {
		if err = s.SetSparseMatrix(a); err != nil {
			return
		}
	}
	return
}

// PreProcess pre-processes both solvers
func (o *Mixed) PreProcess() (err error) {
	for _, s := range o.solvers {
		if err = s.PreProcess(); err != nil {
			return
		}
	}
	return
}

// Factor selects the strategy and factorises
func (o *Mixed) Factor() (err error) {
	if o.steps() == 0 {
		o.setStrategy(DirectStrategy)
	} else {
		o.setStrategy(IterativeStrategy)
	}
	return o.solvers[o.strategy].Factor()
}

// BackSolve switches to the iterative solver if the first step is over
func (o *Mixed) BackSolve(x, b []float64) (err error) {
	if o.steps() > 0 && o.strategy == DirectStrategy {
		o.setStrategy(IterativeStrategy)
		if err = o.solvers[o.strategy].Factor(); err != nil {
			return chk.Err("mixed solver: cannot factorise after switching strategy:\n%v", err)
		}
	}
	return o.solvers[o.strategy].BackSolve(x, b)
}

// Destroy frees memory
func (o *Mixed) Destroy() {
	for _, s := range o.solvers {
		s.Destroy()
	}
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func (o *Mixed) steps() int {
	if o.ntimesteps == nil {
		return 0
	}
	return o.ntimesteps()
}

func (o *Mixed) setStrategy(n int) {
	if o.strategy != n {
		if o.opts.Verbose {
			name := "direct"
			if n == IterativeStrategy {
				name = "iterative"
			}
			io.Pfyel("mixed solver: switching to strategy %s\n", name)
		}
		o.strategy = n
	}
}
