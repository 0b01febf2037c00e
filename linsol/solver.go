// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsol

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Solver defines linear solvers
//  The sequence of calls is:
//    CreateSparseMatrix or SetSparseMatrix
//    PreProcess              -- once per structure
//    Factor                  -- once per set of values
//    BackSolve               -- once per right-hand-side
//    Destroy
type Solver interface {
	CreateSparseMatrix(kind MatrixType) SparseMatrix // returns a matrix compatible with this solver
	SetSparseMatrix(a SparseMatrix) (err error)      // sets matrix
	PreProcess() (err error)                         // structural setup
	Factor() (err error)                             // numerical factorisation or iterative setup
	BackSolve(x, b []float64) (err error)            // computes x = A⁻¹ b
	Destroy()                                        // frees memory
}

// IterativeSolver defines solvers that only require the action of an operator
type IterativeSolver interface {
	Solver
	SetOperator(a Operator) (err error)   // sets linear operator (e.g. a Schur complement)
	SetPreconditioner(p Preconditioner)   // sets the (right) preconditioner
	Iterations() int                      // number of iterations performed during the last BackSolve
}

// Preconditioner defines approximations of the inverse of a matrix
type Preconditioner interface {
	Create(a SparseMatrix) (err error) // builds preconditioner from matrix
	Apply(x, y []float64) (err error)  // y := P⁻¹ x
}

// Partitioned is implemented by solvers that require the number of equations in each block
type Partitioned interface {
	SetPartitions(n0, n1 int)
}

// StepAware is implemented by solvers that change strategy with the time step number
type StepAware interface {
	SetStepCounter(ntimesteps func() int)
}

// Options holds linear solver options
type Options struct {
	Name         string       `yaml:"name"`           // "umfpack", "dense", "fgmres", "cg", "mixed", "schur"
	Verbose      bool         `yaml:"verbose"`        // print messages
	Symmetric    bool         `yaml:"symmetric"`      // use symmetric solver
	MaxIter      int          `yaml:"maxiter"`        // max number of iterations. 0 means the number of equations
	Restart      int          `yaml:"restart"`        // FGMRES restart
	RelTol       float64      `yaml:"reltol"`         // relative residual tolerance
	AbsTol       float64      `yaml:"abstol"`         // absolute residual tolerance
	FailMaxIters bool         `yaml:"fail_max_iters"` // fail when reaching MaxIter; otherwise return best effort
	PrintCondNum bool         `yaml:"print_cond_num"` // print condition number (expensive)
	Precond      string       `yaml:"precond"`        // "none", "diagonal", "ilu0", "ichol"
	Schur        SchurOptions `yaml:"schur"`          // Schur solver options
}

// SchurOptions holds options for the Schur complement solver
type SchurOptions struct {
	ASolver     string  `yaml:"a_solver"`     // "lu", "dense", "fgmres_ilu0", "ilu0", "diagonal"
	SchurSolver string  `yaml:"schur_solver"` // "fgmres", "cg", "pc"
	Precond     string  `yaml:"precond"`      // "none", "diagonal_mass", "ichol_mass"
	ZeroDBlock  bool    `yaml:"zero_d_block"` // ignore the D block
	Bk          float64 `yaml:"bk"`           // scaling of the second partition
}

// NewOptions returns options with default values
func NewOptions(name string) (o *Options) {
	o = new(Options)
	o.Name = name
	o.FailMaxIters = true
	o.SetDefault()
	return
}

// SetDefault sets defaults for values that are not set
func (o *Options) SetDefault() {
	if o.Name == "" {
		o.Name = "umfpack"
	}
	if o.Restart < 1 {
		o.Restart = 30
	}
	if o.RelTol <= 0 {
		o.RelTol = 1e-8
	}
	if o.Precond == "" {
		o.Precond = "none"
	}
	if o.Schur.ASolver == "" {
		o.Schur.ASolver = "lu"
	}
	if o.Schur.SchurSolver == "" {
		o.Schur.SchurSolver = "fgmres"
	}
	if o.Schur.Precond == "" {
		o.Schur.Precond = "none"
	}
	if o.Schur.Bk == 0 {
		o.Schur.Bk = 1
	}
}

// maxIter returns the max number of iterations for a system with n equations
func (o *Options) maxIter(n int) int {
	if o.MaxIter > 0 {
		return o.MaxIter
	}
	return n
}

// solverallocators holds all available solvers
var solverallocators = make(map[string]func(opts *Options) Solver)

// New returns a new linear solver
func New(opts *Options) (sol Solver, err error) {
	if opts == nil {
		opts = NewOptions("")
	}
	opts.SetDefault()
	allocator, ok := solverallocators[opts.Name]
	if !ok {
		return nil, chk.Err("cannot find linear solver named %q. available: %v", opts.Name, Names())
	}
	sol = allocator(opts)
	if opts.Verbose {
		io.Pf("linear solver %q allocated\n", opts.Name)
	}
	return
}

// Names returns the sorted names of all registered solvers
func Names() (names []string) {
	for name := range solverallocators {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// recoverErr converts panics from gosl routines into errors
func recoverErr(err *error, msg string) {
	if r := recover(); r != nil {
		*err = chk.Err("%s: %v", msg, r)
	}
}

// newPrecond allocates a preconditioner by name
func newPrecond(name string) (p Preconditioner, err error) {
	switch name {
	case "", "none":
		return nil, nil
	case "diagonal":
		return new(Diagonal), nil
	case "ilu0":
		return new(ILU0), nil
	case "ichol":
		return new(IChol), nil
	}
	return nil, chk.Err("cannot find preconditioner named %q", name)
}

// asCSR returns the CSR matrix behind a sparse matrix
func asCSR(a SparseMatrix) (c *CSRMatrix, err error) {
	c, ok := a.(*CSRMatrix)
	if !ok {
		return nil, chk.Err("matrix must be a CSR matrix; got %T", a)
	}
	return
}
