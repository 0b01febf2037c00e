// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsol

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/mat"
)

// CG implements the preconditioned conjugate gradient method
//  The operator must be symmetric and definite (either sign)
type CG struct {
	opts   *Options       // options
	mat    SparseMatrix   // matrix, if any
	op     Operator       // operator
	pc     Preconditioner // preconditioner [may be nil]
	pcAuto bool           // preconditioner is built from mat by Factor
	niter  int            // number of iterations in the last BackSolve
}

// PCSolver solves systems by applying a preconditioner only: x = P⁻¹ b
type PCSolver struct {
	mat    SparseMatrix   // matrix used to build the preconditioner [may be nil]
	pc     Preconditioner // preconditioner
	pcAuto bool           // preconditioner is built from mat by Factor
}

// add solver to factory
func init() {
	solverallocators["cg"] = func(opts *Options) Solver {
		return NewCG(opts)
	}
}

// NewCG returns a new CG solver
func NewCG(opts *Options) (o *CG) {
	o = new(CG)
	o.opts = opts
	pc, err := newPrecond(opts.Precond)
	if err != nil {
		chk.Panic("%v", err)
	}
	if pc != nil {
		o.pc = pc
		o.pcAuto = true
	}
	return
}

// CreateSparseMatrix returns a new CSR matrix
func (o *CG) CreateSparseMatrix(kind MatrixType) SparseMatrix {
	m := new(CSRMatrix)
	o.mat, o.op = m, m
	return m
}

// SetSparseMatrix sets matrix
func (o *CG) SetSparseMatrix(a SparseMatrix) (err error) {
	o.mat, o.op = a, a
	return
}

// SetOperator sets a matrix-free operator
func (o *CG) SetOperator(a Operator) (err error) {
	o.mat, o.op = nil, a
	return
}

// SetPreconditioner sets a preconditioner that is already built
func (o *CG) SetPreconditioner(p Preconditioner) {
	o.pc = p
	o.pcAuto = false
}

// Iterations returns the number of iterations in the last BackSolve
func (o *CG) Iterations() int { return o.niter }

// PreProcess checks the operator
func (o *CG) PreProcess() (err error) {
	if o.op == nil {
		return chk.Err("CG: operator must be set before PreProcess")
	}
	return
}

// Factor builds the preconditioner
func (o *CG) Factor() (err error) {
	if o.pcAuto {
		if o.mat == nil {
			return chk.Err("CG: preconditioner %q requires a matrix", o.opts.Precond)
		}
		if err = o.pc.Create(o.mat); err != nil {
			return
		}
	}
	if o.opts.PrintCondNum && o.mat != nil {
		io.Pforan("CG: condition number = %g\n", mat.Cond(ToDense(o.mat), 2))
	}
	return
}

// BackSolve computes x = A⁻¹ b starting from x = 0
func (o *CG) BackSolve(x, b []float64) (err error) {
	if o.op == nil {
		return chk.Err("CG: operator must be set before BackSolve")
	}
	n := o.op.Rows()
	if len(x) != n || len(b) != n {
		return chk.Err("CG: BackSolve: incompatible sizes: len(x)=%d, len(b)=%d, neq=%d", len(x), len(b), n)
	}
	la.Vector(x).Fill(0)
	r := la.NewVector(n)
	copy(r, b)
	o.niter = 0
	rnorm := r.Norm()
	tol := math.Max(o.opts.RelTol*rnorm, o.opts.AbsTol)
	if rnorm <= tol || rnorm == 0 {
		return
	}
	z := la.NewVector(n)
	if err = o.precond(r, z); err != nil {
		return
	}
	p := z.GetCopy()
	q := la.NewVector(n)
	rz := la.VecDot(r, z)
	maxit := o.opts.maxIter(n)
	for o.niter < maxit {
		o.niter++
		if err = o.op.MulV(p, q); err != nil {
			return
		}
		pq := la.VecDot(p, q)
		if pq == 0 {
			return chk.Err("CG: breakdown: p⋅A⋅p = 0 at iteration %d", o.niter)
		}
		alpha := rz / pq
		for i := 0; i < n; i++ {
			x[i] += alpha * p[i]
			r[i] -= alpha * q[i]
		}
		rnorm = r.Norm()
		if o.opts.Verbose {
			io.Pf("CG: %4d : %23.15e\n", o.niter, rnorm)
		}
		if rnorm <= tol {
			return
		}
		if err = o.precond(r, z); err != nil {
			return
		}
		rznew := la.VecDot(r, z)
		beta := rznew / rz
		rz = rznew
		for i := 0; i < n; i++ {
			p[i] = z[i] + beta*p[i]
		}
	}
	if o.opts.FailMaxIters {
		return chk.Err("CG: max number of iterations reached (%d). residual = %g > tol = %g", maxit, rnorm, tol)
	}
	if o.opts.Verbose {
		io.Pfyel("CG: max number of iterations reached (%d). residual = %g. returning best effort\n", maxit, rnorm)
	}
	return
}

// Destroy frees memory
func (o *CG) Destroy() {}

// precond computes z := P⁻¹ r
func (o *CG) precond(r, z []float64) (err error) {
	if o.pc == nil {
		copy(z, r)
		return
	}
	return o.pc.Apply(r, z)
}

// PCSolver ////////////////////////////////////////////////////////////////////////////////////////

// NewPCSolver returns a solver that applies a preconditioner. If build is true, the
// preconditioner is created from the matrix in Factor
func NewPCSolver(pc Preconditioner, build bool) *PCSolver {
	return &PCSolver{pc: pc, pcAuto: build}
}

// CreateSparseMatrix returns a new CSR matrix
func (o *PCSolver) CreateSparseMatrix(kind MatrixType) SparseMatrix {
	m := new(CSRMatrix)
	o.mat = m
	return m
}

// SetSparseMatrix sets matrix
func (o *PCSolver) SetSparseMatrix(a SparseMatrix) (err error) {
	o.mat = a
	return
}

// SetOperator ignores the operator: the preconditioner alone defines the solution
func (o *PCSolver) SetOperator(a Operator) (err error) {
	return
}

// SetPreconditioner sets a preconditioner that is already built
func (o *PCSolver) SetPreconditioner(p Preconditioner) {
	o.pc = p
	o.pcAuto = false
}

// Iterations returns zero
func (o *PCSolver) Iterations() int { return 0 }

// PreProcess checks the preconditioner
func (o *PCSolver) PreProcess() (err error) {
	if o.pcAuto && o.mat == nil {
		return chk.Err("PC solver: matrix must be set before PreProcess")
	}
	return
}

// Factor builds the preconditioner
func (o *PCSolver) Factor() (err error) {
	if o.pcAuto {
		return o.pc.Create(o.mat)
	}
	return
}

// BackSolve computes x = P⁻¹ b
func (o *PCSolver) BackSolve(x, b []float64) (err error) {
	if o.pc == nil {
		return chk.Err("PC solver: preconditioner is not set")
	}
	return o.pc.Apply(b, x)
}

// Destroy frees memory
func (o *PCSolver) Destroy() {}
