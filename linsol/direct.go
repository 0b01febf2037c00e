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

// Umfpack implements a direct solver using UMFPACK via gosl/la
type Umfpack struct {
	opts  *Options        // options
	a     *CSRMatrix      // matrix
	t     *la.Triplet     // triplet handed to UMFPACK
	sps   la.SparseSolver // UMFPACK solver
	last  Stamp           // stamp of the last factorisation
	ready bool            // factorisation is available
	symb  int             // structure stamp used to initialise sps
}

// Dense implements a direct solver using gonum's dense LU decomposition
type Dense struct {
	opts *Options // options
	a    SparseMatrix
	lu   mat.LU
	last Stamp
	done bool
}

// add solvers to factory
func init() {
	solverallocators["umfpack"] = func(opts *Options) Solver {
		return &Umfpack{opts: opts}
	}
	solverallocators["dense"] = func(opts *Options) Solver {
		return &Dense{opts: opts}
	}
}

// Umfpack /////////////////////////////////////////////////////////////////////////////////////////

// CreateSparseMatrix returns a new CSR matrix
func (o *Umfpack) CreateSparseMatrix(kind MatrixType) SparseMatrix {
	o.a = new(CSRMatrix)
	return o.a
}

// SetSparseMatrix sets matrix
func (o *Umfpack) SetSparseMatrix(a SparseMatrix) (err error) {
	o.a, err = asCSR(a)
	o.Destroy()
	return
}

// PreProcess does nothing; the symbolic step is carried out by Factor after each structure change
func (o *Umfpack) PreProcess() (err error) {
	if o.a == nil {
		return chk.Err("umfpack: matrix must be set before PreProcess")
	}
	return
}

// Factor performs the factorisation if either the values or the structure changed
func (o *Umfpack) Factor() (err error) {
	if o.a == nil {
		return chk.Err("umfpack: matrix must be set before Factor")
	}
	if o.a.NonZeroes() == 0 {
		return chk.Err("umfpack: cannot factorise empty matrix")
	}
	stamp := o.a.Stamp()
	if o.ready && stamp == o.last {
		return
	}
	defer recoverErr(&err, "umfpack: factorisation failed")
	o.ready = false

	// structure changed => new triplet and symbolic initialisation
	if o.sps == nil || stamp.Structure != o.symb {
		if o.sps != nil {
			o.sps.Free()
		}
		o.t = new(la.Triplet)
		o.a.ToTriplet(o.t)
		o.sps = la.NewSparseSolver("umfpack")
		o.sps.Init(o.t, &la.SpArgs{Symmetric: o.opts.Symmetric, Verbose: o.opts.Verbose})
		o.symb = stamp.Structure
		if o.opts.Verbose {
			io.Pfyel("umfpack: symbolic initialisation with %d non-zeroes\n", o.a.NonZeroes())
		}
	} else {
		o.a.ToTriplet(o.t)
	}
	o.sps.Fact()
	o.last = stamp
	o.ready = true
	return
}

// BackSolve computes x = A⁻¹ b
func (o *Umfpack) BackSolve(x, b []float64) (err error) {
	if !o.ready {
		return chk.Err("umfpack: Factor must be called before BackSolve")
	}
	if len(x) != o.a.Rows() || len(b) != o.a.Rows() {
		return chk.Err("umfpack: BackSolve: incompatible sizes: len(x)=%d, len(b)=%d, neq=%d", len(x), len(b), o.a.Rows())
	}
	defer recoverErr(&err, "umfpack: solve failed")
	o.sps.Solve(x, b, false)
	return
}

// Destroy frees memory
func (o *Umfpack) Destroy() {
	if o.sps != nil {
		o.sps.Free()
		o.sps = nil
	}
	o.ready = false
}

// Dense ///////////////////////////////////////////////////////////////////////////////////////////

// CreateSparseMatrix returns a new CSR matrix
func (o *Dense) CreateSparseMatrix(kind MatrixType) SparseMatrix {
	o.a = new(CSRMatrix)
	return o.a
}

// SetSparseMatrix sets matrix
func (o *Dense) SetSparseMatrix(a SparseMatrix) (err error) {
	o.a = a
	o.done = false
	return
}

// PreProcess checks the matrix
func (o *Dense) PreProcess() (err error) {
	if o.a == nil {
		return chk.Err("dense: matrix must be set before PreProcess")
	}
	if o.a.Rows() != o.a.Cols() {
		return chk.Err("dense: matrix must be square. %d x %d is invalid", o.a.Rows(), o.a.Cols())
	}
	return
}

// Factor computes the LU decomposition
func (o *Dense) Factor() (err error) {
	if o.a == nil {
		return chk.Err("dense: matrix must be set before Factor")
	}
	stamp := o.a.Stamp()
	if o.done && stamp == o.last {
		return
	}
	o.lu.Factorize(ToDense(o.a))
	cond := o.lu.Cond()
	if o.opts.PrintCondNum {
		io.Pforan("dense: condition number = %g\n", cond)
	}
	if math.IsInf(cond, 1) || math.IsNaN(cond) {
		o.done = false
		return chk.Err("dense: matrix is singular")
	}
	o.last = stamp
	o.done = true
	return
}

// BackSolve computes x = A⁻¹ b
func (o *Dense) BackSolve(x, b []float64) (err error) {
	if !o.done {
		return chk.Err("dense: Factor must be called before BackSolve")
	}
	n := o.a.Rows()
	if len(x) != n || len(b) != n {
		return chk.Err("dense: BackSolve: incompatible sizes: len(x)=%d, len(b)=%d, neq=%d", len(x), len(b), n)
	}
	xv := mat.NewVecDense(n, x)
	err = o.lu.SolveVecTo(xv, false, mat.NewVecDense(n, append([]float64{}, b...)))
	if err != nil {
		if _, ok := err.(mat.Condition); ok {
			if o.opts.Verbose {
				io.Pfyel("dense: %v\n", err)
			}
			return nil
		}
		return chk.Err("dense: solve failed: %v", err)
	}
	return
}

// Destroy frees memory
func (o *Dense) Destroy() {
	o.done = false
}
