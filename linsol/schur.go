// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsol

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// MassBuilder assembles a mass-like matrix over the equations of the second partition.
// Equation numbers are shifted by -n0; lumped means that only the diagonal is built (row sums)
type MassBuilder interface {
	BuildMass(n0, n1 int, lumped bool) (m *CSRMatrix, err error)
}

// SchurComplement is the operator S⋅x = C⋅A⁻¹⋅B⋅x - D⋅x
//  S is never formed explicitly; each multiplication requires one solution with A.
//  Note the sign: with H = C⋅y - G, the second partition is found by solving S⋅v = H
type SchurComplement struct {
	asol Solver     // solver for A; already factorised
	b    *CSRMatrix // block 12
	c    *CSRMatrix // block 21
	d    *CSRMatrix // block 22 [may be nil]
	t0   []float64  // [n0] B⋅x
	t1   []float64  // [n0] A⁻¹⋅B⋅x
	t2   []float64  // [n1] D⋅x
}

// NewSchurComplement returns a new operator. d may be nil
func NewSchurComplement(asol Solver, b, c, d *CSRMatrix) (o *SchurComplement) {
	o = &SchurComplement{asol: asol, b: b, c: c, d: d}
	o.t0 = make([]float64, b.Rows())
	o.t1 = make([]float64, b.Rows())
	o.t2 = make([]float64, c.Rows())
	return
}

// Rows returns the number of equations of the second partition
func (o *SchurComplement) Rows() int { return o.c.Rows() }

// MulV computes y := C⋅A⁻¹⋅B⋅x - D⋅x
func (o *SchurComplement) MulV(x, y []float64) (err error) {
	if err = o.b.MulV(x, o.t0); err != nil {
		return
	}
	if err = o.asol.BackSolve(o.t1, o.t0); err != nil {
		return
	}
	if err = o.c.MulV(o.t1, y); err != nil {
		return
	}
	if o.d != nil {
		if err = o.d.MulV(x, o.t2); err != nil {
			return
		}
		for i := range y {
			y[i] -= o.t2[i]
		}
	}
	return
}

// Schur solves 2×2 block systems using the Schur complement of A
//
//   ┌       ┐ ┌   ┐   ┌   ┐
//   │ A   B │ │ u │   │ F │
//   │ C   D │ │ v │ = │ G │
//   └       ┘ └   ┘   └   ┘
//
type Schur struct {
	opts   *Options        // options
	n0, n1 int             // partitions
	k      *BlockMatrix    // matrix
	asol   Solver          // solver for A
	ssol   IterativeSolver // solver for the Schur complement
	pc     Preconditioner  // preconditioner for the Schur complement [may be nil]
	mb     MassBuilder     // builds the mass matrix for preconditioning
	scaled Stamp           // stamp of k after scaling B and D
	done   bool            // B and D have been scaled at least once
}

// add solver to factory
func init() {
	solverallocators["schur"] = func(opts *Options) Solver {
		return &Schur{opts: opts}
	}
}

// SetPartitions sets the number of equations in each partition
func (o *Schur) SetPartitions(n0, n1 int) {
	o.n0, o.n1 = n0, n1
}

// SetMassBuilder sets the object that builds the mass matrix for the preconditioner
func (o *Schur) SetMassBuilder(mb MassBuilder) {
	o.mb = mb
}

// Iterations returns the number of iterations of the Schur solver in the last BackSolve
func (o *Schur) Iterations() int {
	if o.ssol == nil {
		return 0
	}
	return o.ssol.Iterations()
}

// CreateSparseMatrix returns a new block matrix
func (o *Schur) CreateSparseMatrix(kind MatrixType) SparseMatrix {
	if o.n0 < 1 || o.n1 < 1 {
		return nil
	}
	o.k = NewBlockMatrix(o.n0, o.n1)
	return o.k
}

// SetSparseMatrix sets matrix
func (o *Schur) SetSparseMatrix(a SparseMatrix) (err error) {
	k, ok := a.(*BlockMatrix)
	if !ok {
		return chk.Err("Schur: matrix must be a block matrix; got %T", a)
	}
	if k.Partitions() != 2 {
		return chk.Err("Schur: matrix must have 2 partitions; got %d", k.Partitions())
	}
	o.k = k
	o.n0, o.n1 = k.Parts[0], k.Parts[1]
	o.done = false
	return
}

// PreProcess allocates the solvers for A and for the Schur complement and the preconditioner
func (o *Schur) PreProcess() (err error) {
	if o.k == nil || o.k.Blocks[0][0] == nil {
		return chk.Err("Schur: matrix must be set and created before PreProcess")
	}
	A, B, C, D := o.k.Block(0, 0), o.k.Block(0, 1), o.k.Block(1, 0), o.k.Block(1, 1)

	// A solver
	if o.asol, err = o.buildASolver(); err != nil {
		return
	}
	if err = o.asol.SetSparseMatrix(A); err != nil {
		return
	}
	if err = o.asol.PreProcess(); err != nil {
		return
	}

	// Schur solver
	if o.ssol, err = o.buildSchurSolver(); err != nil {
		return
	}
	if o.opts.Schur.SchurSolver != "pc" {
		if o.opts.Schur.ZeroDBlock {
			D = nil
		}
		if err = o.ssol.SetOperator(NewSchurComplement(o.asol, B, C, D)); err != nil {
			return
		}
	}

	// preconditioner
	if o.pc, err = o.buildPreconditioner(); err != nil {
		return
	}
	if o.pc != nil {
		o.ssol.SetPreconditioner(o.pc)
	} else if o.opts.Schur.SchurSolver == "pc" {
		return chk.Err("Schur: the PC Schur solver requires a preconditioner")
	}
	return o.ssol.PreProcess()
}

// Factor scales the second partition and factorises A
func (o *Schur) Factor() (err error) {
	if o.asol == nil {
		return chk.Err("Schur: PreProcess must be called before Factor")
	}
	bk := o.opts.Schur.Bk
	if bk != 1 && (!o.done || o.k.Stamp() != o.scaled) {
		o.k.Scale(0, 1, 1.0/bk)
		if !o.opts.Schur.ZeroDBlock {
			o.k.Scale(1, 1, 1.0/bk)
		}
		o.scaled = o.k.Stamp()
		o.done = true
	}
	if err = o.asol.Factor(); err != nil {
		return chk.Err("Schur: factorisation of A failed:\n%v", err)
	}
	return o.ssol.Factor()
}

// BackSolve solves A⋅y = F, then S⋅v = C⋅y - G, then A⋅u = F - B⋅v
func (o *Schur) BackSolve(x, b []float64) (err error) {
	n0, n1 := o.n0, o.n1
	if len(x) != n0+n1 || len(b) != n0+n1 {
		return chk.Err("Schur: BackSolve: incompatible sizes: len(x)=%d, len(b)=%d, neq=%d", len(x), len(b), n0+n1)
	}
	B, C := o.k.Block(0, 1), o.k.Block(1, 0)
	F, G := b[:n0], b[n0:]

	// step 1
	if o.opts.Verbose {
		io.Pf("Schur: step 1\n")
	}
	y := la.NewVector(n0)
	if err = o.asol.BackSolve(y, F); err != nil {
		return
	}

	// step 2
	if o.opts.Verbose {
		io.Pf("Schur: step 2\n")
	}
	H := la.NewVector(n1)
	if err = C.MulV(y, H); err != nil {
		return
	}
	for i := 0; i < n1; i++ {
		H[i] -= G[i]
	}
	v := la.NewVector(n1)
	if err = o.ssol.BackSolve(v, H); err != nil {
		return
	}

	// step 3
	if o.opts.Verbose {
		io.Pf("Schur: step 3 (%d Schur iterations)\n", o.ssol.Iterations())
	}
	L := la.NewVector(n0)
	if err = B.MulV(v, L); err != nil {
		return
	}
	la.VecAdd(L, 1, F, -1, L)
	u := la.NewVector(n0)
	if err = o.asol.BackSolve(u, L); err != nil {
		return
	}

	// put it back together
	copy(x[:n0], u)
	for i := 0; i < n1; i++ {
		x[n0+i] = v[i] / o.opts.Schur.Bk
	}
	return
}

// Destroy frees memory
func (o *Schur) Destroy() {
	if o.asol != nil {
		o.asol.Destroy()
	}
	if o.ssol != nil {
		o.ssol.Destroy()
	}
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func (o *Schur) buildASolver() (s Solver, err error) {
	switch o.opts.Schur.ASolver {
	case "lu":
		return &Umfpack{opts: o.opts}, nil
	case "dense":
		return &Dense{opts: o.opts}, nil
	case "fgmres_ilu0":
		aopts := *o.opts
		aopts.Precond = "ilu0"
		aopts.FailMaxIters = false
		return NewFGMRES(&aopts), nil
	case "ilu0":
		return NewPCSolver(new(ILU0), true), nil
	case "diagonal":
		return NewPCSolver(new(Diagonal), true), nil
	}
	return nil, chk.Err("Schur: invalid A-block solver %q", o.opts.Schur.ASolver)
}

func (o *Schur) buildSchurSolver() (s IterativeSolver, err error) {
	sopts := *o.opts
	sopts.Precond = "none"
	sopts.PrintCondNum = false
	switch o.opts.Schur.SchurSolver {
	case "fgmres":
		return NewFGMRES(&sopts), nil
	case "cg":
		return NewCG(&sopts), nil
	case "pc":
		return NewPCSolver(nil, false), nil
	}
	return nil, chk.Err("Schur: invalid Schur complement solver %q", o.opts.Schur.SchurSolver)
}

func (o *Schur) buildPreconditioner() (p Preconditioner, err error) {
	var lumped bool
	switch o.opts.Schur.Precond {
	case "", "none":
		return nil, nil
	case "diagonal_mass":
		p, lumped = new(Diagonal), true
	case "ichol_mass":
		p, lumped = new(IChol), false
	default:
		return nil, chk.Err("Schur: invalid preconditioner %q", o.opts.Schur.Precond)
	}
	if o.mb == nil {
		return nil, chk.Err("Schur: preconditioner %q requires a mass builder", o.opts.Schur.Precond)
	}
	m, err := o.mb.BuildMass(o.n0, o.n1, lumped)
	if err != nil {
		return
	}
	err = p.Create(m)
	return
}
