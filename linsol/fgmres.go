// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsol

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/mat"
)

// FGMRES implements the flexible generalised minimal residual method with restarts
//  The preconditioner is applied on the right: A⋅P⁻¹⋅(P⋅x) = b
type FGMRES struct {
	opts   *Options       // options
	mat    SparseMatrix   // matrix, if any
	op     Operator       // operator: equal to mat or a matrix-free operator
	pc     Preconditioner // preconditioner [may be nil]
	pcAuto bool           // preconditioner is built from mat by Factor
	niter  int            // number of iterations in the last BackSolve
	resid  float64        // final residual norm of the last BackSolve
}

// add solver to factory
func init() {
	solverallocators["fgmres"] = func(opts *Options) Solver {
		return NewFGMRES(opts)
	}
}

// NewFGMRES returns a new FGMRES solver. A preconditioner named in opts is built from the matrix in Factor
func NewFGMRES(opts *Options) (o *FGMRES) {
	o = new(FGMRES)
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
func (o *FGMRES) CreateSparseMatrix(kind MatrixType) SparseMatrix {
	m := new(CSRMatrix)
	o.mat, o.op = m, m
	return m
}

// SetSparseMatrix sets matrix
func (o *FGMRES) SetSparseMatrix(a SparseMatrix) (err error) {
	o.mat, o.op = a, a
	return
}

// SetOperator sets a matrix-free operator
func (o *FGMRES) SetOperator(a Operator) (err error) {
	o.mat, o.op = nil, a
	return
}

// SetPreconditioner sets a preconditioner that is already built
func (o *FGMRES) SetPreconditioner(p Preconditioner) {
	o.pc = p
	o.pcAuto = false
}

// Iterations returns the number of iterations in the last BackSolve
func (o *FGMRES) Iterations() int { return o.niter }

// Residual returns the residual norm at the end of the last BackSolve
func (o *FGMRES) Residual() float64 { return o.resid }

// PreProcess checks the operator
func (o *FGMRES) PreProcess() (err error) {
	if o.op == nil {
		return chk.Err("FGMRES: operator must be set before PreProcess")
	}
	return
}

// Factor builds the preconditioner
func (o *FGMRES) Factor() (err error) {
	if o.pcAuto {
		if o.mat == nil {
			return chk.Err("FGMRES: preconditioner %q requires a matrix", o.opts.Precond)
		}
		if err = o.pc.Create(o.mat); err != nil {
			return
		}
	}
	if o.opts.PrintCondNum && o.mat != nil {
		io.Pforan("FGMRES: condition number = %g\n", mat.Cond(ToDense(o.mat), 2))
	}
	return
}

// BackSolve computes x = A⁻¹ b starting from x = 0
func (o *FGMRES) BackSolve(x, b []float64) (err error) {

	// check
	if o.op == nil {
		return chk.Err("FGMRES: operator must be set before BackSolve")
	}
	n := o.op.Rows()
	if len(x) != n || len(b) != n {
		return chk.Err("FGMRES: BackSolve: incompatible sizes: len(x)=%d, len(b)=%d, neq=%d", len(x), len(b), n)
	}

	// initial residual
	la.Vector(x).Fill(0)
	r := la.NewVector(n)
	copy(r, b)
	beta := r.Norm()
	tol := math.Max(o.opts.RelTol*beta, o.opts.AbsTol)
	o.niter, o.resid = 0, beta
	if beta <= tol || beta == 0 {
		return
	}

	// workspace
	maxit := o.opts.maxIter(n)
	m := utl.Imin(o.opts.Restart, maxit)
	V := utl.Alloc(m+1, n)
	Z := utl.Alloc(m, n)
	H := utl.Alloc(m+1, m)
	cs := make([]float64, m)
	sn := make([]float64, m)
	g := make([]float64, m+1)
	y := make([]float64, m)
	w := la.NewVector(n)

	// outer iterations
	for o.niter < maxit {
		for i := 0; i < n; i++ {
			V[0][i] = r[i] / beta
		}
		la.Vector(g).Fill(0)
		g[0] = beta

		// Arnoldi
		k := 0
		for j := 0; j < m && o.niter < maxit; j++ {
			o.niter++
			k = j + 1
			if o.pc != nil {
				if err = o.pc.Apply(V[j], Z[j]); err != nil {
					return
				}
			} else {
				copy(Z[j], V[j])
			}
			if err = o.op.MulV(Z[j], w); err != nil {
				return
			}
			for i := 0; i <= j; i++ {
				H[i][j] = la.VecDot(w, V[i])
				for l := 0; l < n; l++ {
					w[l] -= H[i][j] * V[i][l]
				}
			}
			H[j+1][j] = w.Norm()
			if H[j+1][j] > 0 {
				for i := 0; i < n; i++ {
					V[j+1][i] = w[i] / H[j+1][j]
				}
			}

			// Givens rotations
			for i := 0; i < j; i++ {
				tmp := cs[i]*H[i][j] + sn[i]*H[i+1][j]
				H[i+1][j] = -sn[i]*H[i][j] + cs[i]*H[i+1][j]
				H[i][j] = tmp
			}
			den := math.Hypot(H[j][j], H[j+1][j])
			if den == 0 {
				cs[j], sn[j] = 1, 0
			} else {
				cs[j], sn[j] = H[j][j]/den, H[j+1][j]/den
			}
			H[j][j] = cs[j]*H[j][j] + sn[j]*H[j+1][j]
			H[j+1][j] = 0
			g[j+1] = -sn[j] * g[j]
			g[j] = cs[j] * g[j]
			if o.opts.Verbose {
				io.Pf("FGMRES: %4d : %23.15e\n", o.niter, math.Abs(g[j+1]))
			}
			if math.Abs(g[j+1]) <= tol {
				break
			}
		}

		// update solution: x += Z⋅y with H⋅y = g
		for i := k - 1; i >= 0; i-- {
			s := g[i]
			for l := i + 1; l < k; l++ {
				s -= H[i][l] * y[l]
			}
			if H[i][i] == 0 {
				return chk.Err("FGMRES: breakdown: zero diagonal in Hessenberg matrix at %d", i)
			}
			y[i] = s / H[i][i]
		}
		for i := 0; i < k; i++ {
			for l := 0; l < n; l++ {
				x[l] += y[i] * Z[i][l]
			}
		}

		// true residual
		if err = o.op.MulV(x, w); err != nil {
			return
		}
		la.VecAdd(r, 1, b, -1, w)
		beta = r.Norm()
		o.resid = beta
		if beta <= tol {
			return
		}
	}

	// not converged
	if o.opts.FailMaxIters {
		return chk.Err("FGMRES: max number of iterations reached (%d). residual = %g > tol = %g", maxit, beta, tol)
	}
	if o.opts.Verbose {
		io.Pfyel("FGMRES: max number of iterations reached (%d). residual = %g. returning best effort\n", maxit, beta)
	}
	return
}

// Destroy frees memory
func (o *FGMRES) Destroy() {}
