// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsol

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Diagonal implements the Jacobi preconditioner
type Diagonal struct {
	invd []float64 // inverse of diagonal
}

// Create builds the inverse of the diagonal
func (o *Diagonal) Create(a SparseMatrix) (err error) {
	n := a.Rows()
	o.invd = make([]float64, n)
	for i := 0; i < n; i++ {
		d := a.Diag(i)
		if d == 0 {
			return chk.Err("diagonal preconditioner: zero diagonal at row %d", i)
		}
		o.invd[i] = 1.0 / d
	}
	return
}

// Apply computes y := D⁻¹ x
func (o *Diagonal) Apply(x, y []float64) (err error) {
	if len(x) != len(o.invd) || len(y) != len(o.invd) {
		return chk.Err("diagonal preconditioner: incompatible sizes")
	}
	for i, d := range o.invd {
		y[i] = d * x[i]
	}
	return
}

// ILU0 implements the incomplete LU factorisation with zero fill-in
type ILU0 struct {
	lu   *CSRMatrix // L (unit diagonal, strictly lower) and U (upper) sharing the pattern of A
	diag []int      // positions of diagonal entries
}

// Create computes the factorisation
func (o *ILU0) Create(a SparseMatrix) (err error) {
	c, err := asCSR(a)
	if err != nil {
		return
	}
	o.lu = c.GetCopy()
	n := o.lu.Rows()
	o.diag = make([]int, n)
	for i := 0; i < n; i++ {
		o.diag[i] = o.lu.find(i, i)
		if o.diag[i] < 0 {
			return chk.Err("ILU0: diagonal entry (%d,%d) is not in the sparsity pattern", i, i)
		}
	}
	rp, ci, v := o.lu.Rowptr, o.lu.Colidx, o.lu.Vals
	for i := 1; i < n; i++ {
		for kk := rp[i]; kk < rp[i+1] && ci[kk] < i; kk++ {
			k := ci[kk]
			pivot := v[o.diag[k]]
			if pivot == 0 {
				return chk.Err("ILU0: zero pivot at row %d", k)
			}
			v[kk] /= pivot
			for jj := kk + 1; jj < rp[i+1]; jj++ {
				if pos := o.lu.find(k, ci[jj]); pos >= 0 {
					v[jj] -= v[kk] * v[pos]
				}
			}
		}
	}
	if v[o.diag[0]] == 0 {
		return chk.Err("ILU0: zero pivot at row 0")
	}
	return
}

// Apply computes y := (LU)⁻¹ x
func (o *ILU0) Apply(x, y []float64) (err error) {
	n := o.lu.Rows()
	if len(x) != n || len(y) != n {
		return chk.Err("ILU0: incompatible sizes")
	}
	rp, ci, v := o.lu.Rowptr, o.lu.Colidx, o.lu.Vals
	for i := 0; i < n; i++ {
		s := x[i]
		for k := rp[i]; k < o.diag[i]; k++ {
			s -= v[k] * y[ci[k]]
		}
		y[i] = s
	}
	for i := n - 1; i >= 0; i-- {
		s := y[i]
		for k := o.diag[i] + 1; k < rp[i+1]; k++ {
			s -= v[k] * y[ci[k]]
		}
		y[i] = s / v[o.diag[i]]
	}
	return
}

// IChol implements the incomplete Cholesky factorisation with zero fill-in (A ≈ L⋅Lᵀ)
//  Only the lower triangle of A is used
type IChol struct {
	n  int
	rp []int     // row pointers of L
	ci []int     // column indices of L (diagonal is the last entry of each row)
	v  []float64 // values of L
}

// Create computes the factorisation
func (o *IChol) Create(a SparseMatrix) (err error) {
	c, err := asCSR(a)
	if err != nil {
		return
	}
	o.n = c.Rows()
	o.rp = make([]int, o.n+1)
	for i := 0; i < o.n; i++ {
		cnt := 0
		for k := c.Rowptr[i]; k < c.Rowptr[i+1]; k++ {
			if c.Colidx[k] <= i {
				cnt++
			}
		}
		o.rp[i+1] = o.rp[i] + cnt
	}
	o.ci = make([]int, o.rp[o.n])
	o.v = make([]float64, o.rp[o.n])
	for i := 0; i < o.n; i++ {
		p := o.rp[i]
		for k := c.Rowptr[i]; k < c.Rowptr[i+1]; k++ {
			if c.Colidx[k] <= i {
				o.ci[p], o.v[p] = c.Colidx[k], c.Vals[k]
				p++
			}
		}
		if p == o.rp[i] || o.ci[p-1] != i {
			return chk.Err("IChol: diagonal entry (%d,%d) is not in the sparsity pattern", i, i)
		}
	}
	for i := 0; i < o.n; i++ {
		for kk := o.rp[i]; kk < o.rp[i+1]; kk++ {
			k := o.ci[kk]
			s := o.v[kk] - o.dot(i, k, k)
			if k < i {
				o.v[kk] = s / o.v[o.rp[k+1]-1]
				continue
			}
			if s <= 0 {
				return chk.Err("IChol: non-positive pivot %g at row %d", s, i)
			}
			o.v[kk] = math.Sqrt(s)
		}
	}
	return
}

// dot computes Σ_{j<jmax} L_ij L_kj over the common pattern of rows i and k
func (o *IChol) dot(i, k, jmax int) (s float64) {
	a, b := o.rp[i], o.rp[k]
	for a < o.rp[i+1] && b < o.rp[k+1] {
		ja, jb := o.ci[a], o.ci[b]
		if ja >= jmax || jb >= jmax {
			break
		}
		switch {
		case ja == jb:
			s += o.v[a] * o.v[b]
			a++
			b++
		case ja < jb:
			a++
		default:
			b++
		}
	}
	return
}

// Apply computes y := (L⋅Lᵀ)⁻¹ x
func (o *IChol) Apply(x, y []float64) (err error) {
	if len(x) != o.n || len(y) != o.n {
		return chk.Err("IChol: incompatible sizes")
	}
	for i := 0; i < o.n; i++ {
		s := x[i]
		last := o.rp[i+1] - 1
		for k := o.rp[i]; k < last; k++ {
			s -= o.v[k] * y[o.ci[k]]
		}
		y[i] = s / o.v[last]
	}
	for i := o.n - 1; i >= 0; i-- {
		last := o.rp[i+1] - 1
		y[i] /= o.v[last]
		for k := o.rp[i]; k < last; k++ {
			y[o.ci[k]] -= o.v[k] * y[i]
		}
	}
	return
}

// SolverPC uses a linear solver as preconditioner
type SolverPC struct {
	Sol Solver
}

// Create sets the matrix and factorises it
func (o *SolverPC) Create(a SparseMatrix) (err error) {
	if o.Sol == nil {
		return chk.Err("solver preconditioner: solver is nil")
	}
	if err = o.Sol.SetSparseMatrix(a); err != nil {
		return
	}
	if err = o.Sol.PreProcess(); err != nil {
		return
	}
	return o.Sol.Factor()
}

// Apply computes y := A⁻¹ x
func (o *SolverPC) Apply(x, y []float64) (err error) {
	return o.Sol.BackSolve(y, x)
}
