// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package linsol implements sparse matrices and direct/iterative linear solvers
package linsol

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/mat"
)

// MatrixType defines the kind of matrix a solver expects
type MatrixType int

const (
	RealSymmetric       MatrixType = iota // symmetric values and structure
	RealUnsymmetric                       // general matrix
	RealSymmStructure                     // symmetric structure, unsymmetric values
)

// Operator defines linear operators y = A⋅x
type Operator interface {
	Rows() int                     // number of rows (== number of columns)
	MulV(x, y []float64) (err error) // y := A⋅x
}

// SparseMatrix defines the global matrix interface used during assembly
type SparseMatrix interface {
	Operator
	Create(p *Pattern) (err error) // allocates structure
	Cols() int                     // number of columns
	NonZeroes() int                // number of stored entries
	Zero()                         // set all values to zero
	Add(i, j int, v float64)       // A[i][j] += v
	Set(i, j int, v float64)       // A[i][j] = v
	Get(i, j int) float64          // returns A[i][j] or zero if not stored
	Diag(i int) float64            // returns A[i][i]
	Stamp() Stamp                  // structure and values versions
}

// Stamp records how many times the structure and values of a matrix changed
type Stamp struct {
	Structure int
	Values    int
}

// CSRMatrix holds a zero-based compressed row storage matrix.
// Columns are sorted within each row.
type CSRMatrix struct {
	nrow   int       // number of rows
	ncol   int       // number of columns
	Rowptr []int     // [nrow+1] pointers to the start of each row
	Colidx []int     // [nnz] column indices
	Vals   []float64 // [nnz] values
	stamp  Stamp     // versions
}

// NewCSRMatrix allocates a new matrix with the structure given by a pattern
func NewCSRMatrix(p *Pattern) (o *CSRMatrix) {
	o = new(CSRMatrix)
	err := o.Create(p)
	if err != nil {
		chk.Panic("%v", err)
	}
	return
}

// NewCSRMatrixDense converts a dense matrix (Deep2) into CSR storing only non-zero entries
func NewCSRMatrixDense(a [][]float64) (o *CSRMatrix) {
	p := NewPattern(len(a), len(a[0]))
	for i, row := range a {
		for j, v := range row {
			if v != 0 {
				p.Insert(i, j)
			}
		}
	}
	o = NewCSRMatrix(p)
	for i, row := range a {
		for j, v := range row {
			if v != 0 {
				o.Set(i, j, v)
			}
		}
	}
	return
}

// Create allocates structure
func (o *CSRMatrix) Create(p *Pattern) (err error) {
	if p == nil {
		return chk.Err("cannot create CSR matrix with nil pattern")
	}
	o.nrow, o.ncol = p.Nrow, p.Ncol
	o.Rowptr = make([]int, o.nrow+1)
	for i := 0; i < o.nrow; i++ {
		o.Rowptr[i+1] = o.Rowptr[i] + len(p.rows[i])
	}
	o.Colidx = make([]int, o.Rowptr[o.nrow])
	for i := 0; i < o.nrow; i++ {
		copy(o.Colidx[o.Rowptr[i]:], p.rows[i])
	}
	o.Vals = make([]float64, len(o.Colidx))
	o.stamp.Structure++
	o.stamp.Values++
	return
}

// Rows returns the number of rows
func (o *CSRMatrix) Rows() int { return o.nrow }

// Cols returns the number of columns
func (o *CSRMatrix) Cols() int { return o.ncol }

// NonZeroes returns the number of stored entries
func (o *CSRMatrix) NonZeroes() int { return len(o.Vals) }

// Stamp returns the current versions
func (o *CSRMatrix) Stamp() Stamp { return o.stamp }

// Touch tells that values were changed directly in Vals
func (o *CSRMatrix) Touch() { o.stamp.Values++ }

// Zero sets all values to zero
func (o *CSRMatrix) Zero() {
	for k := range o.Vals {
		o.Vals[k] = 0
	}
	o.stamp.Values++
}

// find returns the position of (i,j) in Vals or -1
func (o *CSRMatrix) find(i, j int) int {
	start, end := o.Rowptr[i], o.Rowptr[i+1]
	cols := o.Colidx[start:end]
	k := sort.SearchInts(cols, j)
	if k < len(cols) && cols[k] == j {
		return start + k
	}
	return -1
}

// Add performs A[i][j] += v. The entry must be in the structure.
func (o *CSRMatrix) Add(i, j int, v float64) {
	k := o.find(i, j)
	if k < 0 {
		chk.Panic("CSR: entry (%d,%d) is not in the sparsity pattern", i, j)
	}
	o.Vals[k] += v
	o.stamp.Values++
}

// Set performs A[i][j] = v. The entry must be in the structure.
func (o *CSRMatrix) Set(i, j int, v float64) {
	k := o.find(i, j)
	if k < 0 {
		chk.Panic("CSR: entry (%d,%d) is not in the sparsity pattern", i, j)
	}
	o.Vals[k] = v
	o.stamp.Values++
}

// Get returns A[i][j]
func (o *CSRMatrix) Get(i, j int) float64 {
	k := o.find(i, j)
	if k < 0 {
		return 0
	}
	return o.Vals[k]
}

// Diag returns A[i][i]
func (o *CSRMatrix) Diag(i int) float64 {
	return o.Get(i, i)
}

// IsAlloc tells whether (i,j) is in the structure
func (o *CSRMatrix) IsAlloc(i, j int) bool {
	return o.find(i, j) >= 0
}

// MulV computes y := A⋅x
func (o *CSRMatrix) MulV(x, y []float64) (err error) {
	if len(x) != o.ncol || len(y) != o.nrow {
		return chk.Err("CSR: MulV: incompatible sizes. len(x)=%d, len(y)=%d, A is %d x %d", len(x), len(y), o.nrow, o.ncol)
	}
	for i := 0; i < o.nrow; i++ {
		var sum float64
		for k := o.Rowptr[i]; k < o.Rowptr[i+1]; k++ {
			sum += o.Vals[k] * x[o.Colidx[k]]
		}
		y[i] = sum
	}
	return
}

// Scale multiplies all values by s
func (o *CSRMatrix) Scale(s float64) {
	for k := range o.Vals {
		o.Vals[k] *= s
	}
	o.stamp.Values++
}

// ScaleRows computes A := diag(s)⋅A
func (o *CSRMatrix) ScaleRows(s []float64) {
	for i := 0; i < o.nrow; i++ {
		for k := o.Rowptr[i]; k < o.Rowptr[i+1]; k++ {
			o.Vals[k] *= s[i]
		}
	}
	o.stamp.Values++
}

// ScaleCols computes A := A⋅diag(s)
func (o *CSRMatrix) ScaleCols(s []float64) {
	for k, j := range o.Colidx {
		o.Vals[k] *= s[j]
	}
	o.stamp.Values++
}

// Normalize scales rows and columns by 1/sqrt(|diag|) such that the diagonal becomes ±1.
// It returns the scaling vector s; the solution of the original system is x = s ∘ x̂
func (o *CSRMatrix) Normalize() (s []float64, err error) {
	s = make([]float64, o.nrow)
	for i := 0; i < o.nrow; i++ {
		d := math.Abs(o.Diag(i))
		if d == 0 {
			return nil, chk.Err("CSR: cannot normalize matrix with zero diagonal at row %d", i)
		}
		s[i] = 1.0 / math.Sqrt(d)
	}
	o.ScaleRows(s)
	o.ScaleCols(s)
	return
}

// GetCopy returns a deep copy
func (o *CSRMatrix) GetCopy() (c *CSRMatrix) {
	c = new(CSRMatrix)
	c.nrow, c.ncol = o.nrow, o.ncol
	c.Rowptr = append([]int{}, o.Rowptr...)
	c.Colidx = append([]int{}, o.Colidx...)
	c.Vals = append([]float64{}, o.Vals...)
	c.stamp = Stamp{1, 1}
	return
}

// ToTriplet puts all entries into a triplet (that is re-initialised)
func (o *CSRMatrix) ToTriplet(t *la.Triplet) {
	if t.Max() != len(o.Vals) {
		t.Init(o.nrow, o.ncol, len(o.Vals))
	}
	t.Start()
	for i := 0; i < o.nrow; i++ {
		for k := o.Rowptr[i]; k < o.Rowptr[i+1]; k++ {
			t.Put(i, o.Colidx[k], o.Vals[k])
		}
	}
}

// ToDense returns a dense copy
func (o *CSRMatrix) ToDense() *mat.Dense {
	d := mat.NewDense(o.nrow, o.ncol, nil)
	for i := 0; i < o.nrow; i++ {
		for k := o.Rowptr[i]; k < o.Rowptr[i+1]; k++ {
			d.Set(i, o.Colidx[k], o.Vals[k])
		}
	}
	return d
}

// IsSymmetric checks whether |A[i][j] - A[j][i]| <= tol for all stored entries
func (o *CSRMatrix) IsSymmetric(tol float64) bool {
	if o.nrow != o.ncol {
		return false
	}
	for i := 0; i < o.nrow; i++ {
		for k := o.Rowptr[i]; k < o.Rowptr[i+1]; k++ {
			if math.Abs(o.Vals[k]-o.Get(o.Colidx[k], i)) > tol {
				return false
			}
		}
	}
	return true
}

// ToDense converts any sparse matrix to a dense one
func ToDense(a SparseMatrix) *mat.Dense {
	if c, ok := a.(*CSRMatrix); ok {
		return c.ToDense()
	}
	d := mat.NewDense(a.Rows(), a.Cols(), nil)
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < a.Cols(); j++ {
			d.Set(i, j, a.Get(i, j))
		}
	}
	return d
}

// Pattern holds the sparsity structure of a matrix during construction
type Pattern struct {
	Nrow int     // number of rows
	Ncol int     // number of columns
	rows [][]int // sorted column indices per row
}

// NewPattern returns a new empty pattern
func NewPattern(nrow, ncol int) (o *Pattern) {
	o = new(Pattern)
	o.Nrow, o.Ncol = nrow, ncol
	o.rows = make([][]int, nrow)
	return
}

// Insert adds (i,j) to the pattern
func (o *Pattern) Insert(i, j int) {
	row := o.rows[i]
	k := sort.SearchInts(row, j)
	if k < len(row) && row[k] == j {
		return
	}
	row = append(row, 0)
	copy(row[k+1:], row[k:])
	row[k] = j
	o.rows[i] = row
}

// AddDiagonal inserts all diagonal entries
func (o *Pattern) AddDiagonal() {
	n := o.Nrow
	if o.Ncol < n {
		n = o.Ncol
	}
	for i := 0; i < n; i++ {
		o.Insert(i, i)
	}
}

// AddElement inserts all couplings between the (non-negative) equations in lm
func (o *Pattern) AddElement(lm []int) {
	for _, I := range lm {
		if I < 0 || I >= o.Nrow {
			continue
		}
		for _, J := range lm {
			if J < 0 || J >= o.Ncol {
				continue
			}
			o.Insert(I, J)
		}
	}
}

// Has tells whether (i,j) is in the pattern
func (o *Pattern) Has(i, j int) bool {
	row := o.rows[i]
	k := sort.SearchInts(row, j)
	return k < len(row) && row[k] == j
}

// NonZeroes returns the number of entries
func (o *Pattern) NonZeroes() (nnz int) {
	for _, row := range o.rows {
		nnz += len(row)
	}
	return
}

// Sub extracts the sub-pattern with rows in [r0,r1) and columns in [c0,c1), shifted to zero
func (o *Pattern) Sub(r0, r1, c0, c1 int) (p *Pattern) {
	p = NewPattern(r1-r0, c1-c0)
	for i := r0; i < r1; i++ {
		for _, j := range o.rows[i] {
			if j >= c0 && j < c1 {
				p.rows[i-r0] = append(p.rows[i-r0], j-c0)
			}
		}
	}
	return
}
