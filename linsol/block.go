// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsol

import (
	"github.com/cpmech/gosl/chk"
)

// BlockMatrix holds a 2×2 partitioned matrix whose blocks are CSR matrices
//
//         ┌       ┐
//   K  =  │ A   B │  n0
//         │ C   D │  n1
//         └       ┘
//           n0  n1
type BlockMatrix struct {
	Parts  []int             // number of equations in each partition; [2]
	Blocks [2][2]*CSRMatrix // blocks
	stamp  Stamp            // versions of the composite matrix
}

// NewBlockMatrix returns a new block matrix with partitions n0 and n1
func NewBlockMatrix(n0, n1 int) (o *BlockMatrix) {
	o = new(BlockMatrix)
	o.Parts = []int{n0, n1}
	return
}

// Partitions returns the number of partitions
func (o *BlockMatrix) Partitions() int { return len(o.Parts) }

// PartitionEquations returns the number of equations in partition i
func (o *BlockMatrix) PartitionEquations(i int) int { return o.Parts[i] }

// Block returns block (i,j)
func (o *BlockMatrix) Block(i, j int) *CSRMatrix { return o.Blocks[i][j] }

// Create allocates all blocks from the pattern of the whole matrix
func (o *BlockMatrix) Create(p *Pattern) (err error) {
	if p == nil {
		return chk.Err("cannot create block matrix with nil pattern")
	}
	n0, n1 := o.Parts[0], o.Parts[1]
	if p.Nrow != n0+n1 || p.Ncol != n0+n1 {
		return chk.Err("block matrix: pattern is %d x %d but partitions sum to %d", p.Nrow, p.Ncol, n0+n1)
	}
	o.Blocks[0][0] = NewCSRMatrix(p.Sub(0, n0, 0, n0))
	o.Blocks[0][1] = NewCSRMatrix(p.Sub(0, n0, n0, n0+n1))
	o.Blocks[1][0] = NewCSRMatrix(p.Sub(n0, n0+n1, 0, n0))
	o.Blocks[1][1] = NewCSRMatrix(p.Sub(n0, n0+n1, n0, n0+n1))
	o.stamp.Structure++
	o.stamp.Values++
	return
}

// locate returns the block indices and the local indices of (i,j)
func (o *BlockMatrix) locate(i, j int) (bi, bj, li, lj int) {
	li, lj = i, j
	if i >= o.Parts[0] {
		bi, li = 1, i-o.Parts[0]
	}
	if j >= o.Parts[0] {
		bj, lj = 1, j-o.Parts[0]
	}
	return
}

// Rows returns the number of rows
func (o *BlockMatrix) Rows() int { return o.Parts[0] + o.Parts[1] }

// Cols returns the number of columns
func (o *BlockMatrix) Cols() int { return o.Rows() }

// NonZeroes returns the number of stored entries
func (o *BlockMatrix) NonZeroes() (nnz int) {
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if o.Blocks[i][j] != nil {
				nnz += o.Blocks[i][j].NonZeroes()
			}
		}
	}
	return
}

// Stamp returns the current versions
func (o *BlockMatrix) Stamp() Stamp { return o.stamp }

// Zero sets all values to zero
func (o *BlockMatrix) Zero() {
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			o.Blocks[i][j].Zero()
		}
	}
	o.stamp.Values++
}

// Add performs K[i][j] += v
func (o *BlockMatrix) Add(i, j int, v float64) {
	bi, bj, li, lj := o.locate(i, j)
	o.Blocks[bi][bj].Add(li, lj, v)
	o.stamp.Values++
}

// Set performs K[i][j] = v
func (o *BlockMatrix) Set(i, j int, v float64) {
	bi, bj, li, lj := o.locate(i, j)
	o.Blocks[bi][bj].Set(li, lj, v)
	o.stamp.Values++
}

// Get returns K[i][j]
func (o *BlockMatrix) Get(i, j int) float64 {
	bi, bj, li, lj := o.locate(i, j)
	return o.Blocks[bi][bj].Get(li, lj)
}

// Diag returns K[i][i]
func (o *BlockMatrix) Diag(i int) float64 {
	return o.Get(i, i)
}

// Scale multiplies the values of block (i,j) by s. The structure is not changed.
func (o *BlockMatrix) Scale(i, j int, s float64) {
	o.Blocks[i][j].Scale(s)
	o.stamp.Values++
}

// MulV computes y := K⋅x
func (o *BlockMatrix) MulV(x, y []float64) (err error) {
	n0, n := o.Parts[0], o.Rows()
	if len(x) != n || len(y) != n {
		return chk.Err("block matrix: MulV: incompatible sizes. len(x)=%d, len(y)=%d, n=%d", len(x), len(y), n)
	}
	tmp0 := make([]float64, n0)
	tmp1 := make([]float64, n-n0)
	o.Blocks[0][0].MulV(x[:n0], y[:n0])
	o.Blocks[0][1].MulV(x[n0:], tmp0)
	o.Blocks[1][0].MulV(x[:n0], y[n0:])
	o.Blocks[1][1].MulV(x[n0:], tmp1)
	for i := 0; i < n0; i++ {
		y[i] += tmp0[i]
	}
	for i := 0; i < n-n0; i++ {
		y[n0+i] += tmp1[i]
	}
	return
}
