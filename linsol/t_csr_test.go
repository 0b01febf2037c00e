// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsol

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/mat"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_csr01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("csr01")

	// two 2-node "elements" sharing equation 1; -1 is ignored
	p := NewPattern(3, 3)
	p.AddElement([]int{0, 1})
	p.AddElement([]int{1, 2, -1})
	chk.Int(tst, "nnz", p.NonZeroes(), 7)
	if p.Has(0, 2) || p.Has(2, 0) {
		tst.Errorf("pattern must not couple equations 0 and 2\n")
		return
	}

	a := NewCSRMatrix(p)
	chk.Ints(tst, "rowptr", a.Rowptr, []int{0, 2, 5, 7})
	chk.Ints(tst, "colidx", a.Colidx, []int{0, 1, 0, 1, 2, 1, 2})

	// assemble two bars with stiffness 1 and 2
	a.Add(0, 0, 1)
	a.Add(0, 1, -1)
	a.Add(1, 0, -1)
	a.Add(1, 1, 1)
	a.Add(1, 1, 2)
	a.Add(1, 2, -2)
	a.Add(2, 1, -2)
	a.Add(2, 2, 2)
	chk.Float64(tst, "a11", 1e-17, a.Get(1, 1), 3)
	chk.Float64(tst, "a02", 1e-17, a.Get(0, 2), 0)
	chk.Float64(tst, "diag2", 1e-17, a.Diag(2), 2)
	if !a.IsSymmetric(1e-15) {
		tst.Errorf("matrix must be symmetric\n")
		return
	}

	// multiplication
	x := []float64{1, 2, 3}
	y := make([]float64, 3)
	err := a.MulV(x, y)
	if err != nil {
		tst.Errorf("MulV failed: %v\n", err)
		return
	}
	chk.Array(tst, "y", 1e-15, y, []float64{-1, -1, 2})

	// conversions
	t := new(la.Triplet)
	a.ToTriplet(t)
	chk.Int(tst, "triplet len", t.Len(), 7)
	ad := [][]float64{
		{1, -1, 0},
		{-1, 3, -2},
		{0, -2, 2},
	}
	chk.Deep2(tst, "triplet", 1e-17, t.ToDense().GetDeep2(), ad)
	d := a.ToDense()
	for i := 0; i < 3; i++ {
		chk.Array(tst, io.Sf("dense row %d", i), 1e-17, mat.Row(nil, i, d), ad[i])
	}

	// scaling does not change structure
	stamp := a.Stamp()
	a.ScaleRows([]float64{1, 2, 1})
	a.ScaleCols([]float64{2, 1, 1})
	chk.Float64(tst, "a00", 1e-17, a.Get(0, 0), 2)
	chk.Float64(tst, "a10", 1e-17, a.Get(1, 0), -4)
	chk.Float64(tst, "a12", 1e-17, a.Get(1, 2), -4)
	chk.Int(tst, "structure stamp", a.Stamp().Structure, stamp.Structure)
	if a.Stamp().Values == stamp.Values {
		tst.Errorf("values stamp must change after scaling\n")
	}

	// dense to CSR
	b := NewCSRMatrixDense(ad)
	chk.Int(tst, "nnz(b)", b.NonZeroes(), 7)
	chk.Float64(tst, "b21", 1e-17, b.Get(2, 1), -2)
}

func Test_block01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("block01")

	k := [][]float64{
		{4, 1, 0, 1, 0},
		{1, 4, 1, 0, 2},
		{0, 1, 4, 0, 0},
		{1, 0, 0, 3, 1},
		{0, 2, 0, 1, 5},
	}
	p := NewPattern(5, 5)
	for i := range k {
		for j := range k[i] {
			if k[i][j] != 0 {
				p.Insert(i, j)
			}
		}
	}
	K := NewBlockMatrix(3, 2)
	err := K.Create(p)
	if err != nil {
		tst.Errorf("Create failed: %v\n", err)
		return
	}
	for i := range k {
		for j := range k[i] {
			if k[i][j] != 0 {
				K.Add(i, j, k[i][j])
			}
		}
	}

	// blocks must match partitions
	chk.Int(tst, "A rows", K.Block(0, 0).Rows(), 3)
	chk.Int(tst, "B cols", K.Block(0, 1).Cols(), 2)
	chk.Int(tst, "C rows", K.Block(1, 0).Rows(), 2)
	chk.Int(tst, "D cols", K.Block(1, 1).Cols(), 2)
	chk.Int(tst, "nnz", K.NonZeroes(), p.NonZeroes())
	chk.Float64(tst, "B(1,1)", 1e-17, K.Block(0, 1).Get(1, 1), 2)
	chk.Float64(tst, "C(0,0)", 1e-17, K.Block(1, 0).Get(0, 0), 1)
	chk.Float64(tst, "K(4,4)", 1e-17, K.Get(4, 4), 5)

	// multiplication
	x := []float64{1, -1, 2, 0.5, -2}
	y := make([]float64, 5)
	K.MulV(x, y)
	ycor := make([]float64, 5)
	for i := range k {
		for j := range k[i] {
			ycor[i] += k[i][j] * x[j]
		}
	}
	chk.Array(tst, "y", 1e-15, y, ycor)

	// scaling
	nnz := K.NonZeroes()
	K.Scale(1, 1, 0.5)
	chk.Float64(tst, "D(1,1)", 1e-17, K.Get(4, 4), 2.5)
	chk.Int(tst, "nnz after scaling", K.NonZeroes(), nnz)

	// wrong partitions
	W := NewBlockMatrix(2, 2)
	if W.Create(p) == nil {
		tst.Errorf("Create must fail with wrong partitions\n")
	}
}
