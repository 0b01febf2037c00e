// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// counter is a block used in tests
type counter struct {
	val, bkp, committed float64
}

func (o *counter) Backup()  { o.bkp = o.val }
func (o *counter) Restore() { o.val = o.bkp }
func (o *counter) Commit()  { o.committed = o.val }

func Test_state01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("state01")

	blk := &counter{val: 1}
	s := NewState(blk)
	chk.Float64(tst, "J", 1e-17, s.J, 1)
	chk.Deep2(tst, "F", 1e-17, s.F, Identity())

	// backup
	s.Backup()

	// trial values
	F := [][]float64{{1.2, 0.1, 0}, {0, 1, 0}, {0, 0, 0.9}}
	s.SetF(F)
	chk.Float64(tst, "J", 1e-15, s.J, 1.2*0.9)
	σ := NewSymTensor2([][]float64{{1, 2, 3}, {2, 4, 5}, {3, 5, 6}})
	s.SetStress(σ)
	chk.Float64(tst, "σ12", 1e-15, s.Sig.Get(1, 2), 5)
	blk.val = 7

	// restore
	s.Restore()
	chk.Float64(tst, "J", 1e-17, s.J, 1)
	chk.Deep2(tst, "F", 1e-17, s.F, Identity())
	chk.Float64(tst, "σ12", 1e-17, s.Sig.Get(1, 2), 0)
	chk.Float64(tst, "val", 1e-17, blk.val, 1)

	// commit
	s.SetF(F)
	blk.val = 3
	s.Commit()
	chk.Deep2(tst, "Fp", 1e-17, s.Fp, F)
	chk.Float64(tst, "committed", 1e-17, blk.committed, 3)

	// find block
	b := s.Block(func(b Block) bool { _, ok := b.(*counter); return ok })
	if b != blk {
		tst.Errorf("Block failed to find counter\n")
	}
	if s.Block(func(b Block) bool { return false }) != nil {
		tst.Errorf("Block should return nil\n")
	}
}
