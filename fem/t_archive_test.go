// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_archive01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("archive01. primitive fields")

	n, x, b, s := 7, 0.1, true, "plate"
	X, I := []float64{1, -2, 3.5}, []int{-1, 0, 4}
	w := NewArchiveWriter()
	w.Section("data", "n", "x", "b", "s", "X", "I")
	w.Int(&n)
	w.Float(&x)
	w.Bool(&b)
	w.String(&s)
	w.Floats(X)
	w.Ints(I)
	if w.Err() != nil {
		tst.Errorf("writing failed:\n%v", w.Err())
		return
	}

	// read back
	r, err := NewArchiveReader(w.Bytes())
	if err != nil {
		tst.Errorf("NewArchiveReader failed:\n%v", err)
		return
	}
	var rn int
	var rx float64
	var rb bool
	var rs string
	rX, rI := make([]float64, 3), make([]int, 3)
	r.Section("data", "n", "x", "b", "s", "X", "I")
	r.Int(&rn)
	r.Float(&rx)
	r.Bool(&rb)
	r.String(&rs)
	r.Floats(rX)
	r.Ints(rI)
	if r.Err() != nil {
		tst.Errorf("reading failed:\n%v", r.Err())
		return
	}
	chk.Int(tst, "n", rn, n)
	chk.Float64(tst, "x", 0, rx, x)
	if !rb {
		tst.Errorf("b should be true\n")
	}
	chk.String(tst, rs, s)
	chk.Array(tst, "X", 0, rX, X)
	chk.Ints(tst, "I", rI, I)

	// different field list
	r, _ = NewArchiveReader(w.Bytes())
	r.Section("data", "n", "x")
	if r.Err() == nil {
		tst.Errorf("section signature should not match\n")
	}

	// different length
	r, _ = NewArchiveReader(w.Bytes())
	r.Section("data", "n", "x", "b", "s", "X", "I")
	r.Int(&rn)
	r.Float(&rx)
	r.Bool(&rb)
	r.String(&rs)
	r.Floats(make([]float64, 2))
	if r.Err() == nil {
		tst.Errorf("slice length should not match\n")
	}

	// not an archive
	if _, err = NewArchiveReader([]byte("something else")); err == nil {
		tst.Errorf("invalid archive should fail\n")
	}
}

func Test_archive02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("archive02. counters of implicit solver")

	data := spring + `  - {type: load, nodes: [1], keys: [ux]}
solver: {lstol: 0}
control: {time_steps: 1, final_time: 1, plot_level: PLOT_NEVER}
`
	m := newTestModel(tst, data, "archive02a")
	if err := m.Run(); err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}
	w := NewArchiveWriter()
	if err := m.Solver.Serialize(w); err != nil {
		tst.Errorf("Serialize failed:\n%v", err)
		return
	}

	// fresh solver
	m2 := newTestModel(tst, data, "archive02b")
	r, err := NewArchiveReader(w.Bytes())
	if err != nil {
		tst.Errorf("NewArchiveReader failed:\n%v", err)
		return
	}
	if err = m2.Solver.Serialize(r); err != nil {
		tst.Errorf("Serialize failed:\n%v", err)
		return
	}
	a, b := m.Solver.Stats(), m2.Solver.Stats()
	chk.Int(tst, "nrhs", b.Nrhs, a.Nrhs)
	chk.Int(tst, "niter", b.Niter, a.Niter)
	chk.Int(tst, "nref", b.Nref, a.Nref)
	chk.Int(tst, "ntotref", b.Ntotref, a.Ntotref)
	chk.Int(tst, "naug", b.Naug, a.Naug)
	chk.Int(tst, "neq", b.Neq, a.Neq)
	chk.Int(tst, "nreq", b.Nreq, a.Nreq)
	if a.Niter < 1 {
		tst.Errorf("at least one iteration is required\n")
	}
	chk.Array(tst, "Fn", 0, m2.Fn, m.Fn)

	// a model with a different number of equations cannot load the archive
	m3 := newTestModel(tst, cube+"control: {time_steps: 1, final_time: 1}\n", "archive02c")
	r, _ = NewArchiveReader(w.Bytes())
	if err = m3.Solver.Serialize(r); err == nil {
		tst.Errorf("archive of another model should fail\n")
	}
}
