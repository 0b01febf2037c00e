// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_race01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("race01")

	nchan := 4
	done := make(chan float64, nchan)

	shapes := make([]*Shape, nchan)
	for i := 0; i < nchan; i++ {
		shapes[i] = Get("hex8", i+1)
	}
	if shapes[0] == shapes[1] || shapes[0] == Get("hex8", 0) {
		tst.Errorf("goroutines must get copies of the shape structure\n")
		return
	}
	io.Pforan("shapes = %v\n", len(shapes))

	for i := 0; i < nchan; i++ {
		go func(shape *Shape, scale float64) {
			shape.CalcAtR(box(scale, scale, scale), []float64{0.5, 0.5, 0}, true)
			done <- shape.J
		}(shapes[i], float64(i+1))
	}

	sum := 0.0
	for i := 0; i < nchan; i++ {
		sum += <-done
	}
	chk.Float64(tst, "sum(J)", 1e-14, sum, (1.0+8.0+27.0+64.0)/8.0)
}
