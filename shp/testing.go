// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/diff/fd"
)

// central5 is the five-point central difference formula of the first derivative
var central5 = fd.Formula{
	Stencil:    []fd.Point{{Loc: -2, Coeff: 1.0 / 12.0}, {Loc: -1, Coeff: -8.0 / 12.0}, {Loc: 1, Coeff: 8.0 / 12.0}, {Loc: 2, Coeff: -1.0 / 12.0}},
	Derivative: 1,
	Step:       1e-3,
}

// DerivCen5 computes the derivative df/dx @ x with a five-point central difference and step h
func DerivCen5(x, h float64, f func(x float64) float64) float64 {
	return fd.Derivative(f, x, &fd.Settings{Formula: central5, Step: h})
}

// CheckShape checks that shape functions evaluate to 1.0 @ nodes
func CheckShape(tst *testing.T, shape *Shape, tol float64, verbose bool) {

	// loop over all vertices
	errS := 0.0
	r := []float64{0, 0, 0}
	for n := 0; n < shape.Nverts; n++ {

		// natural coordinates @ vertex
		for i := 0; i < shape.Gndim; i++ {
			r[i] = shape.NatCoords[i][n]
		}

		// compute function
		shape.Func(shape.S, shape.DSdR, r, false)

		// check
		if verbose {
			io.Pf("S = %v\n", shape.S)
		}
		for m := 0; m < shape.Nverts; m++ {
			if n == m {
				errS += math.Abs(shape.S[m] - 1.0)
			} else {
				errS += math.Abs(shape.S[m])
			}
		}
	}

	// error
	if errS > tol {
		tst.Errorf("%s failed with err = %g\n", shape.Type, errS)
		return
	}
}

// CheckDSdR checks dSdR derivatives of shape structures
func CheckDSdR(tst *testing.T, shape *Shape, r []float64, tol float64, verbose bool) {

	// auxiliary
	rTmp := make([]float64, len(r))
	sTmp := make([]float64, shape.Nverts)

	// analytical
	shape.Func(shape.S, shape.DSdR, r, true)

	// numerical
	for n := 0; n < shape.Nverts; n++ {
		for i := 0; i < shape.Gndim; i++ {
			dSndRi := DerivCen5(r[i], 1e-3, func(t float64) float64 {
				copy(rTmp, r)
				rTmp[i] = t
				shape.Func(sTmp, nil, rTmp, false)
				return sTmp[n]
			})
			if verbose {
				io.Pfgrey2("  dS%ddR%d @ %5.2f = %v (num: %v)\n", n, i, r, shape.DSdR[n][i], dSndRi)
			}
			if math.Abs(shape.DSdR[n][i]-dSndRi) > tol {
				tst.Errorf("%s: dS%ddR%d failed with err = %g\n", shape.Type, n, i, math.Abs(shape.DSdR[n][i]-dSndRi))
				return
			}
		}
	}
}

// CheckDSdx checks G=dSdx derivatives of shape structures at natural coordinates r
func CheckDSdx(tst *testing.T, shape *Shape, xmat [][]float64, r []float64, tol float64, verbose bool) {

	// analytical
	err := shape.CalcAtR(xmat, r, true)
	if err != nil {
		tst.Errorf("CalcAtR failed:\n%v", err)
		return
	}

	// numerical: ∂S/∂R = ∂S/∂x ⋅ ∂x/∂R  =>  compare G⋅dxdR with dSdR
	for n := 0; n < shape.Nverts; n++ {
		for j := 0; j < shape.Gndim; j++ {
			v := 0.0
			for i := 0; i < shape.Gndim; i++ {
				v += shape.G[n][i] * shape.DxdR.Get(i, j)
			}
			if verbose {
				io.Pfgrey2("  dS%ddR%d = %v (from G: %v)\n", n, j, shape.DSdR[n][j], v)
			}
			if math.Abs(shape.DSdR[n][j]-v) > tol {
				tst.Errorf("%s: G%d%d failed with err = %g\n", shape.Type, n, j, math.Abs(shape.DSdR[n][j]-v))
				return
			}
		}
	}
}
