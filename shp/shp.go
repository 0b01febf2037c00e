// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements shape structures/routines
package shp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
)

// constants
const MINDET = 1.0e-14 // minimum determinant allowed for dxdR

// ShpFunc is the shape functions callback function
type ShpFunc func(S []float64, dSdR [][]float64, r []float64, derivs bool)

// Shape holds geometry data
type Shape struct {

	// geometry
	Type           string      // name; e.g. "hex8"
	Func           ShpFunc     // shape/derivs function callback function
	Gndim          int         // geometry of shape; e.g. "hex8" => gnd == 3
	Nverts         int         // number of vertices in cell; e.g. "hex8" => 8
	VtkCode        int         // VTK code
	FaceLocalVerts [][]int     // face local vertices [nfaces][...]
	NatCoords      [][]float64 // natural coordinates [gndim][nverts]
	Volume         float64     // volume of the natural domain

	// scratchpad: volume
	S    []float64   // [nverts] shape functions
	G    [][]float64 // [nverts][gndim] G == dSdx. derivative of shape function
	J    float64     // Jacobian: determinant of dxdr
	DSdR [][]float64 // [nverts][gndim] derivatives of S w.r.t natural coordinates
	DxdR *la.Matrix  // [gndim][gndim] derivatives of real coordinates w.r.t natural coordinates
	DRdx *la.Matrix  // [gndim][gndim] dRdx == inverse(dxdR)
}

// GetCopy returns a new copy of this shape structure
func (o Shape) GetCopy() *Shape {
	var p Shape
	p.Type = o.Type
	p.Func = o.Func
	p.Gndim = o.Gndim
	p.Nverts = o.Nverts
	p.VtkCode = o.VtkCode
	p.FaceLocalVerts = o.FaceLocalVerts // read-only
	p.NatCoords = o.NatCoords           // read-only
	p.Volume = o.Volume
	p.init_scratchpad()
	return &p
}

// factory holds all Shapes available
var factory = make(map[string]*Shape)

// Get returns an existent Shape structure
//  Note: 1) returns nil on errors
//        2) use goroutineId > 0 to get a copy
func Get(geoType string, goroutineId int) *Shape {
	s, ok := factory[geoType]
	if !ok {
		return nil
	}
	if goroutineId > 0 {
		return s.GetCopy()
	}
	return s
}

// IpRealCoords returns the real coordinates (y) of an integration point
func (o *Shape) IpRealCoords(x [][]float64, ip *Ipoint) (y []float64) {
	ndim := len(x)
	y = make([]float64, ndim)
	o.Func(o.S, o.DSdR, ip.R(), false)
	for i := 0; i < ndim; i++ {
		for m := 0; m < o.Nverts; m++ {
			y[i] += o.S[m] * x[i][m]
		}
	}
	return
}

// CalcAtIp calculates volume data such as S and G at an integration point
//  Input:
//   x[ndim][nverts] -- coordinates matrix of solid element
//   ip              -- integration point
//  Output:
//   S, DSdR, DxdR, DRdx, G, and J
//  Note: J is always computed. G is only computed if J > MINDET; otherwise an error is returned
func (o *Shape) CalcAtIp(x [][]float64, ip *Ipoint, derivs bool) (err error) {
	return o.CalcAtR(x, ip.R(), derivs)
}

// CalcAtR calculates volume data such as S and G at natural coordinates r
func (o *Shape) CalcAtR(x [][]float64, r []float64, derivs bool) (err error) {

	// S and dSdR
	o.Func(o.S, o.DSdR, r, derivs)
	if !derivs {
		return
	}

	// dxdR := sum_n x * dSdR   =>  dx_i/dR_j := sum_n x^n_i * dS^n/dR_j
	for i := 0; i < o.Gndim; i++ {
		for j := 0; j < o.Gndim; j++ {
			v := 0.0
			for n := 0; n < o.Nverts; n++ {
				v += x[i][n] * o.DSdR[n][j]
			}
			o.DxdR.Set(i, j, v)
		}
	}

	// J = det(dxdR)
	o.J = det3(o.DxdR)
	if o.J < MINDET {
		return chk.Err("%s: non-positive Jacobian: J = %g", o.Type, o.J)
	}

	// dRdx := inv(dxdR)
	la.MatInvSmall(o.DRdx, o.DxdR, MINDET)

	// G == dSdx := dSdR * dRdx  =>  dS^m/dx_j := sum_i dS^m/dR_i * dR_i/dx_j
	for m := 0; m < o.Nverts; m++ {
		for j := 0; j < o.Gndim; j++ {
			o.G[m][j] = 0
			for i := 0; i < o.Gndim; i++ {
				o.G[m][j] += o.DSdR[m][i] * o.DRdx.Get(i, j)
			}
		}
	}
	return
}

// init_scratchpad initialise volume data (scratchpad)
func (o *Shape) init_scratchpad() {
	o.S = make([]float64, o.Nverts)
	o.DSdR = utl.Alloc(o.Nverts, o.Gndim)
	o.DxdR = la.NewMatrix(o.Gndim, o.Gndim)
	o.DRdx = la.NewMatrix(o.Gndim, o.Gndim)
	o.G = utl.Alloc(o.Nverts, o.Gndim)
}

// det3 returns the determinant of a 3x3 matrix
func det3(a *la.Matrix) float64 {
	return a.Get(0, 0)*(a.Get(1, 1)*a.Get(2, 2)-a.Get(1, 2)*a.Get(2, 1)) -
		a.Get(0, 1)*(a.Get(1, 0)*a.Get(2, 2)-a.Get(1, 2)*a.Get(2, 0)) +
		a.Get(0, 2)*(a.Get(1, 0)*a.Get(2, 1)-a.Get(1, 1)*a.Get(2, 0))
}
