// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

// local vertices numbering
//  hex8: 0:(-1,-1,-1) 1:(1,-1,-1) 2:(1,1,-1) 3:(-1,1,-1) 4:(-1,-1,1) 5:(1,-1,1) 6:(1,1,1) 7:(-1,1,1)
//  tet4: 0:(0,0,0) 1:(1,0,0) 2:(0,1,0) 3:(0,0,1)
// faces have outward normals following the right-hand rule

func init() {

	// hex8
	hex8 := new(Shape)
	hex8.Type = "hex8"
	hex8.Func = Hex8
	hex8.Gndim = 3
	hex8.Nverts = 8
	hex8.VtkCode = VTK_HEXAHEDRON
	hex8.FaceLocalVerts = [][]int{{0, 4, 7, 3}, {1, 2, 6, 5}, {0, 1, 5, 4}, {2, 3, 7, 6}, {0, 3, 2, 1}, {4, 5, 6, 7}}
	hex8.NatCoords = [][]float64{
		{-1, 1, 1, -1, -1, 1, 1, -1},
		{-1, -1, 1, 1, -1, -1, 1, 1},
		{-1, -1, -1, -1, 1, 1, 1, 1},
	}
	hex8.Volume = 8
	hex8.init_scratchpad()
	factory["hex8"] = hex8

	// tet4
	tet4 := new(Shape)
	tet4.Type = "tet4"
	tet4.Func = Tet4
	tet4.Gndim = 3
	tet4.Nverts = 4
	tet4.VtkCode = VTK_TETRA
	tet4.FaceLocalVerts = [][]int{{0, 3, 2}, {0, 1, 3}, {0, 2, 1}, {1, 2, 3}}
	tet4.NatCoords = [][]float64{
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
	tet4.Volume = 1.0 / 6.0
	tet4.init_scratchpad()
	factory["tet4"] = tet4
}

// VTK codes
const (
	VTK_TETRA      = 10
	VTK_HEXAHEDRON = 12
)

// Hex8 calculates the shape functions (S) and derivatives of shape functions (dSdR) of hex8
// elements at {r,s,t} natural coordinates. The derivatives are calculated only if derivs==true.
func Hex8(S []float64, dSdR [][]float64, R []float64, derivs bool) {

	r, s, t := R[0], R[1], R[2]
	S[0] = (1.0 - r - s + r*s - t + s*t + r*t - r*s*t) / 8.0
	S[1] = (1.0 + r - s - r*s - t + s*t - r*t + r*s*t) / 8.0
	S[2] = (1.0 + r + s + r*s - t - s*t - r*t - r*s*t) / 8.0
	S[3] = (1.0 - r + s - r*s - t - s*t + r*t + r*s*t) / 8.0
	S[4] = (1.0 - r - s + r*s + t - s*t - r*t + r*s*t) / 8.0
	S[5] = (1.0 + r - s - r*s + t - s*t + r*t - r*s*t) / 8.0
	S[6] = (1.0 + r + s + r*s + t + s*t + r*t + r*s*t) / 8.0
	S[7] = (1.0 - r + s - r*s + t + s*t - r*t - r*s*t) / 8.0

	if !derivs {
		return
	}

	dSdR[0][0] = (-1.0 + s + t - s*t) / 8.0
	dSdR[0][1] = (-1.0 + r + t - r*t) / 8.0
	dSdR[0][2] = (-1.0 + r + s - r*s) / 8.0

	dSdR[1][0] = (+1.0 - s - t + s*t) / 8.0
	dSdR[1][1] = (-1.0 - r + t + r*t) / 8.0
	dSdR[1][2] = (-1.0 - r + s + r*s) / 8.0

	dSdR[2][0] = (+1.0 + s - t - s*t) / 8.0
	dSdR[2][1] = (+1.0 + r - t - r*t) / 8.0
	dSdR[2][2] = (-1.0 - r - s - r*s) / 8.0

	dSdR[3][0] = (-1.0 - s + t + s*t) / 8.0
	dSdR[3][1] = (+1.0 - r - t + r*t) / 8.0
	dSdR[3][2] = (-1.0 + r - s + r*s) / 8.0

	dSdR[4][0] = (-1.0 + s - t + s*t) / 8.0
	dSdR[4][1] = (-1.0 + r - t + r*t) / 8.0
	dSdR[4][2] = (+1.0 - r - s + r*s) / 8.0

	dSdR[5][0] = (+1.0 - s + t - s*t) / 8.0
	dSdR[5][1] = (-1.0 - r - t - r*t) / 8.0
	dSdR[5][2] = (+1.0 + r - s - r*s) / 8.0

	dSdR[6][0] = (+1.0 + s + t + s*t) / 8.0
	dSdR[6][1] = (+1.0 + r + t + r*t) / 8.0
	dSdR[6][2] = (+1.0 + r + s + r*s) / 8.0

	dSdR[7][0] = (-1.0 - s - t - s*t) / 8.0
	dSdR[7][1] = (+1.0 - r + t - r*t) / 8.0
	dSdR[7][2] = (+1.0 - r + s - r*s) / 8.0
}

// Tet4 calculates the shape functions (S) and derivatives of shape functions (dSdR) of tet4
// elements at {r,s,t} natural coordinates. The derivatives are calculated only if derivs==true.
func Tet4(S []float64, dSdR [][]float64, R []float64, derivs bool) {

	r, s, t := R[0], R[1], R[2]
	S[0] = 1.0 - r - s - t
	S[1] = r
	S[2] = s
	S[3] = t

	if !derivs {
		return
	}

	dSdR[0][0], dSdR[0][1], dSdR[0][2] = -1.0, -1.0, -1.0
	dSdR[1][0], dSdR[1][1], dSdR[1][2] = 1.0, 0.0, 0.0
	dSdR[2][0], dSdR[2][1], dSdR[2][2] = 0.0, 1.0, 0.0
	dSdR[3][0], dSdR[3][1], dSdR[3][2] = 0.0, 0.0, 1.0
}
