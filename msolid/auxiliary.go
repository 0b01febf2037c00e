// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import "github.com/cpmech/gosl/tsr"

// Identity returns a new 3x3 identity matrix
func Identity() (I [][]float64) {
	I = [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	return
}

// Det computes the determinant of a 3x3 matrix
func Det(a [][]float64) float64 {
	return a[0][0]*(a[1][1]*a[2][2]-a[1][2]*a[2][1]) -
		a[0][1]*(a[1][0]*a[2][2]-a[1][2]*a[2][0]) +
		a[0][2]*(a[1][0]*a[2][1]-a[1][1]*a[2][0])
}

// LeftCauchyGreen computes b = F⋅Fᵀ
func LeftCauchyGreen(F [][]float64) (b [][]float64) {
	b = make([][]float64, 3)
	for i := 0; i < 3; i++ {
		b[i] = make([]float64, 3)
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				b[i][j] += F[i][k] * F[j][k]
			}
		}
	}
	return
}

// GreenLagrange computes E = ½(Fᵀ⋅F - I)
func GreenLagrange(F [][]float64) (E [][]float64) {
	E = make([][]float64, 3)
	for i := 0; i < 3; i++ {
		E[i] = make([]float64, 3)
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				E[i][j] += F[k][i] * F[k][j]
			}
			E[i][j] /= 2.0
		}
		E[i][i] -= 0.5
	}
	return
}

// Kdelta is the Kronecker delta
func Kdelta(i, j int) float64 {
	if i == j {
		return 1
	}
	return 0
}

// Isym returns the component ijkl of the fourth order symmetric identity tensor
//  𝕀ijkl = ½(δik δjl + δil δjk)
func Isym(i, j, k, l int) float64 {
	return (Kdelta(i, k)*Kdelta(j, l) + Kdelta(i, l)*Kdelta(j, k)) / 2.0
}

// NewSymTensor2 returns a new symmetric 3D second order tensor with components from a 3x3 matrix
func NewSymTensor2(a [][]float64) (t *tsr.Tensor2) {
	t = tsr.NewTensor2(true, false)
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			t.Set(i, j, (a[i][j]+a[j][i])/2.0)
		}
	}
	return
}

// setIsoTangent fills c with the isotropic tensor  c = a I⊗I + 2b 𝕀
func setIsoTangent(c *tsr.Tensor4, a, b float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				for l := 0; l < 3; l++ {
					c.Set(i, j, k, l, a*Kdelta(i, j)*Kdelta(k, l)+2.0*b*Isym(i, j, k, l))
				}
			}
		}
	}
}
