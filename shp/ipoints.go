// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/integrate/quad"
)

// Ipoint holds integration points data: natural coordinates and weight
type Ipoint struct {
	r, s, t float64 // natural coordinates
	W       float64 // weight
}

// R returns the natural coordinates as a slice
func (o *Ipoint) R() []float64 { return []float64{o.r, o.s, o.t} }

// NewIpoint returns a new integration point
func NewIpoint(r, s, t, w float64) *Ipoint {
	return &Ipoint{r, s, t, w}
}

// ipsfactory holds integration points sets; e.g. "hex8_8" => 8 points for hex8
var ipsfactory = make(map[string][]*Ipoint)

// GetIps returns a set of integration points
//  nip -- number of integration points; 0 => default for geoType
func GetIps(geoType string, nip int) (ips []*Ipoint, err error) {
	if nip == 0 {
		switch geoType {
		case "hex8":
			nip = 8
		case "tet4":
			nip = 1
		}
	}
	key := io.Sf("%s_%d", geoType, nip)
	ips, ok := ipsfactory[key]
	if !ok {
		return nil, chk.Err("cannot find integration points set for geometry type %q with nip=%d", geoType, nip)
	}
	return
}

// register integration points
func init() {

	// hex8: Gauss-Legendre with 1, 2 or 3 points per direction
	for _, n := range []int{1, 2, 3} {
		x, w := make([]float64, n), make([]float64, n)
		quad.Legendre{}.FixedLocations(x, w, -1, 1)
		ips := make([]*Ipoint, 0, n*n*n)
		for k := 0; k < n; k++ {
			for j := 0; j < n; j++ {
				for i := 0; i < n; i++ {
					ips = append(ips, NewIpoint(x[i], x[j], x[k], w[i]*w[j]*w[k]))
				}
			}
		}
		ipsfactory[io.Sf("hex8_%d", n*n*n)] = ips
	}

	// tet4: centroid and 4-point rule
	ipsfactory["tet4_1"] = []*Ipoint{NewIpoint(0.25, 0.25, 0.25, 1.0/6.0)}
	a, b := 0.5854101966249685, 0.1381966011250105
	ipsfactory["tet4_4"] = []*Ipoint{
		NewIpoint(b, b, b, 1.0/24.0),
		NewIpoint(a, b, b, 1.0/24.0),
		NewIpoint(b, a, b, 1.0/24.0),
		NewIpoint(b, b, a, 1.0/24.0),
	}
}
