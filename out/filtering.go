// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
)

// Locator defines interface for locating points
type Locator interface {
	Locate(r *Reader) (Points, error)
}

// At implements locator of the node at a given position
type At []float64

// Near implements locator of the node closest to a given position
type Near []float64

// N implements node locator
// Ids or tags of vertices can be stored in N
type N []int

// R implements rigid body locator by name
type R []string

// Along implements locator along line
//  Example: with 2 points in 3D: {{0,0,0}, {1,1,1}}
type Along [][]float64

// AlongX implements locator along x with []float64{y_cte, z_cte}
type AlongX []float64

// AlongY implements locator along y with []float64{x_cte, z_cte}
type AlongY []float64

// AlongZ implements locator along z with []float64{x_cte, y_cte}
type AlongZ []float64

// Locate finds the node at point
func (o At) Locate(r *Reader) (Points, error) {
	vid, dist := r.Closest(o)
	if vid < 0 || dist > TolC {
		return nil, chk.Err("cannot find node at %v", []float64(o))
	}
	return Points{r.nodPoint(vid, nil)}, nil
}

// Locate finds the closest node
func (o Near) Locate(r *Reader) (Points, error) {
	vid, _ := r.Closest(o)
	if vid < 0 {
		return nil, chk.Err("mesh has no vertices")
	}
	return Points{r.nodPoint(vid, nil)}, nil
}

// Locate finds nodes
func (o N) Locate(r *Reader) (res Points, err error) {
	var A []float64 // reference point
	add := func(vid int) {
		q := r.nodPoint(vid, A)
		res = append(res, q)
		if A == nil {
			A = q.X
		}
	}
	for _, idortag := range o {
		if idortag < 0 {
			ids := r.Sim.Mesh.TagVerts(idortag)
			if len(ids) == 0 {
				return nil, chk.Err("cannot find vertices with tag %d", idortag)
			}
			for _, vid := range ids {
				add(vid)
			}
			continue
		}
		if idortag >= len(r.X) {
			return nil, chk.Err("cannot find vertex %d", idortag)
		}
		add(idortag)
	}
	return
}

// Locate finds rigid bodies
func (o R) Locate(r *Reader) (res Points, err error) {
	for _, name := range o {
		found := false
		for _, rb := range r.Sim.Rigid {
			if rb.Name == name {
				res = append(res, &Point{Vid: -1, Rigid: name, X: rb.Center, Vals: make(map[string][]float64)})
				found = true
				break
			}
		}
		if !found {
			return nil, chk.Err("cannot find rigid body %q", name)
		}
	}
	return
}

// Locate finds nodes along line
func (o Along) Locate(r *Reader) (res Points, err error) {

	// check if there are two points
	if len(o) != 2 || len(o[0]) != 3 || len(o[1]) != 3 {
		return nil, chk.Err("Along requires two points with 3 coordinates each; %v is invalid", o)
	}

	// line direction
	xa, xb := o[0], o[1]
	var dx [3]float64
	for j := 0; j < 3; j++ {
		dx[j] = xb[j] - xa[j]
	}
	lab := math.Sqrt(dx[0]*dx[0] + dx[1]*dx[1] + dx[2]*dx[2])
	if lab < TolC {
		return nil, chk.Err("points of line are coincident: %v", o)
	}

	// nodes with distance to line smaller than tolerance
	for vid, x := range r.X {
		var t float64
		for j := 0; j < 3; j++ {
			t += (x[j] - xa[j]) * dx[j] / lab
		}
		if t < -TolC || t > lab+TolC {
			continue
		}
		var d float64
		for j := 0; j < 3; j++ {
			p := xa[j] + t*dx[j]/lab - x[j]
			d += p * p
		}
		if math.Sqrt(d) < TolC {
			res = append(res, r.nodPoint(vid, xa))
		}
	}
	if len(res) == 0 {
		return nil, chk.Err("cannot find nodes along %v", o)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Dist < res[j].Dist })
	return
}

// Locate finds nodes along x
func (o AlongX) Locate(r *Reader) (Points, error) {
	if len(o) != 2 {
		return nil, chk.Err("AlongX requires {y, z}; %v is invalid", []float64(o))
	}
	return Along{{r.Sim.Mesh.Xmin[0], o[0], o[1]}, {r.Sim.Mesh.Xmax[0], o[0], o[1]}}.Locate(r)
}

// Locate finds nodes along y
func (o AlongY) Locate(r *Reader) (Points, error) {
	if len(o) != 2 {
		return nil, chk.Err("AlongY requires {x, z}; %v is invalid", []float64(o))
	}
	return Along{{o[0], r.Sim.Mesh.Xmin[1], o[1]}, {o[0], r.Sim.Mesh.Xmax[1], o[1]}}.Locate(r)
}

// Locate finds nodes along z
func (o AlongZ) Locate(r *Reader) (Points, error) {
	if len(o) != 2 {
		return nil, chk.Err("AlongZ requires {x, y}; %v is invalid", []float64(o))
	}
	return Along{{o[0], o[1], r.Sim.Mesh.Xmin[2]}, {o[0], o[1], r.Sim.Mesh.Xmax[2]}}.Locate(r)
}

// auxiliary /////////////////////////////////////////////////////////////////////////////////////////

// nodPoint returns a new point of vertex vid with distance from A
func (o *Reader) nodPoint(vid int, A []float64) *Point {
	q := &Point{Vid: vid, X: o.X[vid], Vals: make(map[string][]float64)}
	if A != nil {
		q.Dist = distance(A, q.X)
	}
	return q
}

func distance(a, b []float64) float64 {
	var d float64
	for j := 0; j < len(a) && j < len(b); j++ {
		d += (a[j] - b[j]) * (a[j] - b[j])
	}
	return math.Sqrt(d)
}
