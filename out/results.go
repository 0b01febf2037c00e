// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"sort"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
	"github.com/cpmech/nlfem/fem"
	"gonum.org/v1/gonum/integrate"
)

// keys of results
var (
	NodeKeys  = []string{"ux", "uy", "uz", "vx", "vy", "vz", "fx", "fy", "fz", "p", "c"}
	RigidKeys = []string{"ux", "uy", "uz", "rx", "ry", "rz", "fx", "fy", "fz", "mx", "my", "mz"}
)

// Define defines aliases
//  alias -- an alias to a group of points, an individual point, or to a set of points.
//           Example: "A", "left-column" or "a b c". If the number of points found is different
//           than the number of aliases, a group is created.
//  Note:
//    To use spaces in aliases, prefix the alias with an exclamation mark; e.g "!right column"
func (o *Reader) Define(alias string, loc Locator) (err error) {

	// check
	if len(alias) < 1 {
		return chk.Err("alias must have at least one character. %q is invalid", alias)
	}

	// locate points
	pts, err := loc.Locate(o)
	if err != nil {
		return
	}
	if len(pts) < 1 {
		return chk.Err("cannot define entities with alias=%q and locator=%v", alias, loc)
	}

	// set results map
	if alias[0] == '!' {
		o.Results[alias[1:]] = pts
		return
	}
	lbls := strings.Fields(alias)
	if len(lbls) == len(pts) {
		for i, l := range lbls {
			o.Results[l] = []*Point{pts[i]}
		}
		return
	}
	o.Results[alias] = pts
	return
}

// LoadResults loads all results after points are defined
//  times -- specified selected output times
//           use nil to indicate that all times are required
func (o *Reader) LoadResults(times []float64) (err error) {

	// selected output times and indices
	if times == nil {
		times = o.Sum.OutTimes
	}
	o.TimeInds, o.Times = utl.GetITout(o.Sum.OutTimes, times, TolT)
	if len(o.TimeInds) == 0 {
		return chk.Err("none of the output times %v is available", times)
	}

	// clear previous values
	for _, pts := range o.Results {
		for _, p := range pts {
			p.Vals = make(map[string][]float64)
		}
	}

	// for each selected output time
	for _, tidx := range o.TimeInds {
		res, e := fem.ReadNodeResults(o.Sim.DirOut, o.Sim.Key, o.Sim.Data.Encoder, tidx)
		if e != nil {
			return chk.Err("cannot load results at output index %d:\n%v", tidx, e)
		}
		if len(res.U) != len(o.X) {
			return chk.Err("inconsistency of results detected: summary and simulation file might be different")
		}
		for _, pts := range o.Results {
			for _, p := range pts {
				if p.Rigid != "" {
					if err = p.addRigid(res); err != nil {
						return
					}
					continue
				}
				p.addNode(res)
			}
		}
	}
	return
}

// GetRes gets results as a time or space series corresponding to a given alias
// for a single point or set of points.
//  idxI -- index in TimeInds slice corresponding to selected output time; use -1 for the last item.
//          If alias defines a single point, the whole time series is returned and idxI is ignored.
func (o *Reader) GetRes(key, alias string, idxI int) ([]float64, error) {
	if idxI < 0 {
		idxI = len(o.TimeInds) - 1
	}
	pts, ok := o.Results[alias]
	if !ok {
		return nil, chk.Err("alias %q is not defined", alias)
	}
	if len(pts) == 1 {
		if v, ok := pts[0].Vals[key]; ok {
			return v, nil
		}
		return nil, chk.Err("cannot get %q at %q", key, alias)
	}
	var res []float64
	for _, p := range pts {
		v, ok := p.Vals[key]
		if !ok || idxI >= len(v) {
			return nil, chk.Err("cannot get %q at %q with time index %d", key, alias, idxI)
		}
		res = append(res, v[idxI])
	}
	return res, nil
}

// GetIds returns the vertex ids corresponding to alias
func (o *Reader) GetIds(alias string) (vids []int) {
	for _, p := range o.Results[alias] {
		if p.Vid >= 0 {
			vids = append(vids, p.Vid)
		}
	}
	return
}

// GetCoords returns the coordinates of a single point
func (o *Reader) GetCoords(alias string) ([]float64, error) {
	if pts, ok := o.Results[alias]; ok && len(pts) == 1 {
		return pts[0].X, nil
	}
	return nil, chk.Err("cannot get coordinates of point with alias %q (make sure this alias corresponds to a single point)", alias)
}

// GetDist returns the distances from the reference point of the set
func (o *Reader) GetDist(alias string) (dist []float64) {
	for _, p := range o.Results[alias] {
		dist = append(dist, p.Dist)
	}
	return
}

// GetXYZ returns the x-y-z coordinates of the points of the set
func (o *Reader) GetXYZ(alias string) (x, y, z []float64) {
	for _, p := range o.Results[alias] {
		if len(p.X) != 3 {
			continue
		}
		x = append(x, p.X[0])
		y = append(y, p.X[1])
		z = append(z, p.X[2])
	}
	return
}

// Integrate integrates key along direction "x", "y", or "z" using the trapezoidal rule
//  idxI -- index in TimeInds slice corresponding to selected output time; use -1 for the last item.
func (o *Reader) Integrate(key, alias, along string, idxI int) (float64, error) {
	f, err := o.GetRes(key, alias, idxI)
	if err != nil {
		return 0, err
	}
	var x []float64
	switch along {
	case "x":
		x, _, _ = o.GetXYZ(alias)
	case "y":
		_, x, _ = o.GetXYZ(alias)
	case "z":
		_, _, x = o.GetXYZ(alias)
	default:
		return 0, chk.Err("direction must be x, y or z; %q is invalid", along)
	}
	if len(x) != len(f) || len(x) < 2 {
		return 0, chk.Err("%q: cannot integrate %q along %q with %d points", alias, key, along, len(x))
	}
	idx := utl.IntRange(len(x))
	sort.Slice(idx, func(i, j int) bool { return x[idx[i]] < x[idx[j]] })
	xs, fs := make([]float64, len(x)), make([]float64, len(x))
	for i, k := range idx {
		xs[i], fs[i] = x[k], f[k]
	}
	return integrate.Trapezoidal(xs, fs), nil
}

// auxiliary /////////////////////////////////////////////////////////////////////////////////////////

// addNode appends the results of node p.Vid
func (p *Point) addNode(res *fem.NodeResults) {
	vid := p.Vid
	for j, k := range []string{"ux", "uy", "uz"} {
		p.Vals[k] = append(p.Vals[k], res.U[vid][j])
	}
	for j, k := range []string{"vx", "vy", "vz"} {
		p.Vals[k] = append(p.Vals[k], res.V[vid][j])
	}
	for j, k := range []string{"fx", "fy", "fz"} {
		var f float64
		if j < len(res.Fr[vid]) {
			f = res.Fr[vid][j]
		}
		p.Vals[k] = append(p.Vals[k], f)
	}
	if len(res.P) > 0 {
		p.Vals["p"] = append(p.Vals["p"], res.P[vid])
		p.Vals["c"] = append(p.Vals["c"], res.C[vid])
	}
}

// addRigid appends the results of rigid body p.Rigid
func (p *Point) addRigid(res *fem.NodeResults) error {
	for _, rb := range res.Rigid {
		if rb.Name != p.Rigid {
			continue
		}
		vals := append(append(append([]float64{}, rb.U...), rb.Fr...), rb.Mr...)
		if len(vals) != len(RigidKeys) {
			return chk.Err("results of rigid body %q are incomplete", p.Rigid)
		}
		for j, k := range RigidKeys {
			p.Vals[k] = append(p.Vals[k], vals[j])
		}
		return nil
	}
	return chk.Err("cannot find results of rigid body %q", p.Rigid)
}
