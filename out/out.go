// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements FE simulation output handling for analyses and plotting
package out

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/nlfem/fem"
	"github.com/cpmech/nlfem/inp"
)

// constants
var (
	TolC = 1e-8 // tolerance to compare x-y-z coordinates
	TolT = 1e-3 // tolerance to compare times
)

// Point holds the results of one node or rigid body
type Point struct {
	Vid   int                  // vertex id; -1 for rigid bodies
	Rigid string               // name of rigid body; empty for nodes
	X     []float64            // initial coordinates
	Dist  float64              // distance from the first point of a set
	Vals  map[string][]float64 // [nTimes] key => results; e.g. "ux" => {0, 0.1, 0.2}
}

// Points is a set of points
type Points []*Point

// ResultsMap maps aliases to points
type ResultsMap map[string]Points

// Reader reads the results of one simulation
type Reader struct {

	// data set by Start
	Sim *inp.Simulation // simulation data
	Sum *fem.Summary    // summary
	X   [][]float64     // [nverts] initial coordinates of vertices

	// defined entities and results loaded by LoadResults
	Results  ResultsMap // maps labels => points
	TimeInds []int      // selected output indices
	Times    []float64  // selected output times

	// subplots
	Splots []*SplotDat // all subplots
	Csplot *SplotDat   // current subplot
}

// Start starts handling of results given a simulation input file
//  alias -- word appended to the simulation key when the simulation was run
func Start(simfnpath, alias string) (o *Reader, err error) {
	o = new(Reader)
	if o.Sim, err = inp.ReadSim(simfnpath, alias, false); err != nil {
		return nil, err
	}
	if o.Sum, err = fem.ReadSum(o.Sim.DirOut, o.Sim.Key, o.Sim.Data.Encoder); err != nil {
		return nil, chk.Err("cannot read summary of %q; was the simulation run?\n%v", o.Sim.Key, err)
	}
	o.X = make([][]float64, len(o.Sim.Mesh.Verts))
	for i, v := range o.Sim.Mesh.Verts {
		o.X[i] = v.C
	}
	o.Results = make(map[string]Points)
	return
}

// Closest returns the vertex closest to x and its distance
func (o *Reader) Closest(x []float64) (vid int, dist float64) {
	vid = -1
	for i, c := range o.X {
		d := distance(x, c)
		if vid < 0 || d < dist {
			vid, dist = i, d
		}
	}
	return
}
