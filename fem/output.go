// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

// Recorder writes results at output times
type Recorder interface {
	Write(m *Model, t float64) (err error)
}

// RigidResults holds the results of one rigid body
type RigidResults struct {
	Name string    // name of body
	U    []float64 // [6] displacement of centre and rotation vector
	Fr   []float64 // [3] reaction force
	Mr   []float64 // [3] reaction moment about the centre
}

// NodeResults holds the state of all nodes and rigid bodies at one output time
type NodeResults struct {
	Time  float64        // time
	U     [][]float64    // [nnodes][3] displacements
	V     [][]float64    // [nnodes][3] velocities
	P     []float64      // [nnodes] fluid pressures; nil if the model has no u-p-c elements
	C     []float64      // [nnodes] concentrations; nil if the model has no u-p-c elements
	Fr    [][]float64    // [nnodes][ndof] reactions
	Rigid []RigidResults // [nrigid] rigid bodies
}

// NewNodeResults collects the current results of m
func NewNodeResults(m *Model, t float64) (o *NodeResults) {
	o = &NodeResults{Time: t}
	nn := len(m.Nodes)
	o.U = make([][]float64, nn)
	o.V = make([][]float64, nn)
	o.Fr = make([][]float64, nn)
	upc := m.Dofs.Has("p")
	if upc {
		o.P = make([]float64, nn)
		o.C = make([]float64, nn)
	}
	for i, nod := range m.Nodes {
		o.U[i] = nod.Displacement()
		o.V[i] = []float64{nod.Vt[0], nod.Vt[1], nod.Vt[2]}
		o.Fr[i] = append([]float64{}, nod.Fr...)
		if upc {
			o.P[i] = nod.Pt
			o.C[i] = nod.Ct
		}
	}
	for _, rb := range m.Rigid {
		o.Rigid = append(o.Rigid, RigidResults{
			Name: rb.Name,
			U:    append([]float64{}, rb.Ut...),
			Fr:   append([]float64{}, rb.Fr...),
			Mr:   append([]float64{}, rb.Mr...),
		})
	}
	return
}

// NodeRecorder saves one file with the results of all nodes per output time
// and appends the output time to the summary
type NodeRecorder struct {
	Verbose bool // show file names
}

// Write saves the current results
func (o *NodeRecorder) Write(m *Model, t float64) (err error) {
	sum := m.Summary
	tidx := len(sum.OutTimes)
	fn := out_nod_path(sum.Dirout, sum.Fnkey, sum.Encoder, tidx)
	if err = SaveEncoded(fn, sum.Encoder, NewNodeResults(m, t), o.Verbose); err != nil {
		return
	}
	sum.OutTimes = append(sum.OutTimes, t)
	return
}

// ReadNodeResults reads the results saved at output index tidx
func ReadNodeResults(dir, fnkey, encoder string, tidx int) (o *NodeResults, err error) {
	o = new(NodeResults)
	if err = ReadEncoded(out_nod_path(dir, fnkey, encoder, tidx), encoder, o); err != nil {
		return nil, err
	}
	return
}
