// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/nlfem/inp"
)

// LoadCurve is a scaled time function
type LoadCurve struct {
	Fcn   dbf.T   // function of time; nil means constant
	Scale float64 // multiplier; 0 means 1
}

// Value returns the value of the load curve at time t
func (o *LoadCurve) Value(t float64) float64 {
	s := o.Scale
	if s == 0 {
		s = 1
	}
	if o.Fcn == nil {
		return s
	}
	return s * o.Fcn.F(t, nil)
}

// newLoadCurve returns a load curve from a function name in the simulation data
func newLoadCurve(sim *inp.Simulation, fcn string, scale float64) (lc *LoadCurve, err error) {
	lc = &LoadCurve{Scale: scale}
	if fcn == "" {
		return
	}
	lc.Fcn, err = sim.Functions.Get(fcn)
	return
}

// NodalBc holds a prescribed value or a concentrated load applied to a set of nodal dofs
type NodalBc struct {
	Type  string     // "prescribed" or "load"
	Nodes []int      // node ids
	Dofs  []int      // dof indices
	Curve *LoadCurve // value
}

// bodyForce holds a body force ρ b applied to a set of elements
type bodyForce struct {
	Elems []Element  // elements
	B     []float64  // [3] acceleration
	Curve *LoadCurve // multiplier
}

// setBcs marks nodal dofs and allocates loads and prescribed values
func (o *Model) setBcs() (err error) {
	for i, bc := range o.Sim.Bcs {
		var dofs []int
		for _, key := range bc.Keys {
			d := o.Dofs.Index(key)
			if d < 0 {
				return chk.Err("bcs[%d]: dof %q is not available in this model", i, key)
			}
			dofs = append(dofs, d)
		}
		switch bc.Type {
		case "fixed", "prescribed":
			code := BC_FIXED
			if bc.Type == "prescribed" {
				code = BC_PRESCRIBED
			}
			for _, nid := range bc.NodeIds {
				for _, d := range dofs {
					o.Nodes[nid].BC[d] = code
				}
			}
			if bc.Type == "fixed" {
				continue
			}
		}
		curve, e := newLoadCurve(o.Sim, bc.Fcn, bc.Scale)
		if e != nil {
			return chk.Err("bcs[%d]: %v", i, e)
		}
		o.NodalBcs = append(o.NodalBcs, &NodalBc{Type: bc.Type, Nodes: bc.NodeIds, Dofs: dofs, Curve: curve})
	}

	// body forces
	for i, bf := range o.Sim.BodyForce {
		curve, e := newLoadCurve(o.Sim, bf.Fcn, bf.Scale)
		if e != nil {
			return chk.Err("bodyforce[%d]: %v", i, e)
		}
		b := &bodyForce{B: bf.B, Curve: curve}
		for _, ele := range o.Elems {
			if bf.Tag == 0 || o.Sim.Mesh.Cells[ele.Id()].Tag == bf.Tag {
				b.Elems = append(b.Elems, ele)
			}
		}
		o.BodyForces = append(o.BodyForces, b)
	}
	return
}

// applyPrescribed sets the values of prescribed nodal dofs at time t
func (o *Model) applyPrescribed(t float64) {
	for _, bc := range o.NodalBcs {
		if bc.Type != "prescribed" {
			continue
		}
		v := bc.Curve.Value(t)
		for _, nid := range bc.Nodes {
			nod := o.Nodes[nid]
			for _, d := range bc.Dofs {
				if nod.Rid >= 0 && d < 3 {
					continue
				}
				nod.SetValue(d, v)
			}
		}
	}
}

// nodalLoads computes the external force vector due to concentrated loads and body forces at time t
//  Note: fluxes on p and c are multiplied by -dt, consistent with the scaling of the balance equations
func (o *Model) nodalLoads(Fn []float64, t, dt float64) {
	for i := range Fn {
		Fn[i] = 0
	}
	var terms []Term
	for _, bc := range o.NodalBcs {
		if bc.Type != "load" {
			continue
		}
		v := bc.Curve.Value(t)
		for _, nid := range bc.Nodes {
			nod := o.Nodes[nid]
			for _, d := range bc.Dofs {
				f := v
				if d >= P {
					f = -dt * v
				}
				terms = o.Eqs.Expand(nod, d, 1, terms[:0])
				for _, tm := range terms {
					Fn[tm.Eq] += tm.W * f
				}
			}
		}
	}
	for _, rb := range o.Rigid {
		for k := 0; k < 6; k++ {
			if rb.Loads[k] != nil && rb.LM[k] >= 0 {
				Fn[rb.LM[k]] += rb.Loads[k].Value(t)
			}
		}
	}
	gv := &GlobalVector{V: Fn, eqs: o.Eqs}
	for _, bf := range o.BodyForces {
		s := bf.Curve.Value(t)
		b := []float64{s * bf.B[0], s * bf.B[1], s * bf.B[2]}
		for _, ele := range bf.Elems {
			fe := make([]float64, localSize(ele))
			ele.BodyForce(fe, b)
			gv.AddElement(ele, fe, 1, false)
		}
	}
}
