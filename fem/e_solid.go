// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/nlfem/inp"
	"github.com/cpmech/nlfem/msolid"
	"github.com/cpmech/nlfem/shp"
)

// ElemSolid represents a solid element with displacements u as primary variables.
// The formulation is updated Lagrangian: integrals are evaluated in the current configuration.
type ElemSolid struct {

	// basic data
	Cell *inp.Cell     // the cell structure
	Nods []*Node       // nodes
	Shp  *shp.Shape    // shape structure
	Ips  []*shp.Ipoint // integration points

	// material model and internal variables
	Model  msolid.Model    // material model
	Rho    float64         // reference density
	States []*msolid.State // [nip] states

	// reference configuration
	S0  [][]float64   // [nip][nverts] shape functions
	G0  [][][]float64 // [nip][nverts][3] derivatives of shape functions w.r.t reference coordinates
	DV0 []float64     // [nip] reference volume of integration point: J0 * w

	// current configuration; computed by Update
	G  [][][]float64 // [nip][nverts][3] derivatives of shape functions w.r.t current coordinates
	Dv []float64     // [nip] current volume of integration point: J * w

	// scratchpad
	x [][]float64 // [3][nverts] coordinates
	f [][]float64 // [3][3] deformation gradient
}

// register element
func init() {
	eallocators["solid"] = func(cell *inp.Cell, reg *inp.RegionData, nodes []*Node) (Element, error) {
		return newElemSolid(cell, reg, nodes)
	}
}

// newElemSolid allocates a new solid element; chain holds extra blocks attached to each material point
func newElemSolid(cell *inp.Cell, reg *inp.RegionData, nodes []*Node, chain ...func() msolid.Block) (o *ElemSolid, err error) {

	// basic data
	o = new(ElemSolid)
	o.Cell = cell
	o.Nods = cellNodes(cell, nodes)
	o.Shp = shp.Get(cell.Type, 1)
	if o.Shp == nil {
		return nil, chk.Err("cannot find shape %q", cell.Type)
	}
	o.Ips, err = shp.GetIps(cell.Type, reg.Nip)
	if err != nil {
		return
	}
	nip, nverts := len(o.Ips), o.Shp.Nverts

	// model
	o.Model = reg.Solid
	if o.Model == nil {
		return nil, chk.Err("solid model is not set")
	}
	o.Rho = o.Model.Density()
	o.States = make([]*msolid.State, nip)
	for i := 0; i < nip; i++ {
		blocks := make([]msolid.Block, len(chain))
		for j, alloc := range chain {
			blocks[j] = alloc()
		}
		o.States[i] = msolid.NewState(blocks...)
	}

	// scratchpad
	o.x = make([][]float64, 3)
	for i := 0; i < 3; i++ {
		o.x[i] = make([]float64, nverts)
	}
	o.f = msolid.Identity()

	// reference configuration
	for a, nod := range o.Nods {
		for i := 0; i < 3; i++ {
			o.x[i][a] = nod.X0[i]
		}
	}
	o.S0 = make([][]float64, nip)
	o.G0 = make([][][]float64, nip)
	o.G = make([][][]float64, nip)
	o.DV0 = make([]float64, nip)
	o.Dv = make([]float64, nip)
	for idx, ip := range o.Ips {
		if err = o.Shp.CalcAtIp(o.x, ip, true); err != nil {
			return nil, chk.Err("invalid reference configuration at ip %d:\n%v", idx, err)
		}
		o.S0[idx] = make([]float64, nverts)
		copy(o.S0[idx], o.Shp.S)
		o.G0[idx] = make([][]float64, nverts)
		o.G[idx] = make([][]float64, nverts)
		for a := 0; a < nverts; a++ {
			o.G0[idx][a] = make([]float64, 3)
			o.G[idx][a] = make([]float64, 3)
			copy(o.G0[idx][a], o.Shp.G[a])
			copy(o.G[idx][a], o.Shp.G[a])
		}
		o.DV0[idx] = o.Shp.J * ip.W
		o.Dv[idx] = o.DV0[idx]
	}

	// active dofs
	for _, nod := range o.Nods {
		for d := 0; d < 3; d++ {
			nod.Active[d] = true
		}
	}
	return
}

// Id returns the cell Id
func (o *ElemSolid) Id() int { return o.Cell.Id }

// Nodes returns the nodes of the element
func (o *ElemSolid) Nodes() []*Node { return o.Nods }

// Dofs returns the dof indices used at each node
func (o *ElemSolid) Dofs() []int { return []int{UX, UY, UZ} }

// Update computes the deformation gradient and the stresses at all integration points
//  F = I + ∂u/∂X
func (o *ElemSolid) Update(time, dt float64) (err error) {
	for a, nod := range o.Nods {
		for i := 0; i < 3; i++ {
			o.x[i][a] = nod.Xt[i]
		}
	}
	for idx, ip := range o.Ips {

		// current configuration
		e := o.Shp.CalcAtIp(o.x, ip, true)
		if e != nil || o.Shp.J <= 0 {
			return &Failure{Kind: NegativeJacobian, Elem: o.Id(), Ip: idx, Vol: o.Shp.J * ip.W, Err: e}
		}
		for a := range o.Nods {
			copy(o.G[idx][a], o.Shp.G[a])
		}
		o.Dv[idx] = o.Shp.J * ip.W

		// deformation gradient
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				o.f[i][j] = msolid.Kdelta(i, j)
				for a, nod := range o.Nods {
					o.f[i][j] += (nod.Xt[i] - nod.X0[i]) * o.G0[idx][a][j]
				}
			}
		}
		s := o.States[idx]
		s.SetTime(dt, time)
		s.SetF(o.f)
		if s.J <= 0 {
			return &Failure{Kind: NegativeJacobian, Elem: o.Id(), Ip: idx, Vol: s.J * o.DV0[idx]}
		}

		// stress
		if upd, ok := o.Model.(msolid.Updater); ok {
			if err = upd.Update(s); err != nil {
				return &Failure{Kind: MultiScale, Elem: o.Id(), Ip: idx, Err: err}
			}
		}
		s.SetStress(o.Model.Stress(s))
	}
	return
}

// InternalForce computes fe = ∫ σ⋅G dv
func (o *ElemSolid) InternalForce(fe []float64) (err error) {
	for i := range fe {
		fe[i] = 0
	}
	o.addInternalForce(fe, 3, nil)
	return
}

// addInternalForce adds (σ - p I)⋅G dv to fe with stride nd; pressure may be nil
func (o *ElemSolid) addInternalForce(fe []float64, nd int, pressure func(idx int) float64) {
	for idx := range o.Ips {
		σ := o.States[idx].Sig
		p := 0.0
		if pressure != nil {
			p = pressure(idx)
		}
		dv := o.Dv[idx]
		for a := range o.Nods {
			G := o.G[idx][a]
			for i := 0; i < 3; i++ {
				v := -p * G[i]
				for j := 0; j < 3; j++ {
					v += σ.Get(i, j) * G[j]
				}
				fe[a*nd+i] += v * dv
			}
		}
	}
}

// Stiffness computes the material and geometric parts of the tangent
//  K_aibk = ∫ G_aj c_ijkl G_bl dv + δ_ik ∫ G_aj σ_jl G_bl dv
func (o *ElemSolid) Stiffness(Ke [][]float64) (err error) {
	for i := range Ke {
		for j := range Ke[i] {
			Ke[i][j] = 0
		}
	}
	o.addStiffness(Ke, 3)
	return
}

// addStiffness adds the solid part of the tangent to Ke with stride nd
func (o *ElemSolid) addStiffness(Ke [][]float64, nd int) {
	nverts := len(o.Nods)
	for idx := range o.Ips {
		s := o.States[idx]
		c := o.Model.Tangent(s)
		σ := s.Sig
		dv := o.Dv[idx]
		G := o.G[idx]
		for a := 0; a < nverts; a++ {
			for b := a; b < nverts; b++ {

				// geometric
				kσ := 0.0
				for j := 0; j < 3; j++ {
					for l := 0; l < 3; l++ {
						kσ += G[a][j] * σ.Get(j, l) * G[b][l]
					}
				}

				// material
				for i := 0; i < 3; i++ {
					for k := 0; k < 3; k++ {
						v := 0.0
						for j := 0; j < 3; j++ {
							for l := 0; l < 3; l++ {
								v += G[a][j] * c.Get(i, j, k, l) * G[b][l]
							}
						}
						if i == k {
							v += kσ
						}
						Ke[a*nd+i][b*nd+k] += v * dv
					}
				}
			}
		}
	}

	// lower triangle
	for a := 0; a < nverts; a++ {
		for b := 0; b < a; b++ {
			for i := 0; i < 3; i++ {
				for k := 0; k < 3; k++ {
					Ke[a*nd+i][b*nd+k] = Ke[b*nd+k][a*nd+i]
				}
			}
		}
	}
}

// LumpedMass returns the row sums of the consistent mass matrix ρ0 ∫ N N dV0
func (o *ElemSolid) LumpedMass() (m ElementMass) {
	m.Frac = make([]float64, len(o.Nods))
	for idx := range o.Ips {
		for a := range o.Nods {
			v := o.Rho * o.S0[idx][a] * o.DV0[idx]
			m.Frac[a] += v
			m.Total += v
		}
	}
	if m.Total > 0 {
		for a := range m.Frac {
			m.Frac[a] /= m.Total
		}
	}
	return
}

// BodyForce computes fe = ∫ ρ0 N b dV0
func (o *ElemSolid) BodyForce(fe []float64, b []float64) {
	o.addBodyForce(fe, b, 3)
}

// addBodyForce adds the body force to fe with stride nd
func (o *ElemSolid) addBodyForce(fe []float64, b []float64, nd int) {
	for idx := range o.Ips {
		for a := range o.Nods {
			v := o.Rho * o.S0[idx][a] * o.DV0[idx]
			for i := 0; i < 3; i++ {
				fe[a*nd+i] += v * b[i]
			}
		}
	}
}

// Volume returns the current volume
func (o *ElemSolid) Volume() (v float64) {
	for _, dv := range o.Dv {
		v += dv
	}
	return
}

// StrainEnergy returns ∫ W dV0
func (o *ElemSolid) StrainEnergy() (w float64) {
	for idx, s := range o.States {
		w += o.Model.StrainEnergyDensity(s) * o.DV0[idx]
	}
	return
}

// SetTime sets the time and step size of all material points
func (o *ElemSolid) SetTime(time, dt float64) {
	for _, s := range o.States {
		s.SetTime(dt, time)
	}
}

// Backup saves the states of all integration points
func (o *ElemSolid) Backup() {
	for _, s := range o.States {
		s.Backup()
	}
}

// Restore restores the states of all integration points
func (o *ElemSolid) Restore() {
	for _, s := range o.States {
		s.Restore()
	}
}

// Commit accepts the states of all integration points
func (o *ElemSolid) Commit() {
	for _, s := range o.States {
		s.Commit()
	}
}

// Serialize writes or reads the states of all integration points
func (o *ElemSolid) Serialize(ar *Archive) {
	ar.Section("solid", "F", "Fp", "J", "sig")
	for _, s := range o.States {
		serializeSolidState(ar, s)
	}
}

// serializeSolidState writes or reads the kinematics and stress of a material point
func serializeSolidState(ar *Archive, s *msolid.State) {
	for i := 0; i < 3; i++ {
		ar.Floats(s.F[i])
		ar.Floats(s.Fp[i])
	}
	ar.Float(&s.J)
	sig := make([]float64, 6)
	k := 0
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			sig[k] = s.Sig.Get(i, j)
			k++
		}
	}
	ar.Floats(sig)
	k = 0
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			s.Sig.Set(i, j, sig[k])
			k++
		}
	}
}
