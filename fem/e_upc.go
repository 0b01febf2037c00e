// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/nlfem/inp"
	"github.com/cpmech/nlfem/mporous"
	"github.com/cpmech/nlfem/msolid"
)

// ElemUpc represents a biphasic-solute element with displacements u, fluid pressure p and
// solute concentration c as primary variables.
//  Balance of mass of fluid and solute are multiplied by -dt and written in the reference configuration:
//   Rp_a = -∫ N_a (J - Jp) dV0 + dt ∫ G0_a ⋅ w dV0
//   Rc_a = -∫ N_a (c - cp) dV0 + dt ∫ G0_a ⋅ j dV0
//  where w = -k ∇0p and j = -d ∇0c - c k ∇0p
type ElemUpc struct {
	U     *ElemSolid             // solid part
	Model *mporous.Model         // transport model
	Poro  []*mporous.PoroState   // [nip] fluid data
	Sol   []*mporous.SoluteState // [nip] solute data
	dt    float64                // time step of the last update
}

// register element
func init() {
	eallocators["upc"] = func(cell *inp.Cell, reg *inp.RegionData, nodes []*Node) (Element, error) {
		return newElemUpc(cell, reg, nodes)
	}
}

// newElemUpc allocates a new u-p-c element
func newElemUpc(cell *inp.Cell, reg *inp.RegionData, nodes []*Node) (o *ElemUpc, err error) {
	o = new(ElemUpc)
	o.Model = reg.Porous
	if o.Model == nil {
		return nil, chk.Err("porous model is not set")
	}
	o.U, err = newElemSolid(cell, reg, nodes,
		func() msolid.Block { return mporous.NewPoroState() },
		func() msolid.Block { return mporous.NewSoluteState() })
	if err != nil {
		return nil, err
	}
	for _, s := range o.U.States {
		o.Poro = append(o.Poro, s.Chain[0].(*mporous.PoroState))
		o.Sol = append(o.Sol, s.Chain[1].(*mporous.SoluteState))
	}
	for _, nod := range o.U.Nods {
		if len(nod.Active) <= C {
			return nil, chk.Err("nodes of u-p-c elements require %d dofs", C+1)
		}
		nod.Active[P] = true
		nod.Active[C] = true
	}
	return
}

// Id returns the cell Id
func (o *ElemUpc) Id() int { return o.U.Cell.Id }

// Nodes returns the nodes of the element
func (o *ElemUpc) Nodes() []*Node { return o.U.Nods }

// Dofs returns the dof indices used at each node
func (o *ElemUpc) Dofs() []int { return []int{UX, UY, UZ, P, C} }

// Update updates the solid part and computes fluxes at all integration points
func (o *ElemUpc) Update(time, dt float64) (err error) {
	if err = o.U.Update(time, dt); err != nil {
		return
	}
	o.dt = dt
	for idx := range o.U.Ips {
		ps, cs := o.Poro[idx], o.Sol[idx]
		ps.P, cs.C = 0, 0
		for i := 0; i < 3; i++ {
			ps.GradP[i], cs.GradC[i] = 0, 0
		}
		for a, nod := range o.U.Nods {
			N, G := o.U.S0[idx][a], o.U.G0[idx][a]
			ps.P += N * nod.Pt
			cs.C += N * nod.Ct
			for i := 0; i < 3; i++ {
				ps.GradP[i] += G[i] * nod.Pt
				cs.GradC[i] += G[i] * nod.Ct
			}
		}
		o.Model.Flux(ps.W, ps.GradP)
		o.Model.SoluteFlux(cs.J, cs.C, cs.GradC, ps.GradP)
	}
	return
}

// InternalForce computes the internal force vector
func (o *ElemUpc) InternalForce(fe []float64) (err error) {
	for i := range fe {
		fe[i] = 0
	}
	o.U.addInternalForce(fe, 5, func(idx int) float64 { return o.Poro[idx].P })
	for idx := range o.U.Ips {
		s, ps, cs := o.U.States[idx], o.Poro[idx], o.Sol[idx]
		Jp := msolid.Det(s.Fp)
		dV0 := o.U.DV0[idx]
		for a := range o.U.Nods {
			N, G := o.U.S0[idx][a], o.U.G0[idx][a]
			fe[5*a+P] += (-N*(s.J-Jp) + o.dt*dot3(G, ps.W)) * dV0
			fe[5*a+C] += (-N*(cs.C-cs.Cp) + o.dt*dot3(G, cs.J)) * dV0
		}
	}
	return
}

// Stiffness computes the tangent matrix
func (o *ElemUpc) Stiffness(Ke [][]float64) (err error) {
	for i := range Ke {
		for j := range Ke[i] {
			Ke[i][j] = 0
		}
	}
	o.U.addStiffness(Ke, 5)
	k, d, dt := o.Model.K, o.Model.D, o.dt
	nverts := len(o.U.Nods)
	for idx := range o.U.Ips {
		p, c := o.Poro[idx].P, o.Sol[idx].C
		gradp := o.Poro[idx].GradP
		dv, dV0 := o.U.Dv[idx], o.U.DV0[idx]
		G, S0, G0 := o.U.G[idx], o.U.S0[idx], o.U.G0[idx]
		for a := 0; a < nverts; a++ {
			for b := 0; b < nverts; b++ {

				// u-u: pressure term
				for i := 0; i < 3; i++ {
					for m := 0; m < 3; m++ {
						Ke[5*a+i][5*b+m] -= p * (G[a][i]*G[b][m] - G[a][m]*G[b][i]) * dv
					}
				}

				// u-p and p-u
				for i := 0; i < 3; i++ {
					Ke[5*a+i][5*b+P] -= G[a][i] * S0[b] * dv
					Ke[5*a+P][5*b+i] -= S0[a] * G[b][i] * dv
				}

				// p-p, c-c and c-p
				gg := dot3(G0[a], G0[b])
				Ke[5*a+P][5*b+P] -= dt * k * gg * dV0
				Ke[5*a+C][5*b+C] -= (S0[a]*S0[b] + dt*(d*gg+S0[b]*k*dot3(G0[a], gradp))) * dV0
				Ke[5*a+C][5*b+P] -= dt * c * k * gg * dV0
			}
		}
	}
	if o.Model.Symm() {
		n := len(Ke)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				v := (Ke[i][j] + Ke[j][i]) / 2
				Ke[i][j], Ke[j][i] = v, v
			}
		}
	}
	return
}

// FluidMass computes ∫ N N dV0 for the p and c dofs
func (o *ElemUpc) FluidMass(Me [][]float64) {
	for i := range Me {
		for j := range Me[i] {
			Me[i][j] = 0
		}
	}
	for idx := range o.U.Ips {
		S0, dV0 := o.U.S0[idx], o.U.DV0[idx]
		for a := range o.U.Nods {
			for b := range o.U.Nods {
				v := S0[a] * S0[b] * dV0
				Me[5*a+P][5*b+P] += v
				Me[5*a+C][5*b+C] += v
			}
		}
	}
}

// LumpedMass returns the lumped mass of the solid
func (o *ElemUpc) LumpedMass() ElementMass { return o.U.LumpedMass() }

// BodyForce computes fe = ∫ ρ0 N b dV0
func (o *ElemUpc) BodyForce(fe []float64, b []float64) { o.U.addBodyForce(fe, b, 5) }

// Volume returns the current volume
func (o *ElemUpc) Volume() float64 { return o.U.Volume() }

// SetTime sets the time and step size of all material points
func (o *ElemUpc) SetTime(time, dt float64) {
	o.U.SetTime(time, dt)
	o.dt = dt
}

// Backup saves the states of all integration points
func (o *ElemUpc) Backup() { o.U.Backup() }

// Restore restores the states of all integration points
func (o *ElemUpc) Restore() { o.U.Restore() }

// Commit accepts the states of all integration points
func (o *ElemUpc) Commit() { o.U.Commit() }

// Serialize writes or reads the states of all integration points
func (o *ElemUpc) Serialize(ar *Archive) {
	o.U.Serialize(ar)
	ar.Section("upc", "p", "c", "cp")
	for idx := range o.U.Ips {
		ar.Float(&o.Poro[idx].P)
		ar.Float(&o.Sol[idx].C)
		ar.Float(&o.Sol[idx].Cp)
	}
}

// dot3 returns u⋅v for 3D vectors
func dot3(u, v []float64) float64 {
	return u[0]*v[0] + u[1]*v[1] + u[2]*v[2]
}
