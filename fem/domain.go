// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
	"github.com/cpmech/nlfem/linsol"
)

// runParallel calls fcn for all elements concurrently.
// Errors are collected per element; the one of the element with the lowest index is returned.
func (o *Model) runParallel(fcn func(i int, ele Element) error) (err error) {
	errs := make([]error, len(o.Elems))
	var wg sync.WaitGroup
	wg.Add(len(o.Elems))
	for i, ele := range o.Elems {
		go func(i int, ele Element) {
			defer wg.Done()
			errs[i] = fcn(i, ele)
		}(i, ele)
	}
	wg.Wait()
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return
}

// UpdateStresses updates kinematics and stresses of all elements at the current nodal values
func (o *Model) UpdateStresses() (err error) {
	t, dt := o.Time+o.Dt, o.Dt
	err = o.runParallel(func(i int, ele Element) error {
		return ele.Update(t, dt)
	})
	if f, ok := AsFailure(err); ok && f.Kind == NegativeJacobian {
		f.Msg = "running restart requested"
	}
	return
}

// Residual computes R = Fn - Fint + Fcontact and records reactions
func (o *Model) Residual(R *GlobalVector) (err error) {

	// clear reactions
	for _, rb := range o.Rigid {
		rb.ClearReactions()
	}
	for _, nod := range o.Nodes {
		for d := range nod.Fr {
			nod.Fr[d] = 0
		}
	}

	// external and internal forces
	copy(R.V, o.Fn)
	err = o.runParallel(func(i int, ele Element) (e error) {
		fe := o.fe[i]
		if e = ele.InternalForce(fe); e != nil {
			return
		}
		R.AddElement(ele, fe, -1, true)
		return
	})
	if err != nil {
		return
	}

	// contact
	for _, c := range o.Contacts {
		c.Residual(R)
	}
	for _, eq := range o.Eqs.Pinned() {
		R.V[eq] = 0
	}
	return
}

// Stiffness assembles the global tangent matrix
//  Note: rows of prescribed rigid dofs only have a unit diagonal
func (o *Model) Stiffness() (err error) {
	o.K.Zero()
	err = o.runParallel(func(i int, ele Element) (e error) {
		Ke := o.ke[i]
		if e = ele.Stiffness(Ke); e != nil {
			return
		}
		o.asm.AddElement(ele, Ke)
		return
	})
	if err != nil {
		return
	}
	for _, c := range o.Contacts {
		c.StiffnessMatrix(o.asm)
	}
	for _, eq := range o.Eqs.Pinned() {
		o.K.Add(eq, eq, 1)
	}
	return
}

// BuildMass assembles ∫ N N dV0 over the equations [n0, n0+n1) of pressure and concentration.
// If lumped is true, rows are summed onto the diagonal.
func (o *Model) BuildMass(n0, n1 int, lumped bool) (M *linsol.CSRMatrix, err error) {

	// elements
	var fluids []Element
	for _, ele := range o.Elems {
		if _, ok := ele.(fluidElement); ok {
			fluids = append(fluids, ele)
		}
	}
	if len(fluids) == 0 {
		return nil, chk.Err("cannot build mass matrix: there are no u-p-c elements")
	}

	// structure
	p := linsol.NewPattern(n1, n1)
	if !lumped {
		for _, ele := range fluids {
			lm := o.Eqs.Locations(ele.Nodes(), []int{P, C})
			for i := range lm {
				lm[i] -= n0
			}
			p.AddElement(lm)
		}
	}
	p.AddDiagonal()
	M = linsol.NewCSRMatrix(p)

	// values
	for _, ele := range fluids {
		dofs := ele.Dofs()
		nd, n := len(dofs), localSize(ele)
		Me := utl.Alloc(n, n)
		ele.(fluidElement).FluidMass(Me)
		terms := make([][]Term, n)
		for a, nod := range ele.Nodes() {
			for j, d := range dofs {
				if d >= P {
					terms[a*nd+j] = o.Eqs.Expand(nod, d, 1, nil)
				}
			}
		}
		for r, ti := range terms {
			for c, tj := range terms {
				if Me[r][c] == 0 {
					continue
				}
				for _, I := range ti {
					for _, J := range tj {
						i, j := I.Eq-n0, J.Eq-n0
						if i < 0 || j < 0 || i >= n1 || j >= n1 {
							continue
						}
						if lumped {
							j = i
						}
						M.Add(i, j, I.W*J.W*Me[r][c])
					}
				}
			}
		}
	}
	return
}

// ElementMasses returns the lumped masses of all elements
func (o *Model) ElementMasses() (masses []ElementMass) {
	masses = make([]ElementMass, len(o.Elems))
	for i, ele := range o.Elems {
		masses[i] = ele.LumpedMass()
	}
	return
}

// LumpedMass returns the diagonal of the lumped mass matrix of the displacement equations
//  M_I = Σ w² m_e f_a over all nodal dofs contributing to equation I
//  masses are given by ElementMasses
func (o *Model) LumpedMass(masses []ElementMass) (M []float64) {
	M = make([]float64, o.Eqs.Neq)
	var terms []Term
	for i, ele := range o.Elems {
		m := masses[i]
		for a, nod := range ele.Nodes() {
			for d := 0; d < 3; d++ {
				terms = o.Eqs.Expand(nod, d, 1, terms[:0])
				for _, t := range terms {
					M[t.Eq] += t.W * t.W * m.Total * m.Frac[a]
				}
			}
		}
	}
	return
}

// EquationRange returns the number of equations of the first (mechanics) and second (pressure and concentration) partitions
func (o *Model) EquationRange() (n0, n1 int) {
	return o.Eqs.Range()
}

// TotalMass returns the sum of the masses of all elements
func (o *Model) TotalMass() (m float64) {
	for _, ele := range o.Elems {
		m += ele.LumpedMass().Total
	}
	return
}

// StrainEnergy returns the total strain energy of solid elements
func (o *Model) StrainEnergy() (w float64) {
	for _, ele := range o.Elems {
		switch e := ele.(type) {
		case *ElemSolid:
			w += e.StrainEnergy()
		case *ElemUpc:
			w += e.U.StrainEnergy()
		}
	}
	return
}
