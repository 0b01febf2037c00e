// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sort"
	"sync"

	"github.com/cpmech/nlfem/linsol"
)

// GlobalVector is a global vector that can be assembled concurrently
type GlobalVector struct {
	V   []float64  // [neq] values
	eqs *Equations // numbering
	mu  sync.Mutex // guards V and reactions
}

// NewGlobalVector allocates a zeroed vector
func NewGlobalVector(eqs *Equations) *GlobalVector {
	return &GlobalVector{V: make([]float64, eqs.Neq), eqs: eqs}
}

// Zero sets all values to zero
func (o *GlobalVector) Zero() {
	for i := range o.V {
		o.V[i] = 0
	}
}

// AddNodal adds f to the equations of dof d of nod
func (o *GlobalVector) AddNodal(nod *Node, d int, f float64) {
	terms := o.eqs.Expand(nod, d, 1, nil)
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, t := range terms {
		o.V[t.Eq] += t.W * f
	}
}

// AddElement adds s⋅fe to the equations of the element.
// If reactions is true, fe is also recorded at constrained nodal dofs and on rigid bodies.
func (o *GlobalVector) AddElement(ele Element, fe []float64, s float64, reactions bool) {
	dofs := ele.Dofs()
	nd := len(dofs)
	var terms []Term
	o.mu.Lock()
	defer o.mu.Unlock()
	for a, nod := range ele.Nodes() {
		for j, d := range dofs {
			f := fe[a*nd+j]
			terms = o.eqs.Expand(nod, d, 1, terms[:0])
			for _, t := range terms {
				o.V[t.Eq] += t.W * s * f
			}
			if !reactions {
				continue
			}
			if nod.Rid >= 0 && d < 3 {
				o.eqs.rigid[nod.Rid].addReaction(nod.Xt, d, f)
				continue
			}
			if nod.ID[d] == -1 && !o.eqs.IsMaster(nod, d) {
				nod.Fr[d] += f
			}
		}
	}
}

// Assembler assembles the global tangent matrix concurrently
type Assembler struct {
	K   linsol.SparseMatrix // global matrix
	eqs *Equations          // numbering
	mu  sync.Mutex          // guards K
}

// NewAssembler returns a new assembler for K
func NewAssembler(K linsol.SparseMatrix, eqs *Equations) *Assembler {
	return &Assembler{K: K, eqs: eqs}
}

// AddNodal adds k to the coupling between dof da of na and dof db of nb
func (o *Assembler) AddNodal(na *Node, da int, nb *Node, db int, k float64) {
	ti := o.eqs.Expand(na, da, 1, nil)
	tj := o.eqs.Expand(nb, db, 1, nil)
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, I := range ti {
		for _, J := range tj {
			o.K.Add(I.Eq, J.Eq, I.W*J.W*k)
		}
	}
}

// AddElement adds Ke to the equations of the element
func (o *Assembler) AddElement(ele Element, Ke [][]float64) {
	dofs := ele.Dofs()
	nd := len(dofs)
	nodes := ele.Nodes()
	terms := make([][]Term, len(nodes)*nd)
	for a, nod := range nodes {
		for j, d := range dofs {
			terms[a*nd+j] = o.eqs.Expand(nod, d, 1, nil)
		}
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	for r, ti := range terms {
		for c, tj := range terms {
			k := Ke[r][c]
			if k == 0 {
				continue
			}
			for _, I := range ti {
				for _, J := range tj {
					o.K.Add(I.Eq, J.Eq, I.W*J.W*k)
				}
			}
		}
	}
}

// Locations returns the sorted equations that the dofs of nodes contribute to
func (o *Equations) Locations(nodes []*Node, dofs []int) (lm []int) {
	set := make(map[int]bool)
	var terms []Term
	for _, nod := range nodes {
		for _, d := range dofs {
			terms = o.Expand(nod, d, 1, terms[:0])
			for _, t := range terms {
				set[t.Eq] = true
			}
		}
	}
	for eq := range set {
		lm = append(lm, eq)
	}
	sort.Ints(lm)
	return
}

// Pattern returns the sparsity pattern of the global matrix.
// It includes element couplings, the self-coupling of every node (used by contact) and the diagonal.
func (o *Equations) Pattern(elems []Element) (p *linsol.Pattern) {
	p = linsol.NewPattern(o.Neq, o.Neq)
	for _, ele := range elems {
		p.AddElement(o.Locations(ele.Nodes(), ele.Dofs()))
	}
	for _, nod := range o.nodes {
		dofs := make([]int, len(nod.ID))
		for d := range dofs {
			dofs[d] = d
		}
		p.AddElement(o.Locations([]*Node{nod}, dofs))
	}
	p.AddDiagonal()
	return
}
