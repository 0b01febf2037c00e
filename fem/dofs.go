// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import "github.com/cpmech/gosl/chk"

// dof indices
const (
	UX = iota // x-displacement
	UY        // y-displacement
	UZ        // z-displacement
	P         // fluid pressure
	C         // solute concentration
)

// boundary condition codes of nodal and rigid dofs
const (
	BC_FIXED      = -1 // no equation; value does not change
	BC_FREE       = 0  // equation is solved for
	BC_PRESCRIBED = 1  // no equation; value is given by a load curve
)

// Dofs holds the configuration of degrees of freedom shared by all nodes of a model
type Dofs struct {
	Keys  []string       // variable names; e.g. ux uy uz p c
	index map[string]int // key => index
}

// NewDofs returns a new dof configuration
//  Note: keys must follow the order ux, uy, uz, p, c
func NewDofs(keys ...string) (o *Dofs) {
	all := []string{"ux", "uy", "uz", "p", "c"}
	if len(keys) < 3 || len(keys) > len(all) {
		chk.Panic("number of dofs per node must be in [3, %d]. %d is invalid", len(all), len(keys))
	}
	o = new(Dofs)
	o.index = make(map[string]int)
	for i, key := range keys {
		if key != all[i] {
			chk.Panic("dof %d must be %q; %q is invalid", i, all[i], key)
		}
		o.Keys = append(o.Keys, key)
		o.index[key] = i
	}
	return
}

// Count returns the number of dofs per node
func (o *Dofs) Count() int { return len(o.Keys) }

// Index returns the index of key or -1 if key is not configured
func (o *Dofs) Index(key string) int {
	if i, ok := o.index[key]; ok {
		return i
	}
	return -1
}

// Has tells whether key is configured
func (o *Dofs) Has(key string) bool {
	_, ok := o.index[key]
	return ok
}

// Key returns the name of dof i
func (o *Dofs) Key(i int) string { return o.Keys[i] }
