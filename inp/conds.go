// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// dof keys
var (
	NodeKeys  = []string{"ux", "uy", "uz", "p", "c"}       // nodal degrees of freedom
	RigidKeys = []string{"ux", "uy", "uz", "rx", "ry", "rz"} // rigid body degrees of freedom
)

// BcData holds nodal boundary conditions
type BcData struct {
	Type  string   `yaml:"type"`  // "fixed", "prescribed" or "load"
	Tag   int      `yaml:"tag"`   // vertex or face tag
	Nodes []int    `yaml:"nodes"` // node ids; used with or instead of tag
	Keys  []string `yaml:"keys"`  // dofs; e.g. ux, uy, uz, p, c
	Fcn   string   `yaml:"fcn"`   // load curve; empty means constant 1
	Scale float64  `yaml:"scale"` // multiplier; 0 means 1

	// derived
	NodeIds []int `yaml:"-"` // all selected nodes
}

// RigidBcData holds boundary conditions of rigid bodies
type RigidBcData struct {
	Type  string   `yaml:"type"`  // "fixed", "prescribed" or "load"
	Keys  []string `yaml:"keys"`  // dofs; ux, uy, uz, rx, ry, rz
	Fcn   string   `yaml:"fcn"`   // load curve; empty means constant 1
	Scale float64  `yaml:"scale"` // multiplier; 0 means 1
}

// RigidData holds rigid body data
type RigidData struct {
	Name   string         `yaml:"name"`   // name of body
	Tag    int            `yaml:"tag"`    // vertex or face tag of attached nodes
	Nodes  []int          `yaml:"nodes"`  // attached nodes; used with or instead of tag
	Center []float64      `yaml:"center"` // centre of rotation; empty means centroid of nodes
	Bcs    []*RigidBcData `yaml:"bcs"`    // boundary conditions
	Parent string         `yaml:"parent"` // name of parent body; must be defined before this one

	// derived
	NodeIds []int `yaml:"-"` // all attached nodes
}

// SlaveData holds one term of a linear constraint
type SlaveData struct {
	Node int     `yaml:"node"` // node id
	Key  string  `yaml:"key"`  // dof key
	W    float64 `yaml:"w"`    // weight
}

// LinConData holds a linear constraint: master = Σ w slave
type LinConData struct {
	Node   int          `yaml:"node"`   // master node id
	Key    string       `yaml:"key"`    // master dof key
	Slaves []*SlaveData `yaml:"slaves"` // slave terms
}

// WallData holds data of a rigid plane with penalty contact
type WallData struct {
	Name    string    `yaml:"name"`    // name
	Tag     int       `yaml:"tag"`     // vertex or face tag of nodes that may touch the wall
	Nodes   []int     `yaml:"nodes"`   // nodes; used with or instead of tag
	Point   []float64 `yaml:"point"`   // point on plane
	Normal  []float64 `yaml:"normal"`  // outward normal (pointing to the body)
	Penalty float64   `yaml:"penalty"` // penalty factor
	Augment bool      `yaml:"augment"` // use augmented Lagrangian
	AugTol  float64   `yaml:"augtol"`  // augmentation tolerance; relative change of multipliers
	Fcn     string    `yaml:"fcn"`     // displacement of wall along normal; empty means fixed wall
	Scale   float64   `yaml:"scale"`   // multiplier; 0 means 1

	// derived
	NodeIds []int `yaml:"-"` // all selected nodes
}

// ContactData holds all contact interfaces
type ContactData struct {
	Walls []*WallData `yaml:"walls"` // rigid walls
}

// BodyForceData holds body force data b; the force per unit volume is ρ b
type BodyForceData struct {
	Tag   int       `yaml:"tag"`   // cell tag; 0 means all cells
	B     []float64 `yaml:"b"`     // [3] acceleration
	Fcn   string    `yaml:"fcn"`   // load curve; empty means constant 1
	Scale float64   `yaml:"scale"` // multiplier; 0 means 1
}

// checkKeys checks keys against a list of valid keys
func checkKeys(keys, valid []string, what string) (err error) {
	if len(keys) == 0 {
		return chk.Err("%s: at least one key must be given", what)
	}
	for _, key := range keys {
		if utl.StrIndexSmall(valid, key) < 0 {
			return chk.Err("%s: key %q is invalid; options are %v", what, key, valid)
		}
	}
	return
}

// checkType checks the type of condition
func checkType(typ, what string) (err error) {
	switch typ {
	case "fixed", "prescribed", "load":
		return
	}
	return chk.Err("%s: type %q is invalid; options are \"fixed\", \"prescribed\" and \"load\"", what, typ)
}

// selectNodes returns the sorted union of nodes with tag and given nodes
func (o *Mesh) selectNodes(tag int, nodes []int, what string) (ids []int, err error) {
	set := make(map[int]bool)
	if tag != 0 {
		tagged := o.TagVerts(tag)
		if len(tagged) == 0 {
			return nil, chk.Err("%s: cannot find nodes with tag %d", what, tag)
		}
		for _, id := range tagged {
			set[id] = true
		}
	}
	for _, id := range nodes {
		if id < 0 || id >= len(o.Verts) {
			return nil, chk.Err("%s: node %d does not exist", what, id)
		}
		set[id] = true
	}
	if len(set) == 0 {
		return nil, chk.Err("%s: either tag or nodes must be given", what)
	}
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return
}

// checkConds checks all conditions and selects nodes
func (o *Simulation) checkConds() (err error) {

	// auxiliary
	fcnOk := func(name, what string) error {
		if name == "" {
			return nil
		}
		if _, e := o.Functions.Get(name); e != nil {
			return chk.Err("%s: %v", what, e)
		}
		return nil
	}

	// nodal conditions
	for i, bc := range o.Bcs {
		what := io.Sf("bcs[%d]", i)
		if err = checkType(bc.Type, what); err != nil {
			return
		}
		if err = checkKeys(bc.Keys, NodeKeys, what); err != nil {
			return
		}
		if err = fcnOk(bc.Fcn, what); err != nil {
			return
		}
		if bc.NodeIds, err = o.Mesh.selectNodes(bc.Tag, bc.Nodes, what); err != nil {
			return
		}
	}

	// rigid bodies
	names := make(map[string]bool)
	for i, rb := range o.Rigid {
		what := io.Sf("rigid[%d]", i)
		if rb.Name == "" || names[rb.Name] {
			return chk.Err("%s: name %q is empty or repeated", what, rb.Name)
		}
		if rb.Parent != "" && !names[rb.Parent] {
			return chk.Err("%s: parent %q must be defined before %q", what, rb.Parent, rb.Name)
		}
		names[rb.Name] = true
		if len(rb.Center) != 0 && len(rb.Center) != 3 {
			return chk.Err("%s: centre must have 3 coordinates", what)
		}
		for j, bc := range rb.Bcs {
			w := io.Sf("%s.bcs[%d]", what, j)
			if err = checkType(bc.Type, w); err != nil {
				return
			}
			if err = checkKeys(bc.Keys, RigidKeys, w); err != nil {
				return
			}
			if err = fcnOk(bc.Fcn, w); err != nil {
				return
			}
		}
		if rb.NodeIds, err = o.Mesh.selectNodes(rb.Tag, rb.Nodes, what); err != nil {
			return
		}
	}

	// linear constraints
	for i, lc := range o.LinCons {
		what := io.Sf("lincons[%d]", i)
		if _, err = o.Mesh.selectNodes(0, []int{lc.Node}, what); err != nil {
			return
		}
		if err = checkKeys([]string{lc.Key}, NodeKeys, what); err != nil {
			return
		}
		if len(lc.Slaves) == 0 {
			return chk.Err("%s: at least one slave must be given", what)
		}
		for _, s := range lc.Slaves {
			if _, err = o.Mesh.selectNodes(0, []int{s.Node}, what); err != nil {
				return
			}
			if err = checkKeys([]string{s.Key}, NodeKeys, what); err != nil {
				return
			}
			if s.Node == lc.Node && s.Key == lc.Key {
				return chk.Err("%s: master cannot be its own slave", what)
			}
		}
	}

	// contact
	for i, wall := range o.Contact.Walls {
		what := io.Sf("contact.walls[%d]", i)
		if len(wall.Point) != 3 || len(wall.Normal) != 3 {
			return chk.Err("%s: point and normal must have 3 components", what)
		}
		if wall.Penalty <= 0 {
			return chk.Err("%s: penalty must be positive", what)
		}
		if wall.AugTol <= 0 {
			wall.AugTol = 0.01
		}
		if err = fcnOk(wall.Fcn, what); err != nil {
			return
		}
		if wall.NodeIds, err = o.Mesh.selectNodes(wall.Tag, wall.Nodes, what); err != nil {
			return
		}
	}

	// body forces
	for i, bf := range o.BodyForce {
		what := io.Sf("bodyforce[%d]", i)
		if len(bf.B) != 3 {
			return chk.Err("%s: b must have 3 components", what)
		}
		if bf.Tag != 0 && len(o.Mesh.CellTag2cells[bf.Tag]) == 0 {
			return chk.Err("%s: cannot find cells with tag %d", what, bf.Tag)
		}
		if err = fcnOk(bf.Fcn, what); err != nil {
			return
		}
	}
	return
}
