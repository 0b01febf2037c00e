// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"os"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"gopkg.in/yaml.v3"
)

// constants
const Ztol = 1e-7

// box face tags
const (
	FACE_XMIN = -1
	FACE_XMAX = -2
	FACE_YMIN = -3
	FACE_YMAX = -4
	FACE_ZMIN = -5
	FACE_ZMAX = -6
)

// number of vertices of each cell type
var cellNverts = map[string]int{"hex8": 8, "tet4": 4, "lin2": 2}

// Vert holds vertex data
type Vert struct {
	Id  int       `yaml:"id"`  // id
	Tag int       `yaml:"tag"` // tag
	C   []float64 `yaml:"c"`   // coordinates (size==3)
}

// Cell holds cell data
type Cell struct {
	Id    int    `yaml:"id"`    // id
	Tag   int    `yaml:"tag"`   // tag
	Type  string `yaml:"type"`  // geometry type; e.g. "hex8", "tet4", "lin2"
	Verts []int  `yaml:"verts"` // vertices
}

// BoxData holds data to generate a structured mesh of a box
type BoxData struct {
	Nx     int       `yaml:"nx"`     // number of divisions along x
	Ny     int       `yaml:"ny"`     // number of divisions along y
	Nz     int       `yaml:"nz"`     // number of divisions along z
	Lx     float64   `yaml:"lx"`     // length along x
	Ly     float64   `yaml:"ly"`     // length along y
	Lz     float64   `yaml:"lz"`     // length along z
	Origin []float64 `yaml:"origin"` // coordinates of the corner with smallest coordinates
	Type   string    `yaml:"type"`   // "hex8" or "tet4"
	Tag    int       `yaml:"tag"`    // tag of all cells
}

// Mesh holds a mesh for FE analyses
type Mesh struct {

	// input
	Verts []*Vert       `yaml:"verts"` // vertices
	Cells []*Cell       `yaml:"cells"` // cells
	Faces map[int][]int `yaml:"faces"` // face tag => vertices on tagged face
	File  string        `yaml:"file"`  // read mesh from file instead
	Box   *BoxData      `yaml:"box"`   // generate box instead

	// derived
	Xmin          []float64       `yaml:"-"` // min coordinates
	Xmax          []float64       `yaml:"-"` // max coordinates
	VertTag2verts map[int][]*Vert `yaml:"-"` // vertex tag => set of vertices
	CellTag2cells map[int][]*Cell `yaml:"-"` // cell tag => set of cells
}

// ReadMsh reads a mesh from a YAML file
func ReadMsh(fnpath string) (o *Mesh, err error) {
	b, err := os.ReadFile(fnpath)
	if err != nil {
		return nil, chk.Err("cannot read mesh file %q: %v", fnpath, err)
	}
	o = new(Mesh)
	if err = yaml.Unmarshal(b, o); err != nil {
		return nil, chk.Err("%s: %v", fnpath, err)
	}
	if o.File != "" || o.Box != nil {
		return nil, chk.Err("%s: mesh files cannot refer to other meshes", fnpath)
	}
	err = o.Init()
	return
}

// Init generates the box (if any) and computes derived data
func (o *Mesh) Init() (err error) {

	// box
	if o.Box != nil {
		if len(o.Verts) > 0 || len(o.Cells) > 0 {
			return chk.Err("mesh: box cannot be combined with vertices or cells")
		}
		if err = o.genBox(o.Box); err != nil {
			return
		}
	}

	// check
	if len(o.Verts) < 2 {
		return chk.Err("mesh: at least 2 vertices are required")
	}
	if len(o.Cells) < 1 {
		return chk.Err("mesh: at least 1 cell is required")
	}

	// vertices
	o.Xmin = []float64{o.Verts[0].C[0], o.Verts[0].C[1], o.Verts[0].C[2]}
	o.Xmax = []float64{o.Verts[0].C[0], o.Verts[0].C[1], o.Verts[0].C[2]}
	o.VertTag2verts = make(map[int][]*Vert)
	for i, v := range o.Verts {
		if v.Id != i {
			return chk.Err("mesh: vertex ids must be sequential. vertex %d has id=%d", i, v.Id)
		}
		if len(v.C) != 3 {
			return chk.Err("mesh: vertex %d must have 3 coordinates", v.Id)
		}
		for j := 0; j < 3; j++ {
			o.Xmin[j] = utl.Min(o.Xmin[j], v.C[j])
			o.Xmax[j] = utl.Max(o.Xmax[j], v.C[j])
		}
		if v.Tag < 0 {
			o.VertTag2verts[v.Tag] = append(o.VertTag2verts[v.Tag], v)
		}
	}

	// cells
	o.CellTag2cells = make(map[int][]*Cell)
	for i, c := range o.Cells {
		if c.Id != i {
			return chk.Err("mesh: cell ids must be sequential. cell %d has id=%d", i, c.Id)
		}
		nv, ok := cellNverts[c.Type]
		if !ok {
			return chk.Err("mesh: cell %d has unknown type %q", c.Id, c.Type)
		}
		if len(c.Verts) != nv {
			return chk.Err("mesh: cell %d of type %q must have %d vertices; %d given", c.Id, c.Type, nv, len(c.Verts))
		}
		for _, v := range c.Verts {
			if v < 0 || v >= len(o.Verts) {
				return chk.Err("mesh: cell %d refers to invalid vertex %d", c.Id, v)
			}
		}
		o.CellTag2cells[c.Tag] = append(o.CellTag2cells[c.Tag], c)
	}

	// faces
	for tag, verts := range o.Faces {
		for _, v := range verts {
			if v < 0 || v >= len(o.Verts) {
				return chk.Err("mesh: face %d refers to invalid vertex %d", tag, v)
			}
		}
	}
	return
}

// TagVerts returns the ids of vertices with the given vertex tag or on the face with the given tag
func (o *Mesh) TagVerts(tag int) (ids []int) {
	set := make(map[int]bool)
	for _, v := range o.VertTag2verts[tag] {
		set[v.Id] = true
	}
	for _, v := range o.Faces[tag] {
		set[v] = true
	}
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// genBox generates vertices, cells and face tags of a structured box
func (o *Mesh) genBox(b *BoxData) (err error) {

	// check
	if b.Nx < 1 || b.Ny < 1 || b.Nz < 1 {
		return chk.Err("box: number of divisions must be positive. nx=%d ny=%d nz=%d", b.Nx, b.Ny, b.Nz)
	}
	if b.Lx <= 0 || b.Ly <= 0 || b.Lz <= 0 {
		return chk.Err("box: lengths must be positive. lx=%g ly=%g lz=%g", b.Lx, b.Ly, b.Lz)
	}
	if b.Type == "" {
		b.Type = "hex8"
	}
	if b.Type != "hex8" && b.Type != "tet4" {
		return chk.Err("box: cell type %q is not available", b.Type)
	}
	if b.Tag == 0 {
		b.Tag = -1
	}
	x0 := []float64{0, 0, 0}
	if len(b.Origin) == 3 {
		x0 = b.Origin
	}

	// vertices
	vid := func(i, j, k int) int { return i + j*(b.Nx+1) + k*(b.Nx+1)*(b.Ny+1) }
	o.Faces = make(map[int][]int)
	for k := 0; k <= b.Nz; k++ {
		for j := 0; j <= b.Ny; j++ {
			for i := 0; i <= b.Nx; i++ {
				id := len(o.Verts)
				o.Verts = append(o.Verts, &Vert{Id: id, C: []float64{
					x0[0] + b.Lx*float64(i)/float64(b.Nx),
					x0[1] + b.Ly*float64(j)/float64(b.Ny),
					x0[2] + b.Lz*float64(k)/float64(b.Nz),
				}})
				if i == 0 {
					o.Faces[FACE_XMIN] = append(o.Faces[FACE_XMIN], id)
				}
				if i == b.Nx {
					o.Faces[FACE_XMAX] = append(o.Faces[FACE_XMAX], id)
				}
				if j == 0 {
					o.Faces[FACE_YMIN] = append(o.Faces[FACE_YMIN], id)
				}
				if j == b.Ny {
					o.Faces[FACE_YMAX] = append(o.Faces[FACE_YMAX], id)
				}
				if k == 0 {
					o.Faces[FACE_ZMIN] = append(o.Faces[FACE_ZMIN], id)
				}
				if k == b.Nz {
					o.Faces[FACE_ZMAX] = append(o.Faces[FACE_ZMAX], id)
				}
			}
		}
	}

	// cells
	for k := 0; k < b.Nz; k++ {
		for j := 0; j < b.Ny; j++ {
			for i := 0; i < b.Nx; i++ {
				h := []int{
					vid(i, j, k), vid(i+1, j, k), vid(i+1, j+1, k), vid(i, j+1, k),
					vid(i, j, k+1), vid(i+1, j, k+1), vid(i+1, j+1, k+1), vid(i, j+1, k+1),
				}
				if b.Type == "hex8" {
					o.Cells = append(o.Cells, &Cell{Id: len(o.Cells), Tag: b.Tag, Type: "hex8", Verts: h})
					continue
				}
				for _, tet := range kuhnTets(h) {
					o.Cells = append(o.Cells, &Cell{Id: len(o.Cells), Tag: b.Tag, Type: "tet4", Verts: tet})
				}
			}
		}
	}
	io.Pforan("box: %d vertices and %d %s cells generated\n", len(o.Verts), len(o.Cells), b.Type)
	return
}

// kuhnTets splits a hexahedron into 6 positively oriented tetrahedra sharing the 0-6 diagonal
//  h -- hex8 vertices; local corner (a,b,c) ∈ {0,1}³ is found via hexCorner
func kuhnTets(h []int) (tets [][]int) {
	corner := func(e []int) int { return h[hexCorner[e[0]][e[1]][e[2]]] }
	perms := [][]int{{0, 1, 2}, {1, 2, 0}, {2, 0, 1}, {0, 2, 1}, {2, 1, 0}, {1, 0, 2}}
	for p, perm := range perms {
		e := []int{0, 0, 0}
		v0 := corner(e)
		e[perm[0]] = 1
		v1 := corner(e)
		e[perm[1]] = 1
		v2 := corner(e)
		v3 := corner([]int{1, 1, 1})
		if p < 3 { // even permutation
			tets = append(tets, []int{v0, v1, v2, v3})
		} else {
			tets = append(tets, []int{v0, v2, v1, v3})
		}
	}
	return
}

// hexCorner maps corner (a,b,c) ∈ {0,1}³ to hex8 local vertex
var hexCorner = [2][2][2]int{
	{{0, 4}, {3, 7}},
	{{1, 5}, {2, 6}},
}
