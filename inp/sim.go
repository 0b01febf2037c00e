// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) YAML file
package inp

import (
	"bytes"
	goio "io"
	"math"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/nlfem/linsol"
	"github.com/cpmech/nlfem/mporous"
	"github.com/cpmech/nlfem/msolid"
	"gopkg.in/yaml.v3"
)

// Data holds global data for simulations
type Data struct {
	Desc    string `yaml:"desc"`    // description of simulation
	DirOut  string `yaml:"dirout"`  // directory for output; e.g. /tmp/nlfem
	Encoder string `yaml:"encoder"` // encoder of summary file: "yaml" or "json"
	ShowR   bool   `yaml:"showR"`   // show residual at each iteration
	Verbose bool   `yaml:"verbose"` // show messages
}

// RegionData holds data of a set of elements with the same cell tag
type RegionData struct {

	// input
	Tag  int        `yaml:"tag"`  // cell tag
	Type string     `yaml:"type"` // type of element: "solid", "upc" or "spring"
	Mat  string     `yaml:"mat"`  // name of solid material
	Poro string     `yaml:"poro"` // name of porous material; "upc" only
	Nip  int        `yaml:"nip"`  // number of integration points; 0 => use default
	Prms dbf.Params `yaml:"prms"` // "spring" only: stiffness k and nodal mass m

	// derived
	Solid  msolid.Model   `yaml:"-"` // solid model
	Porous *mporous.Model `yaml:"-"` // porous model
}

// SolverData holds data for the nonlinear solver
type SolverData struct {
	Type       string  `yaml:"type"`        // "imp" (implicit) or "exp" (explicit)
	Dtol       float64 `yaml:"dtol"`        // displacement tolerance
	Etol       float64 `yaml:"etol"`        // energy tolerance
	Rtol       float64 `yaml:"rtol"`        // residual tolerance; 0 => not used
	LStol      float64 `yaml:"lstol"`       // line search tolerance; 0 => no line search
	LSmin      float64 `yaml:"lsmin"`       // minimum line search step
	LSiter     int     `yaml:"lsiter"`      // max number of line search iterations
	MaxRefs    int     `yaml:"max_refs"`    // max number of stiffness reformations per step
	MaxUps     int     `yaml:"max_ups"`     // max number of iterations between reformations when reform_each is 0
	ReformEach int     `yaml:"reform_each"` // reform stiffness every n iterations; 0 => use max_ups
	MaxIt      int     `yaml:"max_iter"`    // max number of iterations per step
	MaxAug     int     `yaml:"max_aug"`     // max number of augmentations per step
	DynDamping float64 `yaml:"dyn_damping"` // explicit solver: 0 => no damping
}

// StepperData holds data for automatic time stepping
type StepperData struct {
	Auto       bool    `yaml:"auto"`        // use automatic time stepping
	MaxRetries int     `yaml:"max_retries"` // max number of retries after a failure
	OptIter    int     `yaml:"opt_iter"`    // optimal number of iterations
	DtMin      float64 `yaml:"dtmin"`       // minimum time step size
	DtMax      float64 `yaml:"dtmax"`       // maximum time step size
}

// ControlData holds data for defining the simulation time stepping
type ControlData struct {
	NSteps     int         `yaml:"time_steps"`   // number of time steps
	Tf         float64     `yaml:"final_time"`   // final time
	Dt         float64     `yaml:"step_size"`    // initial time step size
	Stepper    StepperData `yaml:"time_stepper"` // automatic time stepping
	PlotLevel  PlotLevel   `yaml:"plot_level"`   // when results are written
	MustPoints []float64   `yaml:"must_points"`  // times that must be reached exactly
}

// Simulation holds all simulation data
type Simulation struct {

	// input
	Data      Data             `yaml:"data"`      // stores global simulation data
	Functions FuncsData        `yaml:"functions"` // stores all load curves
	Materials MatsData         `yaml:"materials"` // stores all materials
	Mesh      Mesh             `yaml:"mesh"`      // mesh: inline, file or box
	Regions   []*RegionData    `yaml:"regions"`   // stores all regions
	Bcs       []*BcData        `yaml:"bcs"`       // nodal boundary conditions
	Rigid     []*RigidData     `yaml:"rigid"`     // rigid bodies
	LinCons   []*LinConData    `yaml:"lincons"`   // linear constraints
	Contact   ContactData      `yaml:"contact"`   // contact interfaces
	BodyForce []*BodyForceData `yaml:"bodyforce"` // body forces
	Solver    SolverData       `yaml:"solver"`    // nonlinear solver data
	LinSol    linsol.Options   `yaml:"linsol"`    // linear solver data
	Control   ControlData      `yaml:"control"`   // time control

	// derived
	Key    string `yaml:"-"` // simulation key; e.g. mysim01.sim => mysim01 or mysim01-alias
	DirOut string `yaml:"-"` // directory to save results
	HasUpc bool   `yaml:"-"` // at least one region has u-p-c elements
}

// ReadSim reads all simulation data from a .sim (YAML) file
func ReadSim(simfilepath, alias string, erasefiles bool) (o *Simulation, err error) {

	// read file
	b, err := os.ReadFile(simfilepath)
	if err != nil {
		return nil, chk.Err("ReadSim: cannot read simulation file %q", simfilepath)
	}

	// key
	fnkey := io.FnKey(filepath.Base(simfilepath))
	if alias != "" {
		fnkey += "-" + alias
	}

	// parse
	o, err = ParseSim(b, os.ExpandEnv(filepath.Dir(simfilepath)), fnkey)
	if err != nil {
		return nil, chk.Err("%s: %v", simfilepath, err)
	}

	// create directory and erase previous simulation results
	if erasefiles {
		if err = os.MkdirAll(o.DirOut, 0777); err != nil {
			return nil, chk.Err("cannot create directory for output results (%s): %v", o.DirOut, err)
		}
		io.RemoveAll(io.Sf("%s/%s*", o.DirOut, o.Key))
	}
	return
}

// ParseSim decodes and checks simulation data
//  dir -- directory used to find mesh files
//  key -- simulation key
func ParseSim(b []byte, dir, key string) (o *Simulation, err error) {

	// default values
	o = new(Simulation)
	o.Key = key
	o.Data.Encoder = "yaml"
	o.Solver.SetDefault()
	o.LinSol = *linsol.NewOptions("umfpack")
	o.Control.PlotLevel = PLOT_MAJOR_ITRS

	// decode
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err = dec.Decode(o); err != nil {
		if err == goio.EOF {
			return nil, chk.Err("simulation file is empty")
		}
		return nil, err
	}
	o.LinSol.SetDefault()

	// output directory
	o.DirOut = o.Data.DirOut
	if o.DirOut == "" {
		o.DirOut = "/tmp/nlfem/" + key
	}
	if o.Data.Encoder != "yaml" && o.Data.Encoder != "json" {
		return nil, chk.Err("encoder %q is invalid; options are \"yaml\" and \"json\"", o.Data.Encoder)
	}

	// functions and materials
	if err = o.Functions.check(); err != nil {
		return nil, err
	}
	if err = o.Materials.alloc(); err != nil {
		return nil, err
	}

	// mesh
	if o.Mesh.File != "" {
		if len(o.Mesh.Verts) > 0 || len(o.Mesh.Cells) > 0 || o.Mesh.Box != nil {
			return nil, chk.Err("mesh: file cannot be combined with vertices, cells or box")
		}
		var msh *Mesh
		if msh, err = ReadMsh(filepath.Join(dir, o.Mesh.File)); err != nil {
			return nil, err
		}
		msh.File = o.Mesh.File
		o.Mesh = *msh
	} else if err = o.Mesh.Init(); err != nil {
		return nil, err
	}

	// regions
	if err = o.checkRegions(); err != nil {
		return nil, err
	}

	// conditions
	if err = o.checkConds(); err != nil {
		return nil, err
	}

	// solver
	if err = o.Solver.check(); err != nil {
		return nil, err
	}
	if o.Solver.Type == "exp" && o.HasUpc {
		return nil, chk.Err("explicit solver cannot be used with u-p-c elements")
	}

	// time control
	if err = o.Control.PostProcess(); err != nil {
		return nil, err
	}
	return
}

// GetInfo writes formatted information
func (o *Simulation) GetInfo(w goio.Writer) (err error) {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err = enc.Encode(o); err != nil {
		return
	}
	return enc.Close()
}

// checkRegions checks regions and connects materials
func (o *Simulation) checkRegions() (err error) {
	if len(o.Regions) == 0 {
		return chk.Err("at least one region must be given")
	}
	tags := make(map[int]bool)
	for i, reg := range o.Regions {
		if tags[reg.Tag] {
			return chk.Err("regions[%d]: tag %d is used by another region", i, reg.Tag)
		}
		tags[reg.Tag] = true
		cells := o.Mesh.CellTag2cells[reg.Tag]
		if len(cells) == 0 {
			return chk.Err("regions[%d]: cannot find cells with tag %d", i, reg.Tag)
		}
		switch reg.Type {
		case "solid", "upc":
			mat := o.Materials.Get(reg.Mat)
			if mat == nil || mat.Solid == nil {
				return chk.Err("regions[%d]: cannot find solid material named %q", i, reg.Mat)
			}
			reg.Solid = mat.Solid
			if reg.Type == "upc" {
				poro := o.Materials.Get(reg.Poro)
				if poro == nil || poro.Porous == nil {
					return chk.Err("regions[%d]: cannot find porous material named %q", i, reg.Poro)
				}
				reg.Porous = poro.Porous
				o.HasUpc = true
			}
			for _, c := range cells {
				if c.Type == "lin2" {
					return chk.Err("regions[%d]: %s elements cannot use cell %d of type %q", i, reg.Type, c.Id, c.Type)
				}
			}
		case "spring":
			if reg.Prms.Find("k") == nil {
				return chk.Err("regions[%d]: spring stiffness k must be given", i)
			}
			for _, c := range cells {
				if c.Type != "lin2" {
					return chk.Err("regions[%d]: spring elements require lin2 cells; cell %d is %q", i, c.Id, c.Type)
				}
			}
		default:
			return chk.Err("regions[%d]: element type %q is invalid; options are \"solid\", \"upc\" and \"spring\"", i, reg.Type)
		}
	}
	for tag, cells := range o.Mesh.CellTag2cells {
		if !tags[tag] {
			io.Pfyel("warning: %d cells with tag %d do not belong to any region\n", len(cells), tag)
		}
	}
	return
}

// extra settings //////////////////////////////////////////////////////////////////////////////////

// SetDefault set defaults values
func (o *SolverData) SetDefault() {
	o.Type = "imp"
	o.Dtol = 0.001
	o.Etol = 0.01
	o.Rtol = 0
	o.LStol = 0.9
	o.LSmin = 0.01
	o.LSiter = 5
	o.MaxRefs = 15
	o.MaxUps = 10
	o.ReformEach = 1
	o.MaxIt = 50
	o.MaxAug = 10
	o.DynDamping = 0.99
}

// check checks values
func (o *SolverData) check() (err error) {
	if o.Type != "imp" && o.Type != "exp" {
		return chk.Err("solver type %q is invalid; options are \"imp\" and \"exp\"", o.Type)
	}
	if o.Dtol < 0 || o.Etol < 0 || o.Rtol < 0 {
		return chk.Err("solver tolerances cannot be negative. dtol=%g etol=%g rtol=%g", o.Dtol, o.Etol, o.Rtol)
	}
	if o.MaxIt < 1 {
		return chk.Err("solver: max_iter must be positive. %d is invalid", o.MaxIt)
	}
	if o.ReformEach < 1 && o.MaxUps < 1 {
		return chk.Err("solver: either reform_each or max_ups must be positive")
	}
	if o.DynDamping < 0 || o.DynDamping > 1 {
		return chk.Err("solver: dyn_damping must be in [0, 1]. %g is invalid", o.DynDamping)
	}
	return
}

// PostProcess computes derived values and sets defaults of time control
func (o *ControlData) PostProcess() (err error) {

	// time steps
	switch {
	case o.Dt <= 0 && o.NSteps > 0 && o.Tf > 0:
		o.Dt = o.Tf / float64(o.NSteps)
	case o.NSteps <= 0 && o.Tf > 0 && o.Dt > 0:
		o.NSteps = int(math.Ceil(o.Tf/o.Dt - 1e-10))
	case o.Tf <= 0 && o.NSteps > 0 && o.Dt > 0:
		o.Tf = float64(o.NSteps) * o.Dt
	}
	if o.Dt <= 0 || o.NSteps < 1 {
		return chk.Err("control: two of time_steps, final_time and step_size must be positive. time_steps=%d final_time=%g step_size=%g", o.NSteps, o.Tf, o.Dt)
	}

	// time stepper
	s := &o.Stepper
	if s.MaxRetries <= 0 {
		s.MaxRetries = 5
	}
	if s.OptIter <= 0 {
		s.OptIter = 11
	}
	if s.DtMin <= 0 {
		s.DtMin = o.Dt / 1000.0
	}
	if s.DtMax <= 0 {
		s.DtMax = o.Dt
	}
	if s.DtMin > s.DtMax {
		return chk.Err("control: dtmin=%g cannot be greater than dtmax=%g", s.DtMin, s.DtMax)
	}

	// must-points
	for i, t := range o.MustPoints {
		if t <= 0 || (i > 0 && t <= o.MustPoints[i-1]) {
			return chk.Err("control: must_points must be positive and increasing")
		}
	}
	return
}
