// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mporous

// PoroState holds the liquid data of a material point
type PoroState struct {
	P     float64   // pressure
	GradP []float64 // [3] ∇p
	W     []float64 // [3] liquid flux

	// backup
	bkpP     float64
	bkpGradP []float64
	bkpW     []float64
}

// NewPoroState returns a new state with zero pressure
func NewPoroState() *PoroState {
	return &PoroState{
		GradP:    make([]float64, 3),
		W:        make([]float64, 3),
		bkpGradP: make([]float64, 3),
		bkpW:     make([]float64, 3),
	}
}

// Backup saves a copy of the current values
func (o *PoroState) Backup() {
	o.bkpP = o.P
	copy(o.bkpGradP, o.GradP)
	copy(o.bkpW, o.W)
}

// Restore restores values saved by Backup
func (o *PoroState) Restore() {
	o.P = o.bkpP
	copy(o.GradP, o.bkpGradP)
	copy(o.W, o.bkpW)
}

// Commit does nothing: liquid data has no history
func (o *PoroState) Commit() {}

// SoluteState holds the solute data of a material point
type SoluteState struct {
	C     float64   // concentration
	Cp    float64   // concentration at the end of the last converged step
	GradC []float64 // [3] ∇c
	J     []float64 // [3] solute flux

	// backup
	bkpC     float64
	bkpCp    float64
	bkpGradC []float64
	bkpJ     []float64
}

// NewSoluteState returns a new state with zero concentration
func NewSoluteState() *SoluteState {
	return &SoluteState{
		GradC:    make([]float64, 3),
		J:        make([]float64, 3),
		bkpGradC: make([]float64, 3),
		bkpJ:     make([]float64, 3),
	}
}

// Backup saves a copy of the current values
func (o *SoluteState) Backup() {
	o.bkpC = o.C
	o.bkpCp = o.Cp
	copy(o.bkpGradC, o.GradC)
	copy(o.bkpJ, o.J)
}

// Restore restores values saved by Backup
func (o *SoluteState) Restore() {
	o.C = o.bkpC
	o.Cp = o.bkpCp
	copy(o.GradC, o.bkpGradC)
	copy(o.J, o.bkpJ)
}

// Commit accepts the current concentration
func (o *SoluteState) Commit() {
	o.Cp = o.C
}
