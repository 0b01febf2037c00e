// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import "github.com/cpmech/gosl/tsr"

// Block defines data blocks chained to a material point; e.g. fluid and solute data of mixtures
type Block interface {
	Backup()  // saves a copy of the current values
	Restore() // restores values saved by Backup
	Commit()  // accepts the current values at the end of a converged step
}

// State holds all continuum mechanics data of a material point
//  Note: values computed during iterations are trial values; they become permanent after Commit
type State struct {

	// kinematics
	F  [][]float64 // deformation gradient [3][3]
	Fp [][]float64 // deformation gradient at the end of the last converged step [3][3]
	J  float64     // det(F)

	// stress computed by the last update
	Sig *tsr.Tensor2 // Cauchy stress σ

	// time information
	Dt   float64 // time step
	Time float64 // current time

	// mixtures: ordered chain of extra data blocks
	Chain []Block

	// backup
	bkpF   [][]float64
	bkpFp  [][]float64
	bkpJ   float64
	bkpSig [][]float64
}

// NewState allocates state structure in the undeformed configuration
func NewState(chain ...Block) *State {
	var o State
	o.F = Identity()
	o.Fp = Identity()
	o.J = 1
	o.Sig = tsr.NewTensor2(true, false)
	o.Chain = chain
	o.bkpF = Identity()
	o.bkpFp = Identity()
	o.bkpSig = make([][]float64, 3)
	for i := 0; i < 3; i++ {
		o.bkpSig[i] = make([]float64, 3)
	}
	return &o
}

// SetTime sets time information
func (o *State) SetTime(dt, time float64) {
	o.Dt = dt
	o.Time = time
}

// SetF sets the deformation gradient and its determinant
func (o *State) SetF(F [][]float64) {
	for i := 0; i < 3; i++ {
		copy(o.F[i], F[i])
	}
	o.J = Det(o.F)
}

// Backup saves a copy of the current state, including all blocks in the chain
func (o *State) Backup() {
	o.bkpJ = o.J
	for i := 0; i < 3; i++ {
		copy(o.bkpF[i], o.F[i])
		copy(o.bkpFp[i], o.Fp[i])
		for j := 0; j < 3; j++ {
			o.bkpSig[i][j] = o.Sig.Get(i, j)
		}
	}
	for _, b := range o.Chain {
		b.Backup()
	}
}

// Restore restores the state saved by Backup, including all blocks in the chain
func (o *State) Restore() {
	o.J = o.bkpJ
	for i := 0; i < 3; i++ {
		copy(o.F[i], o.bkpF[i])
		copy(o.Fp[i], o.bkpFp[i])
		for j := i; j < 3; j++ {
			o.Sig.Set(i, j, o.bkpSig[i][j])
		}
	}
	for _, b := range o.Chain {
		b.Restore()
	}
}

// Commit accepts the current values at the end of a converged step
func (o *State) Commit() {
	for i := 0; i < 3; i++ {
		copy(o.Fp[i], o.F[i])
	}
	for _, b := range o.Chain {
		b.Commit()
	}
}

// SetStress stores the Cauchy stress
func (o *State) SetStress(σ *tsr.Tensor2) {
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			o.Sig.Set(i, j, σ.Get(i, j))
		}
	}
}

// Block returns the first block in the chain satisfying the given predicate
func (o *State) Block(match func(b Block) bool) Block {
	for _, b := range o.Chain {
		if match(b) {
			return b
		}
	}
	return nil
}
