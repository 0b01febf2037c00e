// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import "github.com/cpmech/gosl/utl"

// StepInfo holds information about a converged step
type StepInfo struct {
	Time    float64 // time at the end of the step
	Dt      float64 // step size
	Niter   int     // number of iterations
	Nref    int     // number of stiffness reformations
	Naug    int     // number of augmentations
	Retries int     // number of failed attempts before convergence
	Forced  bool    // convergence was forced by the user
}

// Summary records summary of outputs
type Summary struct {

	// main data
	OutTimes []float64      // [nOutTimes] output times
	Resids   utl.SerialList // residual norms; one row per step
	Steps    []StepInfo     // converged steps
	Dirout   string         // directory where results are stored
	Fnkey    string         // filename key of simulation
	Encoder  string         // encoder of output files

	// auxiliary
	newRow bool // next residual starts a new row
}

// NewSummary returns a new summary
func NewSummary(dirout, fnkey, encoder string) *Summary {
	return &Summary{Dirout: dirout, Fnkey: fnkey, Encoder: encoder, newRow: true}
}

// StartStep tells the summary that the next residual belongs to a new step
func (o *Summary) StartStep() {
	o.newRow = true
}

// AddResid appends a residual norm to the current step
func (o *Summary) AddResid(r float64) {
	o.Resids.Append(o.newRow, r)
	o.newRow = false
}

// DiscardStep removes the residuals of the current step; e.g. after a failure
func (o *Summary) DiscardStep() {
	if o.newRow || len(o.Resids.Ptrs) < 2 {
		o.newRow = true
		return
	}
	n := len(o.Resids.Ptrs)
	o.Resids.Vals = o.Resids.Vals[:o.Resids.Ptrs[n-2]]
	o.Resids.Ptrs = o.Resids.Ptrs[:n-1]
	if len(o.Resids.Ptrs) == 1 {
		o.Resids.Ptrs = nil
	}
	o.newRow = true
}

// Save saves summary to disc
func (o *Summary) Save(verbose bool) (err error) {
	return SaveEncoded(out_sum_path(o.Dirout, o.Fnkey, o.Encoder), o.Encoder, o, verbose)
}

// StepResids returns the residuals of step i
func (o *Summary) StepResids(i int) []float64 {
	if i < 0 || i+1 >= len(o.Resids.Ptrs) {
		return nil
	}
	return o.Resids.Vals[o.Resids.Ptrs[i]:o.Resids.Ptrs[i+1]]
}

// ReadSum reads summary back
func ReadSum(dir, fnkey, encoder string) (o *Summary, err error) {
	o = new(Summary)
	if err = ReadEncoded(out_sum_path(dir, fnkey, encoder), encoder, o); err != nil {
		return nil, err
	}
	return
}
