// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"

	"github.com/cpmech/gosl/io"
)

// FailureKind defines the kinds of step failures
type FailureKind int

// failure kinds
const (
	NegativeJacobian         FailureKind = iota // inverted or degenerate element
	MaxStiffnessReformations                    // too many stiffness reformations
	ZeroLinestepSize                            // line search could not find a step
	EnergyDiverging                             // energy norm is not finite
	ForceConversion                             // non-convergence accepted by the user
	IterationFailure                            // convergence rejected by the user or too many iterations
	MultiScale                                  // material point update failed
	LinearSolverFailure                         // factorisation or solution failed
)

var failureNames = []string{
	"NegativeJacobian",
	"MaxStiffnessReformations",
	"ZeroLinestepSize",
	"EnergyDiverging",
	"ForceConversion",
	"IterationFailure",
	"MultiScale",
	"LinearSolverFailure",
}

// String returns the name of the failure kind
func (o FailureKind) String() string {
	if o < 0 || int(o) >= len(failureNames) {
		return "UnknownFailure"
	}
	return failureNames[o]
}

// Failure holds the reason of a step failure
type Failure struct {
	Kind FailureKind // kind of failure
	Elem int         // element id; -1 if not applicable
	Ip   int         // integration point index; -1 if not applicable
	Vol  float64     // volume of element at integration point (NegativeJacobian)
	Err  error       // wrapped error; may be nil
	Msg  string      // extra information
}

// newFailure returns a failure with no element information
func newFailure(kind FailureKind, err error, msg string, prm ...interface{}) *Failure {
	return &Failure{Kind: kind, Elem: -1, Ip: -1, Err: err, Msg: io.Sf(msg, prm...)}
}

// Error implements the error interface
func (o *Failure) Error() string {
	l := o.Kind.String()
	if o.Elem >= 0 {
		l += io.Sf(": element %d", o.Elem)
		if o.Ip >= 0 {
			l += io.Sf(", ip %d, volume %g", o.Ip, o.Vol)
		}
	}
	if o.Msg != "" {
		l += ": " + o.Msg
	}
	if o.Err != nil {
		l += ": " + o.Err.Error()
	}
	return l
}

// Unwrap returns the wrapped error
func (o *Failure) Unwrap() error { return o.Err }

// Soft tells whether the failure still allows the step to be accepted
func (o *Failure) Soft() bool { return o.Kind == ForceConversion }

// AsFailure returns the failure in the chain of err, if any
func AsFailure(err error) (f *Failure, ok bool) {
	ok = errors.As(err, &f)
	return
}
