// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package ode integrates dv/dt = f(t, v) over one step of given duration,
split into a number of equal sub-steps, using a selectable single-step
method (Euler, Midpoint, Heun, RK4).

The Stepper returned by Solver.Gradually yields one Estimate per sub-step
and lets the caller stop consuming as soon as some condition is met (e.g.,
a membrane potential crossing a firing threshold).  Solver.Solve always
runs all of the sub-steps.
*/
package ode

import (
	"math"

	"github.com/emer/odespike/vec"
	"github.com/pkg/errors"
)

// ErrInvalidArgument is returned for structurally invalid solver or model
// parameters.
var ErrInvalidArgument = errors.New("invalid argument")

// DiffEq computes dv/dt at time t for state v.  It must not modify v.
type DiffEq func(t float64, v vec.Vector) vec.Vector

// Estimate is the state estimated at time T.
type Estimate struct {
	T float64
	V vec.Vector
}

// Params are the integration parameters for one step.
type Params struct {
	Method   Methods `def:"Euler" desc:"single-step integration method"`
	SubSteps int     `def:"1" min:"1" desc:"number of equal sub-steps the step duration is split into"`
	StepDur  float64 `def:"1" min:"0" desc:"total duration of one step, in the time units of the equation"`
}

func (sp *Params) Defaults() {
	sp.Method = Euler
	sp.SubSteps = 1
	sp.StepDur = 1
}

// Validate returns ErrInvalidArgument for sub-steps < 1,
// non-positive or non-finite duration, or an unknown method.
func (sp *Params) Validate() error {
	if !sp.Method.IsValid() {
		return errors.Wrapf(ErrInvalidArgument, "ode: unknown method %d", int(sp.Method))
	}
	if sp.SubSteps < 1 {
		return errors.Wrapf(ErrInvalidArgument, "ode: sub-steps must be >= 1, got %d", sp.SubSteps)
	}
	if !(sp.StepDur > 0) || math.IsInf(sp.StepDur, 0) {
		return errors.Wrapf(ErrInvalidArgument, "ode: step duration must be > 0 and finite, got %g", sp.StepDur)
	}
	return nil
}

// SubDur returns the duration of one sub-step.
func (sp *Params) SubDur() float64 {
	return sp.StepDur / float64(sp.SubSteps)
}

// Solver integrates one DiffEq with fixed parameters.
type Solver struct {
	fn  DiffEq
	prm Params
}

// NewSolver returns a solver for fn, validating the parameters.
func NewSolver(fn DiffEq, prm Params) (*Solver, error) {
	if fn == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "ode: nil differential equation")
	}
	if err := prm.Validate(); err != nil {
		return nil, err
	}
	return &Solver{fn: fn, prm: prm}, nil
}

// Params returns the solver parameters.
func (sv *Solver) Params() Params { return sv.prm }

// Gradually returns a Stepper starting from v0 at t0.  v0 is not modified.
func (sv *Solver) Gradually(t0 float64, v0 vec.Vector) *Stepper {
	return &Stepper{
		fn:     sv.fn,
		method: sv.prm.Method,
		n:      sv.prm.SubSteps,
		h:      sv.prm.SubDur(),
		t0:     t0,
		cur:    Estimate{T: t0, V: v0},
	}
}

// Solve runs all sub-steps and returns the final estimate.
func (sv *Solver) Solve(t0 float64, v0 vec.Vector) Estimate {
	st := sv.Gradually(t0, v0)
	for st.Next() {
	}
	est := st.Estimate()
	if st.Steps() == 0 {
		est.V = est.V.Clone()
	}
	return est
}

// SolveGradually is a one-shot version of NewSolver + Gradually.
func SolveGradually(fn DiffEq, t0 float64, v0 vec.Vector, dur float64, subSteps int, method Methods) (*Stepper, error) {
	sv, err := NewSolver(fn, Params{Method: method, SubSteps: subSteps, StepDur: dur})
	if err != nil {
		return nil, err
	}
	return sv.Gradually(t0, v0), nil
}

// Solve is a one-shot version of NewSolver + Solve.
func Solve(fn DiffEq, t0 float64, v0 vec.Vector, dur float64, subSteps int, method Methods) (Estimate, error) {
	sv, err := NewSolver(fn, Params{Method: method, SubSteps: subSteps, StepDur: dur})
	if err != nil {
		return Estimate{}, err
	}
	return sv.Solve(t0, v0), nil
}

// Stepper is a finite, non-restartable sequence of sub-step estimates.
// Use like a scanner:
//
//	for st.Next() {
//		est := st.Estimate()
//		...
//	}
type Stepper struct {
	fn     DiffEq
	method Methods
	n      int
	h      float64
	t0     float64
	i      int
	cur    Estimate
}

// Next advances one sub-step, returning false when all are done.
func (st *Stepper) Next() bool {
	if st.i >= st.n {
		return false
	}
	nv := st.method.Step(st.fn, st.cur.T, st.cur.V, st.h)
	st.i++
	st.cur = Estimate{T: st.t0 + float64(st.i)*st.h, V: nv}
	return true
}

// Estimate returns the current estimate.  Each sub-step produces a fresh
// vector so callers may keep it.
func (st *Stepper) Estimate() Estimate { return st.cur }

// SetState replaces the state of the current estimate, so the next
// sub-step continues from v.  Used to apply constraints (e.g., a floor on
// the membrane potential) between sub-steps.
func (st *Stepper) SetState(v vec.Vector) { st.cur.V = v }

// Steps returns the number of sub-steps taken so far.
func (st *Stepper) Steps() int { return st.i }

// Done returns true once all sub-steps have been taken.
func (st *Stepper) Done() bool { return st.i >= st.n }
