// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ode

import (
	"errors"
	"math"
	"testing"

	"github.com/emer/odespike/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// leaky returns the leaky integrator dv/dt = (vinf - v) / tau
func leaky(vinf, tau float64) DiffEq {
	return func(t float64, v vec.Vector) vec.Vector {
		return vec.Of((vinf - v.At(0)) / tau)
	}
}

func leakyExact(v0, vinf, tau, t float64) float64 {
	return vinf + (v0-vinf)*math.Exp(-t/tau)
}

func TestValidate(t *testing.T) {
	fn := leaky(0, 1)
	bad := []Params{
		{Method: Euler, SubSteps: 0, StepDur: 1},
		{Method: Euler, SubSteps: -3, StepDur: 1},
		{Method: Euler, SubSteps: 1, StepDur: 0},
		{Method: Euler, SubSteps: 1, StepDur: -1},
		{Method: Euler, SubSteps: 1, StepDur: math.NaN()},
		{Method: Euler, SubSteps: 1, StepDur: math.Inf(1)},
		{Method: MethodsN, SubSteps: 1, StepDur: 1},
	}
	for i, p := range bad {
		_, err := NewSolver(fn, p)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("params %d: expected ErrInvalidArgument, got %v", i, err)
		}
	}
	_, err := NewSolver(nil, Params{Method: Euler, SubSteps: 1, StepDur: 1})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = SolveGradually(fn, 0, vec.Of(1), 1, 0, Euler)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	p := Params{}
	p.Defaults()
	assert.NoError(t, p.Validate())
}

func TestEulerSubStepConvergence(t *testing.T) {
	const vinf, tau, v0 = -60.0, 8.0, -70.0
	exact := leakyExact(v0, vinf, tau, 1)
	prvErr := math.Inf(1)
	for _, n := range []int{1, 2, 10} {
		est, err := Solve(leaky(vinf, tau), 0, vec.Of(v0), 1, n, Euler)
		require.NoError(t, err)
		e := math.Abs(est.V.At(0) - exact)
		if e >= prvErr {
			t.Errorf("sub-steps %d: error %g did not decrease from %g", n, e, prvErr)
		}
		prvErr = e
		assert.InDelta(t, 1.0, est.T, 1e-12)
	}
	// single euler step from -70: -70 + 1/8 * 10
	est, _ := Solve(leaky(vinf, tau), 0, vec.Of(v0), 1, 1, Euler)
	assert.InDelta(t, -68.75, est.V.At(0), 1e-12)
}

func TestMethodOrder(t *testing.T) {
	const vinf, tau, v0 = 1.0, 0.5, 0.0
	exact := leakyExact(v0, vinf, tau, 1)
	errs := make([]float64, MethodsN)
	for m := Euler; m < MethodsN; m++ {
		est, err := Solve(leaky(vinf, tau), 0, vec.Of(v0), 1, 8, m)
		require.NoError(t, err)
		errs[m] = math.Abs(est.V.At(0) - exact)
	}
	assert.Less(t, errs[Midpoint], errs[Euler])
	assert.Less(t, errs[Heun], errs[Euler])
	assert.Less(t, errs[RK4], errs[Midpoint])
	assert.Less(t, errs[RK4], 1e-5)
}

func TestGradualEarlyExit(t *testing.T) {
	// linear ramp dv/dt = 1 crosses 0.35 at the 4th of 10 sub-steps
	ramp := func(_ float64, _ vec.Vector) vec.Vector { return vec.Of(1) }
	v0 := vec.Of(0)
	st, err := SolveGradually(ramp, 0, v0, 1, 10, Euler)
	require.NoError(t, err)
	var last Estimate
	for st.Next() {
		last = st.Estimate()
		if last.V.At(0) >= 0.35 {
			break
		}
	}
	assert.Equal(t, 4, st.Steps())
	assert.False(t, st.Done())
	assert.InDelta(t, 0.4, last.V.At(0), 1e-12)
	assert.InDelta(t, 0.4, last.T, 1e-12)
	assert.Equal(t, 0.0, v0.At(0), "initial state must not be modified")

	// exhausting the rest of the sequence
	for st.Next() {
	}
	assert.True(t, st.Done())
	assert.Equal(t, 10, st.Steps())
	assert.InDelta(t, 1.0, st.Estimate().V.At(0), 1e-12)
	assert.False(t, st.Next())
}

func TestStepperSetState(t *testing.T) {
	ramp := func(_ float64, _ vec.Vector) vec.Vector { return vec.Of(1) }
	sv, err := NewSolver(ramp, Params{Method: Heun, SubSteps: 4, StepDur: 1})
	require.NoError(t, err)
	st := sv.Gradually(0, vec.Of(0))
	require.True(t, st.Next())
	assert.InDelta(t, 0.25, st.Estimate().V.At(0), 1e-12)

	// later sub-steps continue from the replaced state
	st.SetState(vec.Of(10))
	require.True(t, st.Next())
	assert.InDelta(t, 10.25, st.Estimate().V.At(0), 1e-12)
	assert.InDelta(t, 0.5, st.Estimate().T, 1e-12)
	for st.Next() {
	}
	assert.InDelta(t, 10.75, st.Estimate().V.At(0), 1e-12)
}

func TestSolveMultiVar(t *testing.T) {
	// harmonic oscillator: x' = y, y' = -x; energy approximately conserved by RK4
	osc := func(t float64, v vec.Vector) vec.Vector { return vec.Of(v.At(1), -v.At(0)) }
	est, err := Solve(osc, 0, vec.Of(1, 0), math.Pi/2, 100, RK4)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, est.V.At(0), 1e-8)
	assert.InDelta(t, -1.0, est.V.At(1), 1e-8)
}

func TestMethodStrings(t *testing.T) {
	var m Methods
	require.NoError(t, m.FromString("RK4"))
	assert.Equal(t, RK4, m)
	assert.Equal(t, 4, m.Order())
	assert.Equal(t, 2, Heun.Stages())
	require.NoError(t, m.UnmarshalText([]byte("Midpoint")))
	assert.Equal(t, Midpoint, m)
	assert.Error(t, m.FromString("Verlet"))
	assert.ErrorIs(t, m.UnmarshalText([]byte("Verlet")), ErrInvalidArgument)
	assert.ErrorIs(t, m.UnmarshalText([]byte("MethodsN")), ErrInvalidArgument)
	assert.Equal(t, Midpoint, m, "rejected names leave the method unchanged")
	assert.Equal(t, "Methods(7)", Methods(7).String())
	b, _ := Euler.MarshalText()
	assert.Equal(t, "Euler", string(b))
}
