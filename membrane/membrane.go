// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package membrane

import (
	"math"

	"github.com/emer/etable/minmax"
	"github.com/emer/odespike/ode"
	"github.com/emer/odespike/units"
	"github.com/emer/odespike/vec"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidArgument is returned for invalid construction parameters
	ErrInvalidArgument = ode.ErrInvalidArgument

	// ErrUnsupportedOperation is returned by ComputeDerivative
	ErrUnsupportedOperation = errors.New("unsupported operation")
)

// VmIdx is the index of the membrane potential in the evolving variables
const VmIdx = 0

// ActivationFunc is the capability set shared with the rest of the
// activation function catalog.
type ActivationFunc interface {
	// Kind returns the model kind
	Kind() Kinds

	// Compute advances one tick with input stimulus x, returning 1 on spike else 0
	Compute(x float64) float64

	// Reset restores the initial conditions
	Reset()

	// InternalState returns the scaled membrane potential
	InternalState() float64

	// InternalStateRange is the expected range of InternalState
	InternalStateRange() minmax.F64

	// OutputRange is the range of Compute output
	OutputRange() minmax.F64

	// SupportsDerivative is false for all stateful spiking functions
	SupportsDerivative() bool

	// ComputeDerivative returns ErrUnsupportedOperation for spiking functions
	ComputeDerivative(c, x float64) (float64, error)
}

// Dynamics are the model-specific equations of a membrane.
type Dynamics struct {

	// model kind
	Kind Kinds

	// number of evolving variables, including the potential at VmIdx
	NVars int

	// names of the evolving variables after the potential, for logging
	AuxNames []string

	// prefix each auxiliary variable is reported in by AuxVars, e.g., Nano
	// for a current in nA -- missing entries are reported in SI units
	AuxUnits []units.Prefix

	// DiffEq returns dv/dt in SI units for state v and input current stim (A)
	DiffEq func(t float64, v vec.Vector, stim float64) vec.Vector

	// OnFiring applies firing side effects to auxiliary variables -- may be nil
	OnFiring func(v vec.Vector)

	// InitAux sets the auxiliary variables given the potential in v -- may be nil
	InitAux func(v vec.Vector)
}

// Membrane is an ODE-driven spiking membrane.
type Membrane struct {
	prm       Params
	dyn       Dynamics
	solver    *ode.Solver
	vars      vec.Vector
	initV     float64
	stim      float64
	spiked    bool
	refr      Refractory
	stateRng  minmax.F64
	outputRng minmax.F64
}

// NewMembrane returns a membrane with given common params and dynamics.
// Params are copied and updated, so later changes have no effect.
func NewMembrane(prm *Params, dyn Dynamics) (*Membrane, error) {
	if dyn.NVars < 1 || dyn.DiffEq == nil {
		return nil, errors.Wrapf(ErrInvalidArgument, "membrane: %v dynamics need at least one variable and a DiffEq", dyn.Kind)
	}
	if len(dyn.AuxNames) > dyn.NVars-1 {
		return nil, errors.Wrapf(ErrInvalidArgument, "membrane: %d aux names for %d variables", len(dyn.AuxNames), dyn.NVars)
	}
	if err := prm.Validate(); err != nil {
		return nil, err
	}
	m := &Membrane{prm: *prm, dyn: dyn}
	m.prm.Update()
	sv, err := ode.NewSolver(m.diffEq, m.prm.SolverSI)
	if err != nil {
		return nil, err
	}
	m.solver = sv
	m.refr.Periods = m.prm.RefractoryPeriods
	m.stateRng.Set(m.prm.MinVSI*m.prm.StateScale, m.prm.ThreshVSI*m.prm.StateScale)
	m.outputRng.Set(0, 1)
	m.vars = vec.New(dyn.NVars)
	m.initV = m.prm.RestVSI
	m.Reset()
	return m, nil
}

// Kind returns the model kind
func (m *Membrane) Kind() Kinds { return m.dyn.Kind }

// Params returns a copy of the parameters
func (m *Membrane) Params() Params { return m.prm }

// Compute advances the membrane by one tick given input stimulus x, and
// returns 1 if the membrane fired on this tick, else 0.
func (m *Membrane) Compute(x float64) float64 {
	stim := x * m.prm.StimCoeffSI
	if math.IsNaN(stim) {
		stim = 0
	}
	stim = m.prm.StimRangeSI.ClipVal(stim)

	// deferred reset: potential is left pinned at threshold by a spike
	if m.vars.At(VmIdx) >= m.prm.ThreshVSI {
		m.vars.Set(VmIdx, m.prm.ResetVSI)
		m.refr.Start()
	}
	if m.refr.Tick() {
		stim = 0
	}
	m.stim = stim

	fired := false
	st := m.solver.Gradually(0, m.vars)
	for st.Next() {
		m.vars = st.Estimate().V
		if m.vars.At(VmIdx) >= m.prm.ThreshVSI {
			fired = true
			break
		}
		if m.vars.At(VmIdx) < m.prm.MinVSI {
			m.vars.Set(VmIdx, m.prm.MinVSI)
			st.SetState(m.vars)
		}
	}
	if fired {
		m.vars.Set(VmIdx, m.prm.ThreshVSI)
		if m.dyn.OnFiring != nil {
			m.dyn.OnFiring(m.vars)
		}
		m.spiked = true
		return 1
	}
	m.spiked = false
	return 0
}

// diffEq is the model equation under the current stimulus.  Intermediate
// solver stages below MinV are evaluated at MinV, as the potential is
// pinned there.
func (m *Membrane) diffEq(t float64, v vec.Vector) vec.Vector {
	if v.At(VmIdx) < m.prm.MinVSI {
		v = v.Clone()
		v.Set(VmIdx, m.prm.MinVSI)
	}
	return m.dyn.DiffEq(t, v, m.stim)
}

// Reset restores the initial potential and auxiliary variables, and clears
// the refractory and spike state.
func (m *Membrane) Reset() {
	if m.vars.Len() != m.dyn.NVars {
		m.vars = vec.New(m.dyn.NVars)
	}
	for i := 0; i < m.vars.Len(); i++ {
		m.vars.Set(i, 0)
	}
	m.vars.Set(VmIdx, m.initV)
	if m.dyn.InitAux != nil {
		m.dyn.InitAux(m.vars)
	}
	m.stim = 0
	m.spiked = false
	m.refr.Reset()
}

// SetInitialInternalState sets the initial potential to
// MinV + ratio * (FiringThreshV - MinV) and resets.  ratio must be in [0, 1):
// a ratio of 1 would start the membrane at threshold.
func (m *Membrane) SetInitialInternalState(ratio float64) error {
	if !(ratio >= 0 && ratio < 1) {
		return errors.Wrapf(ErrInvalidArgument, "membrane: initial state ratio must be in [0, 1), got %g", ratio)
	}
	m.initV = m.prm.MinVSI + ratio*(m.prm.ThreshVSI-m.prm.MinVSI)
	m.Reset()
	return nil
}

// InternalState returns the membrane potential in mV times StateCoeff
func (m *Membrane) InternalState() float64 {
	return m.vars.At(VmIdx) * m.prm.StateScale
}

// InternalStateRange returns [MinV, FiringThreshV] scaled as InternalState
func (m *Membrane) InternalStateRange() minmax.F64 { return m.stateRng }

// OutputRange returns [0, 1]
func (m *Membrane) OutputRange() minmax.F64 { return m.outputRng }

// SupportsDerivative returns false
func (m *Membrane) SupportsDerivative() bool { return false }

// ComputeDerivative always returns ErrUnsupportedOperation: a spiking
// membrane is stateful and not differentiable.
func (m *Membrane) ComputeDerivative(c, x float64) (float64, error) {
	return 0, errors.Wrapf(ErrUnsupportedOperation, "membrane: derivative of %v", m.dyn.Kind)
}

// EvolvingVars returns a copy of the evolving variables, in SI units
func (m *Membrane) EvolvingVars() vec.Vector { return m.vars.Clone() }

// VarNames returns the names of the evolving variables
func (m *Membrane) VarNames() []string {
	nms := []string{"Vm"}
	return append(nms, m.dyn.AuxNames...)
}

// AuxVars returns the evolving variables after the potential, converted
// from SI into the units given by the AuxUnits of the dynamics.
func (m *Membrane) AuxVars() []float64 {
	aux := make([]float64, len(m.dyn.AuxNames))
	for i := range aux {
		p := units.NoPrefix
		if i < len(m.dyn.AuxUnits) {
			p = m.dyn.AuxUnits[i]
		}
		aux[i] = units.FromBase(m.vars.At(i+1), p)
	}
	return aux
}

// Spiked returns true if the last Compute produced a spike
func (m *Membrane) Spiked() bool { return m.spiked }

// InRefractory returns true while input is being ignored
func (m *Membrane) InRefractory() bool { return m.refr.In }

// Refractory returns a copy of the refractory state
func (m *Membrane) Refractory() Refractory { return m.refr }

// Stimulus returns the input current applied on the last tick, in nA
func (m *Membrane) Stimulus() float64 { return units.ToNanoamperes(m.stim) }
