// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package membrane

import (
	"math"

	"github.com/emer/etable/minmax"
	"github.com/emer/odespike/ode"
	"github.com/emer/odespike/units"
	"github.com/pkg/errors"
)

///////////////////////////////////////////////////////////////////////
//  params.go contains the parameters common to all spiking membranes

// Params are the parameters shared by all ODE-driven spiking membranes.
// Potentials are in mV, stimulus scaling in nA per input unit, and the
// solver step duration in ms.  Update must be called after any changes,
// to recompute the SI values actually used in computation.
type Params struct {
	RestV             float64    `def:"-70" desc:"resting membrane potential, in mV"`
	ResetV            float64    `def:"-65" desc:"membrane potential set at the start of the tick after a spike, in mV"`
	MinV              float64    `def:"-90" desc:"lowest allowed membrane potential, in mV -- the potential is pinned here on undershoot"`
	FiringThreshV     float64    `def:"-50" desc:"potential at or above which a spike is emitted, in mV -- the potential is pinned here when reached"`
	RefractoryPeriods int        `def:"1" min:"0" desc:"number of ticks after a spike during which input stimulus is ignored"`
	StimuliCoeff      float64    `def:"1" desc:"multiplier converting the input stimulus into nA of input current"`
	StateCoeff        float64    `def:"1" min:"0" desc:"multiplier on the mV membrane potential reported as InternalState"`
	StimRange         minmax.F64 `desc:"range in nA that the scaled input current is clipped to"`
	Solver            ode.Params `view:"inline" desc:"integration method, sub-steps, and duration of one tick in ms (StepDur)"`

	RestVSI     float64    `view:"-" json:"-" toml:"-" desc:"RestV in volts"`
	ResetVSI    float64    `view:"-" json:"-" toml:"-" desc:"ResetV in volts"`
	MinVSI      float64    `view:"-" json:"-" toml:"-" desc:"MinV in volts"`
	ThreshVSI   float64    `view:"-" json:"-" toml:"-" desc:"FiringThreshV in volts"`
	StimCoeffSI float64    `view:"-" json:"-" toml:"-" desc:"StimuliCoeff in amperes per input unit"`
	StimRangeSI minmax.F64 `view:"-" json:"-" toml:"-" desc:"StimRange in amperes"`
	StateScale  float64    `view:"-" json:"-" toml:"-" desc:"volts to InternalState multiplier = StateCoeff / 1 mV"`
	SolverSI    ode.Params `view:"-" json:"-" toml:"-" desc:"Solver with StepDur in seconds"`
}

func (mp *Params) Defaults() {
	mp.RestV = -70
	mp.ResetV = -65
	mp.MinV = -90
	mp.FiringThreshV = -50
	mp.RefractoryPeriods = 1
	mp.StimuliCoeff = 1
	mp.StateCoeff = 1
	mp.StimRange.Set(-1e6, 1e6)
	mp.Solver.Defaults()
	mp.Update()
}

// Update must be called after any changes to parameters
func (mp *Params) Update() {
	mp.RestVSI = units.Millivolts(mp.RestV)
	mp.ResetVSI = units.Millivolts(mp.ResetV)
	mp.MinVSI = units.Millivolts(mp.MinV)
	mp.ThreshVSI = units.Millivolts(mp.FiringThreshV)
	mp.StimCoeffSI = units.Nanoamperes(mp.StimuliCoeff)
	mp.StimRangeSI.Set(units.Nanoamperes(mp.StimRange.Min), units.Nanoamperes(mp.StimRange.Max))
	mp.StateScale = mp.StateCoeff / units.Milli.Factor()
	mp.SolverSI = mp.Solver
	mp.SolverSI.StepDur = units.Milliseconds(mp.Solver.StepDur)
}

// Validate returns ErrInvalidArgument for structurally inconsistent values.
func (mp *Params) Validate() error {
	if err := mp.Solver.Validate(); err != nil {
		return err
	}
	switch {
	case mp.RefractoryPeriods < 0:
		return errors.Wrapf(ErrInvalidArgument, "membrane: RefractoryPeriods must be >= 0, got %d", mp.RefractoryPeriods)
	case !(mp.FiringThreshV > mp.MinV):
		return errors.Wrapf(ErrInvalidArgument, "membrane: FiringThreshV %g must be above MinV %g", mp.FiringThreshV, mp.MinV)
	case mp.ResetV < mp.MinV || mp.ResetV >= mp.FiringThreshV:
		return errors.Wrapf(ErrInvalidArgument, "membrane: ResetV %g must be in [MinV, FiringThreshV)", mp.ResetV)
	case mp.RestV < mp.MinV || mp.RestV >= mp.FiringThreshV:
		return errors.Wrapf(ErrInvalidArgument, "membrane: RestV %g must be in [MinV, FiringThreshV)", mp.RestV)
	case !(mp.StateCoeff > 0) || math.IsInf(mp.StateCoeff, 0):
		return errors.Wrapf(ErrInvalidArgument, "membrane: StateCoeff must be > 0 and finite, got %g", mp.StateCoeff)
	case math.IsNaN(mp.StimuliCoeff) || math.IsInf(mp.StimuliCoeff, 0):
		return errors.Wrapf(ErrInvalidArgument, "membrane: StimuliCoeff must be finite, got %g", mp.StimuliCoeff)
	case mp.StimRange.Min > mp.StimRange.Max:
		return errors.Wrapf(ErrInvalidArgument, "membrane: StimRange min %g above max %g", mp.StimRange.Min, mp.StimRange.Max)
	}
	return nil
}

// RestRatio returns the initial-state ratio that corresponds to RestV.
func (mp *Params) RestRatio() float64 {
	return (mp.RestV - mp.MinV) / (mp.FiringThreshV - mp.MinV)
}

// positive returns ErrInvalidArgument unless v is > 0 and finite.
func positive(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return errors.Wrapf(ErrInvalidArgument, "membrane: %s must be > 0 and finite, got %g", name, v)
	}
	return nil
}
