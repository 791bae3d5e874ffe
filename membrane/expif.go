// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package membrane

import (
	"math"

	"github.com/emer/odespike/units"
	"github.com/emer/odespike/vec"
)

// ExpClamp bounds the exponent of the spike-generating term, so it cannot
// overflow before the potential reaches threshold.
const ExpClamp = 20

// spikeExp returns the exponential spike-generating term
// sharp * exp((vm - rheo) / sharp), with the exponent clamped to +/- ExpClamp.
func spikeExp(vm, rheo, sharp float64) float64 {
	x := (vm - rheo) / sharp
	x = math.Max(-ExpClamp, math.Min(ExpClamp, x))
	return sharp * math.Exp(x)
}

// ExpIFParams are the exponential integrate-and-fire parameters:
// dV/dt = (-(V - RestV) + Sharpness * exp((V - RheobaseV) / Sharpness) + Resistance * I) / TimeScale
type ExpIFParams struct {
	Params
	TimeScale  float64 `def:"12" min:"0" desc:"membrane time constant, in ms"`
	Resistance float64 `def:"20" min:"0" desc:"membrane resistance, in MΩ"`
	RheobaseV  float64 `def:"-55" desc:"rheobase threshold potential where the exponential term takes off, in mV"`
	Sharpness  float64 `def:"2" min:"0" desc:"slope factor (delta T) of the exponential term, in mV"`

	TimeScaleSI  float64 `view:"-" json:"-" toml:"-" desc:"TimeScale in seconds"`
	ResistanceSI float64 `view:"-" json:"-" toml:"-" desc:"Resistance in ohms"`
	RheobaseVSI  float64 `view:"-" json:"-" toml:"-" desc:"RheobaseV in volts"`
	SharpnessSI  float64 `view:"-" json:"-" toml:"-" desc:"Sharpness in volts"`
}

func (ep *ExpIFParams) Defaults() {
	ep.Params.Defaults()
	ep.RestV = -65
	ep.ResetV = -60
	ep.FiringThreshV = -30
	ep.MinV = -90
	ep.TimeScale = 12
	ep.Resistance = 20
	ep.RheobaseV = -55
	ep.Sharpness = 2
	ep.Update()
}

// Update must be called after any changes to parameters
func (ep *ExpIFParams) Update() {
	ep.Params.Update()
	ep.TimeScaleSI = units.Milliseconds(ep.TimeScale)
	ep.ResistanceSI = units.Megaohms(ep.Resistance)
	ep.RheobaseVSI = units.Millivolts(ep.RheobaseV)
	ep.SharpnessSI = units.Millivolts(ep.Sharpness)
}

func (ep *ExpIFParams) Validate() error {
	for _, c := range []struct {
		nm string
		v  float64
	}{{"TimeScale", ep.TimeScale}, {"Resistance", ep.Resistance}, {"Sharpness", ep.Sharpness}} {
		if err := positive(c.nm, c.v); err != nil {
			return err
		}
	}
	return ep.Params.Validate()
}

// MembraneDiffEq returns dV/dt for input current stim
func (ep *ExpIFParams) MembraneDiffEq(t float64, v vec.Vector, stim float64) vec.Vector {
	vm := v.At(VmIdx)
	ex := spikeExp(vm, ep.RheobaseVSI, ep.SharpnessSI)
	return vec.Of((-(vm - ep.RestVSI) + ex + ep.ResistanceSI*stim) / ep.TimeScaleSI)
}

// NewExpIF returns an exponential integrate-and-fire membrane.
func NewExpIF(ep *ExpIFParams) (*Membrane, error) {
	if err := ep.Validate(); err != nil {
		return nil, err
	}
	p := *ep
	p.Update()
	return NewMembrane(&p.Params, Dynamics{
		Kind:   ExpIF,
		NVars:  1,
		DiffEq: p.MembraneDiffEq,
	})
}
