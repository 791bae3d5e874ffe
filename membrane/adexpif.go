// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package membrane

import (
	"github.com/emer/odespike/units"
	"github.com/emer/odespike/vec"
)

// AdaptIdx is the index of the adaptation current in AdExpIF evolving variables
const AdaptIdx = 1

// AdExpIFParams are the adaptive exponential integrate-and-fire parameters
// (Brette & Gerstner, 2005), with evolving potential V and adaptation
// current w:
//
//	dV/dt = (-(V - RestV) + Sharpness * exp((V - RheobaseV) / Sharpness) - R*w + R*I) / TimeScale
//	dw/dt = (AdaptVoltageCoupling * (V - RestV) - w) / AdaptTimeConst
//
// and w += AdaptSpikeIncr on every spike.
type AdExpIFParams struct {
	Params
	TimeScale            float64 `def:"9.4" min:"0" desc:"membrane time constant, in ms"`
	Resistance           float64 `def:"33.3" min:"0" desc:"membrane resistance, in MΩ"`
	RheobaseV            float64 `def:"-50.4" desc:"rheobase threshold potential, in mV"`
	Sharpness            float64 `def:"2" min:"0" desc:"slope factor (delta T) of the exponential term, in mV"`
	AdaptVoltageCoupling float64 `def:"4" desc:"subthreshold adaptation (a), in nS"`
	AdaptTimeConst       float64 `def:"144" min:"0" desc:"adaptation time constant, in ms"`
	AdaptSpikeIncr       float64 `def:"0.0805" desc:"spike-triggered adaptation increment (b), in nA"`

	TimeScaleSI            float64 `view:"-" json:"-" toml:"-"`
	ResistanceSI           float64 `view:"-" json:"-" toml:"-"`
	RheobaseVSI            float64 `view:"-" json:"-" toml:"-"`
	SharpnessSI            float64 `view:"-" json:"-" toml:"-"`
	AdaptVoltageCouplingSI float64 `view:"-" json:"-" toml:"-"`
	AdaptTimeConstSI       float64 `view:"-" json:"-" toml:"-"`
	AdaptSpikeIncrSI       float64 `view:"-" json:"-" toml:"-"`
}

func (ap *AdExpIFParams) Defaults() {
	ap.Params.Defaults()
	ap.RestV = -70.6
	ap.ResetV = -65
	ap.FiringThreshV = -40
	ap.MinV = -90
	ap.TimeScale = 9.4
	ap.Resistance = 33.3
	ap.RheobaseV = -50.4
	ap.Sharpness = 2
	ap.AdaptVoltageCoupling = 4
	ap.AdaptTimeConst = 144
	ap.AdaptSpikeIncr = 0.0805
	ap.Update()
}

// Update must be called after any changes to parameters
func (ap *AdExpIFParams) Update() {
	ap.Params.Update()
	ap.TimeScaleSI = units.Milliseconds(ap.TimeScale)
	ap.ResistanceSI = units.Megaohms(ap.Resistance)
	ap.RheobaseVSI = units.Millivolts(ap.RheobaseV)
	ap.SharpnessSI = units.Millivolts(ap.Sharpness)
	ap.AdaptVoltageCouplingSI = units.Nanosiemens(ap.AdaptVoltageCoupling)
	ap.AdaptTimeConstSI = units.Milliseconds(ap.AdaptTimeConst)
	ap.AdaptSpikeIncrSI = units.Nanoamperes(ap.AdaptSpikeIncr)
}

func (ap *AdExpIFParams) Validate() error {
	for _, c := range []struct {
		nm string
		v  float64
	}{{"TimeScale", ap.TimeScale}, {"Resistance", ap.Resistance}, {"Sharpness", ap.Sharpness},
		{"AdaptTimeConst", ap.AdaptTimeConst}} {
		if err := positive(c.nm, c.v); err != nil {
			return err
		}
	}
	return ap.Params.Validate()
}

// MembraneDiffEq returns dV/dt and dw/dt for input current stim
func (ap *AdExpIFParams) MembraneDiffEq(t float64, v vec.Vector, stim float64) vec.Vector {
	vm, w := v.At(VmIdx), v.At(AdaptIdx)
	ex := spikeExp(vm, ap.RheobaseVSI, ap.SharpnessSI)
	dv := (-(vm - ap.RestVSI) + ex - ap.ResistanceSI*w + ap.ResistanceSI*stim) / ap.TimeScaleSI
	dw := (ap.AdaptVoltageCouplingSI*(vm-ap.RestVSI) - w) / ap.AdaptTimeConstSI
	return vec.Of(dv, dw)
}

// OnFiring increments the adaptation current
func (ap *AdExpIFParams) OnFiring(v vec.Vector) {
	v.Set(AdaptIdx, v.At(AdaptIdx)+ap.AdaptSpikeIncrSI)
}

// NewAdExpIF returns an adaptive exponential integrate-and-fire membrane.
func NewAdExpIF(ap *AdExpIFParams) (*Membrane, error) {
	if err := ap.Validate(); err != nil {
		return nil, err
	}
	p := *ap
	p.Update()
	return NewMembrane(&p.Params, Dynamics{
		Kind:     AdExpIF,
		NVars:    2,
		AuxNames: []string{"W"},
		AuxUnits: []units.Prefix{units.Nano},
		DiffEq:   p.MembraneDiffEq,
		OnFiring: p.OnFiring,
	})
}
