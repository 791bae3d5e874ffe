// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package membrane

import (
	"github.com/emer/odespike/units"
	"github.com/emer/odespike/vec"
)

// LeakyIFParams are the leaky integrate-and-fire parameters:
// dV/dt = (-(V - RestV) + Resistance * I) / TimeScale
type LeakyIFParams struct {
	Params
	TimeScale  float64 `def:"8" min:"0" desc:"membrane time constant, in ms"`
	Resistance float64 `def:"10" min:"0" desc:"membrane resistance, in MΩ"`

	TimeScaleSI  float64 `view:"-" json:"-" toml:"-" desc:"TimeScale in seconds"`
	ResistanceSI float64 `view:"-" json:"-" toml:"-" desc:"Resistance in ohms"`
}

func (lp *LeakyIFParams) Defaults() {
	lp.Params.Defaults()
	lp.RestV = -70
	lp.ResetV = -65
	lp.FiringThreshV = -50
	lp.MinV = -90
	lp.TimeScale = 8
	lp.Resistance = 10
	lp.Update()
}

// Update must be called after any changes to parameters
func (lp *LeakyIFParams) Update() {
	lp.Params.Update()
	lp.TimeScaleSI = units.Milliseconds(lp.TimeScale)
	lp.ResistanceSI = units.Megaohms(lp.Resistance)
}

func (lp *LeakyIFParams) Validate() error {
	if err := positive("TimeScale", lp.TimeScale); err != nil {
		return err
	}
	if err := positive("Resistance", lp.Resistance); err != nil {
		return err
	}
	return lp.Params.Validate()
}

// MembraneDiffEq returns dV/dt for input current stim
func (lp *LeakyIFParams) MembraneDiffEq(t float64, v vec.Vector, stim float64) vec.Vector {
	vm := v.At(VmIdx)
	return vec.Of((-(vm - lp.RestVSI) + lp.ResistanceSI*stim) / lp.TimeScaleSI)
}

// NewLeakyIF returns a leaky integrate-and-fire membrane.
func NewLeakyIF(lp *LeakyIFParams) (*Membrane, error) {
	if err := lp.Validate(); err != nil {
		return nil, err
	}
	p := *lp
	p.Update()
	return NewMembrane(&p.Params, Dynamics{
		Kind:   LeakyIF,
		NVars:  1,
		DiffEq: p.MembraneDiffEq,
	})
}
