// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package membrane

import (
	"github.com/emer/odespike/units"
	"github.com/emer/odespike/vec"
)

// RecoveryIdx is the index of the recovery variable in IzhikevichIF evolving variables
const RecoveryIdx = 1

// IzhikevichParams are the Izhikevich (2003) model parameters, in the
// classic mV / ms formulation:
//
//	dv/dt = 0.04 v^2 + 5 v + 140 - u + I
//	du/dt = a (b v - u)
//
// with v reset to ResetV (c) on the tick after a spike and u += d on the
// spike.  I is the input current in nA.  Since 1 mV/ms == 1 V/s, the same
// numbers are used for the SI state in volts.
type IzhikevichParams struct {
	Params
	RecoveryTimeScale   float64 `def:"0.02" min:"0" desc:"time scale of the recovery variable (a), in 1/ms"`
	RecoverySensitivity float64 `def:"0.2" desc:"sensitivity of the recovery variable to subthreshold potential (b)"`
	RecoveryReset       float64 `def:"8" desc:"after-spike increment of the recovery variable (d), in mV"`

	RecoveryResetSI float64 `view:"-" json:"-" toml:"-" desc:"RecoveryReset in volts"`
	VmScale         float64 `view:"-" json:"-" toml:"-" desc:"volts to mV"`
	StimScale       float64 `view:"-" json:"-" toml:"-" desc:"amperes to nA"`
}

func (ip *IzhikevichParams) Defaults() {
	ip.Params.Defaults()
	ip.RestV = -70
	ip.ResetV = -65
	ip.FiringThreshV = 30
	ip.MinV = -90
	ip.RecoveryTimeScale = 0.02
	ip.RecoverySensitivity = 0.2
	ip.RecoveryReset = 8
	ip.Update()
}

// Update must be called after any changes to parameters
func (ip *IzhikevichParams) Update() {
	ip.Params.Update()
	ip.RecoveryResetSI = units.Millivolts(ip.RecoveryReset)
	ip.VmScale = units.FromBase(1, units.Milli)
	ip.StimScale = units.FromBase(1, units.Nano)
}

func (ip *IzhikevichParams) Validate() error {
	if err := positive("RecoveryTimeScale", ip.RecoveryTimeScale); err != nil {
		return err
	}
	return ip.Params.Validate()
}

// MembraneDiffEq returns dv/dt and du/dt for input current stim
func (ip *IzhikevichParams) MembraneDiffEq(t float64, v vec.Vector, stim float64) vec.Vector {
	vm := v.At(VmIdx) * ip.VmScale
	u := v.At(RecoveryIdx) * ip.VmScale
	i := stim * ip.StimScale
	dv := 0.04*vm*vm + 5*vm + 140 - u + i
	du := ip.RecoveryTimeScale * (ip.RecoverySensitivity*vm - u)
	return vec.Of(dv, du)
}

// OnFiring increments the recovery variable
func (ip *IzhikevichParams) OnFiring(v vec.Vector) {
	v.Set(RecoveryIdx, v.At(RecoveryIdx)+ip.RecoveryResetSI)
}

// InitAux starts the recovery variable at its equilibrium b * v
func (ip *IzhikevichParams) InitAux(v vec.Vector) {
	v.Set(RecoveryIdx, ip.RecoverySensitivity*v.At(VmIdx))
}

// NewIzhikevichIF returns an Izhikevich membrane.
func NewIzhikevichIF(ip *IzhikevichParams) (*Membrane, error) {
	if err := ip.Validate(); err != nil {
		return nil, err
	}
	p := *ip
	p.Update()
	return NewMembrane(&p.Params, Dynamics{
		Kind:     IzhikevichIF,
		NVars:    2,
		AuxNames: []string{"U"},
		AuxUnits: []units.Prefix{units.Milli},
		DiffEq:   p.MembraneDiffEq,
		OnFiring: p.OnFiring,
		InitAux:  p.InitAux,
	})
}
