// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package membrane

import "github.com/pkg/errors"

// Config selects a membrane kind and holds the parameters for each kind.
// Only the parameters of the selected Kind are used.
type Config struct {
	Kind       Kinds            `desc:"which membrane model to build"`
	LeakyIF    LeakyIFParams    `view:"no-inline" desc:"leaky integrate-and-fire parameters"`
	ExpIF      ExpIFParams      `view:"no-inline" desc:"exponential integrate-and-fire parameters"`
	AdExpIF    AdExpIFParams    `view:"no-inline" desc:"adaptive exponential integrate-and-fire parameters"`
	Izhikevich IzhikevichParams `view:"no-inline" desc:"Izhikevich model parameters"`
}

func (cf *Config) Defaults() {
	cf.Kind = LeakyIF
	cf.LeakyIF.Defaults()
	cf.ExpIF.Defaults()
	cf.AdExpIF.Defaults()
	cf.Izhikevich.Defaults()
}

// Update must be called after any changes to parameters
func (cf *Config) Update() {
	cf.LeakyIF.Update()
	cf.ExpIF.Update()
	cf.AdExpIF.Update()
	cf.Izhikevich.Update()
}

// Common returns the common parameters of the selected kind
func (cf *Config) Common() *Params {
	switch cf.Kind {
	case ExpIF:
		return &cf.ExpIF.Params
	case AdExpIF:
		return &cf.AdExpIF.Params
	case IzhikevichIF:
		return &cf.Izhikevich.Params
	default:
		return &cf.LeakyIF.Params
	}
}

// New builds a membrane of the selected kind.
func (cf *Config) New() (*Membrane, error) {
	switch cf.Kind {
	case LeakyIF:
		return NewLeakyIF(&cf.LeakyIF)
	case ExpIF:
		return NewExpIF(&cf.ExpIF)
	case AdExpIF:
		return NewAdExpIF(&cf.AdExpIF)
	case IzhikevichIF:
		return NewIzhikevichIF(&cf.Izhikevich)
	}
	return nil, errors.Wrapf(ErrInvalidArgument, "membrane: unknown kind %d", int(cf.Kind))
}
