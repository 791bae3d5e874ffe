// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package membrane

import (
	"github.com/goki/ki/kit"
	"github.com/pkg/errors"
)

// Kinds are the kinds of ODE-driven spiking membranes
type Kinds int

//go:generate stringer -type=Kinds

var KiT_Kinds = kit.Enums.AddEnum(KindsN, kit.NotBitFlag, nil)

func (ev Kinds) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Kinds) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The membrane kinds
const (
	// LeakyIF is the leaky integrate-and-fire model
	LeakyIF Kinds = iota

	// ExpIF is the exponential integrate-and-fire model
	ExpIF

	// AdExpIF is the adaptive exponential integrate-and-fire model
	AdExpIF

	// IzhikevichIF is the Izhikevich quadratic integrate-and-fire model
	IzhikevichIF

	KindsN
)

// UnmarshalText lets config files name the kind.
func (ev *Kinds) UnmarshalText(b []byte) error {
	var k Kinds
	if err := k.FromString(string(b)); err != nil || k >= KindsN {
		return errors.Wrapf(ErrInvalidArgument, "membrane: %q is not a valid kind", string(b))
	}
	*ev = k
	return nil
}

// MarshalText is the inverse of UnmarshalText.
func (ev Kinds) MarshalText() ([]byte, error) { return []byte(ev.String()), nil }
