// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spikesim

import (
	"github.com/goki/ki/kit"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// StimTypes are the shapes of stimulus schedules
type StimTypes int

//go:generate stringer -type=StimTypes

var KiT_StimTypes = kit.Enums.AddEnum(StimTypesN, kit.NotBitFlag, nil)

func (ev StimTypes) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *StimTypes) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// ConstStim is a constant Amp between Onset and Offset
	ConstStim StimTypes = iota

	// PulseStim is Amp for Width cycles out of every Period cycles
	PulseStim

	// NoisyStim is Amp plus gaussian noise with NoiseStd
	NoisyStim

	StimTypesN
)

// UnmarshalText lets config files name the stimulus type.
func (ev *StimTypes) UnmarshalText(b []byte) error {
	var st StimTypes
	if err := st.FromString(string(b)); err != nil || st >= StimTypesN {
		return errors.Errorf("spikesim: %q is not a valid stimulus type", string(b))
	}
	*ev = st
	return nil
}

// MarshalText is the inverse of UnmarshalText.
func (ev StimTypes) MarshalText() ([]byte, error) { return []byte(ev.String()), nil }

// Stim is a stimulus schedule: the input presented to the membrane on
// each cycle.
type Stim struct {

	// shape of the schedule
	Type StimTypes

	// stimulus amplitude, in membrane input units
	Amp float64 `def:"1"`

	// first cycle the stimulus is on
	Onset int `min:"0"`

	// cycle the stimulus turns off -- 0 = never
	Offset int `min:"0"`

	// for PulseStim, cycles from the start of one pulse to the next
	Period int `def:"20" min:"1"`

	// for PulseStim, number of cycles each pulse is on
	Width int `def:"5" min:"1"`

	// for NoisyStim, standard deviation of the gaussian noise added to Amp
	NoiseStd float64 `def:"0.5" min:"0"`

	// random seed for NoisyStim -- the same seed gives the same noise sequence after Init
	Seed uint64 `def:"1"`

	noise distuv.Normal
}

func (st *Stim) Defaults() {
	st.Type = ConstStim
	st.Amp = 1
	st.Period = 20
	st.Width = 5
	st.NoiseStd = 0.5
	st.Seed = 1
}

// Validate returns an error for inconsistent schedule parameters
func (st *Stim) Validate() error {
	switch {
	case st.Type < 0 || st.Type >= StimTypesN:
		return errors.Errorf("spikesim: unknown stimulus type %d", int(st.Type))
	case st.Onset < 0 || st.Offset < 0:
		return errors.Errorf("spikesim: Onset %d and Offset %d must be >= 0", st.Onset, st.Offset)
	case st.Type == PulseStim && (st.Period < 1 || st.Width < 1):
		return errors.Errorf("spikesim: pulse Period %d and Width %d must be >= 1", st.Period, st.Width)
	case st.Type == NoisyStim && st.NoiseStd < 0:
		return errors.Errorf("spikesim: NoiseStd must be >= 0, got %g", st.NoiseStd)
	}
	return nil
}

// Init restarts the noise sequence from Seed
func (st *Stim) Init() {
	st.noise = distuv.Normal{Mu: 0, Sigma: st.NoiseStd, Src: rand.NewSource(st.Seed)}
}

// On returns true if cycle cyc is within [Onset, Offset)
func (st *Stim) On(cyc int) bool {
	if cyc < st.Onset {
		return false
	}
	return st.Offset <= 0 || cyc < st.Offset
}

// Value returns the stimulus for cycle cyc.  For NoisyStim each call draws
// a new noise sample, so it must be called once per cycle, in order.
func (st *Stim) Value(cyc int) float64 {
	if !st.On(cyc) {
		return 0
	}
	switch st.Type {
	case PulseStim:
		if (cyc-st.Onset)%st.Period < st.Width {
			return st.Amp
		}
		return 0
	case NoisyStim:
		if st.noise.Src == nil {
			st.Init()
		}
		if st.NoiseStd == 0 {
			return st.Amp
		}
		return st.Amp + st.noise.Rand()
	}
	return st.Amp
}
