// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package units converts values given in conventional biological units
(mV, MΩ, ms, nA, nS) into SI base units (V, Ω, s, A, S) and back.

Conversions are meant to be applied once, when parameters are updated,
never inside per-tick computation.
*/
package units

import "github.com/goki/ki/kit"

// Prefix is a metric prefix.
type Prefix int

//go:generate stringer -type=Prefix

var KiT_Prefix = kit.Enums.AddEnum(PrefixN, kit.NotBitFlag, nil)

func (ev Prefix) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Prefix) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The metric prefixes
const (
	Pico Prefix = iota
	Nano
	Micro
	Milli

	// NoPrefix is the base unit itself
	NoPrefix
	Kilo
	Mega
	Giga

	PrefixN
)

var prefixFactors = [...]float64{1e-12, 1e-9, 1e-6, 1e-3, 1, 1e3, 1e6, 1e9}

// Factor returns the multiplier from prefixed to base units.
func (ev Prefix) Factor() float64 {
	if ev < 0 || ev >= PrefixN {
		return 1
	}
	return prefixFactors[ev]
}

// ToBase converts v expressed with prefix p into base units.
func ToBase(v float64, p Prefix) float64 {
	return v * p.Factor()
}

// FromBase converts v in base units into units with prefix p.
func FromBase(v float64, p Prefix) float64 {
	return v / p.Factor()
}

// Convert converts v from one prefix to another.
func Convert(v float64, from, to Prefix) float64 {
	return FromBase(ToBase(v, from), to)
}

// Millivolts returns mv in volts.
func Millivolts(mv float64) float64 { return ToBase(mv, Milli) }

// Megaohms returns mohm in ohms.
func Megaohms(mohm float64) float64 { return ToBase(mohm, Mega) }

// Milliseconds returns ms in seconds.
func Milliseconds(ms float64) float64 { return ToBase(ms, Milli) }

// Nanoamperes returns na in amperes.
func Nanoamperes(na float64) float64 { return ToBase(na, Nano) }

// Nanosiemens returns ns in siemens.
func Nanosiemens(ns float64) float64 { return ToBase(ns, Nano) }

// ToMillivolts returns volts v in mV.
func ToMillivolts(v float64) float64 { return FromBase(v, Milli) }

// ToNanoamperes returns amperes a in nA.
func ToNanoamperes(a float64) float64 { return FromBase(a, Nano) }
