// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ode

import (
	"github.com/emer/odespike/vec"
	"github.com/goki/ki/kit"
	"github.com/pkg/errors"
)

// Methods are the single-step integration methods
type Methods int

//go:generate stringer -type=Methods

var KiT_Methods = kit.Enums.AddEnum(MethodsN, kit.NotBitFlag, nil)

func (ev Methods) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Methods) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The integration methods
const (
	// Euler is the explicit forward Euler method: v + h*f(t, v)
	Euler Methods = iota

	// Midpoint is the explicit midpoint (2nd order Runge-Kutta) method
	Midpoint

	// Heun is the improved Euler (trapezoidal predictor-corrector) method
	Heun

	// RK4 is the classical 4th order Runge-Kutta method
	RK4

	MethodsN
)

// UnmarshalText lets config files name the method.
func (ev *Methods) UnmarshalText(b []byte) error {
	var m Methods
	if err := m.FromString(string(b)); err != nil || !m.IsValid() {
		return errors.Wrapf(ErrInvalidArgument, "ode: %q is not a valid method", string(b))
	}
	*ev = m
	return nil
}

// MarshalText is the inverse of UnmarshalText.
func (ev Methods) MarshalText() ([]byte, error) { return []byte(ev.String()), nil }

// Order returns the global order of accuracy.
func (ev Methods) Order() int {
	switch ev {
	case Euler:
		return 1
	case Midpoint, Heun:
		return 2
	case RK4:
		return 4
	}
	return 0
}

// Stages returns the number of derivative evaluations per step.
func (ev Methods) Stages() int {
	switch ev {
	case Euler:
		return 1
	case Midpoint, Heun:
		return 2
	case RK4:
		return 4
	}
	return 0
}

// IsValid returns true for a known method.
func (ev Methods) IsValid() bool {
	return ev >= 0 && ev < MethodsN
}

// Step advances v by one increment h from time t, returning a new vector.
func (ev Methods) Step(fn DiffEq, t float64, v vec.Vector, h float64) vec.Vector {
	switch ev {
	case Midpoint:
		k1 := fn(t, v)
		k2 := fn(t+h/2, vec.AddScaledTo(v, h/2, k1))
		return vec.AddScaledTo(v, h, k2)
	case Heun:
		k1 := fn(t, v)
		k2 := fn(t+h, vec.AddScaledTo(v, h, k1))
		nv := vec.AddScaledTo(v, h/2, k1)
		nv.AddScaled(h/2, k2)
		return nv
	case RK4:
		k1 := fn(t, v)
		k2 := fn(t+h/2, vec.AddScaledTo(v, h/2, k1))
		k3 := fn(t+h/2, vec.AddScaledTo(v, h/2, k2))
		k4 := fn(t+h, vec.AddScaledTo(v, h, k3))
		nv := vec.AddScaledTo(v, h/6, k1)
		nv.AddScaled(h/3, k2)
		nv.AddScaled(h/3, k3)
		nv.AddScaled(h/6, k4)
		return nv
	default:
		return vec.AddScaledTo(v, h, fn(t, v))
	}
}
