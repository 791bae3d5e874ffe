// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package vec provides the small fixed-size vector that holds the evolving
variables of a membrane model. Index 0 is always the membrane potential,
later indices are model-specific (adaptation, recovery, etc).

A Vector is a handle on its values: assignment shares storage, so use Clone
or CopyFrom whenever an independent copy is needed.  AddScaled and Scale
work in place.  The ode and membrane packages clone at every boundary, so
their callers see value semantics.
*/
package vec

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// ErrIndexOutOfRange is the panic value (wrapped) for out-of-bounds access.
var ErrIndexOutOfRange = errors.New("index out of range")

// Vector is a fixed-length vector of evolving variables.
type Vector struct {
	vals []float64
}

// New returns a zero-valued Vector of given size.
func New(n int) Vector {
	if n < 0 {
		n = 0
	}
	return Vector{vals: make([]float64, n)}
}

// Of returns a Vector holding a copy of given values.
func Of(vals ...float64) Vector {
	v := New(len(vals))
	copy(v.vals, vals)
	return v
}

// Len returns the fixed number of elements.
func (v Vector) Len() int { return len(v.vals) }

func (v Vector) check(i int) {
	if i < 0 || i >= len(v.vals) {
		panic(errors.Wrapf(ErrIndexOutOfRange, "vec: index %d, size %d", i, len(v.vals)))
	}
}

// At returns the value at index i, panicking with ErrIndexOutOfRange
// outside of [0, Len).
func (v Vector) At(i int) float64 {
	v.check(i)
	return v.vals[i]
}

// Set sets the value at index i, panicking with ErrIndexOutOfRange
// outside of [0, Len).
func (v Vector) Set(i int, x float64) {
	v.check(i)
	v.vals[i] = x
}

// Clone returns an independent copy.
func (v Vector) Clone() Vector {
	return Of(v.vals...)
}

// CopyFrom copies values from o, which must have the same length.
func (v Vector) CopyFrom(o Vector) {
	if len(o.vals) != len(v.vals) {
		panic(errors.Wrapf(ErrIndexOutOfRange, "vec: copy from size %d into size %d", len(o.vals), len(v.vals)))
	}
	copy(v.vals, o.vals)
}

// Values returns a copy of the values as a slice.
func (v Vector) Values() []float64 {
	return append([]float64(nil), v.vals...)
}

// AddScaled performs v += alpha * s in place.
func (v Vector) AddScaled(alpha float64, s Vector) {
	floats.AddScaled(v.vals, alpha, s.vals)
}

// AddScaledTo returns a new vector y + alpha * s.
func AddScaledTo(y Vector, alpha float64, s Vector) Vector {
	r := New(y.Len())
	floats.AddScaledTo(r.vals, y.vals, alpha, s.vals)
	return r
}

// Scale multiplies all elements by c in place.
func (v Vector) Scale(c float64) {
	floats.Scale(c, v.vals)
}

// Dist returns the euclidean distance between v and o.
func (v Vector) Dist(o Vector) float64 {
	return floats.Distance(v.vals, o.vals, 2)
}

// IsFinite returns false if any element is NaN or Inf.
func (v Vector) IsFinite() bool {
	for _, x := range v.vals {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func (v Vector) String() string { return fmt.Sprint(v.vals) }
