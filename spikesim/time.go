// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spikesim

// spikesim.Time contains the timing state and parameter information for running a membrane
type Time struct {

	// accumulated amount of time the membrane has been running,
	// in simulation-time (not real world time), in seconds.
	Time float64

	// cycle counter: number of membrane ticks in the current run.
	Cycle int

	// total cycle count. this increments continuously from whenever
	// it was last reset, typically this is number of milliseconds
	// in simulation time.
	CycleTot int

	// amount of time to increment per cycle, in seconds -- must match the
	// membrane solver StepDur for Time to be meaningful.
	TimePerCyc float64 `def:"0.001"`
}

// NewTime returns a new Time struct with default parameters
func NewTime() *Time {
	tm := &Time{}
	tm.Defaults()
	return tm
}

// Defaults sets default values
func (tm *Time) Defaults() {
	tm.TimePerCyc = 0.001
}

// Reset resets the counters all back to zero
func (tm *Time) Reset() {
	tm.Time = 0
	tm.Cycle = 0
	tm.CycleTot = 0
	if tm.TimePerCyc == 0 {
		tm.Defaults()
	}
}

// RunStart starts a new run, keeping the total cycle count
func (tm *Time) RunStart() {
	tm.Cycle = 0
}

// CycleInc increments at the cycle level
func (tm *Time) CycleInc() {
	tm.Cycle++
	tm.CycleTot++
	tm.Time += tm.TimePerCyc
}
