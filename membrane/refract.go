// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package membrane

// Refractory is the refractory state: a tick counter and an in-refractory
// flag.  Count stays within [0, Periods] between ticks.
type Refractory struct {
	Periods int  `desc:"number of ticks input is ignored after a spike"`
	Count   int  `inactive:"+" desc:"ticks elapsed in the current refractory period"`
	In      bool `inactive:"+" desc:"true while in the refractory period"`
}

// Start enters the refractory period, if Periods > 0.
func (rf *Refractory) Start() {
	if rf.Periods > 0 {
		rf.In = true
		rf.Count = 0
	}
}

// Tick advances the counter by one tick and returns true if the stimulus
// must be ignored on this tick.  The refractory period ends on the first
// tick whose count exceeds Periods, and that tick's stimulus is used.
func (rf *Refractory) Tick() bool {
	if !rf.In {
		return false
	}
	rf.Count++
	if rf.Count > rf.Periods {
		rf.In = false
		rf.Count = 0
		return false
	}
	return true
}

// Reset clears the refractory state
func (rf *Refractory) Reset() {
	rf.In = false
	rf.Count = 0
}
