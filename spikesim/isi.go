// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spikesim

// ISIStats tracks the inter-spike interval (ISI) of a spike train, in cycles,
// and a running average of it used to estimate the firing rate.
type ISIStats struct {

	// time constant for integrating the spiking interval in estimating spiking rate
	ISITau float64 `def:"5" min:"1"`

	// current inter-spike-interval -- counts up since last spike.  -1 before the first spike.
	ISI float64 `inactive:"+"`

	// average inter-spike-interval -- average time interval between spikes.  -1 initially, -2 after the first spike, then the running average.
	ISIAvg float64 `inactive:"+"`

	// most recent complete inter-spike-interval, 0 until two spikes have occurred
	LastISI int `inactive:"+"`

	// number of spikes since Init
	SpikeCount int `inactive:"+"`

	// rate = 1 / tau
	ISIDt float64 `view:"-" json:"-" toml:"-"`
}

func (is *ISIStats) Defaults() {
	is.ISITau = 5
	is.Update()
}

// Update must be called after any changes to parameters
func (is *ISIStats) Update() {
	is.ISIDt = 1 / is.ISITau
}

// Init resets the statistics to the state before any spikes
func (is *ISIStats) Init() {
	is.ISI = -1
	is.ISIAvg = -1
	is.LastISI = 0
	is.SpikeCount = 0
}

// AvgFmISI updates the ISIAvg from given isi
func (is *ISIStats) AvgFmISI(isi float64) {
	switch {
	case is.ISIAvg <= 0:
		is.ISIAvg = isi
	case isi < 0.8*is.ISIAvg:
		is.ISIAvg = isi // if significantly less than we take that
	default: // integrate on slower
		is.ISIAvg += is.ISIDt * (isi - is.ISIAvg)
	}
}

// Cycle records one cycle, with spike true if the membrane fired on it.
func (is *ISIStats) Cycle(spike bool) {
	if spike {
		is.SpikeCount++
		if is.ISIAvg == -1 {
			is.ISIAvg = -2
		} else if is.ISI >= 0 {
			is.LastISI = int(is.ISI) + 1
			is.AvgFmISI(is.ISI + 1)
		}
		is.ISI = 0
		return
	}
	if is.ISI >= 0 {
		is.ISI++
	}
	// long silences pull the average up before the next spike arrives
	if is.ISIAvg >= 0 && is.ISI > 0 && is.ISI > 1.2*is.ISIAvg {
		is.AvgFmISI(is.ISI)
	}
}

// Rate returns the firing rate in Hz estimated from ISIAvg, given the
// duration of one cycle in seconds.  0 until an average is available.
func (is *ISIStats) Rate(timePerCyc float64) float64 {
	if is.ISIAvg <= 0 || timePerCyc <= 0 {
		return 0
	}
	return 1 / (is.ISIAvg * timePerCyc)
}
