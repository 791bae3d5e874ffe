// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package odespike is the overall repository for spiking neuron activation
functions whose membrane potential is driven by an ordinary differential
equation, implemented in the Go language (golang).

This top-level of the repository has no functional code -- everything is organized
into the following sub-repositories:

* vec: the fixed-length state vector of evolving membrane variables, with the
element-wise arithmetic used by the solvers.

* units: metric prefix conversion between the biological units parameters are
given in (mV, ms, nA, MΩ, nS) and the SI base units used in computation.

* ode: a single-step ODE solver with Euler, Midpoint, Heun and RK4 methods,
sub-stepping, and both exhaustive and gradual (stop-early) policies.

* membrane: the abstract spiking membrane (refractory period, threshold
pinning and deferred reset) and the concrete Leaky, Exponential, Adaptive
Exponential and Izhikevich integrate-and-fire models.

* spikesim: a driver that runs one membrane over a stimulus schedule,
tracks inter-spike-interval statistics, and records a per-cycle trace table.

* examples: these actually compile into runnable programs and provide the starting
point for your own simulations.  examples/spiketrain is the place to start: it
runs any membrane from a TOML config file and writes its trace as CSV.
*/
package odespike
