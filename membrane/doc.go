// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package membrane provides spiking activation functions whose membrane
potential evolves according to an ordinary differential equation,
integrated once per discrete time tick by the ode package.

A Membrane owns the common machinery: stimulus scaling, the refractory
state machine, the gradual (early-exit) integration that stops as soon as
the potential reaches the firing threshold, and the deferred reset at the
start of the following tick.  The specific models only supply a Dynamics
value with their differential equation and optional firing side effect:

  - LeakyIF: leaky integrate-and-fire
  - ExpIF: exponential integrate-and-fire
  - AdExpIF: adaptive exponential integrate-and-fire (potential + adaptation)
  - IzhikevichIF: Izhikevich quadratic model (potential + recovery)

Parameters are specified in biological units (mV, ms, MΩ, nA, nS) and
converted once to SI base units in Update.  Compute returns exactly 0 or 1.

A Membrane is not safe for concurrent use: use one per simulated neuron.
*/
package membrane
