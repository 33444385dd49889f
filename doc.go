// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package lifmodel is the overall repository for a single leaky integrate-and-fire
(LIF) neuron model, stepped once per tick of a fixed-period host loop.

This top-level of the repository has no functional code -- everything is organized
into the following sub-repositories:

* lif: the neuron itself -- parameters in display units, the per-tick Step with
forward-Euler sub-stepping, refractory clamp and spike, the internal square-wave
pulse, the named parameter knobs, and closed-form reference rates.

* stim: sources of external input current (constant, step, sine, ramp).

* trace: an etable.Table log of every tick, with CSV output and summary statistics.

* host: the fixed-period loop that owns a neuron and serializes parameter and
period changes against the tick stream.

* cmd/lifsim: command-line front end for batch and real-time runs.

* examples: these actually compile into runnable programs.  examples/ficurve
sweeps the input current and compares simulated to analytical firing rates.
*/
package lifmodel
