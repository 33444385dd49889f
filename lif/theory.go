// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lif

import "math"

// Closed-form results for the continuous-time model with constant input,
// ignoring the pulse.  Useful as a reference for the discretized Step.

// Tau returns the membrane time constant C / Gl, in seconds
func (pr *Params) Tau() float64 {
	return pr.Memb.CF() / pr.Memb.GlS()
}

// SteadyVm returns the equilibrium potential (V) for constant input current iIn (A)
func (pr *Params) SteadyVm(iIn float64) float64 {
	return pr.Memb.ElV() + iIn/pr.Memb.GlS()
}

// Rheobase returns the input current (A) at which SteadyVm reaches threshold.
// Currents must be strictly above this to ever spike.
func (pr *Params) Rheobase() float64 {
	return pr.Memb.GlS() * (pr.Spike.ThrV() - pr.Memb.ElV())
}

// RateFor returns the firing rate (Hz) of the continuous-time model for
// constant input current iIn (A): the inverse of the refractory period
// plus the time to charge from El to threshold.
func (pr *Params) RateFor(iIn float64) float64 {
	if iIn <= pr.Rheobase() {
		return 0
	}
	vinf := pr.SteadyVm(iIn)
	el := pr.Memb.ElV()
	isi := pr.Spike.TrS() + pr.Tau()*math.Log((vinf-el)/(vinf-pr.Spike.ThrV()))
	return 1 / isi
}
