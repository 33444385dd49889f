// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lif

///////////////////////////////////////////////////////////////////////
//  params.go contains the model parameters for the lif neuron

// lif.Params contains all the parameters for a single leaky integrate-and-fire
// neuron driven by an input current plus an internal square-wave pulse.
// Values are stored in their natural display units (pA, ms, pF, nS, mV, Hz)
// and only converted to SI units inside Step.
type Params struct {
	Pulse PulseParams `view:"inline" desc:"internally generated square-wave pulse stimulus"`
	Memb  MembParams  `view:"inline" desc:"passive membrane constants"`
	Spike SpikeParams `view:"inline" desc:"spike threshold, peak and refractory period"`
	Integ IntegParams `view:"inline" desc:"numerical integration parameters"`
}

func (pr *Params) Defaults() {
	pr.Pulse.Defaults()
	pr.Memb.Defaults()
	pr.Spike.Defaults()
	pr.Integ.Defaults()
}

// NewParams returns a new Params with default values
func NewParams() *Params {
	pr := &Params{}
	pr.Defaults()
	return pr
}

//////////////////////////////////////////////////////////////////////////////////////
//  PulseParams

// PulseParams describe the 50% duty-cycle square pulse that is injected
// in addition to the external input current: on for Dur, off for Dur, etc.
type PulseParams struct {
	Amp float64 `def:"0" unit:"pA" desc:"amplitude of the applied pulse current (pA)"`
	Dur float64 `def:"500" unit:"ms" desc:"duration of each on and off half of the pulse cycle (ms)"`
}

func (pp *PulseParams) Defaults() {
	pp.Amp = 0
	pp.Dur = 500
}

// AmpA returns the pulse amplitude in amperes
func (pp *PulseParams) AmpA() float64 { return pp.Amp * 1e-12 }

//////////////////////////////////////////////////////////////////////////////////////
//  MembParams

// MembParams are the passive RC constants of the membrane
type MembParams struct {
	C  float64 `def:"200" min:"0" unit:"pF" desc:"membrane capacitance (pF)"`
	Gl float64 `def:"10" min:"0" unit:"nS" desc:"leak conductance (nS)"`
	El float64 `def:"-70" unit:"mV" desc:"leak reversal potential (mV) -- the resting potential, and the value Vm is clamped to during the refractory period"`
}

func (mp *MembParams) Defaults() {
	mp.C = 200
	mp.Gl = 10
	mp.El = -70
}

// CF returns the capacitance in farads
func (mp *MembParams) CF() float64 { return mp.C * 1e-12 }

// GlS returns the leak conductance in siemens
func (mp *MembParams) GlS() float64 { return mp.Gl * 1e-9 }

// ElV returns the leak reversal potential in volts
func (mp *MembParams) ElV() float64 { return mp.El * 1e-3 }

//////////////////////////////////////////////////////////////////////////////////////
//  SpikeParams

// SpikeParams determine when the neuron spikes and for how long it is
// held at rest afterward.
type SpikeParams struct {
	Thr  float64 `def:"-50" unit:"mV" desc:"spiking threshold (mV) -- Vm must be strictly above this to spike"`
	Peak float64 `def:"10" unit:"mV" desc:"spike peak (mV) -- Vm is set to this on the tick of the spike"`
	Tr   float64 `def:"5" min:"0" unit:"ms" desc:"refractory period (ms) following a spike, during which Vm is clamped to El"`
}

func (sp *SpikeParams) Defaults() {
	sp.Thr = -50
	sp.Peak = 10
	sp.Tr = 5
}

// ThrV returns the threshold in volts
func (sp *SpikeParams) ThrV() float64 { return sp.Thr * 1e-3 }

// PeakV returns the spike peak in volts
func (sp *SpikeParams) PeakV() float64 { return sp.Peak * 1e-3 }

// TrS returns the refractory period in seconds
func (sp *SpikeParams) TrS() float64 { return sp.Tr * 1e-3 }

//////////////////////////////////////////////////////////////////////////////////////
//  IntegParams

// IntegParams control the sub-stepping of the forward Euler integration.
// The host period is typically much coarser than what is needed for a
// stable solution, so each host tick is split into Steps sub-steps.
type IntegParams struct {
	Rate float64 `def:"20000" min:"0" unit:"Hz" desc:"desired rate of integration (Hz) -- should be at least the host tick rate, otherwise a single sub-step per tick is used"`
}

func (ip *IntegParams) Defaults() {
	ip.Rate = 20000
}
