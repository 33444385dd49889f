// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package lif implements a single leaky integrate-and-fire neuron advanced
once per tick of a fixed-period host loop.

Each Step takes exactly one of three branches: a refractory clamp to the leak
reversal potential, a spike that sets Vm to the spike peak, or Steps forward
Euler sub-steps of

	C dVm/dt = Ipulse + Iin + Gl (El - Vm)

Step does no allocation, I/O or locking, and runs in time proportional to
Steps, so it can be called from a hard real-time context. Configure and
SetPeriod are for the control path and must be serialized against Step
by the caller.
*/
package lif

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidConfig is returned when the host period is not a finite positive number
	ErrInvalidConfig = errors.New("lif: invalid configuration")

	// ErrUnknownParam is returned when a knob name is not in Knobs
	ErrUnknownParam = errors.New("lif: unknown parameter")
)

func checkPeriod(period float64) error {
	if !(period > 0) || math.IsInf(period, 1) {
		return fmt.Errorf("%w: host period must be > 0 s, got %g", ErrInvalidConfig, period)
	}
	return nil
}

// NewNeuron returns a neuron configured at rest for the given host period (s)
func NewNeuron(pr *Params, period float64) (*Neuron, error) {
	nrn := &Neuron{}
	if err := pr.Configure(nrn, period); err != nil {
		return nil, err
	}
	return nrn, nil
}

// Configure resets the neuron to rest for the given host period (s):
// Vm = El, no ticks, no spike, and the sub-step and pulse counts derived
// from the period.  On error the neuron is left untouched.
func (pr *Params) Configure(nrn *Neuron, period float64) error {
	if err := checkPeriod(period); err != nil {
		return err
	}
	*nrn = Neuron{
		Vm:        pr.Memb.ElV(),
		LastSpike: NoSpikeTime,
		SpikeTick: -1,
	}
	pr.setPeriod(nrn, period)
	return nil
}

// SetPeriod updates the host period (s) and recomputes Steps and PulseTicks,
// without touching Vm, the tick counter or the spike timer.
// On error the neuron is left untouched.
func (pr *Params) SetPeriod(nrn *Neuron, period float64) error {
	if err := checkPeriod(period); err != nil {
		return err
	}
	pr.setPeriod(nrn, period)
	return nil
}

func (pr *Params) setPeriod(nrn *Neuron, period float64) {
	nrn.Period = period
	nrn.Steps = ceilCount(period * pr.Integ.Rate)
	nrn.PulseTicks = ceilCount(pr.Pulse.Dur * 1e-3 / period)
}

// PulseOn returns true if the internal pulse is on at the neuron's current tick
func (pr *Params) PulseOn(nrn *Neuron) bool {
	pt := uint64(nrn.PulseTicks)
	return nrn.Ticks%(2*pt) < pt
}

// PulseCurrent returns the internal pulse current (A) at the neuron's current tick
func (pr *Params) PulseCurrent(nrn *Neuron) float64 {
	if pr.PulseOn(nrn) {
		return pr.Pulse.AmpA()
	}
	return 0
}

// Step advances the neuron by one host tick given the external input current
// iIn (A), and returns the new membrane potential (V).
func (pr *Params) Step(nrn *Neuron, iIn float64) float64 {
	nrn.Time = float64(nrn.Ticks) * nrn.Period
	iPulse := pr.PulseCurrent(nrn)
	el := pr.Memb.ElV()
	trs := pr.Spike.TrS()
	trs += roundTol * math.Max(math.Abs(nrn.Time), math.Abs(trs))
	nrn.Spike = 0

	switch {
	case nrn.SinceSpike() <= trs:
		nrn.Vm = el
		nrn.Branch = Refractory
	case nrn.Vm > pr.Spike.ThrV():
		nrn.Vm = pr.Spike.PeakV()
		nrn.LastSpike = nrn.Time
		nrn.SpikeTick = int64(nrn.Ticks)
		nrn.Spike = 1
		nrn.Branch = Spiked
	default:
		gl := pr.Memb.GlS()
		dt := nrn.Period / float64(nrn.Steps) / pr.Memb.CF()
		vm := nrn.Vm
		for i := uint32(0); i < nrn.Steps; i++ {
			vm += dt * (iPulse + iIn + gl*(el-vm))
		}
		nrn.Vm = vm
		nrn.Branch = Integrated
	}

	nrn.Ticks++
	return nrn.Vm
}
