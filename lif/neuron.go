// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lif

import (
	"fmt"
	"math"

	"github.com/goki/ki/kit"
)

// NoSpikeTime is the LastSpike value of a freshly configured neuron:
// far enough in the past that the first ticks are never refractory.
const NoSpikeTime = -1000.0

// lif.Neuron holds all of the integrator state for one neuron.
// It is owned by whoever calls Step, and has no internal synchronization:
// Configure and SetPeriod must never run concurrently with Step.
type Neuron struct {

	// membrane potential, in volts
	Vm float64

	// absolute simulation time (s) of the most recent spike, NoSpikeTime if none
	LastSpike float64

	// tick index of the most recent spike, -1 if none.  Read-out only: refractory
	// gating uses LastSpike.
	SpikeTick int64

	// number of ticks stepped since the last Configure
	Ticks uint64

	// host tick period, in seconds
	Period float64

	// number of forward Euler sub-steps per tick: ceil(Period * Integ.Rate), at least 1
	Steps uint32

	// number of ticks in each half of the pulse cycle: ceil(Pulse.Dur / Period), at least 1
	PulseTicks uint32

	// simulation time (s) of the last step -- Ticks * Period, for display only
	Time float64

	// which branch of the update the last step took
	Branch Branches

	// 1 if the last step was a spike, else 0
	Spike float64
}

func (nrn *Neuron) String() string {
	return fmt.Sprintf("Vm: %g V\tTicks: %d\tLastSpike: %g s\tPeriod: %g s\tSteps: %d\tPulseTicks: %d", nrn.Vm, nrn.Ticks, nrn.LastSpike, nrn.Period, nrn.Steps, nrn.PulseTicks)
}

// HasSpiked returns true if the neuron has spiked since the last Configure
func (nrn *Neuron) HasSpiked() bool {
	return nrn.SpikeTick >= 0
}

// SinceSpike returns the time (s) elapsed between the last spike and the
// current tick, Ticks * Period - LastSpike, at the current Period.
func (nrn *Neuron) SinceSpike() float64 {
	return float64(nrn.Ticks)*nrn.Period - nrn.LastSpike
}

// roundTol is the relative rounding slack allowed when a ratio of times is
// turned into a count, or an elapsed time is compared against a period,
// so that e.g. 0.9e-3 / 0.0003 gives 3 ticks and not 4.
const roundTol = 1e-12

// ceilCount returns ceil(x) as a count clamped to [1, MaxUint32].
// NaN and negative values give 1.
func ceilCount(x float64) uint32 {
	if math.IsInf(x, 1) {
		return math.MaxUint32
	}
	c := math.Ceil(x - math.Abs(x)*roundTol)
	switch {
	case !(c >= 1):
		return 1
	case c >= math.MaxUint32:
		return math.MaxUint32
	}
	return uint32(c)
}

//////////////////////////////////////////////////////////////////////////////////////
//  Branches

// Branches are the mutually exclusive paths a single Step can take
type Branches int32

//go:generate stringer -type=Branches

var KiT_Branches = kit.Enums.AddEnum(BranchesN, kit.NotBitFlag, nil)

func (ev Branches) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Branches) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// NoBranch means no step has been taken since Configure
	NoBranch Branches = iota

	// Refractory means Vm was clamped to El because the last spike was
	// within the refractory period
	Refractory

	// Spiked means Vm was above threshold and was set to the spike peak
	Spiked

	// Integrated means the forward Euler sub-steps were run
	Integrated

	BranchesN
)
