// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package trace records the per-tick output of a neuron into an etable.Table
held in memory, and summarizes it.

The table is allocated once at its full capacity so that Record can be
called on every tick of a real-time loop without allocating.  Rows beyond
the capacity are counted in Dropped and otherwise ignored.
*/
package trace

import (
	"fmt"
	"io"
	"strconv"

	"github.com/c2h5oh/datasize"
	"github.com/emer/etable/v2/etable"
	"github.com/emer/etable/v2/etensor"
	"github.com/emer/etable/v2/minmax"
	"gonum.org/v1/gonum/stat"
)

// LogPrec is precision for saving float values in logs
const LogPrec = 6

// Log is a fixed-capacity per-tick trace
type Log struct {
	Table   *etable.Table `view:"no-inline" desc:"the trace table, allocated to full capacity"`
	N       int           `inactive:"+" desc:"number of rows recorded"`
	Dropped uint64        `inactive:"+" desc:"number of rows that did not fit"`
	Dur     float64       `inactive:"+" desc:"total simulated time covered by the recorded rows (s): the sum of their tick periods"`

	tick   *etensor.Int64
	tm     *etensor.Float64
	vm     *etensor.Float64
	iStim  *etensor.Float64
	iPulse *etensor.Float64
	spike  *etensor.Float64
}

// NewLog returns a new Log with room for capacity rows
func NewLog(capacity int) *Log {
	lg := &Log{}
	lg.Config(capacity)
	return lg
}

// Config (re)allocates the table for capacity rows and clears it
func (lg *Log) Config(capacity int) {
	if capacity < 0 {
		capacity = 0
	}
	dt := &etable.Table{}
	dt.SetMetaData("name", "LIFTrace")
	dt.SetMetaData("read-only", "true")
	dt.SetMetaData("precision", strconv.Itoa(LogPrec))

	sch := etable.Schema{
		{"Tick", etensor.INT64, nil, nil},
		{"Time", etensor.FLOAT64, nil, nil},
		{"Vm", etensor.FLOAT64, nil, nil},
		{"Istim", etensor.FLOAT64, nil, nil},
		{"Ipulse", etensor.FLOAT64, nil, nil},
		{"Spike", etensor.FLOAT64, nil, nil},
	}
	dt.SetFromSchema(sch, capacity)
	lg.Table = dt
	lg.tick = dt.ColByName("Tick").(*etensor.Int64)
	lg.tm = dt.ColByName("Time").(*etensor.Float64)
	lg.vm = dt.ColByName("Vm").(*etensor.Float64)
	lg.iStim = dt.ColByName("Istim").(*etensor.Float64)
	lg.iPulse = dt.ColByName("Ipulse").(*etensor.Float64)
	lg.spike = dt.ColByName("Spike").(*etensor.Float64)
	lg.Reset()
}

// Reset forgets all recorded rows, keeping the allocation
func (lg *Log) Reset() {
	lg.N = 0
	lg.Dropped = 0
	lg.Dur = 0
}

// Cap returns the number of rows the log can hold
func (lg *Log) Cap() int {
	return lg.Table.Rows
}

// Record stores one tick starting at time t and lasting dt (s),
// returning false if the log is full
func (lg *Log) Record(tick uint64, t, dt, vm, iStim, iPulse, spike float64) bool {
	if lg.N >= lg.Table.Rows {
		lg.Dropped++
		return false
	}
	i := lg.N
	lg.tick.Values[i] = int64(tick)
	lg.tm.Values[i] = t
	lg.vm.Values[i] = vm
	lg.iStim.Values[i] = iStim
	lg.iPulse.Values[i] = iPulse
	lg.spike.Values[i] = spike
	lg.Dur += dt
	lg.N++
	return true
}

// Vm returns the recorded membrane potentials, without copying
func (lg *Log) Vm() []float64 {
	return lg.vm.Values[:lg.N]
}

// SpikeTimes returns the times (s) of the recorded spikes
func (lg *Log) SpikeTimes() []float64 {
	var sts []float64
	for i := 0; i < lg.N; i++ {
		if lg.spike.Values[i] > 0 {
			sts = append(sts, lg.tm.Values[i])
		}
	}
	return sts
}

// MemSize returns the memory used by the table values
func (lg *Log) MemSize() datasize.ByteSize {
	return datasize.ByteSize(lg.Table.Rows * lg.Table.NumCols() * 8)
}

// Recorded returns a copy of the table holding only the recorded rows
func (lg *Log) Recorded() *etable.Table {
	dt := lg.Table.Clone()
	dt.SetNumRows(lg.N)
	return dt
}

// WriteCSV writes the recorded rows as comma-separated values with a header
func (lg *Log) WriteCSV(w io.Writer) error {
	return lg.Recorded().WriteCSV(w, etable.Comma, etable.Headers)
}

// Summary holds aggregate statistics of a trace
type Summary struct {
	Ticks   int        `desc:"number of recorded ticks"`
	Span    float64    `desc:"time between the first and last recorded tick (s)"`
	Spikes  int        `desc:"number of spikes"`
	Dur     float64    `desc:"simulated time covered by the recorded ticks (s), including the last one"`
	Rate    float64    `desc:"spikes per second over Dur"`
	MeanISI float64    `desc:"mean inter-spike interval (s), 0 if fewer than 2 spikes"`
	MeanVm  float64    `desc:"mean membrane potential (V)"`
	VmRange minmax.F64 `desc:"range of membrane potential (V)"`
	Dropped uint64     `desc:"ticks that did not fit in the log"`
}

func (sm *Summary) String() string {
	return fmt.Sprintf("Ticks: %d\tDur: %.4g s\tSpikes: %d\tRate: %.4g Hz\tMeanISI: %.4g s\tMeanVm: %.4g V\tVm: [%.4g, %.4g] V\tDropped: %d",
		sm.Ticks, sm.Dur, sm.Spikes, sm.Rate, sm.MeanISI, sm.MeanVm, sm.VmRange.Min, sm.VmRange.Max, sm.Dropped)
}

// Summary computes aggregate statistics over the recorded rows
func (lg *Log) Summary() Summary {
	sm := Summary{Ticks: lg.N, Dur: lg.Dur, Dropped: lg.Dropped}
	if lg.N == 0 {
		return sm
	}
	vms := lg.Vm()
	sm.MeanVm = stat.Mean(vms, nil)
	sm.VmRange.SetInfinity()
	for _, v := range vms {
		sm.VmRange.FitValInRange(v)
	}
	sm.Span = lg.tm.Values[lg.N-1] - lg.tm.Values[0]

	sts := lg.SpikeTimes()
	sm.Spikes = len(sts)
	if sm.Dur > 0 {
		sm.Rate = float64(sm.Spikes) / sm.Dur
	}
	if len(sts) > 1 {
		isis := make([]float64, len(sts)-1)
		for i := range isis {
			isis[i] = sts[i+1] - sts[i]
		}
		sm.MeanISI = stat.Mean(isis, nil)
	}
	return sm
}
