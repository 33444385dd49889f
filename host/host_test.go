// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/emer/lifmodel/lif"
	"github.com/emer/lifmodel/stim"
	"github.com/emer/lifmodel/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quiet = log.New(io.Discard, "", 0)

func TestNewInvalidPeriod(t *testing.T) {
	_, err := New(lif.NewParams(), 0, WithLogger(quiet))
	assert.ErrorIs(t, err, lif.ErrInvalidConfig)
	_, err = New(lif.NewParams(), -time.Millisecond, WithLogger(quiet))
	assert.ErrorIs(t, err, lif.ErrInvalidConfig)
}

func TestRunTicks(t *testing.T) {
	lg := trace.NewLog(2000)
	var outs int
	h, err := New(lif.NewParams(), time.Millisecond,
		WithInput(&stim.Const{Amp: 400e-12}),
		WithTrace(lg),
		WithOutput(func(tick uint64, vm float64) { outs++ }),
		WithLogger(quiet))
	require.NoError(t, err)
	require.NoError(t, h.RunTicks(1000))

	ctx := context.Background()
	nrn, err := h.Neuron(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), nrn.Ticks)
	assert.Equal(t, 1000, outs)
	assert.Equal(t, 1000, lg.N)

	sm := lg.Summary()
	pr := lif.NewParams()
	assert.Greater(t, sm.Spikes, 10)
	assert.InEpsilon(t, 1/pr.RateFor(400e-12), sm.MeanISI, 0.1)
	assert.Equal(t, 400e-12, lg.Table.CellFloat("Istim", 0))
}

func TestTraceMatchesStep(t *testing.T) {
	pr := lif.NewParams()
	pr.Pulse.Amp = 300
	pr.Pulse.Dur = 20
	lg := trace.NewLog(500)
	src := &stim.Sine{Amp: 200e-12, Freq: 5}
	h, err := New(pr, 500*time.Microsecond, WithInput(src), WithTrace(lg), WithLogger(quiet))
	require.NoError(t, err)
	require.NoError(t, h.RunTicks(500))

	nrn, err := lif.NewNeuron(pr, 0.0005)
	require.NoError(t, err)
	for i := 0; i < 500; i++ {
		ip := pr.PulseCurrent(nrn)
		iIn := src.Current(uint64(i), float64(i)*0.0005)
		vm := pr.Step(nrn, iIn)
		require.Equal(t, vm, lg.Table.CellFloat("Vm", i), "tick %d", i)
		require.Equal(t, ip, lg.Table.CellFloat("Ipulse", i), "tick %d", i)
	}
}

func TestModifyAndPeriodWhileRunning(t *testing.T) {
	ticks := make(chan uint64, 1)
	h, err := New(lif.NewParams(), time.Millisecond,
		WithInput(&stim.Const{Amp: 400e-12}),
		WithOutput(func(tick uint64, vm float64) {
			select {
			case ticks <- tick:
			default:
			}
		}),
		WithLogger(quiet))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- h.Run(ctx) }()

	// wait for some ticks
	deadline := time.After(5 * time.Second)
	for n := 0; n < 5; {
		select {
		case <-ticks:
			n++
		case <-deadline:
			t.Fatal("no ticks from Run")
		}
	}
	assert.ErrorIs(t, h.RunTicks(1), ErrRunning)

	tctx, tcancel := context.WithTimeout(ctx, 5*time.Second)
	defer tcancel()
	require.NoError(t, h.Pause(tctx))
	before, err := h.Neuron(tctx)
	require.NoError(t, err)
	assert.Greater(t, before.Ticks, uint64(0))

	require.NoError(t, h.SetPeriod(tctx, 2*time.Millisecond))
	after, err := h.Neuron(tctx)
	require.NoError(t, err)
	assert.Equal(t, before.Vm, after.Vm)
	assert.Equal(t, before.Ticks, after.Ticks)
	assert.Equal(t, before.LastSpike, after.LastSpike)
	assert.Equal(t, 0.002, after.Period)
	assert.Equal(t, uint32(40), after.Steps)
	period, err := h.Period(tctx)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Millisecond, period)

	assert.ErrorIs(t, h.SetPeriod(tctx, 0), lif.ErrInvalidConfig)

	pr := lif.NewParams()
	pr.Memb.El = -65
	require.NoError(t, h.Modify(tctx, pr))
	reset, err := h.Neuron(tctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), reset.Ticks)
	assert.Equal(t, pr.Memb.ElV(), reset.Vm)
	assert.Equal(t, lif.NoSpikeTime, reset.LastSpike)
	got, err := h.Params(tctx)
	require.NoError(t, err)
	assert.Equal(t, -65.0, got.Memb.El)

	require.NoError(t, h.Resume(tctx))
	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop")
	}

	// stopped: requests are applied directly
	require.NoError(t, h.SetPeriod(context.Background(), time.Millisecond))
	nrn, err := h.Neuron(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.001, nrn.Period)
}

func TestRunTwice(t *testing.T) {
	h, err := New(lif.NewParams(), time.Millisecond, WithLogger(quiet))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- h.Run(ctx) }()

	// wait for the loop to start
	require.Eventually(t, func() bool {
		h.mu.Lock()
		defer h.mu.Unlock()
		return h.running
	}, 5*time.Second, time.Millisecond)
	assert.ErrorIs(t, h.Run(ctx), ErrRunning)
	cancel()
	assert.NoError(t, <-errc)
}
