// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package host drives a lif neuron from a fixed-period loop, standing in for
a real-time host process.

All neuron state is owned by the goroutine that ticks it.  While Run (or
RunTicks) is active, control requests such as Modify and SetPeriod are
handed off to that goroutine over a channel and applied between ticks, so
configuration is always serialized against the tick stream.  When the loop
is not running they are applied directly.
*/
package host

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/emer/lifmodel/lif"
	"github.com/emer/lifmodel/stim"
	"github.com/emer/lifmodel/trace"
)

// ErrRunning is returned when starting a loop on a host that is already running one
var ErrRunning = errors.New("host: already running")

// OutputFunc receives the membrane potential (V) produced at each tick.
// It is called on the tick goroutine and must not block.
type OutputFunc func(tick uint64, vm float64)

// Option configures a Host
type Option func(h *Host)

// WithInput sets the source of the external input current (default: none)
func WithInput(src stim.Source) Option {
	return func(h *Host) { h.input = src }
}

// WithTrace records every tick into lg
func WithTrace(lg *trace.Log) Option {
	return func(h *Host) { h.trace = lg }
}

// WithOutput delivers every output sample to fn
func WithOutput(fn OutputFunc) Option {
	return func(h *Host) { h.output = fn }
}

// WithLogger sets the logger (default: log.Default())
func WithLogger(lg *log.Logger) Option {
	return func(h *Host) { h.log = lg }
}

type request struct {
	fn    func() error
	reply chan error
}

// Host owns a neuron and its parameters and steps it once per period
type Host struct {
	params lif.Params
	nrn    lif.Neuron
	period time.Duration
	paused bool

	input  stim.Source
	trace  *trace.Log
	output OutputFunc
	log    *log.Logger

	ctrl      chan request
	periodChg bool

	mu      sync.Mutex
	running bool
	done    chan struct{}
}

// New returns a host with a neuron configured at rest for the given period
func New(pr *lif.Params, period time.Duration, opts ...Option) (*Host, error) {
	h := &Host{
		params: *pr,
		period: period,
		input:  &stim.Const{},
		log:    log.Default(),
		ctrl:   make(chan request),
	}
	for _, opt := range opts {
		opt(h)
	}
	if err := h.params.Configure(&h.nrn, period.Seconds()); err != nil {
		return nil, err
	}
	if h.trace != nil {
		h.log.Printf("trace capacity %d ticks (%s)", h.trace.Cap(), h.trace.MemSize().HumanReadable())
	}
	return h, nil
}

// Period returns the current tick period
func (h *Host) Period(ctx context.Context) (time.Duration, error) {
	var period time.Duration
	err := h.do(ctx, func() error {
		period = h.period
		return nil
	})
	return period, err
}

// start marks the host as running, returning the channel closed by stop
func (h *Host) start() (chan struct{}, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.running {
		return nil, ErrRunning
	}
	h.running = true
	h.done = make(chan struct{})
	return h.done, nil
}

func (h *Host) stop(done chan struct{}) {
	h.mu.Lock()
	h.running = false
	close(done)
	h.mu.Unlock()
}

// do runs fn on the tick goroutine if a loop is running, else directly
func (h *Host) do(ctx context.Context, fn func() error) error {
	for {
		h.mu.Lock()
		if !h.running {
			err := fn()
			h.mu.Unlock()
			return err
		}
		done := h.done
		h.mu.Unlock()

		req := request{fn: fn, reply: make(chan error, 1)}
		select {
		case h.ctrl <- req:
			select {
			case err := <-req.reply:
				return err
			case <-ctx.Done():
				return ctx.Err()
			}
		case <-done:
			// loop stopped before taking the request: apply it directly
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// serve applies one control request
func (h *Host) serve(req request) {
	req.reply <- req.fn()
}

// Modify replaces the parameters and resets the neuron to rest
func (h *Host) Modify(ctx context.Context, pr *lif.Params) error {
	npr := *pr
	return h.do(ctx, func() error {
		if err := npr.Configure(&h.nrn, h.period.Seconds()); err != nil {
			return err
		}
		h.params = npr
		h.log.Printf("parameters modified, neuron reset to %g V", h.nrn.Vm)
		return nil
	})
}

// SetPeriod changes the tick period without resetting the neuron
func (h *Host) SetPeriod(ctx context.Context, period time.Duration) error {
	return h.do(ctx, func() error {
		if err := h.params.SetPeriod(&h.nrn, period.Seconds()); err != nil {
			return err
		}
		h.period = period
		h.periodChg = true
		h.log.Printf("period changed to %v: %d sub-steps per tick", period, h.nrn.Steps)
		return nil
	})
}

// Pause stops stepping the neuron until Resume, without changing its state
func (h *Host) Pause(ctx context.Context) error {
	return h.do(ctx, func() error {
		h.paused = true
		return nil
	})
}

// Resume resumes stepping after Pause
func (h *Host) Resume(ctx context.Context) error {
	return h.do(ctx, func() error {
		h.paused = false
		return nil
	})
}

// Neuron returns a copy of the current neuron state
func (h *Host) Neuron(ctx context.Context) (lif.Neuron, error) {
	var nrn lif.Neuron
	err := h.do(ctx, func() error {
		nrn = h.nrn
		return nil
	})
	return nrn, err
}

// Params returns a copy of the current parameters
func (h *Host) Params(ctx context.Context) (lif.Params, error) {
	var pr lif.Params
	err := h.do(ctx, func() error {
		pr = h.params
		return nil
	})
	return pr, err
}

// tick steps the neuron once and delivers the output
func (h *Host) tick() {
	nrn := &h.nrn
	tk := nrn.Ticks
	iIn := h.input.Current(tk, float64(tk)*nrn.Period)
	iPulse := h.params.PulseCurrent(nrn)
	vm := h.params.Step(nrn, iIn)
	if h.trace != nil {
		if !h.trace.Record(tk, nrn.Time, nrn.Period, vm, iIn, iPulse, nrn.Spike) && h.trace.Dropped == 1 {
			h.log.Printf("trace full after %d ticks, further ticks are not recorded", h.trace.N)
		}
	}
	if h.output != nil {
		h.output(tk, vm)
	}
}

// Run ticks the neuron once per period until ctx is done, applying control
// requests between ticks.  It returns nil when ctx is canceled.
func (h *Host) Run(ctx context.Context) error {
	done, err := h.start()
	if err != nil {
		return err
	}
	defer h.stop(done)

	h.log.Printf("running at %v per tick, %d sub-steps per tick", h.period, h.nrn.Steps)
	tk := time.NewTicker(h.period)
	defer tk.Stop()
	for {
		select {
		case <-ctx.Done():
			h.log.Printf("stopped after %d ticks", h.nrn.Ticks)
			return nil
		case req := <-h.ctrl:
			h.serve(req)
			if h.periodChg {
				h.periodChg = false
				tk.Reset(h.period)
			}
		case <-tk.C:
			if !h.paused {
				h.tick()
			}
		}
	}
}

// RunTicks advances the neuron n ticks as fast as possible, ignoring Pause.
// Control requests from other goroutines are applied between ticks.
func (h *Host) RunTicks(n int) error {
	done, err := h.start()
	if err != nil {
		return err
	}
	defer h.stop(done)

	for i := 0; i < n; i++ {
		select {
		case req := <-h.ctrl:
			h.serve(req)
			h.periodChg = false
		default:
		}
		h.tick()
	}
	return nil
}
