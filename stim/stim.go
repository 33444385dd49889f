// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package stim provides external input current waveforms for driving a
neuron from a host loop.  All currents are in amperes and all times in
seconds of simulation time.
*/
package stim

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Source generates the input current for one tick.
// t is the simulation time of the tick, in seconds.
type Source interface {
	Current(tick uint64, t float64) float64
}

// Func adapts an ordinary function to a Source
type Func func(tick uint64, t float64) float64

func (fn Func) Current(tick uint64, t float64) float64 { return fn(tick, t) }

// Const is a constant current
type Const struct {
	Amp float64 `desc:"current (A)"`
}

func (cs *Const) Current(tick uint64, t float64) float64 { return cs.Amp }

// Step is a current of Amp between Start (inclusive) and End (exclusive), else Base.
// End <= Start means the step never turns off.
type Step struct {
	Base  float64 `desc:"current outside of the step (A)"`
	Amp   float64 `desc:"current during the step (A)"`
	Start float64 `desc:"onset time (s)"`
	End   float64 `desc:"offset time (s)"`
}

func (st *Step) Current(tick uint64, t float64) float64 {
	if t >= st.Start && (st.End <= st.Start || t < st.End) {
		return st.Amp
	}
	return st.Base
}

// Sine is Base + Amp * sin(2 pi Freq t + Phase)
type Sine struct {
	Base  float64 `desc:"offset current (A)"`
	Amp   float64 `desc:"amplitude (A)"`
	Freq  float64 `desc:"frequency (Hz)"`
	Phase float64 `desc:"phase (radians)"`
}

func (sn *Sine) Current(tick uint64, t float64) float64 {
	return sn.Base + sn.Amp*math.Sin(2*math.Pi*sn.Freq*t+sn.Phase)
}

// Ramp rises linearly from From at time 0 to To at time Dur, and holds To after that
type Ramp struct {
	From float64 `desc:"starting current (A)"`
	To   float64 `desc:"final current (A)"`
	Dur  float64 `desc:"ramp duration (s)"`
}

func (rp *Ramp) Current(tick uint64, t float64) float64 {
	if rp.Dur <= 0 || t >= rp.Dur {
		return rp.To
	}
	if t <= 0 {
		return rp.From
	}
	return rp.From + (rp.To-rp.From)*t/rp.Dur
}

// Parse builds a Source from an expression of the form "kind:key=val,key=val".
// Kinds and keys:
//
//	const:amp
//	step:base,amp,start,end
//	sine:base,amp,freq,phase
//	ramp:from,to,dur
//
// An empty expression or "none" is a zero current.
func Parse(expr string) (Source, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" || expr == "none" {
		return &Const{}, nil
	}
	kind, args, _ := strings.Cut(expr, ":")
	vals := map[string]float64{}
	if args != "" {
		for _, kv := range strings.Split(args, ",") {
			k, v, ok := strings.Cut(kv, "=")
			if !ok {
				return nil, fmt.Errorf("stim: %q: argument %q must be key=value", expr, kv)
			}
			fv, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, fmt.Errorf("stim: %q: %w", expr, err)
			}
			vals[strings.TrimSpace(k)] = fv
		}
	}
	var src Source
	var keys []string
	switch strings.TrimSpace(kind) {
	case "const":
		src = &Const{Amp: vals["amp"]}
		keys = []string{"amp"}
	case "step":
		src = &Step{Base: vals["base"], Amp: vals["amp"], Start: vals["start"], End: vals["end"]}
		keys = []string{"base", "amp", "start", "end"}
	case "sine":
		src = &Sine{Base: vals["base"], Amp: vals["amp"], Freq: vals["freq"], Phase: vals["phase"]}
		keys = []string{"base", "amp", "freq", "phase"}
	case "ramp":
		src = &Ramp{From: vals["from"], To: vals["to"], Dur: vals["dur"]}
		keys = []string{"from", "to", "dur"}
	default:
		return nil, fmt.Errorf("stim: unknown kind %q", kind)
	}
	for k := range vals {
		if !contains(keys, k) {
			return nil, fmt.Errorf("stim: %q: unknown key %q for %s", expr, k, kind)
		}
	}
	return src, nil
}

func contains(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}
