// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lif

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goki/kigen/ordmap"
)

// Knob is one named, unit-bearing parameter, as shown to a user
type Knob struct {
	Name string `desc:"display name, including the unit in parentheses"`
	Desc string `desc:"one-line description"`
	Unit string `desc:"display unit"`

	Get func(pr *Params) float64     `view:"-" json:"-"`
	Set func(pr *Params, val float64) `view:"-" json:"-"`
}

// Knobs is the table of named parameters, in display order
var Knobs = ordmap.New[string, *Knob]()

func addKnob(name, desc, unit string, fld func(pr *Params) *float64) {
	Knobs.Add(name, &Knob{
		Name: name,
		Desc: desc,
		Unit: unit,
		Get:  func(pr *Params) float64 { return *fld(pr) },
		Set:  func(pr *Params, val float64) { *fld(pr) = val },
	})
}

func init() {
	addKnob("Ipulse (pA)", "Amplitude of applied current", "pA", func(pr *Params) *float64 { return &pr.Pulse.Amp })
	addKnob("Tpulse (ms)", "Pulse duration", "ms", func(pr *Params) *float64 { return &pr.Pulse.Dur })
	addKnob("Cm (pF)", "Membrane capacitance", "pF", func(pr *Params) *float64 { return &pr.Memb.C })
	addKnob("Gl (nS)", "Leak conductance", "nS", func(pr *Params) *float64 { return &pr.Memb.Gl })
	addKnob("El (mV)", "Leak reversal potential", "mV", func(pr *Params) *float64 { return &pr.Memb.El })
	addKnob("Vt (mV)", "Spiking threshold", "mV", func(pr *Params) *float64 { return &pr.Spike.Thr })
	addKnob("Vp (mV)", "Spiking peak", "mV", func(pr *Params) *float64 { return &pr.Spike.Peak })
	addKnob("Tr (ms)", "Refractory period", "ms", func(pr *Params) *float64 { return &pr.Spike.Tr })
	addKnob("Rate (Hz)", "Rate of integration", "Hz", func(pr *Params) *float64 { return &pr.Integ.Rate })
}

// KnobNames returns the knob names in display order
func KnobNames() []string {
	nms := make([]string, len(Knobs.Order))
	for i, kv := range Knobs.Order {
		nms[i] = kv.Key
	}
	return nms
}

func knobByName(name string) (*Knob, error) {
	kb, ok := Knobs.ValByKey(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	return kb, nil
}

// ByName returns the value of the named knob
func (pr *Params) ByName(name string) (float64, error) {
	kb, err := knobByName(name)
	if err != nil {
		return 0, err
	}
	return kb.Get(pr), nil
}

// SetByName parses val as a float and sets the named knob to it
func (pr *Params) SetByName(name, val string) error {
	kb, err := knobByName(name)
	if err != nil {
		return err
	}
	fv, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		return fmt.Errorf("lif: parameter %q: %w", name, err)
	}
	kb.Set(pr, fv)
	return nil
}

// Set applies an assignment of the form "Cm (pF)=250"
func (pr *Params) Set(assign string) error {
	name, val, ok := strings.Cut(assign, "=")
	if !ok {
		return fmt.Errorf("lif: parameter assignment %q must be of the form name=value", assign)
	}
	return pr.SetByName(strings.TrimSpace(name), val)
}

// KnobString returns a table of all knobs with their current values
func (pr *Params) KnobString() string {
	var b strings.Builder
	for _, kv := range Knobs.Order {
		kb := kv.Val
		fmt.Fprintf(&b, "%-14s %12g\t%s\n", kb.Name, kb.Get(pr), kb.Desc)
	}
	return b.String()
}
