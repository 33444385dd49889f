// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lif

import (
	"errors"
	"strings"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestKnobNames(t *testing.T) {
	cor := []string{"Ipulse (pA)", "Tpulse (ms)", "Cm (pF)", "Gl (nS)", "El (mV)", "Vt (mV)", "Vp (mV)", "Tr (ms)", "Rate (Hz)"}
	nms := KnobNames()
	if len(nms) != len(cor) {
		t.Fatalf("knobs: %v, want %v", nms, cor)
	}
	for i := range cor {
		if nms[i] != cor[i] {
			t.Errorf("knob %d: %q, want %q", i, nms[i], cor[i])
		}
	}
}

func TestKnobDefaults(t *testing.T) {
	pr := NewParams()
	cor := []float64{0, 500, 200, 10, -70, -50, 10, 5, 20000}
	vals := make([]float64, len(cor))
	for i, nm := range KnobNames() {
		v, err := pr.ByName(nm)
		if err != nil {
			t.Fatal(err)
		}
		vals[i] = v
	}
	if !floats.Equal(vals, cor) {
		t.Errorf("defaults: %v, want %v", vals, cor)
	}
}

func TestSetByName(t *testing.T) {
	pr := NewParams()
	if err := pr.SetByName("Cm (pF)", " 250 "); err != nil {
		t.Fatal(err)
	}
	if pr.Memb.C != 250 {
		t.Errorf("Memb.C: %v, want 250", pr.Memb.C)
	}
	if err := pr.Set("Rate (Hz) = 1e3"); err != nil {
		t.Fatal(err)
	}
	if pr.Integ.Rate != 1000 {
		t.Errorf("Integ.Rate: %v, want 1000", pr.Integ.Rate)
	}
	if err := pr.Set("Ipulse (pA)=-40"); err != nil {
		t.Fatal(err)
	}
	if pr.Pulse.Amp != -40 {
		t.Errorf("Pulse.Amp: %v, want -40", pr.Pulse.Amp)
	}

	if err := pr.SetByName("Cm", "1"); !errors.Is(err, ErrUnknownParam) {
		t.Errorf("unknown name: err: %v, want ErrUnknownParam", err)
	}
	if _, err := pr.ByName("Vm"); !errors.Is(err, ErrUnknownParam) {
		t.Errorf("unknown name: err: %v, want ErrUnknownParam", err)
	}
	err := pr.SetByName("Gl (nS)", "ten")
	if err == nil || errors.Is(err, ErrUnknownParam) {
		t.Errorf("bad value: err: %v", err)
	}
	if pr.Memb.Gl != 10 {
		t.Errorf("bad value changed Gl: %v", pr.Memb.Gl)
	}
	if err := pr.Set("Gl (nS)"); err == nil {
		t.Error("assignment without = should fail")
	}
}

func TestKnobString(t *testing.T) {
	pr := NewParams()
	s := pr.KnobString()
	if n := strings.Count(s, "\n"); n != len(KnobNames()) {
		t.Errorf("lines: %d, want %d:\n%s", n, len(KnobNames()), s)
	}
	if !strings.Contains(s, "Leak conductance") {
		t.Errorf("missing description:\n%s", s)
	}
}
