// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/emer/lifmodel/lif"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func execute(args ...string) (string, error) {
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fn, []byte(content), 0o644))
	return fn
}

func TestDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 1.0, cfg.PeriodMs)
	assert.Equal(t, time.Millisecond, cfg.Period())
	assert.Equal(t, 1000, cfg.Ticks)
	assert.Equal(t, "1s", cfg.Duration)
	assert.Equal(t, "none", cfg.Stim)
	assert.Equal(t, 1000000, cfg.TraceCap)
	assert.Equal(t, *lif.NewParams(), cfg.Params)
}

func TestLoadConfigFile(t *testing.T) {
	fn := writeFile(t, "lif.toml", `
PeriodMs = 0.5
Ticks = 200
Stim = "const:amp=300e-12"
Set = ["Vt (mV)=-55"]

[Params.Memb]
C = 250.0
`)
	cfg, err := LoadConfig(fn)
	require.NoError(t, err)
	assert.Equal(t, 500*time.Microsecond, cfg.Period())
	assert.Equal(t, 200, cfg.Ticks)
	assert.Equal(t, "const:amp=300e-12", cfg.Stim)
	assert.Equal(t, 250.0, cfg.Params.Memb.C)
	assert.Equal(t, 10.0, cfg.Params.Memb.Gl, "unset values keep defaults")

	require.NoError(t, cfg.ApplySets())
	assert.Equal(t, -55.0, cfg.Params.Spike.Thr)

	_, err = LoadConfig(writeFile(t, "bad.toml", "Bogus = 1\n"))
	assert.ErrorContains(t, err, "unknown keys")
	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	cfg.Params.Spike.Tr = 2
	cfg.Stim = "sine:amp=1e-10,freq=10"

	var b bytes.Buffer
	require.NoError(t, cfg.Save(&b))
	fn := writeFile(t, "saved.toml", b.String())
	got, err := LoadConfig(fn)
	require.NoError(t, err)
	assert.Equal(t, cfg.Params, got.Params)
	assert.Equal(t, cfg.Stim, got.Stim)

	var raw map[string]any
	_, err = toml.Decode(b.String(), &raw)
	require.NoError(t, err)
	assert.Contains(t, raw, "Params")
}

func TestRunCommand(t *testing.T) {
	out, err := execute("run", "--ticks", "500", "--stim", "const:amp=400e-12")
	require.NoError(t, err)
	assert.Contains(t, out, "Ticks: 500")
	assert.Contains(t, out, "Theory:")
	assert.NotContains(t, out, "Tick,")

	out, err = execute("run", "--ticks", "20", "--csv", "--set", "Ipulse (pA)=300")
	require.NoError(t, err)
	assert.NotContains(t, out, "Theory:", "no theory line with the pulse on")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 1+1+20, "summary, header and one row per tick")
}

func TestRunRealTime(t *testing.T) {
	out, err := execute("rt", "--duration", "50ms", "--period-ms", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Ticks:")
}

func TestCommandErrors(t *testing.T) {
	_, err := execute("run", "--stim", "bogus:amp=1")
	assert.Error(t, err)
	_, err = execute("run", "--set", "Nope (mV)=1")
	assert.ErrorIs(t, err, lif.ErrUnknownParam)
	_, err = execute("run", "--period-ms", "0")
	assert.ErrorIs(t, err, lif.ErrInvalidConfig)
	_, err = execute("rt", "--duration", "soon")
	assert.Error(t, err)
}

func TestParamsCommand(t *testing.T) {
	save := filepath.Join(t.TempDir(), "out.toml")
	out, err := execute("params", "--set", "Cm (pF)=300", "--save", save)
	require.NoError(t, err)
	for _, nm := range lif.KnobNames() {
		assert.Contains(t, out, nm)
	}
	assert.Contains(t, out, "Period (ms)")

	cfg, err := LoadConfig(save)
	require.NoError(t, err)
	assert.Equal(t, 300.0, cfg.Params.Memb.C)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute("version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "lifsim dev"), out)
}
