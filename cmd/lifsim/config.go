// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/emer/emergent/v2/econfig"
	"github.com/emer/lifmodel/lif"
)

// Config has the settings for a lifsim run.  Values come from the defaults
// below, then the --config TOML file, then command-line flags.
type Config struct {

	// host tick period, in milliseconds
	PeriodMs float64 `default:"1"`

	// number of ticks to simulate in batch mode
	Ticks int `default:"1000"`

	// duration of a real-time run
	Duration string `default:"1s"`

	// input current stimulus, e.g. "const:amp=300e-12" or "step:amp=300e-12,start=0.1,end=0.4"
	Stim string `default:"none"`

	// maximum number of ticks kept in the trace
	TraceCap int `default:"1000000"`

	// knob assignments applied on top of Params, e.g. "Cm (pF)=250"
	Set []string

	// neuron parameters
	Params lif.Params
}

// Defaults sets the default values
func (cfg *Config) Defaults() error {
	if err := econfig.SetFromDefaults(cfg); err != nil {
		return err
	}
	cfg.Params.Defaults()
	return nil
}

// Period returns the tick period
func (cfg *Config) Period() time.Duration {
	return time.Duration(cfg.PeriodMs * float64(time.Millisecond))
}

// RunDuration returns the parsed Duration
func (cfg *Config) RunDuration() (time.Duration, error) {
	d, err := time.ParseDuration(cfg.Duration)
	if err != nil {
		return 0, fmt.Errorf("duration %q: %w", cfg.Duration, err)
	}
	return d, nil
}

// ApplySets applies the Set knob assignments to Params
func (cfg *Config) ApplySets() error {
	for _, as := range cfg.Set {
		if err := cfg.Params.Set(as); err != nil {
			return err
		}
	}
	return nil
}

// LoadConfig returns the default config overlaid with the given TOML file, if any
func LoadConfig(file string) (*Config, error) {
	cfg := &Config{}
	if err := cfg.Defaults(); err != nil {
		return nil, err
	}
	if file == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(file, cfg)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", file, err)
	}
	if und := md.Undecoded(); len(und) > 0 {
		return nil, fmt.Errorf("loading config %s: unknown keys %v", file, und)
	}
	logger.Printf("loaded config from %s", file)
	return cfg, nil
}

// Save writes the config as TOML
func (cfg *Config) Save(w io.Writer) error {
	return toml.NewEncoder(w).Encode(cfg)
}
