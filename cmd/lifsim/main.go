// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// lifsim runs a single leaky integrate-and-fire neuron, either in batch
// mode as fast as possible or in real time at the tick period.
package main

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	// Build variables set by ldflags
	buildVersion string
	buildCommit  string

	logger = log.New(os.Stderr, "[lifsim] ", log.LstdFlags)
)

// flags holds the command-line values that override the config file
type flags struct {
	config   string
	periodMs float64
	ticks    int
	duration string
	stim     string
	sets     []string
}

// load returns the config for cmd, with any flags that were set applied
func (fl *flags) load(cmd *cobra.Command) (*Config, error) {
	cfg, err := LoadConfig(fl.config)
	if err != nil {
		return nil, err
	}
	fs := cmd.Flags()
	if fs.Changed("period-ms") {
		cfg.PeriodMs = fl.periodMs
	}
	if fs.Changed("ticks") {
		cfg.Ticks = fl.ticks
	}
	if fs.Changed("duration") {
		cfg.Duration = fl.duration
	}
	if fs.Changed("stim") {
		cfg.Stim = fl.stim
	}
	cfg.Set = append(cfg.Set, fl.sets...)
	if err := cfg.ApplySets(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	fl := &flags{}
	root := &cobra.Command{
		Use:   "lifsim",
		Short: "Leaky integrate-and-fire neuron simulator",
		Long: `lifsim simulates a single leaky integrate-and-fire neuron driven by an
input current plus an internal square-wave pulse, stepped at a fixed host period.`,
		Version:       version(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&fl.config, "config", "", "TOML config file")
	pf.Float64Var(&fl.periodMs, "period-ms", 1, "host tick period (ms)")
	pf.StringVar(&fl.stim, "stim", "none", `input current, e.g. "const:amp=300e-12"`)
	pf.StringArrayVar(&fl.sets, "set", nil, `parameter assignment, e.g. "Cm (pF)=250" (repeatable)`)

	root.AddCommand(runCmd(fl))
	root.AddCommand(rtCmd(fl))
	root.AddCommand(paramsCmd(fl))
	root.AddCommand(versionCmd())
	return root
}

func version() string {
	v := buildVersion
	if v == "" {
		v = "dev"
	}
	if len(buildCommit) > 7 {
		return v + "-" + buildCommit[:7]
	}
	return v
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lifsim %s (%s %s/%s)\n", version(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}
