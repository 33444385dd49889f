// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/emer/lifmodel/host"
	"github.com/emer/lifmodel/lif"
	"github.com/emer/lifmodel/stim"
	"github.com/emer/lifmodel/trace"
	"github.com/spf13/cobra"
)

func runCmd(fl *flags) *cobra.Command {
	var csv bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate a fixed number of ticks as fast as possible",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := fl.load(cmd)
			if err != nil {
				return err
			}
			return RunBatch(cfg, cmd.OutOrStdout(), csv)
		},
	}
	cmd.Flags().IntVar(&fl.ticks, "ticks", 1000, "number of ticks to simulate")
	cmd.Flags().BoolVar(&csv, "csv", false, "write the full trace as CSV after the summary")
	return cmd
}

func rtCmd(fl *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rt",
		Short: "Run in real time, one tick per period, until the duration elapses or interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := fl.load(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return RunRealTime(ctx, cfg, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&fl.duration, "duration", "1s", "run duration, e.g. 500ms or 10s")
	return cmd
}

// newHost returns a host for cfg recording into a trace of at most ticks entries
func newHost(cfg *Config, ticks int) (*host.Host, *trace.Log, stim.Source, error) {
	src, err := stim.Parse(cfg.Stim)
	if err != nil {
		return nil, nil, nil, err
	}
	if ticks > cfg.TraceCap {
		ticks = cfg.TraceCap
	}
	lg := trace.NewLog(ticks)
	h, err := host.New(&cfg.Params, cfg.Period(), host.WithInput(src), host.WithTrace(lg), host.WithLogger(logger))
	if err != nil {
		return nil, nil, nil, err
	}
	return h, lg, src, nil
}

// RunBatch runs cfg.Ticks ticks and writes the summary, and the trace if csv
func RunBatch(cfg *Config, w io.Writer, csv bool) error {
	if cfg.Ticks < 0 {
		return fmt.Errorf("ticks must be >= 0, got %d", cfg.Ticks)
	}
	h, lg, src, err := newHost(cfg, cfg.Ticks)
	if err != nil {
		return err
	}
	if err := h.RunTicks(cfg.Ticks); err != nil {
		return err
	}
	report(w, &cfg.Params, lg, src)
	if csv {
		return lg.WriteCSV(w)
	}
	return nil
}

// RunRealTime runs at the configured period for cfg.Duration or until ctx is done
func RunRealTime(ctx context.Context, cfg *Config, w io.Writer) error {
	dur, err := cfg.RunDuration()
	if err != nil {
		return err
	}
	est := 1
	if per := cfg.Period(); per > 0 {
		est += int(dur / per)
	}
	h, lg, src, err := newHost(cfg, est)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, dur)
	defer cancel()
	if err := h.Run(ctx); err != nil {
		return err
	}
	report(w, &cfg.Params, lg, src)
	return nil
}

// report writes the trace summary, plus the analytical rate for a constant input
func report(w io.Writer, pr *lif.Params, lg *trace.Log, src stim.Source) {
	sm := lg.Summary()
	fmt.Fprintln(w, sm.String())
	cs, ok := src.(*stim.Const)
	if !ok || pr.Pulse.Amp != 0 {
		return
	}
	fmt.Fprintf(w, "Theory:\tRate: %.4g Hz\tRheobase: %.4g pA\tTau: %.4g ms\n", pr.RateFor(cs.Amp), pr.Rheobase()*1e12, pr.Tau()*1e3)
}
