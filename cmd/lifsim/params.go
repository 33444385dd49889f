// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func paramsCmd(fl *flags) *cobra.Command {
	var save string
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Show the effective parameters, optionally saving the config as TOML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := fl.load(cmd)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprint(w, cfg.Params.KnobString())
			fmt.Fprintf(w, "%-14s %12g\t%s\n", "Period (ms)", cfg.PeriodMs, "host tick period")
			if save == "" {
				return nil
			}
			f, err := os.Create(save)
			if err != nil {
				return err
			}
			if err := cfg.Save(f); err != nil {
				f.Close()
				return err
			}
			logger.Printf("saved config to %s", save)
			return f.Close()
		},
	}
	cmd.Flags().StringVar(&save, "save", "", "write the effective config to this TOML file")
	return cmd
}
