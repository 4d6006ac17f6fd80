// Copyright ©2012 Dan Kortschak <dan.kortschak@adelaide.edu.au>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/biogo/trees/experiment"
)

func runCommand(logOpts *logOptions) *cobra.Command {
	var (
		cfgPath     string
		out         string
		metricsAddr string
		flagCfg     = experiment.DefaultConfig()
		deleteMode  string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "run a randomised insert/delete experiment and write CSV results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logOpts.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			cfg := experiment.DefaultConfig()
			if cfgPath != "" {
				cfg, err = experiment.LoadConfig(cfgPath)
				if err != nil {
					return err
				}
			}
			flagCfg.Delete = experiment.DeleteMode(deleteMode)
			override(cmd, &cfg, flagCfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			runner := experiment.NewRunner(log, experiment.NewMetrics(reg))
			if metricsAddr != "" {
				srv := &http.Server{
					Addr:              metricsAddr,
					Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
					ReadHeaderTimeout: 5 * time.Second,
				}
				go func() {
					err := srv.ListenAndServe()
					if err != nil && !errors.Is(err, http.ErrServerClosed) {
						log.Error().Err(err).Str("addr", metricsAddr).Msg("metrics server failed")
					}
				}()
				defer func() {
					ctx, cancel := context.WithTimeout(context.Background(), time.Second)
					defer cancel()
					srv.Shutdown(ctx)
				}()
				log.Info().Str("addr", metricsAddr).Msg("serving metrics")
			}

			points, err := runner.Run(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			if err := experiment.WriteCSV(w, points); err != nil {
				return fmt.Errorf("error writing results: %w", err)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfgPath, "config", "", "YAML experiment configuration; explicitly set flags take precedence")
	f.StringVar(&out, "out", "-", "CSV output file, - for stdout")
	f.StringVar(&metricsAddr, "metrics-addr", "", "address to serve prometheus metrics on while running")
	f.StringVar(&flagCfg.Strategy, "strategy", flagCfg.Strategy, fmt.Sprintf("tree strategy %v", experiment.Strategies()))
	f.IntVar(&flagCfg.From, "from", flagCfg.From, "smallest tree size")
	f.IntVar(&flagCfg.To, "to", flagCfg.To, "largest tree size")
	f.IntVar(&flagCfg.Step, "step", flagCfg.Step, "tree size increment")
	f.IntVar(&flagCfg.Reps, "reps", flagCfg.Reps, "trials per size")
	f.IntVar(&flagCfg.Workers, "workers", flagCfg.Workers, "concurrent trials")
	f.Int64Var(&flagCfg.Seed, "seed", flagCfg.Seed, "random seed")
	f.StringVar(&deleteMode, "delete", string(flagCfg.Delete), "keys to delete (inserted or random)")
	return cmd
}

// override copies the fields of flags whose flag was set on cmd into cfg.
func override(cmd *cobra.Command, cfg *experiment.Config, flags experiment.Config) {
	set := cmd.Flags().Changed
	if set("strategy") {
		cfg.Strategy = flags.Strategy
	}
	if set("from") {
		cfg.From = flags.From
	}
	if set("to") {
		cfg.To = flags.To
	}
	if set("step") {
		cfg.Step = flags.Step
	}
	if set("reps") {
		cfg.Reps = flags.Reps
	}
	if set("workers") {
		cfg.Workers = flags.Workers
	}
	if set("seed") {
		cfg.Seed = flags.Seed
	}
	if set("delete") {
		cfg.Delete = flags.Delete
	}
}
