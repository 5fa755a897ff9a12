// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"rivaas.dev/preflight/config"
	"rivaas.dev/preflight/metrics"
	"rivaas.dev/preflight/server"
	"rivaas.dev/preflight/validation"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var (
		addr     string
		noBanner bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the validation engine over HTTP",
		Long: `Serve exposes the engine over HTTP until interrupted:

  POST /v1/validate/{shape}  report violations as JSON
  POST /v1/fix/{shape}       return the repaired body, or a 422 problem
  GET  /v1/limits            the limits catalog
  GET  /healthz              liveness
  GET  /metrics              Prometheus scrape (metrics.provider: prometheus)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := root.settings
			if addr != "" {
				s.Server.Addr = addr
			}
			logger := root.logger.Logger()

			rec, err := newRecorder(s, logger, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			var vopts []validation.Option
			srvOpts := []server.Option{
				server.WithLogger(logger),
				server.WithMaxBody(s.Server.MaxBody),
				server.WithShutdownTimeout(s.Server.ShutdownTimeout),
			}
			if rec != nil {
				vopts = append(vopts, validation.WithRecorder(rec))
				srvOpts = append(srvOpts, server.WithMetrics(rec))
			}

			v, err := root.newValidator(vopts...)
			if err != nil {
				return err
			}
			srv, err := server.New(v, srvOpts...)
			if err != nil {
				return err
			}

			if !noBanner {
				d := newDisplay(cmd.OutOrStdout(), root.noColor)
				if err = d.print(d.banner(s)); err != nil {
					return err
				}
			}

			return srv.Run(cmd.Context(), s.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	cmd.Flags().BoolVar(&noBanner, "no-banner", false, "do not print the startup banner")

	return cmd
}

// newRecorder builds the metrics recorder for the configured provider. It
// returns nil when metrics are disabled.
func newRecorder(s *config.Settings, logger *slog.Logger, stdout io.Writer) (*metrics.Recorder, error) {
	provider, enabled, err := metrics.ParseProvider(s.Metrics.Provider)
	if err != nil || !enabled {
		return nil, err
	}

	opts := []metrics.Option{
		metrics.WithServiceName(s.Metrics.Service),
		metrics.WithServiceVersion(Version),
		metrics.WithLogger(logger),
	}
	switch provider {
	case metrics.PrometheusProvider:
		opts = append(opts, metrics.WithPrometheus())
	case metrics.OTLPProvider:
		opts = append(opts, metrics.WithOTLP(s.Metrics.Endpoint))
	case metrics.StdoutProvider:
		opts = append(opts, metrics.WithStdoutWriter(stdout))
	}

	return metrics.New(opts...)
}
