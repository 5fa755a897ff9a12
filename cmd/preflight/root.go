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
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rivaas.dev/preflight/config"
	"rivaas.dev/preflight/logging"
	"rivaas.dev/preflight/validation"
)

// errViolations signals exit status 1: the input was read but did not
// pass validation. It is never printed.
var errViolations = errors.New("violations found")

// rootOptions holds the global flags and what PersistentPreRunE builds
// from them.
type rootOptions struct {
	configFile string
	logLevel   string
	logFormat  string
	noColor    bool

	settings *config.Settings
	logger   *logging.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "preflight",
		Short: "Validate and repair Notion API requests before they are sent",
		Long: `preflight checks page, database and block request bodies against the
platform's content limits.

Over-long rich text can be split into compliant segments automatically.
Other violations are reported with the exact field path so the request
can be fixed before the API rejects it.`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: opts.load,
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if opts.logger != nil {
				_ = opts.logger.Shutdown(cmd.Context())
			}
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "config file (YAML, JSON or TOML)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&opts.logFormat, "log-format", "", "log format: json, text, console")
	flags.BoolVar(&opts.noColor, "no-color", os.Getenv("NO_COLOR") != "", "disable colored console logs")

	cmd.SetVersionTemplate("preflight {{.Version}}\n")
	cmd.AddCommand(
		newCheckCmd(opts),
		newFixCmd(opts),
		newLimitsCmd(opts),
		newServeCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)

	return cmd
}

// load reads settings, applies flag overrides and builds the logger.
// Logs go to the command's stderr so stdout stays machine readable.
func (o *rootOptions) load(cmd *cobra.Command, _ []string) error {
	var sources []config.Option
	if o.configFile != "" {
		sources = append(sources, config.WithFile(o.configFile))
	}
	sources = append(sources, config.WithEnv(config.EnvPrefix))

	s, err := config.LoadSettings(cmd.Context(), sources...)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if o.logLevel != "" {
		s.Logging.Level = o.logLevel
	}
	if o.logFormat != "" {
		s.Logging.Format = o.logFormat
	}
	if err = s.Validate(); err != nil {
		return err
	}

	level, err := logging.ParseLevel(s.Logging.Level)
	if err != nil {
		return err
	}
	handler, err := logging.ParseHandlerType(s.Logging.Format)
	if err != nil {
		return err
	}

	logOpts := []logging.Option{
		logging.WithHandlerType(handler),
		logging.WithLevel(level),
		logging.WithOutput(cmd.ErrOrStderr()),
		logging.WithSource(s.Logging.Source),
		logging.WithServiceName(s.Metrics.Service),
		logging.WithServiceVersion(Version),
	}
	if o.noColor {
		logOpts = append(logOpts, logging.WithNoColor())
	}
	if o.logger, err = logging.New(logOpts...); err != nil {
		return err
	}
	o.settings = s

	return nil
}

// newValidator returns an engine configured from the loaded settings.
func (o *rootOptions) newValidator(extra ...validation.Option) (*validation.Validator, error) {
	opts := append([]validation.Option{
		validation.WithConfig(o.settings.ValidationConfig()),
		validation.WithLogger(o.logger.Logger()),
	}, extra...)

	return validation.New(opts...)
}
