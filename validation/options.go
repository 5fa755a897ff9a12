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

package validation

import (
	"errors"
	"log/slog"
	"time"
)

// Config is the engine configuration. Each [Validator] keeps its own copy.
type Config struct {
	// AutoSplitLongText lets ValidateOrFix split rich text segments whose
	// content is too long instead of failing.
	AutoSplitLongText bool `json:"auto_split_long_text"`
}

// DefaultConfig returns the default configuration, with auto-split enabled.
func DefaultConfig() Config {
	return Config{AutoSplitLongText: true}
}

// Recorder receives validation telemetry. Implementations must be safe for
// concurrent use. rivaas.dev/preflight/metrics provides one backed by
// OpenTelemetry.
type Recorder interface {
	// RecordValidation is called once per validate call with the operation
	// name ("validate", "validate_or_fix", "validate_or_throw",
	// "validate_blocks"), its outcome ("valid", "invalid", "fixed",
	// "aborted"), and the violations it found.
	RecordValidation(operation, outcome string, violations []Violation, elapsed time.Duration)

	// RecordSplit is called for each segment replaced by ValidateOrFix.
	RecordSplit(field string, segments int)
}

type nopRecorder struct{}

func (nopRecorder) RecordValidation(string, string, []Violation, time.Duration) {}
func (nopRecorder) RecordSplit(string, int)                                     {}

// config holds internal configuration used by [Validator].
type config struct {
	engine   Config
	logger   *slog.Logger
	recorder Recorder
}

func newConfig() *config {
	return &config{
		engine:   DefaultConfig(),
		logger:   slog.New(slog.DiscardHandler),
		recorder: nopRecorder{},
	}
}

// validate checks the configuration for errors.
func (c *config) validate() error {
	if c.logger == nil {
		return errors.New("logger must not be nil")
	}
	if c.recorder == nil {
		return errors.New("recorder must not be nil")
	}

	return nil
}

// Option is a functional option for configuring a [Validator].
type Option func(*config)

// WithConfig replaces the engine configuration.
//
// Example:
//
//	v := validation.MustNew(validation.WithConfig(validation.Config{AutoSplitLongText: false}))
func WithConfig(cfg Config) Option {
	return func(c *config) {
		c.engine = cfg
	}
}

// WithAutoSplitLongText enables or disables splitting of long rich text.
func WithAutoSplitLongText(enabled bool) Option {
	return func(c *config) {
		c.engine.AutoSplitLongText = enabled
	}
}

// WithLogger sets the logger for debug and warn events. The default
// discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithRecorder sets the telemetry hook.
func WithRecorder(r Recorder) Option {
	return func(c *config) {
		c.recorder = r
	}
}
