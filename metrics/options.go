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

package metrics

import (
	"errors"
	"io"
	"log/slog"
	"slices"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// Option configures a [Recorder].
type Option func(*Recorder)

func (r *Recorder) setProvider(p Provider) {
	r.provider = p
	r.providerSetCount++
}

// WithPrometheus selects the Prometheus provider. The scrape endpoint is
// served by the caller through [Recorder.Handler].
func WithPrometheus() Option {
	return func(r *Recorder) { r.setProvider(PrometheusProvider) }
}

// WithOTLP selects the OTLP HTTP provider. endpoint may carry an http://
// scheme to disable TLS; an empty endpoint means http://localhost:4318.
func WithOTLP(endpoint string) Option {
	return func(r *Recorder) {
		r.setProvider(OTLPProvider)
		r.otlpEndpoint = endpoint
	}
}

// WithStdout selects the stdout provider.
func WithStdout() Option {
	return func(r *Recorder) { r.setProvider(StdoutProvider) }
}

// WithStdoutWriter selects the stdout provider writing to w.
func WithStdoutWriter(w io.Writer) Option {
	return func(r *Recorder) {
		r.setProvider(StdoutProvider)
		r.stdoutWriter = w
	}
}

// WithMeterProvider records through a caller-owned meter provider.
// [Recorder.Shutdown] leaves it running.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(r *Recorder) {
		if provider == nil {
			r.configErrs = append(r.configErrs, errors.New("meter provider cannot be nil"))
			return
		}
		r.setProvider(CustomProvider)
		r.meterProvider = provider
		r.customMeterProvider = true
	}
}

// WithGlobalMeterProvider registers the built-in provider as the global
// OpenTelemetry meter provider.
func WithGlobalMeterProvider() Option {
	return func(r *Recorder) { r.registerGlobal = true }
}

// WithServiceName sets the service.name attribute.
func WithServiceName(name string) Option {
	return func(r *Recorder) { r.serviceName = name }
}

// WithServiceVersion sets the service.version attribute.
func WithServiceVersion(version string) Option {
	return func(r *Recorder) { r.serviceVersion = version }
}

// WithExportInterval sets how often push providers export.
func WithExportInterval(interval time.Duration) Option {
	return func(r *Recorder) {
		if interval <= 0 {
			r.configErrs = append(r.configErrs, errors.New("export interval must be positive"))
			return
		}
		r.exportInterval = interval
	}
}

// WithDurationBuckets overrides [DefaultDurationBuckets].
func WithDurationBuckets(buckets ...float64) Option {
	return func(r *Recorder) {
		if len(buckets) == 0 || !slices.IsSorted(buckets) {
			r.configErrs = append(r.configErrs, errors.New("duration buckets must be non-empty and ascending"))
			return
		}
		r.durationBuckets = buckets
	}
}

// WithLogger sets the logger for the recorder's own operational events.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) {
		if logger != nil {
			r.logger = logger
		}
	}
}
