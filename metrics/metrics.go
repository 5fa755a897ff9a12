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
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// DefaultDurationBuckets are histogram boundaries in seconds for a single
// validation pass. Most requests finish well under a millisecond.
var DefaultDurationBuckets = []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.5}

// ErrNoHandler is returned by [Recorder.Handler] when the provider has no
// scrape endpoint.
var ErrNoHandler = errors.New("metrics handler only available with the Prometheus provider")

// Provider represents the available metrics providers.
type Provider string

const (
	// PrometheusProvider exposes metrics for scraping through [Recorder.Handler] (default).
	PrometheusProvider Provider = "prometheus"
	// OTLPProvider pushes metrics to an OTLP HTTP collector.
	OTLPProvider Provider = "otlp"
	// StdoutProvider prints metrics periodically, for development.
	StdoutProvider Provider = "stdout"
	// CustomProvider marks a recorder built with [WithMeterProvider].
	CustomProvider Provider = "custom"
)

// ParseProvider converts a configuration string into a [Provider]. It
// reports false for "none" and for the empty string.
func ParseProvider(s string) (Provider, bool, error) {
	switch p := Provider(s); p {
	case "", "none":
		return "", false, nil
	case PrometheusProvider, OTLPProvider, StdoutProvider:
		return p, true, nil
	default:
		return "", false, fmt.Errorf("unsupported metrics provider: %q", s)
	}
}

// Recorder records validation engine metrics through OpenTelemetry. It
// implements validation.Recorder.
//
// Instruments (Prometheus names in parentheses):
//
//	preflight.validations           (preflight_validations_total{operation,outcome})
//	preflight.violations            (preflight_violations_total{kind})
//	preflight.segments.split        (preflight_segments_split_total)
//	preflight.validation.duration   (preflight_validation_duration_seconds{operation})
//	preflight.http.requests         (preflight_http_requests_total{method,route,status})
//	preflight.http.request.duration (preflight_http_request_duration_seconds{method,route})
//
// All methods are safe for concurrent use.
type Recorder struct {
	meter              metric.Meter
	meterProvider      metric.MeterProvider
	prometheusRegistry *promclient.Registry
	prometheusHandler  http.Handler
	logger             *slog.Logger

	validations     metric.Int64Counter
	violations      metric.Int64Counter
	segments        metric.Int64Counter
	duration        metric.Float64Histogram
	httpRequests    metric.Int64Counter
	httpDuration    metric.Float64Histogram
	durationBuckets []float64

	serviceName    string
	serviceVersion string
	otlpEndpoint   string
	stdoutWriter   io.Writer
	exportInterval time.Duration

	provider            Provider
	providerSetCount    int
	customMeterProvider bool
	registerGlobal      bool
	configErrs          []error

	serviceAttrs   metric.MeasurementOption
	isShuttingDown atomic.Bool
}

// New creates a Recorder. Exactly one of [WithPrometheus], [WithOTLP],
// [WithStdout] or [WithMeterProvider] may be given; Prometheus is the
// default.
func New(opts ...Option) (*Recorder, error) {
	r := &Recorder{
		serviceName:     "preflight",
		serviceVersion:  "dev",
		provider:        PrometheusProvider,
		exportInterval:  30 * time.Second,
		durationBuckets: DefaultDurationBuckets,
		logger:          slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := r.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := r.initializeProvider(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	return r, nil
}

// MustNew creates a Recorder or panics on error.
func MustNew(opts ...Option) *Recorder {
	r, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("metrics.MustNew: %v", err))
	}

	return r
}

func (r *Recorder) validate() error {
	if len(r.configErrs) > 0 {
		return errors.Join(r.configErrs...)
	}
	if r.providerSetCount > 1 {
		return errors.New("conflicting provider options: only one of WithPrometheus, WithOTLP, WithStdout or WithMeterProvider can be used")
	}
	if r.serviceName == "" {
		return errors.New("service name cannot be empty")
	}
	if r.logger == nil {
		return errors.New("logger cannot be nil")
	}
	if r.provider == OTLPProvider && r.otlpEndpoint == "" {
		r.otlpEndpoint = "http://localhost:4318"
		r.logger.Warn("OTLP endpoint not specified, using default", "endpoint", r.otlpEndpoint)
	}

	return nil
}

func (r *Recorder) initCommonAttributes() {
	r.serviceAttrs = metric.WithAttributeSet(attribute.NewSet(
		attribute.String("service.name", r.serviceName),
		attribute.String("service.version", r.serviceVersion),
	))
}

// Handler returns the Prometheus scrape handler.
func (r *Recorder) Handler() (http.Handler, error) {
	if r.prometheusHandler == nil {
		return nil, fmt.Errorf("%w: current provider is %s", ErrNoHandler, r.provider)
	}

	return r.prometheusHandler, nil
}

// Provider returns the active provider.
func (r *Recorder) Provider() Provider {
	return r.provider
}

// ServiceName returns the service name attached to every measurement.
func (r *Recorder) ServiceName() string {
	return r.serviceName
}

// ForceFlush exports pending measurements for push providers.
func (r *Recorder) ForceFlush(ctx context.Context) error {
	if r.isShuttingDown.Load() {
		return nil
	}
	if mp, ok := r.meterProvider.(*sdkmetric.MeterProvider); ok && !r.customMeterProvider {
		if err := mp.ForceFlush(ctx); err != nil {
			return fmt.Errorf("metrics force flush: %w", err)
		}
	}

	return nil
}

// Shutdown flushes and stops the meter provider. A provider passed through
// [WithMeterProvider] is left to its owner. Later calls are no-ops.
func (r *Recorder) Shutdown(ctx context.Context) error {
	if !r.isShuttingDown.CompareAndSwap(false, true) {
		return nil
	}
	if r.customMeterProvider {
		r.logger.Debug("skipping shutdown of caller-owned meter provider")
		return nil
	}

	mp, ok := r.meterProvider.(*sdkmetric.MeterProvider)
	if !ok {
		return nil
	}
	if err := mp.ForceFlush(ctx); err != nil {
		r.logger.Warn("metrics flush failed", "error", err)
	}
	if err := mp.Shutdown(ctx); err != nil {
		return fmt.Errorf("meter provider shutdown: %w", err)
	}

	return nil
}
