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
	"fmt"
	"strings"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const scopeName = "rivaas.dev/preflight/metrics"

func (r *Recorder) initializeProvider() error {
	var err error
	switch r.provider {
	case CustomProvider:
		r.logger.Debug("using caller-provided meter provider")
	case PrometheusProvider:
		err = r.initPrometheusProvider()
	case OTLPProvider:
		err = r.initOTLPProvider()
	case StdoutProvider:
		err = r.initStdoutProvider()
	default:
		err = fmt.Errorf("unsupported metrics provider: %s", r.provider)
	}
	if err != nil {
		return err
	}

	if r.registerGlobal && !r.customMeterProvider {
		r.logger.Debug("setting global OpenTelemetry meter provider", "provider", string(r.provider))
		otel.SetMeterProvider(r.meterProvider)
	}
	r.meter = r.meterProvider.Meter(scopeName)

	return r.initializeMetrics()
}

// initPrometheusProvider uses a private registry so several recorders can
// live in one process.
func (r *Recorder) initPrometheusProvider() error {
	r.prometheusRegistry = promclient.NewRegistry()
	exporter, err := prometheus.New(prometheus.WithRegisterer(r.prometheusRegistry))
	if err != nil {
		return fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}

	r.meterProvider = sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	r.prometheusHandler = promhttp.HandlerFor(r.prometheusRegistry, promhttp.HandlerOpts{})

	return nil
}

func (r *Recorder) initOTLPProvider() error {
	endpoint, insecure := splitEndpoint(r.otlpEndpoint)
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	if insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	// The HTTP exporter connects lazily, so New does not block.
	exporter, err := otlpmetrichttp.New(context.Background(), opts...)
	if err != nil {
		return fmt.Errorf("failed to create OTLP exporter: %w", err)
	}
	r.meterProvider = sdkmetric.NewMeterProvider(sdkmetric.WithReader(
		sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(r.exportInterval)),
	))
	r.logger.Debug("OTLP metrics exporter configured", "endpoint", endpoint, "insecure", insecure)

	return nil
}

func (r *Recorder) initStdoutProvider() error {
	var opts []stdoutmetric.Option
	if r.stdoutWriter != nil {
		opts = append(opts, stdoutmetric.WithWriter(r.stdoutWriter))
	}
	exporter, err := stdoutmetric.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create stdout exporter: %w", err)
	}
	r.meterProvider = sdkmetric.NewMeterProvider(sdkmetric.WithReader(
		sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(r.exportInterval)),
	))

	return nil
}

// splitEndpoint strips the scheme and any path from a collector URL. An
// http:// scheme means the exporter must not use TLS.
func splitEndpoint(raw string) (hostport string, insecure bool) {
	hostport = raw
	switch {
	case strings.HasPrefix(hostport, "http://"):
		hostport, insecure = strings.TrimPrefix(hostport, "http://"), true
	case strings.HasPrefix(hostport, "https://"):
		hostport = strings.TrimPrefix(hostport, "https://")
	}
	if i := strings.IndexByte(hostport, '/'); i >= 0 {
		hostport = hostport[:i]
	}

	return hostport, insecure
}
