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

// Package metrics records preflight validation metrics through
// OpenTelemetry and exports them to Prometheus, an OTLP collector or stdout.
//
// # Basic Usage
//
//	recorder := metrics.MustNew(
//	    metrics.WithPrometheus(),
//	    metrics.WithServiceName("preflight"),
//	)
//	defer recorder.Shutdown(context.Background())
//
//	v := validation.MustNew(validation.WithRecorder(recorder))
//
//	handler, _ := recorder.Handler()
//	mux.Handle("GET /metrics", handler)
//
// # Providers
//
//   - [PrometheusProvider] (default): scrape endpoint via [Recorder.Handler]
//   - [OTLPProvider]: periodic push to an OTLP HTTP collector
//   - [StdoutProvider]: periodic dump, for development
//
// [WithMeterProvider] records into a caller-owned provider instead, which
// is how the tests read measurements back.
//
// # Global State
//
// The global OpenTelemetry meter provider is only replaced when
// [WithGlobalMeterProvider] is passed.
package metrics
