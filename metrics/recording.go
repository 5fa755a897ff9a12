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
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"rivaas.dev/preflight/validation"
)

var _ validation.Recorder = (*Recorder)(nil)

func (r *Recorder) initializeMetrics() error {
	r.initCommonAttributes()

	var err error
	if r.validations, err = r.meter.Int64Counter("preflight.validations",
		metric.WithDescription("Validation passes by operation and outcome"),
		metric.WithUnit("{validation}"),
	); err != nil {
		return fmt.Errorf("failed to create validations counter: %w", err)
	}
	if r.violations, err = r.meter.Int64Counter("preflight.violations",
		metric.WithDescription("Violations detected by kind"),
		metric.WithUnit("{violation}"),
	); err != nil {
		return fmt.Errorf("failed to create violations counter: %w", err)
	}
	if r.segments, err = r.meter.Int64Counter("preflight.segments.split",
		metric.WithDescription("Rich text segments produced by auto-splitting"),
		metric.WithUnit("{segment}"),
	); err != nil {
		return fmt.Errorf("failed to create segments counter: %w", err)
	}
	if r.duration, err = r.meter.Float64Histogram("preflight.validation.duration",
		metric.WithDescription("Time spent in a validation pass"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(r.durationBuckets...),
	); err != nil {
		return fmt.Errorf("failed to create duration histogram: %w", err)
	}
	if r.httpRequests, err = r.meter.Int64Counter("preflight.http.requests",
		metric.WithDescription("HTTP requests served by route and status"),
		metric.WithUnit("{request}"),
	); err != nil {
		return fmt.Errorf("failed to create HTTP request counter: %w", err)
	}
	if r.httpDuration, err = r.meter.Float64Histogram("preflight.http.request.duration",
		metric.WithDescription("HTTP request latency"),
		metric.WithUnit("s"),
	); err != nil {
		return fmt.Errorf("failed to create HTTP duration histogram: %w", err)
	}

	return nil
}

// RecordValidation counts one validation pass and the violations it found.
func (r *Recorder) RecordValidation(operation, outcome string, violations []validation.Violation, elapsed time.Duration) {
	if r.isShuttingDown.Load() {
		return
	}
	ctx := context.Background()

	op := attribute.String("operation", operation)
	r.validations.Add(ctx, 1, r.serviceAttrs, metric.WithAttributes(op, attribute.String("outcome", outcome)))
	r.duration.Record(ctx, elapsed.Seconds(), r.serviceAttrs, metric.WithAttributes(op))

	byKind := make(map[validation.Kind]int64, 2)
	for _, v := range violations {
		byKind[v.Kind]++
	}
	for kind, n := range byKind {
		r.violations.Add(ctx, n, r.serviceAttrs, metric.WithAttributes(attribute.String("kind", kind.Code())))
	}
}

// RecordSplit counts the segments one over-long text segment was split into.
func (r *Recorder) RecordSplit(_ string, segments int) {
	if r.isShuttingDown.Load() || segments <= 0 {
		return
	}
	r.segments.Add(context.Background(), int64(segments), r.serviceAttrs)
}
