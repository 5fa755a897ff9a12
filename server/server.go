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

package server

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	riverrors "rivaas.dev/preflight/errors"
	"rivaas.dev/preflight/metrics"
	"rivaas.dev/preflight/validation"
)

const (
	// DefaultMaxBody is the request body limit used when none is configured.
	DefaultMaxBody int64 = 4 << 20

	// DefaultShutdownTimeout bounds graceful shutdown in [Server.Run].
	DefaultShutdownTimeout = 10 * time.Second
)

// ErrNilValidator is returned by [New] when no validator is given.
var ErrNilValidator = errors.New("server: validator is required")

// Server exposes a [validation.Validator] over HTTP.
//
// Routes:
//
//	POST /v1/validate/{shape}  report every violation
//	POST /v1/fix/{shape}       return the repaired request, or a 422 problem
//	GET  /v1/limits            the limits catalog
//	GET  /healthz              liveness
//	GET  /metrics              Prometheus scrape (Prometheus provider only)
type Server struct {
	validator       *validation.Validator
	metrics         *metrics.Recorder
	logger          *slog.Logger
	formatter       riverrors.Formatter
	maxBody         int64
	shutdownTimeout time.Duration
}

// Option configures a [Server].
type Option func(*Server)

// WithLogger sets the logger for access and lifecycle logs.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics records HTTP metrics with r and mounts its scrape handler
// when it has one.
func WithMetrics(r *metrics.Recorder) Option {
	return func(s *Server) {
		s.metrics = r
	}
}

// WithFormatter sets the error formatter. The default is RFC 9457
// problem details.
func WithFormatter(f riverrors.Formatter) Option {
	return func(s *Server) {
		s.formatter = f
	}
}

// WithMaxBody limits request bodies to n bytes.
func WithMaxBody(n int64) Option {
	return func(s *Server) {
		s.maxBody = n
	}
}

// WithShutdownTimeout bounds graceful shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.shutdownTimeout = d
	}
}

// New returns a server for v.
func New(v *validation.Validator, opts ...Option) (*Server, error) {
	if v == nil {
		return nil, ErrNilValidator
	}

	s := &Server{
		validator:       v,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		formatter:       riverrors.NewRFC9457(""),
		maxBody:         DefaultMaxBody,
		shutdownTimeout: DefaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.formatter == nil {
		s.formatter = riverrors.NewRFC9457("")
	}
	if s.maxBody <= 0 {
		s.maxBody = DefaultMaxBody
	}
	if s.shutdownTimeout <= 0 {
		s.shutdownTimeout = DefaultShutdownTimeout
	}

	return s, nil
}

// Handler returns the routed handler with request IDs, panic recovery,
// access logging and, when configured, HTTP metrics.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/validate/{shape}", s.handleValidate)
	mux.HandleFunc("POST /v1/fix/{shape}", s.handleFix)
	mux.HandleFunc("GET /v1/limits", s.handleLimits)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	if s.metrics != nil {
		if h, err := s.metrics.Handler(); err == nil {
			mux.Handle("GET /metrics", h)
		}
	}

	var h http.Handler = mux
	if s.metrics != nil {
		h = s.metrics.Middleware(h)
	}
	h = s.recovery(h)
	h = s.accessLog(h)

	return requestID(h)
}
