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

// Package server serves the preflight engine over HTTP.
//
// Request bodies are decoded as JSON, YAML or MessagePack according to
// Content-Type. Failures are written through a formatter from package
// rivaas.dev/preflight/errors, RFC 9457 problem details by default. An
// unrepairable request yields a 422 whose "errors" member lists the
// violation.
//
// Example:
//
//	v := validation.MustNew()
//	srv, err := server.New(v, server.WithLogger(logger), server.WithMetrics(rec))
//	if err != nil {
//	    return err
//	}
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	return srv.Run(ctx, ":8080")
package server
