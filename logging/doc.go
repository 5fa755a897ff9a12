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

// Package logging builds the structured [slog.Logger] used by the preflight
// command and handed to the validation engine and metrics recorder.
//
// # Basic Usage
//
//	logger := logging.MustNew(logging.WithConsoleHandler())
//	defer logger.Shutdown(context.Background())
//	logger.Info("server started", "addr", ":8080")
//
// # Handlers
//
// [JSONHandler] is the default. [TextHandler] writes logfmt-style key=value
// pairs and [ConsoleHandler] prints colored single-line records for
// terminals. Configuration strings map onto handlers and levels through
// [ParseHandlerType] and [ParseLevel]:
//
//	level, err := logging.ParseLevel(settings.Logging.Level)
//	handler, err := logging.ParseHandlerType(settings.Logging.Format)
//	logger, err := logging.New(logging.WithLevel(level), logging.WithHandlerType(handler))
//
// # Dynamic Log Levels
//
//	logger.SetLevel(logging.LevelDebug)
//
// # Sensitive Data Redaction
//
// Values under the keys password, token, secret, api_key and authorization
// are replaced with "***REDACTED***" in every handler. Extra rewriting can be
// configured with [WithReplaceAttr].
//
// # Global Logger Registration
//
// Loggers are not registered globally unless [WithGlobalLogger] is passed.
package logging
