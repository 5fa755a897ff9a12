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

// Command preflight checks and repairs Notion-style API request bodies
// against the platform's size limits before they are sent.
//
// Usage:
//
//	# Report every violation in a page-create body
//	preflight check page.json --shape page-create
//
//	# Split over-long rich text and write the repaired body
//	preflight fix page.yaml --shape page-create -o fixed.yaml
//
//	# Print the limits catalog
//	preflight limits
//
//	# Serve the engine over HTTP
//	preflight serve --config preflight.yaml
//
// Configuration is read from the file given with --config (YAML, JSON or
// TOML) and from PREFLIGHT_* environment variables, for example
// PREFLIGHT_LOGGING_LEVEL=debug.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errViolations):
		return 1
	default:
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 2
	}
}
