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

package source

import (
	"context"
	"fmt"
	"os"
	"strings"

	"rivaas.dev/preflight/config/codec"
)

// Env loads configuration from environment variables sharing a prefix.
// With prefix "PREFLIGHT_", PREFLIGHT_SERVER_ADDR becomes server.addr.
type Env struct {
	prefix  string
	environ func() []string
	decoder codec.Decoder
}

// NewOSEnvVar returns a source reading the process environment.
func NewOSEnvVar(prefix string) *Env {
	return NewEnv(prefix, os.Environ)
}

// NewEnv returns a source reading KEY=value pairs from environ.
func NewEnv(prefix string, environ func() []string) *Env {
	return &Env{prefix: prefix, environ: environ, decoder: codec.EnvVarCodec{}}
}

// Load decodes the matching variables with the prefix stripped.
func (e *Env) Load(ctx context.Context) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var lines []string
	for _, kv := range e.environ() {
		if rest, ok := strings.CutPrefix(kv, e.prefix); ok {
			lines = append(lines, rest)
		}
	}

	config := make(map[string]any)
	if err := e.decoder.Decode([]byte(strings.Join(lines, "\n")), &config); err != nil {
		return nil, fmt.Errorf("decode environment: %w", err)
	}

	return config, nil
}
