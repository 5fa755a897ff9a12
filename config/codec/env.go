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

package codec

import (
	"errors"
	"fmt"
	"strings"
)

// TypeEnvVar identifies the environment variable codec.
const TypeEnvVar Type = "env_var"

// ErrEncodeUnsupported is returned by codecs that only decode.
var ErrEncodeUnsupported = errors.New("encoding not supported")

func init() {
	RegisterDecoder(TypeEnvVar, EnvVarCodec{})
}

// EnvVarCodec decodes KEY=value lines into a nested map. Keys are lower-cased
// and split on underscores, so SERVER_MAXBODY=10 becomes
// {"server": {"maxbody": "10"}}. Values stay strings.
type EnvVarCodec struct{}

// Encode always fails.
func (EnvVarCodec) Encode(any) ([]byte, error) {
	return nil, fmt.Errorf("env_var: %w", ErrEncodeUnsupported)
}

// Decode parses data into v, which must be a *map[string]any. A later key
// that needs a nested map where a scalar already sits replaces the scalar.
func (EnvVarCodec) Decode(data []byte, v any) error {
	ptr, ok := v.(*map[string]any)
	if !ok {
		return fmt.Errorf("env_var: expected *map[string]any, got %T", v)
	}

	conf := make(map[string]any)
	for line := range strings.SplitSeq(string(data), "\n") {
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		parts := strings.FieldsFunc(strings.ToLower(strings.TrimSpace(key)), func(r rune) bool {
			return r == '_'
		})
		if len(parts) == 0 {
			continue
		}

		current := conf
		for _, part := range parts[:len(parts)-1] {
			next, ok := current[part].(map[string]any)
			if !ok {
				next = make(map[string]any)
				current[part] = next
			}
			current = next
		}
		current[parts[len(parts)-1]] = strings.TrimSpace(value)
	}
	*ptr = conf

	return nil
}
