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

// Package codec converts preflight configuration documents between their
// on-disk formats and generic Go maps.
//
// # Built-in Codecs
//
//   - JSON (encoding/json)
//   - YAML (github.com/goccy/go-yaml)
//   - TOML (github.com/BurntSushi/toml)
//   - EnvVar: KEY=value lines, decode only
//
// Codecs register themselves in init and are looked up by [Type]:
//
//	decoder, err := codec.GetDecoder(codec.TypeYAML)
//	var values map[string]any
//	err = decoder.Decode(data, &values)
package codec
