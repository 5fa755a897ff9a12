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

// Package source provides the configuration sources preflight reads from:
// files, in-memory content and prefixed environment variables.
//
//	decoder, _ := codec.GetDecoder(codec.TypeYAML)
//	values, err := source.NewFile("preflight.yaml", decoder).Load(ctx)
//
//	values, err := source.NewOSEnvVar("PREFLIGHT_").Load(ctx)
package source
