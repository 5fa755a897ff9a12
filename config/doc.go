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

// Package config loads the preflight command settings from layered sources.
//
// Sources are merged in order, later ones overriding earlier ones. Keys are
// case-insensitive.
//
// # Quick Start
//
//	settings, err := config.LoadSettings(ctx,
//	    config.WithFile("preflight.yaml"),
//	    config.WithEnv(config.EnvPrefix),
//	)
//	if err != nil {
//	    return err
//	}
//	v, err := validation.New(validation.WithConfig(settings.ValidationConfig()))
//
// # Sources
//
//	config.WithFile("preflight.yaml")            // format from extension
//	config.WithFileAs("preflight", codec.TypeTOML)
//	config.WithContent(data, codec.TypeJSON)
//	config.WithEnv("PREFLIGHT_")                 // PREFLIGHT_SERVER_ADDR -> server.addr
//
// # Binding and Validation
//
// [Config] binds merged values into a struct with the `config` tag using
// mapstructure. Zero fields take their `default` tag. The merged document
// can be checked against a JSON Schema ([WithJSONSchema]) and the bound
// struct against go-playground `validate` tags ([Settings.Validate]).
//
// # Error Handling
//
// Failures are reported as [*Error] values naming the source, field and
// operation:
//
//	var cfgErr *config.Error
//	if errors.As(err, &cfgErr) {
//	    log.Printf("bad setting %s: %v", cfgErr.Field, cfgErr.Err)
//	}
package config
