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

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"rivaas.dev/preflight/validation"
)

// EnvPrefix is the environment prefix the preflight command reads.
const EnvPrefix = "PREFLIGHT_"

//go:embed settings.schema.json
var settingsSchema []byte

// Settings is the preflight command configuration.
//
//	validation:
//	  autosplit: true
//	logging:
//	  level: info
//	  format: console
//	metrics:
//	  provider: prometheus
//	server:
//	  addr: ":8080"
//	  maxbody: 4194304
type Settings struct {
	Validation ValidationSettings `config:"validation" json:"validation"`
	Logging    LoggingSettings    `config:"logging" json:"logging"`
	Metrics    MetricsSettings    `config:"metrics" json:"metrics"`
	Server     ServerSettings     `config:"server" json:"server"`
}

// ValidationSettings configures the validation engine.
type ValidationSettings struct {
	AutoSplit bool `config:"autosplit" json:"autosplit" default:"true"`
}

// LoggingSettings configures the process logger.
type LoggingSettings struct {
	Level  string `config:"level" json:"level" default:"info" validate:"oneof=debug info warn warning error"`
	Format string `config:"format" json:"format" default:"console" validate:"oneof=json text console"`
	Source bool   `config:"source" json:"source"`
}

// MetricsSettings selects the metrics provider.
type MetricsSettings struct {
	Provider string `config:"provider" json:"provider" default:"none" validate:"oneof=none prometheus stdout otlp"`
	Endpoint string `config:"endpoint" json:"endpoint,omitempty" validate:"required_if=Provider otlp"`
	Service  string `config:"service" json:"service" default:"preflight" validate:"required"`
}

// ServerSettings configures the HTTP server.
type ServerSettings struct {
	Addr            string        `config:"addr" json:"addr" default:":8080" validate:"required"`
	MaxBody         int64         `config:"maxbody" json:"maxbody" default:"4194304" validate:"gt=0"`
	ShutdownTimeout time.Duration `config:"shutdowntimeout" json:"shutdowntimeout" default:"10s" validate:"gt=0"`
}

var structValidator = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("config"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}()

// DefaultSettings returns the settings used when no source sets a value.
func DefaultSettings() Settings {
	var s Settings
	if err := applyDefaults(reflect.ValueOf(&s).Elem()); err != nil {
		panic(fmt.Sprintf("config: invalid default tags: %v", err))
	}

	return s
}

// Validate checks the `validate` tags. Each failure is reported as an
// [*Error] naming the dotted settings key.
func (s *Settings) Validate() error {
	err := structValidator.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return NewError("settings", "validate", err)
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := fe.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		errs = append(errs, NewFieldError("settings", field, "validate",
			fmt.Errorf("value %v does not satisfy %s", fe.Value(), rule)))
	}

	return errors.Join(errs...)
}

// Map returns s keyed the way sources spell it, suitable for encoding
// with any codec.
func (s *Settings) Map() map[string]any {
	return structMap(reflect.ValueOf(s).Elem(), "config")
}

// ValidationConfig returns the engine configuration for these settings.
func (s *Settings) ValidationConfig() validation.Config {
	cfg := validation.DefaultConfig()
	cfg.AutoSplitLongText = s.Validation.AutoSplit

	return cfg
}

// LoadSettings loads Settings from opts, checking the merged document
// against the settings schema first. Sources are applied in order.
//
//	s, err := config.LoadSettings(ctx,
//	    config.WithFile("preflight.yaml"),
//	    config.WithEnv(config.EnvPrefix),
//	)
func LoadSettings(ctx context.Context, opts ...Option) (*Settings, error) {
	s := &Settings{}
	all := make([]Option, 0, len(opts)+2)
	all = append(all, WithJSONSchema(settingsSchema))
	all = append(all, opts...)
	all = append(all, WithBinding(s))

	cfg, err := New(all...)
	if err != nil {
		return nil, err
	}
	if err = cfg.Load(ctx); err != nil {
		return nil, err
	}

	return s, nil
}
