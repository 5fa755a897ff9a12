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
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"sync"
	"time"

	"dario.cat/mergo"
	"github.com/go-viper/mapstructure/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/spf13/cast"

	"rivaas.dev/preflight/config/codec"
	"rivaas.dev/preflight/config/source"
)

// Option configures a Config.
type Option func(c *Config) error

// Config loads and merges configuration from ordered sources, optionally
// binding the result into a struct.
//
// Config is safe for concurrent use by multiple goroutines.
type Config struct {
	mu         sync.RWMutex
	values     map[string]any
	sources    []Source
	binding    any
	tagName    string
	schema     *jsonschema.Schema
	validators []func(map[string]any) error
}

// WithSource adds a source. Later sources override earlier ones.
func WithSource(src Source) Option {
	return func(c *Config) error {
		if src == nil {
			return errors.New("source cannot be nil")
		}
		c.sources = append(c.sources, src)
		return nil
	}
}

// WithFile adds a file source whose format comes from its extension
// (.yaml, .yml, .json, .toml). Environment variables in path are expanded.
func WithFile(path string) Option {
	return func(c *Config) error {
		path = os.ExpandEnv(path)
		format, err := DetectFormat(path)
		if err != nil {
			return NewError("file-source", "detect-format", err)
		}

		return WithFileAs(path, format)(c)
	}
}

// WithFileAs adds a file source with an explicit format.
func WithFileAs(path string, format codec.Type) Option {
	return func(c *Config) error {
		decoder, err := codec.GetDecoder(format)
		if err != nil {
			return NewError("file-source", "get-decoder", err)
		}
		c.sources = append(c.sources, source.NewFile(os.ExpandEnv(path), decoder))
		return nil
	}
}

// WithContent adds an in-memory source.
//
//	config.WithContent([]byte("server:\n  addr: :9090"), codec.TypeYAML)
func WithContent(data []byte, format codec.Type) Option {
	return func(c *Config) error {
		decoder, err := codec.GetDecoder(format)
		if err != nil {
			return NewError("content-source", "get-decoder", err)
		}
		c.sources = append(c.sources, source.NewFileContent(data, decoder))
		return nil
	}
}

// WithEnv adds the process environment filtered by prefix. Underscores nest,
// so with prefix "PREFLIGHT_" the variable PREFLIGHT_SERVER_ADDR sets
// server.addr.
func WithEnv(prefix string) Option {
	return WithSource(source.NewOSEnvVar(prefix))
}

// WithBinding binds loaded values into v, which must be a pointer to a
// struct. Fields are matched by the `config` tag (see [WithTag]); zero
// fields take their `default` tag. When v implements [Validator] it is
// checked before being updated.
func WithBinding(v any) Option {
	return func(c *Config) error {
		if v == nil {
			return errors.New("binding target cannot be nil")
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
			return fmt.Errorf("binding target must be a non-nil pointer to a struct, got %T", v)
		}
		c.binding = v
		return nil
	}
}

// WithTag changes the struct tag used for binding.
func WithTag(tagName string) Option {
	return func(c *Config) error {
		if tagName == "" {
			return errors.New("tag name cannot be empty")
		}
		c.tagName = tagName
		return nil
	}
}

// WithJSONSchema validates the merged values against schema before binding.
func WithJSONSchema(schema []byte) Option {
	return func(c *Config) error {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schema))
		if err != nil {
			return NewError("json-schema", "parse", err)
		}
		compiler := jsonschema.NewCompiler()
		if err = compiler.AddResource("config.schema.json", doc); err != nil {
			return NewError("json-schema", "compile", err)
		}
		compiled, err := compiler.Compile("config.schema.json")
		if err != nil {
			return NewError("json-schema", "compile", err)
		}
		c.schema = compiled
		return nil
	}
}

// WithValidator adds a check run on the merged values.
func WithValidator(fn func(map[string]any) error) Option {
	return func(c *Config) error {
		if fn == nil {
			return errors.New("validator cannot be nil")
		}
		c.validators = append(c.validators, fn)
		return nil
	}
}

// New creates a Config. Option errors are joined; the Config is returned
// alongside them so callers can inspect what was applied.
func New(options ...Option) (*Config, error) {
	c := &Config{
		values:  map[string]any{},
		tagName: "config",
	}

	var errs error
	for _, option := range options {
		if option == nil {
			continue
		}
		if err := option(c); err != nil {
			errs = errors.Join(errs, err)
		}
	}

	return c, errs
}

// MustNew creates a Config or panics if any option fails.
func MustNew(options ...Option) *Config {
	c, err := New(options...)
	if err != nil {
		panic(fmt.Sprintf("config: failed to create config: %v", err))
	}

	return c
}

// Load reads every source in order, merges the results, validates them and
// binds them. Nothing observable changes when Load fails.
func (c *Config) Load(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context cannot be nil")
	}

	values, err := c.merge(ctx)
	if err != nil {
		return err
	}

	if c.schema != nil {
		if err = c.schema.Validate(schemaValue(values)); err != nil {
			return NewError("json-schema", "validate", err)
		}
	}
	for i, fn := range c.validators {
		if err = fn(values); err != nil {
			return NewError(fmt.Sprintf("validator[%d]", i), "validate", err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.binding != nil {
		if err = c.bind(values); err != nil {
			return err
		}
	}
	c.values = values

	return nil
}

// MustLoad loads configuration or panics on error.
func (c *Config) MustLoad(ctx context.Context) {
	if err := c.Load(ctx); err != nil {
		panic(err)
	}
}

func (c *Config) merge(ctx context.Context) (map[string]any, error) {
	merged := make(map[string]any)
	for i, src := range c.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		conf, err := src.Load(ctx)
		if err != nil {
			return nil, NewError(fmt.Sprintf("source[%d]", i), "load", err)
		}
		if err = mergo.Map(&merged, normalizeMapKeys(conf), mergo.WithOverride); err != nil {
			return nil, NewError(fmt.Sprintf("source[%d]", i), "merge", err)
		}
	}

	return merged, nil
}

// bind decodes values into a fresh copy of the binding, validates it and
// only then stores it. The caller holds c.mu.
func (c *Config) bind(values map[string]any) error {
	target := reflect.ValueOf(c.binding).Elem()
	fresh := reflect.New(target.Type())

	if err := applyDefaults(fresh.Elem()); err != nil {
		return NewError("binding", "defaults", err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          c.tagName,
		Squash:           true,
		WeaklyTypedInput: true,
		Result:           fresh.Interface(),
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return NewError("binding", "bind", err)
	}
	if err = decoder.Decode(values); err != nil {
		return NewError("binding", "bind", err)
	}

	if v, ok := fresh.Interface().(Validator); ok {
		if err = v.Validate(); err != nil {
			var cfgErr *Error
			if errors.As(err, &cfgErr) {
				return err
			}
			return NewError("binding", "validate", err)
		}
	}
	target.Set(fresh.Elem())

	return nil
}

// Values returns a copy of the merged top-level values.
func (c *Config) Values() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]any, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}

	return out
}

// Get returns the value at a dot-separated, case-insensitive path, or nil.
func (c *Config) Get(key string) any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var current any = c.values
	for part := range strings.SplitSeq(strings.ToLower(key), ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		if current, ok = m[part]; !ok {
			return nil
		}
	}

	return current
}

// String returns the value at key converted to a string.
func (c *Config) String(key string) string {
	return cast.ToString(c.Get(key))
}

// Bool returns the value at key converted to a bool.
func (c *Config) Bool(key string) bool {
	return cast.ToBool(c.Get(key))
}

// Int64 returns the value at key converted to an int64.
func (c *Config) Int64(key string) int64 {
	return cast.ToInt64(c.Get(key))
}

// Duration returns the value at key converted to a time.Duration.
func (c *Config) Duration(key string) time.Duration {
	return cast.ToDuration(c.Get(key))
}

func normalizeMapKeys(m map[string]any) map[string]any {
	normalized := make(map[string]any, len(m))
	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			v = normalizeMapKeys(nested)
		}
		normalized[strings.ToLower(k)] = v
	}

	return normalized
}
