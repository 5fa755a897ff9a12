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

package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Format is a request body encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgPack Format = "msgpack"
)

var (
	// ErrUnknownShape is returned for an unsupported shape name.
	ErrUnknownShape = errors.New("unknown request shape")

	// ErrUnknownFormat is returned for an unsupported body format.
	ErrUnknownFormat = errors.New("unknown request format")
)

// DecodeError describes a body that could not be decoded into a shape.
type DecodeError struct {
	Shape  Shape
	Format Format
	Err    error
}

// Error implements error.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("request: decode %s as %s: %v", e.Format, e.Shape, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ParseFormat parses a format name. "yml" and "mpk" are accepted aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "msgpack", "mpk", "messagepack":
		return FormatMsgPack, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFromPath returns the format implied by a file extension,
// defaulting to JSON.
func FormatFromPath(path string) Format {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if f, err := ParseFormat(ext); err == nil {
		return f
	}

	return FormatJSON
}

// FormatFromContentType returns the format for a media type, defaulting
// to JSON.
func FormatFromContentType(contentType string) Format {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "yaml"):
		return FormatYAML
	case strings.Contains(ct, "msgpack"):
		return FormatMsgPack
	}

	return FormatJSON
}

// New returns an empty request of the given shape.
func New(shape Shape) (Request, error) {
	switch shape {
	case ShapePageCreate:
		return &PageCreate{}, nil
	case ShapePageUpdate:
		return &PageUpdate{}, nil
	case ShapeDatabaseCreate:
		return &DatabaseCreate{}, nil
	case ShapeBlocks:
		return BlockList{}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownShape, shape)
}

// Decode decodes data as a request of the given shape.
func Decode(shape Shape, format Format, data []byte) (Request, error) {
	req, err := New(shape)
	if err != nil {
		return nil, err
	}

	if shape == ShapeBlocks {
		blocks, err := decodeBlocks(format, data)
		if err != nil {
			return nil, &DecodeError{Shape: shape, Format: format, Err: err}
		}
		return blocks, nil
	}

	if err := unmarshal(format, data, req); err != nil {
		return nil, &DecodeError{Shape: shape, Format: format, Err: err}
	}

	return req, nil
}

// DecodeReader reads r fully and decodes it with [Decode].
func DecodeReader(shape Shape, format Format, r io.Reader) (Request, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("request: read body: %w", err)
	}

	return Decode(shape, format, data)
}

func decodeBlocks(format Format, data []byte) (BlockList, error) {
	if format == FormatJSON {
		var l BlockList
		if err := json.Unmarshal(data, &l); err != nil {
			return nil, err
		}
		return l, nil
	}

	var w blockListWire
	if err := unmarshal(format, data, &w); err != nil {
		return nil, err
	}

	return w.Children, nil
}

func unmarshal(format Format, data []byte, out any) error {
	switch format {
	case FormatJSON:
		return json.Unmarshal(data, out)
	case FormatYAML:
		return yaml.Unmarshal(data, out)
	case FormatMsgPack:
		dec := msgpack.NewDecoder(bytes.NewReader(data))
		dec.SetCustomStructTag("json")
		return dec.Decode(out)
	}

	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Encode encodes req in the given format.
func Encode(req Request, format Format) ([]byte, error) {
	var v any = req
	if l, ok := req.(BlockList); ok && format != FormatJSON {
		v = blockListWire{Children: []Block(l)}
	}

	switch format {
	case FormatJSON:
		return json.MarshalIndent(v, "", "  ")
	case FormatYAML:
		return yaml.Marshal(v)
	case FormatMsgPack:
		var buf bytes.Buffer
		enc := msgpack.NewEncoder(&buf)
		enc.SetCustomStructTag("json")
		enc.SetOmitEmpty(true)
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
