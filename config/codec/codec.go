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

// Type names a registered codec, e.g. "yaml" or "toml".
type Type string

// Encoder renders a value, typically the effective settings for
// "preflight config show".
type Encoder interface {
	Encode(v any) ([]byte, error)
}

// Decoder parses a configuration document into v, usually a
// map[string]any that is merged with the other sources.
type Decoder interface {
	Decode(data []byte, v any) error
}

// Codec is an [Encoder] that can also decode what it writes.
type Codec interface {
	Encoder
	Decoder
}

// Register registers c as both the encoder and the decoder for name.
func Register(name Type, c Codec) {
	RegisterEncoder(name, c)
	RegisterDecoder(name, c)
}
