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
	"fmt"
	"iter"

	"github.com/vmihailenco/msgpack/v5"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Map is a string-keyed map that keeps insertion order, used for property
// maps whose document order must survive decoding.
//
// A nil *Map is a valid empty map for reads.
type Map[V any] struct {
	om *orderedmap.OrderedMap[string, V]
}

// Properties maps property names to page property values.
type Properties = Map[PropertyValue]

// SchemaProperties maps property names to database property definitions.
type SchemaProperties = Map[PropertySchema]

// NewMap returns an empty ordered map.
func NewMap[V any]() *Map[V] {
	return &Map[V]{om: orderedmap.New[string, V]()}
}

// NewProperties returns an empty page property map.
func NewProperties() *Properties {
	return NewMap[PropertyValue]()
}

// NewSchemaProperties returns an empty database property map.
func NewSchemaProperties() *SchemaProperties {
	return NewMap[PropertySchema]()
}

func (m *Map[V]) init() {
	if m.om == nil {
		m.om = orderedmap.New[string, V]()
	}
}

// Set stores v under name, keeping the original position when name is
// already present. It returns m for chaining.
func (m *Map[V]) Set(name string, v V) *Map[V] {
	m.init()
	m.om.Set(name, v)

	return m
}

// Get returns the value stored under name.
func (m *Map[V]) Get(name string) (V, bool) {
	if m == nil || m.om == nil {
		var zero V
		return zero, false
	}

	return m.om.Get(name)
}

// Len returns the number of entries.
func (m *Map[V]) Len() int {
	if m == nil || m.om == nil {
		return 0
	}

	return m.om.Len()
}

// Keys returns the names in order.
func (m *Map[V]) Keys() []string {
	keys := make([]string, 0, m.Len())
	for k := range m.All() {
		keys = append(keys, k)
	}

	return keys
}

// All iterates entries in insertion order.
func (m *Map[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		if m == nil || m.om == nil {
			return
		}
		for pair := m.om.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// Entries iterates entries in insertion order, yielding pointers to the
// stored values. Writes through the pointers update m.
func (m *Map[V]) Entries() iter.Seq2[string, *V] {
	return func(yield func(string, *V) bool) {
		if m == nil || m.om == nil {
			return
		}
		for pair := m.om.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, &pair.Value) {
				return
			}
		}
	}
}

// CloneFunc returns a copy of m with the same order, copying each value
// with clone.
func (m *Map[V]) CloneFunc(clone func(V) V) *Map[V] {
	if m == nil {
		return nil
	}
	c := NewMap[V]()
	for k, v := range m.All() {
		c.om.Set(k, clone(v))
	}

	return c
}

// Clone returns a copy of m with the same order. Values are copied
// shallowly.
func (m *Map[V]) Clone() *Map[V] {
	if m == nil {
		return nil
	}
	c := NewMap[V]()
	for k, v := range m.All() {
		c.om.Set(k, v)
	}

	return c
}

// MarshalJSON encodes m as a JSON object in insertion order.
func (m *Map[V]) MarshalJSON() ([]byte, error) {
	if m == nil || m.om == nil {
		return []byte("{}"), nil
	}

	return m.om.MarshalJSON()
}

// UnmarshalJSON decodes a JSON object keeping its key order.
func (m *Map[V]) UnmarshalJSON(data []byte) error {
	m.om = orderedmap.New[string, V]()

	return m.om.UnmarshalJSON(data)
}

// MarshalYAML encodes m as a YAML mapping in insertion order.
func (m *Map[V]) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for k, v := range m.All() {
		var val yaml.Node
		if err := val.Encode(v); err != nil {
			return nil, fmt.Errorf("encode %q: %w", k, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&val,
		)
	}

	return node, nil
}

// UnmarshalYAML decodes a YAML mapping keeping its key order.
func (m *Map[V]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping, got %s", node.Line, node.ShortTag())
	}

	m.om = orderedmap.New[string, V]()
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		var v V
		if err := val.Decode(&v); err != nil {
			return fmt.Errorf("decode %q: %w", key.Value, err)
		}
		m.om.Set(key.Value, v)
	}

	return nil
}

// EncodeMsgpack encodes m as a MessagePack map in insertion order.
func (m *Map[V]) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeMapLen(m.Len()); err != nil {
		return err
	}
	for k, v := range m.All() {
		if err := enc.EncodeString(k); err != nil {
			return err
		}
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode %q: %w", k, err)
		}
	}

	return nil
}

// DecodeMsgpack decodes a MessagePack map keeping its key order.
func (m *Map[V]) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeMapLen()
	if err != nil {
		return err
	}

	m.om = orderedmap.New[string, V]()
	for range max(n, 0) {
		k, err := dec.DecodeString()
		if err != nil {
			return err
		}
		var v V
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("decode %q: %w", k, err)
		}
		m.om.Set(k, v)
	}

	return nil
}
