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

package validation

import (
	"fmt"
	"strings"
)

// Kind classifies a [Violation].
type Kind int

const (
	// ContentTooLong reports a string value longer than its character limit.
	ContentTooLong Kind = iota + 1

	// ArrayTooLarge reports a collection with more elements than its limit.
	ArrayTooLarge
)

// String returns the kind name, e.g. "ContentTooLong".
func (k Kind) String() string {
	switch k {
	case ContentTooLong:
		return "ContentTooLong"
	case ArrayTooLarge:
		return "ArrayTooLarge"
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Code returns the stable snake-case code of the kind.
func (k Kind) Code() string {
	switch k {
	case ContentTooLong:
		return "content_too_long"
	case ArrayTooLarge:
		return "array_too_large"
	}

	return "unknown"
}

// MarshalText encodes k as its name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name or code.
func (k *Kind) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "contenttoolong", "content_too_long":
		*k = ContentTooLong
	case "arraytoolarge", "array_too_large":
		*k = ArrayTooLarge
	default:
		return fmt.Errorf("validation: unknown violation kind %q", text)
	}

	return nil
}

// Violation is one breach of a structural limit.
//
// Field identifies the offending value inside the request, e.g.
// "title.title[0]" or "children[3].paragraph.richText[1].href".
// CurrentValue is the measured length or element count; Limit is the
// threshold it exceeded.
type Violation struct {
	Field            string `json:"field"`
	Kind             Kind   `json:"kind"`
	Message          string `json:"message"`
	AutoFixAvailable bool   `json:"auto_fix_available"`
	CurrentValue     int    `json:"current_value"`
	Limit            int    `json:"limit"`
}

// Code returns the snake-case code of the violation kind.
func (v Violation) Code() string {
	return v.Kind.Code()
}

// String returns "<Kind>: <message>".
func (v Violation) String() string {
	return v.Kind.String() + ": " + v.Message
}

func contentTooLong(field string, current, limit int, autoFix bool) Violation {
	return Violation{
		Field:            field,
		Kind:             ContentTooLong,
		Message:          fmt.Sprintf("%s exceeds the maximum length of %d characters (got %d)", field, limit, current),
		AutoFixAvailable: autoFix,
		CurrentValue:     current,
		Limit:            limit,
	}
}

// arrayTooLarge always reports AutoFixAvailable; no repair exists for it.
func arrayTooLarge(field string, current, limit int) Violation {
	return Violation{
		Field:            field,
		Kind:             ArrayTooLarge,
		Message:          fmt.Sprintf("%s exceeds the maximum of %d elements (got %d)", field, limit, current),
		AutoFixAvailable: true,
		CurrentValue:     current,
		Limit:            limit,
	}
}
