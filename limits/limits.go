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

package limits

import "slices"

// Category identifies a class of checked value sharing one threshold.
type Category int

const (
	// RichTextContent bounds the content of a single text segment.
	RichTextContent Category = iota
	// RichTextLinkURL bounds a segment's link url and href.
	RichTextLinkURL
	// EquationExpression bounds an inline or block equation expression.
	EquationExpression
	// URL bounds url property values and external file urls.
	URL
	// Email bounds email property values.
	Email
	// PhoneNumber bounds phone_number property values.
	PhoneNumber
	// MultiSelectOptions bounds the options selected in a multi_select value.
	MultiSelectOptions
	// Relations bounds the pages referenced by a relation value.
	Relations
	// People bounds the users referenced by a people value.
	People
	// SchemaOptions bounds the option definitions of a select, multi_select
	// or status database property.
	SchemaOptions
	// RichTextArray bounds the number of segments in one rich text list.
	RichTextArray
	// BlockChildren bounds the blocks in one children array.
	BlockChildren
	// Files bounds the file objects of a files property value.
	Files
)

// Unit describes what a threshold counts.
type Unit string

const (
	// Characters counts Unicode code points of a string.
	Characters Unit = "characters"
	// Elements counts items of a collection.
	Elements Unit = "elements"
)

type entry struct {
	name string
	max  int
	unit Unit
}

var catalog = map[Category]entry{
	RichTextContent:    {"rich_text.content", 2000, Characters},
	RichTextLinkURL:    {"rich_text.link", 2000, Characters},
	EquationExpression: {"equation.expression", 1000, Characters},
	URL:                {"url", 2000, Characters},
	Email:              {"email", 200, Characters},
	PhoneNumber:        {"phone_number", 200, Characters},
	MultiSelectOptions: {"multi_select", 100, Elements},
	Relations:          {"relation", 100, Elements},
	People:             {"people", 100, Elements},
	SchemaOptions:      {"schema.options", 100, Elements},
	RichTextArray:      {"rich_text", 100, Elements},
	BlockChildren:      {"children", 100, Elements},
	Files:              {"files", 100, Elements},
}

// Max returns the threshold for c. Unknown categories return 0.
func Max(c Category) int {
	return catalog[c].max
}

// String returns the stable catalog name of c.
func (c Category) String() string {
	if e, ok := catalog[c]; ok {
		return e.name
	}

	return "unknown"
}

// Unit returns what the threshold of c counts.
func (c Category) Unit() Unit {
	return catalog[c].unit
}

// IsLength reports whether c bounds a string length rather than a count.
func (c Category) IsLength() bool {
	return catalog[c].unit == Characters
}

// Limit is one catalog row.
type Limit struct {
	Category Category `json:"-"`
	Name     string   `json:"name"`
	Max      int      `json:"max"`
	Unit     Unit     `json:"unit"`
}

// All returns every catalog row in category order.
func All() []Limit {
	out := make([]Limit, 0, len(catalog))
	for c, e := range catalog {
		out = append(out, Limit{Category: c, Name: e.name, Max: e.max, Unit: e.unit})
	}
	slices.SortFunc(out, func(a, b Limit) int {
		return int(a.Category) - int(b.Category)
	})

	return out
}
