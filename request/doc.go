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

// Package request models the write requests checked by pre-flight
// validation: page creation, page update, database (schema) creation, and
// block-children appends.
//
// The types mirror the platform's JSON wire shape so that a request decoded
// from a file or an HTTP body can be validated directly:
//
//	props := request.NewProperties().
//	    Set("Name", request.TitleValue(request.Text("Quarterly report"))).
//	    Set("Tags", request.MultiSelectValue("finance", "q3"))
//
//	page := &request.PageCreate{
//	    Parent:     request.DatabaseParent("d9824bdc84454327be8b5b47500af6ce"),
//	    Properties: props,
//	    Children: []request.Block{
//	        request.Paragraph(request.Text("Summary")),
//	    },
//	}
//
// # Tagged unions
//
// Property values, property schemas, blocks, and rich text segments are
// tagged unions: a Type discriminator plus one populated payload slot. When
// Type is empty the kind is inferred from the first populated slot, the way
// the platform accepts type-less write payloads.
//
// # Ordering
//
// Property maps keep document order ([Map]). Diagnostics that refer to
// properties are therefore reproducible from one run to the next.
//
// # Values
//
// Request values are treated as immutable by this module. Code that
// produces a corrected request edits a deep copy made with CloneRequest
// and leaves the caller's value untouched.
package request
