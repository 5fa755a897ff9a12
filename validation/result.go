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
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Result is the ordered outcome of one validate call. It is read-only once
// returned.
type Result struct {
	violations []Violation
}

func newResult(v []Violation) *Result {
	return &Result{violations: v}
}

// IsValid reports whether no violations were found.
func (r *Result) IsValid() bool {
	return r.Len() == 0
}

// HasErrors reports whether at least one violation was found.
func (r *Result) HasErrors() bool {
	return r.Len() > 0
}

// Len returns the number of violations.
func (r *Result) Len() int {
	if r == nil {
		return 0
	}

	return len(r.violations)
}

// Violations returns a copy of the violations in traversal order.
func (r *Result) Violations() []Violation {
	if r == nil {
		return nil
	}

	return slices.Clone(r.violations)
}

// First returns the first violation, reporting whether there is one.
func (r *Result) First() (Violation, bool) {
	if r.Len() == 0 {
		return Violation{}, false
	}

	return r.violations[0], true
}

// ByKind returns the violations of kind k.
func (r *Result) ByKind(k Kind) []Violation {
	return r.filter(func(v Violation) bool { return v.Kind == k })
}

// ByField returns the violations whose field equals path or lies below it
// ("title" matches "title[0]" and "title.title[0]").
func (r *Result) ByField(path string) []Violation {
	return r.filter(func(v Violation) bool {
		if v.Field == path {
			return true
		}
		rest, ok := strings.CutPrefix(v.Field, path)

		return ok && (rest[0] == '.' || rest[0] == '[')
	})
}

// Fields returns the violating field paths in order.
func (r *Result) Fields() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.violations))
	for i, v := range r.violations {
		out[i] = v.Field
	}

	return out
}

func (r *Result) filter(keep func(Violation) bool) []Violation {
	if r == nil {
		return nil
	}
	var out []Violation
	for _, v := range r.violations {
		if keep(v) {
			out = append(out, v)
		}
	}

	return out
}

// Summary returns a multi-line human summary:
//
//	Validation Summary: Errors: 2
//	  - ContentTooLong: title.title[0] exceeds the maximum length of 2000 characters (got 2100)
//	  - ArrayTooLarge: Tags.multiSelect exceeds the maximum of 100 elements (got 150)
func (r *Result) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Validation Summary: Errors: %d", r.Len())
	if r != nil {
		for _, v := range r.violations {
			b.WriteString("\n  - ")
			b.WriteString(v.String())
		}
	}

	return b.String()
}

// MarshalJSON encodes r as {"valid": bool, "violations": [...]}.
func (r *Result) MarshalJSON() ([]byte, error) {
	violations := r.Violations()
	if violations == nil {
		violations = []Violation{}
	}

	return json.Marshal(struct {
		Valid      bool        `json:"valid"`
		Violations []Violation `json:"violations"`
	}{r.IsValid(), violations})
}
