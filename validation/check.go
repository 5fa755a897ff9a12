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
	"unicode/utf8"

	"rivaas.dev/preflight/limits"
	"rivaas.dev/preflight/request"
)

// check appends the violations of f to dst.
func check(dst []Violation, f Field) []Violation {
	switch f.Kind {
	case FieldScalar:
		limit := limits.Max(f.Category)
		if n := utf8.RuneCountInString(f.Value); n > limit {
			dst = append(dst, contentTooLong(f.Path, n, limit, false))
		}
	case FieldList, FieldBlocks:
		if limit := limits.Max(f.Category); f.Count > limit {
			dst = append(dst, arrayTooLarge(f.Path, f.Count, limit))
		}
	case FieldRichText:
		dst = checkRichText(dst, f.Path, f.RichText)
	}

	return dst
}

func checkRichText(dst []Violation, path string, list []request.RichText) []Violation {
	if limit := limits.Max(limits.RichTextArray); len(list) > limit {
		dst = append(dst, arrayTooLarge(path, len(list), limit))
	}

	for i, seg := range list {
		elem := fmt.Sprintf("%s[%d]", path, i)

		if seg.Text != nil {
			limit := limits.Max(limits.RichTextContent)
			if n := utf8.RuneCountInString(seg.Text.Content); n > limit {
				dst = append(dst, contentTooLong(elem, n, limit, seg.IsText()))
			}
			if seg.Text.Link != nil {
				limit := limits.Max(limits.RichTextLinkURL)
				if n := utf8.RuneCountInString(seg.Text.Link.URL); n > limit {
					dst = append(dst, contentTooLong(elem+".text.link.url", n, limit, false))
				}
			}
		}
		if seg.Equation != nil {
			limit := limits.Max(limits.EquationExpression)
			if n := utf8.RuneCountInString(seg.Equation.Expression); n > limit {
				dst = append(dst, contentTooLong(elem+".equation.expression", n, limit, false))
			}
		}
		if seg.Href != "" {
			limit := limits.Max(limits.RichTextLinkURL)
			if n := utf8.RuneCountInString(seg.Href); n > limit {
				dst = append(dst, contentTooLong(elem+".href", n, limit, false))
			}
		}
	}

	return dst
}
