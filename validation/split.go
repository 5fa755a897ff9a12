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

	"rivaas.dev/preflight/request"
)

// SplitRichText splits seg into consecutive segments of at most limit
// characters (Unicode code points). The contents concatenate to the
// original and each part carries a deep copy of the original annotations,
// link, and href. Cuts fall on raw code point boundaries, so a grapheme
// cluster may be divided.
//
// A segment that fits is returned as a single copy.
//
// Errors:
//   - [ErrEmptyContent]: seg is not a text segment or its content is empty
//   - [ErrInvalidLimit]: limit <= 0
func SplitRichText(seg request.RichText, limit int) ([]request.RichText, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}
	if !seg.IsText() || seg.Text.Content == "" {
		return nil, ErrEmptyContent
	}

	runes := []rune(seg.Text.Content)
	parts := make([]request.RichText, 0, (len(runes)+limit-1)/limit)
	for start := 0; start < len(runes); start += limit {
		end := min(start+limit, len(runes))
		parts = append(parts, seg.WithContent(string(runes[start:end])))
	}

	return parts, nil
}

// split records one segment replaced by splitList.
type split struct {
	field    string
	segments int
}

// splitList returns list with the elements at the ascending indexes in
// targets replaced by their splits, and the splits made in order. path only
// names the splits.
func splitList(path string, list []request.RichText, targets []int, limit int) ([]request.RichText, []split, error) {
	var (
		out    []request.RichText
		splits []split
	)
	for i, seg := range list {
		if len(targets) == 0 || targets[0] != i {
			if out != nil {
				out = append(out, seg)
			}
			continue
		}

		targets = targets[1:]
		elem := fmt.Sprintf("%s[%d]", path, i)

		parts, err := SplitRichText(seg, limit)
		if err != nil {
			return nil, nil, fmt.Errorf("split %s: %w", elem, err)
		}
		if out == nil {
			out = make([]request.RichText, i, len(list)+len(parts)-1)
			copy(out, list[:i])
		}
		out = append(out, parts...)
		splits = append(splits, split{field: elem, segments: len(parts)})
	}

	if out == nil {
		return list, nil, nil
	}

	return out, splits, nil
}
