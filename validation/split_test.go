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

//go:build !integration

package validation

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/preflight/request"
)

func TestSplitRichText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		content   string
		limit     int
		wantParts int
	}{
		{"exact multiple", strings.Repeat("a", 4000), 2000, 2},
		{"remainder", strings.Repeat("a", 4500), 2000, 3},
		{"just over", strings.Repeat("a", 2001), 2000, 2},
		{"fits", "short", 2000, 1},
		{"limit one", "abc", 1, 3},
		{"multibyte", strings.Repeat("日本", 1001), 2000, 2},
		{"emoji", strings.Repeat("😀", 2001), 2000, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			seg := request.LinkedText(tt.content, "https://example.com").
				WithAnnotations(request.Annotations{Bold: true, Italic: true, Color: "blue"})
			seg.Href = "https://example.com"

			parts, err := SplitRichText(seg, tt.limit)
			require.NoError(t, err)
			require.Len(t, parts, tt.wantParts)

			var b strings.Builder
			for _, p := range parts {
				assert.LessOrEqual(t, utf8.RuneCountInString(p.Content()), tt.limit)
				assert.Equal(t, seg.Annotations, p.Annotations)
				assert.Equal(t, seg.Text.Link, p.Text.Link)
				assert.Equal(t, seg.Href, p.Href)
				b.WriteString(p.Content())
			}
			assert.Equal(t, tt.content, b.String())
		})
	}
}

func TestSplitRichText_CopiesAreIndependent(t *testing.T) {
	t.Parallel()

	seg := request.LinkedText(strings.Repeat("x", 30), "https://example.com").
		WithAnnotations(request.Annotations{Bold: true})

	parts, err := SplitRichText(seg, 10)
	require.NoError(t, err)
	require.Len(t, parts, 3)

	parts[0].Annotations.Bold = false
	parts[1].Text.Link.URL = "https://changed.example"

	assert.True(t, seg.Annotations.Bold)
	assert.True(t, parts[2].Annotations.Bold)
	assert.Equal(t, "https://example.com", seg.LinkURL())
	assert.Equal(t, "https://example.com", parts[2].LinkURL())
	assert.Equal(t, strings.Repeat("x", 30), seg.Content())
}

func TestSplitRichText_CutsAtCodePoint(t *testing.T) {
	t.Parallel()

	// "e" followed by a combining acute accent is one grapheme but two
	// code points; the cut lands between them.
	content := strings.Repeat("a", 1999) + "e\u0301"

	parts, err := SplitRichText(request.Text(content), 2000)
	require.NoError(t, err)
	require.Len(t, parts, 2)
	assert.True(t, strings.HasSuffix(parts[0].Content(), "e"))
	assert.Equal(t, "\u0301", parts[1].Content())
}

func TestSplitRichText_Errors(t *testing.T) {
	t.Parallel()

	_, err := SplitRichText(request.Text("abc"), 0)
	require.ErrorIs(t, err, ErrInvalidLimit)

	_, err = SplitRichText(request.Text(""), 10)
	require.ErrorIs(t, err, ErrEmptyContent)

	_, err = SplitRichText(request.InlineEquation("x^2"), 10)
	require.ErrorIs(t, err, ErrEmptyContent)
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	list := []request.RichText{request.Text("a"), request.Text("bbbbbb"), request.Text("c")}

	out, splits, err := splitList("p", list, []int{1}, 4)
	require.NoError(t, err)
	require.Len(t, out, 4)
	assert.Equal(t, "a", out[0].Content())
	assert.Equal(t, "bbbb", out[1].Content())
	assert.Equal(t, "bb", out[2].Content())
	assert.Equal(t, "c", out[3].Content())
	assert.Equal(t, []split{{field: "p[1]", segments: 2}}, splits)
	assert.Len(t, list, 3)

	same, none, err := splitList("p", list, nil, 4)
	require.NoError(t, err)
	assert.Nil(t, none)
	assert.Equal(t, list, same)
}
