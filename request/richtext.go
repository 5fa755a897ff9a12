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

import "maps"

// RichTextType discriminates the payload of a [RichText] segment.
type RichTextType string

const (
	RichTextText     RichTextType = "text"
	RichTextMention  RichTextType = "mention"
	RichTextEquation RichTextType = "equation"
)

// Color is an annotation or block color such as "default" or "red_background".
type Color string

// Annotations are the formatting attributes of a rich text segment.
type Annotations struct {
	Bold          bool  `json:"bold,omitempty" yaml:"bold,omitempty"`
	Italic        bool  `json:"italic,omitempty" yaml:"italic,omitempty"`
	Strikethrough bool  `json:"strikethrough,omitempty" yaml:"strikethrough,omitempty"`
	Underline     bool  `json:"underline,omitempty" yaml:"underline,omitempty"`
	Code          bool  `json:"code,omitempty" yaml:"code,omitempty"`
	Color         Color `json:"color,omitempty" yaml:"color,omitempty"`
}

// Link is the target of a linked text segment.
type Link struct {
	URL string `json:"url" yaml:"url"`
}

// TextContent is the payload of a text segment.
type TextContent struct {
	Content string `json:"content" yaml:"content"`
	Link    *Link  `json:"link,omitempty" yaml:"link,omitempty"`
}

// Equation is the payload of an inline equation segment.
type Equation struct {
	Expression string `json:"expression" yaml:"expression"`
}

// RichText is one formatted segment of a rich text list.
type RichText struct {
	Type        RichTextType   `json:"type,omitempty" yaml:"type,omitempty"`
	Text        *TextContent   `json:"text,omitempty" yaml:"text,omitempty"`
	Mention     map[string]any `json:"mention,omitempty" yaml:"mention,omitempty"`
	Equation    *Equation      `json:"equation,omitempty" yaml:"equation,omitempty"`
	Annotations *Annotations   `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	PlainText   string         `json:"plain_text,omitempty" yaml:"plain_text,omitempty"`
	Href        string         `json:"href,omitempty" yaml:"href,omitempty"`
}

// Text returns a plain text segment.
func Text(content string) RichText {
	return RichText{Type: RichTextText, Text: &TextContent{Content: content}}
}

// LinkedText returns a text segment linking to url.
func LinkedText(content, url string) RichText {
	return RichText{
		Type: RichTextText,
		Text: &TextContent{Content: content, Link: &Link{URL: url}},
	}
}

// InlineEquation returns an equation segment.
func InlineEquation(expression string) RichText {
	return RichText{Type: RichTextEquation, Equation: &Equation{Expression: expression}}
}

// Kind returns the segment type, inferring it from the populated payload
// when Type is empty.
func (r RichText) Kind() RichTextType {
	switch {
	case r.Type != "":
		return r.Type
	case r.Text != nil:
		return RichTextText
	case r.Mention != nil:
		return RichTextMention
	case r.Equation != nil:
		return RichTextEquation
	}

	return ""
}

// IsText reports whether r carries text content.
func (r RichText) IsText() bool {
	return r.Kind() == RichTextText && r.Text != nil
}

// Content returns the text content of r, or "" for non-text segments.
func (r RichText) Content() string {
	if r.Text == nil {
		return ""
	}

	return r.Text.Content
}

// LinkURL returns the text link url of r, or "".
func (r RichText) LinkURL() string {
	if r.Text == nil || r.Text.Link == nil {
		return ""
	}

	return r.Text.Link.URL
}

// WithAnnotations returns a copy of r carrying a.
func (r RichText) WithAnnotations(a Annotations) RichText {
	c := r.Clone()
	c.Annotations = &a

	return c
}

// WithContent returns a deep copy of r with its text content replaced.
// Formatting, link and href are kept. PlainText is set to content when r
// carried one.
func (r RichText) WithContent(content string) RichText {
	c := r.Clone()
	if c.Text == nil {
		c.Text = &TextContent{}
	}
	c.Text.Content = content
	if c.PlainText != "" {
		c.PlainText = content
	}

	return c
}

// Clone returns a deep copy of r.
func (r RichText) Clone() RichText {
	c := r
	if r.Text != nil {
		t := *r.Text
		if r.Text.Link != nil {
			l := *r.Text.Link
			t.Link = &l
		}
		c.Text = &t
	}
	if r.Equation != nil {
		e := *r.Equation
		c.Equation = &e
	}
	if r.Annotations != nil {
		a := *r.Annotations
		c.Annotations = &a
	}
	if r.Mention != nil {
		c.Mention = cloneMap(r.Mention)
	}

	return c
}

// cloneMap deep-copies the nested maps and slices of decoded JSON.
func cloneMap(m map[string]any) map[string]any {
	out := maps.Clone(m)
	for k, v := range out {
		out[k] = cloneAny(v)
	}

	return out
}

func cloneAny(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		s := make([]any, len(t))
		for i := range t {
			s[i] = cloneAny(t[i])
		}
		return s
	default:
		return v
	}
}

// PlainTextOf concatenates the content of a rich text list.
func PlainTextOf(list []RichText) string {
	n := 0
	for _, r := range list {
		n += len(r.Content())
	}
	b := make([]byte, 0, n)
	for _, r := range list {
		b = append(b, r.Content()...)
	}

	return string(b)
}

// CloneRichText deep-copies a rich text list. A nil list stays nil.
func CloneRichText(list []RichText) []RichText {
	if list == nil {
		return nil
	}
	out := make([]RichText, len(list))
	for i, r := range list {
		out[i] = r.Clone()
	}

	return out
}
