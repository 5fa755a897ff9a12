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
	"iter"
	"strconv"
	"strings"

	"rivaas.dev/preflight/limits"
	"rivaas.dev/preflight/request"
)

// FieldKind classifies a checkable [Field].
type FieldKind int

const (
	// FieldScalar is a string value such as a URL, email, or phone number.
	FieldScalar FieldKind = iota

	// FieldRichText is a rich text list.
	FieldRichText

	// FieldList is a bounded list such as multi-select options or relations.
	FieldList

	// FieldBlocks is a block children list.
	FieldBlocks
)

// String returns the kind name.
func (k FieldKind) String() string {
	switch k {
	case FieldScalar:
		return "scalar"
	case FieldRichText:
		return "rich_text"
	case FieldList:
		return "list"
	case FieldBlocks:
		return "blocks"
	}

	return "unknown"
}

// Field is one checkable value found by [Walk].
type Field struct {
	Path     string
	Kind     FieldKind
	Category limits.Category

	// Value is set for FieldScalar.
	Value string

	// Count is the element count for FieldList and FieldBlocks, and the
	// segment count for FieldRichText.
	Count int

	// RichText is set for FieldRichText.
	RichText []request.RichText

	// ref points at the rich text slot inside the walked request.
	ref *[]request.RichText
}

// Walk enumerates every checkable field of req in document order. A nil or
// unknown request yields nothing.
func Walk(req request.Request) iter.Seq[Field] {
	return func(yield func(Field) bool) {
		w := &walker{yield: yield}
		w.request(req)
	}
}

// WalkBlocks enumerates the fields of a block list rooted at path, starting
// with the list itself.
func WalkBlocks(path string, blocks []request.Block) iter.Seq[Field] {
	return func(yield func(Field) bool) {
		w := &walker{yield: yield}
		w.blocks(path, blocks)
	}
}

type walker struct {
	yield func(Field) bool
	done  bool
}

func (w *walker) emit(f Field) {
	if w.done {
		return
	}
	if !w.yield(f) {
		w.done = true
	}
}

func (w *walker) request(req request.Request) {
	switch r := req.(type) {
	case *request.PageCreate:
		if r == nil {
			return
		}
		w.properties(r.Properties)
		w.icon("icon", r.Icon)
		w.cover("cover", r.Cover)
		w.blocks("children", r.Children)
	case *request.PageUpdate:
		if r == nil {
			return
		}
		w.properties(r.Properties)
		w.icon("icon", r.Icon)
		w.cover("cover", r.Cover)
	case *request.DatabaseCreate:
		if r == nil {
			return
		}
		w.richText("title", &r.Title)
		w.richText("description", &r.Description)
		w.schema(r.Properties)
		w.icon("icon", r.Icon)
		w.cover("cover", r.Cover)
	case request.BlockList:
		w.blocks("children", r)
	}
}

func (w *walker) properties(props *request.Properties) {
	for name, p := range props.Entries() {
		if w.done {
			return
		}
		w.property(propertyPath(name), p)
	}
}

// propertyPath renders a property name as a path segment. Names that
// contain path syntax are quoted in brackets, e.g. ["icon.external"], so
// they cannot be mistaken for other fields of the request.
func propertyPath(name string) string {
	if name == "" || strings.ContainsAny(name, `.[]"\`) {
		return "[" + strconv.Quote(name) + "]"
	}

	return name
}

func (w *walker) property(name string, p *request.PropertyValue) {
	if p.Title != nil {
		w.richText(name+".title", &p.Title)
	}
	if p.RichText != nil {
		w.richText(name+".richText", &p.RichText)
	}
	if p.URL != nil {
		w.scalar(name+".url", *p.URL, limits.URL)
	}
	if p.Email != nil {
		w.scalar(name+".email", *p.Email, limits.Email)
	}
	if p.PhoneNumber != nil {
		w.scalar(name+".phoneNumber", *p.PhoneNumber, limits.PhoneNumber)
	}
	if p.MultiSelect != nil {
		w.list(name+".multiSelect", len(p.MultiSelect), limits.MultiSelectOptions)
	}
	if p.People != nil {
		w.list(name+".people", len(p.People), limits.People)
	}
	if p.Relation != nil {
		w.list(name+".relation", len(p.Relation), limits.Relations)
	}
	if p.Files != nil {
		w.list(name+".files", len(p.Files), limits.Files)
		for i := range p.Files {
			if url, ok := p.Files[i].ExternalURL(); ok {
				w.scalar(fmt.Sprintf("%s.files[%d].external.url", name, i), url, limits.URL)
			}
		}
	}
}

func (w *walker) schema(props *request.SchemaProperties) {
	for name, s := range props.All() {
		if w.done {
			return
		}
		if typ, opts, ok := s.OptionsSlot(); ok {
			w.list(propertyPath(name)+"."+typ.FieldName()+".options", len(opts), limits.SchemaOptions)
		}
	}
}

func (w *walker) icon(path string, icon *request.Icon) {
	if url, ok := icon.ExternalURL(); ok {
		w.scalar(path+".external.url", url, limits.URL)
	}
}

func (w *walker) cover(path string, cover *request.FileObject) {
	if url, ok := cover.ExternalURL(); ok {
		w.scalar(path+".external.url", url, limits.URL)
	}
}

func (w *walker) scalar(path, value string, c limits.Category) {
	w.emit(Field{Path: path, Kind: FieldScalar, Category: c, Value: value})
}

func (w *walker) list(path string, n int, c limits.Category) {
	w.emit(Field{Path: path, Kind: FieldList, Category: c, Count: n})
}

func (w *walker) richText(path string, ref *[]request.RichText) {
	if *ref == nil {
		return
	}
	w.emit(Field{
		Path:     path,
		Kind:     FieldRichText,
		Category: limits.RichTextArray,
		Count:    len(*ref),
		RichText: *ref,
		ref:      ref,
	})
}

// frame is one block list being visited.
type frame struct {
	path   string
	blocks []request.Block
	next   int
}

// blocks visits a block tree in pre-order using an explicit stack.
func (w *walker) blocks(path string, blocks []request.Block) {
	if blocks == nil {
		return
	}
	w.emit(Field{Path: path, Kind: FieldBlocks, Category: limits.BlockChildren, Count: len(blocks)})

	stack := []frame{{path: path, blocks: blocks}}
	for len(stack) > 0 && !w.done {
		top := &stack[len(stack)-1]
		if top.next >= len(top.blocks) {
			stack = stack[:len(stack)-1]
			continue
		}
		i := top.next
		top.next++

		b := &top.blocks[i]
		prefix := fmt.Sprintf("%s[%d].%s", top.path, i, b.BlockType().FieldName())
		w.block(prefix, b)

		if children := b.Children(); children != nil {
			childPath := prefix + ".children"
			w.emit(Field{Path: childPath, Kind: FieldBlocks, Category: limits.BlockChildren, Count: len(children)})
			stack = append(stack, frame{path: childPath, blocks: children})
		}
	}
}

func (w *walker) block(prefix string, b *request.Block) {
	switch p := b.Payload().(type) {
	case *request.TextBlock:
		w.richText(prefix+".richText", &p.RichText)
	case *request.ToDoBlock:
		w.richText(prefix+".richText", &p.RichText)
	case *request.CalloutBlock:
		w.richText(prefix+".richText", &p.RichText)
		w.icon(prefix+".icon", p.Icon)
	case *request.CodeBlock:
		w.richText(prefix+".richText", &p.RichText)
		w.richText(prefix+".caption", &p.Caption)
	case *request.LinkBlock:
		w.richText(prefix+".caption", &p.Caption)
		w.scalar(prefix+".url", p.URL, limits.URL)
	case *request.FileBlock:
		w.richText(prefix+".caption", &p.Caption)
		if p.External != nil {
			w.scalar(prefix+".external.url", p.External.URL, limits.URL)
		}
	case *request.EquationBlock:
		w.scalar(prefix+".expression", p.Expression, limits.EquationExpression)
	case *request.TableRowBlock:
		for r := range p.Cells {
			w.richText(fmt.Sprintf("%s.cells[%d]", prefix, r), &p.Cells[r])
		}
	}
}
