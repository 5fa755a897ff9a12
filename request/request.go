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
	"encoding/json"
	"fmt"
)

// Shape names a supported request shape.
type Shape string

const (
	ShapePageCreate     Shape = "page-create"
	ShapePageUpdate     Shape = "page-update"
	ShapeDatabaseCreate Shape = "database-create"
	ShapeBlocks         Shape = "blocks"
)

// Shapes lists every supported shape.
func Shapes() []Shape {
	return []Shape{ShapePageCreate, ShapePageUpdate, ShapeDatabaseCreate, ShapeBlocks}
}

// ParseShape parses a shape name.
func ParseShape(s string) (Shape, error) {
	for _, sh := range Shapes() {
		if string(sh) == s {
			return sh, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownShape, s)
}

// Request is a write request value. It is implemented by [*PageCreate],
// [*PageUpdate], [*DatabaseCreate] and [BlockList].
type Request interface {
	Shape() Shape

	// CloneRequest returns a deep copy of the request.
	CloneRequest() Request

	isRequest()
}

// ParentType discriminates a [Parent].
type ParentType string

const (
	ParentDatabase   ParentType = "database_id"
	ParentDataSource ParentType = "data_source_id"
	ParentPage       ParentType = "page_id"
	ParentWorkspace  ParentType = "workspace"
)

// Parent identifies where a page or database is created.
type Parent struct {
	Type         ParentType `json:"type,omitempty" yaml:"type,omitempty"`
	DatabaseID   string     `json:"database_id,omitempty" yaml:"database_id,omitempty"`
	DataSourceID string     `json:"data_source_id,omitempty" yaml:"data_source_id,omitempty"`
	PageID       string     `json:"page_id,omitempty" yaml:"page_id,omitempty"`
	Workspace    bool       `json:"workspace,omitempty" yaml:"workspace,omitempty"`
}

// DatabaseParent returns a database parent.
func DatabaseParent(id string) Parent {
	return Parent{Type: ParentDatabase, DatabaseID: id}
}

// DataSourceParent returns a data source parent.
func DataSourceParent(id string) Parent {
	return Parent{Type: ParentDataSource, DataSourceID: id}
}

// PageParent returns a page parent.
func PageParent(id string) Parent {
	return Parent{Type: ParentPage, PageID: id}
}

// ExternalFile is a file hosted outside the platform.
type ExternalFile struct {
	URL string `json:"url" yaml:"url"`
}

// HostedFile is a file hosted by the platform.
type HostedFile struct {
	URL        string `json:"url" yaml:"url"`
	ExpiryTime string `json:"expiry_time,omitempty" yaml:"expiry_time,omitempty"`
}

// FileObject is a page cover, a files property entry, or a file reference.
type FileObject struct {
	Type     string        `json:"type,omitempty" yaml:"type,omitempty"`
	Name     string        `json:"name,omitempty" yaml:"name,omitempty"`
	External *ExternalFile `json:"external,omitempty" yaml:"external,omitempty"`
	File     *HostedFile   `json:"file,omitempty" yaml:"file,omitempty"`
}

// ExternalFileObject returns a file object pointing at url.
func ExternalFileObject(url string) *FileObject {
	return &FileObject{Type: "external", External: &ExternalFile{URL: url}}
}

// ExternalURL returns the external url, reporting whether one is set.
func (f *FileObject) ExternalURL() (string, bool) {
	if f == nil || f.External == nil {
		return "", false
	}

	return f.External.URL, true
}

// Clone returns a deep copy of f.
func (f *FileObject) Clone() *FileObject {
	if f == nil {
		return nil
	}
	c := *f
	c.External = clonePtr(f.External)
	c.File = clonePtr(f.File)

	return &c
}

// Icon is a page, database, or callout icon.
type Icon struct {
	Type     string        `json:"type,omitempty" yaml:"type,omitempty"`
	Emoji    string        `json:"emoji,omitempty" yaml:"emoji,omitempty"`
	External *ExternalFile `json:"external,omitempty" yaml:"external,omitempty"`
	File     *HostedFile   `json:"file,omitempty" yaml:"file,omitempty"`
}

// EmojiIcon returns an emoji icon.
func EmojiIcon(emoji string) *Icon {
	return &Icon{Type: "emoji", Emoji: emoji}
}

// ExternalIcon returns an icon pointing at url.
func ExternalIcon(url string) *Icon {
	return &Icon{Type: "external", External: &ExternalFile{URL: url}}
}

// ExternalURL returns the external url, reporting whether one is set.
func (i *Icon) ExternalURL() (string, bool) {
	if i == nil || i.External == nil {
		return "", false
	}

	return i.External.URL, true
}

// Clone returns a deep copy of i.
func (i *Icon) Clone() *Icon {
	if i == nil {
		return nil
	}
	c := *i
	c.External = clonePtr(i.External)
	c.File = clonePtr(i.File)

	return &c
}

func cloneFiles(files []FileObject) []FileObject {
	if files == nil {
		return nil
	}
	out := make([]FileObject, len(files))
	for i := range files {
		out[i] = *files[i].Clone()
	}

	return out
}

// PageCreate creates a page under a database or another page.
type PageCreate struct {
	Parent     Parent      `json:"parent" yaml:"parent"`
	Properties *Properties `json:"properties,omitempty" yaml:"properties,omitempty"`
	Children   []Block     `json:"children,omitempty" yaml:"children,omitempty"`
	Icon       *Icon       `json:"icon,omitempty" yaml:"icon,omitempty"`
	Cover      *FileObject `json:"cover,omitempty" yaml:"cover,omitempty"`
}

// Shape implements [Request].
func (*PageCreate) Shape() Shape { return ShapePageCreate }

// CloneRequest implements [Request].
func (p *PageCreate) CloneRequest() Request { return p.Clone() }

func (*PageCreate) isRequest() {}

// Clone returns a deep copy of p.
func (p *PageCreate) Clone() *PageCreate {
	if p == nil {
		return nil
	}
	c := *p
	c.Properties = p.Properties.CloneFunc(PropertyValue.Clone)
	c.Children = CloneBlocks(p.Children)
	c.Icon = p.Icon.Clone()
	c.Cover = p.Cover.Clone()

	return &c
}

// PageUpdate updates the properties or metadata of an existing page. A nil
// Properties map updates no properties.
type PageUpdate struct {
	Properties *Properties `json:"properties,omitempty" yaml:"properties,omitempty"`
	Icon       *Icon       `json:"icon,omitempty" yaml:"icon,omitempty"`
	Cover      *FileObject `json:"cover,omitempty" yaml:"cover,omitempty"`
	Archived   *bool       `json:"archived,omitempty" yaml:"archived,omitempty"`
	InTrash    *bool       `json:"in_trash,omitempty" yaml:"in_trash,omitempty"`
}

// Shape implements [Request].
func (*PageUpdate) Shape() Shape { return ShapePageUpdate }

// CloneRequest implements [Request].
func (p *PageUpdate) CloneRequest() Request { return p.Clone() }

func (*PageUpdate) isRequest() {}

// Clone returns a deep copy of p.
func (p *PageUpdate) Clone() *PageUpdate {
	if p == nil {
		return nil
	}
	c := *p
	c.Properties = p.Properties.CloneFunc(PropertyValue.Clone)
	c.Icon = p.Icon.Clone()
	c.Cover = p.Cover.Clone()
	c.Archived = clonePtr(p.Archived)
	c.InTrash = clonePtr(p.InTrash)

	return &c
}

// DatabaseCreate creates a database with a property schema.
type DatabaseCreate struct {
	Parent      Parent            `json:"parent" yaml:"parent"`
	Title       []RichText        `json:"title,omitempty" yaml:"title,omitempty"`
	Description []RichText        `json:"description,omitempty" yaml:"description,omitempty"`
	Properties  *SchemaProperties `json:"properties,omitempty" yaml:"properties,omitempty"`
	Icon        *Icon             `json:"icon,omitempty" yaml:"icon,omitempty"`
	Cover       *FileObject       `json:"cover,omitempty" yaml:"cover,omitempty"`
	IsInline    bool              `json:"is_inline,omitempty" yaml:"is_inline,omitempty"`
}

// Shape implements [Request].
func (*DatabaseCreate) Shape() Shape { return ShapeDatabaseCreate }

// CloneRequest implements [Request].
func (d *DatabaseCreate) CloneRequest() Request { return d.Clone() }

func (*DatabaseCreate) isRequest() {}

// Clone returns a deep copy of d.
func (d *DatabaseCreate) Clone() *DatabaseCreate {
	if d == nil {
		return nil
	}
	c := *d
	c.Title = CloneRichText(d.Title)
	c.Description = CloneRichText(d.Description)
	c.Properties = d.Properties.CloneFunc(PropertySchema.Clone)
	c.Icon = d.Icon.Clone()
	c.Cover = d.Cover.Clone()

	return &c
}

// BlockList is a list of blocks appended to an existing container. It is
// encoded as {"children": [...]}.
type BlockList []Block

// Shape implements [Request].
func (BlockList) Shape() Shape { return ShapeBlocks }

// CloneRequest implements [Request].
func (l BlockList) CloneRequest() Request { return BlockList(CloneBlocks(l)) }

func (BlockList) isRequest() {}

type blockListWire struct {
	Children []Block `json:"children" yaml:"children" msgpack:"children"`
}

// MarshalJSON encodes l as an append-children body.
func (l BlockList) MarshalJSON() ([]byte, error) {
	children := []Block(l)
	if children == nil {
		children = []Block{}
	}

	return json.Marshal(blockListWire{Children: children})
}

// UnmarshalJSON accepts an append-children body or a bare block array.
func (l *BlockList) UnmarshalJSON(data []byte) error {
	if trimmed := firstNonSpace(data); trimmed == '[' {
		var blocks []Block
		if err := json.Unmarshal(data, &blocks); err != nil {
			return err
		}
		*l = blocks

		return nil
	}

	var w blockListWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*l = w.Children

	return nil
}

func firstNonSpace(data []byte) byte {
	for _, c := range data {
		switch c {
		case ' ', '\t', '\r', '\n':
			continue
		default:
			return c
		}
	}

	return 0
}
