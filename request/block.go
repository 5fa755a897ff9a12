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

// BlockType names a block kind on the wire.
type BlockType string

const (
	BlockParagraph        BlockType = "paragraph"
	BlockHeading1         BlockType = "heading_1"
	BlockHeading2         BlockType = "heading_2"
	BlockHeading3         BlockType = "heading_3"
	BlockBulletedListItem BlockType = "bulleted_list_item"
	BlockNumberedListItem BlockType = "numbered_list_item"
	BlockQuote            BlockType = "quote"
	BlockToggle           BlockType = "toggle"
	BlockToDo             BlockType = "to_do"
	BlockCallout          BlockType = "callout"
	BlockCode             BlockType = "code"
	BlockBookmark         BlockType = "bookmark"
	BlockEmbed            BlockType = "embed"
	BlockImage            BlockType = "image"
	BlockVideo            BlockType = "video"
	BlockFile             BlockType = "file"
	BlockPDF              BlockType = "pdf"
	BlockEquation         BlockType = "equation"
	BlockDivider          BlockType = "divider"
	BlockTableOfContents  BlockType = "table_of_contents"
	BlockColumnList       BlockType = "column_list"
	BlockColumn           BlockType = "column"
	BlockTable            BlockType = "table"
	BlockTableRow         BlockType = "table_row"
	BlockSyncedBlock      BlockType = "synced_block"
)

// FieldName returns the camelCase path name of t.
func (t BlockType) FieldName() string {
	return FieldName(string(t))
}

// TextBlock is the payload of paragraph, heading, list item, quote and
// toggle blocks.
type TextBlock struct {
	RichText     []RichText `json:"rich_text" yaml:"rich_text"`
	Color        Color      `json:"color,omitempty" yaml:"color,omitempty"`
	IsToggleable bool       `json:"is_toggleable,omitempty" yaml:"is_toggleable,omitempty"`
	Children     []Block    `json:"children,omitempty" yaml:"children,omitempty"`
}

// ToDoBlock is the payload of a to_do block.
type ToDoBlock struct {
	RichText []RichText `json:"rich_text" yaml:"rich_text"`
	Checked  bool       `json:"checked,omitempty" yaml:"checked,omitempty"`
	Color    Color      `json:"color,omitempty" yaml:"color,omitempty"`
	Children []Block    `json:"children,omitempty" yaml:"children,omitempty"`
}

// CalloutBlock is the payload of a callout block.
type CalloutBlock struct {
	RichText []RichText `json:"rich_text" yaml:"rich_text"`
	Icon     *Icon      `json:"icon,omitempty" yaml:"icon,omitempty"`
	Color    Color      `json:"color,omitempty" yaml:"color,omitempty"`
	Children []Block    `json:"children,omitempty" yaml:"children,omitempty"`
}

// CodeBlock is the payload of a code block.
type CodeBlock struct {
	RichText []RichText `json:"rich_text" yaml:"rich_text"`
	Caption  []RichText `json:"caption,omitempty" yaml:"caption,omitempty"`
	Language string     `json:"language,omitempty" yaml:"language,omitempty"`
}

// LinkBlock is the payload of bookmark and embed blocks.
type LinkBlock struct {
	URL     string     `json:"url" yaml:"url"`
	Caption []RichText `json:"caption,omitempty" yaml:"caption,omitempty"`
}

// FileBlock is the payload of image, video, file and pdf blocks.
type FileBlock struct {
	Type     string        `json:"type,omitempty" yaml:"type,omitempty"`
	External *ExternalFile `json:"external,omitempty" yaml:"external,omitempty"`
	File     *HostedFile   `json:"file,omitempty" yaml:"file,omitempty"`
	Caption  []RichText    `json:"caption,omitempty" yaml:"caption,omitempty"`
	Name     string        `json:"name,omitempty" yaml:"name,omitempty"`
}

// EquationBlock is the payload of an equation block.
type EquationBlock struct {
	Expression string `json:"expression" yaml:"expression"`
}

// ContainerBlock is the payload of column_list and column blocks.
type ContainerBlock struct {
	Children []Block `json:"children,omitempty" yaml:"children,omitempty"`
}

// TableBlock is the payload of a table block. Its children are table rows.
type TableBlock struct {
	TableWidth      int     `json:"table_width" yaml:"table_width"`
	HasColumnHeader bool    `json:"has_column_header,omitempty" yaml:"has_column_header,omitempty"`
	HasRowHeader    bool    `json:"has_row_header,omitempty" yaml:"has_row_header,omitempty"`
	Children        []Block `json:"children,omitempty" yaml:"children,omitempty"`
}

// TableRowBlock is the payload of a table_row block. Each cell is a rich
// text list.
type TableRowBlock struct {
	Cells [][]RichText `json:"cells" yaml:"cells"`
}

// SyncedFrom references the original of a synced block.
type SyncedFrom struct {
	BlockID string `json:"block_id" yaml:"block_id"`
}

// SyncedBlock is the payload of a synced_block block.
type SyncedBlock struct {
	SyncedFrom *SyncedFrom `json:"synced_from" yaml:"synced_from"`
	Children   []Block     `json:"children,omitempty" yaml:"children,omitempty"`
}

// StyleBlock is the payload of divider and table_of_contents blocks.
type StyleBlock struct {
	Color Color `json:"color,omitempty" yaml:"color,omitempty"`
}

// Block is one content block. Exactly one payload slot is expected to be
// set, matching Type.
type Block struct {
	Object string    `json:"object,omitempty" yaml:"object,omitempty"`
	Type   BlockType `json:"type,omitempty" yaml:"type,omitempty"`

	Paragraph        *TextBlock      `json:"paragraph,omitempty" yaml:"paragraph,omitempty"`
	Heading1         *TextBlock      `json:"heading_1,omitempty" yaml:"heading_1,omitempty"`
	Heading2         *TextBlock      `json:"heading_2,omitempty" yaml:"heading_2,omitempty"`
	Heading3         *TextBlock      `json:"heading_3,omitempty" yaml:"heading_3,omitempty"`
	BulletedListItem *TextBlock      `json:"bulleted_list_item,omitempty" yaml:"bulleted_list_item,omitempty"`
	NumberedListItem *TextBlock      `json:"numbered_list_item,omitempty" yaml:"numbered_list_item,omitempty"`
	Quote            *TextBlock      `json:"quote,omitempty" yaml:"quote,omitempty"`
	Toggle           *TextBlock      `json:"toggle,omitempty" yaml:"toggle,omitempty"`
	ToDo             *ToDoBlock      `json:"to_do,omitempty" yaml:"to_do,omitempty"`
	Callout          *CalloutBlock   `json:"callout,omitempty" yaml:"callout,omitempty"`
	Code             *CodeBlock      `json:"code,omitempty" yaml:"code,omitempty"`
	Bookmark         *LinkBlock      `json:"bookmark,omitempty" yaml:"bookmark,omitempty"`
	Embed            *LinkBlock      `json:"embed,omitempty" yaml:"embed,omitempty"`
	Image            *FileBlock      `json:"image,omitempty" yaml:"image,omitempty"`
	Video            *FileBlock      `json:"video,omitempty" yaml:"video,omitempty"`
	File             *FileBlock      `json:"file,omitempty" yaml:"file,omitempty"`
	PDF              *FileBlock      `json:"pdf,omitempty" yaml:"pdf,omitempty"`
	Equation         *EquationBlock  `json:"equation,omitempty" yaml:"equation,omitempty"`
	Divider          *StyleBlock     `json:"divider,omitempty" yaml:"divider,omitempty"`
	TableOfContents  *StyleBlock     `json:"table_of_contents,omitempty" yaml:"table_of_contents,omitempty"`
	ColumnList       *ContainerBlock `json:"column_list,omitempty" yaml:"column_list,omitempty"`
	Column           *ContainerBlock `json:"column,omitempty" yaml:"column,omitempty"`
	Table            *TableBlock     `json:"table,omitempty" yaml:"table,omitempty"`
	TableRow         *TableRowBlock  `json:"table_row,omitempty" yaml:"table_row,omitempty"`
	SyncedBlock      *SyncedBlock    `json:"synced_block,omitempty" yaml:"synced_block,omitempty"`
}

// slot is a payload pointer field paired with its block type.
type slot struct {
	typ BlockType
	ptr any
}

func (b *Block) slots() []slot {
	return []slot{
		{BlockParagraph, &b.Paragraph},
		{BlockHeading1, &b.Heading1},
		{BlockHeading2, &b.Heading2},
		{BlockHeading3, &b.Heading3},
		{BlockBulletedListItem, &b.BulletedListItem},
		{BlockNumberedListItem, &b.NumberedListItem},
		{BlockQuote, &b.Quote},
		{BlockToggle, &b.Toggle},
		{BlockToDo, &b.ToDo},
		{BlockCallout, &b.Callout},
		{BlockCode, &b.Code},
		{BlockBookmark, &b.Bookmark},
		{BlockEmbed, &b.Embed},
		{BlockImage, &b.Image},
		{BlockVideo, &b.Video},
		{BlockFile, &b.File},
		{BlockPDF, &b.PDF},
		{BlockEquation, &b.Equation},
		{BlockDivider, &b.Divider},
		{BlockTableOfContents, &b.TableOfContents},
		{BlockColumnList, &b.ColumnList},
		{BlockColumn, &b.Column},
		{BlockTable, &b.Table},
		{BlockTableRow, &b.TableRow},
		{BlockSyncedBlock, &b.SyncedBlock},
	}
}

// deref returns the payload a slot field points at, or nil.
func deref(ptr any) any {
	switch p := ptr.(type) {
	case **TextBlock:
		return nilOr(*p)
	case **ToDoBlock:
		return nilOr(*p)
	case **CalloutBlock:
		return nilOr(*p)
	case **CodeBlock:
		return nilOr(*p)
	case **LinkBlock:
		return nilOr(*p)
	case **FileBlock:
		return nilOr(*p)
	case **EquationBlock:
		return nilOr(*p)
	case **StyleBlock:
		return nilOr(*p)
	case **ContainerBlock:
		return nilOr(*p)
	case **TableBlock:
		return nilOr(*p)
	case **TableRowBlock:
		return nilOr(*p)
	case **SyncedBlock:
		return nilOr(*p)
	}

	return nil
}

func nilOr[T any](p *T) any {
	if p == nil {
		return nil
	}

	return p
}

// BlockType returns the block type, inferring it from the first populated
// payload slot when Type is empty.
func (b Block) BlockType() BlockType {
	if b.Type != "" {
		return b.Type
	}
	for _, s := range b.slots() {
		if deref(s.ptr) != nil {
			return s.typ
		}
	}

	return ""
}

// Payload returns the payload pointer for the block's type, or nil when
// the slot is empty.
func (b Block) Payload() any {
	typ := b.BlockType()
	for _, s := range b.slots() {
		if s.typ == typ {
			return deref(s.ptr)
		}
	}

	return nil
}

// WithPayload returns a copy of b with the slot for its type set to p. A
// payload whose type does not match the slot leaves the copy unchanged.
func (b Block) WithPayload(p any) Block {
	return b.setPayload(b.BlockType(), p)
}

func (b Block) setPayload(typ BlockType, p any) Block {
	for _, s := range b.slots() {
		if s.typ != typ {
			continue
		}
		switch dst := s.ptr.(type) {
		case **TextBlock:
			assign(dst, p)
		case **ToDoBlock:
			assign(dst, p)
		case **CalloutBlock:
			assign(dst, p)
		case **CodeBlock:
			assign(dst, p)
		case **LinkBlock:
			assign(dst, p)
		case **FileBlock:
			assign(dst, p)
		case **EquationBlock:
			assign(dst, p)
		case **StyleBlock:
			assign(dst, p)
		case **ContainerBlock:
			assign(dst, p)
		case **TableBlock:
			assign(dst, p)
		case **TableRowBlock:
			assign(dst, p)
		case **SyncedBlock:
			assign(dst, p)
		}
	}

	return b
}

func assign[T any](dst **T, p any) {
	if v, ok := p.(*T); ok {
		*dst = v
	}
}

// Children returns the nested children of b, or nil.
func (b Block) Children() []Block {
	if ref := b.ChildrenRef(); ref != nil {
		return *ref
	}

	return nil
}

// ChildrenRef returns a pointer to the children slot of b's payload, or nil
// when the payload cannot hold children.
func (b Block) ChildrenRef() *[]Block {
	switch p := b.Payload().(type) {
	case *TextBlock:
		return &p.Children
	case *ToDoBlock:
		return &p.Children
	case *CalloutBlock:
		return &p.Children
	case *ContainerBlock:
		return &p.Children
	case *TableBlock:
		return &p.Children
	case *SyncedBlock:
		return &p.Children
	}

	return nil
}

// Clone returns a deep copy of b including its subtree.
func (b Block) Clone() Block {
	c := Block{Object: b.Object, Type: b.Type}
	typ := b.BlockType()
	switch p := b.Payload().(type) {
	case *TextBlock:
		t := *p
		t.RichText = CloneRichText(p.RichText)
		t.Children = CloneBlocks(p.Children)
		return c.setPayload(typ, &t)
	case *ToDoBlock:
		t := *p
		t.RichText = CloneRichText(p.RichText)
		t.Children = CloneBlocks(p.Children)
		return c.setPayload(typ, &t)
	case *CalloutBlock:
		t := *p
		t.RichText = CloneRichText(p.RichText)
		t.Icon = p.Icon.Clone()
		t.Children = CloneBlocks(p.Children)
		return c.setPayload(typ, &t)
	case *CodeBlock:
		t := *p
		t.RichText = CloneRichText(p.RichText)
		t.Caption = CloneRichText(p.Caption)
		return c.setPayload(typ, &t)
	case *LinkBlock:
		t := *p
		t.Caption = CloneRichText(p.Caption)
		return c.setPayload(typ, &t)
	case *FileBlock:
		t := *p
		t.External = clonePtr(p.External)
		t.File = clonePtr(p.File)
		t.Caption = CloneRichText(p.Caption)
		return c.setPayload(typ, &t)
	case *EquationBlock:
		return c.setPayload(typ, clonePtr(p))
	case *StyleBlock:
		return c.setPayload(typ, clonePtr(p))
	case *ContainerBlock:
		return c.setPayload(typ, &ContainerBlock{Children: CloneBlocks(p.Children)})
	case *TableBlock:
		t := *p
		t.Children = CloneBlocks(p.Children)
		return c.setPayload(typ, &t)
	case *TableRowBlock:
		cells := make([][]RichText, len(p.Cells))
		for i, cell := range p.Cells {
			cells[i] = CloneRichText(cell)
		}
		return c.setPayload(typ, &TableRowBlock{Cells: cells})
	case *SyncedBlock:
		t := *p
		t.SyncedFrom = clonePtr(p.SyncedFrom)
		t.Children = CloneBlocks(p.Children)
		return c.setPayload(typ, &t)
	}

	return b
}

// CloneBlocks deep-copies a block list. A nil list stays nil.
func CloneBlocks(blocks []Block) []Block {
	if blocks == nil {
		return nil
	}
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		out[i] = b.Clone()
	}

	return out
}

func textBlock(typ BlockType, segments []RichText) Block {
	return Block{Object: "block", Type: typ}.WithPayload(&TextBlock{RichText: segments})
}

// Paragraph returns a paragraph block.
func Paragraph(segments ...RichText) Block { return textBlock(BlockParagraph, segments) }

// Heading1 returns a heading_1 block.
func Heading1(segments ...RichText) Block { return textBlock(BlockHeading1, segments) }

// Heading2 returns a heading_2 block.
func Heading2(segments ...RichText) Block { return textBlock(BlockHeading2, segments) }

// Heading3 returns a heading_3 block.
func Heading3(segments ...RichText) Block { return textBlock(BlockHeading3, segments) }

// BulletedListItem returns a bulleted_list_item block.
func BulletedListItem(segments ...RichText) Block {
	return textBlock(BlockBulletedListItem, segments)
}

// NumberedListItem returns a numbered_list_item block.
func NumberedListItem(segments ...RichText) Block {
	return textBlock(BlockNumberedListItem, segments)
}

// Quote returns a quote block.
func Quote(segments ...RichText) Block { return textBlock(BlockQuote, segments) }

// Toggle returns a toggle block.
func Toggle(segments ...RichText) Block { return textBlock(BlockToggle, segments) }

// ToDo returns a to_do block.
func ToDo(checked bool, segments ...RichText) Block {
	return Block{Object: "block", Type: BlockToDo, ToDo: &ToDoBlock{RichText: segments, Checked: checked}}
}

// Callout returns a callout block.
func Callout(icon *Icon, segments ...RichText) Block {
	return Block{Object: "block", Type: BlockCallout, Callout: &CalloutBlock{RichText: segments, Icon: icon}}
}

// Code returns a code block.
func Code(language string, segments ...RichText) Block {
	return Block{Object: "block", Type: BlockCode, Code: &CodeBlock{RichText: segments, Language: language}}
}

// Bookmark returns a bookmark block.
func Bookmark(url string) Block {
	return Block{Object: "block", Type: BlockBookmark, Bookmark: &LinkBlock{URL: url}}
}

// Embed returns an embed block.
func Embed(url string) Block {
	return Block{Object: "block", Type: BlockEmbed, Embed: &LinkBlock{URL: url}}
}

// Image returns an image block showing an external file.
func Image(url string) Block {
	return Block{Object: "block", Type: BlockImage, Image: externalFileBlock(url)}
}

// Video returns a video block showing an external file.
func Video(url string) Block {
	return Block{Object: "block", Type: BlockVideo, Video: externalFileBlock(url)}
}

// PDF returns a pdf block showing an external file.
func PDF(url string) Block {
	return Block{Object: "block", Type: BlockPDF, PDF: externalFileBlock(url)}
}

func externalFileBlock(url string) *FileBlock {
	return &FileBlock{Type: "external", External: &ExternalFile{URL: url}}
}

// EquationBlockOf returns an equation block.
func EquationBlockOf(expression string) Block {
	return Block{Object: "block", Type: BlockEquation, Equation: &EquationBlock{Expression: expression}}
}

// Divider returns a divider block.
func Divider() Block {
	return Block{Object: "block", Type: BlockDivider, Divider: &StyleBlock{}}
}

// ColumnList returns a column_list block holding columns.
func ColumnList(columns ...Block) Block {
	return Block{Object: "block", Type: BlockColumnList, ColumnList: &ContainerBlock{Children: columns}}
}

// Column returns a column block.
func Column(children ...Block) Block {
	return Block{Object: "block", Type: BlockColumn, Column: &ContainerBlock{Children: children}}
}

// Table returns a table block holding rows.
func Table(width int, rows ...Block) Block {
	return Block{Object: "block", Type: BlockTable, Table: &TableBlock{TableWidth: width, Children: rows}}
}

// TableRow returns a table_row block.
func TableRow(cells ...[]RichText) Block {
	return Block{Object: "block", Type: BlockTableRow, TableRow: &TableRowBlock{Cells: cells}}
}

// WithChildren returns a deep copy of b with its children replaced. Blocks
// whose payload cannot hold children are returned unchanged.
func (b Block) WithChildren(children ...Block) Block {
	c := b.Clone()
	if ref := c.ChildrenRef(); ref != nil {
		*ref = children
	}

	return c
}
