// Copyright 2023 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package commonmark provides a CommonMark parser with opt-in
// GitHub-Flavored-Markdown extensions.
//
// Parsing is two-phase: [Parse] runs the block-phase line processor to
// build a tree of [Block] nodes, then runs the inline-phase processor
// over each block's accumulated raw text to populate its [Inline]
// children. The resulting tree is read-only and is intended to be
// walked by a renderer such as RenderHTML in this package or the
// format subpackage.
package commonmark

// BlockKind is a tag identifying the variant of a [Block] node.
type BlockKind uint8

const (
	// DocumentKind is the root of every parsed document.
	DocumentKind BlockKind = 1 + iota
	BlockQuoteKind
	ListKind
	ItemKind
	HeadingKind
	ThematicBreakKind
	CodeBlockKind
	HTMLBlockKind
	ParagraphKind
	TableKind
	TableRowKind
	TableCellKind
)

// ListType distinguishes bullet lists from ordered lists.
type ListType uint8

const (
	BulletList ListType = 1 + iota
	OrderedList
)

// ListDelimiter is the character that follows an ordered list marker's
// number, or is meaningless for bullet lists.
type ListDelimiter uint8

const (
	PeriodDelimiter ListDelimiter = 1 + iota
	ParenDelimiter
)

// CellAlignment is the alignment declared for a table column.
type CellAlignment uint8

const (
	AlignNone CellAlignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// ListData holds the attributes shared by every [Item] of a [List] and
// by the [List] itself.
type ListData struct {
	Type         ListType
	Start        int // first item's number, for OrderedList
	Delimiter    ListDelimiter
	BulletChar   byte // '-', '+', or '*' for BulletList
	Tight        bool
	MarkerOffset int // columns of indentation before the marker
	Padding      int // columns from the start of the marker to the content
}

// Block is a structural element of a document: a paragraph, a heading,
// a list, a block quote, and so on. Block trees are built by [Parse]
// and read by renderers; nothing outside this package mutates a Block
// once parsing has finished.
type Block struct {
	kind   BlockKind
	parent *Block

	children []*Block // non-nil only for container kinds

	// content accumulates a leaf block's raw text during the block
	// phase. It is cleared once inline parsing or fence/literal
	// extraction has consumed it.
	content []byte

	// inline holds the parsed inline content of a block whose kind
	// carries inlines (ParagraphKind, HeadingKind, TableCellKind).
	inline []*Inline

	startLine, startColumn int
	endLine, endColumn     int
	open                   bool
	lastLineBlank          bool

	// List and Item.
	list ListData

	// Heading.
	headingLevel  int
	headingSetext bool

	// CodeBlock.
	codeFenced      bool
	codeFenceChar   byte
	codeFenceLength int
	codeFenceOffset int
	codeInfo        []byte // trimmed, entity-decoded, unescaped info string
	codeLiteral     []byte

	// HTMLBlock.
	htmlBlockType int // 1..7
	htmlLiteral   []byte

	// Table.
	tableAlignments []CellAlignment

	// TableRow.
	tableHeader bool

	// Item, when the tasklist extension recognized a leading checkbox.
	taskItem    bool
	taskChecked bool
}

// Kind returns the variant of the block, or zero if b is nil.
func (b *Block) Kind() BlockKind {
	if b == nil {
		return 0
	}
	return b.kind
}

// Parent returns the block's parent, or nil for the document root or a
// nil receiver.
func (b *Block) Parent() *Block {
	if b == nil {
		return nil
	}
	return b.parent
}

// ChildCount returns the number of child blocks.
// A leaf block (one with inline content instead) returns 0.
func (b *Block) ChildCount() int {
	if b == nil {
		return 0
	}
	return len(b.children)
}

// Child returns the i'th child block.
func (b *Block) Child(i int) *Block {
	return b.children[i]
}

// Children returns the block's child blocks. Callers must not modify
// the returned slice.
func (b *Block) Children() []*Block {
	if b == nil {
		return nil
	}
	return b.children
}

// Inlines returns the block's parsed inline content. Only meaningful
// after the inline phase has run; valid for ParagraphKind, HeadingKind,
// and TableCellKind.
func (b *Block) Inlines() []*Inline {
	if b == nil {
		return nil
	}
	return b.inline
}

// StartLine and the related accessors report the block's 1-based
// position in the source document.
func (b *Block) StartLine() int   { return b.startLine }
func (b *Block) StartColumn() int { return b.startColumn }
func (b *Block) EndLine() int     { return b.endLine }
func (b *Block) EndColumn() int   { return b.endColumn }

// HeadingLevel returns the 1-6 level of a HeadingKind block, or 0
// otherwise.
func (b *Block) HeadingLevel() int {
	if b.Kind() != HeadingKind {
		return 0
	}
	return b.headingLevel
}

// IsSetext reports whether a HeadingKind block was written as a setext
// (underlined) heading rather than an ATX (#-prefixed) one.
func (b *Block) IsSetext() bool {
	return b.Kind() == HeadingKind && b.headingSetext
}

// List returns the list attributes of a ListKind or ItemKind block.
func (b *Block) List() ListData {
	if b == nil {
		return ListData{}
	}
	return b.list
}

// IsFenced reports whether a CodeBlockKind block used fence syntax
// rather than 4-space indentation.
func (b *Block) IsFenced() bool {
	return b.Kind() == CodeBlockKind && b.codeFenced
}

// Info returns a fenced code block's info string.
func (b *Block) Info() []byte {
	return b.codeInfo
}

// Literal returns the finalized text of a CodeBlockKind or
// HTMLBlockKind block.
func (b *Block) Literal() []byte {
	switch b.Kind() {
	case CodeBlockKind:
		return b.codeLiteral
	case HTMLBlockKind:
		return b.htmlLiteral
	default:
		return nil
	}
}

// HTMLBlockType returns the 1..7 condition that opened an HTMLBlockKind
// block, per the CommonMark HTML block grammar, or 0 otherwise.
func (b *Block) HTMLBlockType() int {
	if b.Kind() != HTMLBlockKind {
		return 0
	}
	return b.htmlBlockType
}

// TableAlignments returns the per-column alignment of a TableKind
// block.
func (b *Block) TableAlignments() []CellAlignment {
	return b.tableAlignments
}

// IsHeaderRow reports whether a TableRowKind block is the table's
// header row.
func (b *Block) IsHeaderRow() bool {
	return b.Kind() == TableRowKind && b.tableHeader
}

// IsTask reports whether an ItemKind block begins with a GFM tasklist
// checkbox.
func (b *Block) IsTask() bool {
	return b.Kind() == ItemKind && b.taskItem
}

// TaskChecked reports whether an IsTask item's checkbox is checked.
func (b *Block) TaskChecked() bool {
	return b.taskChecked
}

func (b *Block) lastChild() *Block {
	if len(b.children) == 0 {
		return nil
	}
	return b.children[len(b.children)-1]
}

func (b *Block) appendChild(child *Block) {
	child.parent = b
	b.children = append(b.children, child)
}

// InlineKind is a tag identifying the variant of an [Inline] node.
type InlineKind uint8

const (
	TextKind InlineKind = 1 + iota
	SoftBreakKind
	LineBreakKind
	CodeKind
	HTMLInlineKind
	EmphKind
	StrongKind
	StrikethroughKind
	SuperscriptKind
	LinkKind
	ImageKind
)

// Inline is an intra-block content element: text, emphasis, a link, a
// code span, and so on.
type Inline struct {
	kind     InlineKind
	parent   *Inline
	children []*Inline

	// literal holds the decoded text for TextKind, the raw content for
	// CodeKind and HTMLInlineKind.
	literal []byte

	// Link and Image.
	destination string
	title       string

	startLine, startColumn int
	endLine, endColumn     int
}

func (in *Inline) Kind() InlineKind {
	if in == nil {
		return 0
	}
	return in.kind
}

func (in *Inline) Parent() *Inline {
	if in == nil {
		return nil
	}
	return in.parent
}

func (in *Inline) ChildCount() int {
	if in == nil {
		return 0
	}
	return len(in.children)
}

func (in *Inline) Child(i int) *Inline {
	return in.children[i]
}

func (in *Inline) Children() []*Inline {
	if in == nil {
		return nil
	}
	return in.children
}

// Literal returns the decoded text of a TextKind inline or the raw
// content of a CodeKind/HTMLInlineKind inline.
func (in *Inline) Literal() []byte {
	if in == nil {
		return nil
	}
	return in.literal
}

// Destination returns a Link/Image's URL.
func (in *Inline) Destination() string {
	return in.destination
}

// Title returns a Link/Image's title.
func (in *Inline) Title() string {
	return in.title
}

func (in *Inline) StartLine() int   { return in.startLine }
func (in *Inline) StartColumn() int { return in.startColumn }
func (in *Inline) EndLine() int     { return in.endLine }
func (in *Inline) EndColumn() int   { return in.endColumn }

func (in *Inline) appendChild(child *Inline) {
	child.parent = in
	in.children = append(in.children, child)
}

// Span is a half-open byte range, typically relative to the start of a
// single line being scanned. NullSpan (Start and End both -1, which
// IsValid rejects) denotes "no match" for the scanner functions in
// scanners.go.
type Span struct {
	Start, End int
}

// NullSpan returns a Span representing no match.
func NullSpan() Span {
	return Span{Start: -1, End: -1}
}

// IsValid reports whether the span denotes an actual match.
func (s Span) IsValid() bool {
	return s.Start >= 0 && s.End >= s.Start
}

func (s Span) Len() int {
	if !s.IsValid() {
		return 0
	}
	return s.End - s.Start
}
