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

package commonmark

// codeIndent is the number of columns of indentation that opens an
// indented code block.
//
// https://spec.commonmark.org/0.30/#indented-code-blocks
const codeIndent = 4

// blockParser drives the block-phase line processor (spec §4.2): an
// open-edge walk down the spine of already-open containers, followed
// by greedily opening new containers on whatever prefix of the line
// remains, followed by appending the rest of the line as text.
type blockParser struct {
	doc     *Block
	options Options
	refMap  ReferenceMap

	current        *Block // deepest block that last received text
	lineNumber     int
	lastLineLength int // byte length of the previous logical line, sans EOL

	// Scratch state recomputed for each line by findFirstNonspace /
	// advanceOffset; see spec §4.3.
	offset               int
	column               int
	partiallyConsumedTab bool
	firstNonspace        int
	firstNonspaceColumn  int
	indent               int
	blank                bool
}

func newBlockParser(options Options) *blockParser {
	doc := &Block{kind: DocumentKind, open: true, startLine: 1}
	p := &blockParser{
		doc:     doc,
		options: options,
		refMap:  make(ReferenceMap),
		current: doc,
	}
	return p
}

// acceptsLines reports whether a block of the given kind accumulates
// raw text directly (spec §3: "A leaf block that can accept lines").
func acceptsLines(kind BlockKind) bool {
	switch kind {
	case ParagraphKind, HeadingKind, CodeBlockKind, HTMLBlockKind:
		return true
	default:
		return false
	}
}

// canContainType reports whether parent may directly contain a child
// of childKind, per spec §3's "Lists contain only Item children" and
// the general container/leaf split.
func canContainType(parent *Block, childKind BlockKind) bool {
	if childKind == ItemKind {
		return parent.Kind() == ListKind
	}
	switch parent.Kind() {
	case DocumentKind, BlockQuoteKind, ItemKind:
		return childKind != ItemKind
	default:
		return false
	}
}

// findFirstNonspace scans line for the first non-space/tab byte
// starting at the parser's current offset/column, recording its byte
// position and column, and the indent (in columns) consumed to reach
// it. It also records whether the remainder of the line is blank.
func (p *blockParser) findFirstNonspace(line []byte) {
	p.firstNonspace = p.offset
	p.firstNonspaceColumn = p.column
	charsToTab := tabStopSize - (p.column % tabStopSize)
	for {
		if p.firstNonspace >= len(line) {
			break
		}
		switch line[p.firstNonspace] {
		case ' ':
			p.firstNonspace++
			p.firstNonspaceColumn++
			charsToTab--
			if charsToTab == 0 {
				charsToTab = tabStopSize
			}
		case '\t':
			p.firstNonspace++
			p.firstNonspaceColumn += charsToTab
			charsToTab = tabStopSize
		default:
			goto done
		}
	}
done:
	p.indent = p.firstNonspaceColumn - p.column
	p.blank = p.firstNonspace < len(line) && isLineEndChar(line[p.firstNonspace])
	if p.firstNonspace >= len(line) {
		p.blank = true
	}
}

// advanceOffset advances the parser's position by count units: bytes
// if columns is false, display columns (expanding tabs) if true. A tab
// that straddles the requested boundary is recorded as partially
// consumed and its byte is not consumed until the rest of its columns
// are used or flushed, per spec §4.3.
func (p *blockParser) advanceOffset(line []byte, count int, columns bool) {
	for count > 0 {
		if p.offset >= len(line) {
			return
		}
		if line[p.offset] == '\t' {
			charsToTab := tabStopSize - (p.column % tabStopSize)
			if columns {
				if charsToTab > count {
					p.partiallyConsumedTab = true
					p.column += count
					count = 0
				} else {
					p.partiallyConsumedTab = false
					p.column += charsToTab
					p.offset++
					count -= charsToTab
				}
			} else {
				p.partiallyConsumedTab = false
				p.column += charsToTab
				p.offset++
				count--
			}
		} else {
			p.partiallyConsumedTab = false
			p.offset++
			p.column++
			count--
		}
	}
}

// processLine runs the four phases of spec §4.2 on a single logical
// line (including its terminator, if any).
func (p *blockParser) processLine(line []byte) {
	p.offset = 0
	p.column = 0
	p.blank = false
	p.partiallyConsumedTab = false

	if p.lineNumber == 0 && hasBOM(line) {
		p.offset += 3
	}
	p.lineNumber++

	allMatched := true
	lastMatched, shouldContinue := p.checkOpenBlocks(line, &allMatched)
	if shouldContinue {
		container := lastMatched
		current := p.current
		p.openNewBlocks(&container, line, allMatched)
		if current == p.current {
			p.addTextToContainer(container, lastMatched, line)
		}
	}

	p.lastLineLength = len(line)
	if p.lastLineLength > 0 && line[p.lastLineLength-1] == '\n' {
		p.lastLineLength--
	}
	if p.lastLineLength > 0 && line[p.lastLineLength-1] == '\r' {
		p.lastLineLength--
	}
}

func hasBOM(line []byte) bool {
	return len(line) >= 3 && line[0] == 0xEF && line[1] == 0xBB && line[2] == 0xBF
}

// checkOpenBlocks walks the open spine (phase 1), matching each open
// container's continuation predicate against line. It returns the
// last container that matched (which callers must still call
// openNewBlocks on) and whether the line should be processed further;
// that is false only when parseCodeBlockPrefix found a closing fence,
// which finalizes the fenced code block and consumes the line.
func (p *blockParser) checkOpenBlocks(line []byte, allMatched *bool) (lastMatched *Block, shouldContinue bool) {
	*allMatched = true
	container := p.doc
	shouldContinue = true
	for lastOpenChild(container) != nil {
		container = lastOpenChild(container)
		p.findFirstNonspace(line)

		switch container.Kind() {
		case BlockQuoteKind:
			if !p.parseBlockQuotePrefix(line) {
				*allMatched = false
				return container.Parent(), shouldContinue
			}
		case ItemKind:
			if !p.parseItemPrefix(line, container) {
				*allMatched = false
				return container.Parent(), shouldContinue
			}
		case CodeBlockKind:
			if !p.parseCodeBlockPrefix(line, container, &shouldContinue) {
				*allMatched = false
				return container.Parent(), shouldContinue
			}
		case HTMLBlockKind:
			if !p.parseHTMLBlockPrefix(container.htmlBlockType) {
				*allMatched = false
				return container.Parent(), shouldContinue
			}
		case ParagraphKind:
			if p.blank {
				*allMatched = false
				return container.Parent(), shouldContinue
			}
		case TableKind:
			if !tableRowLineMatches(line[p.firstNonspace:]) {
				*allMatched = false
				return container.Parent(), shouldContinue
			}
			continue
		case HeadingKind, TableRowKind, TableCellKind:
			*allMatched = false
			return container.Parent(), shouldContinue
		}
	}
	return container, shouldContinue
}

func lastOpenChild(b *Block) *Block {
	last := b.lastChild()
	if last == nil || !last.open {
		return nil
	}
	return last
}

func (p *blockParser) parseBlockQuotePrefix(line []byte) bool {
	if p.indent <= 3 && p.firstNonspace < len(line) && line[p.firstNonspace] == '>' {
		p.advanceOffset(line, p.indent+1, true)
		if p.offset < len(line) && isSpaceOrTab(line[p.offset]) {
			p.advanceOffset(line, 1, true)
		}
		return true
	}
	return false
}

func (p *blockParser) parseItemPrefix(line []byte, container *Block) bool {
	nl := container.list
	if p.indent >= nl.MarkerOffset+nl.Padding {
		p.advanceOffset(line, nl.MarkerOffset+nl.Padding, true)
		return true
	}
	if p.blank && container.ChildCount() > 0 {
		p.advanceOffset(line, p.firstNonspace-p.offset, false)
		return true
	}
	return false
}

func (p *blockParser) parseCodeBlockPrefix(line []byte, container *Block, shouldContinue *bool) bool {
	if !container.codeFenced {
		if p.indent >= codeIndent {
			p.advanceOffset(line, codeIndent, true)
			return true
		}
		if p.blank {
			p.advanceOffset(line, p.firstNonspace-p.offset, false)
			return true
		}
		return false
	}

	matched := 0
	if p.indent <= 3 && p.firstNonspace < len(line) && line[p.firstNonspace] == container.codeFenceChar {
		matched = closeCodeFenceLength(line[p.firstNonspace:], container.codeFenceChar)
	}
	if matched >= container.codeFenceLength {
		*shouldContinue = false
		p.advanceOffset(line, matched, false)
		p.current = p.finalize(container)
		return false
	}

	i := container.codeFenceOffset
	for i > 0 && p.offset < len(line) && isSpaceOrTab(line[p.offset]) {
		p.advanceOffset(line, 1, true)
		i--
	}
	return true
}

// closeCodeFenceLength returns the length of a closing fence of the
// given char at the start of line, or 0 if there is none.
func closeCodeFenceLength(line []byte, char byte) int {
	n := 0
	for n < len(line) && line[n] == char {
		n++
	}
	if n < 3 {
		return 0
	}
	for i := n; i < len(line); i++ {
		if !isSpaceTabOrLineEnding(line[i]) {
			return 0
		}
	}
	return n
}

func (p *blockParser) parseHTMLBlockPrefix(blockType int) bool {
	switch blockType {
	case 1, 2, 3, 4, 5:
		return true
	case 6, 7:
		return !p.blank
	default:
		panic("invalid html block type")
	}
}

// openNewBlocks runs phase 2: greedily opening new containers on the
// remaining prefix of the line.
func (p *blockParser) openNewBlocks(container **Block, line []byte, allMatched bool) {
	maybeLazy := p.current.Kind() == ParagraphKind

	for (*container).Kind() != CodeBlockKind && (*container).Kind() != HTMLBlockKind {
		p.findFirstNonspace(line)
		indented := p.indent >= codeIndent

		switch {
		case !indented && p.firstNonspace < len(line) && line[p.firstNonspace] == '>':
			startCol := p.firstNonspace
			p.advanceOffset(line, p.firstNonspace+1-p.offset, false)
			if p.offset < len(line) && isSpaceOrTab(line[p.offset]) {
				p.advanceOffset(line, 1, true)
			}
			*container = p.addChild(*container, BlockQuoteKind, startCol+1)

		case !indented && tryATXHeading(p, container, line):
			// handled inside tryATXHeading

		case !indented && tryOpenFence(p, container, line):
			// handled inside tryOpenFence

		case !indented && tryHTMLBlock(p, container, line):
			// handled inside tryHTMLBlock

		case !indented && (*container).Kind() == ParagraphKind && trySetext(p, container, line):
			// handled inside trySetext

		case !indented && (allMatched || (*container).Kind() != ParagraphKind) && tryThematicBreak(p, container, line):
			// handled inside tryThematicBreak

		case (!indented || (*container).Kind() == ListKind) && tryListMarker(p, container, line):
			// handled inside tryListMarker

		case indented && !maybeLazy && !p.blank:
			p.advanceOffset(line, codeIndent, true)
			*container = p.addChild(*container, CodeBlockKind, p.offset+1)

		default:
			if !indented && p.options.ExtTable {
				if newContainer, ok := tryOpenTable(p, *container, line); ok {
					*container = newContainer
					maybeLazy = false
					if acceptsLines((*container).Kind()) {
						return
					}
					continue
				}
			}
			return
		}

		if acceptsLines((*container).Kind()) {
			return
		}
		maybeLazy = false
	}
}

// addChild finalizes parent (and its ancestors) until it can contain a
// block of kind, then appends and returns a new open child of that
// kind.
func (p *blockParser) addChild(parent *Block, kind BlockKind, startColumn int) *Block {
	for !canContainType(parent, kind) {
		parent = p.finalize(parent)
	}
	child := &Block{
		kind:        kind,
		open:        true,
		startLine:   p.lineNumber,
		startColumn: startColumn,
	}
	parent.appendChild(child)
	return child
}

func (p *blockParser) addTextToContainer(container, lastMatched *Block, line []byte) {
	p.findFirstNonspace(line)

	if p.blank {
		if last := container.lastChild(); last != nil {
			last.lastLineBlank = true
		}
	}
	container.lastLineBlank = p.blank && !(container.Kind() == BlockQuoteKind ||
		container.Kind() == HeadingKind ||
		container.Kind() == ThematicBreakKind ||
		(container.Kind() == CodeBlockKind && !container.codeFenced) ||
		(container.Kind() == ItemKind && (container.ChildCount() > 0 || container.startLine != p.lineNumber)))

	for parent := container.Parent(); parent != nil; parent = parent.Parent() {
		parent.lastLineBlank = false
	}

	if p.current != lastMatched && container == lastMatched && !p.blank && p.current.Kind() == ParagraphKind {
		p.addLine(p.current, line)
		return
	}

	for p.current != lastMatched {
		p.current = p.finalize(p.current)
	}

	switch {
	case container.Kind() == TableKind:
		if !p.blank {
			p.advanceOffset(line, p.firstNonspace-p.offset, false)
			addTableRow(container, line[p.offset:])
		}
	case container.Kind() == CodeBlockKind:
		p.addLine(container, line)
	case container.Kind() == HTMLBlockKind:
		p.addLine(container, line)
		if htmlBlockEndMatches(container.htmlBlockType, line[p.firstNonspace:]) {
			container = p.finalize(container)
		}
	case p.blank:
		// Nothing to add.
	case acceptsLines(container.Kind()):
		if container.Kind() == HeadingKind && !container.headingSetext {
			line = chopATXTrailer(line)
		}
		p.advanceOffset(line, p.firstNonspace-p.offset, false)
		p.addLine(container, line)
	default:
		startCol := p.firstNonspace + 1
		container = p.addChild(container, ParagraphKind, startCol)
		p.advanceOffset(line, p.firstNonspace-p.offset, false)
		p.addLine(container, line)
	}

	p.current = container
}

func (p *blockParser) addLine(node *Block, line []byte) {
	if !node.open {
		panic("addLine on closed block")
	}
	if p.partiallyConsumedTab {
		p.offset++
		charsToTab := tabStopSize - (p.column % tabStopSize)
		for i := 0; i < charsToTab; i++ {
			node.content = append(node.content, ' ')
		}
	}
	if p.offset < len(line) {
		node.content = append(node.content, line[p.offset:]...)
	}
}

// finish flushes any buffered state, finalizes every still-open block,
// and runs the inline phase. It returns the document root.
func (p *blockParser) finish() *Block {
	p.finalizeDocument()
	runInlinePasses(p.doc, p.refMap, p.options)
	return p.doc
}

func (p *blockParser) finalizeDocument() {
	for p.current != p.doc {
		p.current = p.finalize(p.current)
	}
	p.finalize(p.doc)
}

// finalize closes node (setting its end position) and applies any
// kind-specific cleanup from spec §4.4, returning its parent.
func (p *blockParser) finalize(node *Block) *Block {
	if !node.open {
		panic("finalize on already-closed block")
	}
	node.open = false

	switch {
	case node.Kind() == DocumentKind, node.Kind() == CodeBlockKind && node.codeFenced, node.Kind() == HeadingKind && node.headingSetext:
		node.endLine = p.lineNumber
		node.endColumn = p.lastLineLength
	default:
		node.endLine = p.lineNumber - 1
		node.endColumn = p.lastLineLength
	}

	parent := node.Parent()

	switch node.Kind() {
	case ParagraphKind:
		for len(node.content) > 0 && node.content[0] == '[' {
			n := p.parseReferenceDefinition(node.content)
			if n <= 0 {
				break
			}
			node.content = node.content[n:]
		}
		if isBlankLine(node.content) {
			detachBlock(node)
		}
	case CodeBlockKind:
		if !node.codeFenced {
			node.content = trimTrailingBlankLines(node.content)
			node.content = append(node.content, '\n')
			node.codeLiteral = node.content
			node.content = nil
		} else {
			nl := indexLineEnd(node.content)
			info := decodeEntities(node.content[:nl])
			info = trimSpaceTab(info)
			info = unescapeBackslashes(info)
			node.codeInfo = info
			rest := node.content[nl:]
			if len(rest) > 0 && rest[0] == '\r' {
				rest = rest[1:]
			}
			if len(rest) > 0 && rest[0] == '\n' {
				rest = rest[1:]
			}
			node.codeLiteral = rest
			node.content = nil
		}
	case HTMLBlockKind:
		node.htmlLiteral = node.content
		node.content = nil
	case ListKind:
		finalizeListTightness(node)
	}

	return parent
}

func indexLineEnd(b []byte) int {
	for i, c := range b {
		if isLineEndChar(c) {
			return i
		}
	}
	return len(b)
}

func detachBlock(b *Block) {
	parent := b.parent
	if parent == nil {
		return
	}
	for i, c := range parent.children {
		if c == b {
			parent.children = append(parent.children[:i], parent.children[i+1:]...)
			break
		}
	}
	b.parent = nil
}

// finalizeListTightness implements spec §4.4's List finalization rule.
func finalizeListTightness(list *Block) {
	list.list.Tight = true
	for _, item := range list.children {
		if item.lastLineBlank && hasNextSibling(list, item) {
			list.list.Tight = false
			return
		}
		for _, sub := range item.children {
			if endsWithBlankLine(sub) && (hasNextSibling(list, item) || hasNextSibling(item, sub)) {
				list.list.Tight = false
				return
			}
		}
	}
}

func hasNextSibling(parent, child *Block) bool {
	for i, c := range parent.children {
		if c == child {
			return i+1 < len(parent.children)
		}
	}
	return false
}

// endsWithBlankLine reports whether block, or its last child
// recursively (skipping into list items), ends with a blank line.
func endsWithBlankLine(b *Block) bool {
	for b != nil {
		if b.lastLineBlank {
			return true
		}
		if b.Kind() == ItemKind && b.ChildCount() > 0 {
			b = b.lastChild()
			continue
		}
		return false
	}
	return false
}
