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

// This file holds the individual new-block openers dispatched from
// openNewBlocks in block.go, one per construct in spec §4.2's opening
// priority list. Each reports whether it matched, and on success
// leaves *container pointing at the newly opened block (possibly after
// closing some number of currently-open blocks via addChild).

func tryATXHeading(p *blockParser, container **Block, line []byte) bool {
	h := parseATXHeading(line[p.firstNonspace:])
	if h.level == 0 {
		return false
	}
	startCol := p.firstNonspace + 1
	content := append([]byte(nil), line[p.firstNonspace:][h.content.Start:h.content.End]...)
	p.advanceOffset(line, len(line)-p.offset, false)
	heading := p.addChild(*container, HeadingKind, startCol)
	heading.headingLevel = h.level
	heading.content = content
	*container = heading
	return true
}

func tryOpenFence(p *blockParser, container **Block, line []byte) bool {
	f := parseCodeFence(line[p.firstNonspace:])
	if f.n == 0 {
		return false
	}
	startCol := p.firstNonspace + 1
	fenceIndent := p.indent
	var info []byte
	if f.info.IsValid() {
		info = append([]byte(nil), line[p.firstNonspace:][f.info.Start:f.info.End]...)
	}
	p.advanceOffset(line, len(line)-p.offset, false)
	cb := p.addChild(*container, CodeBlockKind, startCol)
	cb.codeFenced = true
	cb.codeFenceChar = f.char
	cb.codeFenceLength = f.n
	cb.codeFenceOffset = fenceIndent
	cb.content = append(info, '\n')
	*container = cb
	return true
}

func tryHTMLBlock(p *blockParser, container **Block, line []byte) bool {
	inParagraph := (*container).Kind() == ParagraphKind
	t := htmlBlockStart(line[p.firstNonspace:], inParagraph)
	if t == 0 {
		return false
	}
	html := p.addChild(*container, HTMLBlockKind, p.firstNonspace+1)
	html.htmlBlockType = t
	*container = html
	return true
}

func trySetext(p *blockParser, container **Block, line []byte) bool {
	level := parseSetextHeadingUnderline(line[p.firstNonspace:])
	if level == 0 {
		return false
	}
	para := *container
	para.kind = HeadingKind
	para.headingLevel = level
	para.headingSetext = true
	p.advanceOffset(line, len(line)-p.offset, false)
	return true
}

func tryThematicBreak(p *blockParser, container **Block, line []byte) bool {
	end := parseThematicBreak(line[p.firstNonspace:])
	if end < 0 {
		return false
	}
	startCol := p.firstNonspace + 1
	p.advanceOffset(line, len(line)-p.offset, false)
	*container = p.addChild(*container, ThematicBreakKind, startCol)
	return true
}

func tryListMarker(p *blockParser, container **Block, line []byte) bool {
	interruptsParagraph := (*container).Kind() == ParagraphKind
	marker := parseListMarker(line[p.firstNonspace:], interruptsParagraph)
	if marker.end < 0 {
		return false
	}

	markerOffset := p.indent
	listStartCol := p.firstNonspace + 1
	p.advanceOffset(line, p.indent, true)

	columnBeforeMarker := p.column
	p.advanceOffset(line, marker.end, false)
	markerColumns := p.column - columnBeforeMarker

	savedOffset, savedColumn, savedPartialTab := p.offset, p.column, p.partiallyConsumedTab
	p.findFirstNonspace(line)
	spacesAfterMarker := p.indent
	blankAfter := p.blank

	var padding int
	if blankAfter || spacesAfterMarker > 4 {
		padding = markerColumns + 1
		p.offset, p.column, p.partiallyConsumedTab = savedOffset, savedColumn, savedPartialTab
		if p.offset < len(line) && isSpaceOrTab(line[p.offset]) {
			p.advanceOffset(line, 1, true)
		}
	} else {
		padding = markerColumns + spacesAfterMarker
		p.advanceOffset(line, spacesAfterMarker, true)
	}

	data := marker.data
	data.MarkerOffset = markerOffset
	data.Padding = padding

	listContainer := *container
	if listContainer.Kind() != ListKind || !listsMatch(listContainer.list, data) {
		listContainer = p.addChild(*container, ListKind, listStartCol)
		listContainer.list = data
	}
	item := p.addChild(listContainer, ItemKind, listStartCol)
	item.list = data
	*container = item
	return true
}
