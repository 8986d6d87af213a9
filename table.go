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

// This file implements the GFM table extension (spec §4.6): a
// paragraph of exactly one line, immediately followed by a delimiter
// row whose cell count matches, becomes a table header; every
// following non-blank line becomes a data row until the table is
// interrupted.
//
// https://github.github.com/gfm/#tables-extension-

package commonmark

import "bytes"

// tableRowLineMatches is the checkOpenBlocks continuation predicate
// for an already-open TableKind block: any non-blank line continues
// the table.
func tableRowLineMatches(rest []byte) bool {
	return !isBlankLine(rest)
}

// tryOpenTable checks whether container (the deepest still-open block)
// is a single-line paragraph whose text, together with line, forms a
// table header plus delimiter row. On success it replaces the
// paragraph with a Table containing the header row, consumes line, and
// returns the new Table block.
func tryOpenTable(p *blockParser, container *Block, line []byte) (*Block, bool) {
	if container.Kind() != ParagraphKind {
		return nil, false
	}
	headerLine := trimTrailingSpaceTab(bytes.TrimRight(container.content, "\r\n"))
	if bytes.ContainsAny(headerLine, "\n\r") {
		return nil, false
	}
	if len(headerLine) == 0 || !bytes.Contains(headerLine, []byte{'|'}) {
		return nil, false
	}
	headerCells := splitTableRow(headerLine)
	if len(headerCells) == 0 {
		return nil, false
	}

	delimLine := trimSpaceTab(trimTrailingBlankLines(append([]byte(nil), line[p.firstNonspace:]...)))
	aligns, ok := parseDelimiterRow(delimLine)
	if !ok || len(aligns) != len(headerCells) {
		return nil, false
	}

	table := &Block{
		kind:            TableKind,
		open:            true,
		startLine:       container.startLine,
		startColumn:     container.startColumn,
		tableAlignments: aligns,
	}
	parent := container.Parent()
	for i, c := range parent.children {
		if c == container {
			parent.children[i] = table
			break
		}
	}
	table.parent = parent

	header := &Block{
		kind:        TableRowKind,
		startLine:   container.startLine,
		startColumn: container.startColumn,
		tableHeader: true,
	}
	table.appendChild(header)
	for i, cellText := range headerCells {
		cell := &Block{kind: TableCellKind, content: cellText, startLine: container.startLine}
		_ = i
		header.appendChild(cell)
	}

	p.advanceOffset(line, len(line)-p.offset, false)
	return table, true
}

// splitTableRow splits a table row's raw text into per-cell content on
// unescaped pipes, trimming one layer of leading/trailing pipe and the
// surrounding whitespace of each cell.
func splitTableRow(line []byte) [][]byte {
	trimmed := trimSpaceTab(line)
	if len(trimmed) > 0 && trimmed[0] == '|' {
		trimmed = trimmed[1:]
	}
	trimmed = trimSpaceTab(trimmed)
	if n := len(trimmed); n > 0 && trimmed[n-1] == '|' && !isEndEscaped(trimmed[:n-1]) {
		trimmed = trimmed[:n-1]
	}

	var cells [][]byte
	var cur []byte
	for i := 0; i < len(trimmed); i++ {
		c := trimmed[i]
		if c == '\\' && i+1 < len(trimmed) {
			cur = append(cur, c, trimmed[i+1])
			i++
			continue
		}
		if c == '|' {
			cells = append(cells, trimSpaceTab(cur))
			cur = nil
			continue
		}
		cur = append(cur, c)
	}
	cells = append(cells, trimSpaceTab(cur))
	return cells
}

// parseDelimiterRow parses a GFM table delimiter row, e.g.
// "| --- | :--: | ---: |", returning the declared alignment of each
// column.
func parseDelimiterRow(line []byte) ([]CellAlignment, bool) {
	trimmed := trimSpaceTab(line)
	if len(trimmed) > 0 && trimmed[0] == '|' {
		trimmed = trimmed[1:]
	}
	if n := len(trimmed); n > 0 && trimmed[n-1] == '|' {
		trimmed = trimmed[:n-1]
	}
	parts := bytes.Split(trimmed, []byte{'|'})
	aligns := make([]CellAlignment, 0, len(parts))
	for _, part := range parts {
		cell := trimSpaceTab(part)
		if len(cell) == 0 {
			return nil, false
		}
		left := cell[0] == ':'
		right := cell[len(cell)-1] == ':'
		dashes := cell
		if left {
			dashes = dashes[1:]
		}
		if right && len(dashes) > 0 {
			dashes = dashes[:len(dashes)-1]
		}
		if len(dashes) == 0 {
			return nil, false
		}
		for _, c := range dashes {
			if c != '-' {
				return nil, false
			}
		}
		switch {
		case left && right:
			aligns = append(aligns, AlignCenter)
		case left:
			aligns = append(aligns, AlignLeft)
		case right:
			aligns = append(aligns, AlignRight)
		default:
			aligns = append(aligns, AlignNone)
		}
	}
	return aligns, true
}

// addTableRow parses line as a data row of table and appends it,
// padding or truncating cells to match the table's column count per
// the GFM extension's lenient row-length rule.
func addTableRow(table *Block, line []byte) {
	cells := splitTableRow(line)
	n := len(table.tableAlignments)
	row := &Block{kind: TableRowKind}
	table.appendChild(row)
	for i := 0; i < n; i++ {
		var content []byte
		if i < len(cells) {
			content = cells[i]
		}
		row.appendChild(&Block{kind: TableCellKind, content: content})
	}
}
