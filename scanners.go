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

// This file collects the atomic grammar scanners: predicate functions
// over a single line (or a small window of text) that report how many
// bytes of a fixed CommonMark/GFM construct are present at the start
// of the input, per spec §2 component 4. Each is a pure function with
// no parser state.

package commonmark

import (
	"bytes"

	"golang.org/x/net/html/atom"
)

// parseThematicBreak reports the end of a thematic break line, or -1.
// Assumes the caller has stripped leading indentation.
//
// https://spec.commonmark.org/0.30/#thematic-breaks
func parseThematicBreak(line []byte) (end int) {
	n := 0
	var want byte
	for i, b := range line {
		switch b {
		case '-', '_', '*':
			if n == 0 {
				want = b
			} else if b != want {
				return -1
			}
			n++
			end = i + 1
		case ' ', '\t', '\r', '\n':
			// Ignore.
		default:
			return -1
		}
	}
	if n < 3 {
		return -1
	}
	return end
}

type atxHeading struct {
	level   int
	content Span
}

// parseATXHeading attempts to parse line as an ATX heading start.
// level is zero if it is not one. Assumes stripped leading
// indentation.
//
// https://spec.commonmark.org/0.30/#atx-headings
func parseATXHeading(line []byte) atxHeading {
	var h atxHeading
	for h.level < len(line) && line[h.level] == '#' {
		h.level++
	}
	if h.level == 0 || h.level > 6 {
		return atxHeading{}
	}

	i := h.level
	if i >= len(line) || line[i] == '\n' || line[i] == '\r' {
		h.content = Span{Start: i, End: i}
		return h
	}
	if !isSpaceOrTab(line[i]) {
		return atxHeading{}
	}
	i++
	for i < len(line) && isSpaceOrTab(line[i]) {
		i++
	}
	h.content.Start = i
	h.content.End = len(line)

	hitHash := false
scanBack:
	for ; h.content.End > h.content.Start; h.content.End-- {
		switch line[h.content.End-1] {
		case '\r', '\n':
		case ' ', '\t':
			if isEndEscaped(line[:h.content.End-1]) {
				break scanBack
			}
		case '#':
			hitHash = true
			break scanBack
		default:
			break scanBack
		}
	}
	if !hitHash {
		return h
	}
scanTrailingHashes:
	for i := h.content.End - 1; ; i-- {
		if i <= h.content.Start {
			h.content.End = h.content.Start
			break
		}
		switch line[i] {
		case '#':
		case ' ', '\t':
			h.content.End = i + 1
			break scanTrailingHashes
		default:
			return h
		}
	}
	for ; h.content.End > h.content.Start; h.content.End-- {
		if b := line[h.content.End-1]; !isSpaceOrTab(b) || isEndEscaped(line[:h.content.End-1]) {
			break
		}
	}
	return h
}

// parseSetextHeadingUnderline returns the heading level (1 or 2) if
// line is a setext underline, or 0 otherwise.
//
// https://spec.commonmark.org/0.30/#setext-heading-underline
func parseSetextHeadingUnderline(line []byte) (level int) {
	if len(line) == 0 {
		return 0
	}
	switch line[0] {
	case '=':
		level = 1
	case '-':
		level = 2
	default:
		return 0
	}
	for i := 1; i < len(line); i++ {
		if line[i] != line[0] {
			if !isBlankLine(line[i:]) {
				return 0
			}
			return level
		}
	}
	return level
}

type codeFence struct {
	char byte
	n    int
	info Span
}

// parseCodeFence attempts to parse a fence marker at the start of
// line. n is 0 if there is none.
//
// https://spec.commonmark.org/0.30/#code-fence
func parseCodeFence(line []byte) codeFence {
	const minConsecutive = 3
	if len(line) < minConsecutive || (line[0] != '`' && line[0] != '~') {
		return codeFence{info: NullSpan()}
	}
	f := codeFence{char: line[0], n: 1, info: NullSpan()}
	for f.n < len(line) && line[f.n] == f.char {
		f.n++
	}
	if f.n < minConsecutive {
		return codeFence{info: NullSpan()}
	}
	for i := f.n; i < len(line) && f.info.Start < 0; i++ {
		if c := line[i]; !isSpaceTabOrLineEnding(c) {
			f.info.Start = i
		}
	}
	if f.info.Start >= 0 {
		for f.info.End = len(line); f.info.End > f.info.Start; f.info.End-- {
			if c := line[f.info.End-1]; !isSpaceTabOrLineEnding(c) {
				break
			}
		}
		if f.char == '`' && bytes.IndexByte(line[f.info.Start:f.info.End], '`') >= 0 {
			return codeFence{info: NullSpan()}
		}
	}
	return f
}

// htmlBlockTag6 is the set of tag names that open an HTML block of
// type 6, per the CommonMark HTML-block grammar.
//
// https://spec.commonmark.org/0.30/#html-blocks
var htmlBlockTag6 = buildTag6Set()

func buildTag6Set() map[atom.Atom]bool {
	names := []atom.Atom{
		atom.Address, atom.Article, atom.Aside, atom.Base, atom.Basefont,
		atom.Blockquote, atom.Body, atom.Caption, atom.Center, atom.Col,
		atom.Colgroup, atom.Dd, atom.Details, atom.Dialog, atom.Dir, atom.Div,
		atom.Dl, atom.Dt, atom.Fieldset, atom.Figcaption, atom.Figure,
		atom.Footer, atom.Form, atom.Frame, atom.Frameset, atom.H1, atom.H2,
		atom.H3, atom.H4, atom.H5, atom.H6, atom.Head, atom.Header, atom.Hr,
		atom.Html, atom.Iframe, atom.Legend, atom.Li, atom.Link, atom.Main,
		atom.Menu, atom.Menuitem, atom.Nav, atom.Noframes, atom.Ol,
		atom.Optgroup, atom.Option, atom.P, atom.Param, atom.Section,
		atom.Summary, atom.Table, atom.Tbody, atom.Td, atom.Tfoot, atom.Th,
		atom.Thead, atom.Title, atom.Tr, atom.Track, atom.Ul,
	}
	m := make(map[atom.Atom]bool, len(names))
	for _, a := range names {
		m[a] = true
	}
	return m
}

var htmlBlockScriptLike = map[atom.Atom]bool{
	atom.Script: true, atom.Pre: true, atom.Style: true, atom.Textarea: true,
}

// htmlBlockStart reports which HTML-block condition (1..7) a line
// opens, given the current container kind (type 7 cannot interrupt a
// paragraph). Assumes stripped leading indentation (must be < 4
// columns, already verified by the caller).
func htmlBlockStart(line []byte, inParagraph bool) int {
	if len(line) == 0 || line[0] != '<' {
		return 0
	}
	rest := line[1:]
	switch {
	case len(rest) >= 3 && rest[0] == '!' && rest[1] == '-' && rest[2] == '-':
		return 2
	case len(rest) >= 1 && rest[0] == '?':
		return 3
	}
	if len(rest) >= 1 && rest[0] == '!' {
		if len(rest) >= 8 && bytes.HasPrefix(rest[1:], []byte("[CDATA[")) {
			return 5
		}
		if len(rest) >= 2 && isASCIIAlpha(rest[1]) {
			return 4
		}
	}
	closing := false
	tagStart := rest
	if len(rest) > 0 && rest[0] == '/' {
		closing = true
		tagStart = rest[1:]
	}
	name, after := scanTagName(tagStart)
	if name == "" {
		return 0
	}
	a := atom.Lookup(bytes.ToLower([]byte(name)))
	if htmlBlockScriptLike[a] {
		if followedByWhitespaceOrEOLOrGT(after) || (len(after) > 0 && after[0] == '>') {
			return 1
		}
	}
	if htmlBlockTag6[a] {
		if followedByWhitespaceOrEOLOrGT(after) {
			return 6
		}
	}
	if !inParagraph {
		// Type 7: a single complete open or closing tag, alone on the
		// line aside from trailing whitespace.
		var tagEnd int
		if closing {
			tagEnd = parseClosingTagRemainder(after)
		} else {
			tagEnd = parseOpenTagRemainder(after)
		}
		if tagEnd >= 0 && isBlankLine(after[tagEnd:]) {
			return 7
		}
	}
	return 0
}

func followedByWhitespaceOrEOLOrGT(after []byte) bool {
	if len(after) == 0 {
		return true
	}
	return isSpaceTabOrLineEnding(after[0]) || after[0] == '>'
}

func scanTagName(b []byte) (name string, after []byte) {
	i := 0
	for i < len(b) && (isASCIIAlnum(b[i]) || b[i] == '-') {
		i++
	}
	if i == 0 || !isASCIIAlpha(b[0]) {
		return "", b
	}
	return string(b[:i]), b[i:]
}

// parseOpenTagRemainder parses attributes and the closing '>' or '/>'
// of an open tag (the part after the tag name), returning the byte
// offset just past '>', or -1 if malformed.
func parseOpenTagRemainder(b []byte) int {
	i := 0
	for {
		for i < len(b) && isSpaceTabOrLineEnding(b[i]) {
			i++
		}
		if i < len(b) && b[i] == '/' {
			i++
			if i < len(b) && b[i] == '>' {
				return i + 1
			}
			return -1
		}
		if i < len(b) && b[i] == '>' {
			return i + 1
		}
		// Attribute name.
		nameStart := i
		for i < len(b) && (isASCIIAlnum(b[i]) || b[i] == '_' || b[i] == ':' || b[i] == '-') {
			i++
		}
		if i == nameStart {
			return -1
		}
		spaceBefore := i
		for i < len(b) && isSpaceTabOrLineEnding(b[i]) {
			i++
		}
		if i < len(b) && b[i] == '=' {
			i++
			for i < len(b) && isSpaceTabOrLineEnding(b[i]) {
				i++
			}
			if i >= len(b) {
				return -1
			}
			switch b[i] {
			case '"':
				end := bytes.IndexByte(b[i+1:], '"')
				if end < 0 {
					return -1
				}
				i = i + 1 + end + 1
			case '\'':
				end := bytes.IndexByte(b[i+1:], '\'')
				if end < 0 {
					return -1
				}
				i = i + 1 + end + 1
			default:
				start := i
				for i < len(b) && isUnquotedAttrValueChar(b[i]) {
					i++
				}
				if i == start {
					return -1
				}
			}
		} else {
			i = spaceBefore
		}
	}
}

func isUnquotedAttrValueChar(c byte) bool {
	return !isSpaceTabOrLineEnding(c) && c != '"' && c != '\'' && c != '=' && c != '<' && c != '>' && c != '`'
}

func parseClosingTagRemainder(b []byte) int {
	i := 0
	for i < len(b) && isSpaceTabOrLineEnding(b[i]) {
		i++
	}
	if i < len(b) && b[i] == '>' {
		return i + 1
	}
	return -1
}

// htmlBlockEndMatches reports whether line (the remainder of the
// current line from the first non-space character) contains the
// closing sequence that ends an HTML block of the given type 1-5. It
// is meaningless for types 6 and 7, which end at the next blank line
// instead.
//
// https://spec.commonmark.org/0.30/#html-blocks
func htmlBlockEndMatches(blockType int, line []byte) bool {
	switch blockType {
	case 1:
		lower := bytes.ToLower(line)
		return bytes.Contains(lower, []byte("</script>")) ||
			bytes.Contains(lower, []byte("</pre>")) ||
			bytes.Contains(lower, []byte("</style>")) ||
			bytes.Contains(lower, []byte("</textarea>"))
	case 2:
		return bytes.Contains(line, []byte("-->"))
	case 3:
		return bytes.Contains(line, []byte("?>"))
	case 4:
		return bytes.IndexByte(line, '>') >= 0
	case 5:
		return bytes.Contains(line, []byte("]]>"))
	default:
		return false
	}
}

// spaceCharRun returns the length of the run of ASCII space/tab
// characters starting at line[0].
func spaceCharRun(line []byte) int {
	i := 0
	for i < len(line) && isSpaceOrTab(line[i]) {
		i++
	}
	return i
}
