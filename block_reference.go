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

// parseReferenceDefinition attempts to parse a single link reference
// definition at the start of content, which must begin with '['. On
// success it records the definition in the parser's reference map and
// returns the number of bytes consumed; it returns 0 if content does
// not begin with a well-formed definition.
//
// https://spec.commonmark.org/0.30/#link-reference-definitions
func (p *blockParser) parseReferenceDefinition(content []byte) int {
	i := 0
	label, n, ok := scanLinkLabel(content[i:])
	if !ok || len(label) == 0 {
		return 0
	}
	i += n
	if i >= len(content) || content[i] != ':' {
		return 0
	}
	i++
	i += scanSPNL(content[i:])

	dest, n, ok := scanLinkDestination(content[i:])
	if !ok {
		return 0
	}
	i += n

	afterDest := i
	spacesBeforeTitle := scanSPNL(content[i:])
	titleStart := i + spacesBeforeTitle

	var title []byte
	titleEnd := -1
	if spacesBeforeTitle > 0 {
		if t, tn, tok := scanLinkTitle(content[titleStart:]); tok {
			rest := titleStart + tn
			trail := scanSpacesToLineEnd(content[rest:])
			if trail >= 0 {
				title = t
				titleEnd = rest + trail
			}
		}
	}

	var end int
	if titleEnd >= 0 {
		end = titleEnd
	} else {
		trail := scanSpacesToLineEnd(content[afterDest:])
		if trail < 0 {
			return 0
		}
		end = afterDest + trail
	}

	p.refMap.add(label, Reference{
		URL:   cleanURL(dest),
		Title: string(unescapeBackslashes(decodeEntities(title))),
	})
	return end
}

// scanSPNL consumes optional whitespace containing at most one line
// ending, returning the number of bytes consumed.
func scanSPNL(b []byte) int {
	i := 0
	for i < len(b) && isSpaceOrTab(b[i]) {
		i++
	}
	if i < len(b) && b[i] == '\r' {
		i++
	}
	if i < len(b) && b[i] == '\n' {
		i++
		for i < len(b) && isSpaceOrTab(b[i]) {
			i++
		}
	}
	return i
}

// scanSpacesToLineEnd returns the number of trailing-whitespace bytes
// up to and including the next line ending, or -1 if a non-whitespace
// byte appears first (other than end of input, which counts as a
// match with nothing consumed).
func scanSpacesToLineEnd(b []byte) int {
	i := 0
	for i < len(b) && isSpaceOrTab(b[i]) {
		i++
	}
	if i >= len(b) {
		return i
	}
	if b[i] == '\r' {
		i++
	}
	if i < len(b) && b[i] == '\n' {
		i++
		return i
	}
	if i >= len(b) {
		return i
	}
	return -1
}

// scanLinkLabel scans a "[...]" link label (used by both reference
// definitions and reference-style links/images), disallowing an
// unescaped nested '[', a blank label, and labels over 999 characters.
func scanLinkLabel(b []byte) (label []byte, n int, ok bool) {
	if len(b) == 0 || b[0] != '[' {
		return nil, 0, false
	}
	i := 1
	for i < len(b) {
		switch c := b[i]; {
		case c == '\\' && i+1 < len(b) && isASCIIPunct(b[i+1]):
			i += 2
		case c == '[':
			return nil, 0, false
		case c == ']':
			inner := b[1:i]
			if len(inner) > 999 || isBlankLine(inner) {
				return nil, 0, false
			}
			return inner, i + 1, true
		default:
			i++
		}
	}
	return nil, 0, false
}

// scanLinkDestination scans a link destination: either a
// "<...>"-bracketed form, or a bare sequence of non-whitespace
// characters with balanced, possibly-escaped parentheses.
func scanLinkDestination(b []byte) (dest []byte, n int, ok bool) {
	if len(b) > 0 && b[0] == '<' {
		i := 1
		for i < len(b) {
			switch c := b[i]; {
			case c == '\\' && i+1 < len(b) && isASCIIPunct(b[i+1]):
				i += 2
			case c == '>':
				return b[1:i], i + 1, true
			case c == '<' || isLineEndChar(c):
				return nil, 0, false
			default:
				i++
			}
		}
		return nil, 0, false
	}

	i := 0
	depth := 0
	for i < len(b) {
		switch c := b[i]; {
		case c == '\\' && i+1 < len(b) && isASCIIPunct(b[i+1]):
			i += 2
		case c == '(':
			depth++
			i++
		case c == ')':
			if depth == 0 {
				if i == 0 {
					return nil, 0, false
				}
				return b[:i], i, true
			}
			depth--
			i++
		case isSpaceTabOrLineEnding(c), c < 0x20:
			if i == 0 || depth != 0 {
				return nil, 0, false
			}
			return b[:i], i, true
		default:
			i++
		}
	}
	if depth != 0 || i == 0 {
		return nil, 0, false
	}
	return b[:i], i, true
}

// scanLinkTitle scans a quoted link title: "...", '...', or (...).
func scanLinkTitle(b []byte) (title []byte, n int, ok bool) {
	if len(b) == 0 {
		return nil, 0, false
	}
	var closer byte
	switch b[0] {
	case '"':
		closer = '"'
	case '\'':
		closer = '\''
	case '(':
		closer = ')'
	default:
		return nil, 0, false
	}
	i := 1
	for i < len(b) {
		switch c := b[i]; {
		case c == '\\' && i+1 < len(b) && isASCIIPunct(b[i+1]):
			i += 2
		case c == closer:
			return b[1:i], i + 1, true
		default:
			i++
		}
	}
	return nil, 0, false
}
