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

import (
	"bytes"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// trimSpaceTab trims leading and trailing spaces and tabs (not other
// whitespace) from b.
func trimSpaceTab(b []byte) []byte {
	start := 0
	for start < len(b) && isSpaceOrTab(b[start]) {
		start++
	}
	end := len(b)
	for end > start && isSpaceOrTab(b[end-1]) {
		end--
	}
	return b[start:end]
}

// trimTrailingBlankLines removes blank lines (and their terminators)
// from the end of b, used when finalizing indented code blocks.
//
// https://spec.commonmark.org/0.30/#indented-code-blocks
func trimTrailingBlankLines(b []byte) []byte {
	end := len(b)
	for end > 0 {
		lineStart := bytes.LastIndexByte(b[:end], '\n')
		line := b[lineStart+1 : end]
		if !isBlankLine(line) {
			break
		}
		if lineStart < 0 {
			end = 0
			break
		}
		end = lineStart
	}
	return b[:end]
}

var labelFolder = cases.Fold()

// normalizeLabel implements the CommonMark notion of "matches" for
// reference labels: Unicode case folding plus collapsing of internal
// whitespace runs to a single space, with surrounding whitespace
// stripped.
//
// https://spec.commonmark.org/0.30/#matches
func normalizeLabel(label []byte) string {
	folded := labelFolder.String(string(label))
	var sb strings.Builder
	sb.Grow(len(folded))
	inSpace := false
	started := false
	for _, r := range folded {
		if unicode.IsSpace(r) {
			if started {
				inSpace = true
			}
			continue
		}
		if inSpace {
			sb.WriteByte(' ')
			inSpace = false
		}
		sb.WriteRune(r)
		started = true
	}
	return sb.String()
}

// chopATXTrailer removes a trailing run of '#' characters (preceded by
// whitespace, or constituting the whole remaining line) from an ATX
// heading's content, per the ATX heading grammar's optional closing
// sequence.
//
// https://spec.commonmark.org/0.30/#atx-headings
func chopATXTrailer(content []byte) []byte {
	end := len(content)
	for end > 0 && isSpaceOrTab(content[end-1]) {
		end--
	}
	hashEnd := end
	for end > 0 && content[end-1] == '#' {
		end--
	}
	if end == hashEnd {
		// No trailing hashes.
		return content
	}
	if end > 0 && !isSpaceOrTab(content[end-1]) {
		// Hashes weren't preceded by whitespace (or start of line):
		// they're part of the heading text.
		return trimTrailingSpaceTab(content)
	}
	for end > 0 && isSpaceOrTab(content[end-1]) {
		end--
	}
	return content[:end]
}

func trimTrailingSpaceTab(b []byte) []byte {
	end := len(b)
	for end > 0 && isSpaceOrTab(b[end-1]) {
		end--
	}
	return b[:end]
}

// unescapeBackslashes processes backslash escapes of ASCII punctuation,
// used when cleaning link destinations, titles, and fenced code info
// strings (which are not run through the full inline parser).
//
// https://spec.commonmark.org/0.30/#backslash-escapes
func unescapeBackslashes(s []byte) []byte {
	if bytes.IndexByte(s, '\\') < 0 {
		return s
	}
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && isASCIIPunct(s[i+1]) {
			out = append(out, s[i+1])
			i++
			continue
		}
		out = append(out, s[i])
	}
	return out
}

// cleanURL decodes entities and un-escapes backslashes in a raw link
// destination, matching comrak's strings::clean_url.
func cleanURL(s []byte) string {
	s = trimSpaceTab(s)
	if len(s) >= 2 && s[0] == '<' && s[len(s)-1] == '>' {
		s = s[1 : len(s)-1]
	}
	return string(unescapeBackslashes(decodeEntities(s)))
}

// cleanTitle decodes entities and un-escapes backslashes in a raw link
// title, stripping its surrounding quote/paren delimiters.
func cleanTitle(s []byte) string {
	if len(s) < 2 {
		return string(unescapeBackslashes(decodeEntities(s)))
	}
	first, last := s[0], s[len(s)-1]
	if (first == '"' && last == '"') || (first == '\'' && last == '\'') || (first == '(' && last == ')') {
		s = s[1 : len(s)-1]
	}
	return string(unescapeBackslashes(decodeEntities(s)))
}

// percentEncodeURL percent-encodes the bytes of a URL that are not
// already part of a percent-escape and are outside the small set of
// characters CommonMark's HTML renderer leaves untouched.
//
// https://spec.commonmark.org/0.30/#link-destination
func percentEncodeURL(s string) string {
	const safe = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789" +
		"-_.+!*'(),%#/:?=&~$@"
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '%' && i+2 < len(s) && isHexDigit(s[i+1]) && isHexDigit(s[i+2]) {
			sb.WriteByte(c)
			continue
		}
		if strings.IndexByte(safe, c) >= 0 {
			sb.WriteByte(c)
			continue
		}
		sb.WriteString("%")
		sb.WriteString(strings.ToUpper(hexByte(c)))
	}
	return sb.String()
}

func isHexDigit(c byte) bool {
	return isASCIIDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

const hexDigits = "0123456789ABCDEF"

func hexByte(c byte) string {
	return string([]byte{hexDigits[c>>4], hexDigits[c&0xf]})
}
