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

// This file implements the GFM "extended autolink" post-pass: bare
// "www." and "http(s)://" URLs and bare email addresses in ordinary
// text become links, without requiring CommonMark's "<...>" autolink
// delimiters. It runs after the main inline scan, over Text nodes that
// are not already inside a Link or Image.
//
// https://github.github.com/gfm/#autolinks-extension-
package commonmark

import (
	"bytes"
	"strings"
)

func autolinkBlock(b *Block) {
	if b.inline == nil {
		return
	}
	b.inline = autolinkInlines(b.inline)
}

func autolinkInlines(nodes []*Inline) []*Inline {
	out := make([]*Inline, 0, len(nodes))
	for _, n := range nodes {
		switch n.kind {
		case TextKind:
			out = append(out, splitAutolinks(n.literal)...)
		case LinkKind, ImageKind, CodeKind, HTMLInlineKind:
			out = append(out, n)
		default:
			n.children = autolinkInlines(n.children)
			out = append(out, n)
		}
	}
	return out
}

// splitAutolinks scans literal for bare URL/email autolinks, returning
// a sequence of Text and Link nodes covering the whole input.
func splitAutolinks(literal []byte) []*Inline {
	var out []*Inline
	start := 0
	i := 0
	flush := func(end int) {
		if end > start {
			out = append(out, &Inline{kind: TextKind, literal: literal[start:end]})
		}
	}
	for i < len(literal) {
		if match, n := matchAutolinkAt(literal, i); n > 0 {
			flush(i)
			out = append(out, match)
			i += n
			start = i
			continue
		}
		i++
	}
	flush(len(literal))
	if len(out) == 0 {
		return []*Inline{{kind: TextKind, literal: literal}}
	}
	return out
}

func matchAutolinkAt(b []byte, i int) (*Inline, int) {
	if !atWordBoundary(b, i) {
		return nil, 0
	}
	switch {
	case hasFoldPrefix(b[i:], "http://"), hasFoldPrefix(b[i:], "https://"):
		end := scanAutolinkExtent(b, i)
		if end <= i {
			return nil, 0
		}
		url := string(b[i:end])
		return &Inline{kind: LinkKind, destination: url, children: []*Inline{{kind: TextKind, literal: b[i:end]}}}, end - i
	case hasFoldPrefix(b[i:], "www."):
		end := scanAutolinkExtent(b, i)
		if end <= i || !bytes.ContainsRune(b[i:end], '.') {
			return nil, 0
		}
		url := "http://" + string(b[i:end])
		return &Inline{kind: LinkKind, destination: url, children: []*Inline{{kind: TextKind, literal: b[i:end]}}}, end - i
	default:
		if end, ok := scanAutolinkEmail(b, i); ok {
			addr := string(b[i:end])
			return &Inline{kind: LinkKind, destination: "mailto:" + addr, children: []*Inline{{kind: TextKind, literal: b[i:end]}}}, end - i
		}
	}
	return nil, 0
}

func atWordBoundary(b []byte, i int) bool {
	if i == 0 {
		return true
	}
	c := b[i-1]
	return isSpaceTabOrLineEnding(c) || c == '(' || c == '*' || c == '_' || c == '~' || c == '>'
}

func hasFoldPrefix(b []byte, prefix string) bool {
	return len(b) >= len(prefix) && strings.EqualFold(string(b[:len(prefix)]), prefix)
}

// scanAutolinkExtent finds the end of a bare URL/www autolink starting
// at i, trimming GFM's disallowed trailing punctuation and unmatched
// closing brackets.
func scanAutolinkExtent(b []byte, i int) int {
	end := i
	for end < len(b) && !isSpaceTabOrLineEnding(b[end]) && b[end] != '<' {
		end++
	}
	open := 0
	for j := i; j < end; j++ {
		switch b[j] {
		case '(':
			open++
		case ')':
			open--
		}
	}
	for end > i {
		c := b[end-1]
		switch {
		case c == ')' && open < 0:
			end--
			open++
		case strings.ContainsRune("?!.,:*_~'\"", rune(c)):
			end--
		case c == ';':
			// Trim a trailing HTML-entity-like fragment "&...;" greedily
			// is out of scope here; a lone trailing ';' is still
			// stripped since it is not a sensible URL terminator.
			end--
		default:
			goto done
		}
	}
done:
	return end
}

// scanAutolinkEmail matches GFM's extended email autolink: a local
// part of alphanumerics/._%+-, an '@', and a dot-separated domain of
// at least two labels, the last of which cannot end in '-' or '_'.
func scanAutolinkEmail(b []byte, i int) (end int, ok bool) {
	j := i
	for j < len(b) && (isASCIIAlnum(b[j]) || strings.IndexByte(".+_%-", b[j]) >= 0) {
		j++
	}
	if j == i || j >= len(b) || b[j] != '@' {
		return 0, false
	}
	j++
	domainStart := j
	labels := 0
	for {
		segStart := j
		for j < len(b) && (isASCIIAlnum(b[j]) || b[j] == '-') {
			j++
		}
		if j == segStart {
			break
		}
		labels++
		if j < len(b) && b[j] == '.' {
			j++
			continue
		}
		break
	}
	if labels < 2 || j == domainStart {
		return 0, false
	}
	for j > i && (b[j-1] == '-' || b[j-1] == '_' || b[j-1] == '.') {
		j--
	}
	return j, true
}
