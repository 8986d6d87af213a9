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
)

// closeBracket resolves a ']' against the nearest open bracket marker,
// per spec.md §4.5's "Bracket stack (links/images)" and CommonMark's
// link/image grammar: an inline destination, a full/collapsed/shortcut
// reference, or (failing all of those) a literal ']'.
//
// https://spec.commonmark.org/0.30/#links
func (ip *inlineParser) closeBracket(top *[]*Inline) {
	if len(ip.brackets) == 0 {
		appendText(top, []byte("]"))
		return
	}
	b := ip.brackets[len(ip.brackets)-1]
	if !b.active {
		ip.brackets = ip.brackets[:len(ip.brackets)-1]
		appendText(top, []byte("]"))
		return
	}

	rawLabel := ip.content[b.startPos : ip.pos-1]

	dest, title, n, ok := ip.parseInlineLinkTail(ip.pos)
	if ok {
		ip.pos += n
	} else {
		ref, rn, rok := ip.parseReferenceTail(ip.pos, rawLabel)
		if rok {
			dest, title = ref.URL, ref.Title
			ip.pos += rn
			ok = true
		}
	}

	if !ok {
		ip.brackets = ip.brackets[:len(ip.brackets)-1]
		appendText(top, []byte("]"))
		return
	}

	ip.processEmphasis(b.delimBottom, top)

	kind := LinkKind
	if b.image {
		kind = ImageKind
	}
	openerIdx := indexOfInline(*top, b.node)
	inner := append([]*Inline(nil), (*top)[openerIdx+1:]...)
	wrapper := &Inline{kind: kind, destination: dest, title: title, children: inner}
	for _, c := range inner {
		c.parent = wrapper
	}
	*top = append((*top)[:openerIdx], wrapper)

	ip.brackets = ip.brackets[:len(ip.brackets)-1]
	if !b.image {
		for _, ob := range ip.brackets {
			if !ob.image {
				ob.active = false
			}
		}
	}
}

// parseInlineLinkTail parses "(" dest [title] ")" starting at pos
// (which must hold '('). It returns the number of bytes consumed from
// pos, including the closing paren.
func (ip *inlineParser) parseInlineLinkTail(pos int) (dest, title string, n int, ok bool) {
	if pos >= len(ip.content) || ip.content[pos] != '(' {
		return "", "", 0, false
	}
	i := pos + 1
	i += scanSPNL(ip.content[i:])
	var rawDest []byte
	if i < len(ip.content) && ip.content[i] != ')' {
		d, dn, dok := scanLinkDestination(ip.content[i:])
		if !dok {
			return "", "", 0, false
		}
		rawDest = d
		i += dn
	}
	beforeSpaces := i
	spaces := scanSPNL(ip.content[i:])
	i += spaces
	var rawTitle []byte
	if spaces > 0 {
		if t, tn, tok := scanLinkTitle(ip.content[i:]); tok {
			rawTitle = t
			i += tn
			i += scanSPNL(ip.content[i:])
		} else {
			i = beforeSpaces
		}
	}
	if i >= len(ip.content) || ip.content[i] != ')' {
		return "", "", 0, false
	}
	i++
	return cleanURL(rawDest), string(unescapeBackslashes(decodeEntities(rawTitle))), i - pos, true
}

// parseReferenceTail parses the full "[label]", collapsed "[]", or
// shortcut (nothing) reference forms that may follow a bracket's
// closing ']'. rawLabel is the already-scanned text between the
// opening and closing brackets, used for collapsed/shortcut lookups.
func (ip *inlineParser) parseReferenceTail(pos int, rawLabel []byte) (ref Reference, n int, ok bool) {
	if pos < len(ip.content) && ip.content[pos] == '[' {
		if pos+1 < len(ip.content) && ip.content[pos+1] == ']' {
			if r, found := ip.refMap.Lookup(rawLabel); found {
				return r, 2, true
			}
			return Reference{}, 0, false
		}
		label, ln, lok := scanLinkLabel(ip.content[pos:])
		if lok {
			if r, found := ip.refMap.Lookup(label); found {
				return r, ln, true
			}
			return Reference{}, 0, false
		}
	}
	if r, found := ip.refMap.Lookup(rawLabel); found {
		return r, 0, true
	}
	return Reference{}, 0, false
}

// parseAutolinkOrRawHTML attempts to parse a CommonMark autolink
// ("<scheme:...>" or "<user@host>") or a raw inline HTML tag/comment/PI
// at ip.pos (which must hold '<'), appending the resulting node and
// advancing ip.pos on success.
//
// https://spec.commonmark.org/0.30/#autolinks
// https://spec.commonmark.org/0.30/#raw-html
func (ip *inlineParser) parseAutolinkOrRawHTML(top *[]*Inline) bool {
	rest := ip.content[ip.pos+1:]
	if url, n, ok := scanURIAutolink(rest); ok {
		*top = append(*top, &Inline{kind: LinkKind, destination: url, children: []*Inline{{kind: TextKind, literal: []byte(url)}}})
		ip.pos += 1 + n
		return true
	}
	if addr, n, ok := scanEmailAutolink(rest); ok {
		*top = append(*top, &Inline{kind: LinkKind, destination: "mailto:" + addr, children: []*Inline{{kind: TextKind, literal: []byte(addr)}}})
		ip.pos += 1 + n
		return true
	}
	if n, ok := scanInlineRawHTML(ip.content[ip.pos:]); ok {
		*top = append(*top, &Inline{kind: HTMLInlineKind, literal: append([]byte(nil), ip.content[ip.pos:ip.pos+n]...)})
		ip.pos += n
		return true
	}
	return false
}

func scanURIAutolink(rest []byte) (url string, n int, ok bool) {
	i := 0
	schemeStart := i
	for i < len(rest) && isASCIIAlpha(rest[i]) {
		i++
	}
	if i == schemeStart {
		return "", 0, false
	}
	for i < len(rest) && (isASCIIAlnum(rest[i]) || rest[i] == '+' || rest[i] == '-' || rest[i] == '.') {
		i++
	}
	schemeLen := i - schemeStart
	if schemeLen < 2 || schemeLen > 32 {
		return "", 0, false
	}
	if i >= len(rest) || rest[i] != ':' {
		return "", 0, false
	}
	i++
	start := i
	for i < len(rest) {
		c := rest[i]
		if c == '>' {
			return string(rest[:i]), i + 1, true
		}
		if isSpaceTabOrLineEnding(c) || c == '<' {
			return "", 0, false
		}
		i++
	}
	_ = start
	return "", 0, false
}

func scanEmailAutolink(rest []byte) (addr string, n int, ok bool) {
	i := 0
	for i < len(rest) && (isASCIIAlnum(rest[i]) || bytes.IndexByte([]byte(".!#$%&'*+/=?^_`{|}~-"), rest[i]) >= 0) {
		i++
	}
	if i == 0 || i >= len(rest) || rest[i] != '@' {
		return "", 0, false
	}
	i++
	labelStart := i
	for {
		segStart := i
		for i < len(rest) && (isASCIIAlnum(rest[i]) || rest[i] == '-') {
			i++
		}
		if i == segStart {
			return "", 0, false
		}
		if i < len(rest) && rest[i] == '.' {
			i++
			continue
		}
		break
	}
	if i == labelStart {
		return "", 0, false
	}
	if i >= len(rest) || rest[i] != '>' {
		return "", 0, false
	}
	return string(rest[:i]), i + 1, true
}

// scanInlineRawHTML scans a single raw HTML construct per the
// CommonMark grammar: open tag, closing tag, comment, PI,
// declaration, or CDATA. b must start with '<'.
func scanInlineRawHTML(b []byte) (n int, ok bool) {
	if len(b) < 3 {
		return 0, false
	}
	rest := b[1:]
	switch {
	case bytes.HasPrefix(rest, []byte("!--")):
		idx := bytes.Index(rest[3:], []byte("-->"))
		if idx < 0 {
			return 0, false
		}
		return 1 + 3 + idx + 3, true
	case len(rest) > 0 && rest[0] == '?':
		idx := bytes.Index(rest[1:], []byte("?>"))
		if idx < 0 {
			return 0, false
		}
		return 1 + 1 + idx + 2, true
	case bytes.HasPrefix(rest, []byte("![CDATA[")):
		idx := bytes.Index(rest[8:], []byte("]]>"))
		if idx < 0 {
			return 0, false
		}
		return 1 + 8 + idx + 3, true
	case len(rest) > 0 && rest[0] == '!' && len(rest) > 1 && isASCIIAlpha(rest[1]):
		idx := bytes.IndexByte(rest[1:], '>')
		if idx < 0 {
			return 0, false
		}
		return 1 + 1 + idx + 1, true
	case len(rest) > 0 && rest[0] == '/':
		name, after := scanTagName(rest[1:])
		if name == "" {
			return 0, false
		}
		end := parseClosingTagRemainder(after)
		if end < 0 {
			return 0, false
		}
		return 1 + 1 + len(name) + end, true
	default:
		name, after := scanTagName(rest)
		if name == "" {
			return 0, false
		}
		end := parseOpenTagRemainder(after)
		if end < 0 {
			return 0, false
		}
		return 1 + len(name) + end, true
	}
}
