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
	"strconv"

	"golang.org/x/net/html"
)

// scanEntity attempts to match an HTML5 entity or numeric character
// reference at the start of b (which must begin with '&'). It returns
// the number of bytes consumed and the decoded UTF-8 replacement, or
// (0, nil) if b does not begin with a valid reference.
//
// https://spec.commonmark.org/0.30/#entity-and-numeric-character-references
func scanEntity(b []byte) (consumed int, decoded []byte) {
	if len(b) < 2 || b[0] != '&' {
		return 0, nil
	}
	if b[1] == '#' {
		return scanNumericReference(b)
	}
	// Named entity: longest match up to the first ';', capped at a
	// reasonable entity-name length so we don't scan the whole
	// remaining document.
	const maxNameLen = 32
	end := -1
	limit := len(b)
	if limit > maxNameLen+2 {
		limit = maxNameLen + 2
	}
	for i := 1; i < limit; i++ {
		c := b[i]
		if c == ';' {
			end = i
			break
		}
		if !isASCIIAlnum(c) {
			break
		}
	}
	if end < 0 {
		return 0, nil
	}
	candidate := string(b[:end+1])
	unescaped := html.UnescapeString(candidate)
	if unescaped == candidate {
		// html.UnescapeString left it untouched: not a known entity.
		return 0, nil
	}
	return end + 1, []byte(unescaped)
}

// scanNumericReference handles "&#123;" and "&#x1F600;" forms. b[0:2]
// is known to be "&#".
func scanNumericReference(b []byte) (consumed int, decoded []byte) {
	i := 2
	hex := false
	if i < len(b) && (b[i] == 'x' || b[i] == 'X') {
		hex = true
		i++
	}
	digitsStart := i
	for i < len(b) {
		c := b[i]
		if hex && isHexDigit(c) {
			i++
			continue
		}
		if !hex && isASCIIDigit(c) {
			i++
			continue
		}
		break
	}
	if i == digitsStart || i-digitsStart > 8 {
		return 0, nil
	}
	if i >= len(b) || b[i] != ';' {
		return 0, nil
	}
	base := 10
	if hex {
		base = 16
	}
	n, err := strconv.ParseInt(string(b[digitsStart:i]), base, 64)
	if err != nil {
		return 0, nil
	}
	r := rune(n)
	switch {
	case r == 0, r > 0x10FFFF:
		r = '�'
	case r >= 0xD800 && r <= 0xDFFF:
		// Surrogate halves are not valid Unicode scalar values.
		r = '�'
	}
	return i + 1 - 0, []byte(string(r))
}

// decodeEntities replaces every entity and numeric character reference
// in s with its decoded form, leaving everything else untouched. It is
// used for contexts (link destinations, titles, fenced code info
// strings) that are not run through the full inline tokenizer.
func decodeEntities(s []byte) []byte {
	i := 0
	for i < len(s) && s[i] != '&' {
		i++
	}
	if i == len(s) {
		return s
	}
	out := make([]byte, 0, len(s))
	out = append(out, s[:i]...)
	for i < len(s) {
		if s[i] != '&' {
			out = append(out, s[i])
			i++
			continue
		}
		n, dec := scanEntity(s[i:])
		if n == 0 {
			out = append(out, s[i])
			i++
			continue
		}
		out = append(out, dec...)
		i += n
	}
	return out
}
