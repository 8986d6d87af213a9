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

// parsedListMarker is the result of parseListMarker: how many bytes of
// line the marker consumed, and the list attributes it implies. end is
// -1 if line does not begin with a list marker.
type parsedListMarker struct {
	end  int
	data ListData
}

// parseListMarker attempts to parse a bullet or ordered list marker at
// the start of line, per the grammar in spec §4.2.1. interruptsParagraph
// applies the additional restrictions CommonMark places on a list
// marker that would interrupt an open paragraph: a bullet marker must
// not be followed solely by a blank rest-of-line, and an ordered marker
// must start at 1 and not be followed by a blank rest-of-line.
//
// https://spec.commonmark.org/0.30/#list-items
func parseListMarker(line []byte, interruptsParagraph bool) parsedListMarker {
	if len(line) == 0 {
		return parsedListMarker{end: -1}
	}
	switch c := line[0]; {
	case c == '-' || c == '+' || c == '*':
		if !hasTabOrSpacePrefixOrEOL(line[1:]) {
			return parsedListMarker{end: -1}
		}
		if interruptsParagraph && isBlankLine(line[1:]) {
			return parsedListMarker{end: -1}
		}
		return parsedListMarker{
			end: 1,
			data: ListData{
				Type:       BulletList,
				BulletChar: c,
				Start:      1,
				Delimiter:  PeriodDelimiter,
			},
		}
	case isASCIIDigit(c):
		n := int(c - '0')
		const maxDigits = 9
		for i := 1; i < maxDigits+1 && i < len(line); i++ {
			switch d := line[i]; {
			case isASCIIDigit(d):
				n = n*10 + int(d-'0')
			case d == '.' || d == ')':
				if !hasTabOrSpacePrefixOrEOL(line[i+1:]) {
					return parsedListMarker{end: -1}
				}
				if interruptsParagraph && (n != 1 || isBlankLine(line[i+1:])) {
					return parsedListMarker{end: -1}
				}
				delim := PeriodDelimiter
				if d == ')' {
					delim = ParenDelimiter
				}
				return parsedListMarker{
					end: i + 1,
					data: ListData{
						Type:      OrderedList,
						Start:     n,
						Delimiter: delim,
					},
				}
			default:
				return parsedListMarker{end: -1}
			}
		}
		return parsedListMarker{end: -1}
	default:
		return parsedListMarker{end: -1}
	}
}

// listsMatch reports whether an item with data new can join an
// already-open list with attributes existing: they must share list
// type, delimiter, and (for bullets) bullet character.
//
// https://spec.commonmark.org/0.30/#lists
func listsMatch(existing, new ListData) bool {
	if existing.Type != new.Type {
		return false
	}
	if existing.Type == OrderedList {
		return existing.Delimiter == new.Delimiter
	}
	return existing.BulletChar == new.BulletChar
}
