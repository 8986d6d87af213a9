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

// processEmphasis implements CommonMark's delimiter-stack algorithm
// (rule 9-17 of the emphasis/strong-emphasis grammar), matching closer
// delimiters against the nearest compatible opener of the same
// character strictly above stackBottom in the parser's delimiter list, and
// wrapping the nodes between them in Emph/Strong (or, for the GFM
// extensions, Strikethrough/Superscript) inline nodes.
//
// https://spec.commonmark.org/0.30/#emphasis-and-strong-emphasis
func (ip *inlineParser) processEmphasis(stackBottom *delimiter, top *[]*Inline) {
	start := stackBottomOrFirst(ip, stackBottom)
	closer := start
	for closer != nil {
		if !closer.canClose {
			closer = closer.next
			continue
		}
		opener := closer.prev
		var found *delimiter
		for opener != nil && opener != stackBottom {
			if opener.char == closer.char && opener.canOpen {
				oddMatch := (closer.canOpen || opener.canClose) &&
					(opener.numDelims+closer.numDelims)%3 == 0 &&
					!(opener.numDelims%3 == 0 && closer.numDelims%3 == 0)
				if !oddMatch {
					found = opener
					break
				}
			}
			opener = opener.prev
		}
		if found == nil {
			next := closer.next
			if !closer.canOpen {
				ip.removeDelim(closer)
			}
			closer = next
			continue
		}

		useDelims := ip.matchLength(found, closer)
		if useDelims == 0 {
			// Extension delimiter (e.g. a lone '~') that can't satisfy
			// its required count: give up on this opener candidate.
			next := closer.next
			if !closer.canOpen {
				ip.removeDelim(closer)
			}
			closer = next
			continue
		}

		kind := emphasisKindFor(found.char, useDelims)
		ip.wrapDelimRange(top, found, closer, useDelims, kind)

		found.numDelims -= useDelims
		closer.numDelims -= useDelims

		// Remove delimiters strictly between found and closer: they were
		// already absorbed into the wrapped content and can no longer
		// participate.
		for d := found.next; d != nil && d != closer; {
			next := d.next
			ip.unlinkDelim(d)
			d = next
		}

		if closer.numDelims == 0 {
			next := closer.next
			ip.removeDelim(closer)
			closer = next
		}
		if found.numDelims == 0 {
			ip.removeDelim(found)
		}
	}
}

func stackBottomOrFirst(ip *inlineParser, stackBottom *delimiter) *delimiter {
	if stackBottom == nil {
		d := ip.delimTail
		for d != nil && d.prev != nil {
			d = d.prev
		}
		return d
	}
	return stackBottom.next
}

// matchLengthFor returns, for delimiter character char, a function
// reporting how many delimiter characters to consume from each side of
// an opener/closer pair, or 0 if the pairing is invalid for a
// fixed-count extension delimiter.
func matchLengthFor(char byte) func(opener, closer *delimiter) int {
	switch char {
	case '~':
		return func(o, c *delimiter) int {
			switch {
			case o.numDelims >= 2 && c.numDelims >= 2:
				return 2
			case o.numDelims >= 1 && c.numDelims >= 1:
				return 1
			default:
				return 0
			}
		}
	case '^':
		return func(o, c *delimiter) int {
			if o.numDelims >= 1 && c.numDelims >= 1 {
				return 1
			}
			return 0
		}
	default:
		return func(o, c *delimiter) int {
			if o.numDelims >= 2 && c.numDelims >= 2 {
				return 2
			}
			return 1
		}
	}
}

func (ip *inlineParser) matchLength(opener, closer *delimiter) int {
	return matchLengthFor(opener.char)(opener, closer)
}

func emphasisKindFor(char byte, n int) InlineKind {
	switch char {
	case '~':
		return StrikethroughKind
	case '^':
		return SuperscriptKind
	default:
		if n == 2 {
			return StrongKind
		}
		return EmphKind
	}
}

// wrapDelimRange trims n characters off the end of opener's backing
// text node and the start of closer's, then wraps every node between
// them (exclusive) in a new inline of kind, replacing that range in
// top with the single new node.
func (ip *inlineParser) wrapDelimRange(top *[]*Inline, opener, closer *delimiter, n int, kind InlineKind) {
	openerIdx := indexOfInline(*top, opener.node)
	closerIdx := indexOfInline(*top, closer.node)

	opener.node.literal = opener.node.literal[:len(opener.node.literal)-n]
	closer.node.literal = closer.node.literal[n:]

	innerStart := openerIdx + 1
	innerEnd := closerIdx
	inner := append([]*Inline(nil), (*top)[innerStart:innerEnd]...)
	wrapper := &Inline{kind: kind, children: inner}
	for _, c := range inner {
		c.parent = wrapper
	}

	newTop := make([]*Inline, 0, len(*top)-(innerEnd-innerStart)+1)
	newTop = append(newTop, (*top)[:innerStart]...)
	newTop = append(newTop, wrapper)
	newTop = append(newTop, (*top)[innerEnd:]...)
	*top = newTop

	if len(opener.node.literal) == 0 {
		*top = removeInline(*top, opener.node)
	}
	if len(closer.node.literal) == 0 {
		*top = removeInline(*top, closer.node)
	}
}

func indexOfInline(s []*Inline, node *Inline) int {
	for i, n := range s {
		if n == node {
			return i
		}
	}
	return -1
}

func removeInline(s []*Inline, node *Inline) []*Inline {
	i := indexOfInline(s, node)
	if i < 0 {
		return s
	}
	return append(s[:i], s[i+1:]...)
}

func (ip *inlineParser) unlinkDelim(d *delimiter) {
	if d.prev != nil {
		d.prev.next = d.next
	}
	if d.next != nil {
		d.next.prev = d.prev
	}
	if ip.delimTail == d {
		ip.delimTail = d.prev
	}
}

func (ip *inlineParser) removeDelim(d *delimiter) {
	ip.unlinkDelim(d)
}

// mergeAdjacentText merges consecutive TextKind siblings, recursing
// into every inline's children (emphasis/strikethrough/superscript
// nest, and link/image text is visited too), and returns the merged
// sequence.
func mergeAdjacentText(nodes []*Inline) []*Inline {
	mergeAdjacentTextInto(&nodes)
	return nodes
}

func mergeAdjacentTextInto(nodes *[]*Inline) {
	out := (*nodes)[:0]
	for _, n := range *nodes {
		if n.kind == TextKind && len(out) > 0 && out[len(out)-1].kind == TextKind {
			out[len(out)-1].literal = append(out[len(out)-1].literal, n.literal...)
			continue
		}
		out = append(out, n)
	}
	*nodes = out
	for _, n := range *nodes {
		if len(n.children) > 0 {
			mergeAdjacentTextInto(&n.children)
		}
	}
}
