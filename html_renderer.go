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
	"fmt"
	"io"
	"strconv"
)

// RenderHTML writes the CommonMark (plus enabled GFM extensions) HTML
// rendering of doc to w.
//
// https://spec.commonmark.org/0.30/#html-blocks
func RenderHTML(w io.Writer, doc *Block, opts Options) error {
	rs := &renderState{w: w, opts: opts}
	rs.block(doc)
	return rs.err
}

type renderState struct {
	w    io.Writer
	opts Options
	err  error
}

func (rs *renderState) writeString(s string) {
	if rs.err != nil {
		return
	}
	_, rs.err = io.WriteString(rs.w, s)
}

func (rs *renderState) write(b []byte) {
	if rs.err != nil {
		return
	}
	_, rs.err = rs.w.Write(b)
}

func (rs *renderState) block(b *Block) {
	switch b.Kind() {
	case DocumentKind:
		for _, c := range b.children {
			rs.block(c)
		}
	case BlockQuoteKind:
		rs.writeString("<blockquote>\n")
		for _, c := range b.children {
			rs.block(c)
		}
		rs.writeString("</blockquote>\n")
	case ListKind:
		rs.renderList(b)
	case ItemKind:
		rs.renderItem(b)
	case HeadingKind:
		tag := "h" + strconv.Itoa(b.HeadingLevel())
		rs.writeString("<" + tag + ">")
		rs.inlines(b.Inlines())
		rs.writeString("</" + tag + ">\n")
	case ThematicBreakKind:
		rs.writeString("<hr />\n")
	case CodeBlockKind:
		rs.renderCodeBlock(b)
	case HTMLBlockKind:
		rs.writeRawHTML(b.Literal())
		if lit := b.Literal(); len(lit) == 0 || lit[len(lit)-1] != '\n' {
			rs.writeString("\n")
		}
	case ParagraphKind:
		if isTightParagraph(b) {
			rs.inlines(b.Inlines())
			rs.writeString("\n")
			return
		}
		rs.writeString("<p>")
		rs.inlines(b.Inlines())
		rs.writeString("</p>\n")
	case TableKind:
		rs.renderTable(b)
	default:
		for _, c := range b.children {
			rs.block(c)
		}
	}
}

// isTightParagraph reports whether b is a paragraph that should be
// rendered without a <p> wrapper because it is a direct child of an
// item in a tight list.
func isTightParagraph(b *Block) bool {
	parent := b.Parent()
	if parent == nil || parent.Kind() != ItemKind {
		return false
	}
	list := parent.Parent()
	return list != nil && list.Kind() == ListKind && list.list.Tight
}

func (rs *renderState) renderList(b *Block) {
	data := b.List()
	tag := "ul"
	if data.Type == OrderedList {
		tag = "ol"
	}
	rs.writeString("<" + tag)
	if data.Type == OrderedList && data.Start != 1 {
		fmt.Fprintf(rs, ` start="%d"`, data.Start)
	}
	rs.writeString(">\n")
	for _, c := range b.children {
		rs.block(c)
	}
	rs.writeString("</" + tag + ">\n")
}

// Write implements io.Writer so fmt.Fprintf can target the renderer
// while still funneling errors through rs.err.
func (rs *renderState) Write(p []byte) (int, error) {
	if rs.err != nil {
		return 0, rs.err
	}
	n, err := rs.w.Write(p)
	rs.err = err
	return n, err
}

func (rs *renderState) renderItem(b *Block) {
	class := ""
	if b.IsTask() {
		class = ` class="task-list-item"`
	}
	rs.writeString("<li" + class + ">")
	prevInline := false
	for i, c := range b.children {
		if c.Kind() == ParagraphKind && isTightParagraph(c) {
			rs.inlines(c.Inlines())
			prevInline = true
			continue
		}
		if i == 0 || prevInline {
			rs.writeString("\n")
		}
		rs.block(c)
		prevInline = false
	}
	rs.writeString("</li>\n")
}

func (rs *renderState) renderCodeBlock(b *Block) {
	info := b.Info()
	lang := info
	if i := indexOfSpace(info); i >= 0 {
		lang = info[:i]
	}
	switch {
	case len(lang) == 0:
		rs.writeString("<pre><code>")
	case rs.opts.GithubPreLang:
		rs.writeString(`<pre lang="`)
		rs.write(escapeHTMLAttr(lang))
		rs.writeString(`"><code>`)
	default:
		rs.writeString(`<pre><code class="language-`)
		rs.write(escapeHTMLAttr(lang))
		rs.writeString(`">`)
	}
	rs.write(escapeHTML(b.Literal()))
	rs.writeString("</code></pre>\n")
}

func indexOfSpace(b []byte) int {
	for i, c := range b {
		if isSpaceOrTab(c) {
			return i
		}
	}
	return -1
}

func (rs *renderState) renderTable(b *Block) {
	rs.writeString("<table>\n")
	aligns := b.TableAlignments()
	for _, row := range b.children {
		if row.IsHeaderRow() {
			rs.writeString("<thead>\n")
		}
		rs.writeString("<tr>\n")
		tag := "td"
		if row.IsHeaderRow() {
			tag = "th"
		}
		for i, cell := range row.children {
			align := AlignNone
			if i < len(aligns) {
				align = aligns[i]
			}
			rs.writeString("<" + tag + alignAttr(align) + ">")
			rs.inlines(cell.Inlines())
			rs.writeString("</" + tag + ">\n")
		}
		rs.writeString("</tr>\n")
		if row.IsHeaderRow() {
			rs.writeString("</thead>\n<tbody>\n")
		}
	}
	rs.writeString("</tbody>\n</table>\n")
}

func alignAttr(a CellAlignment) string {
	switch a {
	case AlignLeft:
		return ` align="left"`
	case AlignCenter:
		return ` align="center"`
	case AlignRight:
		return ` align="right"`
	default:
		return ""
	}
}

func (rs *renderState) inlines(nodes []*Inline) {
	for _, n := range nodes {
		rs.inline(n)
	}
}

func (rs *renderState) inline(n *Inline) {
	switch n.Kind() {
	case TextKind:
		rs.write(escapeHTML(n.Literal()))
	case SoftBreakKind:
		if rs.opts.Hardbreaks {
			rs.writeString("<br />\n")
		} else {
			rs.writeString("\n")
		}
	case LineBreakKind:
		rs.writeString("<br />\n")
	case CodeKind:
		rs.writeString("<code>")
		rs.write(escapeHTML(n.Literal()))
		rs.writeString("</code>")
	case HTMLInlineKind:
		rs.writeRawHTML(n.Literal())
	case EmphKind:
		rs.writeString("<em>")
		rs.inlines(n.Children())
		rs.writeString("</em>")
	case StrongKind:
		rs.writeString("<strong>")
		rs.inlines(n.Children())
		rs.writeString("</strong>")
	case StrikethroughKind:
		rs.writeString("<del>")
		rs.inlines(n.Children())
		rs.writeString("</del>")
	case SuperscriptKind:
		rs.writeString("<sup>")
		rs.inlines(n.Children())
		rs.writeString("</sup>")
	case LinkKind:
		rs.writeString(`<a href="`)
		rs.write(escapeHTMLAttr([]byte(percentEncodeURL(n.Destination()))))
		rs.writeString(`"`)
		if t := n.Title(); t != "" {
			rs.writeString(` title="`)
			rs.write(escapeHTMLAttr([]byte(t)))
			rs.writeString(`"`)
		}
		rs.writeString(">")
		rs.inlines(n.Children())
		rs.writeString("</a>")
	case ImageKind:
		rs.writeString(`<img src="`)
		rs.write(escapeHTMLAttr([]byte(percentEncodeURL(n.Destination()))))
		rs.writeString(`" alt="`)
		rs.write(escapeHTMLAttr([]byte(plainText(n.Children()))))
		rs.writeString(`"`)
		if t := n.Title(); t != "" {
			rs.writeString(` title="`)
			rs.write(escapeHTMLAttr([]byte(t)))
			rs.writeString(`"`)
		}
		rs.writeString(" />")
	}
}

func (rs *renderState) writeRawHTML(literal []byte) {
	if rs.opts.ExtTagfilter {
		literal = filterTags(literal)
	}
	rs.write(literal)
}

// plainText concatenates the literal text of nodes, descending into
// emphasis-like wrappers, for use as an image's alt text.
func plainText(nodes []*Inline) string {
	var out []byte
	for _, n := range nodes {
		switch n.Kind() {
		case TextKind, CodeKind:
			out = append(out, n.Literal()...)
		case SoftBreakKind:
			out = append(out, ' ')
		case LineBreakKind:
			out = append(out, ' ')
		default:
			out = append(out, []byte(plainText(n.Children()))...)
		}
	}
	return string(out)
}
