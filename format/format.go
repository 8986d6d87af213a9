// Copyright 2024 Ross Light
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

// Package format renders a parsed document back out as normalized
// CommonMark, the counterpart to the package's HTML renderer.
package format

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/comrak-go/commonmark"
	"github.com/mattn/go-runewidth"
)

// Format writes doc to w as normalized CommonMark text. opts.Width, if
// positive, wraps paragraph text at that many display columns.
func Format(w io.Writer, doc *commonmark.Block, opts commonmark.Options) error {
	f := &formatter{w: &errWriter{w: w}, opts: opts}
	f.block(doc, 0)
	return f.w.err
}

type formatter struct {
	w     *errWriter
	opts  commonmark.Options
	wrote bool // whether any block has been written yet
}

func (f *formatter) separate() {
	if f.wrote {
		f.w.WriteString("\n")
	}
	f.wrote = true
}

func (f *formatter) block(b *commonmark.Block, indent int) {
	switch b.Kind() {
	case commonmark.DocumentKind:
		for _, c := range b.Children() {
			f.block(c, indent)
		}
	case commonmark.BlockQuoteKind:
		f.separate()
		f.blockQuote(b, indent)
	case commonmark.ListKind:
		f.list(b, indent)
	case commonmark.HeadingKind:
		f.separate()
		f.heading(b, indent)
	case commonmark.ThematicBreakKind:
		f.separate()
		f.writeIndented(indent, "---\n")
	case commonmark.CodeBlockKind:
		f.separate()
		f.codeBlock(b, indent)
	case commonmark.HTMLBlockKind:
		f.separate()
		f.writeIndented(indent, string(b.Literal()))
	case commonmark.ParagraphKind:
		f.separate()
		f.paragraph(b, indent)
	case commonmark.TableKind:
		f.separate()
		f.table(b, indent)
	default:
		for _, c := range b.Children() {
			f.block(c, indent)
		}
	}
}

func (f *formatter) writeIndented(indent int, s string) {
	prefix := strings.Repeat(" ", indent)
	for _, line := range splitKeepingNewline(s) {
		f.w.WriteString(prefix)
		f.w.WriteString(line)
	}
}

func splitKeepingNewline(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i+1])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func (f *formatter) blockQuote(b *commonmark.Block, indent int) {
	inner := &formatter{w: &errWriter{w: &prefixWriter{w: f.w, prefix: []byte("> ")}}, opts: f.opts}
	for _, c := range b.Children() {
		inner.block(c, 0)
	}
	if inner.w.err != nil {
		f.w.err = inner.w.err
	}
}

func (f *formatter) list(b *commonmark.Block, indent int) {
	f.separate()
	data := b.List()
	num := data.Start
	for i, c := range b.Children() {
		if i > 0 {
			if !data.Tight {
				f.w.WriteString("\n")
			}
			num++
		}
		f.item(c, num, indent)
	}
}

func (f *formatter) item(b *commonmark.Block, num, indent int) {
	data := b.List()
	var marker string
	if data.Type == commonmark.OrderedList {
		marker = strconv.Itoa(num) + ". "
	} else {
		marker = string(data.BulletChar) + " "
	}
	if b.IsTask() {
		box := "[ ]"
		if b.TaskChecked() {
			box = "[x]"
		}
		marker += box + " "
	}
	f.w.WriteString(strings.Repeat(" ", indent))
	f.w.WriteString(marker)

	inner := &formatter{w: &errWriter{w: &prefixWriter{w: f.w, prefix: []byte(strings.Repeat(" ", len(marker))), skipFirst: true}}, opts: f.opts}
	for i, c := range b.Children() {
		if i == 0 && b.IsTask() && c.Kind() == commonmark.ParagraphKind {
			inner.taskParagraph(c)
			continue
		}
		inner.block(c, 0)
	}
	if inner.w.err != nil {
		f.w.err = inner.w.err
	}
}

// taskParagraph writes a task item's first paragraph, dropping the
// checkbox HTML inline that the tasklist extension's parse-time pass
// injects ahead of the item's text — item already wrote "[x] "/"[ ] "
// as CommonMark source, so re-emitting the injected HTML here would
// render the checkbox twice.
func (f *formatter) taskParagraph(b *commonmark.Block) {
	f.separate()
	nodes := b.Inlines()
	if len(nodes) > 0 && nodes[0].Kind() == commonmark.HTMLInlineKind {
		nodes = nodes[1:]
	}
	f.inlines(nodes, 0)
	f.w.WriteString("\n")
}

func (f *formatter) heading(b *commonmark.Block, indent int) {
	f.w.WriteString(strings.Repeat(" ", indent))
	f.w.WriteString(strings.Repeat("#", b.HeadingLevel()))
	f.w.WriteString(" ")
	f.inlines(b.Inlines(), indent)
	f.w.WriteString("\n")
}

func (f *formatter) codeBlock(b *commonmark.Block, indent int) {
	prefix := strings.Repeat(" ", indent)
	if !b.IsFenced() {
		for _, line := range splitKeepingNewline(string(b.Literal())) {
			f.w.WriteString(prefix + "    " + line)
		}
		return
	}
	fence := "```"
	f.w.WriteString(prefix + fence)
	f.w.Write(b.Info())
	f.w.WriteString("\n")
	for _, line := range splitKeepingNewline(string(b.Literal())) {
		f.w.WriteString(prefix)
		f.w.WriteString(line)
	}
	f.w.WriteString(prefix + fence + "\n")
}

func (f *formatter) paragraph(b *commonmark.Block, indent int) {
	f.w.WriteString(strings.Repeat(" ", indent))
	f.inlines(b.Inlines(), indent)
	f.w.WriteString("\n")
}

func (f *formatter) table(b *commonmark.Block, indent int) {
	aligns := b.TableAlignments()
	for _, row := range b.Children() {
		f.w.WriteString(strings.Repeat(" ", indent) + "|")
		for _, cell := range row.Children() {
			f.w.WriteString(" ")
			f.inlines(cell.Inlines(), indent)
			f.w.WriteString(" |")
		}
		f.w.WriteString("\n")
		if row.IsHeaderRow() {
			f.w.WriteString(strings.Repeat(" ", indent) + "|")
			for _, a := range aligns {
				f.w.WriteString(" " + delimiterCell(a) + " |")
			}
			f.w.WriteString("\n")
		}
	}
}

func delimiterCell(a commonmark.CellAlignment) string {
	switch a {
	case commonmark.AlignLeft:
		return ":---"
	case commonmark.AlignCenter:
		return ":---:"
	case commonmark.AlignRight:
		return "---:"
	default:
		return "---"
	}
}

// inlines writes nodes as CommonMark text, wrapping at f.opts.Width
// display columns (measured with go-runewidth) when positive.
func (f *formatter) inlines(nodes []*commonmark.Inline, indent int) {
	col := indent
	writeWord := func(word string) {
		if f.opts.Width > 0 && col > indent && col+runewidth.StringWidth(word) > f.opts.Width {
			f.w.WriteString("\n" + strings.Repeat(" ", indent))
			col = indent
		}
		f.w.WriteString(word)
		col += runewidth.StringWidth(word)
	}

	for _, n := range nodes {
		switch n.Kind() {
		case commonmark.TextKind:
			for _, word := range strings.SplitAfter(escapeMarkdown(string(n.Literal())), " ") {
				if word == "" {
					continue
				}
				writeWord(word)
			}
		case commonmark.SoftBreakKind:
			writeWord(" ")
		case commonmark.LineBreakKind:
			f.w.WriteString("\\\n" + strings.Repeat(" ", indent))
			col = indent
		case commonmark.CodeKind:
			writeWord(wrapCodeSpan(n.Literal()))
		case commonmark.HTMLInlineKind:
			writeWord(string(n.Literal()))
		case commonmark.EmphKind:
			f.w.WriteString("*")
			f.inlines(n.Children(), indent)
			f.w.WriteString("*")
		case commonmark.StrongKind:
			f.w.WriteString("**")
			f.inlines(n.Children(), indent)
			f.w.WriteString("**")
		case commonmark.StrikethroughKind:
			f.w.WriteString("~~")
			f.inlines(n.Children(), indent)
			f.w.WriteString("~~")
		case commonmark.SuperscriptKind:
			f.w.WriteString("^")
			f.inlines(n.Children(), indent)
			f.w.WriteString("^")
		case commonmark.LinkKind:
			f.w.WriteString("[")
			f.inlines(n.Children(), indent)
			f.w.WriteString("](")
			f.w.WriteString(n.Destination())
			if t := n.Title(); t != "" {
				fmt.Fprintf(f.w, " %q", t)
			}
			f.w.WriteString(")")
		case commonmark.ImageKind:
			f.w.WriteString("![")
			f.inlines(n.Children(), indent)
			f.w.WriteString("](")
			f.w.WriteString(n.Destination())
			if t := n.Title(); t != "" {
				fmt.Fprintf(f.w, " %q", t)
			}
			f.w.WriteString(")")
		}
	}
}

// wrapCodeSpan picks a backtick-fence long enough that it cannot be
// confused with a run already present in literal.
func wrapCodeSpan(literal []byte) string {
	n := 1
	for {
		fence := strings.Repeat("`", n)
		if !strings.Contains(string(literal), fence) {
			return fence + string(literal) + fence
		}
		n++
	}
}

// escapeMarkdown backslash-escapes bytes that would always be
// reinterpreted as CommonMark syntax if emitted literally inside text,
// regardless of surrounding context: backslash itself, the delimiter
// characters, brackets, and angle brackets. Characters that are only
// special at the start of a line (#, -, +, digits-followed-by-.) are
// left alone, since mid-text occurrences of them are never ambiguous.
func escapeMarkdown(s string) string {
	const special = "\\`*_[]<>~^"
	var sb strings.Builder
	for _, r := range s {
		if r < 0x80 && strings.ContainsRune(special, r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

type errWriter struct {
	w   io.Writer
	err error
}

func (w *errWriter) Write(p []byte) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, w.err = w.w.Write(p)
	return n, w.err
}

func (w *errWriter) WriteString(s string) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, w.err = io.WriteString(w.w, s)
	return n, w.err
}

// prefixWriter inserts prefix after every newline written (and, unless
// skipFirst, before the first byte too), used to indent nested block
// quotes and list items.
type prefixWriter struct {
	w         io.Writer
	prefix    []byte
	skipFirst bool
	started   bool
}

func (pw *prefixWriter) Write(p []byte) (int, error) {
	total := 0
	for len(p) > 0 {
		if !pw.started {
			pw.started = true
			if !pw.skipFirst {
				if _, err := pw.w.Write(pw.prefix); err != nil {
					return total, err
				}
			}
		}
		i := bytes.IndexByte(p, '\n')
		if i < 0 {
			n, err := pw.w.Write(p)
			total += n
			return total, err
		}
		n, err := pw.w.Write(p[:i+1])
		total += n
		if err != nil {
			return total, err
		}
		p = p[i+1:]
		if len(p) > 0 {
			if _, err := pw.w.Write(pw.prefix); err != nil {
				return total, err
			}
		} else {
			// The next Write starts a new line and must begin with prefix.
			pw.started, pw.skipFirst = false, false
		}
	}
	return total, nil
}
