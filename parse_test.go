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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRenderHTML(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		in   string
		want string
	}{
		{
			name: "Paragraph",
			in:   "Hello, World!\n",
			want: "<p>Hello, World!</p>\n",
		},
		{
			name: "ATXHeading",
			in:   "## Title\n",
			want: "<h2>Title</h2>\n",
		},
		{
			name: "SetextHeading",
			in:   "Title\n=====\n",
			want: "<h1>Title</h1>\n",
		},
		{
			name: "ThematicBreak",
			in:   "a\n\n---\n\nb\n",
			want: "<p>a</p>\n<hr />\n<p>b</p>\n",
		},
		{
			name: "BlockQuote",
			in:   "> quoted\n> text\n",
			want: "<blockquote>\n<p>quoted\ntext</p>\n</blockquote>\n",
		},
		{
			name: "TightList",
			in:   "- one\n- two\n",
			want: "<ul>\n<li>one</li>\n<li>two</li>\n</ul>\n",
		},
		{
			name: "LooseList",
			in:   "- one\n\n- two\n",
			want: "<ul>\n<li>\n<p>one</p>\n</li>\n<li>\n<p>two</p>\n</li>\n</ul>\n",
		},
		{
			name: "OrderedListStart",
			in:   "3. one\n4. two\n",
			want: `<ol start="3">` + "\n<li>one</li>\n<li>two</li>\n</ol>\n",
		},
		{
			name: "IndentedCodeBlock",
			in:   "    code here\n",
			want: "<pre><code>code here\n</code></pre>\n",
		},
		{
			name: "FencedCodeBlock",
			in:   "```go\nfmt.Println(1)\n```\n",
			want: `<pre><code class="language-go">fmt.Println(1)` + "\n</code></pre>\n",
		},
		{
			name: "HardLineBreak",
			in:   "a  \nb\n",
			want: "<p>a<br />\nb</p>\n",
		},
		{
			name: "HardbreaksOption",
			opts: Options{Hardbreaks: true},
			in:   "a\nb\n",
			want: "<p>a<br />\nb</p>\n",
		},
		{
			name: "SoftBreakDropsTrailingSpace",
			in:   "Hello \nWorld\n",
			want: "<p>Hello\nWorld</p>\n",
		},
		{
			name: "HTMLInsecureNUL",
			in:   "a\x00b\n",
			want: "<p>a�b</p>\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			doc := Parse([]byte(test.in), test.opts)
			got := new(bytes.Buffer)
			require.NoError(t, RenderHTML(got, doc, test.opts))
			assert.Equal(t, test.want, got.String())
		})
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a\n", []string{"a\n"}},
		{"a\nb", []string{"a\n", "b"}},
		{"a\r\nb\r\n", []string{"a\r\n", "b\r\n"}},
		{"a\rb\r", []string{"a\r", "b\r"}},
	}
	for _, test := range tests {
		got := splitLines([]byte(test.in))
		var gotStrings []string
		for _, line := range got {
			gotStrings = append(gotStrings, string(line))
		}
		assert.Equal(t, test.want, gotStrings, "splitLines(%q)", test.in)
	}
}
