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

func TestInlineRendering(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		in   string
		want string
	}{
		{"Emphasis", Options{}, "*a*\n", "<p><em>a</em></p>\n"},
		{"Strong", Options{}, "**a**\n", "<p><strong>a</strong></p>\n"},
		{"StrongInsideEmphasis", Options{}, "*a **b** c*\n", "<p><em>a <strong>b</strong> c</em></p>\n"},
		{"UnmatchedAsteriskIsLiteral", Options{}, "5 * 3\n", "<p>5 * 3</p>\n"},
		{"CodeSpan", Options{}, "`a < b`\n", "<p><code>a &lt; b</code></p>\n"},
		{"BackslashEscape", Options{}, `\*a\*` + "\n", "<p>*a*</p>\n"},
		{"Entity", Options{}, "&amp;\n", "<p>&amp;</p>\n"},
		{"InlineLink", Options{}, `[a](/b "t")` + "\n", `<p><a href="/b" title="t">a</a></p>` + "\n"},
		{"InlineImage", Options{}, `![alt](/b.png)` + "\n", `<p><img src="/b.png" alt="alt" /></p>` + "\n"},
		{"Autolink", Options{}, "<https://example.com/>\n", `<p><a href="https://example.com/">https://example.com/</a></p>` + "\n"},
		{
			name: "Strikethrough",
			opts: Options{ExtStrikethrough: true},
			in:   "~~a~~\n",
			want: "<p><del>a</del></p>\n",
		},
		{
			name: "StrikethroughSingleTilde",
			opts: Options{ExtStrikethrough: true},
			in:   "Hello ~world~ there.\n",
			want: "<p>Hello <del>world</del> there.</p>\n",
		},
		{
			name: "Superscript",
			opts: Options{ExtSuperscript: true},
			in:   "x^2^\n",
			want: "<p>x<sup>2</sup></p>\n",
		},
		{
			name: "ExtendedAutolinkWWW",
			opts: Options{ExtAutolink: true},
			in:   "see www.example.com today\n",
			want: `<p>see <a href="http://www.example.com">www.example.com</a> today</p>` + "\n",
		},
		{
			name: "ExtendedAutolinkEmail",
			opts: Options{ExtAutolink: true},
			in:   "mail me@example.com now\n",
			want: `<p>mail <a href="mailto:me@example.com">me@example.com</a> now</p>` + "\n",
		},
		{
			name: "ExtendedAutolinkTrailingPunctuation",
			opts: Options{ExtAutolink: true},
			in:   "visit http://example.com/foo.\n",
			want: `<p>visit <a href="http://example.com/foo">http://example.com/foo</a>.</p>` + "\n",
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
