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

package format

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comrak-go/commonmark"
	"github.com/comrak-go/commonmark/internal/normhtml"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		source string
		opts   commonmark.Options
		want   string
	}{
		{
			name:   "Paragraph",
			source: "Hello, World!\n",
			want:   "Hello, World!\n",
		},
		{
			name:   "LooseList",
			source: "- one\n\n- two\n",
			want:   "- one\n\n- two\n",
		},
		{
			name:   "TightList",
			source: "- one\n- two\n",
			want:   "- one\n- two\n",
		},
		{
			name:   "OrderedListStart",
			source: "3. one\n4. two\n",
			want:   "3. one\n4. two\n",
		},
		{
			name:   "BlockQuote",
			source: "> quoted\n> text\n",
			want:   "> quoted text\n",
		},
		{
			name:   "FencedCodeBlock",
			source: "```go\nfmt.Println(1)\n```\n",
			want:   "```go\nfmt.Println(1)\n```\n",
		},
		{
			name:   "ATXHeading",
			source: "## Title\n",
			want:   "## Title\n",
		},
		{
			name:   "EscapesDelimiters",
			source: `5 * 3 = 15` + "\n",
			want:   `5 \* 3 = 15` + "\n",
		},
		{
			name: "Table",
			source: "" +
				"| a | b |\n" +
				"|---|--:|\n" +
				"| 1 | 2 |\n",
			opts: commonmark.Options{ExtTable: true},
			want: "" +
				"| a | b |\n" +
				"| --- | ---: |\n" +
				"| 1 | 2 |\n",
		},
		{
			name:   "Tasklist",
			source: "- [x] done\n- [ ] todo\n",
			opts:   commonmark.Options{ExtTasklist: true},
			want:   "- [x] done\n- [ ] todo\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			doc := commonmark.Parse([]byte(test.source), test.opts)
			got := new(bytes.Buffer)
			require.NoError(t, Format(got, doc, test.opts))
			assert.Equal(t, test.want, got.String())
		})
	}
}

// FuzzFormat checks that formatting is idempotent. It also compares the
// rendered HTML before and after reformatting; an input whose
// reformatting changes that HTML is skipped with t.Skipf, not failed.
func FuzzFormat(f *testing.F) {
	seeds := []string{
		"Hello, World!\n",
		"# Title\n\nSome *emphasized* and **strong** text.\n",
		"- one\n- two\n  - nested\n\n> a quote\n> continued\n",
		"1. first\n2. second\n\n```\ncode here\n```\n",
		"[a link](https://example.com \"title\")\n\n[ref]: https://example.com\n\nA [ref] usage.\n",
		"| a | b |\n|---|---|\n| 1 | 2 |\n",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, markdown string) {
		opts := commonmark.Options{ExtTable: true, ExtTasklist: true, ExtStrikethrough: true}
		doc := commonmark.Parse([]byte(markdown), opts)
		originalHTML := new(bytes.Buffer)
		if err := commonmark.RenderHTML(originalHTML, doc, opts); err != nil {
			t.Fatal("Render original HTML:", err)
		}

		got := new(bytes.Buffer)
		if err := Format(got, doc, opts); err != nil {
			t.Fatal("Format #1:", err)
		}

		formattedDoc := commonmark.Parse(got.Bytes(), opts)
		formattedHTML := new(bytes.Buffer)
		if err := commonmark.RenderHTML(formattedHTML, formattedDoc, opts); err != nil {
			t.Fatal("Render formatted HTML:", err)
		} else {
			diff := cmp.Diff(string(normhtml.NormalizeHTML(originalHTML.Bytes())), string(normhtml.NormalizeHTML(formattedHTML.Bytes())))
			if diff != "" {
				// TODO(soon): Once all cases are handled, change this to Errorf.
				t.Skipf("Reformatting changed semantics. Original:\n%s\nReformatting:\n%s\nHTML diff (-want +got):\n%s", markdown, got, diff)
			}
		}

		reformatted := new(bytes.Buffer)
		if err := Format(reformatted, formattedDoc, opts); err != nil {
			t.Fatal("Format #2:", err)
		}
		if diff := cmp.Diff(got.String(), reformatted.String()); diff != "" {
			t.Errorf("Format not idempotent (-first +second):\n%s", diff)
		}
	})
}
