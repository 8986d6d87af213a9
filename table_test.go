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

func TestTableExtension(t *testing.T) {
	opts := Options{ExtTable: true}
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "Basic",
			in: "" +
				"| a | b |\n" +
				"|---|---|\n" +
				"| 1 | 2 |\n",
			want: "" +
				"<table>\n" +
				"<thead>\n" +
				"<tr>\n" +
				"<th>a</th>\n" +
				"<th>b</th>\n" +
				"</tr>\n" +
				"</thead>\n" +
				"<tbody>\n" +
				"<tr>\n" +
				"<td>1</td>\n" +
				"<td>2</td>\n" +
				"</tr>\n" +
				"</tbody>\n" +
				"</table>\n",
		},
		{
			name: "Alignment",
			in: "" +
				"| a | b | c |\n" +
				"|:--|:-:|--:|\n" +
				"| 1 | 2 | 3 |\n",
			want: "" +
				"<table>\n" +
				"<thead>\n" +
				"<tr>\n" +
				`<th align="left">a</th>` + "\n" +
				`<th align="center">b</th>` + "\n" +
				`<th align="right">c</th>` + "\n" +
				"</tr>\n" +
				"</thead>\n" +
				"<tbody>\n" +
				"<tr>\n" +
				`<td align="left">1</td>` + "\n" +
				`<td align="center">2</td>` + "\n" +
				`<td align="right">3</td>` + "\n" +
				"</tr>\n" +
				"</tbody>\n" +
				"</table>\n",
		},
		{
			name: "RaggedRowPadded",
			in: "" +
				"| a | b |\n" +
				"|---|---|\n" +
				"| 1 |\n",
			want: "" +
				"<table>\n" +
				"<thead>\n" +
				"<tr>\n" +
				"<th>a</th>\n" +
				"<th>b</th>\n" +
				"</tr>\n" +
				"</thead>\n" +
				"<tbody>\n" +
				"<tr>\n" +
				"<td>1</td>\n" +
				"<td></td>\n" +
				"</tr>\n" +
				"</tbody>\n" +
				"</table>\n",
		},
		{
			name: "NoDelimiterRowStaysParagraph",
			in:   "| a | b |\nnot a table\n",
			want: "<p>| a | b |\nnot a table</p>\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			doc := Parse([]byte(test.in), opts)
			got := new(bytes.Buffer)
			require.NoError(t, RenderHTML(got, doc, opts))
			assert.Equal(t, test.want, got.String())
		})
	}
}

func TestTableDisabledByDefault(t *testing.T) {
	doc := Parse([]byte("| a | b |\n|---|---|\n| 1 | 2 |\n"), Options{})
	got := new(bytes.Buffer)
	require.NoError(t, RenderHTML(got, doc, Options{}))
	assert.NotContains(t, got.String(), "<table>")
}
