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

func TestLinkReferenceDefinitions(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "Full",
			in:   "[a][b]\n\n[b]: /url \"title\"\n",
			want: `<p><a href="/url" title="title">a</a></p>` + "\n",
		},
		{
			name: "Collapsed",
			in:   "[a][]\n\n[a]: /url\n",
			want: `<p><a href="/url">a</a></p>` + "\n",
		},
		{
			name: "Shortcut",
			in:   "[a]\n\n[a]: /url\n",
			want: `<p><a href="/url">a</a></p>` + "\n",
		},
		{
			name: "CaseAndWhitespaceInsensitive",
			in:   "[ A  link ]\n\n[a link]: /url\n",
			want: `<p><a href="/url"> A  link </a></p>` + "\n",
		},
		{
			name: "DefinitionProducesNoOutput",
			in:   "[a]: /url \"t\"\n",
			want: "",
		},
		{
			name: "UnresolvedReferenceIsLiteral",
			in:   "[a][missing]\n",
			want: "<p>[a][missing]</p>\n",
		},
		{
			name: "FirstDefinitionWins",
			in:   "[a]\n\n[a]: /first\n\n[a]: /second\n",
			want: `<p><a href="/first">a</a></p>` + "\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			doc := Parse([]byte(test.in), Options{})
			got := new(bytes.Buffer)
			require.NoError(t, RenderHTML(got, doc, Options{}))
			assert.Equal(t, test.want, got.String())
		})
	}
}
