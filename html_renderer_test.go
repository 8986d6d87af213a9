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

func TestTagfilterExtension(t *testing.T) {
	opts := Options{ExtTagfilter: true}
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "FiltersScriptTagInline",
			in:   "before <script>alert(1)</script> after\n",
			want: "<p>before &lt;script>alert(1)&lt;/script> after</p>\n",
		},
		{
			name: "FiltersScriptTagBlock",
			in:   "<script>\nalert(1)\n</script>\n",
			want: "&lt;script>\nalert(1)\n&lt;/script>\n",
		},
		{
			name: "LeavesOrdinaryTagAlone",
			in:   "<span>ok</span>\n",
			want: "<p><span>ok</span></p>\n",
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

func TestTagfilterDisabledByDefault(t *testing.T) {
	doc := Parse([]byte("<span>ok</span>\n"), Options{})
	got := new(bytes.Buffer)
	require.NoError(t, RenderHTML(got, doc, Options{}))
	assert.Equal(t, "<p><span>ok</span></p>\n", got.String())
}

func TestGithubPreLang(t *testing.T) {
	doc := Parse([]byte("```go\ncode\n```\n"), Options{GithubPreLang: true})
	got := new(bytes.Buffer)
	require.NoError(t, RenderHTML(got, doc, Options{GithubPreLang: true}))
	assert.Equal(t, `<pre lang="go"><code>code`+"\n</code></pre>\n", got.String())
}

func TestHTMLBlockPassesThrough(t *testing.T) {
	in := "<div>\n  <p>raw</p>\n</div>\n"
	doc := Parse([]byte(in), Options{})
	got := new(bytes.Buffer)
	require.NoError(t, RenderHTML(got, doc, Options{}))
	assert.Equal(t, in, got.String())
}
