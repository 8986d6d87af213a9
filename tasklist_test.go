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

func TestTasklistExtension(t *testing.T) {
	opts := Options{ExtTasklist: true}
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "CheckedAndUnchecked",
			in:   "- [x] done\n- [ ] todo\n",
			want: "" +
				"<ul>\n" +
				`<li class="task-list-item"><input type="checkbox" checked="" disabled="" /> done</li>` + "\n" +
				`<li class="task-list-item"><input type="checkbox" disabled="" /> todo</li>` + "\n" +
				"</ul>\n",
		},
		{
			name: "NotAtStartOfItemIsLiteral",
			in:   "- a [x] b\n",
			want: "<ul>\n<li>a [x] b</li>\n</ul>\n",
		},
		{
			name: "OnlyFirstChildParagraphQualifies",
			in:   "- x\n\n  [x] y\n",
			want: "<ul>\n<li>\n<p>x</p>\n<p>[x] y</p>\n</li>\n</ul>\n",
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

func TestTasklistDisabledByDefault(t *testing.T) {
	doc := Parse([]byte("- [x] done\n"), Options{})
	got := new(bytes.Buffer)
	require.NoError(t, RenderHTML(got, doc, Options{}))
	assert.Equal(t, "<ul>\n<li>[x] done</li>\n</ul>\n", got.String())
}
