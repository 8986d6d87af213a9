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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockQuoteLazyContinuation(t *testing.T) {
	doc := Parse([]byte("> a\nb\n"), Options{})
	require.Equal(t, 1, doc.ChildCount())
	bq := doc.Child(0)
	require.Equal(t, BlockQuoteKind, bq.Kind())
	require.Equal(t, 1, bq.ChildCount())
	para := bq.Child(0)
	require.Equal(t, ParagraphKind, para.Kind())
	require.Len(t, para.Inlines(), 3)
	assert.Equal(t, "a", string(para.Inlines()[0].Literal()))
	assert.Equal(t, SoftBreakKind, para.Inlines()[1].Kind())
	assert.Equal(t, "b", string(para.Inlines()[2].Literal()))
}

func TestListTightness(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"TightNoBlanks", "- a\n- b\n", true},
		{"LooseBlankBetweenItems", "- a\n\n- b\n", false},
		{"LooseBlankInsideItem", "- a\n\n  still a\n- b\n", false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			doc := Parse([]byte(test.in), Options{})
			require.Equal(t, 1, doc.ChildCount())
			list := doc.Child(0)
			require.Equal(t, ListKind, list.Kind())
			assert.Equal(t, test.want, list.List().Tight)
		})
	}
}

func TestListMarkerChangeStartsNewList(t *testing.T) {
	doc := Parse([]byte("- a\n* b\n"), Options{})
	require.Equal(t, 2, doc.ChildCount())
	assert.Equal(t, ListKind, doc.Child(0).Kind())
	assert.Equal(t, ListKind, doc.Child(1).Kind())
	assert.Equal(t, byte('-'), doc.Child(0).List().BulletChar)
	assert.Equal(t, byte('*'), doc.Child(1).List().BulletChar)
}

func TestATXHeadingLevels(t *testing.T) {
	for level := 1; level <= 6; level++ {
		in := repeatHash(level) + " h\n"
		doc := Parse([]byte(in), Options{})
		require.Equal(t, 1, doc.ChildCount())
		h := doc.Child(0)
		require.Equal(t, HeadingKind, h.Kind())
		assert.Equal(t, level, h.HeadingLevel())
		assert.False(t, h.IsSetext())
	}
}

func repeatHash(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '#'
	}
	return string(b)
}

func TestFencedCodeBlockInfoString(t *testing.T) {
	doc := Parse([]byte("```go run\ncode\n```\n"), Options{})
	require.Equal(t, 1, doc.ChildCount())
	cb := doc.Child(0)
	require.Equal(t, CodeBlockKind, cb.Kind())
	assert.True(t, cb.IsFenced())
	assert.Equal(t, "go run", string(cb.Info()))
	assert.Equal(t, "code\n", string(cb.Literal()))
}

func TestBlankDocumentProducesNoChildren(t *testing.T) {
	doc := Parse([]byte(""), Options{})
	assert.Equal(t, DocumentKind, doc.Kind())
	assert.Equal(t, 0, doc.ChildCount())
}
