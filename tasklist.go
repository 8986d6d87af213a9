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

// This file implements the GFM tasklist extension's post-pass: a list
// item whose paragraph starts with "[ ]", "[x]", or "[X]" becomes a
// checkbox item. The scoping matches the rule a leading checkbox must
// satisfy: it must be the very first content of the very first child
// of the item (no preceding sibling block, no preceding sibling
// inline), so that "- [x] done" is recognized but "- a [x] b" and
// "- x\n\n  [x] y" are not.
//
// https://github.github.com/gfm/#task-list-items-extension-

package commonmark

func applyTasklist(item *Block) {
	if len(item.children) == 0 {
		return
	}
	para := item.children[0]
	if para.Kind() != ParagraphKind || len(para.inline) == 0 {
		return
	}
	first := para.inline[0]
	if first.Kind() != TextKind {
		return
	}
	ok, checked, rest := matchTaskCheckbox(first.literal)
	if !ok {
		return
	}
	item.taskItem = true
	item.taskChecked = checked

	checkbox := &Inline{kind: HTMLInlineKind, literal: checkboxHTML(checked)}
	first.literal = rest
	newInline := make([]*Inline, 0, len(para.inline)+1)
	newInline = append(newInline, checkbox)
	newInline = append(newInline, para.inline...)
	para.inline = newInline
}

// matchTaskCheckbox matches "\A(\[([xX ])\])(?:\z|\s)" against
// literal, returning the checked state and the literal text with the
// matched prefix (including one trailing whitespace byte, if any)
// removed.
func matchTaskCheckbox(literal []byte) (ok, checked bool, rest []byte) {
	if len(literal) < 3 || literal[0] != '[' {
		return false, false, nil
	}
	switch literal[1] {
	case 'x', 'X':
		checked = true
	case ' ':
		checked = false
	default:
		return false, false, nil
	}
	if literal[2] != ']' {
		return false, false, nil
	}
	end := 3
	if len(literal) > 3 {
		if !isSpaceTabOrLineEnding(literal[3]) {
			return false, false, nil
		}
		end = 4
	}
	return true, checked, literal[end:]
}

func checkboxHTML(checked bool) []byte {
	if checked {
		return []byte(`<input type="checkbox" checked="" disabled="" /> `)
	}
	return []byte(`<input type="checkbox" disabled="" /> `)
}
