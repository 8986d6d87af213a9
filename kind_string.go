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

// String returns a lowercase name for k, for use in debugging and test
// failure output.
func (k BlockKind) String() string {
	switch k {
	case DocumentKind:
		return "document"
	case BlockQuoteKind:
		return "block_quote"
	case ListKind:
		return "list"
	case ItemKind:
		return "item"
	case HeadingKind:
		return "heading"
	case ThematicBreakKind:
		return "thematic_break"
	case CodeBlockKind:
		return "code_block"
	case HTMLBlockKind:
		return "html_block"
	case ParagraphKind:
		return "paragraph"
	case TableKind:
		return "table"
	case TableRowKind:
		return "table_row"
	case TableCellKind:
		return "table_cell"
	default:
		return "block_kind(0)"
	}
}

// String returns a lowercase name for k, for use in debugging and test
// failure output.
func (k InlineKind) String() string {
	switch k {
	case TextKind:
		return "text"
	case SoftBreakKind:
		return "soft_break"
	case LineBreakKind:
		return "line_break"
	case CodeKind:
		return "code"
	case HTMLInlineKind:
		return "html_inline"
	case EmphKind:
		return "emph"
	case StrongKind:
		return "strong"
	case StrikethroughKind:
		return "strikethrough"
	case SuperscriptKind:
		return "superscript"
	case LinkKind:
		return "link"
	case ImageKind:
		return "image"
	default:
		return "inline_kind(0)"
	}
}
