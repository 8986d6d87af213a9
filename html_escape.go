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

import "go4.org/bytereplacer"

// htmlEscaper replaces the handful of bytes that are unsafe to emit
// literally into HTML text content.
//
// https://spec.commonmark.org/0.30/#backslash-escapes
var htmlEscaper = bytereplacer.New(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// htmlAttrEscaper escapes the same bytes as htmlEscaper, for attribute
// values the renderer always wraps in double quotes.
var htmlAttrEscaper = bytereplacer.New(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escapeHTML(s []byte) []byte {
	return htmlEscaper.Replace(s)
}

func escapeHTMLAttr(s []byte) []byte {
	return htmlAttrEscaper.Replace(s)
}
