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

// This file implements the GFM "tagfilter" extension, applied by the
// HTML renderer (not the parser) to raw HTML blocks and inline HTML:
// the opening '<' of a small set of tag names considered dangerous in
// a sandboxed-rendering context is escaped to "&lt;", neutralizing the
// tag while leaving the rest of the text untouched.
//
// https://github.github.com/gfm/#disallowed-raw-html-extension-
package commonmark

import "bytes"

var tagfilterNames = [][]byte{
	[]byte("title"), []byte("textarea"), []byte("style"), []byte("xmp"),
	[]byte("iframe"), []byte("noembed"), []byte("noframes"),
	[]byte("script"), []byte("plaintext"),
}

// filterTags escapes the '<' of every disallowed tag occurrence in
// html, leaving everything else byte-for-byte identical.
func filterTags(html []byte) []byte {
	if bytes.IndexByte(html, '<') < 0 {
		return html
	}
	var out []byte
	i := 0
	for {
		idx := bytes.IndexByte(html[i:], '<')
		if idx < 0 {
			out = append(out, html[i:]...)
			break
		}
		idx += i
		out = append(out, html[i:idx]...)
		if name, ok := matchFilteredTag(html[idx:]); ok {
			out = append(out, "&lt;"...)
			out = append(out, name...)
			i = idx + 1 + len(name)
		} else {
			out = append(out, '<')
			i = idx + 1
		}
	}
	return out
}

// matchFilteredTag reports whether b starts with "<" or "</" followed
// by one of the filtered tag names, case-insensitively, and returns
// the matched text after the initial '<' (i.e. the optional '/' plus
// the tag name).
func matchFilteredTag(b []byte) (matched []byte, ok bool) {
	if len(b) < 2 || b[0] != '<' {
		return nil, false
	}
	rest := b[1:]
	prefix := 0
	if len(rest) > 0 && rest[0] == '/' {
		prefix = 1
	}
	for _, name := range tagfilterNames {
		if len(rest) >= prefix+len(name) && bytes.EqualFold(rest[prefix:prefix+len(name)], name) {
			return rest[:prefix+len(name)], true
		}
	}
	return nil, false
}
