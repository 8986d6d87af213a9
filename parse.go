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

import "bytes"

// Parse parses source as a CommonMark (plus whatever GFM extensions
// opts enables) document, returning the root [Block] of the resulting
// tree.
//
// Parse never fails: malformed or ambiguous input is handled according
// to CommonMark's error-recovery rules rather than being rejected.
func Parse(source []byte, opts Options) *Block {
	p := newBlockParser(opts)
	for _, line := range splitLines(source) {
		p.processLine(line)
	}
	return p.finish()
}

// splitLines splits source into lines that each include their line
// terminator (\n, \r\n, or \r), except possibly the last. NUL bytes
// are replaced with U+FFFD, per CommonMark's preprocessing step.
//
// https://spec.commonmark.org/0.30/#insecure-characters
func splitLines(source []byte) [][]byte {
	if bytes.IndexByte(source, 0) >= 0 {
		source = bytes.ReplaceAll(source, []byte{0}, []byte("�"))
	}
	var lines [][]byte
	start := 0
	for i := 0; i < len(source); i++ {
		switch source[i] {
		case '\n':
			lines = append(lines, source[start:i+1])
			start = i + 1
		case '\r':
			if i+1 < len(source) && source[i+1] == '\n' {
				lines = append(lines, source[start:i+2])
				start = i + 2
				i++
			} else {
				lines = append(lines, source[start:i+1])
				start = i + 1
			}
		}
	}
	if start < len(source) {
		lines = append(lines, source[start:])
	}
	return lines
}
