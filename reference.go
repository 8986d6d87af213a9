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

// Reference holds the destination and title parsed from a link
// reference definition.
//
// https://spec.commonmark.org/0.30/#link-reference-definition
type Reference struct {
	URL   string
	Title string
}

// ReferenceMap maps a normalized label (see normalizeLabel) to the
// first link reference definition that declared it. First-definition
// wins: later definitions with a colliding normalized label are
// ignored, per CommonMark.
type ReferenceMap map[string]Reference

// Lookup reports the reference for label after normalizing it, and
// whether one was found.
func (m ReferenceMap) Lookup(label []byte) (Reference, bool) {
	ref, ok := m[normalizeLabel(label)]
	return ref, ok
}

// add inserts a definition iff the label is non-empty and not already
// present.
func (m ReferenceMap) add(label []byte, ref Reference) {
	key := normalizeLabel(label)
	if key == "" {
		return
	}
	if _, exists := m[key]; exists {
		return
	}
	m[key] = ref
}
