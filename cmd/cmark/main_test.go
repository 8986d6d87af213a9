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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadInputFromStdin(t *testing.T) {
	got, err := readInput(strings.NewReader("hello\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(got))
}

func TestReadInputRejectsInvalidUTF8FromStdin(t *testing.T) {
	_, err := readInput(bytes.NewReader([]byte{0xff, 0xfe}), nil)
	assert.Error(t, err)
}

func TestReadInputConcatenatesFiles(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.md")
	second := filepath.Join(dir, "b.md")
	require.NoError(t, os.WriteFile(first, []byte("one\n"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("two\n"), 0o644))

	got, err := readInput(strings.NewReader(""), []string{first, second})
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(got))
}

func TestReadInputRejectsInvalidUTF8FromFile(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.md")
	require.NoError(t, os.WriteFile(bad, []byte("\xff\xfe"), 0o644))

	_, err := readInput(strings.NewReader(""), []string{bad})
	assert.Error(t, err)
}

func TestReadInputMissingFile(t *testing.T) {
	_, err := readInput(strings.NewReader(""), []string{filepath.Join(t.TempDir(), "missing.md")})
	assert.Error(t, err)
}
