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

// Options configures both phases of parsing and is also consulted by
// the HTML renderer (RenderHTML) and the format subpackage. The zero value
// disables every extension and uses plain CommonMark behavior.
type Options struct {
	// Hardbreaks treats every soft line break as a hard line break,
	// matching the "hardbreaks" rendering option common to CommonMark
	// implementations.
	Hardbreaks bool

	// GithubPreLang renders fenced code block info strings as
	// <pre lang="..."> instead of <pre><code class="language-...">.
	// Consulted by the html renderer only.
	GithubPreLang bool

	// Width is the target column for the CommonMark (format) renderer's
	// paragraph wrapping. Zero disables wrapping.
	Width int

	// ExtStrikethrough enables ~strikethrough~ spans.
	ExtStrikethrough bool
	// ExtTagfilter enables filtering of a denylist of raw HTML tag names.
	ExtTagfilter bool
	// ExtTable enables GFM pipe tables.
	ExtTable bool
	// ExtAutolink enables autolinking of bare URLs, www. hosts, and
	// email addresses in text.
	ExtAutolink bool
	// ExtTasklist enables `[ ]`/`[x]` checkbox rendering in list items.
	ExtTasklist bool
	// ExtSuperscript enables ^superscript^ spans.
	ExtSuperscript bool
}

// knownExtensions is used by CLI-style front ends to validate
// extension names supplied by a user. It is the programmer-error
// boundary called out by spec §7: an unrecognized name should fail
// early rather than silently doing nothing.
var knownExtensions = map[string]func(*Options){
	"strikethrough": func(o *Options) { o.ExtStrikethrough = true },
	"tagfilter":     func(o *Options) { o.ExtTagfilter = true },
	"table":         func(o *Options) { o.ExtTable = true },
	"autolink":      func(o *Options) { o.ExtAutolink = true },
	"tasklist":      func(o *Options) { o.ExtTasklist = true },
	"superscript":   func(o *Options) { o.ExtSuperscript = true },
}

// EnableExtension turns on the named extension by its CLI name (one of
// "strikethrough", "tagfilter", "table", "autolink", "tasklist",
// "superscript"). It reports an error for unrecognized names.
func (o *Options) EnableExtension(name string) error {
	set, ok := knownExtensions[name]
	if !ok {
		return &UnknownExtensionError{Name: name}
	}
	set(o)
	return nil
}

// UnknownExtensionError is returned by [Options.EnableExtension] for a
// name that does not match any extension.
type UnknownExtensionError struct {
	Name string
}

func (e *UnknownExtensionError) Error() string {
	return "unknown markdown extension " + quote(e.Name)
}

func quote(s string) string {
	return "\"" + s + "\""
}
