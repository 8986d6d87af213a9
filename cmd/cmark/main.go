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

// Command cmark parses CommonMark (plus opt-in GFM extensions) and
// renders it as HTML or normalized CommonMark.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/comrak-go/commonmark"
	"github.com/comrak-go/commonmark/format"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "cmark:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		extensions    []string
		outputFormat  string
		width         int
		hardbreaks    bool
		githubPreLang bool
	)

	c := &cobra.Command{
		Use:   "cmark [flags] [FILE...]",
		Short: "Render CommonMark (plus GitHub-Flavored-Markdown extensions) as HTML or normalized CommonMark",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts commonmark.Options
			for _, name := range extensions {
				if err := opts.EnableExtension(name); err != nil {
					return err
				}
			}
			opts.Width = width
			opts.Hardbreaks = hardbreaks
			opts.GithubPreLang = githubPreLang

			switch outputFormat {
			case "html", "commonmark":
			default:
				return fmt.Errorf("unknown output format %q (want \"html\" or \"commonmark\")", outputFormat)
			}

			source, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			doc := commonmark.Parse(source, opts)
			switch outputFormat {
			case "commonmark":
				return format.Format(cmd.OutOrStdout(), doc, opts)
			default:
				return commonmark.RenderHTML(cmd.OutOrStdout(), doc, opts)
			}
		},
	}

	c.Flags().StringArrayVarP(&extensions, "extension", "e", nil,
		"enable a GFM extension (repeatable): strikethrough, tagfilter, table, autolink, tasklist, superscript")
	c.Flags().StringVarP(&outputFormat, "to", "t", "html", `output format: "html" or "commonmark"`)
	c.Flags().IntVar(&width, "width", 0, "wrap commonmark output at N display columns (0 disables wrapping)")
	c.Flags().BoolVar(&hardbreaks, "hardbreaks", false, "render every soft line break as a hard line break")
	c.Flags().BoolVar(&githubPreLang, "github-pre-lang", false, `emit fenced code info strings as <pre lang="..."> instead of <pre><code class="language-...">`)

	return c
}

// readInput concatenates the named files, or reads stdin if no files
// were given. It rejects ill-formed UTF-8, per spec's CLI input-format
// boundary (the parser itself tolerates it; the CLI does not).
func readInput(stdin io.Reader, files []string) ([]byte, error) {
	if len(files) == 0 {
		if f, ok := stdin.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			fmt.Fprintln(os.Stderr, "cmark: reading from stdin (use Ctrl-D to end input)...")
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		if !utf8.Valid(data) {
			return nil, fmt.Errorf("read stdin: invalid UTF-8")
		}
		return data, nil
	}

	var buf bytes.Buffer
	for _, name := range files {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		if !utf8.Valid(data) {
			return nil, fmt.Errorf("read %s: invalid UTF-8", name)
		}
		buf.Write(data)
	}
	return buf.Bytes(), nil
}
