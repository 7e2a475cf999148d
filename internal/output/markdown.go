// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopdash/shopdash/internal/analysis"
)

func init() {
	RegisterFormatter(NewMarkdownFormatter())
}

// MarkdownFormatter writes a result as a GitHub-flavored Markdown section.
type MarkdownFormatter struct{}

var _ FileFormatter = (*MarkdownFormatter)(nil)

// NewMarkdownFormatter returns a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Name returns the format name.
func (m *MarkdownFormatter) Name() string { return "markdown" }

// ContentType returns the MIME type of the output.
func (m *MarkdownFormatter) ContentType() string { return "text/markdown; charset=utf-8" }

// Extension returns the file extension.
func (m *MarkdownFormatter) Extension() string { return ".md" }

// Format writes the heading, the table title and a pipe table. Numeric
// columns are right-aligned.
func (m *MarkdownFormatter) Format(res *analysis.Result, w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n### %s\n\n", res.Heading, res.TableTitle)

	cols := res.Table.Columns
	if len(cols) > 0 {
		b.WriteString("|")
		for _, c := range cols {
			fmt.Fprintf(&b, " %s |", escapeMarkdownCell(c.Name))
		}
		b.WriteString("\n|")
		for _, c := range cols {
			if c.Numeric {
				b.WriteString("---:|")
			} else {
				b.WriteString("---|")
			}
		}
		b.WriteString("\n")
		for _, row := range res.Table.Strings() {
			b.WriteString("|")
			for _, cell := range row {
				fmt.Fprintf(&b, " %s |", escapeMarkdownCell(cell))
			}
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(&b, "\n_%s: %s_\n", res.ChartTitle, res.Chart.Title)

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// escapeMarkdownCell escapes pipes and flattens newlines.
func escapeMarkdownCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
