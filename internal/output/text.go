// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"io"

	"github.com/shopdash/shopdash/internal/analysis"
	"github.com/shopdash/shopdash/internal/chart"
)

func init() {
	RegisterFormatter(NewTextFormatter())
}

// TextFormatter writes a result as an aligned terminal table.
type TextFormatter struct{}

var _ FileFormatter = (*TextFormatter)(nil)

// NewTextFormatter returns a new TextFormatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Name returns the format name.
func (f *TextFormatter) Name() string { return "text" }

// ContentType returns the MIME type of the output.
func (f *TextFormatter) ContentType() string { return "text/plain; charset=utf-8" }

// Extension returns the file extension.
func (f *TextFormatter) Extension() string { return ".txt" }

// Format writes the heading, the table and a one-line chart caption.
func (f *TextFormatter) Format(res *analysis.Result, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s\n\n%s\n", SectionTitle(res.Heading), res.TableTitle); err != nil {
		return fmt.Errorf("write text: %w", err)
	}

	cols := make([]Column, len(res.Table.Columns))
	for i, c := range res.Table.Columns {
		cols[i] = Column{Header: c.Name, Color: colorMissing}
		if c.Numeric {
			cols[i].Align = AlignRight
		}
	}
	tbl := NewTable(cols...)
	for _, row := range res.Table.Strings() {
		tbl.AddRow(row...)
	}
	if err := tbl.Render(w); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "\n%s: %s\n", res.ChartTitle, chartCaption(res.Chart)); err != nil {
		return fmt.Errorf("write text: %w", err)
	}
	return nil
}

func chartCaption(s chart.Spec) string {
	switch s.Kind {
	case chart.KindScatter:
		return fmt.Sprintf("%s (%d points)", s.Title, len(s.Points))
	default:
		return fmt.Sprintf("%s (%d %s)", s.Title, len(s.Values), plural(len(s.Values), "value", "values"))
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
