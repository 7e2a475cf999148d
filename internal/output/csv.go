// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopdash/shopdash/internal/analysis"
)

func init() {
	RegisterFormatter(NewCSVFormatter())
}

// CSVFormatter writes the result table as CSV with a header row. Missing
// cells are written empty so the file loads back as NA.
type CSVFormatter struct{}

var _ FileFormatter = (*CSVFormatter)(nil)

// NewCSVFormatter returns a new CSVFormatter.
func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

// Name returns the format name.
func (c *CSVFormatter) Name() string { return "csv" }

// ContentType returns the MIME type of the output.
func (c *CSVFormatter) ContentType() string { return "text/csv; charset=utf-8" }

// Extension returns the file extension.
func (c *CSVFormatter) Extension() string { return ".csv" }

// Format writes the table to w.
func (c *CSVFormatter) Format(res *analysis.Result, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(res.Table.Headers()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, row := range res.Table.Rows {
		rec := make([]string, len(row))
		for j, v := range row {
			if v != nil {
				rec[j] = analysis.FormatCell(v)
			}
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
