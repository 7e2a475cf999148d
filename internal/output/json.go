// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopdash/shopdash/internal/analysis"
	"github.com/shopdash/shopdash/internal/chart"
)

func init() {
	RegisterFormatter(NewJSONFormatter())
}

// JSONResult is the machine-readable form of one analysis result.
type JSONResult struct {
	Name        string     `json:"name"`
	Label       string     `json:"label"`
	Heading     string     `json:"heading"`
	TableTitle  string     `json:"table_title"`
	Columns     []string   `json:"columns"`
	Rows        [][]any    `json:"rows"`
	Chart       chart.Spec `json:"chart"`
	GeneratedAt string     `json:"generated_at"`
}

// JSONFormatter writes a result as a JSON object.
type JSONFormatter struct {
	// Compact forces single-line output. When false, output is indented
	// for terminals and non-file writers and compact for pipes and files.
	Compact bool

	nowFunc func() time.Time
}

var _ FileFormatter = (*JSONFormatter)(nil)

// NewJSONFormatter returns a new JSONFormatter with default settings.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string { return "json" }

// ContentType returns the MIME type of the output.
func (f *JSONFormatter) ContentType() string { return "application/json" }

// Extension returns the file extension.
func (f *JSONFormatter) Extension() string { return ".json" }

// Format writes res as a JSON document followed by a newline.
func (f *JSONFormatter) Format(res *analysis.Result, w io.Writer) error {
	now := time.Now()
	if f.nowFunc != nil {
		now = f.nowFunc()
	}

	out := NewJSONResult(res)
	out.GeneratedAt = now.UTC().Format(time.RFC3339)

	var data []byte
	var err error
	if f.shouldCompact(w) {
		data, err = json.Marshal(out)
	} else {
		data, err = json.MarshalIndent(out, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// NewJSONResult converts res to its JSON shape. Rows is never nil.
func NewJSONResult(res *analysis.Result) JSONResult {
	rows := res.Table.Rows
	if rows == nil {
		rows = [][]any{}
	}
	return JSONResult{
		Name:       res.Name,
		Label:      res.Label,
		Heading:    res.Heading,
		TableTitle: res.TableTitle,
		Columns:    res.Table.Headers(),
		Rows:       rows,
		Chart:      res.Chart,
	}
}

func (f *JSONFormatter) shouldCompact(w io.Writer) bool {
	if f.Compact {
		return true
	}
	if file, ok := w.(*os.File); ok {
		fi, err := file.Stat()
		if err != nil {
			return false
		}
		return fi.Mode()&os.ModeCharDevice == 0
	}
	return false
}
