// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package analysis

import (
	"math"
	"strconv"
	"strings"
)

// Column is one table header.
type Column struct {
	Name    string `json:"name"`
	Numeric bool   `json:"numeric"`
}

// Table is the tabular half of a pane. Cells are string, float64, int or
// nil (a missing value).
type Table struct {
	Columns []Column `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// Headers returns the column names.
func (t Table) Headers() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// Strings returns every row with cells formatted by FormatCell.
func (t Table) Strings() [][]string {
	out := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = FormatCell(v)
		}
		out[i] = cells
	}
	return out
}

// num converts a float to a cell, mapping NaN to a missing cell so the table
// stays JSON-encodable.
func num(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}

// FormatCell renders a cell for display. Floats use at most six decimals
// with trailing zeros trimmed; missing cells print as NaN.
func FormatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return "NaN"
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		if math.IsNaN(x) {
			return "NaN"
		}
		s := strconv.FormatFloat(x, 'f', 6, 64)
		s = strings.TrimRight(s, "0")
		return strings.TrimSuffix(s, ".")
	default:
		return ""
	}
}
