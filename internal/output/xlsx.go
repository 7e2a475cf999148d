// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/shopdash/shopdash/internal/analysis"
	"github.com/shopdash/shopdash/internal/chart"
)

func init() {
	RegisterFormatter(NewXLSXFormatter())
}

// maxSheetName is the longest sheet name Excel accepts.
const maxSheetName = 31

// XLSXFormatter writes the result table to an Excel workbook. The sheet is
// named after the analysis; the chart is embedded as a PNG beside the table
// unless NoChart is set.
type XLSXFormatter struct {
	NoChart bool
}

var _ FileFormatter = (*XLSXFormatter)(nil)

// NewXLSXFormatter returns a new XLSXFormatter.
func NewXLSXFormatter() *XLSXFormatter {
	return &XLSXFormatter{}
}

// Name returns the format name.
func (x *XLSXFormatter) Name() string { return "xlsx" }

// ContentType returns the MIME type of the output.
func (x *XLSXFormatter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Extension returns the file extension.
func (x *XLSXFormatter) Extension() string { return ".xlsx" }

// Format writes the workbook to w. Numeric cells stay numeric; missing
// cells are left blank.
func (x *XLSXFormatter) Format(res *analysis.Result, w io.Writer) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := sheetName(res.Name)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("xlsx sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DDEBF7"}},
	})
	if err != nil {
		return fmt.Errorf("xlsx style: %w", err)
	}

	cols := res.Table.Columns
	for i, c := range cols {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("xlsx header: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, c.Name); err != nil {
			return fmt.Errorf("xlsx header %s: %w", cell, err)
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("xlsx column: %w", err)
		}
		if err := f.SetColWidth(sheet, name, name, 18); err != nil {
			return fmt.Errorf("xlsx column width: %w", err)
		}
	}
	if len(cols) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(cols), 1)
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("xlsx header style: %w", err)
		}
	}

	for r, row := range res.Table.Rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return fmt.Errorf("xlsx row %d: %w", r+1, err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("xlsx cell %s: %w", cell, err)
			}
		}
	}

	if !x.NoChart {
		if err := addChartPicture(f, sheet, len(cols)+2, res.Chart); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// addChartPicture renders spec as PNG and anchors it at row 1 of column col.
func addChartPicture(f *excelize.File, sheet string, col int, spec chart.Spec) error {
	var buf bytes.Buffer
	if err := chart.Render(&buf, spec, chart.FormatPNG); err != nil {
		return fmt.Errorf("xlsx chart: %w", err)
	}
	cell, err := excelize.CoordinatesToCellName(col, 1)
	if err != nil {
		return fmt.Errorf("xlsx chart: %w", err)
	}
	scale := 0.5
	err = f.AddPictureFromBytes(sheet, cell, &excelize.Picture{
		Extension: ".png",
		File:      buf.Bytes(),
		Format: &excelize.GraphicOptions{
			AltText: spec.Title,
			ScaleX:  scale,
			ScaleY:  scale,
		},
	})
	if err != nil {
		return fmt.Errorf("xlsx chart: %w", err)
	}
	return nil
}

// sheetName truncates name to the Excel sheet name limit.
func sheetName(name string) string {
	if name == "" {
		return "Sheet1"
	}
	if utf8.RuneCountInString(name) <= maxSheetName {
		return name
	}
	return string([]rune(name)[:maxSheetName])
}
