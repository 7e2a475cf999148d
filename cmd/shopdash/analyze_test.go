// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/shopdash/shopdash/internal/config"
	"github.com/shopdash/shopdash/internal/testable"
)

func TestAnalyze_Text(t *testing.T) {
	setupWorkdir(t)
	out, _, err := execute(t, "analyze", "avg-price-by-category")
	require.NoError(t, err)
	assert.Contains(t, out, "Average Product Price by Price Category")
	assert.Contains(t, out, "Bar Chart:")
	assert.Contains(t, out, "Low")
}

func TestAnalyze_ByLabelJSON(t *testing.T) {
	setupWorkdir(t)
	out, _, err := execute(t, "analyze", "Product Distribution by Category", "--format", "json")
	require.NoError(t, err)

	var got struct {
		Name    string   `json:"name"`
		Columns []string `json:"columns"`
		Rows    [][]any  `json:"rows"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "category-distribution", got.Name)
	assert.Equal(t, []string{"price_category", "count"}, got.Columns)
	assert.Len(t, got.Rows, 3)
}

func TestAnalyze_SampleRowsFromConfigAndFlag(t *testing.T) {
	dir := setupWorkdir(t)
	writeTestFile(t, dir, config.FileName, "sample_rows: 2\n")

	rowsFor := func(args ...string) int {
		resetFlags()
		out, _, err := execute(t, append([]string{"analyze", "rating-vs-price", "-f", "json"}, args...)...)
		require.NoError(t, err)
		var got struct {
			Rows [][]any `json:"rows"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		return len(got.Rows)
	}
	assert.Equal(t, 2, rowsFor())
	assert.Equal(t, 4, rowsFor("--rows", "4"))
}

func TestAnalyze_OutputFileAndChart(t *testing.T) {
	dir := setupWorkdir(t)
	_, stderr, err := execute(t, "analyze", "products-by-rating", "-f", "csv", "-o", "ratings.csv", "--chart", "ratings.png")
	require.NoError(t, err)
	assert.Contains(t, stderr, "wrote ratings.csv")

	data, err := os.ReadFile(filepath.Join(dir, "ratings.csv"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "rating,count\n"), string(data))

	png, err := os.ReadFile(filepath.Join(dir, "ratings.png"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(png), "\x89PNG"))
}

func TestAnalyze_XLSX(t *testing.T) {
	dir := setupWorkdir(t)
	_, _, err := execute(t, "analyze", "category-distribution", "-f", "xlsx", "-o", "dist.xlsx")
	require.NoError(t, err)

	f, err := excelize.OpenFile(filepath.Join(dir, "dist.xlsx"))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetList()[0]
	v, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "price_category", v)
}

func TestAnalyze_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
		msg  string
	}{
		{"unknown analysis", []string{"analyze", "nope"}, ExitInvalidArgs, "unknown analysis"},
		{"unknown format", []string{"analyze", "rating-vs-price", "-f", "pdf"}, ExitInvalidArgs, "unknown format"},
		{"bad chart extension", []string{"analyze", "rating-vs-price", "--chart", "c.gif"}, ExitInvalidArgs, "--chart"},
		{"negative rows", []string{"analyze", "rating-vs-price", "--rows", "-1"}, ExitInvalidArgs, "--rows"},
		{"rows above cap", []string{"analyze", "rating-vs-price", "--rows", "10001"}, ExitInvalidArgs, "between 0 and 10000"},
		{"missing dataset", []string{"analyze", "rating-vs-price", "--data", "missing.csv"}, ExitDataFailure, "dataset not found"},
		{"pie as svg", []string{"analyze", "category-distribution", "--chart", "pie.svg"}, ExitRenderFailure, "chart rendering failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupWorkdir(t)
			_, _, err := execute(t, tt.args...)
			ece := requireExitCode(t, err, tt.code)
			assert.Contains(t, ece.Error(), tt.msg)
		})
	}
}

func TestAnalyze_InvalidDataset(t *testing.T) {
	dir := setupWorkdir(t)
	writeTestFile(t, dir, "bad.csv", "price,rating\n1,2\n")
	_, _, err := execute(t, "analyze", "rating-vs-price", "--data", "bad.csv")
	ece := requireExitCode(t, err, ExitDataFailure)
	assert.Contains(t, ece.Error(), "cannot load dataset")
}

func TestAnalyze_CreateOutputFails(t *testing.T) {
	setupWorkdir(t)
	orig := cmdFS
	cmdFS = &testable.MockFileSystem{
		CreateFn: func(string) (*os.File, error) { return nil, errors.New("read-only") },
	}
	t.Cleanup(func() { cmdFS = orig })

	_, _, err := execute(t, "analyze", "rating-vs-price", "-o", "out.txt")
	ece := requireExitCode(t, err, ExitInvalidArgs)
	assert.Contains(t, ece.Error(), "cannot create output file")
}
