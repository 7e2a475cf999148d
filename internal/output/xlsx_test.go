// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestXLSXFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewXLSXFormatter().Format(testResult(), &buf))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"avg-price-by-category"}, f.GetSheetList())

	sheet := "avg-price-by-category"
	cases := map[string]string{
		"A1": "price_category",
		"B1": "price",
		"A2": "Low",
		"B2": "14.5",
		"A3": "High",
		"B3": "",
	}
	for cell, want := range cases {
		got, err := f.GetCellValue(sheet, cell)
		require.NoError(t, err)
		assert.Equal(t, want, got, cell)
	}
}

func TestXLSXFormatter_NoChart(t *testing.T) {
	var withChart, without bytes.Buffer
	require.NoError(t, NewXLSXFormatter().Format(testResult(), &withChart))
	require.NoError(t, (&XLSXFormatter{NoChart: true}).Format(testResult(), &without))
	assert.Greater(t, withChart.Len(), without.Len())
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Sheet1", sheetName(""))
	assert.Equal(t, "products-by-rating", sheetName("products-by-rating"))
	assert.Equal(t, strings.Repeat("x", 31), sheetName(strings.Repeat("x", 40)))
}
