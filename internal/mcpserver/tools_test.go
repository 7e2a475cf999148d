// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopdash/shopdash/internal/analysis"
	"github.com/shopdash/shopdash/internal/dataset"
)

const productsCSV = `price,price_category,rating,reviews
25.5,Low,4.5,120
89.99,Medium,4.7,340
299.0,High,4.3,85
5.99,Low,3.9,1020
45.0,Medium,4.5,210
`

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	p := filepath.Join(dir, "clean.csv")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func newToolset(t *testing.T) *toolset {
	t.Helper()
	return &toolset{cache: dataset.NewCache(writeCSV(t, productsCSV))}
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	return res.Content[0].(*mcp.TextContent).Text
}

func TestHandleList(t *testing.T) {
	res, _, err := newToolset(t).handleList(context.Background(), nil, ListInput{})
	require.NoError(t, err)

	var got []AnalysisInfo
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	require.Len(t, got, len(analysis.List()))
	assert.Equal(t, analysis.List()[0], got[0].Name)
	for _, a := range got {
		assert.NotEmpty(t, a.Label)
		assert.NotEmpty(t, a.Description)
	}
}

func TestHandleRun_Formats(t *testing.T) {
	ts := newToolset(t)
	ctx := context.Background()

	tests := []struct {
		format string
		check  func(t *testing.T, text string)
	}{
		{"", func(t *testing.T, text string) { assert.True(t, json.Valid([]byte(text))) }},
		{"json", func(t *testing.T, text string) { assert.True(t, json.Valid([]byte(text))) }},
		{"JSON", func(t *testing.T, text string) { assert.True(t, json.Valid([]byte(text))) }},
		{"markdown", func(t *testing.T, text string) { assert.Contains(t, text, "| price_category |") }},
		{"csv", func(t *testing.T, text string) { assert.Contains(t, text, "price_category,price\n") }},
		{"text", func(t *testing.T, text string) { assert.Contains(t, text, "Average Product Price by Price Category") }},
	}
	for _, tt := range tests {
		t.Run("format="+tt.format, func(t *testing.T) {
			res, _, err := ts.handleRun(ctx, nil, RunInput{Analysis: "avg-price-by-category", Format: tt.format})
			require.NoError(t, err)
			tt.check(t, resultText(t, res))
		})
	}
}

func TestHandleRun_RejectsFileFormats(t *testing.T) {
	ts := newToolset(t)
	for _, format := range []string{"xlsx", "html", "yaml"} {
		_, _, err := ts.handleRun(context.Background(), nil, RunInput{Analysis: "rating-vs-price", Format: format})
		require.Error(t, err, format)
		assert.Contains(t, err.Error(), "unsupported format")
	}
}

func TestHandleRun_UnknownAnalysis(t *testing.T) {
	_, _, err := newToolset(t).handleRun(context.Background(), nil, RunInput{Analysis: "nope"})
	assert.ErrorIs(t, err, analysis.ErrUnknownAnalysis)
}

func TestHandleRun_DataPathOverride(t *testing.T) {
	other := writeCSV(t, "price,price_category,rating,reviews\n10,Low,5,1\n")
	res, _, err := newToolset(t).handleRun(context.Background(), nil,
		RunInput{Analysis: "category-distribution", DataPath: other})
	require.NoError(t, err)

	var got struct {
		Rows [][]any `json:"rows"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "Low", got.Rows[0][0])
}

func TestHandleSummary(t *testing.T) {
	res, _, err := newToolset(t).handleSummary(context.Background(), nil, SummaryInput{})
	require.NoError(t, err)

	var sum dataset.Summary
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &sum))
	assert.Equal(t, 5, sum.Rows)
	require.NotNil(t, sum.PriceMax)
	assert.InDelta(t, 299.0, *sum.PriceMax, 1e-9)
}

func TestHandleSummary_MissingDataset(t *testing.T) {
	ts := &toolset{cache: dataset.NewCache(filepath.Join(t.TempDir(), "clean.csv"))}
	_, _, err := ts.handleSummary(context.Background(), nil, SummaryInput{})
	assert.ErrorIs(t, err, dataset.ErrNotFound)

	_, _, err = (&toolset{}).handleSummary(context.Background(), nil, SummaryInput{})
	assert.Error(t, err)
}
