// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/shopdash/shopdash/internal/analysis"
	"github.com/shopdash/shopdash/internal/dataset"
	"github.com/shopdash/shopdash/internal/output"
)

// toolFormats are the output formats run_analysis accepts. Binary and page
// formats are left to the CLI.
var toolFormats = []string{"json", "text", "markdown", "csv"}

// ListInput is the input schema for list_analyses.
type ListInput struct{}

// RunInput is the input schema for run_analysis.
type RunInput struct {
	Analysis string `json:"analysis" jsonschema:"Analysis slug or menu label (e.g. rating-vs-price or Rating vs Price)"`
	Format   string `json:"format,omitempty" jsonschema:"Output format: json, text, markdown, csv (default: json)"`
	DataPath string `json:"data_path,omitempty" jsonschema:"Cleaned products CSV to read instead of the configured dataset"`
}

// SummaryInput is the input schema for dataset_summary.
type SummaryInput struct {
	DataPath string `json:"data_path,omitempty" jsonschema:"Cleaned products CSV to read instead of the configured dataset"`
}

// AnalysisInfo describes one menu entry.
type AnalysisInfo struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

type toolset struct {
	cache      *dataset.Cache
	sampleRows int
}

func boolPtr(b bool) *bool { return &b }

func readOnly() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:    true,
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
}

func registerTools(server *mcp.Server, ts *toolset) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_analyses",
		Description: "List the dashboard analyses in menu order with their slugs, labels, and descriptions.",
		Annotations: readOnly(),
	}, ts.handleList)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "run_analysis",
		Description: "Run one dashboard analysis over the cleaned products dataset and return its table and chart description.",
		Annotations: readOnly(),
	}, ts.handleRun)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "dataset_summary",
		Description: "Summarize the cleaned products dataset: row count, missing values per column, price range, categories, and ratings.",
		Annotations: readOnly(),
	}, ts.handleSummary)
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: text}}}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return textResult(string(data)), nil
}

// loadDataset reads dataPath when given, else the shared cache.
func (ts *toolset) loadDataset(ctx context.Context, dataPath string) (*dataset.Dataset, error) {
	if dataPath == "" {
		if ts.cache == nil {
			return nil, fmt.Errorf("no dataset configured")
		}
		return ts.cache.Get(ctx)
	}
	abs, err := ResolveDataPath(dataPath)
	if err != nil {
		return nil, err
	}
	return dataset.Load(ctx, abs)
}

func (ts *toolset) handleList(_ context.Context, _ *mcp.CallToolRequest, _ ListInput) (*mcp.CallToolResult, any, error) {
	all := analysis.All()
	out := make([]AnalysisInfo, len(all))
	for i, a := range all {
		out[i] = AnalysisInfo{Name: a.Name(), Label: a.Label(), Description: a.Description()}
	}
	res, err := jsonResult(out)
	return res, nil, err
}

func (ts *toolset) handleRun(ctx context.Context, _ *mcp.CallToolRequest, input RunInput) (*mcp.CallToolResult, any, error) {
	format := strings.ToLower(strings.TrimSpace(input.Format))
	if format == "" {
		format = "json"
	}
	if !isToolFormat(format) {
		return nil, nil, fmt.Errorf("unsupported format %q (available: %s)", input.Format, strings.Join(toolFormats, ", "))
	}
	f, err := output.GetFormatter(format)
	if err != nil {
		return nil, nil, err
	}

	a, err := analysis.Resolve(input.Analysis)
	if err != nil {
		return nil, nil, err
	}
	ds, err := ts.loadDataset(ctx, input.DataPath)
	if err != nil {
		return nil, nil, err
	}

	slog.Info("mcp run_analysis", "analysis", a.Name(), "format", format, "rows", ds.Len())
	res, err := a.Run(ds, analysis.Options{SampleRows: ts.sampleRows})
	if err != nil {
		return nil, nil, fmt.Errorf("analysis %s: %w", a.Name(), err)
	}

	var buf bytes.Buffer
	if err := f.Format(res, &buf); err != nil {
		return nil, nil, fmt.Errorf("format %s: %w", format, err)
	}
	return textResult(buf.String()), nil, nil
}

func (ts *toolset) handleSummary(ctx context.Context, _ *mcp.CallToolRequest, input SummaryInput) (*mcp.CallToolResult, any, error) {
	ds, err := ts.loadDataset(ctx, input.DataPath)
	if err != nil {
		return nil, nil, err
	}
	res, err := jsonResult(dataset.Summarize(ds))
	return res, nil, err
}

func isToolFormat(name string) bool {
	for _, f := range toolFormats {
		if f == name {
			return true
		}
	}
	return false
}
