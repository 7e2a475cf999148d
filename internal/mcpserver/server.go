// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

// Package mcpserver implements an MCP (Model Context Protocol) server that
// exposes the dashboard analyses as read-only tools over stdio.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/shopdash/shopdash/internal/dataset"
)

// Options configures the tools.
type Options struct {
	// Cache serves tool calls that name no data_path. Required.
	Cache *dataset.Cache

	// SampleRows caps the sample-data tables.
	SampleRows int
}

// New creates a new MCP server with the shopdash tools registered.
func New(version string, opts Options) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "shopdash",
		Title:   "Shopdash E-commerce Products Dashboard",
		Version: version,
	}, nil)

	registerTools(server, &toolset{cache: opts.Cache, sampleRows: opts.SampleRows})
	return server
}

// Run creates an MCP server and runs it on the given transport.
// It blocks until the client disconnects or the context is cancelled.
func Run(ctx context.Context, version string, opts Options, transport mcp.Transport) error {
	return New(version, opts).Run(ctx, transport)
}
