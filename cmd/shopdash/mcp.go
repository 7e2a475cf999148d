// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/shopdash/shopdash/internal/config"
	"github.com/shopdash/shopdash/internal/dataset"
	"github.com/shopdash/shopdash/internal/mcpserver"
)

var mcpData string

// mcpCmd is the parent command for MCP-related subcommands.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol server commands",
	Long:  "Commands for running shopdash as an MCP server, exposing the dashboard analyses to AI agents.",
}

// mcpServeCmd runs the MCP server over stdio.
var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio",
	Long: `Start an MCP server on stdin/stdout, exposing read-only tools:
  - list_analyses:   The analysis menu with descriptions
  - run_analysis:    Run one analysis and return its table
  - dataset_summary: Row count, missing values, and ranges of the dataset

The server communicates using the Model Context Protocol (MCP) over stdio
transport. Logs go to stderr.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := loadSettings(config.Settings{DataPath: mcpData})
		if err != nil {
			return err
		}
		opts := mcpserver.Options{
			Cache:      dataset.NewCache(s.DataPath, dataset.WithFileSystem(cmdFS), dataset.WithAutoReload(true)),
			SampleRows: s.SampleRows,
		}
		return mcpserver.Run(cmd.Context(), Version, opts, &mcp.StdioTransport{})
	},
}

func init() {
	mcpServeCmd.Flags().StringVar(&mcpData, "data", "", "cleaned products CSV (default ./output/clean.csv)")
	mcpCmd.AddCommand(mcpServeCmd)
}
