// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/shopdash/shopdash/internal/chart"
	"github.com/shopdash/shopdash/internal/config"
	"github.com/shopdash/shopdash/internal/dataset"
	"github.com/shopdash/shopdash/internal/insight"
	"github.com/shopdash/shopdash/internal/web"
)

// Serve-specific flag values.
var (
	serveAddr       string
	serveData       string
	serveAutoReload bool
	serveInsight    bool
)

// serveCmd runs the interactive dashboard.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive dashboard",
	Long: `Serve the dashboard over HTTP. Each page view reruns the selected
analysis against the memoized dataset. The dataset is read once and kept
until it is reloaded (POST /api/dataset/reload) or, with --auto-reload,
until the file changes on disk.

The server stops gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default :8501)")
	serveCmd.Flags().StringVar(&serveData, "data", "", "cleaned products CSV (default ./output/clean.csv)")
	serveCmd.Flags().BoolVar(&serveAutoReload, "auto-reload", false, "reload the dataset when the file changes")
	serveCmd.Flags().BoolVar(&serveInsight, "insight", false, "enable LLM summaries (requires ANTHROPIC_API_KEY)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(config.Settings{
		Addr:           serveAddr,
		DataPath:       serveData,
		AutoReload:     serveAutoReload,
		InsightEnabled: serveInsight,
	})
	if err != nil {
		return err
	}

	cache := dataset.NewCache(s.DataPath,
		dataset.WithFileSystem(cmdFS),
		dataset.WithAutoReload(s.AutoReload),
	)
	// Warm the memo. A failure is shown on the page rather than fatal, so the
	// file can be produced while the server runs.
	if ds, err := cache.Get(cmd.Context()); err != nil {
		slog.Warn("dataset not loaded", "path", s.DataPath, "error", err)
	} else {
		slog.Info("dataset loaded", "path", s.DataPath, "rows", ds.Len())
	}

	summarizer, err := insight.NewAnthropic(s.InsightEnabled, s.InsightModel, s.InsightMaxTokens)
	if err != nil {
		slog.Warn("insight disabled", "error", err)
	}

	format, err := chart.ParseFormat(s.ChartFormat)
	if err != nil {
		return exitError(ExitInvalidArgs, "shopdash: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	srv := web.New(web.Config{
		Cache:           cache,
		Title:           s.Title,
		DefaultAnalysis: s.DefaultAnalysis,
		SampleRows:      s.SampleRows,
		ChartFormat:     format,
		Insight:         summarizer,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx, s.Addr); err != nil {
		return exitError(ExitInvalidArgs, "shopdash: %v", err)
	}
	return nil
}
