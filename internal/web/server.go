// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

// Package web serves the interactive dashboard and its JSON API.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/shopdash/shopdash/internal/analysis"
	"github.com/shopdash/shopdash/internal/chart"
	"github.com/shopdash/shopdash/internal/dataset"
	"github.com/shopdash/shopdash/internal/insight"
)

// shutdownTimeout bounds how long in-flight requests get after a signal.
const shutdownTimeout = 10 * time.Second

// Config wires a Server to its collaborators.
type Config struct {
	// Cache is the memoized dataset every request reads. Required.
	Cache *dataset.Cache

	// Title overrides the page title.
	Title string

	// DefaultAnalysis is shown when the request names none.
	DefaultAnalysis string

	// SampleRows caps the sample-data tables.
	SampleRows int

	// ChartFormat is the image format the page links to (png or svg).
	ChartFormat chart.Format

	// Insight is optional; nil disables the summary endpoint.
	Insight *insight.Summarizer

	// Logger receives access logs. Nil means slog.Default().
	Logger *slog.Logger
}

// Server is the dashboard HTTP server.
type Server struct {
	cache           *dataset.Cache
	title           string
	defaultAnalysis string
	opts            analysis.Options
	chartFormat     chart.Format
	insight         *insight.Summarizer
	log             *slog.Logger
	engine          *gin.Engine
}

// New builds a Server and its router.
func New(cfg Config) *Server {
	s := &Server{
		cache:           cfg.Cache,
		title:           cfg.Title,
		defaultAnalysis: cfg.DefaultAnalysis,
		opts:            analysis.Options{SampleRows: cfg.SampleRows},
		chartFormat:     cfg.ChartFormat,
		insight:         cfg.Insight,
		log:             cfg.Logger,
	}
	if s.chartFormat == "" {
		s.chartFormat = chart.FormatPNG
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	s.engine = s.newRouter()
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe listens on addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("dashboard listening", "addr", ln.Addr().String(), "data", s.cache.Path())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.log.Info("dashboard shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}
