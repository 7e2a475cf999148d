// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/shopdash/shopdash/internal/analysis"
	"github.com/shopdash/shopdash/internal/chart"
	"github.com/shopdash/shopdash/internal/log"
)

// MaxSampleRows bounds sample_rows to keep sample tables renderable.
const MaxSampleRows = 10000

// Validate checks all fields in the config and returns all errors at once.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.Addr != "" {
		if _, _, err := net.SplitHostPort(cfg.Addr); err != nil {
			errs = append(errs, fmt.Sprintf("addr: invalid listen address %q (want host:port or :port)", cfg.Addr))
		}
	}

	if cfg.SampleRows < 0 || cfg.SampleRows > MaxSampleRows {
		errs = append(errs, fmt.Sprintf("sample_rows: must be between 0 and %d, got %d", MaxSampleRows, cfg.SampleRows))
	}

	if cfg.DefaultAnalysis != "" {
		if _, err := analysis.Resolve(cfg.DefaultAnalysis); err != nil {
			errs = append(errs, fmt.Sprintf("default_analysis: %v", err))
		}
	}

	if !log.ValidFormat(cfg.LogFormat) {
		errs = append(errs, fmt.Sprintf("log_format: invalid value %q (must be text or json)", cfg.LogFormat))
	}

	if cfg.Insight.MaxTokens < 0 {
		errs = append(errs, fmt.Sprintf("insight.max_tokens: must be non-negative, got %d", cfg.Insight.MaxTokens))
	}

	if cfg.Chart.Format != "" {
		if _, err := chart.ParseFormat(cfg.Chart.Format); err != nil {
			errs = append(errs, fmt.Sprintf("chart.format: %v", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
