// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package config

import (
	"github.com/shopdash/shopdash/internal/analysis"
	"github.com/shopdash/shopdash/internal/chart"
	"github.com/shopdash/shopdash/internal/dataset"
)

// DefaultAddr is the address the dashboard listens on.
const DefaultAddr = ":8501"

// Settings are the resolved options a command runs with.
type Settings struct {
	DataPath         string
	Addr             string
	Title            string
	SampleRows       int
	DefaultAnalysis  string
	AutoReload       bool
	LogFormat        string
	InsightEnabled   bool
	InsightModel     string
	InsightMaxTokens int
	ChartFormat      string
}

// Defaults returns the settings used when neither flags nor files set a value.
func Defaults() Settings {
	return Settings{
		DataPath:    dataset.DefaultPath,
		Addr:        DefaultAddr,
		SampleRows:  analysis.DefaultSampleRows,
		ChartFormat: string(chart.FormatPNG),
	}
}

// Overlay returns base with every non-zero field of top applied. It is used to
// lay the repo config over the global one.
func Overlay(base, top *Config) *Config {
	merged := *base

	if top.DataPath != "" {
		merged.DataPath = top.DataPath
	}
	if top.Addr != "" {
		merged.Addr = top.Addr
	}
	if top.Title != "" {
		merged.Title = top.Title
	}
	if top.SampleRows != 0 {
		merged.SampleRows = top.SampleRows
	}
	if top.DefaultAnalysis != "" {
		merged.DefaultAnalysis = top.DefaultAnalysis
	}
	if top.AutoReload != nil {
		merged.AutoReload = top.AutoReload
	}
	if top.LogFormat != "" {
		merged.LogFormat = top.LogFormat
	}
	if top.Insight.Enabled != nil {
		merged.Insight.Enabled = top.Insight.Enabled
	}
	if top.Insight.Model != "" {
		merged.Insight.Model = top.Insight.Model
	}
	if top.Insight.MaxTokens != 0 {
		merged.Insight.MaxTokens = top.Insight.MaxTokens
	}
	if top.Chart.Format != "" {
		merged.Chart.Format = top.Chart.Format
	}
	return &merged
}

// Merge combines file-based config with CLI-provided settings.
// CLI values take precedence; zero-value CLI fields fall through to the file
// config and then to Defaults.
func Merge(fileCfg *Config, cli Settings) Settings {
	result := cli
	def := Defaults()

	result.DataPath = first(result.DataPath, fileCfg.DataPath, def.DataPath)
	result.Addr = first(result.Addr, fileCfg.Addr, def.Addr)
	result.Title = first(result.Title, fileCfg.Title, def.Title)
	result.DefaultAnalysis = first(result.DefaultAnalysis, fileCfg.DefaultAnalysis, def.DefaultAnalysis)
	result.LogFormat = first(result.LogFormat, fileCfg.LogFormat, def.LogFormat)
	result.InsightModel = first(result.InsightModel, fileCfg.Insight.Model, def.InsightModel)
	result.ChartFormat = first(result.ChartFormat, fileCfg.Chart.Format, def.ChartFormat)

	if result.SampleRows == 0 {
		result.SampleRows = fileCfg.SampleRows
	}
	if result.SampleRows == 0 {
		result.SampleRows = def.SampleRows
	}
	if result.InsightMaxTokens == 0 {
		result.InsightMaxTokens = fileCfg.Insight.MaxTokens
	}

	// Booleans: CLI wins if true, otherwise file config.
	if !result.AutoReload && fileCfg.AutoReload != nil {
		result.AutoReload = *fileCfg.AutoReload
	}
	if !result.InsightEnabled && fileCfg.Insight.Enabled != nil {
		result.InsightEnabled = *fileCfg.Insight.Enabled
	}

	return result
}

func first(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
