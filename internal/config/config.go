// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

// Package config handles .shopdash.yaml and .shopdash.toml configuration files.
package config

// Config represents the contents of a shopdash config file.
type Config struct {
	DataPath        string        `yaml:"data_path,omitempty" toml:"data_path,omitempty"`
	Addr            string        `yaml:"addr,omitempty" toml:"addr,omitempty"`
	Title           string        `yaml:"title,omitempty" toml:"title,omitempty"`
	SampleRows      int           `yaml:"sample_rows,omitempty" toml:"sample_rows,omitempty"`
	DefaultAnalysis string        `yaml:"default_analysis,omitempty" toml:"default_analysis,omitempty"`
	AutoReload      *bool         `yaml:"auto_reload,omitempty" toml:"auto_reload,omitempty"`
	LogFormat       string        `yaml:"log_format,omitempty" toml:"log_format,omitempty"`
	Insight         InsightConfig `yaml:"insight,omitempty" toml:"insight,omitempty"`
	Chart           ChartConfig   `yaml:"chart,omitempty" toml:"chart,omitempty"`
}

// InsightConfig holds the LLM summary settings.
type InsightConfig struct {
	Enabled   *bool  `yaml:"enabled,omitempty" toml:"enabled,omitempty"`
	Model     string `yaml:"model,omitempty" toml:"model,omitempty"`
	MaxTokens int    `yaml:"max_tokens,omitempty" toml:"max_tokens,omitempty"`
}

// ChartConfig holds chart rendering settings.
type ChartConfig struct {
	Format string `yaml:"format,omitempty" toml:"format,omitempty"`
}

// Config file names looked up in the working directory. YAML wins when both
// exist.
const (
	FileName     = ".shopdash.yaml"
	TOMLFileName = ".shopdash.toml"
)
