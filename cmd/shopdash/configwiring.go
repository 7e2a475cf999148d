// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shopdash/shopdash/internal/config"
	"github.com/shopdash/shopdash/internal/dataset"
	shoplog "github.com/shopdash/shopdash/internal/log"
)

// loadSettings layers the global config, the repo config in the working
// directory, and the CLI flags in cli. Config problems exit with
// ExitInvalidArgs.
func loadSettings(cli config.Settings) (config.Settings, error) {
	globalCfg, err := config.LoadGlobal()
	if err != nil {
		return config.Settings{}, exitError(ExitInvalidArgs, "shopdash: failed to load global config (%v)", err)
	}
	repoCfg, err := config.Load(".")
	if err != nil {
		return config.Settings{}, exitError(ExitInvalidArgs, "shopdash: failed to load config (%v)", err)
	}
	fileCfg := config.Overlay(globalCfg, repoCfg)
	if err := config.Validate(fileCfg); err != nil {
		return config.Settings{}, exitError(ExitInvalidArgs, "shopdash: %v", err)
	}

	if cli.LogFormat == "" {
		cli.LogFormat = logFormat
	}
	s := config.Merge(fileCfg, cli)
	if logFormat == "" && s.LogFormat != "" {
		shoplog.Setup(verbose, quiet, s.LogFormat)
	}
	slog.Debug("settings resolved", "data", s.DataPath, "addr", s.Addr, "sample_rows", s.SampleRows)
	return s, nil
}

// loadDataset reads the dataset at path through cmdFS. Failures exit with
// ExitDataFailure.
func loadDataset(cmd *cobra.Command, path string) (*dataset.Dataset, error) {
	ds, err := dataset.LoadFS(cmd.Context(), cmdFS, path)
	if err != nil {
		if errors.Is(err, dataset.ErrNotFound) {
			return nil, exitError(ExitDataFailure, "shopdash: dataset not found at %s", path)
		}
		return nil, exitError(ExitDataFailure, "shopdash: cannot load dataset (%v)", err)
	}
	slog.Debug("dataset loaded", "path", path, "rows", ds.Len())
	return ds, nil
}
