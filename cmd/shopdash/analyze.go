// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shopdash/shopdash/internal/analysis"
	"github.com/shopdash/shopdash/internal/chart"
	"github.com/shopdash/shopdash/internal/config"
	"github.com/shopdash/shopdash/internal/output"
)

// Analyze-specific flag values.
var (
	analyzeFormat string
	analyzeOutput string
	analyzeChart  string
	analyzeData   string
	analyzeRows   int
)

// analyzeCmd runs one analysis and prints its table.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <analysis>",
	Short: "Run one analysis and print its table",
	Long: `Run one analysis against the dataset and write its table.

The analysis is named by slug or by its menu label:
  shopdash analyze avg-price-by-category
  shopdash analyze "Rating vs Price" --format markdown
  shopdash analyze category-distribution --format xlsx -o dist.xlsx
  shopdash analyze products-by-rating --chart ratings.png

Run 'shopdash list' for the available analyses.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "text", "output format: text, json, markdown, csv, xlsx, html")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "output file path (default: stdout)")
	analyzeCmd.Flags().StringVar(&analyzeChart, "chart", "", "also write the chart to this .png or .svg file")
	analyzeCmd.Flags().StringVar(&analyzeData, "data", "", "cleaned products CSV (default ./output/clean.csv)")
	analyzeCmd.Flags().IntVar(&analyzeRows, "rows", 0, "rows shown by sample-data analyses (default 20)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	a, err := analysis.Resolve(args[0])
	if err != nil {
		return exitError(ExitInvalidArgs, "shopdash: %v", err)
	}
	formatter, err := output.GetFormatter(analyzeFormat)
	if err != nil {
		return exitError(ExitInvalidArgs, "shopdash: %v", err)
	}
	var chartFormat chart.Format
	if analyzeChart != "" {
		chartFormat, err = chart.ParseFormat(strings.TrimPrefix(filepath.Ext(analyzeChart), "."))
		if err != nil {
			return exitError(ExitInvalidArgs, "shopdash: --chart %q: %v", analyzeChart, err)
		}
	}
	if analyzeRows < 0 || analyzeRows > config.MaxSampleRows {
		return exitError(ExitInvalidArgs, "shopdash: --rows must be between 0 and %d, got %d", config.MaxSampleRows, analyzeRows)
	}

	s, err := loadSettings(config.Settings{DataPath: analyzeData, SampleRows: analyzeRows})
	if err != nil {
		return err
	}
	ds, err := loadDataset(cmd, s.DataPath)
	if err != nil {
		return err
	}

	res, err := a.Run(ds, analysis.Options{SampleRows: s.SampleRows})
	if err != nil {
		return exitError(ExitRenderFailure, "shopdash: analysis %s failed (%v)", a.Name(), err)
	}

	if err := writeResult(cmd, formatter, res); err != nil {
		return err
	}
	if analyzeChart != "" {
		if err := writeChart(res.Chart, chartFormat, analyzeChart); err != nil {
			return err
		}
	}
	return nil
}

func writeResult(cmd *cobra.Command, formatter output.Formatter, res *analysis.Result) error {
	w := cmd.OutOrStdout()
	if analyzeOutput != "" {
		f, err := cmdFS.Create(analyzeOutput)
		if err != nil {
			return exitError(ExitInvalidArgs, "shopdash: cannot create output file %q (%v)", analyzeOutput, err)
		}
		defer f.Close() //nolint:errcheck // flushed through bufio below
		bw := bufio.NewWriter(f)
		if err := formatter.Format(res, bw); err != nil {
			return exitError(ExitRenderFailure, "shopdash: formatting failed (%v)", err)
		}
		if err := bw.Flush(); err != nil {
			return exitError(ExitRenderFailure, "shopdash: cannot write %q (%v)", analyzeOutput, err)
		}
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", analyzeOutput)
		return nil
	}
	if err := formatter.Format(res, w); err != nil {
		return exitError(ExitRenderFailure, "shopdash: formatting failed (%v)", err)
	}
	return nil
}

func writeChart(spec chart.Spec, format chart.Format, path string) error {
	f, err := cmdFS.Create(path)
	if err != nil {
		return exitError(ExitInvalidArgs, "shopdash: cannot create chart file %q (%v)", path, err)
	}
	defer f.Close() //nolint:errcheck // write errors surface from Render
	if err := chart.Render(f, spec, format); err != nil {
		return exitError(ExitRenderFailure, "shopdash: chart rendering failed (%v)", err)
	}
	return nil
}
