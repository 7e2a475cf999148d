// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shopdash/shopdash/internal/analysis"
	"github.com/shopdash/shopdash/internal/config"
	"github.com/shopdash/shopdash/internal/dataset"
	"github.com/shopdash/shopdash/internal/output"
)

// validateCmd checks that the dataset loads and summarizes it.
var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Check the dataset and print a summary",
	Long: `Load the cleaned products CSV and report whether the dashboard can use
it: the required columns, the row count, missing values per column, the
price range, and the categories and ratings present.

The path defaults to data_path from the config, then ./output/clean.csv.
Exits 2 when the dataset cannot be loaded.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	var cli config.Settings
	if len(args) > 0 {
		cli.DataPath = args[0]
	}
	s, err := loadSettings(cli)
	if err != nil {
		return err
	}
	ds, err := loadDataset(cmd, s.DataPath)
	if err != nil {
		return err
	}
	printSummary(cmd.OutOrStdout(), dataset.Summarize(ds))
	return nil
}

func printSummary(w io.Writer, sum dataset.Summary) {
	_, _ = fmt.Fprintf(w, "%s %s\n\n", output.SectionTitle("valid:"), sum.Source)
	_, _ = fmt.Fprintf(w, "  rows:       %d\n", sum.Rows)

	missing := make([]string, 0, len(dataset.RequiredColumns))
	for _, col := range dataset.RequiredColumns {
		missing = append(missing, fmt.Sprintf("%s=%d", col, sum.Missing[col]))
	}
	_, _ = fmt.Fprintf(w, "  missing:    %s\n", strings.Join(missing, " "))

	if sum.PriceMin != nil {
		_, _ = fmt.Fprintf(w, "  price:      %s .. %s (mean %s)\n",
			analysis.FormatCell(*sum.PriceMin), analysis.FormatCell(*sum.PriceMax), analysis.FormatCell(*sum.PriceMean))
	} else {
		_, _ = fmt.Fprintln(w, "  price:      none")
	}

	cats := append([]string(nil), sum.Categories...)
	sort.Strings(cats)
	_, _ = fmt.Fprintf(w, "  categories: %s\n", joinOrNone(cats))

	ratings := make([]string, len(sum.Ratings))
	for i, r := range sum.Ratings {
		ratings[i] = strconv.FormatFloat(r, 'g', -1, 64)
	}
	_, _ = fmt.Fprintf(w, "  ratings:    %s\n", joinOrNone(ratings))
}

func joinOrNone(vals []string) string {
	if len(vals) == 0 {
		return "none"
	}
	return strings.Join(vals, ", ")
}
