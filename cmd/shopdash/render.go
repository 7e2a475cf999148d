// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shopdash/shopdash/internal/analysis"
	"github.com/shopdash/shopdash/internal/config"
	"github.com/shopdash/shopdash/internal/dataset"
	"github.com/shopdash/shopdash/internal/output"
)

// Render-specific flag values.
var (
	renderOutput string
	renderData   string
	renderTitle  string
)

// renderCmd writes the static dashboard page.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write a self-contained HTML dashboard",
	Long: `Run every analysis and write a single HTML page with all of them.
Charts are embedded, so the page opens without a server. The sidebar menu
switches between analyses in the browser.

Use -o - to write the page to stdout.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "dashboard.html", "output file path, or - for stdout")
	renderCmd.Flags().StringVar(&renderData, "data", "", "cleaned products CSV (default ./output/clean.csv)")
	renderCmd.Flags().StringVar(&renderTitle, "title", "", "page title")
}

func runRender(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(config.Settings{DataPath: renderData, Title: renderTitle})
	if err != nil {
		return err
	}
	ds, err := loadDataset(cmd, s.DataPath)
	if err != nil {
		return err
	}

	all := analysis.All()
	results := make([]*analysis.Result, 0, len(all))
	for _, a := range all {
		res, err := a.Run(ds, analysis.Options{SampleRows: s.SampleRows})
		if err != nil {
			return exitError(ExitRenderFailure, "shopdash: analysis %s failed (%v)", a.Name(), err)
		}
		results = append(results, res)
	}
	summary := dataset.Summarize(ds)

	page := output.NewHTMLFormatter()
	page.Title = s.Title

	if renderOutput == "-" {
		return renderTo(cmd.OutOrStdout(), page, results, &summary)
	}

	f, err := cmdFS.Create(renderOutput)
	if err != nil {
		return exitError(ExitInvalidArgs, "shopdash: cannot create output file %q (%v)", renderOutput, err)
	}
	defer f.Close() //nolint:errcheck // flushed through bufio in renderTo
	if err := renderTo(f, page, results, &summary); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d analyses)\n", renderOutput, len(results))
	return nil
}

func renderTo(w io.Writer, page *output.HTMLFormatter, results []*analysis.Result, summary *dataset.Summary) error {
	bw := bufio.NewWriter(w)
	if err := page.FormatDashboard(results, summary, bw); err != nil {
		return exitError(ExitRenderFailure, "shopdash: rendering failed (%v)", err)
	}
	if err := bw.Flush(); err != nil {
		return exitError(ExitRenderFailure, "shopdash: write failed (%v)", err)
	}
	return nil
}
