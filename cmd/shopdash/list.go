// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shopdash/shopdash/internal/analysis"
	"github.com/shopdash/shopdash/internal/output"
)

// listCmd prints the analysis menu.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available analyses",
	Long:  "List the dashboard analyses in menu order. Either the name or the label can be passed to 'shopdash analyze'.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		w := cmd.OutOrStdout()
		_, _ = fmt.Fprintln(w, output.SectionTitle(output.MenuHeader))
		_, _ = fmt.Fprintln(w)

		tbl := output.NewTable(
			output.Column{Header: "#", Align: output.AlignRight},
			output.Column{Header: "NAME", Color: output.ColorName},
			output.Column{Header: "LABEL"},
			output.Column{Header: "DESCRIPTION", Color: output.ColorMuted},
		)
		for i, a := range analysis.All() {
			tbl.AddRow(strconv.Itoa(i+1), a.Name(), a.Label(), a.Description())
		}
		return tbl.Render(w)
	},
}
