// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package output

import "github.com/fatih/color"

// Shared color printers for terminal output.
var (
	colorBold   = color.New(color.Bold)
	colorCyan   = color.New(color.FgCyan)
	colorYellow = color.New(color.FgYellow)
	colorFaint  = color.New(color.Faint)
)

// SectionTitle renders a bold section title.
func SectionTitle(title string) string {
	return colorBold.Sprint(title)
}

// ColorName renders an analysis or format name.
func ColorName(name string) string {
	return colorCyan.Sprint(name)
}

// ColorMuted renders secondary text such as descriptions.
func ColorMuted(s string) string {
	return colorFaint.Sprint(s)
}

// colorMissing highlights missing cells.
func colorMissing(val string) string {
	if val == "NaN" {
		return colorYellow.Sprint(val)
	}
	return val
}
