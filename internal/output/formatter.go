// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

// Package output writes analysis results in the formats the CLI, the web
// exports and the MCP server offer.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/shopdash/shopdash/internal/analysis"
)

// Formatter writes one analysis result to w in a specific format.
type Formatter interface {
	// Name returns the format name (e.g., "text", "csv", "xlsx").
	Name() string

	// Format writes res to w.
	Format(res *analysis.Result, w io.Writer) error
}

// FileFormatter is a Formatter whose output can be served as a download.
type FileFormatter interface {
	Formatter

	// ContentType returns the MIME type of the output.
	ContentType() string

	// Extension returns the file extension including the dot.
	Extension() string
}

var (
	fmtMu       sync.RWMutex
	fmtRegistry = make(map[string]Formatter)
)

// RegisterFormatter adds a formatter to the global registry.
func RegisterFormatter(f Formatter) {
	fmtMu.Lock()
	defer fmtMu.Unlock()
	fmtRegistry[f.Name()] = f
}

// GetFormatter returns the formatter with the given name, or an error if not found.
func GetFormatter(name string) (Formatter, error) {
	fmtMu.RLock()
	defer fmtMu.RUnlock()
	f, ok := fmtRegistry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown format: %q (available: %s)", name, strings.Join(formatNames(), ", "))
	}
	return f, nil
}

// GetFileFormatter is GetFormatter restricted to downloadable formats.
func GetFileFormatter(name string) (FileFormatter, error) {
	f, err := GetFormatter(name)
	if err != nil {
		return nil, err
	}
	ff, ok := f.(FileFormatter)
	if !ok {
		return nil, fmt.Errorf("format %q cannot be downloaded", name)
	}
	return ff, nil
}

// FormatNames returns the registered format names, sorted.
func FormatNames() []string {
	fmtMu.RLock()
	defer fmtMu.RUnlock()
	return formatNames()
}

// resetFmtForTesting clears the formatter registry. Only for use in tests.
func resetFmtForTesting() {
	fmtMu.Lock()
	defer fmtMu.Unlock()
	fmtRegistry = make(map[string]Formatter)
}

func formatNames() []string {
	names := make([]string, 0, len(fmtRegistry))
	for name := range fmtRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
