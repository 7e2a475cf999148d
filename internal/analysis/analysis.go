// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

// Package analysis provides the dashboard's menu of canned views. Each view
// aggregates the product dataset into a table and describes a chart for it.
package analysis

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/shopdash/shopdash/internal/chart"
	"github.com/shopdash/shopdash/internal/dataset"
)

// ErrUnknownAnalysis indicates a menu selection that matches no analysis.
var ErrUnknownAnalysis = errors.New("unknown analysis")

// DefaultSampleRows is how many rows the sample-data tables show.
const DefaultSampleRows = 20

// Options tunes how analyses run.
type Options struct {
	// SampleRows caps the sample-data tables. Zero means DefaultSampleRows.
	SampleRows int
}

func (o Options) sampleRows() int {
	if o.SampleRows <= 0 {
		return DefaultSampleRows
	}
	return o.SampleRows
}

// Analysis is one entry of the dashboard menu.
type Analysis interface {
	// Name returns the URL-safe identifier (e.g., "rating-vs-price").
	Name() string

	// Label returns the menu label shown in the sidebar.
	Label() string

	// Description returns a one-line summary of the view.
	Description() string

	// Run aggregates ds. It never mutates ds.
	Run(ds *dataset.Dataset, opts Options) (*Result, error)
}

// Result is the rendered content of one pane: a heading, a table and a chart.
type Result struct {
	Name       string     `json:"name"`
	Label      string     `json:"label"`
	Heading    string     `json:"heading"`
	TableTitle string     `json:"table_title"`
	ChartTitle string     `json:"chart_title"`
	Table      Table      `json:"table"`
	Chart      chart.Spec `json:"chart"`
}

var (
	mu       sync.RWMutex
	registry = make(map[string]Analysis)
	order    []string
)

// Register adds an analysis to the menu. It panics on a duplicate name.
func Register(a Analysis) {
	mu.Lock()
	defer mu.Unlock()
	name := a.Name()
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("analysis already registered: %s", name))
	}
	registry[name] = a
	order = append(order, name)
}

// Get returns the analysis with the given name, or nil.
func Get(name string) Analysis {
	mu.RLock()
	defer mu.RUnlock()
	return registry[name]
}

// List returns analysis names in menu order.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, len(order))
	copy(out, order)
	return out
}

// All returns the analyses in menu order.
func All() []Analysis {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Analysis, len(order))
	for i, name := range order {
		out[i] = registry[name]
	}
	return out
}

// Default returns the first menu entry, or nil if none is registered.
func Default() Analysis {
	mu.RLock()
	defer mu.RUnlock()
	if len(order) == 0 {
		return nil
	}
	return registry[order[0]]
}

// Resolve finds an analysis by name or menu label, ignoring case and
// surrounding space. An empty selection resolves to Default.
func Resolve(selection string) (Analysis, error) {
	sel := strings.TrimSpace(selection)
	if sel == "" {
		if a := Default(); a != nil {
			return a, nil
		}
		return nil, fmt.Errorf("%w: menu is empty", ErrUnknownAnalysis)
	}

	mu.RLock()
	defer mu.RUnlock()
	if a, ok := registry[strings.ToLower(sel)]; ok {
		return a, nil
	}
	for _, name := range order {
		if strings.EqualFold(registry[name].Label(), sel) {
			return registry[name], nil
		}
	}
	return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownAnalysis, sel, strings.Join(order, ", "))
}

// Run resolves selection and runs it against ds.
func Run(selection string, ds *dataset.Dataset, opts Options) (*Result, error) {
	a, err := Resolve(selection)
	if err != nil {
		return nil, err
	}
	res, err := a.Run(ds, opts)
	if err != nil {
		return nil, fmt.Errorf("analysis %s: %w", a.Name(), err)
	}
	return res, nil
}

// resetForTesting clears the registry. Only for use in tests.
func resetForTesting() {
	mu.Lock()
	defer mu.Unlock()
	registry = make(map[string]Analysis)
	order = nil
}
