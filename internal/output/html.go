// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"sync"
	"time"

	"github.com/shopdash/shopdash/internal/analysis"
	"github.com/shopdash/shopdash/internal/chart"
	"github.com/shopdash/shopdash/internal/dataset"
)

// Page texts.
const (
	DefaultTitle = "🛒 E-commerce Products Dashboard"
	Subtitle     = "Explore key insights from your product dataset"
	MenuHeader   = "🔍 Select Analysis"
)

func init() {
	RegisterFormatter(NewHTMLFormatter())
}

// Page is the template data for the dashboard. A live page shows one pane and
// submits the sidebar selection back to the server; a static page carries
// every pane and switches between them client-side.
type Page struct {
	Title       string
	Subtitle    string
	MenuHeader  string
	GeneratedAt string
	Summary     *dataset.Summary
	Menu        []MenuItem
	Panes       []Pane
	Live        bool
	Insight     bool
	Error       string
}

// MenuItem is one sidebar radio option.
type MenuItem struct {
	Name     string
	Label    string
	Selected bool
}

// Pane is the rendered content of one analysis.
type Pane struct {
	Name       string
	Heading    string
	TableTitle string
	ChartTitle string
	Columns    []analysis.Column
	Rows       [][]Cell
	ChartSrc   template.URL
	ChartAlt   string
	Active     bool
	Exports    []string
}

// Cell is one formatted table cell.
type Cell struct {
	Text    string
	Numeric bool
	Missing bool
}

// NewMenu lists every registered analysis, marking selected.
func NewMenu(selected string) []MenuItem {
	all := analysis.All()
	menu := make([]MenuItem, len(all))
	for i, a := range all {
		menu[i] = MenuItem{Name: a.Name(), Label: a.Label(), Selected: a.Name() == selected}
	}
	return menu
}

// NewPane builds the pane for res. chartSrc is the image URL; use
// ChartDataURI for a self-contained page.
func NewPane(res *analysis.Result, chartSrc template.URL) Pane {
	p := Pane{
		Name:       res.Name,
		Heading:    res.Heading,
		TableTitle: res.TableTitle,
		ChartTitle: res.ChartTitle,
		Columns:    res.Table.Columns,
		ChartSrc:   chartSrc,
		ChartAlt:   res.Chart.Title,
	}
	for _, row := range res.Table.Rows {
		cells := make([]Cell, len(row))
		for j, v := range row {
			cells[j] = Cell{
				Text:    analysis.FormatCell(v),
				Numeric: j < len(p.Columns) && p.Columns[j].Numeric,
				Missing: v == nil,
			}
		}
		p.Rows = append(p.Rows, cells)
	}
	return p
}

// ChartDataURI renders spec as PNG and returns it as a data URI.
func ChartDataURI(spec chart.Spec) (template.URL, error) {
	var buf bytes.Buffer
	if err := chart.Render(&buf, spec, chart.FormatPNG); err != nil {
		return "", err
	}
	//nolint:gosec // base64 PNG generated locally
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())), nil
}

var (
	htmlTmplOnce sync.Once
	htmlTmpl     *template.Template
)

// RenderPage executes the dashboard template. Empty texts take the defaults.
func RenderPage(w io.Writer, p Page) error {
	htmlTmplOnce.Do(func() {
		htmlTmpl = template.Must(template.New("dashboard").Parse(htmlTemplate))
	})
	if p.Title == "" {
		p.Title = DefaultTitle
	}
	if p.Subtitle == "" {
		p.Subtitle = Subtitle
	}
	if p.MenuHeader == "" {
		p.MenuHeader = MenuHeader
	}
	if err := htmlTmpl.Execute(w, p); err != nil {
		return fmt.Errorf("execute html template: %w", err)
	}
	return nil
}

// HTMLFormatter writes self-contained dashboard pages with charts embedded
// as data URIs.
type HTMLFormatter struct {
	// Title overrides DefaultTitle.
	Title string

	nowFunc func() time.Time
}

var _ FileFormatter = (*HTMLFormatter)(nil)

// NewHTMLFormatter returns a new HTMLFormatter.
func NewHTMLFormatter() *HTMLFormatter {
	return &HTMLFormatter{}
}

// Name returns the format name.
func (h *HTMLFormatter) Name() string { return "html" }

// ContentType returns the MIME type of the output.
func (h *HTMLFormatter) ContentType() string { return "text/html; charset=utf-8" }

// Extension returns the file extension.
func (h *HTMLFormatter) Extension() string { return ".html" }

// Format writes a page holding only res.
func (h *HTMLFormatter) Format(res *analysis.Result, w io.Writer) error {
	return h.FormatDashboard([]*analysis.Result{res}, nil, w)
}

// FormatDashboard writes a page with one pane per result, in order. The
// first pane is shown initially. summary may be nil.
func (h *HTMLFormatter) FormatDashboard(results []*analysis.Result, summary *dataset.Summary, w io.Writer) error {
	now := time.Now()
	if h.nowFunc != nil {
		now = h.nowFunc()
	}

	page := Page{
		Title:       h.Title,
		GeneratedAt: now.UTC().Format("2006-01-02 15:04 UTC"),
		Summary:     summary,
	}
	for i, res := range results {
		src, err := ChartDataURI(res.Chart)
		if err != nil {
			return fmt.Errorf("chart %s: %w", res.Name, err)
		}
		pane := NewPane(res, src)
		pane.Active = i == 0
		page.Panes = append(page.Panes, pane)
		page.Menu = append(page.Menu, MenuItem{Name: res.Name, Label: res.Label, Selected: i == 0})
	}
	return RenderPage(w, page)
}
