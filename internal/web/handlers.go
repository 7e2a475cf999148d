// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package web

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shopdash/shopdash/internal/analysis"
	"github.com/shopdash/shopdash/internal/chart"
	"github.com/shopdash/shopdash/internal/dataset"
	"github.com/shopdash/shopdash/internal/output"
	"github.com/shopdash/shopdash/internal/redact"
)

// exportFormats are the downloads offered under each pane, in link order.
var exportFormats = []string{"csv", "xlsx", "json", "markdown"}

// AnalysisInfo is one entry of GET /api/analyses.
type AnalysisInfo struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// InsightResponse is the body of GET /api/analyses/:name/insight.
type InsightResponse struct {
	Name    string `json:"name"`
	Insight string `json:"insight"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// handlePage reruns the selected analysis and renders the dashboard.
func (s *Server) handlePage(c *gin.Context) {
	selection := c.Query("analysis")
	if strings.TrimSpace(selection) == "" {
		selection = s.defaultAnalysis
	}

	page := output.Page{
		Title:       s.title,
		GeneratedAt: time.Now().UTC().Format("2006-01-02 15:04 UTC"),
		Live:        true,
		Insight:     s.insight.Enabled(),
	}

	a, err := analysis.Resolve(selection)
	if err != nil {
		page.Menu = output.NewMenu("")
		s.renderPage(c, http.StatusNotFound, page, err, fmt.Sprintf("Unknown analysis %q.", selection))
		return
	}
	page.Menu = output.NewMenu(a.Name())

	ds, err := s.cache.Get(c.Request.Context())
	if err != nil {
		s.renderPage(c, http.StatusInternalServerError, page, err, loadErrorMessage(s.cache.Path(), err))
		return
	}
	summary := dataset.Summarize(ds)
	page.Summary = &summary

	res, err := a.Run(ds, s.opts)
	if err != nil {
		s.renderPage(c, http.StatusInternalServerError, page, err, "Analysis failed: "+redact.Error(err))
		return
	}

	//nolint:gosec // path built from a registered analysis name
	pane := output.NewPane(res, template.URL(s.chartURL(res)))
	pane.Active = true
	pane.Exports = exportFormats
	page.Panes = []output.Pane{pane}
	s.renderPage(c, http.StatusOK, page, nil, "")
}

// chartURL links to the chart image in the configured format. Pie charts
// only render as PNG.
func (s *Server) chartURL(res *analysis.Result) string {
	format := s.chartFormat
	if res.Chart.Kind == chart.KindPie {
		format = chart.FormatPNG
	}
	return "/charts/" + res.Name + "." + string(format)
}

func (s *Server) renderPage(c *gin.Context, status int, page output.Page, err error, msg string) {
	if err != nil {
		_ = c.Error(err)
		page.Error = msg
	}
	var buf bytes.Buffer
	if rerr := output.RenderPage(&buf, page); rerr != nil {
		_ = c.Error(rerr)
		c.String(http.StatusInternalServerError, "render failed")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

// loadErrorMessage explains a dataset load failure to the page reader.
func loadErrorMessage(dataPath string, err error) string {
	if errors.Is(err, dataset.ErrNotFound) {
		return fmt.Sprintf("Dataset not found at %s. Generate the cleaned CSV first.", dataPath)
	}
	return "Could not load the dataset: " + redact.Error(err)
}

// runNamed loads the dataset and runs the analysis selected by the :name
// path parameter. It writes the error response itself and returns nil on
// failure.
func (s *Server) runNamed(c *gin.Context, name string) (*analysis.Result, *dataset.Dataset) {
	a, err := analysis.Resolve(name)
	if err != nil {
		fail(c, err)
		return nil, nil
	}
	ds, err := s.cache.Get(c.Request.Context())
	if err != nil {
		fail(c, err)
		return nil, nil
	}
	res, err := a.Run(ds, s.opts)
	if err != nil {
		fail(c, err)
		return nil, nil
	}
	return res, ds
}

// handleChart serves /charts/<name>.<png|svg>. A missing extension uses the
// configured format.
func (s *Server) handleChart(c *gin.Context) {
	file := c.Param("file")
	ext := path.Ext(file)
	name := strings.TrimSuffix(file, ext)

	format := s.chartFormat
	if ext != "" {
		f, err := chart.ParseFormat(strings.TrimPrefix(ext, "."))
		if err != nil {
			fail(c, err)
			return
		}
		format = f
	}

	res, _ := s.runNamed(c, name)
	if res == nil {
		return
	}

	var buf bytes.Buffer
	if err := chart.Render(&buf, res.Chart, format); err != nil {
		fail(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

func (s *Server) handleListAnalyses(c *gin.Context) {
	all := analysis.All()
	out := make([]AnalysisInfo, len(all))
	for i, a := range all {
		out[i] = AnalysisInfo{Name: a.Name(), Label: a.Label(), Description: a.Description()}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetAnalysis(c *gin.Context) {
	res, _ := s.runNamed(c, c.Param("name"))
	if res == nil {
		return
	}
	c.JSON(http.StatusOK, output.NewJSONResult(res))
}

func (s *Server) handleInsight(c *gin.Context) {
	if !s.insight.Enabled() {
		respondError(c, http.StatusServiceUnavailable, CodeInsightDisabled,
			errors.New("insight is disabled: set insight.enabled and ANTHROPIC_API_KEY"))
		return
	}
	res, ds := s.runNamed(c, c.Param("name"))
	if res == nil {
		return
	}
	text, err := s.insight.Summarize(c.Request.Context(), res, ds.LoadedAt())
	if err != nil {
		respondError(c, http.StatusBadGateway, CodeInsightFailed, err)
		return
	}
	c.JSON(http.StatusOK, InsightResponse{Name: res.Name, Insight: text})
}

// handleExport downloads the analysis table in a file format.
func (s *Server) handleExport(c *gin.Context) {
	name := c.DefaultQuery("format", "csv")
	if !isExportFormat(name) {
		respondError(c, http.StatusBadRequest, CodeBadFormat,
			fmt.Errorf("unknown export format %q (available: %s)", name, strings.Join(exportFormats, ", ")))
		return
	}
	f, err := output.GetFileFormatter(name)
	if err != nil {
		respondError(c, http.StatusBadRequest, CodeBadFormat, err)
		return
	}

	res, _ := s.runNamed(c, c.Param("name"))
	if res == nil {
		return
	}

	var buf bytes.Buffer
	if err := f.Format(res, &buf); err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternal, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Name+f.Extension()))
	c.Data(http.StatusOK, f.ContentType(), buf.Bytes())
}

func isExportFormat(name string) bool {
	for _, f := range exportFormats {
		if f == name {
			return true
		}
	}
	return false
}

func (s *Server) handleDataset(c *gin.Context) {
	ds, err := s.cache.Get(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dataset.Summarize(ds))
}

// handleReload drops the memoized dataset and loads it again.
func (s *Server) handleReload(c *gin.Context) {
	s.cache.Invalidate()
	ds, err := s.cache.Get(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	s.log.Info("dataset reloaded", "path", s.cache.Path(), "rows", ds.Len())
	c.JSON(http.StatusOK, dataset.Summarize(ds))
}
