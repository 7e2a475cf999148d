// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/shopdash/shopdash/internal/dataset"
	"github.com/shopdash/shopdash/internal/insight"
	"github.com/shopdash/shopdash/internal/llm"
)

const productsCSV = `price,price_category,rating,reviews
25.5,Low,4.5,120
89.99,Medium,4.7,340
299.0,High,4.3,85
5.99,Low,3.9,1020
45.0,Medium,4.5,210
`

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "clean.csv")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	if cfg.Cache == nil {
		cfg.Cache = dataset.NewCache(writeCSV(t, productsCSV))
	}
	cfg.Logger = discardLogger()
	return New(cfg)
}

func do(t *testing.T, s *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) APIError {
	t.Helper()
	var env ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env.Error
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, Config{})
	rec := do(t, s, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestPage_Default(t *testing.T) {
	s := newTestServer(t, Config{})
	rec := do(t, s, http.MethodGet, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "E-commerce Products Dashboard")
	assert.Contains(t, body, "Select Analysis")
	assert.Contains(t, body, `id="pane-avg-price-by-category"`)
	assert.Contains(t, body, "/charts/avg-price-by-category.png")
	assert.Contains(t, body, "/export/avg-price-by-category?format=csv")
	for _, label := range []string{
		"Average Price by Category",
		"Rating vs Price",
		"Reviews vs Price",
		"Product Distribution by Category",
		"Number of Products by Rating",
	} {
		assert.Contains(t, body, label)
	}
}

func TestPage_SelectByLabelAndConfiguredDefault(t *testing.T) {
	s := newTestServer(t, Config{DefaultAnalysis: "products-by-rating", ChartFormat: "svg"})

	rec := do(t, s, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="pane-products-by-rating"`)
	assert.Contains(t, rec.Body.String(), "/charts/products-by-rating.svg")

	rec = do(t, s, http.MethodGet, "/?analysis=Rating+vs+Price")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="pane-rating-vs-price"`)
}

func TestPage_PieLinksPNG(t *testing.T) {
	s := newTestServer(t, Config{ChartFormat: "svg"})
	rec := do(t, s, http.MethodGet, "/?analysis=category-distribution")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/charts/category-distribution.png")
}

func TestPage_UnknownAnalysis(t *testing.T) {
	s := newTestServer(t, Config{})
	rec := do(t, s, http.MethodGet, "/?analysis=nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="error"`)
}

func TestPage_MissingDataset(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "clean.csv")
	s := newTestServer(t, Config{Cache: dataset.NewCache(missing)})

	rec := do(t, s, http.MethodGet, "/")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Dataset not found")
	assert.NotContains(t, rec.Body.String(), `data-pane`)
}

func TestPage_InvalidDataset(t *testing.T) {
	s := newTestServer(t, Config{Cache: dataset.NewCache(writeCSV(t, "price,rating\n1,2\n"))})
	rec := do(t, s, http.MethodGet, "/")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Could not load the dataset")
}

func TestChart(t *testing.T) {
	s := newTestServer(t, Config{})

	rec := do(t, s, http.MethodGet, "/charts/avg-price-by-category.png")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))

	rec = do(t, s, http.MethodGet, "/charts/rating-vs-price.svg")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<svg")

	rec = do(t, s, http.MethodGet, "/charts/products-by-rating")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
}

func TestChart_Errors(t *testing.T) {
	s := newTestServer(t, Config{})

	tests := []struct {
		target string
		status int
		code   string
	}{
		{"/charts/nope.png", http.StatusNotFound, CodeUnknownAnalysis},
		{"/charts/rating-vs-price.gif", http.StatusBadRequest, CodeBadFormat},
		{"/charts/category-distribution.svg", http.StatusBadRequest, CodeBadFormat},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := do(t, s, http.MethodGet, tt.target)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decodeError(t, rec).Code)
		})
	}
}

func TestAPI_ListAnalyses(t *testing.T) {
	s := newTestServer(t, Config{})
	rec := do(t, s, http.MethodGet, "/api/analyses")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []AnalysisInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 5)
	assert.Equal(t, "avg-price-by-category", got[0].Name)
	assert.Equal(t, "Average Price by Category", got[0].Label)
	assert.NotEmpty(t, got[0].Description)
	assert.Equal(t, "products-by-rating", got[4].Name)
}

func TestAPI_GetAnalysis(t *testing.T) {
	s := newTestServer(t, Config{})
	rec := do(t, s, http.MethodGet, "/api/analyses/category-distribution")
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Name    string   `json:"name"`
		Columns []string `json:"columns"`
		Rows    [][]any  `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "category-distribution", got.Name)
	assert.Equal(t, []string{"price_category", "count"}, got.Columns)
	assert.Len(t, got.Rows, 3)
}

func TestAPI_GetAnalysis_Errors(t *testing.T) {
	s := newTestServer(t, Config{})
	rec := do(t, s, http.MethodGet, "/api/analyses/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, CodeUnknownAnalysis, decodeError(t, rec).Code)

	missing := newTestServer(t, Config{Cache: dataset.NewCache(filepath.Join(t.TempDir(), "x.csv"))})
	rec = do(t, missing, http.MethodGet, "/api/analyses/rating-vs-price")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, CodeDatasetNotFound, decodeError(t, rec).Code)
}

func TestAPI_Dataset(t *testing.T) {
	s := newTestServer(t, Config{})
	rec := do(t, s, http.MethodGet, "/api/dataset")
	require.Equal(t, http.StatusOK, rec.Code)

	var sum dataset.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sum))
	assert.Equal(t, 5, sum.Rows)
	assert.ElementsMatch(t, []string{"Low", "Medium", "High"}, sum.Categories)
}

func TestAPI_InfiniteCells(t *testing.T) {
	cache := dataset.NewCache(writeCSV(t, productsCSV+"inf,High,4.3,85\n12.0,Low,-inf,Infinity\n"))
	s := newTestServer(t, Config{Cache: cache})

	for _, target := range []string{
		"/api/dataset",
		"/api/analyses/rating-vs-price",
		"/api/analyses/reviews-vs-price",
		"/api/analyses/avg-price-by-category",
		"/api/analyses/products-by-rating",
		"/export/rating-vs-price?format=json",
	} {
		rec := do(t, s, http.MethodGet, target)
		require.Equal(t, http.StatusOK, rec.Code, target)
		assert.NotEmpty(t, rec.Body.Bytes(), target)
		assert.True(t, json.Valid(rec.Body.Bytes()), target)
	}

	rec := do(t, s, http.MethodGet, "/api/dataset")
	var sum dataset.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sum))
	assert.Equal(t, 7, sum.Rows)
	assert.Equal(t, 1, sum.Missing[dataset.ColPrice])
	require.NotNil(t, sum.PriceMax)
	assert.Equal(t, 299.0, *sum.PriceMax)

	rec = do(t, s, http.MethodGet, "/charts/rating-vs-price.png")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPI_Reload(t *testing.T) {
	p := writeCSV(t, productsCSV)
	cache := dataset.NewCache(p)
	s := newTestServer(t, Config{Cache: cache})

	rec := do(t, s, http.MethodGet, "/api/dataset")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, os.WriteFile(p, []byte(productsCSV+"10.0,Low,5.0,3\n"), 0o600))

	// Memoized until reloaded.
	rec = do(t, s, http.MethodGet, "/api/dataset")
	var sum dataset.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sum))
	assert.Equal(t, 5, sum.Rows)

	rec = do(t, s, http.MethodPost, "/api/dataset/reload")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sum))
	assert.Equal(t, 6, sum.Rows)
	assert.Equal(t, 2, cache.Loads())
}

func TestExport(t *testing.T) {
	s := newTestServer(t, Config{})

	rec := do(t, s, http.MethodGet, "/export/category-distribution")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Equal(t, `attachment; filename="category-distribution.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), "price_category,count\n")

	rec = do(t, s, http.MethodGet, "/export/category-distribution?format=markdown")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "| price_category | count |")

	rec = do(t, s, http.MethodGet, "/export/category-distribution?format=json")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, json.Valid(rec.Body.Bytes()))

	rec = do(t, s, http.MethodGet, "/export/avg-price-by-category?format=xlsx")
	require.Equal(t, http.StatusOK, rec.Code)
	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.NotEmpty(t, f.GetSheetList())
}

func TestExport_BadFormat(t *testing.T) {
	s := newTestServer(t, Config{})
	for _, format := range []string{"html", "text", "pdf"} {
		rec := do(t, s, http.MethodGet, "/export/category-distribution?format="+format)
		assert.Equal(t, http.StatusBadRequest, rec.Code, format)
		assert.Equal(t, CodeBadFormat, decodeError(t, rec).Code)
	}
}

func TestInsight_Disabled(t *testing.T) {
	s := newTestServer(t, Config{})
	rec := do(t, s, http.MethodGet, "/api/analyses/category-distribution/insight")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, CodeInsightDisabled, decodeError(t, rec).Code)

	page := do(t, s, http.MethodGet, "/")
	assert.NotContains(t, page.Body.String(), "data-insight")
}

func TestInsight(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: "Low-priced products dominate."})
	s := newTestServer(t, Config{Insight: insight.New(mock)})

	rec := do(t, s, http.MethodGet, "/api/analyses/category-distribution/insight")
	require.Equal(t, http.StatusOK, rec.Code)
	var got InsightResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "category-distribution", got.Name)
	assert.Equal(t, "Low-priced products dominate.", got.Insight)

	page := do(t, s, http.MethodGet, "/")
	assert.Contains(t, page.Body.String(), "data-insight")
}

func TestInsight_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("upstream down")})
	s := newTestServer(t, Config{Insight: insight.New(mock)})

	rec := do(t, s, http.MethodGet, "/api/analyses/rating-vs-price/insight")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, CodeInsightFailed, decodeError(t, rec).Code)
}

func TestServe_GracefulShutdown(t *testing.T) {
	s := newTestServer(t, Config{})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestListenAndServe_BadAddr(t *testing.T) {
	s := newTestServer(t, Config{})
	err := s.ListenAndServe(context.Background(), "not-an-address")
	assert.Error(t, err)
}
