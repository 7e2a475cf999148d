// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package insight

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopdash/shopdash/internal/analysis"
	"github.com/shopdash/shopdash/internal/chart"
	"github.com/shopdash/shopdash/internal/llm"
)

func testResult() *analysis.Result {
	return &analysis.Result{
		Name:  "category-distribution",
		Label: "Product Distribution by Category",
		Table: analysis.Table{
			Columns: []analysis.Column{{Name: "price_category"}, {Name: "count", Numeric: true}},
			Rows:    [][]any{{"Low", 3}, {"Medium", 3}, {"High", 2}},
		},
		Chart: chart.Spec{Kind: chart.KindPie, Title: "Product Distribution by Price Category"},
	}
}

var v1 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestPrompt(t *testing.T) {
	want := "View: Product Distribution by Category\n" +
		"Chart: Product Distribution by Price Category (pie)\n\n" +
		"price_category\tcount\n" +
		"Low\t3\n" +
		"Medium\t3\n" +
		"High\t2\n"
	assert.Equal(t, want, Prompt(testResult()))
}

func TestPrompt_AxesAndTruncation(t *testing.T) {
	res := &analysis.Result{
		Label: "Rating vs Price",
		Table: analysis.Table{Columns: []analysis.Column{{Name: "rating"}, {Name: "price"}}},
		Chart: chart.Spec{Kind: chart.KindScatter, Title: "Rating vs Price", XLabel: "Rating", YLabel: "Price"},
	}
	for i := range 60 {
		res.Table.Rows = append(res.Table.Rows, []any{4.0, float64(i)})
	}

	p := Prompt(res)
	assert.Contains(t, p, "(scatter, x=Rating, y=Price)")
	assert.Contains(t, p, "4\t49\n")
	assert.NotContains(t, p, "4\t50\n")
	assert.True(t, strings.HasSuffix(p, "... 10 more rows\n"))
}

func TestSummarize_Disabled(t *testing.T) {
	var nilSummarizer *Summarizer
	for _, s := range []*Summarizer{nilSummarizer, New(nil)} {
		assert.False(t, s.Enabled())
		_, err := s.Summarize(context.Background(), testResult(), v1)
		assert.ErrorIs(t, err, ErrDisabled)
	}
}

func TestSummarize(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: "  Low and Medium tie at 3 products.\n"})
	s := New(mock, WithModel("claude-haiku-4-5"), WithMaxTokens(200))
	require.True(t, s.Enabled())

	text, err := s.Summarize(context.Background(), testResult(), v1)
	require.NoError(t, err)
	assert.Equal(t, "Low and Medium tie at 3 products.", text)

	calls := mock.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "claude-haiku-4-5", calls[0].Model)
	assert.Equal(t, 200, calls[0].MaxTokens)
	assert.Contains(t, calls[0].SystemPrompt, "retail data analyst")
	assert.Equal(t, Prompt(testResult()), calls[0].Prompt)
}

func TestSummarize_MemoizedPerVersion(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: "first"},
		llm.MockResponse{Content: "second"},
	)
	s := New(mock)
	ctx := context.Background()

	for range 3 {
		text, err := s.Summarize(ctx, testResult(), v1)
		require.NoError(t, err)
		assert.Equal(t, "first", text)
	}
	assert.Len(t, mock.Calls(), 1)

	text, err := s.Summarize(ctx, testResult(), v1.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "second", text)
	assert.Len(t, mock.Calls(), 2)
}

func TestSummarize_ErrorNotMemoized(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: errors.New("overloaded")},
		llm.MockResponse{Content: "ok"},
	)
	s := New(mock)

	_, err := s.Summarize(context.Background(), testResult(), v1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "summarize category-distribution: overloaded")

	text, err := s.Summarize(context.Background(), testResult(), v1)
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
}

// blockingProvider holds every call until release is closed.
type blockingProvider struct {
	mu      sync.Mutex
	calls   int
	release chan struct{}
}

func (b *blockingProvider) Complete(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	b.mu.Lock()
	b.calls++
	b.mu.Unlock()
	select {
	case <-b.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return &llm.Response{Content: "shared"}, nil
}

func TestSummarize_ConcurrentCallsShareOneRequest(t *testing.T) {
	p := &blockingProvider{release: make(chan struct{})}
	s := New(p)

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			text, err := s.Summarize(context.Background(), testResult(), v1)
			if err != nil {
				results[i] = fmt.Sprint(err)
				return
			}
			results[i] = text
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(p.release)
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, "shared", r)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	assert.Equal(t, 1, p.calls)
}

func TestNewAnthropic(t *testing.T) {
	s, err := NewAnthropic(false, "", 0)
	require.NoError(t, err)
	assert.False(t, s.Enabled())

	t.Setenv("ANTHROPIC_API_KEY", "")
	s, err = NewAnthropic(true, "", 0)
	assert.ErrorIs(t, err, llm.ErrNoAPIKey)
	assert.False(t, s.Enabled())

	t.Setenv("ANTHROPIC_API_KEY", "test-key-abc")
	s, err = NewAnthropic(true, "claude-haiku-4-5", 300)
	require.NoError(t, err)
	assert.True(t, s.Enabled())
}
