// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

// Package insight asks an LLM for a short plain-English reading of an
// analysis table.
package insight

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/shopdash/shopdash/internal/analysis"
	"github.com/shopdash/shopdash/internal/llm"
)

// ErrDisabled is returned when no LLM provider is configured.
var ErrDisabled = errors.New("insight disabled")

// maxPromptRows caps how many table rows are sent to the model.
const maxPromptRows = 50

const systemPrompt = `You are a retail data analyst. You receive one table computed from an
e-commerce product dataset. Describe what it shows in two or three short
sentences of plain English. Quote only numbers that appear in the table.
Do not use Markdown.`

// Summarizer produces and memoizes table summaries. A nil or zero Summarizer
// is disabled.
type Summarizer struct {
	provider  llm.Provider
	model     string
	maxTokens int

	group singleflight.Group
	mu    sync.Mutex
	memo  map[string]string
}

// Option configures a Summarizer.
type Option func(*Summarizer)

// WithModel overrides the provider's default model.
func WithModel(model string) Option {
	return func(s *Summarizer) { s.model = model }
}

// WithMaxTokens bounds the response length.
func WithMaxTokens(n int) Option {
	return func(s *Summarizer) { s.maxTokens = n }
}

// New returns a Summarizer backed by p. A nil p yields a disabled Summarizer.
func New(p llm.Provider, opts ...Option) *Summarizer {
	s := &Summarizer{provider: p, memo: make(map[string]string)}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Enabled reports whether Summarize can reach a provider.
func (s *Summarizer) Enabled() bool {
	return s != nil && s.provider != nil
}

// Summarize returns the summary of res. Results are memoized per analysis
// and dataset version, so a page reload does not call the model again.
// version identifies the dataset load (e.g., its load time).
func (s *Summarizer) Summarize(ctx context.Context, res *analysis.Result, version time.Time) (string, error) {
	if !s.Enabled() {
		return "", ErrDisabled
	}

	key := res.Name + "@" + version.UTC().Format(time.RFC3339Nano)
	s.mu.Lock()
	if text, ok := s.memo[key]; ok {
		s.mu.Unlock()
		return text, nil
	}
	s.mu.Unlock()

	v, err, _ := s.group.Do(key, func() (any, error) {
		start := time.Now()
		resp, err := s.provider.Complete(ctx, llm.Request{
			Prompt:       Prompt(res),
			SystemPrompt: systemPrompt,
			Model:        s.model,
			MaxTokens:    s.maxTokens,
		})
		if err != nil {
			return "", fmt.Errorf("summarize %s: %w", res.Name, err)
		}
		text := strings.TrimSpace(resp.Content)
		slog.Debug("insight generated",
			"analysis", res.Name,
			"model", resp.Model,
			"input_tokens", resp.Usage.InputTokens,
			"output_tokens", resp.Usage.OutputTokens,
			"duration", time.Since(start))

		s.mu.Lock()
		s.memo[key] = text
		s.mu.Unlock()
		return text, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Prompt renders res as the user message: the view title, the chart it
// accompanies and the table as tab-separated rows.
func Prompt(res *analysis.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "View: %s\n", res.Label)
	fmt.Fprintf(&b, "Chart: %s (%s", res.Chart.Title, res.Chart.Kind)
	if res.Chart.XLabel != "" || res.Chart.YLabel != "" {
		fmt.Fprintf(&b, ", x=%s, y=%s", res.Chart.XLabel, res.Chart.YLabel)
	}
	b.WriteString(")\n\n")

	b.WriteString(strings.Join(res.Table.Headers(), "\t"))
	b.WriteString("\n")
	rows := res.Table.Strings()
	for i, row := range rows {
		if i == maxPromptRows {
			fmt.Fprintf(&b, "... %d more rows\n", len(rows)-maxPromptRows)
			break
		}
		b.WriteString(strings.Join(row, "\t"))
		b.WriteString("\n")
	}
	return b.String()
}

// NewAnthropic returns a Summarizer backed by the Anthropic API when enabled
// is true. If enabled but no API key is available it returns a disabled
// Summarizer together with the error, so callers can warn and carry on.
func NewAnthropic(enabled bool, model string, maxTokens int) (*Summarizer, error) {
	if !enabled {
		return New(nil), nil
	}
	p, err := llm.NewAnthropicProvider(llm.WithModel(model), llm.WithMaxTokens(maxTokens))
	if err != nil {
		return New(nil), err
	}
	return New(p), nil
}
