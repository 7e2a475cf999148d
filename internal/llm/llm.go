// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

// Package llm is a small provider-agnostic client for text completions.
package llm

import "context"

// Provider answers a single prompt synchronously.
type Provider interface {
	// Complete sends req and returns the model's text. Implementations must
	// respect ctx cancellation.
	Complete(ctx context.Context, req Request) (*Response, error)
}

// Request describes one completion.
type Request struct {
	Prompt       string
	SystemPrompt string

	// Model and MaxTokens override the provider defaults when set.
	Model     string
	MaxTokens int

	// Temperature is left to the provider when nil.
	Temperature *float64
}

// Response holds the result of a completion call.
type Response struct {
	Content string
	Model   string
	Usage   Usage
}

// Usage tracks input and output token counts for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}
