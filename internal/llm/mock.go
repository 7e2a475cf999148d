// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package llm

import (
	"context"
	"strings"
	"sync"
	"time"
)

// mockModel is reported when a request does not name a model.
const mockModel = "mock"

// MockResponse is one scripted reply. A non-zero Delay holds the reply back
// until it elapses or the request context ends.
type MockResponse struct {
	Content string
	Err     error
	Delay   time.Duration
}

// MockProvider plays back a script of replies. Each Complete consumes the
// head of the script; the final entry is sticky and answers every call after
// it. Requests are recorded in arrival order.
type MockProvider struct {
	mu     sync.Mutex
	script []MockResponse
	seen   []Request
}

var _ Provider = (*MockProvider)(nil)

// NewMockProvider scripts the given replies. An empty script answers every
// prompt with empty content.
func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{script: append([]MockResponse(nil), script...)}
}

func (m *MockProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	reply := m.next(req)

	if reply.Delay > 0 {
		timer := time.NewTimer(reply.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	if reply.Err != nil {
		return nil, reply.Err
	}

	model := req.Model
	if model == "" {
		model = mockModel
	}
	return &Response{
		Content: reply.Content,
		Model:   model,
		Usage: Usage{
			InputTokens:  len(strings.Fields(req.SystemPrompt)) + len(strings.Fields(req.Prompt)),
			OutputTokens: len(strings.Fields(reply.Content)),
		},
	}, nil
}

// next records req and pops the reply it should get.
func (m *MockProvider) next(req Request) MockResponse {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seen = append(m.seen, req)

	switch len(m.script) {
	case 0:
		return MockResponse{}
	case 1:
		return m.script[0]
	}
	head := m.script[0]
	m.script = m.script[1:]
	return head
}

// Calls returns the requests received so far.
func (m *MockProvider) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.seen...)
}
