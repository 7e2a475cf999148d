// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package llm_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopdash/shopdash/internal/llm"
)

func TestMockProvider_Empty(t *testing.T) {
	m := llm.NewMockProvider()
	resp, err := m.Complete(context.Background(), llm.Request{Prompt: "hello"})
	require.NoError(t, err)
	assert.Empty(t, resp.Content)
	assert.Equal(t, "mock", resp.Model)
}

func TestMockProvider_SequenceRepeatsLast(t *testing.T) {
	boom := errors.New("boom")
	m := llm.NewMockProvider(
		llm.MockResponse{Content: "first"},
		llm.MockResponse{Err: boom},
		llm.MockResponse{Content: "last"},
	)
	ctx := context.Background()

	resp, err := m.Complete(ctx, llm.Request{Prompt: "1"})
	require.NoError(t, err)
	assert.Equal(t, "first", resp.Content)

	_, err = m.Complete(ctx, llm.Request{Prompt: "2"})
	assert.ErrorIs(t, err, boom)

	for range 2 {
		resp, err = m.Complete(ctx, llm.Request{Prompt: "3"})
		require.NoError(t, err)
		assert.Equal(t, "last", resp.Content)
	}

	calls := m.Calls()
	require.Len(t, calls, 4)
	assert.Equal(t, "1", calls[0].Prompt)
}

func TestMockProvider_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := llm.NewMockProvider(llm.MockResponse{Content: "x"})
	_, err := m.Complete(ctx, llm.Request{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, m.Calls())
}

func TestMockProvider_ModelAndUsage(t *testing.T) {
	m := llm.NewMockProvider(llm.MockResponse{Content: "Low prices dominate"})
	resp, err := m.Complete(context.Background(), llm.Request{
		SystemPrompt: "be brief",
		Prompt:       "summarize the table",
		Model:        "claude-test",
	})
	require.NoError(t, err)
	assert.Equal(t, "claude-test", resp.Model)
	assert.Equal(t, llm.Usage{InputTokens: 5, OutputTokens: 3}, resp.Usage)
}

func TestMockProvider_DelayHonoursDeadline(t *testing.T) {
	m := llm.NewMockProvider(llm.MockResponse{Content: "late", Delay: time.Minute})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := m.Complete(ctx, llm.Request{Prompt: "slow"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Len(t, m.Calls(), 1)
}

func TestMockProvider_DelayElapses(t *testing.T) {
	m := llm.NewMockProvider(llm.MockResponse{Content: "done", Delay: time.Millisecond})
	resp, err := m.Complete(context.Background(), llm.Request{})
	require.NoError(t, err)
	assert.Equal(t, "done", resp.Content)
}
