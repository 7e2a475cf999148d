// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

// Package redact strips API keys from strings before they reach logs, error
// output or HTTP responses.
package redact

import (
	"os"
	"strings"
	"sync"
)

// Placeholder replaces every secret occurrence.
const Placeholder = "[REDACTED]"

// minSecretLen guards against redacting short, common substrings.
const minSecretLen = 4

// sensitiveEnvVars lists environment variables whose values never appear in output.
var sensitiveEnvVars = []string{
	"ANTHROPIC_API_KEY",
	"SHOPDASH_API_KEY",
}

var (
	mu      sync.RWMutex
	loaded  bool
	secrets []string
	extra   []string
)

func loadLocked() {
	secrets = secrets[:0]
	for _, name := range sensitiveEnvVars {
		if v := os.Getenv(name); len(v) >= minSecretLen {
			secrets = append(secrets, v)
		}
	}
	loaded = true
}

// Register adds a secret obtained from somewhere other than the environment,
// such as a config file.
func Register(secret string) {
	if len(secret) < minSecretLen {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	for _, s := range extra {
		if s == secret {
			return
		}
	}
	extra = append(extra, secret)
}

// ResetForTest forgets cached and registered secrets so tests can change env
// vars with t.Setenv.
func ResetForTest() {
	mu.Lock()
	defer mu.Unlock()
	loaded = false
	secrets = nil
	extra = nil
}

// String replaces every known secret in s with Placeholder.
func String(s string) string {
	mu.RLock()
	ready := loaded
	mu.RUnlock()
	if !ready {
		mu.Lock()
		if !loaded {
			loadLocked()
		}
		mu.Unlock()
	}

	mu.RLock()
	defer mu.RUnlock()
	for _, secret := range secrets {
		s = strings.ReplaceAll(s, secret, Placeholder)
	}
	for _, secret := range extra {
		s = strings.ReplaceAll(s, secret, Placeholder)
	}
	return s
}

// Error returns the redacted message of err, or "" for nil.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
