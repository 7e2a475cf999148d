// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shopdash/shopdash/internal/config"
)

func TestServeCmd_Flags(t *testing.T) {
	for _, name := range []string{"addr", "data", "auto-reload", "insight"} {
		assert.NotNil(t, serveCmd.Flags().Lookup(name), name)
	}
}

func TestServe_BadAddress(t *testing.T) {
	setupWorkdir(t)
	_, _, err := execute(t, "serve", "--addr", "not-an-address")
	ece := requireExitCode(t, err, ExitInvalidArgs)
	assert.Contains(t, ece.Error(), "not-an-address")
}

func TestServe_InvalidConfig(t *testing.T) {
	dir := setupWorkdir(t)
	writeTestFile(t, dir, config.FileName, "addr: nope\n")
	_, _, err := execute(t, "serve")
	requireExitCode(t, err, ExitInvalidArgs)
}
