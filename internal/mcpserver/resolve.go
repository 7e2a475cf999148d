// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolveDataPath resolves a client-supplied dataset path to an absolute,
// symlink-free path. The target must be an existing regular .csv file.
func ResolveDataPath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("data_path is empty")
	}
	if strings.ContainsRune(path, 0) {
		return "", fmt.Errorf("data_path contains a NUL byte")
	}
	if !strings.EqualFold(filepath.Ext(path), ".csv") {
		return "", fmt.Errorf("%q is not a .csv file", path)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("cannot resolve path %q: %w", path, err)
	}
	absPath, err = filepath.EvalSymlinks(absPath)
	if err != nil {
		return "", fmt.Errorf("path %q does not exist", path)
	}
	// Re-check after following links.
	if !strings.EqualFold(filepath.Ext(absPath), ".csv") {
		return "", fmt.Errorf("%q is not a .csv file", path)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return "", fmt.Errorf("path %q does not exist", path)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%q is not a regular file", path)
	}
	return absPath, nil
}
