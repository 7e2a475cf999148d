// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package main

import "fmt"

// Exit codes for the shopdash CLI.
const (
	ExitOK            = 0 // Success.
	ExitInvalidArgs   = 1 // Invalid arguments, flags, or config.
	ExitDataFailure   = 2 // The dataset could not be loaded.
	ExitRenderFailure = 3 // An analysis, chart, or output could not be produced.
)

// exitCodeError carries a process exit code through cobra's error return.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

// exitError creates an exitCodeError. If msg is empty, the error message is
// set to a generic description of the exit code.
func exitError(code int, format string, args ...any) *exitCodeError {
	msg := fmt.Sprintf(format, args...)
	if msg == "" {
		switch code {
		case ExitDataFailure:
			msg = "shopdash: dataset could not be loaded"
		case ExitRenderFailure:
			msg = "shopdash: rendering failed"
		default:
			msg = "shopdash: error"
		}
	}
	return &exitCodeError{code: code, msg: msg}
}
