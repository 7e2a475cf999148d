// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopdash/shopdash/internal/analysis"
	"github.com/shopdash/shopdash/internal/chart"
	"github.com/shopdash/shopdash/internal/dataset"
	"github.com/shopdash/shopdash/internal/insight"
	"github.com/shopdash/shopdash/internal/redact"
)

// Error codes returned in API error envelopes.
const (
	CodeDatasetNotFound = "dataset_not_found"
	CodeDatasetInvalid  = "dataset_invalid"
	CodeUnknownAnalysis = "unknown_analysis"
	CodeBadFormat       = "bad_format"
	CodeInsightDisabled = "insight_disabled"
	CodeInsightFailed   = "insight_failed"
	CodeInternal        = "internal"
)

// APIError is the body of an error response.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ErrorEnvelope wraps APIError.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// respondError writes a JSON error envelope and records err on the context
// for the access log.
func respondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = redact.Error(err)
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{Error: APIError{Message: msg, Code: code}})
}

// classify maps an error to an HTTP status and error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, analysis.ErrUnknownAnalysis):
		return http.StatusNotFound, CodeUnknownAnalysis
	case errors.Is(err, dataset.ErrNotFound):
		return http.StatusInternalServerError, CodeDatasetNotFound
	case errors.Is(err, dataset.ErrMissingColumn), errors.Is(err, dataset.ErrInvalidValue):
		return http.StatusInternalServerError, CodeDatasetInvalid
	case errors.Is(err, chart.ErrUnsupportedFormat):
		return http.StatusBadRequest, CodeBadFormat
	case errors.Is(err, insight.ErrDisabled):
		return http.StatusServiceUnavailable, CodeInsightDisabled
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// fail classifies err and responds with it.
func fail(c *gin.Context, err error) {
	status, code := classify(err)
	respondError(c, status, code, err)
}
