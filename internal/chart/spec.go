// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

// Package chart turns chart descriptions produced by analyses into images.
// Bar and scatter charts are drawn with gonum/plot, pie charts with gg.
package chart

import (
	"errors"
	"fmt"
	"strings"
)

// Kind selects the chart type.
type Kind string

// Supported chart kinds.
const (
	KindBar     Kind = "bar"
	KindScatter Kind = "scatter"
	KindPie     Kind = "pie"
)

// Format is an image encoding.
type Format string

// Supported image formats.
const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ErrUnsupportedFormat is returned when a chart kind cannot be encoded in the
// requested format.
var ErrUnsupportedFormat = errors.New("unsupported chart format")

// DPI converts figure inches to raster pixels.
const DPI = 100

// Point is one scatter observation.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Spec describes a chart independently of how it is drawn. Sizes are in
// inches. Colors are named (see ParseColor).
type Spec struct {
	Kind   Kind   `json:"kind"`
	Title  string `json:"title"`
	XLabel string `json:"x_label,omitempty"`
	YLabel string `json:"y_label,omitempty"`

	Labels []string  `json:"labels,omitempty"`
	Values []float64 `json:"values,omitempty"`
	Points []Point   `json:"points,omitempty"`

	Color  string   `json:"color,omitempty"`
	Colors []string `json:"colors,omitempty"`
	Alpha  float64  `json:"alpha,omitempty"`

	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// Pie only.
	StartAngle    float64 `json:"start_angle,omitempty"`
	PercentFormat string  `json:"percent_format,omitempty"`
}

// Empty reports whether the spec carries no data to draw.
func (s Spec) Empty() bool {
	switch s.Kind {
	case KindScatter:
		return len(s.Points) == 0
	default:
		return len(s.Values) == 0
	}
}

// ParseFormat maps a name or file extension (with or without the dot) to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "", "png":
		return FormatPNG, nil
	case "svg":
		return FormatSVG, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	if f == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}
