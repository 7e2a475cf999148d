// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package chart

import (
	"image/color"
	"strings"
)

// DefaultColor is the first color of the classic plotting palette, used when
// a spec names no color.
var DefaultColor = color.NRGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}

var namedColors = map[string]color.NRGBA{
	"skyblue":    {R: 0x87, G: 0xce, B: 0xeb, A: 0xff},
	"purple":     {R: 0x80, G: 0x00, B: 0x80, A: 0xff},
	"orange":     {R: 0xff, G: 0xa5, B: 0x00, A: 0xff},
	"lightgreen": {R: 0x90, G: 0xee, B: 0x90, A: 0xff},
	"lightblue":  {R: 0xad, G: 0xd8, B: 0xe6, A: 0xff},
	"salmon":     {R: 0xfa, G: 0x80, B: 0x72, A: 0xff},
	"black":      {R: 0x00, G: 0x00, B: 0x00, A: 0xff},
	"white":      {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	"blue":       DefaultColor,
}

// ParseColor resolves a color name. Unknown and empty names yield
// DefaultColor and false.
func ParseColor(name string) (color.NRGBA, bool) {
	c, ok := namedColors[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return DefaultColor, false
	}
	return c, true
}

// withAlpha returns c with opacity alpha in (0, 1]; other alphas leave c opaque.
func withAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	if alpha > 0 && alpha < 1 {
		c.A = uint8(alpha*255 + 0.5)
	}
	return c
}
