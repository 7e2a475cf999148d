// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package chart

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
)

// DefaultPercentFormat labels each wedge with one decimal place.
const DefaultPercentFormat = "%1.1f%%"

// renderPie draws wedges counter-clockwise starting at spec.StartAngle
// degrees (0 is three o'clock, 90 is twelve o'clock). Non-positive values
// get no wedge.
func renderPie(w io.Writer, spec Spec) error {
	width := int(spec.Width * DPI)
	height := int(spec.Height * DPI)
	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()

	dc.SetColor(color.Black)
	dc.DrawStringAnchored(spec.Title, float64(width)/2, 24, 0.5, 0.5)

	var total float64
	for _, v := range spec.Values {
		if v > 0 && !math.IsInf(v, 0) {
			total += v
		}
	}

	if total > 0 {
		drawWedges(dc, spec, total)
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode pie png: %w", err)
	}
	return nil
}

func drawWedges(dc *gg.Context, spec Spec, total float64) {
	cx := float64(dc.Width()) / 2
	cy := float64(dc.Height())/2 + 12
	r := math.Min(float64(dc.Width()), float64(dc.Height())) * 0.33

	pctFormat := spec.PercentFormat
	if pctFormat == "" {
		pctFormat = DefaultPercentFormat
	}

	palette := spec.Colors
	if len(palette) == 0 {
		palette = []string{spec.Color}
	}

	angle := spec.StartAngle * math.Pi / 180
	for i, v := range spec.Values {
		if v <= 0 || math.IsInf(v, 0) {
			continue
		}
		sweep := v / total * 2 * math.Pi
		a1, a2 := angle, angle+sweep
		angle = a2

		// Screen y grows downwards, so counter-clockwise math angles are negated.
		col, _ := ParseColor(palette[i%len(palette)])
		dc.MoveTo(cx, cy)
		dc.DrawArc(cx, cy, r, -a2, -a1)
		dc.ClosePath()
		dc.SetColor(col)
		dc.Fill()

		mid := (a1 + a2) / 2
		cos, sin := math.Cos(mid), math.Sin(mid)
		dc.SetColor(color.Black)
		dc.DrawStringAnchored(fmt.Sprintf(pctFormat, v/total*100), cx+0.6*r*cos, cy-0.6*r*sin, 0.5, 0.5)

		if i < len(spec.Labels) {
			ax := 0.0
			if cos < 0 {
				ax = 1
			}
			dc.DrawStringAnchored(spec.Labels[i], cx+1.1*r*cos, cy-1.1*r*sin, ax, 0.5)
		}
	}
}
