// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package chart

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Default figure sizes in inches, per kind.
const (
	defaultBarWidth      = 10
	defaultBarHeight     = 6
	defaultScatterWidth  = 8
	defaultScatterHeight = 6
	defaultPieSize       = 7
)

// Render draws spec to w in the given format.
func Render(w io.Writer, spec Spec, format Format) error {
	if format != FormatPNG && format != FormatSVG {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	spec = withDefaults(spec)

	switch spec.Kind {
	case KindBar, KindScatter:
		p, err := buildPlot(spec)
		if err != nil {
			return err
		}
		wt, err := p.WriterTo(vg.Length(spec.Width)*vg.Inch, vg.Length(spec.Height)*vg.Inch, string(format))
		if err != nil {
			return fmt.Errorf("chart %s: %w", spec.Kind, err)
		}
		if _, err := wt.WriteTo(w); err != nil {
			return fmt.Errorf("write chart: %w", err)
		}
		return nil
	case KindPie:
		if format != FormatPNG {
			return fmt.Errorf("%w: pie charts render as png only", ErrUnsupportedFormat)
		}
		return renderPie(w, spec)
	default:
		return fmt.Errorf("unknown chart kind %q", spec.Kind)
	}
}

func withDefaults(spec Spec) Spec {
	if spec.Width > 0 && spec.Height > 0 {
		return spec
	}
	switch spec.Kind {
	case KindBar:
		spec.Width, spec.Height = defaultBarWidth, defaultBarHeight
	case KindScatter:
		spec.Width, spec.Height = defaultScatterWidth, defaultScatterHeight
	default:
		spec.Width, spec.Height = defaultPieSize, defaultPieSize
	}
	return spec
}

func buildPlot(spec Spec) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = spec.Title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel

	if spec.Empty() {
		return p, nil
	}

	var err error
	if spec.Kind == KindBar {
		err = addBars(p, spec)
	} else {
		err = addScatter(p, spec)
	}
	if err != nil {
		return nil, fmt.Errorf("chart %s: %w", spec.Kind, err)
	}
	return p, nil
}

func addBars(p *plot.Plot, spec Spec) error {
	values := make(plotter.Values, len(spec.Values))
	for i, v := range spec.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		values[i] = v
	}

	// Bars take half of each slot, leaving room for the rotated tick labels.
	slot := vg.Length(spec.Width) * vg.Inch * 0.8 / vg.Length(len(values))
	bars, err := plotter.NewBarChart(values, slot/2)
	if err != nil {
		return err
	}
	col, _ := ParseColor(spec.Color)
	bars.Color = col
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)

	p.NominalX(spec.Labels...)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.Y.Min = 0
	return nil
}

func addScatter(p *plot.Plot, spec Spec) error {
	xys := make(plotter.XYs, 0, len(spec.Points))
	for _, pt := range spec.Points {
		if math.IsNaN(pt.X) || math.IsNaN(pt.Y) || math.IsInf(pt.X, 0) || math.IsInf(pt.Y, 0) {
			continue
		}
		xys = append(xys, plotter.XY{X: pt.X, Y: pt.Y})
	}
	if len(xys) == 0 {
		return nil
	}

	s, err := plotter.NewScatter(xys)
	if err != nil {
		return err
	}
	col, _ := ParseColor(spec.Color)
	s.GlyphStyle.Color = withAlpha(col, spec.Alpha)
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	s.GlyphStyle.Radius = vg.Points(3)
	p.Add(s)
	return nil
}
