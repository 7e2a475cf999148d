// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package analysis

import (
	"github.com/shopdash/shopdash/internal/chart"
	"github.com/shopdash/shopdash/internal/dataset"
)

// scatterAlpha is the marker opacity shared by the relationship views.
const scatterAlpha = 0.6

// priceRelation plots price against another numeric column and shows the
// first rows of both columns as a sample.
type priceRelation struct {
	name    string
	label   string
	desc    string
	heading string
	column  string
	xLabel  string
	title   string
	color   string
	x       func(dataset.Product) float64
}

func newRatingVsPrice() *priceRelation {
	return &priceRelation{
		name:    "rating-vs-price",
		label:   "Rating vs Price",
		desc:    "Scatter of product rating against price with a sample of rows",
		heading: "⭐ Rating vs Price",
		column:  dataset.ColRating,
		xLabel:  "Rating",
		title:   "Rating vs Price",
		x:       func(p dataset.Product) float64 { return p.Rating },
	}
}

func newReviewsVsPrice() *priceRelation {
	return &priceRelation{
		name:    "reviews-vs-price",
		label:   "Reviews vs Price",
		desc:    "Scatter of review count against price with a sample of rows",
		heading: "📝 Reviews vs Price",
		column:  dataset.ColReviews,
		xLabel:  "Number of Reviews",
		title:   "Reviews vs Price",
		color:   "orange",
		x:       func(p dataset.Product) float64 { return p.Reviews },
	}
}

func (a *priceRelation) Name() string        { return a.name }
func (a *priceRelation) Label() string       { return a.label }
func (a *priceRelation) Description() string { return a.desc }

func (a *priceRelation) Run(ds *dataset.Dataset, opts Options) (*Result, error) {
	table := Table{Columns: []Column{
		{Name: a.column, Numeric: true},
		{Name: dataset.ColPrice, Numeric: true},
	}}
	for _, p := range ds.Head(opts.sampleRows()) {
		table.Rows = append(table.Rows, []any{num(a.x(p)), num(p.Price)})
	}

	// Rows missing either coordinate, or holding an infinite one, are not
	// plotted.
	points := make([]chart.Point, 0, ds.Len())
	ds.Each(func(_ int, p dataset.Product) {
		x := a.x(p)
		if !dataset.Finite(x) || !p.HasPrice() {
			return
		}
		points = append(points, chart.Point{X: x, Y: p.Price})
	})

	return &Result{
		Name:       a.name,
		Label:      a.label,
		Heading:    a.heading,
		TableTitle: "Sample Data",
		ChartTitle: "Scatter Plot",
		Table:      table,
		Chart: chart.Spec{
			Kind:   chart.KindScatter,
			Title:  a.title,
			XLabel: a.xLabel,
			YLabel: "Price",
			Points: points,
			Color:  a.color,
			Alpha:  scatterAlpha,
			Width:  8,
			Height: 6,
		},
	}, nil
}
