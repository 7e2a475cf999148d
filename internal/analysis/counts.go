// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package analysis

import (
	"sort"

	"github.com/shopdash/shopdash/internal/chart"
	"github.com/shopdash/shopdash/internal/dataset"
)

// pieColors cycle over the category wedges.
var pieColors = []string{"lightgreen", "lightblue", "salmon"}

// categoryCount is the number of products in one price category.
type categoryCount struct {
	Category string
	Count    int
}

// categoryDistribution reports how many products fall in each price category.
type categoryDistribution struct{}

func (a *categoryDistribution) Name() string  { return "category-distribution" }
func (a *categoryDistribution) Label() string { return "Product Distribution by Category" }
func (a *categoryDistribution) Description() string {
	return "Product counts per price category as a pie chart"
}

func (a *categoryDistribution) Run(ds *dataset.Dataset, _ Options) (*Result, error) {
	counts := countByCategory(ds)

	table := Table{Columns: []Column{
		{Name: dataset.ColPriceCategory},
		{Name: "count", Numeric: true},
	}}
	labels := make([]string, len(counts))
	values := make([]float64, len(counts))
	for i, c := range counts {
		table.Rows = append(table.Rows, []any{c.Category, c.Count})
		labels[i] = c.Category
		values[i] = float64(c.Count)
	}

	return &Result{
		Name:       a.Name(),
		Label:      a.Label(),
		Heading:    "📊 Product Distribution by Price Category",
		TableTitle: "Table",
		ChartTitle: "Pie Chart",
		Table:      table,
		Chart: chart.Spec{
			Kind:          chart.KindPie,
			Title:         "Product Distribution by Price Category",
			Labels:        labels,
			Values:        values,
			Colors:        pieColors,
			StartAngle:    90,
			PercentFormat: chart.DefaultPercentFormat,
			Width:         7,
			Height:        7,
		},
	}, nil
}

// countByCategory counts rows per non-empty price category, most frequent
// first. Equal counts keep first-appearance order.
func countByCategory(ds *dataset.Dataset) []categoryCount {
	index := make(map[string]int)
	var out []categoryCount
	ds.Each(func(_ int, p dataset.Product) {
		if p.PriceCategory == "" {
			return
		}
		i, ok := index[p.PriceCategory]
		if !ok {
			i = len(out)
			index[p.PriceCategory] = i
			out = append(out, categoryCount{Category: p.PriceCategory})
		}
		out[i].Count++
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// ratingCount is the number of products with one rating value.
type ratingCount struct {
	Rating float64
	Count  int
}

// productsByRating is the rating histogram.
type productsByRating struct{}

func (a *productsByRating) Name() string  { return "products-by-rating" }
func (a *productsByRating) Label() string { return "Number of Products by Rating" }
func (a *productsByRating) Description() string {
	return "Product counts per rating value, in rating order"
}

func (a *productsByRating) Run(ds *dataset.Dataset, _ Options) (*Result, error) {
	counts := countByRating(ds)

	table := Table{Columns: []Column{
		{Name: dataset.ColRating, Numeric: true},
		{Name: "count", Numeric: true},
	}}
	labels := make([]string, len(counts))
	values := make([]float64, len(counts))
	for i, c := range counts {
		table.Rows = append(table.Rows, []any{c.Rating, c.Count})
		labels[i] = FormatCell(c.Rating)
		values[i] = float64(c.Count)
	}

	return &Result{
		Name:       a.Name(),
		Label:      a.Label(),
		Heading:    "⭐ Number of Products by Rating",
		TableTitle: "Table",
		ChartTitle: "Bar Chart",
		Table:      table,
		Chart: chart.Spec{
			Kind:   chart.KindBar,
			Title:  "Number of Products by Rating",
			XLabel: "Rating",
			YLabel: "Count",
			Labels: labels,
			Values: values,
			Color:  "purple",
			Width:  10,
			Height: 6,
		},
	}, nil
}

// countByRating counts rows per present rating, sorted by rating ascending.
func countByRating(ds *dataset.Dataset) []ratingCount {
	index := make(map[float64]int)
	var out []ratingCount
	ds.Each(func(_ int, p dataset.Product) {
		if !p.HasRating() {
			return
		}
		i, ok := index[p.Rating]
		if !ok {
			i = len(out)
			index[p.Rating] = i
			out = append(out, ratingCount{Rating: p.Rating})
		}
		out[i].Count++
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Rating < out[j].Rating })
	return out
}
