// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package analysis

import (
	"math"
	"sort"

	"github.com/shopdash/shopdash/internal/chart"
	"github.com/shopdash/shopdash/internal/dataset"
)

// categoryMean is the mean price of one price category.
type categoryMean struct {
	Category string
	Mean     float64
}

// avgPriceByCategory reports the mean price per price category.
type avgPriceByCategory struct{}

func (a *avgPriceByCategory) Name() string  { return "avg-price-by-category" }
func (a *avgPriceByCategory) Label() string { return "Average Price by Category" }
func (a *avgPriceByCategory) Description() string {
	return "Mean product price per price category, lowest first"
}

func (a *avgPriceByCategory) Run(ds *dataset.Dataset, _ Options) (*Result, error) {
	means := meanPriceByCategory(ds)

	table := Table{Columns: []Column{
		{Name: dataset.ColPriceCategory},
		{Name: dataset.ColPrice, Numeric: true},
	}}
	labels := make([]string, len(means))
	values := make([]float64, len(means))
	for i, m := range means {
		table.Rows = append(table.Rows, []any{m.Category, num(m.Mean)})
		labels[i] = m.Category
		values[i] = m.Mean
		if !dataset.Finite(m.Mean) {
			values[i] = 0
		}
	}

	return &Result{
		Name:       a.Name(),
		Label:      a.Label(),
		Heading:    "📊 Average Product Price by Price Category",
		TableTitle: "Table",
		ChartTitle: "Bar Chart",
		Table:      table,
		Chart: chart.Spec{
			Kind:   chart.KindBar,
			Title:  "Average Product Price by Category",
			XLabel: "Price Category",
			YLabel: "Average Price",
			Labels: labels,
			Values: values,
			Color:  "skyblue",
			Width:  10,
			Height: 6,
		},
	}, nil
}

// meanPriceByCategory groups rows by price category (skipping rows without
// one) and averages the present prices. Groups are sorted by ascending mean;
// groups with no price sort last; ties order by category name.
func meanPriceByCategory(ds *dataset.Dataset) []categoryMean {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	var cats []string

	ds.Each(func(_ int, p dataset.Product) {
		if p.PriceCategory == "" {
			return
		}
		if _, seen := counts[p.PriceCategory]; !seen {
			cats = append(cats, p.PriceCategory)
			counts[p.PriceCategory] = 0
		}
		if p.HasPrice() {
			sums[p.PriceCategory] += p.Price
			counts[p.PriceCategory]++
		}
	})

	out := make([]categoryMean, len(cats))
	for i, c := range cats {
		mean := math.NaN()
		if counts[c] > 0 {
			mean = sums[c] / float64(counts[c])
		}
		out[i] = categoryMean{Category: c, Mean: mean}
	}

	sort.SliceStable(out, func(i, j int) bool {
		mi, mj := out[i].Mean, out[j].Mean
		switch {
		case math.IsNaN(mi) && math.IsNaN(mj):
			return out[i].Category < out[j].Category
		case math.IsNaN(mi):
			return false
		case math.IsNaN(mj):
			return true
		case mi != mj:
			return mi < mj
		default:
			return out[i].Category < out[j].Category
		}
	})
	return out
}
