// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

// Package dataset loads the cleaned product CSV into an immutable, in-memory
// table and memoizes it for the lifetime of the process.
package dataset

import (
	"math"
	"time"
)

// Column names expected in the CSV header.
const (
	ColPrice         = "price"
	ColPriceCategory = "price_category"
	ColRating        = "rating"
	ColReviews       = "reviews"
)

// RequiredColumns lists the header names every dataset must carry, in the
// order they are reported when missing.
var RequiredColumns = []string{ColPrice, ColPriceCategory, ColRating, ColReviews}

// DefaultPath is the dataset location used when none is configured.
const DefaultPath = "./output/clean.csv"

// Product is one row of the dataset. Numeric fields are NaN when the source
// cell is empty; PriceCategory is "" in that case.
type Product struct {
	Price         float64 `json:"price"`
	PriceCategory string  `json:"price_category"`
	Rating        float64 `json:"rating"`
	Reviews       float64 `json:"reviews"`
}

// HasPrice reports whether the price cell holds a finite number.
func (p Product) HasPrice() bool { return Finite(p.Price) }

// HasRating reports whether the rating cell holds a finite number.
func (p Product) HasRating() bool { return Finite(p.Rating) }

// HasReviews reports whether the reviews cell holds a finite number.
func (p Product) HasReviews() bool { return Finite(p.Reviews) }

// Finite reports whether v is neither NaN nor an infinity. Cells that parse
// as inf are treated like missing ones everywhere a statistic or chart point
// is derived, since neither JSON nor the renderers can carry them.
func Finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Dataset is the loaded product table. It is never mutated after Read returns.
type Dataset struct {
	source   string
	loadedAt time.Time
	products []Product
}

// New wraps products in a Dataset. The slice is copied.
func New(source string, products []Product) *Dataset {
	cp := make([]Product, len(products))
	copy(cp, products)
	return &Dataset{source: source, loadedAt: time.Now(), products: cp}
}

// Source returns the path or name the dataset was read from.
func (d *Dataset) Source() string { return d.source }

// LoadedAt returns when the dataset was read.
func (d *Dataset) LoadedAt() time.Time { return d.loadedAt }

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.products) }

// At returns row i.
func (d *Dataset) At(i int) Product { return d.products[i] }

// Products returns a copy of all rows.
func (d *Dataset) Products() []Product {
	out := make([]Product, len(d.products))
	copy(out, d.products)
	return out
}

// Head returns a copy of the first n rows (all rows when n exceeds Len).
func (d *Dataset) Head(n int) []Product {
	if n < 0 {
		n = 0
	}
	if n > len(d.products) {
		n = len(d.products)
	}
	out := make([]Product, n)
	copy(out, d.products[:n])
	return out
}

// Each calls fn for every row in file order.
func (d *Dataset) Each(fn func(i int, p Product)) {
	for i, p := range d.products {
		fn(i, p)
	}
}
