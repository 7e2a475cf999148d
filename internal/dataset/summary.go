// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package dataset

import "sort"

// Summary describes the shape of a dataset.
type Summary struct {
	Source     string         `json:"source"`
	Rows       int            `json:"rows"`
	Missing    map[string]int `json:"missing"`
	PriceMin   *float64       `json:"price_min,omitempty"`
	PriceMax   *float64       `json:"price_max,omitempty"`
	PriceMean  *float64       `json:"price_mean,omitempty"`
	Categories []string       `json:"categories"`
	Ratings    []float64      `json:"ratings"`
}

// Summarize computes row counts, missing cells and the observed domains of
// the categorical columns. Categories keep first-appearance order; ratings
// are sorted ascending. Price statistics are nil when no finite price is
// present; infinite prices count as missing.
func Summarize(d *Dataset) Summary {
	s := Summary{
		Source: d.Source(),
		Rows:   d.Len(),
		Missing: map[string]int{
			ColPrice:         0,
			ColPriceCategory: 0,
			ColRating:        0,
			ColReviews:       0,
		},
	}

	seenCat := make(map[string]bool)
	seenRating := make(map[float64]bool)
	var sum, lo, hi float64
	var n int

	d.Each(func(_ int, p Product) {
		if p.HasPrice() {
			if n == 0 || p.Price < lo {
				lo = p.Price
			}
			if n == 0 || p.Price > hi {
				hi = p.Price
			}
			sum += p.Price
			n++
		} else {
			s.Missing[ColPrice]++
		}

		if p.PriceCategory == "" {
			s.Missing[ColPriceCategory]++
		} else if !seenCat[p.PriceCategory] {
			seenCat[p.PriceCategory] = true
			s.Categories = append(s.Categories, p.PriceCategory)
		}

		if p.HasRating() {
			if !seenRating[p.Rating] {
				seenRating[p.Rating] = true
				s.Ratings = append(s.Ratings, p.Rating)
			}
		} else {
			s.Missing[ColRating]++
		}

		if !p.HasReviews() {
			s.Missing[ColReviews]++
		}
	})

	if n > 0 {
		s.PriceMin, s.PriceMax = &lo, &hi
		if mean := sum / float64(n); Finite(mean) {
			s.PriceMean = &mean
		}
	}
	sort.Float64s(s.Ratings)
	return s
}
