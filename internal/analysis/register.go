// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package analysis

// Menu order is registration order.
func init() {
	Register(&avgPriceByCategory{})
	Register(newRatingVsPrice())
	Register(&categoryDistribution{})
	Register(newReviewsVsPrice())
	Register(&productsByRating{})
}
