// CineRank - Hybrid Content-Based Movie Recommendation Service
// Copyright 2026 CineRank Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerank/cinerank

package recommend

import (
	"math"
	"sort"

	"github.com/cinerank/cinerank/internal/catalog"
)

// Attribute similarity converts the catalog's numeric columns into per-item
// similarity-to-reference scores. Imputation happens per call against the
// full column; it depends only on the catalog and is cheap relative to the
// cosine matrix, so it is not cached.

// ratingSimilarity returns the rating-similarity vector against the item at
// ref. Scores follow 1 - |r_i - r_ref| / 10.
//
// The formula is deliberately not clamped: with ratings confined to [0,10]
// it bottoms out at exactly 0, and the year formula's explicit clamp is not
// mirrored here. Missing ratings elsewhere in the column are imputed with
// the column mean; a missing reference rating yields the zero vector (no
// signal).
func ratingSimilarity(cat *catalog.Catalog, ref int) []float64 {
	n := cat.Len()
	sims := make([]float64, n)

	if !cat.Capabilities().Rating {
		return sims
	}
	refItem := cat.At(ref)
	if refItem.Rating == nil {
		return sims
	}

	mean := ratingMean(cat)
	refRating := *refItem.Rating

	for i := 0; i < n; i++ {
		rating := mean
		if r := cat.At(i).Rating; r != nil {
			rating = *r
		}
		sims[i] = 1 - math.Abs(rating-refRating)/10.0
	}
	return sims
}

// yearSimilarity returns the year-similarity vector against the item at ref,
// following clip(1 - |y_i - y_ref| / 100, 0, 1). Missing years elsewhere in
// the column are imputed with the column median; a missing reference year
// yields the zero vector.
func yearSimilarity(cat *catalog.Catalog, ref int) []float64 {
	n := cat.Len()
	sims := make([]float64, n)

	if !cat.Capabilities().Year {
		return sims
	}
	refItem := cat.At(ref)
	if refItem.Year == nil {
		return sims
	}

	median := yearMedian(cat)
	refYear := float64(*refItem.Year)

	for i := 0; i < n; i++ {
		year := median
		if y := cat.At(i).Year; y != nil {
			year = float64(*y)
		}
		sims[i] = clamp01(1 - math.Abs(year-refYear)/100.0)
	}
	return sims
}

// ratingMean returns the mean of all present ratings.
func ratingMean(cat *catalog.Catalog) float64 {
	var sum float64
	var count int
	for _, item := range cat.Items() {
		if item.Rating != nil {
			sum += *item.Rating
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// yearMedian returns the median of all present years. An even-sized column
// takes the average of the two middle values.
func yearMedian(cat *catalog.Catalog) float64 {
	years := make([]int, 0, cat.Len())
	for _, item := range cat.Items() {
		if item.Year != nil {
			years = append(years, *item.Year)
		}
	}
	if len(years) == 0 {
		return 0
	}

	sort.Ints(years)
	mid := len(years) / 2
	if len(years)%2 == 1 {
		return float64(years[mid])
	}
	return float64(years[mid-1]+years[mid]) / 2
}
