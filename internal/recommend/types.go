// CineRank - Hybrid Content-Based Movie Recommendation Service
// Copyright 2026 CineRank Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerank/cinerank

package recommend

import (
	"time"

	"github.com/cinerank/cinerank/internal/catalog"
)

// Weights blends the three similarity signals into one combined score.
// Weights are used exactly as given: there is no renormalization and no
// requirement that they sum to one.
type Weights struct {
	// Genre weights the text (TF-IDF cosine) similarity of descriptions.
	Genre float64 `json:"genre"`

	// Rating weights closeness of the 0-10 rating to the query's rating.
	Rating float64 `json:"rating"`

	// Year weights closeness of the release year to the query's year.
	Year float64 `json:"year"`
}

// Request is one ranking request against the current catalog snapshot.
type Request struct {
	// Title is the query item's title, matched case-sensitively and
	// exactly against the catalog.
	Title string `json:"title"`

	// Weights blend the similarity signals. Zero-value weights are legal
	// and produce all-zero scores.
	Weights Weights `json:"weights"`

	// TopN is the maximum number of results. Must be positive; values
	// larger than the catalog simply yield fewer results.
	TopN int `json:"top_n"`

	// RequestID correlates logs across the request. Generated when empty.
	RequestID string `json:"request_id,omitempty"`
}

// ScoredItem pairs a catalog item with its similarity score as a percentage
// in [0,100], rounded to one decimal place.
type ScoredItem struct {
	Item  catalog.Item `json:"item"`
	Score float64      `json:"score"`
}

// ResponseMetadata carries observability fields for a ranking response.
type ResponseMetadata struct {
	RequestID  string    `json:"request_id"`
	Generation int       `json:"generation"`
	LatencyMS  int64     `json:"latency_ms"`
	Timestamp  time.Time `json:"timestamp"`
}

// Response is an ordered ranking result. Items are sorted by descending
// combined score, never include the query item, and number at most TopN.
type Response struct {
	Query    catalog.Item     `json:"query"`
	Items    []ScoredItem     `json:"items"`
	Metadata ResponseMetadata `json:"metadata"`
}

// Status describes the engine's current model for health and admin
// endpoints.
type Status struct {
	Ready          bool      `json:"ready"`
	Generation     int       `json:"generation"`
	Items          int       `json:"items"`
	VocabularySize int       `json:"vocabulary_size"`
	Fingerprint    uint64    `json:"fingerprint"`
	BuiltAt        time.Time `json:"built_at,omitempty"`
	BuildMS        int64     `json:"build_ms"`
}
