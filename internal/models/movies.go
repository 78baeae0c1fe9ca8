// CineRank - Hybrid Content-Based Movie Recommendation Service
// Copyright 2026 CineRank Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerank/cinerank

package models

// Movie is the JSON projection of one catalog item.
//
// Rating and Year are pointers so missing values serialize as null rather
// than a misleading zero.
type Movie struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Genres      []string `json:"genres"`
	Rating      *float64 `json:"rating"`
	Year        *int     `json:"year"`
	Director    string   `json:"director,omitempty"`
}

// WeightsPayload carries the three signal weights of a recommendation
// request. Each weight must lie in [0,1]; the weights need not sum to one.
type WeightsPayload struct {
	Genre  float64 `json:"genre" validate:"min=0,max=1"`
	Rating float64 `json:"rating" validate:"min=0,max=1"`
	Year   float64 `json:"year" validate:"min=0,max=1"`
}

// RecommendationRequest is the POST /api/v1/recommendations body.
//
// Weights and TopN are optional; the server substitutes its configured
// defaults when they are absent.
type RecommendationRequest struct {
	Title   string          `json:"title" validate:"required,min=1,max=500"`
	Weights *WeightsPayload `json:"weights,omitempty"`
	TopN    *int            `json:"top_n,omitempty" validate:"omitempty,min=1,max=50"`
}

// RecommendationResult pairs a movie with its hybrid similarity score, a
// percentage in [0,100] rounded to one decimal place.
type RecommendationResult struct {
	Movie Movie   `json:"movie"`
	Score float64 `json:"score"`
}

// RecommendationData is the data payload of a recommendation response.
type RecommendationData struct {
	Query   Movie                  `json:"query"`
	Results []RecommendationResult `json:"results"`
}

// GenresData lists the catalog's distinct genres in sorted order.
type GenresData struct {
	Genres []string `json:"genres"`
	Count  int      `json:"count"`
}

// MoviesData is a movie listing, optionally filtered by genre or search.
type MoviesData struct {
	Movies []Movie `json:"movies"`
	Count  int     `json:"count"`
}

// StatsData summarizes the active catalog.
type StatsData struct {
	Items   int  `json:"items"`
	Genres  int  `json:"genres"`
	MinYear *int `json:"min_year"`
	MaxYear *int `json:"max_year"`

	// Capability flags: whether the catalog carries the optional columns.
	HasRatings   bool `json:"has_ratings"`
	HasYears     bool `json:"has_years"`
	HasDirectors bool `json:"has_directors"`
}

// HealthData is the health endpoint payload.
type HealthData struct {
	Status     string `json:"status"`
	Version    string `json:"version"`
	Ready      bool   `json:"ready"`
	Generation int    `json:"generation,omitempty"`
	Items      int    `json:"items,omitempty"`
}

// ReloadData reports the outcome of an admin catalog reload.
type ReloadData struct {
	Reloaded   bool  `json:"reloaded"`
	Generation int   `json:"generation"`
	Items      int   `json:"items"`
	BuildMS    int64 `json:"build_ms"`
}
