// CineRank - Hybrid Content-Based Movie Recommendation Service
// Copyright 2026 CineRank Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerank/cinerank

package api

import (
	"net/http"
	"time"

	"github.com/cinerank/cinerank/internal/catalog"
	"github.com/cinerank/cinerank/internal/models"
)

const (
	defaultTopMoviesLimit = 10
	maxTopMoviesLimit     = 100
)

// Genres handles GET /api/v1/genres, returning the catalog's distinct
// genres in sorted order.
func (h *Handler) Genres(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	cat := h.catalog()
	if cat == nil {
		respondError(w, http.StatusServiceUnavailable, "NOT_READY", "No catalog loaded", nil)
		return
	}

	genres := cat.Genres()

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.GenresData{
			Genres: genres,
			Count:  len(genres),
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// Movies handles GET /api/v1/movies. Optional query parameters:
//
//	genre  - exact genre tag match, catalog order preserved
//	search - case-insensitive substring match on title or director
//
// Both parameters compose: with search and genre set, results match both.
// With neither, the full catalog is returned.
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	cat := h.catalog()
	if cat == nil {
		respondError(w, http.StatusServiceUnavailable, "NOT_READY", "No catalog loaded", nil)
		return
	}

	items := cat.Items()
	if search := r.URL.Query().Get("search"); search != "" {
		items = cat.Search(search)
	}
	if genre := r.URL.Query().Get("genre"); genre != "" {
		filtered := make([]catalog.Item, 0, len(items))
		for _, item := range items {
			if item.HasTag(genre) {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.MoviesData{
			Movies: moviesFromItems(items),
			Count:  len(items),
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// TopMovies handles GET /api/v1/movies/top?limit=N, returning the highest
// rated movies in descending rating order. Unrated movies are omitted.
func (h *Handler) TopMovies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	cat := h.catalog()
	if cat == nil {
		respondError(w, http.StatusServiceUnavailable, "NOT_READY", "No catalog loaded", nil)
		return
	}

	limit := getIntParam(r, "limit", defaultTopMoviesLimit)
	if limit < 1 || limit > maxTopMoviesLimit {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"limit must be between 1 and 100", nil)
		return
	}

	items := cat.TopRated(limit)

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.MoviesData{
			Movies: moviesFromItems(items),
			Count:  len(items),
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// Stats handles GET /api/v1/movies/stats, summarizing the active catalog.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	cat := h.catalog()
	if cat == nil {
		respondError(w, http.StatusServiceUnavailable, "NOT_READY", "No catalog loaded", nil)
		return
	}

	stats := cat.Stats()
	caps := cat.Capabilities()

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.StatsData{
			Items:        stats.Items,
			Genres:       stats.Genres,
			MinYear:      stats.MinYear,
			MaxYear:      stats.MaxYear,
			HasRatings:   caps.Rating,
			HasYears:     caps.Year,
			HasDirectors: caps.Director,
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}
