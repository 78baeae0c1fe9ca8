// CineRank - Hybrid Content-Based Movie Recommendation Service
// Copyright 2026 CineRank Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerank/cinerank

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/cinerank/cinerank/internal/catalog"
	"github.com/cinerank/cinerank/internal/logging"
	"github.com/cinerank/cinerank/internal/metrics"
	"github.com/cinerank/cinerank/internal/middleware"
	"github.com/cinerank/cinerank/internal/models"
	"github.com/cinerank/cinerank/internal/recommend"
)

// Recommend handles POST /api/v1/recommendations.
//
// The body carries the query title with optional weights and top_n; missing
// fields fall back to the engine's configured defaults. Weight and top_n
// bounds are enforced here so the engine only ever sees well-formed
// requests from the HTTP surface.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.RecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.RecordRecommendation("invalid", time.Since(start))
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid JSON body", err)
		return
	}

	if apiErr := validateRequest(&req); apiErr != nil {
		metrics.RecordRecommendation("invalid", time.Since(start))
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	cfg := h.engine.Config()

	weights := cfg.DefaultWeights
	if req.Weights != nil {
		weights = recommend.Weights{
			Genre:  req.Weights.Genre,
			Rating: req.Weights.Rating,
			Year:   req.Weights.Year,
		}
	}

	topN := cfg.DefaultTopN
	if req.TopN != nil {
		topN = *req.TopN
	}

	resp, err := h.engine.Rank(r.Context(), recommend.Request{
		Title:     req.Title,
		Weights:   weights,
		TopN:      topN,
		RequestID: middleware.GetRequestID(r.Context()),
	})
	if err != nil {
		h.respondRankError(w, r, req.Title, err, start)
		return
	}

	metrics.RecordRecommendation("ok", time.Since(start))

	results := make([]models.RecommendationResult, len(resp.Items))
	for i, scored := range resp.Items {
		results[i] = models.RecommendationResult{
			Movie: movieFromItem(scored.Item),
			Score: scored.Score,
		}
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.RecommendationData{
			Query:   movieFromItem(resp.Query),
			Results: results,
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
			Generation:  resp.Metadata.Generation,
		},
	})
}

// respondRankError maps engine errors to HTTP status codes.
func (h *Handler) respondRankError(w http.ResponseWriter, r *http.Request, title string, err error, start time.Time) {
	switch {
	case errors.Is(err, recommend.ErrItemNotFound):
		metrics.RecordRecommendation("not_found", time.Since(start))
		logging.Ctx(r.Context()).Debug().
			Str("title", sanitizeLogValue(title)).
			Msg("recommendation query title not found")
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Title not found in catalog", nil)
	case errors.Is(err, recommend.ErrInvalidArgument):
		metrics.RecordRecommendation("invalid", time.Since(start))
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	case errors.Is(err, recommend.ErrNotReady):
		metrics.RecordRecommendation("not_ready", time.Since(start))
		respondError(w, http.StatusServiceUnavailable, "NOT_READY", "No catalog loaded", nil)
	default:
		metrics.RecordRecommendation("error", time.Since(start))
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Recommendation failed", err)
	}
}

// Reload handles POST /api/v1/admin/reload. It re-reads the catalog file and
// swaps the new snapshot into the engine; an unchanged file keeps the current
// model via the content fingerprint.
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.catalogPath == "" {
		respondError(w, http.StatusConflict, "NO_CATALOG_PATH",
			"Service was started without a catalog file", nil)
		return
	}

	cat, err := catalog.Load(h.catalogPath)
	if err != nil {
		metrics.RecordCatalogReload(false)
		logging.Ctx(r.Context()).Error().Err(err).
			Str("path", h.catalogPath).
			Msg("catalog reload failed")
		respondError(w, http.StatusUnprocessableEntity, "CATALOG_ERROR",
			"Failed to load catalog file", err)
		return
	}

	before := h.engine.Status().Generation
	if err := h.engine.SetCatalog(r.Context(), cat); err != nil {
		metrics.RecordCatalogReload(false)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR",
			"Failed to rebuild similarity model", err)
		return
	}
	metrics.RecordCatalogReload(true)

	st := h.engine.Status()
	logging.Ctx(r.Context()).Info().
		Int("generation", st.Generation).
		Int("items", st.Items).
		Bool("rebuilt", st.Generation != before).
		Msg("catalog reload complete")

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.ReloadData{
			Reloaded:   st.Generation != before,
			Generation: st.Generation,
			Items:      st.Items,
			BuildMS:    st.BuildMS,
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}
