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
	"github.com/cinerank/cinerank/internal/recommend"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Handler holds the dependencies shared by all HTTP handlers.
type Handler struct {
	engine      *recommend.Engine
	catalogPath string
	startTime   time.Time
}

// NewHandler creates an API handler backed by the given engine. catalogPath
// is the CSV file re-read by the admin reload endpoint.
func NewHandler(engine *recommend.Engine, catalogPath string) *Handler {
	return &Handler{
		engine:      engine,
		catalogPath: catalogPath,
		startTime:   time.Now(),
	}
}

// catalog returns the active catalog, or nil before the first load.
func (h *Handler) catalog() *catalog.Catalog {
	return h.engine.Catalog()
}

// Health handles health check requests. The service is "healthy" once a
// catalog is loaded and the similarity model is built; before that it reports
// "starting" so orchestrators hold traffic.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	st := h.engine.Status()

	status := "healthy"
	if !st.Ready {
		status = "starting"
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.HealthData{
			Status:     status,
			Version:    Version,
			Ready:      st.Ready,
			Generation: st.Generation,
			Items:      st.Items,
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
