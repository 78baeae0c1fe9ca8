// CineRank - Hybrid Content-Based Movie Recommendation Service
// Copyright 2026 CineRank Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerank/cinerank

// Package main is the entry point for the CineRank server.
//
// CineRank is a self-hosted movie recommendation service. Given a movie
// title from a loaded catalog it returns the most similar movies, combining
// TF-IDF text similarity over descriptions with rating and release-year
// proximity under configurable weights.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered settings from defaults, YAML file, and
//     environment variables (Koanf v2)
//  2. Logging: global zerolog logger
//  3. Catalog: CSV movie dataset loaded from disk
//  4. Engine: TF-IDF vectorization and similarity matrix build
//  5. HTTP Server: REST API with Prometheus metrics
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (HTTP_PORT, CATALOG_PATH, ENGINE_GENRE_WEIGHT, ...)
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (SERVER_SHUTDOWN_TIMEOUT)
//
// # Example Usage
//
//	export CATALOG_PATH=/data/movies.csv
//	export HTTP_PORT=8080
//	./cinerank
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cinerank/cinerank/internal/api"
	"github.com/cinerank/cinerank/internal/catalog"
	"github.com/cinerank/cinerank/internal/config"
	"github.com/cinerank/cinerank/internal/logging"
	"github.com/cinerank/cinerank/internal/recommend"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("version", api.Version).
		Str("catalog_path", cfg.Catalog.Path).
		Msg("Starting CineRank")

	engine, err := recommend.NewEngine(&recommend.Config{
		DefaultTopN: cfg.Engine.DefaultTopN,
		MaxTopN:     cfg.Engine.MaxTopN,
		DefaultWeights: recommend.Weights{
			Genre:  cfg.Engine.GenreWeight,
			Rating: cfg.Engine.RatingWeight,
			Year:   cfg.Engine.YearWeight,
		},
	}, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	// Load the catalog and build the model before serving traffic. A missing
	// file is fatal at startup; later reloads go through the admin endpoint.
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Catalog.Path).Msg("Failed to load catalog")
	}
	if err := engine.SetCatalog(context.Background(), cat); err != nil {
		logging.Fatal().Err(err).Msg("Failed to build recommendation model")
	}
	logging.Info().
		Int("items", cat.Len()).
		Int("genres", len(cat.Genres())).
		Msg("Catalog loaded")

	handler := api.NewHandler(engine, cfg.Catalog.Path)
	router := api.NewRouter(handler, &api.ChiMiddlewareConfig{
		CORSAllowedOrigins: cfg.API.CORSOrigins,
		RateLimitRequests:  cfg.API.RateLimitRequests,
		RateLimitWindow:    cfg.API.RateLimitWindow,
		RateLimitDisabled:  cfg.API.RateLimitDisabled,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	serveErrCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		serveErrCh <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-serveErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server error")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("HTTP server shutdown error")
	}

	logging.Info().Msg("Application stopped gracefully")
}
