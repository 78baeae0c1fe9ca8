// CineRank - Hybrid Content-Based Movie Recommendation Service
// Copyright 2026 CineRank Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerank/cinerank

// Package config provides layered configuration loading with Koanf v2:
// built-in defaults, an optional YAML file, and environment variables, in
// ascending precedence.
package config

import (
	"time"
)

// Config is the root configuration for the service.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Catalog CatalogConfig `koanf:"catalog"`
	Engine  EngineConfig  `koanf:"engine"`
	API     APIConfig     `koanf:"api"`
	Logging LoggingConfig `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// CatalogConfig holds the movie dataset location.
type CatalogConfig struct {
	// Path is the CSV file with title and description columns plus
	// optional rating, year, and director columns.
	Path string `koanf:"path"`
}

// EngineConfig holds recommendation engine defaults and limits.
type EngineConfig struct {
	DefaultTopN  int     `koanf:"default_top_n"`
	MaxTopN      int     `koanf:"max_top_n"`
	GenreWeight  float64 `koanf:"genre_weight"`
	RatingWeight float64 `koanf:"rating_weight"`
	YearWeight   float64 `koanf:"year_weight"`
}

// APIConfig holds HTTP surface settings: CORS and rate limiting.
type APIConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Catalog: CatalogConfig{
			Path: "/data/movies.csv",
		},
		Engine: EngineConfig{
			DefaultTopN:  5,
			MaxTopN:      50,
			GenreWeight:  0.6,
			RatingWeight: 0.3,
			YearWeight:   0.1,
		},
		API: APIConfig{
			CORSOrigins:       []string{},
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}
