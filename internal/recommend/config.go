// CineRank - Hybrid Content-Based Movie Recommendation Service
// Copyright 2026 CineRank Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerank/cinerank

package recommend

import "fmt"

// Config holds engine defaults and limits. It is read once at construction
// and never mutated by the engine.
type Config struct {
	// DefaultTopN is used when a request leaves TopN at zero at the HTTP
	// layer. The engine itself rejects non-positive TopN.
	DefaultTopN int

	// MaxTopN caps TopN from untrusted callers.
	MaxTopN int

	// DefaultWeights are used when a request carries no weights.
	DefaultWeights Weights
}

// DefaultConfig returns the engine defaults. The weight split mirrors the
// upstream dataset UI defaults: genre-dominant with a small recency term.
func DefaultConfig() *Config {
	return &Config{
		DefaultTopN: 5,
		MaxTopN:     50,
		DefaultWeights: Weights{
			Genre:  0.6,
			Rating: 0.3,
			Year:   0.1,
		},
	}
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.DefaultTopN <= 0 {
		return fmt.Errorf("default_top_n must be positive, got %d", c.DefaultTopN)
	}
	if c.MaxTopN < c.DefaultTopN {
		return fmt.Errorf("max_top_n (%d) must be >= default_top_n (%d)", c.MaxTopN, c.DefaultTopN)
	}
	for _, w := range []struct {
		name  string
		value float64
	}{
		{"genre", c.DefaultWeights.Genre},
		{"rating", c.DefaultWeights.Rating},
		{"year", c.DefaultWeights.Year},
	} {
		if w.value < 0 || w.value > 1 {
			return fmt.Errorf("default %s weight must be in [0,1], got %g", w.name, w.value)
		}
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
