// CineRank - Hybrid Content-Based Movie Recommendation Service
// Copyright 2026 CineRank Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerank/cinerank

/*
Package metrics provides Prometheus metrics collection and export for observability.

Metrics are registered at package init through promauto and exposed at the
/metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: Requests currently in flight (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)
    Labels: endpoint

Ranking Metrics:
  - recommendations_total: Ranking requests by outcome (counter)
    Labels: status (ok, not_found, invalid, not_ready)
  - recommendation_duration_seconds: Ranking latency (histogram)

Model Metrics:
  - similarity_matrix_build_duration_seconds: Matrix build cost (histogram)
  - model_generation: Generation of the active model (gauge)
  - catalog_items: Items in the active catalog (gauge)
  - model_vocabulary_size: Distinct TF-IDF terms (gauge)
  - catalog_reloads_total: Catalog reload attempts (counter)
    Labels: result (success, error)

# Usage Example

	import (
	    "github.com/cinerank/cinerank/internal/metrics"
	    "github.com/prometheus/client_golang/prometheus/promhttp"
	)

	func main() {
	    http.Handle("/metrics", promhttp.Handler())

	    metrics.RecordAPIRequest("POST", "/api/v1/recommendations", "200", duration)
	    metrics.RecordRecommendation("ok", duration)
	}
*/
package metrics
