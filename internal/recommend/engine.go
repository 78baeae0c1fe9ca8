// CineRank - Hybrid Content-Based Movie Recommendation Service
// Copyright 2026 CineRank Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerank/cinerank

package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinerank/cinerank/internal/catalog"
	"github.com/cinerank/cinerank/internal/metrics"
)

// Engine serves hybrid ranking requests against an immutable catalog
// snapshot. It is safe for concurrent use: ranking reads only write-once
// structures, and catalog swaps are serialized by a rebuild lock.
type Engine struct {
	config *Config
	logger zerolog.Logger

	// model is the current snapshot (catalog + vocabulary + matrix).
	// Guarded by mu; the snapshot itself is immutable.
	mu    sync.RWMutex
	model *model

	// buildMu serializes similarity-matrix rebuilds so at most one build
	// is in flight per catalog version.
	buildMu sync.Mutex

	requestCount atomic.Int64
	errorCount   atomic.Int64
}

// model bundles everything derived from one catalog snapshot. The matrix is
// indexed by catalog position, so the catalog and matrix must travel
// together; swapping them as one value preserves index stability.
type model struct {
	cat         *catalog.Catalog
	vectorizer  *Vectorizer
	matrix      Matrix
	generation  int
	fingerprint uint64
	builtAt     time.Time
	buildMS     int64
}

// NewEngine creates a ranking engine with no catalog. Call SetCatalog before
// ranking.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// SetCatalog installs a catalog snapshot, building its vocabulary and
// similarity matrix. Rebuilds are serialized; when the new catalog's content
// fingerprint matches the current model, the expensive build is skipped and
// the existing model is kept.
func (e *Engine) SetCatalog(ctx context.Context, cat *catalog.Catalog) error {
	e.buildMu.Lock()
	defer e.buildMu.Unlock()

	current := e.currentModel()
	if current != nil && current.fingerprint == cat.Fingerprint() {
		e.logger.Debug().
			Uint64("fingerprint", cat.Fingerprint()).
			Msg("catalog unchanged, keeping model")
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	m, err := e.buildModel(ctx, cat)
	if err != nil {
		return err
	}

	if current != nil {
		m.generation = current.generation + 1
	} else {
		m.generation = 1
	}
	m.builtAt = time.Now()
	m.buildMS = time.Since(start).Milliseconds()

	e.mu.Lock()
	e.model = m
	e.mu.Unlock()

	metrics.RecordMatrixBuild(time.Since(start))
	metrics.SetModelInfo(m.generation, cat.Len(), m.vectorizer.VocabularySize())

	e.logger.Info().
		Int("generation", m.generation).
		Int("items", cat.Len()).
		Int("vocabulary", m.vectorizer.VocabularySize()).
		Int64("build_ms", m.buildMS).
		Msg("similarity matrix built")

	return nil
}

// buildModel vectorizes every description and computes the cosine matrix.
func (e *Engine) buildModel(ctx context.Context, cat *catalog.Catalog) (*model, error) {
	docs := make([]string, cat.Len())
	for i, item := range cat.Items() {
		docs[i] = item.Description
	}

	vectorizer := NewVectorizer(docs)
	vectors := vectorizer.VectorizeAll(docs)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &model{
		cat:         cat,
		vectorizer:  vectorizer,
		matrix:      BuildMatrix(vectors),
		fingerprint: cat.Fingerprint(),
	}, nil
}

// Catalog returns the current catalog snapshot, or nil before SetCatalog.
func (e *Engine) Catalog() *catalog.Catalog {
	if m := e.currentModel(); m != nil {
		return m.cat
	}
	return nil
}

// Rank resolves the query title, blends the similarity signals under the
// request weights, and returns the top-n items by descending combined score.
//
// Ranking is a pure function of the current model and the request: it never
// mutates the catalog, the matrix, or any cached state, and a failed request
// leaves the model untouched for subsequent calls.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Rank(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	if req.RequestID == "" {
		req.RequestID = fmt.Sprintf("rank-%d", time.Now().UnixNano())
	}

	m := e.currentModel()
	if m == nil {
		e.errorCount.Add(1)
		return nil, ErrNotReady
	}

	if req.TopN <= 0 {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("%w: top_n must be positive, got %d", ErrInvalidArgument, req.TopN)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	queryIdx, ok := m.cat.ByTitle(req.Title)
	if !ok {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("%w: %q", ErrItemNotFound, req.Title)
	}

	combined := e.combineSignals(m, queryIdx, req.Weights)
	items := e.selectTop(m, combined, queryIdx, req.TopN)

	resp := &Response{
		Query: m.cat.At(queryIdx),
		Items: items,
		Metadata: ResponseMetadata{
			RequestID:  req.RequestID,
			Generation: m.generation,
			LatencyMS:  time.Since(start).Milliseconds(),
			Timestamp:  time.Now(),
		},
	}

	e.logger.Debug().
		Str("request_id", req.RequestID).
		Str("title", req.Title).
		Int("top_n", req.TopN).
		Int("returned", len(items)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("ranking complete")

	return resp, nil
}

// combineSignals computes the weighted sum of the text, rating, and year
// similarity vectors against the query index. Weights are applied exactly
// as given.
func (e *Engine) combineSignals(m *model, queryIdx int, w Weights) []float64 {
	textSim := m.matrix.Row(queryIdx)
	ratingSim := ratingSimilarity(m.cat, queryIdx)
	yearSim := yearSimilarity(m.cat, queryIdx)

	combined := make([]float64, len(textSim))
	for i := range combined {
		combined[i] = w.Genre*textSim[i] + w.Rating*ratingSim[i] + w.Year*yearSim[i]
	}
	return combined
}

// selectTop sorts all items by descending combined score with a stable
// tie-break on catalog order, excludes the query item wherever it ranks, and
// truncates to topN. Scores are emitted as percentages rounded to one
// decimal place.
func (e *Engine) selectTop(m *model, combined []float64, queryIdx, topN int) []ScoredItem {
	order := make([]int, len(combined))
	for i := range order {
		order[i] = i
	}

	// Stable: equal scores keep catalog order. This is an explicit,
	// tested policy, not an accident of the sort.
	sort.SliceStable(order, func(a, b int) bool {
		return combined[order[a]] > combined[order[b]]
	})

	items := make([]ScoredItem, 0, topN)
	for _, idx := range order {
		if idx == queryIdx {
			continue
		}
		items = append(items, ScoredItem{
			Item:  m.cat.At(idx),
			Score: roundPercent(combined[idx]),
		})
		if len(items) == topN {
			break
		}
	}
	return items
}

// Status reports the current model for health and admin endpoints.
func (e *Engine) Status() Status {
	m := e.currentModel()
	if m == nil {
		return Status{}
	}
	return Status{
		Ready:          true,
		Generation:     m.generation,
		Items:          m.cat.Len(),
		VocabularySize: m.vectorizer.VocabularySize(),
		Fingerprint:    m.fingerprint,
		BuiltAt:        m.builtAt,
		BuildMS:        m.buildMS,
	}
}

// RequestCount returns the number of ranking requests served.
func (e *Engine) RequestCount() int64 {
	return e.requestCount.Load()
}

// ErrorCount returns the number of failed ranking requests.
func (e *Engine) ErrorCount() int64 {
	return e.errorCount.Load()
}

// currentModel returns the model snapshot under the read lock.
func (e *Engine) currentModel() *model {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.model
}

// roundPercent converts a combined score to a percentage rounded to one
// decimal place.
func roundPercent(score float64) float64 {
	return math.Round(score*1000) / 10
}
