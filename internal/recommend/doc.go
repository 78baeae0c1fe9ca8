// CineRank - Hybrid Content-Based Movie Recommendation Service
// Copyright 2026 CineRank Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerank/cinerank

// Package recommend implements the hybrid similarity and ranking engine.
//
// The engine turns each catalog item's description into a TF-IDF vector over
// unigrams and bigrams, computes the dense pairwise cosine similarity matrix
// once per catalog snapshot, and serves ranking requests that blend the text
// signal with rating and release-year similarity under caller-supplied
// weights.
//
// # Data flow
//
//	catalog.Catalog -> Vectorizer -> similarity Matrix -+
//	                                                    +-> Rank -> Response
//	catalog attribute columns -> attribute similarity --+
//
// The matrix and vocabulary are write-once, read-many: they are built inside
// SetCatalog under a rebuild lock and never mutated afterwards, so any number
// of Rank calls may run concurrently against one model without locking.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logging.Logger())
//	if err != nil { ... }
//	if err := engine.SetCatalog(ctx, cat); err != nil { ... }
//
//	resp, err := engine.Rank(ctx, recommend.Request{
//	    Title:   "The Dark Knight",
//	    Weights: recommend.Weights{Genre: 0.6, Rating: 0.3, Year: 0.1},
//	    TopN:    5,
//	})
package recommend
