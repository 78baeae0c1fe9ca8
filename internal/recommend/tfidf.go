// CineRank - Hybrid Content-Based Movie Recommendation Service
// Copyright 2026 CineRank Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerank/cinerank

package recommend

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// tokenPattern matches tokens of at least two word characters. Single-letter
// tokens are dropped before stop-word removal, matching the reference
// vectorizer's tokenizer.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Vector is a sparse TF-IDF document vector: vocabulary index -> weight.
// Vectors produced by the Vectorizer are L2-normalized, so cosine similarity
// reduces to a sparse dot product.
type Vector map[int]float64

// Norm returns the L2 norm of the vector.
func (v Vector) Norm() float64 {
	var sum float64
	for _, w := range v {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// Dot returns the dot product with another vector. Iterates the smaller of
// the two for efficiency.
func (v Vector) Dot(other Vector) float64 {
	if len(other) < len(v) {
		v, other = other, v
	}
	var sum float64
	for i, w := range v {
		if ow, ok := other[i]; ok {
			sum += w * ow
		}
	}
	return sum
}

// Vectorizer builds one global unigram+bigram vocabulary across a document
// collection and converts each document into an L2-normalized TF-IDF vector.
//
// Term weights use the smoothed inverse document frequency
//
//	idf(t) = ln((1+N) / (1+df(t))) + 1
//
// so terms present in every document retain a small non-zero weight. The
// exact smoothing constant is an implementation choice; cosine similarity
// only requires that all documents share one weighting scheme and that each
// vector is L2-normalized. Every term appearing in at least one document is
// kept (min_df = 1).
type Vectorizer struct {
	vocabulary map[string]int
	idf        []float64
}

// NewVectorizer builds the vocabulary and IDF table from the given
// documents. The vocabulary is global and fixed: vectorizing any document
// later projects it onto exactly this term space.
func NewVectorizer(docs []string) *Vectorizer {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, term := range extractTerms(doc) {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	// Stable vocabulary ordering keeps vectors reproducible across runs.
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	v := &Vectorizer{
		vocabulary: make(map[string]int, len(terms)),
		idf:        make([]float64, len(terms)),
	}

	n := float64(len(docs))
	for i, term := range terms {
		v.vocabulary[term] = i
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	return v
}

// VocabularySize returns the number of distinct terms.
func (v *Vectorizer) VocabularySize() int {
	return len(v.vocabulary)
}

// Vectorize converts a document into its L2-normalized TF-IDF vector.
// A document with no in-vocabulary terms (for example, one that is empty
// after stop-word removal) yields the zero vector.
func (v *Vectorizer) Vectorize(doc string) Vector {
	counts := make(map[int]float64)
	for _, term := range extractTerms(doc) {
		if idx, ok := v.vocabulary[term]; ok {
			counts[idx]++
		}
	}

	vec := make(Vector, len(counts))
	for idx, tf := range counts {
		vec[idx] = tf * v.idf[idx]
	}

	if norm := vec.Norm(); norm > 0 {
		for idx := range vec {
			vec[idx] /= norm
		}
	}
	return vec
}

// VectorizeAll converts every document, preserving order.
func (v *Vectorizer) VectorizeAll(docs []string) []Vector {
	vectors := make([]Vector, len(docs))
	for i, doc := range docs {
		vectors[i] = v.Vectorize(doc)
	}
	return vectors
}

// extractTerms lowercases and tokenizes a document, removes stop words, and
// returns the surviving unigrams followed by the bigrams formed over the
// filtered token stream.
func extractTerms(doc string) []string {
	tokens := tokenPattern.FindAllString(strings.ToLower(doc), -1)

	unigrams := tokens[:0]
	for _, tok := range tokens {
		if _, stop := englishStopwords[tok]; !stop {
			unigrams = append(unigrams, tok)
		}
	}

	terms := make([]string, 0, 2*len(unigrams))
	terms = append(terms, unigrams...)
	for i := 0; i+1 < len(unigrams); i++ {
		terms = append(terms, unigrams[i]+" "+unigrams[i+1])
	}
	return terms
}
