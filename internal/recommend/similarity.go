// CineRank - Hybrid Content-Based Movie Recommendation Service
// Copyright 2026 CineRank Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerank/cinerank

package recommend

// Matrix is a dense, symmetric cosine similarity matrix over a catalog
// snapshot. Entry (i,j) is the cosine similarity of item i's and item j's
// TF-IDF vectors, in [0,1], with the diagonal fixed at 1.0. A Matrix is
// built once per catalog fingerprint and never mutated, so concurrent reads
// need no locking.
type Matrix [][]float64

// BuildMatrix computes the full pairwise cosine matrix from L2-normalized
// vectors. This is the single most expensive operation in the engine
// (O(N^2 x vector density)); callers memoize the result per catalog
// snapshot.
//
// Vectors are already unit length, so cosine reduces to the dot product.
// Numerical error is clamped into [0,1] rather than propagated. Zero
// vectors (descriptions empty after stop-word removal) are similar to
// nothing, but the diagonal is still forced to 1.0: an item is always
// maximally similar to itself regardless of vector degeneracy.
func BuildMatrix(vectors []Vector) Matrix {
	n := len(vectors)
	m := make(Matrix, n)
	for i := range m {
		m[i] = make([]float64, n)
		m[i][i] = 1.0
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sim := clamp01(vectors[i].Dot(vectors[j]))
			m[i][j] = sim
			m[j][i] = sim
		}
	}
	return m
}

// Row returns a copy of row i; callers may modify it freely.
func (m Matrix) Row(i int) []float64 {
	row := make([]float64, len(m[i]))
	copy(row, m[i])
	return row
}

// Len returns the matrix dimension.
func (m Matrix) Len() int {
	return len(m)
}

// clamp01 clips v into [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
