// CineRank - Hybrid Content-Based Movie Recommendation Service
// Copyright 2026 CineRank Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerank/cinerank

// Package catalog provides the immutable movie catalog that feeds the
// recommendation engine.
//
// A Catalog is an ordered, index-stable sequence of Items. Item indices are
// the coordinate system of the similarity matrix, so a Catalog is never
// mutated after construction; reloading the data file produces a new Catalog
// value that is swapped into the engine as a whole.
//
// Tags are raw comma-separated substrings of the description field, not a
// curated genre taxonomy. This mirrors the upstream dataset format where the
// description column doubles as the genre list.
package catalog

import (
	"errors"
	"fmt"
	"hash/fnv"
	"sort"
	"strconv"
	"strings"
)

// ErrSchema indicates the catalog data is structurally unusable (missing
// required columns, empty required values, duplicate titles). Schema errors
// are fatal for the session: nothing downstream can proceed without a valid
// catalog.
var ErrSchema = errors.New("catalog schema error")

// Item is a single movie record. Items are immutable once the catalog is
// built. Rating and Year are optional; a nil pointer means the value is
// absent from the dataset.
type Item struct {
	// ID is the item's 0-based position in the catalog. It is the row and
	// column index of the item in the similarity matrix.
	ID int `json:"id"`

	// Title is the external identity key. Unique within a catalog,
	// matched case-sensitively.
	Title string `json:"title"`

	// Description is free text; it is also the source of Tags.
	Description string `json:"description"`

	// Tags are the comma-separated, whitespace-trimmed substrings of
	// Description.
	Tags []string `json:"tags"`

	Rating   *float64 `json:"rating,omitempty"`
	Year     *int     `json:"year,omitempty"`
	Director string   `json:"director,omitempty"`
}

// HasTag reports whether the item carries the tag exactly.
func (i Item) HasTag(tag string) bool {
	for _, t := range i.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Capabilities records which optional attribute columns the catalog carries.
// The engine checks these once instead of introspecting rows per request.
type Capabilities struct {
	Rating   bool `json:"rating"`
	Year     bool `json:"year"`
	Director bool `json:"director"`
}

// Stats summarizes a catalog for dataset-info endpoints.
type Stats struct {
	Items   int  `json:"items"`
	Genres  int  `json:"genres"`
	MinYear *int `json:"min_year,omitempty"`
	MaxYear *int `json:"max_year,omitempty"`
}

// Catalog is an ordered, immutable collection of Items.
type Catalog struct {
	items        []Item
	byTitle      map[string]int
	genres       []string
	capabilities Capabilities
	fingerprint  uint64
}

// New builds a Catalog from the given items. It derives tags from each
// description, assigns IDs by position, indexes titles, and computes the
// content fingerprint.
//
// Returns a wrapped ErrSchema when an item has an empty title or description,
// or when two items share a title (titles are the lookup key and must be
// unambiguous).
func New(items []Item) (*Catalog, error) {
	c := &Catalog{
		items:   make([]Item, len(items)),
		byTitle: make(map[string]int, len(items)),
	}

	for i, item := range items {
		if strings.TrimSpace(item.Title) == "" {
			return nil, fmt.Errorf("%w: item %d has an empty title", ErrSchema, i)
		}
		if strings.TrimSpace(item.Description) == "" {
			return nil, fmt.Errorf("%w: item %q has an empty description", ErrSchema, item.Title)
		}
		if prev, dup := c.byTitle[item.Title]; dup {
			return nil, fmt.Errorf("%w: duplicate title %q (items %d and %d)", ErrSchema, item.Title, prev, i)
		}

		item.ID = i
		item.Tags = SplitTags(item.Description)
		c.items[i] = item
		c.byTitle[item.Title] = i

		if item.Rating != nil {
			c.capabilities.Rating = true
		}
		if item.Year != nil {
			c.capabilities.Year = true
		}
		if item.Director != "" {
			c.capabilities.Director = true
		}
	}

	c.genres = collectGenres(c.items)
	c.fingerprint = computeFingerprint(c.items)

	return c, nil
}

// SplitTags derives the tag set from a description by splitting on commas
// and trimming whitespace. Empty fragments are dropped.
func SplitTags(description string) []string {
	parts := strings.Split(description, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// collectGenres returns the sorted distinct tag set across all items.
func collectGenres(items []Item) []string {
	seen := make(map[string]struct{})
	for _, item := range items {
		for _, tag := range item.Tags {
			seen[tag] = struct{}{}
		}
	}

	genres := make([]string, 0, len(seen))
	for g := range seen {
		genres = append(genres, g)
	}
	sort.Strings(genres)
	return genres
}

// computeFingerprint hashes the catalog content with FNV-64a. Two catalogs
// with identical content share a fingerprint, which the engine uses as the
// similarity-matrix cache key.
func computeFingerprint(items []Item) uint64 {
	h := fnv.New64a()
	for _, item := range items {
		h.Write([]byte(item.Title))
		h.Write([]byte{0})
		h.Write([]byte(item.Description))
		h.Write([]byte{0})
		if item.Rating != nil {
			h.Write([]byte(strconv.FormatFloat(*item.Rating, 'g', -1, 64)))
		}
		h.Write([]byte{0})
		if item.Year != nil {
			h.Write([]byte(strconv.Itoa(*item.Year)))
		}
		h.Write([]byte{0})
		h.Write([]byte(item.Director))
		h.Write([]byte{0})
	}
	return h.Sum64()
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Items returns the catalog's items in order. The returned slice is shared;
// callers must not modify it.
func (c *Catalog) Items() []Item {
	return c.items
}

// At returns the item at index i.
func (c *Catalog) At(i int) Item {
	return c.items[i]
}

// ByTitle resolves a title to its catalog index by exact, case-sensitive
// match. The second return is false when no item has that title.
func (c *Catalog) ByTitle(title string) (int, bool) {
	i, ok := c.byTitle[title]
	return i, ok
}

// Genres returns the sorted distinct tag set. The returned slice is shared;
// callers must not modify it.
func (c *Catalog) Genres() []string {
	return c.genres
}

// FilterByTag returns the items carrying the given tag, preserving catalog
// order. An empty tag returns all items.
func (c *Catalog) FilterByTag(tag string) []Item {
	if tag == "" {
		return c.items
	}

	filtered := make([]Item, 0)
	for _, item := range c.items {
		if item.HasTag(tag) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// Search returns items whose title or director contains the term,
// case-insensitively, preserving catalog order. An empty term returns all
// items.
func (c *Catalog) Search(term string) []Item {
	if term == "" {
		return c.items
	}

	needle := strings.ToLower(term)
	matched := make([]Item, 0)
	for _, item := range c.items {
		if strings.Contains(strings.ToLower(item.Title), needle) ||
			strings.Contains(strings.ToLower(item.Director), needle) {
			matched = append(matched, item)
		}
	}
	return matched
}

// TopRated returns up to n items ordered by descending rating. Items without
// a rating are skipped; ties keep catalog order.
func (c *Catalog) TopRated(n int) []Item {
	if n <= 0 {
		return []Item{}
	}

	rated := make([]Item, 0, len(c.items))
	for _, item := range c.items {
		if item.Rating != nil {
			rated = append(rated, item)
		}
	}

	sort.SliceStable(rated, func(i, j int) bool {
		return *rated[i].Rating > *rated[j].Rating
	})

	if len(rated) > n {
		rated = rated[:n]
	}
	return rated
}

// Capabilities reports which optional columns this catalog carries.
func (c *Catalog) Capabilities() Capabilities {
	return c.capabilities
}

// Fingerprint returns the FNV-64a content hash of the catalog.
func (c *Catalog) Fingerprint() uint64 {
	return c.fingerprint
}

// Stats returns summary information about the catalog.
func (c *Catalog) Stats() Stats {
	s := Stats{
		Items:  len(c.items),
		Genres: len(c.genres),
	}

	for _, item := range c.items {
		if item.Year == nil {
			continue
		}
		y := *item.Year
		if s.MinYear == nil || y < *s.MinYear {
			yc := y
			s.MinYear = &yc
		}
		if s.MaxYear == nil || y > *s.MaxYear {
			yc := y
			s.MaxYear = &yc
		}
	}
	return s
}
