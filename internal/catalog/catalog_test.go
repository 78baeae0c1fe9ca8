// CineRank - Hybrid Content-Based Movie Recommendation Service
// Copyright 2026 CineRank Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerank/cinerank

package catalog

import (
	"errors"
	"reflect"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

// fixtureItems returns the five-movie fixture used across engine and catalog
// tests.
func fixtureItems() []Item {
	return []Item{
		{Title: "The Dark Knight", Description: "Action, Crime, Drama", Rating: floatPtr(9.0), Year: intPtr(2008), Director: "Christopher Nolan"},
		{Title: "Batman Begins", Description: "Action, Crime, Drama", Rating: floatPtr(8.2), Year: intPtr(2005), Director: "Christopher Nolan"},
		{Title: "The Matrix", Description: "Action, Sci-Fi", Rating: floatPtr(8.7), Year: intPtr(1999), Director: "Lana Wachowski"},
		{Title: "Inception", Description: "Action, Adventure, Sci-Fi", Rating: floatPtr(8.8), Year: intPtr(2010), Director: "Christopher Nolan"},
		{Title: "Toy Story", Description: "Animation, Adventure, Comedy", Rating: floatPtr(8.3), Year: intPtr(1995), Director: "John Lasseter"},
	}
}

func mustCatalog(t *testing.T, items []Item) *Catalog {
	t.Helper()
	cat, err := New(items)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return cat
}

func TestNewAssignsIDsAndTags(t *testing.T) {
	cat := mustCatalog(t, fixtureItems())

	if cat.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", cat.Len())
	}

	for i, item := range cat.Items() {
		if item.ID != i {
			t.Errorf("item %q ID = %d, want %d", item.Title, item.ID, i)
		}
	}

	want := []string{"Action", "Crime", "Drama"}
	if got := cat.At(0).Tags; !reflect.DeepEqual(got, want) {
		t.Errorf("At(0).Tags = %v, want %v", got, want)
	}
}

func TestNewRejectsBadItems(t *testing.T) {
	tests := []struct {
		name  string
		items []Item
	}{
		{
			name:  "empty title",
			items: []Item{{Title: "  ", Description: "Drama"}},
		},
		{
			name:  "empty description",
			items: []Item{{Title: "Solaris", Description: ""}},
		},
		{
			name: "duplicate title",
			items: []Item{
				{Title: "Solaris", Description: "Sci-Fi"},
				{Title: "Solaris", Description: "Drama"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.items)
			if !errors.Is(err, ErrSchema) {
				t.Errorf("New() error = %v, want ErrSchema", err)
			}
		})
	}
}

func TestSplitTags(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"Action, Crime, Drama", []string{"Action", "Crime", "Drama"}},
		{"Action,Crime", []string{"Action", "Crime"}},
		{"  Drama  ", []string{"Drama"}},
		{"Drama,,Comedy", []string{"Drama", "Comedy"}},
	}

	for _, tt := range tests {
		if got := SplitTags(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitTags(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestGenresSortedDistinct(t *testing.T) {
	cat := mustCatalog(t, fixtureItems())

	want := []string{"Action", "Adventure", "Animation", "Comedy", "Crime", "Drama", "Sci-Fi"}
	if got := cat.Genres(); !reflect.DeepEqual(got, want) {
		t.Errorf("Genres() = %v, want %v", got, want)
	}
}

func TestByTitleExactMatch(t *testing.T) {
	cat := mustCatalog(t, fixtureItems())

	idx, ok := cat.ByTitle("The Matrix")
	if !ok || idx != 2 {
		t.Errorf("ByTitle(The Matrix) = (%d, %v), want (2, true)", idx, ok)
	}

	// Lookup is case-sensitive and exact, not a search.
	if _, ok := cat.ByTitle("the matrix"); ok {
		t.Error("ByTitle should be case-sensitive")
	}
	if _, ok := cat.ByTitle("Matrix"); ok {
		t.Error("ByTitle should not match substrings")
	}
}

func TestFilterByTagPreservesOrder(t *testing.T) {
	cat := mustCatalog(t, fixtureItems())

	got := cat.FilterByTag("Sci-Fi")
	if len(got) != 2 {
		t.Fatalf("FilterByTag(Sci-Fi) returned %d items, want 2", len(got))
	}
	if got[0].Title != "The Matrix" || got[1].Title != "Inception" {
		t.Errorf("FilterByTag order = [%s, %s], want catalog order", got[0].Title, got[1].Title)
	}

	if got := cat.FilterByTag("Western"); len(got) != 0 {
		t.Errorf("FilterByTag(Western) = %d items, want 0", len(got))
	}

	if got := cat.FilterByTag(""); len(got) != cat.Len() {
		t.Errorf("FilterByTag(\"\") = %d items, want all %d", len(got), cat.Len())
	}
}

func TestItemHasTag(t *testing.T) {
	cat := mustCatalog(t, fixtureItems())

	idx, ok := cat.ByTitle("The Matrix")
	if !ok {
		t.Fatal("fixture missing The Matrix")
	}
	item := cat.At(idx)

	if !item.HasTag("Sci-Fi") {
		t.Error("HasTag(Sci-Fi) = false, want true")
	}
	if item.HasTag("sci-fi") {
		t.Error("HasTag is case-sensitive; lowercase tag must not match")
	}
	if item.HasTag("Western") {
		t.Error("HasTag(Western) = true, want false")
	}
}

func TestSearchTitleAndDirector(t *testing.T) {
	cat := mustCatalog(t, fixtureItems())

	tests := []struct {
		term string
		want int
	}{
		{"matrix", 1},
		{"nolan", 3},
		{"BATMAN", 1},
		{"zzz", 0},
		{"", 5},
	}

	for _, tt := range tests {
		if got := cat.Search(tt.term); len(got) != tt.want {
			t.Errorf("Search(%q) = %d items, want %d", tt.term, len(got), tt.want)
		}
	}
}

func TestTopRated(t *testing.T) {
	cat := mustCatalog(t, fixtureItems())

	got := cat.TopRated(3)
	if len(got) != 3 {
		t.Fatalf("TopRated(3) returned %d items", len(got))
	}

	wantOrder := []string{"The Dark Knight", "Inception", "The Matrix"}
	for i, title := range wantOrder {
		if got[i].Title != title {
			t.Errorf("TopRated[%d] = %q, want %q", i, got[i].Title, title)
		}
	}

	if got := cat.TopRated(0); len(got) != 0 {
		t.Errorf("TopRated(0) = %d items, want 0", len(got))
	}
	if got := cat.TopRated(100); len(got) != 5 {
		t.Errorf("TopRated(100) = %d items, want 5", len(got))
	}
}

func TestTopRatedSkipsUnrated(t *testing.T) {
	items := []Item{
		{Title: "A", Description: "Drama", Rating: floatPtr(7.0)},
		{Title: "B", Description: "Drama"},
		{Title: "C", Description: "Drama", Rating: floatPtr(9.0)},
	}
	cat := mustCatalog(t, items)

	got := cat.TopRated(5)
	if len(got) != 2 {
		t.Fatalf("TopRated = %d items, want 2", len(got))
	}
	if got[0].Title != "C" || got[1].Title != "A" {
		t.Errorf("TopRated order = [%s, %s], want [C, A]", got[0].Title, got[1].Title)
	}
}

func TestCapabilities(t *testing.T) {
	full := mustCatalog(t, fixtureItems())
	caps := full.Capabilities()
	if !caps.Rating || !caps.Year || !caps.Director {
		t.Errorf("Capabilities() = %+v, want all true", caps)
	}

	bare := mustCatalog(t, []Item{{Title: "A", Description: "Drama"}})
	caps = bare.Capabilities()
	if caps.Rating || caps.Year || caps.Director {
		t.Errorf("Capabilities() = %+v, want all false", caps)
	}
}

func TestFingerprintStability(t *testing.T) {
	a := mustCatalog(t, fixtureItems())
	b := mustCatalog(t, fixtureItems())
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("identical catalogs should share a fingerprint")
	}

	changed := fixtureItems()
	changed[0].Rating = floatPtr(9.1)
	c := mustCatalog(t, changed)
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("changed catalog should have a different fingerprint")
	}
}

func TestStats(t *testing.T) {
	cat := mustCatalog(t, fixtureItems())

	s := cat.Stats()
	if s.Items != 5 {
		t.Errorf("Stats.Items = %d, want 5", s.Items)
	}
	if s.Genres != 7 {
		t.Errorf("Stats.Genres = %d, want 7", s.Genres)
	}
	if s.MinYear == nil || *s.MinYear != 1995 {
		t.Errorf("Stats.MinYear = %v, want 1995", s.MinYear)
	}
	if s.MaxYear == nil || *s.MaxYear != 2010 {
		t.Errorf("Stats.MaxYear = %v, want 2010", s.MaxYear)
	}

	noYears := mustCatalog(t, []Item{{Title: "A", Description: "Drama"}})
	s = noYears.Stats()
	if s.MinYear != nil || s.MaxYear != nil {
		t.Errorf("Stats year range should be nil without year data, got %v-%v", s.MinYear, s.MaxYear)
	}
}
