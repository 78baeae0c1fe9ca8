// CineRank - Hybrid Content-Based Movie Recommendation Service
// Copyright 2026 CineRank Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerank/cinerank

package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Required and optional column names of the catalog CSV schema.
const (
	columnTitle       = "title"
	columnDescription = "description"
	columnRating      = "rating"
	columnYear        = "year"
	columnDirector    = "director"
)

// Load reads a catalog from the CSV file at path.
//
// The file must carry title and description columns; rating, year, and
// director are optional. A missing required column, an unreadable file, or a
// row with empty required values is a fatal schema error - no partial catalog
// is returned.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()

	cat, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return cat, nil
}

// Parse reads a catalog from CSV data. See Load for the schema contract.
func Parse(r io.Reader) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read header: %v", ErrSchema, err)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var items []Item
	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrSchema, row, err)
		}

		item, err := parseRecord(record, cols, row)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return New(items)
}

// columnIndex maps schema columns to their positions in the CSV header.
// A value of -1 means the column is absent.
type columnIndex struct {
	title       int
	description int
	rating      int
	year        int
	director    int
}

// mapColumns locates the schema columns in the header. Column names are
// matched case-insensitively after trimming, following the upstream dataset
// convention of lowercase headers.
func mapColumns(header []string) (columnIndex, error) {
	cols := columnIndex{title: -1, description: -1, rating: -1, year: -1, director: -1}

	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case columnTitle:
			cols.title = i
		case columnDescription:
			cols.description = i
		case columnRating:
			cols.rating = i
		case columnYear:
			cols.year = i
		case columnDirector:
			cols.director = i
		}
	}

	if cols.title == -1 {
		return cols, fmt.Errorf("%w: missing required column %q", ErrSchema, columnTitle)
	}
	if cols.description == -1 {
		return cols, fmt.Errorf("%w: missing required column %q", ErrSchema, columnDescription)
	}
	return cols, nil
}

// parseRecord converts one CSV record into an Item. Optional numeric cells
// that are empty or malformed load as absent values rather than failing the
// whole catalog.
func parseRecord(record []string, cols columnIndex, row int) (Item, error) {
	item := Item{
		Title:       field(record, cols.title),
		Description: field(record, cols.description),
		Director:    field(record, cols.director),
	}

	if item.Title == "" {
		return Item{}, fmt.Errorf("%w: row %d has an empty title", ErrSchema, row)
	}
	if item.Description == "" {
		return Item{}, fmt.Errorf("%w: row %d (%q) has an empty description", ErrSchema, row, item.Title)
	}

	if raw := field(record, cols.rating); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			item.Rating = &v
		}
	}
	if raw := field(record, cols.year); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			item.Year = &v
		}
	}

	return item, nil
}

// field returns the trimmed cell at index i, or "" when the column is absent
// or the record is short.
func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
