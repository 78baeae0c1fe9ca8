// CineRank - Hybrid Content-Based Movie Recommendation Service
// Copyright 2026 CineRank Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerank/cinerank

// Package models defines the JSON data transfer types shared by the HTTP
// API: the response envelope, error shape, and per-endpoint payloads.
//
// The package is a leaf: it imports nothing from the rest of the module so
// every layer can depend on it without cycles. Conversion between domain
// types and these DTOs lives with the HTTP handlers.
package models
