// CineRank - Hybrid Content-Based Movie Recommendation Service
// Copyright 2026 CineRank Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerank/cinerank

package recommend

import "errors"

// Sentinel errors returned by the engine. Callers classify failures with
// errors.Is; the HTTP layer maps each to a distinct status code and message.
var (
	// ErrItemNotFound indicates the query title has no exact match in the
	// catalog. Recoverable: the caller shows a message and may retry with
	// a different title.
	ErrItemNotFound = errors.New("item not found in catalog")

	// ErrInvalidArgument indicates a precondition violation such as a
	// non-positive top-n. The request is rejected before any computation.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotReady indicates no catalog has been set on the engine yet.
	ErrNotReady = errors.New("engine has no catalog")
)
