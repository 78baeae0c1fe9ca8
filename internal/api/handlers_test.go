// CineRank - Hybrid Content-Based Movie Recommendation Service
// Copyright 2026 CineRank Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerank/cinerank

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/cinerank/cinerank/internal/catalog"
	"github.com/cinerank/cinerank/internal/middleware"
	"github.com/cinerank/cinerank/internal/recommend"
)

const fixtureCSV = `title,description,rating,year,director
The Dark Knight,"Action, Crime, Drama",9.0,2008,Christopher Nolan
Batman Begins,"Action, Crime, Drama",8.2,2005,Christopher Nolan
The Matrix,"Action, Sci-Fi",8.7,1999,Lana Wachowski
Inception,"Action, Adventure, Sci-Fi",8.8,2010,Christopher Nolan
Toy Story,"Animation, Adventure, Comedy",8.3,1995,John Lasseter
`

// envelope mirrors models.APIResponse for decoding test responses.
type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeFixtureCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "movies.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

// newTestServer builds a loaded engine, handler, and routing tree against a
// temp catalog file. Rate limiting is disabled so tests can hammer endpoints.
func newTestServer(t *testing.T) (http.Handler, string) {
	t.Helper()

	path := writeFixtureCatalog(t, fixtureCSV)

	cat, err := catalog.Load(path)
	if err != nil {
		t.Fatalf("catalog.Load() error = %v", err)
	}

	eng, err := recommend.NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if err := eng.SetCatalog(context.Background(), cat); err != nil {
		t.Fatalf("SetCatalog() error = %v", err)
	}

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitDisabled = true

	router := NewRouter(NewHandler(eng, path), cfg)
	return router.Setup(), path
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("response is not valid JSON: %v\nbody: %s", err, rec.Body.String())
		}
	}
	return rec, env
}

func TestHealthEndpoint(t *testing.T) {
	h, _ := newTestServer(t)
	rec, env := doRequest(t, h, http.MethodGet, "/api/v1/health", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if env.Status != "success" {
		t.Errorf("envelope status = %q", env.Status)
	}

	var data struct {
		Status     string `json:"status"`
		Ready      bool   `json:"ready"`
		Generation int    `json:"generation"`
		Items      int    `json:"items"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Status != "healthy" || !data.Ready {
		t.Errorf("health = %+v, want healthy/ready", data)
	}
	if data.Items != 5 {
		t.Errorf("items = %d, want 5", data.Items)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}
}

// An upstream-supplied X-Request-ID must survive the full router stack:
// echoed in the response header and visible to handlers via
// middleware.GetRequestID, which correlates engine logs with HTTP logs.
func TestRequestIDVisibleThroughRouterStack(t *testing.T) {
	var fromContext string

	r := chi.NewRouter()
	r.Use(chiMiddleware(middleware.RequestID))
	r.Get("/ping", func(w http.ResponseWriter, req *http.Request) {
		fromContext = middleware.GetRequestID(req.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "upstream-abc-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if fromContext != "upstream-abc-123" {
		t.Errorf("GetRequestID inside router stack = %q, want %q", fromContext, "upstream-abc-123")
	}
	if got := rec.Header().Get("X-Request-ID"); got != "upstream-abc-123" {
		t.Errorf("X-Request-ID header = %q, want passthrough", got)
	}
}

// The assembled routing tree must carry the upstream ID too, not just the
// middleware in isolation.
func TestRequestIDPassthroughOnRoutes(t *testing.T) {
	h, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("X-Request-ID", "upstream-def-456")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "upstream-def-456" {
		t.Errorf("X-Request-ID header = %q, want %q", got, "upstream-def-456")
	}
}

func TestGenresEndpoint(t *testing.T) {
	h, _ := newTestServer(t)
	rec, env := doRequest(t, h, http.MethodGet, "/api/v1/genres", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var data struct {
		Genres []string `json:"genres"`
		Count  int      `json:"count"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}

	want := []string{"Action", "Adventure", "Animation", "Comedy", "Crime", "Drama", "Sci-Fi"}
	if data.Count != len(want) {
		t.Fatalf("count = %d, want %d (%v)", data.Count, len(want), data.Genres)
	}
	for i, g := range want {
		if data.Genres[i] != g {
			t.Errorf("genres[%d] = %q, want %q", i, data.Genres[i], g)
		}
	}
}

func TestMoviesEndpoint(t *testing.T) {
	h, _ := newTestServer(t)

	tests := []struct {
		name       string
		target     string
		wantCount  int
		wantFirst  string
	}{
		{name: "all movies", target: "/api/v1/movies", wantCount: 5, wantFirst: "The Dark Knight"},
		{name: "genre filter", target: "/api/v1/movies?genre=Sci-Fi", wantCount: 2, wantFirst: "The Matrix"},
		{name: "genre no match", target: "/api/v1/movies?genre=Western", wantCount: 0},
		{name: "director search", target: "/api/v1/movies?search=nolan", wantCount: 3, wantFirst: "The Dark Knight"},
		{name: "title search", target: "/api/v1/movies?search=toy", wantCount: 1, wantFirst: "Toy Story"},
		{name: "search and genre compose", target: "/api/v1/movies?search=nolan&genre=Sci-Fi", wantCount: 1, wantFirst: "Inception"},
		{name: "search and genre both match", target: "/api/v1/movies?search=nolan&genre=Crime", wantCount: 2, wantFirst: "The Dark Knight"},
		{name: "search and genre disjoint", target: "/api/v1/movies?search=toy&genre=Sci-Fi", wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := doRequest(t, h, http.MethodGet, tt.target, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}

			var data struct {
				Movies []struct {
					Title string `json:"title"`
				} `json:"movies"`
				Count int `json:"count"`
			}
			if err := json.Unmarshal(env.Data, &data); err != nil {
				t.Fatalf("decode data: %v", err)
			}
			if data.Count != tt.wantCount {
				t.Fatalf("count = %d, want %d", data.Count, tt.wantCount)
			}
			if tt.wantCount > 0 && data.Movies[0].Title != tt.wantFirst {
				t.Errorf("first = %q, want %q", data.Movies[0].Title, tt.wantFirst)
			}
		})
	}
}

func TestTopMoviesEndpoint(t *testing.T) {
	h, _ := newTestServer(t)
	rec, env := doRequest(t, h, http.MethodGet, "/api/v1/movies/top?limit=3", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var data struct {
		Movies []struct {
			Title  string   `json:"title"`
			Rating *float64 `json:"rating"`
		} `json:"movies"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}

	want := []string{"The Dark Knight", "Inception", "The Matrix"}
	if len(data.Movies) != 3 {
		t.Fatalf("len = %d, want 3", len(data.Movies))
	}
	for i, title := range want {
		if data.Movies[i].Title != title {
			t.Errorf("top[%d] = %q, want %q", i, data.Movies[i].Title, title)
		}
	}
}

func TestTopMoviesInvalidLimit(t *testing.T) {
	h, _ := newTestServer(t)
	for _, target := range []string{"/api/v1/movies/top?limit=0", "/api/v1/movies/top?limit=500"} {
		rec, env := doRequest(t, h, http.MethodGet, target, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, rec.Code)
		}
		if env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
			t.Errorf("%s: error = %+v, want VALIDATION_ERROR", target, env.Error)
		}
	}
}

func TestStatsEndpoint(t *testing.T) {
	h, _ := newTestServer(t)
	rec, env := doRequest(t, h, http.MethodGet, "/api/v1/movies/stats", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var data struct {
		Items      int  `json:"items"`
		Genres     int  `json:"genres"`
		MinYear    *int `json:"min_year"`
		MaxYear    *int `json:"max_year"`
		HasRatings bool `json:"has_ratings"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Items != 5 || data.Genres != 7 {
		t.Errorf("items/genres = %d/%d, want 5/7", data.Items, data.Genres)
	}
	if data.MinYear == nil || *data.MinYear != 1995 {
		t.Errorf("min_year = %v, want 1995", data.MinYear)
	}
	if data.MaxYear == nil || *data.MaxYear != 2010 {
		t.Errorf("max_year = %v, want 2010", data.MaxYear)
	}
	if !data.HasRatings {
		t.Error("has_ratings = false, want true")
	}
}

func TestRecommendEndpoint(t *testing.T) {
	h, _ := newTestServer(t)
	body := `{"title":"The Dark Knight","weights":{"genre":0.6,"rating":0.3,"year":0.1},"top_n":3}`
	rec, env := doRequest(t, h, http.MethodPost, "/api/v1/recommendations", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}

	var data struct {
		Query struct {
			Title string `json:"title"`
		} `json:"query"`
		Results []struct {
			Movie struct {
				Title string `json:"title"`
			} `json:"movie"`
			Score float64 `json:"score"`
		} `json:"results"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}

	if data.Query.Title != "The Dark Knight" {
		t.Errorf("query = %q", data.Query.Title)
	}
	if len(data.Results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(data.Results))
	}
	if data.Results[0].Movie.Title != "Batman Begins" {
		t.Errorf("top result = %q, want Batman Begins", data.Results[0].Movie.Title)
	}
	for i, res := range data.Results {
		if res.Movie.Title == "The Dark Knight" {
			t.Error("query item leaked into results")
		}
		if res.Score < 0 || res.Score > 100 {
			t.Errorf("score = %v outside [0,100]", res.Score)
		}
		if i > 0 && res.Score > data.Results[i-1].Score {
			t.Errorf("scores not descending at %d", i)
		}
	}
}

func TestRecommendDefaults(t *testing.T) {
	h, _ := newTestServer(t)
	rec, env := doRequest(t, h, http.MethodPost, "/api/v1/recommendations", `{"title":"The Matrix"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var data struct {
		Results []json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	// Default top_n is 5 but the catalog has only 4 other items.
	if len(data.Results) != 4 {
		t.Errorf("len(results) = %d, want 4", len(data.Results))
	}
}

func TestRecommendErrors(t *testing.T) {
	h, _ := newTestServer(t)

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantErr  string
	}{
		{
			name:     "unknown title",
			body:     `{"title":"Unknown Movie"}`,
			wantCode: http.StatusNotFound,
			wantErr:  "NOT_FOUND",
		},
		{
			name:     "missing title",
			body:     `{"top_n":3}`,
			wantCode: http.StatusBadRequest,
			wantErr:  "VALIDATION_ERROR",
		},
		{
			name:     "top_n above cap",
			body:     `{"title":"Inception","top_n":100}`,
			wantCode: http.StatusBadRequest,
			wantErr:  "VALIDATION_ERROR",
		},
		{
			name:     "weight out of range",
			body:     `{"title":"Inception","weights":{"genre":1.5,"rating":0,"year":0}}`,
			wantCode: http.StatusBadRequest,
			wantErr:  "VALIDATION_ERROR",
		},
		{
			name:     "malformed json",
			body:     `{"title":`,
			wantCode: http.StatusBadRequest,
			wantErr:  "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := doRequest(t, h, http.MethodPost, "/api/v1/recommendations", tt.body)
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if env.Error == nil || env.Error.Code != tt.wantErr {
				t.Errorf("error = %+v, want code %s", env.Error, tt.wantErr)
			}
		})
	}
}

func TestRecommendNotReady(t *testing.T) {
	eng, err := recommend.NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitDisabled = true
	h := NewRouter(NewHandler(eng, ""), cfg).Setup()

	rec, env := doRequest(t, h, http.MethodPost, "/api/v1/recommendations", `{"title":"Inception"}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "NOT_READY" {
		t.Errorf("error = %+v, want NOT_READY", env.Error)
	}
}

func TestReloadEndpoint(t *testing.T) {
	h, path := newTestServer(t)

	// Identical file content: fingerprint matches, no rebuild.
	rec, env := doRequest(t, h, http.MethodPost, "/api/v1/admin/reload", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}
	var data struct {
		Reloaded   bool `json:"reloaded"`
		Generation int  `json:"generation"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Reloaded {
		t.Error("reloaded = true for unchanged file, want false")
	}
	if data.Generation != 1 {
		t.Errorf("generation = %d, want 1", data.Generation)
	}

	// Changed file content: model rebuilds and generation advances.
	updated := fixtureCSV + "Heat,\"Action, Crime, Thriller\",8.3,1995,Michael Mann\n"
	if err := os.WriteFile(path, []byte(updated), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	rec, env = doRequest(t, h, http.MethodPost, "/api/v1/admin/reload", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if !data.Reloaded || data.Generation != 2 {
		t.Errorf("reloaded/generation = %v/%d, want true/2", data.Reloaded, data.Generation)
	}
}

func TestReloadBadFile(t *testing.T) {
	h, path := newTestServer(t)

	if err := os.WriteFile(path, []byte("no,usable,columns\n1,2,3\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	rec, env := doRequest(t, h, http.MethodPost, "/api/v1/admin/reload", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "CATALOG_ERROR" {
		t.Errorf("error = %+v, want CATALOG_ERROR", env.Error)
	}

	// The previous model must survive a failed reload.
	rec, _ = doRequest(t, h, http.MethodPost, "/api/v1/recommendations", `{"title":"Inception"}`)
	if rec.Code != http.StatusOK {
		t.Errorf("recommendation after failed reload: status = %d, want 200", rec.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h, _ := newTestServer(t)
	rec, _ := doRequest(t, h, http.MethodGet, "/api/v1/recommendations", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	h, _ := newTestServer(t)
	rec, _ := doRequest(t, h, http.MethodGet, "/api/v1/genres", "")

	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q, want DENY", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "go_") {
		t.Error("Prometheus exposition output missing standard collectors")
	}
}
