// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/movieai/internal/models"
	"github.com/tomtom215/movieai/internal/recommend"
)

func movieRow(id, title, genres, director, overview, rating string) models.Row {
	return models.Row{
		"id":       id,
		"title":    title,
		"genres":   genres,
		"director": director,
		"cast":     "Actor " + id,
		"overview": overview,
		"rating":   rating,
		"year":     "2010",
	}
}

func ratingRow(user, movie, score string) models.Row {
	return models.Row{"user_id": user, "movie_id": movie, "score": score}
}

func testMovies() []models.Row {
	return []models.Row{
		movieRow("1", "The Dark Knight", "Action, Crime, Drama", "Christopher Nolan", "Batman fights the Joker to save Gotham", "9.0"),
		movieRow("2", "Inception", "Action, Sci-Fi", "Christopher Nolan", "A thief steals secrets through shared dreams", "8.8"),
		movieRow("3", "Interstellar", "Adventure, Drama, Sci-Fi", "Christopher Nolan", "Explorers travel through a wormhole to save humanity", "8.6"),
		movieRow("4", "The Notebook", "Drama, Romance", "Nick Cassavetes", "A poor young man falls in love with a rich young woman", "7.8"),
		movieRow("5", "Superbad", "Comedy", "Greg Mottola", "Two teens plan one last party before graduation", "7.6"),
		movieRow("6", "Memento", "Mystery, Thriller", "Christopher Nolan", "A man with short term memory loss hunts a killer", "8.4"),
	}
}

func testRatings() []models.Row {
	return []models.Row{
		ratingRow("1", "1", "5"), ratingRow("1", "2", "5"), ratingRow("1", "3", "4"), ratingRow("1", "6", "4"),
		ratingRow("2", "1", "4"), ratingRow("2", "2", "5"), ratingRow("2", "6", "5"),
		ratingRow("3", "3", "5"), ratingRow("3", "4", "4"),
		ratingRow("4", "4", "5"), ratingRow("4", "1", "2"),
	}
}

// newEngine returns an engine with no snapshot published.
func newEngine(t *testing.T) *recommend.Engine {
	t.Helper()
	cfg := recommend.DefaultConfig()
	cfg.Collaborative.NumWorkers = 2
	e, err := recommend.NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

// loadedEngine returns an engine serving the test catalog.
func loadedEngine(t *testing.T) *recommend.Engine {
	t.Helper()
	e := newEngine(t)
	if _, err := e.Load(context.Background(), testMovies(), testRatings()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return e
}

// stubReloader returns a fixed snapshot or error.
type stubReloader struct {
	snap     *recommend.Snapshot
	err      error
	triggers []string
}

func (s *stubReloader) Reload(_ context.Context, trigger string) (*recommend.Snapshot, error) {
	s.triggers = append(s.triggers, trigger)
	return s.snap, s.err
}

// newTestRouter builds the full router with rate limiting disabled.
func newTestRouter(engine Engine, reloader Reloader) http.Handler {
	h := NewHandler(engine, reloader, "test")
	mw := NewChiMiddlewareFromSecurity([]string{"https://movies.example"}, 100, 0, true)
	return NewRouter(h, mw).Setup()
}

// envelope mirrors models.APIResponse with the payload left raw.
type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func doRequest(t *testing.T, h http.Handler, method, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, http.NoBody)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, env
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data %s: %v", env.Data, err)
	}
}

func errorCode(env envelope) string {
	if env.Error == nil {
		return ""
	}
	return env.Error.Code
}
