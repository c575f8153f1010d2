// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

package api

import (
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tomtom215/movieai/internal/recommend"
)

func TestRecommendations_ByTitle(t *testing.T) {
	router := newTestRouter(loadedEngine(t), nil)

	rec, env := doRequest(t, router, http.MethodGet, "/api/v1/recommendations?title=inception&strategy=content&k=3")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}
	if env.Status != "success" {
		t.Errorf("envelope status = %q, want success", env.Status)
	}

	var resp recommend.Response
	decodeData(t, env, &resp)

	if len(resp.Items) > 3 {
		t.Errorf("got %d items, want at most 3", len(resp.Items))
	}
	for _, item := range resp.Items {
		if item.ID == 2 {
			t.Error("query movie must not be recommended")
		}
	}
	if resp.Metadata.QueryMovieID != 2 {
		t.Errorf("QueryMovieID = %d, want 2", resp.Metadata.QueryMovieID)
	}
	if resp.Metadata.Strategy != recommend.StrategyContent {
		t.Errorf("Strategy = %q, want content", resp.Metadata.Strategy)
	}
	if env.Metadata.SnapshotVersion != 1 {
		t.Errorf("metadata snapshot_version = %d, want 1", env.Metadata.SnapshotVersion)
	}
}

func TestRecommendations_NoQueryFallsBackToTopRated(t *testing.T) {
	router := newTestRouter(loadedEngine(t), nil)

	rec, env := doRequest(t, router, http.MethodGet, "/api/v1/recommendations?k=3")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	var resp recommend.Response
	decodeData(t, env, &resp)

	got := make([]int, len(resp.Items))
	for i, it := range resp.Items {
		got[i] = it.ID
	}
	if diff := cmp.Diff([]int{1, 2, 3}, got); diff != "" {
		t.Errorf("top rated ids mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(recommend.Fallback(recommend.ReasonNoQuery), resp.Metadata.Resolution); diff != "" {
		t.Errorf("resolution mismatch (-want +got):\n%s", diff)
	}
}

func TestRecommendations_Errors(t *testing.T) {
	router := newTestRouter(loadedEngine(t), nil)

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantCode   string
	}{
		{"malformed movie_id", "movie_id=abc", http.StatusBadRequest, "INVALID_PARAMETER"},
		{"malformed k", "movie_id=1&k=ten", http.StatusBadRequest, "INVALID_PARAMETER"},
		{"malformed weight", "movie_id=1&weight_content=lots", http.StatusBadRequest, "INVALID_PARAMETER"},
		{"unknown strategy", "movie_id=1&strategy=magic", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"negative k", "movie_id=1&k=-1", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"negative weight", "movie_id=1&weight_collab=-0.5", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"nan weight", "movie_id=1&weight_content=NaN", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"unknown movie", "movie_id=999", http.StatusNotFound, "NOT_FOUND"},
		{"unknown title", "title=Nope", http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := doRequest(t, router, http.MethodGet, "/api/v1/recommendations?"+tt.query)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d; body %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if env.Status != "error" {
				t.Errorf("envelope status = %q, want error", env.Status)
			}
			if got := errorCode(env); got != tt.wantCode {
				t.Errorf("error code = %q, want %q", got, tt.wantCode)
			}
		})
	}
}

func TestRecommendations_NotReady(t *testing.T) {
	router := newTestRouter(newEngine(t), nil)

	rec, env := doRequest(t, router, http.MethodGet, "/api/v1/recommendations?movie_id=1")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if got := errorCode(env); got != "NOT_READY" {
		t.Errorf("error code = %q, want NOT_READY", got)
	}
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", got)
	}
}
