// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

package algorithms

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tomtom215/movieai/internal/models"
)

func contentMovies() []*models.Movie {
	return []*models.Movie{
		{ID: 1, Title: "Shawshank", Genres: []string{"Drama"}, Director: "Frank Darabont", Cast: []string{"Tim Robbins"}, Overview: "Two imprisoned men bond over years"},
		{ID: 2, Title: "Green Mile", Genres: []string{"Drama"}, Director: "Frank Darabont", Cast: []string{"Tom Hanks"}, Overview: "Prison guards witness a miracle"},
		{ID: 3, Title: "Knocked Up", Genres: []string{"Comedy"}, Director: "Judd Apatow", Cast: []string{"Seth Rogen"}, Overview: "A slacker becomes a father"},
		{ID: 4, Title: "Big", Genres: []string{"Comedy", "Drama"}, Director: "Penny Marshall", Cast: []string{"Tom Hanks"}, Overview: "A boy wakes up in the body of a man"},
	}
}

func buildContent(t *testing.T, movies []*models.Movie) *ContentIndex {
	t.Helper()
	idx, err := BuildContentIndex(context.Background(), movies, DefaultContentConfig())
	if err != nil {
		t.Fatalf("BuildContentIndex() error = %v", err)
	}
	return idx
}

func ids(s []Scored) []int {
	out := make([]int, len(s))
	for i, v := range s {
		out[i] = v.ID
	}
	return out
}

func TestTokenizer(t *testing.T) {
	tok := tokenizer{stopWords: true, minLength: 2}

	got := tok.words("The Dark Knight's 2 returns!")
	if diff := cmp.Diff([]string{"dark", "knight", "returns"}, got); diff != "" {
		t.Errorf("words() mismatch (-want +got):\n%s", diff)
	}

	if term := entityTerm("Christopher Nolan"); term != "christophernolan" {
		t.Errorf("entityTerm() = %q, want %q", term, "christophernolan")
	}

	m := &models.Movie{Genres: []string{"Sci-Fi"}, Director: "Ridley Scott", Cast: []string{"Sigourney Weaver"}, Overview: "In space"}
	want := []string{"scifi", "ridleyscott", "sigourneyweaver", "space"}
	if diff := cmp.Diff(want, tok.movieTerms(m)); diff != "" {
		t.Errorf("movieTerms() mismatch (-want +got):\n%s", diff)
	}
}

func TestContentIndex_Nearest(t *testing.T) {
	idx := buildContent(t, contentMovies())

	got, err := idx.Nearest(context.Background(), 1, 3, nil)
	if err != nil {
		t.Fatalf("Nearest() error = %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("len(Nearest()) = %d, want 3", len(got))
	}
	if got[0].ID != 2 {
		t.Errorf("top neighbor = %d, want 2 (same director and genre)", got[0].ID)
	}
	if got[0].Score <= 0 || got[0].Score > 1 {
		t.Errorf("top score = %f, want in (0, 1]", got[0].Score)
	}
	for _, s := range got {
		if s.ID == 1 {
			t.Error("Nearest() contains the query movie")
		}
	}
}

func TestContentIndex_Properties(t *testing.T) {
	idx := buildContent(t, contentMovies())

	for _, id := range []int{1, 2, 3, 4} {
		for _, k := range []int{1, 2, 3, 10} {
			got, err := idx.Nearest(context.Background(), id, k, nil)
			if err != nil {
				t.Fatalf("Nearest(%d, %d) error = %v", id, k, err)
			}

			limit := k
			if idx.Len()-1 < limit {
				limit = idx.Len() - 1
			}
			if len(got) > limit {
				t.Errorf("Nearest(%d, %d) len = %d, want <= %d", id, k, len(got), limit)
			}

			for i, s := range got {
				if s.ID == id {
					t.Errorf("Nearest(%d, %d) contains query movie", id, k)
				}
				if i > 0 && s.Score > got[i-1].Score {
					t.Errorf("Nearest(%d, %d) scores not non-increasing at %d", id, k, i)
				}
			}
		}
	}
}

func TestContentIndex_Similarity(t *testing.T) {
	idx := buildContent(t, contentMovies())

	for _, id := range []int{1, 2, 3, 4} {
		s, err := idx.similarity(id, id)
		if err != nil || math.Abs(s-1) > 1e-9 {
			t.Errorf("similarity(%d, %d) = %f, %v, want 1", id, id, s, err)
		}
	}

	ab, _ := idx.similarity(1, 2)
	ba, _ := idx.similarity(2, 1)
	if ab != ba {
		t.Errorf("similarity(1,2) = %f, similarity(2,1) = %f, want equal", ab, ba)
	}
	if ab <= 0 || ab > 1 {
		t.Errorf("similarity(1,2) = %f, want in (0, 1]", ab)
	}

	if _, err := idx.similarity(1, 99); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("similarity(1, 99) error = %v, want ErrNotFound", err)
	}
}

func TestContentIndex_TieBreak(t *testing.T) {
	movies := []*models.Movie{
		{ID: 9, Title: "A", Genres: []string{"Drama"}, Overview: "heist crew"},
		{ID: 5, Title: "B", Genres: []string{"Drama"}, Overview: "heist crew"},
		{ID: 7, Title: "C", Genres: []string{"Drama"}, Overview: "heist crew"},
	}
	idx := buildContent(t, movies)

	got, err := idx.Nearest(context.Background(), 7, 5, nil)
	if err != nil {
		t.Fatalf("Nearest() error = %v", err)
	}
	if diff := cmp.Diff([]int{5, 9}, ids(got)); diff != "" {
		t.Errorf("tie order mismatch (-want +got):\n%s", diff)
	}
}

func TestContentIndex_Filter(t *testing.T) {
	movies := contentMovies()
	idx := buildContent(t, movies)

	comedy := func(id int) bool { return id == 3 || id == 4 }

	got, err := idx.Nearest(context.Background(), 2, 1, comedy)
	if err != nil {
		t.Fatalf("Nearest() error = %v", err)
	}
	if diff := cmp.Diff([]int{4}, ids(got)); diff != "" {
		t.Errorf("filtered result mismatch (-want +got):\n%s", diff)
	}
}

func TestContentIndex_EdgeCases(t *testing.T) {
	t.Run("unknown movie", func(t *testing.T) {
		idx := buildContent(t, contentMovies())
		_, err := idx.Nearest(context.Background(), 99, 5, nil)
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("Nearest(99) error = %v, want ErrNotFound", err)
		}
	})

	t.Run("single movie catalog", func(t *testing.T) {
		idx := buildContent(t, contentMovies()[:1])
		got, err := idx.Nearest(context.Background(), 1, 5, nil)
		if err != nil {
			t.Fatalf("Nearest() error = %v", err)
		}
		if len(got) != 0 {
			t.Errorf("len(Nearest()) = %d, want 0", len(got))
		}
	})

	t.Run("movie without text participates", func(t *testing.T) {
		movies := append(contentMovies(), &models.Movie{ID: 5, Title: "Blank"})
		idx := buildContent(t, movies)

		if !idx.Contains(5) {
			t.Fatal("Contains(5) = false, want true")
		}
		got, err := idx.Nearest(context.Background(), 5, 10, nil)
		if err != nil {
			t.Fatalf("Nearest() error = %v", err)
		}
		if diff := cmp.Diff([]int{1, 2, 3, 4}, ids(got)); diff != "" {
			t.Errorf("zero vector order mismatch (-want +got):\n%s", diff)
		}
		for _, s := range got {
			if s.Score != 0 {
				t.Errorf("score for %d = %f, want 0", s.ID, s.Score)
			}
		}
	})

	t.Run("zero k", func(t *testing.T) {
		idx := buildContent(t, contentMovies())
		got, err := idx.Nearest(context.Background(), 1, 0, nil)
		if err != nil || len(got) != 0 {
			t.Errorf("Nearest(k=0) = %v, %v, want empty, nil", got, err)
		}
	})

	t.Run("cancelled build", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := BuildContentIndex(ctx, contentMovies(), DefaultContentConfig()); !errors.Is(err, context.Canceled) {
			t.Errorf("BuildContentIndex() error = %v, want context.Canceled", err)
		}
	})
}

func TestContentIndex_MaxFeatures(t *testing.T) {
	cfg := DefaultContentConfig()
	cfg.MaxFeatures = 3

	idx, err := BuildContentIndex(context.Background(), contentMovies(), cfg)
	if err != nil {
		t.Fatalf("BuildContentIndex() error = %v", err)
	}
	if idx.VocabularySize() != 3 {
		t.Errorf("VocabularySize() = %d, want 3", idx.VocabularySize())
	}
}

func TestSelectVocabulary(t *testing.T) {
	freq := map[string]int{"drama": 3, "tomhanks": 2, "prison": 2, "alpha": 1}

	got := selectVocabulary(freq, 3)
	if diff := cmp.Diff([]string{"drama", "prison", "tomhanks"}, got); diff != "" {
		t.Errorf("selectVocabulary() mismatch (-want +got):\n%s", diff)
	}
}

func TestContentIndex_Deterministic(t *testing.T) {
	movies := contentMovies()
	a := buildContent(t, movies)

	reversed := make([]*models.Movie, len(movies))
	for i, m := range movies {
		reversed[len(movies)-1-i] = m
	}
	b := buildContent(t, reversed)

	for _, id := range []int{1, 2, 3, 4} {
		ra, _ := a.Nearest(context.Background(), id, 3, nil)
		rb, _ := b.Nearest(context.Background(), id, 3, nil)
		if diff := cmp.Diff(ra, rb); diff != "" {
			t.Errorf("Nearest(%d) differs between builds:\n%s", id, diff)
		}
	}
}
