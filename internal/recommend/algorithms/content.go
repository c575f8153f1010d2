// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

package algorithms

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/tomtom215/movieai/internal/models"
)

// ContentConfig contains configuration for the content index.
type ContentConfig struct {
	// MaxFeatures caps the vocabulary to the most frequent terms.
	// Default: 5000.
	MaxFeatures int

	// StopWords enables English stop-word filtering of overviews.
	// Default: true.
	StopWords bool

	// MinTokenLength drops shorter overview words.
	// Default: 2.
	MinTokenLength int
}

// DefaultContentConfig returns default content index configuration.
func DefaultContentConfig() ContentConfig {
	return ContentConfig{
		MaxFeatures:    5000,
		StopWords:      true,
		MinTokenLength: 2,
	}
}

// sparseVector is an L2-normalized TF-IDF vector. Indices are ascending.
type sparseVector struct {
	idx []int
	val []float64
}

// dot returns the inner product of two sparse vectors.
func (a sparseVector) dot(b sparseVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a.idx) && j < len(b.idx) {
		switch {
		case a.idx[i] == b.idx[j]:
			sum += a.val[i] * b.val[j]
			i++
			j++
		case a.idx[i] < b.idx[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// ContentIndex answers content-similarity queries over TF-IDF vectors.
//
// For a term t in movie d over a catalog of n movies:
//
//	tfidf(t, d) = count(t, d) * (ln((1 + n) / (1 + df(t))) + 1)
//
// Each vector is then L2-normalized, so the cosine similarity of two movies
// is the dot product of their vectors.
type ContentIndex struct {
	ids     []int
	index   map[int]int
	vocab   []string
	vectors []sparseVector
}

// BuildContentIndex vectorizes every movie. Movies without any text still get
// a (zero) vector and participate in queries with similarity 0.
func BuildContentIndex(ctx context.Context, movies []*models.Movie, cfg ContentConfig) (*ContentIndex, error) {
	if cfg.MaxFeatures <= 0 {
		cfg.MaxFeatures = DefaultContentConfig().MaxFeatures
	}
	if cfg.MinTokenLength <= 0 {
		cfg.MinTokenLength = 1
	}

	ordered := make([]*models.Movie, len(movies))
	copy(ordered, movies)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	tok := tokenizer{stopWords: cfg.StopWords, minLength: cfg.MinTokenLength}

	// Term counts per document and corpus-wide frequencies.
	docs := make([]map[string]int, len(ordered))
	corpusFreq := make(map[string]int)
	for i, m := range ordered {
		if i%256 == 0 && ContextCancelled(ctx) {
			return nil, ctx.Err()
		}
		counts := make(map[string]int)
		for _, term := range tok.movieTerms(m) {
			counts[term]++
			corpusFreq[term]++
		}
		docs[i] = counts
	}

	vocab := selectVocabulary(corpusFreq, cfg.MaxFeatures)
	termIndex := make(map[string]int, len(vocab))
	for i, term := range vocab {
		termIndex[term] = i
	}

	df := make([]int, len(vocab))
	for _, counts := range docs {
		for term := range counts {
			if i, ok := termIndex[term]; ok {
				df[i]++
			}
		}
	}

	n := float64(len(ordered))
	idf := make([]float64, len(vocab))
	for i, d := range df {
		idf[i] = math.Log((1+n)/(1+float64(d))) + 1
	}

	idx := &ContentIndex{
		ids:     make([]int, len(ordered)),
		index:   make(map[int]int, len(ordered)),
		vocab:   vocab,
		vectors: make([]sparseVector, len(ordered)),
	}

	for i, m := range ordered {
		if i%256 == 0 && ContextCancelled(ctx) {
			return nil, ctx.Err()
		}
		if _, dup := idx.index[m.ID]; dup {
			return nil, fmt.Errorf("duplicate movie id %d", m.ID)
		}
		idx.ids[i] = m.ID
		idx.index[m.ID] = i
		idx.vectors[i] = vectorize(docs[i], termIndex, idf)
	}

	return idx, nil
}

// selectVocabulary keeps the maxFeatures most frequent terms, ties broken
// alphabetically, and returns them sorted alphabetically.
func selectVocabulary(freq map[string]int, maxFeatures int) []string {
	terms := make([]string, 0, len(freq))
	for term := range freq {
		terms = append(terms, term)
	}

	if len(terms) > maxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if freq[terms[i]] != freq[terms[j]] {
				return freq[terms[i]] > freq[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:maxFeatures]
	}

	sort.Strings(terms)
	return terms
}

func vectorize(counts map[string]int, termIndex map[string]int, idf []float64) sparseVector {
	weights := make(map[int]float64, len(counts))
	for term, c := range counts {
		if i, ok := termIndex[term]; ok {
			weights[i] = float64(c) * idf[i]
		}
	}

	v := sparseVector{idx: make([]int, 0, len(weights))}
	for i := range weights {
		v.idx = append(v.idx, i)
	}
	sort.Ints(v.idx)

	v.val = make([]float64, len(v.idx))
	var norm float64
	for k, i := range v.idx {
		v.val[k] = weights[i]
		norm += weights[i] * weights[i]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for k := range v.val {
			v.val[k] /= norm
		}
	}
	return v
}

// Name returns the index identifier.
func (c *ContentIndex) Name() string {
	return NameContent
}

// Len returns the number of indexed movies.
func (c *ContentIndex) Len() int {
	return len(c.ids)
}

// Contains reports whether the movie is indexed.
func (c *ContentIndex) Contains(id int) bool {
	_, ok := c.index[id]
	return ok
}

// VocabularySize returns the number of features.
func (c *ContentIndex) VocabularySize() int {
	return len(c.vocab)
}

// similarity returns the cosine similarity of two indexed movies.
func (c *ContentIndex) similarity(a, b int) (float64, error) {
	ia, ok := c.index[a]
	if !ok {
		return 0, fmt.Errorf("content index: movie %d: %w", a, models.ErrNotFound)
	}
	ib, ok := c.index[b]
	if !ok {
		return 0, fmt.Errorf("content index: movie %d: %w", b, models.ErrNotFound)
	}
	return clampUnit(c.vectors[ia].dot(c.vectors[ib])), nil
}

// Nearest returns up to k movies most similar to id. Candidates rejected by
// filter are dropped after ranking and before truncation.
func (c *ContentIndex) Nearest(ctx context.Context, id, k int, filter Filter) ([]Scored, error) {
	qi, ok := c.index[id]
	if !ok {
		return nil, fmt.Errorf("content index: movie %d: %w", id, models.ErrNotFound)
	}
	if k <= 0 {
		return []Scored{}, nil
	}

	query := c.vectors[qi]
	candidates := make([]Scored, 0, len(c.ids))
	for i, other := range c.ids {
		if i == qi {
			continue
		}
		if i%1024 == 0 && ContextCancelled(ctx) {
			return nil, ctx.Err()
		}
		if filter != nil && !filter(other) {
			continue
		}
		candidates = append(candidates, Scored{
			ID:    other,
			Score: clampUnit(query.dot(c.vectors[i])),
		})
	}

	return rankNeighbors(candidates, k), nil
}
