// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

package algorithms

import (
	"strings"
	"unicode"

	"github.com/tomtom215/movieai/internal/models"
)

// englishStopWords follows the common English stop list used by TF-IDF
// vectorizers.
var englishStopWords = toSet(
	"a", "about", "above", "across", "after", "afterwards", "again", "against", "all", "almost",
	"alone", "along", "already", "also", "although", "always", "am", "among", "amongst", "an",
	"and", "another", "any", "anyhow", "anyone", "anything", "anyway", "anywhere", "are", "around",
	"as", "at", "back", "be", "became", "because", "become", "becomes", "becoming", "been",
	"before", "beforehand", "behind", "being", "below", "beside", "besides", "between", "beyond", "both",
	"but", "by", "can", "cannot", "could", "did", "do", "does", "doing", "done",
	"down", "due", "during", "each", "eg", "either", "else", "elsewhere", "enough", "etc",
	"even", "ever", "every", "everyone", "everything", "everywhere", "except", "few", "for", "former",
	"formerly", "from", "further", "had", "has", "have", "having", "he", "hence", "her",
	"here", "hereafter", "hereby", "herein", "hers", "herself", "him", "himself", "his", "how",
	"however", "ie", "if", "in", "indeed", "into", "is", "it", "its", "itself",
	"just", "last", "latter", "latterly", "least", "less", "ltd", "made", "many", "may",
	"me", "meanwhile", "might", "mine", "more", "moreover", "most", "mostly", "much", "must",
	"my", "myself", "namely", "neither", "never", "nevertheless", "next", "no", "nobody", "none",
	"noone", "nor", "not", "nothing", "now", "nowhere", "of", "off", "often", "on",
	"once", "one", "only", "onto", "or", "other", "others", "otherwise", "our", "ours",
	"ourselves", "out", "over", "own", "per", "perhaps", "please", "rather", "re", "same",
	"seem", "seemed", "seeming", "seems", "several", "she", "should", "since", "so", "some",
	"somehow", "someone", "something", "sometime", "sometimes", "somewhere", "still", "such", "than", "that",
	"the", "their", "theirs", "them", "themselves", "then", "thence", "there", "thereafter", "thereby",
	"therefore", "therein", "thereupon", "these", "they", "this", "those", "though", "through", "throughout",
	"thru", "thus", "to", "together", "too", "toward", "towards", "under", "until", "up",
	"upon", "us", "very", "via", "was", "we", "well", "were", "what", "whatever",
	"when", "whence", "whenever", "where", "whereafter", "whereas", "whereby", "wherein", "whereupon", "wherever",
	"whether", "which", "while", "whither", "who", "whoever", "whole", "whom", "whose", "why",
	"will", "with", "within", "without", "would", "yet", "you", "your", "yours", "yourself",
	"yourselves",
)

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// isStopWord reports whether the lower-case word is an English stop word.
func isStopWord(word string) bool {
	_, ok := englishStopWords[word]
	return ok
}

// tokenizer turns movie attributes into a bag of terms.
type tokenizer struct {
	stopWords bool
	minLength int
}

// movieTerms returns the terms of a movie. Genres, the director and cast
// members become single terms with whitespace removed ("christophernolan"),
// so names match as a whole. The overview is split into words.
func (t tokenizer) movieTerms(m *models.Movie) []string {
	terms := make([]string, 0, len(m.Genres)+len(m.Cast)+16)

	for _, g := range m.Genres {
		if term := entityTerm(g); term != "" {
			terms = append(terms, term)
		}
	}
	if term := entityTerm(m.Director); term != "" {
		terms = append(terms, term)
	}
	for _, c := range m.Cast {
		if term := entityTerm(c); term != "" {
			terms = append(terms, term)
		}
	}

	return append(terms, t.words(m.Overview)...)
}

// words splits free text on non-alphanumeric runes.
func (t tokenizer) words(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) < t.minLength {
			continue
		}
		if t.stopWords && isStopWord(f) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// entityTerm lower-cases a name and strips everything but letters and digits.
func entityTerm(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
