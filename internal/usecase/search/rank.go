package search

import (
	"math"
	"sort"

	"github.com/spacebio/pubdex/internal/domain/search/result"
	"github.com/spacebio/pubdex/internal/index/tfidf"
)

// scoredRow pairs a row ordinal with its similarity score.
type scoredRow struct {
	id    int
	score float64
}

// rankAll scores the query vector against every row vector (full scan, no
// pruning), keeps rows with score >= threshold, and orders them by descending
// score. Exact ties keep original row order. exclude removes one row id from
// consideration (self-exclusion for related-article lookups); pass -1 to keep
// all rows.
func rankAll(qv tfidf.Vector, vectors []tfidf.Vector, threshold float64, exclude int) []scoredRow {
	ranked := make([]scoredRow, 0, len(vectors))
	for id, rv := range vectors {
		if id == exclude {
			continue
		}
		score := tfidf.Cosine(qv, rv)
		if score >= threshold {
			ranked = append(ranked, scoredRow{id: id, score: score})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	return ranked
}

// matchedTerms intersects the non-stopword alphabetic tokens (length > 2) of
// the two texts. Terms appear in queryText order, deduplicated, capped at
// result.MaxMatchedTerms. Deterministic for identical inputs.
func matchedTerms(queryText, candidateText string) []string {
	candidate := make(map[string]struct{})
	for _, t := range tfidf.Tokenize(candidateText) {
		if len(t) > 2 && !tfidf.IsStopWord(t) {
			candidate[t] = struct{}{}
		}
	}

	var shared []string
	seen := make(map[string]struct{})
	for _, t := range tfidf.Tokenize(queryText) {
		if len(t) <= 2 || tfidf.IsStopWord(t) {
			continue
		}
		if _, ok := candidate[t]; !ok {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		shared = append(shared, t)
		if len(shared) == result.MaxMatchedTerms {
			break
		}
	}
	return shared
}

// roundScore rounds a similarity score to 3 decimals for presentation.
func roundScore(s float64) float64 {
	return math.Round(s*1000) / 1000
}
