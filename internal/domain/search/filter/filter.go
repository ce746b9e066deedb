// Package filter defines the conjunctive predicate set applied to corpus rows.
package filter

import (
	"fmt"

	"github.com/spacebio/pubdex/internal/domain"
	"github.com/spacebio/pubdex/internal/domain/article"
)

// Set is a validated conjunction of filter predicates.
// An absent predicate places no constraint.
type Set struct {
	topics       []int
	years        []int
	minWordCount *int
	maxWordCount *int
	articleTypes []string
	journals     []string
}

// New validates and creates a filter Set.
// Word-count bounds are inclusive and independently optional; an inverted
// pair (min > max) is rejected as ErrMalformedFilter.
func New(
	topics, years []int,
	minWordCount, maxWordCount *int,
	articleTypes, journals []string,
) (Set, error) {
	if minWordCount != nil && *minWordCount < 0 {
		return Set{}, fmt.Errorf("%w: min_word_count must be non-negative, got %d",
			domain.ErrMalformedFilter, *minWordCount)
	}
	if maxWordCount != nil && *maxWordCount < 0 {
		return Set{}, fmt.Errorf("%w: max_word_count must be non-negative, got %d",
			domain.ErrMalformedFilter, *maxWordCount)
	}
	if minWordCount != nil && maxWordCount != nil && *minWordCount > *maxWordCount {
		return Set{}, fmt.Errorf("%w: min_word_count %d exceeds max_word_count %d",
			domain.ErrMalformedFilter, *minWordCount, *maxWordCount)
	}
	return Set{
		topics:       topics,
		years:        years,
		minWordCount: minWordCount,
		maxWordCount: maxWordCount,
		articleTypes: articleTypes,
		journals:     journals,
	}, nil
}

// IsEmpty reports whether the set has no predicates.
func (s Set) IsEmpty() bool {
	return len(s.topics) == 0 && len(s.years) == 0 &&
		s.minWordCount == nil && s.maxWordCount == nil &&
		len(s.articleTypes) == 0 && len(s.journals) == 0
}

// Matches reports whether the article satisfies every predicate.
// A year predicate excludes rows with no derived year.
func (s Set) Matches(a *article.Article) bool {
	if len(s.topics) > 0 && !containsInt(s.topics, a.Topic()) {
		return false
	}
	if len(s.years) > 0 {
		y := a.Year()
		if y == nil || !containsInt(s.years, *y) {
			return false
		}
	}
	if s.minWordCount != nil && a.WordCount() < *s.minWordCount {
		return false
	}
	if s.maxWordCount != nil && a.WordCount() > *s.maxWordCount {
		return false
	}
	if len(s.articleTypes) > 0 && !containsString(s.articleTypes, a.ArticleType()) {
		return false
	}
	if len(s.journals) > 0 && !containsString(s.journals, a.Journal()) {
		return false
	}
	return true
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func containsString(xs []string, v string) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
