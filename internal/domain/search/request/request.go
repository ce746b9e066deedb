// Package request defines validated search parameter objects.
package request

import (
	"fmt"

	"github.com/spacebio/pubdex/internal/domain"
	"github.com/spacebio/pubdex/internal/domain/search/filter"
	"github.com/spacebio/pubdex/internal/domain/search/sortkey"
)

// Search parameter limits.
const (
	MaxQueryLength = 1024

	DefaultLimit = 20
	MaxLimit     = 100

	DefaultSimilarLimit = 5
	MaxSimilarLimit     = 20

	// DefaultSimilarThreshold is the minimum score for related-article lookups.
	DefaultSimilarThreshold = 0.7
)

// Search is a validated semantic or advanced search query.
type Search struct {
	query     string
	filters   filter.Set
	sortBy    sortkey.Key
	limit     int
	threshold float64
}

// NewSearch validates and normalizes search parameters.
// Defaults: sort_by=relevance, limit=20, threshold=0. Limit is clamped to MaxLimit.
func NewSearch(
	query string,
	filters filter.Set,
	sortBy sortkey.Key,
	limit int,
	threshold float64,
) (Search, error) {
	if len(query) > MaxQueryLength {
		return Search{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	if sortBy == "" {
		sortBy = sortkey.Relevance
	}
	if !sortBy.IsValid() {
		return Search{}, fmt.Errorf("invalid sort key: %q", sortBy)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if threshold < 0 || threshold > 1 {
		return Search{}, fmt.Errorf("similarity_threshold must be between 0 and 1")
	}
	return Search{
		query:     query,
		filters:   filters,
		sortBy:    sortBy,
		limit:     limit,
		threshold: threshold,
	}, nil
}

// Query returns the free-text query, possibly empty for filter-only searches.
func (s *Search) Query() string { return s.query }

// Filters returns the predicate set.
func (s *Search) Filters() filter.Set { return s.filters }

// SortBy returns the requested ordering.
func (s *Search) SortBy() sortkey.Key { return s.sortBy }

// Limit returns the maximum results to return.
func (s *Search) Limit() int { return s.limit }

// Threshold returns the minimum similarity score.
func (s *Search) Threshold() float64 { return s.threshold }

// Similar is a validated related-articles lookup.
type Similar struct {
	articleID int
	limit     int
	threshold float64
}

// NewSimilar validates a similarity-to-article request.
// The article id is range-checked downstream against the loaded corpus;
// negative ids are rejected here.
func NewSimilar(articleID, limit int, threshold float64) (Similar, error) {
	if articleID < 0 {
		return Similar{}, fmt.Errorf("%w: article id must be non-negative, got %d",
			domain.ErrInvalidReference, articleID)
	}
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}
	if limit > MaxSimilarLimit {
		limit = MaxSimilarLimit
	}
	if threshold < 0 || threshold > 1 {
		return Similar{}, fmt.Errorf("threshold must be between 0 and 1")
	}
	return Similar{articleID: articleID, limit: limit, threshold: threshold}, nil
}

// ArticleID returns the reference row ordinal.
func (s *Similar) ArticleID() int { return s.articleID }

// Limit returns the maximum results to return.
func (s *Similar) Limit() int { return s.limit }

// Threshold returns the minimum similarity score.
func (s *Similar) Threshold() float64 { return s.threshold }
