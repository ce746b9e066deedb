// Package search implements the retrieval engine: semantic and advanced
// search over the corpus, related-article lookups, suggestions, and the
// filter catalog.
//
// Every entry point degrades to an empty response when the index is not
// loaded or the vector space could not be built; callers never see an error
// for missing data.
package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/spacebio/pubdex/internal/domain/article"
	"github.com/spacebio/pubdex/internal/domain/search/request"
	"github.com/spacebio/pubdex/internal/domain/search/result"
	"github.com/spacebio/pubdex/internal/domain/search/sortkey"
	"github.com/spacebio/pubdex/internal/index"
	"github.com/spacebio/pubdex/internal/index/tfidf"
	"github.com/spacebio/pubdex/internal/logger"
	"github.com/spacebio/pubdex/internal/metrics"
)

// Response is a ranked search page.
// TotalCount is the post-filter, pre-limit candidate count on every path.
type Response struct {
	Results    []result.Result
	TotalCount int
	Query      string
	ElapsedMS  float64
	Message    string
}

// Service answers search requests against the active index snapshot.
type Service struct {
	idx        Indexer
	logger     *zap.Logger
	history    *History
	queryCache *lru.Cache[string, tfidf.Vector]
}

// New creates a search service with a default-sized history ring.
func New(idx Indexer, logger *zap.Logger) *Service {
	s := &Service{idx: idx, logger: logger, history: NewHistory(200)}
	return s
}

// WithHistory replaces the in-memory search history ring size.
func (s *Service) WithHistory(size int) *Service {
	s.history = NewHistory(size)
	return s
}

// WithQueryCache enables an LRU cache of transformed query vectors.
// Entries are keyed by index generation so a reload never serves a vector
// from a previous vocabulary.
func (s *Service) WithQueryCache(size int) *Service {
	if c, err := lru.New[string, tfidf.Vector](size); err == nil {
		s.queryCache = c
	}
	return s
}

// History exposes the in-memory search history.
func (s *Service) History() *History { return s.history }

// Semantic ranks the whole corpus by cosine similarity to the query text,
// applies the optional predicate set, and returns the top page.
func (s *Service) Semantic(ctx context.Context, req *request.Search) Response {
	start := time.Now()
	snap, err := s.idx.Snapshot()
	if err != nil {
		return s.degraded(req.Query(), "search data not loaded")
	}

	qv := s.transform(snap, req.Query())
	ranked := rankAll(qv, snap.Vectors(), req.Threshold(), -1)

	filters := req.Filters()
	results := make([]result.Result, 0, req.Limit())
	total := 0
	for _, sr := range ranked {
		a, _ := snap.Article(sr.id)
		if !filters.Matches(a) {
			continue
		}
		total++
		if len(results) < req.Limit() {
			terms := matchedTerms(req.Query(), a.Title())
			results = append(results, result.New(*a, roundScore(sr.score), terms))
		}
	}

	return s.finish(ctx, "semantic", req.Query(), results, total, start)
}

// Advanced runs substring matching plus predicate filtering, then orders the
// surviving rows by the requested sort key.
func (s *Service) Advanced(ctx context.Context, req *request.Search) Response {
	start := time.Now()
	snap, err := s.idx.Snapshot()
	if err != nil {
		return s.degraded(req.Query(), "search data not loaded")
	}

	query := strings.ToLower(req.Query())
	filters := req.Filters()

	var rows []int
	for id := 0; id < snap.Len(); id++ {
		a, _ := snap.Article(id)
		if query != "" &&
			!strings.Contains(strings.ToLower(a.Title()), query) &&
			!strings.Contains(strings.ToLower(a.CleanText()), query) {
			continue
		}
		if !filters.Matches(a) {
			continue
		}
		rows = append(rows, id)
	}

	var scores map[int]float64
	if req.SortBy() == sortkey.Relevance && req.Query() != "" {
		qv := s.transform(snap, req.Query())
		scores = make(map[int]float64, len(rows))
		for _, id := range rows {
			scores[id] = tfidf.Cosine(qv, snap.Vector(id))
		}
	}
	orderRows(snap, rows, req.SortBy(), scores)

	total := len(rows)
	if len(rows) > req.Limit() {
		rows = rows[:req.Limit()]
	}

	results := make([]result.Result, 0, len(rows))
	for _, id := range rows {
		a, _ := snap.Article(id)
		if scores != nil {
			terms := matchedTerms(req.Query(), a.Title())
			results = append(results, result.New(*a, roundScore(scores[id]), terms))
		} else {
			results = append(results, result.NewUnscored(*a))
		}
	}

	return s.finish(ctx, "advanced", req.Query(), results, total, start)
}

// Similar finds articles related to the reference row by vector proximity.
// The reference row is always excluded from its own results. An out-of-range
// id or a missing index yields an empty list, not an error.
func (s *Service) Similar(ctx context.Context, req *request.Similar) []result.Result {
	start := time.Now()
	snap, err := s.idx.Snapshot()
	if err != nil {
		return nil
	}
	ref, ok := snap.Article(req.ArticleID())
	if !ok {
		s.logger.Debug("similar lookup for unknown article",
			zap.Int("article_id", req.ArticleID()),
			zap.Int("corpus_size", snap.Len()),
		)
		return nil
	}

	ranked := rankAll(snap.Vector(req.ArticleID()), snap.Vectors(), req.Threshold(), req.ArticleID())
	if len(ranked) > req.Limit() {
		ranked = ranked[:req.Limit()]
	}

	results := make([]result.Result, 0, len(ranked))
	for _, sr := range ranked {
		a, _ := snap.Article(sr.id)
		terms := matchedTerms(ref.Title(), a.Title())
		results = append(results, result.New(*a, roundScore(sr.score), terms))
	}

	metrics.ObserveSearch("similar", time.Since(start).Seconds())
	return results
}

// transform maps query text into the snapshot's vector space, through the
// LRU cache when one is configured.
func (s *Service) transform(snap *index.Snapshot, query string) tfidf.Vector {
	if s.queryCache == nil {
		return snap.Model().Transform(query)
	}
	key := fmt.Sprintf("%d:%s", snap.Generation(), query)
	if v, ok := s.queryCache.Get(key); ok {
		return v
	}
	v := snap.Model().Transform(query)
	s.queryCache.Add(key, v)
	return v
}

// orderRows reorders row ids in place by the sort key. Ties and the
// relevance-without-query case preserve the incoming (ordinal) order.
func orderRows(snap *index.Snapshot, rows []int, key sortkey.Key, scores map[int]float64) {
	switch key {
	case sortkey.Date:
		sort.SliceStable(rows, func(i, j int) bool {
			a, _ := snap.Article(rows[i])
			b, _ := snap.Article(rows[j])
			return yearDesc(a.Year(), b.Year())
		})
	case sortkey.WordCount:
		sort.SliceStable(rows, func(i, j int) bool {
			a, _ := snap.Article(rows[i])
			b, _ := snap.Article(rows[j])
			return a.WordCount() > b.WordCount()
		})
	case sortkey.Topic:
		sort.SliceStable(rows, func(i, j int) bool {
			a, _ := snap.Article(rows[i])
			b, _ := snap.Article(rows[j])
			return topicAsc(a.Topic(), b.Topic())
		})
	case sortkey.Relevance:
		if scores != nil {
			sort.SliceStable(rows, func(i, j int) bool {
				return scores[rows[i]] > scores[rows[j]]
			})
		}
	}
}

// yearDesc orders years descending with unknown years last.
func yearDesc(a, b *int) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return *a > *b
}

// topicAsc orders topic ids ascending with unassigned topics last.
func topicAsc(a, b int) bool {
	if a == article.TopicUnassigned {
		return false
	}
	if b == article.TopicUnassigned {
		return true
	}
	return a < b
}

func (s *Service) degraded(query, message string) Response {
	return Response{Results: []result.Result{}, Query: query, Message: message}
}

func (s *Service) finish(
	ctx context.Context, path, query string,
	results []result.Result, total int, start time.Time,
) Response {
	elapsed := time.Since(start)
	metrics.ObserveSearch(path, elapsed.Seconds())
	elapsedMS := roundScore(float64(elapsed.Microseconds()) / 1000)
	if query != "" {
		s.history.Record(query, total, elapsedMS)
	}
	logger.FromContext(ctx).Debug("search completed",
		zap.String("path", path),
		zap.Int("total", total),
		zap.Float64("elapsed_ms", elapsedMS),
	)
	return Response{
		Results:    results,
		TotalCount: total,
		Query:      query,
		ElapsedMS:  elapsedMS,
	}
}
