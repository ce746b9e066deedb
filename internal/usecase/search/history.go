package search

import (
	"sort"
	"sync"
	"time"
)

// History is a bounded in-memory ring of recent searches. Nothing here is
// persisted; analytics live only for the process lifetime.
type History struct {
	mu      sync.Mutex
	max     int
	entries []HistoryEntry
}

// HistoryEntry is one recorded search.
type HistoryEntry struct {
	Query       string
	ResultCount int
	ElapsedMS   float64
	Timestamp   time.Time
}

// QueryCount is one popular-query entry.
type QueryCount struct {
	Query string
	Count int
}

// Analytics aggregates the recorded searches.
type Analytics struct {
	TotalSearches     int
	UniqueQueries     int
	AverageResults    float64
	AverageResponseMS float64
	PopularQueries    []QueryCount
}

// NewHistory creates a history ring holding up to max entries.
func NewHistory(max int) *History {
	if max <= 0 {
		max = 200
	}
	return &History{max: max}
}

// Record appends a search; the oldest entry is dropped once the ring is full.
func (h *History) Record(query string, resultCount int, elapsedMS float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, HistoryEntry{
		Query:       query,
		ResultCount: resultCount,
		ElapsedMS:   elapsedMS,
		Timestamp:   time.Now().UTC(),
	})
	if len(h.entries) > h.max {
		h.entries = h.entries[len(h.entries)-h.max:]
	}
}

// Recent returns up to limit entries, newest first.
func (h *History) Recent(limit int) []HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()
	if limit <= 0 || limit > len(h.entries) {
		limit = len(h.entries)
	}
	out := make([]HistoryEntry, 0, limit)
	for i := len(h.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, h.entries[i])
	}
	return out
}

// Aggregate computes analytics over the recorded window.
func (h *History) Aggregate() Analytics {
	h.mu.Lock()
	defer h.mu.Unlock()

	a := Analytics{
		TotalSearches:  len(h.entries),
		PopularQueries: []QueryCount{},
	}
	if len(h.entries) == 0 {
		return a
	}

	counts := make(map[string]int)
	var results, elapsed float64
	for _, e := range h.entries {
		counts[e.Query]++
		results += float64(e.ResultCount)
		elapsed += e.ElapsedMS
	}
	a.UniqueQueries = len(counts)
	a.AverageResults = roundScore(results / float64(len(h.entries)))
	a.AverageResponseMS = roundScore(elapsed / float64(len(h.entries)))

	for q, n := range counts {
		a.PopularQueries = append(a.PopularQueries, QueryCount{Query: q, Count: n})
	}
	sort.Slice(a.PopularQueries, func(i, j int) bool {
		if a.PopularQueries[i].Count != a.PopularQueries[j].Count {
			return a.PopularQueries[i].Count > a.PopularQueries[j].Count
		}
		return a.PopularQueries[i].Query < a.PopularQueries[j].Query
	})
	if len(a.PopularQueries) > 5 {
		a.PopularQueries = a.PopularQueries[:5]
	}
	return a
}
