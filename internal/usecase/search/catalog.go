package search

import (
	"context"
	"sort"
	"strconv"

	"github.com/spacebio/pubdex/internal/domain/article"
	"github.com/spacebio/pubdex/internal/index/tfidf"
)

// TopicCount is one topic facet entry.
type TopicCount struct {
	ID    int
	Name  string
	Count int
}

// YearCount is one year facet entry.
type YearCount struct {
	Year  int
	Count int
}

// JournalCount is one journal facet entry.
type JournalCount struct {
	Name  string
	Count int
}

// KeywordCount is one trending-keyword entry.
type KeywordCount struct {
	Keyword string
	Count   int
}

// FilterCatalog enumerates the facet values available for filtering,
// with per-value article counts for the filter UI.
type FilterCatalog struct {
	Topics   []TopicCount
	Years    []YearCount
	Journals []JournalCount
}

// Trending lists the most populous topics and the most frequent title
// keywords across the corpus.
type Trending struct {
	Topics   []TopicCount
	Keywords []KeywordCount
}

// AvailableFilters builds the filter catalog from the active snapshot.
// The unassigned-topic sentinel is skipped; years are ascending, topics and
// journals descending by count.
func (s *Service) AvailableFilters(ctx context.Context) FilterCatalog {
	catalog := FilterCatalog{
		Topics:   []TopicCount{},
		Years:    []YearCount{},
		Journals: []JournalCount{},
	}
	snap, err := s.idx.Snapshot()
	if err != nil {
		return catalog
	}

	topicCounts := make(map[int]int)
	yearCounts := make(map[int]int)
	journalCounts := make(map[string]int)
	for i := range snap.Articles() {
		a, _ := snap.Article(i)
		if a.Topic() != article.TopicUnassigned {
			topicCounts[a.Topic()]++
		}
		if y := a.Year(); y != nil {
			yearCounts[*y]++
		}
		if a.Journal() != "" {
			journalCounts[a.Journal()]++
		}
	}

	catalog.Topics = topicFacets(topicCounts, 0)
	for y, n := range yearCounts {
		catalog.Years = append(catalog.Years, YearCount{Year: y, Count: n})
	}
	sort.Slice(catalog.Years, func(i, j int) bool {
		return catalog.Years[i].Year < catalog.Years[j].Year
	})
	for name, n := range journalCounts {
		catalog.Journals = append(catalog.Journals, JournalCount{Name: name, Count: n})
	}
	sort.Slice(catalog.Journals, func(i, j int) bool {
		if catalog.Journals[i].Count != catalog.Journals[j].Count {
			return catalog.Journals[i].Count > catalog.Journals[j].Count
		}
		return catalog.Journals[i].Name < catalog.Journals[j].Name
	})
	return catalog
}

// TrendingTopics returns the top topics by article count and the top title
// keywords (alphabetic, length >= 4, non-stopword) by frequency.
func (s *Service) TrendingTopics(ctx context.Context, limit int) Trending {
	trending := Trending{Topics: []TopicCount{}, Keywords: []KeywordCount{}}
	if limit <= 0 {
		limit = 10
	}
	snap, err := s.idx.Snapshot()
	if err != nil {
		return trending
	}

	topicCounts := make(map[int]int)
	keywordCounts := make(map[string]int)
	for i := range snap.Articles() {
		a, _ := snap.Article(i)
		if a.Topic() != article.TopicUnassigned {
			topicCounts[a.Topic()]++
		}
		for _, t := range tfidf.Tokenize(a.Title()) {
			if len(t) >= 4 && !tfidf.IsStopWord(t) {
				keywordCounts[t]++
			}
		}
	}

	trending.Topics = topicFacets(topicCounts, limit)
	for kw, n := range keywordCounts {
		trending.Keywords = append(trending.Keywords, KeywordCount{Keyword: kw, Count: n})
	}
	sort.Slice(trending.Keywords, func(i, j int) bool {
		if trending.Keywords[i].Count != trending.Keywords[j].Count {
			return trending.Keywords[i].Count > trending.Keywords[j].Count
		}
		return trending.Keywords[i].Keyword < trending.Keywords[j].Keyword
	})
	if len(trending.Keywords) > limit {
		trending.Keywords = trending.Keywords[:limit]
	}
	return trending
}

// topicFacets orders topic counts descending (ties by id) and optionally caps
// the list. limit <= 0 keeps every topic.
func topicFacets(counts map[int]int, limit int) []TopicCount {
	facets := make([]TopicCount, 0, len(counts))
	for id, n := range counts {
		facets = append(facets, TopicCount{ID: id, Name: topicName(id), Count: n})
	}
	sort.Slice(facets, func(i, j int) bool {
		if facets[i].Count != facets[j].Count {
			return facets[i].Count > facets[j].Count
		}
		return facets[i].ID < facets[j].ID
	})
	if limit > 0 && len(facets) > limit {
		facets = facets[:limit]
	}
	return facets
}

func topicName(id int) string {
	return "Topic " + strconv.Itoa(id)
}
