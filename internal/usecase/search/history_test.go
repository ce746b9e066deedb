package search

import "testing"

func TestHistory_RecordAndRecent(t *testing.T) {
	h := NewHistory(10)
	h.Record("bone", 5, 1.2)
	h.Record("plant", 2, 0.8)

	recent := h.Recent(10)
	if len(recent) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(recent))
	}
	if recent[0].Query != "plant" {
		t.Errorf("expected newest entry first, got %q", recent[0].Query)
	}
	if recent[1].Query != "bone" {
		t.Errorf("expected oldest entry last, got %q", recent[1].Query)
	}
	if recent[0].ResultCount != 2 {
		t.Errorf("expected result count 2, got %d", recent[0].ResultCount)
	}
}

func TestHistory_RecentLimit(t *testing.T) {
	h := NewHistory(10)
	for i := 0; i < 5; i++ {
		h.Record("q", 1, 1)
	}

	if got := len(h.Recent(3)); got != 3 {
		t.Errorf("expected 3 entries, got %d", got)
	}
	if got := len(h.Recent(0)); got != 5 {
		t.Errorf("expected all entries for limit 0, got %d", got)
	}
}

func TestHistory_BoundedRing(t *testing.T) {
	h := NewHistory(3)
	h.Record("one", 1, 1)
	h.Record("two", 1, 1)
	h.Record("three", 1, 1)
	h.Record("four", 1, 1)

	recent := h.Recent(10)
	if len(recent) != 3 {
		t.Fatalf("expected ring capped at 3, got %d", len(recent))
	}
	for _, e := range recent {
		if e.Query == "one" {
			t.Error("oldest entry must be evicted")
		}
	}
}

func TestAggregate_Empty(t *testing.T) {
	h := NewHistory(10)

	a := h.Aggregate()
	if a.TotalSearches != 0 || a.UniqueQueries != 0 {
		t.Errorf("expected zeroed analytics, got %+v", a)
	}
	if a.PopularQueries == nil {
		t.Error("expected empty slice, not nil")
	}
}

func TestAggregate_PopularQueries(t *testing.T) {
	h := NewHistory(20)
	h.Record("bone", 4, 2.0)
	h.Record("bone", 6, 4.0)
	h.Record("plant", 2, 3.0)

	a := h.Aggregate()
	if a.TotalSearches != 3 {
		t.Errorf("expected 3 searches, got %d", a.TotalSearches)
	}
	if a.UniqueQueries != 2 {
		t.Errorf("expected 2 unique queries, got %d", a.UniqueQueries)
	}
	if a.AverageResults != 4.0 {
		t.Errorf("expected average results 4.0, got %v", a.AverageResults)
	}
	if a.AverageResponseMS != 3.0 {
		t.Errorf("expected average response 3.0, got %v", a.AverageResponseMS)
	}

	if len(a.PopularQueries) != 2 {
		t.Fatalf("expected 2 popular queries, got %v", a.PopularQueries)
	}
	if a.PopularQueries[0].Query != "bone" || a.PopularQueries[0].Count != 2 {
		t.Errorf("expected 'bone' with count 2 first, got %+v", a.PopularQueries[0])
	}
}

func TestAggregate_PopularCappedAtFive(t *testing.T) {
	h := NewHistory(20)
	for _, q := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		h.Record(q, 1, 1)
	}

	a := h.Aggregate()
	if len(a.PopularQueries) != 5 {
		t.Errorf("expected popular queries capped at 5, got %d", len(a.PopularQueries))
	}
}

func TestNewHistory_DefaultSize(t *testing.T) {
	h := NewHistory(0)
	if h.max != 200 {
		t.Errorf("expected default capacity 200, got %d", h.max)
	}
}
