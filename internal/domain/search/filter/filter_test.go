package filter

import (
	"errors"
	"testing"

	"github.com/spacebio/pubdex/internal/domain"
	"github.com/spacebio/pubdex/internal/domain/article"
)

func intPtr(v int) *int { return &v }

func makeArticle(t *testing.T, topic int, year *int, wordCount int, journal, articleType string) article.Article {
	t.Helper()
	return article.Reconstruct(0, "A Study", "", "", "", wordCount, topic, year, journal, articleType)
}

func TestNew_InvertedWordCountBounds(t *testing.T) {
	_, err := New(nil, nil, intPtr(500), intPtr(100), nil, nil)
	if !errors.Is(err, domain.ErrMalformedFilter) {
		t.Errorf("expected ErrMalformedFilter, got %v", err)
	}
}

func TestNew_NegativeBounds(t *testing.T) {
	if _, err := New(nil, nil, intPtr(-1), nil, nil, nil); !errors.Is(err, domain.ErrMalformedFilter) {
		t.Errorf("expected ErrMalformedFilter for negative min, got %v", err)
	}
	if _, err := New(nil, nil, nil, intPtr(-1), nil, nil); !errors.Is(err, domain.ErrMalformedFilter) {
		t.Errorf("expected ErrMalformedFilter for negative max, got %v", err)
	}
}

func TestNew_EqualBoundsAllowed(t *testing.T) {
	set, err := New(nil, nil, intPtr(100), intPtr(100), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a := makeArticle(t, 0, nil, 100, "", "")
	if !set.Matches(&a) {
		t.Error("expected article with word count on the boundary to match")
	}
}

func TestIsEmpty(t *testing.T) {
	empty, _ := New(nil, nil, nil, nil, nil, nil)
	if !empty.IsEmpty() {
		t.Error("expected empty set")
	}

	nonEmpty, _ := New([]int{1}, nil, nil, nil, nil, nil)
	if nonEmpty.IsEmpty() {
		t.Error("expected non-empty set")
	}
}

func TestMatches_EmptySetMatchesEverything(t *testing.T) {
	set, _ := New(nil, nil, nil, nil, nil, nil)
	a := makeArticle(t, article.TopicUnassigned, nil, 0, "", "")
	if !set.Matches(&a) {
		t.Error("empty filter set must match every article")
	}
}

func TestMatches_Conjunction(t *testing.T) {
	year := 2015
	set, err := New([]int{1}, []int{2015}, intPtr(50), intPtr(200), []string{"research"}, []string{"Astrobiology"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	match := makeArticle(t, 1, &year, 90, "Astrobiology", "research")
	if !set.Matches(&match) {
		t.Error("expected article satisfying every predicate to match")
	}

	wrongTopic := makeArticle(t, 2, &year, 90, "Astrobiology", "research")
	if set.Matches(&wrongTopic) {
		t.Error("expected topic mismatch to exclude the article")
	}

	tooShort := makeArticle(t, 1, &year, 10, "Astrobiology", "research")
	if set.Matches(&tooShort) {
		t.Error("expected word count below min to exclude the article")
	}
}

func TestMatches_YearPredicateExcludesUnknownYears(t *testing.T) {
	set, _ := New(nil, []int{2015}, nil, nil, nil, nil)

	a := makeArticle(t, 0, nil, 100, "", "")
	if set.Matches(&a) {
		t.Error("article with no derived year must not match a year filter")
	}
}

func TestMatches_FutureYearMatchesNothing(t *testing.T) {
	set, _ := New(nil, []int{2031}, nil, nil, nil, nil)

	year := 2015
	a := makeArticle(t, 0, &year, 100, "", "")
	if set.Matches(&a) {
		t.Error("expected out-of-corpus year filter to match nothing")
	}
}

func TestMatches_Idempotent(t *testing.T) {
	year := 2015
	set, _ := New(nil, []int{2015}, nil, nil, nil, nil)
	a := makeArticle(t, 0, &year, 100, "", "")

	first := set.Matches(&a)
	second := set.Matches(&a)
	if first != second {
		t.Error("Matches must be deterministic for the same inputs")
	}
}
