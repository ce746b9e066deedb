package search

import (
	"context"
	"strings"
)

// Suggestion limits.
const (
	MinSuggestionQuery   = 2
	DefaultSuggestions   = 10
	MaxSuggestions       = 20
	suggestionWindowSize = 2 // words of context on each side of the match
)

// Suggestions holds autocomplete snippets for a partial query.
type Suggestions struct {
	Suggestions []string
	Query       string
}

// Suggest returns short context windows from corpus titles containing the
// partial query as a case-insensitive substring. Queries shorter than
// MinSuggestionQuery characters yield an empty list unconditionally.
func (s *Service) Suggest(ctx context.Context, query string, limit int) Suggestions {
	out := Suggestions{Suggestions: []string{}, Query: query}
	if len(query) < MinSuggestionQuery {
		return out
	}
	if limit <= 0 {
		limit = DefaultSuggestions
	}
	if limit > MaxSuggestions {
		limit = MaxSuggestions
	}

	snap, err := s.idx.Snapshot()
	if err != nil {
		return out
	}

	lower := strings.ToLower(query)
	seen := make(map[string]struct{})
	for i := range snap.Articles() {
		a, _ := snap.Article(i)
		title := a.Title()
		if !strings.Contains(strings.ToLower(title), lower) {
			continue
		}
		snippet, ok := contextWindow(title, lower)
		if !ok {
			continue
		}
		if _, dup := seen[snippet]; dup {
			continue
		}
		seen[snippet] = struct{}{}
		out.Suggestions = append(out.Suggestions, snippet)
		if len(out.Suggestions) == limit {
			break
		}
	}
	return out
}

// contextWindow returns the matched word plus up to suggestionWindowSize
// neighboring words on each side, for the first title word containing the
// lowercase query.
func contextWindow(title, lowerQuery string) (string, bool) {
	words := strings.Fields(title)
	for i, w := range words {
		if !strings.Contains(strings.ToLower(w), lowerQuery) {
			continue
		}
		start := i - suggestionWindowSize
		if start < 0 {
			start = 0
		}
		end := i + suggestionWindowSize + 1
		if end > len(words) {
			end = len(words)
		}
		return strings.Join(words[start:end], " "), true
	}
	return "", false
}
