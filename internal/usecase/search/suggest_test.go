package search

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestSuggest_ContextWindows(t *testing.T) {
	svc := newTestService(t)

	out := svc.Suggest(context.Background(), "bone", 10)

	if len(out.Suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %v", out.Suggestions)
	}
	// Row 0: "Microgravity Effects on Bone Loss" -> two words either side.
	if out.Suggestions[0] != "Effects on Bone Loss" {
		t.Errorf("unexpected first suggestion %q", out.Suggestions[0])
	}
	// Row 2: match at the start of the title, window truncated left.
	if out.Suggestions[1] != "Bone Density Study" {
		t.Errorf("unexpected second suggestion %q", out.Suggestions[1])
	}
	if out.Query != "bone" {
		t.Errorf("expected query echoed back, got %q", out.Query)
	}
}

func TestSuggest_CaseInsensitive(t *testing.T) {
	svc := newTestService(t)

	out := svc.Suggest(context.Background(), "BONE", 10)
	if len(out.Suggestions) != 2 {
		t.Errorf("expected case-insensitive matching, got %v", out.Suggestions)
	}
}

func TestSuggest_ShortQuery(t *testing.T) {
	svc := newTestService(t)

	out := svc.Suggest(context.Background(), "b", 10)
	if len(out.Suggestions) != 0 {
		t.Errorf("expected empty list for a 1-char query, got %v", out.Suggestions)
	}
	if out.Suggestions == nil {
		t.Error("expected empty slice, not nil")
	}
}

func TestSuggest_LimitRespected(t *testing.T) {
	svc := newTestService(t)

	out := svc.Suggest(context.Background(), "bone", 1)
	if len(out.Suggestions) != 1 {
		t.Errorf("expected 1 suggestion at limit 1, got %d", len(out.Suggestions))
	}
}

func TestSuggest_NoMatches(t *testing.T) {
	svc := newTestService(t)

	out := svc.Suggest(context.Background(), "zygote", 10)
	if len(out.Suggestions) != 0 {
		t.Errorf("expected no suggestions, got %v", out.Suggestions)
	}
}

func TestSuggest_Degraded(t *testing.T) {
	svc := New(failingIndexer{}, zap.NewNop())

	out := svc.Suggest(context.Background(), "bone", 10)
	if len(out.Suggestions) != 0 {
		t.Errorf("expected empty suggestions when the index is missing, got %v", out.Suggestions)
	}
}

func TestContextWindow(t *testing.T) {
	tests := []struct {
		name  string
		title string
		query string
		want  string
		ok    bool
	}{
		{"middle of title", "Effects of Microgravity on Mice", "microgravity", "Effects of Microgravity on Mice", true},
		{"start of title", "Microgravity and Bone", "microgravity", "Microgravity and Bone", true},
		{"end of title", "A Long Study of Deep Space Microgravity", "microgravity", "Deep Space Microgravity", true},
		{"no match", "Plant Growth", "bone", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := contextWindow(tt.title, tt.query)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
