package search

import (
	"testing"

	"github.com/spacebio/pubdex/internal/index/tfidf"
)

func TestRankAll_DescendingWithThreshold(t *testing.T) {
	qv := tfidf.Vector{{Term: 0, Weight: 1}}
	vectors := []tfidf.Vector{
		{{Term: 1, Weight: 1}},                       // orthogonal, score 0
		{{Term: 0, Weight: 1}},                       // identical, score 1
		{{Term: 0, Weight: 0.6}, {Term: 1, Weight: 0.8}}, // partial overlap
	}

	ranked := rankAll(qv, vectors, 0.5, -1)

	if len(ranked) != 2 {
		t.Fatalf("expected 2 rows above threshold, got %d", len(ranked))
	}
	if ranked[0].id != 1 || ranked[1].id != 2 {
		t.Errorf("expected order [1 2], got [%d %d]", ranked[0].id, ranked[1].id)
	}
}

func TestRankAll_Exclude(t *testing.T) {
	qv := tfidf.Vector{{Term: 0, Weight: 1}}
	vectors := []tfidf.Vector{
		{{Term: 0, Weight: 1}},
		{{Term: 0, Weight: 1}},
	}

	ranked := rankAll(qv, vectors, 0, 0)

	if len(ranked) != 1 {
		t.Fatalf("expected 1 row after exclusion, got %d", len(ranked))
	}
	if ranked[0].id != 1 {
		t.Errorf("expected row 1, got %d", ranked[0].id)
	}
}

func TestRankAll_TiesKeepRowOrder(t *testing.T) {
	qv := tfidf.Vector{{Term: 0, Weight: 1}}
	vectors := []tfidf.Vector{
		{{Term: 0, Weight: 1}},
		{{Term: 0, Weight: 1}},
		{{Term: 0, Weight: 1}},
	}

	ranked := rankAll(qv, vectors, 0, -1)

	for i, sr := range ranked {
		if sr.id != i {
			t.Errorf("expected stable ordinal order at %d, got %d", i, sr.id)
		}
	}
}

func TestMatchedTerms(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		candidate string
		want      []string
	}{
		{
			name:      "shared non-stopword terms in query order",
			query:     "bone density in microgravity",
			candidate: "Microgravity Effects on Bone Loss",
			want:      []string{"bone", "microgravity"},
		},
		{
			name:      "short and stopword tokens skipped",
			query:     "on of mg bone",
			candidate: "bone mg on",
			want:      []string{"bone"},
		},
		{
			name:      "duplicates collapse",
			query:     "bone bone bone",
			candidate: "bone",
			want:      []string{"bone"},
		},
		{
			name:      "no overlap",
			query:     "plant",
			candidate: "bone density",
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchedTerms(tt.query, tt.candidate)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("term %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestMatchedTerms_Cap(t *testing.T) {
	query := "alpha beta gamma delta epsilon zeta eta"
	got := matchedTerms(query, query)
	if len(got) != 5 {
		t.Errorf("expected matched terms capped at 5, got %d", len(got))
	}
}

func TestRoundScore(t *testing.T) {
	if got := roundScore(0.12345); got != 0.123 {
		t.Errorf("expected 0.123, got %v", got)
	}
	if got := roundScore(0.9996); got != 1.0 {
		t.Errorf("expected 1.0, got %v", got)
	}
}
