package tfidf

import (
	"errors"
	"math"
	"testing"

	"github.com/spacebio/pubdex/internal/domain"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lowercases and drops punctuation",
			text: "Bone-Loss in Microgravity!",
			want: []string{"bone", "loss", "in", "microgravity"},
		},
		{
			name: "drops single letters and digits",
			text: "a 5 mg dose of x123",
			want: []string{"mg", "dose", "of"},
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestNgrams_StopWordsRemovedBeforeBigrams(t *testing.T) {
	// "of" drops out first, so the bigram bridges the gap.
	got := ngrams("bone of mars")
	want := []string{"bone", "bone mars", "mars"}

	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("ngram %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestBuild_EmptyCorpus(t *testing.T) {
	_, _, err := Build(nil, DefaultConfig())
	if !errors.Is(err, domain.ErrVectorizationUnavailable) {
		t.Errorf("expected ErrVectorizationUnavailable, got %v", err)
	}
}

func TestBuild_EmptyVocabulary(t *testing.T) {
	// Every term appears in exactly one document; MinDocFreq 2 rejects all.
	docs := []string{"microgravity", "osteoblast", "photosynthesis"}
	_, _, err := Build(docs, Config{MaxFeatures: 100, MinDocFreq: 2, MaxDocRatio: 0.8})
	if !errors.Is(err, domain.ErrVectorizationUnavailable) {
		t.Errorf("expected ErrVectorizationUnavailable, got %v", err)
	}
}

func TestBuild_MinDocFreqFilter(t *testing.T) {
	docs := []string{
		"bone skeletal",
		"bone density",
		"plant growth",
	}
	m, _, err := Build(docs, Config{MaxFeatures: 100, MinDocFreq: 2, MaxDocRatio: 1.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.Dim() != 1 {
		t.Fatalf("expected vocabulary of 1 term, got %d", m.Dim())
	}
	if m.Term(0) != "bone" {
		t.Errorf("expected sole term 'bone', got %q", m.Term(0))
	}
}

func TestBuild_MaxDocRatioFilter(t *testing.T) {
	// "bone" appears in all 4 documents; MaxDocRatio 0.8 rejects it at df=4 > 3.2.
	docs := []string{
		"bone skeletal mass",
		"bone skeletal growth",
		"bone density mass",
		"bone density growth",
	}
	m, _, err := Build(docs, Config{MaxFeatures: 100, MinDocFreq: 2, MaxDocRatio: 0.8})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < m.Dim(); i++ {
		if m.Term(i) == "bone" {
			t.Error("expected ubiquitous term 'bone' to be excluded")
		}
	}
}

func TestBuild_MaxFeaturesCapByCorpusFrequency(t *testing.T) {
	// "alpha" occurs 4 times in the corpus, "beta" twice. With one feature
	// slot, the more frequent term wins.
	docs := []string{
		"alpha alpha beta",
		"alpha alpha beta",
	}
	m, _, err := Build(docs, Config{MaxFeatures: 1, MinDocFreq: 2, MaxDocRatio: 1.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.Dim() != 1 {
		t.Fatalf("expected 1 feature, got %d", m.Dim())
	}
	if m.Term(0) != "alpha" {
		t.Errorf("expected highest-frequency term 'alpha', got %q", m.Term(0))
	}
}

func TestBuild_VocabularySorted(t *testing.T) {
	docs := []string{
		"zebra alpha molecule",
		"zebra alpha molecule",
	}
	m, _, err := Build(docs, Config{MaxFeatures: 100, MinDocFreq: 2, MaxDocRatio: 1.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 1; i < m.Dim(); i++ {
		if m.Term(i-1) >= m.Term(i) {
			t.Errorf("vocabulary not sorted: %q before %q", m.Term(i-1), m.Term(i))
		}
	}
}

func TestBuild_SmoothedIDF(t *testing.T) {
	docs := []string{
		"bone bone",
		"bone density",
		"plant density",
	}
	m, _, err := Build(docs, Config{MaxFeatures: 100, MinDocFreq: 2, MaxDocRatio: 1.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// bone: df=2 of 3 docs -> ln(4/3)+1
	col, ok := m.vocab["bone"]
	if !ok {
		t.Fatal("expected 'bone' in vocabulary")
	}
	want := math.Log(4.0/3.0) + 1
	if math.Abs(m.idf[col]-want) > 1e-9 {
		t.Errorf("expected idf %v, got %v", want, m.idf[col])
	}
}

func TestBuild_RowVectorsNormalized(t *testing.T) {
	docs := []string{
		"bone density skeletal",
		"bone density growth",
	}
	_, rows, err := Build(docs, Config{MaxFeatures: 100, MinDocFreq: 2, MaxDocRatio: 1.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, v := range rows {
		if len(v) == 0 {
			continue
		}
		if math.Abs(Norm(v)-1.0) > 1e-9 {
			t.Errorf("row %d: expected unit norm, got %v", i, Norm(v))
		}
	}
}

func TestTransform_SelfSimilarity(t *testing.T) {
	docs := []string{
		"microgravity bone loss skeletal",
		"microgravity bone density skeletal",
		"plant growth greenhouse mars",
	}
	m, rows, err := Build(docs, Config{MaxFeatures: 100, MinDocFreq: 2, MaxDocRatio: 1.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	qv := m.Transform(docs[0])
	got := Cosine(qv, rows[0])
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("expected self-similarity 1.0, got %v", got)
	}
}

func TestTransform_OutOfVocabulary(t *testing.T) {
	docs := []string{
		"bone density",
		"bone density",
	}
	m, _, err := Build(docs, Config{MaxFeatures: 100, MinDocFreq: 2, MaxDocRatio: 1.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	qv := m.Transform("quantum chromodynamics")
	if len(qv) != 0 {
		t.Errorf("expected zero vector for out-of-vocabulary query, got %v", qv)
	}
}

func TestTransform_StopWordsIgnored(t *testing.T) {
	docs := []string{
		"bone density",
		"bone growth",
	}
	m, _, err := Build(docs, Config{MaxFeatures: 100, MinDocFreq: 2, MaxDocRatio: 1.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	plain := m.Transform("bone")
	padded := m.Transform("the bone and the")
	if Cosine(plain, padded) < 0.999 {
		t.Error("stop words must not change the transformed vector")
	}
}

func TestIsStopWord(t *testing.T) {
	for _, w := range []string{"the", "and", "of", "is"} {
		if !IsStopWord(w) {
			t.Errorf("expected %q to be a stop word", w)
		}
	}
	for _, w := range []string{"bone", "microgravity", "mars"} {
		if IsStopWord(w) {
			t.Errorf("expected %q not to be a stop word", w)
		}
	}
}
