// Package tfidf builds a bounded-vocabulary TF-IDF vector space over a
// document corpus and transforms query text into the same space.
//
// Vocabulary candidates are unigrams and bigrams of lowercase alphabetic
// tokens with English stop words removed. A term must appear in at least
// MinDocFreq documents and in at most MaxDocRatio of all documents; the
// surviving terms are capped at MaxFeatures by descending corpus frequency.
// Weights are smoothed TF-IDF, L2-normalized, so cosine similarity of two
// stored vectors is their dot product.
package tfidf

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/spacebio/pubdex/internal/domain"
)

// Config bounds vocabulary construction.
type Config struct {
	MaxFeatures int
	MinDocFreq  int
	MaxDocRatio float64
}

// DefaultConfig returns the standard vocabulary bounds.
func DefaultConfig() Config {
	return Config{
		MaxFeatures: 1000,
		MinDocFreq:  2,
		MaxDocRatio: 0.8,
	}
}

// Model is a fixed vocabulary and per-term inverse document frequencies.
// A Model is immutable after Build and safe for concurrent use.
type Model struct {
	vocab map[string]int
	terms []string
	idf   []float64
	docs  int
}

var tokenRegex = regexp.MustCompile(`[a-z]{2,}`)

// Tokenize lowercases text and returns alphabetic tokens of length >= 2.
// Stop words are kept; callers that need them removed filter with IsStopWord.
func Tokenize(text string) []string {
	return tokenRegex.FindAllString(strings.ToLower(text), -1)
}

// ngrams returns the unigrams and bigrams of the non-stopword tokens of text.
// Bigrams join adjacent surviving tokens with a single space, mirroring
// stop-word removal happening before n-gram generation.
func ngrams(text string) []string {
	tokens := Tokenize(text)
	kept := tokens[:0]
	for _, t := range tokens {
		if !IsStopWord(t) {
			kept = append(kept, t)
		}
	}
	out := make([]string, 0, len(kept)*2)
	for i, t := range kept {
		out = append(out, t)
		if i+1 < len(kept) {
			out = append(out, t+" "+kept[i+1])
		}
	}
	return out
}

// Build constructs the vector space over docs and returns the model together
// with one normalized row vector per document, in input order.
// An empty corpus or an empty resulting vocabulary fails with
// domain.ErrVectorizationUnavailable.
func Build(docs []string, cfg Config) (*Model, []Vector, error) {
	if cfg.MaxFeatures <= 0 {
		cfg = DefaultConfig()
	}
	if len(docs) == 0 {
		return nil, nil, fmt.Errorf("%w: empty corpus", domain.ErrVectorizationUnavailable)
	}

	docTerms := make([][]string, len(docs))
	docFreq := make(map[string]int)
	corpusFreq := make(map[string]int)
	for i, doc := range docs {
		terms := ngrams(doc)
		docTerms[i] = terms
		seen := make(map[string]struct{}, len(terms))
		for _, t := range terms {
			corpusFreq[t]++
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				docFreq[t]++
			}
		}
	}

	maxDocs := cfg.MaxDocRatio * float64(len(docs))
	candidates := make([]string, 0, len(docFreq))
	for term, df := range docFreq {
		if df < cfg.MinDocFreq || float64(df) > maxDocs {
			continue
		}
		candidates = append(candidates, term)
	}
	if len(candidates) == 0 {
		return nil, nil, fmt.Errorf("%w: empty vocabulary", domain.ErrVectorizationUnavailable)
	}

	// Cap by descending corpus frequency, ties broken alphabetically.
	if len(candidates) > cfg.MaxFeatures {
		sort.Slice(candidates, func(i, j int) bool {
			fi, fj := corpusFreq[candidates[i]], corpusFreq[candidates[j]]
			if fi != fj {
				return fi > fj
			}
			return candidates[i] < candidates[j]
		})
		candidates = candidates[:cfg.MaxFeatures]
	}
	sort.Strings(candidates)

	m := &Model{
		vocab: make(map[string]int, len(candidates)),
		terms: candidates,
		idf:   make([]float64, len(candidates)),
		docs:  len(docs),
	}
	for i, term := range candidates {
		m.vocab[term] = i
		m.idf[i] = math.Log(float64(1+len(docs))/float64(1+docFreq[term])) + 1
	}

	rows := make([]Vector, len(docs))
	for i, terms := range docTerms {
		rows[i] = m.vectorize(terms)
	}
	return m, rows, nil
}

// Transform maps query text into the model's vector space.
// Out-of-vocabulary terms are dropped; the result may be the zero vector.
func (m *Model) Transform(text string) Vector {
	return m.vectorize(ngrams(text))
}

// Dim returns the dimensionality of the vector space.
func (m *Model) Dim() int { return len(m.terms) }

// Term returns the vocabulary term at column i.
func (m *Model) Term(i int) string { return m.terms[i] }

func (m *Model) vectorize(terms []string) Vector {
	counts := make(map[int]int)
	for _, t := range terms {
		if col, ok := m.vocab[t]; ok {
			counts[col]++
		}
	}
	v := make(Vector, 0, len(counts))
	for col, n := range counts {
		v = append(v, Entry{Term: col, Weight: float64(n) * m.idf[col]})
	}
	sort.Slice(v, func(i, j int) bool { return v[i].Term < v[j].Term })
	return normalize(v)
}
