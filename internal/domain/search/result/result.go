// Package result defines the scored search hit.
package result

import "github.com/spacebio/pubdex/internal/domain/article"

// MaxMatchedTerms caps the matched-term explanation per result.
const MaxMatchedTerms = 5

// Result is a single search hit: a corpus row with an optional similarity
// score and matched-term explanation. Results are transient and never
// persisted.
type Result struct {
	article      article.Article
	score        float64
	scored       bool
	matchedTerms []string
}

// New creates a scored result.
func New(a article.Article, score float64, matchedTerms []string) Result {
	if len(matchedTerms) > MaxMatchedTerms {
		matchedTerms = matchedTerms[:MaxMatchedTerms]
	}
	return Result{article: a, score: score, scored: true, matchedTerms: matchedTerms}
}

// NewUnscored creates a result without a similarity score (filter-only paths).
func NewUnscored(a article.Article) Result {
	return Result{article: a}
}

// Article returns the matched corpus row.
func (r *Result) Article() *article.Article { return &r.article }

// Score returns the cosine similarity in [0,1].
func (r *Result) Score() float64 { return r.score }

// Scored reports whether the result carries a similarity score.
func (r *Result) Scored() bool { return r.scored }

// MatchedTerms returns up to MaxMatchedTerms shared non-stopword terms.
func (r *Result) MatchedTerms() []string { return r.matchedTerms }
