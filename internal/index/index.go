// Package index owns the in-memory search index: the loaded corpus table and
// the TF-IDF vector space built over it.
//
// Both live in a single immutable Snapshot behind an atomic pointer, so a
// reload can never expose a table whose row count disagrees with the vector
// space, and concurrent readers need no locking.
package index

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/spacebio/pubdex/internal/domain"
	"github.com/spacebio/pubdex/internal/domain/article"
	"github.com/spacebio/pubdex/internal/index/tfidf"
	"github.com/spacebio/pubdex/internal/metrics"
	"github.com/spacebio/pubdex/internal/repository/corpus"
)

// Snapshot is one consistent build of the index. Row ordinal i owns vector i.
type Snapshot struct {
	articles   []article.Article
	model      *tfidf.Model
	vectors    []tfidf.Vector
	generation uint64
}

// Len returns the corpus size.
func (s *Snapshot) Len() int { return len(s.articles) }

// Articles returns the corpus rows in ordinal order. Callers must not mutate.
func (s *Snapshot) Articles() []article.Article { return s.articles }

// Article returns the row with the given ordinal id.
func (s *Snapshot) Article(id int) (*article.Article, bool) {
	if id < 0 || id >= len(s.articles) {
		return nil, false
	}
	return &s.articles[id], true
}

// Model returns the shared vector space.
func (s *Snapshot) Model() *tfidf.Model { return s.model }

// Vector returns the precomputed row vector for ordinal id.
func (s *Snapshot) Vector(id int) tfidf.Vector { return s.vectors[id] }

// Vectors returns all row vectors in ordinal order.
func (s *Snapshot) Vectors() []tfidf.Vector { return s.vectors }

// Generation identifies this build; it changes on every reload.
func (s *Snapshot) Generation() uint64 { return s.generation }

// Index loads and atomically swaps Snapshots.
type Index struct {
	path   string
	cfg    tfidf.Config
	logger *zap.Logger
	snap   atomic.Pointer[Snapshot]
	gen    atomic.Uint64
}

// New creates an Index over the corpus CSV at path. Call Load to build it.
func New(path string, cfg tfidf.Config, logger *zap.Logger) *Index {
	return &Index{path: path, cfg: cfg, logger: logger}
}

// Load builds a complete new snapshot and swaps it in. On failure the
// previous snapshot (if any) stays active.
func (i *Index) Load() error {
	articles, err := corpus.Load(i.path)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}

	texts := make([]string, len(articles))
	for j := range articles {
		texts[j] = articles[j].CleanText()
	}

	model, vectors, err := tfidf.Build(texts, i.cfg)
	if err != nil {
		return fmt.Errorf("build vector space: %w", err)
	}

	snap := &Snapshot{
		articles:   articles,
		model:      model,
		vectors:    vectors,
		generation: i.gen.Add(1),
	}
	i.snap.Store(snap)
	metrics.SetIndexStats(len(articles), model.Dim())

	i.logger.Info("search index built",
		zap.Int("articles", len(articles)),
		zap.Int("vocabulary", model.Dim()),
		zap.Uint64("generation", snap.generation),
	)
	return nil
}

// Snapshot returns the current build, or domain.ErrDataUnavailable when the
// index has never been loaded.
func (i *Index) Snapshot() (*Snapshot, error) {
	s := i.snap.Load()
	if s == nil {
		return nil, domain.ErrDataUnavailable
	}
	return s, nil
}

// Ready reports whether a snapshot is loaded.
func (i *Index) Ready() bool { return i.snap.Load() != nil }

// Stats returns the active snapshot's corpus and vocabulary sizes.
// ok is false when no snapshot is loaded.
func (i *Index) Stats() (articles, vocabulary int, ok bool) {
	s := i.snap.Load()
	if s == nil {
		return 0, 0, false
	}
	return len(s.articles), s.model.Dim(), true
}
