// Package articles manages the user-submitted article catalog backed by the
// SQLite store. Submissions are independent of the read-only search corpus.
package articles

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spacebio/pubdex/internal/domain"
	repo "github.com/spacebio/pubdex/internal/repository/articles"
)

const (
	maxTitleLength = 500
	defaultType    = "research"

	// DefaultListLimit bounds unpaginated listings.
	DefaultListLimit = 50
	// MaxListLimit is the largest page a caller may request.
	MaxListLimit = 200
)

// Submission is the caller-supplied article payload.
type Submission struct {
	Title       string
	Abstract    string
	Journal     string
	ArticleType string
	DOI         string
	PMCID       string
	Year        *int
}

// Service validates and stores article submissions.
type Service struct {
	store  Store
	logger *zap.Logger
}

// New creates an article service.
func New(store Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Create validates a submission and persists it.
func (s *Service) Create(ctx context.Context, sub Submission) (repo.Record, error) {
	rec, err := recordFromSubmission(sub)
	if err != nil {
		return repo.Record{}, err
	}

	created, err := s.store.Create(ctx, rec)
	if err != nil {
		return repo.Record{}, fmt.Errorf("create submission: %w", err)
	}
	s.logger.Info("article submitted",
		zap.Int64("article_id", created.ID),
		zap.String("journal", created.Journal),
	)
	return created, nil
}

// Get returns a stored submission by id.
func (s *Service) Get(ctx context.Context, id int64) (repo.Record, error) {
	return s.store.Get(ctx, id)
}

// Update replaces the fields of an existing submission.
func (s *Service) Update(ctx context.Context, id int64, sub Submission) (repo.Record, error) {
	rec, err := recordFromSubmission(sub)
	if err != nil {
		return repo.Record{}, err
	}
	rec.ID = id

	updated, err := s.store.Update(ctx, rec)
	if err != nil {
		return repo.Record{}, fmt.Errorf("update submission: %w", err)
	}
	return updated, nil
}

// Delete removes a stored submission.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("article deleted", zap.Int64("article_id", id))
	return nil
}

// List returns a page of submissions. When query is non-empty it narrows the
// page to title/abstract substring matches.
func (s *Service) List(ctx context.Context, query string, limit, offset int) ([]repo.Record, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	if q := strings.TrimSpace(query); q != "" {
		return s.store.Search(ctx, q, limit)
	}
	return s.store.List(ctx, limit, offset)
}

// Stats aggregates the submission store.
func (s *Service) Stats(ctx context.Context) (repo.Stats, error) {
	return s.store.AggregateStats(ctx)
}

func recordFromSubmission(sub Submission) (repo.Record, error) {
	title := strings.TrimSpace(sub.Title)
	if title == "" {
		return repo.Record{}, fmt.Errorf("title is required: %w", domain.ErrInvalidSubmission)
	}
	if len(title) > maxTitleLength {
		return repo.Record{}, fmt.Errorf("title exceeds %d characters: %w", maxTitleLength, domain.ErrInvalidSubmission)
	}

	articleType := strings.TrimSpace(sub.ArticleType)
	if articleType == "" {
		articleType = defaultType
	}

	return repo.Record{
		Title:       title,
		Abstract:    strings.TrimSpace(sub.Abstract),
		Journal:     strings.TrimSpace(sub.Journal),
		ArticleType: articleType,
		DOI:         strings.TrimSpace(sub.DOI),
		PMCID:       strings.TrimSpace(sub.PMCID),
		Year:        sub.Year,
	}, nil
}
