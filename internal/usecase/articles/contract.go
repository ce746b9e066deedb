package articles

import (
	"context"

	repo "github.com/spacebio/pubdex/internal/repository/articles"
)

// Store persists user-submitted articles.
type Store interface {
	Create(ctx context.Context, rec repo.Record) (repo.Record, error)
	Get(ctx context.Context, id int64) (repo.Record, error)
	Update(ctx context.Context, rec repo.Record) (repo.Record, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]repo.Record, error)
	Search(ctx context.Context, query string, limit int) ([]repo.Record, error)
	AggregateStats(ctx context.Context) (repo.Stats, error)
}
