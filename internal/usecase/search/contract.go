package search

import "github.com/spacebio/pubdex/internal/index"

// Indexer provides the active index snapshot.
// Snapshot returns domain.ErrDataUnavailable when no corpus is loaded.
type Indexer interface {
	Snapshot() (*index.Snapshot, error)
}
