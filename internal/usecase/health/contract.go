package health

import "context"

// IndexChecker reports whether the search index holds a usable snapshot.
type IndexChecker interface {
	Stats() (articles, vocabulary int, ok bool)
}

// StorePinger checks submission store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}
