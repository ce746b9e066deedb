// Package sortkey enumerates result orderings for advanced search.
package sortkey

// Key is a result ordering.
type Key string

const (
	// Relevance orders by descending cosine similarity to the query.
	// Without a query it is a no-op and the filtered order is preserved.
	Relevance Key = "relevance"
	// Date orders by descending year, rows without a year last.
	Date Key = "date"
	// WordCount orders by descending word count.
	WordCount Key = "word_count"
	// Topic orders by ascending topic id, unassigned rows last.
	Topic Key = "topic"
)

// IsValid reports whether k is a known sort key.
func (k Key) IsValid() bool {
	switch k {
	case Relevance, Date, WordCount, Topic:
		return true
	}
	return false
}

func (k Key) String() string { return string(k) }
