// Package article defines the corpus-row value object.
//
// A corpus row's identity is its position in the loaded table. Ordinals are
// index-local: a corpus reload may reassign them, so callers must not treat
// them as durable identifiers.
package article

// TopicUnassigned is the sentinel topic id for rows without a cluster.
const TopicUnassigned = -1

// Article is an immutable corpus row.
type Article struct {
	id          int
	title       string
	link        string
	text        string
	cleanText   string
	wordCount   int
	topic       int
	year        *int
	journal     string
	articleType string
}

// Reconstruct builds an Article from already-loaded corpus fields.
// id is the row ordinal assigned by the loader.
func Reconstruct(
	id int, title, link, text, cleanText string,
	wordCount, topic int, year *int, journal, articleType string,
) Article {
	return Article{
		id:          id,
		title:       title,
		link:        link,
		text:        text,
		cleanText:   cleanText,
		wordCount:   wordCount,
		topic:       topic,
		year:        year,
		journal:     journal,
		articleType: articleType,
	}
}

// ID returns the row ordinal within the loaded corpus.
func (a *Article) ID() int { return a.id }

// Title returns the article title.
func (a *Article) Title() string { return a.title }

// Link returns the source URL.
func (a *Article) Link() string { return a.link }

// Text returns the raw article text.
func (a *Article) Text() string { return a.text }

// CleanText returns the normalized text used for vectorization.
func (a *Article) CleanText() string { return a.cleanText }

// WordCount returns the word count of the raw text.
func (a *Article) WordCount() int { return a.wordCount }

// Topic returns the topic-cluster id, or TopicUnassigned.
func (a *Article) Topic() int { return a.topic }

// Year returns the derived publication year, or nil when unknown.
func (a *Article) Year() *int { return a.year }

// Journal returns the journal name, empty when unknown.
func (a *Article) Journal() string { return a.journal }

// ArticleType returns the article type, empty when unknown.
func (a *Article) ArticleType() string { return a.articleType }
