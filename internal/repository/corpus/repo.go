// Package corpus loads the publication table from CSV into memory.
//
// Row position in the file is the article's ordinal id. The loaded slice is
// immutable; a reload produces a fresh slice and never mutates a previous one.
package corpus

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/spacebio/pubdex/internal/domain"
	"github.com/spacebio/pubdex/internal/domain/article"
)

// Publication years outside this range are treated as extraction noise.
const (
	MinYear = 1990
	MaxYear = 2024
)

// yearRegex extracts a candidate year from PMC-style source links.
var yearRegex = regexp.MustCompile(`PMC(\d{4})`)

// Load reads the corpus CSV at path. A missing file or an empty table yields
// domain.ErrDataUnavailable so callers can degrade instead of crash.
func Load(path string) ([]article.Article, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", domain.ErrDataUnavailable, path, err)
	}
	defer f.Close()

	articles, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return articles, nil
}

// Read parses corpus CSV from r. The first record is the header; columns are
// matched by name so column order in the file does not matter.
func Read(r io.Reader) ([]article.Article, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %w", domain.ErrDataUnavailable, err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}
	if _, ok := cols["title"]; !ok {
		return nil, fmt.Errorf("%w: missing title column", domain.ErrDataUnavailable)
	}

	var articles []article.Article
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record %d: %w", len(articles)+1, err)
		}
		articles = append(articles, rowToArticle(len(articles), rec, cols))
	}
	if len(articles) == 0 {
		return nil, fmt.Errorf("%w: empty corpus", domain.ErrDataUnavailable)
	}
	return articles, nil
}

func rowToArticle(id int, rec []string, cols map[string]int) article.Article {
	get := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	link := get("link")
	text := get("text")

	wordCount, err := strconv.Atoi(strings.TrimSpace(get("word_count")))
	if err != nil || wordCount < 0 {
		wordCount = len(strings.Fields(text))
	}

	topic := article.TopicUnassigned
	if t, err := strconv.Atoi(strings.TrimSpace(get("topic"))); err == nil {
		topic = t
	}

	return article.Reconstruct(
		id,
		get("title"),
		link,
		text,
		get("clean_text"),
		wordCount,
		topic,
		DeriveYear(link),
		get("journal"),
		get("article_type"),
	)
}

// DeriveYear extracts a publication year from a PMC source link.
// Returns nil when no plausible year in [MinYear, MaxYear] is found.
func DeriveYear(link string) *int {
	m := yearRegex.FindStringSubmatch(link)
	if m == nil {
		return nil
	}
	y, err := strconv.Atoi(m[1])
	if err != nil || y < MinYear || y > MaxYear {
		return nil
	}
	return &y
}
