// Package articles persists user-submitted articles in SQLite.
//
// This store is separate from the read-only corpus: its ids are database
// ids and have no relation to corpus row ordinals.
package articles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/spacebio/pubdex/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS articles (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	title        TEXT NOT NULL,
	abstract     TEXT NOT NULL DEFAULT '',
	journal      TEXT NOT NULL DEFAULT '',
	article_type TEXT NOT NULL DEFAULT 'research',
	doi          TEXT NOT NULL DEFAULT '',
	pmc_id       TEXT NOT NULL DEFAULT '',
	year         INTEGER,
	created_at   TIMESTAMP NOT NULL,
	updated_at   TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_articles_journal ON articles(journal);
CREATE INDEX IF NOT EXISTS idx_articles_year ON articles(year);
`

// Record is a stored submission row.
type Record struct {
	ID          int64
	Title       string
	Abstract    string
	Journal     string
	ArticleType string
	DOI         string
	PMCID       string
	Year        *int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Stats aggregates the submission store.
type Stats struct {
	TotalArticles    int
	WithAbstract     int
	WithDOI          int
	WithPMCID        int
	ArticleTypes     map[string]int
	Journals         map[string]int
	PublicationYears map[string]int
}

// Repository is a SQLite-backed article store.
type Repository struct {
	db *sql.DB
}

// Open opens (or creates) the store at path. An empty path opens an
// in-memory database for tests.
func Open(path string) (*Repository, error) {
	dsn := ":memory:"
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
		// WAL allows concurrent readers during writes.
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Repository{db: db}, nil
}

// Close closes the underlying database.
func (r *Repository) Close() error {
	if err := r.db.Close(); err != nil {
		return fmt.Errorf("close sqlite: %w", err)
	}
	return nil
}

// Ping verifies the database connection.
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping sqlite: %w", err)
	}
	return nil
}

// Create inserts a new record and returns it with its assigned id.
func (r *Repository) Create(ctx context.Context, rec Record) (Record, error) {
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO articles (title, abstract, journal, article_type, doi, pmc_id, year, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Title, rec.Abstract, rec.Journal, rec.ArticleType,
		rec.DOI, rec.PMCID, rec.Year, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return Record{}, fmt.Errorf("insert article: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Record{}, fmt.Errorf("last insert id: %w", err)
	}
	rec.ID = id
	return rec, nil
}

// Get returns the record with the given id.
func (r *Repository) Get(ctx context.Context, id int64) (Record, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, abstract, journal, article_type, doi, pmc_id, year, created_at, updated_at
		FROM articles WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("article %d: %w", id, domain.ErrArticleNotFound)
	}
	if err != nil {
		return Record{}, fmt.Errorf("get article %d: %w", id, err)
	}
	return rec, nil
}

// Update overwrites the mutable fields of an existing record.
func (r *Repository) Update(ctx context.Context, rec Record) (Record, error) {
	rec.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		UPDATE articles
		SET title = ?, abstract = ?, journal = ?, article_type = ?, doi = ?, pmc_id = ?, year = ?, updated_at = ?
		WHERE id = ?`,
		rec.Title, rec.Abstract, rec.Journal, rec.ArticleType,
		rec.DOI, rec.PMCID, rec.Year, rec.UpdatedAt, rec.ID,
	)
	if err != nil {
		return Record{}, fmt.Errorf("update article %d: %w", rec.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Record{}, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return Record{}, fmt.Errorf("article %d: %w", rec.ID, domain.ErrArticleNotFound)
	}
	return r.Get(ctx, rec.ID)
}

// Delete removes the record with the given id.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete article %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("article %d: %w", id, domain.ErrArticleNotFound)
	}
	return nil
}

// List returns records ordered by id with limit/offset pagination.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, abstract, journal, article_type, doi, pmc_id, year, created_at, updated_at
		FROM articles ORDER BY id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

// Search returns records whose title or abstract contains the query,
// case-insensitively.
func (r *Repository) Search(ctx context.Context, query string, limit int) ([]Record, error) {
	pattern := "%" + query + "%"
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, abstract, journal, article_type, doi, pmc_id, year, created_at, updated_at
		FROM articles
		WHERE title LIKE ? COLLATE NOCASE OR abstract LIKE ? COLLATE NOCASE
		ORDER BY id LIMIT ?`, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

// AggregateStats computes store-wide counts by type, journal, and year.
func (r *Repository) AggregateStats(ctx context.Context) (Stats, error) {
	stats := Stats{
		ArticleTypes:     make(map[string]int),
		Journals:         make(map[string]int),
		PublicationYears: make(map[string]int),
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       SUM(CASE WHEN abstract != '' THEN 1 ELSE 0 END),
		       SUM(CASE WHEN doi != '' THEN 1 ELSE 0 END),
		       SUM(CASE WHEN pmc_id != '' THEN 1 ELSE 0 END)
		FROM articles`)
	var withAbstract, withDOI, withPMC sql.NullInt64
	if err := row.Scan(&stats.TotalArticles, &withAbstract, &withDOI, &withPMC); err != nil {
		return Stats{}, fmt.Errorf("aggregate totals: %w", err)
	}
	stats.WithAbstract = int(withAbstract.Int64)
	stats.WithDOI = int(withDOI.Int64)
	stats.WithPMCID = int(withPMC.Int64)

	if err := r.countGroup(ctx, `SELECT article_type, COUNT(*) FROM articles GROUP BY article_type`, stats.ArticleTypes); err != nil {
		return Stats{}, err
	}
	if err := r.countGroup(ctx, `SELECT journal, COUNT(*) FROM articles WHERE journal != '' GROUP BY journal`, stats.Journals); err != nil {
		return Stats{}, err
	}
	if err := r.countGroup(ctx, `SELECT CAST(year AS TEXT), COUNT(*) FROM articles WHERE year IS NOT NULL GROUP BY year`, stats.PublicationYears); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

func (r *Repository) countGroup(ctx context.Context, query string, into map[string]int) error {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("group count: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return fmt.Errorf("scan group count: %w", err)
		}
		into[key] = n
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate group counts: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var rec Record
	var year sql.NullInt64
	err := row.Scan(
		&rec.ID, &rec.Title, &rec.Abstract, &rec.Journal, &rec.ArticleType,
		&rec.DOI, &rec.PMCID, &year, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return Record{}, err
	}
	if year.Valid {
		y := int(year.Int64)
		rec.Year = &y
	}
	return rec, nil
}

func collectRecords(rows *sql.Rows) ([]Record, error) {
	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate articles: %w", err)
	}
	return out, nil
}
