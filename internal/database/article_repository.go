package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	dbconfig "github.com/jonesrussell/north-cloud/news-crawler/internal/config/database"
	"github.com/jonesrussell/north-cloud/news-crawler/internal/domain"
)

// ErrDuplicate is returned by Insert when deduplication is enabled and an
// article with the same URL is already stored.
var ErrDuplicate = errors.New("article already stored")

const articleSelectColumns = `id, title, pretitle, contents, category, url`

const (
	sqliteCreateArticles = `CREATE TABLE IF NOT EXISTS articles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT,
		pretitle TEXT,
		contents TEXT,
		category TEXT,
		url TEXT
	)`

	postgresCreateArticles = `CREATE TABLE IF NOT EXISTS articles (
		id BIGSERIAL PRIMARY KEY,
		title TEXT,
		pretitle TEXT,
		contents TEXT,
		category TEXT,
		url TEXT
	)`

	// Tables created before the url column existed get it added in place.
	sqliteURLColumnCount = `SELECT COUNT(*) FROM pragma_table_info('articles') WHERE name = 'url'`
	sqliteAddURLColumn   = `ALTER TABLE articles ADD COLUMN url TEXT`
	postgresAddURLColumn = `ALTER TABLE articles ADD COLUMN IF NOT EXISTS url TEXT`

	createURLIndex = `CREATE UNIQUE INDEX IF NOT EXISTS articles_url_key ON articles (url)`
	dropURLIndex   = `DROP INDEX IF EXISTS articles_url_key`

	insertArticle = `INSERT INTO articles (title, pretitle, contents, category, url)
		VALUES (?, ?, ?, ?, ?)`
)

// RepositoryOption configures an ArticleRepository.
type RepositoryOption func(*ArticleRepository)

// WithDeduplication makes Insert skip articles whose URL is already stored.
func WithDeduplication(enabled bool) RepositoryOption {
	return func(r *ArticleRepository) {
		r.deduplicate = enabled
	}
}

// ArticleRepository handles database operations for articles.
type ArticleRepository struct {
	db          *sqlx.DB
	deduplicate bool
}

// NewArticleRepository creates a new article repository.
func NewArticleRepository(db *sqlx.DB, opts ...RepositoryOption) *ArticleRepository {
	r := &ArticleRepository{db: db}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Deduplicating reports whether Insert skips already stored URLs.
func (r *ArticleRepository) Deduplicating() bool {
	return r.deduplicate
}

// EnsureSchema creates the articles table if missing and adds the url column
// to tables that predate it. The unique URL index exists only while
// deduplicating; without deduplication it is dropped so repeated URLs insert.
// Safe to call repeatedly.
func (r *ArticleRepository) EnsureSchema(ctx context.Context) error {
	postgres := r.db.DriverName() == dbconfig.DriverPostgres

	ddl := sqliteCreateArticles
	if postgres {
		ddl = postgresCreateArticles
	}
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create articles table: %w", err)
	}

	if err := r.ensureURLColumn(ctx, postgres); err != nil {
		return err
	}

	index, action := dropURLIndex, "drop"
	if r.deduplicate {
		index, action = createURLIndex, "create"
	}
	if _, err := r.db.ExecContext(ctx, index); err != nil {
		return fmt.Errorf("failed to %s articles url index: %w", action, err)
	}

	return nil
}

// ensureURLColumn adds the url column when the table lacks it.
func (r *ArticleRepository) ensureURLColumn(ctx context.Context, postgres bool) error {
	if postgres {
		if _, err := r.db.ExecContext(ctx, postgresAddURLColumn); err != nil {
			return fmt.Errorf("failed to add articles url column: %w", err)
		}
		return nil
	}

	var count int
	if err := r.db.GetContext(ctx, &count, sqliteURLColumnCount); err != nil {
		return fmt.Errorf("failed to inspect articles table: %w", err)
	}
	if count > 0 {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, sqliteAddURLColumn); err != nil {
		return fmt.Errorf("failed to add articles url column: %w", err)
	}
	return nil
}

// Insert stores one article in a single statement and returns its ID.
func (r *ArticleRepository) Insert(ctx context.Context, a domain.Article) (int64, error) {
	query := insertArticle
	if r.deduplicate {
		query += ` ON CONFLICT (url) DO NOTHING`
	}
	query = r.db.Rebind(query + ` RETURNING id`)

	var id int64
	err := r.db.QueryRowxContext(ctx, query,
		a.Title, a.Subtitle, a.Contents(), a.Category, nullString(a.URL),
	).Scan(&id)
	if err != nil {
		if r.deduplicate && errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%w: %s", ErrDuplicate, a.URL)
		}
		return 0, fmt.Errorf("failed to insert article: %w", err)
	}

	return id, nil
}

// List returns stored articles ordered by ID.
func (r *ArticleRepository) List(ctx context.Context, limit, offset int) ([]domain.StoredArticle, error) {
	query := r.db.Rebind(`SELECT ` + articleSelectColumns + ` FROM articles ORDER BY id LIMIT ? OFFSET ?`)

	articles := make([]domain.StoredArticle, 0)
	if err := r.db.SelectContext(ctx, &articles, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}

	return articles, nil
}

// Count returns the number of stored articles.
func (r *ArticleRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM articles`); err != nil {
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}
	return count, nil
}

// nullString maps an empty string to SQL NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
