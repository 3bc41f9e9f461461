package database_test

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbconfig "github.com/jonesrussell/north-cloud/news-crawler/internal/config/database"
	"github.com/jonesrussell/north-cloud/news-crawler/internal/database"
	"github.com/jonesrussell/north-cloud/news-crawler/internal/domain"
)

var articleColumns = []string{"id", "title", "pretitle", "contents", "category", "url"}

func newMockRepo(t *testing.T, opts ...database.RepositoryOption) (*database.ArticleRepository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := sqlx.NewDb(mockDB, "postgres")
	return database.NewArticleRepository(db, opts...), mock
}

func openSQLite(t *testing.T) *sqlx.DB {
	t.Helper()

	cfg := dbconfig.New()
	cfg.DSN = filepath.Join(t.TempDir(), "articles.db")

	db, err := database.Open(*cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleArticle(url string) domain.Article {
	return domain.Article{
		Title:      "GPU prices fall",
		Subtitle:   "Exclusive",
		Category:   "Hardware",
		URL:        url,
		Paragraphs: []string{"first", "second", "third"},
	}
}

func TestArticleRepository_Insert(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO articles (title, pretitle, contents, category, url)")).
		WithArgs("GPU prices fall", "Exclusive", "first\nsecond\nthird", "Hardware", "https://example.com/a").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	id, err := repo.Insert(context.Background(), sampleArticle("https://example.com/a"))
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepository_Insert_EmptyURLStoredAsNull(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("INSERT INTO articles").
		WithArgs("GPU prices fall", "Exclusive", "first\nsecond\nthird", "Hardware", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	_, err := repo.Insert(context.Background(), sampleArticle(""))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepository_Insert_Error(t *testing.T) {
	repo, mock := newMockRepo(t)

	dbErr := errors.New("disk full")
	mock.ExpectQuery("INSERT INTO articles").WillReturnError(dbErr)

	_, err := repo.Insert(context.Background(), sampleArticle("https://example.com/a"))
	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, database.ErrDuplicate)
}

func TestArticleRepository_Insert_DuplicateWhenDeduplicating(t *testing.T) {
	repo, mock := newMockRepo(t, database.WithDeduplication(true))

	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (url) DO NOTHING RETURNING id")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.Insert(context.Background(), sampleArticle("https://example.com/a"))
	assert.ErrorIs(t, err, database.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepository_EnsureSchema_Postgres(t *testing.T) {
	repo, mock := newMockRepo(t, database.WithDeduplication(true))

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS articles")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("ALTER TABLE articles ADD COLUMN IF NOT EXISTS url TEXT")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE UNIQUE INDEX IF NOT EXISTS articles_url_key")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepository_EnsureSchema_PostgresWithoutDedupDropsIndex(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS articles")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("ALTER TABLE articles ADD COLUMN IF NOT EXISTS url TEXT")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DROP INDEX IF EXISTS articles_url_key")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepository_EnsureSchema_AddColumnError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS articles")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("ALTER TABLE articles")).
		WillReturnError(errors.New("permission denied"))

	err := repo.EnsureSchema(context.Background())
	assert.ErrorContains(t, err, "failed to add articles url column")
}

func TestArticleRepository_List(t *testing.T) {
	repo, mock := newMockRepo(t)

	url := "https://example.com/a"
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, pretitle, contents, category, url FROM articles ORDER BY id LIMIT $1 OFFSET $2")).
		WithArgs(10, 5).
		WillReturnRows(sqlmock.NewRows(articleColumns).
			AddRow(6, "T1", "S1", "a\nb", "C1", url).
			AddRow(7, "T2", "S2", "", "C2", nil))

	got, err := repo.List(context.Background(), 10, 5)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, int64(6), got[0].ID)
	assert.Equal(t, []string{"a", "b"}, got[0].ParagraphList())
	require.NotNil(t, got[0].URL)
	assert.Equal(t, url, *got[0].URL)
	assert.Nil(t, got[1].URL)
	assert.Empty(t, got[1].ParagraphList())
}

func TestArticleRepository_Count_Error(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT COUNT").WillReturnError(errors.New("connection reset"))

	_, err := repo.Count(context.Background())
	assert.ErrorContains(t, err, "failed to count articles")
}

func TestArticleRepository_SQLite_ReadBack(t *testing.T) {
	ctx := context.Background()
	repo := database.NewArticleRepository(openSQLite(t))
	require.NoError(t, repo.EnsureSchema(ctx))

	first, err := repo.Insert(ctx, sampleArticle("https://example.com/a"))
	require.NoError(t, err)
	second, err := repo.Insert(ctx, domain.Article{
		Title:    domain.PlaceholderTitle,
		Subtitle: domain.PlaceholderSubtitle,
		Category: domain.PlaceholderCategory,
		URL:      "https://example.com/b",
	})
	require.NoError(t, err)
	assert.Greater(t, second, first)

	got, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, first, got[0].ID)
	assert.Equal(t, "GPU prices fall", got[0].Title)
	assert.Equal(t, "Exclusive", got[0].Subtitle)
	assert.Equal(t, "first\nsecond\nthird", got[0].Contents)
	assert.Equal(t, "Hardware", got[0].Category)

	assert.Equal(t, domain.PlaceholderTitle, got[1].Title)
	assert.Empty(t, got[1].Contents)
}

func TestArticleRepository_SQLite_EnsureSchemaTwice(t *testing.T) {
	ctx := context.Background()
	repo := database.NewArticleRepository(openSQLite(t), database.WithDeduplication(true))

	require.NoError(t, repo.EnsureSchema(ctx))
	_, err := repo.Insert(ctx, sampleArticle("https://example.com/a"))
	require.NoError(t, err)

	require.NoError(t, repo.EnsureSchema(ctx))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestArticleRepository_SQLite_RepeatedRunDoublesRows(t *testing.T) {
	ctx := context.Background()
	repo := database.NewArticleRepository(openSQLite(t))
	require.NoError(t, repo.EnsureSchema(ctx))

	urls := []string{"https://example.com/a", "https://example.com/b", "https://example.com/c"}
	for range 2 {
		for _, u := range urls {
			_, err := repo.Insert(ctx, sampleArticle(u))
			require.NoError(t, err)
		}
	}

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2*len(urls), count)
}

func TestArticleRepository_SQLite_Deduplication(t *testing.T) {
	ctx := context.Background()
	repo := database.NewArticleRepository(openSQLite(t), database.WithDeduplication(true))
	require.NoError(t, repo.EnsureSchema(ctx))

	_, err := repo.Insert(ctx, sampleArticle("https://example.com/a"))
	require.NoError(t, err)

	_, err = repo.Insert(ctx, sampleArticle("https://example.com/a"))
	require.ErrorIs(t, err, database.ErrDuplicate)

	_, err = repo.Insert(ctx, sampleArticle("https://example.com/b"))
	require.NoError(t, err)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestArticleRepository_SQLite_DisablingDedupAllowsRepeats(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)

	deduplicating := database.NewArticleRepository(db, database.WithDeduplication(true))
	require.NoError(t, deduplicating.EnsureSchema(ctx))
	_, err := deduplicating.Insert(ctx, sampleArticle("https://example.com/a"))
	require.NoError(t, err)

	plain := database.NewArticleRepository(db)
	require.NoError(t, plain.EnsureSchema(ctx))
	_, err = plain.Insert(ctx, sampleArticle("https://example.com/a"))
	require.NoError(t, err)

	count, err := plain.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestArticleRepository_SQLite_TableWithoutURLColumn(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)

	_, err := db.ExecContext(ctx, `CREATE TABLE articles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT,
		pretitle TEXT,
		contents TEXT,
		category TEXT
	)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx,
		`INSERT INTO articles (title, pretitle, contents, category) VALUES ('Old', 'Sub', 'body', 'News')`)
	require.NoError(t, err)

	repo := database.NewArticleRepository(db)
	require.NoError(t, repo.EnsureSchema(ctx))
	require.NoError(t, repo.EnsureSchema(ctx))

	_, err = repo.Insert(ctx, sampleArticle("https://example.com/a"))
	require.NoError(t, err)

	got, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Old", got[0].Title)
	assert.Nil(t, got[0].URL)
	require.NotNil(t, got[1].URL)
	assert.Equal(t, "https://example.com/a", *got[1].URL)
}

func TestOpen_InvalidConfig(t *testing.T) {
	cfg := dbconfig.New()
	cfg.Driver = "mysql"

	_, err := database.Open(*cfg)
	assert.ErrorContains(t, err, "invalid database config")
}
