package common

import (
	"context"
	"fmt"

	dbconfig "github.com/jonesrussell/north-cloud/news-crawler/internal/config/database"
	"github.com/jonesrussell/north-cloud/news-crawler/internal/database"
	"github.com/jonesrussell/north-cloud/news-crawler/internal/logger"
)

// OpenArticleStore opens the database, ensures the schema exists and returns
// the repository together with a function that closes the connection.
func OpenArticleStore(
	ctx context.Context,
	cfg *dbconfig.Config,
	deduplicate bool,
	log logger.Interface,
) (*database.ArticleRepository, func(), error) {
	if cfg == nil {
		return nil, nil, ErrDatabaseRequired
	}

	db, err := database.Open(*cfg)
	if err != nil {
		return nil, nil, err
	}

	repo := database.NewArticleRepository(db, database.WithDeduplication(deduplicate))
	if schemaErr := repo.EnsureSchema(ctx); schemaErr != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to prepare schema: %w", schemaErr)
	}

	log.Debug("Article store ready", "driver", cfg.Driver, "deduplicate", repo.Deduplicating())

	return repo, func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Warn("Failed to close database", "error", closeErr)
		}
	}, nil
}
