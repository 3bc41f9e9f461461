// Package pipeline runs one crawl over a window of days: index pages are
// fetched in day order, article pages are fetched and extracted by a pool of
// polite workers, and every extracted record is persisted by the orchestrator.
package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/jonesrussell/north-cloud/news-crawler/internal/domain"
	"github.com/jonesrussell/north-cloud/news-crawler/internal/logger"
	"github.com/jonesrussell/north-cloud/news-crawler/internal/metrics"
)

// DefaultWorkers is used when Config.Workers is not positive.
const DefaultWorkers = 4

// ErrRootUnavailable is returned when the site root cannot be fetched. Nothing
// else is attempted in that case.
var ErrRootUnavailable = errors.New("site root unavailable")

// PageFetcher fetches one page body.
type PageFetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// PoliteFactory returns a new rate-limited fetcher. Each worker calls it once.
type PoliteFactory func() PageFetcher

// LinkExtractor extracts article URLs from an index page.
type LinkExtractor interface {
	Extract(markup []byte) ([]string, error)
}

// ArticleExtractor extracts an article record from an article page.
type ArticleExtractor interface {
	Extract(markup []byte) (domain.Article, error)
}

// ArticleStore persists article records.
type ArticleStore interface {
	Insert(ctx context.Context, a domain.Article) (int64, error)
}

// ArticleIndexer mirrors persisted articles to a search index.
type ArticleIndexer interface {
	IndexArticle(ctx context.Context, id int64, a domain.Article) error
}

// Recorder receives crawl observations.
type Recorder interface {
	ObserveFetch(kind string, err error, d time.Duration)
	ObserveArticle(state domain.ArticleState)
	ObserveRun(err error, started, finished time.Time)
}

// Deps holds the orchestrator's collaborators. Indexer, Recorder and Logger
// are optional.
type Deps struct {
	Fetcher  PageFetcher
	Polite   PoliteFactory
	Links    LinkExtractor
	Articles ArticleExtractor
	Store    ArticleStore
	Indexer  ArticleIndexer
	Recorder Recorder
	Logger   logger.Interface
}

// Config holds orchestrator settings.
type Config struct {
	SiteURL string
	Workers int
}

// Orchestrator runs crawls. It is safe to call Run repeatedly but not
// concurrently against the same store handle when deduplication is off.
type Orchestrator struct {
	deps Deps
	cfg  Config
	log  logger.Interface
	now  func() time.Time
}

// New creates an orchestrator.
func New(deps Deps, cfg Config) *Orchestrator {
	if cfg.Workers < 1 {
		cfg.Workers = DefaultWorkers
	}
	if deps.Recorder == nil {
		deps.Recorder = metrics.Nop{}
	}
	if deps.Logger == nil {
		deps.Logger = logger.NewNoOp()
	}
	return &Orchestrator{
		deps: deps,
		cfg:  cfg,
		log:  deps.Logger.WithComponent("pipeline"),
		now:  time.Now,
	}
}
