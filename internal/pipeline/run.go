package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/jonesrussell/north-cloud/news-crawler/internal/database"
	"github.com/jonesrussell/north-cloud/news-crawler/internal/domain"
	"github.com/jonesrussell/north-cloud/news-crawler/internal/fetcher"
	"github.com/jonesrussell/north-cloud/news-crawler/internal/frontier"
	"github.com/jonesrussell/north-cloud/news-crawler/internal/logger"
	"github.com/jonesrussell/north-cloud/news-crawler/internal/metrics"
)

// Run crawls every day of window. Per-day and per-article failures are
// counted in the summary and never abort the run. The returned error is
// non-nil only when the site root is unavailable or ctx was cancelled; the
// summary is valid in both cases.
func (o *Orchestrator) Run(ctx context.Context, window domain.CrawlWindow) (*Summary, error) {
	summary := &Summary{
		RunID:     uuid.NewString(),
		Window:    window,
		Days:      window.Days(),
		StartedAt: o.now(),
	}
	log := o.log.WithRunID(summary.RunID)
	log.Info("Crawl started",
		"site", o.cfg.SiteURL,
		"window", window.String(),
		"days", summary.Days,
		"workers", o.cfg.Workers,
	)

	err := o.run(ctx, log, window, summary)

	summary.FinishedAt = o.now()
	o.deps.Recorder.ObserveRun(err, summary.StartedAt, summary.FinishedAt)

	switch {
	case err == nil:
		log.Info("Crawl finished", summary.LogFields()...)
	case errors.Is(err, ErrRootUnavailable):
		log.Error("Crawl aborted", append(summary.LogFields(), "error", err)...)
	default:
		log.Warn("Crawl interrupted", append(summary.LogFields(), "error", err)...)
	}

	return summary, err
}

func (o *Orchestrator) run(ctx context.Context, log logger.Interface, window domain.CrawlWindow, summary *Summary) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("crawl interrupted: %w", ctxErr)
	}

	if _, err := o.fetchPage(ctx, metrics.KindRoot, o.cfg.SiteURL); err != nil {
		summary.FetchesFailed++
		return fmt.Errorf("%w: %w", ErrRootUnavailable, err)
	}
	summary.FetchesOK++

	jobs := make(chan string)
	results := make(chan Outcome)

	var days dayTally
	go func() {
		defer close(jobs)
		o.produce(ctx, log, window, jobs, &days)
	}()

	var wg sync.WaitGroup
	for i := range o.cfg.Workers {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			o.work(ctx, log.With("worker_id", workerID), jobs, results)
		}(i)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	for out := range results {
		o.handle(ctx, log, out, summary)
	}

	// The producer has returned: jobs was closed before the last worker
	// exited.
	summary.addDays(days)

	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("crawl interrupted: %w", ctxErr)
	}
	return nil
}

// produce walks the days in order, fetching each index page and feeding its
// article URLs to the workers. It stops starting new work once ctx is done.
func (o *Orchestrator) produce(
	ctx context.Context,
	log logger.Interface,
	window domain.CrawlWindow,
	jobs chan<- string,
	tally *dayTally,
) {
	for _, indexURL := range frontier.Generate(o.cfg.SiteURL, window) {
		if ctx.Err() != nil {
			return
		}

		body, err := o.fetchPage(ctx, metrics.KindIndex, indexURL)
		if err != nil {
			tally.fetchesFailed++
			tally.daysFailed++
			log.Warn("Index page fetch failed", "url", indexURL, "status", fetcher.StatusCodeOf(err), "error", err)
			continue
		}
		tally.fetchesOK++

		links, err := o.deps.Links.Extract(body)
		if err != nil {
			tally.daysFailed++
			log.Warn("Index page extraction failed", "url", indexURL, "error", err)
			continue
		}
		if len(links) == 0 {
			tally.daysEmpty++
			log.Info("No articles on index page", "url", indexURL)
			continue
		}

		tally.articlesFound += len(links)
		log.Debug("Index page processed", "url", indexURL, "articles", len(links))

		for i, link := range links {
			select {
			case jobs <- link:
			case <-ctx.Done():
				remaining := len(links) - i
				tally.undispatched += remaining
				for range remaining {
					o.deps.Recorder.ObserveArticle(domain.ArticleCancelled)
				}
				return
			}
		}
	}
}

// work fetches and extracts articles until jobs is closed. Once ctx is done
// the remaining queued URLs are reported as cancelled without being fetched.
func (o *Orchestrator) work(ctx context.Context, log logger.Interface, jobs <-chan string, results chan<- Outcome) {
	var page PageFetcher = o.deps.Fetcher
	if o.deps.Polite != nil {
		page = o.deps.Polite()
	}

	for link := range jobs {
		results <- o.processArticle(ctx, log, page, link)
	}
}

func (o *Orchestrator) processArticle(ctx context.Context, log logger.Interface, page PageFetcher, link string) Outcome {
	if ctx.Err() != nil {
		return Outcome{URL: link, State: domain.ArticleCancelled, Err: ctx.Err()}
	}

	start := o.now()
	body, err := page.Fetch(ctx, link)
	if err != nil {
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			// Cancelled while waiting for the politeness delay; nothing was sent.
			return Outcome{URL: link, State: domain.ArticleCancelled, Err: err}
		}
		o.deps.Recorder.ObserveFetch(metrics.KindArticle, err, o.now().Sub(start))
		return Outcome{URL: link, State: domain.ArticleFailed, Err: err}
	}
	o.deps.Recorder.ObserveFetch(metrics.KindArticle, nil, o.now().Sub(start))

	article, err := o.deps.Articles.Extract(body)
	if err != nil {
		return Outcome{URL: link, State: domain.ArticleFailed, Err: fmt.Errorf("extract article: %w", err), Fetched: true}
	}
	article.URL = link

	log.Debug("Article extracted", "url", link, "paragraphs", len(article.Paragraphs))

	return Outcome{URL: link, State: domain.ArticleExtracted, Article: article, Fetched: true}
}

// handle applies one outcome to the summary. It is the only place articles
// are written to the store.
func (o *Orchestrator) handle(ctx context.Context, log logger.Interface, out Outcome, summary *Summary) {
	if out.Fetched {
		summary.FetchesOK++
	}

	final := out.State
	switch out.State {
	case domain.ArticleCancelled:
		summary.ArticlesCancelled++
	case domain.ArticleFailed:
		summary.ArticlesFailed++
		if !out.Fetched {
			summary.FetchesFailed++
		}
		log.Warn("Article skipped", "url", out.URL, "status", fetcher.StatusCodeOf(out.Err), "error", out.Err)
	case domain.ArticleExtracted:
		summary.ArticlesFetched++
		final = o.persist(ctx, log, out.Article, summary)
	default:
		log.Error("Unexpected article outcome", "url", out.URL, "state", string(out.State))
		return
	}

	o.deps.Recorder.ObserveArticle(final)
}

// persist stores an extracted article and mirrors it when an indexer is set.
// Both run to completion even when ctx is already cancelled.
func (o *Orchestrator) persist(ctx context.Context, log logger.Interface, a domain.Article, summary *Summary) domain.ArticleState {
	if a.Degraded {
		summary.Degraded++
		log.Warn("End-of-content marker missing, kept all paragraphs", "url", a.URL)
	}

	storeCtx := context.WithoutCancel(ctx)

	id, err := o.deps.Store.Insert(storeCtx, a)
	switch {
	case errors.Is(err, database.ErrDuplicate):
		summary.Duplicates++
		log.Debug("Article already stored", "url", a.URL)
		return domain.ArticleDuplicate
	case err != nil:
		summary.PersistFailed++
		log.Error("Failed to persist article", "url", a.URL, "error", err)
		return domain.ArticleFailed
	}

	summary.Persisted++
	log.Debug("Article persisted", "id", id, "url", a.URL, "title", a.Title)

	if o.deps.Indexer != nil {
		if mirrorErr := o.deps.Indexer.IndexArticle(storeCtx, id, a); mirrorErr != nil {
			summary.MirrorFailed++
			log.Warn("Failed to mirror article", "id", id, "url", a.URL, "error", mirrorErr)
		}
	}

	return domain.ArticlePersisted
}

// fetchPage fetches a root or index page. Once started the request is not
// cancelled by ctx; it is bounded by the fetcher's timeout.
func (o *Orchestrator) fetchPage(ctx context.Context, kind, rawURL string) ([]byte, error) {
	start := o.now()
	body, err := o.deps.Fetcher.Fetch(context.WithoutCancel(ctx), rawURL)
	o.deps.Recorder.ObserveFetch(kind, err, o.now().Sub(start))
	return body, err
}
