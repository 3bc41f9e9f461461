// Package crawl implements the crawl command.
package crawl

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonesrussell/north-cloud/news-crawler/cmd/common"
	"github.com/jonesrussell/north-cloud/news-crawler/internal/config"
	crawlercfg "github.com/jonesrussell/north-cloud/news-crawler/internal/config/crawler"
	"github.com/jonesrussell/north-cloud/news-crawler/internal/domain"
	"github.com/jonesrussell/north-cloud/news-crawler/internal/extract"
	"github.com/jonesrussell/north-cloud/news-crawler/internal/fetcher"
	"github.com/jonesrussell/north-cloud/news-crawler/internal/logger"
	"github.com/jonesrussell/north-cloud/news-crawler/internal/metrics"
	"github.com/jonesrussell/north-cloud/news-crawler/internal/pipeline"
	"github.com/jonesrussell/north-cloud/news-crawler/internal/scheduler"
	"github.com/jonesrussell/north-cloud/news-crawler/internal/server"
	"github.com/jonesrussell/north-cloud/news-crawler/internal/sites"
	"github.com/jonesrussell/north-cloud/news-crawler/internal/storage/elasticsearch"
)

// ErrWindowRequired is returned when neither a date range nor a schedule is given.
var ErrWindowRequired = errors.New("--start and --end are required unless --schedule is set")

// flagBindings maps crawl flags to the configuration keys they override.
var flagBindings = map[string]string{
	"site":          "crawler.site",
	"workers":       "crawler.workers",
	"dedup":         "crawler.deduplicate",
	"schedule":      "crawler.schedule",
	"lookback-days": "crawler.lookback_days",
	"metrics-addr":  "server.address",
}

// Command returns the crawl command.
func Command() *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Crawl every article published in a date range",
		Long: `Crawl fetches the site's index page for every day from --start to --end
(inclusive, YYYY-MM-DD), extracts each linked article and stores it.

With --schedule the command keeps running and crawls the last --lookback-days
days (ending yesterday) on every tick of the cron expression.`,
		Example: `  news-crawler crawl --start 2024-04-17 --end 2024-04-18
  news-crawler crawl --start 2024-04-01 --end 2024-04-30 --workers 8 --dedup
  news-crawler crawl --schedule "0 3 * * *" --lookback-days 2 --metrics-addr :9102`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for flag, key := range flagBindings {
				if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
					return fmt.Errorf("failed to bind %s flag: %w", flag, err)
				}
			}

			deps, err := common.NewCommandDeps()
			if err != nil {
				return err
			}
			defer func() { _ = deps.Logger.Sync() }()

			return run(cmd, deps, start, end)
		},
	}

	crawlerDefaults := crawlercfg.New()
	cmd.Flags().StringVar(&start, "start", "", "first day to crawl (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "last day to crawl (YYYY-MM-DD, inclusive)")
	cmd.Flags().String("site", crawlerDefaults.Site, "site profile name")
	cmd.Flags().Int("workers", crawlerDefaults.Workers, "number of concurrent article fetchers")
	cmd.Flags().Bool("dedup", false, "skip articles whose URL is already stored")
	cmd.Flags().String("schedule", "", "cron expression; run periodically instead of once")
	cmd.Flags().Int("lookback-days", crawlerDefaults.LookbackDays, "days covered by each scheduled run")
	cmd.Flags().String("metrics-addr", "", "serve /metrics and /health on this address")

	return cmd
}

func run(cmd *cobra.Command, deps *common.CommandDeps, start, end string) error {
	ctx := cmd.Context()
	cfg := deps.Config
	log := deps.Logger

	var window domain.CrawlWindow
	if cfg.Crawler.Schedule == "" {
		if start == "" || end == "" {
			return ErrWindowRequired
		}
		w, err := domain.ParseCrawlWindow(start, end)
		if err != nil {
			return err
		}
		window = w
	}

	profile, err := sites.Resolve(cfg.Crawler.SitesFile, cfg.Crawler.Site, cfg.Crawler.SiteURL)
	if err != nil {
		return fmt.Errorf("failed to resolve site profile: %w", err)
	}

	store, closeStore, err := common.OpenArticleStore(ctx, cfg.Database, cfg.Crawler.Deduplicate, log)
	if err != nil {
		return err
	}
	defer closeStore()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	f := fetcher.New(
		fetcher.FromCrawlerConfig(cfg.Crawler, profile.Headers),
		fetcher.WithHTTPClient(&http.Client{Transport: newTransport(cfg.Crawler.Workers)}),
	)
	pipelineDeps := pipeline.Deps{
		Fetcher:  f,
		Polite:   func() pipeline.PageFetcher { return f.Polite() },
		Links:    extract.NewLinkExtractor(profile.URL, profile.Selectors),
		Articles: extract.NewArticleExtractor(profile.Selectors),
		Store:    store,
		Indexer:  newIndexer(ctx, cfg, log),
		Recorder: metrics.NewRecorder(reg),
		Logger:   log,
	}

	runner := &trackingRunner{
		orchestrator: pipeline.New(pipelineDeps, pipeline.Config{
			SiteURL: profile.URL,
			Workers: cfg.Crawler.Workers,
		}),
	}

	log.Info("Crawler configured",
		"site", profile.Name,
		"url", profile.URL,
		"workers", cfg.Crawler.Workers,
		"politeness_delay", cfg.Crawler.PolitenessDelay.String(),
		"deduplicate", cfg.Crawler.Deduplicate,
		"database", cfg.Database.Driver,
	)

	if cfg.Server.Enabled() {
		router := server.SetupRouter(log, reg, runner.status)
		srv := server.New(*cfg.Server, router, log)
		serverCtx, stopServer := context.WithCancel(ctx)
		defer stopServer()
		go func() {
			if serveErr := srv.Start(serverCtx); serveErr != nil {
				log.Error("Metrics server failed", "error", serveErr)
			}
		}()
	}

	if cfg.Crawler.Schedule != "" {
		sched, schedErr := scheduler.New(runner, cfg.Crawler.Schedule, cfg.Crawler.LookbackDays, log)
		if schedErr != nil {
			return schedErr
		}
		return sched.Start(ctx)
	}

	summary, err := runner.Run(ctx, window)
	if summary != nil {
		RenderSummary(cmd.OutOrStdout(), summary)
	}
	if err != nil && errors.Is(err, context.Canceled) {
		log.Warn("Crawl interrupted by signal; completed articles were stored")
		return nil
	}
	return err
}

// newTransport allows one connection per worker plus one for index pages.
func newTransport(workers int) *http.Transport {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxConnsPerHost = workers + 1
	transport.MaxIdleConnsPerHost = workers + 1
	return transport
}

// newIndexer returns the search mirror, or nil when it is disabled or
// unreachable.
func newIndexer(ctx context.Context, cfg *config.Config, log logger.Interface) pipeline.ArticleIndexer {
	if !cfg.Elasticsearch.Enabled {
		return nil
	}

	client, err := elasticsearch.NewClient(*cfg.Elasticsearch)
	if err != nil {
		log.Warn("Search mirror disabled", "error", err)
		return nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Elasticsearch.IndexTimeout)
	defer cancel()
	if pingErr := elasticsearch.Ping(pingCtx, client); pingErr != nil {
		log.Warn("Search mirror unreachable, continuing without it", "error", pingErr)
		return nil
	}

	log.Info("Search mirror enabled", "index", cfg.Elasticsearch.IndexName)
	return elasticsearch.NewIndexer(client, cfg.Elasticsearch.IndexName, cfg.Elasticsearch.IndexTimeout)
}

// trackingRunner remembers the last summary for the /status endpoint.
type trackingRunner struct {
	orchestrator *pipeline.Orchestrator
	last         atomic.Pointer[pipeline.Summary]
}

func (r *trackingRunner) Run(ctx context.Context, window domain.CrawlWindow) (*pipeline.Summary, error) {
	summary, err := r.orchestrator.Run(ctx, window)
	if summary != nil {
		r.last.Store(summary)
	}
	return summary, err
}

func (r *trackingRunner) status() any {
	summary := r.last.Load()
	if summary == nil {
		return nil
	}
	return struct {
		*pipeline.Summary
		Window   string `json:"window"`
		Skipped  int    `json:"skipped"`
		Duration string `json:"duration"`
	}{
		Summary:  summary,
		Window:   summary.Window.String(),
		Skipped:  summary.Skipped(),
		Duration: summary.Duration().Round(time.Millisecond).String(),
	}
}
