// Package scheduler runs crawls on a cron schedule, each covering the days
// immediately before the tick.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jonesrussell/north-cloud/news-crawler/internal/domain"
	"github.com/jonesrussell/north-cloud/news-crawler/internal/logger"
	"github.com/jonesrussell/north-cloud/news-crawler/internal/pipeline"
)

// ErrInvalidLookback is returned when fewer than one day would be crawled.
var ErrInvalidLookback = errors.New("lookback must be at least one day")

// Runner executes one crawl.
type Runner interface {
	Run(ctx context.Context, window domain.CrawlWindow) (*pipeline.Summary, error)
}

// Scheduler triggers a Runner on a cron schedule. A tick that fires while
// the previous crawl is still running is skipped.
type Scheduler struct {
	cron     *cron.Cron
	schedule cron.Schedule
	spec     string
	runner   Runner
	lookback int
	log      logger.Interface
	now      func() time.Time
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		s.now = now
	}
}

// New creates a scheduler for the standard five-field cron spec (descriptors
// such as @daily are accepted too).
func New(runner Runner, spec string, lookbackDays int, log logger.Interface, opts ...Option) (*Scheduler, error) {
	if lookbackDays < 1 {
		return nil, ErrInvalidLookback
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	schedule, err := parser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cron expression %q: %w", spec, err)
	}

	if log == nil {
		log = logger.NewNoOp()
	}
	log = log.WithComponent("scheduler")

	cronLog := cronLogger{log: log}
	s := &Scheduler{
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		schedule: schedule,
		spec:     spec,
		runner:   runner,
		lookback: lookbackDays,
		log:      log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Window returns the crawl window for a tick at now: the lookback days up to
// and including yesterday.
func (s *Scheduler) Window(now time.Time) domain.CrawlWindow {
	today := domain.Day(now)
	return domain.NewCrawlWindow(today.AddDate(0, 0, -s.lookback), today.AddDate(0, 0, -1))
}

// Next returns the first activation after t.
func (s *Scheduler) Next(t time.Time) time.Time {
	return s.schedule.Next(t)
}

// RunOnce crawls the window for the current time.
func (s *Scheduler) RunOnce(ctx context.Context) (*pipeline.Summary, error) {
	window := s.Window(s.now())
	s.log.Info("Scheduled crawl starting", "window", window.String())

	summary, err := s.runner.Run(ctx, window)
	if err != nil {
		s.log.Error("Scheduled crawl failed", "window", window.String(), "error", err)
		return summary, err
	}

	s.log.Info("Scheduled crawl completed",
		"window", window.String(),
		"persisted", summary.Persisted,
		"skipped", summary.Skipped(),
	)
	return summary, nil
}

// Start runs the schedule until ctx is cancelled, then waits for a running
// crawl to finish. The running crawl sees the cancellation and drains.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() {
		_, _ = s.RunOnce(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule crawl: %w", err)
	}

	s.cron.Start()
	s.log.Info("Scheduler started",
		"schedule", s.spec,
		"lookback_days", s.lookback,
		"next_run", s.Next(s.now()).Format(time.RFC3339),
	)

	<-ctx.Done()

	s.log.Info("Scheduler stopping")
	<-s.cron.Stop().Done()
	s.log.Info("Scheduler stopped")

	return nil
}

// cronLogger adapts logger.Interface to cron.Logger.
type cronLogger struct {
	log logger.Interface
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(msg, append(keysAndValues, "error", err)...)
}
