// Package metrics provides Prometheus instrumentation for crawl runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jonesrussell/north-cloud/news-crawler/internal/domain"
)

const (
	// Namespace is the namespace for all crawler metrics.
	Namespace = "news_crawler"
)

// Fetch kinds.
const (
	KindRoot    = "root"
	KindIndex   = "index"
	KindArticle = "article"
)

// Fetch and run results.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Recorder holds all Prometheus metrics for crawl runs.
type Recorder struct {
	FetchesTotal         *prometheus.CounterVec
	FetchDurationSeconds *prometheus.HistogramVec
	ArticlesTotal        *prometheus.CounterVec
	RunsTotal            *prometheus.CounterVec
	RunDurationSeconds   prometheus.Histogram
	LastRunTimestamp     prometheus.Gauge
}

// NewRecorder creates and registers the crawl metrics with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	return &Recorder{
		FetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "fetches_total",
				Help:      "Total number of page fetches by kind and result",
			},
			[]string{"kind", "result"},
		),
		FetchDurationSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "fetch_duration_seconds",
				Help:      "Duration of page fetches in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
			},
			[]string{"kind"},
		),
		ArticlesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "articles_total",
				Help:      "Total number of articles by terminal state",
			},
			[]string{"state"},
		),
		RunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "runs_total",
				Help:      "Total number of crawl runs by result",
			},
			[]string{"result"},
		),
		RunDurationSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "run_duration_seconds",
				Help:      "Duration of crawl runs in seconds",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 14), // 1s to ~2h
			},
		),
		LastRunTimestamp: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      "last_run_timestamp_seconds",
				Help:      "Unix time the last crawl run finished",
			},
		),
	}
}

// ObserveFetch records one fetch of the given kind.
func (r *Recorder) ObserveFetch(kind string, err error, d time.Duration) {
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	r.FetchesTotal.WithLabelValues(kind, result).Inc()
	r.FetchDurationSeconds.WithLabelValues(kind).Observe(d.Seconds())
}

// ObserveArticle records an article reaching a terminal state.
func (r *Recorder) ObserveArticle(state domain.ArticleState) {
	r.ArticlesTotal.WithLabelValues(string(state)).Inc()
}

// ObserveRun records a finished crawl run.
func (r *Recorder) ObserveRun(err error, started, finished time.Time) {
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	r.RunsTotal.WithLabelValues(result).Inc()
	r.RunDurationSeconds.Observe(finished.Sub(started).Seconds())
	r.LastRunTimestamp.Set(float64(finished.Unix()))
}

// Nop discards all observations.
type Nop struct{}

// ObserveFetch implements the pipeline recorder.
func (Nop) ObserveFetch(string, error, time.Duration) {}

// ObserveArticle implements the pipeline recorder.
func (Nop) ObserveArticle(domain.ArticleState) {}

// ObserveRun implements the pipeline recorder.
func (Nop) ObserveRun(error, time.Time, time.Time) {}
