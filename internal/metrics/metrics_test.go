package metrics_test

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/news-crawler/internal/domain"
	"github.com/jonesrussell/north-cloud/news-crawler/internal/metrics"
)

func TestRecorder_ObserveFetch(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	r := metrics.NewRecorder(reg)

	r.ObserveFetch(metrics.KindArticle, nil, 120*time.Millisecond)
	r.ObserveFetch(metrics.KindArticle, nil, 80*time.Millisecond)
	r.ObserveFetch(metrics.KindIndex, errors.New("status 404"), time.Second)

	assert.InDelta(t, 2, testutil.ToFloat64(r.FetchesTotal.WithLabelValues(metrics.KindArticle, metrics.ResultSuccess)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.FetchesTotal.WithLabelValues(metrics.KindIndex, metrics.ResultFailure)), 0)
	assert.Equal(t, 2, testutil.CollectAndCount(r.FetchDurationSeconds))
}

func TestRecorder_ObserveArticle(t *testing.T) {
	t.Parallel()

	r := metrics.NewRecorder(prometheus.NewRegistry())

	r.ObserveArticle(domain.ArticlePersisted)
	r.ObserveArticle(domain.ArticlePersisted)
	r.ObserveArticle(domain.ArticleCancelled)

	assert.InDelta(t, 2, testutil.ToFloat64(r.ArticlesTotal.WithLabelValues(string(domain.ArticlePersisted))), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.ArticlesTotal.WithLabelValues(string(domain.ArticleCancelled))), 0)
}

func TestRecorder_ObserveRun(t *testing.T) {
	t.Parallel()

	r := metrics.NewRecorder(prometheus.NewRegistry())
	started := time.Date(2024, 4, 19, 3, 0, 0, 0, time.UTC)

	r.ObserveRun(nil, started, started.Add(time.Minute))

	assert.InDelta(t, 1, testutil.ToFloat64(r.RunsTotal.WithLabelValues(metrics.ResultSuccess)), 0)
	assert.InDelta(t, float64(started.Add(time.Minute).Unix()), testutil.ToFloat64(r.LastRunTimestamp), 0)
}

func TestRecorder_RegistersMetricNames(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	r := metrics.NewRecorder(reg)
	r.ObserveFetch(metrics.KindRoot, nil, time.Millisecond)
	r.ObserveArticle(domain.ArticleFailed)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "news_crawler_fetches_total")
	assert.Contains(t, names, "news_crawler_fetch_duration_seconds")
	assert.Contains(t, names, "news_crawler_articles_total")
}
