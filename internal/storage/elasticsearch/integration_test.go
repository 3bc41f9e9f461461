package elasticsearch_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	es "github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcelasticsearch "github.com/testcontainers/testcontainers-go/modules/elasticsearch"

	"github.com/jonesrussell/north-cloud/news-crawler/internal/domain"
	"github.com/jonesrussell/north-cloud/news-crawler/internal/storage/elasticsearch"
)

const (
	elasticsearchImage   = "docker.elastic.co/elasticsearch/elasticsearch:8.11.0"
	containerStartupWait = 2 * time.Minute
)

func startElasticsearch(t *testing.T) *es.Client {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), containerStartupWait)
	defer cancel()

	ctr, err := tcelasticsearch.Run(ctx, elasticsearchImage, tcelasticsearch.WithPassword("changeme"))
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	client, err := es.NewClient(es.Config{
		Addresses: []string{ctr.Settings.Address},
		Username:  "elastic",
		Password:  ctr.Settings.Password,
		CACert:    ctr.Settings.CACert,
	})
	require.NoError(t, err)

	return client
}

func TestIndexer_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	client := startElasticsearch(t)
	ctx := context.Background()

	require.NoError(t, elasticsearch.Ping(ctx, client))

	indexer := elasticsearch.NewIndexer(client, "news_articles_it", 30*time.Second)
	err := indexer.IndexArticle(ctx, 7, domain.Article{
		Title:      "Harbour reopens",
		Subtitle:   "After repairs",
		Category:   "Local",
		URL:        "https://example.com/2024/03/01/harbour",
		Paragraphs: []string{"K", "M"},
	})
	require.NoError(t, err)

	res, err := client.Get("news_articles_it", "7", client.Get.WithContext(ctx))
	require.NoError(t, err)
	defer res.Body.Close()
	require.False(t, res.IsError(), res.String())

	var got struct {
		Source elasticsearch.ArticleDocument `json:"_source"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
	assert.Equal(t, int64(7), got.Source.ID)
	assert.Equal(t, "Harbour reopens", got.Source.Title)
	assert.Equal(t, 2, got.Source.Paragraphs)
}
