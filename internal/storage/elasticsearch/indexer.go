package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	es "github.com/elastic/go-elasticsearch/v8"

	"github.com/jonesrussell/north-cloud/news-crawler/internal/domain"
)

// ArticleDocument is the indexed form of a stored article.
type ArticleDocument struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Subtitle   string    `json:"subtitle"`
	Category   string    `json:"category"`
	URL        string    `json:"url,omitempty"`
	Contents   string    `json:"contents"`
	Paragraphs int       `json:"paragraph_count"`
	Degraded   bool      `json:"degraded"`
	IndexedAt  time.Time `json:"indexed_at"`
}

// Indexer writes article documents keyed by their store ID.
type Indexer struct {
	client  *es.Client
	index   string
	timeout time.Duration
	now     func() time.Time
}

// NewIndexer creates an indexer writing to index. A zero timeout leaves
// request deadlines to the caller's context.
func NewIndexer(client *es.Client, index string, timeout time.Duration) *Indexer {
	return &Indexer{
		client:  client,
		index:   index,
		timeout: timeout,
		now:     time.Now,
	}
}

// Index returns the target index name.
func (i *Indexer) Index() string {
	return i.index
}

// IndexArticle indexes a under the document ID id. Re-indexing the same ID
// overwrites the document.
func (i *Indexer) IndexArticle(ctx context.Context, id int64, a domain.Article) error {
	doc := ArticleDocument{
		ID:         id,
		Title:      a.Title,
		Subtitle:   a.Subtitle,
		Category:   a.Category,
		URL:        a.URL,
		Contents:   a.Contents(),
		Paragraphs: len(a.Paragraphs),
		Degraded:   a.Degraded,
		IndexedAt:  i.now().UTC(),
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal article document: %w", err)
	}

	if i.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}

	res, err := i.client.Index(
		i.index,
		bytes.NewReader(body),
		i.client.Index.WithContext(ctx),
		i.client.Index.WithDocumentID(strconv.FormatInt(id, 10)),
	)
	if err != nil {
		return fmt.Errorf("failed to index article %d: %w", id, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing article %d: %s", id, res.String())
	}

	return nil
}
