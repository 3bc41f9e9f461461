// Package domain holds the value types shared by the crawl pipeline stages.
package domain

import "strings"

// Placeholder values stored when an article page lacks the matching anchor.
const (
	PlaceholderTitle    = "No title"
	PlaceholderSubtitle = "No pretitle"
	PlaceholderCategory = "No category"
)

// ParagraphSeparator joins body paragraphs into the persisted contents column.
const ParagraphSeparator = "\n"

// Article is a structured record extracted from a single article page.
type Article struct {
	Title    string `db:"title"    json:"title"`
	Subtitle string `db:"pretitle" json:"subtitle"`
	Category string `db:"category" json:"category"`
	URL      string `db:"url"      json:"url,omitempty"`

	// Paragraphs is kept in document order.
	Paragraphs []string `db:"-" json:"paragraphs"`

	// Degraded is set when the end-of-content marker was not found and the
	// whole body was scanned instead.
	Degraded bool `db:"-" json:"-"`
}

// Contents returns the body as it is persisted: paragraphs joined by newlines.
func (a Article) Contents() string {
	return strings.Join(a.Paragraphs, ParagraphSeparator)
}

// StoredArticle is an article read back from the store with its identity.
type StoredArticle struct {
	ID       int64   `db:"id"       json:"id"`
	Title    string  `db:"title"    json:"title"`
	Subtitle string  `db:"pretitle" json:"subtitle"`
	Contents string  `db:"contents" json:"contents"`
	Category string  `db:"category" json:"category"`
	URL      *string `db:"url"      json:"url,omitempty"`
}

// ParagraphList splits the persisted contents back into paragraphs.
func (s StoredArticle) ParagraphList() []string {
	if s.Contents == "" {
		return []string{}
	}
	return strings.Split(s.Contents, ParagraphSeparator)
}
