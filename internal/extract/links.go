// Package extract turns fetched markup into crawl data: article links from
// per-day index pages and structured records from article pages.
package extract

import (
	"bytes"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/north-cloud/news-crawler/internal/frontier"
	"github.com/jonesrussell/north-cloud/news-crawler/internal/sites"
)

// LinkExtractor extracts article URLs from an index page.
type LinkExtractor struct {
	baseURL   string
	selectors sites.Selectors
}

// NewLinkExtractor creates a link extractor resolving hrefs against baseURL.
func NewLinkExtractor(baseURL string, sel sites.Selectors) *LinkExtractor {
	return &LinkExtractor{baseURL: baseURL, selectors: sel}
}

// Extract returns the absolute URL of the first hyperlink in every index item,
// in document order. Items without a usable hyperlink are skipped.
func (e *LinkExtractor) Extract(markup []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse index page: %w", err)
	}

	links := make([]string, 0)
	doc.Find(e.selectors.IndexItem).Each(func(_ int, item *goquery.Selection) {
		href, ok := item.Find(e.selectors.IndexLink).First().Attr("href")
		if !ok {
			return
		}
		link, resolveErr := frontier.ResolveURL(e.baseURL, href)
		if resolveErr != nil {
			return
		}
		links = append(links, link)
	})

	return links, nil
}
