package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/jonesrussell/north-cloud/news-crawler/internal/domain"
	"github.com/jonesrussell/north-cloud/news-crawler/internal/sites"
)

// ArticleExtractor builds an article record from an article page.
//
// Body paragraphs are collected by walking the body in document order and
// stopping at the boundary marker: everything after it (author box, tags,
// footer) is boilerplate. Without a marker the whole body is used and the
// record is flagged Degraded.
type ArticleExtractor struct {
	selectors sites.Selectors
}

// NewArticleExtractor creates an article extractor.
func NewArticleExtractor(sel sites.Selectors) *ArticleExtractor {
	return &ArticleExtractor{selectors: sel}
}

// Extract parses markup into an article. Only the first match of each anchor
// is used.
func (e *ArticleExtractor) Extract(markup []byte) (domain.Article, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return domain.Article{}, fmt.Errorf("parse article page: %w", err)
	}

	article := domain.Article{
		Title:    firstText(doc, e.selectors.Title, domain.PlaceholderTitle),
		Subtitle: firstText(doc, e.selectors.Subtitle, domain.PlaceholderSubtitle),
		Category: firstText(doc, e.selectors.Category, domain.PlaceholderCategory),
	}

	var boundary *html.Node
	if marker := doc.Find(e.selectors.Boundary).First(); marker.Length() > 0 {
		boundary = marker.Get(0)
	}

	paragraphs := make(map[*html.Node]struct{})
	doc.Find(e.selectors.Paragraph).Each(func(_ int, s *goquery.Selection) {
		paragraphs[s.Get(0)] = struct{}{}
	})

	reached := false
	isBoundary := func(n *html.Node) bool {
		if boundary != nil && n == boundary {
			reached = true
			return true
		}
		return false
	}

	article.Paragraphs = make([]string, 0)
	for n := range TakeUntil(DocumentOrder(findBody(doc.Get(0))), isBoundary) {
		if _, ok := paragraphs[n]; ok {
			article.Paragraphs = append(article.Paragraphs, strings.TrimSpace(nodeText(n)))
		}
	}
	article.Degraded = !reached

	return article, nil
}

// firstText returns the trimmed text of the first match, or placeholder when
// nothing matches.
func firstText(doc *goquery.Document, selector, placeholder string) string {
	s := doc.Find(selector).First()
	if s.Length() == 0 {
		return placeholder
	}
	return strings.TrimSpace(s.Text())
}
