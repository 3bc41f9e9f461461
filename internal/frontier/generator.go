// Package frontier builds the crawl frontier: one index page URL per day of a
// crawl window, and absolute article URLs resolved from index page links.
package frontier

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonesrussell/north-cloud/news-crawler/internal/domain"
)

// Generate returns the index page URL of every day in w, in ascending order.
// An inverted window yields an empty slice.
func Generate(siteURL string, w domain.CrawlWindow) []string {
	urls := make([]string, 0, w.Days())
	for day := w.Start; !day.After(w.End); day = day.AddDate(0, 0, 1) {
		urls = append(urls, IndexURL(siteURL, day))
	}
	return urls
}

// IndexURL returns {site}/news/{yyyy}/{mm}/{dd} for the calendar date of day.
func IndexURL(siteURL string, day time.Time) string {
	y, m, d := day.Date()
	return fmt.Sprintf("%s/news/%04d/%02d/%02d", strings.TrimRight(siteURL, "/"), y, int(m), d)
}
