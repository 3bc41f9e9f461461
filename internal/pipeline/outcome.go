package pipeline

import "github.com/jonesrussell/north-cloud/news-crawler/internal/domain"

// Outcome is a worker's report for one article URL.
type Outcome struct {
	URL     string
	State   domain.ArticleState
	Article domain.Article
	Err     error

	// Fetched is set when the article page was downloaded, even if
	// extraction then failed.
	Fetched bool
}

// dayTally is written only by the producer goroutine and read after the
// results channel is drained.
type dayTally struct {
	daysFailed    int
	daysEmpty     int
	articlesFound int
	undispatched  int
	fetchesOK     int
	fetchesFailed int
}
