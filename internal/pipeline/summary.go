package pipeline

import (
	"time"

	"github.com/jonesrussell/north-cloud/news-crawler/internal/domain"
)

// Summary reports what a crawl run did.
type Summary struct {
	RunID  string             `json:"run_id"`
	Window domain.CrawlWindow `json:"-"`
	Days   int                `json:"days"`

	DaysFailed int `json:"days_failed"`
	DaysEmpty  int `json:"days_empty"`

	ArticlesFound     int `json:"articles_found"`
	ArticlesFetched   int `json:"articles_fetched"`
	ArticlesFailed    int `json:"articles_failed"`
	ArticlesCancelled int `json:"articles_cancelled"`
	Degraded          int `json:"degraded"`

	Persisted     int `json:"persisted"`
	PersistFailed int `json:"persist_failed"`
	Duplicates    int `json:"duplicates"`
	MirrorFailed  int `json:"mirror_failed"`

	FetchesOK     int `json:"fetches_ok"`
	FetchesFailed int `json:"fetches_failed"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Skipped counts articles that were found but not persisted.
func (s *Summary) Skipped() int {
	return s.ArticlesFailed + s.ArticlesCancelled + s.PersistFailed + s.Duplicates
}

// Duration returns the wall time of the run.
func (s *Summary) Duration() time.Duration {
	if s.FinishedAt.IsZero() {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}

// LogFields returns the summary as logger key/value pairs.
func (s *Summary) LogFields() []any {
	return []any{
		"run_id", s.RunID,
		"window", s.Window.String(),
		"days", s.Days,
		"days_failed", s.DaysFailed,
		"days_empty", s.DaysEmpty,
		"articles_found", s.ArticlesFound,
		"articles_fetched", s.ArticlesFetched,
		"persisted", s.Persisted,
		"skipped", s.Skipped(),
		"failed", s.ArticlesFailed,
		"cancelled", s.ArticlesCancelled,
		"persist_failed", s.PersistFailed,
		"duplicates", s.Duplicates,
		"degraded", s.Degraded,
		"mirror_failed", s.MirrorFailed,
		"fetches_ok", s.FetchesOK,
		"fetches_failed", s.FetchesFailed,
		"duration", s.Duration().String(),
	}
}

func (s *Summary) addDays(t dayTally) {
	s.DaysFailed += t.daysFailed
	s.DaysEmpty += t.daysEmpty
	s.ArticlesFound += t.articlesFound
	s.ArticlesCancelled += t.undispatched
	s.FetchesOK += t.fetchesOK
	s.FetchesFailed += t.fetchesFailed
}
