package domain

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the calendar date format accepted for crawl windows.
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned when a window boundary cannot be parsed.
var ErrInvalidDate = errors.New("invalid date")

// CrawlWindow is an inclusive range of calendar days.
// An inverted window (Start after End) is valid and contains no days.
type CrawlWindow struct {
	Start time.Time
	End   time.Time
}

// NewCrawlWindow normalises both boundaries to UTC midnight.
func NewCrawlWindow(start, end time.Time) CrawlWindow {
	return CrawlWindow{Start: Day(start), End: Day(end)}
}

// ParseCrawlWindow parses two YYYY-MM-DD dates into a window.
func ParseCrawlWindow(start, end string) (CrawlWindow, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return CrawlWindow{}, fmt.Errorf("%w: start %q", ErrInvalidDate, start)
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return CrawlWindow{}, fmt.Errorf("%w: end %q", ErrInvalidDate, end)
	}
	return NewCrawlWindow(s, e), nil
}

// Empty reports whether the window contains no days.
func (w CrawlWindow) Empty() bool {
	return w.Start.After(w.End)
}

// Days returns the inclusive number of days in the window.
func (w CrawlWindow) Days() int {
	if w.Empty() {
		return 0
	}
	return int(w.End.Sub(w.Start).Hours()/24) + 1
}

// String renders the window as "start..end".
func (w CrawlWindow) String() string {
	return w.Start.Format(DateLayout) + ".." + w.End.Format(DateLayout)
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
