package crawl

import (
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/jonesrussell/north-cloud/news-crawler/internal/pipeline"
)

// RenderSummary writes the run summary as a two-column table.
func RenderSummary(w io.Writer, s *pipeline.Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle("Crawl " + s.Window.String())
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})

	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Run ID", s.RunID},
		{"Days", s.Days},
		{"Days failed", s.DaysFailed},
		{"Days empty", s.DaysEmpty},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Articles found", s.ArticlesFound},
		{"Articles persisted", s.Persisted},
		{"Articles skipped", s.Skipped()},
		{"  fetch/extract failed", s.ArticlesFailed},
		{"  cancelled", s.ArticlesCancelled},
		{"  store failed", s.PersistFailed},
		{"  duplicates", s.Duplicates},
		{"Degraded extractions", s.Degraded},
	})
	if s.MirrorFailed > 0 {
		t.AppendRow(table.Row{"Mirror failures", s.MirrorFailed})
	}
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Fetches ok", s.FetchesOK},
		{"Fetches failed", s.FetchesFailed},
		{"Duration", s.Duration().Round(time.Millisecond).String()},
	})

	t.Render()
}
