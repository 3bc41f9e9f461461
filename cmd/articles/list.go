package articles

import (
	"context"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/north-cloud/news-crawler/cmd/common"
	"github.com/jonesrussell/north-cloud/news-crawler/internal/domain"
	"github.com/jonesrussell/north-cloud/news-crawler/internal/logger"
)

const (
	defaultListLimit = 20
	titleWidth       = 60
	urlWidth         = 70
)

// Store is the read side of the article repository.
type Store interface {
	List(ctx context.Context, limit, offset int) ([]domain.StoredArticle, error)
	Count(ctx context.Context) (int, error)
}

// TableRenderer renders stored articles as a table.
type TableRenderer struct {
	out io.Writer
}

// NewTableRenderer creates a renderer writing to out.
func NewTableRenderer(out io.Writer) *TableRenderer {
	return &TableRenderer{out: out}
}

// RenderTable writes one row per article.
func (r *TableRenderer) RenderTable(articles []domain.StoredArticle) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Title", WidthMax: titleWidth},
		{Name: "URL", WidthMax: urlWidth},
	})

	t.AppendHeader(table.Row{"ID", "Title", "Pretitle", "Category", "Paragraphs", "URL"})
	for _, a := range articles {
		url := ""
		if a.URL != nil {
			url = *a.URL
		}
		t.AppendRow(table.Row{
			a.ID,
			a.Title,
			a.Subtitle,
			a.Category,
			len(a.ParagraphList()),
			url,
		})
	}

	t.Render()
}

// Lister lists stored articles.
type Lister struct {
	store    Store
	logger   logger.Interface
	renderer *TableRenderer
}

// NewLister creates a new Lister.
func NewLister(store Store, log logger.Interface, renderer *TableRenderer) *Lister {
	return &Lister{store: store, logger: log, renderer: renderer}
}

// Start lists one page of articles.
func (l *Lister) Start(ctx context.Context, limit, offset int) error {
	articles, err := l.store.List(ctx, limit, offset)
	if err != nil {
		return fmt.Errorf("failed to list articles: %w", err)
	}

	if len(articles) == 0 {
		l.logger.Info("No articles stored", "offset", offset)
		return nil
	}

	l.renderer.RenderTable(articles)
	return nil
}

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored articles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit < 1 {
				return fmt.Errorf("--limit must be positive, got %d", limit)
			}
			if offset < 0 {
				return fmt.Errorf("--offset must not be negative, got %d", offset)
			}

			deps, err := common.NewCommandDeps()
			if err != nil {
				return err
			}

			store, closeStore, err := common.OpenArticleStore(cmd.Context(), deps.Config.Database, false, deps.Logger)
			if err != nil {
				return err
			}
			defer closeStore()

			lister := NewLister(store, deps.Logger, NewTableRenderer(cmd.OutOrStdout()))
			return lister.Start(cmd.Context(), limit, offset)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", defaultListLimit, "maximum number of articles to show")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of articles to skip")

	return cmd
}
