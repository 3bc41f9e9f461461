package articles

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/north-cloud/news-crawler/cmd/common"
)

// NewCountCommand creates the count command.
func NewCountCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of stored articles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return err
			}

			store, closeStore, err := common.OpenArticleStore(cmd.Context(), deps.Config.Database, false, deps.Logger)
			if err != nil {
				return err
			}
			defer closeStore()

			count, err := store.Count(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), count)
			return nil
		},
	}
}
