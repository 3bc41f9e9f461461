// Package articles implements commands for inspecting stored articles.
package articles

import (
	"github.com/spf13/cobra"
)

// Command returns the articles command.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "articles",
		Short: "Inspect stored articles",
	}

	cmd.AddCommand(NewListCommand())
	cmd.AddCommand(NewCountCommand())

	return cmd
}
