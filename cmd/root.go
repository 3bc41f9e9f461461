// Package cmd implements the command-line interface for the news crawler.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonesrussell/north-cloud/news-crawler/cmd/articles"
	"github.com/jonesrussell/north-cloud/news-crawler/cmd/crawl"
	"github.com/jonesrussell/north-cloud/news-crawler/internal/config"
	"github.com/jonesrussell/north-cloud/news-crawler/internal/config/app"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=...".
var Version = app.DefaultVersion

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// Debug enables debug logging for all commands
	Debug bool

	rootCmd = &cobra.Command{
		Use:   "news-crawler",
		Short: "Crawl a news site's daily archive into a database",
		Long: `news-crawler walks a news site's per-day index pages over a date range,
extracts every linked article and stores title, subtitle, category and body.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	// Parse flags early so --config and --debug apply to config loading
	_ = rootCmd.ParseFlags(os.Args[1:])

	if err := config.Init(viper.GetViper(), cfgFile); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}
	if err := viper.BindPFlag("app.debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		return fmt.Errorf("failed to bind debug flag: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml or ./config/config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "news-crawler version %s\n", Version)
		},
	})

	rootCmd.AddCommand(crawl.Command())
	rootCmd.AddCommand(articles.Command())
}
