package main

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/suhanovs/paintx-frontend/internal/adapter"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paintxd",
		Short: "Storefront proxy for the PaintX gallery",
		Long: `paintxd serves the PaintX storefront API in front of the catalog backend.

It forwards listing, painting, like and inquiry requests, issues visitor
cookies, rate limits inquiries and answers SEO metadata, facet and
sitemap requests.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newFacetsCmd())
	cmd.AddCommand(newInitCmd())

	return cmd
}

// setup loads the configuration and installs the logger.
func setup() (*adapter.Config, *slog.Logger, error) {
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)
	return cfg, logger, nil
}
