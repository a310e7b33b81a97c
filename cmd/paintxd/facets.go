package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/suhanovs/paintx-frontend/internal/adapter/backend"
	"github.com/suhanovs/paintx-frontend/internal/facets"
)

func newFacetsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "facets",
		Short: "Walk the catalog and print the browsable facets",
		Example: `  paintxd facets
  paintxd facets --json > facets.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			client := backend.NewClient(cfg.Backend.URL, cfg.Backend.Timeout, logger)
			ix, err := facets.Collect(cmd.Context(), client, logger, func(page, total int) {
				fmt.Fprintf(os.Stderr, "\rwalking catalog %d/%d", page, total)
			})
			fmt.Fprintln(os.Stderr)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(ix)
			}

			out := cmd.OutOrStdout()
			for _, k := range facets.Kinds {
				names := ix.Names(k)
				fmt.Fprintf(out, "%s (%d)\n", k, len(names))
				for _, name := range names {
					fmt.Fprintf(out, "  %-40s /%s/%s\n", name, k, facets.Slugify(name))
				}
			}
			fmt.Fprintf(out, "paintings with slugs: %d\n", len(ix.Slugs))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the index as JSON")

	return cmd
}
