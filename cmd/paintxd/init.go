package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/suhanovs/paintx-frontend/internal/adapter"
)

func newInitCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write config.yaml with the effective settings",
		Long: `Writes the current configuration (defaults, config file and PAINTX_*
environment overrides merged) to config.yaml, so it can be edited.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := adapter.LoadConfig()
			if err != nil {
				return err
			}
			if dir == "" {
				err = adapter.SaveConfig(cfg)
			} else {
				err = adapter.SaveConfigTo(dir, cfg)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "config written")
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory to write config.yaml into (default: user config dir)")

	return cmd
}
