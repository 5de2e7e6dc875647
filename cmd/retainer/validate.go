package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// validateCmd checks the configuration file.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d paths)\n", configPath, len(cfg.Paths))
		return nil
	},
}
