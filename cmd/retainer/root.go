package main

import (
	"github.com/spf13/cobra"

	"github.com/raoulx24/retainer/internal/config"
	"github.com/raoulx24/retainer/internal/worker"
)

var (
	configPath string
	dryRun     bool
)

// rootCmd runs a single retention pass over every configured path.
var rootCmd = &cobra.Command{
	Use:   "retainer",
	Short: "Prune backup files by a time-bucketed retention policy",
	Long: `retainer reads the timestamp encoded in each backup filename, keeps the
newest files per hour, day, week, month and year as configured, and deletes
the rest. Without a subcommand it runs one pass over all configured paths.`,
	Version:       Version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runOnce,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "configuration file (.toml, .yaml or .yml)")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "d", false, "report what would be deleted without deleting")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

func runOnce(cmd *cobra.Command, args []string) error {
	a, err := setup(configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	w := a.worker(nil).WithDryRun(dryRun)
	report, err := w.RunOnce(cmd.Context(), worker.TriggerCLI)
	if dryRun {
		printReport(cmd.OutOrStdout(), report)
	}
	return err
}
