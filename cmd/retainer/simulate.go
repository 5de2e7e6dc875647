package main

import (
	"github.com/spf13/cobra"

	"github.com/raoulx24/retainer/internal/worker"
)

var simulateInput string

// simulateCmd previews the decisions for one configured path.
var simulateCmd = &cobra.Command{
	Use:   "simulate PATH",
	Short: "Preview retention decisions for one configured path",
	Long: `Evaluate the retention policy of a single configured path and print which
files would be kept and dropped. Nothing is deleted. With --input the
filenames are read from a text file, one per line, instead of the directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(configPath)
		if err != nil {
			return err
		}
		defer a.Close()

		var lister worker.Lister
		if simulateInput != "" {
			lister = worker.FileLister{Path: simulateInput}
		}

		report, err := a.worker(nil).Simulate(cmd.Context(), args[0], lister)
		if err != nil {
			return err
		}
		printReport(cmd.OutOrStdout(), report)
		return nil
	},
}

func init() {
	simulateCmd.Flags().StringVarP(&simulateInput, "input", "i", "", "file listing filenames, one per line")
}
