package main

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var historyLimit int

// historyCmd prints recent passes from the journal.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent retention passes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(configPath)
		if err != nil {
			return err
		}
		defer a.Close()

		if a.history == nil {
			return errors.New("history is disabled: set [history] path in the configuration")
		}

		runs, err := a.history.Recent(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(runs) == 0 {
			fmt.Fprintln(out, "no passes recorded")
			return nil
		}
		for _, r := range runs {
			status := "ok"
			if r.Error != "" {
				status = "failed: " + r.Error
			}
			fmt.Fprintf(out, "%s  %s  %-8s %-8s %s (%s)\n",
				r.ID, r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.Trigger, r.Mode,
				status, humanize.Time(r.StartedAt))
			for _, p := range r.Paths {
				fmt.Fprintf(out, "    %s: kept %d, dropped %d, deleted %d, skipped %d\n",
					p.Path, p.Kept, p.Dropped, p.Deleted, p.Failures)
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of passes to show")
}
