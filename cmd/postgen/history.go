package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"postgen/pkg/journal"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded runs",
	Long: `Show runs recorded in the journal database.

Examples:
  postgen history --journal ~/.postgen/journal.db
  postgen history --journal ~/.postgen/journal.db -n 5 -v`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if journalPath == "" {
			return fmt.Errorf("--journal is required")
		}

		j, err := journal.Open(journalPath)
		if err != nil {
			return fmt.Errorf("failed to open journal: %w", err)
		}
		defer j.Close()

		runs, err := j.ListRuns(historyLimit)
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(runs) == 0 {
			fmt.Fprintln(out, "No runs recorded")
			return nil
		}

		verbose, _ := cmd.Flags().GetBool("verbose")

		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "STARTED\tPROJECT\tLICENSE\tFAILURES\tDURATION\tDIR")
		fmt.Fprintln(w, "-------\t-------\t-------\t--------\t--------\t---")
		for _, r := range runs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
				r.StartedAt.Local().Format("2006-01-02 15:04"),
				r.ProjectSlug, r.License, r.Failures(), r.Duration, r.Dir,
			)
			if verbose {
				for _, s := range r.Steps {
					fmt.Fprintf(w, "  %s\t%s\t%s\t\t\t\n", s.Name, s.Status, s.Detail)
				}
			}
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of runs to show")
	historyCmd.Flags().BoolP("verbose", "v", false, "Show step results")
}
