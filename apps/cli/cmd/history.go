package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sycl-conformance/ctskit/packages/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded run history",
	Long: `Inspect the SQLite run history recorded by "ctskit run --history".

Examples:
  ctskit history --db ctskit.db
  ctskit history --db ctskit.db --limit 50
  ctskit history case queue_properties --db ctskit.db`,
	RunE: historyCommand,
}

var historyCaseCmd = &cobra.Command{
	Use:   "case <name>",
	Short: "Show recent outcomes for one case",
	Args:  cobra.ExactArgs(1),
	RunE:  historyCaseCommand,
}

var (
	historyDBFlag    string
	historyLimitFlag int
)

func init() {
	historyCmd.PersistentFlags().StringVar(&historyDBFlag, "db", getEnvString("CTSKIT_HISTORY", "ctskit.db"), "History database path (env: CTSKIT_HISTORY)")
	historyCmd.PersistentFlags().IntVar(&historyLimitFlag, "limit", 20, "Maximum number of entries to show")
	historyCmd.AddCommand(historyCaseCmd)
}

func historyCommand(cmd *cobra.Command, args []string) error {
	store, err := history.Open(historyDBFlag)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Runs(historyLimitFlag)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "no recorded runs\n")
		return nil
	}

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	for _, r := range runs {
		status := green("pass")
		if r.Failed > 0 {
			status = red("fail")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s  %s  %d passed, %d failed, %d skipped  (%s)\n",
			r.ID[:8], status, r.StartedAt.Format(time.RFC3339), r.Suite,
			r.Passed, r.Failed, r.Skipped, r.Duration.Round(time.Millisecond))
	}
	return nil
}

func historyCaseCommand(cmd *cobra.Command, args []string) error {
	store, err := history.Open(historyDBFlag)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.CaseHistory(args[0], historyLimitFlag)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "no recorded outcomes for %q\n", args[0])
		return nil
	}

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	for _, rec := range records {
		status := green("pass")
		if rec.Skipped {
			status = yellow("skip")
		} else if !rec.Passed {
			status = red("fail")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  (%s)\n",
			rec.RunID[:8], status, rec.Duration.Round(time.Millisecond))
	}
	return nil
}
