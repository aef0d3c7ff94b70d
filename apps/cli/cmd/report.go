package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sycl-conformance/ctskit/packages/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Inspect and validate JSON run reports",
}

var reportQueryCmd = &cobra.Command{
	Use:   "query <report.json> <path>",
	Short: "Extract a value from a JSON report",
	Long: `Extract a value from a JSON report using a gjson path.

Examples:
  ctskit report query report.json summary.failed
  ctskit report query report.json cases.#.name
  ctskit report query report.json 'cases.#(name=="queue_properties").passed'`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := report.Query(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}

var reportValidateCmd = &cobra.Command{
	Use:   "validate <report.json>",
	Short: "Validate a JSON report against the report schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := report.Validate(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", args[0])
		return nil
	},
}

func init() {
	reportCmd.AddCommand(reportQueryCmd)
	reportCmd.AddCommand(reportValidateCmd)
}
