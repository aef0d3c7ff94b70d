package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sycl-conformance/ctskit/packages/core/suite"
	"github.com/sycl-conformance/ctskit/packages/manifest"
)

var listCmd = &cobra.Command{
	Use:   "list [manifest]",
	Short: "List registered conformance cases",
	Long: `List the registered conformance cases, optionally filtered by a
YAML manifest.

Examples:
  ctskit list
  ctskit list suite.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: listCommand,
}

func listCommand(cmd *cobra.Command, args []string) error {
	cases := suite.Cases()

	if len(args) > 0 {
		m, err := manifest.Load(args[0])
		if err != nil {
			return err
		}
		cases = m.Filter(cases)
		fmt.Fprintf(cmd.OutOrStdout(), "suite: %s\n", m.Suite)
	}

	if len(cases) == 0 {
		return fmt.Errorf("no cases registered")
	}

	for _, c := range cases {
		fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", c.Info.Name)
		if c.Info.File != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "    file: %s\n", c.Info.File)
		}
		if len(c.Tags) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "    tags: %v\n", c.Tags)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n%d cases\n", len(cases))
	return nil
}
