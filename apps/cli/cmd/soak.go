package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sycl-conformance/ctskit/packages/core/suite"
	"github.com/sycl-conformance/ctskit/packages/manifest"
	"github.com/sycl-conformance/ctskit/packages/soak"
	"github.com/sycl-conformance/ctskit/packages/stats"
)

var soakCmd = &cobra.Command{
	Use:   "soak [manifest]",
	Short: "Re-run cases for a sustained period to expose flaky behavior",
	Long: `Repeatedly execute registered cases at a target rate for a fixed
duration. Each iteration runs with fresh state, so a case that fails
intermittently under soak is flaky, not broken.

Examples:
  ctskit soak --duration 1m --rate 100
  ctskit soak suite.yaml -d 5m -r 50 --soak-concurrency 10
  ctskit soak --tags selfcheck -d 30s`,
	Args: cobra.MaximumNArgs(1),
	RunE: soakCommand,
}

var (
	soakDurationFlag    string
	soakRateFlag        float64
	soakConcurrencyFlag int
	soakTagsFlag        string
	soakInteropFlag     bool
)

func init() {
	soakCmd.Flags().StringVarP(&soakDurationFlag, "duration", "d", "30s", "Soak duration (e.g., 30s, 5m, 1h)")
	soakCmd.Flags().Float64VarP(&soakRateFlag, "rate", "r", 10, "Target case executions per second")
	soakCmd.Flags().IntVar(&soakConcurrencyFlag, "soak-concurrency", 5, "Maximum concurrent case executions")
	soakCmd.Flags().StringVarP(&soakTagsFlag, "tags", "t", "", "Soak only cases with specified tags (comma-separated)")
	soakCmd.Flags().BoolVar(&soakInteropFlag, "interop", false, "Enable OpenCL interop checks")
}

func soakCommand(cmd *cobra.Command, args []string) error {
	cases := suite.Cases()

	if len(args) > 0 {
		m, err := manifest.Load(args[0])
		if err != nil {
			return err
		}
		cases = m.Filter(cases)
	}

	if soakTagsFlag != "" {
		var want []string
		for _, t := range strings.Split(soakTagsFlag, ",") {
			t = strings.TrimSpace(t)
			if t != "" {
				want = append(want, t)
			}
		}
		var filtered []suite.Case
		for _, c := range cases {
			for _, tag := range c.Tags {
				matched := false
				for _, w := range want {
					if tag == w {
						matched = true
						break
					}
				}
				if matched {
					filtered = append(filtered, c)
					break
				}
			}
		}
		cases = filtered
	}

	if len(cases) == 0 {
		return fmt.Errorf("no cases selected")
	}

	duration, err := time.ParseDuration(soakDurationFlag)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w (use format like 30s, 5m)", soakDurationFlag, err)
	}

	cfg := &soak.Config{
		Duration:    duration,
		Rate:        soakRateFlag,
		Concurrency: soakConcurrencyFlag,
		Interop:     soakInteropFlag,
	}

	fmt.Fprintf(cmd.OutOrStdout(), "ctskit %s\n", version)
	fmt.Fprintf(cmd.OutOrStdout(), "Soaking %d cases for %s at %.0f/s...\n\n", len(cases), duration, soakRateFlag)

	result, err := soak.NewRunner(cfg).Run(cmd.Context(), cases)
	if err != nil {
		return err
	}

	printSoakResult(cmd, result)

	if result.Failed() {
		os.Exit(ExitTestFailure)
	}
	return nil
}

func printSoakResult(cmd *cobra.Command, result *soak.Result) {
	out := cmd.OutOrStdout()
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	fmt.Fprintf(out, "Iterations: %d\n", result.Iterations)
	if result.Failures > 0 {
		fmt.Fprintf(out, "Failures:   %s\n", red(fmt.Sprintf("%d", result.Failures)))
	} else {
		fmt.Fprintf(out, "Failures:   %s\n", green("0"))
	}
	fmt.Fprintf(out, "Duration:   %s\n\n", result.Duration.Round(time.Millisecond))

	fmt.Fprintf(out, "Latency (all cases):\n")
	printSummary(out, result.Stats)

	if len(result.PerCase) > 1 {
		names := make([]string, 0, len(result.PerCase))
		for name := range result.PerCase {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Fprintf(out, "\nPer case:\n")
		for _, name := range names {
			s := result.PerCase[name]
			fmt.Fprintf(out, "  %s (%d runs): p50=%s p95=%s p99=%s\n",
				name, s.Count,
				s.P50.Round(time.Microsecond),
				s.P95.Round(time.Microsecond),
				s.P99.Round(time.Microsecond))
		}
	}
}

func printSummary(out io.Writer, s stats.Summary) {
	fmt.Fprintf(out, "  p50:  %s\n", s.P50.Round(time.Microsecond))
	fmt.Fprintf(out, "  p95:  %s\n", s.P95.Round(time.Microsecond))
	fmt.Fprintf(out, "  p99:  %s\n", s.P99.Round(time.Microsecond))
	fmt.Fprintf(out, "  min:  %s\n", s.Min.Round(time.Microsecond))
	fmt.Fprintf(out, "  max:  %s\n", s.Max.Round(time.Microsecond))
	fmt.Fprintf(out, "  mean: %s\n", s.Mean.Round(time.Microsecond))
}
