package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/sycl-conformance/ctskit/packages/core/config"
	"github.com/sycl-conformance/ctskit/packages/core/runner"
	"github.com/sycl-conformance/ctskit/packages/core/suite"
	"github.com/sycl-conformance/ctskit/packages/history"
	"github.com/sycl-conformance/ctskit/packages/manifest"
	"github.com/sycl-conformance/ctskit/packages/output"
	"github.com/sycl-conformance/ctskit/packages/stats"
)

var runCmd = &cobra.Command{
	Use:   "run [manifest]",
	Short: "Run registered conformance cases",
	Long: `Run the registered conformance cases, optionally selected by a YAML
manifest and name/tag filters.

Examples:
  ctskit run
  ctskit run suite.yaml
  ctskit run --name "queue_*"
  ctskit run --tags smoke,selfcheck
  ctskit run suite.yaml --parallel --concurrency 8
  ctskit run suite.yaml --output json --output-file report.json
  ctskit run suite.yaml --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCommand,
}

const (
	// WatchDebounceDelay is the debounce delay for file watch events
	WatchDebounceDelay = 300 * time.Millisecond
)

var (
	nameFlag        string
	tagsFlag        string
	verboseFlag     int
	bailFlag        bool
	noColorFlag     bool
	outputFlag      string
	outputFileFlag  string
	parallelFlag    bool
	concurrencyFlag int
	interopFlag     bool
	watchFlag       bool
	historyFlag     string
	configFlag      string
)

func init() {
	runCmd.Flags().StringVar(&configFlag, "config", getEnvString("CTSKIT_CONFIG", ""), "Path to config file (env: CTSKIT_CONFIG)")
	runCmd.Flags().StringVarP(&nameFlag, "name", "n", "", "Run only cases matching name pattern")
	runCmd.Flags().StringVarP(&tagsFlag, "tags", "t", getEnvString("CTSKIT_TAGS", ""), "Run only cases with specified tags (comma-separated) (env: CTSKIT_TAGS)")

	runCmd.Flags().CountVarP(&verboseFlag, "verbose", "v", "Verbose output (include case notes)")
	runCmd.Flags().BoolVar(&noColorFlag, "no-color", getEnvBool("CTSKIT_NO_COLOR", false), "Disable colored output (env: CTSKIT_NO_COLOR)")
	runCmd.Flags().StringVarP(&outputFlag, "output", "o", getEnvString("CTSKIT_OUTPUT", "console"), "Output format: console, json, junit (env: CTSKIT_OUTPUT)")
	runCmd.Flags().StringVar(&outputFileFlag, "output-file", getEnvString("CTSKIT_OUTPUT_FILE", ""), "Write output to file (default: stdout) (env: CTSKIT_OUTPUT_FILE)")

	runCmd.Flags().BoolVar(&bailFlag, "bail", getEnvBool("CTSKIT_BAIL", false), "Stop on first failing case (env: CTSKIT_BAIL)")
	runCmd.Flags().BoolVarP(&parallelFlag, "parallel", "p", getEnvBool("CTSKIT_PARALLEL", false), "Run cases in parallel (env: CTSKIT_PARALLEL)")
	runCmd.Flags().IntVar(&concurrencyFlag, "concurrency", getEnvInt("CTSKIT_CONCURRENCY", runner.DefaultConcurrency), "Number of concurrent cases when running in parallel (env: CTSKIT_CONCURRENCY)")
	runCmd.Flags().BoolVar(&interopFlag, "interop", getEnvBool("CTSKIT_INTEROP", false), "Enable OpenCL interop checks (env: CTSKIT_INTEROP)")
	runCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch the manifest and config for changes and re-run")
	runCmd.Flags().StringVar(&historyFlag, "history", getEnvString("CTSKIT_HISTORY", ""), "SQLite path for run history (env: CTSKIT_HISTORY)")
}

// Environment variable helpers
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// Formatter interface for all output formatters
type Formatter interface {
	FormatResult(result *runner.RunResult)
	FormatError(err error)
	FormatHeader(version string)
}

// Flushable interface for formatters that need to flush output
type Flushable interface {
	Flush(totalDuration time.Duration) error
}

func newFormatter(outWriter *os.File) Formatter {
	switch strings.ToLower(outputFlag) {
	case "json":
		opts := []output.JSONOption{}
		if outWriter != nil {
			opts = append(opts, output.JSONWithWriter(outWriter))
		}
		return output.NewJSONFormatter(opts...)
	case "junit":
		opts := []output.JUnitOption{}
		if outWriter != nil {
			opts = append(opts, output.JUnitWithWriter(outWriter))
		}
		return output.NewJUnitFormatter(opts...)
	default: // "console"
		consoleOpts := []output.ConsoleOption{
			output.WithVerbose(verboseFlag > 0),
			output.WithNoColor(noColorFlag),
		}
		if outWriter != nil {
			consoleOpts = append(consoleOpts, output.WithWriter(outWriter))
		}
		return output.NewConsoleFormatter(consoleOpts...)
	}
}

// openOutputFile truncates and reopens the --output-file target so each run's
// report fully replaces the previous one. Returns nil when output goes to
// stdout.
func openOutputFile() (*os.File, error) {
	if outputFileFlag == "" {
		return nil, nil
	}
	return os.Create(outputFileFlag)
}

func runCommand(cmd *cobra.Command, args []string) error {
	outWriter, err := openOutputFile()
	if err != nil {
		return fmt.Errorf("cannot create output file: %w", err)
	}
	if outWriter != nil {
		defer outWriter.Close()
	}

	formatter := newFormatter(outWriter)
	formatter.FormatHeader(version)

	fileConfig, err := config.LoadConfig(configFlag)
	if err != nil {
		formatter.FormatError(fmt.Errorf("loading config: %w", err))
		os.Exit(ExitConfigError)
	}

	manifestPath := fileConfig.DefaultManifest
	if len(args) > 0 {
		manifestPath = args[0]
	}

	runOnce := func(formatter Formatter) (*runner.RunResult, string, error) {
		cases := suite.Cases()
		suiteName := "ctskit"

		var m *manifest.Manifest
		if manifestPath != "" {
			m, err = manifest.Load(manifestPath)
			if err != nil {
				return nil, "", err
			}
			cases = m.Filter(cases)
			suiteName = m.Suite
		}

		var tagsFilter []string
		if tagsFlag != "" {
			for _, t := range strings.Split(tagsFlag, ",") {
				t = strings.TrimSpace(t)
				if t != "" {
					tagsFilter = append(tagsFilter, t)
				}
			}
		}

		// CLI flags override the manifest, the manifest overrides the
		// config file.
		interop := fileConfig.GetOpenCLInterop()
		if m != nil && m.Interop != nil {
			interop = *m.Interop
		}
		if cmd.Flags().Changed("interop") {
			interop = interopFlag
		}

		parallel := fileConfig.GetParallel()
		if m != nil && m.Parallel != nil {
			parallel = *m.Parallel
		}
		if cmd.Flags().Changed("parallel") {
			parallel = parallelFlag
		}

		concurrency := concurrencyFlag
		if !cmd.Flags().Changed("concurrency") && fileConfig.Concurrency > 0 {
			concurrency = fileConfig.Concurrency
		}

		cfg := &runner.Config{
			NameFilter:  nameFlag,
			TagsFilter:  tagsFilter,
			Parallel:    parallel,
			Concurrency: concurrency,
			Bail:        bailFlag || fileConfig.GetBail(),
			Verbose:     verboseFlag > 0 || fileConfig.GetVerbose(),
			Interop:     interop,
		}

		var opts []runner.RunnerOption
		var collector *stats.Collector
		if cfg.Verbose {
			collector = stats.NewCollector()
			opts = append(opts, runner.WithStats(collector))
		}

		result := runner.NewRunner(cfg, opts...).Run(cases)
		formatter.FormatResult(result)

		if collector != nil && strings.ToLower(outputFlag) == "console" {
			s := collector.Summary()
			if s.Count > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Case durations: p50=%s p95=%s p99=%s\n",
					s.P50.Round(time.Microsecond),
					s.P95.Round(time.Microsecond),
					s.P99.Round(time.Microsecond))
			}
		}
		return result, suiteName, nil
	}

	result, suiteName, err := runOnce(formatter)
	if err != nil {
		formatter.FormatError(err)
		os.Exit(ExitManifestError)
	}

	if flushable, ok := formatter.(Flushable); ok {
		if err := flushable.Flush(result.Duration); err != nil {
			return fmt.Errorf("error writing output: %w", err)
		}
	}

	historyPath := historyFlag
	if historyPath == "" {
		historyPath = fileConfig.HistoryDB
	}
	if historyPath != "" {
		if err := recordHistory(historyPath, suiteName, result); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to record history: %v\n", err)
		}
	}

	if !watchFlag {
		if result.Failed > 0 {
			os.Exit(ExitTestFailure)
		}
		return nil
	}

	// Watch mode: re-run when the manifest or the config file changes.
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]bool)
	watchFile := func(path string) {
		if path == "" {
			return
		}
		dir := filepath.Dir(path)
		if !watched[dir] {
			if err := watcher.Add(dir); err != nil {
				formatter.FormatError(fmt.Errorf("failed to watch %s: %w", dir, err))
				return
			}
			watched[dir] = true
		}
	}
	watchFile(manifestPath)
	watchFile(configFlag)

	fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n\n")

	var debounceTimer *time.Timer

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Has(fsnotify.Write) && isWatchedFile(event.Name, manifestPath, configFlag) {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(WatchDebounceDelay, func() {
					fmt.Fprintf(cmd.OutOrStdout(), "\n\nFile changed: %s\nRe-running cases...\n\n", event.Name)

					// Fresh formatter and a recreated output file so
					// accumulating formats start clean and the report
					// reflects the latest run.
					w, err := openOutputFile()
					if err != nil {
						formatter.FormatError(fmt.Errorf("cannot create output file: %w", err))
						return
					}
					f := newFormatter(w)
					result, _, err := runOnce(f)
					if err != nil {
						f.FormatError(err)
					} else if flushable, ok := f.(Flushable); ok {
						_ = flushable.Flush(result.Duration)
					}
					if w != nil {
						_ = w.Close()
					}

					fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n")
				})
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			formatter.FormatError(fmt.Errorf("watcher error: %w", err))
		}
	}
}

func isWatchedFile(changed string, paths ...string) bool {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if filepath.Base(changed) == filepath.Base(p) {
			return true
		}
	}
	return false
}

func recordHistory(path, suiteName string, result *runner.RunResult) error {
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.RecordRun(suiteName, result)
	return err
}
