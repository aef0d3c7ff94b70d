package runner

import (
	"fmt"
	"sync"
	"time"

	"github.com/sycl-conformance/ctskit/packages/check"
	"github.com/sycl-conformance/ctskit/packages/core/suite"
	"github.com/sycl-conformance/ctskit/packages/logging"
	"github.com/sycl-conformance/ctskit/packages/stats"
)

// DefaultConcurrency is the default number of concurrent cases in parallel mode.
const DefaultConcurrency = 5

type Config struct {
	NameFilter  string
	TagsFilter  []string
	Parallel    bool
	Concurrency int
	Bail        bool
	Verbose     bool
	Interop     bool
}

type Runner struct {
	config *Config
	stats  *stats.Collector
}

type RunnerOption func(*Runner)

// WithStats records each case's duration into the given collector.
func WithStats(c *stats.Collector) RunnerOption {
	return func(r *Runner) {
		r.stats = c
	}
}

func NewRunner(cfg *Config, opts ...RunnerOption) *Runner {
	if cfg == nil {
		cfg = &Config{}
	}
	r := &Runner{config: cfg}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type RunResult struct {
	Results  []*CaseResult
	Duration time.Duration
	Passed   int
	Failed   int
	Skipped  int
}

type CaseResult struct {
	Name       string
	File       string
	Passed     bool
	Skipped    bool
	SkipReason string
	Duration   time.Duration
	Checks     []*check.Result
	Notes      []string
}

// Run executes the given cases according to the runner configuration and
// returns the aggregated result. Bail stops after the first failing case in
// sequential mode; parallel mode always runs every selected case.
func (r *Runner) Run(cases []suite.Case) *RunResult {
	start := time.Now()
	result := &RunResult{}

	var selected []suite.Case
	for _, c := range cases {
		if !r.shouldRun(c) {
			result.Results = append(result.Results, &CaseResult{
				Name:       c.Info.Name,
				File:       c.Info.File,
				Skipped:    true,
				SkipReason: "filtered out",
			})
			result.Skipped++
			continue
		}
		selected = append(selected, c)
	}

	if r.config.Parallel {
		for _, caseResult := range r.runParallel(selected) {
			result.Results = append(result.Results, caseResult)
			if caseResult.Passed {
				result.Passed++
			} else {
				result.Failed++
			}
		}
	} else {
		for _, c := range selected {
			caseResult := r.runCase(c)
			result.Results = append(result.Results, caseResult)
			if caseResult.Passed {
				result.Passed++
			} else {
				result.Failed++
				if r.config.Bail {
					break
				}
			}
		}
	}

	result.Duration = time.Since(start)
	return result
}

func (r *Runner) runParallel(cases []suite.Case) []*CaseResult {
	concurrency := r.config.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]*CaseResult, len(cases))
	var wg sync.WaitGroup
	sem := make(chan struct{}, concurrency)

	for i, c := range cases {
		wg.Add(1)
		sem <- struct{}{} // acquire semaphore

		go func(idx int, tc suite.Case) {
			defer wg.Done()
			defer func() { <-sem }() // release semaphore

			results[idx] = r.runCase(tc)
		}(i, c)
	}

	wg.Wait()
	return results
}

// runCase executes one case with a fresh recorder and log. A panic inside
// the case body becomes an explicit failure on that case; it never takes
// down the run.
func (r *Runner) runCase(c suite.Case) *CaseResult {
	rec := check.NewRecorder(check.WithInterop(r.config.Interop))
	log := logging.NewCaseLog()

	start := time.Now()
	runBody(c, rec, log)
	elapsed := time.Since(start)

	if r.stats != nil {
		r.stats.Record(c.Info.Name, elapsed)
	}

	return &CaseResult{
		Name:     c.Info.Name,
		File:     c.Info.File,
		Passed:   rec.Passed(),
		Duration: elapsed,
		Checks:   rec.Results(),
		Notes:    log.Notes(),
	}
}

func runBody(c suite.Case, rec *check.Recorder, log *logging.CaseLog) {
	defer func() {
		if p := recover(); p != nil {
			check.Fail(rec, fmt.Sprintf("panic in test case: %v", p))
		}
	}()
	c.Run(rec, log)
}

func (r *Runner) shouldRun(c suite.Case) bool {
	if r.config.NameFilter != "" {
		if !matchesPattern(c.Info.Name, r.config.NameFilter) {
			return false
		}
	}

	if len(r.config.TagsFilter) > 0 {
		if !hasAnyTag(c.Tags, r.config.TagsFilter) {
			return false
		}
	}

	return true
}

func matchesPattern(name, pattern string) bool {
	if pattern == "" {
		return true
	}

	if pattern == "*" {
		return true
	}

	if len(pattern) > 1 && pattern[0] == '*' && pattern[len(pattern)-1] == '*' {
		substr := pattern[1 : len(pattern)-1]
		for i := 0; i <= len(name)-len(substr); i++ {
			if name[i:i+len(substr)] == substr {
				return true
			}
		}
		return false
	}

	if pattern[0] == '*' {
		suffix := pattern[1:]
		return len(name) >= len(suffix) && name[len(name)-len(suffix):] == suffix
	}

	if pattern[len(pattern)-1] == '*' {
		prefix := pattern[:len(pattern)-1]
		return len(name) >= len(prefix) && name[:len(prefix)] == prefix
	}

	return name == pattern
}

func hasAnyTag(tags []string, filters []string) bool {
	for _, filter := range filters {
		for _, tag := range tags {
			if tag == filter {
				return true
			}
		}
	}
	return false
}
