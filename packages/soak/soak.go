// Package soak re-runs conformance cases for a sustained period to expose
// flaky behavior: timing-dependent failures, leaked state between
// iterations, and drift in case durations.
package soak

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/sycl-conformance/ctskit/packages/check"
	"github.com/sycl-conformance/ctskit/packages/core/suite"
	"github.com/sycl-conformance/ctskit/packages/logging"
	"github.com/sycl-conformance/ctskit/packages/stats"
)

type Config struct {
	Duration    time.Duration
	Rate        float64 // target case executions per second
	Concurrency int
	Interop     bool
}

func DefaultConfig() *Config {
	return &Config{
		Duration:    30 * time.Second,
		Rate:        10,
		Concurrency: 5,
	}
}

type Runner struct {
	config  *Config
	limiter *rate.Limiter
	sem     chan struct{}
	stats   *stats.Collector
}

func NewRunner(cfg *Config) *Runner {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	r := &Runner{
		config: cfg,
		sem:    make(chan struct{}, concurrency),
		stats:  stats.NewCollector(),
	}
	if cfg.Rate > 0 {
		r.limiter = rate.NewLimiter(rate.Limit(cfg.Rate), 1)
	}
	return r
}

// Result summarizes a soak run.
type Result struct {
	Iterations int64
	Failures   int64
	Duration   time.Duration
	Stats      stats.Summary
	PerCase    map[string]stats.Summary
}

// Failed reports whether any iteration failed.
func (r *Result) Failed() bool {
	return r.Failures > 0
}

// Run executes cases repeatedly until the configured duration elapses or ctx
// is cancelled. Cases are picked uniformly at random; each iteration runs
// with a fresh recorder so iterations are independent.
func (r *Runner) Run(ctx context.Context, cases []suite.Case) (*Result, error) {
	if len(cases) == 0 {
		return &Result{PerCase: map[string]stats.Summary{}}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.config.Duration)
	defer cancel()

	var (
		wg         sync.WaitGroup
		iterations atomic.Int64
		failures   atomic.Int64
	)

	start := time.Now()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				break
			}
		} else if ctx.Err() != nil {
			break
		}

		select {
		case r.sem <- struct{}{}:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}

		c := cases[rng.Intn(len(cases))]
		wg.Add(1)
		go func(tc suite.Case) {
			defer wg.Done()
			defer func() { <-r.sem }()

			iterations.Add(1)
			if !r.runOnce(tc) {
				failures.Add(1)
			}
		}(c)
	}

	wg.Wait()

	result := &Result{
		Iterations: iterations.Load(),
		Failures:   failures.Load(),
		Duration:   time.Since(start),
		Stats:      r.stats.Summary(),
		PerCase:    make(map[string]stats.Summary),
	}
	for _, name := range r.stats.Names() {
		if s, ok := r.stats.CaseSummary(name); ok {
			result.PerCase[name] = s
		}
	}
	return result, nil
}

func (r *Runner) runOnce(c suite.Case) (passed bool) {
	rec := check.NewRecorder(check.WithInterop(r.config.Interop))
	log := logging.NewCaseLog()

	defer func() {
		if p := recover(); p != nil {
			passed = false
		}
	}()

	start := time.Now()
	c.Run(rec, log)
	r.stats.Record(c.Info.Name, time.Since(start))

	return rec.Passed()
}
