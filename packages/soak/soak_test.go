package soak

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sycl-conformance/ctskit/packages/check"
	"github.com/sycl-conformance/ctskit/packages/core/suite"
	"github.com/sycl-conformance/ctskit/packages/logging"
)

func makeCase(name string, run suite.RunFunc) suite.Case {
	return suite.Case{Info: suite.Info{Name: name, File: name + ".go"}, Run: run}
}

func TestRunner_Run(t *testing.T) {
	t.Run("iterates until the duration elapses", func(t *testing.T) {
		cfg := &Config{
			Duration:    200 * time.Millisecond,
			Rate:        0, // unthrottled
			Concurrency: 2,
		}

		result, err := NewRunner(cfg).Run(context.Background(), []suite.Case{
			makeCase("pass", func(rec *check.Recorder, log logging.Sink) {
				check.Scalar(rec, 1, 1)
			}),
		})

		require.NoError(t, err)
		assert.Greater(t, result.Iterations, int64(0))
		assert.Equal(t, int64(0), result.Failures)
		assert.False(t, result.Failed())
		assert.Equal(t, result.Iterations, result.Stats.Count)
	})

	t.Run("counts failing iterations", func(t *testing.T) {
		cfg := &Config{
			Duration:    100 * time.Millisecond,
			Rate:        0,
			Concurrency: 1,
		}

		result, err := NewRunner(cfg).Run(context.Background(), []suite.Case{
			makeCase("fail", func(rec *check.Recorder, log logging.Sink) {
				check.Scalar(rec, 1, 2)
			}),
		})

		require.NoError(t, err)
		assert.Greater(t, result.Failures, int64(0))
		assert.Equal(t, result.Iterations, result.Failures)
		assert.True(t, result.Failed())
	})

	t.Run("panicking case counts as failure", func(t *testing.T) {
		cfg := &Config{
			Duration:    100 * time.Millisecond,
			Rate:        0,
			Concurrency: 1,
		}

		result, err := NewRunner(cfg).Run(context.Background(), []suite.Case{
			makeCase("panics", func(rec *check.Recorder, log logging.Sink) {
				panic("boom")
			}),
		})

		require.NoError(t, err)
		assert.Greater(t, result.Failures, int64(0))
	})

	t.Run("rate limit bounds iteration count", func(t *testing.T) {
		cfg := &Config{
			Duration:    300 * time.Millisecond,
			Rate:        10,
			Concurrency: 4,
		}

		result, err := NewRunner(cfg).Run(context.Background(), []suite.Case{
			makeCase("pass", func(rec *check.Recorder, log logging.Sink) {
				check.Scalar(rec, 1, 1)
			}),
		})

		require.NoError(t, err)
		// 10/s over 0.3s plus one burst token; generous upper bound.
		assert.LessOrEqual(t, result.Iterations, int64(10))
	})

	t.Run("no cases is a no-op", func(t *testing.T) {
		result, err := NewRunner(DefaultConfig()).Run(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, int64(0), result.Iterations)
	})

	t.Run("cancelled context stops the run", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		cfg := &Config{Duration: 10 * time.Second, Rate: 0, Concurrency: 1}
		result, err := NewRunner(cfg).Run(ctx, []suite.Case{
			makeCase("pass", func(rec *check.Recorder, log logging.Sink) {}),
		})

		require.NoError(t, err)
		assert.Equal(t, int64(0), result.Iterations)
	})

	t.Run("per case summaries cover soaked cases", func(t *testing.T) {
		cfg := &Config{Duration: 200 * time.Millisecond, Rate: 0, Concurrency: 2}

		result, err := NewRunner(cfg).Run(context.Background(), []suite.Case{
			makeCase("only", func(rec *check.Recorder, log logging.Sink) {
				check.Scalar(rec, 1, 1)
			}),
		})

		require.NoError(t, err)
		require.Contains(t, result.PerCase, "only")
		assert.Greater(t, result.PerCase["only"].Count, int64(0))
	})
}

func TestNewRunner_Defaults(t *testing.T) {
	r := NewRunner(nil)
	assert.Equal(t, DefaultConfig().Duration, r.config.Duration)

	// Concurrency below one is clamped.
	r = NewRunner(&Config{Duration: time.Second, Concurrency: 0})
	assert.Equal(t, 1, cap(r.sem))
}
