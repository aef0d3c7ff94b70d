// Package runner executes registered conformance cases and aggregates
// per-case results.
//
// It provides:
//   - Sequential execution with optional bail-on-first-failure
//   - Parallel execution with semaphore-bounded concurrency
//   - Name and tag filtering
//   - Panic recovery: a panicking case fails; the run continues
//   - Optional duration recording into a stats collector
//
// Each case runs with its own check recorder and note log, so parallel cases
// never share mutable state.
package runner
