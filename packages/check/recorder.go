package check

import "sync"

// Result is one recorded check outcome.
type Result struct {
	Context  string // contextual info attached via Info, e.g. an element index
	Passed   bool
	Explicit bool // true for Fail-style failures, false for comparisons
	Message  string
	Expected any
	Actual   any
}

// Recorder collects check results for a single test case. One recorder is
// created per case; it is safe for concurrent use so a case may fan out
// sub-checks across goroutines.
type Recorder struct {
	mu      sync.Mutex
	pending string // context attached to the next recorded result
	results []*Result
	interop bool
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithInterop selects the enabled variant of the OpenCL interop guard.
// The flag comes from configuration at startup, not from build tags, so test
// files compile and run identically in both modes.
func WithInterop(enabled bool) RecorderOption {
	return func(r *Recorder) {
		r.interop = enabled
	}
}

func NewRecorder(opts ...RecorderOption) *Recorder {
	r := &Recorder{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Info attaches contextual text to the next recorded result. A second call
// before a record replaces the pending context.
func (r *Recorder) Info(ctx string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = ctx
}

// RecordWithContext appends a comparison outcome with its context attached
// in the same critical section. Helpers that derive a context from their
// arguments use this so a concurrent goroutine's Info can never land between
// the context and the record. Any pending Info context is left untouched.
func (r *Recorder) RecordWithContext(ctx string, passed bool, msg string, expected, actual any) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, &Result{
		Context:  ctx,
		Passed:   passed,
		Message:  msg,
		Expected: expected,
		Actual:   actual,
	})
	return passed
}

// Record appends a comparison outcome, consuming any pending context.
// It returns passed so helpers can record and report in one expression.
func (r *Recorder) Record(passed bool, msg string, expected, actual any) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, &Result{
		Context:  r.pending,
		Passed:   passed,
		Message:  msg,
		Expected: expected,
		Actual:   actual,
	})
	r.pending = ""
	return passed
}

// FailExplicit appends a non-comparison failure record.
func (r *Recorder) FailExplicit(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, &Result{
		Context:  r.pending,
		Passed:   false,
		Explicit: true,
		Message:  msg,
	})
	r.pending = ""
}

// Results returns a copy of the recorded results in order.
func (r *Recorder) Results() []*Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Result, len(r.results))
	copy(out, r.results)
	return out
}

// Passed reports whether every recorded check passed. A recorder with no
// records counts as passed; the runner treats such cases as passing, matching
// a test body that made no checks.
func (r *Recorder) Passed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, res := range r.results {
		if !res.Passed {
			return false
		}
	}
	return true
}

// Failed returns the number of failed records.
func (r *Recorder) Failed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, res := range r.results {
		if !res.Passed {
			n++
		}
	}
	return n
}

func (r *Recorder) interopEnabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.interop
}
