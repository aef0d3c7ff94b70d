package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sycl-conformance/ctskit/packages/core/runner"
)

// JSONOutput represents the complete JSON report structure
type JSONOutput struct {
	Summary  JSONSummary `json:"summary"`
	Cases    []JSONCase  `json:"cases"`
	Duration float64     `json:"duration"`
	Time     string      `json:"time"`
}

// JSONSummary represents the run summary
type JSONSummary struct {
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// JSONCase represents a single case result
type JSONCase struct {
	Name       string      `json:"name"`
	File       string      `json:"file"`
	Passed     bool        `json:"passed"`
	Skipped    bool        `json:"skipped,omitempty"`
	SkipReason string      `json:"skipReason,omitempty"`
	Duration   float64     `json:"duration"`
	Checks     []JSONCheck `json:"checks,omitempty"`
	Notes      []string    `json:"notes,omitempty"`
}

// JSONCheck represents one recorded check
type JSONCheck struct {
	Context  string `json:"context,omitempty"`
	Passed   bool   `json:"passed"`
	Explicit bool   `json:"explicit,omitempty"`
	Message  string `json:"message,omitempty"`
	Expected any    `json:"expected,omitempty"`
	Actual   any    `json:"actual,omitempty"`
}

// JSONFormatter formats run results as a JSON report
type JSONFormatter struct {
	writer io.Writer
	cases  []JSONCase
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer: os.Stdout,
		cases:  make([]JSONCase, 0),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JSONWithWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

func (f *JSONFormatter) FormatResult(result *runner.RunResult) {
	for _, r := range result.Results {
		c := JSONCase{
			Name:     r.Name,
			File:     r.File,
			Passed:   r.Passed,
			Skipped:  r.Skipped,
			Duration: float64(r.Duration.Milliseconds()),
			Notes:    r.Notes,
		}

		if r.SkipReason != "" && r.SkipReason != "filtered out" {
			c.SkipReason = r.SkipReason
		}

		if len(r.Checks) > 0 {
			c.Checks = make([]JSONCheck, len(r.Checks))
			for i, chk := range r.Checks {
				c.Checks[i] = JSONCheck{
					Context:  chk.Context,
					Passed:   chk.Passed,
					Explicit: chk.Explicit,
					Message:  chk.Message,
					Expected: renderValue(chk.Expected),
					Actual:   renderValue(chk.Actual),
				}
			}
		}

		f.cases = append(f.cases, c)
	}
}

// renderValue keeps check operands JSON-encodable; anything exotic becomes
// its string form.
func renderValue(v any) any {
	if v == nil {
		return nil
	}
	switch v.(type) {
	case bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (f *JSONFormatter) FormatError(err error) {
	// Errors are included in individual case results
}

func (f *JSONFormatter) FormatHeader(version string) {
	// No header needed for JSON output
}

// Flush writes the accumulated JSON report
func (f *JSONFormatter) Flush(totalDuration time.Duration) error {
	var passed, failed, skipped int
	for _, c := range f.cases {
		if c.Skipped {
			skipped++
		} else if c.Passed {
			passed++
		} else {
			failed++
		}
	}

	report := JSONOutput{
		Summary: JSONSummary{
			Total:   len(f.cases),
			Passed:  passed,
			Failed:  failed,
			Skipped: skipped,
		},
		Cases:    f.cases,
		Duration: float64(totalDuration.Milliseconds()),
		Time:     time.Now().Format(time.RFC3339),
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
