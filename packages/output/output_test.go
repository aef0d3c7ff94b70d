package output

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sycl-conformance/ctskit/packages/check"
	"github.com/sycl-conformance/ctskit/packages/core/runner"
)

func sampleResult() *runner.RunResult {
	return &runner.RunResult{
		Results: []*runner.CaseResult{
			{
				Name:     "queue_properties",
				File:     "queue_properties.go",
				Passed:   true,
				Duration: 12 * time.Millisecond,
			},
			{
				Name:     "queue_constructors",
				File:     "queue_constructors.go",
				Passed:   false,
				Duration: 8 * time.Millisecond,
				Checks: []*check.Result{
					{
						Context:  "For element 3",
						Passed:   false,
						Message:  "expected 4, got 5",
						Expected: 4,
						Actual:   5,
					},
				},
				Notes: []string{"SYCL exception\nwhat - 'boom'\n"},
			},
			{
				Name:       "buffer_api",
				File:       "buffer_api.go",
				Skipped:    true,
				SkipReason: "filtered out",
			},
		},
		Duration: 20 * time.Millisecond,
		Passed:   1,
		Failed:   1,
		Skipped:  1,
	}
}

func TestConsoleFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true))

	f.FormatHeader("1.2.3")
	f.FormatResult(sampleResult())

	out := buf.String()
	assert.Contains(t, out, "ctskit 1.2.3")
	assert.Contains(t, out, "✓ queue_properties")
	assert.Contains(t, out, "✗ queue_constructors")
	assert.Contains(t, out, "- buffer_api")
	assert.Contains(t, out, "For element 3")
	assert.Contains(t, out, "Expected: 4")
	assert.Contains(t, out, "Actual:   5")
	assert.Contains(t, out, "1 passed")
	assert.Contains(t, out, "1 failed")
	assert.Contains(t, out, "1 skipped")
	assert.Contains(t, out, "3 total")
	// Notes print for failing cases even without verbose.
	assert.Contains(t, out, "SYCL exception")
}

func TestConsoleFormatter_Error(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true))

	f.FormatError(assert.AnError)
	assert.Contains(t, buf.String(), "error:")
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(JSONWithWriter(&buf))

	f.FormatHeader("1.2.3") // no-op for JSON
	f.FormatResult(sampleResult())
	require.NoError(t, f.Flush(20*time.Millisecond))

	var report JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))

	assert.Equal(t, 3, report.Summary.Total)
	assert.Equal(t, 1, report.Summary.Passed)
	assert.Equal(t, 1, report.Summary.Failed)
	assert.Equal(t, 1, report.Summary.Skipped)
	assert.Equal(t, float64(20), report.Duration)
	assert.NotEmpty(t, report.Time)

	require.Len(t, report.Cases, 3)
	assert.Equal(t, "queue_properties", report.Cases[0].Name)
	assert.True(t, report.Cases[0].Passed)

	failed := report.Cases[1]
	assert.False(t, failed.Passed)
	require.Len(t, failed.Checks, 1)
	assert.Equal(t, "For element 3", failed.Checks[0].Context)
	assert.Equal(t, float64(4), failed.Checks[0].Expected)

	assert.True(t, report.Cases[2].Skipped)
}

func TestJSONFormatter_RenderValue(t *testing.T) {
	assert.Equal(t, 42, renderValue(42))
	assert.Equal(t, "s", renderValue("s"))
	assert.Equal(t, true, renderValue(true))
	assert.Nil(t, renderValue(nil))
	// Non-primitive operands become their string form.
	assert.Equal(t, "[1 2]", renderValue([]int{1, 2}))
}

func TestJUnitFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewJUnitFormatter(JUnitWithWriter(&buf), JUnitWithSuiteName("queue"))

	f.FormatResult(sampleResult())
	require.NoError(t, f.Flush(20*time.Millisecond))

	out := buf.String()
	assert.Contains(t, out, `<?xml version="1.0" encoding="UTF-8"?>`)

	var suites JUnitTestSuites
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &suites))

	assert.Equal(t, 3, suites.Tests)
	assert.Equal(t, 1, suites.Failures)
	assert.Equal(t, 1, suites.Skipped)
	require.Len(t, suites.TestSuites, 1)

	ts := suites.TestSuites[0]
	assert.Equal(t, "queue", ts.Name)
	require.Len(t, ts.TestCases, 3)

	failed := ts.TestCases[1]
	require.NotNil(t, failed.Failure)
	assert.Contains(t, failed.Failure.Content, "For element 3")
	assert.Contains(t, failed.Failure.Content, "expected 4, got 5")

	skipped := ts.TestCases[2]
	require.NotNil(t, skipped.Skipped)
	assert.Equal(t, "filtered out", skipped.Skipped.Message)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "short", formatValue("short", 100))
	assert.Equal(t, "abc...", formatValue("abcdef", 3))
}
