// Package selfcheck registers a small built-in suite that exercises the
// harness through its public surface. Each case drives a scratch recorder the
// way a real test file would and asserts the observed behavior on the live
// one, so "ctskit run" verifies the installation out of the box.
package selfcheck

import (
	"strings"

	"github.com/sycl-conformance/ctskit/packages/check"
	"github.com/sycl-conformance/ctskit/packages/core/suite"
	"github.com/sycl-conformance/ctskit/packages/device"
	"github.com/sycl-conformance/ctskit/packages/logging"
)

var tags = []string{"selfcheck"}

func register(name string, run suite.RunFunc) {
	var info suite.Info
	suite.SetInfo(&info, name, "selfcheck.go")
	suite.MustRegister(suite.Case{Info: info, Tags: tags, Run: run})
}

func init() {
	register("selfcheck_value_comparison", valueComparison)
	register("selfcheck_scalar_comparison", scalarComparison)
	register("selfcheck_type_comparison", typeComparison)
	register("selfcheck_explicit_failure", explicitFailure)
	register("selfcheck_namespace_token", namespaceToken)
	register("selfcheck_exception_diagnostic", exceptionDiagnostic)
	register("selfcheck_interop_guard", interopGuard)
}

// valueComparison verifies element checks on a scratch recorder: the outcome
// is both returned and recorded, and the element index lands in the context.
func valueComparison(rec *check.Recorder, log logging.Sink) {
	scratch := check.NewRecorder()

	check.Scalar(rec, check.Value(scratch, 42, 42, 0), true)
	check.Scalar(rec, check.Value(scratch, 41, 42, 7), false)

	results := scratch.Results()
	if !check.Scalar(rec, len(results), 2) {
		return
	}
	check.Scalar(rec, results[0].Passed, true)
	check.Scalar(rec, results[1].Passed, false)
	check.Scalar(rec, results[1].Context, "For element 7")
}

func scalarComparison(rec *check.Recorder, log logging.Sink) {
	scratch := check.NewRecorder()

	check.Scalar(rec, check.Scalar(scratch, "abc", "abc"), true)
	check.Scalar(rec, check.Scalar(scratch, "abc", "abd"), false)
	check.Scalar(rec, scratch.Failed(), 1)
	check.Scalar(rec, scratch.Passed(), false)
}

func typeComparison(rec *check.Recorder, log logging.Sink) {
	scratch := check.NewRecorder()

	check.Scalar(rec, check.Type(scratch, int32(1), int32(2)), true)
	check.Scalar(rec, check.Type(scratch, int32(1), int64(1)), false)

	results := scratch.Results()
	if !check.Scalar(rec, len(results), 2) {
		return
	}
	check.Scalar(rec, strings.Contains(results[1].Context, "int32"), true)
	check.Scalar(rec, strings.Contains(results[1].Context, "int64"), true)
}

// explicitFailure verifies that Fail concatenates its parts without
// separators and never stops execution.
func explicitFailure(rec *check.Recorder, log logging.Sink) {
	scratch := check.NewRecorder()

	check.Fail(scratch, "x", 1, "y")
	reached := true

	check.Scalar(rec, reached, true)
	results := scratch.Results()
	if !check.Scalar(rec, len(results), 1) {
		return
	}
	check.Scalar(rec, results[0].Message, "x1y")
	check.Scalar(rec, results[0].Explicit, true)
}

func namespaceToken(rec *check.Recorder, log logging.Sink) {
	check.Scalar(rec, suite.Namespace("queue_constructors"), "queue_constructors__")
	check.Scalar(rec, suite.Namespace(""), "__")
}

// exceptionDiagnostic verifies the exception log format, including the
// nullptr placeholder for absent fields.
func exceptionDiagnostic(rec *check.Recorder, log logging.Sink) {
	scratch := logging.NewCaseLog()

	device.LogException(scratch, &device.Error{
		Code:        device.Code{Value: -30, Message: "invalid value"},
		Category:    &device.Category{Name: device.StringPtr("sycl")},
		Description: device.StringPtr("queue construction failed"),
	})
	device.LogException(scratch, &device.Error{
		Code: device.Code{Value: 0},
	})

	notes := scratch.Notes()
	if !check.Scalar(rec, len(notes), 2) {
		return
	}
	check.Scalar(rec, notes[0],
		"SYCL exception\n"+
			"category name - 'sycl'\n"+
			"code value - '-30'\n"+
			"code message - 'invalid value'\n"+
			"what - 'queue construction failed'\n")
	check.Scalar(rec, strings.Count(notes[1], "'nullptr'"), 2)
}

// interopGuard verifies both variants of the interop success check.
func interopGuard(rec *check.Recorder, log logging.Sink) {
	enabled := check.NewRecorder(check.WithInterop(true))
	check.Scalar(rec, check.Success(enabled, check.CLSuccess), true)
	check.Scalar(rec, check.Success(enabled, -5), false)
	check.Scalar(rec, enabled.Failed(), 1)

	disabled := check.NewRecorder(check.WithInterop(false))
	check.Scalar(rec, check.Success(disabled, check.CLSuccess), false)
	results := disabled.Results()
	if !check.Scalar(rec, len(results), 1) {
		return
	}
	check.Scalar(rec, results[0].Message, check.DisabledInteropMessage)
}
