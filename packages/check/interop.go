package check

import "fmt"

// CLSuccess is the sentinel an OpenCL call returns on success.
const CLSuccess int64 = 0

// DisabledInteropMessage is recorded whenever an interop check runs in a
// configuration without OpenCL interop support. A disabled capability
// surfaces as a failure, never as a silently skipped check.
const DisabledInteropMessage = "OpenCL interop tests are not enabled"

// Success evaluates an OpenCL error code against the CL_SUCCESS sentinel.
// Which variant runs is chosen by the recorder's interop flag, set from
// configuration at startup: with interop enabled the code is compared and
// the outcome returned; with interop disabled every call records an explicit
// failure with DisabledInteropMessage and returns false.
func Success(rec *Recorder, code int64) bool {
	if rec.interopEnabled() {
		return successEnabled(rec, code)
	}
	return successDisabled(rec)
}

func successEnabled(rec *Recorder, code int64) bool {
	ok := code == CLSuccess
	msg := ""
	if !ok {
		msg = fmt.Sprintf("expected CL_SUCCESS, got error code %d", code)
	}
	return rec.Record(ok, msg, CLSuccess, code)
}

func successDisabled(rec *Recorder) bool {
	rec.FailExplicit(DisabledInteropMessage)
	return false
}
