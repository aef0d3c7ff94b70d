// Package check adapts the result-recording needs of conformance test cases
// to a small assertion surface.
//
// Every comparison helper records one pass/fail result on the case's Recorder
// and also returns the boolean outcome, so call sites can stop a per-element
// loop as soon as one element has already failed:
//
//	for i, v := range values {
//		if !check.Value(rec, v, expected[i], i) {
//			break
//		}
//	}
//
// Explicit failures (check.Fail) are recorded with a distinct disposition so
// reporters can tell them apart from comparison failures. Nothing in this
// package aborts the process; a failed check only marks the current case.
package check
