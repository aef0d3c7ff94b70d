package check

import (
	"fmt"
	"reflect"
	"strconv"
)

// Value compares received against expected at a given sequence index.
// The index is attached as context so a reporter can point at the failing
// element. Returns the equality outcome.
func Value[T comparable](rec *Recorder, received, expected T, index int) bool {
	ok := received == expected
	msg := ""
	if !ok {
		msg = fmt.Sprintf("expected %v, got %v", expected, received)
	}
	return rec.RecordWithContext("For element "+strconv.Itoa(index), ok, msg, expected, received)
}

// Scalar compares received against expected with no extra context.
// Returns the equality outcome.
func Scalar[T comparable](rec *Recorder, received, expected T) bool {
	ok := received == expected
	msg := ""
	if !ok {
		msg = fmt.Sprintf("expected %v, got %v", expected, received)
	}
	return rec.Record(ok, msg, expected, received)
}

// Type compares the dynamic types of a and b. Both type names are attached
// as context so a failure shows exactly which types diverged. Returns the
// identity outcome.
func Type(rec *Recorder, a, b any) bool {
	ta := reflect.TypeOf(a)
	tb := reflect.TypeOf(b)
	ok := ta == tb
	msg := ""
	if !ok {
		msg = fmt.Sprintf("types differ: %s vs %s", typeName(ta), typeName(tb))
	}
	return rec.RecordWithContext("For types "+typeName(ta)+" and "+typeName(tb),
		ok, msg, typeName(ta), typeName(tb))
}

// Fail unconditionally marks the current case as failed. The message is the
// concatenation of parts, fmt.Sprint style: Fail(rec, "x", 1, "y") records
// the message "x1y". Execution continues; Fail never aborts the process.
func Fail(rec *Recorder, parts ...any) {
	rec.FailExplicit(fmt.Sprint(parts...))
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
