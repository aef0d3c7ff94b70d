// Package device models the error objects thrown by the API under test and
// formats their diagnostics for the logging sink.
package device

// Code is the machine-readable error code carried by a device error.
type Code struct {
	Value   int
	Message string
}

// Category groups related error codes. Name may be absent on exotic
// backends; readers must treat a nil Name as missing rather than empty.
type Category struct {
	Name *string
}

// Error is a thrown-error object surfaced by the API under test. Category
// and Description are optional: either pointer may be nil and formatters
// substitute a placeholder instead of dereferencing.
type Error struct {
	Code        Code
	Category    *Category
	Description *string
}

// Error implements the error interface, preferring the description and
// falling back to the code message.
func (e *Error) Error() string {
	if e.Description != nil {
		return *e.Description
	}
	return e.Code.Message
}

// StringPtr returns a pointer to s, for building optional fields in tests
// and adapters.
func StringPtr(s string) *string {
	return &s
}
