package device

import (
	"strconv"
	"strings"

	"github.com/sycl-conformance/ctskit/packages/logging"
)

// absentValue stands in for optional fields the error object did not supply.
const absentValue = "nullptr"

// LogException composes the diagnostic for a device error and emits it as a
// single note. One note per exception keeps the diagnostic atomic when cases
// run in parallel; partial lines from two cases can never interleave.
func LogException(sink logging.Sink, e *Error) {
	var b strings.Builder
	b.WriteString("SYCL exception\n")

	appendField(&b, "category name", categoryName(e))
	appendField(&b, "code value", strconv.Itoa(e.Code.Value))
	appendField(&b, "code message", e.Code.Message)
	appendField(&b, "what", description(e))

	sink.Note(b.String())
}

func appendField(b *strings.Builder, label, value string) {
	b.WriteString(label)
	b.WriteString(" - '")
	b.WriteString(value)
	b.WriteString("'\n")
}

func categoryName(e *Error) string {
	if e.Category == nil || e.Category.Name == nil {
		return absentValue
	}
	return *e.Category.Name
}

func description(e *Error) string {
	if e.Description == nil {
		return absentValue
	}
	return *e.Description
}
