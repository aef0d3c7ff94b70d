package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sycl-conformance/ctskit/packages/logging"
)

func TestLogException_AllFieldsPresent(t *testing.T) {
	log := logging.NewCaseLog()

	LogException(log, &Error{
		Code:        Code{Value: -30, Message: "invalid value"},
		Category:    &Category{Name: StringPtr("sycl")},
		Description: StringPtr("queue construction failed"),
	})

	notes := log.Notes()
	require.Len(t, notes, 1)
	assert.Equal(t,
		"SYCL exception\n"+
			"category name - 'sycl'\n"+
			"code value - '-30'\n"+
			"code message - 'invalid value'\n"+
			"what - 'queue construction failed'\n",
		notes[0])
}

func TestLogException_AbsentFields(t *testing.T) {
	t.Run("nil category and description become nullptr", func(t *testing.T) {
		log := logging.NewCaseLog()

		LogException(log, &Error{
			Code: Code{Value: 0, Message: ""},
		})

		notes := log.Notes()
		require.Len(t, notes, 1)
		assert.Equal(t,
			"SYCL exception\n"+
				"category name - 'nullptr'\n"+
				"code value - '0'\n"+
				"code message - ''\n"+
				"what - 'nullptr'\n",
			notes[0])
	})

	t.Run("category present but name absent", func(t *testing.T) {
		log := logging.NewCaseLog()

		LogException(log, &Error{
			Code:     Code{Value: 1, Message: "m"},
			Category: &Category{},
		})

		notes := log.Notes()
		require.Len(t, notes, 1)
		assert.Contains(t, notes[0], "category name - 'nullptr'\n")
	})
}

func TestLogException_SingleNote(t *testing.T) {
	// The whole diagnostic must arrive as one note so parallel cases cannot
	// interleave partial lines.
	log := logging.NewCaseLog()

	LogException(log, &Error{Code: Code{Value: 1}})
	LogException(log, &Error{Code: Code{Value: 2}})

	assert.Len(t, log.Notes(), 2)
}

func TestError_ErrorString(t *testing.T) {
	withDesc := &Error{
		Code:        Code{Message: "code message"},
		Description: StringPtr("what text"),
	}
	assert.Equal(t, "what text", withDesc.Error())

	withoutDesc := &Error{Code: Code{Message: "code message"}}
	assert.Equal(t, "code message", withoutDesc.Error())
}
