package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccess_InteropEnabled(t *testing.T) {
	t.Run("CL_SUCCESS passes", func(t *testing.T) {
		rec := NewRecorder(WithInterop(true))
		ok := Success(rec, CLSuccess)

		assert.True(t, ok)
		assert.True(t, rec.Passed())
	})

	t.Run("error code fails with the code in the message", func(t *testing.T) {
		rec := NewRecorder(WithInterop(true))
		ok := Success(rec, -5)

		assert.False(t, ok)
		results := rec.Results()
		require.Len(t, results, 1)
		assert.Contains(t, results[0].Message, "-5")
		assert.Equal(t, CLSuccess, results[0].Expected)
		assert.Equal(t, int64(-5), results[0].Actual)
	})
}

func TestSuccess_InteropDisabled(t *testing.T) {
	t.Run("even a success code fails", func(t *testing.T) {
		rec := NewRecorder(WithInterop(false))
		ok := Success(rec, CLSuccess)

		assert.False(t, ok)
		results := rec.Results()
		require.Len(t, results, 1)
		assert.True(t, results[0].Explicit)
		assert.Equal(t, DisabledInteropMessage, results[0].Message)
	})

	t.Run("default recorder runs the disabled variant", func(t *testing.T) {
		rec := NewRecorder()
		assert.False(t, Success(rec, CLSuccess))
		assert.Equal(t, 1, rec.Failed())
	})

	t.Run("every call records a failure", func(t *testing.T) {
		rec := NewRecorder(WithInterop(false))
		Success(rec, CLSuccess)
		Success(rec, -1)

		assert.Equal(t, 2, rec.Failed())
	})
}
