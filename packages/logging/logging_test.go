package logging

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCaseLog(t *testing.T) {
	t.Run("collects notes in order", func(t *testing.T) {
		log := NewCaseLog()
		log.Note("first")
		log.Note("second")

		assert.Equal(t, []string{"first", "second"}, log.Notes())
	})

	t.Run("notes are a copy", func(t *testing.T) {
		log := NewCaseLog()
		log.Note("one")

		first := log.Notes()
		log.Note("two")

		assert.Len(t, first, 1)
		assert.Len(t, log.Notes(), 2)
	})

	t.Run("safe for concurrent notes", func(t *testing.T) {
		log := NewCaseLog()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				log.Note("note")
			}()
		}
		wg.Wait()

		assert.Len(t, log.Notes(), 50)
	})
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewWriterSink(&buf)

	sink.Note("hello")
	sink.Note("world")

	assert.Equal(t, "hello\nworld\n", buf.String())
}
