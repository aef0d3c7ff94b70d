package logging

import (
	"fmt"
	"io"
	"sync"
)

// Sink receives informational notes from test cases. Implementations must be
// safe for use from whatever goroutine runs the case; each diagnostic event
// arrives as exactly one Note call so parallel cases cannot interleave
// partial output.
type Sink interface {
	Note(msg string)
}

// CaseLog collects the notes emitted by a single test case. The runner
// attaches the collected notes to the case result after the case finishes.
type CaseLog struct {
	mu    sync.Mutex
	notes []string
}

func NewCaseLog() *CaseLog {
	return &CaseLog{}
}

// Note appends one note to the case's log.
func (l *CaseLog) Note(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.notes = append(l.notes, msg)
}

// Notes returns a copy of the collected notes in emission order.
func (l *CaseLog) Notes() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.notes))
	copy(out, l.notes)
	return out
}

// WriterSink forwards each note to an io.Writer as a single write.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Note(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.w, msg)
}
