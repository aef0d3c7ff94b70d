// Package suite holds the process-wide registry of conformance test cases
// and the per-case metadata the harness displays in results.
package suite

import (
	"fmt"
	"sync"

	"github.com/sycl-conformance/ctskit/packages/check"
	"github.com/sycl-conformance/ctskit/packages/logging"
)

// Info identifies a registered test case: its name and the source file that
// defines it. Both fields are populated once at registration and read-only
// afterwards.
type Info struct {
	Name string
	File string
}

// SetInfo populates a test info record verbatim. No validation, no other
// side effects; it cannot fail.
func SetInfo(out *Info, name, file string) {
	out.Name = name
	out.File = file
}

// NamespaceSuffix is appended to a test name to derive its internal
// namespace token.
const NamespaceSuffix = "__"

// Namespace derives the canonical namespace token for a test name: the name
// followed by exactly two underscores. Test files declare the name once and
// derive the namespace from it, so the two can never drift apart.
func Namespace(base string) string {
	return base + NamespaceSuffix
}

// RunFunc is the body of a test case. It records comparison outcomes on rec
// and emits diagnostics through log.
type RunFunc func(rec *check.Recorder, log logging.Sink)

// Case is one registered conformance test.
type Case struct {
	Info Info
	Tags []string
	Run  RunFunc
}

var (
	registryMu sync.RWMutex
	registry   []Case
	byName     = make(map[string]struct{})
)

// Register adds a case to the process-wide registry. The name must be
// non-empty and unique; a nil Run func is rejected.
func Register(c Case) error {
	if c.Info.Name == "" {
		return fmt.Errorf("case name must not be empty")
	}
	if c.Run == nil {
		return fmt.Errorf("case %q has no run function", c.Info.Name)
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := byName[c.Info.Name]; exists {
		return fmt.Errorf("case %q already registered", c.Info.Name)
	}
	byName[c.Info.Name] = struct{}{}
	registry = append(registry, c)
	return nil
}

// MustRegister is Register for init-time use; it panics on error.
func MustRegister(c Case) {
	if err := Register(c); err != nil {
		panic(err)
	}
}

// Cases returns the registered cases in registration order.
func Cases() []Case {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]Case, len(registry))
	copy(out, registry)
	return out
}

// Reset clears the registry. Tests only.
func Reset() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = nil
	byName = make(map[string]struct{})
}
