// Package stats aggregates per-case execution durations into HDR-histogram
// percentile summaries for run and soak reporting.
package stats

import (
	"sort"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Histogram range: 1us to 60s, 3 significant digits.
const (
	minTrackableUs = 1
	maxTrackableUs = 60_000_000
	sigFigs        = 3
)

// Collector records case durations and produces percentile summaries.
type Collector struct {
	mu      sync.Mutex
	overall *hdrhistogram.Histogram
	perCase map[string]*hdrhistogram.Histogram
}

func NewCollector() *Collector {
	return &Collector{
		overall: hdrhistogram.New(minTrackableUs, maxTrackableUs, sigFigs),
		perCase: make(map[string]*hdrhistogram.Histogram),
	}
}

// Record adds one case execution. Durations are clamped to the trackable
// histogram range.
func (c *Collector) Record(name string, d time.Duration) {
	us := d.Microseconds()
	if us < minTrackableUs {
		us = minTrackableUs
	}
	if us > maxTrackableUs {
		us = maxTrackableUs
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.overall.RecordValue(us)

	h, ok := c.perCase[name]
	if !ok {
		h = hdrhistogram.New(minTrackableUs, maxTrackableUs, sigFigs)
		c.perCase[name] = h
	}
	_ = h.RecordValue(us)
}

// Summary holds duration percentiles for one histogram.
type Summary struct {
	Count int64
	P50   time.Duration
	P95   time.Duration
	P99   time.Duration
	Min   time.Duration
	Max   time.Duration
	Mean  time.Duration
}

// Summary returns percentiles over all recorded executions.
func (c *Collector) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return summarize(c.overall)
}

// CaseSummary returns percentiles for a single case name.
func (c *Collector) CaseSummary(name string) (Summary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	h, ok := c.perCase[name]
	if !ok {
		return Summary{}, false
	}
	return summarize(h), true
}

// Names returns the recorded case names, sorted.
func (c *Collector) Names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.perCase))
	for name := range c.perCase {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func summarize(h *hdrhistogram.Histogram) Summary {
	return Summary{
		Count: h.TotalCount(),
		P50:   time.Duration(h.ValueAtQuantile(50)) * time.Microsecond,
		P95:   time.Duration(h.ValueAtQuantile(95)) * time.Microsecond,
		P99:   time.Duration(h.ValueAtQuantile(99)) * time.Microsecond,
		Min:   time.Duration(h.Min()) * time.Microsecond,
		Max:   time.Duration(h.Max()) * time.Microsecond,
		Mean:  time.Duration(h.Mean()) * time.Microsecond,
	}
}
