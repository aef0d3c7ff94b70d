package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Record(t *testing.T) {
	c := NewCollector()

	c.Record("a", 10*time.Millisecond)
	c.Record("a", 20*time.Millisecond)
	c.Record("b", 5*time.Millisecond)

	overall := c.Summary()
	assert.Equal(t, int64(3), overall.Count)
	assert.True(t, overall.Max >= overall.Min)
	assert.True(t, overall.P99 >= overall.P50)

	aSummary, ok := c.CaseSummary("a")
	require.True(t, ok)
	assert.Equal(t, int64(2), aSummary.Count)

	_, ok = c.CaseSummary("missing")
	assert.False(t, ok)
}

func TestCollector_Names(t *testing.T) {
	c := NewCollector()
	c.Record("zeta", time.Millisecond)
	c.Record("alpha", time.Millisecond)

	assert.Equal(t, []string{"alpha", "zeta"}, c.Names())
}

func TestCollector_ClampsOutOfRange(t *testing.T) {
	c := NewCollector()

	// Below and above the trackable range must not be dropped.
	c.Record("tiny", 0)
	c.Record("huge", 2*time.Hour)

	assert.Equal(t, int64(2), c.Summary().Count)

	huge, ok := c.CaseSummary("huge")
	require.True(t, ok)
	assert.True(t, huge.Max <= 61*time.Second)
}

func TestCollector_EmptySummary(t *testing.T) {
	c := NewCollector()
	assert.Equal(t, int64(0), c.Summary().Count)
	assert.Empty(t, c.Names())
}
