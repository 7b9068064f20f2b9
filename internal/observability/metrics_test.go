package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/api/schedule", "GET", 200, 15*time.Millisecond)
	m.RecordRequest("/api/schedule", "GET", 200, 5*time.Millisecond)
	m.RecordError("/api/schedule", "POST", "VALIDATION_FAILED")
	m.RecordAssignments(12)
	m.RecordPatternApplied(3)

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Requests["/api/schedule|GET|200"])
	assert.Equal(t, int64(20), snap.RequestMillis["/api/schedule|GET|200"])
	assert.Equal(t, int64(1), snap.Errors["/api/schedule|POST|VALIDATION_FAILED"])
	assert.Equal(t, int64(12), snap.AssignmentsMade)
	assert.Equal(t, int64(3), snap.PatternEntries)

	snap.Requests["x"] = 1
	assert.NotContains(t, m.Snapshot().Requests, "x")
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordAssignments(1)
	assert.Equal(t, Snapshot{}, m.Snapshot())
}
