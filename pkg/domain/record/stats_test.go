package record

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil)
	assert.Equal(t, 0, stats.TotalTests)
	assert.Equal(t, float64(0), stats.SuccessRate)
	assert.NotNil(t, stats.TestsByType)
}

func TestComputeStats(t *testing.T) {
	now := time.Now()
	records := []TestRecord{
		New(now, "pacs.008", 200, 120, true, "m1"),
		New(now, "pacs.008", 500, 80, false, "m2"),
		New(now, "pain.001 (E2E) [SKIPPED]", 404, 0, true, "m3"),
	}

	stats := ComputeStats(records)

	assert.Equal(t, 3, stats.TotalTests)
	assert.Equal(t, 2, stats.SuccessCount)
	assert.Equal(t, 1, stats.FailureCount)
	assert.Equal(t, 66.67, stats.SuccessRate)
	assert.Equal(t, float64(100), stats.AvgResponseTimeMs)
	assert.Equal(t, TypeStats{Count: 2, Success: 1}, stats.TestsByType["pacs.008"])
	assert.Equal(t, TypeStats{Count: 1, Success: 1}, stats.TestsByType["pain.001 (E2E) [SKIPPED]"])
}

func TestNew_TimestampFormat(t *testing.T) {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 6000, time.UTC)
	r := New(ts, "pacs.008", 200, 1, true, "id")
	assert.Equal(t, "2025-01-02T03:04:05.000006", r.Timestamp)
}
