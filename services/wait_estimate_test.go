package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEstimateWaitMinutes(t *testing.T) {
	now := time.Date(2026, 8, 28, 11, 0, 0, 0, time.UTC)

	assert.Equal(t, 60.0, EstimateWaitMinutes("2026-08-28", "12:00-13:20", now))
	assert.Equal(t, 160.0, EstimateWaitMinutes("2026-08-28", "13:40-15:00", now))

	// slot already started: clamped to zero, not negative
	assert.Equal(t, 0.0, EstimateWaitMinutes("2026-08-28", "09:10-10:30", now))
	assert.Equal(t, 0.0, EstimateWaitMinutes("2026-08-27", "20:20-21:40", now))
}

func TestEstimateWaitMinutesFallback(t *testing.T) {
	now := time.Date(2026, 8, 28, 11, 0, 0, 0, time.UTC)

	assert.Equal(t, 60.0, EstimateWaitMinutes("2026-08-28", "noon", now))
	assert.Equal(t, 60.0, EstimateWaitMinutes("not-a-date", "12:00-13:20", now))
	assert.Equal(t, 60.0, EstimateWaitMinutes("", "", now))
}
