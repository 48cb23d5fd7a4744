package services

import (
	"fmt"
	"strings"
	"time"
)

const fallbackWaitMinutes = 60.0

// EstimateWaitMinutes returns the minutes remaining until the slot's start
// time on queueDate, clamped at zero once the slot has begun. Any parse
// failure yields a fixed 60-minute estimate rather than an error; the
// estimate is advisory and must never block a join.
func EstimateWaitMinutes(queueDate, timeSlot string, now time.Time) float64 {
	start, _, ok := strings.Cut(timeSlot, "-")
	if !ok {
		return fallbackWaitMinutes
	}
	slotStart, err := time.ParseInLocation("2006-01-02 15:04", fmt.Sprintf("%s %s", queueDate, start), now.Location())
	if err != nil {
		return fallbackWaitMinutes
	}
	minutes := slotStart.Sub(now).Minutes()
	if minutes < 0 {
		return 0
	}
	return minutes
}
