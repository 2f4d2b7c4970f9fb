package domain

import (
	"math"
	"time"
)

// DateOnly drops the time-of-day component. All booking dates are
// compared at day granularity in UTC.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NightsBetween returns the number of nights in [checkIn, checkOut),
// floored at 1 so a degenerate range never bills zero.
func NightsBetween(checkIn, checkOut time.Time) int {
	n := int(DateOnly(checkOut).Sub(DateOnly(checkIn)).Hours() / 24)
	if n < 1 {
		return 1
	}
	return n
}

// Round2 rounds a money amount to cents.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
