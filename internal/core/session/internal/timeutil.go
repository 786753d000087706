package internal

import (
	"time"
)

// FloorToHour rounds a timestamp down to the top of its UTC hour
func FloorToHour(t time.Time) time.Time {
	return t.UTC().Truncate(time.Hour)
}

// WholeMinutesBetween returns the complete minutes from a to b, truncated toward zero
func WholeMinutesBetween(a, b time.Time) int64 {
	return int64(b.Sub(a) / time.Minute)
}
