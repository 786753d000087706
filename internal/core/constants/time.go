package constants

import "time"

const (
	// Session block ceiling: maximum span from the floored block start and maximum gap between records
	SessionDuration        = 5 * time.Hour
	SessionDurationSeconds = int64(5 * 3600)

	// Loader cutoff: records older than min(today midnight - TodayLookback, now - RecentLookback) are dropped
	TodayLookback  = 5 * time.Hour
	RecentLookback = 10 * time.Hour
)
