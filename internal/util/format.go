package util

import (
	"fmt"
	"strconv"
	"time"
)

// FormatNumber renders an integer with thousands separators
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	out := make([]byte, 0, len(s)+len(s)/3)
	lead := len(s) % 3
	if lead > 0 {
		out = append(out, s[:lead]...)
	}
	for i := lead; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}

func FormatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// FormatRemainingMinutes renders "2h 30m left", "45m left" or "expired"
func FormatRemainingMinutes(minutes int64) string {
	if minutes <= 0 {
		return "expired"
	}
	return FormatDuration(time.Duration(minutes)*time.Minute) + " left"
}

// FormatCostRate renders a dollars-per-hour rate
func FormatCostRate(perHour float64) string {
	return fmt.Sprintf("$%.2f/hr", perHour)
}
