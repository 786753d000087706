package util

import (
	"fmt"
	"sync"
	"time"
)

// TimeProvider applies one configured timezone to every calendar computation
type TimeProvider struct {
	location *time.Location
	mu       sync.RWMutex
}

var (
	globalTimeProvider *TimeProvider
	mu                 sync.Mutex
)

// NewTimeProvider creates a provider for an IANA zone name or "Local"
func NewTimeProvider(timezone string) (*TimeProvider, error) {
	provider := &TimeProvider{}
	if err := provider.SetTimezone(timezone); err != nil {
		return nil, err
	}
	return provider, nil
}

// GetTimeProvider returns the global time provider instance.
// If not initialized, it defaults to Local timezone
func GetTimeProvider() *TimeProvider {
	mu.Lock()
	defer mu.Unlock()
	if globalTimeProvider == nil {
		globalTimeProvider = &TimeProvider{location: time.Local}
	}
	return globalTimeProvider
}

// SetTimezone updates the timezone for the time provider
func (tp *TimeProvider) SetTimezone(timezone string) error {
	loc := time.Local
	if timezone != "" && timezone != "Local" {
		l, err := time.LoadLocation(timezone)
		if err != nil {
			return fmt.Errorf("invalid timezone '%s': %w\nValid examples: Local, UTC, America/New_York, Asia/Shanghai, Europe/London", timezone, err)
		}
		loc = l
	}

	tp.mu.Lock()
	tp.location = loc
	tp.mu.Unlock()
	return nil
}

// Location returns the configured zone
func (tp *TimeProvider) Location() *time.Location {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return tp.location
}

// Format formats a time according to the layout in the configured timezone
func (tp *TimeProvider) Format(t time.Time, layout string) string {
	return t.In(tp.Location()).Format(layout)
}

// DayBounds returns [midnight, next midnight) of the calendar day containing t.
// On DST transition days the span is 23 or 25 hours.
func (tp *TimeProvider) DayBounds(t time.Time) (time.Time, time.Time) {
	local := t.In(tp.Location())
	y, m, d := local.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, local.Location())
	end := time.Date(y, m, d+1, 0, 0, 0, 0, local.Location())
	return start, end
}
