package model

import "time"

// UsageRecord is one logged API call after normalization.
type UsageRecord struct {
	// Timestamp is zero when the line carried no parseable timestamp.
	Timestamp time.Time
	Model     string
	Tokens    TokenCounts
	// PrecomputedCost overrides token pricing when set.
	PrecomputedCost *Cost
	MessageID       string
	RequestID       string
	// SessionID is the stem of the file the record was read from.
	SessionID string
}

// HasTimestamp reports whether the record can take part in windowing.
func (r UsageRecord) HasTimestamp() bool {
	return !r.Timestamp.IsZero()
}

// DedupKey returns "message_id:request_id". Records missing either id have no
// identity and are never treated as duplicates.
func (r UsageRecord) DedupKey() (string, bool) {
	if r.MessageID == "" || r.RequestID == "" {
		return "", false
	}
	return r.MessageID + ":" + r.RequestID, true
}
