package aggregator

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/penwyp/go-claude-statusline/internal/core/model"
	"github.com/penwyp/go-claude-statusline/internal/core/pricing"
	"github.com/penwyp/go-claude-statusline/internal/util"
)

// Aggregator computes the calendar and session totals of a record stream.
type Aggregator struct {
	costs *pricing.Calculator
	tp    *util.TimeProvider
}

// NewAggregator creates an Aggregator; "today" is taken in tp's timezone.
func NewAggregator(costs *pricing.Calculator, tp *util.TimeProvider) *Aggregator {
	return &Aggregator{costs: costs, tp: tp}
}

// TodayRecords returns the records whose timestamp falls on now's calendar day.
func (a *Aggregator) TodayRecords(records []model.UsageRecord, now time.Time) []model.UsageRecord {
	start, end := a.tp.DayBounds(now)
	return lo.Filter(records, func(r model.UsageRecord, _ int) bool {
		return r.HasTimestamp() && !r.Timestamp.Before(start) && r.Timestamp.Before(end)
	})
}

// TodayCost sums the cost of today's records. Untimed records never count.
func (a *Aggregator) TodayCost(ctx context.Context, records []model.UsageRecord, now time.Time) model.Cost {
	return a.costs.TotalCost(ctx, a.TodayRecords(records, now))
}

// SessionCost sums every record read from the named session's files,
// timestamped or not. It returns nil when the session has no records.
func (a *Aggregator) SessionCost(ctx context.Context, records []model.UsageRecord, sessionID string) *model.Cost {
	if sessionID == "" {
		return nil
	}
	own := lo.Filter(records, func(r model.UsageRecord, _ int) bool {
		return r.SessionID == sessionID
	})
	if len(own) == 0 {
		return nil
	}
	total := a.costs.TotalCost(ctx, own)
	return &total
}
