package session

import (
	"context"
	"time"

	"github.com/penwyp/go-claude-statusline/internal/core/model"
	"github.com/penwyp/go-claude-statusline/internal/core/pricing"
	"github.com/penwyp/go-claude-statusline/internal/core/session/internal"
)

type MetricsCalculator struct {
	costs *pricing.Calculator
}

func NewMetricsCalculator(costs *pricing.Calculator) *MetricsCalculator {
	return &MetricsCalculator{costs: costs}
}

// BlockCost sums the cost of every record in the block
func (c *MetricsCalculator) BlockCost(ctx context.Context, b *Block) model.Cost {
	return c.costs.TotalCost(ctx, b.Records)
}

// BurnRate projects cost per hour over the whole minutes between the first
// and last record. It returns nil when that span is not positive.
func BurnRate(b *Block, cost model.Cost) *model.BurnRate {
	if len(b.Records) < 2 {
		return nil
	}
	minutes := internal.WholeMinutesBetween(b.FirstActivity(), b.LastActivity)
	if minutes <= 0 {
		return nil
	}

	tokens := b.Tokens()
	tokensPerMinute := float64(tokens.InputOrZero()+tokens.OutputOrZero()) / float64(minutes)
	return &model.BurnRate{
		CostPerHour:     cost.USD() / float64(minutes) * 60,
		TokensPerMinute: tokensPerMinute,
		Tier:            model.TierForTokensPerMinute(tokensPerMinute),
	}
}

// Summarize derives cost, burn rate and remaining time for a block
func (c *MetricsCalculator) Summarize(ctx context.Context, b *Block, now time.Time) *model.BlockSummary {
	cost := c.BlockCost(ctx, b)
	return &model.BlockSummary{
		Start:        b.Start,
		End:          b.EndOfWindow,
		LastActivity: b.LastActivity,
		Records:      len(b.Records),
		Tokens:       b.Tokens().Total(),
		TotalCost:    cost,
		BurnRate:     BurnRate(b, cost),
		Remaining:    model.NewRemainingTime(b.EndOfWindow, now),
	}
}
