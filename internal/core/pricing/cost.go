package pricing

import "github.com/penwyp/go-claude-statusline/internal/core/model"

func term(count *int64, rate *model.Price) model.Cost {
	if count == nil || rate == nil {
		return 0
	}
	return rate.Times(*count)
}

// CalculateCost prices token counts. Absent counts or rates contribute zero.
func CalculateCost(tokens model.TokenCounts, p ModelPricing) model.Cost {
	return term(tokens.Input, p.Input) +
		term(tokens.Output, p.Output) +
		term(tokens.CacheCreation, p.CacheCreation) +
		term(tokens.CacheRead, p.CacheRead)
}
