package pricing

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/samber/lo"

	"github.com/penwyp/go-claude-statusline/internal/core/model"
	"github.com/penwyp/go-claude-statusline/internal/util"
)

type resolution struct {
	pricing ModelPricing
	ok      bool
}

// Calculator prices usage records. Resolutions are memoized per model name
// for the lifetime of the calculator; it is safe for concurrent use.
type Calculator struct {
	provider PricingProvider
	mu       sync.RWMutex
	resolved map[string]resolution
}

func NewCalculator(provider PricingProvider) *Calculator {
	return &Calculator{
		provider: provider,
		resolved: make(map[string]resolution),
	}
}

func (c *Calculator) resolve(ctx context.Context, modelName string) (ModelPricing, bool) {
	c.mu.RLock()
	r, hit := c.resolved[modelName]
	c.mu.RUnlock()
	if hit {
		return r.pricing, r.ok
	}

	p, err := c.provider.GetPricing(ctx, modelName)
	r = resolution{pricing: p, ok: err == nil}
	if err != nil && !errors.Is(err, ErrPricingNotFound) {
		util.LogDebug(fmt.Sprintf("Pricing lookup failed for %q - %v", modelName, err))
	}

	c.mu.Lock()
	c.resolved[modelName] = r
	c.mu.Unlock()
	return r.pricing, r.ok
}

// RecordCost returns the precomputed cost when present, otherwise the token
// cost under the resolved pricing, otherwise zero.
func (c *Calculator) RecordCost(ctx context.Context, r model.UsageRecord) model.Cost {
	if r.PrecomputedCost != nil {
		return *r.PrecomputedCost
	}
	if r.Tokens.IsEmpty() {
		return 0
	}
	p, ok := c.resolve(ctx, r.Model)
	if !ok {
		return 0
	}
	return CalculateCost(r.Tokens, p)
}

// TotalCost sums RecordCost over records.
func (c *Calculator) TotalCost(ctx context.Context, records []model.UsageRecord) model.Cost {
	return lo.SumBy(records, func(r model.UsageRecord) model.Cost {
		return c.RecordCost(ctx, r)
	})
}
