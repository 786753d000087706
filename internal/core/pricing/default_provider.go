package pricing

import (
	"context"
	"fmt"
)

// DefaultProvider implements PricingProvider using the static pricing table
type DefaultProvider struct {
	table *Table
}

// NewDefaultProvider creates a new default pricing provider
func NewDefaultProvider() PricingProvider {
	return NewTableProvider(DefaultTable())
}

// NewTableProvider serves pricing from an arbitrary table
func NewTableProvider(table *Table) *DefaultProvider {
	return &DefaultProvider{table: table}
}

func (p *DefaultProvider) GetPricing(ctx context.Context, modelName string) (ModelPricing, error) {
	if pricing, ok := p.table.Resolve(modelName); ok {
		return pricing, nil
	}
	return ModelPricing{}, fmt.Errorf("%w: %q", ErrPricingNotFound, modelName)
}

func (p *DefaultProvider) GetAllPricings(ctx context.Context) ([]Entry, error) {
	return p.table.Entries(), nil
}

func (p *DefaultProvider) GetProviderName() string {
	return SourceDefault
}
