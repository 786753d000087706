package pricing

import (
	"context"
	"errors"
)

// PricingProvider defines the interface for looking up model pricing
type PricingProvider interface {
	// GetPricing returns the pricing for a model, resolved through the fallback tiers
	GetPricing(ctx context.Context, modelName string) (ModelPricing, error)

	// GetAllPricings returns every table entry in resolution order
	GetAllPricings(ctx context.Context) ([]Entry, error)

	// GetProviderName returns the name of this pricing provider
	GetProviderName() string
}

// ErrPricingNotFound is returned when no tier resolves a model
var ErrPricingNotFound = errors.New("pricing not found for model")

// ErrPricingUnavailable is returned when a pricing source cannot be read
var ErrPricingUnavailable = errors.New("pricing data unavailable")
