package pricing

import (
	"fmt"

	"github.com/penwyp/go-claude-statusline/internal/util"
)

// CreatePricingProvider creates a pricing provider based on configuration
func CreatePricingProvider(cfg *SourceConfig) (PricingProvider, error) {
	if cfg == nil {
		cfg = &SourceConfig{}
	}

	switch cfg.PricingSource {
	case SourceDefault, "":
		util.LogDebug("Using built-in pricing table")
		return NewDefaultProvider(), nil
	case SourceFile:
		if cfg.PricingFile == "" {
			return nil, fmt.Errorf("pricing source %q requires a pricing file", SourceFile)
		}
		return NewFileProvider(cfg.PricingFile)
	default:
		return nil, fmt.Errorf("unknown pricing source: %s", cfg.PricingSource)
	}
}
