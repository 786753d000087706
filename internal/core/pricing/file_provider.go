package pricing

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/bytedance/sonic"
	"github.com/samber/lo"

	"github.com/penwyp/go-claude-statusline/internal/core/model"
	"github.com/penwyp/go-claude-statusline/internal/util"
)

// liteLLMModel is one entry of a LiteLLM-style pricing file
type liteLLMModel struct {
	InputCostPerToken           *float64 `json:"input_cost_per_token"`
	OutputCostPerToken          *float64 `json:"output_cost_per_token"`
	CacheCreationInputTokenCost *float64 `json:"cache_creation_input_token_cost"`
	CacheReadInputTokenCost     *float64 `json:"cache_read_input_token_cost"`
}

// FileProvider serves pricing read once from a local JSON file.
type FileProvider struct {
	*DefaultProvider
	path string
}

// NewFileProvider loads and validates the pricing file at path.
func NewFileProvider(path string) (*FileProvider, error) {
	util.LogDebug(fmt.Sprintf("Loading pricing data from %s", path))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrPricingUnavailable, path, err)
	}

	entries, err := parsePricingFile(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPricingUnavailable, path, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s contains no priced models", ErrPricingUnavailable, path)
	}

	util.LogInfof("Loaded %d priced models from %s", len(entries), path)
	return &FileProvider{
		DefaultProvider: NewTableProvider(NewTable(entries)),
		path:            path,
	}, nil
}

func parsePricingFile(data []byte) ([]Entry, error) {
	var rawData map[string]json.RawMessage
	if err := sonic.Unmarshal(data, &rawData); err != nil {
		return nil, fmt.Errorf("failed to parse pricing data: %w", err)
	}

	names := lo.Keys(rawData)
	sort.Strings(names)

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		var m liteLLMModel
		if err := sonic.Unmarshal(rawData[name], &m); err != nil {
			util.LogDebug(fmt.Sprintf("Skip pricing entry %s - %v", name, err))
			continue
		}
		p, ok := m.toModelPricing()
		if !ok {
			continue
		}
		entries = append(entries, Entry{Model: name, Pricing: p})
	}
	return entries, nil
}

func optionalPrice(v *float64) (*model.Price, bool) {
	if v == nil {
		return nil, true
	}
	p, err := model.NewPrice(*v)
	if err != nil {
		return nil, false
	}
	return &p, true
}

// toModelPricing rejects entries with no rates or with an invalid rate.
func (m liteLLMModel) toModelPricing() (ModelPricing, bool) {
	var p ModelPricing
	var ok bool
	if p.Input, ok = optionalPrice(m.InputCostPerToken); !ok {
		return ModelPricing{}, false
	}
	if p.Output, ok = optionalPrice(m.OutputCostPerToken); !ok {
		return ModelPricing{}, false
	}
	if p.CacheCreation, ok = optionalPrice(m.CacheCreationInputTokenCost); !ok {
		return ModelPricing{}, false
	}
	if p.CacheRead, ok = optionalPrice(m.CacheReadInputTokenCost); !ok {
		return ModelPricing{}, false
	}
	if p.Input == nil && p.Output == nil && p.CacheCreation == nil && p.CacheRead == nil {
		return ModelPricing{}, false
	}
	return p, true
}

func (p *FileProvider) GetProviderName() string {
	return SourceFile
}

// Path returns the file the table was read from
func (p *FileProvider) Path() string {
	return p.path
}

var _ PricingProvider = (*FileProvider)(nil)
