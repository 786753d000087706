package pricing

import (
	"strings"

	"github.com/penwyp/go-claude-statusline/internal/core/model"
)

const (
	SourceDefault = "default"
	SourceFile    = "file"
)

type SourceConfig struct {
	PricingSource string `yaml:"pricing_source" json:"pricingSource"`
	PricingFile   string `yaml:"pricing_file" json:"pricingFile"`
}

// ModelPricing is the per-token rate for each token category. A nil rate
// contributes nothing to the cost.
type ModelPricing struct {
	Input         *model.Price `json:"input,omitempty"`
	Output        *model.Price `json:"output,omitempty"`
	CacheCreation *model.Price `json:"cache_creation,omitempty"`
	CacheRead     *model.Price `json:"cache_read,omitempty"`
}

// Entry binds a model identifier to its pricing.
type Entry struct {
	Model   string       `json:"model"`
	Pricing ModelPricing `json:"pricing"`
}

// Table is an immutable, ordered pricing table. Order matters for substring resolution.
type Table struct {
	entries []Entry
	index   map[string]int
}

var familyFallbacks = []struct {
	family string
	key    string
}{
	{family: model.FamilyOpus, key: model.ModelOpus41},
	{family: model.FamilySonnet, key: model.ModelSonnet4},
}

func price(usdPerToken float64) *model.Price {
	p := model.MustPrice(usdPerToken)
	return &p
}

var (
	opusPricing = ModelPricing{
		Input:         price(0.000015),
		Output:        price(0.000075),
		CacheCreation: price(0.00001875),
		CacheRead:     price(0.0000015),
	}
	sonnetPricing = ModelPricing{
		Input:         price(0.000003),
		Output:        price(0.000015),
		CacheCreation: price(0.00000375),
		CacheRead:     price(0.0000003),
	}
	haikuPricing = ModelPricing{
		Input:         price(0.0000008),
		Output:        price(0.000004),
		CacheCreation: price(0.000001),
		CacheRead:     price(0.00000008),
	}
)

var defaultEntries = []Entry{
	{Model: model.ModelOpus41, Pricing: opusPricing},
	{Model: model.ModelOpus4, Pricing: opusPricing},
	{Model: model.ModelOpus3, Pricing: opusPricing},
	{Model: model.ModelSonnet4, Pricing: sonnetPricing},
	{Model: model.ModelSonnet37, Pricing: sonnetPricing},
	{Model: model.ModelSonnet35, Pricing: sonnetPricing},
	{Model: model.ModelSonnet35V2, Pricing: sonnetPricing},
	{Model: model.ModelHaiku35, Pricing: haikuPricing},
}

// NewTable builds a table keeping the first entry for duplicated model names.
func NewTable(entries []Entry) *Table {
	t := &Table{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if _, dup := t.index[e.Model]; dup {
			continue
		}
		t.index[e.Model] = len(t.entries)
		t.entries = append(t.entries, e)
	}
	return t
}

// DefaultTable returns the built-in pricing table.
func DefaultTable() *Table {
	return NewTable(defaultEntries)
}

// Entries returns a copy of the table in iteration order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t *Table) Len() int {
	return len(t.entries)
}

// Resolve finds pricing for a model name: exact key, then case-sensitive
// substring in either direction, then the opus/sonnet family fallback.
func (t *Table) Resolve(modelName string) (ModelPricing, bool) {
	if modelName == "" {
		return ModelPricing{}, false
	}
	if i, ok := t.index[modelName]; ok {
		return t.entries[i].Pricing, true
	}
	for _, e := range t.entries {
		if strings.Contains(modelName, e.Model) || strings.Contains(e.Model, modelName) {
			return e.Pricing, true
		}
	}

	lower := strings.ToLower(modelName)
	for _, fb := range familyFallbacks {
		if !strings.Contains(lower, fb.family) {
			continue
		}
		if i, ok := t.index[fb.key]; ok {
			return t.entries[i].Pricing, true
		}
		// Tables loaded from a file may not carry the canonical key.
		for _, e := range t.entries {
			if strings.Contains(strings.ToLower(e.Model), fb.family) {
				return e.Pricing, true
			}
		}
	}
	return ModelPricing{}, false
}
