package pricing

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-claude-statusline/internal/core/model"
)

func writePricingFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pricing.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultProvider(t *testing.T) {
	ctx := context.Background()
	p := NewDefaultProvider()

	assert.Equal(t, SourceDefault, p.GetProviderName())

	got, err := p.GetPricing(ctx, model.ModelSonnet4)
	require.NoError(t, err)
	assert.Equal(t, sonnetPricing, got)

	_, err = p.GetPricing(ctx, "gpt-4o")
	assert.ErrorIs(t, err, ErrPricingNotFound)

	all, err := p.GetAllPricings(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.ModelOpus41, all[0].Model)
}

func TestFileProvider(t *testing.T) {
	path := writePricingFile(t, `{
		"sample_spec": {"max_tokens": "set to max"},
		"zeta-opus": {"input_cost_per_token": 0.00002, "output_cost_per_token": 0.0001},
		"claude-custom": {
			"input_cost_per_token": 0.000001,
			"output_cost_per_token": 0.000002,
			"cache_creation_input_token_cost": 0.000003,
			"cache_read_input_token_cost": 0.0000001
		},
		"broken": {"input_cost_per_token": -1}
	}`)

	p, err := NewFileProvider(path)
	require.NoError(t, err)
	assert.Equal(t, SourceFile, p.GetProviderName())
	assert.Equal(t, path, p.Path())

	all, err := p.GetAllPricings(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "claude-custom", all[0].Model)
	assert.Equal(t, "zeta-opus", all[1].Model)

	got, err := p.GetPricing(context.Background(), "claude-custom")
	require.NoError(t, err)
	assert.Equal(t, model.Price(1_000_000), *got.Input)
	assert.Equal(t, model.Price(100_000), *got.CacheRead)

	fallback, err := p.GetPricing(context.Background(), "claude-opus-4-1-20250805")
	require.NoError(t, err)
	assert.Equal(t, model.Price(20_000_000), *fallback.Input)
	assert.Nil(t, fallback.CacheRead)
}

func TestFileProviderFineGrainedRates(t *testing.T) {
	path := writePricingFile(t, `{
		"tiny-model": {"input_cost_per_token": 3.125e-08, "output_cost_per_token": 1.25e-07}
	}`)

	p, err := NewFileProvider(path)
	require.NoError(t, err)
	got, err := p.GetPricing(context.Background(), "tiny-model")
	require.NoError(t, err)

	tokens := model.TokenCounts{Input: model.Int64(1_000_000), Output: model.Int64(1_000_000)}
	assert.Equal(t, model.MustCost(0.03125+0.125), CalculateCost(tokens, got))
	assert.Equal(t, model.Price(31_250), *got.Input)
}

func TestFileProviderErrors(t *testing.T) {
	_, err := NewFileProvider(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, ErrPricingUnavailable)

	_, err = NewFileProvider(writePricingFile(t, `not json`))
	assert.ErrorIs(t, err, ErrPricingUnavailable)

	_, err = NewFileProvider(writePricingFile(t, `{"x": {"max_tokens": 1}}`))
	assert.ErrorIs(t, err, ErrPricingUnavailable)
}

func TestCreatePricingProvider(t *testing.T) {
	p, err := CreatePricingProvider(nil)
	require.NoError(t, err)
	assert.Equal(t, SourceDefault, p.GetProviderName())

	_, err = CreatePricingProvider(&SourceConfig{PricingSource: SourceFile})
	assert.Error(t, err)

	_, err = CreatePricingProvider(&SourceConfig{PricingSource: "litellm"})
	assert.Error(t, err)

	path := writePricingFile(t, `{"m": {"input_cost_per_token": 0.000001}}`)
	p, err = CreatePricingProvider(&SourceConfig{PricingSource: SourceFile, PricingFile: path})
	require.NoError(t, err)
	assert.Equal(t, SourceFile, p.GetProviderName())
}

func TestCalculatorRecordCost(t *testing.T) {
	ctx := context.Background()
	calc := NewCalculator(NewDefaultProvider())
	precomputed := model.MustCost(0.42)

	tests := []struct {
		name   string
		record model.UsageRecord
		want   model.Cost
	}{
		{
			name: "precomputed overrides tokens",
			record: model.UsageRecord{
				Model:           model.ModelOpus41,
				Tokens:          model.TokenCounts{Input: model.Int64(1000000)},
				PrecomputedCost: &precomputed,
			},
			want: precomputed,
		},
		{
			name: "token pricing",
			record: model.UsageRecord{
				Model:  model.ModelSonnet4,
				Tokens: model.TokenCounts{Input: model.Int64(1000000), Output: model.Int64(1000000)},
			},
			want: model.MustCost(18),
		},
		{
			name:   "unknown model",
			record: model.UsageRecord{Model: "gpt-4o", Tokens: model.TokenCounts{Input: model.Int64(10)}},
			want:   0,
		},
		{
			name:   "no data",
			record: model.UsageRecord{Model: model.ModelSonnet4},
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calc.RecordCost(ctx, tt.record))
		})
	}
}

func TestCalculatorTotalCost(t *testing.T) {
	a, b := model.MustCost(0.02), model.MustCost(0.03)
	calc := NewCalculator(NewDefaultProvider())

	total := calc.TotalCost(context.Background(), []model.UsageRecord{
		{PrecomputedCost: &a},
		{PrecomputedCost: &b},
	})
	assert.Equal(t, model.MustCost(0.05), total)
}
