package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-claude-statusline/internal/core/model"
	"github.com/penwyp/go-claude-statusline/internal/core/pricing"
	"github.com/penwyp/go-claude-statusline/internal/testing/fixtures"
	"github.com/penwyp/go-claude-statusline/internal/util"
)

var now = time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

func newAnalyzer(t *testing.T, cfg *Config) *Analyzer {
	t.Helper()
	tp, err := util.NewTimeProvider("UTC")
	require.NoError(t, err)
	a := New(cfg, pricing.NewDefaultProvider(), tp)
	a.Now = func() time.Time { return now }
	return a
}

func writeTranscript(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sess-1.jsonl")
	line := fixtures.Entry{
		Timestamp:     now.Add(-time.Minute),
		Input:         100000,
		Output:        50,
		CacheCreation: 5000,
		CacheRead:     3000,
	}.Line()
	require.NoError(t, os.WriteFile(path, []byte(line+"\n"), 0644))
	return path
}

func TestRunDeduplicatesAcrossFiles(t *testing.T) {
	base1 := fixtures.NewTestDataGenerator(filepath.Join(t.TempDir(), "projects"))
	base2 := fixtures.NewTestDataGenerator(filepath.Join(t.TempDir(), "projects"))

	dup := fixtures.Entry{Timestamp: now.Add(-30 * time.Minute), MessageID: "m1", RequestID: "r1", CostUSD: fixtures.Cost(0.02)}
	_, err := base1.WriteSession("p", "sess-1",
		dup,
		fixtures.Entry{Timestamp: now.Add(-20 * time.Minute), CostUSD: fixtures.Cost(0.03)},
	)
	require.NoError(t, err)
	_, err = base2.WriteSession("p", "sess-1", dup)
	require.NoError(t, err)

	a := newAnalyzer(t, &Config{
		BaseDirs:       []string{base1.BaseDir(), base2.BaseDir()},
		SessionID:      "sess-1",
		TranscriptPath: writeTranscript(t),
		ContextWindow:  200000,
	})

	snapshot, err := a.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.MustCost(0.05), snapshot.TodayCost)
	require.NotNil(t, snapshot.SessionCost)
	assert.Equal(t, model.MustCost(0.05), *snapshot.SessionCost)

	require.NotNil(t, snapshot.ActiveBlock)
	assert.Equal(t, model.MustCost(0.05), snapshot.ActiveBlock.TotalCost)
	assert.Equal(t, time.Date(2025, 8, 1, 11, 0, 0, 0, time.UTC), snapshot.ActiveBlock.Start)
	assert.Equal(t, model.RemainingTime{Minutes: 240}, snapshot.ActiveBlock.Remaining)
	require.NotNil(t, snapshot.ActiveBlock.BurnRate)
	assert.InDelta(t, 0.3, snapshot.ActiveBlock.BurnRate.CostPerHour, 1e-9)

	require.NotNil(t, snapshot.Context)
	assert.Equal(t, int64(108000), snapshot.Context.Tokens)
	assert.Equal(t, int64(54), snapshot.Context.Percentage)
}

func TestRunDegradesMissingPieces(t *testing.T) {
	gen := fixtures.NewTestDataGenerator(t.TempDir())
	_, err := gen.WriteSession("p", "other",
		fixtures.Entry{Timestamp: now.Add(-26 * time.Hour), CostUSD: fixtures.Cost(1)},
		fixtures.Entry{Timestamp: now.Add(-8 * time.Hour), CostUSD: fixtures.Cost(2)},
	)
	require.NoError(t, err)

	a := newAnalyzer(t, &Config{
		BaseDirs:       []string{gen.BaseDir()},
		SessionID:      "sess-1",
		TranscriptPath: filepath.Join(t.TempDir(), "missing.jsonl"),
	})

	snapshot, err := a.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.MustCost(2), snapshot.TodayCost)
	assert.Nil(t, snapshot.SessionCost)
	assert.Nil(t, snapshot.ActiveBlock)
	assert.Nil(t, snapshot.Context)
}

func TestRunTokenPricedRecords(t *testing.T) {
	gen := fixtures.NewTestDataGenerator(t.TempDir())
	_, err := gen.WriteSession("p", "sess-1",
		fixtures.Entry{Timestamp: now.Add(-time.Hour), Model: model.ModelSonnet4, Input: 1000000, MessageID: "a", RequestID: "1"},
		fixtures.Entry{Timestamp: now.Add(-time.Hour), Model: "unknown-model", Input: 1000000, MessageID: "b", RequestID: "2"},
	)
	require.NoError(t, err)

	snapshot, err := newAnalyzer(t, &Config{BaseDirs: []string{gen.BaseDir()}, SessionID: "sess-1"}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.MustCost(3), snapshot.TodayCost)
	require.NotNil(t, snapshot.ActiveBlock)
	assert.Nil(t, snapshot.ActiveBlock.BurnRate)
}

func TestRunNoDataDirs(t *testing.T) {
	_, err := newAnalyzer(t, &Config{}).Run(context.Background())
	assert.ErrorIs(t, err, ErrNoDataDirs)

	_, err = newAnalyzer(t, &Config{}).Blocks(context.Background())
	assert.ErrorIs(t, err, ErrNoDataDirs)
}

func TestBlocks(t *testing.T) {
	gen := fixtures.NewTestDataGenerator(t.TempDir())
	_, err := gen.WriteSession("p", "s",
		fixtures.Entry{Timestamp: now.Add(-9 * time.Hour), CostUSD: fixtures.Cost(1)},
		fixtures.Entry{Timestamp: now.Add(-2 * time.Hour), CostUSD: fixtures.Cost(2)},
		fixtures.Entry{Timestamp: now.Add(-90 * time.Minute), CostUSD: fixtures.Cost(3)},
	)
	require.NoError(t, err)

	reports, err := newAnalyzer(t, &Config{BaseDirs: []string{gen.BaseDir()}}).Blocks(context.Background())
	require.NoError(t, err)

	require.Len(t, reports, 2)
	assert.False(t, reports[0].Active)
	assert.Equal(t, model.MustCost(1), reports[0].Summary.TotalCost)
	assert.True(t, reports[1].Active)
	assert.Equal(t, model.MustCost(5), reports[1].Summary.TotalCost)
}

func TestRunCutoffKeepsActiveBlockChain(t *testing.T) {
	gen := fixtures.NewTestDataGenerator(filepath.Join(t.TempDir(), "projects"))
	_, err := gen.WriteSession("p", "other",
		fixtures.Entry{Timestamp: time.Date(2025, 7, 31, 16, 30, 0, 0, time.UTC), CostUSD: fixtures.Cost(1)},
		fixtures.Entry{Timestamp: time.Date(2025, 7, 31, 20, 50, 0, 0, time.UTC), CostUSD: fixtures.Cost(1)},
		fixtures.Entry{Timestamp: time.Date(2025, 8, 1, 0, 50, 0, 0, time.UTC), CostUSD: fixtures.Cost(1)},
	)
	require.NoError(t, err)

	early := time.Date(2025, 8, 1, 3, 0, 0, 0, time.UTC)
	for _, noCutoff := range []bool{false, true} {
		a := newAnalyzer(t, &Config{BaseDirs: []string{gen.BaseDir()}, SessionID: "sess-1", NoCutoff: noCutoff})
		a.Now = func() time.Time { return early }

		snapshot, err := a.Run(context.Background())
		require.NoError(t, err)

		require.NotNil(t, snapshot.ActiveBlock, "no cutoff: %v", noCutoff)
		assert.Equal(t, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), snapshot.ActiveBlock.Start)
		assert.Equal(t, model.MustCost(1), snapshot.ActiveBlock.TotalCost)
		assert.Equal(t, model.RemainingTime{Minutes: 120}, snapshot.ActiveBlock.Remaining)
		assert.Equal(t, model.MustCost(1), snapshot.TodayCost)
	}
}
