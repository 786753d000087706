package session

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-claude-statusline/internal/core/model"
)

var t0 = time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)

func at(d time.Duration) model.UsageRecord {
	return model.UsageRecord{Timestamp: t0.Add(d)}
}

func TestBuildBlocksSplitsOnDistanceFromStart(t *testing.T) {
	records := []model.UsageRecord{
		at(0),
		at(4*time.Hour + 59*time.Minute),
		at(9*time.Hour + 58*time.Minute),
	}

	blocks := BuildBlocks(records)

	require.Len(t, blocks, 2)
	assert.Len(t, blocks[0].Records, 2)
	assert.Equal(t, t0, blocks[0].Start)
	assert.Equal(t, t0.Add(5*time.Hour), blocks[0].EndOfWindow)
	assert.Equal(t, t0.Add(4*time.Hour+59*time.Minute), blocks[0].LastActivity)
	assert.Len(t, blocks[1].Records, 1)
	assert.Equal(t, t0.Add(9*time.Hour), blocks[1].Start)
}

func TestBuildBlocksSplitsOnGap(t *testing.T) {
	blocks := BuildBlocks([]model.UsageRecord{at(0), at(5*time.Hour + time.Second)})
	require.Len(t, blocks, 2)
	assert.Equal(t, t0, blocks[0].LastActivity)
}

func TestBuildBlocksFloorsStart(t *testing.T) {
	blocks := BuildBlocks([]model.UsageRecord{at(45 * time.Minute), at(5*time.Hour + 10*time.Minute)})
	require.Len(t, blocks, 2)
	assert.Equal(t, t0, blocks[0].Start)
	assert.Equal(t, t0.Add(5*time.Hour), blocks[1].Start)
}

func TestBuildBlocksBoundaryIsInclusive(t *testing.T) {
	blocks := BuildBlocks([]model.UsageRecord{at(0), at(5 * time.Hour)})
	require.Len(t, blocks, 1)
	assert.Len(t, blocks[0].Records, 2)

	blocks = BuildBlocks([]model.UsageRecord{at(time.Hour), at(time.Hour), at(time.Hour)})
	require.Len(t, blocks, 1)
	assert.Len(t, blocks[0].Records, 3)
}

func TestBuildBlocksIgnoresUntimedRecords(t *testing.T) {
	assert.Empty(t, BuildBlocks([]model.UsageRecord{{MessageID: "x"}}))
	assert.Empty(t, BuildBlocks(nil))
}

func TestBuildBlocksOrderIndependent(t *testing.T) {
	var records []model.UsageRecord
	for i := 0; i < 40; i++ {
		r := at(time.Duration(i*37) * time.Minute)
		r.MessageID = string(rune('a' + i%26))
		records = append(records, r)
	}
	want := BuildBlocks(records)

	shuffled := append([]model.UsageRecord(nil), records...)
	rng := rand.New(rand.NewSource(7))
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	assert.Equal(t, want, BuildBlocks(shuffled))
}

func TestBlockIsActive(t *testing.T) {
	b := BuildBlocks([]model.UsageRecord{at(0), at(time.Hour)})[0]

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{name: "inside window", now: t0.Add(2 * time.Hour), want: true},
		{name: "at window end", now: t0.Add(5 * time.Hour)},
		{name: "after window", now: t0.Add(6 * time.Hour)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.IsActive(tt.now))
		})
	}

	// Window still open but the last activity is too old
	stale := Block{EndOfWindow: t0.Add(10 * time.Hour), LastActivity: t0}
	assert.False(t, stale.IsActive(t0.Add(5*time.Hour)))
}

func TestFindActiveLastWins(t *testing.T) {
	blocks := []Block{
		{Start: t0, EndOfWindow: t0.Add(5 * time.Hour), LastActivity: t0.Add(time.Hour)},
		{Start: t0.Add(time.Hour), EndOfWindow: t0.Add(6 * time.Hour), LastActivity: t0.Add(2 * time.Hour)},
		{Start: t0.Add(-10 * time.Hour), EndOfWindow: t0.Add(-5 * time.Hour), LastActivity: t0.Add(-6 * time.Hour)},
	}

	active := FindActive(blocks, t0.Add(3*time.Hour))
	require.NotNil(t, active)
	assert.Equal(t, t0.Add(time.Hour), active.Start)

	assert.Nil(t, FindActive(blocks, t0.Add(7*time.Hour)))
	assert.Nil(t, FindActive(nil, t0))
}
