package session

import (
	"sort"
	"time"

	"github.com/penwyp/go-claude-statusline/internal/core/constants"
	"github.com/penwyp/go-claude-statusline/internal/core/model"
	"github.com/penwyp/go-claude-statusline/internal/core/session/internal"
)

// Block is a run of records that fits inside one billing window: no gap
// between neighbours and no distance from the floored start exceeds the
// session duration.
type Block struct {
	Start        time.Time
	EndOfWindow  time.Time
	LastActivity time.Time
	Records      []model.UsageRecord
}

// IsActive reports whether now is still inside the window and the last
// activity is recent enough.
func (b *Block) IsActive(now time.Time) bool {
	return now.Before(b.EndOfWindow) && now.Sub(b.LastActivity) < constants.SessionDuration
}

// FirstActivity returns the timestamp of the first record
func (b *Block) FirstActivity() time.Time {
	if len(b.Records) == 0 {
		return time.Time{}
	}
	return b.Records[0].Timestamp
}

// Tokens sums the token counts of the block
func (b *Block) Tokens() model.TokenCounts {
	var total model.TokenCounts
	for _, r := range b.Records {
		total = total.Add(r.Tokens)
	}
	return total
}

func openBlock(r model.UsageRecord) Block {
	start := internal.FloorToHour(r.Timestamp)
	return Block{
		Start:        start,
		EndOfWindow:  start.Add(constants.SessionDuration),
		LastActivity: r.Timestamp,
		Records:      []model.UsageRecord{r},
	}
}

// BuildBlocks partitions records into blocks in one chronological pass.
// Records without a timestamp are ignored. Input order does not matter: the
// records are stably sorted by timestamp first, so any permutation of the
// same records produces the same blocks. A gap equal to the session duration
// does not split.
func BuildBlocks(records []model.UsageRecord) []Block {
	timed := make([]model.UsageRecord, 0, len(records))
	for _, r := range records {
		if r.HasTimestamp() {
			timed = append(timed, r)
		}
	}
	sort.SliceStable(timed, func(i, j int) bool {
		return timed[i].Timestamp.Before(timed[j].Timestamp)
	})

	var blocks []Block
	var current *Block
	for _, r := range timed {
		if current != nil {
			sinceStart := r.Timestamp.Sub(current.Start)
			sinceLast := r.Timestamp.Sub(current.LastActivity)
			if sinceStart <= constants.SessionDuration && sinceLast <= constants.SessionDuration {
				current.Records = append(current.Records, r)
				current.LastActivity = r.Timestamp
				continue
			}
			blocks = append(blocks, *current)
		}
		b := openBlock(r)
		current = &b
	}
	if current != nil {
		blocks = append(blocks, *current)
	}
	return blocks
}

// FindActive returns the active block, or nil. When more than one block is
// active the latest wins.
func FindActive(blocks []Block, now time.Time) *Block {
	var active *Block
	for i := range blocks {
		if blocks[i].IsActive(now) {
			active = &blocks[i]
		}
	}
	return active
}
