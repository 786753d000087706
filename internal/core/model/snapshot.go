package model

import "time"

// BlockSummary is the active session block with its derived metrics.
type BlockSummary struct {
	Start        time.Time     `json:"start"`
	End          time.Time     `json:"end"`
	LastActivity time.Time     `json:"last_activity"`
	Records      int           `json:"records"`
	Tokens       int64         `json:"tokens"`
	TotalCost    Cost          `json:"total_cost"`
	BurnRate     *BurnRate     `json:"burn_rate"`
	Remaining    RemainingTime `json:"remaining"`
}

// Snapshot is the result of one run. Nil fields are unavailable, which is
// different from zero.
type Snapshot struct {
	GeneratedAt time.Time     `json:"generated_at"`
	TodayCost   Cost          `json:"today_cost"`
	SessionCost *Cost         `json:"session_cost"`
	ActiveBlock *BlockSummary `json:"active_block"`
	Context     *ContextUsage `json:"context"`
}
