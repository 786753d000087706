package model

import (
	"math"
	"time"
)

// TokenRateTier classifies the token-rate indicator.
type TokenRateTier string

const (
	TierNormal   TokenRateTier = "normal"
	TierModerate TokenRateTier = "moderate"
	TierHigh     TokenRateTier = "high"
)

const (
	moderateTokensPerMinute = 500
	highTokensPerMinute     = 1000
)

// TierForTokensPerMinute maps an input+output token rate to its tier.
func TierForTokensPerMinute(rate float64) TokenRateTier {
	switch {
	case rate < moderateTokensPerMinute:
		return TierNormal
	case rate < highTokensPerMinute:
		return TierModerate
	default:
		return TierHigh
	}
}

// BurnRate is the projected spend of an active block.
type BurnRate struct {
	CostPerHour     float64       `json:"cost_per_hour"`
	TokensPerMinute float64       `json:"tokens_per_minute"`
	Tier            TokenRateTier `json:"tier"`
}

// RemainingTime is the time left in a block window. An expired window is its
// own state rather than a negative or zero count.
type RemainingTime struct {
	Minutes int64 `json:"minutes"`
	Expired bool  `json:"expired"`
}

// NewRemainingTime rounds end-now to whole minutes.
func NewRemainingTime(end, now time.Time) RemainingTime {
	minutes := int64(math.Round(end.Sub(now).Minutes()))
	if minutes <= 0 {
		return RemainingTime{Expired: true}
	}
	return RemainingTime{Minutes: minutes}
}

// ContextUsage is the input context consumed by the latest assistant turn.
type ContextUsage struct {
	Tokens     int64 `json:"tokens"`
	Percentage int64 `json:"percentage"`
	Window     int64 `json:"window"`
}
