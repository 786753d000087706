package parser

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"

	"github.com/penwyp/go-claude-statusline/internal/core/model"
)

var (
	// ErrEmptyLine marks blank lines; they are skipped without logging
	ErrEmptyLine = errors.New("empty line")
	// ErrNoUsage marks valid JSON that carries neither token counts nor a cost
	ErrNoUsage = errors.New("line has no usage data")
)

// ParseLine normalizes one JSONL line into a usage record. sessionID is the
// stem of the file the line came from.
func ParseLine(line []byte, sessionID string) (model.UsageRecord, error) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return model.UsageRecord{}, ErrEmptyLine
	}

	var log model.ConversationLog
	if err := sonic.Unmarshal(line, &log); err != nil {
		return model.UsageRecord{}, fmt.Errorf("invalid JSON: %w", err)
	}

	record := model.UsageRecord{
		Timestamp: parseTimestamp(log.Timestamp),
		Model:     log.Model,
		Tokens:    model.TokenCountsFromUsage(flatUsage(&log)),
		MessageID: log.MessageIdSnake,
		RequestID: firstNonEmpty(log.RequestId, log.RequestIdSnake),
		SessionID: sessionID,
	}

	costs := []*float64{log.CostUSD, log.CostUSDSnake}
	if msg := log.Message; msg != nil {
		record.Model = firstNonEmpty(msg.Model, record.Model)
		record.MessageID = firstNonEmpty(msg.Id, record.MessageID)
		if !msg.Usage.IsEmpty() {
			record.Tokens = model.TokenCountsFromUsage(msg.Usage)
		}
		costs = append(costs, msg.CostUSD, msg.CostUSDSnake)
	}
	record.PrecomputedCost = firstValidCost(costs...)

	if record.Tokens.IsEmpty() && record.PrecomputedCost == nil {
		return model.UsageRecord{}, ErrNoUsage
	}
	return record, nil
}

// flatUsage reads the legacy shapes: a top-level usage object or counters
// directly on the record.
func flatUsage(log *model.ConversationLog) *model.Usage {
	if !log.Usage.IsEmpty() {
		return log.Usage
	}
	u := &model.Usage{
		InputTokens:              log.InputTokens,
		OutputTokens:             log.OutputTokens,
		CacheCreationInputTokens: log.CacheCreationInputTokens,
		CacheReadInputTokens:     log.CacheReadInputTokens,
	}
	if u.IsEmpty() {
		return nil
	}
	return u
}

func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return ts
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// firstValidCost returns the first present cost that passes validation
func firstValidCost(values ...*float64) *model.Cost {
	for _, v := range values {
		if v == nil {
			continue
		}
		c, err := model.NewCost(*v)
		if err != nil {
			continue
		}
		return &c
	}
	return nil
}
