package transcript

import (
	"bytes"
	"fmt"
	"os"

	"github.com/bytedance/sonic"

	"github.com/penwyp/go-claude-statusline/internal/core/constants"
	"github.com/penwyp/go-claude-statusline/internal/core/model"
	"github.com/penwyp/go-claude-statusline/internal/util"
)

type entry struct {
	Type    string `json:"type"`
	Message *struct {
		Usage *model.Usage `json:"usage"`
	} `json:"message"`
}

// usage returns the entry's usage if it is an assistant turn reporting input tokens
func (e *entry) usage() (*model.Usage, bool) {
	if e.Type != model.EntryAssistant || e.Message == nil || e.Message.Usage == nil {
		return nil, false
	}
	if e.Message.Usage.InputTokens == nil {
		return nil, false
	}
	return e.Message.Usage, true
}

// LastAssistantUsage scans data from the last line backwards and returns the
// usage of the most recent assistant turn. Unparseable lines are skipped.
func LastAssistantUsage(data []byte) (*model.Usage, bool) {
	end := len(data)
	for end > 0 {
		start := bytes.LastIndexByte(data[:end], '\n') + 1
		line := bytes.TrimSpace(data[start:end])
		end = start - 1

		if len(line) == 0 {
			continue
		}
		var e entry
		if err := sonic.Unmarshal(line, &e); err != nil {
			continue
		}
		if u, ok := e.usage(); ok {
			return u, true
		}
	}
	return nil, false
}

// ContextUsage converts a usage record into window consumption. The
// percentage is floored and capped at MaxContextPercentage.
func ContextUsage(u *model.Usage, window int64) *model.ContextUsage {
	tc := model.TokenCountsFromUsage(u)
	total := tc.InputOrZero() + tc.CacheCreationOrZero() + tc.CacheReadOrZero()
	if window <= 0 {
		window = constants.DefaultContextWindow
	}

	pct := total * 100 / window
	if pct > constants.MaxContextPercentage {
		pct = constants.MaxContextPercentage
	}
	return &model.ContextUsage{Tokens: total, Percentage: pct, Window: window}
}

// LoadContextUsage reads a transcript and reports the context consumed by its
// latest assistant turn. It returns nil without error when the transcript has
// no such turn.
func LoadContextUsage(path string, window int64) (*model.ContextUsage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript %s: %w", path, err)
	}

	u, ok := LastAssistantUsage(data)
	if !ok {
		util.LogDebug(fmt.Sprintf("No assistant usage found in transcript %s", path))
		return nil, nil
	}
	return ContextUsage(u, window), nil
}

// EffectiveWindow subtracts the reserved output tokens and the auto-compact
// buffer from the raw window. It never returns less than 1.
func EffectiveWindow(window, maxOutputTokens int64) int64 {
	if maxOutputTokens <= 0 {
		maxOutputTokens = constants.DefaultMaxOutputTokens
	}
	effective := window - maxOutputTokens - constants.AutoCompactBuffer
	if effective < 1 {
		return 1
	}
	return effective
}
