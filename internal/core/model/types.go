package model

// ConversationLog is one raw line of a usage log. Both the nested message.usage
// shape and the older flattened shape decode into it; the parser normalizes them.
type ConversationLog struct {
	Timestamp string   `json:"timestamp"`
	Type      string   `json:"type,omitempty"`
	SessionId string   `json:"sessionId,omitempty"`
	Model     string   `json:"model,omitempty"`
	Message   *Message `json:"message,omitempty"`

	RequestId      string `json:"requestId,omitempty"`
	RequestIdSnake string `json:"request_id,omitempty"`
	MessageIdSnake string `json:"message_id,omitempty"`

	CostUSD      *float64 `json:"costUSD,omitempty"`
	CostUSDSnake *float64 `json:"cost_usd,omitempty"`

	// Flattened legacy usage
	Usage                    *Usage `json:"usage,omitempty"`
	InputTokens              *int64 `json:"input_tokens,omitempty"`
	OutputTokens             *int64 `json:"output_tokens,omitempty"`
	CacheCreationInputTokens *int64 `json:"cache_creation_input_tokens,omitempty"`
	CacheReadInputTokens     *int64 `json:"cache_read_input_tokens,omitempty"`
}

type Message struct {
	Id           string   `json:"id,omitempty"`
	Model        string   `json:"model,omitempty"`
	Role         string   `json:"role,omitempty"`
	Type         string   `json:"type,omitempty"`
	Usage        *Usage   `json:"usage,omitempty"`
	CostUSD      *float64 `json:"costUSD,omitempty"`
	CostUSDSnake *float64 `json:"cost_usd,omitempty"`
}

// Usage keeps every counter optional so "missing" stays distinct from zero.
type Usage struct {
	InputTokens              *int64 `json:"input_tokens,omitempty"`
	OutputTokens             *int64 `json:"output_tokens,omitempty"`
	CacheCreationInputTokens *int64 `json:"cache_creation_input_tokens,omitempty"`
	CacheReadInputTokens     *int64 `json:"cache_read_input_tokens,omitempty"`
	ServiceTier              string `json:"service_tier,omitempty"`
}

// IsEmpty reports whether no counter was recorded.
func (u *Usage) IsEmpty() bool {
	return u == nil || (u.InputTokens == nil && u.OutputTokens == nil &&
		u.CacheCreationInputTokens == nil && u.CacheReadInputTokens == nil)
}
