package model

// Model identifiers
const (
	ModelOpus41     = "claude-opus-4-1-20250805"
	ModelOpus4      = "claude-opus-4-20250514"
	ModelOpus3      = "claude-3-opus-20240229"
	ModelSonnet4    = "claude-sonnet-4-20250514"
	ModelSonnet37   = "claude-3-7-sonnet-20250219"
	ModelSonnet35   = "claude-3.5-sonnet-20241022"
	ModelSonnet35V2 = "claude-3-5-sonnet-20241022"
	ModelHaiku35    = "claude-3-5-haiku-20241022"
)

// Model families used for fallback pricing
const (
	FamilyOpus   = "opus"
	FamilySonnet = "sonnet"
)

// Message Entry Type
const (
	EntryMessage   = "message"
	EntryAssistant = "assistant"
	EntryUser      = "user"
)
