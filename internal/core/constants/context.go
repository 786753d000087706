package constants

const (
	// DefaultContextWindow is the input context size used when none is configured
	DefaultContextWindow = 200000

	// DefaultMaxOutputTokens is reserved from the window when effective context is enabled
	DefaultMaxOutputTokens = 32000

	// AutoCompactBuffer is the headroom kept free before the assistant compacts the conversation
	AutoCompactBuffer = 13000

	// MaxContextPercentage caps the displayed context usage
	MaxContextPercentage = 9999
)
