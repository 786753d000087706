package model

// TokenCounts holds the four token categories of one API call. A nil field
// means the category was not reported.
type TokenCounts struct {
	Input         *int64 `json:"input,omitempty"`
	Output        *int64 `json:"output,omitempty"`
	CacheCreation *int64 `json:"cache_creation,omitempty"`
	CacheRead     *int64 `json:"cache_read,omitempty"`
}

// TokenCountsFromUsage keeps only non-negative counters.
func TokenCountsFromUsage(u *Usage) TokenCounts {
	if u == nil {
		return TokenCounts{}
	}
	return TokenCounts{
		Input:         nonNegative(u.InputTokens),
		Output:        nonNegative(u.OutputTokens),
		CacheCreation: nonNegative(u.CacheCreationInputTokens),
		CacheRead:     nonNegative(u.CacheReadInputTokens),
	}
}

func nonNegative(v *int64) *int64 {
	if v == nil || *v < 0 {
		return nil
	}
	n := *v
	return &n
}

func valueOrZero(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

func (t TokenCounts) IsEmpty() bool {
	return t.Input == nil && t.Output == nil && t.CacheCreation == nil && t.CacheRead == nil
}

func (t TokenCounts) InputOrZero() int64         { return valueOrZero(t.Input) }
func (t TokenCounts) OutputOrZero() int64        { return valueOrZero(t.Output) }
func (t TokenCounts) CacheCreationOrZero() int64 { return valueOrZero(t.CacheCreation) }
func (t TokenCounts) CacheReadOrZero() int64     { return valueOrZero(t.CacheRead) }

// Total sums all four categories.
func (t TokenCounts) Total() int64 {
	return t.InputOrZero() + t.OutputOrZero() + t.CacheCreationOrZero() + t.CacheReadOrZero()
}

// Add sums two token counts; a category stays absent only if absent on both sides.
func (t TokenCounts) Add(other TokenCounts) TokenCounts {
	return TokenCounts{
		Input:         addOptional(t.Input, other.Input),
		Output:        addOptional(t.Output, other.Output),
		CacheCreation: addOptional(t.CacheCreation, other.CacheCreation),
		CacheRead:     addOptional(t.CacheRead, other.CacheRead),
	}
}

func addOptional(a, b *int64) *int64 {
	if a == nil && b == nil {
		return nil
	}
	sum := valueOrZero(a) + valueOrZero(b)
	return &sum
}

// Int64 is a helper for building optional counters.
func Int64(v int64) *int64 {
	return &v
}
