package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSizerDisplayWidth(t *testing.T) {
	var s Sizer
	assert.Equal(t, 5, s.DisplayWidth("hello"))
	assert.Equal(t, 4, s.DisplayWidth("日本"))
}

func TestSizerPadString(t *testing.T) {
	var s Sizer
	assert.Equal(t, "ab  ", s.PadString("ab", 4, true))
	assert.Equal(t, "  ab", s.PadString("ab", 4, false))
	assert.Equal(t, "abcdef", s.PadString("abcdef", 4, true))
}

func TestSizerTruncate(t *testing.T) {
	var s Sizer
	assert.Equal(t, "hello", s.Truncate("hello", 10))
	assert.Equal(t, "hello", s.Truncate("hello", 0))
	assert.Equal(t, "hel…", s.Truncate("hello", 4))
}

func TestSizerFit(t *testing.T) {
	var s Sizer
	segments := []string{"~/proj", "Opus", "4h 0m left", "$1.00 today"}

	assert.Equal(t, segments, s.Fit(segments, " | ", 0))
	assert.Equal(t, segments[:2], s.Fit(segments, " | ", 16))
	assert.Equal(t, segments[:3], s.Fit(segments, " | ", 29))
	assert.Equal(t, []string{"~/p…"}, s.Fit(segments, " | ", 4))
}
