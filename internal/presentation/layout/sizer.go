package layout

import (
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/penwyp/go-claude-statusline/internal/util"
)

const ellipsis = "…"

type Sizer struct{}

// DisplayWidth returns the terminal cell width of s, counting wide runes as two
func (Sizer) DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// PadString pads a string to a specific display width
func (i Sizer) PadString(s string, width int, leftAlign bool) string {
	actualWidth := i.DisplayWidth(s)
	if actualWidth >= width {
		return s
	}

	padding := strings.Repeat(" ", width-actualWidth)
	if leftAlign {
		return s + padding
	}
	return padding + s
}

// Truncate shortens s to width cells, ending in an ellipsis when cut
func (i Sizer) Truncate(s string, width int) string {
	if width <= 0 || i.DisplayWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, ellipsis)
}

// Fit keeps the leading segments that fit in width when joined by sep. The
// first segment is always kept, truncated if needed. A width of zero or less
// keeps everything.
func (i Sizer) Fit(segments []string, sep string, width int) []string {
	if width <= 0 || len(segments) == 0 {
		return segments
	}

	kept := []string{i.Truncate(segments[0], width)}
	used := i.DisplayWidth(kept[0])
	sepWidth := i.DisplayWidth(sep)
	for _, s := range segments[1:] {
		w := sepWidth + i.DisplayWidth(s)
		if used+w > width {
			break
		}
		kept = append(kept, s)
		used += w
	}
	return kept
}

// TerminalWidth returns the width of stdout when it is a terminal, otherwise 0
func (Sizer) TerminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		util.LogDebugf("Failed to get terminal size: %v", err)
		return 0
	}
	return width
}
