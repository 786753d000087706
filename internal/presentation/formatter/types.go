package formatter

import (
	"fmt"
	"io"

	"github.com/penwyp/go-claude-statusline/internal/core/model"
)

const (
	FormatLine = "line"
	FormatJSON = "json"
)

// Options controls how a snapshot is rendered
type Options struct {
	NoColor bool
	// Width truncates the line; zero uses the terminal width when stdout is one
	Width int
	// Home is replaced by ~ in the directory segment
	Home string
}

// Formatter writes one rendering of a snapshot
type Formatter interface {
	Format(hook model.HookInput, snapshot *model.Snapshot) error
}

// New returns the formatter for the named output format
func New(format string, w io.Writer, opts Options) (Formatter, error) {
	switch format {
	case "", FormatLine:
		return NewStatuslineFormatter(w, opts), nil
	case FormatJSON:
		return NewJSONFormatter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
