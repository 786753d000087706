package formatter

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/penwyp/go-claude-statusline/internal/core/model"
	"github.com/penwyp/go-claude-statusline/internal/presentation/layout"
	"github.com/penwyp/go-claude-statusline/internal/util"
)

const separator = " | "

// Burn rate thresholds in dollars per hour
const (
	burnRateWarning  = 30.0
	burnRateCritical = 100.0
)

// Context usage thresholds in percent
const (
	contextWarning  = 50
	contextCritical = 80
)

var (
	colorGreen  = lipgloss.Color("2")
	colorYellow = lipgloss.Color("3")
	colorRed    = lipgloss.Color("1")
	colorDim    = lipgloss.Color("8")
	colorCyan   = lipgloss.Color("6")
)

type segment struct {
	text  string
	style lipgloss.Style
}

// StatuslineFormatter renders the single status line
type StatuslineFormatter struct {
	w        io.Writer
	opts     Options
	sizer    layout.Sizer
	renderer *lipgloss.Renderer
}

func NewStatuslineFormatter(w io.Writer, opts Options) *StatuslineFormatter {
	renderer := lipgloss.NewRenderer(w)
	if opts.NoColor {
		renderer.SetColorProfile(termenv.Ascii)
	} else {
		renderer.SetColorProfile(termenv.ANSI)
	}
	return &StatuslineFormatter{
		w:        w,
		opts:     opts,
		renderer: renderer,
	}
}

func (f *StatuslineFormatter) Format(hook model.HookInput, snapshot *model.Snapshot) error {
	_, err := fmt.Fprintln(f.w, f.Render(hook, snapshot))
	return err
}

// Render builds the line. Segments that do not fit the width are dropped from
// the right before colors are applied.
func (f *StatuslineFormatter) Render(hook model.HookInput, snapshot *model.Snapshot) string {
	segments := f.segments(hook, snapshot)

	width := f.opts.Width
	if width == 0 {
		width = f.sizer.TerminalWidth()
	}

	plain := make([]string, len(segments))
	for i, s := range segments {
		plain[i] = s.text
	}
	fitted := f.sizer.Fit(plain, separator, width)

	rendered := make([]string, len(fitted))
	for i, text := range fitted {
		rendered[i] = segments[i].style.Render(text)
	}
	return strings.Join(rendered, f.renderer.NewStyle().Foreground(colorDim).Render(separator))
}

func (f *StatuslineFormatter) segments(hook model.HookInput, snapshot *model.Snapshot) []segment {
	plain := f.renderer.NewStyle()
	var out []segment

	if dir := f.shortenHome(hook.Dir()); dir != "" {
		out = append(out, segment{text: dir, style: plain.Bold(true)})
	}
	if name := hook.ModelName(); name != "" {
		out = append(out, segment{text: name, style: f.renderer.NewStyle().Foreground(colorCyan)})
	}
	if snapshot == nil {
		return out
	}

	block := snapshot.ActiveBlock
	if block != nil {
		out = append(out, segment{text: remainingText(block.Remaining), style: plain})
	}

	costs := []string{snapshot.TodayCost.String() + " today"}
	if snapshot.SessionCost != nil {
		costs = append(costs, snapshot.SessionCost.String()+" session")
	}
	if block != nil {
		costs = append(costs, block.TotalCost.String()+" block")
	}
	out = append(out, segment{text: strings.Join(costs, ", "), style: plain})

	if block != nil && block.BurnRate != nil {
		out = append(out, segment{
			text:  util.FormatCostRate(block.BurnRate.CostPerHour),
			style: f.renderer.NewStyle().Foreground(burnRateColor(block.BurnRate.CostPerHour)),
		})
	}

	if ctx := snapshot.Context; ctx != nil {
		out = append(out, segment{
			text:  fmt.Sprintf("%s (%d%%)", util.FormatNumber(ctx.Tokens), ctx.Percentage),
			style: f.renderer.NewStyle().Foreground(contextColor(ctx.Percentage)),
		})
	}
	return out
}

func (f *StatuslineFormatter) shortenHome(dir string) string {
	home := f.opts.Home
	if dir == "" || home == "" {
		return dir
	}
	home = filepath.Clean(home)
	if dir == home {
		return "~"
	}
	if rest, ok := strings.CutPrefix(dir, home+string(filepath.Separator)); ok {
		return "~/" + rest
	}
	return dir
}

// remainingText renders the time left, or "expired" once the window has passed
func remainingText(r model.RemainingTime) string {
	if r.Expired {
		return "expired"
	}
	return util.FormatRemainingMinutes(r.Minutes)
}

func burnRateColor(perHour float64) lipgloss.Color {
	switch {
	case perHour < burnRateWarning:
		return colorGreen
	case perHour < burnRateCritical:
		return colorYellow
	default:
		return colorRed
	}
}

func contextColor(percentage int64) lipgloss.Color {
	switch {
	case percentage < contextWarning:
		return colorGreen
	case percentage < contextCritical:
		return colorYellow
	default:
		return colorRed
	}
}
