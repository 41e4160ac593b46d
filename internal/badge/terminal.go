package badge

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// TerminalBadge writes the badge to a terminal, redrawing it in place when
// the writer is a TTY and printing one line per change otherwise.
type TerminalBadge struct {
	mu       sync.Mutex
	w        io.Writer
	renderer *lipgloss.Renderer
	inPlace  bool
	label    string

	last      string
	lastColor Color
}

// NewTerminalBadge creates a badge on w. label prefixes the count.
func NewTerminalBadge(w io.Writer, label string) *TerminalBadge {
	inPlace := false
	if f, ok := w.(*os.File); ok {
		inPlace = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &TerminalBadge{
		w:        w,
		renderer: lipgloss.NewRenderer(w),
		inPlace:  inPlace,
		label:    label,
	}
}

// Set redraws the badge. Repeating the current value writes nothing.
func (b *TerminalBadge) Set(text string, color Color) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if text == b.last && color == b.lastColor {
		return nil
	}
	b.last, b.lastColor = text, color

	line := b.Render(text, color)
	if b.label != "" {
		line = b.label + " " + line
	}

	var err error
	if b.inPlace {
		_, err = fmt.Fprintf(b.w, "\r\033[K%s", line)
	} else {
		_, err = fmt.Fprintln(b.w, line)
	}
	return err
}

// Render styles text for color. Without color support it falls back to
// "[text]".
func (b *TerminalBadge) Render(text string, color Color) string {
	if b.renderer.ColorProfile() == termenv.Ascii {
		return "[" + text + "]"
	}
	return b.renderer.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(lipgloss.Color("#ffffff")).
		Background(lipgloss.Color(string(color))).
		Render(text)
}

var _ Badge = (*TerminalBadge)(nil)
