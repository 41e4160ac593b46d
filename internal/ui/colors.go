package ui

import (
	"os"
	"sync/atomic"

	"github.com/mattn/go-isatty"
)

// Color codes for terminal output
const (
	ColorReset = "\033[0m"
	ColorBold  = "\033[1m"
	ColorDim   = "\033[2m"

	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorCyan   = "\033[36m"
)

var colorEnabled atomic.Bool

func init() {
	colorEnabled.Store(detectColor(os.Stdout.Fd()))
}

// detectColor enables color on terminals unless NO_COLOR is set.
func detectColor(fd uintptr) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// IsTerminal reports whether fd is attached to a terminal.
func IsTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ColorEnabled reports whether Colorize emits escape codes.
func ColorEnabled() bool {
	return colorEnabled.Load()
}

// SetColorEnabled overrides terminal detection, e.g. for --no-color.
func SetColorEnabled(enabled bool) {
	colorEnabled.Store(enabled)
}

// Colorize wraps text with the given color code.
func Colorize(text, color string) string {
	if !ColorEnabled() {
		return text
	}
	return color + text + ColorReset
}

func Bold(text string) string { return Colorize(text, ColorBold) }

func Dim(text string) string { return Colorize(text, ColorDim) }

func SuccessText(text string) string { return Colorize(text, ColorGreen) }

func ErrorText(text string) string { return Colorize(text, ColorRed) }

func WarningText(text string) string { return Colorize(text, ColorYellow) }

func InfoText(text string) string { return Colorize(text, ColorCyan) }
