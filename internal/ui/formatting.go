package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

// Header creates a prominent header section.
func Header(title string) string {
	return Bold(title)
}

// KeyValue formats a key-value pair.
func KeyValue(key, value string) string {
	return fmt.Sprintf("  %s: %s", Bold(key), value)
}

// DisplayWidth is the number of terminal cells s occupies.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens s to at most width cells, marking the cut with "…".
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// RelativeTime renders t relative to now, e.g. "5m ago".
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < 0:
		return "just now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// Table creates a simple aligned table. Widths are measured in terminal
// cells so that wide characters in titles do not break alignment.
func Table(headers []string, rows [][]string) string {
	if len(headers) == 0 || len(rows) == 0 {
		return ""
	}

	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = runewidth.StringWidth(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], runewidth.StringWidth(cell))
			}
		}
	}

	var result strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i >= len(widths) {
				break
			}
			if i == len(cells)-1 {
				result.WriteString(cell)
				continue
			}
			result.WriteString(runewidth.FillRight(cell, widths[i]))
			result.WriteString("  ")
		}
		result.WriteString("\n")
	}

	writeRow(headers)
	for i, width := range widths {
		result.WriteString(strings.Repeat("─", width))
		if i < len(widths)-1 {
			result.WriteString("  ")
		}
	}
	result.WriteString("\n")
	for _, row := range rows {
		writeRow(row)
	}

	return result.String()
}
