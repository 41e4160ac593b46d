// Package ui provides terminal formatting for reviewwatch output: status
// symbols, colors that switch off when stdout is not a terminal, and
// width-aware tables.
package ui

import (
	"fmt"
	"strings"
)

// Status symbols
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolNext    = "→"
	SymbolWarning = "!"
	SymbolBell    = "🔔"
)

// SectionDivider creates a section divider with the given title.
func SectionDivider(title string) string {
	return fmt.Sprintf("%s\n%s", title, strings.Repeat("─", DisplayWidth(title)))
}

// Success formats a success message with the success symbol.
func Success(message string) string {
	return fmt.Sprintf("%s %s", SuccessText(SymbolSuccess), message)
}

// Error formats an error message with the error symbol.
func Error(message string) string {
	return fmt.Sprintf("%s %s", ErrorText(SymbolError), message)
}

// Warning formats a warning message with the warning symbol.
func Warning(message string) string {
	return fmt.Sprintf("%s %s", WarningText(SymbolWarning), message)
}

// Next formats a suggested follow-up action.
func Next(message string) string {
	return fmt.Sprintf("%s %s", SymbolNext, message)
}

// Indent adds indentation to every line of message.
func Indent(message string, spaces int) string {
	indent := strings.Repeat(" ", spaces)
	lines := strings.Split(message, "\n")
	for i, line := range lines {
		lines[i] = indent + line
	}
	return strings.Join(lines, "\n")
}
