// Package ui renders the messages shown to the user on stderr
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	errorColor = lipgloss.Color("#EF4444") // Red
	mutedColor = lipgloss.Color("#6B7280") // Gray

	// Error messages
	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	// Hints below an error
	HintStyle = lipgloss.NewStyle().
			Foreground(mutedColor)
)

// Errorf writes a single "Error: ..." line to w
func Errorf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("Error:"), fmt.Sprintf(format, args...))
}

// Hint writes a de-emphasized follow-up line to w
func Hint(w io.Writer, text string) {
	fmt.Fprintln(w, HintStyle.Render(text))
}
