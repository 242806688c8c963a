// Package ui styles the wrapper's one line of interactive feedback.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Muted matches how git itself styles advice text: visible but secondary.
var mutedStyle = lipgloss.NewStyle().
	Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"})

// Render styles text for interactive terminals and leaves it untouched when
// stdout is piped, so scripts capturing the wrapper's output never see
// escape sequences.
func Render(text string) string {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return mutedStyle.Render(text)
	}
	return text
}
