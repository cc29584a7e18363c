package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pablasso/planbook/internal/tui/styles"
)

// StatusBar renders the bottom line: key hints on the left and an optional
// message on the right.
type StatusBar struct {
	message string
	isError bool
}

// NewStatusBar creates a status bar without a message.
func NewStatusBar() StatusBar {
	return StatusBar{}
}

// WithMessage returns a copy of the bar showing msg. Errors render in the
// error color.
func (s StatusBar) WithMessage(msg string, isError bool) StatusBar {
	s.message = msg
	s.isError = isError
	return s
}

// Render returns the status bar for the given width and hints. Hints are
// joined with " • ".
func (s StatusBar) Render(width int, hints []string) string {
	left := styles.HintStyle.Render(strings.Join(hints, " • "))
	if s.message == "" {
		return lipgloss.NewStyle().Width(width).Render(left)
	}

	msgStyle := styles.NoticeStyle
	if s.isError {
		msgStyle = styles.ErrorStyle
	}
	right := msgStyle.Render(s.message)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		// Not enough room for both; the message wins.
		return lipgloss.NewStyle().Width(width).Render(right)
	}
	return left + strings.Repeat(" ", gap) + right
}
