// Package styles holds the lipgloss styles shared by the planbook views.
package styles

import "github.com/charmbracelet/lipgloss"

// LabelWidth is the column every form label is padded to.
const LabelWidth = 10

var (
	teal  = lipgloss.Color("#5FAFAF")
	gray  = lipgloss.Color("#666666")
	sage  = lipgloss.Color("#87AF87")
	rust  = lipgloss.Color("#AF5F5F")
	ochre = lipgloss.Color("#AF875F")
)

// Screen chrome.
var (
	TitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(teal).MarginBottom(1)
	SubtleStyle = lipgloss.NewStyle().Foreground(gray)
	HintStyle   = lipgloss.NewStyle().Foreground(gray)
	NoticeStyle = lipgloss.NewStyle().Foreground(sage)
	ErrorStyle  = lipgloss.NewStyle().Foreground(rust)
)

// Plan content.
var (
	// SelectedStyle marks the plan, enum value or service under the cursor.
	SelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(teal)

	TagStyle     = lipgloss.NewStyle().Foreground(ochre)
	CheckedStyle = lipgloss.NewStyle().Foreground(sage)
	MeterStyle   = lipgloss.NewStyle().Foreground(ochre)

	LabelStyle        = lipgloss.NewStyle().Width(LabelWidth).Foreground(gray)
	FocusedLabelStyle = LabelStyle.Foreground(teal).Bold(true)
)
