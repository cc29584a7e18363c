package views

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pablasso/planbook/internal/tui/components"
	"github.com/pablasso/planbook/internal/tui/msgs"
	"github.com/pablasso/planbook/internal/tui/styles"
)

// readClipboard is swapped out in tests.
var readClipboard = clipboard.ReadAll

// ImportModel is the dialog for pasting an export to merge.
type ImportModel struct {
	input     textarea.Model
	importing bool
	err       error
	width     int
	height    int
}

// NewImportModel creates an empty, focused import dialog.
func NewImportModel() ImportModel {
	input := textarea.New()
	input.Placeholder = `{"plans": [...]}`
	input.ShowLineNumbers = false
	input.CharLimit = 0
	input.MaxHeight = 0
	input.Focus()
	return ImportModel{input: input}
}

// Text returns the pasted payload.
func (m ImportModel) Text() string {
	return m.input.Value()
}

// SetError shows a failed import and lets the user fix the text.
func (m *ImportModel) SetError(err error) {
	m.err = err
	m.importing = false
}

// SetSize updates the model dimensions.
func (m *ImportModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.SetWidth(max(width-4, 20))
	m.input.SetHeight(max(height-6, 3))
}

// Init implements tea.Model.
func (m ImportModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m ImportModel) Update(msg tea.Msg) (ImportModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			return m, send(msgs.GoToListMsg{})
		case "ctrl+r":
			text, err := readClipboard()
			if err != nil {
				m.err = err
				return m, nil
			}
			m.input.SetValue(text)
			m.err = nil
			return m, nil
		case "ctrl+s":
			if m.importing || strings.TrimSpace(m.Text()) == "" {
				return m, nil
			}
			m.importing = true
			m.err = nil
			return m, send(msgs.ImportPayloadMsg{Text: m.Text()})
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m ImportModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Import plans"))
	b.WriteString("\n")
	b.WriteString(styles.SubtleStyle.Render("Paste an export. Plans whose id you already have are skipped."))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	status := components.NewStatusBar()
	switch {
	case m.err != nil:
		status = status.WithMessage(m.err.Error(), true)
	case m.importing:
		status = status.WithMessage("Importing...", false)
	}
	b.WriteString(status.Render(m.width, []string{"ctrl+r Paste clipboard", "ctrl+s Import", "esc Back"}))
	return b.String()
}
