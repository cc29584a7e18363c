package views

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pablasso/planbook/internal/plan"
	"github.com/pablasso/planbook/internal/tui/components"
	"github.com/pablasso/planbook/internal/tui/msgs"
	"github.com/pablasso/planbook/internal/tui/styles"
)

// Form fields in focus order. Service checkboxes follow fieldNotes, one
// focus stop per catalog entry.
const (
	fieldName = iota
	fieldStyle
	fieldSize
	fieldGoal
	fieldTags
	fieldNotes
	fieldServices
)

// FormModel edits one plan. It never touches the store; ctrl+s hands the
// collected FormState to the app as a SavePlanMsg.
type FormModel struct {
	editing bool
	focus   int

	name  textinput.Model
	tags  textinput.Model
	notes textarea.Model

	// style, size, goal and services live here; text fields live in the inputs
	state plan.FormState

	saving bool
	err    error
	width  int
	height int
}

// NewFormModel creates a form populated from state. editing selects the
// "Edit plan" title.
func NewFormModel(state plan.FormState, editing bool) FormModel {
	name := textinput.New()
	name.Placeholder = plan.UntitledName
	name.CharLimit = 120
	name.SetValue(state.Name)

	tags := textinput.New()
	tags.Placeholder = "comma, separated"
	tags.SetValue(strings.Join(state.Tags, ", "))

	notes := textarea.New()
	notes.Placeholder = "Where the highway goes, what to zone first..."
	notes.ShowLineNumbers = false
	notes.SetHeight(4)
	notes.SetValue(state.Notes)

	m := FormModel{
		editing: editing,
		name:    name,
		tags:    tags,
		notes:   notes,
		state:   state,
	}
	m.state.Services = slices.Clone(state.Services)
	m.setFocus(fieldName)
	return m
}

// FormState returns the form's current values.
func (m FormModel) FormState() plan.FormState {
	s := m.state
	s.Name = m.name.Value()
	s.Notes = m.notes.Value()
	s.Tags = splitTags(m.tags.Value())
	s.Services = slices.Clone(m.state.Services)
	return s
}

// Editing reports whether the form edits an existing plan.
func (m FormModel) Editing() bool {
	return m.editing
}

// Focus returns the focused field index.
func (m FormModel) Focus() int {
	return m.focus
}

// Saving reports whether a save is in flight.
func (m FormModel) Saving() bool {
	return m.saving
}

// SetError shows a failed save and lets the user retry.
func (m *FormModel) SetError(err error) {
	m.err = err
	m.saving = false
}

// SetSize updates the model dimensions.
func (m *FormModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	inputWidth := max(width-16, 20)
	m.name.Width = inputWidth
	m.tags.Width = inputWidth
	m.notes.SetWidth(inputWidth)
}

func (m *FormModel) setFocus(field int) tea.Cmd {
	last := fieldServices + len(plan.ServiceCatalog) - 1
	m.focus = min(max(field, 0), last)

	m.name.Blur()
	m.tags.Blur()
	m.notes.Blur()

	switch m.focus {
	case fieldName:
		return m.name.Focus()
	case fieldTags:
		return m.tags.Focus()
	case fieldNotes:
		return m.notes.Focus()
	}
	return nil
}

// Init implements tea.Model.
func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			// The save in flight decides whether the form closes.
			if m.saving {
				return m, nil
			}
			return m, send(msgs.CancelEditMsg{})
		case "ctrl+s":
			if m.saving {
				return m, nil
			}
			m.saving = true
			m.err = nil
			return m, send(msgs.SavePlanMsg{Form: m.FormState()})
		case "tab":
			return m, m.setFocus(m.focus + 1)
		case "shift+tab":
			return m, m.setFocus(m.focus - 1)
		}

		if cmd, handled := m.handleFieldKey(msg); handled {
			return m, cmd
		}
	}

	return m.updateInputs(msg)
}

// handleFieldKey handles keys that depend on the focused field. It reports
// false for keys the focused text input should receive.
func (m *FormModel) handleFieldKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	key := msg.String()

	switch m.focus {
	case fieldName, fieldTags:
		switch key {
		case "enter", "down":
			return m.setFocus(m.focus + 1), true
		case "up":
			return m.setFocus(m.focus - 1), true
		}
		return nil, false

	case fieldNotes:
		return nil, false

	case fieldStyle, fieldSize, fieldGoal:
		switch key {
		case "left", "h":
			m.cycleEnum(-1)
		case "right", "l", " ":
			m.cycleEnum(1)
		case "up", "k":
			return m.setFocus(m.focus - 1), true
		case "down", "j", "enter":
			return m.setFocus(m.focus + 1), true
		}
		return nil, true
	}

	// service checkboxes
	switch key {
	case " ", "x", "enter":
		m.state.ToggleService(plan.ServiceCatalog[m.focus-fieldServices])
	case "up", "k":
		return m.setFocus(m.focus - 1), true
	case "down", "j":
		return m.setFocus(m.focus + 1), true
	}
	return nil, true
}

func (m *FormModel) cycleEnum(delta int) {
	switch m.focus {
	case fieldStyle:
		m.state.Style = cycle(plan.Styles, m.state.Style, delta)
	case fieldSize:
		m.state.Size = cycle(plan.Sizes, m.state.Size, delta)
	case fieldGoal:
		m.state.Goal = cycle(plan.Goals, m.state.Goal, delta)
	}
}

func (m FormModel) updateInputs(msg tea.Msg) (FormModel, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case fieldName:
		m.name, cmd = m.name.Update(msg)
	case fieldTags:
		m.tags, cmd = m.tags.Update(msg)
	case fieldNotes:
		m.notes, cmd = m.notes.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m FormModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder
	title := "New plan"
	if m.editing {
		title = "Edit plan"
	}
	b.WriteString(styles.TitleStyle.Render(title))
	b.WriteString("\n")

	b.WriteString(m.row(fieldName, "Name", m.name.View()))
	b.WriteString(m.row(fieldStyle, "Style", m.enumView(fieldStyle, enumNames(plan.Styles), enumLabels(plan.Styles, plan.Style.Label), m.state.Style)))
	b.WriteString(m.row(fieldSize, "Size", m.enumView(fieldSize, enumNames(plan.Sizes), enumLabels(plan.Sizes, plan.Size.Label), m.state.Size)))
	b.WriteString(m.row(fieldGoal, "Goal", m.enumView(fieldGoal, enumNames(plan.Goals), enumLabels(plan.Goals, plan.Goal.Label), m.state.Goal)))
	b.WriteString(m.row(fieldTags, "Tags", m.tags.View()))
	b.WriteString(m.row(fieldNotes, "Notes", m.notes.View()))
	b.WriteString(m.servicesView())
	b.WriteString("\n")

	status := components.NewStatusBar()
	switch {
	case m.err != nil:
		status = status.WithMessage("Save failed: "+m.err.Error(), true)
	case m.saving:
		status = status.WithMessage("Saving...", false)
	}
	hints := []string{"tab Next", "←/→ Change", "space Toggle", "ctrl+s Save", "esc Cancel"}
	b.WriteString(status.Render(m.width, hints))
	return b.String()
}

func (m FormModel) row(field int, label, content string) string {
	labelStyle := styles.LabelStyle
	if m.focus == field {
		labelStyle = styles.FocusedLabelStyle
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), content) + "\n"
}

func enumLabels[T ~string](values []T, label func(T) string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = label(v)
	}
	return out
}

func (m FormModel) enumView(field int, names, labels []string, current string) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		switch {
		case names[i] == current && m.focus == field:
			parts[i] = styles.SelectedStyle.Render("[" + l + "]")
		case names[i] == current:
			parts[i] = "[" + l + "]"
		default:
			parts[i] = styles.SubtleStyle.Render(" " + l + " ")
		}
	}
	return strings.Join(parts, " ")
}

func (m FormModel) servicesView() string {
	var b strings.Builder
	done := len(m.state.Services)
	meter := components.NewServiceMeter(done, len(plan.ServiceCatalog), 0).View()

	labelStyle := styles.LabelStyle
	if m.focus >= fieldServices {
		labelStyle = styles.FocusedLabelStyle
	}
	b.WriteString(labelStyle.Render("Services"))
	b.WriteString(styles.MeterStyle.Render(meter))
	b.WriteString("\n")

	const perRow = 3
	for i, name := range plan.ServiceCatalog {
		box := "[ ]"
		if m.state.HasService(name) {
			box = "[x]"
		}
		cell := fmt.Sprintf("%s %-16s", box, name)
		switch {
		case m.focus == fieldServices+i:
			cell = styles.SelectedStyle.Render(cell)
		case m.state.HasService(name):
			cell = styles.CheckedStyle.Render(cell)
		}
		if i%perRow == 0 {
			b.WriteString(strings.Repeat(" ", styles.LabelWidth))
		}
		b.WriteString(cell)
		if i%perRow == perRow-1 || i == len(plan.ServiceCatalog)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func enumNames[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// cycle returns the value delta steps from current, wrapping around. An
// unknown current starts from the first value.
func cycle[T ~string](values []T, current string, delta int) string {
	i := slices.IndexFunc(values, func(v T) bool { return string(v) == current })
	if i < 0 {
		return string(values[0])
	}
	n := len(values)
	return string(values[((i+delta)%n+n)%n])
}

// splitTags splits comma-separated input. Normalization happens on save.
func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Split(raw, ",")
}
