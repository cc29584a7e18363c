package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/pablasso/planbook/internal/plan"
	"github.com/pablasso/planbook/internal/tui/components"
	"github.com/pablasso/planbook/internal/tui/msgs"
	"github.com/pablasso/planbook/internal/tui/styles"
)

// linesPerPlan is how many rows one plan takes in the list.
const linesPerPlan = 2

// ListModel is the model for the plan list, the TUI's home screen.
type ListModel struct {
	plans    []plan.Plan
	cursor   int
	deleting bool // waiting for y/n on the plan under the cursor
	width    int
	height   int
	status   components.StatusBar
	now      func() time.Time
}

// NewListModel creates a list showing plans in the given order.
func NewListModel(plans []plan.Plan) ListModel {
	return ListModel{plans: plans, status: components.NewStatusBar(), now: time.Now}
}

// SetPlans replaces the shown plans, keeping the cursor on the same plan
// when it is still present.
func (m *ListModel) SetPlans(plans []plan.Plan) {
	var selected string
	if p, ok := m.Selected(); ok {
		selected = p.ID
	}
	m.plans = plans
	m.deleting = false
	m.cursor = 0
	for i, p := range plans {
		if p.ID == selected {
			m.cursor = i
			break
		}
	}
}

// SelectID moves the cursor to the plan with id, if shown.
func (m *ListModel) SelectID(id string) {
	for i, p := range m.plans {
		if p.ID == id {
			m.cursor = i
			return
		}
	}
}

// SetStatus shows msg on the status bar.
func (m *ListModel) SetStatus(msg string, isError bool) {
	m.status = m.status.WithMessage(msg, isError)
}

// SetSize updates the model dimensions.
func (m *ListModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Selected returns the plan under the cursor.
func (m ListModel) Selected() (plan.Plan, bool) {
	if m.cursor < 0 || m.cursor >= len(m.plans) {
		return plan.Plan{}, false
	}
	return m.plans[m.cursor], true
}

// Cursor returns the current cursor position.
func (m ListModel) Cursor() int {
	return m.cursor
}

// Deleting reports whether a delete is waiting for confirmation.
func (m ListModel) Deleting() bool {
	return m.deleting
}

// Init implements tea.Model.
func (m ListModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ListModel) Update(msg tea.Msg) (ListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.deleting {
			return m.updateConfirm(msg)
		}

		// Any key clears the last status message.
		m.status = components.NewStatusBar()

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.plans)-1 {
				m.cursor++
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = max(len(m.plans)-1, 0)
		case "n":
			return m, send(msgs.NewPlanMsg{})
		case "e", "enter":
			if p, ok := m.Selected(); ok {
				return m, send(msgs.EditPlanMsg{ID: p.ID})
			}
		case "c":
			if p, ok := m.Selected(); ok {
				return m, send(msgs.DuplicatePlanMsg{ID: p.ID})
			}
		case "d":
			if _, ok := m.Selected(); ok {
				m.deleting = true
			}
		case "x":
			return m, send(msgs.ExportMsg{})
		case "i":
			return m, send(msgs.GoToImportMsg{})
		}
	}
	return m, nil
}

func (m ListModel) updateConfirm(msg tea.KeyMsg) (ListModel, tea.Cmd) {
	m.deleting = false
	switch msg.String() {
	case "y", "Y":
		if p, ok := m.Selected(); ok {
			return m, send(msgs.DeletePlanMsg{ID: p.ID})
		}
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model.
func (m ListModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder
	title := styles.TitleStyle.Render(fmt.Sprintf("Planbook · %d plan(s)", len(m.plans)))
	b.WriteString(title)
	b.WriteString("\n")

	// title + margin, blank line before status bar, status bar
	bodyHeight := m.height - lipgloss.Height(title) - 2
	if len(m.plans) == 0 {
		body := styles.SubtleStyle.Render("No plans yet. Press 'n' to sketch one, or 'i' to import an export.")
		b.WriteString(lipgloss.NewStyle().Height(bodyHeight).Render(body))
	} else {
		b.WriteString(m.renderPlans(bodyHeight))
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m ListModel) renderPlans(height int) string {
	visible := max(height/linesPerPlan, 1)
	start, end := components.VisibleRange(m.cursor, len(m.plans), visible)

	var rows []string
	for i := start; i < end; i++ {
		rows = append(rows, m.formatPlan(i, m.plans[i]))
	}
	body := lipgloss.NewStyle().
		Width(max(m.width-2, 0)).
		Height(height).
		Render(strings.Join(rows, "\n"))

	bar := components.RenderScrollbar(height, len(m.plans)*linesPerPlan, start*linesPerPlan)
	return lipgloss.JoinHorizontal(lipgloss.Top, body, " ", bar)
}

// formatPlan renders one plan as two lines: name and facets, then services,
// tags and age.
func (m ListModel) formatPlan(index int, p plan.Plan) string {
	indicator := "○"
	if index == m.cursor {
		indicator = "●"
	}

	head := fmt.Sprintf("%s %-28s %s · %s · %s", indicator, truncate(p.Name, 28),
		p.Style.Label(), p.Size.Label(), p.Goal.Label())
	if index == m.cursor {
		head = styles.SelectedStyle.Render(head)
	}

	meter := components.NewServiceMeter(plan.ServicesDone(p), len(plan.ServiceCatalog), 0).View()
	detail := "  " + styles.MeterStyle.Render(meter) + styles.SubtleStyle.Render("  saved "+m.age(p.TS))
	if len(p.Tags) > 0 {
		detail += "  " + styles.TagStyle.Render("#"+strings.Join(p.Tags, " #"))
	}
	return head + "\n" + detail
}

func (m ListModel) age(ts int64) string {
	if ts <= 0 {
		return "never"
	}
	return humanize.RelTime(time.UnixMilli(ts), m.now(), "ago", "from now")
}

func (m ListModel) renderStatusBar() string {
	if m.deleting {
		p, _ := m.Selected()
		return styles.ErrorStyle.Render(fmt.Sprintf("Delete %q? y to confirm, any other key to keep it", p.Name))
	}
	hints := []string{"j/k Move", "n New", "e Edit", "c Copy", "d Delete", "x Export", "i Import", "q Quit"}
	return m.status.Render(m.width, hints)
}

func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
