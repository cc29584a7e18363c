// Package tui is the interactive planbook interface: a plan list and a
// plan form driven by a planner.Planner.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pablasso/planbook/internal/config"
	"github.com/pablasso/planbook/internal/logging"
	"github.com/pablasso/planbook/internal/plan"
	"github.com/pablasso/planbook/internal/planner"
	"github.com/pablasso/planbook/internal/storage"
	"github.com/pablasso/planbook/internal/tui/msgs"
	"github.com/pablasso/planbook/internal/tui/styles"
	"github.com/pablasso/planbook/internal/tui/views"
)

// Minimum terminal dimensions for the form to fit.
const (
	MinTerminalWidth  = 60
	MinTerminalHeight = 15
)

// View represents the different screens in the TUI.
type View int

const (
	ViewList View = iota
	ViewForm
	ViewImport
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// Model is the main Bubble Tea model that orchestrates all views.
type Model struct {
	currentView View
	width       int
	height      int

	list views.ListModel
	form views.FormModel
	imp  views.ImportModel

	ctx     context.Context
	planner *planner.Planner
	log     *slog.Logger
}

// Run loads the configuration, opens the plan store and starts the TUI.
// Logs go to planbook.log in the data directory.
func Run(opts Options) error {
	if opts.ConfigPath != "" {
		os.Setenv("PLANBOOK_CONFIG", opts.ConfigPath)
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, logFile, err := logging.OpenFile(cfg.Log, cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	if storage.IsLocal(cfg.Storage.Driver) {
		lock := storage.NewDirLock(cfg.DataDir)
		if err := lock.Acquire(); err != nil {
			if errors.Is(err, storage.ErrLocked) {
				return fmt.Errorf("another planbook process is using %s: %w", cfg.DataDir, err)
			}
			return err
		}
		defer lock.Release()
	}

	ctx := context.Background()
	slot, err := storage.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Driver, err)
	}
	defer slot.Close()

	p, err := planner.Open(ctx, slot, logger)
	if err != nil {
		return err
	}

	program := tea.NewProgram(
		NewModel(ctx, p, logger),
		tea.WithAltScreen(),
	)
	_, err = program.Run()
	return err
}

// NewModel returns the app model over p, starting on the plan list.
func NewModel(ctx context.Context, p *planner.Planner, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	return Model{
		currentView: ViewList,
		list:        views.NewListModel(p.ListPlansSortedNewestFirst()),
		ctx:         ctx,
		planner:     p,
		log:         logger,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height)
		// The form and import models only exist while their view is open.
		switch m.currentView {
		case ViewForm:
			m.form.SetSize(msg.Width, msg.Height)
		case ViewImport:
			m.imp.SetSize(msg.Width, msg.Height)
		}
		return m, nil

	case msgs.GoToListMsg:
		m.currentView = ViewList
		return m, nil

	case msgs.NewPlanMsg:
		m.planner.CancelEdit()
		return m.openForm(m.planner.Form(), false)

	case msgs.EditPlanMsg:
		form, err := m.planner.BeginEdit(msg.ID)
		if err != nil {
			m.list.SetStatus(err.Error(), true)
			m.refreshList()
			return m, nil
		}
		return m.openForm(form, true)

	case msgs.CancelEditMsg:
		m.planner.CancelEdit()
		m.currentView = ViewList
		return m, nil

	case msgs.GoToImportMsg:
		m.imp = views.NewImportModel()
		m.imp.SetSize(m.width, m.height)
		m.currentView = ViewImport
		return m, m.imp.Init()

	case msgs.SavePlanMsg:
		return m, m.savePlan(m.planner.PrepareCommit(msg.Form))

	case msgs.DuplicatePlanMsg:
		return m, m.duplicatePlan(msg.ID)

	case msgs.DeletePlanMsg:
		return m, m.deletePlan(msg.ID)

	case msgs.ExportMsg:
		return m, m.exportToClipboard()

	case msgs.ImportPayloadMsg:
		return m, m.importPayload(msg.Text)

	case msgs.PlanSavedMsg:
		m.planner.FinishCommit(msg.Plan)
		m.refreshList()
		m.list.SelectID(msg.Plan.ID)
		m.list.SetStatus(fmt.Sprintf("Saved %q", msg.Plan.Name), false)
		m.currentView = ViewList
		return m, nil

	case msgs.PlansChangedMsg:
		m.refreshList()
		m.list.SetStatus(msg.Status, false)
		return m, nil

	case msgs.ImportDoneMsg:
		m.refreshList()
		m.list.SetStatus(fmt.Sprintf("Imported %d plan(s).", msg.Added), false)
		m.currentView = ViewList
		return m, nil

	case msgs.OpErrorMsg:
		m.log.Error("operation failed", "error", msg.Err)
		switch m.currentView {
		case ViewForm:
			m.form.SetError(msg.Err)
		case ViewImport:
			m.imp.SetError(msg.Err)
		default:
			m.list.SetStatus(msg.Err.Error(), true)
		}
		return m, nil
	}

	return m.updateCurrentView(msg)
}

func (m Model) openForm(state plan.FormState, editing bool) (tea.Model, tea.Cmd) {
	m.form = views.NewFormModel(state, editing)
	m.form.SetSize(m.width, m.height)
	m.currentView = ViewForm
	return m, m.form.Init()
}

func (m *Model) refreshList() {
	m.list.SetPlans(m.planner.ListPlansSortedNewestFirst())
}

func (m Model) updateCurrentView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentView {
	case ViewForm:
		m.form, cmd = m.form.Update(msg)
	case ViewImport:
		m.imp, cmd = m.imp.Update(msg)
	default:
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

// Store writes run as commands so slow drivers do not block rendering. The
// edit session is only changed from Update.

func (m Model) savePlan(candidate plan.Plan) tea.Cmd {
	ctx, p := m.ctx, m.planner
	return func() tea.Msg {
		saved, err := p.Save(ctx, candidate)
		if err != nil {
			return msgs.OpErrorMsg{Err: err}
		}
		return msgs.PlanSavedMsg{Plan: saved}
	}
}

func (m Model) duplicatePlan(id string) tea.Cmd {
	ctx, p := m.ctx, m.planner
	return func() tea.Msg {
		dup, err := p.DuplicatePlan(ctx, id)
		if err != nil {
			return msgs.OpErrorMsg{Err: err}
		}
		return msgs.PlansChangedMsg{Status: fmt.Sprintf("Created %q", dup.Name)}
	}
}

func (m Model) deletePlan(id string) tea.Cmd {
	ctx, p := m.ctx, m.planner
	return func() tea.Msg {
		if err := p.DeletePlan(ctx, id); err != nil {
			return msgs.OpErrorMsg{Err: err}
		}
		return msgs.PlansChangedMsg{Status: "Deleted"}
	}
}

func (m Model) exportToClipboard() tea.Cmd {
	p := m.planner
	return func() tea.Msg {
		data, err := p.ExportSnapshot()
		if err != nil {
			return msgs.OpErrorMsg{Err: err}
		}
		if err := writeClipboard(string(data)); err != nil {
			return msgs.OpErrorMsg{Err: fmt.Errorf("failed to copy to clipboard: %w", err)}
		}
		return msgs.PlansChangedMsg{Status: fmt.Sprintf("Copied export of %d plan(s) to the clipboard", p.Len())}
	}
}

func (m Model) importPayload(text string) tea.Cmd {
	ctx, p := m.ctx, m.planner
	return func() tea.Msg {
		added, err := p.ImportPayload(ctx, []byte(text))
		if err != nil {
			return msgs.OpErrorMsg{Err: err}
		}
		return msgs.ImportDoneMsg{Added: added}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width > 0 && m.height > 0 && (m.width < MinTerminalWidth || m.height < MinTerminalHeight) {
		return m.renderTerminalTooSmall()
	}

	switch m.currentView {
	case ViewForm:
		return m.form.View()
	case ViewImport:
		return m.imp.View()
	default:
		return m.list.View()
	}
}

func (m Model) renderTerminalTooSmall() string {
	msg := fmt.Sprintf("Terminal too small\n\nMinimum: %dx%d\nCurrent: %dx%d",
		MinTerminalWidth, MinTerminalHeight, m.width, m.height)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		styles.ErrorStyle.Render(msg))
}
