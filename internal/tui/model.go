// Package tui implements the interactive alert dashboard: intake form,
// submission state machine, and report drill-down views.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quillbank/sarflow/internal/analysis"
	"github.com/quillbank/sarflow/internal/common"
	"github.com/quillbank/sarflow/internal/storage"
	"github.com/quillbank/sarflow/internal/tui/components"
	"github.com/quillbank/sarflow/internal/tui/themes"
)

// State represents the current state of the dashboard.
//
// The submission machine is strict: Intake -> Submitting on submit,
// Submitting -> Report on success, Submitting -> Intake on failure.
// There is no path from Intake straight to Report.
type State int

const (
	StateIntake State = iota
	StateSubmitting
	StateReport
	StateHelp
)

// Model holds the main TUI state.
type Model struct {
	theme      themes.Theme
	client     *analysis.Client
	store      *storage.Store
	config     Config
	keymap     KeyMap
	intake     components.IntakeModel
	report     components.ReportModel
	spinner    spinner.Model
	status     string
	statusErr  bool
	state      State
	prevState  State
	submitTime time.Time
	width      int
	height     int
	quitting   bool
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(cfg.Theme.Primary)

	return Model{
		state:   StateIntake,
		config:  cfg,
		keymap:  DefaultKeyMap(),
		theme:   cfg.Theme,
		client:  cfg.Client,
		store:   cfg.Store,
		intake:  components.NewIntakeModel(cfg.Draft, cfg.Theme),
		report:  components.NewReportModel(cfg.Theme),
		spinner: s,
		width:   cfg.Width,
		height:  cfg.Height,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.EnterAltScreen
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKeys(msg); handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()

	case reportReceivedMsg:
		m.report.SetReport(msg.report, msg.snapshot)
		m.state = StateReport
		m.status = ""
		return m, m.recordSubmission(msg.snapshot, msg.report)

	case submitFailedMsg:
		// The draft survives a failed submission untouched.
		m.state = StateIntake
		m.setStatus(analysis.UserMessage(msg.err), true)
		return m, clearStatusAfter(5 * time.Second)

	case draftSavedMsg:
		if msg.err != nil {
			m.setStatus("Failed to save draft: "+common.UserMessage(msg.err), true)
		} else if m.store == nil {
			m.setStatus("No draft store configured", true)
		} else {
			m.setStatus("Draft saved as "+msg.name, false)
		}
		return m, clearStatusAfter(3 * time.Second)

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case spinner.TickMsg:
		if m.state == StateSubmitting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	// Delegate to the active component.
	switch m.state {
	case StateIntake:
		newIntake, cmd := m.intake.Update(msg)
		m.intake = newIntake
		cmds = append(cmds, cmd)

	case StateReport:
		newReport, cmd := m.report.Update(msg)
		m.report = newReport
		cmds = append(cmds, cmd)

	case StateSubmitting, StateHelp:
		// Keys are ignored while a submission is in flight; the help
		// overlay only responds to the global toggles.
	}

	return m, tea.Batch(cmds...)
}

// editing reports whether a component owns the keyboard.
func (m Model) editing() bool {
	switch m.state {
	case StateIntake:
		return m.intake.Editing()
	case StateReport:
		return m.report.Editing()
	default:
		return false
	}
}

// handleGlobalKeys handles keys that work across states. The second
// return value reports whether the key was consumed.
func (m *Model) handleGlobalKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.quitting = true
		return tea.Quit, true
	}

	// While a field editor has focus, every other key belongs to it.
	if m.editing() {
		return nil, false
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.state != StateSubmitting {
			m.quitting = true
			return tea.Quit, true
		}

	case key.Matches(msg, m.keymap.Help):
		if m.state == StateHelp {
			m.state = m.prevState
		} else {
			m.prevState = m.state
			m.state = StateHelp
		}
		return nil, true

	case key.Matches(msg, m.keymap.Submit):
		if m.state == StateIntake {
			return m.startSubmission(), true
		}

	case key.Matches(msg, m.keymap.SaveDraft):
		if m.state == StateIntake || m.state == StateReport {
			return m.saveDraft(m.intake.Draft()), true
		}

	case key.Matches(msg, m.keymap.ToggleView):
		switch m.state {
		case StateIntake:
			if m.report.HasReport() {
				m.state = StateReport
				return nil, true
			}
		case StateReport:
			m.state = StateIntake
			return nil, true
		}

	case key.Matches(msg, m.keymap.ClearScreen):
		return tea.ClearScreen, true
	}

	return nil, false
}

// startSubmission snapshots the draft and moves to the submitting state.
// An empty ledger blocks submission.
func (m *Model) startSubmission() tea.Cmd {
	snapshot := m.intake.Draft().Clone()
	if !snapshot.Submittable() {
		m.setStatus(common.ErrEmptyLedger.Error()+"; add at least one transaction", true)
		return clearStatusAfter(3 * time.Second)
	}

	m.state = StateSubmitting
	m.submitTime = time.Now()
	m.status = ""
	return tea.Batch(m.spinner.Tick, m.submitAlert(snapshot))
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

// handleResize adjusts component sizes when the terminal resizes.
func (m *Model) handleResize() {
	m.intake.Resize(m.width-2, m.height-4)
	m.report.Resize(m.width-2, m.height-4)
}
