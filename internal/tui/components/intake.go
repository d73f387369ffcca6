package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quillbank/sarflow/internal/draft"
	"github.com/quillbank/sarflow/internal/model"
	"github.com/quillbank/sarflow/internal/tui/themes"
)

// profileRows is the number of focusable profile fields above the ledger.
const profileRows = 4

// ledgerColumns is the number of editable columns in a ledger row. The
// transaction ID is display-only.
const ledgerColumns = 4

// IntakeMode represents the current mode of the intake form.
type IntakeMode int

const (
	ModeBrowsing IntakeMode = iota
	ModeEditing
)

// IntakeModel manages the alert intake form: the subject profile and the
// evidence ledger, edited in place.
type IntakeModel struct {
	theme  themes.Theme
	draft  model.AlertDraft
	input  textinput.Model
	mode   IntakeMode
	cursor int
	column int
	width  int
	height int
}

// NewIntakeModel creates an intake form over the given draft.
func NewIntakeModel(d model.AlertDraft, theme themes.Theme) IntakeModel {
	input := textinput.New()
	input.CharLimit = 200

	return IntakeModel{
		theme: theme,
		draft: d,
		input: input,
		mode:  ModeBrowsing,
	}
}

// Init returns initial commands.
func (m IntakeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m IntakeModel) Update(msg tea.Msg) (IntakeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		var cmd tea.Cmd
		switch m.mode {
		case ModeBrowsing:
			cmd = m.handleBrowsing(msg)
		case ModeEditing:
			cmd = m.handleEditing(msg)
		}
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// Draft returns the current draft state.
func (m IntakeModel) Draft() model.AlertDraft {
	return m.draft
}

// SetDraft replaces the draft being edited and resets the cursor.
func (m *IntakeModel) SetDraft(d model.AlertDraft) {
	m.draft = d
	m.mode = ModeBrowsing
	m.cursor = 0
	m.column = 0
}

// Editing reports whether a cell edit is in progress.
func (m IntakeModel) Editing() bool {
	return m.mode == ModeEditing
}

// Resize updates the component size.
func (m *IntakeModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

func (m IntakeModel) rowCount() int {
	return profileRows + len(m.draft.Transactions)
}

func (m IntakeModel) onLedger() bool {
	return m.cursor >= profileRows
}

func (m IntakeModel) ledgerIndex() int {
	return m.cursor - profileRows
}

func (m *IntakeModel) handleBrowsing(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "j", "down":
		m.cursor = min(m.cursor+1, m.rowCount()-1)

	case "k", "up":
		m.cursor = max(m.cursor-1, 0)

	case "h", "left":
		if m.onLedger() {
			m.column = max(m.column-1, 0)
		}

	case "l", "right":
		if m.onLedger() {
			m.column = min(m.column+1, ledgerColumns-1)
		}

	case "enter", "e":
		return m.startEdit()

	case "a":
		m.draft = draft.AppendTransaction(m.draft)
		m.cursor = m.rowCount() - 1
		m.column = 0

	case "d":
		if m.onLedger() {
			m.draft = draft.RemoveTransactionAt(m.draft, m.ledgerIndex())
			m.cursor = min(m.cursor, m.rowCount()-1)
		}
	}

	return nil
}

// startEdit begins editing the focused cell. The risk rating cycles
// through the canonical values instead of opening a free-text edit.
func (m *IntakeModel) startEdit() tea.Cmd {
	if !m.onLedger() && draft.Field(m.cursor) == draft.FieldRiskRating {
		m.draft = draft.SetField(m.draft, draft.FieldRiskRating, string(m.draft.RiskRating.Next()))
		return nil
	}

	m.input.SetValue(m.focusedValue())
	m.input.CursorEnd()
	m.input.Focus()
	m.mode = ModeEditing
	return textinput.Blink
}

func (m *IntakeModel) handleEditing(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.commitEdit()
		return nil

	case "esc":
		m.input.Blur()
		m.input.SetValue("")
		m.mode = ModeBrowsing
		return nil

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}
}

// commitEdit writes the input value back into the draft.
func (m *IntakeModel) commitEdit() {
	value := m.input.Value()

	if m.onLedger() {
		m.draft = draft.UpdateTransactionAt(m.draft, m.ledgerIndex(), draft.TxField(m.column), value)
	} else {
		m.draft = draft.SetField(m.draft, draft.Field(m.cursor), value)
	}

	m.input.Blur()
	m.input.SetValue("")
	m.mode = ModeBrowsing
}

// focusedValue returns the display value of the focused cell.
func (m IntakeModel) focusedValue() string {
	if m.onLedger() {
		tx := m.draft.Transactions[m.ledgerIndex()]
		switch draft.TxField(m.column) {
		case draft.TxFieldDate:
			return tx.Date
		case draft.TxFieldType:
			return tx.Type
		case draft.TxFieldAmount:
			return fmt.Sprintf("%g", tx.Amount)
		case draft.TxFieldDestinationOrigin:
			return tx.DestinationOrigin
		}
		return ""
	}

	switch draft.Field(m.cursor) {
	case draft.FieldAlertID:
		return m.draft.AlertID
	case draft.FieldCustomerName:
		return m.draft.CustomerName
	case draft.FieldRiskRating:
		return string(m.draft.RiskRating)
	case draft.FieldTriggerEvent:
		return m.draft.TriggerEvent
	}
	return ""
}

// View renders the intake form.
func (m IntakeModel) View() string {
	sections := []string{
		m.theme.Title.Render("Alert Intake"),
		m.renderProfile(),
		"",
		m.renderLedger(),
		"",
		m.renderHelp(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m IntakeModel) renderProfile() string {
	labels := []string{"Alert ID", "Customer", "Risk Rating", "Trigger Event"}
	values := []string{
		m.draft.AlertID,
		m.draft.CustomerName,
		m.theme.Rating(m.draft.RiskRating).Render(string(m.draft.RiskRating)),
		m.draft.TriggerEvent,
	}

	var lines []string
	for i := range labels {
		focused := m.cursor == i
		value := values[i]
		if focused && m.mode == ModeEditing {
			value = m.input.View()
		}

		prefix := "  "
		label := m.theme.Subtitle.UnsetMargins().Render(fmt.Sprintf("%-14s", labels[i]))
		if focused {
			prefix = lipgloss.NewStyle().Foreground(m.theme.Primary).Render("> ")
			label = m.theme.Bold.Render(fmt.Sprintf("%-14s", labels[i]))
		}

		lines = append(lines, prefix+label+value)
	}

	return strings.Join(lines, "\n")
}

func (m IntakeModel) renderLedger() string {
	title := m.theme.Subtitle.Render(fmt.Sprintf("Evidence Ledger (%d rows, total %s)",
		len(m.draft.Transactions), draft.FormatAmount(m.draft.LedgerTotal())))

	if len(m.draft.Transactions) == 0 {
		empty := m.theme.StatusWarning.Render("Ledger is empty. Submission requires at least one row. Press 'a' to add one.")
		return lipgloss.JoinVertical(lipgloss.Left, title, empty)
	}

	header := m.theme.Bold.Render(fmt.Sprintf("    %-12s %-18s %12s  %-26s %s",
		"Date", "Type", "Amount", "Destination/Origin", "ID"))

	var lines []string
	for i, tx := range m.draft.Transactions {
		focused := m.onLedger() && m.ledgerIndex() == i

		cells := []string{
			fmt.Sprintf("%-12s", tx.Date),
			fmt.Sprintf("%-18s", tx.Type),
			fmt.Sprintf("%12s", draft.FormatAmount(tx.Amount)),
			fmt.Sprintf("%-26s", tx.DestinationOrigin),
		}

		if focused {
			for c := range cells {
				if c == m.column {
					if m.mode == ModeEditing {
						cells[c] = m.input.View()
					} else {
						cells[c] = m.theme.Selected.Render(cells[c])
					}
				}
			}
		}

		prefix := "  "
		if focused {
			prefix = lipgloss.NewStyle().Foreground(m.theme.Primary).Render("> ")
		}

		line := prefix + strings.Join(cells, " ") + "  " +
			lipgloss.NewStyle().Foreground(m.theme.Muted).Render(tx.TxID)
		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, header, strings.Join(lines, "\n"))
}

func (m IntakeModel) renderHelp() string {
	var hints []string

	switch m.mode {
	case ModeEditing:
		hints = []string{
			"[Enter] Commit",
			"[Esc] Cancel",
		}
	default:
		hints = []string{
			"[↑↓] Field",
			"[←→] Column",
			"[Enter/e] Edit",
			"[a] Add row",
			"[d] Delete row",
		}
	}

	return lipgloss.NewStyle().Foreground(m.theme.Muted).Render(strings.Join(hints, "  "))
}
