package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillbank/sarflow/internal/draft"
	"github.com/quillbank/sarflow/internal/model"
	"github.com/quillbank/sarflow/internal/tui/themes"
)

func keyMsg(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	if s == "esc" {
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m IntakeModel, keys ...string) IntakeModel {
	t.Helper()
	for _, k := range keys {
		m, _ = m.Update(keyMsg(k))
	}
	return m
}

func typeText(t *testing.T, m IntakeModel, text string) IntakeModel {
	t.Helper()
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestIntakeStartsWithSeed(t *testing.T) {
	m := NewIntakeModel(draft.Seed(), themes.Ledger)
	d := m.Draft()
	assert.Equal(t, "ALT-2026-9042", d.AlertID)
	assert.Len(t, d.Transactions, 2)
	assert.True(t, d.Submittable())
}

func TestIntakeCursorBounds(t *testing.T) {
	m := NewIntakeModel(draft.Seed(), themes.Ledger)

	m = press(t, m, "k", "k")
	assert.Equal(t, 0, m.cursor)

	// 4 profile rows + 2 ledger rows
	m = press(t, m, "j", "j", "j", "j", "j", "j", "j", "j")
	assert.Equal(t, 5, m.cursor)
}

func TestIntakeEditProfileField(t *testing.T) {
	m := NewIntakeModel(draft.Seed(), themes.Ledger)

	// Cursor starts on Alert ID; edit replaces the value on commit.
	m = press(t, m, "e")
	require.True(t, m.Editing())

	m.input.SetValue("ALT-2026-7777")
	m = press(t, m, "enter")

	assert.False(t, m.Editing())
	assert.Equal(t, "ALT-2026-7777", m.Draft().AlertID)
}

func TestIntakeEditEscCancels(t *testing.T) {
	m := NewIntakeModel(draft.Seed(), themes.Ledger)

	m = press(t, m, "e")
	m.input.SetValue("discarded")
	m = press(t, m, "esc")

	assert.False(t, m.Editing())
	assert.Equal(t, "ALT-2026-9042", m.Draft().AlertID)
}

func TestIntakeRiskRatingCycles(t *testing.T) {
	m := NewIntakeModel(draft.Seed(), themes.Ledger)

	// Risk rating is row 2; enter cycles instead of opening an editor.
	m = press(t, m, "j", "j")
	require.Equal(t, model.RiskCritical, m.Draft().RiskRating)

	m = press(t, m, "enter")
	assert.False(t, m.Editing())
	assert.Equal(t, model.RiskLow, m.Draft().RiskRating)

	m = press(t, m, "enter")
	assert.Equal(t, model.RiskMedium, m.Draft().RiskRating)
}

func TestIntakeAmountCoercion(t *testing.T) {
	m := NewIntakeModel(draft.Seed(), themes.Ledger)

	// First ledger row, amount column.
	m = press(t, m, "j", "j", "j", "j", "l", "l")
	m = press(t, m, "e")
	require.True(t, m.Editing())

	m.input.SetValue("$1,250,000")
	m = press(t, m, "enter")
	assert.Equal(t, 1250000.0, m.Draft().Transactions[0].Amount)

	m = press(t, m, "e")
	m.input.SetValue("not a number")
	m = press(t, m, "enter")
	assert.Equal(t, 0.0, m.Draft().Transactions[0].Amount)
}

func TestIntakeAddAndDeleteRows(t *testing.T) {
	m := NewIntakeModel(draft.Seed(), themes.Ledger)

	m = press(t, m, "a")
	require.Len(t, m.Draft().Transactions, 3)
	// Cursor jumps to the new row.
	assert.Equal(t, 2, m.ledgerIndex())
	assert.Regexp(t, `^TX-\d{4}-X$`, m.Draft().Transactions[2].TxID)

	m = press(t, m, "d")
	assert.Len(t, m.Draft().Transactions, 2)
}

func TestIntakeDeleteToEmptyBlocksSubmission(t *testing.T) {
	m := NewIntakeModel(draft.Seed(), themes.Ledger)

	m = press(t, m, "j", "j", "j", "j", "d", "d")
	assert.Empty(t, m.Draft().Transactions)
	assert.False(t, m.Draft().Submittable())

	// Deleting on the ledger with no rows left is a no-op.
	m = press(t, m, "d")
	assert.Empty(t, m.Draft().Transactions)
}

func TestIntakeDeleteIgnoredOnProfile(t *testing.T) {
	m := NewIntakeModel(draft.Seed(), themes.Ledger)

	m = press(t, m, "d")
	assert.Len(t, m.Draft().Transactions, 2)
}

func TestIntakeTypingWhileEditingDoesNotTriggerShortcuts(t *testing.T) {
	m := NewIntakeModel(draft.Seed(), themes.Ledger)

	// Edit the customer name and type text containing shortcut letters.
	m = press(t, m, "j", "e")
	require.True(t, m.Editing())
	m.input.SetValue("")
	m = typeText(t, m, "ada")
	m = press(t, m, "enter")

	assert.Equal(t, "ada", m.Draft().CustomerName)
	assert.Len(t, m.Draft().Transactions, 2)
}

func TestIntakeSetDraftResetsCursor(t *testing.T) {
	m := NewIntakeModel(draft.Seed(), themes.Ledger)
	m = press(t, m, "j", "j", "j")

	m.SetDraft(model.AlertDraft{AlertID: "ALT-1"})
	assert.Equal(t, 0, m.cursor)
	assert.Equal(t, "ALT-1", m.Draft().AlertID)
}

func TestIntakeViewRendersLedger(t *testing.T) {
	m := NewIntakeModel(draft.Seed(), themes.Ledger)
	view := m.View()

	assert.Contains(t, view, "ALT-2026-9042")
	assert.Contains(t, view, "TX-9981-A")
	assert.Contains(t, view, "$250,000")
	assert.Contains(t, view, "$400,000")
}

func TestIntakeViewEmptyLedgerWarning(t *testing.T) {
	m := NewIntakeModel(model.AlertDraft{AlertID: "ALT-1"}, themes.Ledger)
	assert.Contains(t, m.View(), "Ledger is empty")
}
