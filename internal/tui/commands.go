package tui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quillbank/sarflow/internal/model"
)

// submitAlert sends the draft snapshot for analysis. No timeout is
// applied; the analysis engine decides how long synthesis takes and the
// analyst can quit the program to abandon the wait.
func (m Model) submitAlert(snapshot model.AlertDraft) tea.Cmd {
	return func() tea.Msg {
		report, err := m.client.Submit(context.Background(), snapshot)
		if err != nil {
			return submitFailedMsg{err: err}
		}
		return reportReceivedMsg{report: report, snapshot: snapshot}
	}
}

// saveDraft persists the current draft under the configured name.
func (m Model) saveDraft(snapshot model.AlertDraft) tea.Cmd {
	return func() tea.Msg {
		if m.store == nil {
			return draftSavedMsg{name: m.config.DraftName}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := m.store.SaveDraft(ctx, m.config.DraftName, snapshot)
		return draftSavedMsg{name: m.config.DraftName, err: err}
	}
}

// recordSubmission appends a successful submission to the local log.
// Best effort: a failure is logged and never disturbs the report view.
func (m Model) recordSubmission(snapshot model.AlertDraft, report *model.AnalysisReport) tea.Cmd {
	if m.store == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if _, err := m.store.RecordSubmission(ctx, snapshot, report); err != nil {
			slog.Warn("Failed to record submission", "alert_id", snapshot.AlertID, "error", err)
		}
		return nil
	}
}

// clearStatusAfter clears the status flash after a delay.
func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
