package tui

import (
	"github.com/quillbank/sarflow/internal/model"
)

// Submission lifecycle messages.
type reportReceivedMsg struct {
	report   *model.AnalysisReport
	snapshot model.AlertDraft
}

type submitFailedMsg struct {
	err error
}

// Draft persistence messages.
type draftSavedMsg struct {
	err  error
	name string
}

// Status bar flash handling.
type clearStatusMsg struct{}
