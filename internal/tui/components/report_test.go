package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillbank/sarflow/internal/draft"
	"github.com/quillbank/sarflow/internal/model"
	"github.com/quillbank/sarflow/internal/tui/themes"
)

func sampleReport() *model.AnalysisReport {
	return &model.AnalysisReport{
		Analysis: model.Analysis{
			RiskBreakdown: []model.RiskFactor{
				{Factor: "OFAC/OFSI Sanctions List Match", ContributionPercentage: 40},
				{Factor: "High-Risk Third Country (AML)", ContributionPercentage: 35},
				{Factor: "Opaque Offshore Trust Routing (ATEF)", ContributionPercentage: 25},
			},
			Recommendation: model.Recommendation{
				Action:    "ESCALATE TO SAR FILING",
				Reasoning: "Multiple corroborating indicators.",
			},
			Narrative: model.Narrative{
				Background: "Customer operates an import business.",
				Conclusion: "Activity is consistent with layering.",
			},
			Findings: []model.Finding{
				{Rule: "Sanctions Screening", Detail: "Name match", Policy: "Sanctions Policy", PolicySnippet: "Section 4.1 ..."},
				{Rule: "Geography Risk", Detail: "Listed jurisdiction", Policy: "AML Standards", PolicySnippet: "Section 2.3 ..."},
			},
		},
		AuditLogs: []model.AuditEntry{
			{Timestamp: "2026-02-14T10:00:00Z", Action: "Multi-Pillar Engine Started", Details: "screening"},
		},
	}
}

func loadedReport(t *testing.T) ReportModel {
	t.Helper()
	m := NewReportModel(themes.Ledger)
	m.SetReport(sampleReport(), draft.Seed())
	return m
}

func pressReport(t *testing.T, m ReportModel, keys ...string) ReportModel {
	t.Helper()
	for _, k := range keys {
		m, _ = m.Update(keyMsg(k))
	}
	return m
}

func TestReportEmptyState(t *testing.T) {
	m := NewReportModel(themes.Ledger)
	assert.False(t, m.HasReport())
	assert.Contains(t, m.View(), "No report yet")
}

func TestReportSetReportResetsState(t *testing.T) {
	m := loadedReport(t)

	m = pressReport(t, m, "enter", "t", "j")
	require.Equal(t, 0, m.expandedRisk)
	require.True(t, m.traceVisible)

	m.SetReport(sampleReport(), draft.Seed())
	assert.Equal(t, -1, m.expandedRisk)
	assert.Equal(t, -1, m.expandedFinding)
	assert.False(t, m.traceVisible)
	assert.Equal(t, 0, m.cursor)
}

func TestReportRiskToggleSingleSelect(t *testing.T) {
	m := loadedReport(t)

	m = pressReport(t, m, "enter")
	assert.Equal(t, 0, m.expandedRisk)

	// Toggling the same factor collapses it.
	m = pressReport(t, m, "enter")
	assert.Equal(t, -1, m.expandedRisk)

	// Expanding another factor switches, never stacks.
	m = pressReport(t, m, "enter", "j", "enter")
	assert.Equal(t, 1, m.expandedRisk)
}

func TestReportFindingToggleIndependentOfRisk(t *testing.T) {
	m := loadedReport(t)

	// Expand first risk factor, then first finding.
	m = pressReport(t, m, "enter", "j", "j", "j", "enter")
	assert.Equal(t, 0, m.expandedRisk)
	assert.Equal(t, 0, m.expandedFinding)

	// Collapsing the finding leaves the risk factor open.
	m = pressReport(t, m, "enter")
	assert.Equal(t, 0, m.expandedRisk)
	assert.Equal(t, -1, m.expandedFinding)
}

func TestReportExpandedRiskShowsExplanation(t *testing.T) {
	m := loadedReport(t)

	m = pressReport(t, m, "enter")
	assert.Contains(t, m.View(), "OFAC")
	assert.Contains(t, m.View(), "consolidated watchlists")
}

func TestReportExpandedFindingShowsSnippet(t *testing.T) {
	m := loadedReport(t)

	m = pressReport(t, m, "j", "j", "j", "enter")
	assert.Contains(t, m.View(), "Section 4.1")
}

func TestReportTraceDerivedFromSnapshot(t *testing.T) {
	m := loadedReport(t)

	view := m.View()
	assert.NotContains(t, view, "Evidence Trace")

	m = pressReport(t, m, "t")
	view = m.View()
	assert.Contains(t, view, "Evidence Trace")
	assert.Contains(t, view, "TX-9981-A")
	assert.Contains(t, view, "TX-9982-B")
	assert.Contains(t, view, "OFAC/OFSI Sanctions List Match (40%)")
	assert.Contains(t, view, "Sanctions Policy")

	m = pressReport(t, m, "t")
	assert.NotContains(t, m.View(), "Evidence Trace")
}

func TestReportNarrativeEditIsEphemeral(t *testing.T) {
	m := loadedReport(t)

	m = pressReport(t, m, "n")
	require.True(t, m.Editing())

	m.narrative.SetValue("analyst scratch notes")
	m = pressReport(t, m, "esc")
	assert.False(t, m.Editing())
	assert.Contains(t, m.View(), "analyst scratch notes")
	assert.Contains(t, m.View(), "edited locally")

	// A new report discards the scratch buffer.
	m.SetReport(sampleReport(), draft.Seed())
	assert.NotContains(t, m.View(), "analyst scratch notes")
}

func TestReportCursorBounds(t *testing.T) {
	m := loadedReport(t)

	m = pressReport(t, m, "k", "k")
	assert.Equal(t, 0, m.cursor)

	// 3 risk factors + 2 findings
	m = pressReport(t, m, "j", "j", "j", "j", "j", "j", "j")
	assert.Equal(t, 4, m.cursor)
}

func TestReportAuditTrailRendered(t *testing.T) {
	m := loadedReport(t)
	assert.Contains(t, m.View(), "Multi-Pillar Engine Started")
}
